// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package config holds the YAML configuration of fleetclock-epd.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fleetclock/devices/il0373"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// SPIConfig selects the bus.
type SPIConfig struct {
	// Port is the spireg name. Empty selects the first port.
	Port string `yaml:"port"`
	// MaxHz caps the bus clock. 0 keeps the driver default.
	MaxHz int64 `yaml:"max_hz"`
}

// PinsConfig names the control lines as known to gpioreg.
type PinsConfig struct {
	DC string `yaml:"dc"`
	CS string `yaml:"cs"`
	// Busy is optional. Without it the refresh is waited out with a fixed
	// delay.
	Busy string `yaml:"busy,omitempty"`
}

// PanelConfig describes the panel.
type PanelConfig struct {
	Width       int           `yaml:"width"`
	Height      int           `yaml:"height"`
	RefreshTime time.Duration `yaml:"refresh_time"`
	// VCOMPowerOff is "none" or "zero".
	VCOMPowerOff string `yaml:"vcom_power_off"`
}

// ContentConfig selects what is drawn.
type ContentConfig struct {
	// Mode is one of "bars", "text" or "image".
	Mode string `yaml:"mode"`
	// Text is drawn in "text" mode. Lines are separated by \n.
	Text string `yaml:"text,omitempty"`
	// Caption is a small line drawn in red under the text.
	Caption string `yaml:"caption,omitempty"`
	// FontSize is the size in points of the text.
	FontSize float64 `yaml:"font_size"`
	// Landscape draws the text along the long side of the panel.
	Landscape bool `yaml:"landscape,omitempty"`
	// Image is the path of the picture drawn in "image" mode.
	Image string `yaml:"image,omitempty"`
	// Dither is one of "floyd-steinberg", "sierra-lite" or "threshold".
	Dither string `yaml:"dither"`
}

// Config is the top-level configuration.
type Config struct {
	SPI     SPIConfig     `yaml:"spi"`
	Pins    PinsConfig    `yaml:"pins"`
	Panel   PanelConfig   `yaml:"panel"`
	Content ContentConfig `yaml:"content"`
	// LogLevel is one of "debug", "info", "warn" or "error".
	LogLevel string `yaml:"log_level"`
}

// Content modes.
const (
	ModeBars  = "bars"
	ModeText  = "text"
	ModeImage = "image"
)

// Dithering algorithms.
const (
	DitherFloydSteinberg = "floyd-steinberg"
	DitherSierraLite     = "sierra-lite"
	DitherThreshold      = "threshold"
)

// Default returns the configuration of the 2.13" tri-color panel wired on
// the Raspberry Pi header pins used by the common e-paper HATs.
func Default() *Config {
	c := &Config{
		Pins: PinsConfig{
			DC: "GPIO25",
			CS: "GPIO8",
		},
	}
	c.Normalize()
	return c
}

// Normalize fills in zero values with defaults.
func (c *Config) Normalize() {
	if c.Panel.Width == 0 {
		c.Panel.Width = il0373.EPD2in13TriColor.Width
	}
	if c.Panel.Height == 0 {
		c.Panel.Height = il0373.EPD2in13TriColor.Height
	}
	if c.Panel.RefreshTime == 0 {
		c.Panel.RefreshTime = il0373.EPD2in13TriColor.RefreshTime
	}
	if c.Panel.VCOMPowerOff == "" {
		c.Panel.VCOMPowerOff = il0373.VCOMNoPayload.String()
	}
	if c.Content.Mode == "" {
		c.Content.Mode = ModeBars
	}
	if c.Content.FontSize == 0 {
		c.Content.FontSize = 24
	}
	if c.Content.Dither == "" {
		c.Content.Dither = DitherFloydSteinberg
	}
	if c.LogLevel == "" {
		c.LogLevel = zerolog.LevelInfoValue
	}
}

// Validate reports the first unusable value.
func (c *Config) Validate() error {
	if c.Pins.DC == "" || c.Pins.CS == "" {
		return errors.New("config: pins.dc and pins.cs are required")
	}
	if c.SPI.MaxHz < 0 {
		return fmt.Errorf("config: invalid spi.max_hz %d", c.SPI.MaxHz)
	}
	if c.Panel.Width <= 0 || c.Panel.Width > 0xFF || c.Panel.Height <= 0 || c.Panel.Height > 0xFFFF {
		return fmt.Errorf("config: invalid panel size %dx%d", c.Panel.Width, c.Panel.Height)
	}
	if c.Panel.RefreshTime < 0 {
		return fmt.Errorf("config: invalid panel.refresh_time %s", c.Panel.RefreshTime)
	}
	if _, err := c.VCOMPolicy(); err != nil {
		return fmt.Errorf("config: panel.vcom_power_off: %w", err)
	}
	switch c.Content.Mode {
	case ModeBars:
	case ModeText:
		if c.Content.Text == "" {
			return errors.New("config: content.text is required in text mode")
		}
		if c.Content.FontSize < 0 {
			return fmt.Errorf("config: invalid content.font_size %g", c.Content.FontSize)
		}
	case ModeImage:
		if c.Content.Image == "" {
			return errors.New("config: content.image is required in image mode")
		}
	default:
		return fmt.Errorf("config: unknown content.mode %q", c.Content.Mode)
	}
	switch c.Content.Dither {
	case DitherFloydSteinberg, DitherSierraLite, DitherThreshold:
	default:
		return fmt.Errorf("config: unknown content.dither %q", c.Content.Dither)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: log_level: %w", err)
	}
	return nil
}

// VCOMPolicy decodes Panel.VCOMPowerOff.
func (c *Config) VCOMPolicy() (il0373.VCOMPolicy, error) {
	var p il0373.VCOMPolicy
	err := p.Set(c.Panel.VCOMPowerOff)
	return p, err
}

// Opts returns the driver options for the panel.
func (c *Config) Opts() (*il0373.Opts, error) {
	p, err := c.VCOMPolicy()
	if err != nil {
		return nil, err
	}
	return &il0373.Opts{
		Width:        c.Panel.Width,
		Height:       c.Panel.Height,
		RefreshTime:  c.Panel.RefreshTime,
		VCOMPowerOff: p,
	}, nil
}

// Load reads the configuration at path.
//
// An empty path or a missing file yields Default(). The result is normalized
// but not validated.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	cfg.Normalize()
	return cfg, nil
}

// Save writes a normalized copy of cfg to path, creating the parent
// directory. cfg itself is left untouched.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config: path is empty")
	}
	c := *cfg
	c.Normalize()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(&c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
