// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// fleetclock-epd draws one frame on an IL0373 tri-color e-paper panel.
//
// With -preview the frame is printed on the terminal instead and no hardware
// is touched.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fleetclock/devices/il0373"
	"github.com/fleetclock/devices/internal/config"
	"github.com/fleetclock/devices/internal/render"
	"github.com/fleetclock/devices/screen2d"
	"github.com/mattn/go-colorable"
	"github.com/rs/zerolog"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

type flagConfig struct {
	configPath string
	preview    bool
	demo       bool
	mode       string
	text       string
	image      string
	dither     string
	busy       string
	vcom       string
	logLevel   string
	writeCfg   string
}

func parseFlags() flagConfig {
	var f flagConfig
	flag.StringVar(&f.configPath, "config", "", "path to the YAML config file")
	flag.BoolVar(&f.preview, "preview", false, "print the frame on the terminal; do not touch the panel")
	flag.BoolVar(&f.demo, "demo", false, "draw the test pattern, ignoring the content settings")
	flag.StringVar(&f.mode, "mode", "", "content mode: bars, text or image (overrides config)")
	flag.StringVar(&f.text, "text", "", "text to draw in text mode (overrides config)")
	flag.StringVar(&f.image, "image", "", "picture to draw in image mode (overrides config)")
	flag.StringVar(&f.dither, "dither", "", "dithering: floyd-steinberg, sierra-lite or threshold (overrides config)")
	flag.StringVar(&f.busy, "busy", "", "busy line name (overrides config)")
	flag.StringVar(&f.vcom, "vcom", "", "VCM DC payload on power-down: none or zero (overrides config)")
	flag.StringVar(&f.logLevel, "log-level", "", "debug, info, warn or error (overrides config)")
	flag.StringVar(&f.writeCfg, "write-config", "", "write the effective config to this path and exit")
	flag.Parse()
	return f
}

func (f *flagConfig) apply(c *config.Config) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&c.Content.Mode, f.mode)
	set(&c.Content.Text, f.text)
	set(&c.Content.Image, f.image)
	set(&c.Content.Dither, f.dither)
	set(&c.Pins.Busy, f.busy)
	set(&c.Panel.VCOMPowerOff, f.vcom)
	set(&c.LogLevel, f.logLevel)
	if f.demo {
		c.Content.Mode = config.ModeBars
	}
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	w := zerolog.ConsoleWriter{Out: colorable.NewColorableStderr(), TimeFormat: "15:04:05.000"}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}

func frame(c *config.Config) (*il0373.Frame, error) {
	w, h := c.Panel.Width, c.Panel.Height
	switch c.Content.Mode {
	case config.ModeText:
		return render.Text(w, h, &render.TextOpts{
			Text:      c.Content.Text,
			Caption:   c.Content.Caption,
			Size:      c.Content.FontSize,
			Landscape: c.Content.Landscape,
		})
	case config.ModeImage:
		return render.ImageFile(c.Content.Image, w, h, c.Content.Dither)
	default:
		return render.Bars(w, h), nil
	}
}

func pin(name string) (gpio.PinIO, error) {
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("gpio %q not found", name)
	}
	return p, nil
}

// writeConfig saves the effective configuration, flags included, so it can
// be reused with -config.
func writeConfig(path string, c *config.Config, log *zerolog.Logger) error {
	if err := config.Save(path, c); err != nil {
		return err
	}
	log.Info().Str("path", path).Msg("config written")
	return nil
}

func show(ctx context.Context, c *config.Config, f *il0373.Frame, log *zerolog.Logger) error {
	if _, err := host.Init(); err != nil {
		return err
	}

	p, err := spireg.Open(c.SPI.Port)
	if err != nil {
		return err
	}
	defer p.Close()
	if c.SPI.MaxHz > 0 {
		if err := p.LimitSpeed(physic.Frequency(c.SPI.MaxHz) * physic.Hertz); err != nil {
			return err
		}
	}

	dc, err := pin(c.Pins.DC)
	if err != nil {
		return err
	}
	cs, err := pin(c.Pins.CS)
	if err != nil {
		return err
	}
	var busy gpio.PinIn
	if c.Pins.Busy != "" {
		if busy, err = pin(c.Pins.Busy); err != nil {
			return err
		}
	}

	opts, err := c.Opts()
	if err != nil {
		return err
	}
	opts.Logger = log
	dev, err := il0373.New(p, dc, cs, busy, opts)
	if err != nil {
		return err
	}
	log.Info().Stringer("dev", dev).Msg("panel opened")

	if err := dev.Show(ctx, f); err != nil {
		if errors.Is(err, context.Canceled) {
			// Leave the panel unpowered even when interrupted.
			_ = dev.PowerDown(context.Background())
		}
		return err
	}
	return nil
}

func mainImpl() error {
	flags := parseFlags()

	c, err := config.Load(flags.configPath)
	if err != nil {
		return err
	}
	flags.apply(c)
	if err := c.Validate(); err != nil {
		return err
	}

	log := newLogger(c.LogLevel)
	if flags.writeCfg != "" {
		return writeConfig(flags.writeCfg, c, &log)
	}
	log.Info().Str("mode", c.Content.Mode).Int("width", c.Panel.Width).Int("height", c.Panel.Height).Msg("fleetclock-epd starting")

	f, err := frame(c)
	if err != nil {
		return err
	}

	if flags.preview {
		d := screen2d.New(&screen2d.Opts{W: c.Panel.Width, H: c.Panel.Height})
		defer d.Halt()
		return d.Show(f)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := show(ctx, c, f, &log); err != nil {
		return err
	}
	log.Warn().Msg("done; the panel keeps the image unpowered")
	return nil
}

func main() {
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "fleetclock-epd: %s.\n", err)
		os.Exit(1)
	}
}
