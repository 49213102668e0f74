// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/fleetclock/devices/il0373"
	"github.com/fleetclock/devices/internal/config"
	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
)

func TestApply(t *testing.T) {
	c := config.Default()
	f := flagConfig{mode: config.ModeText, text: "hi", busy: "GPIO24", vcom: "zero", logLevel: "debug"}

	f.apply(c)

	if c.Content.Mode != config.ModeText || c.Content.Text != "hi" {
		t.Errorf("content = %+v", c.Content)
	}
	if c.Pins.Busy != "GPIO24" || c.Panel.VCOMPowerOff != "zero" || c.LogLevel != "debug" {
		t.Errorf("config = %+v", c)
	}
	if c.Pins.DC != "GPIO25" {
		t.Errorf("empty flag overrode pins.dc: %q", c.Pins.DC)
	}

	f = flagConfig{demo: true}
	f.apply(c)
	if c.Content.Mode != config.ModeBars {
		t.Errorf("-demo mode = %q, want bars", c.Content.Mode)
	}
}

func TestFrameBars(t *testing.T) {
	c := config.Default()

	f, err := frame(c)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(f.Black.Bytes(), il0373.Bars(104, 212).Black.Bytes()); diff != "" {
		t.Errorf("frame() difference (-got +want):\n%s", diff)
	}
}

func TestFrameText(t *testing.T) {
	c := config.Default()
	c.Content.Mode = config.ModeText
	c.Content.Text = "12:34"

	f, err := frame(c)
	if err != nil {
		t.Fatal(err)
	}
	if got := f.Bounds().Size(); got.X != 104 || got.Y != 212 {
		t.Errorf("frame size = %v", got)
	}
}

func TestWriteConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "epd.yaml")
	c := config.Default()
	f := flagConfig{mode: config.ModeText, text: "12:34", busy: "GPIO24"}
	f.apply(c)
	want := *c

	var buf bytes.Buffer
	log := zerolog.New(&buf)
	if err := writeConfig(path, c, &log); err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(buf.Bytes(), []byte(path)) {
		t.Errorf("log = %q, want it to name %s", buf.String(), path)
	}

	got, err := config.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(got, &want); diff != "" {
		t.Errorf("Load() difference (-got +want):\n%s", diff)
	}

	if err := writeConfig("", c, &log); err == nil {
		t.Error("writeConfig(\"\") succeeded, want error")
	}
}
