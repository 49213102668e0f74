// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package screen2d

import (
	"bytes"
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/fleetclock/devices/il0373"
	"github.com/google/go-cmp/cmp"
	"github.com/maruel/ansi256"
)

func TestDev(t *testing.T) {
	var buf bytes.Buffer
	d := New(&Opts{W: 3, H: 2, Writer: &buf})

	if s := d.String(); s != "Screen2D{3x2}" {
		t.Fatal(s)
	}
	if r := d.Bounds(); r != image.Rect(0, 0, 3, 2) {
		t.Fatal(r)
	}
	if c := d.ColorModel().Convert(color.NRGBA{0xE0, 0x10, 0x10, 0xFF}); c != il0373.Red {
		t.Fatal(c)
	}

	if err := d.Draw(image.Rect(1, 0, 2, 2), image.NewUniform(color.Black), image.Point{}); err != nil {
		t.Fatal(err)
	}

	w := ansi256.Default.Block(color.NRGBA{0xFF, 0xFF, 0xFF, 0xFF})
	k := ansi256.Default.Block(color.NRGBA{0x00, 0x00, 0x00, 0xFF})
	row := w + k + w + "\033[0m\n"
	if diff := cmp.Diff(buf.String(), row+row); diff != "" {
		t.Errorf("Draw() difference (-got +want):\n%s", diff)
	}

	buf.Reset()
	if err := d.Halt(); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "\033[0m" {
		t.Fatalf("Halt() wrote %q", buf.String())
	}
}

func TestShow(t *testing.T) {
	var buf bytes.Buffer
	d := New(&Opts{W: 8, H: 12, Writer: &buf})

	if err := d.Show(il0373.Bars(8, 12)); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 12 {
		t.Fatalf("got %d lines, want 12", len(lines))
	}
	black := strings.Repeat(ansi256.Default.Block(color.NRGBA{0x00, 0x00, 0x00, 0xFF}), 8) + "\033[0m"
	red := strings.Repeat(ansi256.Default.Block(color.NRGBA{0xFF, 0x00, 0x00, 0xFF}), 8) + "\033[0m"
	white := strings.Repeat(ansi256.Default.Block(color.NRGBA{0xFF, 0xFF, 0xFF, 0xFF}), 8) + "\033[0m"
	for y, l := range lines {
		want := white
		switch {
		case y < 5:
			want = black
		case y < 10:
			want = red
		}
		if l != want {
			t.Errorf("line %d = %q, want %q", y, l, want)
		}
	}
}

func TestDrawOffPalette(t *testing.T) {
	var buf bytes.Buffer
	d := New(&Opts{W: 2, H: 1, Writer: &buf})

	// Colors outside the panel palette are snapped before being printed.
	if err := d.Draw(image.Rect(0, 0, 1, 1), image.NewUniform(color.Gray{0x20}), image.Point{}); err != nil {
		t.Fatal(err)
	}
	buf.Reset()
	if err := d.Draw(image.Rect(1, 0, 2, 1), image.NewUniform(color.RGBA{0xC0, 0x20, 0x20, 0xFF}), image.Point{}); err != nil {
		t.Fatal(err)
	}

	want := ansi256.Default.Block(color.NRGBA{0x00, 0x00, 0x00, 0xFF}) +
		ansi256.Default.Block(color.NRGBAModel.Convert(il0373.Red).(color.NRGBA)) + "\033[0m\n"
	if diff := cmp.Diff(buf.String(), want); diff != "" {
		t.Errorf("Draw() difference (-got +want):\n%s", diff)
	}
}
