// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package screen2d implements a 2D display.Drawer that previews a tri-color
// e-paper frame on a terminal using ANSI color codes.
//
// Useful to check a layout before waiting out a 20 seconds panel refresh.
package screen2d

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"

	"github.com/fleetclock/devices/il0373"
	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"periph.io/x/conn/v3/display"
)

// Opts represents the options available for this display.
type Opts struct {
	W       int
	H       int
	Palette *ansi256.Palette
	// Writer receives the output. Defaults to stdout.
	Writer io.Writer

	_ struct{}
}

// Dev is a tri-color panel emulator that outputs to the console.
//
// Colors are snapped to il0373.Palette, as the panel does.
type Dev struct {
	w       io.Writer
	palette ansi256.Palette

	img *image.Paletted
	buf bytes.Buffer
}

// New returns a Dev that displays at the console.
func New(opts *Opts) *Dev {
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	w := opts.Writer
	if w == nil {
		w = colorable.NewColorableStdout()
	}
	d := &Dev{
		w:       w,
		palette: *p,
		img:     image.NewPaletted(image.Rect(0, 0, opts.W, opts.H), il0373.Palette),
	}
	return d
}

func (d *Dev) String() string {
	return fmt.Sprintf("Screen2D{%dx%d}", d.img.Rect.Dx(), d.img.Rect.Dy())
}

// Halt implements conn.Resource.
//
// It resets the terminal colors.
func (d *Dev) Halt() error {
	_, err := d.w.Write([]byte("\033[0m"))
	return err
}

// ColorModel implements display.Drawer.
func (d *Dev) ColorModel() color.Model {
	return il0373.Palette
}

// Bounds implements display.Drawer.
func (d *Dev) Bounds() image.Rectangle {
	return d.img.Rect
}

// Draw implements display.Drawer.
//
// The whole screen is printed again after each call.
func (d *Dev) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	draw.Src.Draw(d.img, r.Intersect(d.Bounds()), src, sp)
	return d.refresh()
}

// Show prints f.
func (d *Dev) Show(f *il0373.Frame) error {
	return d.Draw(f.Bounds(), f, f.Bounds().Min)
}

func (d *Dev) refresh() error {
	d.buf.Reset()
	for y := d.img.Rect.Min.Y; y < d.img.Rect.Max.Y; y++ {
		for x := d.img.Rect.Min.X; x < d.img.Rect.Max.X; x++ {
			_, _ = io.WriteString(&d.buf, d.palette.Block(color.NRGBAModel.Convert(d.img.At(x, y)).(color.NRGBA)))
		}
		_, _ = d.buf.WriteString("\033[0m\n")
	}
	_, err := d.buf.WriteTo(d.w)
	return err
}

var _ display.Drawer = &Dev{}
var _ fmt.Stringer = &Dev{}
