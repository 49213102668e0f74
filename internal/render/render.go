// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package render produces tri-color frames for the panel.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/MaxHalford/halfgone"
	"github.com/disintegration/imaging"
	"github.com/fleetclock/devices/il0373"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

const padding = 4

// Bars returns the test pattern.
func Bars(w, h int) *il0373.Frame {
	return il0373.Bars(w, h)
}

// TextOpts describes a text frame.
type TextOpts struct {
	// Text is drawn in black, wrapped to the frame width.
	Text string
	// Caption is drawn in red on the last line.
	Caption string
	// Size is the font size in points of Text.
	Size float64
	// Landscape draws along the long side of the panel.
	Landscape bool
}

// Text returns a frame with black text on white.
func Text(w, h int, opts *TextOpts) (*il0373.Frame, error) {
	cw, ch := w, h
	if opts.Landscape {
		cw, ch = h, w
	}

	ttf, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	dc := gg.NewContext(cw, ch)
	dc.SetColor(color.White)
	dc.Clear()
	dc.SetColor(color.Black)
	dc.SetFontFace(truetype.NewFace(ttf, &truetype.Options{Size: opts.Size}))
	dc.DrawStringWrapped(opts.Text, padding, padding, 0, 0, float64(cw-2*padding), 1.2, gg.AlignLeft)

	img := image.NewRGBA(image.Rect(0, 0, cw, ch))
	draw.Draw(img, img.Bounds(), dc.Image(), image.Point{}, draw.Src)

	if opts.Caption != "" {
		face := basicfont.Face7x13
		d := font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(il0373.Red),
			Face: face,
			Dot:  fixed.P(padding, ch-1-face.Descent),
		}
		d.DrawString(opts.Caption)
	}

	var out image.Image = img
	if opts.Landscape {
		out = imaging.Rotate90(img)
	}
	return toFrame(out, w, h), nil
}

// toFrame snaps every pixel of img to the panel palette.
func toFrame(img image.Image, w, h int) *il0373.Frame {
	f := il0373.NewFrame(w, h)
	draw.Draw(f, f.Bounds(), img, img.Bounds().Min, draw.Src)
	return f
}

// Dithering algorithms accepted by Image.
const (
	FloydSteinberg = "floyd-steinberg"
	SierraLite     = "sierra-lite"
	Threshold      = "threshold"
)

type ditherer interface {
	Apply(gray *image.Gray) *image.Gray
}

func newDitherer(name string) (ditherer, error) {
	switch name {
	case FloydSteinberg, "":
		return halfgone.FloydSteinbergDitherer{}, nil
	case SierraLite:
		return halfgone.SierraLiteDitherer{}, nil
	case Threshold:
		return halfgone.ThresholdDitherer{Threshold: 127}, nil
	default:
		return nil, fmt.Errorf("render: unknown dithering %q", name)
	}
}

// Image returns img scaled down to fit the panel and centered on white.
//
// Pixels closest to red go to the red plane. Everything else is converted to
// gray and dithered into the black plane.
func Image(img image.Image, w, h int, dither string) (*il0373.Frame, error) {
	d, err := newDitherer(dither)
	if err != nil {
		return nil, err
	}

	scaled := imaging.Fit(img, w, h, imaging.Lanczos)
	canvas := imaging.PasteCenter(imaging.New(w, h, color.White), scaled)

	f := il0373.NewFrame(w, h)
	gray := image.NewGray(canvas.Bounds())
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := canvas.NRGBAAt(x, y)
			if il0373.Palette.Index(c) == 2 {
				f.Red.SetActive(x, y, true)
				gray.SetGray(x, y, color.Gray{Y: 0xFF})
				continue
			}
			gray.Set(x, y, c)
		}
	}

	dithered := d.Apply(gray)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if dithered.GrayAt(x, y).Y < 0x80 && !f.Red.Active(x, y) {
				f.Black.SetActive(x, y, true)
			}
		}
	}
	return f, nil
}

// ImageFile decodes the picture at path and passes it to Image.
func ImageFile(path string, w, h int, dither string) (*il0373.Frame, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return Image(img, w, h, dither)
}
