// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package il0373

import (
	"image"
	"image/color"
	"image/draw"

	"periph.io/x/devices/v3/ssd1306/image1bit"
)

var _ draw.Image = &Plane{}
var _ draw.Image = &Frame{}

// Red is the ink color of the red plane.
var Red = color.RGBA{0xFF, 0x00, 0x00, 0xFF}

// Palette lists the colors the panel can show, in the order used by Frame.
var Palette = color.Palette{color.White, color.Black, Red}

// PlaneSize returns the number of bytes in one plane of a w×h panel. Rows
// are padded to a whole byte.
func PlaneSize(w, h int) int {
	return (w + 7) / 8 * h
}

// Plane is one monochrome layer of the panel RAM.
//
// Pixels are stored row by row, most significant bit first. A cleared bit
// is an active (inked) pixel and a set bit is background, so a blank plane
// is all 0xFF.
type Plane struct {
	Pix    []byte
	Stride int
	Rect   image.Rectangle
}

// NewPlane returns a blank plane for a w×h panel.
func NewPlane(w, h int) *Plane {
	p := &Plane{
		Pix:    make([]byte, PlaneSize(w, h)),
		Stride: (w + 7) / 8,
		Rect:   image.Rect(0, 0, w, h),
	}
	p.Fill(0xFF)
	return p
}

// Bytes returns the plane as sent to the panel.
func (p *Plane) Bytes() []byte {
	return p.Pix
}

// Fill sets every byte of the plane to v.
func (p *Plane) Fill(v byte) {
	for i := range p.Pix {
		p.Pix[i] = v
	}
}

// FillRows sets every byte of n rows starting at row y to v. Rows outside
// the plane are ignored.
func (p *Plane) FillRows(y, n int, v byte) {
	start, end := y, y+n
	if start < 0 {
		start = 0
	}
	if end > p.Rect.Dy() {
		end = p.Rect.Dy()
	}
	for i := start * p.Stride; i < end*p.Stride; i++ {
		p.Pix[i] = v
	}
}

// Active reports whether the pixel at (x, y) is inked.
func (p *Plane) Active(x, y int) bool {
	if !(image.Point{x, y}.In(p.Rect)) {
		return false
	}
	return p.Pix[p.offset(x, y)]&(0x80>>uint(x%8)) == 0
}

// SetActive inks or clears the pixel at (x, y).
func (p *Plane) SetActive(x, y int, active bool) {
	if !(image.Point{x, y}.In(p.Rect)) {
		return
	}
	mask := byte(0x80 >> uint(x%8))
	if active {
		p.Pix[p.offset(x, y)] &^= mask
	} else {
		p.Pix[p.offset(x, y)] |= mask
	}
}

func (p *Plane) offset(x, y int) int {
	return y*p.Stride + x/8
}

// ColorModel implements image.Image. Background pixels are image1bit.On.
func (p *Plane) ColorModel() color.Model {
	return image1bit.BitModel
}

// Bounds implements image.Image.
func (p *Plane) Bounds() image.Rectangle {
	return p.Rect
}

// At implements image.Image.
func (p *Plane) At(x, y int) color.Color {
	return image1bit.Bit(!p.Active(x, y))
}

// Set implements draw.Image.
func (p *Plane) Set(x, y int, c color.Color) {
	b, ok := image1bit.BitModel.Convert(c).(image1bit.Bit)
	if !ok {
		return
	}
	p.SetActive(x, y, b == image1bit.Off)
}

// Frame is a full tri-color image as two planes. A pixel is never active
// in both planes.
type Frame struct {
	Black *Plane
	Red   *Plane
}

// NewFrame returns a blank (white) frame for a w×h panel.
func NewFrame(w, h int) *Frame {
	return &Frame{
		Black: NewPlane(w, h),
		Red:   NewPlane(w, h),
	}
}

// Bars returns the test pattern: a black band over the first five rows and
// a red band over the next five.
func Bars(w, h int) *Frame {
	const rows = 5
	f := NewFrame(w, h)
	f.Black.FillRows(0, rows, 0x00)
	f.Red.FillRows(rows, rows, 0x00)
	return f
}

// ColorModel implements image.Image.
func (f *Frame) ColorModel() color.Model {
	return Palette
}

// Bounds implements image.Image.
func (f *Frame) Bounds() image.Rectangle {
	return f.Black.Rect
}

// At implements image.Image.
func (f *Frame) At(x, y int) color.Color {
	switch {
	case f.Red.Active(x, y):
		return Palette[2]
	case f.Black.Active(x, y):
		return Palette[1]
	default:
		return Palette[0]
	}
}

// Set implements draw.Image. The color is snapped to the nearest entry of
// Palette.
func (f *Frame) Set(x, y int, c color.Color) {
	i := Palette.Index(c)
	f.Black.SetActive(x, y, i == 1)
	f.Red.SetActive(x, y, i == 2)
}
