// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package render

import (
	"bytes"
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/fleetclock/devices/il0373"
	"github.com/google/go-cmp/cmp"
)

func count(p *il0373.Plane) int {
	n := 0
	b := p.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if p.Active(x, y) {
				n++
			}
		}
	}
	return n
}

func TestBars(t *testing.T) {
	got := Bars(104, 212)
	want := il0373.Bars(104, 212)
	if diff := cmp.Diff(got.Black.Bytes(), want.Black.Bytes()); diff != "" {
		t.Errorf("Bars() black difference (-got +want):\n%s", diff)
	}
	if diff := cmp.Diff(got.Red.Bytes(), want.Red.Bytes()); diff != "" {
		t.Errorf("Bars() red difference (-got +want):\n%s", diff)
	}
}

func TestText(t *testing.T) {
	for _, landscape := range []bool{false, true} {
		f, err := Text(104, 212, &TextOpts{Text: "Hello fleet", Caption: "CO2 412", Size: 18, Landscape: landscape})
		if err != nil {
			t.Fatal(err)
		}
		if got := f.Bounds(); got != image.Rect(0, 0, 104, 212) {
			t.Fatalf("Bounds() = %v", got)
		}
		if count(f.Black) == 0 {
			t.Errorf("landscape=%t: no black pixels", landscape)
		}
		if count(f.Red) == 0 {
			t.Errorf("landscape=%t: no red pixels", landscape)
		}
	}
}

func TestTextNoCaption(t *testing.T) {
	f, err := Text(104, 212, &TextOpts{Text: "Hello", Size: 24})
	if err != nil {
		t.Fatal(err)
	}
	if n := count(f.Red); n != 0 {
		t.Errorf("%d red pixels, want 0", n)
	}
}

func TestImageSolid(t *testing.T) {
	for _, tc := range []struct {
		name       string
		c          color.Color
		black, red int
	}{
		{"white", color.White, 0, 0},
		{"black", color.Black, 16 * 8, 0},
		{"red", color.NRGBA{0xD0, 0x10, 0x10, 0xFF}, 0, 16 * 8},
	} {
		t.Run(tc.name, func(t *testing.T) {
			img := imaging.New(16, 8, tc.c)
			f, err := Image(img, 16, 8, Threshold)
			if err != nil {
				t.Fatal(err)
			}
			if got := count(f.Black); got != tc.black {
				t.Errorf("black pixels = %d, want %d", got, tc.black)
			}
			if got := count(f.Red); got != tc.red {
				t.Errorf("red pixels = %d, want %d", got, tc.red)
			}
		})
	}
}

func TestImageCentered(t *testing.T) {
	img := imaging.New(8, 8, color.Black)

	f, err := Image(img, 16, 8, FloydSteinberg)
	if err != nil {
		t.Fatal(err)
	}
	for x := 0; x < 16; x++ {
		want := x >= 4 && x < 12
		if got := f.Black.Active(x, 3); got != want {
			t.Errorf("Black.Active(%d, 3) = %t, want %t", x, got, want)
		}
	}
}

func TestImageDithered(t *testing.T) {
	img := imaging.New(32, 32, color.Gray{Y: 0x80})

	for _, d := range []string{FloydSteinberg, SierraLite} {
		f, err := Image(img, 32, 32, d)
		if err != nil {
			t.Fatal(err)
		}
		n := count(f.Black)
		if n < 32*32/4 || n > 32*32*3/4 {
			t.Errorf("%s: %d black pixels out of %d, want about half", d, n, 32*32)
		}
	}
}

func TestImageUnknownDither(t *testing.T) {
	if _, err := Image(imaging.New(4, 4, color.White), 4, 4, "ordered"); err == nil {
		t.Fatal("Image() succeeded, want error")
	}
}

func TestImageFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "red.png")
	if err := imaging.Save(imaging.New(8, 8, color.NRGBA{0xFF, 0, 0, 0xFF}), path); err != nil {
		t.Fatal(err)
	}

	f, err := ImageFile(path, 8, 8, Threshold)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(f.Red.Bytes(), make([]byte, 8)) {
		t.Errorf("Red.Bytes() = % X, want all zero", f.Red.Bytes())
	}

	if _, err := ImageFile(filepath.Join(t.TempDir(), "missing.png"), 8, 8, Threshold); err == nil {
		t.Error("ImageFile() succeeded, want error")
	}
}
