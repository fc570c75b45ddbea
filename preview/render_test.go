// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package preview

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/GermanBionicSystems/vfd/vfd4"
)

var (
	testLit   = color.NRGBA{0xff, 0, 0, 0xff}
	testUnlit = color.NRGBA{0, 0, 0xff, 0xff}
)

func isColor(c color.Color, want color.NRGBA) bool {
	got := color.NRGBAModel.Convert(c).(color.NRGBA)
	return got == want
}

func TestSize(t *testing.T) {
	if got, want := Size(nil), (image.Point{X: 336, Y: 136}); got != want {
		t.Errorf("Size(nil)=%v, want %v", got, want)
	}
	if got, want := Size(&RenderOpts{Scale: 2, Caption: "x"}), (image.Point{X: 672, Y: 328}); got != want {
		t.Errorf("Size(scaled)=%v, want %v", got, want)
	}
}

func TestRender(t *testing.T) {
	opts := &RenderOpts{Lit: testLit, Unlit: testUnlit}
	// '-' on the first digit, upper dot on the colon.
	cells := [vfd4.NumCells]byte{vfd4.RemapGlyph(vfd4.SegG), 0, vfd4.RemapDot(vfd4.DotX), 0, 0}
	img, err := Render(cells, opts)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := img.Bounds().Size(), Size(opts); got != want {
		t.Fatalf("image size %v, want %v", got, want)
	}
	center := func(seg segment, x float64) (int, int) {
		return int(x + seg.x + seg.w/2), int(margin + seg.y + seg.h/2)
	}
	for _, seg := range segments {
		x, y := center(seg, margin)
		want := testUnlit
		if seg.mask == vfd4.SegG {
			want = testLit
		}
		if c := img.At(x, y); !isColor(c, want) {
			t.Errorf("segment 0x%x at (%d, %d) is %v, want %v", seg.mask, x, y, c, want)
		}
	}
	colonX := int(margin + 2*(digitW+cellGap) + colonW/2)
	upperY, lowerY := margin+digitH/3, margin+2*digitH/3
	if c := img.At(colonX, int(upperY)); !isColor(c, testLit) {
		t.Errorf("upper dot is %v, want lit", c)
	}
	if c := img.At(colonX, int(lowerY)); !isColor(c, testUnlit) {
		t.Errorf("lower dot is %v, want unlit", c)
	}
}

func TestRenderCaption(t *testing.T) {
	opts := &RenderOpts{Caption: "12:34"}
	img, err := Render([vfd4.NumCells]byte{}, opts)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := img.Bounds().Size(), Size(opts); got != want {
		t.Errorf("image size %v, want %v", got, want)
	}
}

func TestSavePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tube.png")
	if err := SavePNG(path, [vfd4.NumCells]byte{0x7f, 0x7f, 0x03, 0x7f, 0x7f}, nil); err != nil {
		t.Fatal(err)
	}
	if st, err := os.Stat(path); err != nil || st.Size() == 0 {
		t.Errorf("expected a PNG file, got %v %v", st, err)
	}
}
