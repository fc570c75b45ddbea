// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package preview

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/GermanBionicSystems/vfd/vfd4"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// Geometry of a cell before scaling.
const (
	segLen     = 40.0
	segWidth   = 8.0
	digitW     = segLen + 2*segWidth
	digitH     = 2*segLen + 3*segWidth
	colonW     = 16.0
	dotRadius  = 5.0
	cellGap    = 16.0
	margin     = 16.0
	captionH   = 28.0
	captionPts = 14.0
)

// RenderOpts controls the look of a rendered tube.
type RenderOpts struct {
	// Scale multiplies all dimensions. Defaults to 1.
	Scale float64
	// Caption is drawn below the cells when not empty.
	Caption string
	// Lit and Unlit are the segment colors, Background the tube glass.
	// Zero values use a phosphor green look.
	Lit, Unlit, Background color.Color
}

type segment struct {
	mask       byte
	x, y, w, h float64
}

// segments of a digit cell, relative to its top left corner.
var segments = []segment{
	{vfd4.SegA, segWidth, 0, segLen, segWidth},
	{vfd4.SegB, segLen + segWidth, segWidth, segWidth, segLen},
	{vfd4.SegC, segLen + segWidth, segLen + 2*segWidth, segWidth, segLen},
	{vfd4.SegD, segWidth, 2*segLen + 2*segWidth, segLen, segWidth},
	{vfd4.SegE, 0, segLen + 2*segWidth, segWidth, segLen},
	{vfd4.SegF, 0, segWidth, segWidth, segLen},
	{vfd4.SegG, segWidth, segLen + segWidth, segLen, segWidth},
}

var (
	faceOnce sync.Once
	faceFont *truetype.Font
	faceErr  error
)

func captionFace(scale float64) (font.Face, error) {
	faceOnce.Do(func() {
		faceFont, faceErr = truetype.Parse(goregular.TTF)
	})
	if faceErr != nil {
		return nil, fmt.Errorf("preview: %w", faceErr)
	}
	return truetype.NewFace(faceFont, &truetype.Options{Size: captionPts * scale}), nil
}

// Size returns the dimensions of an image rendered with opts.
func Size(opts *RenderOpts) image.Point {
	s := scaleOf(opts)
	w := 2*margin + (vfd4.NumCells-1)*digitW + colonW + (vfd4.NumCells-1)*cellGap
	h := 2*margin + digitH
	if opts != nil && opts.Caption != "" {
		h += captionH
	}
	return image.Point{X: int(w * s), Y: int(h * s)}
}

func scaleOf(opts *RenderOpts) float64 {
	if opts == nil || opts.Scale <= 0 {
		return 1
	}
	return opts.Scale
}

// Render draws the cells, as returned by vfd4.Dev.Cells, the way the tube
// shows them.
func Render(cells [vfd4.NumCells]byte, opts *RenderOpts) (image.Image, error) {
	if opts == nil {
		opts = &RenderOpts{}
	}
	s := scaleOf(opts)
	lit, unlit, bg := opts.Lit, opts.Unlit, opts.Background
	if lit == nil {
		lit = color.NRGBA{0x40, 0xff, 0xc8, 0xff}
	}
	if unlit == nil {
		unlit = color.NRGBA{0x14, 0x3c, 0x32, 0xff}
	}
	if bg == nil {
		bg = color.Black
	}
	size := Size(opts)
	dc := gg.NewContext(size.X, size.Y)
	dc.SetColor(bg)
	dc.Clear()

	x := margin
	for ix, c := range cells {
		if ix == vfd4.ColonCell {
			dots := vfd4.UnmapDot(c)
			for _, dot := range []struct {
				mask byte
				y    float64
			}{
				{vfd4.DotX, margin + digitH/3},
				{vfd4.DotY, margin + 2*digitH/3},
			} {
				dc.DrawCircle((x+colonW/2)*s, dot.y*s, dotRadius*s)
				dc.SetColor(pick(dots&dot.mask != 0, lit, unlit))
				dc.Fill()
			}
			x += colonW + cellGap
			continue
		}
		segs := vfd4.UnmapGlyph(c)
		for _, seg := range segments {
			dc.DrawRoundedRectangle((x+seg.x)*s, (margin+seg.y)*s, seg.w*s, seg.h*s, segWidth/2*s)
			dc.SetColor(pick(segs&seg.mask != 0, lit, unlit))
			dc.Fill()
		}
		x += digitW + cellGap
	}

	if opts.Caption != "" {
		face, err := captionFace(s)
		if err != nil {
			return nil, err
		}
		dc.SetFontFace(face)
		dc.SetColor(lit)
		dc.DrawStringAnchored(opts.Caption, float64(size.X)/2, (2*margin+digitH+captionH/2)*s, 0.5, 0.5)
	}
	return dc.Image(), nil
}

func pick(on bool, lit, unlit color.Color) color.Color {
	if on {
		return lit
	}
	return unlit
}

// SavePNG renders the cells into a PNG file.
func SavePNG(path string, cells [vfd4.NumCells]byte, opts *RenderOpts) error {
	img, err := Render(cells, opts)
	if err != nil {
		return err
	}
	return gg.SavePNG(path, img)
}
