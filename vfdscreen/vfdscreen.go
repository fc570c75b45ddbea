// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package vfdscreen renders the VFD4 display buffer on a terminal using ANSI
// color codes.
//
// Useful to develop clock faces without the tube at hand, together with the
// shiftreg package.
package vfdscreen

import (
	"bytes"
	"fmt"
	"image/color"
	"io"

	"github.com/GermanBionicSystems/vfd/vfd4"
	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
)

const (
	rows       = 5
	digitCols  = 4
	colonCols  = 1
	cellMargin = 1
)

// digitMask lists the segment lighting each pixel of a digit cell.
var digitMask = [rows][digitCols]byte{
	{0, vfd4.SegA, vfd4.SegA, 0},
	{vfd4.SegF, 0, 0, vfd4.SegB},
	{0, vfd4.SegG, vfd4.SegG, 0},
	{vfd4.SegE, 0, 0, vfd4.SegC},
	{0, vfd4.SegD, vfd4.SegD, 0},
}

var colonMask = [rows]byte{0, vfd4.DotX, 0, vfd4.DotY, 0}

// Opts represents the options available for this display.
type Opts struct {
	// W is where the output goes. Defaults to a colorable stdout.
	W       io.Writer
	Palette *ansi256.Palette
	// Lit and Unlit are the colors of segments, Background of the space
	// around them. Zero values use a phosphor green look.
	Lit, Unlit, Background color.NRGBA

	_ struct{}
}

// Dev is a VFD4 tube emulator that outputs to the console.
type Dev struct {
	w       io.Writer
	palette ansi256.Palette
	lit     string
	unlit   string
	bg      string

	drawn bool
	buf   bytes.Buffer
}

// New returns a Dev that displays at the console.
func New(opts *Opts) *Dev {
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	w := opts.W
	if w == nil {
		w = colorable.NewColorableStdout()
	}
	lit, unlit, bg := opts.Lit, opts.Unlit, opts.Background
	if lit == (color.NRGBA{}) {
		lit = color.NRGBA{0x40, 0xff, 0xc8, 0xff}
	}
	if unlit == (color.NRGBA{}) {
		unlit = color.NRGBA{0x14, 0x3c, 0x32, 0xff}
	}
	if bg == (color.NRGBA{}) {
		bg = color.NRGBA{0, 0, 0, 0xff}
	}
	d := &Dev{w: w, palette: *p}
	d.lit = d.palette.Block(lit)
	d.unlit = d.palette.Block(unlit)
	d.bg = d.palette.Block(bg)
	return d
}

func (d *Dev) String() string {
	return "VFDScreen"
}

// Halt implements conn.Resource.
//
// It resets the terminal colors and moves below the drawing.
func (d *Dev) Halt() error {
	_, err := d.w.Write([]byte("\033[0m\n"))
	d.drawn = false
	return err
}

// Draw renders the cells as returned by vfd4.Dev.Cells. Subsequent calls
// redraw in place.
func (d *Dev) Draw(cells [vfd4.NumCells]byte) error {
	d.buf.Reset()
	if d.drawn {
		fmt.Fprintf(&d.buf, "\033[%dA", rows)
	}
	for y := 0; y < rows; y++ {
		_, _ = d.buf.WriteString("\r")
		for ix, c := range cells {
			if ix > 0 {
				for i := 0; i < cellMargin; i++ {
					_, _ = d.buf.WriteString(d.bg)
				}
			}
			if ix == vfd4.ColonCell {
				d.pixel(colonMask[y], vfd4.UnmapDot(c))
				continue
			}
			segs := vfd4.UnmapGlyph(c)
			for x := 0; x < digitCols; x++ {
				d.pixel(digitMask[y][x], segs)
			}
		}
		_, _ = d.buf.WriteString("\033[0m\n")
	}
	d.drawn = true
	_, err := d.buf.WriteTo(d.w)
	return err
}

func (d *Dev) pixel(mask, segs byte) {
	switch {
	case mask == 0:
		_, _ = io.WriteString(&d.buf, d.bg)
	case segs&mask != 0:
		_, _ = io.WriteString(&d.buf, d.lit)
	default:
		_, _ = io.WriteString(&d.buf, d.unlit)
	}
}

var _ fmt.Stringer = &Dev{}
