// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/GermanBionicSystems/vfd/preview"
	"github.com/GermanBionicSystems/vfd/shiftreg"
	"github.com/GermanBionicSystems/vfd/vfd4"
	log "github.com/sirupsen/logrus"
)

// encode returns the cells text would occupy on the tube.
func encode(text string) ([vfd4.NumCells]byte, error) {
	chain, err := shiftreg.New(vfd4.FrameBits)
	if err != nil {
		return [vfd4.NumCells]byte{}, err
	}
	d, err := vfd4.New(chain.Clock, chain.Data, chain.Strobe, &vfd4.Opts{Logger: log.WithField("device", "vfd4")})
	if err != nil {
		return [vfd4.NumCells]byte{}, err
	}
	d.Print(text)
	return d.Cells(), nil
}

func snapshot(text, path string, scale float64) error {
	cells, err := encode(text)
	if err != nil {
		return err
	}
	if err := preview.SavePNG(path, cells, &preview.RenderOpts{Scale: scale, Caption: text}); err != nil {
		return err
	}
	log.Infof("wrote %s", path)
	return nil
}

// listGlyphs writes one line per printable character with its patterns
// before and after remapping.
func listGlyphs(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "CHAR\tGLYPH\tWIRED\tDOTS\tWIRED")
	for c := byte(' '); c <= '~'; c++ {
		g, gok := vfd4.Glyph(c)
		dt, dok := vfd4.Dot(c)
		fmt.Fprintf(tw, "%q\t%s\t%s\t%s\t%s\n", c,
			pattern(g, gok, 8), pattern(vfd4.RemapGlyph(g), gok, 8),
			pattern(dt, dok, 2), pattern(vfd4.RemapDot(dt), dok, 2))
	}
	return tw.Flush()
}

func pattern(b byte, found bool, width int) string {
	if !found {
		return "-"
	}
	return fmt.Sprintf("%0*b", width, b)
}
