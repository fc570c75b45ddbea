// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package vfd4

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3/gpio"
)

const (
	// NumCells is the number of positions on the tube.
	NumCells = 5
	// ColonCell is the position of the colon. It only has two dots.
	ColonCell = 2

	// selectBits is the number of digit select lines in a frame.
	selectBits = NumCells
	// dataBits is the number of segment lines in a frame, X and Y included.
	dataBits = 9

	// FrameBits is the number of bits clocked into the chain per position.
	FrameBits = selectBits + dataBits

	// blankPosition selects no digit at all.
	blankPosition = 6
)

// Frame is one latched transfer to the tube.
type Frame struct {
	// Position is the selected cell, or -1 when no cell is selected.
	Position int
	// Bits is the segment pattern for the cell, in buffer layout.
	Bits byte
}

// EncodeFrame returns the levels shifted out for a position, in the order
// they are clocked into the chain.
func EncodeFrame(pos int, bits byte) []gpio.Level {
	f := make([]gpio.Level, 0, FrameBits)
	for i := 0; i < selectBits; i++ {
		f = append(f, gpio.Level(pos == i))
	}
	if pos == ColonCell {
		for i := 0; i < 2; i++ {
			f = append(f, bits&(1<<i) != 0)
		}
		for i := 0; i < 7; i++ {
			f = append(f, gpio.Low)
		}
	} else {
		// X and Y are not connected on digit cells.
		f = append(f, gpio.Low, gpio.Low)
		for i := 0; i < 7; i++ {
			f = append(f, bits&(1<<i) != 0)
		}
	}
	return f
}

// DecodeFrame is the inverse of EncodeFrame. It is used to interpret what a
// shift register chain latched.
func DecodeFrame(levels []gpio.Level) (Frame, error) {
	if len(levels) != FrameBits {
		return Frame{}, fmt.Errorf("vfd4: frame has %d bits, expected %d", len(levels), FrameBits)
	}
	fr := Frame{Position: -1}
	for i := 0; i < selectBits; i++ {
		if !levels[i] {
			continue
		}
		if fr.Position != -1 {
			return Frame{}, errors.New("vfd4: more than one position selected")
		}
		fr.Position = i
	}
	data := levels[selectBits:]
	if fr.Position == ColonCell {
		for i := 0; i < 2; i++ {
			if data[i] {
				fr.Bits |= 1 << i
			}
		}
		return fr, nil
	}
	for i := 0; i < 7; i++ {
		if data[2+i] {
			fr.Bits |= 1 << i
		}
	}
	return fr, nil
}
