// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package vfd4 drives a 4 digit vacuum fluorescent 7-segment tube with a
// colon, as found in cheap alarm clocks, through three GPIO lines.
//
// The module contains a shift register chain with strobe. Each transfer
// selects one of the five positions (four digits and the colon) and sets its
// segments, so the tube is multiplexed by the host: Refresh must be called
// periodically to keep the text visible.
//
// # Wiring
//
// Positions are numbered from the left: 0 and 1 are the hour digits, 2 is
// the colon and 3 and 4 are the minute digits. The tube is mounted upside
// down relative to the usual MAX7219 segment naming, which RemapGlyph
// accounts for.
//
// # Timing
//
// Every line change is followed by a bit delay of at least 300ns. The
// delays are busy waits; a refresh cycle must not be preempted for long or
// the tube will flicker.
package vfd4

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/host/v3/cpu"
)

const (
	// MinBitDelay is the shortest setup and hold time of the shift register.
	MinBitDelay = 300 * time.Nanosecond
	// MaxIntensity is the highest brightness level.
	MaxIntensity = 7

	settleEdge  = 5000 * time.Microsecond
	settleInner = 2000 * time.Microsecond
)

// Opts holds the configuration of the tube.
type Opts struct {
	// BitDelay is the pause after each line change. Defaults to 1µs.
	BitDelay time.Duration
	// Intensity is the brightness, 0-7. The tube in use has no brightness
	// control, the value is only stored.
	Intensity uint8
	// Logger receives warnings about text that can't be shown. Defaults to
	// the logrus standard logger.
	Logger logrus.FieldLogger
	// Writer is called by Update before every refresh to fill the buffer.
	Writer func(d *Dev)
}

// DefaultOpts is used by New when opts is nil.
var DefaultOpts = Opts{
	BitDelay:  time.Microsecond,
	Intensity: MaxIntensity,
}

// Dev is a handle to a VFD4 tube.
type Dev struct {
	clk, data, stb gpio.PinOut

	bitDelay  time.Duration
	intensity uint8
	on        bool
	writer    func(d *Dev)
	log       logrus.FieldLogger

	buf [NumCells]byte

	// spin waits out a bit delay, sleep the settle time after a position.
	spin  func(time.Duration)
	sleep func(time.Duration)
}

// New returns a Dev driving the clock, data and strobe lines. All three lines
// are pulled low.
func New(clk, data, stb gpio.PinOut, opts *Opts) (*Dev, error) {
	if clk == nil || data == nil || stb == nil {
		return nil, errors.New("vfd4: clock, data and strobe pins are required")
	}
	if opts == nil {
		opts = &DefaultOpts
	}
	bitDelay := opts.BitDelay
	if bitDelay == 0 {
		bitDelay = DefaultOpts.BitDelay
	}
	if bitDelay < MinBitDelay {
		return nil, fmt.Errorf("vfd4: bit delay %s is below the minimum of %s", bitDelay, MinBitDelay)
	}
	if opts.Intensity > MaxIntensity {
		return nil, fmt.Errorf("vfd4: invalid intensity %d", opts.Intensity)
	}
	l := opts.Logger
	if l == nil {
		l = logrus.StandardLogger().WithField("device", "vfd4")
	}
	d := &Dev{
		clk:       clk,
		data:      data,
		stb:       stb,
		bitDelay:  bitDelay,
		intensity: opts.Intensity,
		on:        true,
		writer:    opts.Writer,
		log:       l,
		spin:      cpu.Nanospin,
		sleep:     time.Sleep,
	}
	for _, p := range []gpio.PinOut{clk, data, stb} {
		if err := p.Out(gpio.Low); err != nil {
			return nil, fmt.Errorf("vfd4: %w", err)
		}
	}
	d.log.Debugf("CLK: %s, DATA: %s, STB: %s, intensity: %d, bit delay: %s", clk, data, stb, d.intensity, d.bitDelay)
	return d, nil
}

func (d *Dev) String() string {
	return "VFD4"
}

// Halt implements conn.Resource.
//
// It blanks the tube and leaves all lines low.
func (d *Dev) Halt() error {
	for i := 0; i < NumCells; i++ {
		if err := d.drivePosition(i, 0); err != nil {
			return fmt.Errorf("vfd4: %w", err)
		}
	}
	for _, p := range []gpio.PinOut{d.clk, d.data, d.stb} {
		if err := p.Out(gpio.Low); err != nil {
			return fmt.Errorf("vfd4: %w", err)
		}
	}
	return nil
}

// SetWriter replaces the callback run by Update.
func (d *Dev) SetWriter(w func(d *Dev)) {
	d.writer = w
}

// SetIntensity stores the brightness level, 0-7.
//
// The tube has no brightness command, so this has no visible effect.
func (d *Dev) SetIntensity(intensity uint8) error {
	if intensity > MaxIntensity {
		return fmt.Errorf("vfd4: invalid intensity %d", intensity)
	}
	d.intensity = intensity
	return nil
}

// Intensity returns the stored brightness level.
func (d *Dev) Intensity() uint8 {
	return d.intensity
}

// SetOn turns the tube on or off. While off, Refresh sends blank frames and
// the buffer is kept.
func (d *Dev) SetOn(on bool) {
	d.on = on
}

// On reports whether the tube is on.
func (d *Dev) On() bool {
	return d.on
}

// Cells returns a copy of the display buffer.
func (d *Dev) Cells() [NumCells]byte {
	return d.buf
}

// Clear blanks the display buffer. It is not sent until the next Refresh.
func (d *Dev) Clear() {
	d.buf = [NumCells]byte{}
}

// Print writes s starting at the leftmost position. See PrintAt.
func (d *Dev) Print(s string) int {
	return d.PrintAt(0, s)
}

// PrintAt writes s into the buffer starting at pos and returns the number of
// positions used.
//
// Position 2 is always the colon, whatever character lands there. A '1'
// following a cell that only shows the middle segment is folded into that
// cell, so "-1" uses a single position. This also applies when the previous
// cell is the colon showing a single dot. Characters that can't be shown are
// left blank and logged. Text that doesn't fit is cut and logged.
func (d *Dev) PrintAt(pos int, s string) int {
	if pos < 0 {
		d.log.Errorf("invalid position %d", pos)
		return 0
	}
	cur := pos
	for _, r := range s {
		if cur >= NumCells {
			d.log.Errorf("string %q is too long for the display", s)
			break
		}
		if cur == ColonCell {
			v, ok := dotFor(r)
			if !ok {
				d.log.Warnf("character %q has no representation on the colon", r)
			}
			d.buf[cur] = RemapDot(v)
			cur++
			continue
		}
		v, ok := glyphFor(r)
		if !ok {
			d.log.Warnf("character %q has no representation", r)
		}
		v = RemapGlyph(v)
		if r == '1' && cur > 0 && d.buf[cur-1] == 0b00000001 {
			d.buf[cur-1] = v | 0b00000001
			continue
		}
		d.buf[cur] = v
		cur++
	}
	return cur - pos
}

func glyphFor(r rune) (byte, bool) {
	if r < firstChar || r > lastChar {
		return Unknown, false
	}
	return Glyph(byte(r))
}

func dotFor(r rune) (byte, bool) {
	if r < firstChar || r > lastChar {
		return Unknown, false
	}
	return Dot(byte(r))
}

// Update runs the writer, if any, and refreshes the tube.
func (d *Dev) Update() error {
	if d.writer != nil {
		d.writer(d)
	}
	return d.Refresh()
}

// Refresh sends the whole buffer to the tube, one position at a time, and
// then deselects all positions.
//
// It blocks for about 16ms.
func (d *Dev) Refresh() error {
	for i := 0; i < NumCells; i++ {
		bits := d.buf[i]
		if !d.on {
			bits = 0
		}
		if err := d.drivePosition(i, bits); err != nil {
			return fmt.Errorf("vfd4: %w", err)
		}
		if i == 0 || i == NumCells-1 {
			d.sleep(settleEdge)
		} else {
			d.sleep(settleInner)
		}
	}
	if err := d.drivePosition(blankPosition, 0); err != nil {
		return fmt.Errorf("vfd4: %w", err)
	}
	return nil
}

// drivePosition shifts one frame into the chain and latches it.
func (d *Dev) drivePosition(pos int, bits byte) error {
	if err := d.stb.Out(gpio.Low); err != nil {
		return err
	}
	for _, l := range EncodeFrame(pos, bits) {
		if err := d.shiftOut(l); err != nil {
			return err
		}
	}
	if err := d.stb.Out(gpio.High); err != nil {
		return err
	}
	d.spin(d.bitDelay)
	return d.stb.Out(gpio.Low)
}

func (d *Dev) shiftOut(l gpio.Level) error {
	if err := d.data.Out(l); err != nil {
		return err
	}
	d.spin(d.bitDelay)
	if err := d.clk.Out(gpio.High); err != nil {
		return err
	}
	d.spin(d.bitDelay)
	if err := d.clk.Out(gpio.Low); err != nil {
		return err
	}
	d.spin(d.bitDelay)
	return nil
}

var _ conn.Resource = &Dev{}
var _ fmt.Stringer = &Dev{}
