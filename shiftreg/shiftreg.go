// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package shiftreg simulates a serial-in, parallel-out shift register chain
// with a strobe (latch) input, like a chain of 74HC595 or the driver inside a
// VFD module.
//
// The chain exposes its three inputs as gpio.PinOut, so a bit-banging driver
// can be pointed at it instead of real hardware. Data is sampled on the
// rising edge of Clock and the last N bits are latched on the rising edge of
// Strobe.
package shiftreg

import (
	"errors"
	"fmt"
	"sync"

	"periph.io/x/conn/v3/gpio"
)

const devName = "ShiftReg"

type line int

const (
	lineClock line = iota
	lineData
	lineStrobe
	numLines
)

var lineNames = [numLines]string{"CLK", "DATA", "STB"}

var (
	ErrNotImplemented = errors.New("shiftreg: not implemented")
)

// Dev is a simulated register chain.
type Dev struct {
	Clock, Data, Strobe gpio.PinOut

	mu      sync.Mutex
	length  int
	levels  [numLines]gpio.Level
	shift   []gpio.Level
	clocks  int
	frames  [][]gpio.Level
	onLatch func(bits []gpio.Level)
}

// New returns a chain holding length bits.
func New(length int) (*Dev, error) {
	if length <= 0 {
		return nil, errors.New("shiftreg: invalid chain length")
	}
	dev := &Dev{length: length}
	pins := make([]*Pin, numLines)
	for ix := range pins {
		pins[ix] = &Pin{dev: dev, l: line(ix), name: fmt.Sprintf("%s_%s", devName, lineNames[ix])}
	}
	dev.Clock = pins[lineClock]
	dev.Data = pins[lineData]
	dev.Strobe = pins[lineStrobe]
	return dev, nil
}

// OnLatch registers f to be called with the latched bits on every strobe.
// The oldest bit comes first. f is called without the chain's lock held.
func (dev *Dev) OnLatch(f func(bits []gpio.Level)) {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	dev.onLatch = f
}

// Frames returns every latched frame since the last Reset.
func (dev *Dev) Frames() [][]gpio.Level {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	out := make([][]gpio.Level, len(dev.frames))
	copy(out, dev.frames)
	return out
}

// Clocks returns the number of rising clock edges since the last Reset.
func (dev *Dev) Clocks() int {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	return dev.clocks
}

// Reset empties the chain and forgets recorded frames.
func (dev *Dev) Reset() {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	dev.shift = nil
	dev.frames = nil
	dev.clocks = 0
}

// Halt implements conn.Resource.
func (dev *Dev) Halt() error {
	dev.Reset()
	return nil
}

func (dev *Dev) String() string {
	return fmt.Sprintf("%s{%d}", devName, dev.length)
}

// set records a level change on one of the inputs.
func (dev *Dev) set(l line, v gpio.Level) {
	dev.mu.Lock()
	rising := !dev.levels[l] && v
	dev.levels[l] = v
	var latched []gpio.Level
	if rising {
		switch l {
		case lineClock:
			dev.clocks++
			dev.shift = append(dev.shift, dev.levels[lineData])
			if n := len(dev.shift); n > dev.length {
				dev.shift = dev.shift[n-dev.length:]
			}
		case lineStrobe:
			latched = make([]gpio.Level, dev.length)
			copy(latched[dev.length-len(dev.shift):], dev.shift)
			dev.frames = append(dev.frames, latched)
		}
	}
	cb := dev.onLatch
	dev.mu.Unlock()
	if latched != nil && cb != nil {
		cb(latched)
	}
}
