// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package shiftreg

import (
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

// Pin is one input of the chain.
type Pin struct {
	dev  *Dev
	l    line
	name string
}

// Halt implements conn.Resource.
func (pin *Pin) Halt() error {
	return nil
}

// Name returns the name of the input.
func (pin *Pin) Name() string {
	return pin.name
}

// Number returns the index of the input: 0 clock, 1 data, 2 strobe.
func (pin *Pin) Number() int {
	return int(pin.l)
}

// Deprecated: returns "Out"
func (pin *Pin) Function() string {
	return "Out"
}

// Out sets the level of the input.
func (pin *Pin) Out(l gpio.Level) error {
	pin.dev.set(pin.l, l)
	return nil
}

// PWM is not supported.
func (pin *Pin) PWM(duty gpio.Duty, f physic.Frequency) error {
	return ErrNotImplemented
}

func (pin *Pin) String() string {
	return pin.name
}

var _ gpio.PinOut = &Pin{}
