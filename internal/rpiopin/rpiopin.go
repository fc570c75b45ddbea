// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package rpiopin adapts go-rpio pins to gpio.PinOut, for boards where the
// periph host drivers are not an option. It talks to /dev/gpiomem directly.
package rpiopin

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/stianeikeland/go-rpio"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

const maxPin = 53

var (
	ErrNotImplemented = errors.New("rpiopin: not implemented")

	// Replaced in tests.
	pinMode  = rpio.PinMode
	writePin = rpio.WritePin
)

// Open maps the GPIO registers. It must be called before any Out.
func Open() error {
	return rpio.Open()
}

// Close unmaps the GPIO registers.
func Close() error {
	return rpio.Close()
}

// Pin is a BCM numbered GPIO.
type Pin struct {
	num int

	mu     sync.Mutex
	output bool
}

// ByName returns the pin named "GPIO17" or "17".
func ByName(name string) (*Pin, error) {
	s := strings.TrimPrefix(strings.ToUpper(name), "GPIO")
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("rpiopin: invalid pin %q", name)
	}
	if n < 0 || n > maxPin {
		return nil, fmt.Errorf("rpiopin: pin %d out of range", n)
	}
	return &Pin{num: n}, nil
}

func (p *Pin) String() string {
	return p.Name()
}

// Halt implements conn.Resource.
func (p *Pin) Halt() error {
	return nil
}

// Name returns the BCM name of the pin.
func (p *Pin) Name() string {
	return fmt.Sprintf("GPIO%d", p.num)
}

// Number returns the BCM number.
func (p *Pin) Number() int {
	return p.num
}

// Deprecated: returns "Out" once the pin was driven.
func (p *Pin) Function() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.output {
		return "Out"
	}
	return "In"
}

// Out sets the pin as output on first use and drives it.
func (p *Pin) Out(l gpio.Level) error {
	p.mu.Lock()
	if !p.output {
		pinMode(rpio.Pin(p.num), rpio.Output)
		p.output = true
	}
	p.mu.Unlock()
	if l {
		writePin(rpio.Pin(p.num), rpio.High)
	} else {
		writePin(rpio.Pin(p.num), rpio.Low)
	}
	return nil
}

// PWM is not supported.
func (p *Pin) PWM(duty gpio.Duty, f physic.Frequency) error {
	return ErrNotImplemented
}

var _ gpio.PinOut = &Pin{}
