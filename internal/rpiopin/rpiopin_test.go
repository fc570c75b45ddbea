// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package rpiopin

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stianeikeland/go-rpio"
	"periph.io/x/conn/v3/gpio"
)

func TestByName(t *testing.T) {
	for _, name := range []string{"GPIO17", "gpio17", "17"} {
		p, err := ByName(name)
		if err != nil {
			t.Fatal(err)
		}
		if p.Number() != 17 || p.Name() != "GPIO17" {
			t.Fatalf("%s: got %s", name, p)
		}
	}
	for _, name := range []string{"", "GPIO", "SPI0", "54", "-1"} {
		if _, err := ByName(name); err == nil {
			t.Fatalf("%q: expected error", name)
		}
	}
}

func TestOut(t *testing.T) {
	type write struct {
		pin   rpio.Pin
		state rpio.State
	}
	var modes []rpio.Pin
	var writes []write
	oldMode, oldWrite := pinMode, writePin
	defer func() { pinMode, writePin = oldMode, oldWrite }()
	pinMode = func(pin rpio.Pin, mode rpio.Mode) {
		if mode != rpio.Output {
			t.Fatalf("unexpected mode %d", mode)
		}
		modes = append(modes, pin)
	}
	writePin = func(pin rpio.Pin, state rpio.State) {
		writes = append(writes, write{pin, state})
	}

	p, err := ByName("GPIO22")
	if err != nil {
		t.Fatal(err)
	}
	if p.Function() != "In" {
		t.Fatal(p.Function())
	}
	for _, l := range []gpio.Level{gpio.High, gpio.Low, gpio.High} {
		if err := p.Out(l); err != nil {
			t.Fatal(err)
		}
	}
	if diff := cmp.Diff([]rpio.Pin{22}, modes); diff != "" {
		t.Fatalf("modes (-want +got):\n%s", diff)
	}
	want := []write{{22, rpio.High}, {22, rpio.Low}, {22, rpio.High}}
	if diff := cmp.Diff(want, writes, cmp.AllowUnexported(write{})); diff != "" {
		t.Fatalf("writes (-want +got):\n%s", diff)
	}
	if p.Function() != "Out" {
		t.Fatal(p.Function())
	}
	if p.PWM(gpio.DutyHalf, 0) != ErrNotImplemented {
		t.Fatal("expected ErrNotImplemented")
	}
}
