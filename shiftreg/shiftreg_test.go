// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package shiftreg

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"periph.io/x/conn/v3/gpio"
)

func clockIn(t *testing.T, dev *Dev, bits ...gpio.Level) {
	t.Helper()
	for _, b := range bits {
		if err := dev.Data.Out(b); err != nil {
			t.Fatal(err)
		}
		_ = dev.Clock.Out(gpio.High)
		_ = dev.Clock.Out(gpio.Low)
	}
}

func latch(dev *Dev) {
	_ = dev.Strobe.Out(gpio.High)
	_ = dev.Strobe.Out(gpio.Low)
}

func TestNew(t *testing.T) {
	if _, err := New(0); err == nil {
		t.Error("expected error for empty chain")
	}
	dev, err := New(4)
	if err != nil {
		t.Fatal(err)
	}
	if s := dev.String(); s != "ShiftReg{4}" {
		t.Errorf("unexpected name %q", s)
	}
	if n := dev.Strobe.Name(); n != "ShiftReg_STB" {
		t.Errorf("unexpected pin name %q", n)
	}
	if n := dev.Data.Number(); n != 1 {
		t.Errorf("unexpected pin number %d", n)
	}
}

func TestLatch(t *testing.T) {
	dev, _ := New(4)
	var seen [][]gpio.Level
	dev.OnLatch(func(bits []gpio.Level) {
		seen = append(seen, bits)
	})

	// Only the last 4 bits survive.
	clockIn(t, dev, gpio.High, gpio.High, gpio.Low, gpio.High, gpio.Low, gpio.Low)
	latch(dev)
	// Short transfers are padded with low bits at the front.
	dev.Reset()
	clockIn(t, dev, gpio.High)
	latch(dev)

	want := [][]gpio.Level{
		{gpio.Low, gpio.High, gpio.Low, gpio.Low},
		{gpio.Low, gpio.Low, gpio.Low, gpio.High},
	}
	if diff := cmp.Diff(want, seen); diff != "" {
		t.Errorf("latched frames mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want[1:], dev.Frames()); diff != "" {
		t.Errorf("recorded frames mismatch (-want +got):\n%s", diff)
	}
	if c := dev.Clocks(); c != 1 {
		t.Errorf("expected 1 clock since reset, got %d", c)
	}
}

func TestEdges(t *testing.T) {
	dev, _ := New(2)
	// Holding clock high or changing data without a clock shifts nothing.
	_ = dev.Clock.Out(gpio.High)
	_ = dev.Data.Out(gpio.High)
	_ = dev.Clock.Out(gpio.High)
	_ = dev.Data.Out(gpio.Low)
	if c := dev.Clocks(); c != 1 {
		t.Errorf("expected 1 clock, got %d", c)
	}
	// Strobe held high latches once.
	_ = dev.Strobe.Out(gpio.High)
	_ = dev.Strobe.Out(gpio.High)
	if n := len(dev.Frames()); n != 1 {
		t.Errorf("expected 1 frame, got %d", n)
	}
	if err := dev.Data.PWM(gpio.DutyHalf, 0); err != ErrNotImplemented {
		t.Errorf("expected ErrNotImplemented, got %v", err)
	}
	if err := dev.Halt(); err != nil {
		t.Error(err)
	}
	if n := len(dev.Frames()); n != 0 {
		t.Errorf("expected no frames after Halt, got %d", n)
	}
}
