// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package vfd4

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"periph.io/x/conn/v3/gpio"
)

const (
	H = gpio.High
	L = gpio.Low
)

func TestEncodeFrame(t *testing.T) {
	var tests = []struct {
		pos  int
		bits byte
		want []gpio.Level
	}{
		// select 0..4, X, Y, then segment bits 0..6
		{pos: 0, bits: 0x7f, want: []gpio.Level{H, L, L, L, L, L, L, H, H, H, H, H, H, H}},
		{pos: 4, bits: 0x06, want: []gpio.Level{L, L, L, L, H, L, L, L, H, H, L, L, L, L}},
		// colon: bit 0, bit 1, then 7 unused lines
		{pos: 2, bits: 0x01, want: []gpio.Level{L, L, H, L, L, H, L, L, L, L, L, L, L, L}},
		{pos: 2, bits: 0xff, want: []gpio.Level{L, L, H, L, L, H, H, L, L, L, L, L, L, L}},
		{pos: 6, bits: 0x00, want: []gpio.Level{L, L, L, L, L, L, L, L, L, L, L, L, L, L}},
	}
	for _, test := range tests {
		got := EncodeFrame(test.pos, test.bits)
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("EncodeFrame(%d, 0x%x) mismatch (-want +got):\n%s", test.pos, test.bits, diff)
		}
	}
}

func TestFrameLength(t *testing.T) {
	for pos := 0; pos <= blankPosition; pos++ {
		for _, bits := range []byte{0x00, 0x55, 0xff} {
			if n := len(EncodeFrame(pos, bits)); n != FrameBits {
				t.Errorf("EncodeFrame(%d, 0x%x) has %d bits", pos, bits, n)
			}
		}
	}
}

func TestDecodeFrame(t *testing.T) {
	for pos := 0; pos < NumCells; pos++ {
		bits := byte(0x5a)
		want := bits & 0x7f
		if pos == ColonCell {
			want = bits & 0x03
		}
		fr, err := DecodeFrame(EncodeFrame(pos, bits))
		if err != nil {
			t.Fatal(err)
		}
		if fr.Position != pos || fr.Bits != want {
			t.Errorf("DecodeFrame(EncodeFrame(%d, 0x%x))=%+v", pos, bits, fr)
		}
	}
	if fr, err := DecodeFrame(EncodeFrame(blankPosition, 0)); err != nil || fr.Position != -1 {
		t.Errorf("blank frame decoded as %+v, %v", fr, err)
	}
	if _, err := DecodeFrame([]gpio.Level{H}); err == nil {
		t.Error("expected error for short frame")
	}
	bad := EncodeFrame(0, 0)
	bad[1] = H
	if _, err := DecodeFrame(bad); err == nil {
		t.Error("expected error for two selected positions")
	}
}
