// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/GermanBionicSystems/vfd/shiftreg"
	"github.com/GermanBionicSystems/vfd/vfd4"
	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus/hooks/test"
	"periph.io/x/conn/v3/gpio"
)

func TestEncode(t *testing.T) {
	cells, err := encode("12:34")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([vfd4.NumCells]byte{0x06, 0x6d, 0x03, 0x4f, 0x17}, cells); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestListGlyphs(t *testing.T) {
	var buf bytes.Buffer
	if err := listGlyphs(&buf); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 1+95 {
		t.Fatalf("got %d lines", len(lines))
	}
	want := []string{`'0'`, "01111110", "01111110", "-", "-"}
	if diff := cmp.Diff(want, strings.Fields(lines[1+'0'-' '])); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
	want = []string{`'-'`, "00000001", "00000001", "10", "01"}
	if diff := cmp.Diff(want, strings.Fields(lines[1+'-'-' '])); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestMirror(t *testing.T) {
	chain, err := shiftreg.New(vfd4.FrameBits)
	if err != nil {
		t.Fatal(err)
	}
	var drawn [][vfd4.NumCells]byte
	m := &mirror{draw: func(cells [vfd4.NumCells]byte) error {
		drawn = append(drawn, cells)
		return nil
	}}
	chain.OnLatch(func(bits []gpio.Level) { m.latch(chain, bits) })
	l, _ := test.NewNullLogger()
	d, err := vfd4.New(chain.Clock, chain.Data, chain.Strobe, &vfd4.Opts{Logger: l})
	if err != nil {
		t.Fatal(err)
	}

	d.Print("12:34")
	for i := 0; i < 2; i++ {
		if err := d.Refresh(); err != nil {
			t.Fatal(err)
		}
	}
	d.SetOn(false)
	if err := d.Refresh(); err != nil {
		t.Fatal(err)
	}
	want := [][vfd4.NumCells]byte{{0x06, 0x6d, 0x03, 0x4f, 0x17}, {}}
	if diff := cmp.Diff(want, drawn); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
	if n := len(chain.Frames()); n != 0 {
		t.Fatalf("chain not reset, %d frames", n)
	}
}
