// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package content decides what the tube shows: a clock rendered from a
// strftime layout, or static text set at runtime.
package content

import (
	"fmt"
	"sync"
	"time"

	"github.com/GermanBionicSystems/vfd/vfd4"
	"github.com/jonboulle/clockwork"
)

// Observer is notified when the cells written to the tube change.
type Observer func(cells [vfd4.NumCells]byte) error

// State is a snapshot of a Source.
type State struct {
	Format   string              `json:"format"`
	Text     string              `json:"text,omitempty"`
	Position int                 `json:"position"`
	On       bool                `json:"on"`
	Cells    [vfd4.NumCells]byte `json:"cells"`
	Updated  time.Time           `json:"updated"`
}

// Source is safe for concurrent use. Its Write method is meant to be passed
// to vfd4.Opts.Writer.
type Source struct {
	clock clockwork.Clock

	mu        sync.Mutex
	format    string
	text      string
	pos       int
	on        bool
	cells     [vfd4.NumCells]byte
	updated   time.Time
	observers []Observer
	onError   func(err error)
}

// New returns a Source showing the time in format.
func New(clock clockwork.Clock, format string, on bool) *Source {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Source{clock: clock, format: format, on: on}
}

// Observe registers o. f is called from Write, after the tube buffer is
// filled and only when it differs from the previous one.
func (s *Source) Observe(o Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, o)
}

// OnError registers f to receive errors returned by observers.
func (s *Source) OnError(f func(err error)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onError = f
}

// SetText shows text at pos instead of the clock.
func (s *Source) SetText(text string, pos int) error {
	if pos < 0 || pos >= vfd4.NumCells {
		return fmt.Errorf("content: invalid position %d", pos)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.text = text
	s.pos = pos
	return nil
}

// ClearText goes back to showing the clock.
func (s *Source) ClearText() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.text = ""
	s.pos = 0
}

// SetFormat changes the strftime layout of the clock.
func (s *Source) SetFormat(format string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.format = format
}

// SetOn turns the tube on or off on the next Write.
func (s *Source) SetOn(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.on = on
}

// State returns a snapshot of the source.
func (s *Source) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{
		Format:   s.format,
		Text:     s.text,
		Position: s.pos,
		On:       s.on,
		Cells:    s.cells,
		Updated:  s.updated,
	}
}

// Write fills the buffer of d with the current content.
func (s *Source) Write(d *vfd4.Dev) {
	s.mu.Lock()
	d.Clear()
	if s.text != "" {
		d.PrintAt(s.pos, s.text)
	} else {
		d.Strftime(s.pos, s.format, s.clock.Now())
	}
	d.SetOn(s.on)
	cells := d.Cells()
	if !s.on {
		cells = [vfd4.NumCells]byte{}
	}
	changed := cells != s.cells || s.updated.IsZero()
	s.cells = cells
	s.updated = s.clock.Now()
	var observers []Observer
	if changed {
		observers = append(observers, s.observers...)
	}
	onError := s.onError
	s.mu.Unlock()

	for _, o := range observers {
		if err := o(cells); err != nil && onError != nil {
			onError(err)
		}
	}
}
