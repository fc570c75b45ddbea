// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package preview renders the VFD4 display buffer as an image and serves it
// over HTTP.
//
// Clients of Sink.ServeHTTP get a "multipart/x-mixed-replace" stream (as used
// by IP cameras) that receives a new image every time the cells change, so a
// browser tab mirrors the tube. Sink.ServeSnapshot returns a single image.
package preview

import (
	"image"
	"sync"

	"github.com/GermanBionicSystems/vfd/vfd4"
)

// Options for Sink.
type Options struct {
	// Format is the image format sent when the client doesn't ask for one.
	Format ImageFormat
	// Render controls how the cells are drawn.
	Render RenderOpts
}

// Sink keeps the latest rendering of the tube for HTTP clients.
type Sink struct {
	defaultFormat ImageFormat
	render        RenderOpts

	// updateMu serializes Update so the last caller's cells win.
	updateMu sync.Mutex

	mu       sync.Mutex
	cells    [vfd4.NumCells]byte
	img      image.Image
	clients  map[*client]struct{}
	snapshot map[ImageFormat][]byte
}

// New returns a Sink showing a blank tube.
func New(opt *Options) (*Sink, error) {
	if opt == nil {
		opt = &Options{}
	}
	img, err := Render([vfd4.NumCells]byte{}, &opt.Render)
	if err != nil {
		return nil, err
	}
	return &Sink{
		defaultFormat: opt.Format,
		render:        opt.Render,
		img:           img,
		clients:       map[*client]struct{}{},
		snapshot:      map[ImageFormat][]byte{},
	}, nil
}

func (s *Sink) String() string {
	return "Preview"
}

// Halt implements conn.Resource and terminates all running client requests
// asynchronously.
func (s *Sink) Halt() error {
	s.mu.Lock()
	s.terminateClientsLocked()
	s.mu.Unlock()
	return nil
}

// Cells returns the cells last passed to Update.
func (s *Sink) Cells() [vfd4.NumCells]byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cells
}

// Update renders cells and notifies streaming clients. Unchanged cells are
// not rendered again. Concurrent calls are applied one at a time.
func (s *Sink) Update(cells [vfd4.NumCells]byte) error {
	s.updateMu.Lock()
	defer s.updateMu.Unlock()
	s.mu.Lock()
	same := cells == s.cells
	s.mu.Unlock()
	if same {
		return nil
	}
	img, err := Render(cells, &s.render)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.cells = cells
	s.img = img
	s.imageChangedLocked()
	s.mu.Unlock()
	return nil
}
