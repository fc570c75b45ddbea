// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package preview

import (
	"mime"
	"net/http"
	"net/textproto"
	"net/url"

	"github.com/sirupsen/logrus"
)

type client struct {
	refresh   chan struct{}
	terminate chan struct{}
}

func (s *Sink) formatFromQuery(values url.Values) (ImageFormat, error) {
	if value := values.Get("format"); value != "" {
		return ImageFormatFromString(value)
	}
	return s.defaultFormat, nil
}

func (s *Sink) imageChangedLocked() {
	for f := range s.snapshot {
		delete(s.snapshot, f)
	}
	for c := range s.clients {
		select {
		case c.refresh <- struct{}{}:
		default:
		}
	}
}

func (s *Sink) terminateClientsLocked() {
	for c := range s.clients {
		select {
		case c.terminate <- struct{}{}:
		default:
		}
	}
}

// encoded returns the current image in format f. Encodings are cached until
// the next change.
func (s *Sink) encoded(f ImageFormat) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b, ok := s.snapshot[f]; ok {
		return b, nil
	}
	b, err := encode(s.img, f)
	if err != nil {
		return nil, err
	}
	s.snapshot[f] = b
	return b, nil
}

// ServeSnapshot responds with the current image. Clients can pick the format
// with "?format=png" or "?format=jpeg".
func (s *Sink) ServeSnapshot(w http.ResponseWriter, r *http.Request) {
	f, err := s.formatFromQuery(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	b, err := s.encoded(f)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", f.mimeType())
	w.Header().Set("Cache-Control", "no-store")
	if _, err := w.Write(b); err != nil {
		logrus.Debugf("preview: writing snapshot failed: %v", err)
	}
}

// ServeHTTP handles HTTP GET requests with a stream of images, one per change
// of the cells. The format is picked like in ServeSnapshot.
func (s *Sink) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "", http.StatusMethodNotAllowed)
		return
	}
	f, err := s.formatFromQuery(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	pw := newPartWriter(w)
	w.Header().Set("Content-Type",
		mime.FormatMediaType("multipart/x-mixed-replace", map[string]string{
			"boundary": pw.boundary,
		}))

	c := &client{
		refresh:   make(chan struct{}, 1),
		terminate: make(chan struct{}, 1),
	}
	s.mu.Lock()
	s.clients[c] = struct{}{}
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		delete(s.clients, c)
		s.mu.Unlock()
	}()

	header := make(textproto.MIMEHeader)
	header.Set("Content-Type", f.mimeType())
	header.Set("Content-Transfer-Encoding", "binary")

	for {
		b, err := s.encoded(f)
		if err != nil {
			logrus.Errorf("preview: %v", err)
			return
		}
		// Write errors mean the client went away.
		if err := pw.writePart(header, b); err != nil {
			return
		}
		if flusher, ok := w.(http.Flusher); ok {
			flusher.Flush()
		}
		select {
		case <-c.refresh:
		case <-c.terminate:
			return
		case <-r.Context().Done():
			return
		}
	}
}

var _ http.Handler = (*Sink)(nil)
