// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package httpapi exposes the tube content and a live preview over HTTP.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/GermanBionicSystems/vfd/internal/content"
	"github.com/GermanBionicSystems/vfd/preview"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// Server serves the API. Preview may be nil, in which case the preview
// routes are not registered.
type Server struct {
	Source  *content.Source
	Preview *preview.Sink
	Log     logrus.FieldLogger

	srv *http.Server
}

type textRequest struct {
	Text     string `json:"text"`
	Position int    `json:"position"`
}

type formatRequest struct {
	Format string `json:"format"`
}

type powerRequest struct {
	On *bool `json:"on"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Router returns the routes of the API.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.logRequests)
	r.HandleFunc("/api/status", s.apiStatus).Methods(http.MethodGet)
	r.HandleFunc("/api/text", s.apiSetText).Methods(http.MethodPut)
	r.HandleFunc("/api/text", s.apiClearText).Methods(http.MethodDelete)
	r.HandleFunc("/api/format", s.apiSetFormat).Methods(http.MethodPut)
	r.HandleFunc("/api/power", s.apiPower).Methods(http.MethodPut)
	if s.Preview != nil {
		r.HandleFunc("/preview.png", s.Preview.ServeSnapshot).Methods(http.MethodGet)
		r.Handle("/preview", s.Preview).Methods(http.MethodGet)
	}
	return r
}

// Start listens on addr in the background.
func (s *Server) Start(addr string) {
	s.srv = &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		s.log().Infof("serving on %s", addr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log().WithError(err).Error("http server failed")
		}
	}()
}

// Shutdown stops the server started by Start.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	if s.Preview != nil {
		// Streaming clients would otherwise hold Shutdown until ctx expires.
		_ = s.Preview.Halt()
	}
	return s.srv.Shutdown(ctx)
}

func (s *Server) log() logrus.FieldLogger {
	if s.Log == nil {
		return logrus.StandardLogger()
	}
	return s.Log
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.log().WithFields(logrus.Fields{"method": r.Method, "path": r.URL.Path, "remote": r.RemoteAddr}).Debug("request")
		next.ServeHTTP(w, r)
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log().WithError(err).Warn("writing response")
	}
}

func (s *Server) badRequest(w http.ResponseWriter, err error) {
	s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
}

func (s *Server) apiStatus(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.Source.State())
}

func (s *Server) apiSetText(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.badRequest(w, err)
		return
	}
	if err := s.Source.SetText(req.Text, req.Position); err != nil {
		s.badRequest(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, s.Source.State())
}

func (s *Server) apiClearText(w http.ResponseWriter, r *http.Request) {
	s.Source.ClearText()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) apiSetFormat(w http.ResponseWriter, r *http.Request) {
	var req formatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.badRequest(w, err)
		return
	}
	if req.Format == "" {
		s.badRequest(w, errors.New("format is required"))
		return
	}
	s.Source.SetFormat(req.Format)
	s.writeJSON(w, http.StatusOK, s.Source.State())
}

func (s *Server) apiPower(w http.ResponseWriter, r *http.Request) {
	var req powerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.badRequest(w, err)
		return
	}
	if req.On == nil {
		s.badRequest(w, errors.New("on is required"))
		return
	}
	s.Source.SetOn(*req.On)
	s.writeJSON(w, http.StatusOK, s.Source.State())
}
