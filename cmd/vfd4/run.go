// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/GermanBionicSystems/vfd/internal/config"
	"github.com/GermanBionicSystems/vfd/internal/content"
	"github.com/GermanBionicSystems/vfd/internal/httpapi"
	"github.com/GermanBionicSystems/vfd/internal/poller"
	"github.com/GermanBionicSystems/vfd/preview"
	"github.com/GermanBionicSystems/vfd/shiftreg"
	"github.com/GermanBionicSystems/vfd/vfd4"
	"github.com/GermanBionicSystems/vfd/vfdscreen"
	log "github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/gpio"
)

const shutdownTimeout = 5 * time.Second

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

// newSource returns the content source described by conf.
func newSource(conf *config.Config) (*content.Source, error) {
	src := content.New(nil, conf.Format, *conf.On)
	if conf.Text != "" {
		if err := src.SetText(conf.Text, conf.Position); err != nil {
			return nil, err
		}
	}
	return src, nil
}

// serveClock polls d until ctx is done, with the HTTP API running when an
// address is configured.
func serveClock(ctx context.Context, conf *config.Config, d *vfd4.Dev, src *content.Source) error {
	var api *httpapi.Server
	if conf.HTTP.Addr != "" {
		sink, err := preview.New(&preview.Options{Format: preview.PNG, Render: preview.RenderOpts{Scale: 2}})
		if err != nil {
			return err
		}
		src.Observe(sink.Update)
		src.OnError(func(err error) {
			log.WithError(err).Warn("preview update failed")
		})
		api = &httpapi.Server{Source: src, Preview: sink, Log: log.WithField("component", "http")}
		api.Start(conf.HTTP.Addr)
	}

	p := poller.New(d, conf.UpdateInterval, log.WithField("component", "poller"))
	p.Run(ctx)

	if api != nil {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := api.Shutdown(sctx); err != nil {
			log.WithError(err).Warn("http shutdown")
		}
	}
	return nil
}

func runClock(conf *config.Config) error {
	pins, err := openPins(conf)
	if err != nil {
		return err
	}
	src, err := newSource(conf)
	if err != nil {
		return err
	}
	d, err := newTube(conf, pins.clk, pins.data, pins.stb, src.Write)
	if err != nil {
		return errors.Join(err, pins.close())
	}
	ctx, stop := signalContext()
	defer stop()
	log.Infof("running %s on %s, %s, %s", d, pins.clk, pins.data, pins.stb)
	err = serveClock(ctx, conf, d, src)
	return errors.Join(err, haltAll(d, pins))
}

func printOnTube(conf *config.Config, text string, pos int) error {
	pins, err := openPins(conf)
	if err != nil {
		return err
	}
	d, err := newTube(conf, pins.clk, pins.data, pins.stb, nil)
	if err != nil {
		return errors.Join(err, pins.close())
	}
	if n := d.PrintAt(pos, text); n == 0 {
		log.Warnf("nothing to show for %q", text)
	}
	d.SetOn(*conf.On)
	ctx, stop := signalContext()
	defer stop()
	poller.New(d, conf.UpdateInterval, log.WithField("component", "poller")).Run(ctx)
	return haltAll(d, pins)
}

// mirror rebuilds the cells of the tube from the frames latched by a
// simulated chain and hands them to draw at the end of every refresh cycle.
type mirror struct {
	cells [vfd4.NumCells]byte
	last  [vfd4.NumCells]byte
	drawn bool
	draw  func(cells [vfd4.NumCells]byte) error
}

func (m *mirror) latch(chain *shiftreg.Dev, bits []gpio.Level) {
	fr, err := vfd4.DecodeFrame(bits)
	if err != nil {
		log.WithError(err).Warn("bad frame")
		return
	}
	if fr.Position >= 0 {
		m.cells[fr.Position] = fr.Bits
		return
	}
	// The blank pass ends a refresh cycle.
	chain.Reset()
	if m.drawn && m.cells == m.last {
		return
	}
	if err := m.draw(m.cells); err != nil {
		log.WithError(err).Warn("drawing failed")
		return
	}
	m.last = m.cells
	m.drawn = true
}

func emulate(conf *config.Config) error {
	chain, err := shiftreg.New(vfd4.FrameBits)
	if err != nil {
		return err
	}
	screen := vfdscreen.New(&vfdscreen.Opts{})
	m := &mirror{draw: screen.Draw}
	chain.OnLatch(func(bits []gpio.Level) { m.latch(chain, bits) })

	src, err := newSource(conf)
	if err != nil {
		return err
	}
	d, err := newTube(conf, chain.Clock, chain.Data, chain.Strobe, src.Write)
	if err != nil {
		return err
	}
	ctx, stop := signalContext()
	defer stop()
	err = serveClock(ctx, conf, d, src)
	return errors.Join(err, d.Halt(), screen.Halt())
}
