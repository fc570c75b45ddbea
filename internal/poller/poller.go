// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package poller keeps a multiplexed display lit by refreshing it at a fixed
// interval.
package poller

import (
	"context"
	"runtime"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
)

// Updater is implemented by *vfd4.Dev.
type Updater interface {
	Update() error
}

// Poller calls Update on a display until its context is canceled.
type Poller struct {
	Dev      Updater
	Interval time.Duration
	Clock    clockwork.Clock
	Log      logrus.FieldLogger
}

// New returns a Poller using the wall clock.
func New(d Updater, interval time.Duration, l logrus.FieldLogger) *Poller {
	return &Poller{Dev: d, Interval: interval, Clock: clockwork.NewRealClock(), Log: l}
}

// Run updates the display immediately and then once per interval. Errors are
// logged and do not stop the loop. The calling goroutine is locked to its OS
// thread while it runs so bit timing isn't disturbed by thread migration.
func (p *Poller) Run(ctx context.Context) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	l := p.Log
	if l == nil {
		l = logrus.StandardLogger()
	}
	for {
		if err := p.Dev.Update(); err != nil {
			l.WithError(err).Error("update failed")
		}
		select {
		case <-ctx.Done():
			l.Debug("poller stopped")
			return
		case <-p.Clock.After(p.Interval):
		}
	}
}
