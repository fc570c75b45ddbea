// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package poller

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"gotest.tools/assert"
)

type fakeDev struct {
	calls chan struct{}
	err   error
}

func (f *fakeDev) Update() error {
	f.calls <- struct{}{}
	return f.err
}

func waitCall(t *testing.T, d *fakeDev) {
	select {
	case <-d.calls:
	case <-time.After(5 * time.Second):
		t.Fatal("Update was not called")
	}
}

func TestRun(t *testing.T) {
	clock := clockwork.NewFakeClock()
	d := &fakeDev{calls: make(chan struct{})}
	l, hook := test.NewNullLogger()
	l.SetLevel(logrus.DebugLevel)
	p := &Poller{Dev: d, Interval: time.Second, Clock: clock, Log: l}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	waitCall(t, d)
	for i := 0; i < 3; i++ {
		clock.BlockUntil(1)
		clock.Advance(time.Second)
		waitCall(t, d)
	}
	clock.BlockUntil(1)
	cancel()
	<-done
	assert.Equal(t, len(hook.AllEntries()), 1)
	assert.Equal(t, hook.LastEntry().Level, logrus.DebugLevel)
}

func TestRunError(t *testing.T) {
	clock := clockwork.NewFakeClock()
	d := &fakeDev{calls: make(chan struct{}), err: errors.New("pin stuck")}
	l, hook := test.NewNullLogger()
	p := &Poller{Dev: d, Interval: 10 * time.Millisecond, Clock: clock, Log: l}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	waitCall(t, d)
	clock.BlockUntil(1)
	clock.Advance(10 * time.Millisecond)
	waitCall(t, d)
	clock.BlockUntil(1)
	cancel()
	<-done

	var errs int
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.ErrorLevel {
			errs++
			assert.Equal(t, e.Data[logrus.ErrorKey].(error).Error(), "pin stuck")
		}
	}
	assert.Equal(t, errs, 2)
}
