// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"

	"github.com/GermanBionicSystems/vfd/internal/config"
	"github.com/GermanBionicSystems/vfd/internal/rpiopin"
	"github.com/GermanBionicSystems/vfd/vfd4"
	log "github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

type tubePins struct {
	clk, data, stb gpio.PinOut
	close          func() error
}

// openPins returns the three lines named in the configuration.
func openPins(conf *config.Config) (*tubePins, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	names := []string{conf.Pins.Clock, conf.Pins.Data, conf.Pins.Strobe}
	out := make([]gpio.PinOut, len(names))
	switch conf.Backend {
	case config.BackendRPIO:
		if err := rpiopin.Open(); err != nil {
			return nil, fmt.Errorf("opening gpio memory: %w", err)
		}
		for i, n := range names {
			p, err := rpiopin.ByName(n)
			if err != nil {
				_ = rpiopin.Close()
				return nil, err
			}
			out[i] = p
		}
		return &tubePins{clk: out[0], data: out[1], stb: out[2], close: rpiopin.Close}, nil
	default:
		state, err := host.Init()
		if err != nil {
			return nil, err
		}
		log.Debugf("loaded drivers: %v", state.Loaded)
		for i, n := range names {
			p := gpioreg.ByName(n)
			if p == nil {
				return nil, fmt.Errorf("no pin named %q", n)
			}
			out[i] = p
		}
		return &tubePins{clk: out[0], data: out[1], stb: out[2], close: func() error { return nil }}, nil
	}
}

// newTube returns a Dev configured from conf.
func newTube(conf *config.Config, clk, data, stb gpio.PinOut, w func(d *vfd4.Dev)) (*vfd4.Dev, error) {
	return vfd4.New(clk, data, stb, &vfd4.Opts{
		BitDelay:  conf.BitDelay,
		Intensity: *conf.Intensity,
		Logger:    log.WithField("device", "vfd4"),
		Writer:    w,
	})
}

func haltAll(d *vfd4.Dev, pins *tubePins) error {
	return errors.Join(d.Halt(), pins.close())
}
