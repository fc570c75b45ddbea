// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package config reads the YAML configuration of the vfd4 command.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/GermanBionicSystems/vfd/vfd4"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	BackendPeriph = "periph"
	BackendRPIO   = "rpio"

	defaultUpdateInterval = time.Second
	defaultFormat         = "%H:%M"
	defaultLogMaxSize     = 10
	defaultLogMaxBackups  = 3
	defaultLogMaxAge      = 28
)

type Pins struct {
	Clock  string `yaml:"clk"`
	Data   string `yaml:"data"`
	Strobe string `yaml:"stb"`
}

type Log struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSize    int    `yaml:"max_size"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAge     int    `yaml:"max_age"`
}

type HTTP struct {
	Addr string `yaml:"addr"`
}

type Config struct {
	Backend        string        `yaml:"backend"`
	Pins           Pins          `yaml:"pins"`
	Intensity      *uint8        `yaml:"intensity"`
	On             *bool         `yaml:"on"`
	UpdateInterval time.Duration `yaml:"update_interval"`
	BitDelay       time.Duration `yaml:"bit_delay"`
	// Format is a strftime layout shown when Text is empty.
	Format   string `yaml:"format"`
	Text     string `yaml:"text"`
	Position int    `yaml:"position"`
	Log      Log    `yaml:"log"`
	HTTP     HTTP   `yaml:"http"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	c := &Config{}
	_ = c.applyDefaults()
	return c
}

// Load reads and validates a configuration file.
func Load(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(content)
}

// Parse validates content and fills in defaults.
func Parse(content []byte) (*Config, error) {
	c := &Config{}
	if err := yaml.Unmarshal(content, c); err != nil {
		return nil, err
	}
	if err := c.applyDefaults(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) applyDefaults() error {
	switch c.Backend {
	case "":
		c.Backend = BackendPeriph
	case BackendPeriph, BackendRPIO:
	default:
		return fmt.Errorf("unknown backend %q", c.Backend)
	}
	if c.Intensity == nil {
		i := uint8(vfd4.MaxIntensity)
		c.Intensity = &i
	} else if *c.Intensity > vfd4.MaxIntensity {
		return fmt.Errorf("intensity must be between 0 and %d, got %d", vfd4.MaxIntensity, *c.Intensity)
	}
	if c.On == nil {
		on := true
		c.On = &on
	}
	if c.UpdateInterval <= 0 {
		c.UpdateInterval = defaultUpdateInterval
	}
	if c.BitDelay == 0 {
		c.BitDelay = vfd4.DefaultOpts.BitDelay
	} else if c.BitDelay < vfd4.MinBitDelay {
		return fmt.Errorf("bit delay must be at least %s, got %s", vfd4.MinBitDelay, c.BitDelay)
	}
	if c.Format == "" {
		c.Format = defaultFormat
	}
	if c.Position < 0 || c.Position >= vfd4.NumCells {
		return fmt.Errorf("position must be between 0 and %d, got %d", vfd4.NumCells-1, c.Position)
	}
	if c.Log.Level == "" {
		c.Log.Level = logrus.InfoLevel.String()
	} else if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	if c.Log.MaxSize <= 0 {
		c.Log.MaxSize = defaultLogMaxSize
	}
	if c.Log.MaxBackups <= 0 {
		c.Log.MaxBackups = defaultLogMaxBackups
	}
	if c.Log.MaxAge <= 0 {
		c.Log.MaxAge = defaultLogMaxAge
	}
	return nil
}

// Validate checks what is only needed to drive real hardware.
func (c *Config) Validate() error {
	var missing []string
	if c.Pins.Clock == "" {
		missing = append(missing, "clk")
	}
	if c.Pins.Data == "" {
		missing = append(missing, "data")
	}
	if c.Pins.Strobe == "" {
		missing = append(missing, "stb")
	}
	if len(missing) > 0 {
		return fmt.Errorf("pins missing: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Level returns the parsed log level.
func (c *Config) Level() logrus.Level {
	l, err := logrus.ParseLevel(c.Log.Level)
	if err != nil {
		return logrus.InfoLevel
	}
	return l
}
