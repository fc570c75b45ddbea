// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package vfd4

import (
	"fmt"
	"time"

	"github.com/lestrrat-go/strftime"
)

// Printf formats according to a format specifier and writes the result at
// pos. It returns the number of positions used, 0 when the result is empty.
func (d *Dev) Printf(pos int, format string, args ...interface{}) int {
	s := fmt.Sprintf(format, args...)
	if s == "" {
		return 0
	}
	return d.PrintAt(pos, s)
}

// Strftime formats t with a C strftime layout, e.g. "%H:%M", and writes the
// result at pos.
func (d *Dev) Strftime(pos int, layout string, t time.Time) int {
	s, err := strftime.Format(layout, t)
	if err != nil {
		d.log.Errorf("invalid time layout %q: %v", layout, err)
		return 0
	}
	if s == "" {
		return 0
	}
	return d.PrintAt(pos, s)
}
