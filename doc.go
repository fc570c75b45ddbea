// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package vfd is a container for the VFD4 clock tube driver and its tools.
//
// The driver itself lives in vfd4. shiftreg, vfdscreen and preview let it
// run without the tube, and cmd/vfd4 ties everything to a configuration
// file.
package vfd
