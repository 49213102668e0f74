// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package il0373 controls tri-color e-paper panels driven by the IL0373
// controller over SPI, such as the 2.13" 104x212 black/white/red panel.
//
// The panel has no readable state in this wiring: every phase of a session
// is a fixed series of commands separated by fixed delays. Chip-select and
// data/command-select are driven by the driver itself, not by the SPI port.
//
// Datasheet
//
// https://cdn-learn.adafruit.com/assets/assets/000/057/644/original/IL0373_V0.2.pdf
package il0373
