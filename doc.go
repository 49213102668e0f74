// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package devices is a container for the fleet clock display drivers.
//
// il0373 drives the tri-color e-paper panel over SPI. screen2d previews the
// same frames on a terminal.
package devices
