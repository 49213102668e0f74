// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package il0373

import (
	"context"
	"time"

	"periph.io/x/conn/v3/gpio"
)

// errorHandler runs sequences against a Dev. The first error is kept and
// every later step is skipped.
type errorHandler struct {
	ctx context.Context
	d   *Dev
	err error
}

func (eh *errorHandler) release() {
	if eh.err != nil {
		return
	}
	eh.d.pinOut(eh.d.cs, gpio.High)
	eh.d.pinOut(eh.d.dc, gpio.High)
}

func (eh *errorHandler) sendCommand(cmd Command, data []byte) {
	if eh.err != nil {
		return
	}
	eh.err = eh.d.command(cmd, data)
}

func (eh *errorHandler) delay(d time.Duration) {
	if eh.err != nil {
		return
	}
	eh.err = eh.d.delayer.Delay(eh.ctx, d)
}

func (eh *errorHandler) waitRefresh() {
	if eh.err != nil {
		return
	}
	eh.err = eh.d.waitRefresh(eh.ctx)
}

func (eh *errorHandler) enter(s State) {
	if eh.err != nil {
		return
	}
	eh.d.setState(s)
}
