// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package il0373

import (
	"context"
	"time"

	"periph.io/x/conn/v3/gpio"
)

// Delayer blocks for a fixed duration.
type Delayer interface {
	// Delay returns after d, or earlier with ctx.Err() when ctx is done.
	Delay(ctx context.Context, d time.Duration) error
}

type timerDelayer struct{}

func (timerDelayer) Delay(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

const busyPollTime = 100 * time.Millisecond

// waitRefresh blocks until the panel is done refreshing.
//
// Without a busy line it always waits the whole RefreshTime. With one, it
// polls the line (low while busy) with RefreshTime as deadline; reaching the
// deadline is logged and otherwise treated like the fixed wait. The line is
// first read one poll period after the refresh command, since the panel only
// pulls it low once the refresh has started.
func (d *Dev) waitRefresh(ctx context.Context) error {
	if d.busy == nil {
		return d.delayer.Delay(ctx, d.opts.RefreshTime)
	}

	wctx, cancel := context.WithTimeout(ctx, d.opts.RefreshTime)
	defer cancel()

	for {
		err := d.delayer.Delay(wctx, busyPollTime)
		if err == nil {
			err = wctx.Err()
		}
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			d.log.Warn().Dur("timeout", d.opts.RefreshTime).Msg("il0373: busy line still low after refresh time")
			return nil
		}
		if d.busy.Read() == gpio.High {
			return nil
		}
	}
}
