// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package il0373

import "time"

type controller interface {
	release()
	sendCommand(Command, []byte)
	delay(time.Duration)
	waitRefresh()
	enter(State)
}

func runSteps(ctrl controller, steps []Step) {
	for _, s := range steps {
		switch s.Kind {
		case SendStep:
			ctrl.sendCommand(s.Cmd, s.Data)
		case PauseStep:
			ctrl.delay(s.Delay)
		}
	}
}

func initDisplay(ctrl controller, opts *Opts) {
	ctrl.enter(Initializing)
	runSteps(ctrl, InitSequence(opts))
	ctrl.enter(Ready)
}

func writePlanes(ctrl controller, black, red []byte) {
	ctrl.enter(WritingBlack)
	ctrl.sendCommand(RAMBlackWhite, black)

	// Lets the controller move its RAM pointer to the second bank.
	ctrl.delay(planeSettleTime)

	ctrl.enter(WritingRed)
	ctrl.sendCommand(RAMRed, red)
	ctrl.enter(Ready)
}

func refreshDisplay(ctrl controller) {
	ctrl.sendCommand(DisplayRefresh, nil)
	ctrl.enter(Refreshing)
	ctrl.waitRefresh()
}

func powerDown(ctrl controller, policy VCOMPolicy) {
	runSteps(ctrl, PowerDownSequence(policy))
	ctrl.enter(Unpowered)
}

// session runs a whole draw cycle starting from an unknown panel state.
func session(ctrl controller, opts *Opts, black, red []byte) {
	ctrl.release()
	ctrl.delay(releaseTime)

	powerDown(ctrl, opts.VCOMPowerOff)
	ctrl.delay(powerOffSettleTime)

	initDisplay(ctrl, opts)
	writePlanes(ctrl, black, red)
	refreshDisplay(ctrl)
	powerDown(ctrl, opts.VCOMPowerOff)
}
