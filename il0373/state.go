// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package il0373

import "fmt"

// State is the power and transfer state of the panel as tracked by the
// driver. The panel itself cannot be queried.
type State uint8

const (
	// Unpowered is the state after a power-down, and the initial state.
	Unpowered State = iota
	// Initializing is entered when the power-up sequence starts.
	Initializing
	// Ready is entered once the resolution is set, and after each plane
	// transfer.
	Ready
	// WritingBlack is the transfer of the black/white plane.
	WritingBlack
	// WritingRed is the transfer of the red plane.
	WritingRed
	// Refreshing is entered once the refresh command is accepted.
	Refreshing
	// Fault is entered when a sequence is aborted. Only a power-down or a
	// new power-up leaves it.
	Fault
)

var stateNames = [...]string{
	Unpowered:    "Unpowered",
	Initializing: "Initializing",
	Ready:        "Ready",
	WritingBlack: "Writing(1)",
	WritingRed:   "Writing(2)",
	Refreshing:   "Refreshing",
	Fault:        "Fault",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}
