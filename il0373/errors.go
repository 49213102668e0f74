// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package il0373

import (
	"errors"
	"fmt"
)

// ErrState is returned when an operation is not valid in the current state
// of the panel.
var ErrState = errors.New("il0373: invalid state")

// TxError reports a failed write on the SPI connection.
//
// A failed write leaves the panel registers in an unknown state. The
// session must be restarted from the beginning; the driver never resends
// part of a command.
type TxError struct {
	// Cmd is the command being sent.
	Cmd Command
	// Payload is true when the opcode went out and the payload write failed.
	Payload bool
	// Err is the error returned by the connection.
	Err error
}

func (e *TxError) Error() string {
	part := "opcode"
	if e.Payload {
		part = "payload"
	}
	return fmt.Sprintf("il0373: %s %s write failed: %v", e.Cmd, part, e.Err)
}

func (e *TxError) Unwrap() error {
	return e.Err
}
