// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package il0373

import (
	"errors"
	"fmt"
	"time"
)

// StepKind tells what a Step does.
type StepKind uint8

const (
	// SendStep sends Cmd with Data.
	SendStep StepKind = iota
	// PauseStep blocks for Delay.
	PauseStep
)

// Step is one entry of a command sequence.
type Step struct {
	Kind StepKind
	Cmd  Command
	// Data is the payload. nil sends the opcode alone.
	Data  []byte
	Delay time.Duration
}

// Send returns a step sending cmd followed by data.
func Send(cmd Command, data []byte) Step {
	return Step{Kind: SendStep, Cmd: cmd, Data: data}
}

// Pause returns a step blocking for d.
func Pause(d time.Duration) Step {
	return Step{Kind: PauseStep, Delay: d}
}

func (s Step) String() string {
	if s.Kind == PauseStep {
		return fmt.Sprintf("Pause(%s)", s.Delay)
	}
	if s.Data == nil {
		return fmt.Sprintf("Send(%s)", s.Cmd)
	}
	return fmt.Sprintf("Send(%s, % X)", s.Cmd, s.Data)
}

// VCOMPolicy selects the VCM DC payload sent while powering down.
//
// Some panels expect an explicit zero byte, others the bare opcode. The
// behavior has to be checked on the actual hardware.
type VCOMPolicy uint8

const (
	// VCOMNoPayload sends VCMDCSetting without payload.
	VCOMNoPayload VCOMPolicy = iota
	// VCOMZeroByte sends VCMDCSetting with a single 0x00.
	VCOMZeroByte
)

func (p VCOMPolicy) String() string {
	switch p {
	case VCOMNoPayload:
		return "none"
	case VCOMZeroByte:
		return "zero"
	default:
		return fmt.Sprintf("VCOMPolicy(%d)", uint8(p))
	}
}

// Set sets the VCOMPolicy to a value represented by the string s. Set
// implements the flag.Value interface.
func (p *VCOMPolicy) Set(s string) error {
	switch s {
	case "none", "":
		*p = VCOMNoPayload
	case "zero":
		*p = VCOMZeroByte
	default:
		return fmt.Errorf("unknown VCOM policy %q: expected none or zero", s)
	}
	return nil
}

// Delays that are part of the protocol. The charge pump needs the two init
// pauses; commands sent earlier leave the panel unresponsive.
const (
	powerOnSettleTime  = 200 * time.Millisecond
	initSettleTime     = 20 * time.Millisecond
	planeSettleTime    = 2 * time.Millisecond
	releaseTime        = 100 * time.Microsecond
	powerOffSettleTime = 100 * time.Millisecond
)

// resolutionData encodes the Resolution payload: width (one byte), then
// height high and low bytes.
func resolutionData(w, h int) []byte {
	return []byte{
		byte(w & 0xFF),
		byte((h >> 8) & 0xFF),
		byte(h & 0xFF),
	}
}

// InitSequence returns the power-up sequence for the panel described by
// opts: InitCode followed by the resolution setting.
func InitSequence(opts *Opts) []Step {
	steps := make([]Step, 0, len(initSteps)+1)
	steps = append(steps, initSteps...)
	return append(steps, Send(Resolution, resolutionData(opts.Width, opts.Height)))
}

// PowerDownSequence returns the power-down sequence. It is used both before
// power-up, in case the panel was left powered, and after the refresh.
func PowerDownSequence(policy VCOMPolicy) []Step {
	var vcm []byte
	if policy == VCOMZeroByte {
		vcm = []byte{0x00}
	}
	return []Step{
		Send(VCOMDataInterval, []byte{0x17}),
		Send(VCMDCSetting, vcm),
		Send(PowerOff, nil),
	}
}

// Markers of the byte-coded command table.
const (
	tableDelay byte = 0xFF
	tableEnd   byte = 0xFE

	tableMaxArgs = 64
)

// InitCode is the power-up sequence (without the resolution) in the
// byte-coded table format read by ParseCommandList.
var InitCode = []byte{
	byte(PowerSetting), 5, 0x03, 0x00, 0x2b, 0x2b, 0x09,
	byte(BoosterSoftStart), 3, 0x17, 0x17, 0x17,
	byte(PowerOn), 0,
	tableDelay, byte(powerOnSettleTime / time.Millisecond),
	byte(PanelSetting), 1, 0xCF,
	byte(VCOMDataInterval), 1, 0x37,
	byte(PLLControl), 1, 0x29,
	byte(VCMDCSetting), 1, 0x0A,
	tableDelay, byte(initSettleTime / time.Millisecond),
	tableEnd,
}

var initSteps = mustParseCommandList(InitCode)

func mustParseCommandList(table []byte) []Step {
	steps, err := ParseCommandList(table)
	if err != nil {
		panic(err)
	}
	return steps
}

var errTableTruncated = errors.New("il0373: command table truncated")

// ParseCommandList decodes a byte-coded command table.
//
// Each entry is an opcode, an argument count and the arguments. The opcode
// 0xFF is a pause whose count is in milliseconds, and 0xFE ends the table.
// A zero argument count sends the opcode alone.
func ParseCommandList(table []byte) ([]Step, error) {
	var steps []Step
	for i := 0; ; {
		if i >= len(table) {
			return nil, errTableTruncated
		}
		op := table[i]
		if op == tableEnd {
			return steps, nil
		}
		if i+1 >= len(table) {
			return nil, errTableTruncated
		}
		n := int(table[i+1])
		i += 2
		if op == tableDelay {
			steps = append(steps, Pause(time.Duration(n)*time.Millisecond))
			continue
		}
		if n > tableMaxArgs {
			return nil, fmt.Errorf("il0373: command table entry %s has %d arguments, limit is %d", Command(op), n, tableMaxArgs)
		}
		if i+n > len(table) {
			return nil, errTableTruncated
		}
		var data []byte
		if n > 0 {
			data = append([]byte(nil), table[i:i+n]...)
		}
		steps = append(steps, Send(Command(op), data))
		i += n
	}
}
