// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package il0373

import "fmt"

// Command is an IL0373 opcode.
type Command byte

// Commands
const (
	PanelSetting                  Command = 0x00
	PowerSetting                  Command = 0x01
	PowerOff                      Command = 0x02
	PowerOffSequence              Command = 0x03
	PowerOn                       Command = 0x04
	PowerOnMeasure                Command = 0x05
	BoosterSoftStart              Command = 0x06
	DeepSleep                     Command = 0x07
	DataStartTransmission1        Command = 0x10
	DataStop                      Command = 0x11
	DisplayRefresh                Command = 0x12
	DataStartTransmission2        Command = 0x13
	PartialDataStartTransmission1 Command = 0x14
	PartialDataStartTransmission2 Command = 0x15
	PartialDisplayRefresh         Command = 0x16
	LUTVCOM                       Command = 0x20
	LUTWW                         Command = 0x21
	LUTBW                         Command = 0x22
	LUTWB                         Command = 0x23
	LUTBB                         Command = 0x24
	PLLControl                    Command = 0x30
	VCOMDataInterval              Command = 0x50
	Resolution                    Command = 0x61
	VCMDCSetting                  Command = 0x82
	PartialWindow                 Command = 0x90
	PartialIn                     Command = 0x91
	PartialOut                    Command = 0x92
)

// RAM banks.
const (
	// RAMBlackWhite receives the black/white plane.
	RAMBlackWhite = DataStartTransmission1
	// RAMRed receives the red plane.
	RAMRed = DataStartTransmission2
)

var commandNames = map[Command]string{
	PanelSetting:                  "PanelSetting",
	PowerSetting:                  "PowerSetting",
	PowerOff:                      "PowerOff",
	PowerOffSequence:              "PowerOffSequence",
	PowerOn:                       "PowerOn",
	PowerOnMeasure:                "PowerOnMeasure",
	BoosterSoftStart:              "BoosterSoftStart",
	DeepSleep:                     "DeepSleep",
	DataStartTransmission1:        "DataStartTransmission1",
	DataStop:                      "DataStop",
	DisplayRefresh:                "DisplayRefresh",
	DataStartTransmission2:        "DataStartTransmission2",
	PartialDataStartTransmission1: "PartialDataStartTransmission1",
	PartialDataStartTransmission2: "PartialDataStartTransmission2",
	PartialDisplayRefresh:         "PartialDisplayRefresh",
	LUTVCOM:                       "LUTVCOM",
	LUTWW:                         "LUTWW",
	LUTBW:                         "LUTBW",
	LUTWB:                         "LUTWB",
	LUTBB:                         "LUTBB",
	PLLControl:                    "PLLControl",
	VCOMDataInterval:              "VCOMDataInterval",
	Resolution:                    "Resolution",
	VCMDCSetting:                  "VCMDCSetting",
	PartialWindow:                 "PartialWindow",
	PartialIn:                     "PartialIn",
	PartialOut:                    "PartialOut",
}

func (c Command) String() string {
	if s, ok := commandNames[c]; ok {
		return s
	}
	return fmt.Sprintf("Command(0x%02X)", byte(c))
}
