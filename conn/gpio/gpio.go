// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package gpio defines digital pins.
//
// The GPIO pins are described in their logical functionality, not in their
// physical position.
package gpio

import (
	"errors"
	"fmt"
	"time"

	"github.com/periph-drivers/enc28j60/conn/physic"
	"github.com/periph-drivers/enc28j60/conn/pin"
)

// Level is the level of the pin: Low or High.
type Level bool

const (
	// Low represents 0v.
	Low Level = false
	// High represents Vin, generally 3.3v or 5v.
	High Level = true
)

func (l Level) String() string {
	if l == Low {
		return "Low"
	}
	return "High"
}

// Pull specifies the internal pull-up or pull-down for a pin set as input.
type Pull uint8

// Acceptable pull values.
const (
	Float        Pull = 0 // Let the input float
	PullDown     Pull = 1 // Apply pull-down
	PullUp       Pull = 2 // Apply pull-up
	PullNoChange Pull = 3 // Do not change the previous pull resistor setting or an unknown value
)

func (p Pull) String() string {
	switch p {
	case Float:
		return "Float"
	case PullDown:
		return "PullDown"
	case PullUp:
		return "PullUp"
	case PullNoChange:
		return "PullNoChange"
	default:
		return "Pull(unknown)"
	}
}

// Edge specifies if an input pin should have edge detection enabled.
//
// Only enable it when needed since this causes system interrupts.
type Edge uint8

// Acceptable edge detection values.
const (
	NoEdge Edge = 0
	RisingEdge Edge = 1
	FallingEdge Edge = 2
	BothEdges Edge = 3
)

func (e Edge) String() string {
	switch e {
	case NoEdge:
		return "NoEdge"
	case RisingEdge:
		return "Rising"
	case FallingEdge:
		return "Falling"
	case BothEdges:
		return "Both"
	default:
		return "Edge(unknown)"
	}
}

// Duty is the duty cycle for a PWM.
//
// Valid values are between 0 and DutyMax.
type Duty int32

// DutyMax is a duty cycle of 100%.
const DutyMax Duty = 1 << 16

func (d Duty) String() string {
	return fmt.Sprintf("%d%%", int64(d)*100/int64(DutyMax))
}

// PinIn is an input GPIO pin.
type PinIn interface {
	pin.Pin

	// In setups a pin as an input.
	//
	// If WaitForEdge() is planned to be called, make sure to use one of the
	// Edge values to prepare the pin for interrupts.
	In(pull Pull, edge Edge) error
	// Read return the current pin level.
	//
	// Behavior is undefined if In() wasn't used before.
	Read() Level
	// WaitForEdge() waits for the next edge or immediately return if an edge
	// occurred since the last call.
	//
	// Only waits for the kind of edge as specified in a previous In() call.
	// Behavior is undefined if In() with a value other than NoEdge wasn't
	// called before.
	//
	// Returns true if an edge was detected during or before this call. Returns
	// false if the timeout occurred or In() was called while waiting, causing
	// the wait to be aborted.
	WaitForEdge(timeout time.Duration) bool
	// Pull returns the current pull resistor setting.
	Pull() Pull
	// DefaultPull returns the pull resistor setting used on device reset.
	DefaultPull() Pull
}

// PinOut is an output GPIO pin.
type PinOut interface {
	pin.Pin

	// Out sets a pin as output if it wasn't already and sets the initial
	// value.
	Out(l Level) error
	// PWM sets the PWM output on supported pins, if the pin supports it.
	PWM(duty Duty, f physic.Frequency) error
}

// PinIO is a GPIO pin that supports both input and output.
type PinIO interface {
	pin.Pin

	In(pull Pull, edge Edge) error
	Read() Level
	WaitForEdge(timeout time.Duration) bool
	Pull() Pull
	DefaultPull() Pull

	Out(l Level) error
	PWM(duty Duty, f physic.Frequency) error
}

// RealPin is implemented by aliased pins and allows the retrieval of the real
// pin underlying an alias.
type RealPin interface {
	Real() PinIO
}

// invalidPin implements PinIO for a non-existent or unusable pin.
type invalidPin struct{}

func (invalidPin) String() string             { return "INVALID" }
func (invalidPin) Halt() error                 { return nil }
func (invalidPin) Name() string                { return "INVALID" }
func (invalidPin) Number() int                 { return -1 }
func (invalidPin) Function() string            { return "" }
func (invalidPin) In(Pull, Edge) error          { return errors.New("gpio: invalid pin") }
func (invalidPin) Read() Level                  { return Low }
func (invalidPin) WaitForEdge(time.Duration) bool { return false }
func (invalidPin) Pull() Pull                   { return PullNoChange }
func (invalidPin) DefaultPull() Pull            { return PullNoChange }
func (invalidPin) Out(Level) error              { return errors.New("gpio: invalid pin") }
func (invalidPin) PWM(Duty, physic.Frequency) error {
	return errors.New("gpio: invalid pin")
}

// INVALID implements PinIO and fails on all access.
var INVALID PinIO = invalidPin{}

var _ PinIO = INVALID
