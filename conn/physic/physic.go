// Copyright 2018 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package physic declares physical units.
//
// This package only contains the units needed by the rest of the driver
// tree; it is not the full periph.io physic package.
package physic

import (
	"fmt"
	"time"
)

// Frequency is the number of round trip oscillations per second, also known
// as Hertz in SI unit.
type Frequency int64

// Acceptable Frequency values.
const (
	Hertz     Frequency = 1
	KiloHertz           = 1000 * Hertz
	MegaHertz           = 1000 * KiloHertz
	GigaHertz           = 1000 * MegaHertz
)

func (f Frequency) String() string {
	return fmt.Sprintf("%dHz", int64(f))
}

// Duration returns the period of one oscillation at this frequency.
func (f Frequency) Duration() time.Duration {
	if f == 0 {
		return 0
	}
	return time.Second / time.Duration(f)
}

// PeriodToFrequency returns the frequency for a given oscillation period.
func PeriodToFrequency(p time.Duration) Frequency {
	if p == 0 {
		return 0
	}
	return Frequency(time.Second / p)
}
