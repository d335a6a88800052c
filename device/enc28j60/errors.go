// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package enc28j60

import (
	"errors"
	"fmt"
)

// ErrDeviceAbsent is returned by Open when EREVID reads as 0 or 0xff,
// meaning no chip answered on the bus.
var ErrDeviceAbsent = errors.New("enc28j60: device absent")

// ConfigurationError reports invalid caller input, e.g. a FIFO partition
// outside the chip's 8KiB SRAM.
type ConfigurationError struct {
	Msg string
}

func (e *ConfigurationError) Error() string { return "enc28j60: " + e.Msg }

// BusError wraps a failed SPI transfer. The current operation is aborted;
// the next interrupt or user call re-enters.
type BusError struct {
	Op  string
	Err error
}

func (e *BusError) Error() string { return fmt.Sprintf("enc28j60: %s: %v", e.Op, e.Err) }
func (e *BusError) Unwrap() error { return e.Err }

// FrameError reports a dropped RX frame: bad CRC, bad length, or oversize.
type FrameError struct {
	RSV RxStatusVector
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("enc28j60: rx frame dropped: %s", e.RSV)
}

// TxFailure reports TXERIF along with the chip's diagnostic TX Status
// Vector.
type TxFailure struct {
	TSV TxStatusVector
}

func (e *TxFailure) Error() string {
	return fmt.Sprintf("enc28j60: tx failed: %s", e.TSV)
}

// wrap prefixes err with the device's name.
func (d *Dev) wrap(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("enc28j60: %w", err)
}
