// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package enc28j60

import "errors"

// ErrTxBusy is returned by Transmit while a previously submitted frame
// has not yet finished transmitting: the chip's TX region holds one
// frame at a time.
var ErrTxBusy = errors.New("enc28j60: tx busy")

// Transmit hands frame to the chip's TX engine: it mirrors the reference
// driver's start_xmit. It returns once the frame is queued in hardware,
// not once it is on the wire; completion is observed asynchronously by
// the interrupt-drain goroutine, which clears the busy state and allows
// the next Transmit to proceed.
func (d *Dev) Transmit(frame []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.queueStopped {
		return ErrTxBusy
	}
	if len(frame) == 0 || len(frame) > ethMaxFrameLen {
		return &ConfigurationError{Msg: "frame length out of range"}
	}

	d.pendingMu.Lock()
	d.pending = &txRequest{frame: frame}
	d.pendingMu.Unlock()
	d.stopQueue()

	if err := d.writeReg16(ewrpt, cmdWCR, txStart); err != nil {
		return d.abortTX(&BusError{Op: "write ewrpt", Err: err})
	}
	if err := d.writeReg16(etxnd, cmdWCR, txStart+uint16(len(frame))); err != nil {
		return d.abortTX(&BusError{Op: "write etxnd", Err: err})
	}
	// Per-packet control byte: 0 selects the MAC's configured defaults
	// for padding, CRC append and huge-frame handling.
	if err := d.writeBuffer([]byte{0}); err != nil {
		return d.abortTX(&BusError{Op: "write control byte", Err: err})
	}
	if err := d.writeBuffer(frame); err != nil {
		return d.abortTX(&BusError{Op: "write frame", Err: err})
	}
	if err := d.writeReg8(econ1, cmdBFS, econ1TxRts); err != nil {
		return d.abortTX(&BusError{Op: "set econ1.txrts", Err: err})
	}
	return nil
}

// abortTX releases the parked frame and re-opens the queue after a setup
// write failed partway through, then returns err for the caller.
func (d *Dev) abortTX(err error) error {
	d.pendingMu.Lock()
	d.pending = nil
	d.pendingMu.Unlock()
	d.wakeQueue()
	return err
}

// completeTX runs from the interrupt-drain goroutine on TXIF: the chip
// transmitted the parked frame without error.
func (d *Dev) completeTX() error {
	if err := d.writeReg8(econ1, cmdBFC, econ1TxRts); err != nil {
		return &BusError{Op: "clear econ1.txrts", Err: err}
	}
	d.pendingMu.Lock()
	d.pending = nil
	d.pendingMu.Unlock()
	d.wakeQueue()
	return nil
}

// failTX runs from the interrupt-drain goroutine on TXERIF: the chip
// aborted the transmission. It reads the diagnostic TX Status Vector
// from just past ETXND, resets the TX logic and re-opens the queue so
// the next Transmit starts from a clean state.
func (d *Dev) failTX() error {
	end, err := d.readReg16(etxnd)
	if err != nil {
		return &BusError{Op: "read etxnd", Err: err}
	}
	var raw [tsvSize]byte
	if err := d.readBufferAt(end+1, raw[:]); err != nil {
		return &BusError{Op: "read tsv", Err: err}
	}
	tsv := decodeTSV(raw[:])

	if err := d.writeReg8(econ1, cmdBFS, econ1TxRts); err != nil {
		return &BusError{Op: "set econ1.txrts", Err: err}
	}
	if err := d.writeReg8(econ1, cmdBFC, econ1TxRts); err != nil {
		return &BusError{Op: "clear econ1.txrts", Err: err}
	}
	if err := d.initTXFIFO(txStart, txEnd); err != nil {
		return err
	}

	d.pendingMu.Lock()
	d.pending = nil
	d.pendingMu.Unlock()
	d.wakeQueue()

	return &TxFailure{TSV: tsv}
}
