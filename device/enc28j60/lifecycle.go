// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package enc28j60

import "time"

// initHardware issues a soft reset, confirms a chip answers, and lays out
// the RX/TX FIFO partition and MAC/PHY defaults. It runs once, from Open.
func (d *Dev) initHardware() error {
	d.bank = bankController{}

	if err := softReset(d.spi); err != nil {
		return &BusError{Op: "soft reset", Err: err}
	}
	// The datasheet specifies a 2ms settle time after a soft reset before
	// the SPI interface is ready to accept commands again.
	time.Sleep(2 * time.Millisecond)

	if err := d.writeReg8(econ1, cmdWCR, 0); err != nil {
		return &BusError{Op: "clear econ1", Err: err}
	}

	rev, err := d.readReg8(erevid)
	if err != nil {
		return &BusError{Op: "read erevid", Err: err}
	}
	if rev == 0x00 || rev == 0xff {
		return ErrDeviceAbsent
	}

	if err := d.initRXFIFO(rxFIFOStart, rxFIFOEnd); err != nil {
		return err
	}
	if err := d.initTXFIFO(txStart, txEnd); err != nil {
		return err
	}

	// Receive filter: accept unicast frames addressed to us, frames with a
	// valid CRC, and broadcasts.
	if err := d.writeReg8(erxfcon, cmdWCR, erxfconUCEN|erxfconCRCEN|erxfconBCEN); err != nil {
		return &BusError{Op: "write erxfcon", Err: err}
	}

	// MAC: enable receive logic, pad short frames to 60 bytes, let the MAC
	// append the CRC, and check the frame-length field against the
	// payload. Full duplex, with pause-frame flow control enabled in both
	// directions (MACON1.TXPAUS/RXPAUS); MACON4.DEFER is set as well.
	if err := d.writeReg8(macon1, cmdWCR, macon1MarxEn|macon1RxPaus|macon1TxPaus); err != nil {
		return &BusError{Op: "write macon1", Err: err}
	}
	if err := d.writeReg8(macon3, cmdWCR, macon3PadCfg0|macon3TxCrcEn|macon3FrmLnEn|macon3FulDpx); err != nil {
		return &BusError{Op: "write macon3", Err: err}
	}
	if err := d.writeReg8(macon4, cmdWCR, macon4Defer); err != nil {
		return &BusError{Op: "write macon4", Err: err}
	}
	if err := d.writeReg16(mamxfl, cmdWCR, ethMaxFrameLen); err != nil {
		return &BusError{Op: "write mamxfl", Err: err}
	}
	// Full-duplex back-to-back inter-packet gap, per datasheet 6.5.
	if err := d.writeReg8(mabbipg, cmdWCR, 0x15); err != nil {
		return &BusError{Op: "write mabbipg", Err: err}
	}
	if err := d.writeReg16(maipg, cmdWCR, 0x0012); err != nil {
		return &BusError{Op: "write maipg", Err: err}
	}

	// Auto-increment ERDPT/EWRPT across buffer reads/writes so handleRX and
	// the TX path don't have to reprogram the pointer for every byte.
	if err := d.writeReg8(econ2, cmdBFS, econ2AutoInc); err != nil {
		return &BusError{Op: "set econ2.autoinc", Err: err}
	}

	// PHY: full duplex, default power state, LEDs in link/activity mode.
	if err := d.writePHY(phcon1, phcon1PDpxMd); err != nil {
		return &BusError{Op: "write phcon1", Err: err}
	}
	if err := d.writePHY(phcon2, 0); err != nil {
		return &BusError{Op: "write phcon2", Err: err}
	}
	if err := d.writePHY(phlcon, enc28j60LampsMode); err != nil {
		return &BusError{Op: "write phlcon", Err: err}
	}

	return nil
}

// initRXFIFO validates the partition then programs ERXST/ERXND/ERXRDPT and
// seeds nextPacketPtr at the start of the FIFO, per the datasheet's
// receive-buffer initialization sequence (section 6.1).
func (d *Dev) initRXFIFO(start, end uint16) error {
	if start >= end || end > rxFIFOEnd {
		return &ConfigurationError{Msg: "rx fifo out of range"}
	}
	if err := d.writeReg16(erxst, cmdWCR, start); err != nil {
		return &BusError{Op: "write erxst", Err: err}
	}
	rdpt := erxrdptWorkaround(start, start, end)
	if err := d.writeReg16(erxrdpt, cmdWCR, rdpt); err != nil {
		return &BusError{Op: "write erxrdpt", Err: err}
	}
	if err := d.writeReg16(erxnd, cmdWCR, end); err != nil {
		return &BusError{Op: "write erxnd", Err: err}
	}
	d.nextPacketPtr = start
	return nil
}

// initTXFIFO validates the partition then programs ETXST/ETXND. ETXND is
// reprogrammed per frame by the TX path since it depends on frame length;
// it's set here too so the FIFO is in a well-defined state before the
// first frame is ever queued.
func (d *Dev) initTXFIFO(start, end uint16) error {
	if start <= rxFIFOEnd || start >= end || end > txEnd {
		return &ConfigurationError{Msg: "tx fifo out of range"}
	}
	if err := d.writeReg16(etxst, cmdWCR, start); err != nil {
		return &BusError{Op: "write etxst", Err: err}
	}
	if err := d.writeReg16(etxnd, cmdWCR, end); err != nil {
		return &BusError{Op: "write etxnd", Err: err}
	}
	return nil
}

// erxrdptWorkaround implements Microchip silicon errata #5/#14: ERXRDPT
// must always hold an odd value one behind the true read boundary so the
// FIFO's internal write-protect window never includes the location about
// to be read from. next is the pointer to the first still-unread byte.
func erxrdptWorkaround(next, start, end uint16) uint16 {
	if next == start {
		return end
	}
	return next - 1
}

// nextRxStartPtr clamps a chip-reported NextPtr value back inside the RX
// FIFO, guarding handleRX against a corrupt status vector looping it
// outside the buffer.
func nextRxStartPtr(ptr uint16) uint16 {
	if ptr < rxFIFOStart || ptr > rxFIFOEnd {
		return rxFIFOStart
	}
	return ptr
}

// enableHardware clears any stale interrupt flags, unmasks the interrupt
// sources this core handles, and turns on the receiver. It mirrors
// enable_hardware and runs from Open.
func (d *Dev) enableHardware() error {
	if err := d.writeReg8(eir, cmdWCR, 0); err != nil {
		return &BusError{Op: "clear eir", Err: err}
	}
	if err := d.writePHY(phie, phiePGeIE|phiePLnkIE); err != nil {
		return &BusError{Op: "write phie", Err: err}
	}
	mask := byte(eieINTIE | eiePKTIE | eieLINKIE | eieTXIE | eieTXERIE | eieRXERIE)
	if err := d.writeReg8(eie, cmdWCR, mask); err != nil {
		return &BusError{Op: "write eie", Err: err}
	}
	if err := d.writeReg8(econ1, cmdBFS, econ1RxEn); err != nil {
		return &BusError{Op: "set econ1.rxen", Err: err}
	}
	return nil
}

// disableHardware masks interrupts and turns off the receiver. It mirrors
// disable_hardware and runs from Stop.
func (d *Dev) disableHardware() error {
	if err := d.writeReg8(econ1, cmdBFC, econ1RxEn); err != nil {
		return &BusError{Op: "clear econ1.rxen", Err: err}
	}
	if err := d.writeReg8(eie, cmdWCR, 0); err != nil {
		return &BusError{Op: "clear eie", Err: err}
	}
	return nil
}
