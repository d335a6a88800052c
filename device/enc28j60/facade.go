// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package enc28j60

import "time"

// readReg8 switches to r's bank if needed, then reads it.
func (d *Dev) readReg8(r reg8) (byte, error) {
	if err := d.bank.ensureBank(d.spi, r.bank); err != nil {
		return 0, err
	}
	return readReg8(d.spi, r)
}

// writeReg8 switches to r's bank if needed, then writes it with cmd (WCR,
// BFS or BFC).
func (d *Dev) writeReg8(r reg8, cmd byte, v byte) error {
	if err := d.bank.ensureBank(d.spi, r.bank); err != nil {
		return err
	}
	return writeReg8(d.spi, r, cmd, v)
}

// readReg16 reads the low register then the high register and composes
// them as (high<<8)|low.
func (d *Dev) readReg16(r reg16) (uint16, error) {
	lo, err := d.readReg8(r.low)
	if err != nil {
		return 0, err
	}
	hi, err := d.readReg8(r.high)
	if err != nil {
		return 0, err
	}
	return uint16(hi)<<8 | uint16(lo), nil
}

// writeReg16 writes the low byte then the high byte of v.
func (d *Dev) writeReg16(r reg16, cmd byte, v uint16) error {
	if err := d.writeReg8(r.low, cmd, byte(v)); err != nil {
		return err
	}
	return d.writeReg8(r.high, cmd, byte(v>>8))
}

// waitForReady polls r with 1ms coarse sleeps between attempts until
// (value & mask) == val. It suspends between polls rather than spinning:
// the driver lock is held across the call and other work must progress.
func (d *Dev) waitForReady(r reg8, mask, val byte) error {
	for {
		v, err := d.readReg8(r)
		if err != nil {
			return err
		}
		if v&mask == val {
			return nil
		}
		time.Sleep(time.Millisecond)
	}
}

// readPHY performs the MII indirect read sequence: point MIREGADR at the
// PHY register, pulse MICMD.MIIRD, wait for MISTAT.BUSY to clear, then
// read the 16-bit result out of MIRD.
func (d *Dev) readPHY(r phyReg) (uint16, error) {
	if err := d.writeReg8(miregadr, cmdWCR, r.addr); err != nil {
		return 0, err
	}
	if err := d.writeReg8(micmd, cmdWCR, micmdMIIRd); err != nil {
		return 0, err
	}
	time.Sleep(time.Millisecond)
	if err := d.waitForReady(mistat, mistatBusy, 0); err != nil {
		return 0, err
	}
	if err := d.writeReg8(micmd, cmdWCR, 0); err != nil {
		return 0, err
	}
	return d.readReg16(mird)
}

// writePHY performs the MII indirect write sequence.
func (d *Dev) writePHY(r phyReg, v uint16) error {
	if err := d.writeReg8(miregadr, cmdWCR, r.addr); err != nil {
		return err
	}
	if err := d.writeReg16(miwr, cmdWCR, v); err != nil {
		return err
	}
	return d.waitForReady(mistat, mistatBusy, 0)
}
