// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package enc28j60

// handleInterrupt is one interrupt-drain pass, called with d.mu held.
// EIE.INTIE is cleared for its duration, per the datasheet's recommended
// sequence, and restored on return regardless of error. It re-reads EIR
// until no bit of interest remains set, since servicing TXIF or RXERIF
// can itself raise PKTIF for a frame that arrived in the interim.
func (d *Dev) handleInterrupt() error {
	if err := d.writeReg8(eie, cmdBFC, eieINTIE); err != nil {
		return &BusError{Op: "clear eie.intie", Err: err}
	}
	defer d.writeReg8(eie, cmdBFS, eieINTIE)

	var firstErr error
	note := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	for {
		eirv, err := d.readReg8(eir)
		if err != nil {
			return &BusError{Op: "read eir", Err: err}
		}
		if eirv == 0 {
			return firstErr
		}

		if eirv&eirDMAIF != 0 {
			note(d.writeReg8(eir, cmdBFC, eirDMAIF))
		}

		if eirv&eirLINKIF != 0 {
			note(d.checkLinkStatus())
			// Reading PHIR clears the PHY-side latch backing LINKIF.
			if _, err := d.readPHY(phir); err != nil {
				note(&BusError{Op: "read phir", Err: err})
			}
			note(d.writeReg8(eir, cmdBFC, eirLINKIF))
		}

		switch {
		case eirv&eirTXERIF != 0:
			note(d.failTX())
			note(d.writeReg8(eir, cmdBFC, eirTXERIF|eirTXIF))
		case eirv&eirTXIF != 0:
			note(d.completeTX())
			note(d.writeReg8(eir, cmdBFC, eirTXIF))
		}

		if eirv&eirRXERIF != 0 {
			note(d.writeReg8(eir, cmdBFC, eirRXERIF))
		}

		for {
			more, err := d.handleRX()
			note(err)
			if !more {
				break
			}
		}
	}
}

// checkLinkStatus reads PHSTAT2 and invokes OnLinkChange on a
// transition. It runs once from Open (to seed d.linkUp) and again for
// every LINKIF, mirroring the reference driver's check_link_status.
func (d *Dev) checkLinkStatus() error {
	v, err := d.readPHY(phstat2)
	if err != nil {
		return &BusError{Op: "read phstat2", Err: err}
	}
	up := v&phstat2LStat != 0
	fullDuplex := v&phstat2DpxStat != 0
	if up != d.linkUp {
		d.linkUp = up
		if d.onLinkChange != nil {
			d.onLinkChange(up, fullDuplex)
		}
	}
	return nil
}
