// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package enc28j60

// handleRX drains at most one buffered frame. It reports whether a frame
// was present so the interrupt loop can keep calling it until EPKTCNT
// reads zero, mirroring the reference driver's handle_rx.
func (d *Dev) handleRX() (bool, error) {
	cnt, err := d.readReg8(epktcnt)
	if err != nil {
		return false, &BusError{Op: "read epktcnt", Err: err}
	}
	if cnt == 0 {
		return false, nil
	}

	err = d.handleRXPacket()
	if decErr := d.writeReg8(econ2, cmdBFS, econ2PktDec); decErr != nil && err == nil {
		err = &BusError{Op: "set econ2.pktdec", Err: decErr}
	}
	return true, err
}

// handleRXPacket reads the status vector the chip wrote ahead of the
// oldest buffered frame, hands the frame to the sink in a freshly
// allocated slice if it is sound, and, once the status vector has been
// read, always advances ERXRDPT and nextPacketPtr past the frame before
// returning, so a dropped frame does not wedge the FIFO. A failed status
// vector read returns without advancing.
func (d *Dev) handleRXPacket() (err error) {
	var hdr [rsvSize]byte
	if rerr := d.readBufferAt(d.nextPacketPtr, hdr[:]); rerr != nil {
		return &BusError{Op: "read rsv", Err: rerr}
	}
	rsv := decodeRSV(hdr[:])
	next := nextRxStartPtr(rsv.NextPtr)

	defer func() {
		rdpt := erxrdptWorkaround(next, rxFIFOStart, rxFIFOEnd)
		if werr := d.writeReg16(erxrdpt, cmdWCR, rdpt); werr != nil && err == nil {
			err = &BusError{Op: "write erxrdpt", Err: werr}
		}
		d.nextPacketPtr = next
	}()

	if !rsv.Ok() {
		return &FrameError{RSV: rsv}
	}
	n := int(rsv.ByteCount)
	if n < 0 || n > ethMaxFrameLen {
		return &FrameError{RSV: rsv}
	}

	frame := make([]byte, n)
	if rerr := readBuffer(d.spi, frame); rerr != nil {
		return &BusError{Op: "read frame", Err: rerr}
	}
	if d.sink != nil {
		d.sink.Receive(frame)
	}
	return nil
}
