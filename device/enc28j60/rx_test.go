// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package enc28j60

import (
	"bytes"
	"testing"

	"github.com/periph-drivers/enc28j60/conn/conntest"
)

func TestHandleRXSingleFrame(t *testing.T) {
	payload := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14}

	d, p := newTestDev([]conntest.IO{
		// EPKTCNT read: one frame buffered.
		{Write: []byte{cmdBFC | econ1.addr, econ1BSel1 | econ1BSel0}},
		{Write: []byte{cmdBFS | econ1.addr, byte(Bank1)}},
		{Write: []byte{cmdRCR | epktcnt.addr, 0}, Read: []byte{0, 1}},

		// Point ERDPT at the oldest frame, then read its 6-byte RSV.
		{Write: []byte{cmdBFC | econ1.addr, econ1BSel1 | econ1BSel0}},
		{Write: []byte{cmdBFS | econ1.addr, byte(Bank0)}},
		{Write: []byte{cmdWCR | erdptl.addr, 0x00}},
		{Write: []byte{cmdWCR | erdpth.addr, 0x00}},
		{
			Write: append([]byte{cmdRBM}, make([]byte, 6)...),
			Read:  append([]byte{0}, 0x40, 0x00, 0x0e, 0x00, 0x80, 0x00),
		},

		// Frame payload.
		{
			Write: append([]byte{cmdRBM}, make([]byte, 14)...),
			Read:  append([]byte{0}, payload...),
		},

		// ERXRDPT advances to NextPtr-1.
		{Write: []byte{cmdWCR | erxrdptl.addr, 0x3f}},
		{Write: []byte{cmdWCR | erxrdpth.addr, 0x00}},

		// Decrement EPKTCNT.
		{Write: []byte{cmdBFS | econ2.addr, econ2PktDec}},
	})

	var got []byte
	d.sink = SinkFunc(func(frame []byte) { got = append([]byte(nil), frame...) })

	more, err := d.handleRX()
	if err != nil {
		t.Fatal(err)
	}
	if !more {
		t.Error("handleRX reported no frame; want true")
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("sink received %v; want %v", got, payload)
	}
	if d.nextPacketPtr != 0x0040 {
		t.Errorf("nextPacketPtr = %#x; want 0x0040", d.nextPacketPtr)
	}

	if err := p.Close(); err != nil {
		t.Fatal(err)
	}

	// A second call with EPKTCNT back at 0 reports no frame and issues a
	// single read.
	d2, p2 := newTestDev([]conntest.IO{
		{Write: []byte{cmdRCR | epktcnt.addr, 0}, Read: []byte{0, 0}},
	})
	d2.bank = bankController{current: Bank1, known: true}
	more, err = d2.handleRX()
	if err != nil {
		t.Fatal(err)
	}
	if more {
		t.Error("handleRX reported a frame; want false")
	}
	if err := p2.Close(); err != nil {
		t.Fatal(err)
	}
}
