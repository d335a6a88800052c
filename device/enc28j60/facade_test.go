// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package enc28j60

import (
	"testing"

	"github.com/periph-drivers/enc28j60/conn/conntest"
	"github.com/periph-drivers/enc28j60/conn/spi/spitest"
)

func newTestDev(ops []conntest.IO) (*Dev, *spitest.Playback) {
	p := &spitest.Playback{Playback: conntest.Playback{Ops: ops}}
	d := &Dev{spi: p, scratch: make([]byte, 1+ethMaxFrameLen)}
	return d, p
}

func TestReadReg8Eth(t *testing.T) {
	d, p := newTestDev([]conntest.IO{
		{Write: []byte{cmdRCR | estat.addr, 0}, Read: []byte{0, 0x55}},
	})
	v, err := d.readReg8(estat)
	if err != nil {
		t.Fatal(err)
	}
	if v != 0x55 {
		t.Errorf("v = %#x; want 0x55", v)
	}
	if err := p.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestReadReg8NonEth(t *testing.T) {
	d, p := newTestDev([]conntest.IO{
		{Write: []byte{cmdBFC | econ1.addr, econ1BSel1 | econ1BSel0}},
		{Write: []byte{cmdBFS | econ1.addr, byte(Bank2)}},
		{Write: []byte{cmdRCR | macon1.addr, 0, 0}, Read: []byte{0, 0, 0x77}},
	})
	v, err := d.readReg8(macon1)
	if err != nil {
		t.Fatal(err)
	}
	if v != 0x77 {
		t.Errorf("v = %#x; want 0x77", v)
	}
	if err := p.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestReadWriteReg16(t *testing.T) {
	d, p := newTestDev([]conntest.IO{
		{Write: []byte{cmdBFC | econ1.addr, econ1BSel1 | econ1BSel0}},
		{Write: []byte{cmdBFS | econ1.addr, byte(Bank0)}},
		{Write: []byte{cmdWCR | erdptl.addr, 0x34}},
		{Write: []byte{cmdWCR | erdpth.addr, 0x12}},
		{Write: []byte{cmdRCR | erdptl.addr, 0}, Read: []byte{0, 0x34}},
		{Write: []byte{cmdRCR | erdpth.addr, 0}, Read: []byte{0, 0x12}},
	})
	if err := d.writeReg16(erdpt, cmdWCR, 0x1234); err != nil {
		t.Fatal(err)
	}
	v, err := d.readReg16(erdpt)
	if err != nil {
		t.Fatal(err)
	}
	if v != 0x1234 {
		t.Errorf("v = %#x; want 0x1234", v)
	}
	if err := p.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestWaitForReadyPolls(t *testing.T) {
	d, p := newTestDev([]conntest.IO{
		{Write: []byte{cmdBFC | econ1.addr, econ1BSel1 | econ1BSel0}},
		{Write: []byte{cmdBFS | econ1.addr, byte(Bank3)}},
		{Write: []byte{cmdRCR | mistat.addr, 0, 0}, Read: []byte{0, 0, mistatBusy}},
		{Write: []byte{cmdRCR | mistat.addr, 0, 0}, Read: []byte{0, 0, 0x00}},
	})
	if err := d.waitForReady(mistat, mistatBusy, 0); err != nil {
		t.Fatal(err)
	}
	if err := p.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestReadPHY(t *testing.T) {
	d, p := newTestDev([]conntest.IO{
		{Write: []byte{cmdBFC | econ1.addr, econ1BSel1 | econ1BSel0}},
		{Write: []byte{cmdBFS | econ1.addr, byte(Bank2)}},
		{Write: []byte{cmdWCR | miregadr.addr, phcon1.addr}},
		{Write: []byte{cmdWCR | micmd.addr, micmdMIIRd}},
		{Write: []byte{cmdBFC | econ1.addr, econ1BSel1 | econ1BSel0}},
		{Write: []byte{cmdBFS | econ1.addr, byte(Bank3)}},
		{Write: []byte{cmdRCR | mistat.addr, 0, 0}, Read: []byte{0, 0, 0x00}},
		{Write: []byte{cmdBFC | econ1.addr, econ1BSel1 | econ1BSel0}},
		{Write: []byte{cmdBFS | econ1.addr, byte(Bank2)}},
		{Write: []byte{cmdWCR | micmd.addr, 0}},
		{Write: []byte{cmdRCR | mirdl.addr, 0, 0}, Read: []byte{0, 0, 0x34}},
		{Write: []byte{cmdRCR | mirdh.addr, 0, 0}, Read: []byte{0, 0, 0x12}},
	})
	v, err := d.readPHY(phcon1)
	if err != nil {
		t.Fatal(err)
	}
	if v != 0x1234 {
		t.Errorf("v = %#x; want 0x1234", v)
	}
	if err := p.Close(); err != nil {
		t.Fatal(err)
	}
}
