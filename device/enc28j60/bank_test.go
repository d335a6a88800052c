// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package enc28j60

import (
	"testing"

	"github.com/periph-drivers/enc28j60/conn/conntest"
	"github.com/periph-drivers/enc28j60/conn/spi/spitest"
)

func TestEnsureBankCommonIsFree(t *testing.T) {
	p := &spitest.Playback{}
	var b bankController
	if err := b.ensureBank(p, Common); err != nil {
		t.Fatal(err)
	}
	if err := p.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestEnsureBankCachesSelection(t *testing.T) {
	p := &spitest.Playback{
		Playback: conntest.Playback{
			Ops: []conntest.IO{
				{Write: []byte{cmdBFC | econ1.addr, econ1BSel1 | econ1BSel0}},
				{Write: []byte{cmdBFS | econ1.addr, byte(Bank2)}},
				{Write: []byte{cmdBFC | econ1.addr, econ1BSel1 | econ1BSel0}},
				{Write: []byte{cmdBFS | econ1.addr, byte(Bank3)}},
			},
		},
	}
	var b bankController

	if err := b.ensureBank(p, Bank2); err != nil {
		t.Fatal(err)
	}
	// Same bank again: must not issue another BFC/BFS pair.
	if err := b.ensureBank(p, Bank2); err != nil {
		t.Fatal(err)
	}
	if err := b.ensureBank(p, Bank3); err != nil {
		t.Fatal(err)
	}

	if err := p.Close(); err != nil {
		t.Fatal(err)
	}
}
