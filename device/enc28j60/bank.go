// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package enc28j60

import "github.com/periph-drivers/enc28j60/conn/spi"

// bankController caches the chip's currently selected register bank and
// emits the BFC+BFS pair on ECON1 needed to switch it, so repeated
// accesses to the same bank cost one SPI transaction instead of three.
type bankController struct {
	current Bank
	known   bool
}

// ensureBank switches the chip to target if it isn't already selected.
// Common requires no switch: the five common registers are reachable from
// any bank.
func (b *bankController) ensureBank(c spi.Conn, target Bank) error {
	if target == Common {
		return nil
	}
	if b.known && b.current == target {
		return nil
	}
	if err := writeReg8(c, econ1, cmdBFC, econ1BSel1|econ1BSel0); err != nil {
		return err
	}
	if err := writeReg8(c, econ1, cmdBFS, byte(target)); err != nil {
		return err
	}
	b.current = target
	b.known = true
	return nil
}
