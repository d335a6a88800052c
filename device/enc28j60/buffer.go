// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package enc28j60

// readBufferAt sets ERDPT to addr then streams len(dst) bytes via RBM.
func (d *Dev) readBufferAt(addr uint16, dst []byte) error {
	if err := d.writeReg16(erdpt, cmdWCR, addr); err != nil {
		return err
	}
	return readBuffer(d.spi, dst)
}

// writeBuffer streams src through the shared scratch buffer via WBM at
// the chip's current EWRPT, which auto-increments on the chip side.
func (d *Dev) writeBuffer(src []byte) error {
	return writeBuffer(d.spi, d.scratch, src)
}
