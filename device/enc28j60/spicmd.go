// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package enc28j60

import "github.com/periph-drivers/enc28j60/conn/spi"

// The seven SPI opcodes. Each register opcode occupies the top three bits
// of the command byte; the low five bits carry the register address. RBM,
// WBM and SRC are fixed single-byte commands, not register-addressed.
const (
	cmdRCR byte = 0x00
	cmdWCR byte = 0x40
	cmdBFS byte = 0x80
	cmdBFC byte = 0xa0

	cmdRBM byte = 0x3a
	cmdWBM byte = 0x7a
	cmdSRC byte = 0xff
)

// readReg8 issues RCR against one 8-bit register. ETH registers return
// their value in the byte immediately following the opcode; MAC/MII/PHY
// shadow registers insert one dummy byte first.
func readReg8(c spi.Conn, r reg8) (byte, error) {
	n := 2
	if !r.eth {
		n = 3
	}
	w := make([]byte, n)
	w[0] = cmdRCR | r.addr
	rx := make([]byte, n)
	if err := c.Tx(w, rx); err != nil {
		return 0, err
	}
	return rx[n-1], nil
}

// writeReg8 issues cmd (WCR, BFS or BFC) against one 8-bit register.
func writeReg8(c spi.Conn, r reg8, cmd byte, v byte) error {
	w := []byte{cmd | r.addr, v}
	return c.Tx(w, nil)
}

// readBuffer streams len(dst) bytes from the chip's current ERDPT via
// RBM, which auto-increments ERDPT on the chip side.
func readBuffer(c spi.Conn, dst []byte) error {
	w := make([]byte, len(dst)+1)
	w[0] = cmdRBM
	rx := make([]byte, len(w))
	if err := c.Tx(w, rx); err != nil {
		return err
	}
	copy(dst, rx[1:])
	return nil
}

// writeBuffer streams src via WBM into scratch, prefixed with the opcode,
// and issues a single SPI write.
func writeBuffer(c spi.Conn, scratch []byte, src []byte) error {
	buf := scratch[:len(src)+1]
	buf[0] = cmdWBM
	copy(buf[1:], src)
	return c.Tx(buf, nil)
}

// softReset issues the System Reset Command. The caller must sleep at
// least 2ms before the next access.
func softReset(c spi.Conn) error {
	return c.Tx([]byte{cmdSRC}, nil)
}
