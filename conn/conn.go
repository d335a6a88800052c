// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package conn

import "fmt"

// Duplex specifies whether communication can happen simultaneously both ways.
//
// Half duplex (I²C, 1-wire) requires the read to happen after the write,
// while full duplex (SPI, UART) can read and write at the same time.
type Duplex int

const (
	// DuplexUnknown is used when the duplex of a connection is yet to be
	// determined.
	DuplexUnknown Duplex = iota
	// Half means the connection is half-duplex, that is, data flows one way at
	// a time.
	Half
	// Full means the connection is full-duplex, that is, data flows both ways
	// simultaneously.
	Full
)

func (d Duplex) String() string {
	switch d {
	case DuplexUnknown:
		return "DuplexUnknown"
	case Half:
		return "Half"
	case Full:
		return "Full"
	default:
		return fmt.Sprintf("Duplex(%d)", int(d))
	}
}

// Conn defines the interface for a connection on a point-to-point
// communication channel.
//
// The channel may either be write-only or read-write, either half-duplex or
// full duplex.
//
// This is the lowest common denominator for all point-to-point communication
// channels.
//
// Implementation are expected to also implement the following interfaces:
// - fmt.Stringer which returns something meaningful to the user like "SPI0.1",
//   "I2C1.76", "COM6", etc.
// - io.Writer as an way to use io.Copy() on a write-only device.
type Conn interface {
	// Tx does a single transaction.
	//
	// For full duplex protocols (SPI, UART), the two buffers must have the same
	// length as both reading and writing happen simultaneously.
	//
	// For half duplex protocols (I²C), there is no restriction as reading
	// happens after writing, and r can be nil.
	Tx(w, r []byte) error
	// Duplex returns the current duplex setting for this point-to-point
	// connection.
	Duplex() Duplex
}

// Resource is a generic handle to a device, bus or port that can be halted.
type Resource interface {
	fmt.Stringer
	// Halt stops the resource, for example a continuously running operation,
	// and brings it back to an idle state.
	Halt() error
}
