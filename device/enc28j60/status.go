// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package enc28j60

import "fmt"

// rsvSize is the size in bytes of a Receive Status Vector.
const rsvSize = 6

// tsvSize is the size in bytes of a Transmit Status Vector.
const tsvSize = 7

// RsvStatus is a single-bit mask within RxStatusVector.Status.
type RsvStatus uint16

// Known RSV status bits, per the ENC28J60 datasheet.
const (
	RsvLongDropEvent   RsvStatus = 1 << 0
	RsvCarrierEvent    RsvStatus = 1 << 2
	RsvCrcError        RsvStatus = 1 << 4
	RsvLengthCheckError RsvStatus = 1 << 5
	RsvLengthOutOfRange RsvStatus = 1 << 6
	RsvRxOk            RsvStatus = 1 << 7
	RsvRxMulticast     RsvStatus = 1 << 8
	RsvRxBroadcast     RsvStatus = 1 << 9
	RsvDribbleNibble   RsvStatus = 1 << 10
	RsvRxControlFrame  RsvStatus = 1 << 11
	RsvRxPauseFrame    RsvStatus = 1 << 12
	RsvRxUnknownOpcode RsvStatus = 1 << 13
	RsvRxTypeVlan      RsvStatus = 1 << 14
)

// RxStatusVector is the 6-byte record the chip writes immediately before
// each received frame in the RX FIFO.
type RxStatusVector struct {
	NextPtr   uint16
	ByteCount uint16
	Status    uint16
}

func decodeRSV(b []byte) RxStatusVector {
	_ = b[rsvSize-1]
	return RxStatusVector{
		NextPtr:   uint16(b[0]) | uint16(b[1])<<8,
		ByteCount: uint16(b[2]) | uint16(b[3])<<8,
		Status:    uint16(b[4]) | uint16(b[5])<<8,
	}
}

// Has reports whether the given status bit is set.
func (r RxStatusVector) Has(bit RsvStatus) bool {
	return r.Status&uint16(bit) != 0
}

// Ok reports whether the chip marked the frame as successfully received.
func (r RxStatusVector) Ok() bool {
	return r.Has(RsvRxOk)
}

func (r RxStatusVector) String() string {
	return fmt.Sprintf("RSV{next=%#04x count=%d status=%#04x}", r.NextPtr, r.ByteCount, r.Status)
}

// TxStatusVector is the 7-byte record the chip writes after each
// transmission attempt, located right after the frame in the TX region.
type TxStatusVector struct {
	ByteCount             uint16
	Status1               uint16
	TotalBytesTransmitted uint16
	Status2               uint8
}

func decodeTSV(b []byte) TxStatusVector {
	_ = b[tsvSize-1]
	return TxStatusVector{
		ByteCount:             uint16(b[0]) | uint16(b[1])<<8,
		Status1:               uint16(b[2]) | uint16(b[3])<<8,
		TotalBytesTransmitted: uint16(b[4]) | uint16(b[5])<<8,
		Status2:               b[6],
	}
}

func (t TxStatusVector) String() string {
	return fmt.Sprintf("TSV{count=%d status1=%#04x total=%d status2=%#02x}",
		t.ByteCount, t.Status1, t.TotalBytesTransmitted, t.Status2)
}
