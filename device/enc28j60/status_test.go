// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package enc28j60

import "testing"

func TestDecodeRSV(t *testing.T) {
	// next=0x0400, count=64, status=RxOk|RxBroadcast.
	b := []byte{0x00, 0x04, 0x40, 0x00, 0x80, 0x02}
	rsv := decodeRSV(b)
	if rsv.NextPtr != 0x0400 {
		t.Errorf("NextPtr = %#x; want 0x0400", rsv.NextPtr)
	}
	if rsv.ByteCount != 64 {
		t.Errorf("ByteCount = %d; want 64", rsv.ByteCount)
	}
	if !rsv.Ok() {
		t.Error("Ok() = false; want true")
	}
	if !rsv.Has(RsvRxBroadcast) {
		t.Error("Has(RsvRxBroadcast) = false; want true")
	}
	if rsv.Has(RsvCrcError) {
		t.Error("Has(RsvCrcError) = true; want false")
	}
}

func TestDecodeRSVBadFrame(t *testing.T) {
	// status has none of RxOk set, CrcError set instead.
	b := []byte{0x00, 0x04, 0x10, 0x00, 0x10, 0x00}
	rsv := decodeRSV(b)
	if rsv.Ok() {
		t.Error("Ok() = true; want false")
	}
	if !rsv.Has(RsvCrcError) {
		t.Error("Has(RsvCrcError) = false; want true")
	}
}

func TestDecodeTSV(t *testing.T) {
	b := []byte{0x40, 0x00, 0x01, 0x00, 0x40, 0x00, 0x00}
	tsv := decodeTSV(b)
	if tsv.ByteCount != 0x40 {
		t.Errorf("ByteCount = %#x; want 0x40", tsv.ByteCount)
	}
	if tsv.TotalBytesTransmitted != 0x40 {
		t.Errorf("TotalBytesTransmitted = %#x; want 0x40", tsv.TotalBytesTransmitted)
	}
}
