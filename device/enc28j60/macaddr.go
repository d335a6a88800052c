// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package enc28j60

import "crypto/rand"

// setMACAddress programs the six MAADRn registers from mac, MAADR1 holding
// mac[0] (the OUI's first octet) through MAADR6 holding mac[5], per the
// datasheet's MSB-first convention confirmed against the reference
// driver's set_hw_macaddr.
func (d *Dev) setMACAddress(mac [6]byte) error {
	for i := 0; i < 6; i++ {
		if err := d.writeReg8(maadrByIndex(i), cmdWCR, mac[i]); err != nil {
			return &BusError{Op: "write maadr", Err: err}
		}
	}
	return nil
}

// SetMACAddress reprograms the chip's station address while open.
func (d *Dev) SetMACAddress(mac [6]byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.wrap(d.setMACAddress(mac))
}

// RandomizeMACAddress generates a locally-administered, unicast address,
// programs it, and returns it. Used when the caller has no burned-in
// address to assign (the ENC28J60 has none of its own).
func (d *Dev) RandomizeMACAddress() ([6]byte, error) {
	var mac [6]byte
	if _, err := rand.Read(mac[:]); err != nil {
		return mac, err
	}
	mac[0] &^= 0x01 // clear multicast bit
	mac[0] |= 0x02  // set locally-administered bit
	if err := d.SetMACAddress(mac); err != nil {
		return mac, err
	}
	return mac, nil
}
