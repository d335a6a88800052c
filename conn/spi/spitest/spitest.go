// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package spitest is meant to be used to test drivers over a fake SPI port.
package spitest

import (
	"errors"
	"io"
	"log"

	"github.com/periph-drivers/enc28j60/conn"
	"github.com/periph-drivers/enc28j60/conn/conntest"
	"github.com/periph-drivers/enc28j60/conn/gpio"
	"github.com/periph-drivers/enc28j60/conn/spi"
)

// RecordRaw implements spi.PortCloser and spi.Conn. It sends everything
// written to it to W.
type RecordRaw struct {
	conntest.RecordRaw
}

// NewRecordRaw is a shortcut to create a RecordRaw.
func NewRecordRaw(w io.Writer) *RecordRaw {
	return &RecordRaw{conntest.RecordRaw{W: w}}
}

// Close is a no-op.
func (r *RecordRaw) Close() error {
	return nil
}

// LimitSpeed is a no-op.
func (r *RecordRaw) LimitSpeed(maxHz int64) error {
	return nil
}

// Connect implements spi.Port; it returns itself as the spi.Conn.
func (r *RecordRaw) Connect(maxHz int64, mode spi.Mode, bits int) (spi.Conn, error) {
	return r, nil
}

// TxPackets implements spi.Conn.
func (r *RecordRaw) TxPackets(p []spi.Packet) error {
	return errors.New("spitest: not yet implemented")
}

// Record implements spi.PortCloser and spi.Conn that records everything
// written to it.
//
// This can then be used to feed to Playback to do "replay" based unit tests.
type Record struct {
	// Port is the real port to pass through, if any. Can be nil if only writes
	// are being recorded.
	Port spi.PortCloser
	// CLKPin, MOSIPin, CSPin and MISOPin are returned by the corresponding
	// spi.Pins accessors. An unset one falls back to Port's pin when Port
	// implements spi.Pins, else to gpio.INVALID.
	CLKPin, MOSIPin, CSPin gpio.PinOut
	MISOPin                gpio.PinIn

	Ops []conntest.IO
}

func (r *Record) String() string {
	return "record"
}

// Close implements spi.PortCloser.
func (r *Record) Close() error {
	if r.Port != nil {
		return r.Port.Close()
	}
	return nil
}

// LimitSpeed implements spi.PortCloser.
func (r *Record) LimitSpeed(maxHz int64) error {
	if r.Port != nil {
		return r.Port.LimitSpeed(maxHz)
	}
	return nil
}

// Connect implements spi.Port; it returns itself as the spi.Conn.
func (r *Record) Connect(maxHz int64, mode spi.Mode, bits int) (spi.Conn, error) {
	if r.Port != nil {
		if _, err := r.Port.Connect(maxHz, mode, bits); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Tx implements spi.Conn.
func (r *Record) Tx(w, read []byte) error {
	if r.Port == nil {
		if len(read) != 0 {
			return errors.New("spitest: read unsupported when no port is connected")
		}
	} else {
		c, err := r.Port.Connect(0, 0, 8)
		if err != nil {
			return err
		}
		if err := c.Tx(w, read); err != nil {
			return err
		}
	}
	io := conntest.IO{Write: make([]byte, len(w))}
	if len(read) != 0 {
		io.Read = make([]byte, len(read))
	}
	copy(io.Write, w)
	copy(io.Read, read)
	r.Ops = append(r.Ops, io)
	return nil
}

// TxPackets implements spi.Conn.
func (r *Record) TxPackets(p []spi.Packet) error {
	return errors.New("spitest: not yet implemented")
}

// Duplex implements spi.Conn.
func (r *Record) Duplex() conn.Duplex {
	if r.Port != nil {
		if c, err := r.Port.Connect(0, 0, 8); err == nil {
			return c.Duplex()
		}
	}
	return conn.DuplexUnknown
}

// CLK implements spi.Pins.
func (r *Record) CLK() gpio.PinOut {
	if r.CLKPin != nil {
		return r.CLKPin
	}
	if p, ok := r.Port.(spi.Pins); ok {
		return p.CLK()
	}
	return gpio.INVALID
}

// MOSI implements spi.Pins.
func (r *Record) MOSI() gpio.PinOut {
	if r.MOSIPin != nil {
		return r.MOSIPin
	}
	if p, ok := r.Port.(spi.Pins); ok {
		return p.MOSI()
	}
	return gpio.INVALID
}

// MISO implements spi.Pins.
func (r *Record) MISO() gpio.PinIn {
	if r.MISOPin != nil {
		return r.MISOPin
	}
	if p, ok := r.Port.(spi.Pins); ok {
		return p.MISO()
	}
	return gpio.INVALID
}

// CS implements spi.Pins.
func (r *Record) CS() gpio.PinOut {
	if r.CSPin != nil {
		return r.CSPin
	}
	if p, ok := r.Port.(spi.Pins); ok {
		return p.CS()
	}
	return gpio.INVALID
}

// Playback implements spi.PortCloser and spi.Conn and plays back a recorded
// I/O flow.
//
// While "replay" type of unit tests are of limited value, they still present
// an easy way to do basic code coverage.
type Playback struct {
	conntest.Playback
	CLKPin, MOSIPin, CSPin gpio.PinOut
	MISOPin                gpio.PinIn
}

// Close implements spi.PortCloser.
func (p *Playback) Close() error {
	return p.Playback.Close()
}

// LimitSpeed implements spi.PortCloser.
func (p *Playback) LimitSpeed(maxHz int64) error {
	return nil
}

// Connect implements spi.Port; it returns itself as the spi.Conn.
func (p *Playback) Connect(maxHz int64, mode spi.Mode, bits int) (spi.Conn, error) {
	return p, nil
}

// TxPackets implements spi.Conn.
func (p *Playback) TxPackets(pkts []spi.Packet) error {
	return errors.New("spitest: not yet implemented")
}

// CLK implements spi.Pins.
func (p *Playback) CLK() gpio.PinOut {
	if p.CLKPin != nil {
		return p.CLKPin
	}
	return gpio.INVALID
}

// MOSI implements spi.Pins.
func (p *Playback) MOSI() gpio.PinOut {
	if p.MOSIPin != nil {
		return p.MOSIPin
	}
	return gpio.INVALID
}

// MISO implements spi.Pins.
func (p *Playback) MISO() gpio.PinIn {
	if p.MISOPin != nil {
		return p.MISOPin
	}
	return gpio.INVALID
}

// CS implements spi.Pins.
func (p *Playback) CS() gpio.PinOut {
	if p.CSPin != nil {
		return p.CSPin
	}
	return gpio.INVALID
}

// Log logs all the bytes sent and received by wrapping a spi.PortCloser.
type Log struct {
	spi.PortCloser
}

// Connect implements spi.Port.
func (l *Log) Connect(maxHz int64, mode spi.Mode, bits int) (spi.Conn, error) {
	c, err := l.PortCloser.Connect(maxHz, mode, bits)
	if err != nil {
		return nil, err
	}
	return &logConn{c}, nil
}

type logConn struct {
	spi.Conn
}

func (l *logConn) Tx(w, r []byte) error {
	err := l.Conn.Tx(w, r)
	log.Printf("Tx(%#v, %d bytes) = %#v, %v", w, len(r), r, err)
	return err
}

func (l *logConn) TxPackets(p []spi.Packet) error {
	err := l.Conn.TxPackets(p)
	log.Printf("TxPackets(%d packets) = %v", len(p), err)
	return err
}

var _ spi.PortCloser = &RecordRaw{}
var _ spi.Conn = &RecordRaw{}
var _ spi.PortCloser = &Record{}
var _ spi.Conn = &Record{}
var _ spi.Pins = &Record{}
var _ spi.PortCloser = &Playback{}
var _ spi.Conn = &Playback{}
var _ spi.Pins = &Playback{}
var _ spi.PortCloser = &Log{}
