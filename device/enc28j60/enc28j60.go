// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package enc28j60 controls a Microchip ENC28J60 stand-alone 10BASE-T
// Ethernet controller over SPI.
//
// https://ww1.microchip.com/downloads/en/DeviceDoc/39662e.pdf
//
// The chip multiplexes a flat 8-bit register address space into four
// banks plus a small common region, exposes an 8KiB on-chip SRAM split
// into a circular RX FIFO and a linear TX region, and signals RX, TX
// completion, TX error, link change and DMA completion on one interrupt
// line (EIR). This package mediates between that wire protocol and a
// Sink that receives decoded frames.
package enc28j60

import (
	"sync"
	"time"

	"github.com/periph-drivers/enc28j60/conn"
	"github.com/periph-drivers/enc28j60/conn/gpio"
	"github.com/periph-drivers/enc28j60/conn/spi"
)

// ethMaxFrameLen is the largest Ethernet frame (including header and FCS)
// the chip is configured to accept or transmit.
const ethMaxFrameLen = 1518

// Fixed partition of the chip's 8KiB (0x0000-0x1fff) on-chip SRAM.
const (
	rxFIFOStart uint16 = 0x0000
	rxFIFOEnd   uint16 = 0x19ff
	txStart     uint16 = 0x1a00
	txEnd       uint16 = 0x1fff
)

// enc28j60LampsMode configures both status LEDs to the chip's default
// "link/activity, link" mode (PHLCON, datasheet table 10-1).
const enc28j60LampsMode = 0x3476

// Opts configures a Dev at construction time.
type Opts struct {
	// Sink receives successfully received frames. May be nil to drop RX
	// traffic (useful for TX-only tests).
	Sink Sink
	// OnLinkChange, if set, is called whenever checkLinkStatus observes a
	// link transition: from Open when the link is already up, and from the
	// interrupt-drain goroutine afterwards.
	OnLinkChange func(up, fullDuplex bool)
}

// txRequest is the parked outbound frame, guarded by Dev.pendingMu.
type txRequest struct {
	frame []byte
}

// Dev is a handle to an initialized ENC28J60 device.
//
// Dev.mu is the driver-wide sleepable lock of the concurrency model: it
// is held for the duration of Open, Stop, one interrupt-drain pass and
// one Transmit call, and may be held across SPI I/O and time.Sleep.
// Dev.pendingMu guards only the `pending` pointer, the Go analogue of the
// spec's IRQ-safe spinlock around the parked TX buffer.
type Dev struct {
	spi  spi.Conn
	irq  gpio.PinIn
	sink Sink

	onLinkChange func(up, fullDuplex bool)

	bank    bankController
	scratch []byte

	mu            sync.Mutex
	nextPacketPtr uint16
	queueStopped  bool
	linkUp        bool

	pendingMu sync.Mutex
	pending   *txRequest

	stop chan struct{}
	done sync.WaitGroup
}

// New returns an unopened Dev. Call Open before using it.
//
// spiConn must already be connected at Mode0, full duplex, 8 bits per
// word, at a clock no higher than 20MHz, per the datasheet. irq must be
// configured by the caller for FallingEdge detection: the ENC28J60 INT
// pin is active low.
func New(spiConn spi.Conn, irq gpio.PinIn, opts Opts) *Dev {
	return &Dev{
		spi:          spiConn,
		irq:          irq,
		sink:         opts.Sink,
		onLinkChange: opts.OnLinkChange,
		scratch:      make([]byte, 1+ethMaxFrameLen),
	}
}

func (d *Dev) String() string {
	return "enc28j60"
}

// Open resets and configures the chip, assigns mac, enables the receiver
// and interrupts, and starts the interrupt-drain goroutine. It mirrors
// DeviceOperations::open of the driver this core is modeled on.
func (d *Dev) Open(mac [6]byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.initHardware(); err != nil {
		return d.wrap(err)
	}
	if err := d.setMACAddress(mac); err != nil {
		return d.wrap(err)
	}
	if err := d.enableHardware(); err != nil {
		return d.wrap(err)
	}
	if err := d.checkLinkStatus(); err != nil {
		return d.wrap(err)
	}

	d.stop = make(chan struct{})
	d.done.Add(1)
	go d.driveInterrupts(d.stop)

	return nil
}

// Stop signals the interrupt-drain goroutine to exit, waits for it, then
// disables the chip. It mirrors DeviceOperations::stop.
func (d *Dev) Stop() error {
	d.mu.Lock()
	stop := d.stop
	d.stop = nil
	d.mu.Unlock()

	if stop != nil {
		close(stop)
		d.done.Wait()
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	return d.wrap(d.disableHardware())
}

// Halt implements conn.Resource. It is equivalent to Stop if the device
// is open, a no-op otherwise.
func (d *Dev) Halt() error {
	d.mu.Lock()
	open := d.stop != nil
	d.mu.Unlock()
	if !open {
		return nil
	}
	return d.Stop()
}

var _ conn.Resource = &Dev{}

// driveInterrupts waits for the chip's interrupt pin to assert, then
// drains it under the driver lock, until Stop closes stop (the channel
// Open stored in d.stop).
func (d *Dev) driveInterrupts(stop <-chan struct{}) {
	defer d.done.Done()
	for {
		select {
		case <-stop:
			return
		default:
		}
		if !d.irq.WaitForEdge(500 * time.Millisecond) {
			continue
		}
		d.mu.Lock()
		if err := d.handleInterrupt(); err != nil {
			// Per the error-handling design, a bus error aborts the
			// current drain pass; the next edge (or the chip's
			// level-sensitive INT re-assertion) re-enters.
			_ = d.wrap(err)
		}
		d.mu.Unlock()
	}
}

func (d *Dev) stopQueue() {
	d.queueStopped = true
}

func (d *Dev) wakeQueue() {
	d.queueStopped = false
}
