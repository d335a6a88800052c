// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package linuxspi opens a Linux spidev character device as a
// periph.io-style spi.PortCloser, for hosts that don't have (or don't
// need) a full host-package driver registered: just a devfs node and a
// GPIO interrupt line.
//
// https://www.kernel.org/doc/Documentation/spi/spidev
package linuxspi

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"unsafe"

	pconn "github.com/periph-drivers/enc28j60/conn"
	"github.com/periph-drivers/enc28j60/conn/gpio"
	"github.com/periph-drivers/enc28j60/conn/spi"
	"github.com/periph-drivers/enc28j60/conn/spi/spireg"
)

// RegisterAll globs /dev/spidev* and registers one spireg.Opener per node
// found, named after the device node itself (e.g. "/dev/spidev0.0") with
// an "SPI<bus>.<cs>" alias. Call it once at program startup in place of a
// full host.Init() when only spidev access is needed.
func RegisterAll() error {
	items, err := filepath.Glob("/dev/spidev*")
	if err != nil {
		return err
	}
	sort.Strings(items)
	for _, item := range items {
		parts := strings.Split(strings.TrimPrefix(item, "/dev/spidev"), ".")
		if len(parts) != 2 {
			continue
		}
		bus, err := strconv.Atoi(parts[0])
		if err != nil {
			continue
		}
		cs, err := strconv.Atoi(parts[1])
		if err != nil {
			continue
		}
		n := bus
		if cs != 0 {
			n = -1
		}
		alias := fmt.Sprintf("SPI%d.%d", bus, cs)
		opener := func() (spi.PortCloser, error) { return Open(bus, cs) }
		if err := spireg.Register(item, []string{alias}, n, opener); err != nil {
			return err
		}
	}
	return nil
}

// Open opens /dev/spidev<bus>.<chipSelect>.
//
// The returned Port is not yet usable for I/O: the caller must call
// Connect, as with any spi.Port.
func Open(bus, chipSelect int) (*Port, error) {
	f, err := os.OpenFile(fmt.Sprintf("/dev/spidev%d.%d", bus, chipSelect), os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("linuxspi: %w", err)
	}
	return &Port{c: spiConn{
		name:  fmt.Sprintf("spidev%d.%d", bus, chipSelect),
		f:     f,
		maxHz: 20000000, // the ENC28J60's rated maximum.
	}}, nil
}

// Port is an opened, not yet connected, spidev handle.
type Port struct {
	c spiConn
}

func (p *Port) String() string { return p.c.name }

// Close implements spi.PortCloser.
func (p *Port) Close() error {
	return p.c.f.Close()
}

// LimitSpeed implements spi.PortCloser.
func (p *Port) LimitSpeed(maxHz int64) error {
	if maxHz <= 0 {
		return errors.New("linuxspi: invalid maxHz")
	}
	p.c.mu.Lock()
	defer p.c.mu.Unlock()
	if maxHz < p.c.maxHz {
		p.c.maxHz = maxHz
	}
	return nil
}

// Connect implements spi.Port. It may be called exactly once.
func (p *Port) Connect(maxHz int64, mode spi.Mode, bits int) (spi.Conn, error) {
	p.c.mu.Lock()
	defer p.c.mu.Unlock()
	if p.c.connected {
		return nil, errors.New("linuxspi: Connect can only be called once")
	}
	if mode&^spi.Mode3 != 0 {
		return nil, fmt.Errorf("linuxspi: mode %s not supported", mode)
	}
	if bits == 0 {
		bits = 8
	}
	if maxHz > 0 && maxHz < p.c.maxHz {
		p.c.maxHz = maxHz
	}
	if err := p.c.setFlag(spiIOCMode, uint64(mode&spi.Mode3)); err != nil {
		return nil, fmt.Errorf("linuxspi: set mode: %w", err)
	}
	if err := p.c.setFlag(spiIOCBitsPerWord, uint64(bits)); err != nil {
		return nil, fmt.Errorf("linuxspi: set bits per word: %w", err)
	}
	p.c.bits = uint8(bits)
	p.c.connected = true
	return &p.c, nil
}

// CLK, MOSI, MISO and CS implement spi.Pins. This package does not track
// host pin assignments: each accessor returns gpio.INVALID.
func (p *Port) CLK() gpio.PinOut  { return gpio.INVALID }
func (p *Port) MOSI() gpio.PinOut { return gpio.INVALID }
func (p *Port) MISO() gpio.PinIn  { return gpio.INVALID }
func (p *Port) CS() gpio.PinOut   { return gpio.INVALID }

var _ spi.PortCloser = &Port{}

// spiConn implements spi.Conn over a spidev file descriptor via
// SPI_IOC_MESSAGE(1).
type spiConn struct {
	name string
	f    *os.File

	mu        sync.Mutex
	maxHz     int64
	bits      uint8
	connected bool
}

func (c *spiConn) String() string { return c.name }

// Tx implements spi.Conn. w and r, when both given, must be equal length:
// this package does not implement SPI half duplex.
func (c *spiConn) Tx(w, r []byte) error {
	l := len(w)
	if l == 0 {
		l = len(r)
	}
	if l == 0 {
		return errors.New("linuxspi: Tx with empty buffers")
	}
	if len(w) != 0 && len(r) != 0 && len(w) != len(r) {
		return fmt.Errorf("linuxspi: w and r must be the same length; got %d and %d", len(w), len(r))
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	var x ioctlTransfer
	x.length = uint32(l)
	x.speedHz = uint32(c.maxHz)
	x.bitsPerWord = c.bits
	if len(w) != 0 {
		x.tx = uint64(uintptr(unsafe.Pointer(&w[0])))
	}
	if len(r) != 0 {
		x.rx = uint64(uintptr(unsafe.Pointer(&r[0])))
	}
	if err := c.ioctl(spiIOCTx(1), uintptr(unsafe.Pointer(&x))); err != nil {
		return fmt.Errorf("linuxspi: Tx: %w", err)
	}
	return nil
}

// TxPackets implements spi.Conn. Not needed by the ENC28J60 driver, which
// only ever issues single, same-length-buffer transfers.
func (c *spiConn) TxPackets(p []spi.Packet) error {
	return errors.New("linuxspi: TxPackets not implemented")
}

// Duplex implements conn.Conn.
func (c *spiConn) Duplex() pconn.Duplex {
	return pconn.Full
}

func (c *spiConn) setFlag(op uint, arg uint64) error {
	return c.ioctl(op, uintptr(unsafe.Pointer(&arg)))
}

func (c *spiConn) ioctl(op uint, arg uintptr) error {
	if _, _, errno := syscall.Syscall(syscall.SYS_IOCTL, c.f.Fd(), uintptr(op), arg); errno != 0 {
		return errno
	}
	return nil
}

var _ spi.Conn = &spiConn{}

// ioctlTransfer mirrors struct spi_ioc_transfer in linux/spi/spidev.h.
type ioctlTransfer struct {
	tx          uint64
	rx          uint64
	length      uint32
	speedHz     uint32
	delayUsecs  uint16
	bitsPerWord uint8
	csChange    uint8
	txNBits     uint8
	rxNBits     uint8
	pad         uint16
}

// Linux generic (non-MIPS) _IOC encoding, ported from
// asm-generic/ioctl.h.
const (
	iocNone  uint = 0
	iocWrite uint = 1

	iocNrbits   uint = 8
	iocTypebits uint = 8
	iocSizebits uint = 14

	iocNrshift   uint = 0
	iocTypeshift      = iocNrshift + iocNrbits
	iocSizeshift      = iocTypeshift + iocTypebits
	iocDirshift       = iocSizeshift + iocSizebits
)

func ioc(dir, typ, nr, size uint) uint {
	return (dir << iocDirshift) | (typ << iocTypeshift) | (nr << iocNrshift) | (size << iocSizeshift)
}

func iow(typ, nr, size uint) uint { return ioc(iocWrite, typ, nr, size) }

// spidev IOCTL control codes, from linux/spi/spidev.h.
const spiIOCMagic uint = 'k'

var (
	spiIOCMode        = iow(spiIOCMagic, 1, 1)
	spiIOCBitsPerWord = iow(spiIOCMagic, 3, 1)
)

// spiIOCTx computes SPI_IOC_MESSAGE(n): a transaction of n chained
// transfers.
func spiIOCTx(n int) uint {
	return iow(spiIOCMagic, 0, uint(n)*32)
}
