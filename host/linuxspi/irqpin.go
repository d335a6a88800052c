// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package linuxspi

import (
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sys/unix"
	"github.com/periph-drivers/enc28j60/conn/gpio"
)

const gpioSysfsPath = "/sys/class/gpio"

// IRQPin is a gpio.PinIn backed by the Linux sysfs GPIO interface
// (/sys/class/gpio), edge-triggered via epoll. It needs no host pin
// driver: only sysfs and a GPIO number.
//
// The ENC28J60's INT output is open-drain, active low, and level held
// until the interrupt source is serviced; callers normally configure it
// for FallingEdge.
type IRQPin struct {
	number int
	name   string

	mu    sync.Mutex
	value *os.File
	epfd  int
	ready bool
	pull  gpio.Pull
	edge  gpio.Edge
}

// OpenIRQPin exports the given GPIO line through sysfs. The pin is not
// ready for WaitForEdge until In is called.
func OpenIRQPin(number int) (*IRQPin, error) {
	// Best effort: EBUSY means a previous run (or another process) already
	// exported it, which is fine.
	_ = sysfsWrite(gpioSysfsPath+"/export", strconv.Itoa(number))
	return &IRQPin{number: number, name: fmt.Sprintf("GPIO%d", number)}, nil
}

func (p *IRQPin) String() string   { return p.name }
func (p *IRQPin) Name() string     { return p.name }
func (p *IRQPin) Number() int      { return p.number }
func (p *IRQPin) Function() string { return "In/" + p.edge.String() }

// In configures the pin as an input with the requested edge detection.
// sysfs GPIO does not expose pull resistor control; pull is recorded but
// otherwise ignored; boards using this driver are expected to supply the
// ENC28J60's required INT pull-up on the board itself.
func (p *IRQPin) In(pull gpio.Pull, edge gpio.Edge) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	dir := fmt.Sprintf("%s/gpio%d/direction", gpioSysfsPath, p.number)
	if err := sysfsWrite(dir, "in"); err != nil {
		return fmt.Errorf("linuxspi: set direction: %w", err)
	}

	edgeStr := "none"
	switch edge {
	case gpio.RisingEdge:
		edgeStr = "rising"
	case gpio.FallingEdge:
		edgeStr = "falling"
	case gpio.BothEdges:
		edgeStr = "both"
	}
	edgePath := fmt.Sprintf("%s/gpio%d/edge", gpioSysfsPath, p.number)
	if err := sysfsWrite(edgePath, edgeStr); err != nil {
		return fmt.Errorf("linuxspi: set edge: %w", err)
	}

	valuePath := fmt.Sprintf("%s/gpio%d/value", gpioSysfsPath, p.number)
	f, err := os.OpenFile(valuePath, os.O_RDONLY, 0)
	if err != nil {
		return fmt.Errorf("linuxspi: open value: %w", err)
	}

	epfd, err := unix.EpollCreate1(0)
	if err != nil {
		f.Close()
		return fmt.Errorf("linuxspi: epoll_create1: %w", err)
	}
	ev := unix.EpollEvent{Events: unix.EPOLLPRI | unix.EPOLLERR, Fd: int32(f.Fd())}
	if err := unix.EpollCtl(epfd, unix.EPOLL_CTL_ADD, int(f.Fd()), &ev); err != nil {
		f.Close()
		unix.Close(epfd)
		return fmt.Errorf("linuxspi: epoll_ctl: %w", err)
	}

	if p.value != nil {
		p.value.Close()
	}
	if p.ready {
		unix.Close(p.epfd)
	}
	p.value = f
	p.epfd = epfd
	p.ready = true
	p.pull = pull
	p.edge = edge

	// The initial read after opening always reports the current level;
	// discard it so the first WaitForEdge blocks for an actual transition.
	p.readValue()
	return nil
}

// Read implements gpio.PinIn.
func (p *IRQPin) Read() gpio.Level {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.readValue()
}

func (p *IRQPin) readValue() gpio.Level {
	if p.value == nil {
		return gpio.Low
	}
	var buf [8]byte
	if _, err := p.value.ReadAt(buf[:1], 0); err != nil {
		return gpio.Low
	}
	if buf[0] == '1' {
		return gpio.High
	}
	return gpio.Low
}

// WaitForEdge implements gpio.PinIn using epoll_wait on the sysfs value
// file descriptor.
func (p *IRQPin) WaitForEdge(timeout time.Duration) bool {
	p.mu.Lock()
	epfd, ready := p.epfd, p.ready
	p.mu.Unlock()
	if !ready {
		return false
	}

	ms := -1
	if timeout > 0 {
		ms = int(timeout / time.Millisecond)
	}
	var events [1]unix.EpollEvent
	n, err := unix.EpollWait(epfd, events[:], ms)
	if err != nil || n <= 0 {
		return false
	}
	p.mu.Lock()
	p.readValue()
	p.mu.Unlock()
	return true
}

// Pull implements gpio.PinIn.
func (p *IRQPin) Pull() gpio.Pull { return p.pull }

// DefaultPull implements gpio.PinIn.
func (p *IRQPin) DefaultPull() gpio.Pull { return gpio.Float }

var _ gpio.PinIn = &IRQPin{}

func sysfsWrite(path, value string) error {
	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.WriteString(value)
	return err
}
