// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// enc28j60d opens an ENC28J60 over a Linux spidev node and logs the
// frames it receives, a userspace stand-in for the kernel netdev this
// chip would normally register with.
package main

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/periph-drivers/enc28j60/conn/gpio"
	"github.com/periph-drivers/enc28j60/conn/spi"

	"github.com/periph-drivers/enc28j60/device/enc28j60"
	"github.com/periph-drivers/enc28j60/host/linuxspi"
)

// frameLogger is the Sink passed to the driver: it prints one line per
// received frame instead of handing it to a network stack.
type frameLogger struct{}

func (frameLogger) Receive(frame []byte) {
	n := len(frame)
	if n > 14 {
		n = 14
	}
	fmt.Printf("rx: %d bytes, hdr %s\n", len(frame), hex.EncodeToString(frame[:n]))
}

func parseMAC(s string) ([6]byte, error) {
	var mac [6]byte
	raw, err := hex.DecodeString(s)
	if err != nil || len(raw) != 6 {
		return mac, fmt.Errorf("enc28j60d: -mac must be 12 hex digits")
	}
	copy(mac[:], raw)
	return mac, nil
}

func randomMAC() ([6]byte, error) {
	var mac [6]byte
	if _, err := rand.Read(mac[:]); err != nil {
		return mac, err
	}
	mac[0] &^= 0x01 // clear multicast bit
	mac[0] |= 0x02  // set locally administered bit
	return mac, nil
}

func mainImpl() error {
	spiPath := flag.String("spi", "/dev/spidev0.0", "spidev device node to use")
	irqNum := flag.Int("irq", 0, "GPIO number wired to the chip's INT pin")
	macStr := flag.String("mac", "", "fixed MAC address as 12 hex digits (default: random locally-administered)")
	verbose := flag.Bool("v", false, "verbose mode")
	flag.Parse()
	if !*verbose {
		log.SetOutput(io.Discard)
	}
	log.SetFlags(log.Lmicroseconds)
	if flag.NArg() != 0 {
		return errors.New("enc28j60d: unexpected argument, try -help")
	}

	var bus, chipSelect int
	if _, err := fmt.Sscanf(*spiPath, "/dev/spidev%d.%d", &bus, &chipSelect); err != nil {
		return fmt.Errorf("enc28j60d: -spi must look like /dev/spidev<bus>.<cs>: %w", err)
	}

	port, err := linuxspi.Open(bus, chipSelect)
	if err != nil {
		return err
	}
	defer port.Close()
	conn, err := port.Connect(20000000, spi.Mode0, 8)
	if err != nil {
		return err
	}

	irq, err := linuxspi.OpenIRQPin(*irqNum)
	if err != nil {
		return err
	}
	// The chip's INT pin is active low.
	if err := irq.In(gpio.PullNoChange, gpio.FallingEdge); err != nil {
		return err
	}

	var mac [6]byte
	if *macStr != "" {
		if mac, err = parseMAC(*macStr); err != nil {
			return err
		}
	} else {
		if mac, err = randomMAC(); err != nil {
			return err
		}
	}

	dev := enc28j60.New(conn, irq, enc28j60.Opts{
		Sink: frameLogger{},
		OnLinkChange: func(up, fullDuplex bool) {
			log.Printf("link: up=%t fullDuplex=%t", up, fullDuplex)
		},
	})
	if err := dev.Open(mac); err != nil {
		return err
	}
	log.Printf("Found %s", dev)

	chanSignal := make(chan os.Signal, 1)
	signal.Notify(chanSignal, os.Interrupt, syscall.SIGTERM)
	<-chanSignal
	return dev.Stop()
}

func main() {
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "enc28j60d: %s.\n", err)
		os.Exit(1)
	}
}
