// Copyright 2016 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package enc28j60

// Sink receives frames handed up from the RX pipeline. It stands in for
// the host network stack's frame-buffer allocation and delivery entry
// point (alloc_skb_ip_align/netif_rx in the kernel driver this core is
// modeled on).
//
// Receive must not block for long: it runs on the same goroutine that
// drains the chip's interrupt, holding the driver lock.
type Sink interface {
	Receive(frame []byte)
}

// SinkFunc adapts a plain function to Sink.
type SinkFunc func(frame []byte)

// Receive implements Sink.
func (f SinkFunc) Receive(frame []byte) { f(frame) }
