package gxsocket

// --------------------------------------------------------------------------
//
//	Gurux Ltd
//
// Filename:        $HeadURL$
//
// Version:         $Revision$,
//
//	$Date$
//	$Author$
//
// # Copyright (c) Gurux Ltd
//
// ---------------------------------------------------------------------------
//
//	DESCRIPTION
//
// This file is a part of Gurux Device Framework.
//
// Gurux Device Framework is Open Source software; you can redistribute it
// and/or modify it under the terms of the GNU General Public License
// as published by the Free Software Foundation; version 2 of the License.
// Gurux Device Framework is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU General Public License for more details.
//
// More information of Gurux products: https://www.gurux.org
//
// This code is licensed under the GNU General Public License v2.
// Full text may be retrieved at http://www.gnu.org/licenses/gpl-2.0.txt
// ---------------------------------------------------------------------------

import (
	"encoding/binary"
	"time"

	"github.com/Gurux/gxcommon-go"
)

// MaxRecv is the buffer bound used by ReceiveString when no minimum packet
// size is requested. Callers needing more must size their own buffer and use
// Receive.
const MaxRecv = 4096

// receiveRetryInterval is the cooperative backoff between transient-failure
// retries in the receive loop.
const receiveRetryInterval = 50 * time.Millisecond

// Send writes data to the connected peer, blocking until the kernel accepts
// the bytes. The payload may be a string, a byte slice or any value
// gxcommon.ToBytes can coerce.
//
// Before writing, a zero-timeout readiness poll checks the handle for a
// pending error state; a poll failure poisons the handle. A transient
// would-block condition is retried indefinitely. Any other write failure
// emits one diagnostic line and poisons the handle: the socket refuses
// further I/O until Reconnect or Close.
func (g *GXSocket) Send(data any) (int, error) {
	buf, err := gxcommon.ToBytes(data, binary.BigEndian)
	if err != nil {
		return 0, err
	}
	if !g.IsValid() {
		return 0, gxcommon.ErrConnectionClosed
	}
	// Detect a socket that already entered an error state (peer reset)
	// before committing to the write. The poll does not block; a busy
	// socket proceeds straight to the write below.
	if err := sysPollError(g.sd); err != nil {
		g.trace(gxcommon.TraceTypesError, g.p.Sprintf("msg.send_poll_failed", err))
		g.poison()
		return 0, err
	}
	var n int
	for {
		n, err = sysWrite(g.sd, buf)
		if err != nil && isTransient(err) {
			continue
		}
		break
	}
	if err != nil {
		g.errormessage(errnoOf(err), "GXSocket.Send")
		g.poison()
		return n, err
	}
	return n, nil
}

// SendTo performs a connectionless send of data to the current peer address.
// The datagram is delivered whole or not at all.
func (g *GXSocket) SendTo(data []byte) (int, error) {
	if !g.IsValid() {
		return 0, gxcommon.ErrConnectionClosed
	}
	if err := sysSendTo(g.sd, data, g.peer); err != nil {
		g.errormessage(errnoOf(err), "GXSocket.SendTo")
		return 0, err
	}
	return len(data), nil
}

// Receive reads from the socket into data, accumulating bytes until either
// minPacketSize bytes have been received or the buffer is full, whichever
// comes first. The buffer capacity is the hard backstop: when minPacketSize
// exceeds it, the call returns once the buffer is full.
//
// A transient would-block condition is logged, slept over and retried, which
// turns a non-blocking descriptor into an effectively blocking read with a
// cooperative backoff. A non-transient error terminates the loop with one
// diagnostic line. A zero-byte read means the peer closed the connection:
// the accumulated bytes are returned, or gxcommon.ErrConnectionClosed when
// there are none.
func (g *GXSocket) Receive(data []byte, minPacketSize int) (int, error) {
	if !g.IsValid() {
		return 0, gxcommon.ErrConnectionClosed
	}
	received := 0
	for received <= minPacketSize && received < len(data) {
		n, err := sysRead(g.sd, data[received:])
		if err != nil {
			if isTransient(err) {
				g.trace(gxcommon.TraceTypesError, g.p.Sprintf("msg.receive_retry"))
				time.Sleep(receiveRetryInterval)
				continue
			}
			g.errormessage(errnoOf(err), "GXSocket.Receive")
			return received, err
		}
		if n == 0 {
			if received == 0 {
				return 0, gxcommon.ErrConnectionClosed
			}
			break
		}
		received += n
		if received >= minPacketSize {
			break
		}
	}
	return received, nil
}

// ReceiveString is the convenience form of Receive. With minPacketSize zero
// it returns whatever is available, bounded by MaxRecv. Otherwise it
// allocates a buffer of exactly minPacketSize bytes and requires that many
// before returning, which suits fixed-length protocol headers where a short
// read is meaningless.
func (g *GXSocket) ReceiveString(minPacketSize int) (string, error) {
	if !g.IsValid() {
		return "", gxcommon.ErrConnectionClosed
	}
	size := minPacketSize
	if size == 0 {
		size = MaxRecv
	}
	buf := make([]byte, size)
	n, err := g.Receive(buf, minPacketSize)
	if err != nil {
		return "", err
	}
	return string(buf[:n]), nil
}

// BroadcastSendTo sets the peer address to the network broadcast address on
// the given port and performs a connectionless send. SetBroadcast must have
// been enabled on the handle.
func (g *GXSocket) BroadcastSendTo(port uint16, payload []byte) (int, error) {
	g.peer = peerAddr{addr: [4]byte{255, 255, 255, 255}, port: port}
	return g.SendTo(payload)
}

// BroadcastReceiveFrom performs a connectionless receive into payload and
// records the sender's address in the peer address buffer.
func (g *GXSocket) BroadcastReceiveFrom(payload []byte) (int, error) {
	if !g.IsValid() {
		return 0, gxcommon.ErrConnectionClosed
	}
	n, from, err := sysRecvFrom(g.sd, payload)
	if err != nil {
		g.errormessage(errnoOf(err), "GXSocket.BroadcastReceiveFrom")
		return n, err
	}
	g.peer = from
	return n, nil
}

// ReadReady reports whether the socket has data available to read, waiting
// at most one second.
func (g *GXSocket) ReadReady() bool {
	if !g.IsValid() {
		return false
	}
	return sysPollRead(g.sd, time.Second)
}
