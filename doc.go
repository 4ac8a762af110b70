// Package gxsocket provides a low-level TCP/UDP socket media for talking to
// backend servers, such as PVR backends, over a raw byte stream. It wraps an
// OS socket handle with explicit lifecycle control: create/bind/listen/accept
// for the server role, connect/reconnect for the client role, blocking
// send/receive with a minimum-packet-size contract, and UDP broadcast
// send/receive for discovering backend servers on the local network.
//
// Features
//
//   - Lifecycle: Create, Bind, Listen, Accept, Connect, Reconnect, Close.
//   - Transfer: blocking Send with transient-condition retry, Receive with a
//     minimum packet size and a hard capacity backstop, connectionless SendTo.
//   - Discovery: BroadcastSendTo/BroadcastReceiveFrom and DiscoverServer.
//   - Platform split: one contract, build-time selected implementations for
//     Unix-like systems and Windows (Winsock startup/teardown included).
//   - Tracing: configurable trace level and a pluggable trace listener; every
//     failing operation emits one diagnostic line with the platform error text.
//
// # Construction
//
// Use NewGXSocket for the IPv4/TCP defaults, or NewGXSocketWithConfig to pick
// the family, domain, type and protocol. The zero value of GXSocket is not
// ready for use; always construct via one of the constructors.
//
// Example
//
//	s := gxsocket.NewGXSocket()
//	if err := s.Create(); err != nil {
//	    // handle allocation error
//	}
//	defer s.Close()
//
//	if err := s.Connect("192.168.1.20", 8866); err != nil {
//	    // handle resolution/connect error
//	}
//	if _, err := s.Send([]byte("keepalive|")); err != nil {
//	    // the handle is poisoned now; Reconnect or Close it
//	}
//	reply, err := s.ReceiveString(0)
//
// # Errors and recovery
//
// All failures are reported through explicit error returns wrapping the
// package sentinels (ErrAllocation, ErrBind, ErrConnect and so on), plus a
// single localized trace line. A non-transient send failure poisons the
// handle without releasing OS resources: the socket refuses further I/O until
// Reconnect or Close is called. Transient would-block conditions are never
// surfaced; they are retried internally.
//
// # Notes
//
// A single GXSocket is not safe for concurrent use; distinct sockets are
// independent. There is no built-in cancellation: a blocked call returns when
// the OS call returns.
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
