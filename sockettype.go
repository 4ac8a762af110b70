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
	"fmt"
	"strings"

	"github.com/Gurux/gxcommon-go"
)

// SocketFamily determines the address family of the socket.
type SocketFamily int

const (
	// SocketFamilyIPv4 defines that IPv4 addressing is used.
	SocketFamilyIPv4 SocketFamily = iota
)

// SocketDomain determines the protocol family of the socket.
type SocketDomain int

const (
	// SocketDomainIPv4 defines that the IPv4 protocol family is used.
	SocketDomainIPv4 SocketDomain = iota
)

// SocketType determines whether the socket is stream or datagram oriented.
type SocketType int

const (
	// SocketTypeStream defines a connection-oriented byte stream socket.
	SocketTypeStream SocketType = iota
	// SocketTypeDatagram defines a connectionless datagram socket.
	SocketTypeDatagram
)

// SocketTypeParse converts the given string into a SocketType value.
//
// It returns the corresponding SocketType constant if the string matches
// a known type name, or an error if the input is invalid.
func SocketTypeParse(value string) (SocketType, error) {
	var ret SocketType
	var err error
	switch strings.ToUpper(value) {
	case "STREAM":
		ret = SocketTypeStream
	case "DATAGRAM":
		ret = SocketTypeDatagram
	default:
		err = fmt.Errorf("%w: %q", gxcommon.ErrUnknownEnum, value)
	}
	return ret, err
}

// String returns the canonical name of the socket type.
// It satisfies fmt.Stringer.
func (g SocketType) String() string {
	var ret string
	switch g {
	case SocketTypeStream:
		ret = "STREAM"
	case SocketTypeDatagram:
		ret = "DATAGRAM"
	}
	return ret
}

// SocketProtocol determines which transport protocol is used for data
// transfer.
type SocketProtocol int

const (
	// SocketProtocolTCP defines that the TCP/IP protocol is used.
	SocketProtocolTCP SocketProtocol = iota
	// SocketProtocolUDP defines that UDP protocol is used.
	SocketProtocolUDP
)

// SocketProtocolParse converts the given string into a SocketProtocol value.
//
// It returns the corresponding SocketProtocol constant if the string matches
// a known protocol name, or an error if the input is invalid.
func SocketProtocolParse(value string) (SocketProtocol, error) {
	var ret SocketProtocol
	var err error
	switch strings.ToUpper(value) {
	case "TCP":
		ret = SocketProtocolTCP
	case "UDP":
		ret = SocketProtocolUDP
	default:
		err = fmt.Errorf("%w: %q", gxcommon.ErrUnknownEnum, value)
	}
	return ret, err
}

// String returns the canonical name of the socket protocol.
// It satisfies fmt.Stringer.
func (g SocketProtocol) String() string {
	var ret string
	switch g {
	case SocketProtocolTCP:
		ret = "TCP"
	case SocketProtocolUDP:
		ret = "UDP"
	}
	return ret
}

// SocketState describes the lifecycle state of a GXSocket handle.
//
// A poisoned socket has had its handle marked invalid after a fatal send
// failure without releasing the underlying OS resources. Only Close or
// Reconnect leave that state.
type SocketState int

const (
	// SocketStateClosed defines that the socket holds no OS handle.
	SocketStateClosed SocketState = iota
	// SocketStateActive defines that the socket holds a valid, open OS handle.
	SocketStateActive
	// SocketStatePoisoned defines that the handle was invalidated after a
	// fatal I/O error.
	SocketStatePoisoned
)

// String returns the canonical name of the socket state.
// It satisfies fmt.Stringer.
func (g SocketState) String() string {
	var ret string
	switch g {
	case SocketStateClosed:
		ret = "CLOSED"
	case SocketStateActive:
		ret = "ACTIVE"
	case SocketStatePoisoned:
		ret = "POISONED"
	}
	return ret
}
