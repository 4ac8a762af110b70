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

import "errors"

var (
	// ErrAllocation is returned when the OS cannot allocate a socket of the
	// configured family, type and protocol, or when the platform socket
	// subsystem fails to start.
	ErrAllocation = errors.New("socket allocation failed")

	// ErrBind is returned when the handle is invalid or the OS bind call
	// fails, for example when the address is already in use.
	ErrBind = errors.New("bind failed")

	// ErrListen is returned when the handle is invalid or the OS listen call
	// fails.
	ErrListen = errors.New("listen failed")

	// ErrAccept is returned when the handle is invalid or the OS accept call
	// returns an error or an invalid handle.
	ErrAccept = errors.New("accept failed")

	// ErrHostResolution is returned when a symbolic host name has no address
	// record.
	ErrHostResolution = errors.New("host name resolution failed")

	// ErrConnect is returned when the OS connect call fails, including
	// timeout, refusal and unreachable networks.
	ErrConnect = errors.New("connect failed")

	// ErrReconnect wraps the create or connect failure of a Reconnect call.
	ErrReconnect = errors.New("reconnect failed")

	// ErrSocketOption is returned when toggling the blocking mode or setting
	// a socket option fails.
	ErrSocketOption = errors.New("socket option failed")

	// ErrNoServerFound is returned by DiscoverServer when no backend
	// answered the broadcast before the timeout.
	ErrNoServerFound = errors.New("no server found")
)
