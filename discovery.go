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
	"time"

	"github.com/Gurux/gxcommon-go"
)

// DiscoveryReply is one answer to a broadcast discovery request.
type DiscoveryReply struct {
	// Address of the answering server in "a.b.c.d:port" form.
	Address string
	// Payload is the raw reply.
	Payload []byte
}

// DiscoverServer broadcasts request on the given port and waits up to
// timeout for the first backend server to answer. It is used to find
// backend servers on the local network without a prior connection.
//
// The returned error is ErrNoServerFound when the timeout passes without an
// answer; transport failures during the broadcast send are returned as-is.
func DiscoverServer(request []byte, port uint16, timeout time.Duration) (*DiscoveryReply, error) {
	s := NewGXSocketWithConfig(SocketFamilyIPv4, SocketDomainIPv4, SocketTypeDatagram, SocketProtocolUDP)
	return discoverServer(s, request, port, timeout)
}

// discoverServer runs the discovery exchange on a caller-supplied socket so
// trace settings can be applied first.
func discoverServer(s *GXSocket, request []byte, port uint16, timeout time.Duration) (*DiscoveryReply, error) {
	if err := s.Create(); err != nil {
		return nil, err
	}
	defer func() {
		_ = s.Close()
	}()
	if err := s.SetBroadcast(true); err != nil {
		return nil, err
	}
	if _, err := s.BroadcastSendTo(port, request); err != nil {
		return nil, err
	}
	s.trace(gxcommon.TraceTypesInfo, s.p.Sprintf("msg.discover_sent", port))

	deadline := time.Now().Add(timeout)
	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			s.trace(gxcommon.TraceTypesInfo, s.p.Sprintf("msg.no_server_found"))
			return nil, fmt.Errorf("%w: port %d", ErrNoServerFound, port)
		}
		if !sysPollRead(s.sd, remaining) {
			continue
		}
		buf := make([]byte, MaxRecv)
		n, err := s.BroadcastReceiveFrom(buf)
		if err != nil {
			return nil, err
		}
		reply := &DiscoveryReply{Address: s.PeerAddress(), Payload: buf[:n]}
		s.trace(gxcommon.TraceTypesInfo, s.p.Sprintf("msg.server_found", reply.Address))
		return reply, nil
	}
}
