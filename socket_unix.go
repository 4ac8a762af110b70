//go:build !windows

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
	"errors"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

// sockFD is the OS socket handle on Unix-like systems.
type sockFD = int

// invalidSocket is the sentinel for an unbound handle.
const invalidSocket sockFD = -1

func sysSocket(family SocketFamily, socketType SocketType, protocol SocketProtocol) (sockFD, error) {
	if family != SocketFamilyIPv4 {
		return invalidSocket, unix.EAFNOSUPPORT
	}
	typ := unix.SOCK_STREAM
	if socketType == SocketTypeDatagram {
		typ = unix.SOCK_DGRAM
	}
	proto := unix.IPPROTO_TCP
	if protocol == SocketProtocolUDP {
		proto = unix.IPPROTO_UDP
	}
	fd, err := unix.Socket(unix.AF_INET, typ, proto)
	if err != nil {
		return invalidSocket, err
	}
	return fd, nil
}

func sysClose(fd sockFD) error {
	return unix.Close(fd)
}

func sysBind(fd sockFD, peer peerAddr) error {
	return unix.Bind(fd, &unix.SockaddrInet4{Port: int(peer.port), Addr: peer.addr})
}

func sysListen(fd sockFD) error {
	return unix.Listen(fd, unix.SOMAXCONN)
}

func sysAccept(fd sockFD) (sockFD, peerAddr, error) {
	nfd, sa, err := unix.Accept(fd)
	if err != nil {
		return invalidSocket, peerAddr{}, err
	}
	var peer peerAddr
	if in4, ok := sa.(*unix.SockaddrInet4); ok {
		peer = peerAddr{addr: in4.Addr, port: uint16(in4.Port)}
	}
	return nfd, peer, nil
}

func sysConnect(fd sockFD, peer peerAddr) error {
	return unix.Connect(fd, &unix.SockaddrInet4{Port: int(peer.port), Addr: peer.addr})
}

func sysWrite(fd sockFD, p []byte) (int, error) {
	return unix.Write(fd, p)
}

func sysRead(fd sockFD, p []byte) (int, error) {
	return unix.Read(fd, p)
}

func sysSendTo(fd sockFD, p []byte, peer peerAddr) error {
	return unix.Sendto(fd, p, 0, &unix.SockaddrInet4{Port: int(peer.port), Addr: peer.addr})
}

func sysRecvFrom(fd sockFD, p []byte) (int, peerAddr, error) {
	n, sa, err := unix.Recvfrom(fd, p, 0)
	if err != nil {
		return n, peerAddr{}, err
	}
	var from peerAddr
	if in4, ok := sa.(*unix.SockaddrInet4); ok {
		from = peerAddr{addr: in4.Addr, port: uint16(in4.Port)}
	}
	return n, from, nil
}

func sysLocalAddr(fd sockFD) (peerAddr, error) {
	sa, err := unix.Getsockname(fd)
	if err != nil {
		return peerAddr{}, err
	}
	if in4, ok := sa.(*unix.SockaddrInet4); ok {
		return peerAddr{addr: in4.Addr, port: uint16(in4.Port)}, nil
	}
	return peerAddr{}, nil
}

func sysSetNonblock(fd sockFD, enabled bool) error {
	return unix.SetNonblock(fd, enabled)
}

func sysSetSockoptInt(fd sockFD, level, option, value int) error {
	return unix.SetsockoptInt(fd, level, option, value)
}

func sysSetBroadcast(fd sockFD, enabled bool) error {
	value := 0
	if enabled {
		value = 1
	}
	return unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_BROADCAST, value)
}

// sysPollError is the zero-timeout select on the writable and exceptional
// sets issued before a write. Only a failing select is treated as an error;
// a busy socket simply returns and the caller proceeds to the blocking
// write.
func sysPollError(fd sockFD) error {
	var w, e unix.FdSet
	w.Set(fd)
	e.Set(fd)
	tv := unix.Timeval{}
	_, err := unix.Select(fd+1, nil, &w, &e, &tv)
	return err
}

func sysPollRead(fd sockFD, timeout time.Duration) bool {
	var r unix.FdSet
	r.Set(fd)
	tv := unix.NsecToTimeval(timeout.Nanoseconds())
	n, err := unix.Select(fd+1, &r, nil, nil, &tv)
	return err == nil && n > 0
}

// isTransient reports whether err is the OS signal for "operation would
// block; not an error".
func isTransient(err error) bool {
	return errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EWOULDBLOCK)
}

func errnoOf(err error) int {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return int(errno)
	}
	return 0
}

// errorText maps a platform error code to a human-readable diagnostic
// string. Unmapped codes produce a generic fallback.
func errorText(errno int) string {
	switch syscall.Errno(errno) {
	case unix.EAGAIN:
		return "EAGAIN: The socket is marked non-blocking and the requested operation would block"
	case unix.EBADF:
		return "EBADF: An invalid descriptor was specified"
	case unix.ECONNRESET:
		return "ECONNRESET: Connection reset by peer"
	case unix.EDESTADDRREQ:
		return "EDESTADDRREQ: The socket is not in connection mode and no peer address is set"
	case unix.EFAULT:
		return "EFAULT: An invalid userspace address was specified for a parameter"
	case unix.EINTR:
		return "EINTR: A signal occurred before data was transmitted"
	case unix.EINVAL:
		return "EINVAL: Invalid argument passed"
	case unix.ENOTSOCK:
		return "ENOTSOCK: The argument is not a valid socket"
	case unix.EMSGSIZE:
		return "EMSGSIZE: The socket requires that message be sent atomically, and the size of the message to be sent made this impossible"
	case unix.ENOBUFS:
		return "ENOBUFS: The output queue for a network interface was full"
	case unix.ENOMEM:
		return "ENOMEM: No memory available"
	case unix.EPIPE:
		return "EPIPE: The local end has been shut down on a connection oriented socket"
	case unix.EPROTONOSUPPORT:
		return "EPROTONOSUPPORT: The protocol type or the specified protocol is not supported within this domain"
	case unix.EAFNOSUPPORT:
		return "EAFNOSUPPORT: The implementation does not support the specified address family"
	case unix.ENFILE:
		return "ENFILE: Not enough kernel memory to allocate a new socket structure"
	case unix.EMFILE:
		return "EMFILE: Process file table overflow"
	case unix.EACCES:
		return "EACCES: Permission to create a socket of the specified type and/or protocol is denied"
	case unix.ECONNREFUSED:
		return "ECONNREFUSED: A remote host refused to allow the network connection (typically because it is not running the requested service)"
	case unix.ENOTCONN:
		return "ENOTCONN: The socket is associated with a connection-oriented protocol and has not been connected"
	case unix.EADDRINUSE:
		return "EADDRINUSE: Address already in use"
	case unix.ETIMEDOUT:
		return "ETIMEDOUT: Connection timed out"
	case unix.ENETUNREACH:
		return "ENETUNREACH: Network is unreachable"
	default:
		return "Unknown socket error"
	}
}

// The Unix-like platforms need no explicit socket subsystem startup.

func osInit() error {
	return nil
}

func osCleanup() {
}
