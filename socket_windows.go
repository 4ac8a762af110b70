//go:build windows

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
	"unsafe"

	"golang.org/x/sys/windows"
)

// sockFD is the OS socket handle on Windows.
type sockFD = windows.Handle

// invalidSocket is the sentinel for an unbound handle.
const invalidSocket sockFD = windows.InvalidHandle

// accept and select are not wrapped by x/sys/windows, so they are reached
// through ws2_32 directly.
var (
	modws2_32  = windows.NewLazySystemDLL("ws2_32.dll")
	procaccept = modws2_32.NewProc("accept")
	procselect = modws2_32.NewProc("select")
)

// wsaFdSet mirrors the Winsock fd_set layout (FD_SETSIZE 64).
type wsaFdSet struct {
	count uint32
	array [64]windows.Handle
}

func (s *wsaFdSet) set(fd windows.Handle) {
	if s.count < uint32(len(s.array)) {
		s.array[s.count] = fd
		s.count++
	}
}

// wsaTimeval mirrors the Winsock timeval layout.
type wsaTimeval struct {
	Sec  int32
	Usec int32
}

func wsaSelect(r, w, e *wsaFdSet, tv *wsaTimeval) (int, error) {
	ret, _, _ := procselect.Call(
		0, // nfds is ignored by Winsock
		uintptr(unsafe.Pointer(r)),
		uintptr(unsafe.Pointer(w)),
		uintptr(unsafe.Pointer(e)),
		uintptr(unsafe.Pointer(tv)),
	)
	n := int(int32(ret))
	if n < 0 {
		return n, syscall.WSAGetLastError()
	}
	return n, nil
}

func sysSocket(family SocketFamily, socketType SocketType, protocol SocketProtocol) (sockFD, error) {
	if family != SocketFamilyIPv4 {
		return invalidSocket, windows.WSAEAFNOSUPPORT
	}
	typ := windows.SOCK_STREAM
	if socketType == SocketTypeDatagram {
		typ = windows.SOCK_DGRAM
	}
	proto := windows.IPPROTO_TCP
	if protocol == SocketProtocolUDP {
		proto = windows.IPPROTO_UDP
	}
	fd, err := windows.Socket(windows.AF_INET, typ, proto)
	if err != nil {
		return invalidSocket, err
	}
	return fd, nil
}

func sysClose(fd sockFD) error {
	return windows.Closesocket(fd)
}

func sysBind(fd sockFD, peer peerAddr) error {
	return windows.Bind(fd, &windows.SockaddrInet4{Port: int(peer.port), Addr: peer.addr})
}

func sysListen(fd sockFD) error {
	return windows.Listen(fd, windows.SOMAXCONN)
}

func sysAccept(fd sockFD) (sockFD, peerAddr, error) {
	var rsa windows.RawSockaddrAny
	l := int32(unsafe.Sizeof(rsa))
	ret, _, _ := procaccept.Call(
		uintptr(fd),
		uintptr(unsafe.Pointer(&rsa)),
		uintptr(unsafe.Pointer(&l)),
	)
	nfd := windows.Handle(ret)
	if nfd == windows.InvalidHandle {
		return invalidSocket, peerAddr{}, syscall.WSAGetLastError()
	}
	var peer peerAddr
	if sa, err := rsa.Sockaddr(); err == nil {
		if in4, ok := sa.(*windows.SockaddrInet4); ok {
			peer = peerAddr{addr: in4.Addr, port: uint16(in4.Port)}
		}
	}
	return nfd, peer, nil
}

func sysConnect(fd sockFD, peer peerAddr) error {
	return windows.Connect(fd, &windows.SockaddrInet4{Port: int(peer.port), Addr: peer.addr})
}

func sysWrite(fd sockFD, p []byte) (int, error) {
	var sent uint32
	buf := windows.WSABuf{Len: uint32(len(p))}
	if len(p) > 0 {
		buf.Buf = &p[0]
	}
	// A nil overlapped makes WSASend synchronous on a blocking socket.
	if err := windows.WSASend(fd, &buf, 1, &sent, 0, nil, nil); err != nil {
		return 0, err
	}
	return int(sent), nil
}

func sysRead(fd sockFD, p []byte) (int, error) {
	var received, flags uint32
	buf := windows.WSABuf{Len: uint32(len(p))}
	if len(p) > 0 {
		buf.Buf = &p[0]
	}
	if err := windows.WSARecv(fd, &buf, 1, &received, &flags, nil, nil); err != nil {
		return 0, err
	}
	return int(received), nil
}

func sysSendTo(fd sockFD, p []byte, peer peerAddr) error {
	return windows.Sendto(fd, p, 0, &windows.SockaddrInet4{Port: int(peer.port), Addr: peer.addr})
}

func sysRecvFrom(fd sockFD, p []byte) (int, peerAddr, error) {
	n, sa, err := windows.Recvfrom(fd, p, 0)
	if err != nil {
		return n, peerAddr{}, err
	}
	var from peerAddr
	if in4, ok := sa.(*windows.SockaddrInet4); ok {
		from = peerAddr{addr: in4.Addr, port: uint16(in4.Port)}
	}
	return n, from, nil
}

func sysLocalAddr(fd sockFD) (peerAddr, error) {
	sa, err := windows.Getsockname(fd)
	if err != nil {
		return peerAddr{}, err
	}
	if in4, ok := sa.(*windows.SockaddrInet4); ok {
		return peerAddr{addr: in4.Addr, port: uint16(in4.Port)}, nil
	}
	return peerAddr{}, nil
}

// sysSetNonblock toggles the FIONBIO I/O mode of the handle.
func sysSetNonblock(fd sockFD, enabled bool) error {
	return syscall.SetNonblock(syscall.Handle(fd), enabled)
}

func sysSetSockoptInt(fd sockFD, level, option, value int) error {
	return windows.SetsockoptInt(fd, level, option, value)
}

func sysSetBroadcast(fd sockFD, enabled bool) error {
	value := 0
	if enabled {
		value = 1
	}
	return windows.SetsockoptInt(fd, windows.SOL_SOCKET, windows.SO_BROADCAST, value)
}

// sysPollError is the zero-timeout select on the writable and exceptional
// sets issued before a write. Only a failing select is treated as an error;
// a busy socket simply returns and the caller proceeds to the blocking
// write.
func sysPollError(fd sockFD) error {
	var w, e wsaFdSet
	w.set(fd)
	e.set(fd)
	tv := wsaTimeval{}
	_, err := wsaSelect(nil, &w, &e, &tv)
	return err
}

func sysPollRead(fd sockFD, timeout time.Duration) bool {
	var r wsaFdSet
	r.set(fd)
	usec := timeout.Microseconds()
	tv := wsaTimeval{Sec: int32(usec / 1e6), Usec: int32(usec % 1e6)}
	n, err := wsaSelect(&r, nil, nil, &tv)
	return err == nil && n > 0
}

// isTransient reports whether err is the OS signal for "operation would
// block; not an error".
func isTransient(err error) bool {
	return errors.Is(err, windows.WSAEWOULDBLOCK)
}

func errnoOf(err error) int {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return int(errno)
	}
	return 0
}

// errorText maps a Winsock error code to a human-readable diagnostic
// string. Unmapped codes produce a generic fallback.
func errorText(errno int) string {
	switch syscall.Errno(errno) {
	case windows.WSANOTINITIALISED:
		return "A successful WSAStartup call must occur before using this function"
	case windows.WSAENETDOWN:
		return "The network subsystem or the associated service provider has failed"
	case windows.WSAEINTR:
		return "Interrupted function call"
	case windows.WSAEBADF:
		return "File handle is not valid"
	case windows.WSAEACCES:
		return "Permission denied"
	case windows.WSAEFAULT:
		return "Bad address"
	case windows.WSAEINVAL:
		return "Invalid argument"
	case windows.WSAEMFILE:
		return "Too many open sockets"
	case windows.WSAEWOULDBLOCK:
		return "Resource temporarily unavailable"
	case windows.WSAENOTSOCK:
		return "Socket operation on nonsocket"
	case windows.WSAEDESTADDRREQ:
		return "Destination address required"
	case windows.WSAEMSGSIZE:
		return "Message too long"
	case windows.WSAEPROTOTYPE:
		return "Protocol wrong type for socket"
	case windows.WSAENOPROTOOPT:
		return "Bad protocol option"
	case windows.WSAEPFNOSUPPORT:
		return "Protocol family not supported"
	case windows.WSAEAFNOSUPPORT:
		return "Address family not supported by protocol family"
	case windows.WSAEADDRINUSE:
		return "Address already in use"
	case windows.WSAECONNRESET:
		return "Connection reset by peer"
	case windows.WSAEISCONN:
		return "Socket is already connected"
	case windows.WSAETIMEDOUT:
		return "Connection timed out"
	case windows.WSAECONNREFUSED:
		return "Connection refused"
	case windows.WSAHOST_NOT_FOUND:
		return "Authoritative answer host not found"
	case windows.WSATRY_AGAIN:
		return "Nonauthoritative host not found, or server failure"
	case windows.WSANO_DATA:
		return "Valid name, no data record of requested type"
	default:
		return "Unknown Winsock error"
	}
}

var wsaData windows.WSAData

// osInit starts Winsock and verifies that version 2.2 was negotiated.
func osInit() error {
	const requested = 0x0202
	if err := windows.WSAStartup(uint32(requested), &wsaData); err != nil {
		return err
	}
	if wsaData.Version != requested {
		_ = windows.WSACleanup()
		return errors.New("winsock version 2.2 not available")
	}
	return nil
}

func osCleanup() {
	_ = windows.WSACleanup()
}
