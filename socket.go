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
	"net"

	"github.com/Gurux/gxcommon-go"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// TraceListener receives diagnostic output from a socket. The trace type is
// the severity of the line; the message is already formatted and localized.
type TraceListener func(traceType gxcommon.TraceTypes, message string)

// peerAddr is the mutable peer address buffer of a socket: the resolved
// remote, wildcard or broadcast IPv4 address used by connect, bind and the
// broadcast operations.
type peerAddr struct {
	addr [4]byte
	port uint16
}

// GXSocket wraps one OS socket endpoint.
//
// The handle is either the platform's invalid sentinel or a valid, open OS
// socket; no other state is possible. The peer address buffer is zeroed at
// construction and only written by SetHostname, Bind, Connect, Accept and
// the broadcast operations.
//
// A GXSocket is not internally synchronized: callers must not share one
// socket between goroutines without external locking. Distinct sockets are
// independent.
type GXSocket struct {
	// Immutable after construction.
	family   SocketFamily
	domain   SocketDomain
	sockType SocketType
	protocol SocketProtocol

	sd    sockFD
	state SocketState
	peer  peerAddr

	// The trace level specifies which types of trace messages are emitted.
	traceLevel gxcommon.TraceLevel
	onTrace    TraceListener

	// Printer for localized messages.
	p *message.Printer
}

// NewGXSocket creates a socket with the default configuration:
// IPv4 family and domain, stream type, TCP protocol.
func NewGXSocket() *GXSocket {
	return NewGXSocketWithConfig(SocketFamilyIPv4, SocketDomainIPv4, SocketTypeStream, SocketProtocolTCP)
}

// NewGXSocketWithConfig creates a socket with the given family, domain, type
// and protocol. The configuration is immutable for the socket's lifetime.
func NewGXSocketWithConfig(family SocketFamily, domain SocketDomain, socketType SocketType, protocol SocketProtocol) *GXSocket {
	g := &GXSocket{
		family:   family,
		domain:   domain,
		sockType: socketType,
		protocol: protocol,
		sd:       invalidSocket,
		state:    SocketStateClosed,
	}
	g.Localize(language.AmericanEnglish)
	return g
}

// Localize messages for the specified language.
// No errors is returned if language is not supported.
func (g *GXSocket) Localize(language language.Tag) {
	g.p = message.NewPrinter(language)
}

// IsValid reports whether the socket holds a valid OS handle.
func (g *GXSocket) IsValid() bool {
	return g.sd != invalidSocket
}

// State returns the lifecycle state of the socket.
func (g *GXSocket) State() SocketState {
	return g.state
}

// Fd returns the underlying OS descriptor value. It is only meaningful while
// IsValid reports true.
func (g *GXSocket) Fd() uintptr {
	return uintptr(g.sd)
}

// PeerAddress returns the current content of the peer address buffer in
// "a.b.c.d:port" form.
func (g *GXSocket) PeerAddress() string {
	a := g.peer.addr
	return fmt.Sprintf("%d.%d.%d.%d:%d", a[0], a[1], a[2], a[3], g.peer.port)
}

// LocalPort returns the port the socket is bound to. Useful after binding
// port zero.
func (g *GXSocket) LocalPort() (uint16, error) {
	if !g.IsValid() {
		return 0, gxcommon.ErrConnectionClosed
	}
	local, err := sysLocalAddr(g.sd)
	if err != nil {
		return 0, err
	}
	return local.port, nil
}

// GetTrace returns the current trace level.
func (g *GXSocket) GetTrace() gxcommon.TraceLevel {
	return g.traceLevel
}

// SetTrace sets the trace level.
func (g *GXSocket) SetTrace(traceLevel gxcommon.TraceLevel) error {
	g.traceLevel = traceLevel
	return nil
}

// SetOnTrace sets the listener receiving diagnostic output.
func (g *GXSocket) SetOnTrace(value TraceListener) {
	g.onTrace = value
}

func (g *GXSocket) trace(traceType gxcommon.TraceTypes, message string) {
	if g.onTrace != nil && !(int(g.traceLevel) < int(traceType)) {
		g.onTrace(traceType, message)
	}
}

// errormessage emits the single diagnostic line of a failed operation:
// the operation name, the platform error code and its human-readable text.
func (g *GXSocket) errormessage(errno int, operation string) {
	g.trace(gxcommon.TraceTypesError, g.p.Sprintf("msg.platform_error", operation, errno, errorText(errno)))
}

// Create allocates the OS handle for the configured family, type and
// protocol. It is idempotent: any existing handle is closed first. On
// success the platform subsystem reference count is incremented.
func (g *GXSocket) Create() error {
	if g.IsValid() || g.state == SocketStatePoisoned {
		_ = g.Close()
	}
	if err := netSubsystem.acquire(); err != nil {
		return fmt.Errorf("%w: %v", ErrAllocation, err)
	}
	fd, err := sysSocket(g.family, g.sockType, g.protocol)
	if err != nil {
		netSubsystem.release()
		g.errormessage(errnoOf(err), "GXSocket.Create")
		return fmt.Errorf("%w: %v", ErrAllocation, err)
	}
	g.sd = fd
	g.state = SocketStateActive
	return nil
}

// Bind binds the socket to the wildcard address on the given port.
func (g *GXSocket) Bind(port uint16) error {
	if !g.IsValid() {
		return fmt.Errorf("%w: invalid socket handle", ErrBind)
	}
	g.peer = peerAddr{port: port}
	if err := sysBind(g.sd, g.peer); err != nil {
		g.errormessage(errnoOf(err), "GXSocket.Bind")
		return fmt.Errorf("%w: %v", ErrBind, err)
	}
	return nil
}

// Listen marks the socket as accepting connections, requesting the OS's
// maximum backlog.
func (g *GXSocket) Listen() error {
	if !g.IsValid() {
		return fmt.Errorf("%w: invalid socket handle", ErrListen)
	}
	if err := sysListen(g.sd); err != nil {
		g.errormessage(errnoOf(err), "GXSocket.Listen")
		return fmt.Errorf("%w: %v", ErrListen, err)
	}
	return nil
}

// Accept blocks until a peer connects, then populates newSocket with the
// accepted handle and the peer's address. The accepted socket owns its own
// subsystem reference and must be closed independently.
func (g *GXSocket) Accept(newSocket *GXSocket) error {
	if !g.IsValid() {
		return fmt.Errorf("%w: invalid socket handle", ErrAccept)
	}
	fd, peer, err := sysAccept(g.sd)
	if err != nil || fd == invalidSocket {
		g.errormessage(errnoOf(err), "GXSocket.Accept")
		return fmt.Errorf("%w: %v", ErrAccept, err)
	}
	if err := netSubsystem.acquire(); err != nil {
		_ = sysClose(fd)
		return fmt.Errorf("%w: %v", ErrAccept, err)
	}
	if newSocket.IsValid() || newSocket.state == SocketStatePoisoned {
		_ = newSocket.Close()
	}
	newSocket.sd = fd
	newSocket.state = SocketStateActive
	newSocket.peer = peer
	return nil
}

// SetHostname resolves host and writes the result into the peer address
// buffer, which is left unchanged on failure. A host starting with an
// alphabetic character is resolved through name resolution and the first
// IPv4 record is taken; anything else is parsed directly as a dotted numeric
// address. The numeric branch performs no validation: malformed input
// silently yields the unspecified address.
func (g *GXSocket) SetHostname(host string) error {
	if host != "" && isAlpha(host[0]) {
		ips, err := net.LookupIP(host)
		if err != nil {
			g.trace(gxcommon.TraceTypesError, g.p.Sprintf("msg.resolve_failed", host, err))
			return fmt.Errorf("%w: %q", ErrHostResolution, host)
		}
		for _, ip := range ips {
			if ip4 := ip.To4(); ip4 != nil {
				copy(g.peer.addr[:], ip4)
				return nil
			}
		}
		g.trace(gxcommon.TraceTypesError, g.p.Sprintf("msg.resolve_no_ipv4", host))
		return fmt.Errorf("%w: %q", ErrHostResolution, host)
	}
	var a [4]byte
	if ip4 := net.ParseIP(host).To4(); ip4 != nil {
		copy(a[:], ip4)
	}
	g.peer.addr = a
	return nil
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// Connect resolves host, stores host:port in the peer address buffer and
// issues the OS connect call. The connect timeout is the OS-level one; no
// application timeout is applied.
func (g *GXSocket) Connect(host string, port uint16) error {
	if !g.IsValid() {
		return fmt.Errorf("%w: invalid socket handle", ErrConnect)
	}
	g.peer.port = port
	if err := g.SetHostname(host); err != nil {
		return err
	}
	if err := sysConnect(g.sd, g.peer); err != nil {
		g.errormessage(errnoOf(err), "GXSocket.Connect")
		return fmt.Errorf("%w: %s:%d: %v", ErrConnect, host, port, err)
	}
	return nil
}

// Reconnect is a no-op success when the handle is already valid. Otherwise
// it re-creates the handle and connects to the previously stored peer
// address. The host name is not re-resolved: the address written by the
// prior Connect or SetHostname call is reused as-is.
func (g *GXSocket) Reconnect() error {
	if g.IsValid() {
		return nil
	}
	// Create releases a poisoned handle's subsystem reference before
	// allocating the new one.
	peer := g.peer
	if err := g.Create(); err != nil {
		return fmt.Errorf("%w: %v", ErrReconnect, err)
	}
	g.peer = peer
	if err := sysConnect(g.sd, g.peer); err != nil {
		g.errormessage(errnoOf(err), "GXSocket.Reconnect")
		return fmt.Errorf("%w: %v", ErrReconnect, err)
	}
	return nil
}

// Close releases the OS handle and the subsystem reference. It is
// idempotent: closing a closed socket is a no-op. Closing a poisoned socket
// only gives back the subsystem reference, since the handle was already
// abandoned on the failing send.
func (g *GXSocket) Close() error {
	if g.IsValid() {
		err := sysClose(g.sd)
		g.sd = invalidSocket
		g.state = SocketStateClosed
		netSubsystem.release()
		if err != nil {
			g.errormessage(errnoOf(err), "GXSocket.Close")
			return err
		}
		return nil
	}
	if g.state == SocketStatePoisoned {
		g.state = SocketStateClosed
		netSubsystem.release()
	}
	return nil
}

// poison marks the handle invalid after a fatal I/O error without releasing
// the underlying OS resources. The socket refuses further I/O until Close or
// Reconnect is called.
func (g *GXSocket) poison() {
	g.sd = invalidSocket
	g.state = SocketStatePoisoned
}

// SetNonBlocking sets or clears the non-blocking flag on the handle.
func (g *GXSocket) SetNonBlocking(enabled bool) error {
	if !g.IsValid() {
		return fmt.Errorf("%w: invalid socket handle", ErrSocketOption)
	}
	if err := sysSetNonblock(g.sd, enabled); err != nil {
		g.errormessage(errnoOf(err), "GXSocket.SetNonBlocking")
		return fmt.Errorf("%w: %v", ErrSocketOption, err)
	}
	return nil
}

// SetSocketOption sets an integer-valued socket option with the raw platform
// level and option numbers.
func (g *GXSocket) SetSocketOption(level, option, value int) error {
	if !g.IsValid() {
		return fmt.Errorf("%w: invalid socket handle", ErrSocketOption)
	}
	if err := sysSetSockoptInt(g.sd, level, option, value); err != nil {
		g.errormessage(errnoOf(err), "GXSocket.SetSocketOption")
		return fmt.Errorf("%w: %v", ErrSocketOption, err)
	}
	return nil
}

// SetBroadcast enables or disables sending to the network broadcast address.
func (g *GXSocket) SetBroadcast(enabled bool) error {
	if !g.IsValid() {
		return fmt.Errorf("%w: invalid socket handle", ErrSocketOption)
	}
	if err := sysSetBroadcast(g.sd, enabled); err != nil {
		g.errormessage(errnoOf(err), "GXSocket.SetBroadcast")
		return fmt.Errorf("%w: %v", ErrSocketOption, err)
	}
	return nil
}

//nolint:errcheck
func init() {
	// --- English (default) ---
	message.SetString(language.AmericanEnglish, "msg.platform_error", "%s: (error=%d) %s")
	message.SetString(language.AmericanEnglish, "msg.resolve_failed", "Host name resolution for %q failed: %v")
	message.SetString(language.AmericanEnglish, "msg.resolve_no_ipv4", "Host %q has no IPv4 address record")
	message.SetString(language.AmericanEnglish, "msg.send_poll_failed", "Send readiness poll failed: %v")
	message.SetString(language.AmericanEnglish, "msg.receive_retry", "Receive would block, retrying")
	message.SetString(language.AmericanEnglish, "msg.discover_sent", "Discovery request sent to broadcast port %d")
	message.SetString(language.AmericanEnglish, "msg.server_found", "Server found at %s")
	message.SetString(language.AmericanEnglish, "msg.no_server_found", "No server found")

	// --- German (de) ---
	message.SetString(language.German, "msg.platform_error", "%s: (Fehler=%d) %s")
	message.SetString(language.German, "msg.resolve_failed", "Namensauflösung für %q fehlgeschlagen: %v")
	message.SetString(language.German, "msg.resolve_no_ipv4", "Host %q hat keinen IPv4-Adresseintrag")
	message.SetString(language.German, "msg.send_poll_failed", "Bereitschaftsprüfung beim Senden fehlgeschlagen: %v")
	message.SetString(language.German, "msg.receive_retry", "Empfang würde blockieren, neuer Versuch")
	message.SetString(language.German, "msg.discover_sent", "Suchanfrage an Broadcast-Port %d gesendet")
	message.SetString(language.German, "msg.server_found", "Server gefunden unter %s")
	message.SetString(language.German, "msg.no_server_found", "Kein Server gefunden")

	// --- Finnish (fi) ---
	message.SetString(language.Finnish, "msg.platform_error", "%s: (virhe=%d) %s")
	message.SetString(language.Finnish, "msg.resolve_failed", "Nimen %q selvitys epäonnistui: %v")
	message.SetString(language.Finnish, "msg.resolve_no_ipv4", "Isännällä %q ei ole IPv4-osoitetta")
	message.SetString(language.Finnish, "msg.send_poll_failed", "Lähetyksen valmiustarkistus epäonnistui: %v")
	message.SetString(language.Finnish, "msg.receive_retry", "Vastaanotto estyisi, yritetään uudelleen")
	message.SetString(language.Finnish, "msg.discover_sent", "Etsintäpyyntö lähetetty broadcast-porttiin %d")
	message.SetString(language.Finnish, "msg.server_found", "Palvelin löytyi osoitteesta %s")
	message.SetString(language.Finnish, "msg.no_server_found", "Palvelinta ei löytynyt")

	// --- Swedish (sv) ---
	message.SetString(language.Swedish, "msg.platform_error", "%s: (fel=%d) %s")
	message.SetString(language.Swedish, "msg.resolve_failed", "Namnuppslagning för %q misslyckades: %v")
	message.SetString(language.Swedish, "msg.resolve_no_ipv4", "Värden %q saknar IPv4-adress")
	message.SetString(language.Swedish, "msg.send_poll_failed", "Beredskapskontroll vid sändning misslyckades: %v")
	message.SetString(language.Swedish, "msg.receive_retry", "Mottagning skulle blockera, försöker igen")
	message.SetString(language.Swedish, "msg.discover_sent", "Sökbegäran skickad till broadcast-port %d")
	message.SetString(language.Swedish, "msg.server_found", "Server hittad på %s")
	message.SetString(language.Swedish, "msg.no_server_found", "Ingen server hittad")

	// --- Spanish (es) ---
	message.SetString(language.Spanish, "msg.platform_error", "%s: (error=%d) %s")
	message.SetString(language.Spanish, "msg.resolve_failed", "Error al resolver el nombre %q: %v")
	message.SetString(language.Spanish, "msg.resolve_no_ipv4", "El host %q no tiene dirección IPv4")
	message.SetString(language.Spanish, "msg.send_poll_failed", "Error en la comprobación de disponibilidad al enviar: %v")
	message.SetString(language.Spanish, "msg.receive_retry", "La recepción bloquearía, reintentando")
	message.SetString(language.Spanish, "msg.discover_sent", "Solicitud de búsqueda enviada al puerto de broadcast %d")
	message.SetString(language.Spanish, "msg.server_found", "Servidor encontrado en %s")
	message.SetString(language.Spanish, "msg.no_server_found", "Ningún servidor encontrado")

	// --- Estonian (et) ---
	message.SetString(language.Estonian, "msg.platform_error", "%s: (viga=%d) %s")
	message.SetString(language.Estonian, "msg.resolve_failed", "Nime %q lahendamine ebaõnnestus: %v")
	message.SetString(language.Estonian, "msg.resolve_no_ipv4", "Hostil %q puudub IPv4-aadress")
	message.SetString(language.Estonian, "msg.send_poll_failed", "Saatmise valmiduse kontroll ebaõnnestus: %v")
	message.SetString(language.Estonian, "msg.receive_retry", "Vastuvõtt blokeeruks, proovitakse uuesti")
	message.SetString(language.Estonian, "msg.discover_sent", "Otsingupäring saadeti broadcast-porti %d")
	message.SetString(language.Estonian, "msg.server_found", "Server leiti aadressilt %s")
	message.SetString(language.Estonian, "msg.no_server_found", "Serverit ei leitud")
}
