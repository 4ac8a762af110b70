package gxsocket_test

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"github.com/Gurux/gxcommon-go"
	"github.com/stretchr/testify/require"

	gxsocket "github.com/Gurux/gxsocket-go"
)

// newUDPSocket creates a datagram socket bound to an ephemeral port.
func newUDPSocket(t *testing.T) (*gxsocket.GXSocket, uint16) {
	t.Helper()

	s := gxsocket.NewGXSocketWithConfig(
		gxsocket.SocketFamilyIPv4,
		gxsocket.SocketDomainIPv4,
		gxsocket.SocketTypeDatagram,
		gxsocket.SocketProtocolUDP,
	)
	require.NoError(t, s.Create())
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.Bind(0))

	port, err := s.LocalPort()
	require.NoError(t, err)
	return s, port
}

func TestSendReceiveRoundTrip(t *testing.T) {
	t.Parallel()

	client, peer := connectedPair(t)

	payload := bytes.Repeat([]byte{0xA5, 0x01, 0x7E}, 21)
	n, err := client.Send(payload)
	require.NoError(t, err)
	require.Equal(t, len(payload), n)

	buf := make([]byte, len(payload))
	n, err = peer.Receive(buf, len(payload))
	require.NoError(t, err)
	require.Equal(t, payload, buf[:n])
}

func TestSendCoercesStrings(t *testing.T) {
	t.Parallel()

	client, peer := connectedPair(t)

	n, err := client.Send("session|0|")
	require.NoError(t, err)
	require.Equal(t, len("session|0|"), n)

	got, err := peer.ReceiveString(len("session|0|"))
	require.NoError(t, err)
	require.Equal(t, "session|0|", got)
}

func TestReceiveMinZeroReturnsAvailable(t *testing.T) {
	t.Parallel()

	client, peer := connectedPair(t)

	_, err := client.Send([]byte("abc"))
	require.NoError(t, err)

	buf := make([]byte, 64)
	n, err := peer.Receive(buf, 0)
	require.NoError(t, err)
	require.Positive(t, n)
	require.LessOrEqual(t, n, 3)
	require.Equal(t, []byte("abc")[:n], buf[:n])
}

func TestReceiveWaitsForMinimum(t *testing.T) {
	t.Parallel()

	client, peer := connectedPair(t)

	go func() {
		_, _ = client.Send([]byte("head"))
		time.Sleep(80 * time.Millisecond)
		_, _ = client.Send([]byte("tail"))
	}()

	buf := make([]byte, 16)
	n, err := peer.Receive(buf, 8)
	require.NoError(t, err)
	require.GreaterOrEqual(t, n, 8)
	require.Equal(t, []byte("headtail"), buf[:8])
}

func TestReceiveCapacityIsHardBackstop(t *testing.T) {
	t.Parallel()

	client, peer := connectedPair(t)

	_, err := client.Send([]byte("0123456789"))
	require.NoError(t, err)

	// The minimum exceeds the buffer; the buffer bound wins.
	buf := make([]byte, 4)
	n, err := peer.Receive(buf, 10)
	require.NoError(t, err)
	require.Equal(t, 4, n)
	require.Equal(t, []byte("0123"), buf)
}

func TestReceiveRetriesNonBlockingSocket(t *testing.T) {
	t.Parallel()

	client, peer := connectedPair(t)
	require.NoError(t, peer.SetNonBlocking(true))

	go func() {
		time.Sleep(150 * time.Millisecond)
		_, _ = client.Send([]byte("late"))
	}()

	// The receive loop must absorb the would-block condition with its
	// fixed backoff instead of returning early.
	buf := make([]byte, 4)
	n, err := peer.Receive(buf, 4)
	require.NoError(t, err)
	require.Equal(t, []byte("late"), buf[:n])
}

func TestReceiveReportsPeerClose(t *testing.T) {
	t.Parallel()

	client, peer := connectedPair(t)
	require.NoError(t, client.Close())

	buf := make([]byte, 8)
	n, err := peer.Receive(buf, 8)
	require.Equal(t, 0, n)
	require.ErrorIs(t, err, gxcommon.ErrConnectionClosed)
}

func TestReceiveStringUsesMaxRecvBound(t *testing.T) {
	t.Parallel()

	client, peer := connectedPair(t)

	_, err := client.Send([]byte("short"))
	require.NoError(t, err)

	got, err := peer.ReceiveString(0)
	require.NoError(t, err)
	require.Equal(t, "short", got)
}

func TestBroadcastSendToSetsPeerAddress(t *testing.T) {
	t.Parallel()

	s := gxsocket.NewGXSocketWithConfig(
		gxsocket.SocketFamilyIPv4,
		gxsocket.SocketDomainIPv4,
		gxsocket.SocketTypeDatagram,
		gxsocket.SocketProtocolUDP,
	)
	require.NoError(t, s.Create())
	defer s.Close()
	require.NoError(t, s.SetBroadcast(true))

	// The peer address buffer is rewritten before the send, whether or not
	// the environment routes broadcast traffic.
	_, _ = s.BroadcastSendTo(8866, []byte("discover"))
	require.Equal(t, "255.255.255.255:8866", s.PeerAddress())
}

func TestBroadcastReceiveFromRecordsSender(t *testing.T) {
	t.Parallel()

	receiver, port := newUDPSocket(t)

	sender := gxsocket.NewGXSocketWithConfig(
		gxsocket.SocketFamilyIPv4,
		gxsocket.SocketDomainIPv4,
		gxsocket.SocketTypeDatagram,
		gxsocket.SocketProtocolUDP,
	)
	require.NoError(t, sender.Create())
	defer sender.Close()
	require.NoError(t, sender.Bind(0))
	senderPort, err := sender.LocalPort()
	require.NoError(t, err)

	require.NoError(t, sender.Connect("127.0.0.1", port))
	payload := []byte("nextpvr|discovery")
	_, err = sender.Send(payload)
	require.NoError(t, err)

	buf := make([]byte, 64)
	n, err := receiver.BroadcastReceiveFrom(buf)
	require.NoError(t, err)
	require.Equal(t, payload, buf[:n])

	// The sender's address was captured into the peer address buffer.
	require.Equal(t, fmt.Sprintf("127.0.0.1:%d", senderPort), receiver.PeerAddress())
}

func TestReadReady(t *testing.T) {
	t.Parallel()

	client, peer := connectedPair(t)

	require.False(t, peer.ReadReady())

	_, err := client.Send([]byte("ping"))
	require.NoError(t, err)
	require.Eventually(t, peer.ReadReady, time.Second, 10*time.Millisecond)
}
