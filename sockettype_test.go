package gxsocket_test

import (
	"testing"

	"github.com/Gurux/gxcommon-go"
	"github.com/stretchr/testify/require"

	gxsocket "github.com/Gurux/gxsocket-go"
)

func TestSocketProtocolParse(t *testing.T) {
	t.Parallel()

	for _, want := range []gxsocket.SocketProtocol{gxsocket.SocketProtocolTCP, gxsocket.SocketProtocolUDP} {
		got, err := gxsocket.SocketProtocolParse(want.String())
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	_, err := gxsocket.SocketProtocolParse("SCTP")
	require.ErrorIs(t, err, gxcommon.ErrUnknownEnum)
}

func TestSocketTypeParse(t *testing.T) {
	t.Parallel()

	for _, want := range []gxsocket.SocketType{gxsocket.SocketTypeStream, gxsocket.SocketTypeDatagram} {
		got, err := gxsocket.SocketTypeParse(want.String())
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	_, err := gxsocket.SocketTypeParse("RAW")
	require.ErrorIs(t, err, gxcommon.ErrUnknownEnum)
}

func TestSocketStateString(t *testing.T) {
	t.Parallel()

	require.Equal(t, "CLOSED", gxsocket.SocketStateClosed.String())
	require.Equal(t, "ACTIVE", gxsocket.SocketStateActive.String())
	require.Equal(t, "POISONED", gxsocket.SocketStatePoisoned.String())
}
