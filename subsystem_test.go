package gxsocket

import (
	"strings"
	"sync"
	"testing"

	"github.com/Gurux/gxcommon-go"
	"github.com/stretchr/testify/require"
)

func TestSubsystemCounterFollowsLifecycle(t *testing.T) {
	before := netSubsystem.live()

	sockets := make([]*GXSocket, 3)
	for i := range sockets {
		sockets[i] = NewGXSocket()
		require.NoError(t, sockets[i].Create())
	}
	require.Equal(t, before+3, netSubsystem.live())

	for _, s := range sockets {
		require.NoError(t, s.Close())
	}
	require.Equal(t, before, netSubsystem.live())
}

func TestSubsystemCounterSurvivesConcurrency(t *testing.T) {
	before := netSubsystem.live()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				s := NewGXSocket()
				if err := s.Create(); err != nil {
					continue
				}
				_ = s.Close()
			}
		}()
	}
	wg.Wait()

	require.Equal(t, before, netSubsystem.live())
}

func TestPoisonedHandleKeepsSubsystemReferenceUntilClose(t *testing.T) {
	before := netSubsystem.live()

	s := NewGXSocket()
	require.NoError(t, s.Create())
	require.Equal(t, before+1, netSubsystem.live())

	// Poison abandons the handle but not the subsystem reference.
	s.poison()
	require.Equal(t, SocketStatePoisoned, s.State())
	require.Equal(t, before+1, netSubsystem.live())

	require.NoError(t, s.Close())
	require.Equal(t, SocketStateClosed, s.State())
	require.Equal(t, before, netSubsystem.live())
}

func TestCreateReleasesPoisonedReference(t *testing.T) {
	before := netSubsystem.live()

	s := NewGXSocket()
	require.NoError(t, s.Create())
	s.poison()

	// Re-creating from the poisoned state must not leak the old reference.
	require.NoError(t, s.Create())
	require.Equal(t, before+1, netSubsystem.live())

	require.NoError(t, s.Close())
	require.Equal(t, before, netSubsystem.live())
}

func TestFailedCreateLeavesCounterUntouched(t *testing.T) {
	before := netSubsystem.live()

	s := NewGXSocketWithConfig(SocketFamily(99), SocketDomainIPv4, SocketTypeStream, SocketProtocolTCP)
	require.ErrorIs(t, s.Create(), ErrAllocation)
	require.Equal(t, before, netSubsystem.live())
}

func TestFailedOperationEmitsOneDiagnosticLine(t *testing.T) {
	srv := NewGXSocket()
	require.NoError(t, srv.Create())
	require.NoError(t, srv.Bind(0))
	require.NoError(t, srv.Listen())
	port, err := srv.LocalPort()
	require.NoError(t, err)
	require.NoError(t, srv.Close())

	c := NewGXSocket()
	c.traceLevel = gxcommon.TraceLevel(0xFF)
	var lines []string
	c.SetOnTrace(func(traceType gxcommon.TraceTypes, message string) {
		require.Equal(t, gxcommon.TraceTypesError, traceType)
		lines = append(lines, message)
	})

	require.NoError(t, c.Create())
	defer c.Close()

	require.ErrorIs(t, c.Connect("127.0.0.1", port), ErrConnect)
	require.Len(t, lines, 1)
	require.Contains(t, lines[0], "GXSocket.Connect")
	require.Contains(t, lines[0], "error=")
	require.False(t, strings.HasSuffix(lines[0], "\n"))
}
