package tcp

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pipeClient(t *testing.T, id uint64) (*Client, net.Conn) {
	t.Helper()
	server, peer := net.Pipe()
	t.Cleanup(func() {
		server.Close()
		peer.Close()
	})
	return NewClient(id, server, time.Second), peer
}

func TestSlot_EmptyCurrentIsNil(t *testing.T) {
	s := NewSlot()
	assert.Nil(t, s.Current())
	assert.False(t, s.ClearIf(nil))
	assert.NoError(t, s.Close())
}

func TestSlot_ReplaceClosesPrevious(t *testing.T) {
	s := NewSlot()
	first, _ := pipeClient(t, 1)
	second, _ := pipeClient(t, 2)

	assert.Nil(t, s.Replace(first))
	prev := s.Replace(second)

	require.NotNil(t, prev)
	assert.Equal(t, uint64(1), prev.ID())
	assert.True(t, first.Closed())
	assert.False(t, second.Closed())
	assert.Equal(t, uint64(2), s.Current().ID())

	err := first.Send("SUM:1\n")
	assert.ErrorIs(t, err, net.ErrClosed)
}

func TestSlot_ClearIfMatchesOnlyCurrent(t *testing.T) {
	s := NewSlot()
	first, _ := pipeClient(t, 1)
	second, _ := pipeClient(t, 2)

	s.Replace(first)
	s.Replace(second)

	assert.False(t, s.ClearIf(first), "stale handle must not clear the newer client")
	assert.Equal(t, uint64(2), s.Current().ID())

	assert.True(t, s.ClearIf(second))
	assert.Nil(t, s.Current())
	assert.True(t, second.Closed())
	assert.False(t, s.ClearIf(second))
}

func TestSlot_CloseClosesCurrent(t *testing.T) {
	s := NewSlot()
	c, _ := pipeClient(t, 1)
	s.Replace(c)

	require.NoError(t, s.Close())
	assert.True(t, c.Closed())
	assert.Nil(t, s.Current())
}

func TestSlot_ReplaceAfterCloseClosesClient(t *testing.T) {
	s := NewSlot()
	require.NoError(t, s.Close())

	c, _ := pipeClient(t, 1)
	assert.Nil(t, s.Replace(c))
	assert.True(t, c.Closed())
	assert.Nil(t, s.Current())
}

func TestClient_SendAndRead(t *testing.T) {
	c, peer := pipeClient(t, 5)

	go func() {
		_, _ = peer.Write([]byte("1234\n"))
	}()
	buf := make([]byte, 16)
	n, err := c.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "1234\n", string(buf[:n]))

	done := make(chan string, 1)
	go func() {
		b := make([]byte, 16)
		n, _ := peer.Read(b)
		done <- string(b[:n])
	}()
	require.NoError(t, c.Send("SUM:4\n"))
	assert.Equal(t, "SUM:4\n", <-done)
}

func TestClient_SendTimesOut(t *testing.T) {
	server, peer := net.Pipe()
	defer server.Close()
	defer peer.Close()
	c := NewClient(1, server, 20*time.Millisecond)

	// nobody reads from peer, so the pipe write blocks until the deadline
	err := c.Send("SUM:1\n")
	require.Error(t, err)
	var ne net.Error
	require.ErrorAs(t, err, &ne)
	assert.True(t, ne.Timeout())
}

func TestClient_NegativeTimeoutDisablesDeadline(t *testing.T) {
	server, peer := net.Pipe()
	defer server.Close()
	defer peer.Close()
	c := NewClient(1, server, -1)

	done := make(chan string, 1)
	go func() {
		time.Sleep(50 * time.Millisecond)
		b := make([]byte, 16)
		n, _ := peer.Read(b)
		done <- string(b[:n])
	}()
	require.NoError(t, c.Send("SUM:1\n"))
	assert.Equal(t, "SUM:1\n", <-done)
}

func TestClient_CloseIdempotent(t *testing.T) {
	c, _ := pipeClient(t, 1)
	require.NoError(t, c.Close())
	assert.NoError(t, c.Close())
	_, err := c.Read(make([]byte, 1))
	assert.ErrorIs(t, err, net.ErrClosed)
}
