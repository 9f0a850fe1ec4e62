package app

import (
	"io"
	"net"
	"sync"

	"github.com/bft-labs/sumline/internal/ports"
)

// fakeClient is a scripted ports.Client. Reads are fed through chunks;
// closing chunks simulates an orderly disconnect.
type fakeClient struct {
	id     uint64
	chunks chan string

	mu      sync.Mutex
	sent    []string
	sendErr error
	closed  bool
	closeCh chan struct{}
}

func newFakeClient(id uint64) *fakeClient {
	return &fakeClient{
		id:      id,
		chunks:  make(chan string, 16),
		closeCh: make(chan struct{}),
	}
}

func (c *fakeClient) ID() uint64         { return c.id }
func (c *fakeClient) RemoteAddr() string { return "fake" }

func (c *fakeClient) Read(p []byte) (int, error) {
	select {
	case s, ok := <-c.chunks:
		if !ok {
			return 0, io.EOF
		}
		return copy(p, s), nil
	case <-c.closeCh:
		return 0, net.ErrClosed
	}
}

func (c *fakeClient) Send(line string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return net.ErrClosed
	}
	if c.sendErr != nil {
		return c.sendErr
	}
	c.sent = append(c.sent, line)
	return nil
}

func (c *fakeClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.closeCh)
	}
	return nil
}

func (c *fakeClient) failSends(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sendErr = err
}

func (c *fakeClient) Sent() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string{}, c.sent...)
}

func (c *fakeClient) IsClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// fakeSlot is a mutex-guarded ports.ClientSlot.
type fakeSlot struct {
	mu      sync.Mutex
	current ports.Client
}

func (s *fakeSlot) set(c ports.Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = c
}

func (s *fakeSlot) Current() ports.Client {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *fakeSlot) ClearIf(c ports.Client) bool {
	s.mu.Lock()
	if s.current == nil || c == nil || s.current.ID() != c.ID() {
		s.mu.Unlock()
		return false
	}
	s.current = nil
	s.mu.Unlock()
	_ = c.Close()
	return true
}

// syncBuffer is a goroutine-safe bytes sink for console output.
type syncBuffer struct {
	mu  sync.Mutex
	buf []byte
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf = append(b.buf, p...)
	return len(p), nil
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return string(b.buf)
}
