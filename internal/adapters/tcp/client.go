package tcp

import (
	"io"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bft-labs/sumline/internal/ports"
)

// Client wraps one accepted connection.
// Writes are serialized so a reply line is never interleaved with another.
type Client struct {
	id           uint64
	conn         net.Conn
	writeTimeout time.Duration

	writeMu   sync.Mutex
	closed    atomic.Bool
	closeOnce sync.Once
	closeErr  error
}

// NewClient wraps conn. A writeTimeout of zero or less disables write deadlines.
func NewClient(id uint64, conn net.Conn, writeTimeout time.Duration) *Client {
	return &Client{id: id, conn: conn, writeTimeout: writeTimeout}
}

// ID returns the connection sequence number assigned at accept time.
func (c *Client) ID() uint64 { return c.id }

// RemoteAddr returns the peer address.
func (c *Client) RemoteAddr() string {
	if addr := c.conn.RemoteAddr(); addr != nil {
		return addr.String()
	}
	return "unknown"
}

// Read reads raw bytes from the peer.
func (c *Client) Read(p []byte) (int, error) {
	if c.closed.Load() {
		return 0, net.ErrClosed
	}
	return c.conn.Read(p)
}

// Send writes line to the peer under the write deadline.
func (c *Client) Send(line string) error {
	if c.closed.Load() {
		return net.ErrClosed
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if c.writeTimeout > 0 {
		if err := c.conn.SetWriteDeadline(time.Now().Add(c.writeTimeout)); err != nil {
			return err
		}
	}
	_, err := io.WriteString(c.conn, line)
	return err
}

// Close closes the connection once; later calls return the first result.
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		c.closed.Store(true)
		c.closeErr = c.conn.Close()
	})
	return c.closeErr
}

// Closed reports whether Close has been called.
func (c *Client) Closed() bool { return c.closed.Load() }

var _ ports.Client = (*Client)(nil)
