package tcp

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync/atomic"
	"time"

	"github.com/bft-labs/sumline/internal/ports"
	"github.com/bft-labs/sumline/pkg/lifecycle"
)

// Default accept retry bounds.
const (
	DefaultAcceptBackoffInitial = 50 * time.Millisecond
	DefaultAcceptBackoffMax     = 2 * time.Second
)

// ManagerConfig configures the connection manager.
type ManagerConfig struct {
	// WriteTimeout bounds each reply write. Zero or less disables the deadline.
	WriteTimeout time.Duration

	// AcceptBackoffInitial and AcceptBackoffMax bound the retry delay after
	// an accept error.
	AcceptBackoffInitial time.Duration
	AcceptBackoffMax     time.Duration
}

// Manager owns the listening socket and feeds accepted connections into a Slot.
type Manager struct {
	cfg    ManagerConfig
	ln     net.Listener
	slot   *Slot
	logger ports.Logger

	nextID   atomic.Uint64
	accepted atomic.Uint64
}

// Listen opens a TCP listener on addr.
func Listen(addr string) (net.Listener, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", addr, err)
	}
	return ln, nil
}

// NewManager creates a manager around an already-open listener.
func NewManager(ln net.Listener, slot *Slot, cfg ManagerConfig, logger ports.Logger) *Manager {
	if cfg.AcceptBackoffInitial <= 0 {
		cfg.AcceptBackoffInitial = DefaultAcceptBackoffInitial
	}
	if cfg.AcceptBackoffMax < cfg.AcceptBackoffInitial {
		cfg.AcceptBackoffMax = DefaultAcceptBackoffMax
	}
	return &Manager{
		cfg:    cfg,
		ln:     ln,
		slot:   slot,
		logger: logger,
	}
}

// Addr returns the listener's address.
func (m *Manager) Addr() net.Addr {
	return m.ln.Addr()
}

// Accepted returns the number of connections accepted so far.
func (m *Manager) Accepted() uint64 {
	return m.accepted.Load()
}

// Run accepts connections until the listener is closed or ctx is done.
// Each accepted connection replaces the current client.
func (m *Manager) Run(ctx context.Context) {
	back := lifecycle.NewBackoff(m.cfg.AcceptBackoffInitial, m.cfg.AcceptBackoffMax)

	for {
		conn, err := m.ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) || ctx.Err() != nil {
				m.logger.Debug("accept loop stopped")
				return
			}
			m.logger.Error("accept failed",
				ports.Err(err),
				ports.Duration("retry_in", back.Current()),
			)
			if back.SleepContext(ctx) != nil {
				return
			}
			continue
		}
		back.Reset()
		if ctx.Err() != nil {
			_ = conn.Close()
			m.logger.Debug("accept loop stopped")
			return
		}

		c := NewClient(m.nextID.Add(1), conn, m.cfg.WriteTimeout)
		m.accepted.Add(1)
		prev := m.slot.Replace(c)

		fields := []ports.Field{
			ports.Uint64("client", c.ID()),
			ports.String("remote", c.RemoteAddr()),
		}
		if prev != nil {
			fields = append(fields, ports.Uint64("replaced", prev.ID()))
		}
		m.logger.Info("client connected", fields...)
	}
}

// Close stops accepting new connections.
func (m *Manager) Close() error {
	return m.ln.Close()
}
