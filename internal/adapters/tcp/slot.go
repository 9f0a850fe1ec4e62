package tcp

import (
	"sync"

	"github.com/bft-labs/sumline/internal/ports"
)

// Slot is the single-client registry: at most one Client is current.
// A newer client always wins; the one it displaces is closed.
type Slot struct {
	mu      sync.Mutex
	current *Client
	closed  bool
}

// NewSlot returns an empty slot.
func NewSlot() *Slot {
	return &Slot{}
}

// Current returns the active client, or nil.
func (s *Slot) Current() ports.Client {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	return s.current
}

// Replace installs c as the active client and closes the one it displaces.
// Returns the displaced client, or nil if the slot was empty. Once the slot
// is closed, c is closed instead of installed.
func (s *Slot) Replace(c *Client) *Client {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		_ = c.Close()
		return nil
	}
	prev := s.current
	s.current = c
	s.mu.Unlock()

	if prev != nil {
		_ = prev.Close()
	}
	return prev
}

// ClearIf closes c and empties the slot, but only while c is still current.
// A stale handle whose slot was already taken by a newer client is left alone.
func (s *Slot) ClearIf(c ports.Client) bool {
	if c == nil {
		return false
	}

	s.mu.Lock()
	if s.current == nil || s.current.ID() != c.ID() {
		s.mu.Unlock()
		return false
	}
	cur := s.current
	s.current = nil
	s.mu.Unlock()

	_ = cur.Close()
	return true
}

// Close empties the slot and closes the active client, if any. Clients
// offered to Replace afterwards are closed immediately.
func (s *Slot) Close() error {
	s.mu.Lock()
	s.closed = true
	cur := s.current
	s.current = nil
	s.mu.Unlock()

	if cur == nil {
		return nil
	}
	return cur.Close()
}

var _ ports.ClientSlot = (*Slot)(nil)
