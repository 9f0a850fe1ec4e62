package app

import "sync"

// Handoff is a single-slot mailbox between any number of producers and one
// consumer. The newest Put wins: an item that has not been taken yet is
// overwritten, never queued.
//
// The slot and the termination flag share one mutex and one condition
// variable, so Take blocks without polling.
type Handoff struct {
	mu         sync.Mutex
	cond       *sync.Cond
	item       string
	pending    bool
	terminated bool
	overwrites uint64
}

// NewHandoff returns an empty, non-terminated handoff.
func NewHandoff() *Handoff {
	h := &Handoff{}
	h.cond = sync.NewCond(&h.mu)
	return h
}

// Put stores item as the pending value and wakes one waiter.
// It reports whether an unconsumed item was overwritten. Never blocks.
func (h *Handoff) Put(item string) (overwrote bool) {
	h.mu.Lock()
	overwrote = h.pending
	if overwrote {
		h.overwrites++
	}
	h.item = item
	h.pending = true
	h.mu.Unlock()

	h.cond.Signal()
	return overwrote
}

// Take blocks until an item is pending or termination is signaled.
// A pending item is returned with ok=true even after termination; once the
// slot is empty and termination is set, Take returns ("", false).
func (h *Handoff) Take() (item string, ok bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for !h.pending && !h.terminated {
		h.cond.Wait()
	}
	if !h.pending {
		return "", false
	}
	item = h.item
	h.item = ""
	h.pending = false
	return item, true
}

// SignalTermination sets the termination flag and wakes every waiter.
// Calling it more than once has no further effect.
func (h *Handoff) SignalTermination() {
	h.mu.Lock()
	h.terminated = true
	h.mu.Unlock()

	h.cond.Broadcast()
}

// Terminated reports whether SignalTermination has been called.
func (h *Handoff) Terminated() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.terminated
}

// Overwrites returns how many pending items were discarded by a later Put.
func (h *Handoff) Overwrites() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.overwrites
}
