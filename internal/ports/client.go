package ports

// Client is one accepted network peer.
// Implementations must be safe for one reader and several writers at once.
type Client interface {
	// ID identifies the connection for logs and for ClearIf matching.
	ID() uint64

	// RemoteAddr returns the peer address as a string.
	RemoteAddr() string

	// Read blocks until data arrives, the peer disconnects, or the client is closed.
	Read(p []byte) (int, error)

	// Send writes one complete reply line.
	// Fails once the client has been closed or replaced.
	Send(line string) error

	// Close releases the connection. Safe to call more than once.
	Close() error
}

// ClientSlot holds at most one current client.
// The raw connection is never exposed; callers work with the Client handle
// they got from Current and clear it only if it is still current.
type ClientSlot interface {
	// Current returns the active client, or nil when none is connected.
	Current() Client

	// ClearIf closes c and empties the slot if c is still the active client.
	// Returns true if the slot was cleared.
	ClearIf(c Client) bool
}
