package domain

import "errors"

// Domain errors represent error conditions in the sumline domain.
// These errors are returned by the public API and can be checked with errors.Is.
var (
	// ErrInvalidInput is returned when an input is not 1 to 64 decimal digits.
	ErrInvalidInput = errors.New("sumline: only digits, max 64 chars")

	// ErrAlreadyRunning is returned when Start() is called on a running pipeline.
	ErrAlreadyRunning = errors.New("sumline: already running")

	// ErrNotRunning is returned when Stop() is called on a stopped pipeline.
	ErrNotRunning = errors.New("sumline: not running")

	// ErrShutdownTimeout is returned when graceful shutdown times out.
	ErrShutdownTimeout = errors.New("sumline: shutdown timeout")

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("sumline: invalid configuration")

	// ErrNoClient is returned when a reply is addressed to a client slot that is empty.
	ErrNoClient = errors.New("sumline: no client connected")
)
