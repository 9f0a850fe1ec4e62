package sumline

import (
	"fmt"
	"strings"
	"time"

	"github.com/bft-labs/sumline/internal/app"
	"github.com/bft-labs/sumline/internal/domain"
)

// DefaultListenAddr is the TCP address the pipeline listens on by default.
const DefaultListenAddr = ":3000"

// Client modes accepted by Config.ClientMode.
const (
	ClientModeDirect  = string(app.ClientModeDirect)
	ClientModeHandoff = string(app.ClientModeHandoff)
)

// Config holds the configuration for a Pipeline.
// Use DefaultConfig() to get a Config with sensible defaults.
type Config struct {
	// ListenAddr is the TCP address for the single client connection.
	ListenAddr string

	// ExitKeyword ends the session when read from the console.
	ExitKeyword string

	// ClientMode is "direct" (client input is answered inline) or
	// "handoff" (client input goes through the worker).
	ClientMode string

	// IdlePoll is how often the client reader checks for a new client.
	IdlePoll time.Duration

	// WriteTimeout bounds each reply write to the client. Zero selects the
	// default; a negative value disables the deadline.
	WriteTimeout time.Duration

	// ShutdownTimeout bounds the wait for goroutines during shutdown.
	ShutdownTimeout time.Duration
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		ListenAddr:      DefaultListenAddr,
		ExitKeyword:     app.DefaultExitKeyword,
		ClientMode:      ClientModeDirect,
		IdlePoll:        app.DefaultIdlePoll,
		WriteTimeout:    5 * time.Second,
		ShutdownTimeout: app.DefaultShutdownTimeout,
	}
}

// SetDefaults fills zero-valued fields with defaults.
func (c *Config) SetDefaults() {
	d := DefaultConfig()
	if c.ListenAddr == "" {
		c.ListenAddr = d.ListenAddr
	}
	if c.ExitKeyword == "" {
		c.ExitKeyword = d.ExitKeyword
	}
	if c.ClientMode == "" {
		c.ClientMode = d.ClientMode
	}
	if c.IdlePoll == 0 {
		c.IdlePoll = d.IdlePoll
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = d.WriteTimeout
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = d.ShutdownTimeout
	}
}

// Validate checks the configuration. Errors wrap domain.ErrInvalidConfig.
func (c Config) Validate() error {
	if strings.TrimSpace(c.ListenAddr) == "" {
		return fmt.Errorf("%w: listen address is required", domain.ErrInvalidConfig)
	}
	if c.ExitKeyword == "" || strings.ContainsAny(c.ExitKeyword, " \t\r\n") {
		return fmt.Errorf("%w: exit keyword must be a single non-empty word", domain.ErrInvalidConfig)
	}
	if domain.Validate(c.ExitKeyword) {
		return fmt.Errorf("%w: exit keyword %q would shadow valid input", domain.ErrInvalidConfig, c.ExitKeyword)
	}
	if _, err := app.ParseClientMode(c.ClientMode); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidConfig, err)
	}
	if c.IdlePoll <= 0 {
		return fmt.Errorf("%w: idle poll must be positive", domain.ErrInvalidConfig)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("%w: shutdown timeout must be positive", domain.ErrInvalidConfig)
	}
	return nil
}
