package cliconfig

import (
	"fmt"
	"strings"
	"time"

	logAdapter "github.com/bft-labs/sumline/internal/adapters/log"
	"github.com/bft-labs/sumline/internal/domain"
	"github.com/bft-labs/sumline/pkg/sumline"
)

// DefaultLogLevel is used when no level is configured.
const DefaultLogLevel = "info"

// Config holds CLI configuration for sumline.
type Config struct {
	ListenAddr  string
	ExitKeyword string
	ClientMode  string

	IdlePoll        time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration

	LogLevel    string
	WatchConfig bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	lib := sumline.DefaultConfig()
	return Config{
		ListenAddr:      lib.ListenAddr,
		ExitKeyword:     lib.ExitKeyword,
		ClientMode:      lib.ClientMode,
		IdlePoll:        lib.IdlePoll,
		WriteTimeout:    lib.WriteTimeout,
		ShutdownTimeout: lib.ShutdownTimeout,
		LogLevel:        DefaultLogLevel,
		WatchConfig:     true,
	}
}

// Validate checks the configuration for errors and normalizes names.
func (c *Config) Validate() error {
	c.ClientMode = strings.ToLower(strings.TrimSpace(c.ClientMode))
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))

	if c.WriteTimeout <= 0 {
		return fmt.Errorf("%w: write timeout must be positive", domain.ErrInvalidConfig)
	}
	if _, err := logAdapter.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidConfig, err)
	}
	return c.Library().Validate()
}

// Library converts the CLI configuration into the embeddable pipeline config.
func (c Config) Library() sumline.Config {
	return sumline.Config{
		ListenAddr:      c.ListenAddr,
		ExitKeyword:     c.ExitKeyword,
		ClientMode:      c.ClientMode,
		IdlePoll:        c.IdlePoll,
		WriteTimeout:    c.WriteTimeout,
		ShutdownTimeout: c.ShutdownTimeout,
	}
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true", "1" as true, anything else as false.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
