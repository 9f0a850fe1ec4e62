package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (SUMLINE_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("listen", os.Getenv("SUMLINE_LISTEN"), &cfg.ListenAddr)
	s.setString("exit-keyword", os.Getenv("SUMLINE_EXIT_KEYWORD"), &cfg.ExitKeyword)
	s.setString("client-mode", os.Getenv("SUMLINE_CLIENT_MODE"), &cfg.ClientMode)
	s.setString("log-level", os.Getenv("SUMLINE_LOG_LEVEL"), &cfg.LogLevel)

	if err := s.setDuration("idle-poll", os.Getenv("SUMLINE_IDLE_POLL"), &cfg.IdlePoll); err != nil {
		return err
	}
	if err := s.setDuration("write-timeout", os.Getenv("SUMLINE_WRITE_TIMEOUT"), &cfg.WriteTimeout); err != nil {
		return err
	}
	if err := s.setDuration("shutdown-timeout", os.Getenv("SUMLINE_SHUTDOWN_TIMEOUT"), &cfg.ShutdownTimeout); err != nil {
		return err
	}

	s.setBoolFromString("watch-config", os.Getenv("SUMLINE_WATCH_CONFIG"), &cfg.WatchConfig)

	return nil
}
