package cliconfig

import (
	"testing"
	"time"
)

func TestApplyEnvConfig(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		changed  map[string]bool
		initial  Config
		expected Config
		wantErr  bool
	}{
		{
			name: "applies all valid env vars",
			envVars: map[string]string{
				"SUMLINE_LISTEN":           ":7000",
				"SUMLINE_EXIT_KEYWORD":     "bye",
				"SUMLINE_CLIENT_MODE":      "handoff",
				"SUMLINE_IDLE_POLL":        "1s",
				"SUMLINE_WRITE_TIMEOUT":    "3s",
				"SUMLINE_SHUTDOWN_TIMEOUT": "4s",
				"SUMLINE_LOG_LEVEL":        "error",
				"SUMLINE_WATCH_CONFIG":     "1",
			},
			changed: map[string]bool{},
			initial: Config{},
			expected: Config{
				ListenAddr:      ":7000",
				ExitKeyword:     "bye",
				ClientMode:      "handoff",
				IdlePoll:        time.Second,
				WriteTimeout:    3 * time.Second,
				ShutdownTimeout: 4 * time.Second,
				LogLevel:        "error",
				WatchConfig:     true,
			},
		},
		{
			name: "respects changed flags",
			envVars: map[string]string{
				"SUMLINE_LISTEN":      ":7000",
				"SUMLINE_CLIENT_MODE": "handoff",
			},
			changed: map[string]bool{"listen": true},
			initial: Config{ListenAddr: ":3000"},
			expected: Config{
				ListenAddr: ":3000",
				ClientMode: "handoff",
			},
		},
		{
			name: "handles bool 'false' as false",
			envVars: map[string]string{
				"SUMLINE_WATCH_CONFIG": "false",
			},
			changed:  map[string]bool{},
			initial:  Config{WatchConfig: true},
			expected: Config{WatchConfig: false},
		},
		{
			name: "returns error for invalid duration",
			envVars: map[string]string{
				"SUMLINE_WRITE_TIMEOUT": "not-a-duration",
			},
			changed: map[string]bool{},
			initial: Config{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			cfg := tt.initial
			err := ApplyEnvConfig(&cfg, tt.changed)

			if tt.wantErr && err == nil {
				t.Error("ApplyEnvConfig() expected error but got nil")
				return
			}
			if !tt.wantErr && err != nil {
				t.Errorf("ApplyEnvConfig() unexpected error: %v", err)
				return
			}

			if !tt.wantErr && cfg != tt.expected {
				t.Errorf("ApplyEnvConfig() = %+v, want %+v", cfg, tt.expected)
			}
		})
	}
}

// Integration test: precedence order (CLI > Env > File)
func TestConfigPrecedence(t *testing.T) {
	falseVal := false

	fileConf := FileConfig{
		Listen:      ":5000",
		ExitKeyword: "quit",
		LogLevel:    "debug",
		WatchConfig: &falseVal,
	}

	t.Setenv("SUMLINE_LISTEN", ":6000")
	t.Setenv("SUMLINE_EXIT_KEYWORD", "bye")

	// Simulate CLI flags
	changed := map[string]bool{
		"listen": true,
	}

	cfg := DefaultConfig()
	cfg.ListenAddr = ":7000" // This should remain (CLI wins)

	if err := ApplyFileConfig(&cfg, fileConf, changed); err != nil {
		t.Fatalf("ApplyFileConfig failed: %v", err)
	}
	if err := ApplyEnvConfig(&cfg, changed); err != nil {
		t.Fatalf("ApplyEnvConfig failed: %v", err)
	}

	if cfg.ListenAddr != ":7000" {
		t.Errorf("ListenAddr = %v, want :7000 (CLI should win)", cfg.ListenAddr)
	}
	if cfg.ExitKeyword != "bye" {
		t.Errorf("ExitKeyword = %v, want bye (env should override file)", cfg.ExitKeyword)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %v, want debug (file should set)", cfg.LogLevel)
	}
	if cfg.WatchConfig {
		t.Error("WatchConfig = true, want false (file should set)")
	}
	if cfg.ClientMode != "direct" {
		t.Errorf("ClientMode = %v, want direct (default)", cfg.ClientMode)
	}
}
