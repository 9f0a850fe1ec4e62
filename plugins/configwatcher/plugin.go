// Package configwatcher provides config file monitoring for sumline.
// When enabled, it watches the sumline TOML config file and re-applies
// the settings that can change at runtime (currently the log level).
package configwatcher

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	logAdapter "github.com/bft-labs/sumline/internal/adapters/log"
	"github.com/bft-labs/sumline/internal/cliconfig"
	"github.com/bft-labs/sumline/internal/ports"
	"github.com/bft-labs/sumline/pkg/sumline"
)

// Plugin implements config watching functionality.
type Plugin struct {
	mu sync.Mutex

	path          string
	debounceDelay time.Duration
	onReload      func(level string)

	logger   sumline.Logger
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	debounce *time.Timer
	reloads  int
}

// Config holds configuration options for the config watcher plugin.
type Config struct {
	// Path is the config file to watch. Empty disables the watcher.
	Path string

	// DebounceDelay is the delay to wait after a file change before reloading.
	// Default: 100 milliseconds
	DebounceDelay time.Duration

	// OnReload, if set, is called with the applied log level after each reload.
	OnReload func(level string)
}

// DefaultConfig returns a Config watching the default config file.
func DefaultConfig() Config {
	return Config{
		Path:          cliconfig.DefaultConfigPath(),
		DebounceDelay: 100 * time.Millisecond,
	}
}

// New creates a new config watcher plugin with the given configuration.
func New(cfg Config) *Plugin {
	if cfg.DebounceDelay <= 0 {
		cfg.DebounceDelay = 100 * time.Millisecond
	}
	path := cfg.Path
	if path != "" {
		path = filepath.Clean(path)
	}
	return &Plugin{
		path:          path,
		debounceDelay: cfg.DebounceDelay,
		onReload:      cfg.OnReload,
	}
}

// Name returns the plugin identifier.
func (p *Plugin) Name() string {
	return "configwatcher"
}

// Initialize starts watching the directory holding the config file.
// Editors often replace files instead of writing them, so the directory is
// watched rather than the file.
func (p *Plugin) Initialize(ctx context.Context, cfg sumline.PluginConfig) error {
	p.logger = cfg.Logger
	if p.logger == nil {
		p.logger = logAdapter.NewNoopLogger()
	}

	if p.path == "" {
		p.logger.Warn("config watcher disabled: no config path")
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(p.path)); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("watch %s: %w", filepath.Dir(p.path), err)
	}

	watchCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	p.logger.Info("config watcher started", ports.String("path", p.path))

	p.wg.Add(1)
	go p.watchLoop(watchCtx, watcher)

	return nil
}

// Shutdown stops the config watcher.
func (p *Plugin) Shutdown(ctx context.Context) error {
	if p.cancel != nil {
		p.cancel()
	}
	p.wg.Wait()

	p.mu.Lock()
	if p.debounce != nil {
		p.debounce.Stop()
	}
	p.mu.Unlock()
	return nil
}

// Reloads returns how many times the config file has been re-applied.
func (p *Plugin) Reloads() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.reloads
}

func (p *Plugin) watchLoop(ctx context.Context, watcher *fsnotify.Watcher) {
	defer p.wg.Done()
	defer watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != p.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			p.debounceReload(ctx)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			p.logger.Warn("config watcher error", ports.Err(err))
		}
	}
}

func (p *Plugin) debounceReload(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.debounce != nil {
		p.debounce.Stop()
	}

	p.debounce = time.AfterFunc(p.debounceDelay, func() {
		if ctx.Err() != nil {
			return
		}
		p.reload()
	})
}

func (p *Plugin) reload() {
	fc, err := cliconfig.LoadFileConfig(p.path)
	if err != nil {
		p.logger.Warn("config reload failed", ports.String("path", p.path), ports.Err(err))
		return
	}

	level := fc.LogLevel
	if level == "" {
		level = cliconfig.DefaultLogLevel
	}
	if err := logAdapter.SetLevel(level); err != nil {
		p.logger.Warn("config reload: invalid log level", ports.String("level", level), ports.Err(err))
		return
	}

	p.mu.Lock()
	p.reloads++
	p.mu.Unlock()

	p.logger.Info("config reloaded", ports.String("path", p.path), ports.String("log_level", level))
	if p.onReload != nil {
		p.onReload(level)
	}
}

// Ensure Plugin implements sumline.Plugin.
var _ sumline.Plugin = (*Plugin)(nil)
