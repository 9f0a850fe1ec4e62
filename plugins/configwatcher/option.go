package configwatcher

import "github.com/bft-labs/sumline/pkg/sumline"

// WithConfigWatcher returns a sumline Option that enables config file watching.
//
// Usage:
//
//	p, err := sumline.New(cfg,
//	    configwatcher.WithConfigWatcher(configwatcher.Config{
//	        Path:          "/etc/sumline/config.toml",
//	        DebounceDelay: 100 * time.Millisecond,
//	    }),
//	)
func WithConfigWatcher(cfg Config) sumline.Option {
	return sumline.WithPlugin(New(cfg))
}
