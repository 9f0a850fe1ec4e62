package sumline

import "context"

// Plugin is an optional component started and stopped with the Pipeline.
type Plugin interface {
	// Name identifies the plugin in logs.
	Name() string

	// Initialize is called from Start once the listener is bound. The context
	// is cancelled when the pipeline shuts down. A returned error aborts Start.
	Initialize(ctx context.Context, cfg PluginConfig) error

	// Shutdown is called during pipeline shutdown, in reverse registration order.
	Shutdown(ctx context.Context) error
}

// PluginConfig carries pipeline settings plugins may need.
type PluginConfig struct {
	ListenAddr string
	Logger     Logger
}
