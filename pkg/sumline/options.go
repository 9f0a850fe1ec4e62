package sumline

import (
	"io"
	"net"

	logAdapter "github.com/bft-labs/sumline/internal/adapters/log"
	"github.com/bft-labs/sumline/internal/ports"
)

// Logger is the interface for structured logging.
type Logger = ports.Logger

// LogField represents a structured log field.
type LogField = ports.Field

// Option configures optional behavior of a Pipeline.
type Option func(*options)

// options holds the optional configuration for a Pipeline instance.
type options struct {
	logger       ports.Logger
	eventHandler EventHandler
	consoleIn    io.Reader
	consoleOut   io.Writer
	prompt       bool
	listener     net.Listener
	plugins      []Plugin
}

// defaultOptions returns options with sensible defaults.
func defaultOptions() options {
	return options{
		logger: logAdapter.NewNoopLogger(),
	}
}

// WithLogger sets a custom logger for structured logging.
// If not provided, a no-op logger is used (no output).
func WithLogger(logger Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithEventHandler sets a handler for lifecycle events.
func WithEventHandler(handler EventHandler) Option {
	return func(o *options) {
		o.eventHandler = handler
	}
}

// WithConsole attaches the interactive console. Tokens are read from in;
// prompts, validation errors and digests are written to out.
// Without a console the pipeline serves only the network client and ends
// on Stop.
func WithConsole(in io.Reader, out io.Writer) Option {
	return func(o *options) {
		o.consoleIn = in
		o.consoleOut = out
	}
}

// WithPrompt enables the input prompt on the console output.
func WithPrompt(enabled bool) Option {
	return func(o *options) {
		o.prompt = enabled
	}
}

// WithListener uses an already-open listener instead of Config.ListenAddr.
// The pipeline takes ownership and closes it on shutdown.
func WithListener(ln net.Listener) Option {
	return func(o *options) {
		o.listener = ln
	}
}

// WithPlugin registers a plugin to be initialized when the Pipeline starts.
// Plugins are initialized in registration order and shut down in reverse order.
func WithPlugin(plugin Plugin) Option {
	return func(o *options) {
		if plugin != nil {
			o.plugins = append(o.plugins, plugin)
		}
	}
}
