// Package sumline runs the digit-sum pipeline with a single call.
//
// Example usage:
//
//	cfg := sumline.DefaultConfig()
//	cfg.ListenAddr = "127.0.0.1:4000"
//	if err := sumline.Run(context.Background(), cfg, os.Stdin, os.Stdout); err != nil {
//	    log.Fatal(err)
//	}
//
// For finer control (custom logger, plugins, event handlers) use the
// pkg/sumline package directly.
package sumline

import (
	"context"
	"io"

	"github.com/bft-labs/sumline/pkg/sumline"
)

// Config holds the pipeline configuration.
// Use DefaultConfig() to get a Config with sensible defaults.
type Config = sumline.Config

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return sumline.DefaultConfig()
}

// Run starts the pipeline with console input from in and output to out.
// It blocks until the exit keyword is read, in reaches end of input, or ctx
// is cancelled.
func Run(ctx context.Context, cfg Config, in io.Reader, out io.Writer) error {
	p, err := sumline.New(cfg, sumline.WithConsole(in, out))
	if err != nil {
		return err
	}
	if err := p.Start(ctx); err != nil {
		return err
	}
	return p.Wait()
}
