package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"
	"golang.org/x/term"

	logAdapter "github.com/bft-labs/sumline/internal/adapters/log"
	"github.com/bft-labs/sumline/internal/cliconfig"
	"github.com/bft-labs/sumline/pkg/sumline"
	"github.com/bft-labs/sumline/plugins/configwatcher"
)

const longHelp = `Read digit strings from the console and from one TCP client.

Each valid input (1 to 64 ASCII digits) is sorted descending, its even digits
are replaced by "KV", and the sum of the remaining digits is reported:
echoed to the console and sent to the connected client as "SUM:<n>".

Only one client is served at a time; a new connection replaces the old one.
Type the exit keyword (default "exit") or close stdin to stop.`

var exampleUsage = strings.TrimSpace(`
  sumline
  sumline --listen 127.0.0.1:4000 --client-mode handoff
  sumline --config $HOME/.sumline/config.toml --log-level debug
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	log := cliconfig.Logger()

	root := &cobra.Command{
		Use:           "sumline",
		Short:         "Digit-sum pipeline fed by the console and a single TCP client",
		Long:          longHelp,
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			// Build set of changed flags
			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
			}

			// SUMLINE_* override the file but not explicit flags
			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}

			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := logAdapter.SetLevel(cfg.LogLevel); err != nil {
				return err
			}

			log.Info().Interface("config", cfg).Msg("configuration")

			opts := []sumline.Option{
				sumline.WithLogger(logAdapter.NewZerologAdapterWithLogger(log)),
				sumline.WithConsole(os.Stdin, os.Stdout),
				sumline.WithPrompt(term.IsTerminal(int(os.Stdin.Fd()))),
			}
			if cfg.WatchConfig && cfgFile != "" && cliconfig.FileExists(cfgFile) {
				opts = append(opts, configwatcher.WithConfigWatcher(configwatcher.Config{Path: cfgFile}))
			}

			p, err := sumline.New(cfg.Library(), opts...)
			if err != nil {
				return fmt.Errorf("create pipeline: %w", err)
			}

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(sigCh)

			if err := p.Start(ctx); err != nil {
				return fmt.Errorf("start pipeline: %w", err)
			}

			doneCh := make(chan error, 1)
			go func() { doneCh <- p.Wait() }()

			select {
			case <-sigCh:
				log.Info().Msg("received signal, stopping...")
				cancel()
				return <-doneCh
			case err := <-doneCh:
				if err != nil {
					return fmt.Errorf("stop pipeline: %w", err)
				}
				return nil
			}
		},
	}

	// Flags
	root.Flags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.sumline/config.toml)")
	root.Flags().StringVar(&cfg.ListenAddr, "listen", cfg.ListenAddr, "TCP address for the client connection")
	root.Flags().StringVar(&cfg.ExitKeyword, "exit-keyword", cfg.ExitKeyword, "console word that ends the session")
	root.Flags().StringVar(&cfg.ClientMode, "client-mode", cfg.ClientMode, `client input path: "direct" (answered inline) or "handoff" (through the worker)`)

	root.Flags().DurationVar(&cfg.IdlePoll, "idle-poll", cfg.IdlePoll, "how often to check for a client while none is connected")
	root.Flags().DurationVar(&cfg.WriteTimeout, "write-timeout", cfg.WriteTimeout, "deadline for each reply to the client")
	root.Flags().DurationVar(&cfg.ShutdownTimeout, "shutdown-timeout", cfg.ShutdownTimeout, "how long to wait for goroutines on shutdown")

	root.Flags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	root.Flags().BoolVar(&cfg.WatchConfig, "watch-config", cfg.WatchConfig, "reload the log level when the config file changes")

	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("sumline")
		os.Exit(1)
	}
}
