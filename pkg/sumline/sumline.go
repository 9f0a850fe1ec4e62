package sumline

import (
	"context"
	"net"
	"sync"

	"github.com/bft-labs/sumline/internal/adapters/tcp"
	"github.com/bft-labs/sumline/internal/app"
	"github.com/bft-labs/sumline/internal/domain"
	"github.com/bft-labs/sumline/internal/ports"
)

// Pipeline wires the console reader, client reader, connection manager and
// worker around one handoff and one client slot.
// Use New() to create an instance, then Start() and Wait().
type Pipeline struct {
	config    Config
	mode      app.ClientMode
	opts      options
	lifecycle *app.Lifecycle
	logger    ports.Logger

	mu  sync.Mutex
	run *run
}

// run holds the state of one Start..shutdown cycle.
type run struct {
	handoff    *app.Handoff
	slot       *tcp.Slot
	manager    *tcp.Manager
	worker     *app.Worker
	workerDone chan struct{}

	shutdownOnce sync.Once
	shutdownErr  error
}

// New creates a Pipeline with the given configuration.
// The instance is created in StateStopped; call Start() to begin serving.
func New(cfg Config, opts ...Option) (*Pipeline, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	mode, err := app.ParseClientMode(cfg.ClientMode)
	if err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	emitter := &eventEmitterWrapper{handler: o.eventHandler}

	return &Pipeline{
		config:    cfg,
		mode:      mode,
		opts:      o,
		lifecycle: app.NewLifecycle(o.logger, emitter),
		logger:    o.logger,
	}, nil
}

// Start binds the listener and launches the pipeline goroutines.
// A bind or listen failure is returned and leaves the pipeline Crashed.
// The provided context bounds the pipeline: cancelling it ends the session
// as if the exit keyword had been typed.
func (p *Pipeline) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.lifecycle.CanStart() {
		return domain.ErrAlreadyRunning
	}
	if err := p.lifecycle.TransitionTo(app.StateStarting, "Start() called"); err != nil {
		return err
	}

	ln := p.opts.listener
	p.opts.listener = nil
	if ln == nil {
		var err error
		ln, err = tcp.Listen(p.config.ListenAddr)
		if err != nil {
			_ = p.lifecycle.TransitionTo(app.StateCrashed, "listen failed")
			return err
		}
	}

	_ = p.lifecycle.TransitionTo(app.StateListening, "listening on "+ln.Addr().String())

	runCtx, cancel := context.WithCancel(ctx)
	p.lifecycle.SetCancel(cancel)

	pluginCfg := PluginConfig{
		ListenAddr: ln.Addr().String(),
		Logger:     p.logger,
	}
	for i, pl := range p.opts.plugins {
		if err := pl.Initialize(runCtx, pluginCfg); err != nil {
			p.logger.Error("plugin initialization failed",
				ports.String("plugin", pl.Name()),
				ports.Err(err))
			cancel()
			_ = ln.Close()
			p.shutdownPlugins(p.opts.plugins[:i])
			_ = p.lifecycle.TransitionTo(app.StateCrashed, "plugin init failed: "+pl.Name())
			return err
		}
		p.logger.Info("plugin initialized", ports.String("plugin", pl.Name()))
	}

	r := &run{
		handoff:    app.NewHandoff(),
		slot:       tcp.NewSlot(),
		workerDone: make(chan struct{}),
	}
	r.manager = tcp.NewManager(ln, r.slot, tcp.ManagerConfig{WriteTimeout: p.config.WriteTimeout}, p.logger)
	r.worker = app.NewWorker(r.handoff, r.slot, p.opts.consoleOut, p.logger)
	p.run = r

	reader := app.NewClientReader(r.slot, r.handoff, p.mode, p.config.IdlePoll, p.logger)

	p.lifecycle.Go(func() { r.manager.Run(runCtx) })
	p.lifecycle.Go(func() { reader.Run(runCtx) })
	p.lifecycle.Go(func() {
		defer close(r.workerDone)
		r.worker.Run()
	})
	p.lifecycle.Go(func() {
		<-runCtx.Done()
		r.handoff.SignalTermination()
	})

	if p.opts.consoleIn != nil {
		console := app.NewConsoleReader(p.opts.consoleIn, p.opts.consoleOut, p.opts.prompt,
			p.config.ExitKeyword, r.handoff, p.logger)
		// not tracked: a blocking console read cannot be interrupted
		go console.Run()
	}

	return p.lifecycle.TransitionTo(app.StateRunning, "pipeline started")
}

// Wait blocks until the session ends (exit keyword, end of console input,
// Stop, or context cancellation) and then shuts the pipeline down.
func (p *Pipeline) Wait() error {
	r := p.current()
	if r == nil {
		return domain.ErrNotRunning
	}
	<-r.workerDone
	return p.shutdown(r, "session ended")
}

// Stop ends the session from outside the console and shuts down.
// Waits up to Config.ShutdownTimeout for goroutines to finish.
func (p *Pipeline) Stop() error {
	r := p.current()
	if r == nil || !p.lifecycle.CanStop() {
		return domain.ErrNotRunning
	}
	r.handoff.SignalTermination()
	<-r.workerDone
	return p.shutdown(r, "Stop() called")
}

func (p *Pipeline) shutdown(r *run, reason string) error {
	r.shutdownOnce.Do(func() {
		_ = p.lifecycle.TransitionTo(app.StateShuttingDown, reason)

		p.lifecycle.Cancel()
		if err := r.manager.Close(); err != nil {
			p.logger.Debug("close listener", ports.Err(err))
		}
		_ = r.slot.Close()

		r.shutdownErr = p.lifecycle.WaitWithTimeout(p.config.ShutdownTimeout)
		p.shutdownPlugins(p.opts.plugins)

		if r.shutdownErr != nil {
			_ = p.lifecycle.TransitionTo(app.StateCrashed, "shutdown timeout")
			return
		}
		p.logger.Info("pipeline stopped",
			ports.Uint64("processed", r.worker.Processed()),
			ports.Uint64("overwritten", r.handoff.Overwrites()),
			ports.Uint64("accepted", r.manager.Accepted()),
		)
		_ = p.lifecycle.TransitionTo(app.StateStopped, "graceful shutdown")
	})
	return r.shutdownErr
}

// shutdownPlugins stops plugins in reverse order.
func (p *Pipeline) shutdownPlugins(plugins []Plugin) {
	ctx := context.Background()
	for i := len(plugins) - 1; i >= 0; i-- {
		pl := plugins[i]
		if err := pl.Shutdown(ctx); err != nil {
			p.logger.Error("plugin shutdown failed",
				ports.String("plugin", pl.Name()),
				ports.Err(err))
			continue
		}
		p.logger.Info("plugin shutdown complete", ports.String("plugin", pl.Name()))
	}
}

func (p *Pipeline) current() *run {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.run
}

// Status returns the current lifecycle state.
// Safe to call concurrently from any goroutine.
func (p *Pipeline) Status() State {
	return convertState(p.lifecycle.State())
}

// Addr returns the listening address, or nil before Start.
func (p *Pipeline) Addr() net.Addr {
	r := p.current()
	if r == nil {
		return nil
	}
	return r.manager.Addr()
}
