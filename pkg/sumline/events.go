package sumline

import "github.com/bft-labs/sumline/internal/app"

// State is the lifecycle state of a Pipeline.
type State int

const (
	StateStopped State = iota
	StateStarting
	StateListening
	StateRunning
	StateShuttingDown
	StateCrashed
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	return app.State(s).String()
}

// StateChangeEvent describes one lifecycle transition.
type StateChangeEvent struct {
	Previous State
	Current  State
	Reason   string
}

// EventHandler receives pipeline events.
// Events are called synchronously from the goroutine causing the transition;
// implementations should return quickly.
type EventHandler interface {
	OnStateChange(event StateChangeEvent)
}

// BaseEventHandler provides no-op implementations for embedding.
type BaseEventHandler struct{}

// OnStateChange does nothing.
func (BaseEventHandler) OnStateChange(StateChangeEvent) {}

// eventEmitterWrapper adapts EventHandler to app.EventEmitter.
type eventEmitterWrapper struct {
	handler EventHandler
}

func (e *eventEmitterWrapper) OnStateChange(previous, current app.State, reason string) {
	if e.handler == nil {
		return
	}
	e.handler.OnStateChange(StateChangeEvent{
		Previous: convertState(previous),
		Current:  convertState(current),
		Reason:   reason,
	})
}

func convertState(s app.State) State {
	switch s {
	case app.StateStopped:
		return StateStopped
	case app.StateStarting:
		return StateStarting
	case app.StateListening:
		return StateListening
	case app.StateRunning:
		return StateRunning
	case app.StateShuttingDown:
		return StateShuttingDown
	case app.StateCrashed:
		return StateCrashed
	default:
		return StateStopped
	}
}
