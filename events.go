package padstream

import (
	"time"

	"github.com/bft-labs/padstream/internal/app"
)

// EventHandler receives pipeline events. All methods are called synchronously
// from the pipeline's goroutines; implementations must return quickly and
// must not call back into the Pipeline.
type EventHandler interface {
	// OnStateChange is called on every lifecycle transition.
	OnStateChange(e StateChangeEvent)

	// OnTickOverrun is called when a tick's work exceeds the period.
	OnTickOverrun(e TickOverrunEvent)

	// OnTransformFailure is called when the transform chain aborts and a
	// fallback frame is published.
	OnTransformFailure(e TransformFailureEvent)

	// OnWriteError is called when a tick's send fails.
	OnWriteError(e WriteErrorEvent)
}

// StateChangeEvent describes a lifecycle transition.
type StateChangeEvent struct {
	Previous State
	Current  State
	Reason   string
}

// TickOverrunEvent describes a tick that ran past its period.
type TickOverrunEvent struct {
	// Tick is the tick counter at the time of the overrun.
	Tick uint64

	// Overrun is how far past the period the tick ran.
	Overrun time.Duration
}

// TransformFailureEvent describes an aborted transform chain.
type TransformFailureEvent struct {
	Err error
}

// WriteErrorEvent describes a failed transport send.
type WriteErrorEvent struct {
	Err error
}

// eventEmitterWrapper adapts EventHandler to the internal emitter interfaces.
// A nil handler silently drops all events.
type eventEmitterWrapper struct {
	handler EventHandler
}

func (e *eventEmitterWrapper) OnStateChange(previous, current app.State, reason string) {
	if e.handler == nil {
		return
	}
	e.handler.OnStateChange(StateChangeEvent{
		Previous: State(previous),
		Current:  State(current),
		Reason:   reason,
	})
}

func (e *eventEmitterWrapper) OnTickOverrun(tick uint64, overrun time.Duration) {
	if e.handler == nil {
		return
	}
	e.handler.OnTickOverrun(TickOverrunEvent{Tick: tick, Overrun: overrun})
}

func (e *eventEmitterWrapper) OnTransformFailure(err error) {
	if e.handler == nil {
		return
	}
	e.handler.OnTransformFailure(TransformFailureEvent{Err: err})
}

func (e *eventEmitterWrapper) OnWriteError(err error) {
	if e.handler == nil {
		return
	}
	e.handler.OnWriteError(WriteErrorEvent{Err: err})
}
