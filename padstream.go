// Package padstream drives a simulated game-controller input stream toward a
// hardware peripheral at a fixed real-time cadence.
//
// Each tick, registered sources produce frames which are combined, passed
// through an ordered transform chain, published to a non-blocking observation
// channel, then encoded and sent over the serial link.
//
// Example usage:
//
//	cfg := padstream.DefaultConfig()
//	cfg.PortName = "/dev/ttyUSB0"
//	p, err := padstream.New(cfg, padstream.WithSource(pad))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := p.Start(context.Background()); err != nil {
//	    log.Fatal(err)
//	}
//	defer p.Stop()
package padstream

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bft-labs/padstream/internal/adapters/serialport"
	"github.com/bft-labs/padstream/internal/app"
	"github.com/bft-labs/padstream/internal/domain"
	"github.com/bft-labs/padstream/internal/observe"
	"github.com/bft-labs/padstream/internal/ports"
	"github.com/bft-labs/padstream/internal/wire"
)

// Frame is one immutable sample of controller state.
type Frame = domain.Frame

// Re-exported frame dimensions and index conventions.
const (
	ButtonCount = domain.ButtonCount
	AxisCount   = domain.AxisCount

	ButtonA     = domain.ButtonA
	ButtonB     = domain.ButtonB
	ButtonX     = domain.ButtonX
	ButtonY     = domain.ButtonY
	ButtonLB    = domain.ButtonLB
	ButtonRB    = domain.ButtonRB
	ButtonBack  = domain.ButtonBack
	ButtonStart = domain.ButtonStart
	ButtonLS    = domain.ButtonLS
	ButtonRS    = domain.ButtonRS

	AxisLX = domain.AxisLX
	AxisLY = domain.AxisLY
	AxisRX = domain.AxisRX
	AxisRY = domain.AxisRY
	AxisLT = domain.AxisLT
	AxisRT = domain.AxisRT
)

// DefaultFrame returns the neutral frame.
func DefaultFrame() Frame { return domain.DefaultFrame() }

// NewFrame builds a validated Frame from loosely-shaped inputs.
func NewFrame(buttons []bool, axes []float64, dpad [2]int) (Frame, error) {
	return domain.NewFrame(buttons, axes, dpad)
}

// Source produces a frame per tick. See ports.Source.
type Source = ports.Source

// Transform maps frame to frame in the per-tick chain. See ports.Transform.
type Transform = ports.Transform

// SourceFunc adapts a function to the Source interface.
type SourceFunc = ports.SourceFunc

// TransformFunc adapts a function to the Transform interface.
type TransformFunc = ports.TransformFunc

// Transport is the serial-link boundary. Satisfied by the built-in serial
// and headless transports; inject a custom one with WithTransport.
type Transport = ports.Transport

// Ack is a decoded peripheral acknowledgement.
type Ack = wire.Status

// Peripheral acknowledgement values.
const (
	AckOK        = wire.StatusOK
	AckNak       = wire.StatusNak
	AckMalformed = wire.StatusMalformed
)

// Observer reads published frames at its own pace without ever blocking the
// tick loop.
type Observer = observe.Observer

// Stats is a snapshot of the pipeline's tick accounting.
type Stats = app.Stats

// Fallback selects the frame published when the transform chain fails.
type Fallback = app.Fallback

// Fallback policies. The choice is an explicit configuration option.
const (
	FallbackHoldLast = app.FallbackHoldLast
	FallbackDefault  = app.FallbackDefault
)

// Re-exported domain errors, checkable with errors.Is.
var (
	ErrAlreadyRunning    = domain.ErrAlreadyRunning
	ErrNotRunning        = domain.ErrNotRunning
	ErrShutdownTimeout   = domain.ErrShutdownTimeout
	ErrInvalidConfig     = domain.ErrInvalidConfig
	ErrValidation        = domain.ErrValidation
	ErrConnection        = domain.ErrConnection
	ErrWrite             = domain.ErrWrite
	ErrTransform         = domain.ErrTransform
	ErrMalformedResponse = domain.ErrMalformedResponse
)

// Config holds the configuration for a pipeline.
// Use DefaultConfig() to get a Config with sensible defaults.
type Config struct {
	// PortName is the serial endpoint (e.g. "/dev/ttyUSB0", "COM3").
	// Empty means headless: the pipeline runs without hardware and sends
	// are discarded.
	PortName string

	// BaudRate for the serial link. Default 115200.
	BaudRate int

	// TickRate is the pipeline frequency in Hz. The scheduling period is its
	// reciprocal. Default 200.
	TickRate float64

	// ObserverCapacity is the per-observer frame buffer size of the
	// observation channel. Default 32.
	ObserverCapacity int

	// Fallback is the transform-failure policy. Default FallbackHoldLast.
	Fallback Fallback

	// OverrunThreshold is the fraction of late ticks per window above which
	// a persistent-overrun warning is reported. Zero disables the warning.
	// DefaultConfig uses 0.05.
	OverrunThreshold float64
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		BaudRate:         115200,
		TickRate:         200,
		ObserverCapacity: 32,
		Fallback:         FallbackHoldLast,
		OverrunThreshold: 0.05,
	}
}

// SetDefaults fills zero-valued fields with their defaults.
// OverrunThreshold is left alone: zero is an explicit value there,
// meaning the persistent-overrun warning is disabled.
func (c *Config) SetDefaults() {
	d := DefaultConfig()
	if c.BaudRate == 0 {
		c.BaudRate = d.BaudRate
	}
	if c.TickRate == 0 {
		c.TickRate = d.TickRate
	}
	if c.ObserverCapacity == 0 {
		c.ObserverCapacity = d.ObserverCapacity
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.TickRate <= 0 {
		return fmt.Errorf("%w: tick rate must be positive, got %v", ErrInvalidConfig, c.TickRate)
	}
	if c.BaudRate <= 0 {
		return fmt.Errorf("%w: baud rate must be positive, got %d", ErrInvalidConfig, c.BaudRate)
	}
	if c.ObserverCapacity < 1 {
		return fmt.Errorf("%w: observer capacity must be at least 1, got %d", ErrInvalidConfig, c.ObserverCapacity)
	}
	if c.Fallback != FallbackHoldLast && c.Fallback != FallbackDefault {
		return fmt.Errorf("%w: unknown fallback policy %d", ErrInvalidConfig, c.Fallback)
	}
	if c.OverrunThreshold < 0 || c.OverrunThreshold > 1 {
		return fmt.Errorf("%w: overrun threshold must be in [0, 1], got %v", ErrInvalidConfig, c.OverrunThreshold)
	}
	return nil
}

// Period returns the scheduling period, the reciprocal of the tick rate.
func (c Config) Period() time.Duration {
	return time.Duration(float64(time.Second) / c.TickRate)
}

// State is the public lifecycle state of a pipeline.
type State int

const (
	StateStopped State = iota
	StateStarting
	StateRunning
	StateStopping
	StateCrashed
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	return app.State(s).String()
}

// ListPorts enumerates the serial ports available on the host.
func ListPorts() ([]string, error) {
	return serialport.ListPorts()
}

// Pipeline is a frame pipeline instance that can be embedded in other
// applications. Use New() to create one, then Start() to begin ticking.
type Pipeline struct {
	config    Config
	opts      options
	lifecycle *app.Lifecycle
	transport ports.Transport
	channel   *observe.Channel

	mu         sync.RWMutex
	sources    []ports.Source
	transforms []ports.Transform
	scheduler  *app.Scheduler
	cancel     context.CancelFunc
}

// New creates a pipeline with the given configuration.
// The pipeline is created stopped; call Start() to begin ticking.
// Returns an error if configuration is invalid.
func New(cfg Config, opts ...Option) (*Pipeline, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	emitter := &eventEmitterWrapper{handler: o.eventHandler}
	lifecycle := app.NewLifecycle(o.logger, emitter)

	transport := o.transport
	if transport == nil {
		if cfg.PortName == "" {
			transport = serialport.NewNoop()
		} else {
			transport = serialport.New(cfg.PortName, cfg.BaudRate, o.logger)
		}
	}

	return &Pipeline{
		config:     cfg,
		opts:       o,
		lifecycle:  lifecycle,
		transport:  transport,
		channel:    observe.NewChannel(cfg.ObserverCapacity),
		sources:    o.sources,
		transforms: o.transforms,
	}, nil
}

// AddSource registers a source. Sources run in registration order each tick.
// Returns ErrAlreadyRunning once the pipeline has started.
func (p *Pipeline) AddSource(s Source) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.lifecycle.CanStart() {
		return ErrAlreadyRunning
	}
	p.sources = append(p.sources, s)
	return nil
}

// AddTransform registers a transform at the end of the chain.
// Returns ErrAlreadyRunning once the pipeline has started.
func (p *Pipeline) AddTransform(t Transform) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.lifecycle.CanStart() {
		return ErrAlreadyRunning
	}
	p.transforms = append(p.transforms, t)
	return nil
}

// Start opens the transport and begins ticking in the background.
// A connection failure is fatal and returned synchronously; every other
// per-tick failure is recorded and the loop keeps producing at cadence.
// The provided context bounds the lifetime of the run.
func (p *Pipeline) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.lifecycle.CanStart() {
		return ErrAlreadyRunning
	}

	if err := p.lifecycle.TransitionTo(app.StateStarting, "Start() called"); err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.lifecycle.SetCancel(cancel)

	if err := p.transport.Connect(runCtx); err != nil {
		cancel()
		_ = p.lifecycle.TransitionTo(app.StateCrashed, "transport connect failed")
		return err
	}

	p.scheduler = app.NewScheduler(
		app.SchedulerConfig{
			Period:           p.config.Period(),
			Fallback:         p.config.Fallback,
			OverrunThreshold: p.config.OverrunThreshold,
		},
		p.sources,
		p.transforms,
		p.transport,
		p.channel,
		p.opts.logger,
		&eventEmitterWrapper{handler: p.opts.eventHandler},
	)

	p.lifecycle.AddWorker()
	go func(s *app.Scheduler) {
		defer p.lifecycle.WorkerDone()

		if err := p.lifecycle.TransitionTo(app.StateRunning, "tick loop starting"); err != nil {
			// Stop() moved the pipeline to Stopping before the loop came
			// up. Run still owns the connected transport: it observes the
			// cancelled context at the first tick boundary and closes the
			// transport on the way out, which Stop() is waiting on.
			_ = s.Run(runCtx)
			return
		}

		// Run closes the transport on every exit path.
		err := s.Run(runCtx)
		if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
			p.opts.logger.Error().Err(err).Msg("tick loop error")
			_ = p.lifecycle.TransitionTo(app.StateCrashed, err.Error())
			return
		}

		// The run also ends when the caller's context is cancelled without
		// Stop(). Record that the loop has exited; during a normal Stop()
		// the state is already Stopping and this completes the shutdown.
		_ = p.lifecycle.TransitionTo(app.StateStopped, "run ended")
	}(p.scheduler)

	return nil
}

// Stop gracefully shuts down the pipeline. It signals the loop to end after
// any in-flight tick and returns only once the loop has quiesced and the
// transport is closed. Returns ErrShutdownTimeout if the loop does not exit
// in time. The pipeline can be started again afterwards.
func (p *Pipeline) Stop() error {
	p.mu.Lock()

	if !p.lifecycle.CanStop() {
		p.mu.Unlock()
		return ErrNotRunning
	}

	if err := p.lifecycle.TransitionTo(app.StateStopping, "Stop() called"); err != nil {
		p.mu.Unlock()
		return err
	}

	if p.cancel != nil {
		p.cancel()
	}
	p.mu.Unlock()

	err := p.lifecycle.WaitWithTimeout(app.ShutdownTimeout)
	if err != nil {
		_ = p.lifecycle.TransitionTo(app.StateCrashed, "shutdown timeout")
	} else {
		_ = p.lifecycle.TransitionTo(app.StateStopped, "graceful shutdown")
	}
	return err
}

// Status returns the current lifecycle state.
// Safe to call concurrently from any goroutine.
func (p *Pipeline) Status() State {
	return State(p.lifecycle.State())
}

// Stats returns a snapshot of the tick accounting for the current (or most
// recent) run. Safe to call concurrently from any goroutine.
func (p *Pipeline) Stats() Stats {
	p.mu.RLock()
	s := p.scheduler
	p.mu.RUnlock()

	if s == nil {
		return Stats{}
	}
	return s.Stats()
}

// Observe attaches an observer to the observation channel under the given
// id. Observers can attach and detach at any time, including while the
// pipeline is running, and start with an empty buffer.
func (p *Pipeline) Observe(id string) (*Observer, error) {
	return p.channel.Attach(id)
}

// Unobserve detaches a previously attached observer.
func (p *Pipeline) Unobserve(id string) error {
	return p.channel.Detach(id)
}
