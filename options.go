package padstream

import (
	"github.com/rs/zerolog"

	"github.com/bft-labs/padstream/internal/ports"
)

// Option configures optional behavior of a Pipeline.
type Option func(*options)

// options holds the optional configuration for a Pipeline instance.
type options struct {
	logger       zerolog.Logger
	eventHandler EventHandler
	transport    ports.Transport
	sources      []ports.Source
	transforms   []ports.Transform
}

// defaultOptions returns options with sensible defaults.
func defaultOptions() options {
	return options{
		logger: zerolog.Nop(),
	}
}

// WithLogger sets the logger used by the pipeline.
// If not provided, logging is disabled.
func WithLogger(log zerolog.Logger) Option {
	return func(o *options) {
		o.logger = log
	}
}

// WithEventHandler sets a handler for pipeline events.
// Events are called synchronously from the tick goroutine, so handlers must
// be fast. If not provided, no events are emitted.
func WithEventHandler(handler EventHandler) Option {
	return func(o *options) {
		o.eventHandler = handler
	}
}

// WithTransport injects a custom transport, overriding the serial or
// headless transport selected by Config.PortName. Used for tests and for
// non-serial peripherals.
func WithTransport(t Transport) Option {
	return func(o *options) {
		o.transport = t
	}
}

// WithSource registers a source at construction time, in option order.
// Equivalent to calling AddSource before Start.
func WithSource(s Source) Option {
	return func(o *options) {
		o.sources = append(o.sources, s)
	}
}

// WithTransform registers a transform at construction time, in option order.
// Equivalent to calling AddTransform before Start.
func WithTransform(t Transform) Option {
	return func(o *options) {
		o.transforms = append(o.transforms, t)
	}
}
