package ports

import "github.com/bft-labs/padstream/internal/domain"

// Source produces one frame per tick with no input.
// Implementations read a physical controller, a network command feed, a
// detector, or synthesize frames programmatically.
type Source interface {
	// Generate returns the source's frame for the current tick.
	// An error skips this source's contribution for the tick; the pipeline
	// records it and keeps running.
	Generate() (domain.Frame, error)
}

// Transform maps an input frame to an output frame, invoked in registration
// order after the combiner. A Transform may hold internal state scoped to its
// own instance; that state persists across ticks and is never shared between
// instances.
type Transform interface {
	// Apply returns a new frame derived from the input. The input satisfies
	// the data-model invariants and the output must too.
	// An error aborts the current tick's transform chain; the scheduler's
	// fallback policy decides the published frame.
	Apply(domain.Frame) (domain.Frame, error)
}

// SourceFunc adapts a plain function to the Source interface.
type SourceFunc func() (domain.Frame, error)

// Generate calls f.
func (f SourceFunc) Generate() (domain.Frame, error) { return f() }

// TransformFunc adapts a plain function to the Transform interface.
type TransformFunc func(domain.Frame) (domain.Frame, error)

// Apply calls f.
func (f TransformFunc) Apply(in domain.Frame) (domain.Frame, error) { return f(in) }
