package domain

import "errors"

// Domain errors represent error conditions in the padstream domain.
// These errors are returned by the public API and can be checked with errors.Is.
var (
	// ErrAlreadyRunning is returned when Start() is called on a running
	// pipeline, or when sources/transforms are registered after start.
	ErrAlreadyRunning = errors.New("padstream: already running")

	// ErrNotRunning is returned when Stop() is called on a stopped pipeline.
	ErrNotRunning = errors.New("padstream: not running")

	// ErrShutdownTimeout is returned when graceful shutdown times out.
	ErrShutdownTimeout = errors.New("padstream: shutdown timeout")

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("padstream: invalid configuration")

	// ErrValidation is returned when a Frame or its construction violates a
	// data-model invariant.
	ErrValidation = errors.New("padstream: frame validation failed")

	// ErrConnection is returned when the serial link cannot be established.
	// It is fatal to Start().
	ErrConnection = errors.New("padstream: connection failed")

	// ErrWrite is returned when a single tick's send fails. The tick loop
	// records it and continues.
	ErrWrite = errors.New("padstream: write failed")

	// ErrTransform is returned when a Transform fails during a tick. The
	// scheduler applies the configured fallback and continues.
	ErrTransform = errors.New("padstream: transform failed")

	// ErrMalformedResponse is returned when the peripheral sends an
	// undecodable acknowledgement. It never affects frame production.
	ErrMalformedResponse = errors.New("padstream: malformed peripheral response")
)
