// Package synth provides a synthetic frame source for demos and soak tests.
// It sweeps the sticks through a slow circle and pulses the face buttons so
// a pipeline can be exercised end to end without controller hardware.
package synth

import (
	"math"
	"sync/atomic"
	"time"

	"github.com/bft-labs/padstream"
)

// Config holds configuration options for the synthetic source.
type Config struct {
	// Frequency is the stick sweep rate in Hz.
	// Default: 0.25
	Frequency float64

	// Amplitude is the stick deflection in [0, 1].
	// Default: 0.8
	Amplitude float64

	// PressPeriod is how often the button pulse advances to the next
	// face button.
	// Default: 1 second
	PressPeriod time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Frequency:   0.25,
		Amplitude:   0.8,
		PressPeriod: time.Second,
	}
}

// Source generates deterministic synthetic frames from wall-clock time.
// It is safe for concurrent use.
type Source struct {
	frequency   float64
	amplitude   float64
	pressPeriod time.Duration
	start       time.Time

	generated atomic.Uint64
}

// New creates a synthetic source with the given configuration.
func New(cfg Config) *Source {
	if cfg.Frequency <= 0 {
		cfg.Frequency = 0.25
	}
	if cfg.Amplitude <= 0 || cfg.Amplitude > 1 {
		cfg.Amplitude = 0.8
	}
	if cfg.PressPeriod <= 0 {
		cfg.PressPeriod = time.Second
	}

	return &Source{
		frequency:   cfg.Frequency,
		amplitude:   cfg.Amplitude,
		pressPeriod: cfg.PressPeriod,
		start:       time.Now(),
	}
}

// Generate returns the frame for the current instant. The left stick traces
// a circle, the right stick the mirrored circle, and one of the four face
// buttons is held, rotating every PressPeriod.
func (s *Source) Generate() (padstream.Frame, error) {
	s.generated.Add(1)

	elapsed := time.Since(s.start)
	phase := 2 * math.Pi * s.frequency * elapsed.Seconds()

	f := padstream.DefaultFrame()
	f.Axes[padstream.AxisLX] = s.amplitude * math.Cos(phase)
	f.Axes[padstream.AxisLY] = s.amplitude * math.Sin(phase)
	f.Axes[padstream.AxisRX] = -s.amplitude * math.Cos(phase)
	f.Axes[padstream.AxisRY] = -s.amplitude * math.Sin(phase)

	face := [...]int{padstream.ButtonA, padstream.ButtonB, padstream.ButtonX, padstream.ButtonY}
	step := int(elapsed/s.pressPeriod) % len(face)
	f.Buttons[face[step]] = true

	return f, nil
}

// Generated returns the number of frames produced so far.
func (s *Source) Generated() uint64 {
	return s.generated.Load()
}
