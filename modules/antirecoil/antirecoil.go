// Package antirecoil provides a transform that counters weapon recoil by
// nudging the right stick downward in proportion to the right trigger pull.
package antirecoil

import "github.com/bft-labs/padstream"

// Config holds configuration options for the anti-recoil transform.
type Config struct {
	// Strength is the vertical compensation applied at full trigger pull.
	// Default: 0.3
	Strength float64

	// TriggerThreshold is the minimum trigger pull before compensation
	// kicks in.
	// Default: 0.1
	TriggerThreshold float64
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Strength:         0.3,
		TriggerThreshold: 0.1,
	}
}

// Transform applies trigger-proportional recoil compensation.
type Transform struct {
	strength  float64
	threshold float64
}

// New creates an anti-recoil transform with the given configuration.
func New(cfg Config) *Transform {
	if cfg.Strength == 0 {
		cfg.Strength = 0.3
	}
	if cfg.TriggerThreshold == 0 {
		cfg.TriggerThreshold = 0.1
	}
	return &Transform{
		strength:  cfg.Strength,
		threshold: cfg.TriggerThreshold,
	}
}

// Apply adds strength-scaled compensation to the right stick's vertical axis
// while the trigger is at or past the threshold. The stick's own movement is
// preserved; the result is clamped to the valid axis range.
func (t *Transform) Apply(f padstream.Frame) (padstream.Frame, error) {
	rt := f.Axes[padstream.AxisRT]
	if rt < t.threshold {
		return f, nil
	}

	force := t.strength * rt
	return f.WithAxis(padstream.AxisRY, f.Axes[padstream.AxisRY]+force), nil
}
