// Package deadzone provides stick deadzone and hair-trigger transforms.
//
// The deadzone transform zeroes each stick axis whose magnitude falls inside
// the configured radius for that stick. Radii can be retuned at runtime,
// either directly with SetParams or from a watched TOML file.
package deadzone

import (
	"fmt"
	"sync"

	"github.com/bft-labs/padstream"
)

// Params are the live-tunable deadzone radii, one per stick, each in [0, 1].
type Params struct {
	// LeftRadius is the left stick deadzone radius.
	// Default: 0.2
	LeftRadius float64 `toml:"left_radius"`

	// RightRadius is the right stick deadzone radius.
	// Default: 0.2
	RightRadius float64 `toml:"right_radius"`
}

// DefaultParams returns Params with sensible defaults.
func DefaultParams() Params {
	return Params{
		LeftRadius:  0.2,
		RightRadius: 0.2,
	}
}

// Validate checks the radii are usable.
func (p Params) Validate() error {
	if p.LeftRadius < 0 || p.LeftRadius >= 1 {
		return fmt.Errorf("%w: left radius must be in [0, 1), got %v", padstream.ErrInvalidConfig, p.LeftRadius)
	}
	if p.RightRadius < 0 || p.RightRadius >= 1 {
		return fmt.Errorf("%w: right radius must be in [0, 1), got %v", padstream.ErrInvalidConfig, p.RightRadius)
	}
	return nil
}

// Deadzone is a Transform that suppresses small stick deflections.
// Apply and SetParams are safe to call concurrently.
type Deadzone struct {
	mu     sync.RWMutex
	params Params
}

// New creates a deadzone transform. Zero radii are replaced with defaults.
func New(p Params) *Deadzone {
	d := DefaultParams()
	if p.LeftRadius != 0 {
		d.LeftRadius = p.LeftRadius
	}
	if p.RightRadius != 0 {
		d.RightRadius = p.RightRadius
	}
	return &Deadzone{params: d}
}

// Params returns the radii currently in effect.
func (d *Deadzone) Params() Params {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.params
}

// SetParams swaps the radii. Invalid params are rejected and the previous
// values stay in effect.
func (d *Deadzone) SetParams(p Params) error {
	if err := p.Validate(); err != nil {
		return err
	}
	d.mu.Lock()
	d.params = p
	d.mu.Unlock()
	return nil
}

// Apply zeroes stick axes strictly inside their stick's radius. Values at or
// beyond the radius pass through unchanged, as do triggers, buttons and dpad.
func (d *Deadzone) Apply(f padstream.Frame) (padstream.Frame, error) {
	p := d.Params()

	zero := func(v, radius float64) float64 {
		if v < radius && -v < radius {
			return 0
		}
		return v
	}

	f.Axes[padstream.AxisLX] = zero(f.Axes[padstream.AxisLX], p.LeftRadius)
	f.Axes[padstream.AxisLY] = zero(f.Axes[padstream.AxisLY], p.LeftRadius)
	f.Axes[padstream.AxisRX] = zero(f.Axes[padstream.AxisRX], p.RightRadius)
	f.Axes[padstream.AxisRY] = zero(f.Axes[padstream.AxisRY], p.RightRadius)
	return f, nil
}
