package deadzone

import "github.com/bft-labs/padstream"

// HairTrigger is a Transform that turns the right trigger into a switch:
// anything strictly above the threshold becomes a full pull, everything
// else a full release.
type HairTrigger struct {
	threshold float64
}

// NewHairTrigger creates a hair-trigger transform. A zero threshold uses the
// default of 0.1.
func NewHairTrigger(threshold float64) *HairTrigger {
	if threshold == 0 {
		threshold = 0.1
	}
	return &HairTrigger{threshold: threshold}
}

// Apply snaps the right trigger to +1 or -1.
func (h *HairTrigger) Apply(f padstream.Frame) (padstream.Frame, error) {
	if f.Axes[padstream.AxisRT] > h.threshold {
		f.Axes[padstream.AxisRT] = 1.0
	} else {
		f.Axes[padstream.AxisRT] = -1.0
	}
	return f, nil
}
