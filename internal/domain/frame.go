package domain

import "fmt"

// Frame dimensions. These are fixed by the wire protocol and never change
// at runtime.
const (
	ButtonCount = 10
	AxisCount   = 6
)

// Button indices into Frame.Buttons. The identities are a convention shared
// with the peripheral firmware; the Frame type itself only cares about the
// count.
const (
	ButtonA = iota
	ButtonB
	ButtonX
	ButtonY
	ButtonLB
	ButtonRB
	ButtonBack
	ButtonStart
	ButtonLS
	ButtonRS
)

// Axis indices into Frame.Axes. Triggers are conventionally non-negative but
// only the [-1, 1] range is enforced.
const (
	AxisLX = iota
	AxisLY
	AxisRX
	AxisRY
	AxisLT
	AxisRT
)

// Frame represents one sample of controller state.
// It is a value type: pipeline stages pass copies and construct new frames
// rather than mutating in place.
type Frame struct {
	// Buttons holds the pressed state of each button, index-addressed.
	Buttons [ButtonCount]bool

	// Axes holds the analog axis values, each in [-1, 1].
	// Index order is LX, LY, RX, RY, LT, RT.
	Axes [AxisCount]float64

	// DPad holds the x and y hat direction, each in {-1, 0, 1}.
	DPad [2]int8
}

// DefaultFrame returns the neutral frame: no buttons pressed, all axes
// centred, dpad released.
func DefaultFrame() Frame {
	return Frame{}
}

// NewFrame builds a Frame from loosely-shaped inputs, validating every
// invariant. Wrong slice lengths or out-of-range values return an error
// wrapping ErrValidation; nothing is truncated, padded, or coerced.
func NewFrame(buttons []bool, axes []float64, dpad [2]int) (Frame, error) {
	var f Frame

	if len(buttons) != ButtonCount {
		return Frame{}, fmt.Errorf("%w: got %d buttons, want %d", ErrValidation, len(buttons), ButtonCount)
	}
	if len(axes) != AxisCount {
		return Frame{}, fmt.Errorf("%w: got %d axes, want %d", ErrValidation, len(axes), AxisCount)
	}

	copy(f.Buttons[:], buttons)

	for i, v := range axes {
		if v < -1 || v > 1 {
			return Frame{}, fmt.Errorf("%w: axis %d value %v outside [-1, 1]", ErrValidation, i, v)
		}
		f.Axes[i] = v
	}

	for i, v := range dpad {
		if v < -1 || v > 1 {
			return Frame{}, fmt.Errorf("%w: dpad component %d value %d outside {-1, 0, 1}", ErrValidation, i, v)
		}
		f.DPad[i] = int8(v)
	}

	return f, nil
}

// Validate re-checks the range invariants. Array lengths are structural, so
// only axis and dpad ranges can be violated (by a Source or Transform writing
// fields directly).
func (f Frame) Validate() error {
	for i, v := range f.Axes {
		if v < -1 || v > 1 {
			return fmt.Errorf("%w: axis %d value %v outside [-1, 1]", ErrValidation, i, v)
		}
	}
	for i, v := range f.DPad {
		if v < -1 || v > 1 {
			return fmt.Errorf("%w: dpad component %d value %d outside {-1, 0, 1}", ErrValidation, i, v)
		}
	}
	return nil
}

// WithButton returns a copy of the frame with one button changed.
func (f Frame) WithButton(i int, pressed bool) Frame {
	f.Buttons[i] = pressed
	return f
}

// WithAxis returns a copy of the frame with one axis changed, clamped
// to [-1, 1].
func (f Frame) WithAxis(i int, v float64) Frame {
	f.Axes[i] = Clamp(v)
	return f
}

// WithDPad returns a copy of the frame with the dpad changed. Each component
// is clamped to {-1, 0, 1}.
func (f Frame) WithDPad(x, y int) Frame {
	f.DPad[0] = clampDir(x)
	f.DPad[1] = clampDir(y)
	return f
}

// Clamp limits v to the valid axis range [-1, 1].
func Clamp(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}

func clampDir(v int) int8 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return int8(v)
}
