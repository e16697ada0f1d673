package antirecoil

import (
	"math"
	"testing"

	"github.com/bft-labs/padstream"
)

func frameWithStickAndTrigger(rx, ry, rt float64) padstream.Frame {
	f := padstream.DefaultFrame()
	f.Axes[padstream.AxisRX] = rx
	f.Axes[padstream.AxisRY] = ry
	f.Axes[padstream.AxisRT] = rt
	return f
}

func TestNew_AppliesDefaults(t *testing.T) {
	tr := New(Config{})
	if tr.strength != 0.3 {
		t.Errorf("strength = %v, want 0.3", tr.strength)
	}
	if tr.threshold != 0.1 {
		t.Errorf("threshold = %v, want 0.1", tr.threshold)
	}
}

func TestApply_ThresholdBoundary(t *testing.T) {
	tr := New(DefaultConfig())

	// Just below threshold: untouched.
	out, err := tr.Apply(frameWithStickAndTrigger(0, 0, 0.099))
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if out.Axes[padstream.AxisRY] != 0 {
		t.Errorf("RY = %v below threshold, want 0", out.Axes[padstream.AxisRY])
	}

	// At threshold: compensation applies.
	out, err = tr.Apply(frameWithStickAndTrigger(0, 0, 0.1))
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if out.Axes[padstream.AxisRY] <= 0 {
		t.Errorf("RY = %v at threshold, want > 0", out.Axes[padstream.AxisRY])
	}
}

func TestApply_ScalesWithTrigger(t *testing.T) {
	tr := New(DefaultConfig())

	for _, pull := range []float64{0.25, 0.5, 0.75, 1.0} {
		out, err := tr.Apply(frameWithStickAndTrigger(0, 0, pull))
		if err != nil {
			t.Fatalf("Apply() error = %v", err)
		}
		want := 0.3 * pull
		if math.Abs(out.Axes[padstream.AxisRY]-want) > 1e-9 {
			t.Errorf("Apply(rt=%v) RY = %v, want %v", pull, out.Axes[padstream.AxisRY], want)
		}
	}
}

func TestApply_PreservesAim(t *testing.T) {
	tr := New(DefaultConfig())

	tests := []struct {
		name   string
		rx, ry float64
	}{
		{"aiming right", 0.5, 0},
		{"aiming left", -0.5, 0},
		{"aiming up", 0, 0.5},
		{"aiming down", 0, -0.5},
		{"aiming diagonal", 0.5, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := tr.Apply(frameWithStickAndTrigger(tt.rx, tt.ry, 1.0))
			if err != nil {
				t.Fatalf("Apply() error = %v", err)
			}
			if out.Axes[padstream.AxisRX] != tt.rx {
				t.Errorf("RX = %v, want %v", out.Axes[padstream.AxisRX], tt.rx)
			}
			if out.Axes[padstream.AxisRY] <= tt.ry {
				t.Errorf("RY = %v, want > %v", out.Axes[padstream.AxisRY], tt.ry)
			}
		})
	}
}

func TestApply_ClampsAtFullDeflection(t *testing.T) {
	tr := New(DefaultConfig())

	out, err := tr.Apply(frameWithStickAndTrigger(0, 1.0, 1.0))
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if out.Axes[padstream.AxisRY] != 1.0 {
		t.Errorf("RY = %v, want clamped to 1.0", out.Axes[padstream.AxisRY])
	}
	if err := out.Validate(); err != nil {
		t.Errorf("output frame invalid: %v", err)
	}
}

func TestApply_PreservesButtonsAndDpad(t *testing.T) {
	tr := New(DefaultConfig())

	in := frameWithStickAndTrigger(0, 0, 1.0)
	in.Buttons[padstream.ButtonA] = true
	in.Buttons[padstream.ButtonRS] = true
	in.DPad = [2]int8{1, -1}

	out, err := tr.Apply(in)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if out.Buttons != in.Buttons {
		t.Errorf("buttons = %v, want %v", out.Buttons, in.Buttons)
	}
	if out.DPad != in.DPad {
		t.Errorf("dpad = %v, want %v", out.DPad, in.DPad)
	}
}
