package domain

import "testing"

func frameInvariantsHold(t *testing.T, f Frame) {
	t.Helper()
	if err := f.Validate(); err != nil {
		t.Errorf("combined frame violates invariants: %v", err)
	}
}

func TestCombine_ZeroSources(t *testing.T) {
	got := Combine(nil)
	if got != DefaultFrame() {
		t.Errorf("Combine(nil) = %+v, want default frame", got)
	}
	frameInvariantsHold(t, got)
}

func TestCombine_SingleSource(t *testing.T) {
	f := DefaultFrame().WithButton(ButtonX, true).WithAxis(AxisRY, -0.4).WithDPad(0, 1)
	got := Combine([]Frame{f})
	if got != f {
		t.Errorf("Combine single = %+v, want %+v", got, f)
	}
	frameInvariantsHold(t, got)
}

func TestCombine_ButtonsOr(t *testing.T) {
	a := DefaultFrame().WithButton(ButtonA, true)
	b := DefaultFrame().WithButton(ButtonB, true)
	got := Combine([]Frame{a, b})

	if !got.Buttons[ButtonA] || !got.Buttons[ButtonB] {
		t.Errorf("buttons = %v, want A and B pressed", got.Buttons)
	}
	if got.Buttons[ButtonX] {
		t.Errorf("button X pressed, want released")
	}
}

func TestCombine_AxesSumClamped(t *testing.T) {
	a := DefaultFrame().WithAxis(AxisLX, 0.9)
	b := DefaultFrame().WithAxis(AxisLX, 0.9)
	got := Combine([]Frame{a, b})

	if got.Axes[AxisLX] != 1.0 {
		t.Errorf("axes[LX] = %v, want 1.0 (0.9+0.9 clamped)", got.Axes[AxisLX])
	}

	c := DefaultFrame().WithAxis(AxisLY, -0.3)
	d := DefaultFrame().WithAxis(AxisLY, 0.1)
	got = Combine([]Frame{c, d})
	if diff := got.Axes[AxisLY] - (-0.2); diff > 1e-9 || diff < -1e-9 {
		t.Errorf("axes[LY] = %v, want -0.2", got.Axes[AxisLY])
	}
}

func TestCombine_DPadFirstNonZeroPerAxis(t *testing.T) {
	a := DefaultFrame().WithDPad(0, -1)
	b := DefaultFrame().WithDPad(1, 1)
	got := Combine([]Frame{a, b})

	// x comes from b (first non-zero), y comes from a.
	if got.DPad != [2]int8{1, -1} {
		t.Errorf("dpad = %v, want [1 -1]", got.DPad)
	}
}

func TestCombine_ManySourcesInvariants(t *testing.T) {
	frames := make([]Frame, 8)
	for i := range frames {
		frames[i] = DefaultFrame().
			WithButton(i%ButtonCount, true).
			WithAxis(i%AxisCount, 0.7).
			WithDPad(i%3-1, (i+1)%3-1)
	}

	got := Combine(frames)
	frameInvariantsHold(t, got)

	for i, v := range got.Axes {
		if v < -1 || v > 1 {
			t.Errorf("axes[%d] = %v outside [-1, 1]", i, v)
		}
	}
}
