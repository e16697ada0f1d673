package domain

// Combine merges the frames produced by all registered sources in one tick
// into a single frame.
//
// The merge rule is deterministic: buttons are OR-ed, axes are summed then
// clamped to [-1, 1], and each dpad component independently takes the first
// non-zero value in source registration order. Zero frames yield the neutral
// frame.
func Combine(frames []Frame) Frame {
	out := DefaultFrame()

	for _, f := range frames {
		for i, pressed := range f.Buttons {
			if pressed {
				out.Buttons[i] = true
			}
		}
		for i, v := range f.Axes {
			out.Axes[i] += v
		}
		for i, v := range f.DPad {
			if out.DPad[i] == 0 {
				out.DPad[i] = v
			}
		}
	}

	for i, v := range out.Axes {
		out.Axes[i] = Clamp(v)
	}

	return out
}
