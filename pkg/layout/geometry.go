package layout

// Frame is an axis-aligned rectangle in container-local coordinates.
// X grows to the right and Y grows downward.
type Frame struct {
	X, Y          float64
	Width, Height float64
}

// Right returns the x-coordinate of the right edge.
func (f Frame) Right() float64 { return f.X + f.Width }

// Bottom returns the y-coordinate of the bottom edge.
func (f Frame) Bottom() float64 { return f.Y + f.Height }

// IsEmpty reports whether the frame has no area.
func (f Frame) IsEmpty() bool { return f.Width <= 0 || f.Height <= 0 }

// Intersects reports whether f and other overlap.
// Touching edges do not count; a zero-area frame intersects a rect
// when it lies inside it, so degenerate items stay queryable.
func (f Frame) Intersects(other Frame) bool {
	if f.X > other.Right() || other.X > f.Right() {
		return false
	}
	if f.Y > other.Bottom() || other.Y > f.Bottom() {
		return false
	}
	if f.IsEmpty() || other.IsEmpty() {
		return true
	}
	return f.X < other.Right() && other.X < f.Right() &&
		f.Y < other.Bottom() && other.Y < f.Bottom()
}

// Mirror reflects the frame horizontally inside a container of the given
// width. Y, Width and Height are unchanged.
func (f Frame) Mirror(containerWidth float64) Frame {
	f.X = containerWidth - f.X - f.Width
	return f
}

// Insets are the four edge paddings of a section.
type Insets struct {
	Top, Left, Bottom, Right float64
}

// InsetAll returns Insets with the same value on all sides.
func InsetAll(v float64) Insets {
	return Insets{Top: v, Left: v, Bottom: v, Right: v}
}

// Horizontal returns Left + Right.
func (in Insets) Horizontal() float64 { return in.Left + in.Right }

// Vertical returns Top + Bottom.
func (in Insets) Vertical() float64 { return in.Top + in.Bottom }

// Size is a width/height pair.
type Size struct {
	Width, Height float64
}

// clamped returns s with negative components raised to zero, and whether
// any clamping happened.
func (s Size) clamped() (Size, bool) {
	changed := false
	if s.Width < 0 || s.Width != s.Width {
		s.Width = 0
		changed = true
	}
	if s.Height < 0 || s.Height != s.Height {
		s.Height = 0
		changed = true
	}
	return s, changed
}

func nonNegative(v float64) float64 {
	if v < 0 || v != v {
		return 0
	}
	return v
}
