package geometry

// clamp constrains v to [lo, hi]. When lo > hi the result is hi.
func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

// ClampSize constrains s to b on both axes.
func ClampSize(s Size, b Bounds) Size {
	return Size{
		Width:  clamp(s.Width, b.Min.Width, b.Max.Width),
		Height: clamp(s.Height, b.Min.Height, b.Max.Height),
	}
}

// ClampPosition raises each axis of p to at least floor. There is no upper
// bound: a window may be moved partly past the right or bottom of the
// viewport.
func ClampPosition(p, floor Point) Point {
	return Point{X: max(p.X, floor.X), Y: max(p.Y, floor.Y)}
}

// Resize computes the rect produced by moving the dir handle of origin by
// delta. Sizes are clamped first and the position of a leading edge is
// derived from the clamped size change, so the opposite edge never moves.
func Resize(origin Rect, dir Direction, delta Point, b Bounds) Rect {
	horizontal, vertical := dir.Axes()
	x, w := resizeAxis(origin.X, origin.Width, delta.X, b.Min.Width, b.Max.Width, horizontal)
	y, h := resizeAxis(origin.Y, origin.Height, delta.Y, b.Min.Height, b.Max.Height, vertical)
	return Rect{Point: Point{X: x, Y: y}, Size: Size{Width: w, Height: h}}
}

func resizeAxis(pos, length, delta, lo, hi int, edge Edge) (int, int) {
	switch edge {
	case EdgeTrailing:
		return pos, clamp(length+delta, lo, hi)
	case EdgeLeading:
		// The leading edge stops at the viewport origin unless that would
		// break the minimum size.
		size := clamp(length-delta, lo, min(hi, max(lo, pos+length)))
		return max(0, pos-(size-length)), size
	}
	return pos, length
}
