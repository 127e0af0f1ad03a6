package termatlas

// Size is a two-dimensional extent, in pixels or in cells depending on
// context. The zero value is an empty size.
type Size struct {
	X int
	Y int
}

// Rect is a half-open rectangle [Left, Right) x [Top, Bottom).
// Coordinates are in pixels unless documented otherwise.
type Rect struct {
	Left   int
	Top    int
	Right  int
	Bottom int
}

// Empty reports whether the rectangle covers no area.
func (r Rect) Empty() bool {
	return r.Left >= r.Right || r.Top >= r.Bottom
}

// NonEmpty reports whether the rectangle covers at least one pixel.
func (r Rect) NonEmpty() bool {
	return r.Left < r.Right && r.Top < r.Bottom
}

// Width returns Right - Left. Negative widths are clamped to zero.
func (r Rect) Width() int {
	if r.Right <= r.Left {
		return 0
	}
	return r.Right - r.Left
}

// Height returns Bottom - Top. Negative heights are clamped to zero.
func (r Rect) Height() int {
	if r.Bottom <= r.Top {
		return 0
	}
	return r.Bottom - r.Top
}

// Union returns the smallest rectangle containing both r and o.
// An empty operand does not grow the result.
func (r Rect) Union(o Rect) Rect {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	return Rect{
		Left:   min(r.Left, o.Left),
		Top:    min(r.Top, o.Top),
		Right:  max(r.Right, o.Right),
		Bottom: max(r.Bottom, o.Bottom),
	}
}

// Intersect returns the overlapping region of r and o.
// The result is empty (but not normalized) if they do not overlap.
func (r Rect) Intersect(o Rect) Rect {
	out := Rect{
		Left:   max(r.Left, o.Left),
		Top:    max(r.Top, o.Top),
		Right:  min(r.Right, o.Right),
		Bottom: min(r.Bottom, o.Bottom),
	}
	if out.Empty() {
		return Rect{}
	}
	return out
}

// Range is a half-open interval [Start, End) of row or column indices.
type Range struct {
	Start int
	End   int
}

// Empty reports whether the range contains no indices.
func (r Range) Empty() bool {
	return r.Start >= r.End
}

// Len returns the number of indices in the range.
func (r Range) Len() int {
	if r.End <= r.Start {
		return 0
	}
	return r.End - r.Start
}

// Contains reports whether i lies within the range.
func (r Range) Contains(i int) bool {
	return i >= r.Start && i < r.End
}

// Union returns the smallest range containing both r and o.
// An empty operand does not grow the result.
func (r Range) Union(o Range) Range {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	return Range{Start: min(r.Start, o.Start), End: max(r.End, o.End)}
}
