package shape

import (
	"errors"

	"github.com/gogpu/termatlas"
	"github.com/gogpu/termatlas/font"
)

// Sentinel errors for the shape package.
var (
	// ErrNoFace is returned when a run carries the none handle.
	ErrNoFace = errors.New("shape: run has no font face")
)

// Run is one attribute run of a terminal row: a span of text that shares
// a face, size, color, and attribute set, covering the column range
// [From, To).
type Run struct {
	// Text is the run's content.
	Text string

	// From/To is the column range the run covers.
	From int
	To   int

	// Color is the foreground color applied to every glyph of the run.
	Color uint32

	// Face selects the font face; the soft-font handle synthesizes
	// glyphs without shaping.
	Face font.Handle

	// Size is the font em size for this run.
	Size float32

	// Attributes participates in the shaping cache key, since bold and
	// italic runs map to distinct glyph sets.
	Attributes font.Attributes
}

// ShapedRun is the face-independent result of shaping one run: three
// parallel arrays ready to be appended to a ShapedRow. Cached values are
// shared between rows and must not be mutated after creation.
type ShapedRun struct {
	Indices  []uint16
	Advances []float32
	Offsets  []termatlas.GlyphOffset
}

// GlyphCount returns the number of glyphs in the shaped run.
func (r *ShapedRun) GlyphCount() int {
	return len(r.Indices)
}
