// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package termatlas

import "github.com/gogpu/termatlas/font"

// LineRendition is the per-row width/height mode (DECDWL/DECDHL).
type LineRendition uint8

const (
	// LineRenditionSingleWidth is the normal mode.
	LineRenditionSingleWidth LineRendition = iota

	// LineRenditionDoubleWidth doubles the width of every cell.
	LineRenditionDoubleWidth

	// LineRenditionDoubleHeightTop is the top half of double-height text.
	LineRenditionDoubleHeightTop

	// LineRenditionDoubleHeightBottom is the bottom half of double-height
	// text.
	LineRenditionDoubleHeightBottom
)

// GridLines is a set of line-decoration flags drawn over a column range.
type GridLines uint8

const (
	// GridLineUnderline is a single underline.
	GridLineUnderline GridLines = 1 << iota

	// GridLineDoubleUnderline is two stacked underlines.
	GridLineDoubleUnderline

	// GridLineCurlyUnderline is a wavy underline.
	GridLineCurlyUnderline

	// GridLineDottedUnderline is a dotted underline.
	GridLineDottedUnderline

	// GridLineDashedUnderline is a dashed underline.
	GridLineDashedUnderline

	// GridLineStrikethrough is a line through the text center.
	GridLineStrikethrough

	// GridLineOverline is a line at the cell top.
	GridLineOverline
)

// Has reports whether all flags in other are set.
func (g GridLines) Has(other GridLines) bool {
	return g&other == other
}

// GridLineRange applies a set of line decorations with one color to the
// column range [From, To).
type GridLineRange struct {
	Lines GridLines
	Color uint32
	From  int
	To    int
}

// GlyphOffset is the sub-pixel placement adjustment of one glyph:
// X shifts along the baseline, Y shifts away from it.
type GlyphOffset struct {
	X float32
	Y float32
}

// FontMapping associates the glyph index range [GlyphsFrom, GlyphsTo) of
// a row's glyph stream with the face and size used to shape it. A row
// mixes mappings when fallback fonts or the soft font kick in.
//
// Backends may cache rasterization state keyed by Face.Key() and
// FontEmSize; they must not mutate the mapping itself.
type FontMapping struct {
	Face       font.Handle
	FontEmSize float32
	GlyphsFrom int
	GlyphsTo   int
}

// ShapedRow is the cached shaping result for one terminal row.
//
// GlyphIndices, GlyphAdvances, GlyphOffsets and Colors are parallel
// arrays of identical length; Mappings partitions [0, len(GlyphIndices))
// contiguously without gaps. The shaping collaborator maintains both
// invariants when it populates a cleared row.
type ShapedRow struct {
	Mappings       []FontMapping
	GlyphIndices   []uint16
	GlyphAdvances  []float32     // same size as GlyphIndices
	GlyphOffsets   []GlyphOffset // same size as GlyphIndices
	Colors         []uint32      // same size as GlyphIndices
	GridLineRanges []GridLineRange

	LineRendition LineRendition

	// SelectionFrom/SelectionTo is the selected column range [From, To).
	SelectionFrom int
	SelectionTo   int

	// DirtyTop/DirtyBottom is the vertical pixel interval this row
	// occupies on the target, recomputed by Clear.
	DirtyTop    int
	DirtyBottom int
}

// Clear resets the row for reuse at screen row y with the given cell
// height. All collections become empty, the line rendition returns to
// single width, the selection empties, and the dirty interval becomes
// [y*cellHeight, y*cellHeight+cellHeight). This is the only transition
// from stale content to "ready for new shaping output"; it must run
// before a row is reused for a different frame's content.
func (r *ShapedRow) Clear(y, cellHeight int) {
	// Mappings own a reference each; drop them before truncating.
	for i := range r.Mappings {
		r.Mappings[i].Face.Release()
	}
	r.Mappings = r.Mappings[:0]
	r.GlyphIndices = r.GlyphIndices[:0]
	r.GlyphAdvances = r.GlyphAdvances[:0]
	r.GlyphOffsets = r.GlyphOffsets[:0]
	r.Colors = r.Colors[:0]
	r.GridLineRanges = r.GridLineRanges[:0]
	r.LineRendition = LineRenditionSingleWidth
	r.SelectionFrom = 0
	r.SelectionTo = 0
	r.DirtyTop = y * cellHeight
	r.DirtyBottom = r.DirtyTop + cellHeight
}

// GlyphCount returns the number of glyphs in the row.
func (r *ShapedRow) GlyphCount() int {
	return len(r.GlyphIndices)
}
