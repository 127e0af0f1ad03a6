// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package termatlas

// RowGrid is the cross-frame cache of shaped rows.
//
// The backing store (slots) holds one ShapedRow per visible terminal row,
// indexed by storage slot rather than screen position. order maps screen
// rows, top to bottom, onto slot indices; it is always a permutation of
// [0, Rows()). scratch is a same-sized spare ordering used to build the
// post-scroll permutation without disturbing rows still in use.
//
// Slot indices instead of row pointers keep the permutation invariant
// checkable and survive reallocation of the backing store on resize.
type RowGrid struct {
	slots      []ShapedRow
	order      []int
	scratch    []int
	cellHeight int
}

// NewRowGrid creates a grid of rows cleared rows with the given cell
// height. The initial ordering is the identity permutation.
func NewRowGrid(rows, cellHeight int) *RowGrid {
	g := &RowGrid{}
	g.Reset(rows, cellHeight)
	return g
}

// Rows returns the number of visible rows.
func (g *RowGrid) Rows() int {
	return len(g.order)
}

// CellHeight returns the cell height the grid was last reset with.
func (g *RowGrid) CellHeight() int {
	return g.cellHeight
}

// Row returns the shaped row at screen row y.
func (g *RowGrid) Row(y int) *ShapedRow {
	return &g.slots[g.order[y]]
}

// SlotIndex returns the backing slot holding screen row y.
func (g *RowGrid) SlotIndex(y int) int {
	return g.order[y]
}

// Slot returns the backing row at storage slot i, independent of screen
// order.
func (g *RowGrid) Slot(i int) *ShapedRow {
	return &g.slots[i]
}

// Reset resizes the grid and clears every row. Used on construction,
// on cell-count changes, and on font changes (which alter cellHeight and
// invalidate all shaped content anyway).
func (g *RowGrid) Reset(rows, cellHeight int) {
	if rows < 0 {
		rows = 0
	}
	g.cellHeight = cellHeight
	if rows != len(g.slots) {
		g.slots = make([]ShapedRow, rows)
		g.order = make([]int, rows)
		g.scratch = make([]int, rows)
	}
	for y := range g.order {
		g.order[y] = y
		g.slots[y].Clear(y, cellHeight)
	}
}

// Scroll reorders the cached rows for a pure vertical scroll by delta
// rows without re-shaping surviving content.
//
// delta > 0 scrolls content toward the top: screen row y takes over the
// row previously at y+delta, the delta slots that fell off the top are
// recycled into the newly exposed bottom rows and cleared there. delta <
// 0 mirrors this downward. Only the recycled rows lose their shaped
// content; Scroll returns their screen-row range so the caller can
// re-shape exactly those rows.
//
// A |delta| of at least the visible row count degrades to a full reset:
// every row is cleared and the whole range returned.
func (g *RowGrid) Scroll(delta int) Range {
	rows := len(g.order)
	if rows == 0 || delta == 0 {
		return Range{}
	}

	n := delta
	if n < 0 {
		n = -n
	}
	if n >= rows {
		for y := range g.order {
			g.slots[g.order[y]].Clear(y, g.cellHeight)
		}
		return Range{Start: 0, End: rows}
	}

	var exposed Range
	if delta > 0 {
		copy(g.scratch, g.order[delta:])
		// Slots scrolled out at the top re-enter at the bottom.
		for i, slot := range g.order[:delta] {
			y := rows - delta + i
			g.scratch[y] = slot
			g.slots[slot].Clear(y, g.cellHeight)
		}
		exposed = Range{Start: rows - delta, End: rows}
	} else {
		copy(g.scratch[n:], g.order[:rows-n])
		for i, slot := range g.order[rows-n:] {
			g.scratch[i] = slot
			g.slots[slot].Clear(i, g.cellHeight)
		}
		exposed = Range{Start: 0, End: n}
	}

	g.order, g.scratch = g.scratch, g.order
	return exposed
}
