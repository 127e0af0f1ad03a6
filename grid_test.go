package termatlas

import "testing"

// tagRows gives every row a distinguishable glyph so reordering can be
// observed.
func tagRows(g *RowGrid) {
	for y := 0; y < g.Rows(); y++ {
		row := g.Row(y)
		row.GlyphIndices = append(row.GlyphIndices, uint16(y))
	}
}

// rowTag reads the distinguishing glyph, or -1 for a cleared row.
func rowTag(g *RowGrid, y int) int {
	row := g.Row(y)
	if row.GlyphCount() == 0 {
		return -1
	}
	return int(row.GlyphIndices[0])
}

func checkPermutation(t *testing.T, g *RowGrid) {
	t.Helper()
	seen := make(map[int]bool, g.Rows())
	for y := 0; y < g.Rows(); y++ {
		i := g.SlotIndex(y)
		if i < 0 || i >= g.Rows() {
			t.Fatalf("SlotIndex(%d) = %d, out of range", y, i)
		}
		if seen[i] {
			t.Fatalf("slot %d appears twice in the ordering", i)
		}
		seen[i] = true
	}
}

func TestNewRowGrid(t *testing.T) {
	g := NewRowGrid(4, 20)
	if g.Rows() != 4 {
		t.Fatalf("Rows() = %d, want 4", g.Rows())
	}
	if g.CellHeight() != 20 {
		t.Fatalf("CellHeight() = %d, want 20", g.CellHeight())
	}
	for y := 0; y < 4; y++ {
		row := g.Row(y)
		if row.DirtyTop != y*20 || row.DirtyBottom != y*20+20 {
			t.Errorf("row %d dirty interval = [%d, %d), want [%d, %d)",
				y, row.DirtyTop, row.DirtyBottom, y*20, y*20+20)
		}
	}
	checkPermutation(t, g)
}

func TestRowGridScrollUp(t *testing.T) {
	// [A, B, C, D] scrolled up by one becomes [B, C, D, X] where X is the
	// recycled storage of A, cleared for the bottom row.
	g := NewRowGrid(4, 20)
	tagRows(g)
	recycled := g.SlotIndex(0)

	exposed := g.Scroll(1)

	if want := (Range{Start: 3, End: 4}); exposed != want {
		t.Fatalf("exposed = %+v, want %+v", exposed, want)
	}
	for y, want := range []int{1, 2, 3, -1} {
		if got := rowTag(g, y); got != want {
			t.Errorf("row %d tag = %d, want %d", y, got, want)
		}
	}
	if g.SlotIndex(3) != recycled {
		t.Errorf("bottom row uses slot %d, want recycled slot %d", g.SlotIndex(3), recycled)
	}
	if row := g.Row(3); row.DirtyTop != 60 || row.DirtyBottom != 80 {
		t.Errorf("recycled row dirty interval = [%d, %d), want [60, 80)", row.DirtyTop, row.DirtyBottom)
	}
	checkPermutation(t, g)
}

func TestRowGridScrollDown(t *testing.T) {
	g := NewRowGrid(4, 20)
	tagRows(g)

	exposed := g.Scroll(-2)

	if want := (Range{Start: 0, End: 2}); exposed != want {
		t.Fatalf("exposed = %+v, want %+v", exposed, want)
	}
	for y, want := range []int{-1, -1, 0, 1} {
		if got := rowTag(g, y); got != want {
			t.Errorf("row %d tag = %d, want %d", y, got, want)
		}
	}
	checkPermutation(t, g)
}

func TestRowGridScrollFullInvalidation(t *testing.T) {
	for _, delta := range []int{4, -4, 7, -100} {
		g := NewRowGrid(4, 20)
		tagRows(g)

		exposed := g.Scroll(delta)

		if want := (Range{Start: 0, End: 4}); exposed != want {
			t.Errorf("delta %d: exposed = %+v, want %+v", delta, exposed, want)
		}
		for y := 0; y < 4; y++ {
			if rowTag(g, y) != -1 {
				t.Errorf("delta %d: row %d survived, want cleared", delta, y)
			}
		}
		checkPermutation(t, g)
	}
}

func TestRowGridScrollZeroAndEmpty(t *testing.T) {
	g := NewRowGrid(4, 20)
	tagRows(g)
	if exposed := g.Scroll(0); !exposed.Empty() {
		t.Errorf("Scroll(0) exposed %+v, want empty", exposed)
	}
	for y, want := range []int{0, 1, 2, 3} {
		if got := rowTag(g, y); got != want {
			t.Errorf("row %d tag = %d, want %d after no-op scroll", y, got, want)
		}
	}

	empty := NewRowGrid(0, 20)
	if exposed := empty.Scroll(3); !exposed.Empty() {
		t.Errorf("empty grid Scroll exposed %+v, want empty", exposed)
	}
}

func TestRowGridScrollAccumulates(t *testing.T) {
	g := NewRowGrid(6, 10)
	tagRows(g)

	g.Scroll(1)
	g.Scroll(2)

	// Rows 3..5 survive from the original 3..5 shifted up by 3 total.
	for y, want := range []int{3, 4, 5, -1, -1, -1} {
		if got := rowTag(g, y); got != want {
			t.Errorf("row %d tag = %d, want %d", y, got, want)
		}
	}
	checkPermutation(t, g)
}

func TestRowGridReset(t *testing.T) {
	g := NewRowGrid(4, 20)
	tagRows(g)
	g.Scroll(1)

	g.Reset(6, 24)

	if g.Rows() != 6 || g.CellHeight() != 24 {
		t.Fatalf("Rows/CellHeight = %d/%d, want 6/24", g.Rows(), g.CellHeight())
	}
	for y := 0; y < 6; y++ {
		if rowTag(g, y) != -1 {
			t.Errorf("row %d should be cleared after Reset", y)
		}
		if g.SlotIndex(y) != y {
			t.Errorf("SlotIndex(%d) = %d, want identity after Reset", y, g.SlotIndex(y))
		}
	}
}

func TestRowGridResetSameSizeKeepsStorage(t *testing.T) {
	g := NewRowGrid(4, 20)
	tagRows(g)
	slot0 := g.Slot(0)

	g.Reset(4, 20)

	if g.Slot(0) != slot0 {
		t.Error("same-size Reset should reuse the backing storage")
	}
	if rowTag(g, 0) != -1 {
		t.Error("Reset should clear row content")
	}
}
