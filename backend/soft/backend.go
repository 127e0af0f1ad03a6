// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package soft

import (
	"github.com/gogpu/termatlas"
	"github.com/gogpu/termatlas/backend"
)

func init() {
	backend.Register(backend.BackendSoft, func() backend.Backend {
		return New()
	})
}

// GlyphPainter rasterizes proper-font glyph ink for one row. The soft
// backend owns backgrounds, selection, soft-font patterns, decorations,
// and the cursor; everything that needs a real rasterizer goes through
// this interface so the embedding application can bring its own.
type GlyphPainter interface {
	// PaintRow draws the glyph ink of row into dst. The row's vertical
	// pixel band is [DirtyTop, DirtyBottom); glyph x positions follow
	// from accumulating GlyphAdvances left to right.
	PaintRow(dst *Pixmap, row *termatlas.ShapedRow, settings *termatlas.Settings)
}

// Soft is the CPU backend. It retains its pixmap between frames so a
// scroll is a memmove plus a repaint of only the recycled rows.
type Soft struct {
	target  *Pixmap
	painter GlyphPainter

	lastSettings termatlas.Generation
	lastBitmap   termatlas.Generation
	lastCursor   termatlas.Rect
	retro        bool
}

// Option configures a Soft backend during creation.
type Option func(*Soft)

// WithGlyphPainter attaches a glyph rasterizer.
func WithGlyphPainter(gp GlyphPainter) Option {
	return func(b *Soft) {
		b.painter = gp
	}
}

// New creates a soft backend with no target; the target is allocated on
// the first Render from the payload's target size.
func New(opts ...Option) *Soft {
	b := &Soft{}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Target returns the retained pixmap, or nil before the first Render.
func (b *Soft) Target() *Pixmap {
	return b.target
}

// RequiresContinuousRedraw reports whether the last rendered settings
// enabled the retro scanline effect, which animates.
func (b *Soft) RequiresContinuousRedraw() bool {
	return b.retro
}

// WaitUntilCanRender returns immediately; the CPU backend has no frame
// pacing of its own.
func (b *Soft) WaitUntilCanRender() {}

// Render composites one frame from the payload into the retained pixmap.
func (b *Soft) Render(p *termatlas.RenderingPayload) error {
	if p == nil {
		return backend.ErrNotInitialized
	}
	s := p.Settings.Get()
	fontSettings := s.Font.Get()
	cell := fontSettings.CellSize
	if s.TargetSize.X <= 0 || s.TargetSize.Y <= 0 || cell.X <= 0 || cell.Y <= 0 {
		return backend.ErrNotInitialized
	}

	full := false
	if b.target == nil || b.target.Width() != s.TargetSize.X || b.target.Height() != s.TargetSize.Y {
		b.target = NewPixmap(s.TargetSize.X, s.TargetSize.Y)
		full = true
	}
	if p.Settings.Changed(b.lastSettings) {
		full = true
		b.lastSettings = p.Settings.Generation()
	}
	if p.BackgroundBitmapGeneration != b.lastBitmap {
		// Cell backgrounds changed somewhere; repaint them all rather
		// than diffing the bitmap.
		full = true
		b.lastBitmap = p.BackgroundBitmapGeneration
	}

	misc := s.Misc.Get()
	b.retro = misc.UseRetroTerminalEffect

	blitOffset := 0
	if !full && p.ScrollOffset != 0 {
		b.target.ScrollVert(p.ScrollOffset * cell.Y)
		blitOffset = p.ScrollOffset
	}

	// The cursor was painted into the retained pixmap last frame. When it
	// moves or hides, the rows it vacated must repaint even if nothing
	// else dirtied them; the blit may have carried that ink elsewhere.
	cursorRows := termatlas.Range{}
	if p.CursorRect != b.lastCursor {
		if !b.lastCursor.Empty() {
			cursorRows = termatlas.Range{
				Start: b.lastCursor.Top - blitOffset,
				End:   b.lastCursor.Bottom - blitOffset,
			}
		}
		if !p.CursorRect.Empty() {
			cursorRows = cursorRows.Union(termatlas.Range{
				Start: p.CursorRect.Top,
				End:   p.CursorRect.Bottom,
			})
		}
	}

	if full {
		// Padding right of the last column and below the last row is
		// not covered by any cell.
		b.target.FillRect(termatlas.Rect{
			Left: 0, Top: 0,
			Right: s.TargetSize.X, Bottom: s.TargetSize.Y,
		}, misc.BackgroundColor)
	}

	for y := 0; y < s.CellCount.Y && y < p.Grid.Rows(); y++ {
		if !b.rowNeedsPaint(p, s, y, full, cursorRows) {
			continue
		}
		b.paintRow(p, s, fontSettings, misc, y)
	}

	if !p.CursorRect.Empty() {
		b.paintCursor(p, s, fontSettings)
	}
	b.lastCursor = p.CursorRect

	if b.retro {
		b.applyScanlines(s)
	}
	return nil
}

// rowNeedsPaint decides whether screen row y must be repainted this
// frame. After a scroll the pixmap blit already carries surviving rows,
// so only the recycled rows (and anything explicitly invalidated)
// repaint; without a scroll any row whose band intersects the dirty
// rectangle repaints.
func (b *Soft) rowNeedsPaint(p *termatlas.RenderingPayload, s *termatlas.Settings, y int, full bool, cursorRows termatlas.Range) bool {
	if full || p.InvalidatedRows.Contains(y) || cursorRows.Contains(y) {
		return true
	}
	if p.ScrollOffset != 0 {
		return false
	}
	row := p.Grid.Row(y)
	band := termatlas.Rect{
		Left: 0, Top: row.DirtyTop,
		Right: s.TargetSize.X, Bottom: row.DirtyBottom,
	}
	return band.Intersect(p.DirtyRect).NonEmpty()
}
