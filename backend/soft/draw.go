// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package soft

import (
	"github.com/gogpu/termatlas"
	"github.com/gogpu/termatlas/font"
)

// paintRow repaints the full horizontal band of screen row y: cell
// backgrounds, selection tint, soft-font glyphs, delegated glyph ink,
// and line decorations, in that order.
func (b *Soft) paintRow(p *termatlas.RenderingPayload, s *termatlas.Settings, fs *termatlas.FontSettings, misc *termatlas.MiscSettings, y int) {
	row := p.Grid.Row(y)
	top := row.DirtyTop
	bottom := row.DirtyBottom

	cw := fs.CellSize.X
	if row.LineRendition != termatlas.LineRenditionSingleWidth {
		cw *= 2
	}

	bitmap := p.BackgroundBitmap.Data()
	for x := 0; x < s.CellCount.X; x++ {
		var c uint32
		if i := y*p.BackgroundBitmapStride + x; i < len(bitmap) {
			c = bitmap[i]
		}
		if c>>24 == 0 {
			c = misc.BackgroundColor
		}
		b.target.FillRect(termatlas.Rect{
			Left: x * cw, Top: top,
			Right: (x + 1) * cw, Bottom: bottom,
		}, c)
	}

	if row.SelectionTo > row.SelectionFrom {
		b.target.BlendRect(termatlas.Rect{
			Left: row.SelectionFrom * cw, Top: top,
			Right: row.SelectionTo * cw, Bottom: bottom,
		}, misc.SelectionColor)
	}

	b.paintSoftGlyphs(row, fs, top)

	if b.painter != nil {
		b.painter.PaintRow(b.target, row, s)
	}

	for _, glr := range row.GridLineRanges {
		b.paintGridLines(glr, fs, top, cw)
	}
}

// paintSoftGlyphs draws the DRCS pattern glyphs of a row. Glyph x
// positions come from accumulating advances across the whole glyph
// stream, so soft-font runs position consistently with shaped runs.
func (b *Soft) paintSoftGlyphs(row *termatlas.ShapedRow, fs *termatlas.FontSettings, top int) {
	if len(fs.SoftFontPattern) == 0 || fs.SoftFontCellSize.Y <= 0 {
		return
	}
	pen := float32(0)
	mi := 0
	for gi := 0; gi < row.GlyphCount(); gi++ {
		for mi < len(row.Mappings) && gi >= row.Mappings[mi].GlyphsTo {
			mi++
		}
		if mi < len(row.Mappings) && row.Mappings[mi].Face.Kind() == font.KindSoftFont {
			b.paintSoftGlyph(row, fs, gi, int(pen), top)
		}
		pen += row.GlyphAdvances[gi]
	}
}

// paintSoftGlyph scales one pattern glyph into its cell with
// nearest-neighbor sampling. Pattern rows are MSB-first bit rows.
func (b *Soft) paintSoftGlyph(row *termatlas.ShapedRow, fs *termatlas.FontSettings, gi, x0, top int) {
	srcW := fs.SoftFontCellSize.X
	srcH := fs.SoftFontCellSize.Y
	glyphs := len(fs.SoftFontPattern) / srcH
	if glyphs == 0 || srcW <= 0 {
		return
	}
	base := (int(row.GlyphIndices[gi]) % glyphs) * srcH
	color := row.Colors[gi]
	x0 += fs.SoftFontCenteringHint

	cw := fs.CellSize.X
	ch := fs.CellSize.Y
	for dy := 0; dy < ch; dy++ {
		bits := fs.SoftFontPattern[base+dy*srcH/ch]
		for dx := 0; dx < cw; dx++ {
			sx := dx * srcW / cw
			if sx > 15 {
				continue
			}
			if bits&(1<<(15-sx)) != 0 {
				b.target.FillRect(termatlas.Rect{
					Left: x0 + dx, Top: top + dy,
					Right: x0 + dx + 1, Bottom: top + dy + 1,
				}, color)
			}
		}
	}
}

// paintGridLines draws one decoration range over the columns
// [From, To) of a row whose band starts at pixel top.
func (b *Soft) paintGridLines(glr termatlas.GridLineRange, fs *termatlas.FontSettings, top, cw int) {
	left := glr.From * cw
	right := glr.To * cw
	thin := max(fs.ThinLineWidth, 1)
	lineW := max(fs.UnderlineWidth, 1)
	underY := top + fs.Baseline + fs.UnderlinePos

	hline := func(y, h int) {
		b.target.FillRect(termatlas.Rect{Left: left, Top: y, Right: right, Bottom: y + h}, glr.Color)
	}

	if glr.Lines.Has(termatlas.GridLineUnderline) {
		hline(underY, lineW)
	}
	if glr.Lines.Has(termatlas.GridLineDoubleUnderline) {
		hline(top+fs.Baseline+fs.DoubleUnderlinePos[0], thin)
		hline(top+fs.Baseline+fs.DoubleUnderlinePos[1], thin)
	}
	if glr.Lines.Has(termatlas.GridLineStrikethrough) {
		hline(top+fs.Baseline+fs.StrikethroughPos, max(fs.StrikethroughWidth, 1))
	}
	if glr.Lines.Has(termatlas.GridLineOverline) {
		hline(top, lineW)
	}
	if glr.Lines.Has(termatlas.GridLineDottedUnderline) {
		for x := left; x < right; x += 2 * thin {
			b.target.FillRect(termatlas.Rect{
				Left: x, Top: underY,
				Right: min(x+thin, right), Bottom: underY + lineW,
			}, glr.Color)
		}
	}
	if glr.Lines.Has(termatlas.GridLineDashedUnderline) {
		dash := max(cw/2, 1)
		for x := left; x < right; x += 2 * dash {
			b.target.FillRect(termatlas.Rect{
				Left: x, Top: underY,
				Right: min(x+dash, right), Bottom: underY + lineW,
			}, glr.Color)
		}
	}
	if glr.Lines.Has(termatlas.GridLineCurlyUnderline) {
		period := max(cw, 2)
		amp := max(thin, 1)
		for x := left; x < right; x++ {
			// Triangle wave with one full period per cell.
			off := x % period * 2 * amp / period
			if off > amp {
				off = 2*amp - off
			}
			b.target.FillRect(termatlas.Rect{
				Left: x, Top: underY + off - amp/2,
				Right: x + 1, Bottom: underY + off - amp/2 + thin,
			}, glr.Color)
		}
	}
}

// paintCursor draws the cursor over its cell rectangle, honoring the
// configured shape.
func (b *Soft) paintCursor(p *termatlas.RenderingPayload, s *termatlas.Settings, fs *termatlas.FontSettings) {
	cur := s.Cursor.Get()
	cell := fs.CellSize
	r := termatlas.Rect{
		Left:   p.CursorRect.Left * cell.X,
		Top:    p.CursorRect.Top * cell.Y,
		Right:  p.CursorRect.Right * cell.X,
		Bottom: p.CursorRect.Bottom * cell.Y,
	}
	thin := max(fs.ThinLineWidth, 1)

	switch cur.Type {
	case termatlas.CursorLegacy:
		h := cell.Y * cur.HeightPercentage / 100
		if h < 1 {
			h = 1
		}
		b.target.FillRect(termatlas.Rect{Left: r.Left, Top: r.Bottom - h, Right: r.Right, Bottom: r.Bottom}, cur.Color)
	case termatlas.CursorVerticalBar:
		b.target.FillRect(termatlas.Rect{Left: r.Left, Top: r.Top, Right: r.Left + thin, Bottom: r.Bottom}, cur.Color)
	case termatlas.CursorUnderscore:
		y := r.Top + fs.Baseline + fs.UnderlinePos
		b.target.FillRect(termatlas.Rect{Left: r.Left, Top: y, Right: r.Right, Bottom: y + max(fs.UnderlineWidth, 1)}, cur.Color)
	case termatlas.CursorEmptyBox:
		b.target.FillRect(termatlas.Rect{Left: r.Left, Top: r.Top, Right: r.Right, Bottom: r.Top + thin}, cur.Color)
		b.target.FillRect(termatlas.Rect{Left: r.Left, Top: r.Bottom - thin, Right: r.Right, Bottom: r.Bottom}, cur.Color)
		b.target.FillRect(termatlas.Rect{Left: r.Left, Top: r.Top, Right: r.Left + thin, Bottom: r.Bottom}, cur.Color)
		b.target.FillRect(termatlas.Rect{Left: r.Right - thin, Top: r.Top, Right: r.Right, Bottom: r.Bottom}, cur.Color)
	case termatlas.CursorFullBox:
		b.target.FillRect(r, cur.Color)
	case termatlas.CursorDoubleUnderscore:
		y0 := r.Top + fs.Baseline + fs.DoubleUnderlinePos[0]
		y1 := r.Top + fs.Baseline + fs.DoubleUnderlinePos[1]
		b.target.FillRect(termatlas.Rect{Left: r.Left, Top: y0, Right: r.Right, Bottom: y0 + thin}, cur.Color)
		b.target.FillRect(termatlas.Rect{Left: r.Left, Top: y1, Right: r.Right, Bottom: y1 + thin}, cur.Color)
	}
}

// applyScanlines darkens every other pixel row, a cheap take on the
// retro CRT effect.
func (b *Soft) applyScanlines(s *termatlas.Settings) {
	stride := b.target.Stride()
	pix := b.target.Pixels()
	for y := 1; y < b.target.Height(); y += 2 {
		row := pix[y*stride : y*stride+stride]
		for i := 0; i < len(row); i += 4 {
			row[i+0] = byte(uint32(row[i+0]) * 218 / 256)
			row[i+1] = byte(uint32(row[i+1]) * 218 / 256)
			row[i+2] = byte(uint32(row[i+2]) * 218 / 256)
		}
	}
}
