// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shape

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"github.com/rivo/uniseg"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/bidi"

	"github.com/gogpu/termatlas"
	"github.com/gogpu/termatlas/font"
)

// Shaper fills cleared ShapedRows from attribute runs.
//
// Shaping goes through go-text/typesetting's HarfBuzz implementation.
// HarfbuzzShaper instances have internal mutable state and are not safe
// for concurrent use, so they are pooled; parsed fonts are shared through
// font.Source, which is safe for concurrent use.
type Shaper struct {
	shaperPool sync.Pool
	cache      *RunCache
	lang       language.Language
}

// Option configures a Shaper during creation.
type Option func(*Shaper)

// WithCache attaches a run cache. Without one, every run is shaped from
// scratch on every frame.
func WithCache(c *RunCache) Option {
	return func(s *Shaper) {
		s.cache = c
	}
}

// WithLanguage sets the language passed to the shaping engine.
// Defaults to "en".
func WithLanguage(tag string) Option {
	return func(s *Shaper) {
		s.lang = language.NewLanguage(tag)
	}
}

// NewShaper creates a Shaper.
func NewShaper(opts ...Option) *Shaper {
	s := &Shaper{
		shaperPool: sync.Pool{
			New: func() any {
				return &shaping.HarfbuzzShaper{}
			},
		},
		lang: language.NewLanguage("en"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Cache returns the attached run cache, or nil.
func (s *Shaper) Cache() *RunCache {
	return s.cache
}

// ShapeRow populates row from runs. cellWidth is the terminal cell width
// in pixels; every shaped cluster is snapped to an integral number of
// cells so the glyph stream stays on the grid.
//
// Runs that fail leave no trace in the row: the parallel arrays stay
// equal-length and the mapping partition stays contiguous, so the row
// renders (with those runs blank) rather than crashing the frame. All
// failures are joined into the returned error for the caller to surface.
func (s *Shaper) ShapeRow(row *termatlas.ShapedRow, runs []Run, cellWidth int) error {
	var errs []error
	for i := range runs {
		run := &runs[i]
		switch run.Face.Kind() {
		case font.KindSoftFont:
			s.appendSoftFont(row, run, cellWidth)
		case font.KindProper:
			if err := s.appendShaped(row, run, cellWidth); err != nil {
				errs = append(errs, fmt.Errorf("shape: columns [%d,%d): %w", run.From, run.To, err))
			}
		default:
			errs = append(errs, fmt.Errorf("shape: columns [%d,%d): %w", run.From, run.To, ErrNoFace))
		}
	}
	if len(errs) > 0 {
		err := errors.Join(errs...)
		termatlas.Logger().Warn("row shaping incomplete", "err", err)
		return err
	}
	return nil
}

// appendSoftFont synthesizes glyphs for a DECDLD/DRCS run. Soft-font
// glyph indices are the code points themselves; the backend resolves
// them against the soft-font pattern in FontSettings.
func (s *Shaper) appendSoftFont(row *termatlas.ShapedRow, run *Run, cellWidth int) {
	from := row.GlyphCount()
	for _, r := range run.Text {
		// DRCS glyph sets are 94/96 characters; anything wider has no
		// pattern and draws blank.
		row.GlyphIndices = append(row.GlyphIndices, uint16(r&0xffff))
		row.GlyphAdvances = append(row.GlyphAdvances, float32(cellWidth))
		row.GlyphOffsets = append(row.GlyphOffsets, termatlas.GlyphOffset{})
		row.Colors = append(row.Colors, run.Color)
	}
	row.Mappings = append(row.Mappings, termatlas.FontMapping{
		Face:       run.Face.Clone(),
		FontEmSize: run.Size,
		GlyphsFrom: from,
		GlyphsTo:   row.GlyphCount(),
	})
}

// appendShaped shapes a proper-face run (through the cache, if any) and
// appends the result to the row.
func (s *Shaper) appendShaped(row *termatlas.ShapedRow, run *Run, cellWidth int) error {
	res := run.Face.Resource()
	if res == nil || res.Source() == nil {
		return ErrNoFace
	}

	var sr *ShapedRun
	if s.cache != nil {
		key := NewRunKey(run.Text, run.Face, run.Size, cellWidth, run.Attributes)
		sr = s.cache.GetOrCreate(key, func() *ShapedRun {
			return s.shapeRun(run.Text, res.Source(), run.Size, cellWidth)
		})
	} else {
		sr = s.shapeRun(run.Text, res.Source(), run.Size, cellWidth)
	}
	if sr == nil {
		return fmt.Errorf("shaping %q failed", run.Text)
	}

	from := row.GlyphCount()
	row.GlyphIndices = append(row.GlyphIndices, sr.Indices...)
	row.GlyphAdvances = append(row.GlyphAdvances, sr.Advances...)
	row.GlyphOffsets = append(row.GlyphOffsets, sr.Offsets...)
	for range sr.Indices {
		row.Colors = append(row.Colors, run.Color)
	}
	row.Mappings = append(row.Mappings, termatlas.FontMapping{
		Face:       run.Face.Clone(),
		FontEmSize: run.Size,
		GlyphsFrom: from,
		GlyphsTo:   row.GlyphCount(),
	})
	return nil
}

// shapeRun shapes text into a face-independent ShapedRun. Returns nil
// when the text produces no glyphs.
func (s *Shaper) shapeRun(text string, src *font.Source, size float32, cellWidth int) *ShapedRun {
	if text == "" {
		return &ShapedRun{}
	}

	runes := []rune(text)
	// A fresh face per shaping pass: gtfont.Face is not safe for
	// concurrent use, the underlying Font is.
	face := src.NewFace()

	hb := s.shaperPool.Get().(*shaping.HarfbuzzShaper)
	defer s.shaperPool.Put(hb)

	out := &ShapedRun{}
	clusters := make([]int, 0, len(runes))

	for _, seg := range segmentBidi(text, runes) {
		input := shaping.Input{
			Text:      runes,
			RunStart:  seg.start,
			RunEnd:    seg.end,
			Direction: seg.dir,
			Face:      face,
			Size:      floatToFixed(float64(size)),
			Script:    detectScript(runes[seg.start:seg.end]),
			Language:  s.lang,
		}
		output := hb.Shape(input)

		base := len(out.Indices)
		for _, g := range output.Glyphs {
			out.Indices = append(out.Indices, uint16(g.GlyphID))
			out.Advances = append(out.Advances, fixedToFloat(g.Advance))
			out.Offsets = append(out.Offsets, termatlas.GlyphOffset{
				X: fixedToFloat(g.XOffset),
				Y: fixedToFloat(g.YOffset),
			})
			clusters = append(clusters, g.TextIndex())
		}
		snapToCells(out.Advances[base:], clusters[base:], runes, seg.end,
			seg.dir == di.DirectionRTL, cellWidth)
	}
	return out
}

// snapToCells corrects cluster advances so each grapheme cluster spans an
// integral number of terminal cells. The correction lands on the last
// glyph of each cluster, preserving intra-cluster positioning.
func snapToCells(advances []float32, clusters []int, runes []rune, segEnd int, rtl bool, cellWidth int) {
	if cellWidth <= 0 {
		return
	}
	n := len(advances)
	i := 0
	for i < n {
		j := i + 1
		for j < n && clusters[j] == clusters[i] {
			j++
		}
		lo := clusters[i]
		hi := segEnd
		if rtl {
			if i > 0 {
				hi = clusters[i-1]
			}
		} else if j < n {
			hi = clusters[j]
		}
		if lo < hi && hi <= len(runes) {
			cells := uniseg.StringWidth(string(runes[lo:hi]))
			if cells > 0 {
				target := float32(cells * cellWidth)
				var sum float32
				for k := i; k < j; k++ {
					sum += advances[k]
				}
				advances[j-1] += target - sum
			}
		}
		i = j
	}
}

// bidiSegment is a maximal run of text with a single direction, in
// visual order.
type bidiSegment struct {
	start int // rune index, inclusive
	end   int // rune index, exclusive
	dir   di.Direction
}

// segmentBidi splits text into directional runs using the Unicode bidi
// algorithm. On any bidi failure the whole text is treated as one LTR
// run; glyph positions may be wrong for such text but shaping still
// produces a structurally valid result.
func segmentBidi(text string, runes []rune) []bidiSegment {
	ltr := []bidiSegment{{start: 0, end: len(runes), dir: di.DirectionLTR}}

	var p bidi.Paragraph
	if _, err := p.SetString(text); err != nil {
		return ltr
	}
	ordering, err := p.Order()
	if err != nil {
		return ltr
	}

	segs := make([]bidiSegment, 0, ordering.NumRuns())
	for i := 0; i < ordering.NumRuns(); i++ {
		run := ordering.Run(i)
		// Pos returns rune indices, inclusive on both ends.
		start, end := run.Pos()
		dir := di.DirectionLTR
		if run.Direction() == bidi.RightToLeft {
			dir = di.DirectionRTL
		}
		segs = append(segs, bidiSegment{start: start, end: end + 1, dir: dir})
	}
	if len(segs) == 0 {
		return ltr
	}
	return segs
}

// detectScript returns the script of the first non-space rune. For
// mixed-script segments the first script wins; splitting further is the
// shaping engine's problem, not the terminal's.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

// floatToFixed converts a font size to 26.6 fixed point.
func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}

// fixedToFloat converts a 26.6 fixed-point value to float32.
func fixedToFloat(v fixed.Int26_6) float32 {
	return float32(v) / 64
}
