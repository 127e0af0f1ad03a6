// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package termatlas

import (
	"github.com/gogpu/gpucontext"
)

// backgroundBitmapAlignment over-aligns the background bitmap so backends
// can stage it to the GPU without an intermediate copy.
const backgroundBitmapAlignment = 32

// RenderingPayload aggregates everything a backend needs to produce one
// frame: the collaborator handles, the generation-tracked settings, the
// row grid, the background color bitmap, and the frame's dirty state.
//
// The payload has one logical owner, the rendering thread. Backends get
// a mutable reference scoped to a single Render call; they read the
// payload and may populate resource handles they are explicitly permitted
// to (glyph atlas lookups attached to font mappings), but must not mutate
// row ordering or settings.
type RenderingPayload struct {
	// Device provides GPU device/queue access from the host application.
	// It is constant for the lifetime of the payload and nil for
	// software-only rendering.
	Device gpucontext.DeviceProvider

	// WarningCallback, when set, receives non-fatal human-readable
	// failures (a row that failed to shape, a degraded backend).
	WarningCallback func(error)

	// SurfaceChangedCallback, when set, is invoked by backends when the
	// output surface handle changes and presentation must be re-targeted.
	SurfaceChangedCallback func(handle uintptr)

	// Settings changes seldom; consumers watch its group generations.
	Settings GenerationalSettings

	// Grid holds the shaped rows in screen order.
	Grid *RowGrid

	// BackgroundBitmap stores one color per cell, row-major.
	// BackgroundBitmapStride is its width in elements, not bytes.
	BackgroundBitmap       Buffer[uint32]
	BackgroundBitmapStride int

	// BackgroundBitmapGeneration starts at 1 so backends upload the
	// bitmap on the first frame even though it is still all zero.
	BackgroundBitmapGeneration Generation

	// CursorRect is the cursor location in cell coordinates; empty when
	// the cursor is hidden.
	CursorRect Rect

	// DirtyRect is the accumulated pixel region that must be redrawn.
	DirtyRect Rect

	// InvalidatedRows is the screen-row range whose shaped content is
	// stale and awaits the shaping collaborator.
	InvalidatedRows Range

	// ScrollOffset is the pending vertical scroll in rows since the last
	// frame, for backends that blit the retained target.
	ScrollOffset int

	// Remembered generations for HandleSettingsUpdate.
	targetGeneration Generation
	fontGeneration   Generation
	lastCellCount    Size
}

// PayloadOption configures a RenderingPayload during creation.
type PayloadOption func(*RenderingPayload)

// WithDevice hands the payload a GPU device provider from the host
// application. The payload receives the device, it does not create one.
func WithDevice(d gpucontext.DeviceProvider) PayloadOption {
	return func(p *RenderingPayload) {
		p.Device = d
	}
}

// WithWarningCallback sets the non-fatal failure callback.
func WithWarningCallback(cb func(error)) PayloadOption {
	return func(p *RenderingPayload) {
		p.WarningCallback = cb
	}
}

// WithSurfaceChangedCallback sets the surface-change notification
// callback.
func WithSurfaceChangedCallback(cb func(uintptr)) PayloadOption {
	return func(p *RenderingPayload) {
		p.SurfaceChangedCallback = cb
	}
}

// NewRenderingPayload builds a payload sized from the given settings and
// marks everything dirty for the first frame.
func NewRenderingPayload(settings GenerationalSettings, opts ...PayloadOption) *RenderingPayload {
	p := &RenderingPayload{
		Settings:                   settings,
		BackgroundBitmapGeneration: 1,
	}
	for _, opt := range opts {
		opt(p)
	}

	s := p.Settings.Get()
	p.Grid = NewRowGrid(s.CellCount.Y, s.Font.Get().CellSize.Y)
	p.rebuildBackgroundBitmap(s.CellCount)
	p.lastCellCount = s.CellCount
	p.targetGeneration = s.Target.Generation()
	p.fontGeneration = s.Font.Generation()
	p.MarkAllAsDirty()
	return p
}

func (p *RenderingPayload) rebuildBackgroundBitmap(cells Size) {
	p.BackgroundBitmapStride = cells.X
	p.BackgroundBitmap = NewAlignedBuffer[uint32](cells.X*cells.Y, backgroundBitmapAlignment)
	p.BackgroundBitmapGeneration = 1
}

// MarkAllAsDirty widens the dirty rectangle to the full target, marks
// every row invalidated, and clears any pending scroll. This is the
// recovery action whenever a backend is recreated, the target resizes,
// or state is suspected inconsistent (for example after a lost-surface
// failure from the presentation layer).
func (p *RenderingPayload) MarkAllAsDirty() {
	s := p.Settings.Get()
	p.DirtyRect = Rect{Left: 0, Top: 0, Right: s.TargetSize.X, Bottom: s.TargetSize.Y}
	p.InvalidatedRows = Range{Start: 0, End: s.CellCount.Y}
	p.ScrollOffset = 0
}

// InvalidateRows unions [from, to) into the stale-row range and widens
// the dirty rectangle by the corresponding pixel band.
func (p *RenderingPayload) InvalidateRows(from, to int) {
	r := Range{Start: from, End: to}
	if r.Empty() {
		return
	}
	p.InvalidatedRows = p.InvalidatedRows.Union(r)

	h := p.Settings.Get().Font.Get().CellSize.Y
	p.ExpandDirtyRect(Rect{
		Left:   0,
		Top:    r.Start * h,
		Right:  p.Settings.Get().TargetSize.X,
		Bottom: r.End * h,
	})
}

// ExpandDirtyRect unions r into the frame's dirty pixel rectangle.
func (p *RenderingPayload) ExpandDirtyRect(r Rect) {
	p.DirtyRect = p.DirtyRect.Union(r)
}

// Scroll applies a pure vertical scroll by delta rows: the grid reorders
// its cached rows, exactly the recycled rows are invalidated for
// re-shaping, the scroll offset accumulates for blitting backends, and
// the whole target becomes dirty because every pixel moves.
func (p *RenderingPayload) Scroll(delta int) {
	if delta == 0 {
		return
	}
	exposed := p.Grid.Scroll(delta)
	if !p.InvalidatedRows.Empty() {
		// Rows already marked stale moved with the content; track them at
		// their post-scroll screen positions, dropping what scrolled out.
		shifted := Range{
			Start: max(p.InvalidatedRows.Start-delta, 0),
			End:   min(p.InvalidatedRows.End-delta, p.Grid.Rows()),
		}
		if shifted.Empty() {
			shifted = Range{}
		}
		p.InvalidatedRows = shifted
	}
	p.InvalidatedRows = p.InvalidatedRows.Union(exposed)
	if exposed.Len() == p.Grid.Rows() {
		// Degenerate scroll; nothing survived, so there is nothing to blit.
		p.MarkAllAsDirty()
		p.InvalidatedRows = Range{Start: 0, End: p.Grid.Rows()}
		return
	}
	p.ScrollOffset += delta
	s := p.Settings.Get()
	p.DirtyRect = Rect{Left: 0, Top: 0, Right: s.TargetSize.X, Bottom: s.TargetSize.Y}
}

// MarkBackgroundDirty marks the background bitmap changed for callers
// that write through Data() directly.
func (p *RenderingPayload) MarkBackgroundDirty() {
	p.BackgroundBitmapGeneration++
}

// SetBackgroundCell writes a cell's background color and marks the
// bitmap changed.
func (p *RenderingPayload) SetBackgroundCell(x, y int, color uint32) {
	p.BackgroundBitmap.Set(y*p.BackgroundBitmapStride+x, color)
	p.BackgroundBitmapGeneration++
}

// FillBackground writes every cell's background color and marks the
// bitmap changed once.
func (p *RenderingPayload) FillBackground(color uint32) {
	data := p.BackgroundBitmap.Data()
	for i := range data {
		data[i] = color
	}
	p.BackgroundBitmapGeneration++
}

// HandleSettingsUpdate reconciles the payload with settings mutations
// made since the last call. Target or grid geometry changes rebuild the
// affected state and mark everything dirty; font changes additionally
// reset the row grid because every shaped row is stale. Unchanged
// generations cost one integer compare per group.
func (p *RenderingPayload) HandleSettingsUpdate() {
	s := p.Settings.Get()

	fontChanged := s.Font.Changed(p.fontGeneration)
	targetChanged := s.Target.Changed(p.targetGeneration)
	cellsChanged := s.CellCount != p.lastCellCount

	if fontChanged || cellsChanged {
		p.Grid.Reset(s.CellCount.Y, s.Font.Get().CellSize.Y)
		p.rebuildBackgroundBitmap(s.CellCount)
		p.lastCellCount = s.CellCount
	}
	if fontChanged || cellsChanged || targetChanged {
		p.MarkAllAsDirty()
	}

	p.targetGeneration = s.Target.Generation()
	p.fontGeneration = s.Font.Generation()
}
