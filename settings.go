// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package termatlas

import "github.com/gogpu/termatlas/font"

// AntialiasingMode selects the glyph antialiasing strategy a backend
// should use.
type AntialiasingMode uint8

const (
	// AntialiasGrayscale uses plain grayscale coverage.
	AntialiasGrayscale AntialiasingMode = iota

	// AntialiasClearType uses subpixel (LCD) coverage.
	AntialiasClearType

	// AntialiasAliased disables antialiasing entirely.
	AntialiasAliased
)

// DefaultAntialiasingMode is the mode applied when settings are built
// from defaults.
const DefaultAntialiasingMode = AntialiasClearType

// CursorType selects the cursor shape.
type CursorType uint8

const (
	// CursorLegacy is a partial-height block, sized by HeightPercentage.
	CursorLegacy CursorType = iota

	// CursorVerticalBar is a thin bar at the left cell edge.
	CursorVerticalBar

	// CursorUnderscore is a line at the cell baseline.
	CursorUnderscore

	// CursorEmptyBox is an outlined cell.
	CursorEmptyBox

	// CursorFullBox is a filled cell.
	CursorFullBox

	// CursorDoubleUnderscore is two stacked underscore lines.
	CursorDoubleUnderscore
)

// TargetSettings describes the output surface. Changing any of these
// forces backend (swap chain) recreation.
type TargetSettings struct {
	// SurfaceHandle is an opaque host window/surface identifier, passed
	// through to the presentation layer. Zero means headless.
	SurfaceHandle uintptr

	// EnableTransparentBackground requests an alpha-capable surface.
	EnableTransparentBackground bool

	// UseSoftwareRendering forces the software backend even when a GPU
	// device is present.
	UseSoftwareRendering bool
}

// FontFeature is an OpenType feature setting applied during shaping.
type FontFeature struct {
	Tag   string
	Value uint32
}

// FontAxisValue is a variable-font axis setting applied during shaping.
type FontAxisValue struct {
	Tag   string
	Value float32
}

// FontSettings describes everything that influences shaping and glyph
// rasterization. Changing this group invalidates every shaped row.
type FontSettings struct {
	// Faces lists the font sources in fallback order; the first entry is
	// the primary face.
	Faces []*font.Source

	// Name is the configured font family name, for diagnostics.
	Name string

	Features   []FontFeature
	AxisValues []FontAxisValue

	// Size is the font em size in DIPs.
	Size float32

	// AdvanceScale scales shaped advances onto the cell grid.
	AdvanceScale float32

	// CellSize is the size of one terminal cell in pixels.
	CellSize Size

	Weight    int
	Baseline  int
	Descender int

	UnderlinePos       int
	UnderlineWidth     int
	StrikethroughPos   int
	StrikethroughWidth int
	// DoubleUnderlinePos holds the two line offsets of a double underline.
	DoubleUnderlinePos [2]int
	ThinLineWidth      int

	DPI              int
	AntialiasingMode AntialiasingMode

	// SoftFontPattern holds the DRCS glyph bitmaps, one row of bits per
	// uint16, glyphs concatenated. Empty when no soft font is loaded.
	SoftFontPattern []uint16

	// SoftFontCellSize is the design size of one soft-font glyph.
	SoftFontCellSize Size

	// SoftFontCenteringHint shifts soft-font glyphs horizontally when the
	// design cell is narrower than the target cell.
	SoftFontCenteringHint int
}

// CursorSettings describes cursor appearance. It is comparable, so
// consumers may compare snapshots directly in addition to watching the
// group's generation.
type CursorSettings struct {
	Color            uint32
	Type             CursorType
	HeightPercentage int
}

// MiscSettings holds appearance settings that affect compositing but not
// shaping.
type MiscSettings struct {
	BackgroundColor        uint32
	SelectionColor         uint32
	CustomPixelShaderPath  string
	UseRetroTerminalEffect bool
}

// Settings is the full, generation-tracked configuration of the frame
// state. Each group carries its own independent generation so that, for
// example, a cursor color change does not force font re-shaping.
//
// TargetSize and CellCount are plain fields: they are two ints each and
// cheap to compare directly every frame.
type Settings struct {
	Target Generational[TargetSettings]
	Font   Generational[FontSettings]
	Cursor Generational[CursorSettings]
	Misc   Generational[MiscSettings]

	// TargetSize is the output surface size in pixels.
	TargetSize Size

	// CellCount is the terminal grid size in cells (columns, rows).
	CellCount Size
}

// GenerationalSettings is the settings tree wrapped in its own top-level
// generation.
type GenerationalSettings = Generational[Settings]

// DirtySettings returns a settings tree with every group at the dirty
// starting generation, so the very first frame appears changed to every
// consumer regardless of default-value coincidences.
func DirtySettings() GenerationalSettings {
	return NewGenerational(Settings{
		Target: NewGenerational(TargetSettings{}),
		Font: NewGenerational(FontSettings{
			AdvanceScale:     1,
			DPI:              96,
			AntialiasingMode: DefaultAntialiasingMode,
		}),
		Cursor: NewGenerational(CursorSettings{
			Color:            0xffffffff,
			HeightPercentage: 20,
		}),
		Misc: NewGenerational(MiscSettings{
			SelectionColor: 0x7fffffff,
		}),
	})
}
