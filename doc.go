// Package termatlas provides the per-frame state management core of a
// text-mode (terminal) rendering engine.
//
// # Overview
//
// termatlas sits between a terminal's text model and a rendering backend.
// Its job is to decide, cheaply and incrementally, what changed since the
// previous frame so that expensive text shaping and pixel work only runs
// for content that actually changed:
//
//   - Settings groups are wrapped in [Generational] counters so consumers
//     detect configuration changes with a single integer compare instead
//     of deep comparison.
//   - Shaped glyph rows ([ShapedRow]) are cached across frames in a
//     [RowGrid]; a pure vertical scroll reorders cached rows in O(scrolled
//     rows) instead of re-shaping every visible row.
//   - [RenderingPayload] aggregates the settings, the row grid, the
//     background color bitmap, and the frame's dirty state, and is handed
//     to a pluggable backend once per frame.
//
// # Collaborators
//
// Text shaping lives in the shape/ subpackage (built on
// go-text/typesetting); rendering backends live under backend/. Both
// consume the types defined here. The core itself never rasterizes a
// glyph and never talks to a GPU; it only tracks state.
//
// # Concurrency
//
// One rendering thread owns a RenderingPayload for the duration of a
// frame. Nothing in this package locks; generation counters are plain
// integers, not synchronization primitives. Backends receive the payload
// scoped to a single Render call and must not retain it past that call.
package termatlas

// Version information
const (
	// Version is the current version of the library
	Version = "0.2.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 2

	// VersionPatch is the patch version
	VersionPatch = 0
)
