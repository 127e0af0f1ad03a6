// Package soft is the CPU rendering backend: it consumes a
// RenderingPayload and composites the frame into an in-memory RGBA
// pixmap, honoring the payload's dirty rectangle and pending scroll so
// unchanged pixels are never touched.
//
// The backend paints cell backgrounds, the selection tint, soft-font
// (DRCS) glyph patterns, line decorations, and the cursor on its own.
// Proper-font glyph ink is delegated to a GlyphPainter supplied by the
// embedding application; without one, text cells show background only.
//
// Importing the package registers it under the name "soft":
//
//	import _ "github.com/gogpu/termatlas/backend/soft"
package soft
