// Package backend defines the pluggable rendering backend abstraction
// for termatlas.
//
// A backend consumes a RenderingPayload each frame: it reads the shaped
// rows named by InvalidatedRows, the background color bitmap, and the
// cursor and selection state, and draws them into its target. Backends
// track the payload's settings generations between frames to decide
// which derived state (glyph atlases, uploaded buffers) is stale.
//
// # Backend Registration
//
// Backends are registered via init() functions and selected at runtime.
// The soft backend registers itself on import:
//
//	import _ "github.com/gogpu/termatlas/backend/soft"
//
// # Backend Selection
//
// Use Default() to get the best available backend, or Get() to request
// a specific backend by name:
//
//	b := backend.Default()
//
//	b := backend.Get(backend.BackendSoft)
//
// # Available Backends
//
//   - "soft": CPU backend rendering into an in-memory pixmap
//   - "gpu": reserved for a GPU-accelerated backend
package backend
