package backend

import (
	"errors"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/termatlas"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not
	// available on this platform.
	ErrBackendNotAvailable = errors.New("backend: not available")

	// ErrNotInitialized is returned when Render is called before the
	// backend has a target.
	ErrNotInitialized = errors.New("backend: not initialized")

	// ErrSurfaceLost is returned when the presentation surface has been
	// invalidated and the owner must recreate the swap chain.
	ErrSurfaceLost = errors.New("backend: surface lost")
)

// DeviceHandle identifies the GPU device a backend renders with. The
// host application owns device creation; termatlas only borrows it
// through the payload.
type DeviceHandle = gpucontext.DeviceProvider

// Backend consumes RenderingPayloads and produces frames.
//
// A backend is driven by a single render thread. Between calls it may
// retain derived state (glyph atlases, uploaded buffers) keyed by the
// payload's settings generations; it must detect generation changes
// itself, the payload does not call back into the backend.
type Backend interface {
	// Render draws one frame from the payload's current state. The
	// payload's dirty region, invalidated rows, and scroll offset are
	// valid for exactly this call.
	Render(payload *termatlas.RenderingPayload) error

	// RequiresContinuousRedraw reports whether the backend animates on
	// its own (cursor blink shaders, debug overlays) and needs frames
	// even without content changes.
	RequiresContinuousRedraw() bool

	// WaitUntilCanRender blocks until the backend can accept another
	// frame. Backends with no pacing constraints return immediately.
	WaitUntilCanRender()
}
