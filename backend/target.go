package backend

import (
	"github.com/gogpu/gputypes"
)

// Target is the pixel destination a CPU backend renders into. GPU
// backends present to the surface named by TargetSettings instead and
// do not use this interface.
type Target interface {
	// Width returns the target width in pixels.
	Width() int

	// Height returns the target height in pixels.
	Height() int

	// Format returns the texture format of the pixel data.
	Format() gputypes.TextureFormat

	// Pixels returns the backing pixel data. The slice aliases the
	// target's storage; it is valid until the next resize.
	Pixels() []byte

	// Stride returns the byte distance between rows.
	Stride() int
}
