// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package soft

import (
	"image"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/termatlas"
)

// Pixmap is an in-memory RGBA8 render target.
//
// Colors throughout termatlas are packed 0xAABBGGRR: red in the low
// byte, so a uint32 store produces R,G,B,A memory order on
// little-endian hosts. Pixmap writes bytes explicitly and is therefore
// endian-independent.
type Pixmap struct {
	width  int
	height int
	pix    []byte
}

// NewPixmap creates a zeroed pixmap. Negative dimensions are clamped to
// zero.
func NewPixmap(width, height int) *Pixmap {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Pixmap{
		width:  width,
		height: height,
		pix:    make([]byte, width*height*4),
	}
}

// Width returns the pixmap width in pixels.
func (p *Pixmap) Width() int { return p.width }

// Height returns the pixmap height in pixels.
func (p *Pixmap) Height() int { return p.height }

// Format returns the pixel format.
func (p *Pixmap) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

// Stride returns the byte distance between rows.
func (p *Pixmap) Stride() int { return p.width * 4 }

// Pixels returns the backing pixel data, valid until the next resize.
func (p *Pixmap) Pixels() []byte { return p.pix }

// Image wraps the pixmap in an *image.RGBA sharing the same storage.
func (p *Pixmap) Image() *image.RGBA {
	return &image.RGBA{
		Pix:    p.pix,
		Stride: p.Stride(),
		Rect:   image.Rect(0, 0, p.width, p.height),
	}
}

// clip intersects r with the pixmap bounds.
func (p *Pixmap) clip(r termatlas.Rect) termatlas.Rect {
	return r.Intersect(termatlas.Rect{Left: 0, Top: 0, Right: p.width, Bottom: p.height})
}

// FillRect fills r with an opaque color.
func (p *Pixmap) FillRect(r termatlas.Rect, color uint32) {
	r = p.clip(r)
	if r.Empty() {
		return
	}
	cr := byte(color)
	cg := byte(color >> 8)
	cb := byte(color >> 16)
	ca := byte(color >> 24)
	for y := r.Top; y < r.Bottom; y++ {
		row := p.pix[y*p.Stride():]
		for x := r.Left; x < r.Right; x++ {
			i := x * 4
			row[i+0] = cr
			row[i+1] = cg
			row[i+2] = cb
			row[i+3] = ca
		}
	}
}

// BlendRect blends color over r using the color's alpha.
func (p *Pixmap) BlendRect(r termatlas.Rect, color uint32) {
	a := uint32(color >> 24)
	if a == 0 {
		return
	}
	if a == 0xff {
		p.FillRect(r, color)
		return
	}
	r = p.clip(r)
	if r.Empty() {
		return
	}
	cr := uint32(byte(color))
	cg := uint32(byte(color >> 8))
	cb := uint32(byte(color >> 16))
	inv := 255 - a
	for y := r.Top; y < r.Bottom; y++ {
		row := p.pix[y*p.Stride():]
		for x := r.Left; x < r.Right; x++ {
			i := x * 4
			row[i+0] = byte((cr*a + uint32(row[i+0])*inv) / 255)
			row[i+1] = byte((cg*a + uint32(row[i+1])*inv) / 255)
			row[i+2] = byte((cb*a + uint32(row[i+2])*inv) / 255)
			row[i+3] = byte((a*255 + uint32(row[i+3])*inv) / 255)
		}
	}
}

// ScrollVert shifts the pixmap content up by dy pixels (down when dy is
// negative). Exposed rows keep their previous content; the caller is
// expected to repaint them.
func (p *Pixmap) ScrollVert(dy int) {
	if dy == 0 || p.height == 0 {
		return
	}
	n := dy
	if n < 0 {
		n = -n
	}
	if n >= p.height {
		return
	}
	stride := p.Stride()
	if dy > 0 {
		copy(p.pix, p.pix[dy*stride:])
	} else {
		copy(p.pix[n*stride:], p.pix[:(p.height-n)*stride])
	}
}
