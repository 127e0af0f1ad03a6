// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package font

import "sync/atomic"

// Kind identifies the state of a Handle.
type Kind uint8

const (
	// KindNone means the handle refers to no face at all.
	KindNone Kind = iota

	// KindSoftFont means the handle stands for the synthesized soft font.
	// There is no backing resource and nothing to ref-count.
	KindSoftFont

	// KindProper means the handle holds a ref-counted *Resource.
	KindProper
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindSoftFont:
		return "softfont"
	case KindProper:
		return "proper"
	default:
		return "unknown"
	}
}

// Resource is a ref-counted handle around an external shaping resource.
//
// The count exists so that resources with real teardown work (memory
// mapped font files, backend glyph atlas entries) release deterministically
// when the last Handle referencing them goes away, instead of at an
// arbitrary GC point. Resources without a release hook still count, which
// keeps the Handle contract uniform and testable.
type Resource struct {
	source  *Source
	refs    atomic.Int32
	release func()
}

// NewResource creates a Resource with an initial reference count of 1,
// owned by the caller. release, if non-nil, runs exactly once when the
// count drops to zero.
func NewResource(source *Source, release func()) *Resource {
	r := &Resource{source: source, release: release}
	r.refs.Store(1)
	return r
}

// Source returns the font source backing this resource.
func (r *Resource) Source() *Source {
	return r.source
}

// Refs returns the current reference count.
func (r *Resource) Refs() int32 {
	return r.refs.Load()
}

// Acquire increments the reference count.
func (r *Resource) Acquire() {
	r.refs.Add(1)
}

// Release decrements the reference count and runs the release hook when
// it reaches zero. Releasing below zero is a contract violation.
func (r *Resource) Release() {
	if r.refs.Add(-1) == 0 && r.release != nil {
		r.release()
	}
}

// Key is the fixed-size comparable identity of a Handle, suitable as a
// glyph-cache map key (together with font size and, for the soft font,
// the soft-font cell geometry). None and the soft font map to distinct
// reserved values that never collide with a proper face.
type Key struct {
	Kind Kind
	ID   uint64
}

// Handle refers to a font face in one of three states: none, soft font,
// or a proper ref-counted face resource.
//
// The zero value is the none handle. Handles are small values; copy with
// [Handle.Clone] when the copy should own a reference of its own, and
// pair every owned reference with a [Handle.Release]. Plain assignment is
// a move: the count is unchanged and only one of the two values may be
// released.
type Handle struct {
	kind Kind
	res  *Resource
}

// SoftFontHandle returns the handle standing for the synthesized soft
// font. It carries no resource; Clone and Release on it are no-ops as far
// as ref-counting is concerned.
func SoftFontHandle() Handle {
	return Handle{kind: KindSoftFont}
}

// NewHandle returns a proper handle referencing res, incrementing its
// count. A nil res yields the none handle.
func NewHandle(res *Resource) Handle {
	if res == nil {
		return Handle{}
	}
	res.Acquire()
	return Handle{kind: KindProper, res: res}
}

// Kind returns the handle's state.
func (h Handle) Kind() Kind {
	return h.kind
}

// IsProperFont reports whether the handle is backed by a real face
// resource. It is false for both the none handle and the soft font.
func (h Handle) IsProperFont() bool {
	return h.kind == KindProper
}

// Resource returns the backing resource, or nil for none/soft-font
// handles.
func (h Handle) Resource() *Resource {
	return h.res
}

// Clone returns a copy owning its own reference. Soft-font and none
// handles are copied without touching any count.
func (h Handle) Clone() Handle {
	if h.kind == KindProper {
		h.res.Acquire()
	}
	return h
}

// Release drops the handle's reference, if it owns one, and resets the
// handle to the none state. Releasing a none or soft-font handle is a
// no-op.
func (h *Handle) Release() {
	if h.kind == KindProper {
		h.res.Release()
	}
	*h = Handle{}
}

// Detach transfers ownership of the reference to the caller without
// changing the count; the caller becomes responsible for the eventual
// Resource.Release. The handle is reset to the none state. Detaching a
// none or soft-font handle returns nil.
func (h *Handle) Detach() *Resource {
	res := h.res
	if h.kind != KindProper {
		res = nil
	}
	*h = Handle{}
	return res
}

// Attach releases any currently held reference and adopts res without
// incrementing its count; the handle takes over the caller's reference.
// A nil res resets the handle to the none state.
func (h *Handle) Attach(res *Resource) {
	if h.kind == KindProper {
		h.res.Release()
	}
	if res == nil {
		*h = Handle{}
		return
	}
	*h = Handle{kind: KindProper, res: res}
}

// Key returns the handle's stable cache identity.
func (h Handle) Key() Key {
	k := Key{Kind: h.kind}
	if h.kind == KindProper && h.res != nil && h.res.source != nil {
		k.ID = h.res.source.ID()
	}
	return k
}
