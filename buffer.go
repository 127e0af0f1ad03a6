// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package termatlas

import (
	"fmt"
	"unsafe"
)

// Buffer is a fixed-size, exclusively owned array of T.
//
// Buffer exists instead of a plain slice to convey that its contents are
// not resizable: there is no append and no grow path. Callers that need a
// different size construct a new Buffer and swap it in, which makes every
// reallocation an explicit, visible event rather than an amortized hidden
// one. Viewport-sized arrays (one entry per visible row, one color per
// cell) never grow incrementally, so a growable container would only
// invite misuse.
//
// Ownership is exclusive. Buffers are moved with [Buffer.Take], which
// leaves the source empty; sharing the backing storage between two live
// Buffers is not supported.
type Buffer[T any] struct {
	data []T
	// raw retains the over-aligned backing block for buffers created by
	// NewAlignedBuffer, keeping it reachable for the GC.
	raw []byte
}

// NewBuffer allocates a Buffer of size zero-valued elements.
// A size of zero (or less) yields a valid empty buffer holding no storage.
func NewBuffer[T any](size int) Buffer[T] {
	if size <= 0 {
		return Buffer[T]{}
	}
	return Buffer[T]{data: make([]T, size)}
}

// NewBufferOf allocates a Buffer holding a copy of src.
// An empty src yields a valid empty buffer holding no storage.
func NewBufferOf[T any](src []T) Buffer[T] {
	if len(src) == 0 {
		return Buffer[T]{}
	}
	b := Buffer[T]{data: make([]T, len(src))}
	copy(b.data, src)
	return b
}

// NewAlignedBuffer allocates a Buffer of size elements whose first element
// sits on an alignment-byte boundary. Backends that upload buffer contents
// directly to the GPU use this to satisfy staging-copy alignment rules
// (the background bitmap uses 32-byte alignment).
//
// alignment must be a power of two; anything else is a programmer error
// and panics. T must not contain pointers: the aligned storage is carved
// out of a raw byte block that the GC does not scan as T.
func NewAlignedBuffer[T any](size, alignment int) Buffer[T] {
	if alignment <= 0 || alignment&(alignment-1) != 0 {
		panic(fmt.Sprintf("termatlas: buffer alignment %d is not a power of two", alignment))
	}
	if size <= 0 {
		return Buffer[T]{}
	}

	var zero T
	elem := int(unsafe.Sizeof(zero))
	raw := make([]byte, size*elem+alignment-1)

	addr := uintptr(unsafe.Pointer(unsafe.SliceData(raw)))
	off := int((-addr) & uintptr(alignment-1))
	data := unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(raw[off:]))), size)

	return Buffer[T]{data: data, raw: raw}
}

// Len returns the number of elements the buffer holds.
func (b *Buffer[T]) Len() int {
	return len(b.data)
}

// IsEmpty reports whether the buffer holds no storage.
// Len() == 0 if and only if IsEmpty().
func (b *Buffer[T]) IsEmpty() bool {
	return b.data == nil
}

// At returns a pointer to element i. Out-of-range indices panic via the
// native bounds check; that is a contract violation, not a recoverable
// condition.
func (b *Buffer[T]) At(i int) *T {
	return &b.data[i]
}

// Set stores v at index i.
func (b *Buffer[T]) Set(i int, v T) {
	b.data[i] = v
}

// Data returns the underlying storage as a slice. The slice aliases the
// buffer; it must not be retained past the buffer's replacement.
func (b *Buffer[T]) Data() []T {
	return b.data
}

// Take moves the buffer's contents into the returned Buffer and leaves
// the receiver empty. This is the only way ownership transfers.
func (b *Buffer[T]) Take() Buffer[T] {
	moved := *b
	*b = Buffer[T]{}
	return moved
}
