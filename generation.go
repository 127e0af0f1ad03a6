// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package termatlas

// Generation is a monotonically increasing version counter used for cheap
// change detection: consumers remember the last generation they observed
// and compare integers instead of deep-comparing values.
//
// The zero value means "never observed". Live trackers start at 1, so the
// first comparison against a zero last-seen generation always reports a
// change, regardless of whether the wrapped value happens to equal its
// default.
type Generation uint32

// Generational pairs a value with a Generation that is bumped on every
// mutating access. All mutation must go through [Generational.Write];
// reading through [Generational.Get] never changes the generation.
//
// Generational is not a synchronization primitive. It assumes serialized
// access by a single logical owner.
type Generational[T any] struct {
	value T
	gen   Generation
}

// NewGenerational wraps value at generation 1, the "dirty" starting
// generation that every consumer observes as changed.
func NewGenerational[T any](value T) Generational[T] {
	return Generational[T]{value: value, gen: 1}
}

// Get returns the wrapped value for reading. Callers must not mutate
// through the returned pointer; use Write for that.
func (g *Generational[T]) Get() *T {
	return &g.value
}

// Write bumps the generation and returns the wrapped value for mutation.
func (g *Generational[T]) Write() *T {
	g.gen++
	return &g.value
}

// Generation returns the current generation without mutating it.
func (g *Generational[T]) Generation() Generation {
	return g.gen
}

// Changed reports whether the value has been written since last was
// observed. A zero last always reports a change.
func (g *Generational[T]) Changed(last Generation) bool {
	return g.gen != last
}
