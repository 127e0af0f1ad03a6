// Package font provides the font-face handles under which shaped glyph
// runs and rasterized glyphs are cached.
//
// A [Handle] is a small, copyable value with three states: no face at
// all, the synthesized soft font (DECDLD/DRCS bitmap glyphs that have no
// backing font resource), and a proper face backed by a ref-counted
// [Resource]. Collapsing the three states into one field keeps glyph
// cache keys small and comparable; [Handle.Key] yields a stable value
// that treats the soft font as a distinct face.
package font
