// Package shape is the text-shaping collaborator of the termatlas frame
// state: given cleared rows and attribute runs, it populates glyph
// indices, advances, sub-pixel offsets, colors, and font mappings.
//
// Real faces are shaped through go-text/typesetting's HarfBuzz
// implementation with bidi run segmentation; soft-font runs synthesize
// glyph indices directly from code points. Shaped runs are cached across
// frames in a sharded LRU keyed by text, face, size, and attributes, so
// a row whose content reappears (scrollback, redraw) costs a map lookup
// instead of a shaping pass.
package shape
