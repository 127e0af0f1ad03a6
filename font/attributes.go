package font

// Attributes is the set of text attributes that influence face selection
// and therefore participate in glyph-cache keys.
type Attributes uint8

const (
	// AttrBold selects the bold variant of a face.
	AttrBold Attributes = 1 << iota

	// AttrItalic selects the italic variant of a face.
	AttrItalic
)

// Has reports whether all attributes in a are set in the receiver.
func (a Attributes) Has(other Attributes) bool {
	return a&other == other
}

// With returns the receiver with the given attributes added.
func (a Attributes) With(other Attributes) Attributes {
	return a | other
}

// Without returns the receiver with the given attributes removed.
func (a Attributes) Without(other Attributes) Attributes {
	return a &^ other
}
