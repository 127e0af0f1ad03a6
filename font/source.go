package font

import (
	"bytes"
	"errors"
	"fmt"
	"sync/atomic"

	gtfont "github.com/go-text/typesetting/font"
)

// Sentinel errors for the font package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("font: empty font data")
)

// nextSourceID hands out process-unique source identities for cache keys.
var nextSourceID atomic.Uint64

// Source represents a parsed font file (TTF or OTF).
// One Source backs any number of Resources and faces at different sizes.
//
// The parsed *gtfont.Font is read-only and safe for concurrent use;
// per-shaping-call gtfont.Face instances are created via NewFace because
// Face is not safe for concurrent use.
type Source struct {
	data []byte
	font *gtfont.Font
	name string
	id   uint64
}

// SourceOption configures a Source during creation.
type SourceOption func(*sourceConfig)

type sourceConfig struct {
	name string
}

// WithName sets a human-readable name for the source, used in logs and
// warnings. Defaults to empty.
func WithName(name string) SourceOption {
	return func(c *sourceConfig) {
		c.name = name
	}
}

// NewSource parses font data into a Source. The data slice is copied
// internally and can be reused after this call.
func NewSource(data []byte, opts ...SourceOption) (*Source, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}

	var cfg sourceConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	buf := make([]byte, len(data))
	copy(buf, data)

	face, err := gtfont.ParseTTF(bytes.NewReader(buf))
	if err != nil {
		return nil, fmt.Errorf("font: parse %q: %w", cfg.name, err)
	}

	return &Source{
		data: buf,
		font: face.Font,
		name: cfg.name,
		id:   nextSourceID.Add(1),
	}, nil
}

// Font returns the parsed font. It is safe for concurrent use.
func (s *Source) Font() *gtfont.Font {
	return s.font
}

// NewFace creates a fresh face for a single shaping pass. Faces are
// cheap to create and must not be shared between goroutines.
func (s *Source) NewFace() *gtfont.Face {
	return gtfont.NewFace(s.font)
}

// ID returns the process-unique identity of this source.
func (s *Source) ID() uint64 {
	return s.id
}

// Name returns the name given at creation, if any.
func (s *Source) Name() string {
	return s.name
}
