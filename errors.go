package catpicture

import "errors"

// Error kinds reported by the rendering engine. Callers discriminate
// with errors.Is; the CLI maps any of them to a non-zero exit.
var (
	// ErrInvalidImage indicates a zero-area or otherwise unusable
	// source image.
	ErrInvalidImage = errors.New("invalid image")

	// ErrInvalidConfiguration indicates a bad render configuration:
	// a crop region outside the source bounds, zero target dimensions,
	// or an unknown draw-mode token.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrMalformedGlyphSet indicates a reference glyph strip whose
	// dimensions do not divide evenly into glyph cells.
	ErrMalformedGlyphSet = errors.New("malformed glyph set")

	// ErrImageDecode wraps failures from the image decoding layer.
	ErrImageDecode = errors.New("image decode error")
)
