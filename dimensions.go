package catpicture

import (
	"fmt"
)

// DefaultWidth is the output width in character cells used when
// neither dimension is specified.
const DefaultWidth = 80

// ResolveDimensions computes the output size in character cells,
// preserving the source aspect ratio when only one dimension is given.
// A width or height of 0 means "not specified". When both are given
// they are returned as-is, which can distort the image. Derived
// dimensions truncate toward zero and clamp to a minimum of 1 so that
// golden outputs stay reproducible.
func ResolveDimensions(width, height, srcWidth, srcHeight int) (int, int, error) {
	if srcWidth <= 0 || srcHeight <= 0 {
		return 0, 0, fmt.Errorf("%w: source dimensions %dx%d",
			ErrInvalidImage, srcWidth, srcHeight)
	}

	aspectRatio := float64(srcWidth) / float64(srcHeight)

	switch {
	case width > 0 && height > 0:
		return width, height, nil
	case width > 0:
		return width, atLeastOne(int(float64(width) / aspectRatio)), nil
	case height > 0:
		return atLeastOne(int(float64(height) * aspectRatio)), height, nil
	default:
		return DefaultWidth,
			atLeastOne(int(float64(DefaultWidth) / aspectRatio)), nil
	}
}

func atLeastOne(n int) int {
	if n < 1 {
		return 1
	}
	return n
}
