package catpicture

import (
	"fmt"
	"math"

	"github.com/JosephCatrambone/catpicture/imageutil"
)

// DrawMode is the strategy governing which character is chosen for
// each output cell. It is a closed set; new modes extend the constant
// list and the selection switch.
type DrawMode int

const (
	// ModeBlock draws a space and carries the cell color in the
	// background.
	ModeBlock DrawMode = iota

	// ModeChar draws a single configured character for every cell,
	// color carried in the foreground.
	ModeChar

	// ModeLine draws a line glyph chosen from the luma gradient
	// direction of the source patch under the cell.
	ModeLine

	// ModeArt draws the reference glyph whose bitmap most closely
	// matches the source patch under the cell.
	ModeArt
)

// ParseDrawMode parses a draw-mode token from the command line.
func ParseDrawMode(token string) (DrawMode, error) {
	switch token {
	case "block":
		return ModeBlock, nil
	case "char":
		return ModeChar, nil
	case "line":
		return ModeLine, nil
	case "art":
		return ModeArt, nil
	default:
		return ModeBlock, fmt.Errorf("%w: unknown draw mode %q",
			ErrInvalidConfiguration, token)
	}
}

func (m DrawMode) String() string {
	switch m {
	case ModeBlock:
		return "block"
	case ModeChar:
		return "char"
	case ModeLine:
		return "line"
	case ModeArt:
		return "art"
	default:
		return fmt.Sprintf("DrawMode(%d)", int(m))
	}
}

const (
	// linePatchSize is the fixed sample patch edge for line mode,
	// independent of the source-to-output ratio.
	linePatchSize = 5

	// lineEdgeThreshold is the gradient sum below which a patch
	// counts as flat, on the 0-255 luma scale.
	lineEdgeThreshold = 10.0
)

// cellPatchSize derives the source patch dimensions that map to one
// output cell. Integer truncation means edge cells may sample a
// slightly different area than interior cells; the same derivation is
// applied to both line and art mode so the two stay consistent.
func cellPatchSize(srcW, srcH, outW, outH int) (int, int) {
	return atLeastOne(srcW / outW), atLeastOne(srcH / outH)
}

// lineChar selects a line glyph for the cell at (cellX, cellY) from
// the direction of the luma gradient in the source patch under it:
// '.' for flat dark regions, '|' where horizontal change dominates,
// '-' where vertical change dominates, '+' for strong equal gradients,
// '#' otherwise. A patch that would extend past the source edges
// yields ' ' without sampling.
func lineChar(src *imageutil.RGBAImage, cellX, cellY, outW, outH int) rune {
	srcW, srcH := src.Width(), src.Height()
	pixelW, pixelH := cellPatchSize(srcW, srcH, outW, outH)

	originX, originY := cellX*pixelW, cellY*pixelH
	if originX+linePatchSize > srcW || originY+linePatchSize > srcH {
		return ' '
	}

	var lum [linePatchSize][linePatchSize]float64
	for y := 0; y < linePatchSize; y++ {
		for x := 0; x < linePatchSize; x++ {
			lum[y][x] = imageutil.Luma(src.GetRGB(originX+x, originY+y))
		}
	}

	var xGrad, yGrad, total float64
	for y := 0; y < linePatchSize; y++ {
		for x := 0; x < linePatchSize; x++ {
			total += lum[y][x]
			if x+1 < linePatchSize {
				xGrad += math.Abs(lum[y][x+1] - lum[y][x])
			}
			if y+1 < linePatchSize {
				yGrad += math.Abs(lum[y+1][x] - lum[y][x])
			}
		}
	}
	illumination := total / (linePatchSize * linePatchSize * 255)

	switch {
	case xGrad < lineEdgeThreshold && yGrad < lineEdgeThreshold &&
		illumination < 0.5:
		return '.'
	case xGrad > yGrad:
		return '|'
	case xGrad < yGrad:
		return '-'
	case xGrad >= lineEdgeThreshold && yGrad >= lineEdgeThreshold:
		// Gradients are equal past this point; strong on both axes
		// reads as diagonal or cross texture.
		return '+'
	default:
		return '#'
	}
}

// artChar selects the reference glyph whose luma bitmap is nearest to
// the source patch under the cell at (cellX, cellY). The patch is
// resized to the glyph cell size with a smooth filter and compared to
// every glyph by summed absolute luma difference; the global minimum
// wins, with ties keeping the lowest code point. The scan is a pure
// fold over candidates: a per-glyph row scan aborts early once its
// running distance exceeds the best seen, which prunes work without
// changing the selection.
func artChar(src *imageutil.RGBAImage, cellX, cellY, outW, outH int,
	glyphs *GlyphSet, cache *matchCache) rune {
	srcW, srcH := src.Width(), src.Height()
	pixelW, pixelH := cellPatchSize(srcW, srcH, outW, outH)

	originX, originY := cellX*pixelW, cellY*pixelH
	if originX >= srcW || originY >= srcH {
		return ' '
	}
	right := originX + pixelW
	if right > srcW {
		right = srcW
	}
	bottom := originY + pixelH
	if bottom > srcH {
		bottom = srcH
	}

	patch := imageutil.Crop(src, originX, originY, right, bottom)
	resized := imageutil.Resize(patch,
		glyphs.GlyphWidth(), glyphs.GlyphHeight(), imageutil.InterpolationArea)
	target := imageutil.ToGrayscale(resized)

	var key string
	if cache != nil {
		key = patchKey(target)
		if ch, ok := cache.get(key); ok {
			return ch
		}
	}

	ch := bestGlyphMatch(target, glyphs)
	if cache != nil {
		cache.add(key, ch)
	}
	return ch
}

// bestGlyphMatch returns the character of the glyph with the globally
// minimum summed absolute luma distance to the target bitmap, or ' '
// if no glyph improves on the distance sentinel.
func bestGlyphMatch(target *imageutil.GrayImage, glyphs *GlyphSet) rune {
	glyphW, glyphH := glyphs.GlyphWidth(), glyphs.GlyphHeight()
	bestIndex := -1
	bestDistance := glyphW*glyphH*255 + 1 // Max possible distance.

	for i := 0; i < glyphs.Len(); i++ {
		glyph := glyphs.Glyph(i)
		distance := 0
		pruned := false
		for y := 0; y < glyphH; y++ {
			for x := 0; x < glyphW; x++ {
				d := int(target.GetGray(x, y)) - int(glyph.GetGray(x, y))
				if d < 0 {
					d = -d
				}
				distance += d
			}
			// Prune only on row boundaries to keep the branch out of
			// the inner loop.
			if distance > bestDistance {
				pruned = true
				break
			}
		}
		if !pruned && distance < bestDistance {
			bestDistance = distance
			bestIndex = i
		}
	}

	if bestIndex < 0 {
		return ' '
	}
	return glyphs.Rune(bestIndex)
}
