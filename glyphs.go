package catpicture

import (
	"fmt"
	"image"
	"os"
	"strings"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/JosephCatrambone/catpicture/imageutil"
)

const (
	// GlyphFirst is the first reference code point.
	GlyphFirst = ' '

	// GlyphCount is the number of reference glyphs: one per printable
	// ASCII code point from ' ' (0x20) up to but not including '~'.
	GlyphCount = '~' - ' '

	// Default cell size when rasterizing a glyph set from a TTF font.
	defaultGlyphWidth  = 8
	defaultGlyphHeight = 16
)

// GlyphSet is an ordered sequence of fixed-size luma bitmaps, one per
// reference code point, used by art mode for nearest-neighbor
// matching. A GlyphSet is immutable after construction and safe to
// share read-only across renders.
type GlyphSet struct {
	glyphs []*imageutil.GrayImage
	width  int
	height int
}

// Len returns the number of glyphs in the set.
func (g *GlyphSet) Len() int {
	return len(g.glyphs)
}

// GlyphWidth returns the pixel width of every glyph bitmap.
func (g *GlyphSet) GlyphWidth() int {
	return g.width
}

// GlyphHeight returns the pixel height of every glyph bitmap.
func (g *GlyphSet) GlyphHeight() int {
	return g.height
}

// Glyph returns the luma bitmap at the given index.
func (g *GlyphSet) Glyph(i int) *imageutil.GrayImage {
	return g.glyphs[i]
}

// Rune returns the code point represented by the glyph at the given
// index.
func (g *GlyphSet) Rune(i int) rune {
	return rune(GlyphFirst + i)
}

// LoadGlyphStrip builds a GlyphSet from a single reference strip
// image containing GlyphCount glyph cells laid out left to right in
// equal-width columns spanning the full strip height, in code-point
// order starting at ' '. A strip whose width does not divide evenly
// into GlyphCount columns fails with ErrMalformedGlyphSet rather than
// silently truncating the trailing pixels.
func LoadGlyphStrip(strip *imageutil.RGBAImage) (*GlyphSet, error) {
	stripWidth, stripHeight := strip.Width(), strip.Height()
	if stripWidth == 0 || stripHeight == 0 {
		return nil, fmt.Errorf("%w: zero-area strip", ErrMalformedGlyphSet)
	}
	if stripWidth%GlyphCount != 0 {
		return nil, fmt.Errorf(
			"%w: strip width %d is not divisible by %d glyphs",
			ErrMalformedGlyphSet, stripWidth, GlyphCount)
	}

	glyphWidth := stripWidth / GlyphCount
	gray := imageutil.ToGrayscale(strip)

	set := &GlyphSet{
		glyphs: make([]*imageutil.GrayImage, 0, GlyphCount),
		width:  glyphWidth,
		height: stripHeight,
	}
	for i := 0; i < GlyphCount; i++ {
		glyph := imageutil.NewGrayImage(glyphWidth, stripHeight)
		for y := 0; y < stripHeight; y++ {
			for x := 0; x < glyphWidth; x++ {
				glyph.SetGrayValue(x, y, gray.GetGray(i*glyphWidth+x, y))
			}
		}
		set.glyphs = append(set.glyphs, glyph)
	}
	return set, nil
}

// RenderGlyphSet rasterizes the reference code points from TTF font
// data into a GlyphSet with the given cell size. The glyphs keep
// their anti-aliased luma values since matching compares absolute
// luma differences, not bits.
func RenderGlyphSet(ttf []byte, width, height int) (*GlyphSet, error) {
	ttfFont, err := freetype.ParseFont(ttf)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}

	set := &GlyphSet{
		glyphs: make([]*imageutil.GrayImage, 0, GlyphCount),
		width:  width,
		height: height,
	}
	for i := 0; i < GlyphCount; i++ {
		glyph, err := renderGlyph(ttfFont, rune(GlyphFirst+i), width, height)
		if err != nil {
			return nil, err
		}
		set.glyphs = append(set.glyphs, glyph)
	}
	return set, nil
}

// renderGlyph rasterizes a single code point into a luma bitmap of
// the given cell size.
func renderGlyph(ttfFont *truetype.Font, r rune, width, height int) (*imageutil.GrayImage, error) {
	glyph := imageutil.NewGrayImage(width, height)

	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(ttfFont)
	ctx.SetFontSize(float64(height))
	ctx.SetClip(glyph.Bounds())
	ctx.SetDst(glyph.Gray)
	ctx.SetSrc(image.White)
	ctx.SetHinting(font.HintingFull)

	// Position the baseline from the font metrics so descenders are
	// not clipped.
	face := truetype.NewFace(ttfFont, &truetype.Options{
		Size:    float64(height),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	metrics := face.Metrics()
	if err := face.Close(); err != nil {
		return nil, err
	}
	ascent := int(metrics.Ascent >> 6)
	descent := int(metrics.Descent >> 6)
	baselineY := (height + ascent - descent) / 2

	if _, err := ctx.DrawString(string(r), freetype.Pt(0, baselineY)); err != nil {
		return nil, fmt.Errorf("failed to render glyph %q: %w", r, err)
	}
	return glyph, nil
}

// DefaultGlyphSet renders the embedded Go Mono face at the default
// cell size. Used when no reference strip or font is configured.
func DefaultGlyphSet() (*GlyphSet, error) {
	return RenderGlyphSet(gomono.TTF, defaultGlyphWidth, defaultGlyphHeight)
}

// LoadGlyphSetFile builds a GlyphSet from a file path: a .ttf font is
// rasterized at the default cell size, anything else is decoded as a
// reference strip image.
func LoadGlyphSetFile(path string) (*GlyphSet, error) {
	if strings.HasSuffix(strings.ToLower(path), ".ttf") {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read font: %w", err)
		}
		return RenderGlyphSet(data, defaultGlyphWidth, defaultGlyphHeight)
	}

	strip, err := imageutil.LoadImage(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageDecode, err)
	}
	return LoadGlyphStrip(strip)
}
