package catpicture

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/JosephCatrambone/catpicture/imageutil"
)

// Region is an axis-aligned crop rectangle in source-image pixel
// coordinates, applied before resizing.
type Region struct {
	Left, Top, Right, Bottom int
}

// Renderer converts a source image into an ANSI-escaped character
// grid. A Renderer is configured once through functional options and
// may be reused across renders; the glyph match cache carries over,
// which only speeds repeated renders up without changing their output.
type Renderer struct {
	// Width and Height are the requested output size in character
	// cells; 0 means "derive from the aspect ratio".
	Width  int
	Height int

	// Mode selects the character strategy; Char is the character
	// drawn by ModeChar.
	Mode DrawMode
	Char rune

	// TrueColor switches from the nearest-palette policy to 24-bit
	// escapes carrying the literal RGB triples.
	TrueColor bool

	// ForceGrey desaturates every sampled color by channel averaging.
	ForceGrey bool

	// DrawThreshold suppresses cells whose luma (0-255) falls below
	// it: they are written as bare spaces with no escapes, so dark
	// text renders as empty space in saved files. 0 disables it.
	DrawThreshold float64

	// Compress enables the run-length merge pass over the finished
	// stream.
	Compress bool

	region *Region
	glyphs *GlyphSet
	cache  *matchCache
	logger *log.Logger
}

// RendererOption is a functional option for configuring a Renderer.
type RendererOption func(*Renderer)

// NewRenderer creates a new Renderer with the given options. The
// defaults render in block mode with the nearest-palette policy at
// the default width.
func NewRenderer(opts ...RendererOption) *Renderer {
	r := &Renderer{
		Mode:   ModeBlock,
		Char:   '#',
		cache:  newMatchCache(),
		logger: log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// WithDimensions sets the requested output size in character cells;
// 0 for either dimension derives it from the source aspect ratio.
func WithDimensions(width, height int) RendererOption {
	return func(r *Renderer) {
		r.Width = width
		r.Height = height
	}
}

// WithRegion sets the crop region in source pixel coordinates.
func WithRegion(left, top, right, bottom int) RendererOption {
	return func(r *Renderer) {
		r.region = &Region{Left: left, Top: top, Right: right, Bottom: bottom}
	}
}

// WithDrawMode sets the character selection strategy.
func WithDrawMode(mode DrawMode) RendererOption {
	return func(r *Renderer) {
		r.Mode = mode
	}
}

// WithChar sets the character drawn by ModeChar.
func WithChar(ch rune) RendererOption {
	return func(r *Renderer) {
		r.Char = ch
	}
}

// WithTrueColor selects 24-bit color escapes instead of the nearest
// palette entry.
func WithTrueColor(on bool) RendererOption {
	return func(r *Renderer) {
		r.TrueColor = on
	}
}

// WithForceGrey desaturates sampled colors by channel averaging.
func WithForceGrey(on bool) RendererOption {
	return func(r *Renderer) {
		r.ForceGrey = on
	}
}

// WithDrawThreshold sets the luma below which cells are left blank.
func WithDrawThreshold(threshold float64) RendererOption {
	return func(r *Renderer) {
		r.DrawThreshold = threshold
	}
}

// WithGlyphSet sets the reference glyphs used by ModeArt. When unset,
// the embedded default glyph set is rendered on first use.
func WithGlyphSet(glyphs *GlyphSet) RendererOption {
	return func(r *Renderer) {
		r.glyphs = glyphs
	}
}

// WithCompression enables the run-length merge pass on the output.
func WithCompression(on bool) RendererOption {
	return func(r *Renderer) {
		r.Compress = on
	}
}

// WithLogger sets the diagnostics logger. The default discards.
func WithLogger(logger *log.Logger) RendererOption {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Render converts the source image and writes the escape-coded
// character grid to w, one line per output row. Configuration and
// image problems are reported before any output byte is written; each
// render is all-or-nothing apart from write errors on w itself.
func (r *Renderer) Render(img *imageutil.RGBAImage, w io.Writer) error {
	if img == nil || img.Width() == 0 || img.Height() == 0 {
		return fmt.Errorf("%w: empty source image", ErrInvalidImage)
	}

	outW, outH, err := ResolveDimensions(r.Width, r.Height, img.Width(), img.Height())
	if err != nil {
		return err
	}
	if outW < 1 || outH < 1 {
		return fmt.Errorf("%w: target dimensions %dx%d",
			ErrInvalidConfiguration, outW, outH)
	}

	src := img
	if r.region != nil {
		if err := validateRegion(*r.region, img.Width(), img.Height()); err != nil {
			return err
		}
		src = imageutil.Crop(img,
			r.region.Left, r.region.Top, r.region.Right, r.region.Bottom)
	}

	if r.Mode == ModeArt && r.glyphs == nil {
		glyphs, err := DefaultGlyphSet()
		if err != nil {
			return err
		}
		r.glyphs = glyphs
	}

	resized := imageutil.Resize(src, outW, outH, imageutil.InterpolationArea)
	r.logger.Printf("rendering %dx%d cells (%s mode) from %dx%d source",
		outW, outH, r.Mode, src.Width(), src.Height())

	if r.Compress {
		var buf strings.Builder
		if err := r.renderCells(src, resized, outW, outH, &buf); err != nil {
			return err
		}
		_, err := io.WriteString(w, CompressANSI(buf.String()))
		return err
	}

	bw := bufio.NewWriter(w)
	if err := r.renderCells(src, resized, outW, outH, bw); err != nil {
		return err
	}
	return bw.Flush()
}

// renderCells walks the output cells in raster order, selecting a
// character and colors per cell and writing the escaped result with a
// newline terminating each row. The pre-resize source is retained for
// the modes that sample source-resolution patches.
func (r *Renderer) renderCells(src, resized *imageutil.RGBAImage,
	outW, outH int, w io.Writer) error {
	for y := 0; y < outH; y++ {
		for x := 0; x < outW; x++ {
			c := resized.GetRGB(x, y)
			if r.ForceGrey {
				c = c.Grey()
			}
			if r.DrawThreshold > 0 && imageutil.Luma(c) < r.DrawThreshold {
				if _, err := io.WriteString(w, " "); err != nil {
					return err
				}
				continue
			}

			var cell string
			switch r.Mode {
			case ModeBlock:
				cell = FormatCell(' ', nil, &c, r.TrueColor)
			case ModeChar:
				cell = FormatCell(r.Char, &c, nil, r.TrueColor)
			case ModeLine:
				cell = FormatCell(lineChar(src, x, y, outW, outH),
					&c, nil, r.TrueColor)
			case ModeArt:
				cell = FormatCell(artChar(src, x, y, outW, outH, r.glyphs, r.cache),
					&c, nil, r.TrueColor)
			}
			if _, err := io.WriteString(w, cell); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}

	if r.Mode == ModeArt {
		hits, misses := r.cache.Stats()
		r.logger.Printf("glyph cache: %d hits, %d misses", hits, misses)
	}
	return nil
}

// validateRegion checks a crop region against the raw source bounds.
// The legacy behavior let out-of-bounds rectangles panic inside the
// image library; here they are rejected up front.
func validateRegion(reg Region, srcW, srcH int) error {
	if reg.Left < 0 || reg.Top < 0 ||
		reg.Left >= reg.Right || reg.Top >= reg.Bottom ||
		reg.Right > srcW || reg.Bottom > srcH {
		return fmt.Errorf(
			"%w: crop region (%d,%d)-(%d,%d) invalid for %dx%d source",
			ErrInvalidConfiguration,
			reg.Left, reg.Top, reg.Right, reg.Bottom, srcW, srcH)
	}
	return nil
}
