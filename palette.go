package catpicture

import (
	"fmt"
	"strings"

	"github.com/JosephCatrambone/catpicture/imageutil"
)

const (
	// ESC is the ANSI escape character.
	ESC = "\u001b"

	// DefaultForeground is the SGR code for the terminal's default
	// foreground color, emitted when a cell carries no foreground.
	DefaultForeground = 39
)

// paletteEntry pairs one of the eight standard terminal colors with
// its foreground SGR code. The background code is the foreground code
// offset by 10.
type paletteEntry struct {
	Color imageutil.RGB
	Code  int
}

// ansiPalette is the fixed terminal palette, ordered by ascending SGR
// code so that distance ties resolve deterministically. The anchor
// values for yellow and cyan are swapped relative to their names;
// that quirk is part of the observable output contract and is kept.
var ansiPalette = [...]paletteEntry{
	{imageutil.RGB{R: 0, G: 0, B: 0}, 30},       // black
	{imageutil.RGB{R: 255, G: 0, B: 0}, 31},     // red
	{imageutil.RGB{R: 0, G: 255, B: 0}, 32},     // green
	{imageutil.RGB{R: 0, G: 255, B: 255}, 33},   // yellow
	{imageutil.RGB{R: 0, G: 0, B: 255}, 34},     // blue
	{imageutil.RGB{R: 255, G: 0, B: 255}, 35},   // magenta
	{imageutil.RGB{R: 255, G: 255, B: 0}, 36},   // cyan
	{imageutil.RGB{R: 255, G: 255, B: 255}, 37}, // white
}

// NearestPaletteCode returns the foreground SGR code (30-37) of the
// palette entry with the smallest squared Euclidean RGB distance to
// the given color. Ties keep the lowest code.
func NearestPaletteCode(c imageutil.RGB) int {
	bestCode := DefaultForeground
	bestDist := 3*255*255 + 1 // Past max squared RGB distance.
	for _, entry := range ansiPalette {
		dr := int(c.R) - int(entry.Color.R)
		dg := int(c.G) - int(entry.Color.G)
		db := int(c.B) - int(entry.Color.B)
		dist := dr*dr + dg*dg + db*db
		if dist < bestDist {
			bestCode = entry.Code
			bestDist = dist
		}
	}
	return bestCode
}

// FormatCell renders a single output cell as an ANSI-escaped string.
// A nil foreground or background means the cell does not carry that
// color. Under the nearest-palette policy the foreground falls back to
// the terminal default code and the background, when present, uses the
// nearest palette code offset by 10. Under the true-color policy the
// literal RGB triple is emitted as a 24-bit escape; only one of the
// two colors is ever escaped, matching the legacy single-escape
// behavior. Every escaped cell ends with a reset.
//
// This function is the sole producer of terminal escape bytes; output
// buffering is the renderer's concern.
func FormatCell(ch rune, fg, bg *imageutil.RGB, trueColor bool) string {
	var out strings.Builder

	if trueColor {
		switch {
		case fg != nil:
			fmt.Fprintf(&out, "%s[38;2;%d;%d;%dm", ESC, fg.R, fg.G, fg.B)
		case bg != nil:
			fmt.Fprintf(&out, "%s[48;2;%d;%d;%dm", ESC, bg.R, bg.G, bg.B)
		}
	} else {
		fgCode := DefaultForeground
		if fg != nil {
			fgCode = NearestPaletteCode(*fg)
		}
		fmt.Fprintf(&out, "%s[%dm", ESC, fgCode)
		if bg != nil {
			fmt.Fprintf(&out, "%s[%dm", ESC, NearestPaletteCode(*bg)+10)
		}
	}

	out.WriteRune(ch)
	fmt.Fprintf(&out, "%s[0m", ESC)
	return out.String()
}
