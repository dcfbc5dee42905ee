package catpicture

import (
	"testing"

	"github.com/JosephCatrambone/catpicture/imageutil"
)

func TestNearestPaletteCodeExactMatches(t *testing.T) {
	t.Parallel()

	// A color equal to a palette anchor has zero distance and must
	// map to that entry's code deterministically.
	cases := []struct {
		color imageutil.RGB
		code  int
	}{
		{imageutil.RGB{R: 0, G: 0, B: 0}, 30},
		{imageutil.RGB{R: 255, G: 0, B: 0}, 31},
		{imageutil.RGB{R: 0, G: 255, B: 0}, 32},
		{imageutil.RGB{R: 0, G: 255, B: 255}, 33},
		{imageutil.RGB{R: 0, G: 0, B: 255}, 34},
		{imageutil.RGB{R: 255, G: 0, B: 255}, 35},
		{imageutil.RGB{R: 255, G: 255, B: 0}, 36},
		{imageutil.RGB{R: 255, G: 255, B: 255}, 37},
	}
	for _, tc := range cases {
		if code := NearestPaletteCode(tc.color); code != tc.code {
			t.Errorf("NearestPaletteCode(%v) = %d, expected %d",
				tc.color, code, tc.code)
		}
	}
}

func TestNearestPaletteCodeNearMatches(t *testing.T) {
	t.Parallel()

	if code := NearestPaletteCode(imageutil.RGB{R: 10, G: 10, B: 10}); code != 30 {
		t.Errorf("Near-black should map to 30, got %d", code)
	}
	if code := NearestPaletteCode(imageutil.RGB{R: 250, G: 20, B: 10}); code != 31 {
		t.Errorf("Near-red should map to 31, got %d", code)
	}
}

func TestFormatCellPalette(t *testing.T) {
	t.Parallel()

	black := imageutil.RGB{R: 0, G: 0, B: 0}
	white := imageutil.RGB{R: 255, G: 255, B: 255}

	// Black foreground on white background: codes 30 and 37+10.
	got := FormatCell('x', &black, &white, false)
	expected := "\x1b[30m\x1b[47mx\x1b[0m"
	if got != expected {
		t.Errorf("FormatCell = %q, expected %q", got, expected)
	}

	// No foreground color falls back to the terminal default code.
	got = FormatCell(' ', nil, &white, false)
	expected = "\x1b[39m\x1b[47m \x1b[0m"
	if got != expected {
		t.Errorf("FormatCell = %q, expected %q", got, expected)
	}

	// No background color omits the background escape entirely.
	got = FormatCell('#', &black, nil, false)
	expected = "\x1b[30m#\x1b[0m"
	if got != expected {
		t.Errorf("FormatCell = %q, expected %q", got, expected)
	}
}

func TestFormatCellTrueColor(t *testing.T) {
	t.Parallel()

	fg := imageutil.RGB{R: 12, G: 34, B: 56}

	// The literal RGB triple round-trips into the escape fields.
	got := FormatCell('X', &fg, nil, true)
	expected := "\x1b[38;2;12;34;56mX\x1b[0m"
	if got != expected {
		t.Errorf("FormatCell = %q, expected %q", got, expected)
	}

	// Background-only cells emit a 24-bit background escape.
	bg := imageutil.RGB{R: 255, G: 0, B: 0}
	got = FormatCell(' ', nil, &bg, true)
	expected = "\x1b[48;2;255;0;0m \x1b[0m"
	if got != expected {
		t.Errorf("FormatCell = %q, expected %q", got, expected)
	}
}

func TestFormatCellDeterministic(t *testing.T) {
	t.Parallel()

	c := imageutil.RGB{R: 120, G: 130, B: 140}
	first := FormatCell('#', &c, nil, false)
	for i := 0; i < 10; i++ {
		if got := FormatCell('#', &c, nil, false); got != first {
			t.Fatalf("FormatCell not deterministic: %q vs %q", got, first)
		}
	}
}
