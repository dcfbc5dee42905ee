package catpicture

import (
	"errors"
	"testing"
)

func TestResolveDimensionsDefaults(t *testing.T) {
	t.Parallel()

	w, h, err := ResolveDimensions(0, 0, 160, 90)
	if err != nil {
		t.Fatalf("ResolveDimensions failed: %v", err)
	}
	if w != 80 || h != 45 {
		t.Errorf("Expected 80x45, got %dx%d", w, h)
	}
}

func TestResolveDimensionsBothGiven(t *testing.T) {
	t.Parallel()

	// Both dimensions override the aspect ratio entirely.
	w, h, err := ResolveDimensions(30, 10, 160, 90)
	if err != nil {
		t.Fatalf("ResolveDimensions failed: %v", err)
	}
	if w != 30 || h != 10 {
		t.Errorf("Expected 30x10, got %dx%d", w, h)
	}
}

func TestResolveDimensionsDerivedHeight(t *testing.T) {
	t.Parallel()

	cases := []struct {
		width      int
		srcW, srcH int
	}{
		{40, 160, 90},
		{80, 160, 90},
		{33, 640, 480},
		{7, 1920, 1080},
	}
	for _, tc := range cases {
		w, h, err := ResolveDimensions(tc.width, 0, tc.srcW, tc.srcH)
		if err != nil {
			t.Fatalf("ResolveDimensions(%d, 0, %d, %d) failed: %v",
				tc.width, tc.srcW, tc.srcH, err)
		}
		aspect := float64(tc.srcW) / float64(tc.srcH)
		expected := int(float64(tc.width) / aspect)
		if w != tc.width || h != expected {
			t.Errorf("ResolveDimensions(%d, 0, %d, %d) = %dx%d, expected %dx%d",
				tc.width, tc.srcW, tc.srcH, w, h, tc.width, expected)
		}
	}
}

func TestResolveDimensionsDerivedWidth(t *testing.T) {
	t.Parallel()

	w, h, err := ResolveDimensions(0, 45, 160, 90)
	if err != nil {
		t.Fatalf("ResolveDimensions failed: %v", err)
	}
	if w != 80 || h != 45 {
		t.Errorf("Expected 80x45, got %dx%d", w, h)
	}
}

func TestResolveDimensionsClampsToOne(t *testing.T) {
	t.Parallel()

	// A very wide source would truncate the derived height to zero.
	_, h, err := ResolveDimensions(1, 0, 1000, 10)
	if err != nil {
		t.Fatalf("ResolveDimensions failed: %v", err)
	}
	if h != 1 {
		t.Errorf("Expected derived height clamped to 1, got %d", h)
	}
}

func TestResolveDimensionsZeroSource(t *testing.T) {
	t.Parallel()

	_, _, err := ResolveDimensions(80, 0, 160, 0)
	if !errors.Is(err, ErrInvalidImage) {
		t.Errorf("Expected ErrInvalidImage for zero source height, got %v", err)
	}

	_, _, err = ResolveDimensions(80, 0, 0, 90)
	if !errors.Is(err, ErrInvalidImage) {
		t.Errorf("Expected ErrInvalidImage for zero source width, got %v", err)
	}
}
