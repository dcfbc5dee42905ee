package imageutil

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRGBGrey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, RGB{R: 150, G: 150, B: 150}, RGB{R: 90, G: 150, B: 210}.Grey())
	assert.Equal(t, RGB{R: 0, G: 0, B: 0}, RGB{}.Grey())
	assert.Equal(t, RGB{R: 255, G: 255, B: 255}, RGB{R: 255, G: 255, B: 255}.Grey())
}

func TestCrop(t *testing.T) {
	t.Parallel()

	img := NewRGBAImage(4, 4)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.SetRGB(x, y, RGB{R: uint8(x * 10), G: uint8(y * 10)})
		}
	}

	cropped := Crop(img, 1, 2, 4, 4)
	require.Equal(t, 3, cropped.Width())
	require.Equal(t, 2, cropped.Height())
	assert.Equal(t, RGB{R: 10, G: 20}, cropped.GetRGB(0, 0))
	assert.Equal(t, RGB{R: 30, G: 30}, cropped.GetRGB(2, 1))

	// The crop owns its pixels; mutating it leaves the source alone.
	cropped.SetRGB(0, 0, RGB{R: 99})
	assert.Equal(t, RGB{R: 10, G: 20}, img.GetRGB(1, 2))
}

func TestResize(t *testing.T) {
	t.Parallel()

	img := CreateSolidImage(8, 8, RGB{R: 200, G: 100, B: 50})
	resized := Resize(img, 2, 2, InterpolationArea)
	require.Equal(t, 2, resized.Width())
	require.Equal(t, 2, resized.Height())

	// A solid image stays solid under any interpolation.
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			assert.Equal(t, RGB{R: 200, G: 100, B: 50}, resized.GetRGB(x, y))
		}
	}
}

func TestLuma(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0.0, Luma(RGB{}))
	assert.Equal(t, 255.0, Luma(RGB{R: 255, G: 255, B: 255}))
	assert.InDelta(t, 0.587*255, Luma(RGB{G: 255}), 0.001)
}

func TestToGrayscale(t *testing.T) {
	t.Parallel()

	img := CreateSolidImage(2, 2, RGB{R: 255, G: 255, B: 255})
	gray := ToGrayscale(img)
	assert.Equal(t, uint8(255), gray.GetGray(0, 0))

	img = CreateSolidImage(2, 2, RGB{R: 10, G: 10, B: 10})
	gray = ToGrayscale(img)
	assert.Equal(t, uint8(10), gray.GetGray(1, 1))
}

func TestDecodeImage(t *testing.T) {
	t.Parallel()

	src := CreateCheckerboardImage(6, 6, 2)
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, src.RGBA))

	decoded, err := DecodeImage(&buf)
	require.NoError(t, err)
	require.Equal(t, 6, decoded.Width())
	require.Equal(t, 6, decoded.Height())
	assert.Equal(t, src.GetRGB(0, 0), decoded.GetRGB(0, 0))
	assert.Equal(t, src.GetRGB(2, 0), decoded.GetRGB(2, 0))
}

func TestDecodeImageGarbage(t *testing.T) {
	t.Parallel()

	_, err := DecodeImage(bytes.NewReader([]byte("not an image")))
	assert.Error(t, err)
}

func TestLoadImageMissingFile(t *testing.T) {
	t.Parallel()

	_, err := LoadImage("testdata/does-not-exist.png")
	assert.Error(t, err)
}
