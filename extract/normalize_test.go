package extract

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testImagePNG renders a small gradient image as PNG bytes.
func testImagePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestScaleToMaxWidthPassthrough(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 100, 50))
	out := ScaleToMaxWidth(src, 1600)
	assert.Equal(t, 100, out.Bounds().Dx())
	assert.Equal(t, 50, out.Bounds().Dy())
}

func TestScaleToMaxWidthDownscales(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 3200, 1000))
	out := ScaleToMaxWidth(src, 1600)
	assert.Equal(t, 1600, out.Bounds().Dx())
	assert.Equal(t, 500, out.Bounds().Dy())
}

func TestGrayscale(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	src.Set(1, 1, color.RGBA{R: 255, A: 255})
	gray := Grayscale(src)
	assert.Equal(t, src.Bounds(), gray.Bounds())
}

func TestSharpenPreservesFlatRegions(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 6, 6))
	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			src.SetGray(x, y, color.Gray{Y: 128})
		}
	}

	out := Sharpen(src)
	assert.Equal(t, src.Bounds(), out.Bounds())
	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			assert.Equal(t, uint8(128), out.GrayAt(x, y).Y)
		}
	}
}

func TestSharpenIncreasesEdgeContrast(t *testing.T) {
	// Left half dark, right half light; the boundary must get steeper.
	src := image.NewGray(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			v := uint8(100)
			if x >= 2 {
				v = 200
			}
			src.SetGray(x, y, color.Gray{Y: v})
		}
	}

	out := Sharpen(src)
	assert.Less(t, out.GrayAt(1, 1).Y, uint8(100), "dark side of the edge darkens")
	assert.Greater(t, out.GrayAt(2, 1).Y, uint8(200), "light side of the edge brightens")
}

func TestNormalizePNGRoundTrip(t *testing.T) {
	data := testImagePNG(t, 2000, 800)

	out, err := NormalizePNG(data)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 1600, img.Bounds().Dx())
	assert.Equal(t, 640, img.Bounds().Dy())
}

func TestNormalizePNGRejectsGarbage(t *testing.T) {
	_, err := NormalizePNG([]byte("definitely not an image"))
	assert.ErrorIs(t, err, ErrNotAnImage)
}

func TestCompressJPEG(t *testing.T) {
	data := testImagePNG(t, 400, 300)

	out, err := CompressJPEG(data)
	require.NoError(t, err)

	img, _, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 400, img.Bounds().Dx())
	assert.Equal(t, 300, img.Bounds().Dy())
}
