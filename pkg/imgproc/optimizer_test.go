package imgproc_test

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aaronipollock/memory-palace-sub001/pkg/imgproc"
)

func testPNG(t *testing.T, width, height int) []byte {
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

func TestVariantsProducesSquareRenditions(t *testing.T) {
	t.Parallel()

	src := testPNG(t, 640, 480)

	variants, err := imgproc.NewOptimizer().Variants(src)
	require.NoError(t, err)
	require.Len(t, variants, len(imgproc.VariantWidths))

	for i, v := range variants {
		assert.Equal(t, imgproc.VariantWidths[i], v.Width)
		assert.Equal(t, v.Width, v.Height)
		assert.NotEmpty(t, v.Data)

		decoded, err := jpeg.Decode(bytes.NewReader(v.Data))
		require.NoError(t, err)
		bounds := decoded.Bounds()
		assert.Equal(t, v.Width, bounds.Dx())
		assert.Equal(t, v.Height, bounds.Dy())
	}
}

func TestVariantsUpscalesSmallSources(t *testing.T) {
	t.Parallel()

	src := testPNG(t, 100, 100)

	variants, err := imgproc.NewOptimizer().Variants(src)
	require.NoError(t, err)
	require.Len(t, variants, len(imgproc.VariantWidths))

	last := variants[len(variants)-1]
	assert.Equal(t, 1024, last.Width)
	assert.Equal(t, 1024, last.Height)
}

func TestVariantsRejectsGarbage(t *testing.T) {
	t.Parallel()

	_, err := imgproc.NewOptimizer().Variants([]byte("not an image"))
	assert.Error(t, err)
}

func TestSrcSetOrdersByWidth(t *testing.T) {
	t.Parallel()

	srcset := imgproc.SrcSet(map[int]string{
		1024: "https://cdn.test/w1024.jpg",
		150:  "https://cdn.test/w150.jpg",
		600:  "https://cdn.test/w600.jpg",
		300:  "https://cdn.test/w300.jpg",
	})

	assert.Equal(t,
		"https://cdn.test/w150.jpg 150w, https://cdn.test/w300.jpg 300w, "+
			"https://cdn.test/w600.jpg 600w, https://cdn.test/w1024.jpg 1024w",
		srcset)
}

func TestSrcSetSkipsMissingWidths(t *testing.T) {
	t.Parallel()

	srcset := imgproc.SrcSet(map[int]string{
		300: "https://cdn.test/w300.jpg",
	})

	assert.Equal(t, "https://cdn.test/w300.jpg 300w", srcset)
}
