// Package imgproc produces responsive renditions of generated images. Pixel
// work is delegated entirely to the imaging library.
package imgproc

import (
	"bytes"
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"
)

// VariantWidths are the square target resolutions, smallest first.
var VariantWidths = []int{150, 300, 600, 1024}

const jpegQuality = 80

// Variant is one re-encoded rendition of a source image.
type Variant struct {
	Width  int
	Height int
	Data   []byte
}

// Optimizer resizes a source image into the fixed set of square variants.
type Optimizer struct {
	widths  []int
	quality int
}

func NewOptimizer() *Optimizer {
	return &Optimizer{widths: VariantWidths, quality: jpegQuality}
}

// Variants decodes the source bytes and produces cover-fit, centered square
// renditions re-encoded as JPEG.
func (o *Optimizer) Variants(src []byte) ([]Variant, error) {
	img, err := imaging.Decode(bytes.NewReader(src), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	variants := make([]Variant, 0, len(o.widths))
	for _, width := range o.widths {
		resized := imaging.Fill(img, width, width, imaging.Center, imaging.Lanczos)

		data, err := encodeJPEG(resized, o.quality)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %dpx variant: %w", width, err)
		}

		variants = append(variants, Variant{Width: width, Height: width, Data: data})
	}

	return variants, nil
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SrcSet builds the responsive source-set descriptor ("url 150w, url 300w, ...")
// from variant URLs keyed by width.
func SrcSet(urlsByWidth map[int]string) string {
	var parts []string
	for _, width := range VariantWidths {
		if url, ok := urlsByWidth[width]; ok {
			parts = append(parts, fmt.Sprintf("%s %dw", url, width))
		}
	}
	return strings.Join(parts, ", ")
}
