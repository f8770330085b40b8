// Package preprocess turns raw passport photos into high-contrast images
// suited to OCR of the machine-readable zone. Enhancement is Otsu global
// binarization followed by a nearest-neighbor upscale; the cropped variant
// first cuts the image down to the bottom band where the MRZ sits.
package preprocess

import (
	"bytes"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"

	apperrors "go-passport-mrz/internal/errors"
)

const (
	// upscaleFactor is applied to both axes before OCR. Tesseract resolves
	// OCR-B glyphs poorly below roughly 30px of line height.
	upscaleFactor = 3

	// mrzBandFraction is the share of image height, measured from the
	// bottom edge, that contains the MRZ on a TD3 passport page.
	mrzBandFraction = 0.35
)

// Variant selects how aggressively a page is transformed before OCR.
type Variant int

const (
	// VariantFullEnhanced binarizes and upscales the whole page.
	VariantFullEnhanced Variant = iota
	// VariantCroppedEnhanced crops to the bottom MRZ band first, then
	// binarizes and upscales.
	VariantCroppedEnhanced
	// VariantOriginal passes the page through untouched.
	VariantOriginal
)

// Description returns a human-readable label for logging.
func (v Variant) Description() string {
	switch v {
	case VariantFullEnhanced:
		return "full page, enhanced"
	case VariantCroppedEnhanced:
		return "bottom band, enhanced"
	case VariantOriginal:
		return "original"
	default:
		return "unknown"
	}
}

// Preprocessor prepares document pages for OCR.
type Preprocessor struct{}

// NewPreprocessor creates a new image preprocessor
func NewPreprocessor() *Preprocessor {
	return &Preprocessor{}
}

// DecodeImage decodes an encoded image (JPEG, PNG or GIF). Decode failures
// surface as image load errors.
func DecodeImage(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, apperrors.NewImageLoadError("failed to decode document image", err)
	}
	return img, nil
}

// PrepareBytes decodes an encoded image and applies the requested variant.
func (p *Preprocessor) PrepareBytes(data []byte, variant Variant) (image.Image, error) {
	img, err := DecodeImage(data)
	if err != nil {
		return nil, err
	}
	return p.Prepare(img, variant), nil
}

// Prepare applies the requested variant to an already decoded page.
func (p *Preprocessor) Prepare(img image.Image, variant Variant) image.Image {
	switch variant {
	case VariantOriginal:
		return img
	case VariantCroppedEnhanced:
		img = cropBottomBand(img)
	}

	gray, hist := grayscale(img)
	binarize(gray, otsuThreshold(hist, len(gray.Pix)))
	return upscale(gray)
}

// cropBottomBand cuts the image down to the bottom mrzBandFraction of its
// height, keeping the full width.
func cropBottomBand(img image.Image) image.Image {
	b := img.Bounds()
	top := b.Max.Y - int(float64(b.Dy())*mrzBandFraction)
	band := image.Rect(b.Min.X, top, b.Max.X, b.Max.Y)

	out := image.NewRGBA(image.Rect(0, 0, band.Dx(), band.Dy()))
	draw.Draw(out, out.Bounds(), img, band.Min, draw.Src)
	return out
}

// grayscale converts the image to 8-bit luminance using ITU-R BT.601 weights
// and builds the intensity histogram in the same pass.
func grayscale(img image.Image) (*image.Gray, [256]int) {
	b := img.Bounds()
	gray := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	var hist [256]int

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			luma := uint8((299*(r>>8) + 587*(g>>8) + 114*(bl>>8)) / 1000)
			gray.SetGray(x-b.Min.X, y-b.Min.Y, color.Gray{Y: luma})
			hist[luma]++
		}
	}
	return gray, hist
}

// otsuThreshold finds the intensity that maximizes between-class variance
// over the histogram. When no split separates the classes, for instance on a
// uniform image, it falls back to the midpoint 128. Ties keep the lowest
// threshold.
func otsuThreshold(hist [256]int, total int) uint8 {
	var sum float64
	for i, n := range hist {
		sum += float64(i * n)
	}

	threshold := uint8(128)
	var sumBg, wBg, bestVariance float64
	for t := 0; t < 256; t++ {
		wBg += float64(hist[t])
		if wBg == 0 {
			continue
		}
		wFg := float64(total) - wBg
		if wFg == 0 {
			break
		}
		sumBg += float64(t * hist[t])

		meanBg := sumBg / wBg
		meanFg := (sum - sumBg) / wFg
		variance := wBg * wFg * (meanBg - meanFg) * (meanBg - meanFg)
		if variance > bestVariance {
			bestVariance = variance
			threshold = uint8(t)
		}
	}
	return threshold
}

// binarize maps every pixel below the threshold to black and the rest to
// white, in place.
func binarize(gray *image.Gray, threshold uint8) {
	for i, v := range gray.Pix {
		if v < threshold {
			gray.Pix[i] = 0
		} else {
			gray.Pix[i] = 255
		}
	}
}

// upscale scales the image by upscaleFactor on both axes with nearest-neighbor
// interpolation, which keeps the hard binarized edges Tesseract keys on.
func upscale(img image.Image) image.Image {
	b := img.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx()*upscaleFactor, b.Dy()*upscaleFactor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
