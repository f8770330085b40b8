// Package pdfconv extracts page images from PDF documents so scanned
// passports submitted as PDFs can go through the same OCR pipeline as plain
// photos.
package pdfconv

import (
	"bytes"
	"fmt"
	"image"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/sunshineplan/pdf"

	apperrors "go-passport-mrz/internal/errors"
	"go-passport-mrz/internal/logger"
)

var pdfMagic = []byte("%PDF-")

// IsPDF reports whether the document bytes carry the PDF header.
func IsPDF(data []byte) bool {
	return bytes.HasPrefix(data, pdfMagic)
}

// Rasterizer converts PDF documents into their embedded page images.
type Rasterizer struct{}

// NewRasterizer creates a new PDF rasterizer
func NewRasterizer() *Rasterizer {
	return &Rasterizer{}
}

// Pages validates the PDF and returns every image embedded in it, in page
// order. Scanned documents carry one full-page image per page.
func (r *Rasterizer) Pages(data []byte) ([]image.Image, error) {
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), model.NewDefaultConfiguration())
	if err != nil {
		return nil, apperrors.NewPdfConversionError("failed to read and validate PDF", err)
	}

	logger.WithField("pages", ctx.PageCount).Debug("Decoding PDF document")

	images, err := decodeImages(data)
	if err != nil {
		return nil, apperrors.NewPdfConversionError("failed to extract images from PDF", err)
	}
	if len(images) == 0 {
		return nil, apperrors.NewPdfConversionError("PDF contains no page images", nil)
	}
	return images, nil
}

// decodeImages isolates the decoder behind a recover because malformed PDFs
// can panic inside the decoding library.
func decodeImages(data []byte) (images []image.Image, err error) {
	defer func() {
		if r := recover(); r != nil {
			images = nil
			err = fmt.Errorf("panic while decoding PDF images: %v", r)
		}
	}()

	return pdf.DecodeAll(bytes.NewReader(data))
}
