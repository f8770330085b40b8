// Package ocr wraps text recognition behind a small engine interface so the
// extraction pipeline can run against Tesseract in production and fakes in
// tests.
package ocr

import (
	"bytes"
	"context"
	"image"
	"image/png"

	"github.com/otiai10/gosseract/v2"

	apperrors "go-passport-mrz/internal/errors"
)

// mrzCharWhitelist restricts recognition to the MRZ alphabet. Anything else
// Tesseract might emit is noise by construction.
const mrzCharWhitelist = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789<"

// pageSegMode 6 treats the page as a single uniform block of text, which
// matches the two stacked MRZ lines better than full page layout analysis.
const pageSegMode = "6"

// Engine recognizes text on a single prepared image.
type Engine interface {
	// Name identifies the engine in logs.
	Name() string
	// Recognize runs OCR over the image and returns the raw transcript.
	Recognize(ctx context.Context, img image.Image) (string, error)
	// Close releases the engine's resources. The engine must not be used
	// afterwards.
	Close() error
}

// EngineFactory builds a fresh engine for one extraction run. Tesseract
// clients are not safe for concurrent use, so every run gets its own.
type EngineFactory func() (Engine, error)

// TesseractEngine recognizes MRZ text through the Tesseract C library.
type TesseractEngine struct {
	client *gosseract.Client
}

// NewTesseractEngine creates a Tesseract client configured for MRZ
// recognition in the given language.
func NewTesseractEngine(language string) (*TesseractEngine, error) {
	client := gosseract.NewClient()

	if err := client.SetLanguage(language); err != nil {
		client.Close()
		return nil, apperrors.NewOcrEngineError("failed to set OCR language", err)
	}

	variables := map[string]string{
		"tessedit_char_whitelist": mrzCharWhitelist,
		"tessedit_pageseg_mode":   pageSegMode,
	}
	for name, value := range variables {
		if err := client.SetVariable(gosseract.SettableVariable(name), value); err != nil {
			client.Close()
			return nil, apperrors.NewOcrEngineError("failed to configure OCR engine", err)
		}
	}

	return &TesseractEngine{client: client}, nil
}

// Name implements Engine.
func (e *TesseractEngine) Name() string {
	return "tesseract"
}

// Recognize encodes the image as PNG and feeds it to Tesseract.
func (e *TesseractEngine) Recognize(ctx context.Context, img image.Image) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", apperrors.NewOcrEngineError("failed to encode image for OCR", err)
	}
	if err := e.client.SetImageFromBytes(buf.Bytes()); err != nil {
		return "", apperrors.NewOcrEngineError("failed to load image into OCR engine", err)
	}

	text, err := e.client.Text()
	if err != nil {
		return "", apperrors.NewOcrEngineError("text recognition failed", err)
	}
	return text, nil
}

// Close releases the underlying Tesseract client.
func (e *TesseractEngine) Close() error {
	return e.client.Close()
}
