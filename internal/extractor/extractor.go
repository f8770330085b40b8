// Package extractor drives the passport MRZ pipeline: it fans a document out
// into per-page OCR passes of decreasing aggressiveness and stops at the
// first pass that yields a locatable MRZ.
package extractor

import (
	"context"
	"image"
	"time"

	apperrors "go-passport-mrz/internal/errors"
	"go-passport-mrz/internal/logger"
	"go-passport-mrz/internal/mrz"
	"go-passport-mrz/internal/observer"
	"go-passport-mrz/internal/ocr"
	"go-passport-mrz/internal/pdfconv"
	"go-passport-mrz/internal/preprocess"
	"go-passport-mrz/pkg/models"
)

// passVariants is the order passes run in per page. The enhanced full page
// works for most photos; the cropped band rescues pages where surrounding
// print confuses OCR; the untouched original is the fallback for images that
// binarize badly.
var passVariants = []preprocess.Variant{
	preprocess.VariantFullEnhanced,
	preprocess.VariantCroppedEnhanced,
	preprocess.VariantOriginal,
}

// Orchestrator runs the extraction pipeline over a document.
type Orchestrator struct {
	preprocessor *preprocess.Preprocessor
	locator      *mrz.Locator
	corrector    *mrz.Corrector
	decoder      *mrz.FieldDecoder
	rasterizer   *pdfconv.Rasterizer
	newEngine    ocr.EngineFactory
	publisher    observer.Subject
}

// NewOrchestrator creates an extraction orchestrator. The publisher may be
// nil when no observers are interested in per-pass progress.
func NewOrchestrator(newEngine ocr.EngineFactory, publisher observer.Subject) *Orchestrator {
	return &Orchestrator{
		preprocessor: preprocess.NewPreprocessor(),
		locator:      mrz.NewLocator(),
		corrector:    mrz.NewCorrector(),
		decoder:      mrz.NewFieldDecoder(),
		rasterizer:   pdfconv.NewRasterizer(),
		newEngine:    newEngine,
		publisher:    publisher,
	}
}

// ExtractDocument decodes the raw document bytes, rasterizing PDFs into
// their page images first, and extracts the passport record.
func (o *Orchestrator) ExtractDocument(ctx context.Context, data []byte) (models.PassportRecord, error) {
	if pdfconv.IsPDF(data) {
		pages, err := o.rasterizer.Pages(data)
		if err != nil {
			return models.PassportRecord{}, err
		}
		return o.Extract(ctx, pages)
	}

	img, err := preprocess.DecodeImage(data)
	if err != nil {
		return models.PassportRecord{}, err
	}
	return o.Extract(ctx, []image.Image{img})
}

// Extract runs the pass schedule over the pages and returns the record from
// the first pass whose transcript contains a locatable MRZ. One OCR engine
// serves the whole run and is released when it ends.
func (o *Orchestrator) Extract(ctx context.Context, pages []image.Image) (models.PassportRecord, error) {
	engine, err := o.newEngine()
	if err != nil {
		return models.PassportRecord{}, err
	}
	defer engine.Close()

	totalPasses := len(pages) * len(passVariants)
	passNr := 0

	for pageIdx, page := range pages {
		for _, variant := range passVariants {
			passNr++
			if err := ctx.Err(); err != nil {
				return models.PassportRecord{}, apperrors.NewTimeoutError("extraction cancelled", err)
			}

			record, found, err := o.runPass(ctx, engine, page, variant)
			o.notifyPass(ctx, pageIdx+1, variant, passNr, totalPasses, found)
			if err != nil {
				return models.PassportRecord{}, err
			}
			if found {
				logger.WithFields(map[string]interface{}{
					"page":    pageIdx + 1,
					"variant": variant.Description(),
					"pass":    passNr,
				}).Info("MRZ located")
				return record, nil
			}
		}
	}

	return models.PassportRecord{}, apperrors.NewMrzNotFoundError()
}

// runPass prepares one page variant, recognizes it and tries to locate an
// MRZ in the transcript. Engine and image failures on a single pass are not
// fatal: the next pass may still succeed. Context cancellation is.
func (o *Orchestrator) runPass(ctx context.Context, engine ocr.Engine, page image.Image, variant preprocess.Variant) (models.PassportRecord, bool, error) {
	prepared := o.preprocessor.Prepare(page, variant)

	transcript, err := engine.Recognize(ctx, prepared)
	if err != nil {
		if ctx.Err() != nil {
			return models.PassportRecord{}, false, apperrors.NewTimeoutError("extraction cancelled", ctx.Err())
		}
		logger.WithError(err).WithField("variant", variant.Description()).Warn("OCR pass failed, trying next variant")
		return models.PassportRecord{}, false, nil
	}

	pair, found := o.locator.Locate(transcript)
	if !found {
		return models.PassportRecord{}, false, nil
	}

	pair.First = o.corrector.Correct(pair.First)
	return o.decoder.Decode(pair.First, pair.Second), true, nil
}

func (o *Orchestrator) notifyPass(ctx context.Context, page int, variant preprocess.Variant, passNr, totalPasses int, found bool) {
	if o.publisher == nil {
		return
	}
	o.publisher.NotifyObservers(ctx, observer.ExtractionEvent{
		EventType: observer.PassCompleted,
		Timestamp: time.Now(),
		Success:   found,
		Metadata: map[string]interface{}{
			"page":     page,
			"variant":  variant.Description(),
			"pass":     passNr,
			"progress": float64(passNr) / float64(totalPasses),
		},
	})
}
