package service

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"testing"

	"go-passport-mrz/internal/config"
	apperrors "go-passport-mrz/internal/errors"
	"go-passport-mrz/internal/extractor"
	"go-passport-mrz/internal/ocr"
	"go-passport-mrz/pkg/models"
)

const mrzTranscript = "P<UTOERIKSSON<<ANNA<MARIA<<<<<<<<<<<<<<<<<<<\n" +
	"L898902C36UTO7408122F1204159ZE184226B<<<<<10"

type stubRepo struct {
	data     []byte
	fetchErr error
}

func (r *stubRepo) FetchDocument(ctx context.Context, documentURL string) ([]byte, error) {
	if r.fetchErr != nil {
		return nil, r.fetchErr
	}
	return r.data, nil
}

func (r *stubRepo) ValidateDocumentURL(documentURL string) error {
	if documentURL == "" {
		return apperrors.NewValidationError("URL cannot be empty", nil)
	}
	return nil
}

type stubEngine struct {
	transcript string
}

func (e *stubEngine) Name() string { return "stub" }
func (e *stubEngine) Recognize(ctx context.Context, _ image.Image) (string, error) {
	return e.transcript, nil
}
func (e *stubEngine) Close() error { return nil }

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewGray(image.Rect(0, 0, 16, 16))); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

func newService(t *testing.T, repo *stubRepo, transcript string) ExtractionService {
	t.Helper()
	cfg, err := config.LoadFromEnv()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	factory := func() (ocr.Engine, error) { return &stubEngine{transcript: transcript}, nil }
	return NewExtractionService(repo, extractor.NewOrchestrator(factory, nil), nil, cfg)
}

func TestExtractPassport(t *testing.T) {
	svc := newService(t, &stubRepo{data: pngBytes(t)}, mrzTranscript)

	resp, err := svc.ExtractPassport(context.Background(), models.ExtractionRequest{
		URL: "https://example.com/passport.png",
	})
	if err != nil {
		t.Fatalf("ExtractPassport() error = %v", err)
	}

	if resp.Record.Surname != "ERIKSSON" {
		t.Errorf("Surname = %q, want ERIKSSON", resp.Record.Surname)
	}
	if resp.SourceURL != "https://example.com/passport.png" {
		t.Errorf("SourceURL = %q", resp.SourceURL)
	}
	if resp.Match != nil {
		t.Errorf("Match = %+v, want nil without expected values", resp.Match)
	}
	if len(resp.Warnings) != 0 {
		t.Errorf("Warnings = %v, want none for a complete record", resp.Warnings)
	}
}

func TestExtractPassportScoresExpectedValues(t *testing.T) {
	svc := newService(t, &stubRepo{data: pngBytes(t)}, mrzTranscript)

	resp, err := svc.ExtractPassport(context.Background(), models.ExtractionRequest{
		URL:                    "https://example.com/passport.png",
		ExpectedSurname:        "ERIKSSON",
		ExpectedPassportNumber: "L898902C3",
	})
	if err != nil {
		t.Fatalf("ExtractPassport() error = %v", err)
	}

	if resp.Match == nil || !resp.Match.Matched {
		t.Errorf("Match = %+v, want matched", resp.Match)
	}
}

func TestExtractPassportInvalidURL(t *testing.T) {
	svc := newService(t, &stubRepo{data: pngBytes(t)}, mrzTranscript)

	_, err := svc.ExtractPassport(context.Background(), models.ExtractionRequest{URL: ""})
	if !apperrors.IsType(err, apperrors.ErrorTypeValidation) {
		t.Errorf("error = %v, want validation error", err)
	}
}

func TestExtractPassportFetchFailure(t *testing.T) {
	repo := &stubRepo{fetchErr: apperrors.NewNetworkError("fetch failed", nil)}
	svc := newService(t, repo, mrzTranscript)

	_, err := svc.ExtractPassport(context.Background(), models.ExtractionRequest{
		URL: "https://example.com/passport.png",
	})
	if !apperrors.IsType(err, apperrors.ErrorTypeNetwork) {
		t.Errorf("error = %v, want network error", err)
	}
}

func TestExtractPassportNoMrz(t *testing.T) {
	svc := newService(t, &stubRepo{data: pngBytes(t)}, "no machine readable zone here")

	_, err := svc.ExtractPassport(context.Background(), models.ExtractionRequest{
		URL: "https://example.com/photo.png",
	})
	if !apperrors.IsType(err, apperrors.ErrorTypeMrzNotFound) {
		t.Errorf("error = %v, want MRZ not found", err)
	}
}
