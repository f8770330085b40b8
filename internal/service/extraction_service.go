package service

import (
	"context"
	"time"

	"go-passport-mrz/internal/config"
	apperrors "go-passport-mrz/internal/errors"
	"go-passport-mrz/internal/extractor"
	"go-passport-mrz/internal/observer"
	"go-passport-mrz/internal/repository"
	"go-passport-mrz/pkg/models"
	"go-passport-mrz/pkg/validation"
)

// ExtractionService defines the interface for passport MRZ extraction
type ExtractionService interface {
	// ExtractPassport fetches the document behind the request URL and
	// extracts its passport record
	ExtractPassport(ctx context.Context, request models.ExtractionRequest) (*models.ExtractionResponse, error)

	// ValidateDocumentURL validates the document URL
	ValidateDocumentURL(documentURL string) error
}

// extractionService implements ExtractionService
type extractionService struct {
	documentRepo      repository.DocumentRepository
	orchestrator      *extractor.Orchestrator
	recordValidator   *validation.RecordValidator
	publisher         observer.Subject
	fetchTimeout      time.Duration
	extractionTimeout time.Duration
}

// NewExtractionService creates a new passport extraction service
func NewExtractionService(
	documentRepo repository.DocumentRepository,
	orchestrator *extractor.Orchestrator,
	publisher observer.Subject,
	cfg *config.Config,
) ExtractionService {
	return &extractionService{
		documentRepo:      documentRepo,
		orchestrator:      orchestrator,
		recordValidator:   validation.NewRecordValidator(),
		publisher:         publisher,
		fetchTimeout:      cfg.DocumentTimeout,
		extractionTimeout: cfg.ExtractionTimeout,
	}
}

// ExtractPassport runs the full extraction flow: fetch, locate, correct,
// decode, then score the record against any expected values.
func (s *extractionService) ExtractPassport(ctx context.Context, request models.ExtractionRequest) (*models.ExtractionResponse, error) {
	if err := s.ValidateDocumentURL(request.URL); err != nil {
		return nil, err
	}

	start := time.Now()
	s.notify(ctx, observer.ExtractionStarted, request.URL, 0, true, "")

	fetchCtx, cancelFetch := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancelFetch()

	data, err := s.documentRepo.FetchDocument(fetchCtx, request.URL)
	if err != nil {
		s.notify(ctx, observer.DocumentFetchFailed, request.URL, time.Since(start), false, err.Error())
		return nil, err
	}
	s.notify(ctx, observer.DocumentFetched, request.URL, time.Since(start), true, "")

	extractCtx, cancelExtract := context.WithTimeout(ctx, s.extractionTimeout)
	defer cancelExtract()

	record, err := s.orchestrator.ExtractDocument(extractCtx, data)
	if err != nil {
		if extractCtx.Err() != nil && !apperrors.IsType(err, apperrors.ErrorTypeTimeout) {
			err = apperrors.NewTimeoutError("extraction deadline exceeded", extractCtx.Err())
		}
		s.notify(ctx, observer.ExtractionFailed, request.URL, time.Since(start), false, err.Error())
		return nil, err
	}

	elapsed := time.Since(start)
	s.notify(ctx, observer.ExtractionCompleted, request.URL, elapsed, true, "")

	return &models.ExtractionResponse{
		SourceURL:         request.URL,
		Timestamp:         time.Now().Format("2006-01-02T15:04:05Z07:00"),
		ProcessingTimeSec: elapsed.Seconds(),
		Record:            record,
		Match:             validation.MatchRecord(record, request.ExpectedSurname, request.ExpectedPassportNumber),
		Warnings:          s.recordValidator.Validate(record),
	}, nil
}

// ValidateDocumentURL validates the document URL
func (s *extractionService) ValidateDocumentURL(documentURL string) error {
	return s.documentRepo.ValidateDocumentURL(documentURL)
}

func (s *extractionService) notify(ctx context.Context, eventType observer.EventType, url string, elapsed time.Duration, success bool, errMsg string) {
	if s.publisher == nil {
		return
	}
	s.publisher.NotifyObservers(ctx, observer.ExtractionEvent{
		EventType:      eventType,
		Timestamp:      time.Now(),
		DocumentURL:    url,
		ProcessingTime: elapsed,
		Success:        success,
		ErrorMessage:   errMsg,
	})
}
