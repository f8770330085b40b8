package repository

import (
	"context"

	"go-passport-mrz/internal/storage"
	"go-passport-mrz/pkg/validation"
)

// FetcherDocumentRepository implements DocumentRepository on top of a
// storage-layer fetcher
type FetcherDocumentRepository struct {
	fetcher   storage.DocumentFetcher
	validator *validation.URLValidator
}

// NewFetcherDocumentRepository creates a repository backed by the given
// fetcher
func NewFetcherDocumentRepository(fetcher storage.DocumentFetcher) DocumentRepository {
	return &FetcherDocumentRepository{
		fetcher:   fetcher,
		validator: validation.NewURLValidator(),
	}
}

// FetchDocument validates the URL and retrieves the document bytes
func (r *FetcherDocumentRepository) FetchDocument(ctx context.Context, documentURL string) ([]byte, error) {
	if err := r.ValidateDocumentURL(documentURL); err != nil {
		return nil, err
	}
	return r.fetcher.FetchDocument(ctx, documentURL)
}

// ValidateDocumentURL validates if the provided URL is acceptable
func (r *FetcherDocumentRepository) ValidateDocumentURL(documentURL string) error {
	return r.validator.ValidateDocumentURL(documentURL)
}
