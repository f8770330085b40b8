package repository

import "context"

// DocumentRepository defines the interface for passport document access
type DocumentRepository interface {
	// FetchDocument retrieves the raw document bytes behind a URL
	FetchDocument(ctx context.Context, documentURL string) ([]byte, error)

	// ValidateDocumentURL validates if the provided URL is acceptable
	ValidateDocumentURL(documentURL string) error
}
