package factory

import (
	"fmt"

	"go-passport-mrz/internal/config"
	"go-passport-mrz/internal/ocr"
	"go-passport-mrz/internal/storage"
)

// StorageType represents different types of storage backends
type StorageType string

const (
	// HTTPStorage for HTTP-based document fetching
	HTTPStorage StorageType = "http"
	// AzureStorage for Azure blob storage
	AzureStorage StorageType = "azure"
)

// StorageFactory creates document storage implementations
type StorageFactory interface {
	CreateStorage(cfg *config.Config) (storage.DocumentFetcher, error)
}

// storageFactory implements StorageFactory
type storageFactory struct{}

// NewStorageFactory creates a new storage factory
func NewStorageFactory() StorageFactory {
	return &storageFactory{}
}

// CreateStorage creates the document fetcher named by the configuration
func (f *storageFactory) CreateStorage(cfg *config.Config) (storage.DocumentFetcher, error) {
	switch StorageType(cfg.StorageBackend) {
	case HTTPStorage:
		return storage.NewHTTPDocumentFetcher(), nil
	case AzureStorage:
		return storage.NewAzureStorage(cfg.AzureAccountName, cfg.AzureAccountKey)
	default:
		return nil, fmt.Errorf("unsupported storage backend: %s", cfg.StorageBackend)
	}
}

// NewEngineFactory returns an OCR engine factory for the configured
// recognition language. Every extraction run builds and releases its own
// engine through it.
func NewEngineFactory(cfg *config.Config) ocr.EngineFactory {
	language := cfg.OCRLanguage
	return func() (ocr.Engine, error) {
		return ocr.NewTesseractEngine(language)
	}
}
