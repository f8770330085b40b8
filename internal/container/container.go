package container

import (
	"fmt"
	"net/http"

	"go-passport-mrz/internal/config"
	"go-passport-mrz/internal/extractor"
	"go-passport-mrz/internal/factory"
	"go-passport-mrz/internal/logger"
	"go-passport-mrz/internal/observer"
	"go-passport-mrz/internal/repository"
	"go-passport-mrz/internal/service"
	"go-passport-mrz/internal/storage"
	"go-passport-mrz/internal/transport"
)

// Container holds all application dependencies
type Container struct {
	config             *config.Config
	documentFetcher    storage.DocumentFetcher
	documentRepository repository.DocumentRepository
	publisher          observer.Subject
	extractionService  service.ExtractionService
	handler            http.Handler
}

// NewContainer creates a new dependency injection container
func NewContainer() (*Container, error) {
	// Load configuration
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Build dependency graph
	documentFetcher, err := factory.NewStorageFactory().CreateStorage(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build storage backend: %w", err)
	}

	publisher := observer.NewEventPublisher()
	publisher.Subscribe(observer.NewLoggingObserver(logger.Logger))
	publisher.Subscribe(observer.NewMetricsObserver())

	orchestrator := extractor.NewOrchestrator(factory.NewEngineFactory(cfg), publisher)
	documentRepository := repository.NewFetcherDocumentRepository(documentFetcher)
	extractionService := service.NewExtractionService(documentRepository, orchestrator, publisher, cfg)
	handler := transport.NewHandler(extractionService, cfg)

	return &Container{
		config:             cfg,
		documentFetcher:    documentFetcher,
		documentRepository: documentRepository,
		publisher:          publisher,
		extractionService:  extractionService,
		handler:            handler,
	}, nil
}

// Handler returns the HTTP handler
func (c *Container) Handler() http.Handler {
	return c.handler
}

// Config returns the configuration
func (c *Container) Config() *config.Config {
	return c.config
}
