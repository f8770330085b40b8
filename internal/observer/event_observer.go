package observer

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// ExtractionEvent represents an extraction lifecycle event
type ExtractionEvent struct {
	EventType      EventType              `json:"event_type"`
	Timestamp      time.Time              `json:"timestamp"`
	DocumentURL    string                 `json:"document_url"`
	ProcessingTime time.Duration          `json:"processing_time"`
	Success        bool                   `json:"success"`
	ErrorMessage   string                 `json:"error_message,omitempty"`
	Metadata       map[string]interface{} `json:"metadata,omitempty"`
}

// EventType represents the type of extraction event
type EventType string

const (
	// ExtractionStarted when extraction begins
	ExtractionStarted EventType = "extraction_started"
	// ExtractionCompleted when extraction finishes successfully
	ExtractionCompleted EventType = "extraction_completed"
	// ExtractionFailed when extraction fails
	ExtractionFailed EventType = "extraction_failed"
	// DocumentFetched when the source document is successfully fetched
	DocumentFetched EventType = "document_fetched"
	// DocumentFetchFailed when the document fetch fails
	DocumentFetchFailed EventType = "document_fetch_failed"
	// PassCompleted when one OCR pass over one page finishes
	PassCompleted EventType = "pass_completed"
)

// Observer defines the interface for event observers
type Observer interface {
	OnEvent(ctx context.Context, event ExtractionEvent)
	GetObserverName() string
}

// Subject defines the interface for event publishers
type Subject interface {
	Subscribe(observer Observer)
	Unsubscribe(observer Observer)
	NotifyObservers(ctx context.Context, event ExtractionEvent)
}

// LoggingObserver logs extraction events
type LoggingObserver struct {
	logger *logrus.Logger
}

// NewLoggingObserver creates a new logging observer
func NewLoggingObserver(logger *logrus.Logger) Observer {
	return &LoggingObserver{
		logger: logger,
	}
}

// OnEvent handles extraction events by logging them
func (o *LoggingObserver) OnEvent(ctx context.Context, event ExtractionEvent) {
	fields := logrus.Fields{
		"event_type":      event.EventType,
		"document_url":    event.DocumentURL,
		"processing_time": event.ProcessingTime,
		"success":         event.Success,
	}

	if event.ErrorMessage != "" {
		fields["error"] = event.ErrorMessage
	}

	if event.Metadata != nil {
		for k, v := range event.Metadata {
			fields[k] = v
		}
	}

	switch event.EventType {
	case ExtractionStarted:
		o.logger.WithFields(fields).Info("Passport extraction started")
	case ExtractionCompleted:
		o.logger.WithFields(fields).Info("Passport extraction completed")
	case ExtractionFailed:
		o.logger.WithFields(fields).Error("Passport extraction failed")
	case DocumentFetched:
		o.logger.WithFields(fields).Debug("Document fetched successfully")
	case DocumentFetchFailed:
		o.logger.WithFields(fields).Error("Document fetch failed")
	case PassCompleted:
		o.logger.WithFields(fields).Debug("OCR pass completed")
	default:
		o.logger.WithFields(fields).Info("Extraction event occurred")
	}
}

// GetObserverName returns the observer name
func (o *LoggingObserver) GetObserverName() string {
	return "logging_observer"
}

// MetricsObserver collects metrics from extraction events
type MetricsObserver struct {
	mu                    sync.RWMutex
	totalExtractions      int64
	successfulExtractions int64
	failedExtractions     int64
	ocrPasses             int64
	totalProcessingTime   time.Duration
}

// NewMetricsObserver creates a new metrics observer
func NewMetricsObserver() Observer {
	return &MetricsObserver{}
}

// OnEvent handles extraction events by collecting metrics
func (o *MetricsObserver) OnEvent(ctx context.Context, event ExtractionEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()

	switch event.EventType {
	case ExtractionStarted:
		o.totalExtractions++
	case ExtractionCompleted:
		o.successfulExtractions++
		o.totalProcessingTime += event.ProcessingTime
	case ExtractionFailed:
		o.failedExtractions++
	case PassCompleted:
		o.ocrPasses++
	}
}

// GetObserverName returns the observer name
func (o *MetricsObserver) GetObserverName() string {
	return "metrics_observer"
}

// GetMetrics returns current metrics
func (o *MetricsObserver) GetMetrics() map[string]interface{} {
	o.mu.RLock()
	defer o.mu.RUnlock()

	avgProcessingTime := time.Duration(0)
	if o.successfulExtractions > 0 {
		avgProcessingTime = o.totalProcessingTime / time.Duration(o.successfulExtractions)
	}

	return map[string]interface{}{
		"total_extractions":      o.totalExtractions,
		"successful_extractions": o.successfulExtractions,
		"failed_extractions":     o.failedExtractions,
		"ocr_passes":             o.ocrPasses,
		"total_processing_time":  o.totalProcessingTime,
		"avg_processing_time":    avgProcessingTime,
	}
}

// EventPublisher implements the Subject interface
type EventPublisher struct {
	mu        sync.RWMutex
	observers []Observer
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher() Subject {
	return &EventPublisher{
		observers: make([]Observer, 0),
	}
}

// Subscribe adds an observer
func (p *EventPublisher) Subscribe(observer Observer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.observers = append(p.observers, observer)
}

// Unsubscribe removes an observer
func (p *EventPublisher) Unsubscribe(observer Observer) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i, obs := range p.observers {
		if obs.GetObserverName() == observer.GetObserverName() {
			p.observers = append(p.observers[:i], p.observers[i+1:]...)
			break
		}
	}
}

// NotifyObservers notifies all observers of an event
func (p *EventPublisher) NotifyObservers(ctx context.Context, event ExtractionEvent) {
	p.mu.RLock()
	observers := make([]Observer, len(p.observers))
	copy(observers, p.observers)
	p.mu.RUnlock()

	// Notify observers concurrently
	for _, observer := range observers {
		go func(obs Observer) {
			defer func() {
				if r := recover(); r != nil {
					// Log panic but don't crash the application
					logrus.WithField("observer", obs.GetObserverName()).
						WithField("panic", r).
						Error("Observer panicked while handling event")
				}
			}()
			obs.OnEvent(ctx, event)
		}(observer)
	}
}
