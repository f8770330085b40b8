package errors

import (
	"fmt"
	"net/http"
)

// ErrorType represents different categories of errors
type ErrorType string

const (
	ErrorTypeValidation    ErrorType = "validation"
	ErrorTypeNetwork       ErrorType = "network"
	ErrorTypeImageLoad     ErrorType = "image_load"
	ErrorTypeOcrEngine     ErrorType = "ocr_engine"
	ErrorTypePdfConversion ErrorType = "pdf_conversion"
	ErrorTypeMrzNotFound   ErrorType = "mrz_not_found"
	ErrorTypeTimeout       ErrorType = "timeout"
	ErrorTypeInternal      ErrorType = "internal"
)

// MrzNotFoundGuidance is the user-facing message for a terminal extraction
// failure. It is the only failure surfaced to end users.
const MrzNotFoundGuidance = "no machine-readable zone found; ensure the image is clear and the bottom two MRZ lines of the passport are fully visible"

// AppError represents a structured application error
type AppError struct {
	Type       ErrorType `json:"type"`
	Message    string    `json:"message"`
	StatusCode int       `json:"status_code"`
	Cause      error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewValidationError creates a new validation error
func NewValidationError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Message:    message,
		StatusCode: http.StatusBadRequest,
		Cause:      cause,
	}
}

// NewNetworkError creates a new network error
func NewNetworkError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeNetwork,
		Message:    message,
		StatusCode: http.StatusBadGateway,
		Cause:      cause,
	}
}

// NewImageLoadError reports that a source image could not be decoded. During
// a multi-pass run this is non-fatal; the orchestrator skips to the next pass.
func NewImageLoadError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeImageLoad,
		Message:    message,
		StatusCode: http.StatusUnprocessableEntity,
		Cause:      cause,
	}
}

// NewOcrEngineError reports a failure of the external OCR engine call.
// Non-fatal within a run; the orchestrator skips to the next pass.
func NewOcrEngineError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeOcrEngine,
		Message:    message,
		StatusCode: http.StatusUnprocessableEntity,
		Cause:      cause,
	}
}

// NewPdfConversionError reports that a PDF could not be turned into page
// images. Fatal: extraction cannot proceed without pages.
func NewPdfConversionError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypePdfConversion,
		Message:    message,
		StatusCode: http.StatusUnprocessableEntity,
		Cause:      cause,
	}
}

// NewMrzNotFoundError is the terminal failure when no pass on any page
// located an MRZ.
func NewMrzNotFoundError() *AppError {
	return &AppError{
		Type:       ErrorTypeMrzNotFound,
		Message:    MrzNotFoundGuidance,
		StatusCode: http.StatusNotFound,
	}
}

// NewTimeoutError creates a new timeout error
func NewTimeoutError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeTimeout,
		Message:    message,
		StatusCode: http.StatusGatewayTimeout,
		Cause:      cause,
	}
}

// NewInternalError creates a new internal error
func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// IsType checks if the error is of a specific type
func IsType(err error, errorType ErrorType) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Type == errorType
	}
	return false
}

// GetStatusCode extracts the HTTP status code from an error
func GetStatusCode(err error) int {
	if appErr, ok := err.(*AppError); ok {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}
