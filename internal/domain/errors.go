package domain

import (
	"fmt"
	"time"
)

// Error codes for different failure scenarios
const (
	ErrInvalidInput   = "INVALID_INPUT"
	ErrModelLoad      = "MODEL_LOAD_ERROR"
	ErrCatalogConfig  = "CATALOG_CONFIGURATION_ERROR"
	ErrAnalysis       = "ANALYSIS_FAILURE"
	ErrAuthentication = "AUTHENTICATION_ERROR"
	ErrDatabaseError  = "DATABASE_ERROR"
	ErrRateLimit      = "RATE_LIMIT_EXCEEDED"
	ErrInternalServer = "INTERNAL_SERVER_ERROR"
)

// APIError is the standardized error body surfaced by the transport layer.
type APIError struct {
	Code          string    `json:"code"`
	Message       string    `json:"message"`
	Details       string    `json:"details,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
	CorrelationID string    `json:"correlation_id,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewAPIError creates a new APIError with timestamp
func NewAPIError(code, message, details, correlationID string) *APIError {
	return &APIError{
		Code:          code,
		Message:       message,
		Details:       details,
		Timestamp:     time.Now().UTC(),
		CorrelationID: correlationID,
	}
}

// InvalidInputError reports an empty or malformed observed panel.
// Surfaced directly to the caller; never retried.
type InvalidInputError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (e *InvalidInputError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid input: %s", e.Message)
	}
	return fmt.Sprintf("invalid input for '%s': %s", e.Field, e.Message)
}

// ModelLoadError reports a weight file that is present but unreadable.
type ModelLoadError struct {
	Path string
	Err  error
}

func (e *ModelLoadError) Error() string {
	return fmt.Sprintf("failed to load model %s: %v", e.Path, e.Err)
}

func (e *ModelLoadError) Unwrap() error { return e.Err }

// CatalogConfigurationError reports a reference-range entry with an
// inconsistent shape. Detected at startup, never per request.
type CatalogConfigurationError struct {
	Panel     string
	Section   string
	Parameter string
	Message   string
}

func (e *CatalogConfigurationError) Error() string {
	return fmt.Sprintf("catalog entry %s/%s/%s: %s", e.Panel, e.Section, e.Parameter, e.Message)
}

// AnalysisError wraps an unexpected failure during scoring or
// interpretation with the stage it occurred in.
type AnalysisError struct {
	Stage string
	Err   error
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("analysis failed at %s: %v", e.Stage, e.Err)
}

func (e *AnalysisError) Unwrap() error { return e.Err }
