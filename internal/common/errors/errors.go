// Package errors provides standardized error handling for the analysis HTTP surface.
package errors

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeCapabilityUnavailable ErrorCode = "CAPABILITY_UNAVAILABLE"
	ErrCodeAnalysisFailed        ErrorCode = "ANALYSIS_FAILED"

	ErrCodeCacheUnavailable     ErrorCode = "CACHE_UNAVAILABLE"
	ErrCodeCacheOperationFailed ErrorCode = "CACHE_OPERATION_FAILED"

	ErrCodeInvalidRequest ErrorCode = "INVALID_REQUEST"
	ErrCodeInternal       ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. HTTP Error Integration
// ==========================

// HTTPError is the transport-facing form of a StandardError. Only Message
// crosses the wire; Details and Metadata stay in the server logs.
type HTTPError struct {
	Status  int    `json:"-"`
	Message string `json:"error"`
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTPError[%d]: %s", e.Status, e.Message)
}

// HTTPStatusMapping maps internal error codes to HTTP status codes.
var HTTPStatusMapping = map[ErrorCode]int{
	ErrCodeCapabilityUnavailable: http.StatusServiceUnavailable,
	ErrCodeAnalysisFailed:        http.StatusInternalServerError,
	ErrCodeCacheUnavailable:      http.StatusServiceUnavailable,
	ErrCodeCacheOperationFailed:  http.StatusInternalServerError,
	ErrCodeInvalidRequest:        http.StatusBadRequest,
	ErrCodeInternal:              http.StatusInternalServerError,
}

// ConvertToHTTPError converts a StandardError to its transport form.
func ConvertToHTTPError(stdErr *StandardError) *HTTPError {
	status, exists := HTTPStatusMapping[stdErr.Code]
	if !exists {
		status = http.StatusInternalServerError // Fallback
	}

	return &HTTPError{
		Status:  status,
		Message: stdErr.Message,
	}
}

// ==========================
// 3. Error Constructors
// ==========================

// NewCapabilityUnavailableError signals that an NLP capability never loaded.
// The capability string is the public name, e.g. "NER capability".
func NewCapabilityUnavailableError(capability string) *StandardError {
	return &StandardError{
		Code:      ErrCodeCapabilityUnavailable,
		Message:   fmt.Sprintf("%s not available", capability),
		Details:   fmt.Sprintf("capability: %s, handle is nil", capability),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewAnalysisFailedError wraps a stage failure. The label is the public stage
// name ("Entity extraction", "Sentiment analysis", ...); the cause lands in
// Details and is never echoed to clients.
func NewAnalysisFailedError(label string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeAnalysisFailed,
		Message:   fmt.Sprintf("%s failed", label),
		Details:   err.Error(),
		Retryable: false,
		Metadata:  map[string]interface{}{"stage": label},
		Timestamp: time.Now().UTC(),
	}
}

// NewCacheUnavailableError signals that no cache backend is connected.
func NewCacheUnavailableError(operation string) *StandardError {
	return &StandardError{
		Code:      ErrCodeCacheUnavailable,
		Message:   "Cache not available",
		Details:   fmt.Sprintf("operation: %s", operation),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCacheOperationFailedError wraps a failure on a live cache connection.
func NewCacheOperationFailedError(operation string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCacheOperationFailed,
		Message:   fmt.Sprintf("Cache %s failed", operation),
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidRequestError creates a non-retryable malformed request error.
func NewInvalidRequestError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidRequest,
		Message:   "Invalid request body",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInternalError wraps an unclassified failure.
func NewInternalError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Internal server error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 4. Utility Functions
// ==========================

// IsCode reports whether err is a StandardError carrying the given code.
func IsCode(err error, code ErrorCode) bool {
	stdErr, ok := err.(*StandardError)
	return ok && stdErr.Code == code
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "CAPABILITY"):
		return "CAPABILITY"
	case strings.Contains(codeStr, "ANALYSIS"):
		return "ANALYSIS"
	case strings.Contains(codeStr, "CACHE"):
		return "CACHE"
	case strings.Contains(codeStr, "REQUEST"):
		return "REQUEST"
	default:
		return "OTHER"
	}
}
