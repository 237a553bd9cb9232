// internal/common/errors/handler.go
package errors

import (
	"time"

	"github.com/gin-gonic/gin"
)

// ErrorHandler writes request errors to HTTP responses with standardized handling
type ErrorHandler struct {
	logger Logger
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// Respond handles any error raised while serving a request. The full cause is
// logged server-side; the client sees only the mapped status and the public
// message, never Details.
func (h *ErrorHandler) Respond(c *gin.Context, err error) {
	// Normalize to StandardError
	stdErr := h.normalizeError(err)

	// Convert to transport form
	httpErr := ConvertToHTTPError(stdErr)

	// Log
	h.logError(c, stdErr, httpErr)

	c.AbortWithStatusJSON(httpErr.Status, gin.H{"error": httpErr.Message})
}

// normalizeError ensures we always have a StandardError
func (h *ErrorHandler) normalizeError(err error) *StandardError {
	if stdErr, ok := err.(*StandardError); ok {
		return stdErr
	}
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Internal server error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func (h *ErrorHandler) logError(c *gin.Context, stdErr *StandardError, httpErr *HTTPError) {
	fields := map[string]interface{}{
		"route":         c.FullPath(),
		"method":        c.Request.Method,
		"status":        httpErr.Status,
		"errorCode":     string(stdErr.Code),
		"message":       stdErr.Message,
		"details":       stdErr.Details,
		"errorCategory": GetErrorCategory(stdErr.Code),
	}
	if requestID := c.GetString("request_id"); requestID != "" {
		fields["requestId"] = requestID
	}
	for k, v := range stdErr.Metadata {
		fields[k] = v
	}

	h.logger.Error("Request failed", fields)
}
