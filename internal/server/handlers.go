// internal/server/handlers.go
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nlp-service/internal/common/errors"
	"nlp-service/internal/common/logger"
	"nlp-service/internal/common/metrics"
	"nlp-service/internal/models"
)

// Handlers holds the route implementations and their dependencies.
type Handlers struct {
	deps         Dependencies
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

func NewHandlers(deps Dependencies, log logger.Logger) *Handlers {
	return &Handlers{
		deps:         deps,
		errorHandler: errors.NewErrorHandler(log),
		logger:       log.WithFields(map[string]interface{}{"component": "handlers"}),
	}
}

const serviceName = "nlp-service"

// Health reports per-capability availability. The process stays healthy in
// degraded mode; callers decide what to do with missing capabilities.
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": serviceName,
		"capabilities": gin.H{
			"ner":       h.deps.Engine != nil,
			"sentiment": h.deps.Sentiment != nil,
			"cache":     h.deps.Store.Available(),
		},
	})
}

func (h *Handlers) Entities(c *gin.Context) {
	req, ok := h.bindText(c)
	if !ok {
		return
	}
	result, err := h.deps.Analyzers.Entities.Extract(c.Request.Context(), req.Text)
	if err != nil {
		h.errorHandler.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handlers) Topics(c *gin.Context) {
	req, ok := h.bindText(c)
	if !ok {
		return
	}
	result, err := h.deps.Analyzers.Topics.Extract(c.Request.Context(), req.Text)
	if err != nil {
		h.errorHandler.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handlers) Sentiment(c *gin.Context) {
	req, ok := h.bindText(c)
	if !ok {
		return
	}
	result, err := h.deps.Analyzers.Sentiment.Score(c.Request.Context(), req.Text)
	if err != nil {
		h.errorHandler.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handlers) Ambiguities(c *gin.Context) {
	req, ok := h.bindText(c)
	if !ok {
		return
	}
	result, err := h.deps.Analyzers.Ambiguity.Detect(c.Request.Context(), req.Text)
	if err != nil {
		h.errorHandler.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handlers) Timeline(c *gin.Context) {
	req, ok := h.bindText(c)
	if !ok {
		return
	}
	result, err := h.deps.Analyzers.Timeline.Extract(c.Request.Context(), req.Text)
	if err != nil {
		h.errorHandler.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handlers) KeyPhrases(c *gin.Context) {
	req, ok := h.bindText(c)
	if !ok {
		return
	}
	result, err := h.deps.Analyzers.KeyPhrases.Extract(c.Request.Context(), req.Text)
	if err != nil {
		h.errorHandler.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Analyze runs the full pipeline. Every stage failure, including a missing
// capability, surfaces as the same generic aggregate failure; the cause
// stays in the logs.
func (h *Handlers) Analyze(c *gin.Context) {
	req, ok := h.bindText(c)
	if !ok {
		return
	}
	result, err := h.deps.Pipeline.Analyze(c.Request.Context(), req)
	if err != nil {
		h.errorHandler.Respond(c, errors.NewAnalysisFailedError("NLP analysis", err))
		return
	}
	c.JSON(http.StatusOK, result)
}

// CacheStatus never fails the request; backend state is reported in the
// response body instead.
func (h *Handlers) CacheStatus(c *gin.Context) {
	if !h.deps.Store.Available() {
		c.JSON(http.StatusOK, gin.H{"status": "unavailable"})
		return
	}

	status, err := h.deps.Store.Status(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"status": "error", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":            "available",
		"connected_clients": status.ConnectedClients,
		"used_memory":       status.UsedMemory,
		"total_keys":        status.TotalKeys,
	})
}

func (h *Handlers) CacheClear(c *gin.Context) {
	if !h.deps.Store.Available() {
		h.errorHandler.Respond(c, errors.NewCacheUnavailableError("clear"))
		return
	}

	if err := h.deps.Store.Flush(c.Request.Context()); err != nil {
		metrics.CacheOperations.WithLabelValues("clear", "error").Inc()
		h.errorHandler.Respond(c, errors.NewCacheOperationFailedError("clear", err))
		return
	}

	metrics.CacheOperations.WithLabelValues("clear", "success").Inc()
	c.JSON(http.StatusOK, gin.H{"message": "Cache cleared successfully"})
}

// bindText parses the shared request body. A missing text field is an empty
// text, not an error; only malformed JSON is rejected.
func (h *Handlers) bindText(c *gin.Context) (*models.TextRequest, bool) {
	var req models.TextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorHandler.Respond(c, errors.NewInvalidRequestError(err.Error()))
		return nil, false
	}
	return &req, true
}
