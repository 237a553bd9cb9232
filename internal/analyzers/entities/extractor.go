// internal/analyzers/entities/extractor.go
package entities

import (
	"context"

	"nlp-service/internal/common/errors"
	"nlp-service/internal/common/logger"
	"nlp-service/internal/models"
	"nlp-service/internal/toolkit"
)

const (
	StageName = "entities"
	Label     = "Entity extraction"
)

// Every span carries the same fixed confidence; the underlying model does
// not expose per-span probabilities.
const spanConfidence = 0.8

// Extractor runs named-entity recognition over raw text.
type Extractor struct {
	engine toolkit.Engine
	logger logger.Logger
}

// NewExtractor creates the entity stage. A nil engine is allowed and makes
// every call report the capability as unavailable.
func NewExtractor(engine toolkit.Engine, log logger.Logger) *Extractor {
	return &Extractor{
		engine: engine,
		logger: log.WithFields(map[string]interface{}{"stage": StageName}),
	}
}

// Extract returns one Entity per detected span, with rune offsets into the
// original text.
func (e *Extractor) Extract(ctx context.Context, text string) ([]models.Entity, error) {
	if e.engine == nil {
		return nil, errors.NewCapabilityUnavailableError("NER capability")
	}

	spans, err := e.engine.Entities(text)
	if err != nil {
		e.logger.Error("entity extraction failed", map[string]interface{}{"error": err.Error()})
		return nil, errors.NewAnalysisFailedError(Label, err)
	}

	result := make([]models.Entity, 0, len(spans))
	for _, span := range spans {
		result = append(result, models.Entity{
			Text:       span.Text,
			Label:      span.Label,
			Start:      span.Start,
			End:        span.End,
			Confidence: spanConfidence,
		})
	}

	e.logger.Debug("entities extracted", map[string]interface{}{"count": len(result)})
	return result, nil
}
