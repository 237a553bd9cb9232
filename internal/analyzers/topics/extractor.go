// internal/analyzers/topics/extractor.go
package topics

import (
	"context"
	"strings"
	"unicode/utf8"

	"nlp-service/internal/common/errors"
	"nlp-service/internal/common/logger"
	"nlp-service/internal/models"
	"nlp-service/internal/toolkit"
)

const (
	StageName = "topics"
	Label     = "Topic extraction"
)

const (
	topicConfidence = 0.7
	maxTopics       = 10
)

// Entity types concrete enough to stand alone as topics.
var topicEntityLabels = map[string]bool{
	"PERSON":  true,
	"ORG":     true,
	"GPE":     true,
	"PRODUCT": true,
}

// Extractor derives coarse topics from noun phrases and named entities.
type Extractor struct {
	engine toolkit.Engine
	logger logger.Logger
}

func NewExtractor(engine toolkit.Engine, log logger.Logger) *Extractor {
	return &Extractor{
		engine: engine,
		logger: log.WithFields(map[string]interface{}{"stage": StageName}),
	}
}

// Extract returns up to 10 lowercased topics, deduplicated in first-seen
// order: noun-phrase candidates first, then qualifying entity texts.
func (e *Extractor) Extract(ctx context.Context, text string) ([]models.Topic, error) {
	if e.engine == nil {
		return nil, errors.NewCapabilityUnavailableError("NER capability")
	}

	chunks, err := e.engine.NounChunks(text)
	if err != nil {
		e.logger.Error("noun chunking failed", map[string]interface{}{"error": err.Error()})
		return nil, errors.NewAnalysisFailedError(Label, err)
	}
	spans, err := e.engine.Entities(text)
	if err != nil {
		e.logger.Error("entity lookup failed", map[string]interface{}{"error": err.Error()})
		return nil, errors.NewAnalysisFailedError(Label, err)
	}

	candidates := make([]string, 0, len(chunks)+len(spans))
	for _, chunk := range chunks {
		if utf8.RuneCountInString(strings.TrimSpace(chunk)) > 2 {
			candidates = append(candidates, strings.ToLower(chunk))
		}
	}
	for _, span := range spans {
		if topicEntityLabels[span.Label] {
			candidates = append(candidates, strings.ToLower(span.Text))
		}
	}

	seen := make(map[string]bool, len(candidates))
	topics := make([]models.Topic, 0, maxTopics)
	for _, candidate := range candidates {
		if seen[candidate] {
			continue
		}
		seen[candidate] = true
		topics = append(topics, models.Topic{
			Name:       candidate,
			Confidence: topicConfidence,
			Keywords:   strings.Fields(candidate),
		})
		if len(topics) == maxTopics {
			break
		}
	}

	e.logger.Debug("topics extracted", map[string]interface{}{"count": len(topics)})
	return topics, nil
}
