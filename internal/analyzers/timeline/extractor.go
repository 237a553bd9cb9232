// internal/analyzers/timeline/extractor.go
package timeline

import (
	"context"
	"strings"

	"nlp-service/internal/common/errors"
	"nlp-service/internal/common/logger"
	"nlp-service/internal/models"
	"nlp-service/internal/toolkit"
)

const (
	StageName = "timeline"
	Label     = "Timeline extraction"
)

const (
	entityConfidence  = 0.7
	keywordConfidence = 0.6
)

// Entity types that anchor a timeline event directly.
var timeEntityLabels = map[string]bool{
	"DATE":  true,
	"TIME":  true,
	"EVENT": true,
}

// Scanned in declaration order; the first keyword contained in a sentence
// claims that sentence and the remaining keywords are skipped. Containment
// is plain substring matching, exactly one event per sentence at most.
var temporalKeywords = []string{
	"yesterday", "today", "tomorrow", "next week", "last month",
	"ago", "later", "before", "after",
}

// Extractor merges entity-derived events with sentence-level temporal
// keyword matches, entity events first.
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

// Extract returns timeline events in emission order. Timestamps stay nil;
// surfacing the temporal reference is the contract, resolving it is not.
func (e *Extractor) Extract(ctx context.Context, text string) ([]models.TimelineEvent, error) {
	if e.engine == nil {
		return nil, errors.NewCapabilityUnavailableError("NER capability")
	}

	spans, err := e.engine.Entities(text)
	if err != nil {
		e.logger.Error("entity lookup failed", map[string]interface{}{"error": err.Error()})
		return nil, errors.NewAnalysisFailedError(Label, err)
	}

	events := make([]models.TimelineEvent, 0, len(spans))
	for _, span := range spans {
		if !timeEntityLabels[span.Label] {
			continue
		}
		events = append(events, models.TimelineEvent{
			Event:      span.Text,
			Reference:  span.Label,
			Confidence: entityConfidence,
		})
	}

	sentences, err := e.engine.Sentences(text)
	if err != nil {
		e.logger.Error("sentence segmentation failed", map[string]interface{}{"error": err.Error()})
		return nil, errors.NewAnalysisFailedError(Label, err)
	}

	for _, sentence := range sentences {
		lowered := strings.ToLower(sentence)
		for _, keyword := range temporalKeywords {
			if strings.Contains(lowered, keyword) {
				events = append(events, models.TimelineEvent{
					Event:      strings.TrimSpace(sentence),
					Reference:  "temporal_keyword_" + keyword,
					Confidence: keywordConfidence,
				})
				break
			}
		}
	}

	e.logger.Debug("timeline events extracted", map[string]interface{}{"count": len(events)})
	return events, nil
}
