// internal/analyzers/keyphrases/extractor.go
package keyphrases

import (
	"context"
	"slices"
	"strings"
	"unicode/utf8"

	"nlp-service/internal/common/errors"
	"nlp-service/internal/common/logger"
	"nlp-service/internal/toolkit"
)

const (
	StageName = "key_phrases"
	Label     = "Key phrase extraction"
)

const maxPhrases = 20

// Extractor collects noun phrases and entity texts as key phrase candidates.
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

// Extract returns up to 20 key phrases: noun phrases longer than 2
// characters whose lowercased form is not a stop word, in chunk order,
// followed by entity texts not already collected. Entity membership is
// checked verbatim, case-sensitively, against the growing list, and the
// cap applies after the entity pass.
func (e *Extractor) Extract(ctx context.Context, text string) ([]string, error) {
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

	phrases := make([]string, 0, len(chunks)+len(spans))
	for _, chunk := range chunks {
		trimmed := strings.TrimSpace(chunk)
		if utf8.RuneCountInString(trimmed) <= 2 {
			continue
		}
		if stopWords[strings.ToLower(trimmed)] {
			continue
		}
		phrases = append(phrases, trimmed)
	}
	for _, span := range spans {
		if !slices.Contains(phrases, span.Text) {
			phrases = append(phrases, span.Text)
		}
	}

	if len(phrases) > maxPhrases {
		phrases = phrases[:maxPhrases]
	}

	e.logger.Debug("key phrases extracted", map[string]interface{}{"count": len(phrases)})
	return phrases, nil
}
