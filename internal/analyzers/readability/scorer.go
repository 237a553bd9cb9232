// internal/analyzers/readability/scorer.go
package readability

import (
	"context"
	"strings"
	"unicode/utf8"

	"nlp-service/internal/common/errors"
	"nlp-service/internal/common/logger"
	"nlp-service/internal/toolkit"
)

const (
	StageName = "readability"
	Label     = "Readability scoring"
)

// Weights for the two length signals; the raw score is normalized so that
// 20 length points span the whole 0..1 range.
const (
	sentenceWeight = 0.5
	wordWeight     = 0.3
	scoreScale     = 20.0
)

// Scorer rates text readability from average sentence and word length.
type Scorer struct {
	engine toolkit.Engine
	logger logger.Logger
}

func NewScorer(engine toolkit.Engine, log logger.Logger) *Scorer {
	return &Scorer{
		engine: engine,
		logger: log.WithFields(map[string]interface{}{"stage": StageName}),
	}
}

// Score returns a 0..1 readability score, higher meaning easier to read.
// Empty or whitespace-only text scores exactly 0. Token counts include
// punctuation tokens; word length is measured in runes.
func (s *Scorer) Score(ctx context.Context, text string) (float64, error) {
	if strings.TrimSpace(text) == "" {
		return 0.0, nil
	}
	if s.engine == nil {
		return 0, errors.NewCapabilityUnavailableError("NER capability")
	}

	sentences, err := s.engine.Sentences(text)
	if err != nil {
		s.logger.Error("sentence segmentation failed", map[string]interface{}{"error": err.Error()})
		return 0, errors.NewAnalysisFailedError(Label, err)
	}
	tokens, err := s.engine.Tokens(text)
	if err != nil {
		s.logger.Error("tokenization failed", map[string]interface{}{"error": err.Error()})
		return 0, errors.NewAnalysisFailedError(Label, err)
	}
	if len(sentences) == 0 || len(tokens) == 0 {
		return 0.0, nil
	}

	avgSentenceLength := float64(len(tokens)) / float64(len(sentences))

	totalRunes := 0
	for _, token := range tokens {
		totalRunes += utf8.RuneCountInString(token.Text)
	}
	avgWordLength := float64(totalRunes) / float64(len(tokens))

	raw := sentenceWeight*avgSentenceLength + wordWeight*avgWordLength
	score := 1.0 - raw/scoreScale
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}

	s.logger.Debug("readability scored", map[string]interface{}{"score": score})
	return score, nil
}
