// internal/analyzers/sentiment/scorer.go
package sentiment

import (
	"context"

	"nlp-service/internal/common/errors"
	"nlp-service/internal/common/logger"
	"nlp-service/internal/models"
	"nlp-service/internal/toolkit"
)

const (
	StageName = "sentiment"
	Label     = "Sentiment analysis"
)

// Compound scores at or beyond this magnitude pick a polar label; anything
// strictly inside the band is neutral. Both boundaries are inclusive.
const labelThreshold = 0.05

// Scorer runs lexicon-based polarity scoring.
type Scorer struct {
	analyzer toolkit.SentimentAnalyzer
	logger   logger.Logger
}

func NewScorer(analyzer toolkit.SentimentAnalyzer, log logger.Logger) *Scorer {
	return &Scorer{
		analyzer: analyzer,
		logger:   log.WithFields(map[string]interface{}{"stage": StageName}),
	}
}

// Score returns the four polarity components verbatim plus a discrete label
// derived from the compound score.
func (s *Scorer) Score(ctx context.Context, text string) (*models.Sentiment, error) {
	if s.analyzer == nil {
		return nil, errors.NewCapabilityUnavailableError("Sentiment analyzer")
	}

	polarity, err := s.analyzer.PolarityScores(text)
	if err != nil {
		s.logger.Error("polarity scoring failed", map[string]interface{}{"error": err.Error()})
		return nil, errors.NewAnalysisFailedError(Label, err)
	}

	result := &models.Sentiment{
		Compound: polarity.Compound,
		Positive: polarity.Positive,
		Negative: polarity.Negative,
		Neutral:  polarity.Neutral,
		Label:    classify(polarity.Compound),
	}

	s.logger.Debug("sentiment scored", map[string]interface{}{
		"compound": result.Compound,
		"label":    result.Label,
	})
	return result, nil
}

func classify(compound float64) string {
	switch {
	case compound >= labelThreshold:
		return "positive"
	case compound <= -labelThreshold:
		return "negative"
	default:
		return "neutral"
	}
}
