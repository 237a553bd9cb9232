// internal/analyzers/sentiment/scorer_test.go
package sentiment

import (
	"context"
	goerrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nlp-service/internal/common/errors"
	"nlp-service/internal/common/logger"
	"nlp-service/internal/toolkit"
)

// ==========================
// Test Doubles
// ==========================

type fakeAnalyzer struct {
	polarity toolkit.Polarity
	err      error
}

func (f *fakeAnalyzer) PolarityScores(text string) (toolkit.Polarity, error) {
	return f.polarity, f.err
}

// ==========================
// Scoring Tests
// ==========================

func TestScore(t *testing.T) {
	analyzer := &fakeAnalyzer{
		polarity: toolkit.Polarity{Compound: 0.8, Positive: 0.6, Negative: 0.1, Neutral: 0.3},
	}
	scorer := NewScorer(analyzer, logger.NewTestLogger(t))

	result, err := scorer.Score(context.Background(), "what a great day")
	require.NoError(t, err)

	assert.Equal(t, 0.8, result.Compound)
	assert.Equal(t, 0.6, result.Positive)
	assert.Equal(t, 0.1, result.Negative)
	assert.Equal(t, 0.3, result.Neutral)
	assert.Equal(t, "positive", result.Label)
}

func TestClassifyBoundaries(t *testing.T) {
	tests := []struct {
		name     string
		compound float64
		expected string
	}{
		{"strongly positive", 0.9, "positive"},
		{"exactly at positive boundary", 0.05, "positive"},
		{"just below positive boundary", 0.0499, "neutral"},
		{"zero", 0.0, "neutral"},
		{"just above negative boundary", -0.0499, "neutral"},
		{"exactly at negative boundary", -0.05, "negative"},
		{"strongly negative", -0.9, "negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, classify(tt.compound))
		})
	}
}

// ==========================
// Failure Modes
// ==========================

func TestScoreAnalyzerUnavailable(t *testing.T) {
	scorer := NewScorer(nil, logger.NewTestLogger(t))

	result, err := scorer.Score(context.Background(), "text")
	assert.Nil(t, result)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeCapabilityUnavailable))
	assert.Contains(t, err.Error(), "Sentiment analyzer not available")
}

func TestScoreAnalyzerError(t *testing.T) {
	analyzer := &fakeAnalyzer{err: goerrors.New("lexicon missing")}
	scorer := NewScorer(analyzer, logger.NewTestLogger(t))

	result, err := scorer.Score(context.Background(), "text")
	assert.Nil(t, result)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeAnalysisFailed))
	assert.Contains(t, err.Error(), "Sentiment analysis failed")
}
