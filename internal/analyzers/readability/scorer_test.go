// internal/analyzers/readability/scorer_test.go
package readability

import (
	"context"
	goerrors "errors"
	"strings"
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

type fakeEngine struct {
	sentences    []string
	sentencesErr error
	tokens       []toolkit.Token
	tokensErr    error
}

func (f *fakeEngine) Entities(text string) ([]toolkit.Span, error) { return nil, nil }
func (f *fakeEngine) Sentences(text string) ([]string, error) { return f.sentences, f.sentencesErr }
func (f *fakeEngine) Tokens(text string) ([]toolkit.Token, error) { return f.tokens, f.tokensErr }
func (f *fakeEngine) NounChunks(text string) ([]string, error) { return nil, nil }

func words(list ...string) []toolkit.Token {
	toks := make([]toolkit.Token, 0, len(list))
	for _, w := range list {
		toks = append(toks, toolkit.Token{Text: w})
	}
	return toks
}

// ==========================
// Scoring Tests
// ==========================

func TestScore(t *testing.T) {
	// 8 tokens over 2 sentences, every token 4 runes:
	// raw = 0.5*4 + 0.3*4 = 3.2, score = 1 - 3.2/20 = 0.84.
	engine := &fakeEngine{
		sentences: []string{"one.", "two."},
		tokens:    words("aaaa", "bbbb", "cccc", "dddd", "eeee", "ffff", "gggg", "hhhh"),
	}
	scorer := NewScorer(engine, logger.NewTestLogger(t))

	score, err := scorer.Score(context.Background(), "some text")
	require.NoError(t, err)
	assert.InDelta(t, 0.84, score, 1e-9)
}

func TestScoreClampsToZero(t *testing.T) {
	// One long sentence of long words pushes the raw score past the scale.
	engine := &fakeEngine{
		sentences: []string{"the only sentence"},
		tokens:    words(strings.Split(strings.Repeat("wordiness ", 50), " ")[:50]...),
	}
	scorer := NewScorer(engine, logger.NewTestLogger(t))

	score, err := scorer.Score(context.Background(), "some text")
	require.NoError(t, err)
	assert.Equal(t, 0.0, score)
}

func TestScoreStaysInRange(t *testing.T) {
	tests := []struct {
		name      string
		sentences []string
		tokens    []toolkit.Token
	}{
		{"short words", []string{"a."}, words("a", "b", ".")},
		{"mixed", []string{"x.", "y."}, words("tiny", "words", "here", ".", ".")},
		{"unicode words", []string{"z."}, words("café", "Zoë", "naïve")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := &fakeEngine{sentences: tt.sentences, tokens: tt.tokens}
			scorer := NewScorer(engine, logger.NewTestLogger(t))

			score, err := scorer.Score(context.Background(), "some text")
			require.NoError(t, err)
			assert.GreaterOrEqual(t, score, 0.0)
			assert.LessOrEqual(t, score, 1.0)
		})
	}
}

// ==========================
// Edge Cases
// ==========================

func TestScoreEmptyText(t *testing.T) {
	// Blank input short-circuits before the engine is touched, so even a
	// nil engine scores it.
	scorer := NewScorer(nil, logger.NewTestLogger(t))

	for _, text := range []string{"", "   ", "\n\t"} {
		score, err := scorer.Score(context.Background(), text)
		require.NoError(t, err)
		assert.Equal(t, 0.0, score)
	}
}

func TestScoreNoTokens(t *testing.T) {
	engine := &fakeEngine{sentences: []string{"x."}, tokens: nil}
	scorer := NewScorer(engine, logger.NewTestLogger(t))

	score, err := scorer.Score(context.Background(), "some text")
	require.NoError(t, err)
	assert.Equal(t, 0.0, score)
}

// ==========================
// Failure Modes
// ==========================

func TestScoreEngineUnavailable(t *testing.T) {
	scorer := NewScorer(nil, logger.NewTestLogger(t))

	_, err := scorer.Score(context.Background(), "real text")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeCapabilityUnavailable))
}

func TestScoreEngineError(t *testing.T) {
	engine := &fakeEngine{sentencesErr: goerrors.New("segmenter broke")}
	scorer := NewScorer(engine, logger.NewTestLogger(t))

	_, err := scorer.Score(context.Background(), "real text")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeAnalysisFailed))
}
