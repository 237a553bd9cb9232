// internal/analyzers/entities/extractor_test.go
package entities

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

type fakeEngine struct {
	spans []toolkit.Span
	err   error
}

func (f *fakeEngine) Entities(text string) ([]toolkit.Span, error) { return f.spans, f.err }
func (f *fakeEngine) Sentences(text string) ([]string, error) { return nil, nil }
func (f *fakeEngine) Tokens(text string) ([]toolkit.Token, error) { return nil, nil }
func (f *fakeEngine) NounChunks(text string) ([]string, error) { return nil, nil }

// ==========================
// Extraction Tests
// ==========================

func TestExtract(t *testing.T) {
	engine := &fakeEngine{
		spans: []toolkit.Span{
			{Text: "Alice", Label: "PERSON", Start: 0, End: 5},
			{Text: "Oslo", Label: "GPE", Start: 15, End: 19},
		},
	}
	extractor := NewExtractor(engine, logger.NewTestLogger(t))

	ents, err := extractor.Extract(context.Background(), "Alice lives in Oslo.")
	require.NoError(t, err)
	require.Len(t, ents, 2)

	assert.Equal(t, "Alice", ents[0].Text)
	assert.Equal(t, "PERSON", ents[0].Label)
	assert.Equal(t, 0, ents[0].Start)
	assert.Equal(t, 5, ents[0].End)
	assert.Equal(t, 0.8, ents[0].Confidence)

	assert.Equal(t, "Oslo", ents[1].Text)
	assert.Equal(t, "GPE", ents[1].Label)
	assert.Equal(t, 0.8, ents[1].Confidence)
}

func TestExtractNoSpans(t *testing.T) {
	extractor := NewExtractor(&fakeEngine{}, logger.NewTestLogger(t))

	ents, err := extractor.Extract(context.Background(), "nothing named here")
	require.NoError(t, err)
	assert.NotNil(t, ents)
	assert.Empty(t, ents)
}

// ==========================
// Failure Modes
// ==========================

func TestExtractEngineUnavailable(t *testing.T) {
	extractor := NewExtractor(nil, logger.NewTestLogger(t))

	ents, err := extractor.Extract(context.Background(), "any text")
	assert.Nil(t, ents)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeCapabilityUnavailable))
	assert.Contains(t, err.Error(), "NER capability not available")
}

func TestExtractEngineError(t *testing.T) {
	engine := &fakeEngine{err: goerrors.New("model exploded")}
	extractor := NewExtractor(engine, logger.NewTestLogger(t))

	ents, err := extractor.Extract(context.Background(), "any text")
	assert.Nil(t, ents)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeAnalysisFailed))
	assert.Contains(t, err.Error(), "Entity extraction failed")
}
