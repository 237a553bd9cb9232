// internal/pipeline/pipeline_test.go
package pipeline

import (
	"context"
	"encoding/json"
	goerrors "errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nlp-service/internal/analyzers/ambiguity"
	"nlp-service/internal/analyzers/entities"
	"nlp-service/internal/analyzers/keyphrases"
	"nlp-service/internal/analyzers/language"
	"nlp-service/internal/analyzers/readability"
	"nlp-service/internal/analyzers/sentiment"
	"nlp-service/internal/analyzers/timeline"
	"nlp-service/internal/analyzers/topics"
	"nlp-service/internal/cache"
	"nlp-service/internal/common/config"
	"nlp-service/internal/common/errors"
	"nlp-service/internal/common/logger"
	"nlp-service/internal/models"
	"nlp-service/internal/toolkit"
)

// ==========================
// Test Doubles
// ==========================

type fakeEngine struct {
	spans     []toolkit.Span
	spansErr  error
	sentences []string
	tokens    []toolkit.Token
	chunks    []string
}

func (f *fakeEngine) Entities(text string) ([]toolkit.Span, error) { return f.spans, f.spansErr }
func (f *fakeEngine) Sentences(text string) ([]string, error) { return f.sentences, nil }
func (f *fakeEngine) Tokens(text string) ([]toolkit.Token, error) { return f.tokens, nil }
func (f *fakeEngine) NounChunks(text string) ([]string, error) { return f.chunks, nil }

type fakeSentiment struct {
	polarity toolkit.Polarity
	err      error
}

func (f *fakeSentiment) PolarityScores(text string) (toolkit.Polarity, error) {
	return f.polarity, f.err
}

func newCannedEngine() *fakeEngine {
	return &fakeEngine{
		spans: []toolkit.Span{
			{Text: "Alice", Label: "PERSON", Start: 7, End: 12},
			{Text: "Monday", Label: "DATE", Start: 16, End: 22},
		},
		sentences: []string{"We met Alice yesterday."},
		tokens: []toolkit.Token{
			{Text: "We"}, {Text: "met"}, {Text: "Alice"}, {Text: "yesterday"}, {Text: "."},
		},
		chunks: []string{"the meeting notes"},
	}
}

func newTestPipeline(t *testing.T, engine toolkit.Engine, analyzer toolkit.SentimentAnalyzer, store cache.Store) *Pipeline {
	t.Helper()
	log := logger.NewTestLogger(t)
	analyzers := Analyzers{
		Entities:    entities.NewExtractor(engine, log),
		Topics:      topics.NewExtractor(engine, log),
		Sentiment:   sentiment.NewScorer(analyzer, log),
		Ambiguity:   ambiguity.NewDetector(log),
		Timeline:    timeline.NewExtractor(engine, log),
		KeyPhrases:  keyphrases.NewExtractor(engine, log),
		Readability: readability.NewScorer(engine, log),
		Language:    language.NewDetector(),
	}
	cfg := config.CacheConfig{TTL: 3600000, KeyPrefix: "nlp_analysis"}
	return New(analyzers, store, cfg, nil, log)
}

func newMiniredisStore(t *testing.T) (*miniredis.Miniredis, cache.Store) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, cache.NewRedisStoreFromClient(client)
}

// ==========================
// Aggregate Tests
// ==========================

func TestAnalyzeAggregatesAllStages(t *testing.T) {
	engine := newCannedEngine()
	analyzer := &fakeSentiment{
		polarity: toolkit.Polarity{Compound: 0.6, Positive: 0.5, Negative: 0.1, Neutral: 0.4},
	}
	p := newTestPipeline(t, engine, analyzer, cache.NewNoopStore())

	result, err := p.Analyze(context.Background(), &models.TextRequest{Text: "It will be done soon."})
	require.NoError(t, err)

	require.Len(t, result.Entities, 2)
	assert.Equal(t, "Alice", result.Entities[0].Text)
	assert.Equal(t, 0.8, result.Entities[0].Confidence)

	require.Len(t, result.Topics, 2)
	assert.Equal(t, "the meeting notes", result.Topics[0].Name)
	assert.Equal(t, "alice", result.Topics[1].Name)

	assert.Equal(t, "positive", result.Sentiment.Label)
	assert.Equal(t, 0.6, result.Sentiment.Compound)

	require.Len(t, result.Ambiguities, 2)
	assert.Equal(t, "it", result.Ambiguities[0].Text)
	assert.Equal(t, "soon", result.Ambiguities[1].Text)

	require.Len(t, result.TimelineEvents, 2)
	assert.Equal(t, "DATE", result.TimelineEvents[0].Reference)
	assert.Equal(t, "temporal_keyword_yesterday", result.TimelineEvents[1].Reference)

	assert.Equal(t, []string{"the meeting notes", "Alice", "Monday"}, result.KeyPhrases)

	assert.InDelta(t, 0.815, result.ReadabilityScore, 1e-9)
	assert.Equal(t, "en", result.Language)
	assert.GreaterOrEqual(t, result.ProcessingTime, 0.0)
}

func TestAnalyzeIsReproducible(t *testing.T) {
	p := newTestPipeline(t, newCannedEngine(), &fakeSentiment{}, cache.NewNoopStore())
	req := &models.TextRequest{Text: "We met Alice yesterday."}

	first, err := p.Analyze(context.Background(), req)
	require.NoError(t, err)
	second, err := p.Analyze(context.Background(), req)
	require.NoError(t, err)

	// Only the wall clock may differ between runs.
	first.ProcessingTime = 0
	second.ProcessingTime = 0
	assert.Equal(t, first, second)
}

func TestStageOrder(t *testing.T) {
	p := newTestPipeline(t, newCannedEngine(), &fakeSentiment{}, cache.NewNoopStore())

	assert.Equal(t, []string{
		"entities", "topics", "sentiment", "ambiguities",
		"timeline", "key_phrases", "readability", "language",
	}, p.StageNames())
}

func TestAnalyzeAbortsOnStageFailure(t *testing.T) {
	engine := newCannedEngine()
	engine.spansErr = goerrors.New("model exploded")
	mr, store := newMiniredisStore(t)
	p := newTestPipeline(t, engine, &fakeSentiment{}, store)

	result, err := p.Analyze(context.Background(), &models.TextRequest{
		Text:      "some text",
		SessionID: "s1",
	})

	assert.Nil(t, result)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeAnalysisFailed))
	// No partial result reaches the cache.
	assert.Empty(t, mr.Keys())
}

// ==========================
// Cache Behavior
// ==========================

func TestAnalyzeCachesPerSessionTurn(t *testing.T) {
	mr, store := newMiniredisStore(t)
	p := newTestPipeline(t, newCannedEngine(), &fakeSentiment{}, store)

	turn := 2
	result, err := p.Analyze(context.Background(), &models.TextRequest{
		Text:       "We met Alice yesterday.",
		SessionID:  "s1",
		TurnNumber: &turn,
	})
	require.NoError(t, err)

	payload, err := mr.Get("nlp_analysis:s1:2")
	require.NoError(t, err)

	var cached models.AnalysisResult
	require.NoError(t, json.Unmarshal([]byte(payload), &cached))
	assert.Equal(t, *result, cached)

	assert.Equal(t, time.Hour, mr.TTL("nlp_analysis:s1:2"))
}

func TestAnalyzeDefaultsTurnToOne(t *testing.T) {
	mr, store := newMiniredisStore(t)
	p := newTestPipeline(t, newCannedEngine(), &fakeSentiment{}, store)

	_, err := p.Analyze(context.Background(), &models.TextRequest{
		Text:      "some text",
		SessionID: "s2",
	})
	require.NoError(t, err)

	assert.True(t, mr.Exists("nlp_analysis:s2:1"))
}

func TestAnalyzeSkipsCacheWithoutSession(t *testing.T) {
	mr, store := newMiniredisStore(t)
	p := newTestPipeline(t, newCannedEngine(), &fakeSentiment{}, store)

	_, err := p.Analyze(context.Background(), &models.TextRequest{Text: "some text"})
	require.NoError(t, err)

	assert.Empty(t, mr.Keys())
}

func TestAnalyzeSurvivesCacheWriteFailure(t *testing.T) {
	mr, store := newMiniredisStore(t)
	p := newTestPipeline(t, newCannedEngine(), &fakeSentiment{}, store)

	// Drop the backend between startup and the request.
	mr.Close()

	result, err := p.Analyze(context.Background(), &models.TextRequest{
		Text:      "some text",
		SessionID: "s3",
	})
	require.NoError(t, err)
	assert.NotNil(t, result)
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, "nlp_analysis:s1:2", CacheKey("nlp_analysis", "s1", 2))
	assert.Equal(t, "nlp_analysis::1", CacheKey("nlp_analysis", "", 1))
}
