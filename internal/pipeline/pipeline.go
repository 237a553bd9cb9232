// internal/pipeline/pipeline.go

// Package pipeline runs the fixed sequence of analysis stages against one
// request and assembles the aggregate result.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

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
	"nlp-service/internal/common/metrics"
	"nlp-service/internal/common/observability"
	"nlp-service/internal/models"
)

// stage is one step of the sequence. Each run closure reads the request
// text and writes its slice of the aggregate result, so the execution
// order is data, not control flow.
type stage struct {
	name string
	run  func(ctx context.Context, text string, result *models.AnalysisResult) error
}

// Analyzers bundles the eight stage implementations in one place.
type Analyzers struct {
	Entities    *entities.Extractor
	Topics      *topics.Extractor
	Sentiment   *sentiment.Scorer
	Ambiguity   *ambiguity.Detector
	Timeline    *timeline.Extractor
	KeyPhrases  *keyphrases.Extractor
	Readability *readability.Scorer
	Language    *language.Detector
}

// Pipeline runs every analyzer in a fixed order and caches the combined
// result per session turn. Stages run strictly sequentially: the result's
// tie-break rules depend on deterministic single-threaded execution.
type Pipeline struct {
	stages []stage
	store  cache.Store
	cfg    config.CacheConfig
	obs    *observability.Observability
	logger logger.Logger
}

// New builds the pipeline. obs may be nil; stage metrics still flow through
// the Prometheus counters in that case.
func New(analyzers Analyzers, store cache.Store, cfg config.CacheConfig, obs *observability.Observability, log logger.Logger) *Pipeline {
	p := &Pipeline{
		store:  store,
		cfg:    cfg,
		obs:    obs,
		logger: log.WithFields(map[string]interface{}{"component": "pipeline"}),
	}
	p.stages = []stage{
		{name: entities.StageName, run: func(ctx context.Context, text string, result *models.AnalysisResult) error {
			out, err := analyzers.Entities.Extract(ctx, text)
			if err != nil {
				return err
			}
			result.Entities = out
			return nil
		}},
		{name: topics.StageName, run: func(ctx context.Context, text string, result *models.AnalysisResult) error {
			out, err := analyzers.Topics.Extract(ctx, text)
			if err != nil {
				return err
			}
			result.Topics = out
			return nil
		}},
		{name: sentiment.StageName, run: func(ctx context.Context, text string, result *models.AnalysisResult) error {
			out, err := analyzers.Sentiment.Score(ctx, text)
			if err != nil {
				return err
			}
			result.Sentiment = *out
			return nil
		}},
		{name: ambiguity.StageName, run: func(ctx context.Context, text string, result *models.AnalysisResult) error {
			out, err := analyzers.Ambiguity.Detect(ctx, text)
			if err != nil {
				return err
			}
			result.Ambiguities = out
			return nil
		}},
		{name: timeline.StageName, run: func(ctx context.Context, text string, result *models.AnalysisResult) error {
			out, err := analyzers.Timeline.Extract(ctx, text)
			if err != nil {
				return err
			}
			result.TimelineEvents = out
			return nil
		}},
		{name: keyphrases.StageName, run: func(ctx context.Context, text string, result *models.AnalysisResult) error {
			out, err := analyzers.KeyPhrases.Extract(ctx, text)
			if err != nil {
				return err
			}
			result.KeyPhrases = out
			return nil
		}},
		{name: readability.StageName, run: func(ctx context.Context, text string, result *models.AnalysisResult) error {
			score, err := analyzers.Readability.Score(ctx, text)
			if err != nil {
				return err
			}
			result.ReadabilityScore = score
			return nil
		}},
		{name: language.StageName, run: func(ctx context.Context, text string, result *models.AnalysisResult) error {
			result.Language = analyzers.Language.Detect(text)
			return nil
		}},
	}
	return p
}

// StageNames returns the execution order, for startup validation against
// the published stage manifest.
func (p *Pipeline) StageNames() []string {
	names := make([]string, 0, len(p.stages))
	for _, st := range p.stages {
		names = append(names, st.name)
	}
	return names
}

// Analyze runs all stages in order. The first stage error aborts the whole
// aggregate; partial results are never returned and nothing is cached.
func (p *Pipeline) Analyze(ctx context.Context, req *models.TextRequest) (*models.AnalysisResult, error) {
	start := time.Now()
	result := &models.AnalysisResult{}

	for _, st := range p.stages {
		stageStart := time.Now()
		if err := st.run(ctx, req.Text, result); err != nil {
			metrics.StageFailed.WithLabelValues(st.name, errorCode(err)).Inc()
			p.recordAnalysis(ctx, time.Since(start), "error")
			p.logger.Error("stage failed", map[string]interface{}{
				"stage": st.name,
				"error": err.Error(),
			})
			return nil, err
		}
		metrics.StageDuration.WithLabelValues(st.name).Observe(time.Since(stageStart).Seconds())
		metrics.StageCompleted.WithLabelValues(st.name).Inc()
	}

	result.ProcessingTime = time.Since(start).Seconds()

	p.cacheResult(ctx, req, result)
	p.recordAnalysis(ctx, time.Since(start), "success")

	return result, nil
}

// cacheResult stores the aggregate under <prefix>:<session>:<turn>. Write
// failures degrade to a warning; the request still succeeds.
func (p *Pipeline) cacheResult(ctx context.Context, req *models.TextRequest, result *models.AnalysisResult) {
	if req.SessionID == "" || !p.store.Available() {
		return
	}

	payload, err := json.Marshal(result)
	if err != nil {
		metrics.CacheOperations.WithLabelValues("set", "error").Inc()
		p.logger.Warn("cache marshal failed", map[string]interface{}{"error": err.Error()})
		return
	}

	key := CacheKey(p.cfg.KeyPrefix, req.SessionID, req.Turn())
	if err := p.store.Set(ctx, key, payload, config.GetDuration(p.cfg.TTL)); err != nil {
		metrics.CacheOperations.WithLabelValues("set", "error").Inc()
		p.logger.Warn("cache write failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		return
	}
	metrics.CacheOperations.WithLabelValues("set", "success").Inc()
}

func (p *Pipeline) recordAnalysis(ctx context.Context, elapsed time.Duration, status string) {
	if p.obs == nil {
		return
	}
	p.obs.RecordAnalysisProcessed(ctx, status)
	p.obs.RecordAnalysisDuration(ctx, elapsed, status)
}

// CacheKey builds the per-session, per-turn cache key.
func CacheKey(prefix, sessionID string, turn int) string {
	return fmt.Sprintf("%s:%s:%d", prefix, sessionID, turn)
}

func errorCode(err error) string {
	if stdErr, ok := err.(*errors.StandardError); ok {
		return string(stdErr.Code)
	}
	return string(errors.ErrCodeInternal)
}
