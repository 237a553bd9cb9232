// cmd/nlp-server/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

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
	"nlp-service/internal/common/logger"
	"nlp-service/internal/common/observability"
	"nlp-service/internal/pipeline"
	"nlp-service/internal/server"
	"nlp-service/internal/toolkit"
	"nlp-service/pkg/registry"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	zapLog := logger.New("info", "console")

	zapLog.Info("Starting nlp-server...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	// Rebuild the logger with the configured level and format.
	zapLog = logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	// --- Load NLP capabilities ---
	// A failed load degrades the affected routes instead of killing the
	// process; /health reports what is missing.
	var engine toolkit.Engine
	if prose, perr := toolkit.NewProseEngine(); perr != nil {
		zapLog.Warn("prose engine failed to load, NER routes degraded", zap.Error(perr))
	} else {
		engine = prose
		zapLog.Info("Prose engine loaded successfully")
	}

	var analyzer toolkit.SentimentAnalyzer = toolkit.NewVaderAnalyzer()
	zapLog.Info("VADER sentiment analyzer loaded successfully")

	// --- Init Redis with retry ---
	var store cache.Store
	var redisStore *cache.RedisStore
	err = retryWithBackoff(func() error {
		var rerr error
		redisStore, rerr = cache.NewRedisStore(cfg.Redis)
		return rerr
	}, 3, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Warn("redis unreachable, running without result cache", zap.Error(err))
		store = cache.NewNoopStore()
	} else {
		store = redisStore
		zapLog.Info("Redis connected successfully")
	}
	defer store.Close()

	// --- Build the pipeline ---
	analyzers := pipeline.Analyzers{
		Entities:    entities.NewExtractor(engine, log),
		Topics:      topics.NewExtractor(engine, log),
		Sentiment:   sentiment.NewScorer(analyzer, log),
		Ambiguity:   ambiguity.NewDetector(log),
		Timeline:    timeline.NewExtractor(engine, log),
		KeyPhrases:  keyphrases.NewExtractor(engine, log),
		Readability: readability.NewScorer(engine, log),
		Language:    language.NewDetector(),
	}
	pipe := pipeline.New(analyzers, store, cfg.Cache, obs, log)

	// The stage manifest documents the pipeline for external consumers; a
	// drift between the two is a packaging error.
	reg, err := registry.Load()
	if err != nil {
		zapLog.Fatal("stage manifest load failed", zap.Error(err))
	}
	if !slices.Equal(reg.Names(), pipe.StageNames()) {
		zapLog.Fatal("stage manifest out of sync with pipeline",
			zap.Strings("manifest", reg.Names()),
			zap.Strings("pipeline", pipe.StageNames()),
		)
	}

	srv := server.New(cfg.Server, server.Dependencies{
		Engine:    engine,
		Sentiment: analyzer,
		Store:     store,
		Pipeline:  pipe,
		Analyzers: analyzers,
	}, log)

	// --- Health & Metrics Server ---
	if cfg.Metrics.Enabled {
		go func() {
			http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusOK)
				json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
			})
			http.Handle("/metrics", promhttp.Handler())
			addr := fmt.Sprintf(":%d", cfg.Metrics.Port)
			zapLog.Info("Metrics server listening", zap.String("addr", addr))
			if merr := http.ListenAndServe(addr, nil); merr != nil {
				zapLog.Error("Metrics server failed", zap.Error(merr))
			}
		}()
	}

	go func() {
		if serr := srv.Run(); serr != nil {
			zapLog.Fatal("http server failed", zap.Error(serr))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, draining requests...")
	ctx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLog.Error("Error shutting down http server", zap.Error(err))
	}

	zapLog.Info("nlp-server stopped")
}
