// internal/server/server.go

// Package server wires the analysis routes, middleware and HTTP lifecycle.
package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"nlp-service/internal/cache"
	"nlp-service/internal/common/config"
	"nlp-service/internal/common/logger"
	"nlp-service/internal/pipeline"
	"nlp-service/internal/toolkit"
)

// Dependencies carries everything the routes need. Engine and Sentiment may
// be nil when the capability failed to load; dependent routes then degrade
// to service-unavailable responses while /health keeps reporting.
type Dependencies struct {
	Engine    toolkit.Engine
	Sentiment toolkit.SentimentAnalyzer
	Store     cache.Store
	Pipeline  *pipeline.Pipeline
	Analyzers pipeline.Analyzers
}

// Server is the public HTTP surface.
type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	logger     logger.Logger
}

func New(cfg config.ServerConfig, deps Dependencies, log logger.Logger) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestID())
	router.Use(RequestLogger(log))
	router.Use(Metrics())
	router.Use(RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))
	router.Use(BodySizeLimit(cfg.MaxTextBytes))
	router.Use(RequestTimeout(config.GetDuration(cfg.RequestTimeout)))

	registerRoutes(router, NewHandlers(deps, log))

	return &Server{
		router: router,
		httpServer: &http.Server{
			Addr:         cfg.GetAddr(),
			Handler:      router,
			ReadTimeout:  config.GetDuration(cfg.ReadTimeout),
			WriteTimeout: config.GetDuration(cfg.WriteTimeout),
		},
		logger: log.WithFields(map[string]interface{}{"component": "server"}),
	}
}

func registerRoutes(router *gin.Engine, h *Handlers) {
	router.GET("/health", h.Health)

	router.POST("/entities", h.Entities)
	router.POST("/topics", h.Topics)
	router.POST("/sentiment", h.Sentiment)
	router.POST("/ambiguities", h.Ambiguities)
	router.POST("/timeline", h.Timeline)
	router.POST("/keyphrases", h.KeyPhrases)
	router.POST("/analyze", h.Analyze)

	router.GET("/cache/status", h.CacheStatus)
	router.DELETE("/cache/clear", h.CacheClear)
}

// Run blocks serving requests until Shutdown is called or the listener
// fails.
func (s *Server) Run() error {
	s.logger.Info("http server listening", map[string]interface{}{"addr": s.httpServer.Addr})
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Router exposes the handler tree for tests.
func (s *Server) Router() http.Handler {
	return s.router
}
