package api

import (
	"github.com/gin-gonic/gin"

	"github.com/quipshot/phrase-gate/internal/config"
	"github.com/quipshot/phrase-gate/internal/httpserver"
	"github.com/quipshot/phrase-gate/internal/logging"
)

// HealthPings carries optional dependency ping functions surfaced on
// /health. A nil ping leaves that dependency out of the report.
type HealthPings struct {
	Database      func() error
	Redis         func() error
	Elasticsearch func() error
}

// NewServer builds the scoring API server on the shared HTTP stack. Health
// routes come from the server builder; service routes are mounted on top.
func NewServer(cfg *config.Config, handler *Handler, logger logging.Logger, pings HealthPings) *httpserver.Server {
	builder := httpserver.NewServerBuilder(cfg.Service.Name, cfg.Service.Port).
		WithLogger(logger).
		WithDebug(cfg.Service.Debug).
		WithVersion(cfg.Service.Version).
		WithRoutes(func(router *gin.Engine) {
			SetupServiceRoutes(router, handler, cfg)
		})

	if pings.Database != nil {
		builder = builder.WithDatabaseHealthCheck(pings.Database)
	}
	if pings.Redis != nil {
		builder = builder.WithRedisHealthCheck(pings.Redis)
	}
	if pings.Elasticsearch != nil {
		builder = builder.WithElasticsearchHealthCheck(pings.Elasticsearch)
	}

	return builder.Build()
}

// SetupServiceRoutes configures service-specific API routes (not health
// routes, which the server builder registers). A non-empty JWT secret locks
// /api/v1 behind bearer auth; /ready and /metrics stay open for probes and
// scrapers.
func SetupServiceRoutes(router *gin.Engine, handler *Handler, cfg *config.Config) {
	v1 := httpserver.ProtectedGroup(router, "/api/v1", cfg.Auth.JWTSecret)

	// Scoring endpoints
	score := v1.Group("/score")
	score.POST("", handler.Score)            // POST /api/v1/score
	score.POST("/batch", handler.ScoreBatch) // POST /api/v1/score/batch

	// Individual component scorers, mainly for tuning and debugging
	components := score.Group("/components")
	components.POST("/distinctiveness", handler.ScoreDistinctiveness) // POST /api/v1/score/components/distinctiveness
	components.POST("/describability", handler.ScoreDescribability)   // POST /api/v1/score/components/describability
	components.POST("/heuristics", handler.ScoreHeuristics)           // POST /api/v1/score/components/heuristics
	components.POST("/cultural", handler.ScoreCultural)               // POST /api/v1/score/components/cultural

	// Corpus inspection
	v1.GET("/corpus/stats", handler.GetCorpusStats) // GET /api/v1/corpus/stats

	// Decision audit endpoints
	decisions := v1.Group("/decisions")
	decisions.GET("/recent", handler.GetRecentDecisions) // GET /api/v1/decisions/recent
	decisions.GET("/stats", handler.GetDecisionStats)    // GET /api/v1/decisions/stats

	// Asynchronous intake
	v1.POST("/submissions", handler.CreateSubmission) // POST /api/v1/submissions

	router.GET("/ready", handler.ReadyCheck)

	if handler.telemetry != nil {
		router.GET("/metrics", gin.WrapH(handler.telemetry.Handler()))
	}
}
