package bootstrap

import (
	"fmt"

	"github.com/quipshot/phrase-gate/internal/api"
	"github.com/quipshot/phrase-gate/internal/config"
	"github.com/quipshot/phrase-gate/internal/contextutil"
	"github.com/quipshot/phrase-gate/internal/corpus"
	"github.com/quipshot/phrase-gate/internal/httpserver"
	"github.com/quipshot/phrase-gate/internal/logging"
	"github.com/quipshot/phrase-gate/internal/popularity"
	"github.com/quipshot/phrase-gate/internal/processor"
	"github.com/quipshot/phrase-gate/internal/scorer"
	"github.com/quipshot/phrase-gate/internal/telemetry"
)

// ScoringComponents holds the corpus-backed decision engine and the batch
// processor built on top of it.
type ScoringComponents struct {
	Corpus *corpus.Corpus
	Engine *scorer.DecisionEngine
	Batch  *processor.BatchProcessor
}

// NewScoringComponents loads the corpora and assembles the decision engine
// and batch processor from configuration.
func NewScoringComponents(cfg *config.Config, logger logging.Logger, tp *telemetry.Provider) (*ScoringComponents, error) {
	c, err := corpus.Load(logger, corpus.Paths{
		Entities:     cfg.Corpus.EntitiesPath,
		Concreteness: cfg.Corpus.ConcretenessPath,
		Categories:   cfg.Corpus.CategoriesPath,
	})
	if err != nil {
		return nil, fmt.Errorf("load corpora: %w", err)
	}

	if tp != nil {
		stats := c.Stats()
		tp.SetCorpusSize("entities", stats.Entities.Entities)
		tp.SetCorpusSize("concreteness", stats.Concreteness.Words)
		tp.SetCorpusSize("categories", stats.Categories.Terms)
	}

	source := buildPopularitySource(cfg, logger, c.Entities)

	engine := scorer.NewDecisionEngineWithConfig(logger, c, source, scorer.EngineConfig{
		DistinctivenessWeight: cfg.Scoring.DistinctivenessWeight,
		DescribabilityWeight:  cfg.Scoring.DescribabilityWeight,
		HeuristicsWeight:      cfg.Scoring.HeuristicsWeight,
		CulturalWeight:        cfg.Scoring.CulturalWeight,
		SoftLatencyTarget:     cfg.Scoring.SoftLatencyTarget,
		HardLatencyTarget:     cfg.Scoring.HardLatencyTarget,
	})
	logger.Info("Decision engine initialized",
		logging.String("popularity_source", source.Name()))

	batch := processor.NewBatchProcessor(logger, engine, tp, processor.BatchConfig{
		Concurrency:  cfg.Scoring.Concurrency,
		MaxBatchSize: cfg.Scoring.MaxBatchSize,
	})
	logger.Info("Batch processor initialized",
		logging.Int("concurrency", cfg.Scoring.Concurrency),
		logging.Int("max_batch_size", cfg.Scoring.MaxBatchSize))

	return &ScoringComponents{Corpus: c, Engine: engine, Batch: batch}, nil
}

// buildPopularitySource selects the configured popularity backend. The
// Wikimedia source runs behind a circuit breaker and optionally reads
// through a Redis cache; a Redis failure degrades to uncached lookups
// rather than blocking startup.
func buildPopularitySource(cfg *config.Config, logger logging.Logger, entities *corpus.EntityIndex) popularity.Source {
	if cfg.Popularity.Source != "wikimedia" {
		return popularity.NewSitelinkSource(logger, entities)
	}

	wikimedia := popularity.NewWikimediaSource(logger, entities, popularity.WikimediaConfig{
		BaseURL:           cfg.Popularity.WikimediaBaseURL,
		RequestsPerSecond: cfg.Popularity.RequestsPerSecond,
		Timeout:           cfg.Popularity.Timeout,
	})

	// The breaker sits inside the cache so cache hits keep serving while
	// the upstream is down.
	source := popularity.NewBreakerSource(logger, wikimedia)

	if !cfg.Popularity.CacheEnabled {
		return source
	}

	client, err := popularity.NewRedisClient(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		logger.Warn("Failed to connect to Redis, popularity cache disabled",
			logging.Error(err))
		return source
	}

	logger.Info("Popularity cache enabled",
		logging.String("address", cfg.Redis.Address))
	return popularity.NewCachedSource(logger, source, popularity.NewRedisStore(client), cfg.Popularity.CacheTTL)
}

// HTTPComponents holds everything the API binary needs.
type HTTPComponents struct {
	Database  *DatabaseComponents
	Handler   *api.Handler
	Server    *httpserver.Server
	Telemetry *telemetry.Provider
}

// NewHTTPComponents creates all components for the HTTP server. Postgres and
// Elasticsearch are optional; the endpoints they back degrade to 503.
func NewHTTPComponents(cfg *config.Config, logger logging.Logger) (*HTTPComponents, error) {
	tp := telemetry.NewProvider()

	scoring, err := NewScoringComponents(cfg, logger, tp)
	if err != nil {
		return nil, err
	}

	dbComps, err := SetupDatabase(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("setup database: %w", err)
	}

	submissionStorage := SetupElasticsearch(cfg, logger)

	var history api.DecisionHistoryReader
	var pings api.HealthPings
	if dbComps != nil {
		history = dbComps.HistoryRepo
		pings.Database = dbComps.DB.Ping
	}

	var submissions api.SubmissionWriter
	if submissionStorage != nil {
		submissions = submissionStorage
		pings.Elasticsearch = func() error {
			ctx, cancel := contextutil.WithPingTimeout()
			defer cancel()
			return submissionStorage.TestConnection(ctx)
		}
	}

	handler := api.NewHandler(
		scoring.Engine,
		scoring.Batch,
		scoring.Corpus,
		history,
		submissions,
		tp,
		logger,
	)

	server := api.NewServer(cfg, handler, logger, pings)

	return &HTTPComponents{
		Database:  dbComps,
		Handler:   handler,
		Server:    server,
		Telemetry: tp,
	}, nil
}

// Close releases the connections held by the HTTP components.
func (c *HTTPComponents) Close() {
	if c.Database != nil {
		_ = c.Database.DB.Close()
	}
}
