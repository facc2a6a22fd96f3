package bootstrap

import (
	"github.com/quipshot/phrase-gate/internal/config"
	"github.com/quipshot/phrase-gate/internal/contextutil"
	"github.com/quipshot/phrase-gate/internal/logging"
	"github.com/quipshot/phrase-gate/internal/storage"
)

// SetupElasticsearch creates the optional submission store. Returns nil if
// ES is disabled or unreachable: synchronous scoring works without it, only
// the asynchronous intake path goes dark.
func SetupElasticsearch(cfg *config.Config, logger logging.Logger) *storage.SubmissionStorage {
	if !cfg.Elasticsearch.Enabled {
		logger.Info("Elasticsearch disabled, submission intake is off")
		return nil
	}

	client, err := storage.NewClient(storage.ClientConfig{
		Addresses:  []string{cfg.Elasticsearch.URL},
		Username:   cfg.Elasticsearch.Username,
		Password:   cfg.Elasticsearch.Password,
		MaxRetries: cfg.Elasticsearch.MaxRetries,
	})
	if err != nil {
		logger.Warn("Failed to connect to Elasticsearch", logging.Error(err))
		logger.Info("Submission endpoints will not be available")
		return nil
	}

	submissionStorage := storage.NewSubmissionStorage(client, cfg.Elasticsearch.SubmissionsIndex, logger)

	ctx, cancel := contextutil.WithDefaultTimeout()
	defer cancel()

	if err := submissionStorage.EnsureIndex(ctx); err != nil {
		logger.Warn("Failed to ensure submissions index", logging.Error(err))
		logger.Info("Submission endpoints will not be available")
		return nil
	}

	logger.Info("Elasticsearch connected successfully",
		logging.String("index", submissionStorage.IndexName()))
	return submissionStorage
}
