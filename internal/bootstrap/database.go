package bootstrap

import (
	"fmt"
	"strconv"

	"github.com/jmoiron/sqlx"

	"github.com/quipshot/phrase-gate/internal/config"
	"github.com/quipshot/phrase-gate/internal/database"
	"github.com/quipshot/phrase-gate/internal/logging"
)

// DatabaseComponents holds the Postgres connection and its repositories.
type DatabaseComponents struct {
	DB             *sqlx.DB
	HistoryRepo    *database.DecisionHistoryRepository
	DeadLetterRepo *database.DeadLetterRepository
}

// SetupDatabase creates the Postgres connection and repositories. Returns
// nil components without error when the database is disabled: decision
// history and the dead-letter queue are optional concerns.
func SetupDatabase(cfg *config.Config, logger logging.Logger) (*DatabaseComponents, error) {
	if !cfg.Database.Enabled {
		logger.Info("PostgreSQL disabled, decision history and DLQ are off")
		return nil, nil
	}

	dbConfig := database.Config{
		Host:     cfg.Database.Host,
		Port:     strconv.Itoa(cfg.Database.Port),
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.Database,
		SSLMode:  cfg.Database.SSLMode,
	}

	logger.Info("Connecting to PostgreSQL database",
		logging.String("host", dbConfig.Host),
		logging.String("port", dbConfig.Port),
		logging.String("database", dbConfig.DBName),
	)

	db, err := database.NewPostgresConnection(dbConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Pool limits from config override the connection defaults.
	db.SetMaxOpenConns(cfg.Database.MaxConnections)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	logger.Info("Database connected successfully")

	return &DatabaseComponents{
		DB:             db,
		HistoryRepo:    database.NewDecisionHistoryRepository(db),
		DeadLetterRepo: database.NewDeadLetterRepository(db.DB),
	}, nil
}
