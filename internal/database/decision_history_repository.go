package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/quipshot/phrase-gate/internal/domain"
)

// DecisionHistoryRepository handles decision history persistence.
type DecisionHistoryRepository struct {
	db *sqlx.DB
}

// NewDecisionHistoryRepository creates a new decision history repository.
func NewDecisionHistoryRepository(db *sqlx.DB) *DecisionHistoryRepository {
	return &DecisionHistoryRepository{db: db}
}

// DecisionStats represents aggregate decision statistics.
type DecisionStats struct {
	TotalDecisions  int64          `json:"total_decisions"`
	Accepted        int64          `json:"accepted"`
	AcceptRate      float64        `json:"accept_rate"`
	AvgFinalScore   float64        `json:"avg_final_score"`
	AvgDurationMs   float64        `json:"avg_duration_ms"`
	Classifications map[string]int `json:"classifications"`
	Recommendations map[string]int `json:"recommendations"`
}

// SourceStat represents decision statistics for a single request source.
type SourceStat struct {
	Source     string  `json:"source" db:"source"`
	Count      int     `json:"count" db:"count"`
	AvgScore   float64 `json:"avg_score" db:"avg_score"`
	AcceptRate float64 `json:"accept_rate" db:"accept_rate"`
}

const insertDecisionQuery = `
	INSERT INTO decision_history (
		submission_id, phrase, normalized_phrase, final_score, classification,
		recommendation, confidence, accepted, component_scores, categories,
		engine_version, duration_ms, source, scored_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	RETURNING id, created_at
`

// Create inserts a new decision history record.
func (r *DecisionHistoryRepository) Create(ctx context.Context, history *domain.DecisionHistory) error {
	err := r.db.QueryRowContext(
		ctx,
		insertDecisionQuery,
		history.SubmissionID,
		history.Phrase,
		history.NormalizedPhrase,
		history.FinalScore,
		history.Classification,
		history.Recommendation,
		history.Confidence,
		history.Accepted,
		history.ComponentScores,
		pq.Array(history.Categories),
		history.EngineVersion,
		history.DurationMs,
		history.Source,
		history.ScoredAt,
	).Scan(&history.ID, &history.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create decision history: %w", err)
	}

	return nil
}

// SaveDecisionBatch inserts multiple decision records in a single
// transaction. One bad record rolls back the batch; intake treats history
// as best-effort, so a rollback only costs the audit rows.
func (r *DecisionHistoryRepository) SaveDecisionBatch(ctx context.Context, records []*domain.DecisionHistory) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO decision_history (
			submission_id, phrase, normalized_phrase, final_score, classification,
			recommendation, confidence, accepted, component_scores, categories,
			engine_version, duration_ms, source, scored_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`)
	if err != nil {
		return fmt.Errorf("prepare stmt: %w", err)
	}
	defer stmt.Close()

	for _, record := range records {
		_, err = stmt.ExecContext(ctx,
			record.SubmissionID,
			record.Phrase,
			record.NormalizedPhrase,
			record.FinalScore,
			record.Classification,
			record.Recommendation,
			record.Confidence,
			record.Accepted,
			record.ComponentScores,
			pq.Array(record.Categories),
			record.EngineVersion,
			record.DurationMs,
			record.Source,
			record.ScoredAt,
		)
		if err != nil {
			return fmt.Errorf("insert decision %s: %w", record.SubmissionID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

const selectDecisionColumns = `
	id, submission_id, phrase, normalized_phrase, final_score, classification,
	recommendation, confidence, accepted, component_scores, categories,
	engine_version, duration_ms, source, scored_at, created_at
`

func scanDecision(row interface{ Scan(...any) error }) (*domain.DecisionHistory, error) {
	var history domain.DecisionHistory
	err := row.Scan(
		&history.ID,
		&history.SubmissionID,
		&history.Phrase,
		&history.NormalizedPhrase,
		&history.FinalScore,
		&history.Classification,
		&history.Recommendation,
		&history.Confidence,
		&history.Accepted,
		&history.ComponentScores,
		pq.Array(&history.Categories),
		&history.EngineVersion,
		&history.DurationMs,
		&history.Source,
		&history.ScoredAt,
		&history.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &history, nil
}

// GetRecent returns the most recent decisions, newest first.
func (r *DecisionHistoryRepository) GetRecent(ctx context.Context, limit int) ([]*domain.DecisionHistory, error) {
	query := `
		SELECT ` + selectDecisionColumns + `
		FROM decision_history
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent decisions: %w", err)
	}
	defer rows.Close()

	histories := make([]*domain.DecisionHistory, 0, limit)
	for rows.Next() {
		history, scanErr := scanDecision(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan decision: %w", scanErr)
		}
		histories = append(histories, history)
	}

	return histories, rows.Err()
}

// GetByPhrase retrieves the latest decision for a normalized phrase.
func (r *DecisionHistoryRepository) GetByPhrase(ctx context.Context, normalizedPhrase string) (*domain.DecisionHistory, error) {
	query := `
		SELECT ` + selectDecisionColumns + `
		FROM decision_history
		WHERE normalized_phrase = $1
		ORDER BY created_at DESC
		LIMIT 1
	`

	history, err := scanDecision(r.db.QueryRowContext(ctx, query, normalizedPhrase))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get decision by phrase: %w", err)
	}

	return history, nil
}

// GetStats retrieves overall decision statistics.
func (r *DecisionHistoryRepository) GetStats(ctx context.Context) (*DecisionStats, error) {
	var stats DecisionStats

	query := `
		SELECT
			COUNT(*) as total_decisions,
			SUM(CASE WHEN accepted THEN 1 ELSE 0 END) as accepted,
			COALESCE(AVG(final_score), 0) as avg_final_score,
			COALESCE(AVG(duration_ms), 0) as avg_duration_ms
		FROM decision_history
	`

	var accepted sql.NullInt64
	err := r.db.QueryRowContext(ctx, query).Scan(
		&stats.TotalDecisions,
		&accepted,
		&stats.AvgFinalScore,
		&stats.AvgDurationMs,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get decision stats: %w", err)
	}
	stats.Accepted = accepted.Int64
	if stats.TotalDecisions > 0 {
		stats.AcceptRate = float64(stats.Accepted) / float64(stats.TotalDecisions)
	}

	stats.Classifications, err = r.countDistribution(ctx, "classification")
	if err != nil {
		return nil, err
	}

	stats.Recommendations, err = r.countDistribution(ctx, "recommendation")
	if err != nil {
		return nil, err
	}

	return &stats, nil
}

// countDistribution tallies rows per distinct value of a verdict column.
// The column name is restricted to the two known enum columns, never input.
func (r *DecisionHistoryRepository) countDistribution(ctx context.Context, column string) (map[string]int, error) {
	if column != "classification" && column != "recommendation" {
		return nil, fmt.Errorf("unsupported distribution column: %s", column)
	}

	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) as count
		FROM decision_history
		GROUP BY %s
	`, column, column)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get %s distribution: %w", column, err)
	}
	defer rows.Close()

	distribution := make(map[string]int)
	for rows.Next() {
		var value string
		var count int
		if err := rows.Scan(&value, &count); err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", column, err)
		}
		distribution[value] = count
	}

	return distribution, rows.Err()
}

// GetSourceStats retrieves decision statistics grouped by request source.
func (r *DecisionHistoryRepository) GetSourceStats(ctx context.Context) ([]*SourceStat, error) {
	query := `
		SELECT
			source,
			COUNT(*) as count,
			COALESCE(AVG(final_score), 0) as avg_score,
			COALESCE(AVG(CASE WHEN accepted THEN 1.0 ELSE 0.0 END), 0) as accept_rate
		FROM decision_history
		GROUP BY source
		ORDER BY count DESC
	`

	var stats []*SourceStat
	err := r.db.SelectContext(ctx, &stats, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get source stats: %w", err)
	}

	return stats, nil
}
