package database

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3" // sqlite3 driver

	"github.com/quipshot/phrase-gate/internal/domain"
)

const defaultReviewListLimit = 100

const reviewSchema = `
CREATE TABLE IF NOT EXISTS review_queue (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	phrase TEXT NOT NULL UNIQUE,
	final_score REAL NOT NULL,
	quality TEXT NOT NULL,
	recommendation TEXT NOT NULL,
	confidence TEXT NOT NULL,
	reasoning TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL DEFAULT 'pending',
	scored_at TIMESTAMP NOT NULL,
	reviewed_at TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_review_queue_status ON review_queue(status);`

// ReviewStore is a local SQLite database holding scored phrases for
// offline editor triage. The schema is created on open.
type ReviewStore struct {
	db *sql.DB
}

// NewReviewStore opens (or creates) the review database at path
func NewReviewStore(path string) (*ReviewStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open review store: %w", err)
	}
	if _, err := db.Exec(reviewSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create review schema: %w", err)
	}
	return &ReviewStore{db: db}, nil
}

// Close closes the underlying database
func (s *ReviewStore) Close() error {
	return s.db.Close()
}

// Save upserts one review row. A re-scored phrase refreshes its score
// fields but keeps its prior triage status.
func (s *ReviewStore) Save(ctx context.Context, item *domain.ReviewItem) error {
	query := `
		INSERT INTO review_queue
			(phrase, final_score, quality, recommendation, confidence, reasoning, status, scored_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(phrase) DO UPDATE SET
			final_score = excluded.final_score,
			quality = excluded.quality,
			recommendation = excluded.recommendation,
			confidence = excluded.confidence,
			reasoning = excluded.reasoning,
			scored_at = excluded.scored_at`

	_, err := s.db.ExecContext(ctx, query,
		item.Phrase,
		item.FinalScore,
		item.Quality,
		item.Recommendation,
		item.Confidence,
		item.Reasoning,
		item.Status,
		item.ScoredAt,
	)
	if err != nil {
		return fmt.Errorf("save review item: %w", err)
	}
	return nil
}

// SaveBatch writes a scored wordlist in a single transaction
func (s *ReviewStore) SaveBatch(ctx context.Context, items []*domain.ReviewItem) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin review batch: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO review_queue
			(phrase, final_score, quality, recommendation, confidence, reasoning, status, scored_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(phrase) DO UPDATE SET
			final_score = excluded.final_score,
			quality = excluded.quality,
			recommendation = excluded.recommendation,
			confidence = excluded.confidence,
			reasoning = excluded.reasoning,
			scored_at = excluded.scored_at`)
	if err != nil {
		return fmt.Errorf("prepare review insert: %w", err)
	}
	defer stmt.Close()

	for _, item := range items {
		if _, err = stmt.ExecContext(ctx,
			item.Phrase,
			item.FinalScore,
			item.Quality,
			item.Recommendation,
			item.Confidence,
			item.Reasoning,
			item.Status,
			item.ScoredAt,
		); err != nil {
			return fmt.Errorf("save review item %q: %w", item.Phrase, err)
		}
	}

	err = tx.Commit()
	return err
}

// ListByStatus returns review rows, optionally filtered by status.
// An empty status lists everything, borderline decisions first.
func (s *ReviewStore) ListByStatus(ctx context.Context, status string, limit int) ([]domain.ReviewItem, error) {
	if limit <= 0 {
		limit = defaultReviewListLimit
	}

	query := `
		SELECT id, phrase, final_score, quality, recommendation, confidence,
		       reasoning, status, scored_at, reviewed_at
		FROM review_queue`
	args := []any{}
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY final_score DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list review items: %w", err)
	}
	defer rows.Close()

	var items []domain.ReviewItem
	for rows.Next() {
		var item domain.ReviewItem
		var reviewedAt sql.NullTime
		scanErr := rows.Scan(
			&item.ID, &item.Phrase, &item.FinalScore, &item.Quality,
			&item.Recommendation, &item.Confidence, &item.Reasoning,
			&item.Status, &item.ScoredAt, &reviewedAt,
		)
		if scanErr != nil {
			return nil, fmt.Errorf("scan review item: %w", scanErr)
		}
		if reviewedAt.Valid {
			item.ReviewedAt = &reviewedAt.Time
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// UpdateStatus records an editor's verdict for a phrase
func (s *ReviewStore) UpdateStatus(ctx context.Context, phrase, status string) error {
	switch status {
	case domain.ReviewPending, domain.ReviewApproved, domain.ReviewRejected:
	default:
		return fmt.Errorf("unknown review status %q", status)
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE review_queue
		SET status = ?, reviewed_at = CURRENT_TIMESTAMP
		WHERE phrase = ?`,
		status, phrase)
	if err != nil {
		return fmt.Errorf("update review status: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CountByStatus returns row counts per review status
func (s *ReviewStore) CountByStatus(ctx context.Context) (map[string]int64, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT status, COUNT(*) FROM review_queue GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("count review items: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var status string
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}
