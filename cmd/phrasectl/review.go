package main

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/quipshot/phrase-gate/internal/database"
	"github.com/quipshot/phrase-gate/internal/domain"
)

// runReview lists the local review queue or records an editor verdict.
func runReview(args []string) error {
	fs := flag.NewFlagSet("review", flag.ExitOnError)
	dbPath := fs.String("db", "", "Review database path (default from config)")
	status := fs.String("status", "", "Filter by status: pending, approved, rejected")
	limit := fs.Int("limit", 50, "Maximum rows to list")
	approve := fs.String("approve", "", "Mark a phrase approved")
	reject := fs.String("reject", "", "Mark a phrase rejected")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, logger, err := cliSetup(false)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	path := *dbPath
	if path == "" {
		path = cfg.SQLite.Path
	}
	store, err := database.NewReviewStore(path)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	ctx := context.Background()

	if *approve != "" {
		return updateReview(ctx, store, *approve, domain.ReviewApproved)
	}
	if *reject != "" {
		return updateReview(ctx, store, *reject, domain.ReviewRejected)
	}

	return listReviews(ctx, store, *status, *limit)
}

func updateReview(ctx context.Context, store *database.ReviewStore, phrase, status string) error {
	if err := store.UpdateStatus(ctx, strings.TrimSpace(phrase), status); err != nil {
		return fmt.Errorf("update %q: %w", phrase, err)
	}
	fmt.Printf("%s: %s\n", status, phrase)
	return nil
}

func listReviews(ctx context.Context, store *database.ReviewStore, status string, limit int) error {
	items, err := store.ListByStatus(ctx, status, limit)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Println("No review entries found.")
		return nil
	}

	fmt.Printf("%-5s  %-6s  %-12s  %-18s  %-8s  %s\n",
		"ID", "SCORE", "QUALITY", "RECOMMENDATION", "STATUS", "PHRASE")
	for _, item := range items {
		fmt.Printf("%-5d  %6.2f  %-12s  %-18s  %-8s  %s\n",
			item.ID, item.FinalScore, item.Quality, item.Recommendation, item.Status, item.Phrase)
	}

	counts, err := store.CountByStatus(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("\nTotals: pending=%d approved=%d rejected=%d\n",
		counts[domain.ReviewPending], counts[domain.ReviewApproved], counts[domain.ReviewRejected])
	return nil
}
