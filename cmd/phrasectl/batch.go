package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/quipshot/phrase-gate/internal/bootstrap"
	"github.com/quipshot/phrase-gate/internal/database"
	"github.com/quipshot/phrase-gate/internal/domain"
	"github.com/quipshot/phrase-gate/internal/processor"
)

// runBatch scores a wordlist file through the batch processor, feeding the
// local review store so editors can triage the borderline decisions later.
// Files larger than the engine's batch bound are scored in bounded chunks.
func runBatch(args []string) error {
	fs := flag.NewFlagSet("batch", flag.ExitOnError)
	file := fs.String("file", "", "Wordlist file, one phrase per line (required)")
	dbPath := fs.String("db", "", "Review database path (default from config)")
	noStore := fs.Bool("no-store", false, "Score only, skip the review store")
	verbose := fs.Bool("v", false, "Verbose scoring diagnostics")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *file == "" {
		return errors.New("usage: phrasectl batch -file <wordlist> [-db <path>]")
	}

	cfg, logger, err := cliSetup(*verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	phrases, err := readWordlist(*file)
	if err != nil {
		return err
	}
	if len(phrases) == 0 {
		return fmt.Errorf("wordlist %s contains no phrases", *file)
	}

	scoring, err := bootstrap.NewScoringComponents(cfg, logger, nil)
	if err != nil {
		return err
	}

	var store *database.ReviewStore
	if !*noStore {
		path := *dbPath
		if path == "" {
			path = cfg.SQLite.Path
		}
		store, err = database.NewReviewStore(path)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()
		fmt.Printf("Review store: %s\n", path)
	}

	ctx := context.Background()
	total := combinedSummary{classifications: make(map[string]int)}

	// One Process call per chunk keeps the engine's wholesale batch bound
	// intact while still handling arbitrarily long wordlists.
	chunkSize := scoring.Batch.MaxBatchSize()
	for start := 0; start < len(phrases); start += chunkSize {
		end := min(start+chunkSize, len(phrases))

		result, procErr := scoring.Batch.Process(ctx, phrases[start:end])
		if procErr != nil {
			return fmt.Errorf("score chunk starting at line %d: %w", start+1, procErr)
		}

		total.add(result.Summary)

		if store != nil {
			if saveErr := saveReviewItems(ctx, store, result.Entries); saveErr != nil {
				return saveErr
			}
		}
	}

	printBatchSummary(total)
	return nil
}

// readWordlist reads one phrase per line, dropping blank lines and
// # comments.
func readWordlist(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open wordlist: %w", err)
	}
	defer f.Close()

	var phrases []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		phrases = append(phrases, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read wordlist: %w", err)
	}
	return phrases, nil
}

func saveReviewItems(ctx context.Context, store *database.ReviewStore, entries []processor.BatchEntry) error {
	items := make([]*domain.ReviewItem, 0, len(entries))
	for _, entry := range entries {
		if entry.Result == nil {
			continue
		}
		items = append(items, domain.NewReviewItem(entry.Result))
	}
	if err := store.SaveBatch(ctx, items); err != nil {
		return fmt.Errorf("save review items: %w", err)
	}
	return nil
}

// combinedSummary accumulates per-chunk batch summaries into one run report.
type combinedSummary struct {
	submitted       int
	scored          int
	skipped         int
	failed          int
	accepted        int
	scoreSum        float64
	durationMs      int64
	classifications map[string]int
}

func (c *combinedSummary) add(s processor.BatchSummary) {
	c.submitted += s.Submitted
	c.scored += s.Scored
	c.skipped += s.Skipped
	c.failed += s.Failed
	c.accepted += s.Accepted
	c.scoreSum += s.MeanFinalScore * float64(s.Scored)
	c.durationMs += s.DurationMs
	for classification, count := range s.Classifications {
		c.classifications[classification] += count
	}
}

func printBatchSummary(total combinedSummary) {
	fmt.Printf("Submitted: %d   Scored: %d   Skipped: %d   Failed: %d\n",
		total.submitted, total.scored, total.skipped, total.failed)
	if total.scored > 0 {
		fmt.Printf("Accepted:  %d (%.1f%%)   Mean score: %.2f\n",
			total.accepted,
			100*float64(total.accepted)/float64(total.scored),
			total.scoreSum/float64(total.scored))
	}

	classifications := make([]string, 0, len(total.classifications))
	for classification := range total.classifications {
		classifications = append(classifications, classification)
	}
	sort.Strings(classifications)
	for _, classification := range classifications {
		fmt.Printf("  %-14s %d\n", classification, total.classifications[classification])
	}
	fmt.Printf("Duration:  %dms\n", total.durationMs)
}
