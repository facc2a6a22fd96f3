package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"sort"
	"strings"

	"github.com/quipshot/phrase-gate/internal/bootstrap"
	"github.com/quipshot/phrase-gate/internal/domain"
)

// runScore scores a single phrase and pretty-prints the decision.
func runScore(args []string) error {
	fs := flag.NewFlagSet("score", flag.ExitOnError)
	verbose := fs.Bool("v", false, "Verbose scoring diagnostics")
	if err := fs.Parse(args); err != nil {
		return err
	}

	phrase := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if phrase == "" {
		return errors.New("usage: phrasectl score <phrase>")
	}

	cfg, logger, err := cliSetup(*verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	scoring, err := bootstrap.NewScoringComponents(cfg, logger, nil)
	if err != nil {
		return err
	}

	result, err := scoring.Engine.ScorePhrase(context.Background(), phrase)
	if err != nil {
		return err
	}

	printDecision(result)
	return nil
}

func printDecision(result *domain.DecisionResult) {
	fmt.Printf("Phrase:          %s\n", result.Phrase)
	fmt.Printf("Final score:     %.2f (%s)\n", result.FinalScore, result.QualityClassification)
	fmt.Printf("Recommendation:  %s (confidence %s, accept=%t)\n",
		result.Decision.Recommendation, result.Decision.Confidence, result.Decision.Accept)
	fmt.Println("Components:")
	for _, name := range componentOrder {
		cs, ok := result.ComponentScores[name]
		if !ok {
			continue
		}
		line := fmt.Sprintf("  %-20s %3d/%-3d -> %6.2f", name, cs.RawScore, cs.MaxScore, cs.Contribution)
		if cs.Error != "" {
			line += "  (degraded: " + cs.Error + ")"
		}
		fmt.Println(line)
	}
	fmt.Printf("Reasoning:       %s\n", result.Decision.Reasoning)
	if result.Performance.LatencyWarning != "" {
		fmt.Printf("Latency:         %s\n", result.Performance.LatencyWarning)
	}
}

var componentOrder = []string{
	domain.ComponentDistinctiveness,
	domain.ComponentDescribability,
	domain.ComponentLegacyHeuristics,
	domain.ComponentCulturalValidation,
}

// runCorpusStats prints the sizes and origins of the loaded corpora.
func runCorpusStats(args []string) error {
	fs := flag.NewFlagSet("corpus-stats", flag.ExitOnError)
	verbose := fs.Bool("v", false, "Verbose loading diagnostics")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, logger, err := cliSetup(*verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	scoring, err := bootstrap.NewScoringComponents(cfg, logger, nil)
	if err != nil {
		return err
	}

	stats := scoring.Corpus.Stats()
	fmt.Printf("Entities:      %d labels, %d alias words (%s)\n",
		stats.Entities.Entities, stats.Entities.AliasWords, stats.Entities.Origin)
	for _, kind := range sortedKinds(stats.Entities.Kinds) {
		fmt.Printf("  %-12s %d\n", kind, stats.Entities.Kinds[kind])
	}
	fmt.Printf("Concreteness:  %d words, %d stems (%s)\n",
		stats.Concreteness.Words, stats.Concreteness.Stems, stats.Concreteness.Origin)
	fmt.Printf("Categories:    %d categories, %d terms (%s)\n",
		stats.Categories.Categories, stats.Categories.Terms, stats.Categories.Origin)
	fmt.Printf("Rule tables:   %d common words, %d weak head nouns\n",
		stats.Rules.CommonWords, stats.Rules.WeakHeadNouns)
	return nil
}

func sortedKinds(kinds map[string]int) []string {
	names := make([]string, 0, len(kinds))
	for kind := range kinds {
		names = append(names, kind)
	}
	sort.Strings(names)
	return names
}
