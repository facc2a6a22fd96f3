// Package main implements phrasectl, the operator CLI for the phrase-gate
// scoring engine: score single phrases, run wordlist batches into the local
// review store, triage reviews, and inspect the loaded corpora.
package main

import (
	"fmt"
	"os"

	"github.com/quipshot/phrase-gate/internal/bootstrap"
	"github.com/quipshot/phrase-gate/internal/config"
	"github.com/quipshot/phrase-gate/internal/logging"
)

const usageText = `phrasectl - phrase quality scoring toolbox

Usage:
  phrasectl score <phrase>                       score one phrase
  phrasectl batch -file <wordlist> [-db <path>]  score a wordlist into the review store
  phrasectl review [-db <path>] [-status <s>]    list review entries
  phrasectl review -approve|-reject <phrase>     record an editor verdict
  phrasectl corpus-stats                         show loaded corpus sizes

Global environment: CONFIG_PATH selects the config file (default config.yml).
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usageText)
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "score":
		err = runScore(os.Args[2:])
	case "batch":
		err = runBatch(os.Args[2:])
	case "review":
		err = runReview(os.Args[2:])
	case "corpus-stats":
		err = runCorpusStats(os.Args[2:])
	case "help", "-h", "--help":
		fmt.Print(usageText)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", os.Args[1], usageText)
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// cliSetup loads configuration and builds a logger quiet enough for
// terminal output. Scoring diagnostics stay on stderr at error level
// unless verbose is set.
func cliSetup(verbose bool) (*config.Config, logging.Logger, error) {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("load configuration: %w", err)
	}

	level := "error"
	if verbose {
		level = "debug"
	}
	logger, err := logging.New(logging.Config{
		Level:       level,
		Format:      "console",
		Development: true,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("create logger: %w", err)
	}

	return cfg, logger, nil
}
