// internal/corpus/concreteness.go
package corpus

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/quipshot/phrase-gate/internal/data"
	"github.com/quipshot/phrase-gate/internal/logging"
	"github.com/quipshot/phrase-gate/internal/textutil"
)

const (
	minConcretenessRating = 1.0
	maxConcretenessRating = 5.0
)

// ConcretenessTable maps words to concreteness ratings on the 1-5 norms
// scale. Lookups try the literal word first, then its stem, so inflected
// forms ("pizzas", "running") resolve against base-form norms.
type ConcretenessTable struct {
	words  map[string]float64
	stems  map[string]float64
	origin string
}

// ConcretenessStats summarizes the table for diagnostics.
type ConcretenessStats struct {
	Words  int    `json:"words"`
	Stems  int    `json:"stems"`
	Origin string `json:"origin"`
}

// stemCandidate tracks which source word backs a stem entry. Shorter source
// words win a contested stem; rating breaks remaining ties.
type stemCandidate struct {
	word   string
	rating float64
}

// NewConcretenessTable builds a table from a word rating map.
func NewConcretenessTable(ratings map[string]float64, origin string) *ConcretenessTable {
	words := make(map[string]float64, len(ratings))
	candidates := make(map[string]stemCandidate)

	for word, rating := range ratings {
		key := strings.ToLower(strings.TrimSpace(word))
		if key == "" {
			continue
		}
		words[key] = rating

		stem := textutil.Stem(key)
		if stem == key {
			continue
		}
		current, ok := candidates[stem]
		if !ok || betterStemSource(key, rating, current) {
			candidates[stem] = stemCandidate{word: key, rating: rating}
		}
	}

	stems := make(map[string]float64, len(candidates))
	for stem, candidate := range candidates {
		stems[stem] = candidate.rating
	}

	return &ConcretenessTable{
		words:  words,
		stems:  stems,
		origin: origin,
	}
}

// BuiltinConcretenessTable builds the table from the curated norms sample.
func BuiltinConcretenessTable() *ConcretenessTable {
	return NewConcretenessTable(data.ConcretenessNorms(), OriginBuiltin)
}

// LoadConcretenessTable reads a tab-separated norms file. The loader honors
// a "Word"/"Conc.M" header when present and otherwise assumes the word in
// the first column and the rating in the second; extra columns are ignored.
func LoadConcretenessTable(logger logging.Logger, path string) (*ConcretenessTable, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open norms file: %w", err)
	}
	defer file.Close()

	ratings := make(map[string]float64)
	wordCol, ratingCol := 0, 1
	skipped := 0
	lineNo := 0

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" {
			continue
		}

		fields := strings.Split(line, "\t")
		if lineNo == 1 {
			if cols, ok := normsHeaderColumns(fields); ok {
				wordCol, ratingCol = cols[0], cols[1]
				continue
			}
		}

		if len(fields) <= wordCol || len(fields) <= ratingCol {
			skipped++
			continue
		}

		word := strings.ToLower(strings.TrimSpace(fields[wordCol]))
		rating, parseErr := strconv.ParseFloat(strings.TrimSpace(fields[ratingCol]), 64)
		if word == "" || parseErr != nil ||
			rating < minConcretenessRating || rating > maxConcretenessRating {
			skipped++
			continue
		}
		ratings[word] = rating
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read norms file: %w", err)
	}
	if len(ratings) == 0 {
		return nil, fmt.Errorf("norms file %s contains no usable ratings", path)
	}

	table := NewConcretenessTable(ratings, path)
	logger.Info("concreteness norms loaded",
		logging.String("path", path),
		logging.Int("words", table.Size()),
		logging.Int("skipped", skipped))

	return table, nil
}

// normsHeaderColumns detects a header row and returns the word and rating
// column positions when both are named.
func normsHeaderColumns(fields []string) ([2]int, bool) {
	wordCol, ratingCol := -1, -1
	for i, field := range fields {
		switch strings.ToLower(strings.TrimSpace(field)) {
		case "word":
			wordCol = i
		case "conc.m", "conc_m", "concreteness":
			ratingCol = i
		}
	}
	if wordCol >= 0 && ratingCol >= 0 {
		return [2]int{wordCol, ratingCol}, true
	}
	return [2]int{}, false
}

// Lookup returns the rating for a normalized word. The literal form wins;
// otherwise the stemmed query is tried against base-form entries and then
// against the stem index, so "dogs" resolves through "dog" and "markets"
// through the stem shared with "marketing".
func (t *ConcretenessTable) Lookup(word string) (float64, bool) {
	if rating, ok := t.words[word]; ok {
		return rating, true
	}
	stem := textutil.Stem(word)
	if rating, ok := t.words[stem]; ok {
		return rating, true
	}
	if rating, ok := t.stems[stem]; ok {
		return rating, true
	}
	return 0, false
}

// Size returns the number of literal word entries.
func (t *ConcretenessTable) Size() int {
	return len(t.words)
}

// Origin reports where the table came from: a file path or "builtin".
func (t *ConcretenessTable) Origin() string {
	return t.origin
}

// Stats summarizes the table contents.
func (t *ConcretenessTable) Stats() ConcretenessStats {
	return ConcretenessStats{
		Words:  len(t.words),
		Stems:  len(t.stems),
		Origin: t.origin,
	}
}

func betterStemSource(word string, rating float64, current stemCandidate) bool {
	if len(word) != len(current.word) {
		return len(word) < len(current.word)
	}
	return rating > current.rating
}
