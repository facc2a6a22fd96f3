// Package corpus provides the immutable lookup corpora the scorers read:
// the entity index, the concreteness norms table, and the category term set.
// Corpora load once at startup and are never mutated afterwards, so the
// scoring path reads them without locks.
package corpus

import (
	"fmt"

	"github.com/quipshot/phrase-gate/internal/data"
	"github.com/quipshot/phrase-gate/internal/domain"
	"github.com/quipshot/phrase-gate/internal/logging"
)

// OriginBuiltin marks a corpus that was assembled from the curated in-source
// tables rather than loaded from a configured file.
const OriginBuiltin = "builtin"

// Paths names the optional corpus files. An empty path selects the built-in
// data; a non-empty path that fails to load is a startup error.
type Paths struct {
	Entities     string
	Concreteness string
	Categories   string
}

// Corpus bundles the three lookup structures the scorers depend on.
type Corpus struct {
	Entities     *EntityIndex
	Concreteness *ConcretenessTable
	Categories   *CategorySet
}

// Stats summarizes corpus sizes and origins for diagnostics endpoints.
type Stats struct {
	Entities     EntityStats       `json:"entities"`
	Concreteness ConcretenessStats `json:"concreteness"`
	Categories   CategoryStats     `json:"categories"`
	Rules        RuleStats         `json:"rules"`
}

// RuleStats counts the compiled-in rule tables the scorers consult. These
// tables ship with the binary and never reload.
type RuleStats struct {
	CommonWords   int `json:"common_words"`
	WeakHeadNouns int `json:"weak_head_nouns"`
}

// Load assembles the corpus from the configured paths, falling back to the
// built-in tables for any path left empty.
func Load(logger logging.Logger, paths Paths) (*Corpus, error) {
	entities, err := loadEntities(logger, paths.Entities)
	if err != nil {
		return nil, err
	}

	concreteness, err := loadConcreteness(logger, paths.Concreteness)
	if err != nil {
		return nil, err
	}

	categories, err := loadCategories(logger, paths.Categories)
	if err != nil {
		return nil, err
	}

	corpus := &Corpus{
		Entities:     entities,
		Concreteness: concreteness,
		Categories:   categories,
	}

	stats := corpus.Stats()
	logger.Info("corpus loaded",
		logging.Int("entities", stats.Entities.Entities),
		logging.String("entities_origin", stats.Entities.Origin),
		logging.Int("concreteness_words", stats.Concreteness.Words),
		logging.String("concreteness_origin", stats.Concreteness.Origin),
		logging.Int("categories", stats.Categories.Categories),
		logging.String("categories_origin", stats.Categories.Origin),
	)

	return corpus, nil
}

// Stats reports the sizes and origins of all three corpora.
func (c *Corpus) Stats() Stats {
	return Stats{
		Entities:     c.Entities.Stats(),
		Concreteness: c.Concreteness.Stats(),
		Categories:   c.Categories.Stats(),
		Rules: RuleStats{
			CommonWords:   data.CommonWordCount(),
			WeakHeadNouns: data.WeakHeadNounCount(),
		},
	}
}

func loadEntities(logger logging.Logger, path string) (*EntityIndex, error) {
	if path == "" {
		return BuiltinEntityIndex(logger), nil
	}
	index, err := LoadEntityIndex(logger, path)
	if err != nil {
		return nil, fmt.Errorf("%w: entity corpus: %w", domain.ErrComponentUnavailable, err)
	}
	return index, nil
}

func loadConcreteness(logger logging.Logger, path string) (*ConcretenessTable, error) {
	if path == "" {
		return BuiltinConcretenessTable(), nil
	}
	table, err := LoadConcretenessTable(logger, path)
	if err != nil {
		return nil, fmt.Errorf("%w: concreteness norms: %w", domain.ErrComponentUnavailable, err)
	}
	return table, nil
}

func loadCategories(logger logging.Logger, path string) (*CategorySet, error) {
	if path == "" {
		return BuiltinCategorySet(), nil
	}
	set, err := LoadCategorySet(logger, path)
	if err != nil {
		return nil, fmt.Errorf("%w: category terms: %w", domain.ErrComponentUnavailable, err)
	}
	return set, nil
}
