package corpus

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/quipshot/phrase-gate/internal/data"
	"github.com/quipshot/phrase-gate/internal/logging"
	"github.com/quipshot/phrase-gate/internal/textutil"
)

// Category is one named game category with its matchable terms.
type Category struct {
	Name  string   `yaml:"name" json:"name"`
	Terms []string `yaml:"terms" json:"terms"`
}

// CategorySet holds the ordered category list the cultural scorer matches
// against. Order matters: the first category with a hit becomes the primary
// category of a phrase.
type CategorySet struct {
	categories []Category
	origin     string
}

// CategoryStats summarizes the set for diagnostics.
type CategoryStats struct {
	Categories int    `json:"categories"`
	Terms      int    `json:"terms"`
	Origin     string `json:"origin"`
}

// categoryFile mirrors the YAML layout of a category terms file.
type categoryFile struct {
	Categories []Category `yaml:"categories"`
}

// NewCategorySet builds a set from ordered categories, normalizing all terms
// and dropping categories left empty after normalization.
func NewCategorySet(categories []Category, origin string) *CategorySet {
	kept := make([]Category, 0, len(categories))
	for _, category := range categories {
		if category.Name == "" {
			continue
		}
		terms := make([]string, 0, len(category.Terms))
		for _, term := range category.Terms {
			normalized := textutil.Normalize(term)
			if normalized != "" {
				terms = append(terms, normalized)
			}
		}
		if len(terms) == 0 {
			continue
		}
		kept = append(kept, Category{Name: category.Name, Terms: terms})
	}

	return &CategorySet{categories: kept, origin: origin}
}

// BuiltinCategorySet builds the set from the curated category tables.
func BuiltinCategorySet() *CategorySet {
	defaults := data.DefaultCategories()
	categories := make([]Category, 0, len(defaults))
	for _, d := range defaults {
		categories = append(categories, Category{Name: d.Name, Terms: d.Terms})
	}
	return NewCategorySet(categories, OriginBuiltin)
}

// LoadCategorySet reads a category terms YAML file.
func LoadCategorySet(logger logging.Logger, path string) (*CategorySet, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read category file: %w", err)
	}

	var file categoryFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("failed to parse category file: %w", err)
	}

	set := NewCategorySet(file.Categories, path)
	if set.Len() == 0 {
		return nil, fmt.Errorf("category file %s contains no usable categories", path)
	}

	logger.Info("category terms loaded",
		logging.String("path", path),
		logging.Int("categories", set.Len()),
		logging.Int("terms", set.TermCount()))

	return set, nil
}

// Categories returns the ordered category list. Callers must treat it as
// read-only.
func (cs *CategorySet) Categories() []Category {
	return cs.categories
}

// Len returns the number of categories.
func (cs *CategorySet) Len() int {
	return len(cs.categories)
}

// TermCount returns the total number of terms across all categories.
func (cs *CategorySet) TermCount() int {
	total := 0
	for _, category := range cs.categories {
		total += len(category.Terms)
	}
	return total
}

// Origin reports where the set came from: a file path or "builtin".
func (cs *CategorySet) Origin() string {
	return cs.origin
}

// Stats summarizes the set contents.
func (cs *CategorySet) Stats() CategoryStats {
	return CategoryStats{
		Categories: cs.Len(),
		Terms:      cs.TermCount(),
		Origin:     cs.origin,
	}
}
