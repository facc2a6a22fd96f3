// internal/data/data_test.go
//nolint:testpackage // internal tests for curated tables
package data

import (
	"strings"
	"testing"
)

func TestIsWeakHeadNoun(t *testing.T) {
	tests := []struct {
		word string
		want bool
	}{
		{"strategy", true},
		{"vibe", true},
		{"culture", true},
		{"zeitgeist", true},
		{"pizza", false},
		{"tower", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsWeakHeadNoun(tt.word); got != tt.want {
			t.Errorf("IsWeakHeadNoun(%q) = %v, want %v", tt.word, got, tt.want)
		}
	}
}

func TestIsCommonWord(t *testing.T) {
	tests := []struct {
		word string
		want bool
	}{
		{"the", true},
		{"big", true},
		{"red", true},
		{"car", true},
		{"pharmaceutical", false},
		{"quixotic", false},
	}

	for _, tt := range tests {
		if got := IsCommonWord(tt.word); got != tt.want {
			t.Errorf("IsCommonWord(%q) = %v, want %v", tt.word, got, tt.want)
		}
	}
}

func TestConcretenessNormsBands(t *testing.T) {
	norms := ConcretenessNorms()

	for word, rating := range norms {
		if rating < 1.0 || rating > 5.0 {
			t.Errorf("concreteness rating for %q out of range: %v", word, rating)
		}
		if word != strings.ToLower(word) {
			t.Errorf("concreteness key %q is not lowercase", word)
		}
	}

	// Spot checks that anchor the describability bands.
	concrete := []string{"pizza", "delivery", "dog", "guitar"}
	for _, word := range concrete {
		if norms[word] < 4.0 {
			t.Errorf("expected %q to rate as concrete, got %v", word, norms[word])
		}
	}

	abstract := []string{"strategy", "vibe", "synergy", "paradigm"}
	for _, word := range abstract {
		rating, ok := norms[word]
		if !ok {
			t.Fatalf("expected %q in built-in norms", word)
		}
		if rating >= 3.0 {
			t.Errorf("expected %q to rate as abstract, got %v", word, rating)
		}
	}
}

func TestBuiltinEntitiesIntegrity(t *testing.T) {
	seen := make(map[string]struct{})

	for _, entity := range BuiltinEntities() {
		if entity.Label == "" {
			t.Fatal("entity with empty label")
		}
		if entity.Kind == "" {
			t.Errorf("entity %q has no kind", entity.Label)
		}
		if entity.Sitelinks <= 0 {
			t.Errorf("entity %q has non-positive sitelinks", entity.Label)
		}

		key := strings.ToLower(entity.Label)
		if _, dup := seen[key]; dup {
			t.Errorf("duplicate entity label %q", entity.Label)
		}
		seen[key] = struct{}{}

		for _, alias := range entity.Aliases {
			if strings.TrimSpace(alias) == "" {
				t.Errorf("entity %q has blank alias", entity.Label)
			}
		}
	}
}

func TestDefaultCategoriesCoverEverydayTopics(t *testing.T) {
	categories := DefaultCategories()
	if len(categories) < 5 {
		t.Fatalf("expected at least 5 built-in categories, got %d", len(categories))
	}

	byName := make(map[string][]string, len(categories))
	for _, cat := range categories {
		if len(cat.Terms) == 0 {
			t.Errorf("category %q has no terms", cat.Name)
		}
		byName[cat.Name] = cat.Terms
	}

	if _, ok := byName["pop_culture"]; !ok {
		t.Error("missing pop_culture category")
	}
	if _, ok := byName["food_drink"]; !ok {
		t.Error("missing food_drink category")
	}
}
