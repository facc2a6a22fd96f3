//nolint:testpackage // Testing internal scorers requires same package access
package scorer

import (
	"context"
	"errors"
	"testing"

	"github.com/quipshot/phrase-gate/internal/domain"
	"github.com/quipshot/phrase-gate/internal/logging"
)

func TestHeuristicsScorer_Score(t *testing.T) {
	t.Helper()

	scorer := NewHeuristicsScorer(logging.NewNop())

	tests := []struct {
		name           string
		phrase         string
		wantTotal      int
		wantSimplicity int
		wantBonus      int
	}{
		{
			// Four common words, optimal length: the ceiling.
			name:           "all common optimal length",
			phrase:         "the big red car",
			wantTotal:      30,
			wantSimplicity: 20,
			wantBonus:      10,
		},
		{
			// pharmaceutical is past the longest band, research lands in it.
			name:           "long rare words",
			phrase:         "pharmaceutical research",
			wantTotal:      13,
			wantSimplicity: 3,
			wantBonus:      10,
		},
		{
			name:           "single common word",
			phrase:         "pizza",
			wantTotal:      23,
			wantSimplicity: 20,
			wantBonus:      3,
		},
		{
			// Seven words: no length bonus regardless of simplicity.
			name:           "run-on phrase",
			phrase:         "the dog ate my homework yesterday afternoon",
			wantTotal:      11,
			wantSimplicity: 11,
			wantBonus:      0,
		},
		{
			name:           "five words get half bonus",
			phrase:         "the cat sat on mat",
			wantTotal:      23,
			wantSimplicity: 18,
			wantBonus:      5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := scorer.Score(context.Background(), tt.phrase)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.TotalScore != tt.wantTotal {
				t.Errorf("total: got %d, want %d", result.TotalScore, tt.wantTotal)
			}
			if got := result.Breakdown["word_simplicity_points"]; got != tt.wantSimplicity {
				t.Errorf("simplicity: got %d, want %d", got, tt.wantSimplicity)
			}
			if got := result.Breakdown["length_bonus_points"]; got != tt.wantBonus {
				t.Errorf("length bonus: got %d, want %d", got, tt.wantBonus)
			}
		})
	}
}

func TestHeuristicsScorer_DeterministicPureFunction(t *testing.T) {
	t.Helper()

	scorer := NewHeuristicsScorer(logging.NewNop())

	first, err := scorer.Score(context.Background(), "birthday party")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := scorer.Score(context.Background(), "birthday party")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.TotalScore != second.TotalScore {
		t.Errorf("scores differ: %d vs %d", first.TotalScore, second.TotalScore)
	}
}

func TestHeuristicsScorer_NeverExceedsBounds(t *testing.T) {
	t.Helper()

	scorer := NewHeuristicsScorer(logging.NewNop())

	phrases := []string{
		"a", "go", "the big red car", "pharmaceutical research",
		"supercalifragilisticexpialidocious", "one two three four five six seven eight",
	}
	for _, phrase := range phrases {
		result, err := scorer.Score(context.Background(), phrase)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", phrase, err)
		}
		if result.TotalScore < 0 || result.TotalScore > 30 {
			t.Errorf("%q: score %d out of [0,30]", phrase, result.TotalScore)
		}
		if got := result.Breakdown["word_simplicity_points"]; got < 0 || got > 20 {
			t.Errorf("%q: simplicity %d out of [0,20]", phrase, got)
		}
	}
}

func TestHeuristicsScorer_NoScoreableWords(t *testing.T) {
	t.Helper()

	scorer := NewHeuristicsScorer(logging.NewNop())

	for _, phrase := range []string{"", "   ", "!!!", "..."} {
		_, err := scorer.Score(context.Background(), phrase)
		if err == nil {
			t.Fatalf("expected error for %q", phrase)
		}
		if !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput for %q, got %v", phrase, err)
		}
	}
}

func TestSimplicityFor(t *testing.T) {
	t.Helper()

	tests := []struct {
		word string
		want int
	}{
		{"the", simplicityCommonWord},
		{"taco", simplicityShortWord},
		{"guitar", simplicityMidWord},
		{"elephant", simplicityLongWord},
		{"pharmaceutical", 0},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			if got := simplicityFor(tt.word); got != tt.want {
				t.Errorf("simplicityFor(%q): got %d, want %d", tt.word, got, tt.want)
			}
		})
	}
}

func TestLengthBonusPoints(t *testing.T) {
	t.Helper()

	tests := []struct {
		words int
		want  int
	}{
		{1, lengthBonusSingle},
		{2, lengthBonusOptimal},
		{4, lengthBonusOptimal},
		{5, lengthBonusLong},
		{6, lengthBonusLong},
		{7, 0},
		{12, 0},
	}

	for _, tt := range tests {
		if got := lengthBonusPoints(tt.words); got != tt.want {
			t.Errorf("lengthBonusPoints(%d): got %d, want %d", tt.words, got, tt.want)
		}
	}
}
