//nolint:testpackage // Testing internal scorers requires same package access
package scorer

import (
	"context"
	"errors"
	"testing"

	"github.com/quipshot/phrase-gate/internal/corpus"
	"github.com/quipshot/phrase-gate/internal/domain"
	"github.com/quipshot/phrase-gate/internal/logging"
	"github.com/quipshot/phrase-gate/internal/popularity"
)

type fakePopularitySource struct {
	estimate popularity.Estimate
	err      error
}

func (f *fakePopularitySource) Estimate(_ context.Context, _ string) (popularity.Estimate, error) {
	return f.estimate, f.err
}

func (f *fakePopularitySource) Name() string {
	return "fake"
}

func newCulturalScorer(t *testing.T, source popularity.Source) *CulturalScorer {
	t.Helper()
	return NewCulturalScorer(logging.NewNop(), corpus.BuiltinCategorySet(), source)
}

func TestCulturalScorer_CategoryAndPopularity(t *testing.T) {
	t.Helper()

	source := &fakePopularitySource{
		estimate: popularity.Estimate{
			Engagement: 120000,
			Languages:  214,
			Origin:     popularity.OriginSitelinks,
		},
	}
	scorer := newCulturalScorer(t, source)

	result, err := scorer.Score(context.Background(), "taylor swift concert")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 7 category + 8 popularity + 21 languages.
	if result.TotalScore != 36 {
		t.Errorf("total: got %d, want 36", result.TotalScore)
	}
	if result.Classification != domain.CulturalHighlyPopular {
		t.Errorf("classification: got %s, want %s", result.Classification, domain.CulturalHighlyPopular)
	}
	if got := result.Breakdown["category_boost_points"]; got != categoryBoostPoints {
		t.Errorf("category boost: got %d, want %d", got, categoryBoostPoints)
	}
	if got := result.Breakdown["popularity_points"]; got != popularityHighPoints {
		t.Errorf("popularity points: got %d, want %d", got, popularityHighPoints)
	}
	if got := result.Breakdown["language_bonus_points"]; got != 21 {
		t.Errorf("language bonus: got %d, want 21", got)
	}
	if result.Components["primary_category"] != "pop_culture" {
		t.Errorf("primary category: got %v, want pop_culture", result.Components["primary_category"])
	}
}

func TestCulturalScorer_ObscurePhrase(t *testing.T) {
	t.Helper()

	source := &fakePopularitySource{
		estimate: popularity.Estimate{
			Engagement: 500,
			Languages:  3,
			Origin:     popularity.OriginFallback,
		},
	}
	scorer := newCulturalScorer(t, source)

	result, err := scorer.Score(context.Background(), "administrative procedure")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.TotalScore != 0 {
		t.Errorf("total: got %d, want 0", result.TotalScore)
	}
	if result.Classification != domain.CulturalObscure {
		t.Errorf("classification: got %s, want %s", result.Classification, domain.CulturalObscure)
	}
}

func TestCulturalScorer_ModeratelyPopularBand(t *testing.T) {
	t.Helper()

	source := &fakePopularitySource{
		estimate: popularity.Estimate{
			Engagement: 15000,
			Languages:  45,
			Origin:     popularity.OriginWikimedia,
		},
	}
	scorer := newCulturalScorer(t, source)

	// No category term matches; 5 popularity + 4 languages.
	result, err := scorer.Score(context.Background(), "velvet cushion")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.TotalScore != 9 {
		t.Errorf("total: got %d, want 9", result.TotalScore)
	}
	if result.Classification != domain.CulturalModeratelyPopular {
		t.Errorf("classification: got %s, want %s", result.Classification, domain.CulturalModeratelyPopular)
	}
	if got := result.Breakdown["category_boost_points"]; got != 0 {
		t.Errorf("category boost: got %d, want 0", got)
	}
}

func TestCulturalScorer_PopularityFailureIsIsolated(t *testing.T) {
	t.Helper()

	source := &fakePopularitySource{err: errors.New("estimate backend down")}
	scorer := newCulturalScorer(t, source)

	// The category boost still applies; only the popularity points are lost.
	result, err := scorer.Score(context.Background(), "pizza")
	if err != nil {
		t.Fatalf("popularity failure must not fail scoring: %v", err)
	}
	if result.TotalScore != categoryBoostPoints {
		t.Errorf("total: got %d, want %d", result.TotalScore, categoryBoostPoints)
	}
	if got := result.Breakdown["popularity_points"]; got != 0 {
		t.Errorf("popularity points: got %d, want 0", got)
	}
	if _, ok := result.Components["popularity_error"]; !ok {
		t.Error("expected popularity_error component")
	}
}

func TestCulturalScorer_PrimaryCategoryFollowsOrder(t *testing.T) {
	t.Helper()

	set := corpus.NewCategorySet([]corpus.Category{
		{Name: "first", Terms: []string{"alpha"}},
		{Name: "second", Terms: []string{"beta"}},
	}, "test")
	scorer := NewCulturalScorer(logging.NewNop(), set, &fakePopularitySource{})

	result, err := scorer.Score(context.Background(), "alpha beta")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Components["primary_category"] != "first" {
		t.Errorf("primary category: got %v, want first", result.Components["primary_category"])
	}
	matched, ok := result.Components["matched_categories"].([]string)
	if !ok {
		t.Fatal("expected matched_categories component")
	}
	if len(matched) != 2 {
		t.Errorf("matched categories: got %v, want both", matched)
	}
}

func TestCulturalScorer_EmptyPhrase(t *testing.T) {
	t.Helper()

	scorer := newCulturalScorer(t, &fakePopularitySource{})

	_, err := scorer.Score(context.Background(), " ")
	if err == nil {
		t.Fatal("expected error for blank phrase")
	}
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestPopularityPoints(t *testing.T) {
	t.Helper()

	tests := []struct {
		engagement int64
		want       int
	}{
		{0, 0},
		{999, 0},
		{1000, popularityLowPoints},
		{9999, popularityLowPoints},
		{10000, popularityMidPoints},
		{49999, popularityMidPoints},
		{50000, popularityHighPoints},
		{5000000, popularityHighPoints},
	}

	for _, tt := range tests {
		if got := popularityPoints(tt.engagement); got != tt.want {
			t.Errorf("popularityPoints(%d): got %d, want %d", tt.engagement, got, tt.want)
		}
	}
}

func TestLanguageBonusPoints(t *testing.T) {
	t.Helper()

	tests := []struct {
		languages int
		want      int
	}{
		{-3, 0},
		{0, 0},
		{9, 0},
		{10, 1},
		{45, 4},
		{214, 21},
		{300, 30},
	}

	for _, tt := range tests {
		if got := languageBonusPoints(tt.languages); got != tt.want {
			t.Errorf("languageBonusPoints(%d): got %d, want %d", tt.languages, got, tt.want)
		}
	}
}

func TestClassifyCultural(t *testing.T) {
	t.Helper()

	tests := []struct {
		total int
		want  domain.CulturalClassification
	}{
		{0, domain.CulturalObscure},
		{7, domain.CulturalObscure},
		{8, domain.CulturalModeratelyPopular},
		{14, domain.CulturalModeratelyPopular},
		{15, domain.CulturalHighlyPopular},
		{36, domain.CulturalHighlyPopular},
	}

	for _, tt := range tests {
		if got := classifyCultural(tt.total); got != tt.want {
			t.Errorf("classifyCultural(%d): got %s, want %s", tt.total, got, tt.want)
		}
	}
}
