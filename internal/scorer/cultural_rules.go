// cultural_rules.go holds the pure rules behind the cultural validation
// scorer: category matching, popularity banding, and classification
// thresholds.
package scorer

import (
	"sort"

	ahocorasick "github.com/cloudflare/ahocorasick"

	"github.com/quipshot/phrase-gate/internal/corpus"
	"github.com/quipshot/phrase-gate/internal/domain"
)

const (
	categoryBoostPoints = 7

	// Popularity banding: monotonically non-decreasing points by estimated
	// engagement magnitude.
	popularityHighEngagement = 50000
	popularityMidEngagement  = 10000
	popularityLowEngagement  = 1000
	popularityHighPoints     = 8
	popularityMidPoints      = 5
	popularityLowPoints      = 2

	languagesPerBonusPoint = 10

	// Classification thresholds on the uncapped total.
	highlyPopularMin     = 15
	moderatelyPopularMin = 8
)

// popularityPoints bands an engagement estimate into points.
func popularityPoints(engagement int64) int {
	switch {
	case engagement >= popularityHighEngagement:
		return popularityHighPoints
	case engagement >= popularityMidEngagement:
		return popularityMidPoints
	case engagement >= popularityLowEngagement:
		return popularityLowPoints
	default:
		return 0
	}
}

// languageBonusPoints converts a language-coverage estimate into bonus
// points, one per ten languages, with no upper cap.
func languageBonusPoints(languages int) int {
	if languages <= 0 {
		return 0
	}
	return languages / languagesPerBonusPoint
}

// classifyCultural buckets the uncapped total for reporting.
func classifyCultural(total int) domain.CulturalClassification {
	switch {
	case total >= highlyPopularMin:
		return domain.CulturalHighlyPopular
	case total >= moderatelyPopularMin:
		return domain.CulturalModeratelyPopular
	default:
		return domain.CulturalObscure
	}
}

// categoryMatcher matches a normalized phrase against the ordered category
// term lists in a single automaton pass. The earliest category with a
// verified hit is the primary category.
type categoryMatcher struct {
	matcher      *ahocorasick.Matcher
	terms        []string
	termCategory []int
	names        []string
}

func newCategoryMatcher(set *corpus.CategorySet) *categoryMatcher {
	m := &categoryMatcher{}
	for pos, category := range set.Categories() {
		m.names = append(m.names, category.Name)
		for _, term := range category.Terms {
			m.terms = append(m.terms, term)
			m.termCategory = append(m.termCategory, pos)
		}
	}
	if len(m.terms) > 0 {
		m.matcher = ahocorasick.NewStringMatcher(m.terms)
	}
	return m
}

// match returns the primary category, the term that selected it, and every
// matched category in list order. Hits failing word-boundary verification
// are discarded.
func (m *categoryMatcher) match(normalized string) (primary, primaryTerm string, matched []string) {
	if m == nil || m.matcher == nil {
		return "", "", nil
	}

	bestPos := -1
	seen := make(map[int]bool)
	var positions []int

	for _, hit := range m.matcher.Match([]byte(normalized)) {
		if hit >= len(m.terms) {
			continue
		}
		term := m.terms[hit]
		if !containsWholeTerm(normalized, term) {
			continue
		}
		pos := m.termCategory[hit]
		if !seen[pos] {
			seen[pos] = true
			positions = append(positions, pos)
		}
		if bestPos == -1 || pos < bestPos {
			bestPos = pos
			primaryTerm = term
		}
	}
	if bestPos == -1 {
		return "", "", nil
	}

	sort.Ints(positions)
	matched = make([]string, 0, len(positions))
	for _, pos := range positions {
		matched = append(matched, m.names[pos])
	}
	return m.names[bestPos], primaryTerm, matched
}
