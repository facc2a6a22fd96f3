// describability_rules.go holds the pure pattern rules behind the
// describability scorer: concreteness banding, proper-noun detection on the
// original casing, and the weak-head-noun penalty.
package scorer

import (
	"regexp"
	"strings"

	ahocorasick "github.com/cloudflare/ahocorasick"

	"github.com/quipshot/phrase-gate/internal/data"
	"github.com/quipshot/phrase-gate/internal/textutil"
)

const (
	concretenessHighPoints = 15
	concretenessMidPoints  = 8
	concretenessHighBand   = 4.0
	concretenessMidBand    = 3.0

	properNounBonus = 5
	weakHeadPenalty = 10
)

// Proper-noun detection methods reported in result components.
const (
	properNounMethodCapitalizedPair = "capitalized_pair"
	properNounMethodHonorificName   = "honorific_name"
	properNounMethodKnownName       = "known_name"
)

// capitalizedPairPattern matches two or more adjacent capitalized words in
// the original casing ("Taylor Swift", "New York Yankees"). Case is the
// primary signal here, so this must never run on the normalized phrase.
var capitalizedPairPattern = regexp.MustCompile(`(^|[\s"'(])[A-Z][a-z]+([\s-]+[A-Z][a-z']+)+`)

// concretenessOutcome carries the banded sub-score plus reporting detail.
type concretenessOutcome struct {
	points   int
	average  float64
	found    int
	total    int
	coverage float64
}

// bandConcreteness maps an average rating to its point band. No rated words
// means no points; coverage is reported but never gates.
func bandConcreteness(average float64, found int) int {
	if found == 0 {
		return 0
	}
	switch {
	case average >= concretenessHighBand:
		return concretenessHighPoints
	case average >= concretenessMidBand:
		return concretenessMidPoints
	default:
		return 0
	}
}

// hasHonorificName reports whether an honorific is immediately followed by a
// capitalized word in the original casing ("Dr Strange", "Sir Elton John").
func hasHonorificName(original string) bool {
	fields := strings.Fields(original)
	for i := 0; i+1 < len(fields); i++ {
		token := strings.TrimRight(strings.ToLower(fields[i]), ".")
		if !data.IsHonorific(token) {
			continue
		}
		next := fields[i+1]
		if next != "" && next[0] >= 'A' && next[0] <= 'Z' {
			return true
		}
	}
	return false
}

// weakHeadMatch returns the first weak abstract head noun among the phrase
// words, checking the final (head) position first.
func weakHeadMatch(words []string) (string, bool) {
	if len(words) == 0 {
		return "", false
	}
	if head := words[len(words)-1]; data.IsWeakHeadNoun(head) {
		return head, true
	}
	for _, word := range words[:len(words)-1] {
		if data.IsWeakHeadNoun(word) {
			return word, true
		}
	}
	return "", false
}

// nameListMatcher wraps an Aho-Corasick automaton over curated name terms
// with word-boundary verification, so "nike" matches "nike sneakers" but
// "pop" never matches inside "popsicle".
type nameListMatcher struct {
	matcher *ahocorasick.Matcher
	terms   []string
}

func newNameListMatcher(terms []string) *nameListMatcher {
	normalized := make([]string, 0, len(terms))
	for _, term := range terms {
		if folded := textutil.Normalize(term); folded != "" {
			normalized = append(normalized, folded)
		}
	}
	return &nameListMatcher{
		matcher: ahocorasick.NewStringMatcher(normalized),
		terms:   normalized,
	}
}

// match returns the first verified whole-word term hit in the normalized
// text, in automaton order.
func (m *nameListMatcher) match(normalized string) (string, bool) {
	if m == nil || m.matcher == nil {
		return "", false
	}
	for _, hit := range m.matcher.Match([]byte(normalized)) {
		if hit >= len(m.terms) {
			continue
		}
		term := m.terms[hit]
		if containsWholeTerm(normalized, term) {
			return term, true
		}
	}
	return "", false
}

// containsWholeTerm verifies a term sits on word boundaries inside text.
// Both sides are already normalized, so padding with spaces is sufficient.
func containsWholeTerm(text, term string) bool {
	return strings.Contains(" "+text+" ", " "+term+" ")
}
