// Package textutil provides the shared text normalization used by corpus
// lookups and scorers. Scoring keys are normalized the same way corpus keys
// are at load time, so lookups agree regardless of input casing or accents.
package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// RemoveAccents strips diacritical marks from a string.
func RemoveAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)
	return result
}

// Normalize prepares a phrase for corpus lookup: trim, lowercase, fold
// accents, collapse internal whitespace.
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = RemoveAccents(s)
	return strings.Join(strings.Fields(s), " ")
}

// FoldToWords lowercases text and replaces every non-alphanumeric rune with a
// space, preserving word boundaries for matching.
func FoldToWords(text string) string {
	text = strings.ToLower(text)

	var result strings.Builder
	result.Grow(len(text))

	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			result.WriteRune(r)
		} else {
			result.WriteByte(' ')
		}
	}

	return result.String()
}

// Tokenize splits a phrase into normalized word tokens.
func Tokenize(s string) []string {
	return strings.Fields(FoldToWords(RemoveAccents(s)))
}

// Minimum lengths before a suffix is stripped, so short words like "is",
// "red" or "ring" survive stemming intact.
const (
	minStemIES = 5
	minStemES  = 4
	minStemS   = 4
	minStemING = 6
	minStemED  = 5
	minStemLY  = 5
)

// Stem reduces a word to a lookup stem by stripping common English suffixes.
// It is intentionally light: the concreteness table fallback only needs
// plural and inflection forms to land on their base entry.
func Stem(word string) string {
	switch {
	case strings.HasSuffix(word, "ies") && len(word) >= minStemIES:
		return word[:len(word)-3] + "y"
	case strings.HasSuffix(word, "sses"):
		return word[:len(word)-2]
	case strings.HasSuffix(word, "ing") && len(word) >= minStemING:
		return undouble(word[:len(word)-3])
	case strings.HasSuffix(word, "ed") && len(word) >= minStemED:
		return undouble(word[:len(word)-2])
	case strings.HasSuffix(word, "ly") && len(word) >= minStemLY:
		return word[:len(word)-2]
	case strings.HasSuffix(word, "es") && len(word) >= minStemES:
		return word[:len(word)-2]
	case strings.HasSuffix(word, "s") && !strings.HasSuffix(word, "ss") && len(word) >= minStemS:
		return word[:len(word)-1]
	default:
		return word
	}
}

// undouble drops the trailing letter of a doubled final consonant left behind
// by suffix stripping ("runn" -> "run", "stopp" -> "stop").
func undouble(stem string) string {
	n := len(stem)
	if n >= 2 && stem[n-1] == stem[n-2] && !isVowel(stem[n-1]) {
		return stem[:n-1]
	}
	return stem
}

func isVowel(c byte) bool {
	switch c {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	default:
		return false
	}
}
