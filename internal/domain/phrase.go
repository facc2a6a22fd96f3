package domain

import (
	"strings"
	"unicode/utf8"
)

// Phrase length bounds, counted in runes on the trimmed input.
const (
	MinPhraseLength = 2
	MaxPhraseLength = 100
)

// ValidatePhrase checks a raw phrase against the input contract.
// It returns the trimmed phrase and an ErrInvalidInput-wrapped error when the
// phrase is empty or out of bounds. Validation runs before any scoring.
func ValidatePhrase(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", InvalidInputError("phrase is empty")
	}

	length := utf8.RuneCountInString(trimmed)
	if length < MinPhraseLength {
		return "", InvalidInputError("phrase shorter than 2 characters")
	}
	if length > MaxPhraseLength {
		return "", InvalidInputError("phrase longer than 100 characters")
	}

	return trimmed, nil
}
