package domain

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// Submission decision status values tracked in the submissions index.
const (
	SubmissionPending = "pending"
	SubmissionScored  = "scored"
	SubmissionFailed  = "failed"
)

const submissionIDByteLen = 16

// PhraseSubmission is a candidate phrase queued for scoring. Editors and the
// generation pipeline write pending submissions; the intake worker scores
// them and writes the decision back.
type PhraseSubmission struct {
	ID             string          `json:"id"`
	Phrase         string          `json:"phrase"`
	Source         string          `json:"source"`
	SubmittedBy    string          `json:"submitted_by,omitempty"`
	DecisionStatus string          `json:"decision_status"`
	Decision       *DecisionResult `json:"decision,omitempty"`
	ErrorMessage   string          `json:"error_message,omitempty"`
	SubmittedAt    time.Time       `json:"submitted_at"`
	ScoredAt       *time.Time      `json:"scored_at,omitempty"`
}

// NewPhraseSubmission builds a pending submission with a fresh random ID.
// The phrase must survive ValidatePhrase; source defaults to "api".
func NewPhraseSubmission(phrase, source, submittedBy string) (*PhraseSubmission, error) {
	trimmed, err := ValidatePhrase(phrase)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(source) == "" {
		source = "api"
	}

	return &PhraseSubmission{
		ID:             newSubmissionID(),
		Phrase:         trimmed,
		Source:         source,
		SubmittedBy:    strings.TrimSpace(submittedBy),
		DecisionStatus: SubmissionPending,
		SubmittedAt:    time.Now().UTC(),
	}, nil
}

func newSubmissionID() string {
	buf := make([]byte, submissionIDByteLen)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Sprintf("sub-%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(buf)
}
