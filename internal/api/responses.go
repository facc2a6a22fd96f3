package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quipshot/phrase-gate/internal/domain"
)

// Machine-readable error codes carried alongside HTTP statuses so callers
// can branch without parsing messages.
const (
	codeInvalidRequest = "INVALID_REQUEST"
	codeInvalidPhrase  = "INVALID_PHRASE"
	codeBatchTooLarge  = "BATCH_TOO_LARGE"
	codeUnavailable    = "DEPENDENCY_UNAVAILABLE"
	codeInternal       = "INTERNAL_ERROR"
)

// ErrorResponse is the uniform error body for every API endpoint.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// ScoreResponse carries the full decision document for one phrase.
type ScoreResponse struct {
	Result *domain.DecisionResult `json:"result"`
}

// ComponentResponse wraps a single component scorer's output. Component is
// the key the same result appears under in a full decision document.
type ComponentResponse struct {
	Phrase    string `json:"phrase"`
	Component string `json:"component"`
	Result    any    `json:"result"`
}

// RecentDecisionsResponse lists recent audit records.
type RecentDecisionsResponse struct {
	Decisions []*domain.DecisionHistory `json:"decisions"`
	Count     int                       `json:"count"`
}

// SubmissionResponse acknowledges a phrase queued for asynchronous scoring.
type SubmissionResponse struct {
	Submission *domain.PhraseSubmission `json:"submission"`
	Status     string                   `json:"status"`
}

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, ErrorResponse{Error: message, Code: code})
}

// scoringStatus maps a scoring error onto an HTTP status and error code.
// Anything outside the known taxonomy is an internal failure.
func scoringStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, codeInvalidPhrase
	case errors.Is(err, domain.ErrBatchSizeExceeded):
		return http.StatusBadRequest, codeBatchTooLarge
	case errors.Is(err, domain.ErrComponentUnavailable):
		return http.StatusServiceUnavailable, codeUnavailable
	default:
		return http.StatusInternalServerError, codeInternal
	}
}
