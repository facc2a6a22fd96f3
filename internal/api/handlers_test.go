package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/quipshot/phrase-gate/internal/corpus"
	"github.com/quipshot/phrase-gate/internal/database"
	"github.com/quipshot/phrase-gate/internal/domain"
	"github.com/quipshot/phrase-gate/internal/logging"
	"github.com/quipshot/phrase-gate/internal/popularity"
	"github.com/quipshot/phrase-gate/internal/processor"
	"github.com/quipshot/phrase-gate/internal/scorer"
)

const testMaxBatchSize = 4

// mockHistoryReader implements DecisionHistoryReader for testing.
type mockHistoryReader struct {
	decisions []*domain.DecisionHistory
	stats     *database.DecisionStats
	err       error
}

func (m *mockHistoryReader) GetRecent(_ context.Context, limit int) ([]*domain.DecisionHistory, error) {
	if m.err != nil {
		return nil, m.err
	}
	if limit < len(m.decisions) {
		return m.decisions[:limit], nil
	}
	return m.decisions, nil
}

func (m *mockHistoryReader) GetStats(_ context.Context) (*database.DecisionStats, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.stats, nil
}

// mockSubmissionWriter implements SubmissionWriter for testing.
type mockSubmissionWriter struct {
	submissions []*domain.PhraseSubmission
	err         error
}

func (m *mockSubmissionWriter) IndexSubmission(_ context.Context, submission *domain.PhraseSubmission) error {
	if m.err != nil {
		return m.err
	}
	m.submissions = append(m.submissions, submission)
	return nil
}

// newTestHandler builds a handler over the builtin corpora and a real
// decision engine. History and submissions default to unconfigured; tests
// that need them pass mocks.
func newTestHandler(t *testing.T, history DecisionHistoryReader, submissions SubmissionWriter) *Handler {
	t.Helper()
	logger := logging.NewNop()

	c, err := corpus.Load(logger, corpus.Paths{})
	if err != nil {
		t.Fatalf("failed to load builtin corpora: %v", err)
	}

	engine := scorer.NewDecisionEngine(logger, c, popularity.NewSitelinkSource(logger, c.Entities))
	batch := processor.NewBatchProcessor(logger, engine, nil, processor.BatchConfig{
		Concurrency:  2,
		MaxBatchSize: testMaxBatchSize,
	})

	return NewHandler(engine, batch, c, history, submissions, nil, logger)
}

// setupRouter creates a test router with the flat route set.
func setupRouter(handler *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	SetupRoutes(router, handler)
	return router
}

func postJSON(router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", path, bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func getPath(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", path, nil)
	router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal error response: %v", err)
	}
	return resp
}

func TestReadyCheck(t *testing.T) {
	handler := newTestHandler(t, nil, nil)
	router := setupRouter(handler)

	w := getPath(router, "/ready")

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	if response["status"] != "ready" {
		t.Errorf("expected status ready, got %v", response["status"])
	}
}

func TestReadyCheck_MissingEngine(t *testing.T) {
	handler := NewHandler(nil, nil, nil, nil, nil, nil, logging.NewNop())
	router := setupRouter(handler)

	w := getPath(router, "/ready")

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status 503, got %d", w.Code)
	}
}

func TestScore_Success(t *testing.T) {
	handler := newTestHandler(t, nil, nil)
	router := setupRouter(handler)

	w := postJSON(router, "/api/v1/score", ScoreRequest{Phrase: "Taylor Swift"})

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var response ScoreResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	if response.Result == nil {
		t.Fatal("expected result to be non-nil")
	}
	if response.Result.NormalizedPhrase != "taylor swift" {
		t.Errorf("expected normalized phrase taylor swift, got %q", response.Result.NormalizedPhrase)
	}
	if response.Result.FinalScore <= 0 || response.Result.FinalScore > 100 {
		t.Errorf("expected final score in (0, 100], got %f", response.Result.FinalScore)
	}
	if response.Result.Decision.Recommendation == "" {
		t.Error("expected a recommendation")
	}
}

func TestScore_InvalidRequest(t *testing.T) {
	handler := newTestHandler(t, nil, nil)
	router := setupRouter(handler)

	w := postJSON(router, "/api/v1/score", map[string]string{})

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
	if resp := decodeError(t, w); resp.Code != codeInvalidRequest {
		t.Errorf("expected code %s, got %s", codeInvalidRequest, resp.Code)
	}
}

func TestScore_PhraseTooShort(t *testing.T) {
	handler := newTestHandler(t, nil, nil)
	router := setupRouter(handler)

	w := postJSON(router, "/api/v1/score", ScoreRequest{Phrase: "x"})

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
	if resp := decodeError(t, w); resp.Code != codeInvalidPhrase {
		t.Errorf("expected code %s, got %s", codeInvalidPhrase, resp.Code)
	}
}

func TestScoreBatch_Success(t *testing.T) {
	handler := newTestHandler(t, nil, nil)
	router := setupRouter(handler)

	w := postJSON(router, "/api/v1/score/batch", BatchScoreRequest{
		Phrases: []string{"Taylor Swift", "bungee jumping"},
	})

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var result processor.BatchResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	if len(result.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(result.Entries))
	}
	if result.Summary.Submitted != 2 {
		t.Errorf("expected 2 submitted, got %d", result.Summary.Submitted)
	}
	if result.Summary.Scored != 2 {
		t.Errorf("expected 2 scored, got %d", result.Summary.Scored)
	}
	if result.Entries[0].Phrase != "Taylor Swift" {
		t.Errorf("expected input order preserved, got %q first", result.Entries[0].Phrase)
	}
}

func TestScoreBatch_ExceedsLimit(t *testing.T) {
	handler := newTestHandler(t, nil, nil)
	router := setupRouter(handler)

	phrases := make([]string, testMaxBatchSize+1)
	for i := range phrases {
		phrases[i] = "some test phrase"
	}

	w := postJSON(router, "/api/v1/score/batch", BatchScoreRequest{Phrases: phrases})

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
	if resp := decodeError(t, w); resp.Code != codeBatchTooLarge {
		t.Errorf("expected code %s, got %s", codeBatchTooLarge, resp.Code)
	}
}

func TestScoreComponents(t *testing.T) {
	handler := newTestHandler(t, nil, nil)
	router := setupRouter(handler)

	cases := []struct {
		path      string
		component string
	}{
		{"/api/v1/score/components/distinctiveness", domain.ComponentDistinctiveness},
		{"/api/v1/score/components/describability", domain.ComponentDescribability},
		{"/api/v1/score/components/heuristics", domain.ComponentLegacyHeuristics},
		{"/api/v1/score/components/cultural", domain.ComponentCulturalValidation},
	}

	for _, tc := range cases {
		t.Run(tc.component, func(t *testing.T) {
			w := postJSON(router, tc.path, ScoreRequest{Phrase: "Taylor Swift"})

			if w.Code != http.StatusOK {
				t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
			}

			var response map[string]interface{}
			if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
				t.Fatalf("failed to unmarshal response: %v", err)
			}

			if response["component"] != tc.component {
				t.Errorf("expected component %s, got %v", tc.component, response["component"])
			}
			if response["phrase"] != "Taylor Swift" {
				t.Errorf("expected phrase echoed back, got %v", response["phrase"])
			}
			if response["result"] == nil {
				t.Error("expected a component result")
			}
		})
	}
}

func TestScoreComponent_PhraseTooShort(t *testing.T) {
	handler := newTestHandler(t, nil, nil)
	router := setupRouter(handler)

	w := postJSON(router, "/api/v1/score/components/distinctiveness", ScoreRequest{Phrase: " "})

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

func TestGetCorpusStats(t *testing.T) {
	handler := newTestHandler(t, nil, nil)
	router := setupRouter(handler)

	w := getPath(router, "/api/v1/corpus/stats")

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var stats corpus.Stats
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	if stats.Entities.Entities == 0 {
		t.Error("expected builtin entity corpus to be non-empty")
	}
	if stats.Concreteness.Words == 0 {
		t.Error("expected builtin concreteness table to be non-empty")
	}
}

func TestGetRecentDecisions(t *testing.T) {
	history := &mockHistoryReader{
		decisions: []*domain.DecisionHistory{
			{ID: 1, Phrase: "Taylor Swift", FinalScore: 88.5, Recommendation: "auto_accept", ScoredAt: time.Now()},
			{ID: 2, Phrase: "bungee jumping", FinalScore: 64.0, Recommendation: "conditional_accept", ScoredAt: time.Now()},
		},
	}
	handler := newTestHandler(t, history, nil)
	router := setupRouter(handler)

	w := getPath(router, "/api/v1/decisions/recent")

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var response RecentDecisionsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	if response.Count != 2 {
		t.Errorf("expected 2 decisions, got %d", response.Count)
	}
}

func TestGetRecentDecisions_LimitParam(t *testing.T) {
	history := &mockHistoryReader{
		decisions: []*domain.DecisionHistory{
			{ID: 1, Phrase: "Taylor Swift"},
			{ID: 2, Phrase: "bungee jumping"},
			{ID: 3, Phrase: "rubber duck"},
		},
	}
	handler := newTestHandler(t, history, nil)
	router := setupRouter(handler)

	w := getPath(router, "/api/v1/decisions/recent?limit=1")

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var response RecentDecisionsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	if response.Count != 1 {
		t.Errorf("expected limit to cap decisions at 1, got %d", response.Count)
	}
}

func TestGetRecentDecisions_NotConfigured(t *testing.T) {
	handler := newTestHandler(t, nil, nil)
	router := setupRouter(handler)

	w := getPath(router, "/api/v1/decisions/recent")

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status 503, got %d", w.Code)
	}
	if resp := decodeError(t, w); resp.Code != codeUnavailable {
		t.Errorf("expected code %s, got %s", codeUnavailable, resp.Code)
	}
}

func TestGetDecisionStats(t *testing.T) {
	history := &mockHistoryReader{
		stats: &database.DecisionStats{
			TotalDecisions: 10,
			Accepted:       6,
			AcceptRate:     0.6,
			AvgFinalScore:  61.3,
		},
	}
	handler := newTestHandler(t, history, nil)
	router := setupRouter(handler)

	w := getPath(router, "/api/v1/decisions/stats")

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var stats database.DecisionStats
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	if stats.TotalDecisions != 10 {
		t.Errorf("expected 10 total decisions, got %d", stats.TotalDecisions)
	}
	if stats.AcceptRate != 0.6 {
		t.Errorf("expected accept rate 0.6, got %f", stats.AcceptRate)
	}
}

func TestGetDecisionStats_Error(t *testing.T) {
	history := &mockHistoryReader{err: errors.New("connection refused")}
	handler := newTestHandler(t, history, nil)
	router := setupRouter(handler)

	w := getPath(router, "/api/v1/decisions/stats")

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", w.Code)
	}
}

func TestCreateSubmission(t *testing.T) {
	writer := &mockSubmissionWriter{}
	handler := newTestHandler(t, nil, writer)
	router := setupRouter(handler)

	w := postJSON(router, "/api/v1/submissions", SubmissionRequest{
		Phrase:      "  Taylor Swift  ",
		Source:      "editor",
		SubmittedBy: "alex",
	})

	if w.Code != http.StatusAccepted {
		t.Fatalf("expected status 202, got %d: %s", w.Code, w.Body.String())
	}

	var response SubmissionResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	if response.Status != "queued" {
		t.Errorf("expected status queued, got %s", response.Status)
	}
	if response.Submission == nil {
		t.Fatal("expected submission in response")
	}
	if response.Submission.ID == "" {
		t.Error("expected a generated submission ID")
	}
	if response.Submission.Phrase != "Taylor Swift" {
		t.Errorf("expected trimmed phrase, got %q", response.Submission.Phrase)
	}
	if response.Submission.DecisionStatus != domain.SubmissionPending {
		t.Errorf("expected pending status, got %s", response.Submission.DecisionStatus)
	}

	if len(writer.submissions) != 1 {
		t.Fatalf("expected 1 indexed submission, got %d", len(writer.submissions))
	}
	if writer.submissions[0].Source != "editor" {
		t.Errorf("expected source editor, got %s", writer.submissions[0].Source)
	}
}

func TestCreateSubmission_PhraseTooShort(t *testing.T) {
	handler := newTestHandler(t, nil, &mockSubmissionWriter{})
	router := setupRouter(handler)

	w := postJSON(router, "/api/v1/submissions", SubmissionRequest{Phrase: "a"})

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
	if resp := decodeError(t, w); resp.Code != codeInvalidPhrase {
		t.Errorf("expected code %s, got %s", codeInvalidPhrase, resp.Code)
	}
}

func TestCreateSubmission_NotConfigured(t *testing.T) {
	handler := newTestHandler(t, nil, nil)
	router := setupRouter(handler)

	w := postJSON(router, "/api/v1/submissions", SubmissionRequest{Phrase: "Taylor Swift"})

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status 503, got %d", w.Code)
	}
}

func TestCreateSubmission_WriterError(t *testing.T) {
	writer := &mockSubmissionWriter{err: errors.New("index unavailable")}
	handler := newTestHandler(t, nil, writer)
	router := setupRouter(handler)

	w := postJSON(router, "/api/v1/submissions", SubmissionRequest{Phrase: "Taylor Swift"})

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", w.Code)
	}
}
