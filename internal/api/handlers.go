package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/quipshot/phrase-gate/internal/corpus"
	"github.com/quipshot/phrase-gate/internal/database"
	"github.com/quipshot/phrase-gate/internal/domain"
	"github.com/quipshot/phrase-gate/internal/logging"
	"github.com/quipshot/phrase-gate/internal/processor"
	"github.com/quipshot/phrase-gate/internal/scorer"
	"github.com/quipshot/phrase-gate/internal/telemetry"
)

const (
	recentDecisionsDefaultLimit = 20
	recentDecisionsMaxLimit     = 200

	// sourceAPI labels metrics for decisions requested synchronously over
	// HTTP, as opposed to submissions scored by the intake worker.
	sourceAPI = "api"
)

// DecisionHistoryReader is the slice of the decision audit store the API
// serves. Nil means history endpoints answer 503.
type DecisionHistoryReader interface {
	GetRecent(ctx context.Context, limit int) ([]*domain.DecisionHistory, error)
	GetStats(ctx context.Context) (*database.DecisionStats, error)
}

// SubmissionWriter queues phrases for asynchronous scoring by the intake
// worker. Nil means the submissions endpoint answers 503.
type SubmissionWriter interface {
	IndexSubmission(ctx context.Context, submission *domain.PhraseSubmission) error
}

// Handler handles HTTP requests for the scoring API.
type Handler struct {
	engine      *scorer.DecisionEngine
	batch       *processor.BatchProcessor
	corpus      *corpus.Corpus
	history     DecisionHistoryReader
	submissions SubmissionWriter
	telemetry   *telemetry.Provider
	logger      logging.Logger
}

// NewHandler creates a new API handler. History, submissions, and telemetry
// may be nil; the corresponding endpoints degrade rather than panic.
func NewHandler(
	engine *scorer.DecisionEngine,
	batch *processor.BatchProcessor,
	c *corpus.Corpus,
	history DecisionHistoryReader,
	submissions SubmissionWriter,
	tp *telemetry.Provider,
	logger logging.Logger,
) *Handler {
	return &Handler{
		engine:      engine,
		batch:       batch,
		corpus:      c,
		history:     history,
		submissions: submissions,
		telemetry:   tp,
		logger:      logger,
	}
}

// ScoreRequest asks for a full decision on one phrase.
type ScoreRequest struct {
	Phrase string `json:"phrase" binding:"required"`
}

// BatchScoreRequest scores many phrases in one call. The upper bound is
// enforced by the batch processor rather than the binding so configuration
// can raise it without an API change.
type BatchScoreRequest struct {
	Phrases []string `json:"phrases" binding:"required,min=1"`
}

// SubmissionRequest queues a phrase for asynchronous scoring.
type SubmissionRequest struct {
	Phrase      string `json:"phrase" binding:"required"`
	Source      string `json:"source"`
	SubmittedBy string `json:"submitted_by"`
}

// Score handles POST /api/v1/score
func (h *Handler) Score(c *gin.Context) {
	var req ScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid score request", logging.Error(err))
		respondError(c, http.StatusBadRequest, codeInvalidRequest, err.Error())
		return
	}

	ctx := c.Request.Context()

	result, err := h.engine.ScorePhrase(ctx, req.Phrase)
	if err != nil {
		status, code := scoringStatus(err)
		if status == http.StatusBadRequest {
			h.logger.Warn("phrase rejected before scoring",
				logging.String("phrase", req.Phrase),
				logging.Error(err))
		} else {
			h.logger.Error("scoring failed",
				logging.String("phrase", req.Phrase),
				logging.Error(err))
		}
		if h.telemetry != nil {
			h.telemetry.RecordScoringFailure(ctx, sourceAPI, string(domain.ClassifyError(err)))
		}
		respondError(c, status, code, err.Error())
		return
	}

	if h.telemetry != nil {
		h.telemetry.RecordDecision(ctx, sourceAPI,
			string(result.Decision.Recommendation),
			string(result.QualityClassification),
			result.FinalScore,
			time.Duration(result.Performance.DurationMs)*time.Millisecond)
	}

	h.logger.Info("phrase scored",
		logging.String("phrase", result.NormalizedPhrase),
		logging.Float64("final_score", result.FinalScore),
		logging.String("recommendation", string(result.Decision.Recommendation)))

	c.JSON(http.StatusOK, ScoreResponse{Result: result})
}

// ScoreBatch handles POST /api/v1/score/batch
func (h *Handler) ScoreBatch(c *gin.Context) {
	var req BatchScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid batch score request", logging.Error(err))
		respondError(c, http.StatusBadRequest, codeInvalidRequest, err.Error())
		return
	}

	h.logger.Info("scoring batch", logging.Int("batch_size", len(req.Phrases)))

	result, err := h.batch.Process(c.Request.Context(), req.Phrases)
	if err != nil {
		status, code := scoringStatus(err)
		h.logger.Warn("batch rejected",
			logging.Int("batch_size", len(req.Phrases)),
			logging.Error(err))
		respondError(c, status, code, err.Error())
		return
	}

	h.logger.Info("batch scored",
		logging.Int("scored", result.Summary.Scored),
		logging.Int("failed", result.Summary.Failed),
		logging.Float64("accept_rate", result.Summary.AcceptRate))

	c.JSON(http.StatusOK, result)
}

// ScoreDistinctiveness handles POST /api/v1/score/components/distinctiveness
func (h *Handler) ScoreDistinctiveness(c *gin.Context) {
	h.scoreComponent(c, domain.ComponentDistinctiveness, func(ctx context.Context, phrase string) (any, error) {
		return h.engine.Distinctiveness().Score(ctx, phrase)
	})
}

// ScoreDescribability handles POST /api/v1/score/components/describability
func (h *Handler) ScoreDescribability(c *gin.Context) {
	h.scoreComponent(c, domain.ComponentDescribability, func(ctx context.Context, phrase string) (any, error) {
		return h.engine.Describability().Score(ctx, phrase)
	})
}

// ScoreHeuristics handles POST /api/v1/score/components/heuristics
func (h *Handler) ScoreHeuristics(c *gin.Context) {
	h.scoreComponent(c, domain.ComponentLegacyHeuristics, func(ctx context.Context, phrase string) (any, error) {
		return h.engine.Heuristics().Score(ctx, phrase)
	})
}

// ScoreCultural handles POST /api/v1/score/components/cultural
func (h *Handler) ScoreCultural(c *gin.Context) {
	h.scoreComponent(c, domain.ComponentCulturalValidation, func(ctx context.Context, phrase string) (any, error) {
		return h.engine.Cultural().Score(ctx, phrase)
	})
}

// scoreComponent runs one component scorer in isolation. Component scorers
// assume validated input, so validation happens here the same way the full
// engine does it.
func (h *Handler) scoreComponent(c *gin.Context, component string, score func(ctx context.Context, phrase string) (any, error)) {
	var req ScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid component score request",
			logging.String("component", component),
			logging.Error(err))
		respondError(c, http.StatusBadRequest, codeInvalidRequest, err.Error())
		return
	}

	phrase, err := domain.ValidatePhrase(req.Phrase)
	if err != nil {
		respondError(c, http.StatusBadRequest, codeInvalidPhrase, err.Error())
		return
	}

	ctx := c.Request.Context()
	started := time.Now()

	result, err := score(ctx, phrase)
	if err != nil {
		h.logger.Error("component scoring failed",
			logging.String("component", component),
			logging.String("phrase", phrase),
			logging.Error(err))
		status, code := scoringStatus(err)
		respondError(c, status, code, err.Error())
		return
	}

	if h.telemetry != nil {
		h.telemetry.RecordComponent(ctx, component, time.Since(started))
	}

	c.JSON(http.StatusOK, ComponentResponse{
		Phrase:    phrase,
		Component: component,
		Result:    result,
	})
}

// GetCorpusStats handles GET /api/v1/corpus/stats
func (h *Handler) GetCorpusStats(c *gin.Context) {
	h.logger.Debug("reporting corpus stats")
	c.JSON(http.StatusOK, h.corpus.Stats())
}

// GetRecentDecisions handles GET /api/v1/decisions/recent
func (h *Handler) GetRecentDecisions(c *gin.Context) {
	if h.history == nil {
		respondError(c, http.StatusServiceUnavailable, codeUnavailable, "decision history is not configured")
		return
	}

	limit := recentDecisionsDefaultLimit
	if limitParam := c.Query("limit"); limitParam != "" {
		if l, err := strconv.Atoi(limitParam); err == nil && l > 0 && l <= recentDecisionsMaxLimit {
			limit = l
		}
	}

	decisions, err := h.history.GetRecent(c.Request.Context(), limit)
	if err != nil {
		h.logger.Error("failed to load recent decisions", logging.Error(err))
		respondError(c, http.StatusInternalServerError, codeInternal, "failed to load recent decisions")
		return
	}

	c.JSON(http.StatusOK, RecentDecisionsResponse{
		Decisions: decisions,
		Count:     len(decisions),
	})
}

// GetDecisionStats handles GET /api/v1/decisions/stats
func (h *Handler) GetDecisionStats(c *gin.Context) {
	if h.history == nil {
		respondError(c, http.StatusServiceUnavailable, codeUnavailable, "decision history is not configured")
		return
	}

	stats, err := h.history.GetStats(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to load decision stats", logging.Error(err))
		respondError(c, http.StatusInternalServerError, codeInternal, "failed to load decision stats")
		return
	}

	c.JSON(http.StatusOK, stats)
}

// CreateSubmission handles POST /api/v1/submissions
func (h *Handler) CreateSubmission(c *gin.Context) {
	if h.submissions == nil {
		respondError(c, http.StatusServiceUnavailable, codeUnavailable, "submission intake is not configured")
		return
	}

	var req SubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid submission request", logging.Error(err))
		respondError(c, http.StatusBadRequest, codeInvalidRequest, err.Error())
		return
	}

	submission, err := domain.NewPhraseSubmission(req.Phrase, req.Source, req.SubmittedBy)
	if err != nil {
		respondError(c, http.StatusBadRequest, codeInvalidPhrase, err.Error())
		return
	}

	if err := h.submissions.IndexSubmission(c.Request.Context(), submission); err != nil {
		h.logger.Error("failed to queue submission",
			logging.String("phrase", submission.Phrase),
			logging.Error(err))
		respondError(c, http.StatusInternalServerError, codeInternal, "failed to queue submission")
		return
	}

	h.logger.Info("submission queued",
		logging.String("submission_id", submission.ID),
		logging.String("source", submission.Source))

	c.JSON(http.StatusAccepted, SubmissionResponse{
		Submission: submission,
		Status:     "queued",
	})
}

// ReadyCheck handles GET /ready. The service is ready once the engine and
// corpora are loaded; persistence is optional and not part of readiness.
func (h *Handler) ReadyCheck(c *gin.Context) {
	checks := gin.H{}
	ready := true

	if h.engine != nil {
		checks["engine"] = "ok"
	} else {
		checks["engine"] = "missing"
		ready = false
	}

	if h.corpus != nil {
		checks["corpus"] = "ok"
	} else {
		checks["corpus"] = "missing"
		ready = false
	}

	if !ready {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "checks": checks})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ready", "checks": checks})
}
