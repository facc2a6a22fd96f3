// Package scorer implements the phrase quality scorers and the decision
// engine that folds their outputs into an accept/reject verdict.
package scorer

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/quipshot/phrase-gate/internal/corpus"
	"github.com/quipshot/phrase-gate/internal/domain"
	"github.com/quipshot/phrase-gate/internal/logging"
	"github.com/quipshot/phrase-gate/internal/popularity"
	"github.com/quipshot/phrase-gate/internal/textutil"
)

// EngineVersion identifies the scoring formula revision stamped on results.
const EngineVersion = "1.0.0"

const (
	maxDistinctivenessScore = 25.0
	maxDescribabilityScore  = 25.0
	maxHeuristicsScore      = 30.0
	maxCulturalScore        = 20.0

	// Cultural validation may overflow its nominal max by 25% before the
	// normalization cap; the other components never exceed theirs.
	culturalOverflowAllowance = 1.25

	defaultDistinctivenessWeight = 0.25
	defaultDescribabilityWeight  = 0.30
	defaultHeuristicsWeight      = 0.25
	defaultCulturalWeight        = 0.20

	thresholdExcellent  = 80.0
	thresholdGood       = 60.0
	thresholdAcceptable = 40.0
	thresholdPoor       = 20.0

	defaultSoftLatencyTarget = 800 * time.Millisecond
	defaultHardLatencyTarget = 1500 * time.Millisecond

	percentScale = 100.0
)

// EngineConfig tunes the decision engine's weights and latency targets.
// Zero values fall back to the production defaults.
type EngineConfig struct {
	DistinctivenessWeight float64
	DescribabilityWeight  float64
	HeuristicsWeight      float64
	CulturalWeight        float64
	SoftLatencyTarget     time.Duration
	HardLatencyTarget     time.Duration
}

// DefaultEngineConfig returns the production scoring weights and latency
// targets.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		DistinctivenessWeight: defaultDistinctivenessWeight,
		DescribabilityWeight:  defaultDescribabilityWeight,
		HeuristicsWeight:      defaultHeuristicsWeight,
		CulturalWeight:        defaultCulturalWeight,
		SoftLatencyTarget:     defaultSoftLatencyTarget,
		HardLatencyTarget:     defaultHardLatencyTarget,
	}
}

func (c EngineConfig) withDefaults() EngineConfig {
	defaults := DefaultEngineConfig()
	if c.DistinctivenessWeight <= 0 {
		c.DistinctivenessWeight = defaults.DistinctivenessWeight
	}
	if c.DescribabilityWeight <= 0 {
		c.DescribabilityWeight = defaults.DescribabilityWeight
	}
	if c.HeuristicsWeight <= 0 {
		c.HeuristicsWeight = defaults.HeuristicsWeight
	}
	if c.CulturalWeight <= 0 {
		c.CulturalWeight = defaults.CulturalWeight
	}
	if c.SoftLatencyTarget <= 0 {
		c.SoftLatencyTarget = defaults.SoftLatencyTarget
	}
	if c.HardLatencyTarget <= 0 {
		c.HardLatencyTarget = defaults.HardLatencyTarget
	}
	return c
}

// DecisionEngine runs the four scorers concurrently and folds their results
// into one decision. It is stateless per call; for any phrase that passes
// validation it always returns a well-formed decision, never an error.
type DecisionEngine struct {
	distinctiveness DistinctivenessSource
	describability  DescribabilitySource
	heuristics      HeuristicsSource
	cultural        CulturalSource
	config          EngineConfig
	logger          logging.Logger
}

// NewDecisionEngine wires the engine over loaded corpora and a popularity
// source with the default configuration.
func NewDecisionEngine(logger logging.Logger, c *corpus.Corpus, source popularity.Source) *DecisionEngine {
	return NewDecisionEngineWithConfig(logger, c, source, DefaultEngineConfig())
}

// NewDecisionEngineWithConfig wires the engine with custom weights and
// latency targets.
func NewDecisionEngineWithConfig(logger logging.Logger, c *corpus.Corpus, source popularity.Source, config EngineConfig) *DecisionEngine {
	return &DecisionEngine{
		distinctiveness: NewDistinctivenessScorer(logger, c.Entities),
		describability:  NewDescribabilityScorer(logger, c.Concreteness),
		heuristics:      NewHeuristicsScorer(logger),
		cultural:        NewCulturalScorer(logger, c.Categories, source),
		config:          config.withDefaults(),
		logger:          logger,
	}
}

// Distinctiveness exposes the entity-match scorer for component endpoints.
func (e *DecisionEngine) Distinctiveness() DistinctivenessSource { return e.distinctiveness }

// Describability exposes the describability scorer for component endpoints.
func (e *DecisionEngine) Describability() DescribabilitySource { return e.describability }

// Heuristics exposes the legacy heuristics scorer for component endpoints.
func (e *DecisionEngine) Heuristics() HeuristicsSource { return e.heuristics }

// Cultural exposes the cultural validation scorer for component endpoints.
func (e *DecisionEngine) Cultural() CulturalSource { return e.cultural }

// scorerOutcomes collects the four component results. Each goroutine writes
// its own fields, so no locking is needed.
type scorerOutcomes struct {
	distinctiveness *DistinctivenessResult
	describability  *DescribabilityResult
	heuristics      *HeuristicsResult
	cultural        *CulturalResult
	distErr         error
	descErr         error
	heurErr         error
	cultErr         error
}

// ScorePhrase validates the phrase, runs all four scorers concurrently, and
// folds their outputs into a decision. Only validation errors are returned;
// any fault past validation degrades into a synthetic auto-reject decision.
func (e *DecisionEngine) ScorePhrase(ctx context.Context, phrase string) (result *domain.DecisionResult, err error) {
	trimmed, validationErr := domain.ValidatePhrase(phrase)
	if validationErr != nil {
		return nil, validationErr
	}

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("decision engine recovered from panic",
				logging.String("phrase", trimmed),
				logging.Any("panic", r))
			result = e.failureResult(trimmed, start, fmt.Sprintf("internal error: %v", r))
			err = nil
		}
	}()

	outcomes := e.runScorers(ctx, trimmed)
	return e.assemble(trimmed, outcomes, start), nil
}

// runScorers fans the phrase out to the four scorers. A scorer's failure or
// panic is captured as that component's error and never cancels the others.
func (e *DecisionEngine) runScorers(ctx context.Context, phrase string) *scorerOutcomes {
	out := &scorerOutcomes{}

	var wg sync.WaitGroup
	wg.Add(4)

	go func() {
		defer wg.Done()
		defer recoverComponent(&out.distErr, domain.ComponentDistinctiveness)
		out.distinctiveness, out.distErr = e.distinctiveness.Score(ctx, phrase)
	}()
	go func() {
		defer wg.Done()
		defer recoverComponent(&out.descErr, domain.ComponentDescribability)
		out.describability, out.descErr = e.describability.Score(ctx, phrase)
	}()
	go func() {
		defer wg.Done()
		defer recoverComponent(&out.heurErr, domain.ComponentLegacyHeuristics)
		out.heuristics, out.heurErr = e.heuristics.Score(ctx, phrase)
	}()
	go func() {
		defer wg.Done()
		defer recoverComponent(&out.cultErr, domain.ComponentCulturalValidation)
		out.cultural, out.cultErr = e.cultural.Score(ctx, phrase)
	}()

	wg.Wait()
	return out
}

func recoverComponent(errp *error, component string) {
	if r := recover(); r != nil {
		*errp = fmt.Errorf("%s scorer panicked: %v", component, r)
	}
}

//nolint:funlen // result assembly reads better in one pass
func (e *DecisionEngine) assemble(phrase string, out *scorerOutcomes, start time.Time) *domain.DecisionResult {
	scores := make(map[string]domain.ComponentScore, 4)
	details := make(map[string]any, 4)
	componentMs := make(map[string]int64, 4)
	var errs []string

	record := func(name string, raw int, maxScore, weight float64, overflow bool, scoreErr error) float64 {
		cs := domain.ComponentScore{
			RawScore: raw,
			MaxScore: int(maxScore),
			Weight:   weight,
		}
		if scoreErr != nil {
			cs.Error = scoreErr.Error()
			errs = append(errs, fmt.Sprintf("%s: %v", name, scoreErr))
		}
		ratio := float64(raw) / maxScore
		if overflow && ratio > culturalOverflowAllowance {
			ratio = culturalOverflowAllowance
		}
		cs.Contribution = round2(ratio * percentScale * weight)
		scores[name] = cs
		return cs.Contribution
	}

	distRaw := 0
	if out.distinctiveness != nil {
		distRaw = out.distinctiveness.TotalScore
		details[domain.ComponentDistinctiveness] = out.distinctiveness
		componentMs[domain.ComponentDistinctiveness] = out.distinctiveness.DurationMs
	}
	descRaw := 0
	if out.describability != nil {
		descRaw = out.describability.TotalScore
		details[domain.ComponentDescribability] = out.describability
		componentMs[domain.ComponentDescribability] = out.describability.DurationMs
	}
	heurRaw := 0
	if out.heuristics != nil {
		heurRaw = out.heuristics.TotalScore
		details[domain.ComponentLegacyHeuristics] = out.heuristics
		componentMs[domain.ComponentLegacyHeuristics] = out.heuristics.DurationMs
	}
	cultRaw := 0
	if out.cultural != nil {
		cultRaw = out.cultural.TotalScore
		details[domain.ComponentCulturalValidation] = out.cultural
		componentMs[domain.ComponentCulturalValidation] = out.cultural.DurationMs
	}

	final := round2(
		record(domain.ComponentDistinctiveness, distRaw, maxDistinctivenessScore, e.config.DistinctivenessWeight, false, out.distErr) +
			record(domain.ComponentDescribability, descRaw, maxDescribabilityScore, e.config.DescribabilityWeight, false, out.descErr) +
			record(domain.ComponentLegacyHeuristics, heurRaw, maxHeuristicsScore, e.config.HeuristicsWeight, false, out.heurErr) +
			record(domain.ComponentCulturalValidation, cultRaw, maxCulturalScore, e.config.CulturalWeight, true, out.cultErr))

	classification := classifyQuality(final)
	recommendation := recommendationFor(classification)

	duration := time.Since(start)
	result := &domain.DecisionResult{
		Phrase:                phrase,
		NormalizedPhrase:      textutil.Normalize(phrase),
		FinalScore:            final,
		QualityClassification: classification,
		Decision: domain.Verdict{
			Accept:         recommendation.Accepted(),
			Recommendation: recommendation,
			Confidence:     confidenceFor(recommendation),
			Reasoning:      buildReasoning(final, classification, scores),
		},
		ComponentScores:  scores,
		ComponentDetails: details,
		Performance: domain.Performance{
			DurationMs:     duration.Milliseconds(),
			ComponentMs:    componentMs,
			LatencyWarning: latencyWarning(duration, e.config),
		},
		Errors:        errs,
		EngineVersion: EngineVersion,
		ScoredAt:      time.Now().UTC(),
	}

	e.logger.Info("phrase scored",
		logging.String("phrase", phrase),
		logging.Float64("final_score", final),
		logging.String("classification", string(classification)),
		logging.String("recommendation", string(recommendation)),
		logging.Int64("duration_ms", duration.Milliseconds()))

	return result
}

// failureResult is the catch-all decision: structurally valid, auto-reject,
// with the fault attached.
func (e *DecisionEngine) failureResult(phrase string, start time.Time, message string) *domain.DecisionResult {
	return &domain.DecisionResult{
		Phrase:                phrase,
		NormalizedPhrase:      textutil.Normalize(phrase),
		FinalScore:            0,
		QualityClassification: domain.QualityUnacceptable,
		Decision: domain.Verdict{
			Accept:         false,
			Recommendation: domain.RecommendAutoReject,
			Confidence:     domain.ConfidenceHigh,
			Reasoning:      "scoring failed: " + message,
		},
		ComponentScores: map[string]domain.ComponentScore{},
		Performance: domain.Performance{
			DurationMs: time.Since(start).Milliseconds(),
		},
		Errors:        []string{message},
		EngineVersion: EngineVersion,
		ScoredAt:      time.Now().UTC(),
	}
}

// classifyQuality maps a final score to its tier, inclusive lower bounds
// tested top-down.
func classifyQuality(score float64) domain.QualityClassification {
	switch {
	case score >= thresholdExcellent:
		return domain.QualityExcellent
	case score >= thresholdGood:
		return domain.QualityGood
	case score >= thresholdAcceptable:
		return domain.QualityAcceptable
	case score >= thresholdPoor:
		return domain.QualityPoor
	default:
		return domain.QualityUnacceptable
	}
}

func recommendationFor(classification domain.QualityClassification) domain.Recommendation {
	switch classification {
	case domain.QualityExcellent:
		return domain.RecommendAutoAccept
	case domain.QualityGood:
		return domain.RecommendLikelyAccept
	case domain.QualityAcceptable:
		return domain.RecommendConditionalAccept
	case domain.QualityPoor:
		return domain.RecommendLikelyReject
	default:
		return domain.RecommendAutoReject
	}
}

// confidenceFor derives confidence 1:1 from the recommendation: the engine
// is most certain at both extremes and least certain mid-range.
func confidenceFor(recommendation domain.Recommendation) domain.Confidence {
	switch recommendation {
	case domain.RecommendAutoAccept, domain.RecommendAutoReject:
		return domain.ConfidenceHigh
	case domain.RecommendLikelyAccept, domain.RecommendLikelyReject:
		return domain.ConfidenceMedium
	default:
		return domain.ConfidenceLow
	}
}

// buildReasoning produces a short deterministic explanation naming the
// strongest and weakest components.
func buildReasoning(final float64, classification domain.QualityClassification, scores map[string]domain.ComponentScore) string {
	order := []string{
		domain.ComponentDistinctiveness,
		domain.ComponentDescribability,
		domain.ComponentLegacyHeuristics,
		domain.ComponentCulturalValidation,
	}

	strongest, weakest := "", ""
	bestRatio, worstRatio := -1.0, 2.0
	for _, name := range order {
		cs, ok := scores[name]
		if !ok || cs.MaxScore == 0 {
			continue
		}
		ratio := float64(cs.RawScore) / float64(cs.MaxScore)
		if ratio > bestRatio {
			bestRatio = ratio
			strongest = name
		}
		if ratio < worstRatio {
			worstRatio = ratio
			weakest = name
		}
	}

	if strongest == "" {
		return fmt.Sprintf("final score %.2f classifies as %s", final, classification)
	}
	return fmt.Sprintf("final score %.2f classifies as %s; strongest component %s, weakest %s",
		final, classification, strongest, weakest)
}

func latencyWarning(duration time.Duration, config EngineConfig) string {
	switch {
	case duration > config.HardLatencyTarget:
		return fmt.Sprintf("scoring took %dms, above the hard %dms target",
			duration.Milliseconds(), config.HardLatencyTarget.Milliseconds())
	case duration > config.SoftLatencyTarget:
		return fmt.Sprintf("scoring took %dms, above the soft %dms target",
			duration.Milliseconds(), config.SoftLatencyTarget.Milliseconds())
	default:
		return ""
	}
}

func round2(v float64) float64 {
	return math.Round(v*percentScale) / percentScale
}
