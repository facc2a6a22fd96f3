// Package telemetry provides OpenTelemetry instrumentation for the
// phrase-gate service. It exports Prometheus metrics and provides tracing
// capabilities.
package telemetry

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "phrase-gate"

// Metrics holds all phrase-gate Prometheus metrics
type Metrics struct {
	// Scoring metrics
	PhrasesScored   *prometheus.CounterVec
	PhrasesFailed   *prometheus.CounterVec
	ScoringDuration *prometheus.HistogramVec
	FinalScore      prometheus.Histogram
	BatchSize       prometheus.Histogram

	// Decision distribution
	RecommendationTotal *prometheus.CounterVec
	ClassificationTotal *prometheus.CounterVec
	LatencyWarnings     *prometheus.CounterVec

	// Component metrics
	ComponentDuration *prometheus.HistogramVec
	ComponentFailures *prometheus.CounterVec

	// Popularity source metrics
	PopularityLookups  *prometheus.CounterVec
	PopularityCacheOps *prometheus.CounterVec

	// Intake / backpressure metrics
	PendingSubmissions prometheus.Gauge
	ActiveWorkers      prometheus.Gauge
	IntakeLag          prometheus.Histogram

	// DLQ metrics
	DLQDepth     prometheus.Gauge
	DLQEnqueued  *prometheus.CounterVec
	DLQProcessed prometheus.Counter
	DLQExhausted prometheus.Counter

	// Corpus metrics
	CorpusEntries *prometheus.GaugeVec
}

// Provider wraps telemetry providers
type Provider struct {
	Tracer  trace.Tracer
	Metrics *Metrics
}

// NewProvider initializes telemetry with Prometheus metrics
func NewProvider() *Provider {
	metrics := initMetrics()
	tracer := otel.Tracer(serviceName)

	return &Provider{
		Tracer:  tracer,
		Metrics: metrics,
	}
}

// Handler returns the Prometheus HTTP handler for /metrics endpoint
func (p *Provider) Handler() http.Handler {
	return promhttp.Handler()
}

func initMetrics() *Metrics {
	m := &Metrics{}
	initScoringMetrics(m)
	initDecisionMetrics(m)
	initComponentMetrics(m)
	initPopularityMetrics(m)
	initIntakeMetrics(m)
	initDLQMetrics(m)
	initCorpusMetrics(m)
	return m
}

func initScoringMetrics(m *Metrics) {
	m.PhrasesScored = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "phrasegate_phrases_scored_total",
		Help: "Total phrases successfully scored",
	}, []string{"source"})

	m.PhrasesFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "phrasegate_phrases_failed_total",
		Help: "Total phrases that failed scoring",
	}, []string{"source", "error_code"})

	m.ScoringDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "phrasegate_scoring_duration_seconds",
		Help:    "Time to score a single phrase",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 0.8, 1.5, 3.0},
	}, []string{"source"})

	m.FinalScore = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "phrasegate_final_score",
		Help:    "Distribution of weighted final scores",
		Buckets: []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
	})

	m.BatchSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "phrasegate_batch_size",
		Help:    "Number of phrases per batch",
		Buckets: []float64{1, 5, 10, 25, 50, 100, 200, 500},
	})
}

func initDecisionMetrics(m *Metrics) {
	m.RecommendationTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "phrasegate_recommendations_total",
		Help: "Decisions by recommendation (auto_accept .. auto_reject)",
	}, []string{"recommendation"})

	m.ClassificationTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "phrasegate_classifications_total",
		Help: "Decisions by quality classification tier",
	}, []string{"classification"})

	m.LatencyWarnings = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "phrasegate_latency_warnings_total",
		Help: "Scoring calls that exceeded a latency target",
	}, []string{"target"})
}

func initComponentMetrics(m *Metrics) {
	m.ComponentDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "phrasegate_component_duration_seconds",
		Help:    "Per-component scoring time",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
	}, []string{"component"})

	m.ComponentFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "phrasegate_component_failures_total",
		Help: "Component scorers that errored or panicked during a decision",
	}, []string{"component"})
}

func initPopularityMetrics(m *Metrics) {
	m.PopularityLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "phrasegate_popularity_lookups_total",
		Help: "Popularity estimates by origin (sitelinks, wikimedia, fallback)",
	}, []string{"origin"})

	m.PopularityCacheOps = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "phrasegate_popularity_cache_total",
		Help: "Popularity cache lookups by outcome (hit, miss, error)",
	}, []string{"outcome"})
}

func initIntakeMetrics(m *Metrics) {
	m.PendingSubmissions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "phrasegate_pending_submissions",
		Help: "Submissions awaiting scoring at the last poll",
	})

	m.ActiveWorkers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "phrasegate_active_workers",
		Help: "Currently active scoring worker goroutines",
	})

	m.IntakeLag = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "phrasegate_intake_lag_seconds",
		Help:    "Time between submission and scoring start",
		Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 600, 1800, 3600},
	})
}

func initDLQMetrics(m *Metrics) {
	m.DLQDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "phrasegate_dlq_depth",
		Help: "Current submissions in dead-letter queue",
	})

	m.DLQEnqueued = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "phrasegate_dlq_enqueued_total",
		Help: "Total submissions added to DLQ",
	}, []string{"source", "error_code"})

	m.DLQProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "phrasegate_dlq_processed_total",
		Help: "Total submissions successfully rescored from DLQ",
	})

	m.DLQExhausted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "phrasegate_dlq_exhausted_total",
		Help: "Total submissions that exhausted all retries",
	})
}

func initCorpusMetrics(m *Metrics) {
	m.CorpusEntries = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "phrasegate_corpus_entries",
		Help: "Loaded corpus sizes by corpus name",
	}, []string{"corpus"})
}

// RecordDecision records metrics for a completed scoring decision
func (p *Provider) RecordDecision(ctx context.Context, source, recommendation, classification string, finalScore float64, duration time.Duration) {
	p.Metrics.PhrasesScored.WithLabelValues(source).Inc()
	p.Metrics.ScoringDuration.WithLabelValues(source).Observe(duration.Seconds())
	p.Metrics.FinalScore.Observe(finalScore)
	p.Metrics.RecommendationTotal.WithLabelValues(recommendation).Inc()
	p.Metrics.ClassificationTotal.WithLabelValues(classification).Inc()
}

// RecordScoringFailure records a phrase that could not be scored
func (p *Provider) RecordScoringFailure(ctx context.Context, source, errorCode string) {
	p.Metrics.PhrasesFailed.WithLabelValues(source, errorCode).Inc()
}

// RecordLatencyWarning counts a scoring call that exceeded a target
func (p *Provider) RecordLatencyWarning(ctx context.Context, target string) {
	p.Metrics.LatencyWarnings.WithLabelValues(target).Inc()
}

// RecordComponent records one component's scoring duration
func (p *Provider) RecordComponent(ctx context.Context, component string, duration time.Duration) {
	p.Metrics.ComponentDuration.WithLabelValues(component).Observe(duration.Seconds())
}

// RecordComponentFailure counts a component that errored inside a decision
func (p *Provider) RecordComponentFailure(ctx context.Context, component string) {
	p.Metrics.ComponentFailures.WithLabelValues(component).Inc()
}

// RecordPopularityLookup counts an estimate by its origin
func (p *Provider) RecordPopularityLookup(ctx context.Context, origin string) {
	p.Metrics.PopularityLookups.WithLabelValues(origin).Inc()
}

// RecordPopularityCache counts a cache lookup outcome (hit, miss, error)
func (p *Provider) RecordPopularityCache(ctx context.Context, outcome string) {
	p.Metrics.PopularityCacheOps.WithLabelValues(outcome).Inc()
}

// RecordIntakeLag records the submission-to-scoring freshness lag
func (p *Provider) RecordIntakeLag(ctx context.Context, submittedAt time.Time) {
	lag := time.Since(submittedAt)
	p.Metrics.IntakeLag.Observe(lag.Seconds())
}

// RecordDLQEnqueue records a DLQ enqueue event
func (p *Provider) RecordDLQEnqueue(ctx context.Context, source, errorCode string) {
	p.Metrics.DLQEnqueued.WithLabelValues(source, errorCode).Inc()
	p.Metrics.DLQDepth.Inc()
}

// RecordDLQProcessed records a successful DLQ rescore
func (p *Provider) RecordDLQProcessed(ctx context.Context) {
	p.Metrics.DLQProcessed.Inc()
	p.Metrics.DLQDepth.Dec()
}

// RecordDLQExhausted records a DLQ entry that exhausted retries
func (p *Provider) RecordDLQExhausted(ctx context.Context) {
	p.Metrics.DLQExhausted.Inc()
	p.Metrics.DLQDepth.Dec()
}

// RecordBatchSize records the size of a scored batch
func (p *Provider) RecordBatchSize(size int) {
	p.Metrics.BatchSize.Observe(float64(size))
}

// SetPendingSubmissions sets the pending-submission gauge
func (p *Provider) SetPendingSubmissions(count int) {
	p.Metrics.PendingSubmissions.Set(float64(count))
}

// SetActiveWorkers sets the current active worker count
func (p *Provider) SetActiveWorkers(count int) {
	p.Metrics.ActiveWorkers.Set(float64(count))
}

// SetDLQDepth sets the current DLQ depth
func (p *Provider) SetDLQDepth(depth int) {
	p.Metrics.DLQDepth.Set(float64(depth))
}

// SetCorpusSize publishes a loaded corpus size
func (p *Provider) SetCorpusSize(corpus string, size int) {
	p.Metrics.CorpusEntries.WithLabelValues(corpus).Set(float64(size))
}

// StartSpan starts a new trace span.
// The caller is responsible for ending the span with span.End().
//
//nolint:spancheck // Caller is responsible for ending the span
func (p *Provider) StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	ctx, span := p.Tracer.Start(ctx, name, trace.WithAttributes(attrs...))
	return ctx, span
}
