package telemetry_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/quipshot/phrase-gate/internal/telemetry"
)

// providerOnce ensures we only create one Provider per test run to avoid
// duplicate Prometheus metric registration errors from promauto's global registry
var (
	testProvider *telemetry.Provider
	providerOnce sync.Once
)

func getTestProvider(t *testing.T) *telemetry.Provider {
	t.Helper()
	providerOnce.Do(func() {
		testProvider = telemetry.NewProvider()
	})
	return testProvider
}

func TestNewProvider(t *testing.T) {
	provider := getTestProvider(t)
	if provider == nil {
		t.Fatal("expected non-nil provider")
	}
	if provider.Tracer == nil {
		t.Error("expected non-nil tracer")
	}
	if provider.Metrics == nil {
		t.Error("expected non-nil metrics")
	}
}

func TestRecordDecision(t *testing.T) {
	provider := getTestProvider(t)
	ctx := context.Background()

	// Should not panic
	provider.RecordDecision(ctx, "api", "auto_accept", "excellent", 87.5, 12*time.Millisecond)
	provider.RecordDecision(ctx, "worker", "auto_reject", "unacceptable", 9.1, 4*time.Millisecond)
	provider.RecordScoringFailure(ctx, "api", "INVALID_PHRASE")
	provider.RecordLatencyWarning(ctx, "soft")
}

func TestRecordComponentAndPopularity(t *testing.T) {
	provider := getTestProvider(t)
	ctx := context.Background()

	// Should not panic
	provider.RecordComponent(ctx, "distinctiveness", 2*time.Millisecond)
	provider.RecordComponentFailure(ctx, "cultural_validation")
	provider.RecordPopularityLookup(ctx, "sitelinks")
	provider.RecordPopularityCache(ctx, "hit")
}

func TestGauges(t *testing.T) {
	provider := getTestProvider(t)

	// Should not panic
	provider.SetPendingSubmissions(100)
	provider.SetActiveWorkers(5)
	provider.SetDLQDepth(3)
	provider.SetCorpusSize("entities", 80)
	provider.RecordBatchSize(25)
}

func TestIntakeAndDLQCounters(t *testing.T) {
	provider := getTestProvider(t)
	ctx := context.Background()

	// Should not panic
	provider.RecordIntakeLag(ctx, time.Now().Add(-30*time.Second))
	provider.RecordDLQEnqueue(ctx, "worker", "ES_TIMEOUT")
	provider.RecordDLQProcessed(ctx)
	provider.RecordDLQEnqueue(ctx, "worker", "SCORING_PANIC")
	provider.RecordDLQExhausted(ctx)
}

func TestStartSpan(t *testing.T) {
	provider := getTestProvider(t)

	ctx, span := provider.StartSpan(context.Background(), "score_phrase")
	if ctx == nil {
		t.Fatal("expected context from StartSpan")
	}
	if span == nil {
		t.Fatal("expected span from StartSpan")
	}
	span.End()
}
