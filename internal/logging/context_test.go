package logging_test

import (
	"context"
	"testing"

	"github.com/quipshot/phrase-gate/internal/logging"
)

func TestWithContext_FromContext_RoundTrip(t *testing.T) {
	t.Parallel()

	nop := logging.NewNop()
	ctx := logging.WithContext(context.Background(), nop)
	got := logging.FromContext(ctx)

	if got != nop {
		t.Errorf("FromContext returned %v, want the stored logger %v", got, nop)
	}
}

func TestFromContext_NoLogger_ReturnsFallback(t *testing.T) {
	t.Parallel()

	got := logging.FromContext(context.Background())
	if got == nil {
		t.Fatal("FromContext on empty context returned nil, want non-nil fallback logger")
	}
}

func TestFromContext_FallbackIsUsable(t *testing.T) {
	t.Parallel()

	fallback := logging.FromContext(context.Background())

	// Must not panic. The fallback is warn-level, so Debug/Info are
	// filtered, but the calls still have to succeed.
	fallback.Debug("debug message")
	fallback.Info("info message")
	fallback.Warn("warn message")
	fallback.Error("error message")
	fallback.Warn("message with field", logging.String("key", "value"))
}

func TestWithContext_OverwritesPrevious(t *testing.T) {
	t.Parallel()

	// Real loggers so each allocation has a distinct pointer. NewNop
	// returns a zero-size struct that Go may intern to one address.
	first := mustTestLogger(t)
	second := mustTestLogger(t)

	ctx := logging.WithContext(context.Background(), first)
	ctx = logging.WithContext(ctx, second)

	got := logging.FromContext(ctx)
	if got != second {
		t.Error("FromContext returned the first logger, want the second (overwritten) logger")
	}
}

func TestFromContext_FallbackConsistency(t *testing.T) {
	t.Parallel()

	// Repeated lookups on empty contexts must return the same
	// fallback instance.
	a := logging.FromContext(context.Background())
	b := logging.FromContext(context.Background())

	if a == nil || b == nil {
		t.Fatal("expected non-nil fallback loggers")
	}
	if a != b {
		t.Error("FromContext returned different fallback instances, want the same singleton")
	}
}

func mustTestLogger(t *testing.T) logging.Logger {
	t.Helper()

	l, err := logging.New(logging.Config{
		Level:       "warn",
		OutputPaths: []string{"stderr"},
	})
	if err != nil {
		t.Fatalf("failed to create test logger: %v", err)
	}

	return l
}
