package domain_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/quipshot/phrase-gate/internal/domain"
)

func TestNewDeadLetterEntry_RequiredFields(t *testing.T) {
	tests := []struct {
		name         string
		submissionID string
		phrase       string
		indexName    string
		wantErr      bool
	}{
		{
			name:         "all fields present",
			submissionID: "sub-1",
			phrase:       "pizza delivery",
			indexName:    "phrase_submissions",
		},
		{
			name:      "missing submission id",
			phrase:    "pizza delivery",
			indexName: "phrase_submissions",
			wantErr:   true,
		},
		{
			name:         "missing phrase",
			submissionID: "sub-1",
			indexName:    "phrase_submissions",
			wantErr:      true,
		},
		{
			name:         "missing index name",
			submissionID: "sub-1",
			phrase:       "pizza delivery",
			wantErr:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, err := domain.NewDeadLetterEntry(tt.submissionID, tt.phrase, tt.indexName, "es timeout", domain.ErrorCodeESTimeout)
			if tt.wantErr {
				if err == nil {
					t.Fatal("NewDeadLetterEntry() error = nil, want ErrInvalidDeadLetterEntry")
				}
				if !errors.Is(err, domain.ErrInvalidDeadLetterEntry) {
					t.Errorf("NewDeadLetterEntry() error = %v, want ErrInvalidDeadLetterEntry", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewDeadLetterEntry() unexpected error: %v", err)
			}
			if entry.RetryCount != 0 {
				t.Errorf("RetryCount = %d, want 0", entry.RetryCount)
			}
			if entry.MaxRetries != 5 {
				t.Errorf("MaxRetries = %d, want 5", entry.MaxRetries)
			}
			if !entry.NextRetryAt.After(entry.CreatedAt) {
				t.Error("NextRetryAt should be after CreatedAt")
			}
		})
	}
}

func TestDeadLetterEntry_NextRetryDelay(t *testing.T) {
	tests := []struct {
		retryCount int
		want       time.Duration
	}{
		{retryCount: 0, want: time.Minute},
		{retryCount: 1, want: 2 * time.Minute},
		{retryCount: 2, want: 4 * time.Minute},
		{retryCount: 3, want: 8 * time.Minute},
		{retryCount: 4, want: 16 * time.Minute},
		{retryCount: 6, want: time.Hour},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("retry_count_%d", tt.retryCount), func(t *testing.T) {
			entry := &domain.DeadLetterEntry{RetryCount: tt.retryCount}
			if got := entry.NextRetryDelay(); got != tt.want {
				t.Errorf("NextRetryDelay() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDeadLetterEntry_RetryLifecycle(t *testing.T) {
	entry, err := domain.NewDeadLetterEntry("sub-1", "pizza delivery", "phrase_submissions", "es timeout", domain.ErrorCodeESTimeout)
	if err != nil {
		t.Fatalf("NewDeadLetterEntry() unexpected error: %v", err)
	}

	for i := 0; i < entry.MaxRetries; i++ {
		if !entry.ShouldRetry() {
			t.Fatalf("ShouldRetry() = false at attempt %d, want true", i)
		}
		if entry.IsExhausted() {
			t.Fatalf("IsExhausted() = true at attempt %d, want false", i)
		}
		entry.IncrementRetry("still failing")
	}

	if entry.ShouldRetry() {
		t.Error("ShouldRetry() = true after max retries, want false")
	}
	if !entry.IsExhausted() {
		t.Error("IsExhausted() = false after max retries, want true")
	}
	if entry.RetryCount != entry.MaxRetries {
		t.Errorf("RetryCount = %d, want %d", entry.RetryCount, entry.MaxRetries)
	}
	if entry.ErrorMessage != "still failing" {
		t.Errorf("ErrorMessage = %q, want %q", entry.ErrorMessage, "still failing")
	}
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want domain.ErrorCode
	}{
		{
			name: "nil error",
			err:  nil,
			want: domain.ErrorCodeUnknown,
		},
		{
			name: "wrapped invalid input sentinel",
			err:  domain.InvalidInputError("phrase is empty"),
			want: domain.ErrorCodeInvalidPhrase,
		},
		{
			name: "wrapped component unavailable sentinel",
			err:  fmt.Errorf("load corpus: %w", domain.ErrComponentUnavailable),
			want: domain.ErrorCodeCorpus,
		},
		{
			name: "invalid input surviving only as text",
			err:  errors.New("invalid input phrase: too long"),
			want: domain.ErrorCodeInvalidPhrase,
		},
		{
			name: "timeout text",
			err:  errors.New("request timeout after 30s"),
			want: domain.ErrorCodeESTimeout,
		},
		{
			name: "context deadline text",
			err:  errors.New("context deadline exceeded"),
			want: domain.ErrorCodeESTimeout,
		},
		{
			name: "connection refused",
			err:  errors.New("dial tcp 127.0.0.1:9200: connection refused"),
			want: domain.ErrorCodeESUnavailable,
		},
		{
			name: "concreteness corpus failure",
			err:  errors.New("concreteness table not loaded"),
			want: domain.ErrorCodeCorpus,
		},
		{
			name: "popularity lookup failure",
			err:  errors.New("popularity lookup failed"),
			want: domain.ErrorCodePopularity,
		},
		{
			name: "recovered scoring panic",
			err:  errors.New("scoring panic: runtime error"),
			want: domain.ErrorCodeScoringPanic,
		},
		{
			name: "bulk write failure",
			err:  errors.New("bulk write rejected"),
			want: domain.ErrorCodeIndexing,
		},
		{
			name: "unclassified error",
			err:  errors.New("something odd happened"),
			want: domain.ErrorCodeUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := domain.ClassifyError(tt.err); got != tt.want {
				t.Errorf("ClassifyError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
