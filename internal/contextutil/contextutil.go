// Package contextutil provides shared context timeout helpers for the phrase-gate service.
package contextutil

import (
	"context"
	"time"
)

const (
	// DefaultTimeout is the default timeout for context operations
	DefaultTimeout = 30 * time.Second

	// DefaultPingTimeout is the default timeout for ping/health check operations
	DefaultPingTimeout = 5 * time.Second
)

// WithDefaultTimeout creates a context with a default timeout from background context.
func WithDefaultTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), DefaultTimeout)
}

// WithPingTimeout creates a context with default ping timeout.
func WithPingTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), DefaultPingTimeout)
}
