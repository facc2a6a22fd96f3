// breaker.go guards the remote popularity source with a circuit breaker.
package popularity

import (
	"context"

	"github.com/quipshot/phrase-gate/internal/breaker"
	"github.com/quipshot/phrase-gate/internal/logging"
)

// BreakerSource wraps a remote Source with a circuit breaker. When the
// upstream keeps failing, estimates fail fast instead of spending the
// retry budget inside every scoring call, and the cultural scorer takes
// its usual degraded path.
type BreakerSource struct {
	source  Source
	circuit *breaker.Breaker
	logger  logging.Logger
}

// NewBreakerSource wraps source with the default breaker thresholds.
func NewBreakerSource(logger logging.Logger, source Source) *BreakerSource {
	cfg := breaker.DefaultConfig()
	cfg.OnStateChange = func(from, to breaker.State) {
		logger.Warn("popularity breaker state changed",
			logging.String("source", source.Name()),
			logging.String("from", from.String()),
			logging.String("to", to.String()))
	}

	return &BreakerSource{
		source:  source,
		circuit: breaker.New(cfg),
		logger:  logger,
	}
}

// Name reports the wrapped source's name.
func (b *BreakerSource) Name() string {
	return b.source.Name()
}

// Estimate delegates to the wrapped source under the breaker.
func (b *BreakerSource) Estimate(ctx context.Context, phrase string) (Estimate, error) {
	var est Estimate
	err := b.circuit.Execute(ctx, func(ctx context.Context) error {
		var execErr error
		est, execErr = b.source.Estimate(ctx, phrase)
		return execErr
	})
	if err != nil {
		return Estimate{}, err
	}

	return est, nil
}
