package processor

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/quipshot/phrase-gate/internal/logging"
)

const defaultPollRPS = 10

// RateLimiter throttles poll cycles against the submission store.
type RateLimiter struct {
	limiter *rate.Limiter
	logger  logging.Logger
}

// NewRateLimiter creates a rate limiter.
// rps: poll cycles per second
// burst: maximum burst size
func NewRateLimiter(rps, burst int, logger logging.Logger) *RateLimiter {
	if rps <= 0 {
		rps = defaultPollRPS
	}
	if burst <= 0 {
		burst = rps
	}

	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		logger:  logger,
	}
}

// Wait blocks until the rate limit allows the operation.
func (r *RateLimiter) Wait(ctx context.Context) error {
	if err := r.limiter.Wait(ctx); err != nil {
		r.logger.Warn("rate limiter wait failed", logging.Error(err))
		return err
	}
	return nil
}

// Allow reports whether an operation may proceed without waiting.
func (r *RateLimiter) Allow() bool {
	return r.limiter.Allow()
}

// Reserve reserves a token and returns a reservation.
func (r *RateLimiter) Reserve() *rate.Reservation {
	return r.limiter.Reserve()
}

// SetLimit updates the rate limit.
func (r *RateLimiter) SetLimit(rps int) {
	r.limiter.SetLimit(rate.Limit(rps))
	r.logger.Info("rate limit updated", logging.Int("new_rps", rps))
}

// SetBurst updates the burst size.
func (r *RateLimiter) SetBurst(burst int) {
	r.limiter.SetBurst(burst)
	r.logger.Info("burst size updated", logging.Int("new_burst", burst))
}
