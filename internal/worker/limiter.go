package worker

import (
	"context"

	"golang.org/x/time/rate"
)

// Limiter throttles outbound vision API calls to a single global rate. The
// enrichment pass shares one limiter across all pool workers so worker
// count never multiplies the request rate.
type Limiter struct {
	limiter *rate.Limiter
}

// NewLimiter creates a limiter at requestsPerSecond with the given burst
func NewLimiter(requestsPerSecond float64, burst int) *Limiter {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 0.5
	}
	if burst <= 0 {
		burst = 1
	}
	return &Limiter{limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst)}
}

// Wait blocks until a request slot is available or the context ends
func (l *Limiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}

// Allow reports whether a request may proceed right now without waiting
func (l *Limiter) Allow() bool {
	return l.limiter.Allow()
}
