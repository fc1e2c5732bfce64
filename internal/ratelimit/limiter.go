package ratelimit

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// API represents the different external APIs we interact with
type API string

const (
	// APIMFAPI represents the public mutual fund API
	APIMFAPI API = "mfapi"
)

// DefaultMFAPIRate is a conservative request rate for the public fund API,
// which publishes no quota of its own.
const DefaultMFAPIRate = rate.Limit(5)

// Limiter manages rate limits for different APIs
type Limiter struct {
	limiters map[API]*rate.Limiter
	mu       sync.RWMutex
}

// New returns a Limiter with no limits registered. APIs without a
// registered limit are never throttled.
func New() *Limiter {
	return &Limiter{
		limiters: make(map[API]*rate.Limiter),
	}
}

// Unlimited returns a Limiter that lets every request through immediately.
func Unlimited() *Limiter {
	l := New()
	l.Set(APIMFAPI, rate.Inf, 1)
	return l
}

// Set registers or replaces the limit for an API. A non-positive limit
// disables throttling for that API.
func (l *Limiter) Set(api API, limit rate.Limit, burst int) {
	if limit <= 0 {
		limit = rate.Inf
	}
	if burst < 1 {
		burst = 1
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.limiters[api] = rate.NewLimiter(limit, burst)
}

// Wait blocks until the rate limiter permits an event for the given API
// It returns an error if the context is canceled before the event can proceed
func (l *Limiter) Wait(ctx context.Context, api API) error {
	l.mu.RLock()
	limiter, exists := l.limiters[api]
	l.mu.RUnlock()

	if !exists {
		// If no limiter exists for this API, allow the request without limiting
		return nil
	}

	return limiter.Wait(ctx)
}

// Allow reports whether an event for the given API may happen now
func (l *Limiter) Allow(api API) bool {
	l.mu.RLock()
	limiter, exists := l.limiters[api]
	l.mu.RUnlock()

	if !exists {
		// If no limiter exists for this API, allow the request
		return true
	}

	return limiter.Allow()
}
