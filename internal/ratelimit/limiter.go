// Package ratelimit throttles outbound requests per host. The extractor
// talks to a single public court system; the limiter keeps the API probe
// loop polite instead of hammering candidate endpoints back to back.
package ratelimit

import (
	"context"
	"net/url"
	"sync"

	"golang.org/x/time/rate"
)

// HostLimiter applies a token-bucket limit per target host.
type HostLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.Mutex
	perHost  rate.Limit
	burst    int
}

// NewHostLimiter creates a limiter with the specified per-host rate.
func NewHostLimiter(requestsPerSecond float64, burst int) *HostLimiter {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 1.0
	}
	if burst <= 0 {
		burst = 1
	}
	return &HostLimiter{
		limiters: make(map[string]*rate.Limiter),
		perHost:  rate.Limit(requestsPerSecond),
		burst:    burst,
	}
}

// Wait blocks until a request for the given URL may proceed, or until the
// context is cancelled.
func (hl *HostLimiter) Wait(ctx context.Context, urlStr string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	host := extractHost(urlStr)
	if host == "" {
		// Invalid URL, let it proceed (will fail elsewhere)
		return nil
	}
	return hl.getLimiter(host).Wait(ctx)
}

// Allow reports whether a request for the given URL may proceed immediately.
func (hl *HostLimiter) Allow(urlStr string) bool {
	host := extractHost(urlStr)
	if host == "" {
		return true
	}
	return hl.getLimiter(host).Allow()
}

func (hl *HostLimiter) getLimiter(host string) *rate.Limiter {
	hl.mu.Lock()
	defer hl.mu.Unlock()
	if lim, ok := hl.limiters[host]; ok {
		return lim
	}
	lim := rate.NewLimiter(hl.perHost, hl.burst)
	hl.limiters[host] = lim
	return lim
}

func extractHost(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
