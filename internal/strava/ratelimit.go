package strava

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// window is one of Strava's request budgets
type window struct {
	limit    int
	usage    int
	length   time.Duration
	resetsAt time.Time
}

func (w *window) roll(now time.Time) {
	if now.After(w.resetsAt) {
		w.usage = 0
		w.resetsAt = w.next(now)
	}
}

func (w *window) next(now time.Time) time.Time {
	if w.length >= 24*time.Hour {
		return now.Truncate(24 * time.Hour).Add(24 * time.Hour)
	}
	return now.Add(w.length)
}

// RateLimiter keeps requests within Strava's limits of 100 per 15 minutes
// and 1000 per day, spacing requests by a minimum interval
type RateLimiter struct {
	mu          sync.Mutex
	short       window
	daily       window
	minInterval time.Duration
	lastRequest time.Time
}

// NewRateLimiter creates a limiter with Strava's default limits
func NewRateLimiter() *RateLimiter {
	now := time.Now()
	r := &RateLimiter{
		short:       window{limit: 100, length: 15 * time.Minute},
		daily:       window{limit: 1000, length: 24 * time.Hour},
		minInterval: 150 * time.Millisecond,
	}
	r.short.resetsAt = r.short.next(now)
	r.daily.resetsAt = r.daily.next(now)
	return r
}

// Wait blocks until a request can be made or ctx is done
func (r *RateLimiter) Wait(ctx context.Context) error {
	for {
		r.mu.Lock()
		now := time.Now()
		r.short.roll(now)
		r.daily.roll(now)

		var delay time.Duration
		switch {
		case r.short.usage >= r.short.limit:
			delay = r.short.resetsAt.Sub(now)
		case r.daily.usage >= r.daily.limit:
			delay = r.daily.resetsAt.Sub(now)
		case now.Sub(r.lastRequest) < r.minInterval:
			delay = r.minInterval - now.Sub(r.lastRequest)
		default:
			r.short.usage++
			r.daily.usage++
			r.lastRequest = now
			r.mu.Unlock()
			return nil
		}
		r.mu.Unlock()

		timer := time.NewTimer(delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		}
	}
}

// UpdateFromHeaders syncs usage with Strava's view, e.g.
// X-RateLimit-Limit: "100,1000" and X-RateLimit-Usage: "34,512"
func (r *RateLimiter) UpdateFromHeaders(h http.Header) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if short, daily, ok := parsePair(h.Get("X-RateLimit-Usage")); ok {
		r.short.usage, r.daily.usage = short, daily
	}
	if short, daily, ok := parsePair(h.Get("X-RateLimit-Limit")); ok {
		r.short.limit, r.daily.limit = short, daily
	}
}

// Status returns the remaining requests in each window
func (r *RateLimiter) Status() (shortRemaining, dailyRemaining int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.short.limit - r.short.usage, r.daily.limit - r.daily.usage
}

func parsePair(v string) (int, int, bool) {
	parts := strings.Split(v, ",")
	if len(parts) < 2 {
		return 0, 0, false
	}
	a, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, false
	}
	b, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, false
	}
	return a, b, true
}
