// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements the per-client token-bucket limiter mounted on the
// write routes (vote updates, comment creation and deletion). Buckets live in
// process memory, so each replica enforces its own budget. Idle buckets are
// swept opportunistically to bound memory.
package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// keyFunc selects the identity used to key a rate-limit bucket.
type keyFunc func(*gin.Context) string

// KeyByIP keys buckets by client IP ("ip:203.0.113.7"). The API has no
// authentication, so the caller's address is the only identity available.
func KeyByIP() keyFunc {
	return func(c *gin.Context) string {
		return "ip:" + c.ClientIP()
	}
}

const (
	visitorTTL   = 10 * time.Minute
	sweepEveryN  = 5000
	minRetryWait = 1 // seconds
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter is a per-key token-bucket limiter. It is safe for concurrent
// use.
type RateLimiter struct {
	rps      rate.Limit
	burst    int
	keyFn    keyFunc
	mu       sync.Mutex
	visitors map[string]*visitor

	ttl      time.Duration
	cleanupN uint64
}

// NewRateLimiter builds a limiter refilling rps tokens per second with the
// given burst (coerced to at least 1).
func NewRateLimiter(rps float64, burst int, keyFn keyFunc) *RateLimiter {
	if burst <= 0 {
		burst = 1
	}
	return &RateLimiter{
		rps:      rate.Limit(rps),
		burst:    burst,
		keyFn:    keyFn,
		visitors: make(map[string]*visitor),
		ttl:      visitorTTL,
	}
}

// getVisitor returns the bucket for key, creating it if absent. The sweep of
// idle buckets runs before the lookup so a stale bucket is replaced rather
// than refreshed.
func (rl *RateLimiter) getVisitor(key string) *rate.Limiter {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.cleanupN++
	if rl.cleanupN >= sweepEveryN {
		for k, v := range rl.visitors {
			if now.Sub(v.lastSeen) >= rl.ttl {
				delete(rl.visitors, k)
			}
		}
		rl.cleanupN = 0
	}

	if v, ok := rl.visitors[key]; ok {
		v.lastSeen = now
		return v.limiter
	}
	lim := rate.NewLimiter(rl.rps, rl.burst)
	rl.visitors[key] = &visitor{limiter: lim, lastSeen: now}
	return lim
}

// IsRateBypass reports whether IdempotencyValidator marked this request as a
// replay of an already recorded write.
func IsRateBypass(c *gin.Context) bool {
	v, ok := c.Get(ctxKeyRateBypass)
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

// retryAfter converts a reservation delay into whole seconds for the
// Retry-After header. A zero rate never refills, and x/time/rate reports that
// either as InfDuration or as a delay near it; both map to the minimum wait.
func retryAfter(d time.Duration) int {
	if d >= rate.InfDuration/2 {
		return minRetryWait
	}
	secs := int(math.Ceil(d.Seconds()))
	if secs < minRetryWait {
		return minRetryWait
	}
	return secs
}

// Handler returns the limiting middleware. Replays flagged by
// IdempotencyValidator pass without spending a token. Denied requests get
// 429 {"msg":"Too many requests"} with a Retry-After hint.
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if IsRateBypass(c) {
			c.Next()
			return
		}

		res := rl.getVisitor(rl.keyFn(c)).Reserve()
		if res.OK() && res.Delay() == 0 {
			c.Next()
			return
		}
		wait := rate.InfDuration
		if res.OK() && rl.rps > 0 {
			wait = res.Delay()
		}
		if res.OK() {
			res.Cancel()
		}

		rateLimited.WithLabelValues(metricsRoute(c)).Inc()
		c.Header("Retry-After", strconv.Itoa(retryAfter(wait)))
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"msg": "Too many requests"})
	}
}
