// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements idempotency support for comment creation. It validates
// an Idempotency-Key request header, optionally asks a lookup whether the key
// was already used on the target article, and annotates the request context
// so downstream handlers can:
//   - read the normalized key (GetIdempotencyKey)
//   - detect replayed requests (IsReplay)
//   - bypass rate limiting when a replay is served (via an internal flag)
package middleware

import (
	"context"
	"net/http"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"
)

// HeaderIdempotencyKey is the request header clients use to make comment
// creation safe to retry.
const HeaderIdempotencyKey = "Idempotency-Key"

const (
	ctxKeyIdemKey    = "idem.key"
	ctxKeyIdemReplay = "idem.replay" // bool: true when a stored replay exists
	ctxKeyRateBypass = "rate.bypass" // bool: true to skip rate limiting
)

// GetIdempotencyKey returns the validated idempotency key stored in the Gin
// context by IdempotencyValidator. The second return value indicates presence.
func GetIdempotencyKey(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxKeyIdemKey)
	if !ok {
		return "", false
	}
	s, _ := v.(string)
	return s, s != ""
}

// IsReplay reports whether the lookup found an earlier request with the same
// key on the same article.
func IsReplay(c *gin.Context) bool {
	v, ok := c.Get(ctxKeyIdemReplay)
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

// IdempotencyOptions configures header validation for IdempotencyValidator.
// Expiry is enforced by the lookup, not here.
type IdempotencyOptions struct {
	// MaxLen caps the accepted key length. Values <= 0 default to 200.
	MaxLen int
	// Pattern restricts allowed characters. If nil, ^[A-Za-z0-9._~\-:]+$ is used.
	Pattern *regexp.Regexp
	// Param names the path parameter that scopes keys. Empty means "article_id".
	Param string
}

// IdempotencyLookup answers whether an unexpired record exists for
// (articleID, key) at the given time. articleID is the raw path segment.
// Errors are treated as "no record" and never block the request.
type IdempotencyLookup func(ctx context.Context, articleID, key string, now time.Time) (exists bool, err error)

// IdempotencyValidator validates the Idempotency-Key header (if present),
// stashes it in the request context, and optionally checks for an earlier
// completed request via lookup.
//
// Behavior:
//   - Header absent: no-op.
//   - Header invalid: responds 400 {"msg":"Bad request"}.
//   - Lookup hit: sets the replay and rate-bypass flags.
//
// It never serves a cached payload itself; the comment service re-reads the
// stored comment.
func IdempotencyValidator(opts IdempotencyOptions, lookup IdempotencyLookup) gin.HandlerFunc {
	maxLen := opts.MaxLen
	if maxLen <= 0 {
		maxLen = 200
	}
	pat := opts.Pattern
	if pat == nil {
		pat = regexp.MustCompile(`^[A-Za-z0-9._~\-:]+$`)
	}
	param := opts.Param
	if param == "" {
		param = "article_id"
	}

	return func(c *gin.Context) {
		key := c.GetHeader(HeaderIdempotencyKey)
		if key == "" {
			c.Next()
			return
		}
		if len(key) > maxLen || !pat.MatchString(key) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"msg": "Bad request"})
			return
		}

		c.Set(ctxKeyIdemKey, key)

		if lookup != nil {
			articleID := c.Param(param)
			if exists, err := lookup(c.Request.Context(), articleID, key, time.Now().UTC()); err == nil && exists {
				c.Set(ctxKeyIdemReplay, true)
				c.Set(ctxKeyRateBypass, true)
				idemReplays.WithLabelValues(metricsRoute(c)).Inc()
			}
		}

		c.Next()
	}
}
