// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements RedactingLogger, the default access logger. It never
// logs request or response bodies (comment text stays out of the logs) and
// scrubs emails, phone numbers and UUIDs from the query string and header
// values. Authorization, Cookie and Set-Cookie are always masked; callers add
// more, typically Idempotency-Key:
//
//	r.Use(middleware.RedactingLogger(middleware.RedactOptions{
//	    MaskHeaders: []string{middleware.HeaderIdempotencyKey},
//	}))
package middleware

import (
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const redactedValue = "[REDACTED]"

// UUIDs are scrubbed before phone numbers; the phone pattern would otherwise
// eat their digit groups.
var (
	uuidRE  = regexp.MustCompile(`(?i)\b[0-9a-f]{8}\-[0-9a-f]{4}\-[1-5][0-9a-f]{3}\-[89ab][0-9a-f]{3}\-[0-9a-f]{12}\b`)
	emailRE = regexp.MustCompile(`(?i)\b[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}\b`)
	phoneRE = regexp.MustCompile(`\b(?:\+?\d{1,3}[ .-]?)?(?:\(?\d{2,4}\)?[ .-]?)?\d{3,4}[ .-]?\d{4}\b`)
)

// RedactOptions configures RedactingLogger. MaskHeaders lists extra header
// names (case-insensitive) whose values are replaced by "[REDACTED]".
type RedactOptions struct {
	MaskHeaders []string
}

// redactPII replaces identifiers in s with typed placeholders.
func redactPII(s string) string {
	if s == "" {
		return s
	}
	s = uuidRE.ReplaceAllString(s, "[REDACTED:id]")
	s = emailRE.ReplaceAllString(s, "[REDACTED:email]")
	return phoneRE.ReplaceAllString(s, "[REDACTED:phone]")
}

// RedactingLogger logs one line per request ("http_request") through the
// request-scoped logger it attaches, so the line carries the request id,
// route and resource ids. Level follows status: error for 5xx, warn for 4xx,
// info otherwise.
func RedactingLogger(opts RedactOptions) gin.HandlerFunc {
	masked := map[string]struct{}{
		"authorization": {},
		"cookie":        {},
		"set-cookie":    {},
	}
	for _, h := range opts.MaskHeaders {
		if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
			masked[h] = struct{}{}
		}
	}

	return func(c *gin.Context) {
		start := time.Now()

		headers := make(map[string]string, len(c.Request.Header))
		for k, vv := range c.Request.Header {
			if _, ok := masked[strings.ToLower(k)]; ok {
				headers[k] = redactedValue
				continue
			}
			headers[k] = redactPII(strings.Join(vv, ", "))
		}

		// RequestID writes the response header first; fall back to the inbound one.
		reqID := c.Writer.Header().Get(requestIDHeader)
		if reqID == "" {
			reqID = c.GetHeader(requestIDHeader)
		}
		l := requestLogger(c, reqID)
		c.Set(loggerKey, &l)

		c.Next()

		status := c.Writer.Status()
		ev := l.Info()
		switch {
		case status >= 500:
			ev = l.Error()
		case status >= 400:
			ev = l.Warn()
		}
		ev.
			Str("query", redactPII(truncate(c.Request.URL.RawQuery, maxQueryLogLength))).
			Int("status", status).
			Int("bytes", c.Writer.Size()).
			Dur("latency", time.Since(start)).
			Interface("headers", headers).
			Msg("http_request")
	}
}
