// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file holds the correlation-id injector, the plain access logger and
// panic recovery. Install them as RequestID, Logger (or RedactingLogger),
// Recovery so every log line and error body carries the correlation id.
// Handlers reach the request-scoped logger through LoggerFrom; it already
// carries the request id, route and any article or comment id in the path.
package middleware

import (
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	requestIDKey    = "requestID"
	requestIDHeader = "X-Request-ID"
	// maxRequestIDLength bounds inbound correlation ids; longer ones are replaced.
	maxRequestIDLength = 128
	// maxQueryLogLength caps the bytes of raw query logged (sort_by/order/topic).
	maxQueryLogLength = 2048
	// loggerKey holds the request-scoped *zerolog.Logger.
	loggerKey = "logger"
)

// resourceParams are the path parameters copied onto request-scoped loggers.
var resourceParams = []string{"article_id", "comment_id"}

// RequestID propagates a caller-supplied X-Request-ID or generates a UUIDv4.
// Inbound ids that are too long or contain characters outside printable
// ASCII are discarded so they cannot forge log fields. The id is echoed on
// the response and stored in the Gin context.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(requestIDHeader)
		if !validRequestID(rid) {
			rid = uuid.NewString()
		}
		c.Set(requestIDKey, rid)
		c.Writer.Header().Set(requestIDHeader, rid)
		c.Next()
	}
}

func validRequestID(s string) bool {
	if s == "" || len(s) > maxRequestIDLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 0x21 || s[i] > 0x7e {
			return false
		}
	}
	return true
}

// requestLogger derives the request-scoped logger from the global one.
func requestLogger(c *gin.Context, rid string) zerolog.Logger {
	lc := log.With().
		Str("request_id", rid).
		Str("method", c.Request.Method).
		Str("path", routePath(c))
	for _, p := range resourceParams {
		if v := c.Param(p); v != "" {
			lc = lc.Str(p, v)
		}
	}
	return lc.Logger()
}

// Logger writes one structured access log line per request, at error level
// for 5xx or when handlers attached gin errors, warn for 4xx and info
// otherwise. It stores the request-scoped logger in the context.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		rid, _ := c.Get(requestIDKey)
		l := requestLogger(c, asString(rid))
		c.Set(loggerKey, &l)

		c.Next()

		status := c.Writer.Status()
		ev := l.With().
			Str("remote_ip", c.ClientIP()).
			Str("user_agent", c.Request.UserAgent()).
			Str("query", truncate(c.Request.URL.RawQuery, maxQueryLogLength)).
			Int64("bytes_in", c.Request.ContentLength).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Int("bytes_out", c.Writer.Size()).
			Logger()

		switch {
		case len(c.Errors) > 0:
			ev.Error().Str("errors", c.Errors.String()).Msg("request")
		case status >= 500:
			ev.Error().Msg("request")
		case status >= 400:
			ev.Warn().Msg("request")
		default:
			ev.Info().Msg("request")
		}
	}
}

// Recovery turns a panic into 500 {"msg":"Internal Server Error"} and logs
// the stack with the request-scoped logger. If the handler already wrote a
// response only the status is aborted.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			LoggerFrom(c).Error().
				Interface("panic", rec).
				Bytes("stack", debug.Stack()).
				Msg("panic recovered")

			if c.Writer.Written() {
				c.AbortWithStatus(http.StatusInternalServerError)
				return
			}
			rid, _ := c.Get(requestIDKey)
			c.Header(requestIDHeader, asString(rid))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"msg": "Internal Server Error"})
		}()
		c.Next()
	}
}

// LoggerFrom returns the request-scoped logger, or a copy of the global
// logger when none was attached.
func LoggerFrom(c *gin.Context) *zerolog.Logger {
	if v, ok := c.Get(loggerKey); ok {
		if lg, ok := v.(*zerolog.Logger); ok {
			return lg
		}
	}
	l := log.With().Logger()
	return &l
}

// routePath returns the matched route pattern, or the raw path for unmatched
// requests.
func routePath(c *gin.Context) string {
	if p := c.FullPath(); p != "" {
		return p
	}
	return c.Request.URL.Path
}

func asString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// truncate cuts s to max bytes plus an ellipsis. max <= 0 disables it.
func truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	return s[:max] + "…"
}
