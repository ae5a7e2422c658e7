// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file provides SecurityHeaders, which hardens every JSON response of
// the news API. The Swagger UI (HTML) is the one surface that needs a looser
// policy, so it is carved out by path prefix.
package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	apiContentSecurityPolicy = "default-src 'none'; frame-ancestors 'none'"
	defaultHSTSMaxAge        = 180 * 24 * time.Hour
)

// SecurityOptions configures SecurityHeaders.
//
// EnableHSTS must only be set when traffic is HTTPS end-to-end; the header is
// still never sent on plain HTTP requests. HSTSMaxAge defaults to 180 days.
//
// NoStoreWrites marks responses to state-changing methods (POST, PATCH, PUT,
// DELETE) as uncacheable. Reads keep whatever caching a proxy decides.
//
// DocsPrefix is the path prefix of the HTML docs (e.g. "/swagger/"). Requests
// under it get no Content-Security-Policy and may be framed by the same origin.
type SecurityOptions struct {
	EnableHSTS    bool
	HSTSMaxAge    time.Duration
	NoStoreWrites bool
	EnablePolicy  bool // Permissions-Policy and X-Permitted-Cross-Domain-Policies
	DocsPrefix    string
}

// SecurityHeaders returns a Gin middleware that sets:
//
//	X-Content-Type-Options: nosniff
//	Referrer-Policy: no-referrer
//	X-Frame-Options: DENY (SAMEORIGIN under DocsPrefix)
//	Content-Security-Policy: default-src 'none'; frame-ancestors 'none' (not under DocsPrefix)
//	Permissions-Policy, X-Permitted-Cross-Domain-Policies (EnablePolicy)
//	Cache-Control: no-store, Pragma: no-cache, Expires: 0 (NoStoreWrites on writes)
//	Strict-Transport-Security (EnableHSTS on HTTPS requests)
//
// When X-Request-ID is already on the response it is added to
// Access-Control-Expose-Headers.
func SecurityHeaders(opt SecurityOptions) gin.HandlerFunc {
	maxAge := opt.HSTSMaxAge
	if maxAge <= 0 {
		maxAge = defaultHSTSMaxAge
	}
	hsts := "max-age=" + strconv.Itoa(int(maxAge.Seconds())) + "; includeSubDomains; preload"

	return func(c *gin.Context) {
		h := c.Writer.Header()

		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("Referrer-Policy", "no-referrer")

		if isDocsPath(c.Request.URL.Path, opt.DocsPrefix) {
			h.Set("X-Frame-Options", "SAMEORIGIN")
		} else {
			h.Set("X-Frame-Options", "DENY")
			h.Set("Content-Security-Policy", apiContentSecurityPolicy)
		}

		if opt.EnablePolicy {
			h.Set("Permissions-Policy", "geolocation=(), microphone=(), camera=(), payment=()")
			h.Set("X-Permitted-Cross-Domain-Policies", "none")
		}

		if opt.NoStoreWrites && isWriteMethod(c.Request.Method) {
			h.Set("Cache-Control", "no-store")
			h.Set("Pragma", "no-cache")
			h.Set("Expires", "0")
		}

		if opt.EnableHSTS && isHTTPS(c.Request) {
			h.Set("Strict-Transport-Security", hsts)
		}

		if h.Get("X-Request-ID") != "" {
			exposeHeader(h, "X-Request-ID")
		}

		c.Next()
	}
}

// exposeHeader appends name to Access-Control-Expose-Headers unless already
// listed.
func exposeHeader(h http.Header, name string) {
	const hdr = "Access-Control-Expose-Headers"
	cur := h.Get(hdr)
	if cur == "" {
		h.Set(hdr, name)
		return
	}
	for _, part := range strings.Split(cur, ",") {
		if strings.EqualFold(strings.TrimSpace(part), name) {
			return
		}
	}
	h.Set(hdr, cur+", "+name)
}

func isDocsPath(path, prefix string) bool {
	return prefix != "" && strings.HasPrefix(path, prefix)
}

func isWriteMethod(m string) bool {
	switch m {
	case http.MethodPost, http.MethodPatch, http.MethodPut, http.MethodDelete:
		return true
	}
	return false
}

// isHTTPS reports whether the request arrived over TLS, directly or through a
// proxy that set X-Forwarded-Proto: https.
func isHTTPS(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}
	return strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}
