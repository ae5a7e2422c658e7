// Package handlers provides HTTP handler implementations for the public API.
//
// This file defines the response utilities used across all endpoints. Every
// error body, whether produced by a handler, the router fallbacks or a
// middleware, is the single-field envelope {"msg": "..."}; the correlation id
// travels in the X-Request-ID response header instead of the body.
//
// Example error response:
//
//	HTTP/1.1 404 Not Found
//	X-Request-ID: 123e4567-e89b-12d3-a456-426614174000
//	{ "msg": "article does not exist" }
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-news-backend/internal/http/middleware"
)

// ErrorResponse is the standard error envelope returned by all endpoints.
type ErrorResponse struct {
	// Human-readable message (safe to show to users)
	Msg string `json:"msg" example:"article does not exist"`
}

// fail aborts the request with {"msg": msg} and logs server-side errors with
// the request-scoped logger.
func fail(c *gin.Context, status int, msg string) {
	if status >= http.StatusInternalServerError {
		lg := middleware.LoggerFrom(c)
		lg.Error().
			Int("status", status).
			Str("msg", msg).
			Msg("api error")
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Msg: msg})
}

// Fail is the exported variant of fail(), used by router fallbacks.
func Fail(c *gin.Context, status int, msg string) { fail(c, status, msg) }

// ok writes a success JSON response.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}

// noContent writes an HTTP 204 No Content response.
func noContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
