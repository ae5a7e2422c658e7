// Package handlers – error classification.
//
// handleError is the single exit for failed operations. Rules are evaluated in
// a fixed order and the first match decides the response:
//
//  1. store invalid-input or NOT NULL violation  -> 400 {"msg":"Bad request"}
//  2. store foreign-key violation                -> 404 {"msg":"not found"}
//  3. services.Rejection                          -> its status and message
//  4. anything else                               -> 500 {"msg":"Internal Server Error"}
//
// Internal detail from unclassified errors is logged, never returned.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tbourn/go-news-backend/internal/http/middleware"
	"github.com/tbourn/go-news-backend/internal/repo"
	"github.com/tbourn/go-news-backend/internal/services"
)

// Client-facing messages.
const (
	MsgBadRequest       = "Bad request"
	MsgNotFound         = "not found"
	MsgInternal         = "Internal Server Error"
	MsgRouteNotFound    = "route not found"
	MsgMethodNotAllowed = "method not allowed"
)

// apiErrors counts pipeline outcomes by class:
// bad_request, fk_not_found, rejection, internal.
var apiErrors = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "api_errors_total",
		Help: "Errors returned by API handlers, by classification.",
	},
	[]string{"class"},
)

func init() {
	prometheus.MustRegister(apiErrors)
}

// handleError classifies err and writes the response.
func handleError(c *gin.Context, err error) {
	switch kind := repo.Classify(err); kind {
	case repo.KindInvalidInput, repo.KindNotNull:
		apiErrors.WithLabelValues("bad_request").Inc()
		logClassified(c, err, kind)
		fail(c, http.StatusBadRequest, MsgBadRequest)
		return
	case repo.KindForeignKey:
		apiErrors.WithLabelValues("fk_not_found").Inc()
		logClassified(c, err, kind)
		fail(c, http.StatusNotFound, MsgNotFound)
		return
	}

	var rej *services.Rejection
	if errors.As(err, &rej) {
		apiErrors.WithLabelValues("rejection").Inc()
		fail(c, rej.Status, rej.Msg)
		return
	}

	apiErrors.WithLabelValues("internal").Inc()
	_ = c.Error(err)
	lg := middleware.LoggerFrom(c)
	lg.Error().Err(err).Msg("unclassified error")
	fail(c, http.StatusInternalServerError, MsgInternal)
}

func logClassified(c *gin.Context, err error, kind repo.ErrorKind) {
	lg := middleware.LoggerFrom(c)
	lg.Debug().Err(err).Str("kind", kind.String()).Msg("store error classified")
}
