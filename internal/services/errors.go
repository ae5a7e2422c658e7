// Package services defines the business logic for topics, users, articles and
// comments. This file centralizes the typed rejections returned by service
// methods when a request is well-formed at the transport level but cannot be
// honored.
//
// A Rejection carries the HTTP status and message that the handler layer
// writes verbatim. Store errors are never wrapped in a Rejection; they are
// propagated unchanged so that the handler pipeline can classify them.
package services

import "net/http"

// Rejection is an application-level refusal with an explicit status and
// client-facing message.
type Rejection struct {
	Status int
	Msg    string
}

// Error implements the error interface.
func (r *Rejection) Error() string { return r.Msg }

// Resource-specific rejections.
var (
	// ErrBadRequest is returned for invalid sort keys, order tokens, vote
	// deltas and blank comment bodies.
	ErrBadRequest = &Rejection{Status: http.StatusBadRequest, Msg: "Bad request"}

	// ErrArticleNotFound indicates that no article has the requested id.
	ErrArticleNotFound = &Rejection{Status: http.StatusNotFound, Msg: "article does not exist"}

	// ErrCommentNotFound indicates that no comment has the requested id.
	ErrCommentNotFound = &Rejection{Status: http.StatusNotFound, Msg: "comment does not exist"}

	// ErrTopicNotFound is returned when a topic filter names an unknown slug.
	ErrTopicNotFound = &Rejection{Status: http.StatusNotFound, Msg: "topic does not exist"}
)
