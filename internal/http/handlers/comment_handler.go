// Comment HTTP handlers.
//
// This file exposes REST endpoints for comment resources:
//   - GET    /articles/{article_id}/comments
//   - POST   /articles/{article_id}/comments
//   - DELETE /comments/{comment_id}
//
// Idempotency:
// If the client supplies an Idempotency-Key header and an earlier request with
// the same key created a comment on the same article, POST returns that
// comment again (201) and sets `Idempotency-Replayed: true`.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-news-backend/internal/http/middleware"
	"github.com/tbourn/go-news-backend/internal/services"
)

// HeaderIdempotencyReplayed marks responses served from an earlier request.
const HeaderIdempotencyReplayed = "Idempotency-Replayed"

// PostCommentRequest is the JSON payload for creating a comment.
type PostCommentRequest struct {
	// Username of an existing user.
	Username string `json:"username" binding:"required" example:"butter_bridge"`
	// Body is the comment text; surrounding whitespace is trimmed.
	Body string `json:"body" binding:"required" example:"Great article!"`
}

// ListComments godoc
// @ID          listComments
// @Summary     List comments for an article
// @Description Returns the article's comments, newest first. An existing article with no comments yields [].
// @Tags        Comments
// @Produce     json
//
// @Param       article_id  path  int  true  "Article ID"  example(1)
//
// @Success     200  {array}   domain.Comment
// @Failure     400  {object}  handlers.ErrorResponse  "Non-numeric id"
// @Failure     404  {object}  handlers.ErrorResponse  "Article does not exist"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /articles/{article_id}/comments [get]
func (h *Handlers) ListComments(c *gin.Context) {
	comments, err := h.commentSvc.ListForArticle(c.Request.Context(), c.Param("article_id"))
	if err != nil {
		handleError(c, err)
		return
	}
	ok(c, http.StatusOK, comments)
}

// PostComment godoc
// @ID          postComment
// @Summary     Comment on an article
// @Description Creates a comment authored by an existing user on an existing article.
// @Description Supports idempotency via the Idempotency-Key header (same key on the same article -> same comment).
// @Tags        Comments
// @Accept      json
// @Produce     json
//
// @Param       Idempotency-Key  header  string                       false  "Idempotency key for safe retries"  example(7a8d9f4c-1b2a-4c3d-8e9f-0123456789ab)
// @Param       article_id       path    int                          true   "Article ID"  example(1)
// @Param       body             body    handlers.PostCommentRequest  true   "Comment payload"
//
// @Success     201  {object}  domain.Comment
// @Header      201  {string}  Idempotency-Replayed  "true when the comment was created by an earlier request"
// @Failure     400  {object}  handlers.ErrorResponse  "Missing fields or non-numeric id"
// @Failure     404  {object}  handlers.ErrorResponse  "Unknown article or username"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /articles/{article_id}/comments [post]
func (h *Handlers) PostComment(c *gin.Context) {
	var req PostCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleError(c, services.ErrBadRequest)
		return
	}

	idemKey, _ := middleware.GetIdempotencyKey(c)
	comment, replayed, err := h.commentSvc.Create(c.Request.Context(), c.Param("article_id"), req.Username, req.Body, idemKey)
	if err != nil {
		handleError(c, err)
		return
	}
	if replayed {
		c.Header(HeaderIdempotencyReplayed, "true")
	}
	ok(c, http.StatusCreated, comment)
}

// DeleteComment godoc
// @ID          deleteComment
// @Summary     Delete a comment
// @Tags        Comments
//
// @Param       comment_id  path  int  true  "Comment ID"  example(1)
//
// @Success     204  {string}  string  "No Content"
// @Failure     400  {object}  handlers.ErrorResponse  "Non-numeric id"
// @Failure     404  {object}  handlers.ErrorResponse  "Comment does not exist"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /comments/{comment_id} [delete]
func (h *Handlers) DeleteComment(c *gin.Context) {
	if err := h.commentSvc.Delete(c.Request.Context(), c.Param("comment_id")); err != nil {
		handleError(c, err)
		return
	}
	noContent(c)
}
