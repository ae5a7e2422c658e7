// Article HTTP handlers.
//
// This file exposes REST endpoints for article resources:
//   - GET    /articles                 (list, sort, filter by topic)
//   - GET    /articles/{article_id}    (single article with comment_count)
//   - PATCH  /articles/{article_id}    (increment/decrement votes)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-news-backend/internal/domain"
	"github.com/tbourn/go-news-backend/internal/services"
)

//
// DTOs
//

// ArticlesResponse wraps the article list.
type ArticlesResponse struct {
	Articles []domain.Article `json:"articles"`
}

// UpdateVotesRequest is the JSON payload for PATCH /articles/{article_id}.
type UpdateVotesRequest struct {
	// IncVotes is added to the current vote total; negative values decrement.
	IncVotes *int `json:"inc_votes" binding:"required" example:"-3"`
}

//
// Handlers
//

// ListArticles godoc
// @ID          listArticles
// @Summary     List articles
// @Description Returns articles with their comment counts, sorted and optionally filtered by topic.
// @Tags        Articles
// @Produce     json
//
// @Param       sort_by  query  string  false  "Sort column"           Enums(title, topic, author, created_at) default(created_at)
// @Param       order    query  string  false  "Sort direction"        Enums(asc, desc) default(desc)
// @Param       topic    query  string  false  "Topic slug to filter"  example(cats)
//
// @Success     200  {object}  handlers.ArticlesResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid sort_by or order"
// @Failure     404  {object}  handlers.ErrorResponse  "Topic does not exist"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /articles [get]
func (h *Handlers) ListArticles(c *gin.Context) {
	articles, err := h.articleSvc.List(c.Request.Context(), c.Query("sort_by"), c.Query("order"), c.Query("topic"))
	if err != nil {
		handleError(c, err)
		return
	}
	ok(c, http.StatusOK, ArticlesResponse{Articles: articles})
}

// GetArticle godoc
// @ID          getArticle
// @Summary     Get an article
// @Description Returns a single article including comment_count.
// @Tags        Articles
// @Produce     json
//
// @Param       article_id  path  int  true  "Article ID"  example(1)
//
// @Success     200  {object}  domain.Article
// @Failure     400  {object}  handlers.ErrorResponse  "Non-numeric id"
// @Failure     404  {object}  handlers.ErrorResponse  "Article does not exist"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /articles/{article_id} [get]
func (h *Handlers) GetArticle(c *gin.Context) {
	a, err := h.articleSvc.Get(c.Request.Context(), c.Param("article_id"))
	if err != nil {
		handleError(c, err)
		return
	}
	ok(c, http.StatusOK, a)
}

// UpdateArticleVotes godoc
// @ID          updateArticleVotes
// @Summary     Vote on an article
// @Description Adds inc_votes (positive or negative) to the article's votes and returns the updated article.
// @Tags        Articles
// @Accept      json
// @Produce     json
//
// @Param       article_id  path  int                          true  "Article ID"  example(1)
// @Param       body        body  handlers.UpdateVotesRequest  true  "Vote delta"
//
// @Success     200  {object}  domain.Article
// @Failure     400  {object}  handlers.ErrorResponse  "Bad id or body"
// @Failure     404  {object}  handlers.ErrorResponse  "Article does not exist"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /articles/{article_id} [patch]
func (h *Handlers) UpdateArticleVotes(c *gin.Context) {
	var req UpdateVotesRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.IncVotes == nil {
		handleError(c, services.ErrBadRequest)
		return
	}

	a, err := h.articleSvc.UpdateVotes(c.Request.Context(), c.Param("article_id"), *req.IncVotes)
	if err != nil {
		handleError(c, err)
		return
	}
	ok(c, http.StatusOK, a)
}
