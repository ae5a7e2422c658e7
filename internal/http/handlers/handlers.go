// Package handlers exposes the REST endpoints of the news API:
//
//   - GET    /api                                (endpoint documentation)
//   - GET    /api/topics
//   - GET    /api/users
//   - GET    /api/articles?sort_by=&order=&topic=
//   - GET    /api/articles/{article_id}
//   - PATCH  /api/articles/{article_id}
//   - GET    /api/articles/{article_id}/comments
//   - POST   /api/articles/{article_id}/comments
//   - DELETE /api/comments/{comment_id}
//
// Handlers are transport-thin: they extract parameters, call application
// services, and either write the success body or hand the error to
// handleError.
package handlers

import (
	"context"

	"github.com/tbourn/go-news-backend/internal/domain"
)

//
// Service contracts (context-aware)
//

// TopicService lists topics.
type TopicService interface {
	List(ctx context.Context) ([]domain.Topic, error)
}

// UserService lists users.
type UserService interface {
	List(ctx context.Context) ([]domain.User, error)
}

// ArticleService defines article reads and vote updates. Ids are passed as
// the raw path segment; the service validates them.
type ArticleService interface {
	List(ctx context.Context, sortBy, order, topic string) ([]domain.Article, error)
	Get(ctx context.Context, articleID string) (*domain.Article, error)
	UpdateVotes(ctx context.Context, articleID string, inc int) (*domain.Article, error)
}

// CommentService defines comment listing, creation and deletion.
//
// Create returns replayed=true when idemKey matched an earlier request and
// the previously created comment is returned instead of a new one.
type CommentService interface {
	ListForArticle(ctx context.Context, articleID string) ([]domain.Comment, error)
	Create(ctx context.Context, articleID, username, body, idemKey string) (c *domain.Comment, replayed bool, err error)
	Delete(ctx context.Context, commentID string) error
}

//
// Handler wiring
//

// Handlers groups the HTTP endpoints. It depends on abstract service
// interfaces to keep transport concerns separate from business logic.
type Handlers struct {
	topicSvc   TopicService
	userSvc    UserService
	articleSvc ArticleService
	commentSvc CommentService
}

// New constructs a Handlers instance bound to the given services.
func New(topicSvc TopicService, userSvc UserService, articleSvc ArticleService, commentSvc CommentService) *Handlers {
	return &Handlers{
		topicSvc:   topicSvc,
		userSvc:    userSvc,
		articleSvc: articleSvc,
		commentSvc: commentSvc,
	}
}
