// Package services – ArticleService
//
// This file implements ArticleService, which owns article reads and vote
// updates. It validates sort parameters against the closed column whitelist,
// checks that a topic filter names an existing topic before querying (so an
// unknown topic is distinguishable from a topic with no articles), and turns
// "no row" outcomes into typed rejections.
//
// Identifiers arrive as raw path segments. A non-integer id surfaces as the
// repo's invalid-input error and is left for the handler pipeline to classify.
//
// Observability: all public methods are OpenTelemetry-instrumented.
package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/tbourn/go-news-backend/internal/domain"
	"github.com/tbourn/go-news-backend/internal/repo"
)

// ArticleRepo defines the repository contract required by ArticleService.
type ArticleRepo interface {
	// ListArticles returns articles with comment counts, filtered and sorted.
	ListArticles(ctx context.Context, db *gorm.DB, q repo.ArticleQuery) ([]domain.Article, error)

	// GetArticle fetches one article with its comment count.
	GetArticle(ctx context.Context, db *gorm.DB, id int64) (*domain.Article, error)

	// UpdateArticleVotes adds inc to the vote total and returns the new row.
	UpdateArticleVotes(ctx context.Context, db *gorm.DB, id int64, inc int) (*domain.Article, error)

	// Exists reports whether a row of entity has column = value.
	Exists(ctx context.Context, db *gorm.DB, entity repo.Entity, column string, value any) (bool, error)
}

// ArticleService provides article listing, lookup and voting.
type ArticleService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the article repository used by this service.
	Repo ArticleRepo
}

// NewArticleService constructs an ArticleService.
func NewArticleService(db *gorm.DB, r ArticleRepo) *ArticleService {
	return &ArticleService{DB: db, Repo: r}
}

// List returns articles sorted by sortBy/order and optionally restricted to a
// topic. An invalid sort column or order is ErrBadRequest; an unknown topic is
// ErrTopicNotFound. A known topic without articles yields an empty slice.
func (s *ArticleService) List(ctx context.Context, sortBy, order, topic string) ([]domain.Article, error) {
	tr := otel.Tracer("services/ArticleService")
	ctx, span := tr.Start(ctx, "List",
		trace.WithAttributes(
			attribute.String("sort_by", sortBy),
			attribute.String("order", order),
			attribute.String("topic", topic),
		),
	)
	defer span.End()

	column, desc, err := ParseSort(sortBy, order)
	if err != nil {
		return nil, err
	}

	if topic != "" {
		ok, err := s.Repo.Exists(ctx, s.DB, repo.EntityTopic, "slug", topic)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrTopicNotFound
		}
	}

	return s.Repo.ListArticles(ctx, s.DB, repo.ArticleQuery{SortBy: column, Desc: desc, Topic: topic})
}

// Get returns the article with the given id, including its comment count.
func (s *ArticleService) Get(ctx context.Context, rawID string) (*domain.Article, error) {
	tr := otel.Tracer("services/ArticleService")
	ctx, span := tr.Start(ctx, "Get",
		trace.WithAttributes(attribute.String("article.id", rawID)),
	)
	defer span.End()

	id, err := repo.ParseID(rawID)
	if err != nil {
		return nil, err
	}
	a, err := s.Repo.GetArticle(ctx, s.DB, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrArticleNotFound
	}
	return a, err
}

// UpdateVotes adds inc (positive or negative) to the article's votes and
// returns the updated article. Repeated calls compose additively.
func (s *ArticleService) UpdateVotes(ctx context.Context, rawID string, inc int) (*domain.Article, error) {
	tr := otel.Tracer("services/ArticleService")
	ctx, span := tr.Start(ctx, "UpdateVotes",
		trace.WithAttributes(
			attribute.String("article.id", rawID),
			attribute.Int("inc_votes", inc),
		),
	)
	defer span.End()

	id, err := repo.ParseID(rawID)
	if err != nil {
		return nil, err
	}
	a, err := s.Repo.UpdateArticleVotes(ctx, s.DB, id, inc)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrArticleNotFound
	}
	return a, err
}
