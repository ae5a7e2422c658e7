// Package services – CommentService
//
// This file implements CommentService, which lists, creates and deletes
// comments. Listing performs an explicit article-existence check so that an
// article with no comments ([]) is distinguishable from a missing article
// (ErrArticleNotFound).
//
// Creation normalizes the body (trim + Unicode NFC) and supports safe retries:
// when an idempotency key is supplied and a live record exists for
// (article_id, key), the originally created comment is returned instead of
// inserting another one.
//
// Unknown authors or articles on create are not pre-checked; the store's
// foreign-key violation propagates unchanged for the handler pipeline.
package services

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/unicode/norm"
	"gorm.io/gorm"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/tbourn/go-news-backend/internal/domain"
	"github.com/tbourn/go-news-backend/internal/repo"
)

// CommentService coordinates comment persistence and idempotent creation.
type CommentService struct {
	DB *gorm.DB

	// IdempotencyTTL is how long an Idempotency-Key replays its comment.
	// Zero disables recording.
	IdempotencyTTL time.Duration

	// Now is the clock used for idempotency windows; nil means time.Now.
	Now func() time.Time
}

// ListForArticle returns the comments of an existing article, newest first.
func (s *CommentService) ListForArticle(ctx context.Context, rawArticleID string) ([]domain.Comment, error) {
	tr := otel.Tracer("services/CommentService")
	ctx, span := tr.Start(ctx, "ListForArticle",
		trace.WithAttributes(attribute.String("article.id", rawArticleID)),
	)
	defer span.End()

	articleID, err := repo.ParseID(rawArticleID)
	if err != nil {
		return nil, err
	}
	ok, err := repo.Exists(ctx, s.DB, repo.EntityArticle, "article_id", articleID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrArticleNotFound
	}
	return repo.ListComments(ctx, s.DB, articleID)
}

// Create inserts a comment by username on the article. When idemKey is not
// empty and a live record exists for it, the previously created comment is
// returned with replayed=true.
func (s *CommentService) Create(ctx context.Context, rawArticleID, username, body, idemKey string) (c *domain.Comment, replayed bool, err error) {
	tr := otel.Tracer("services/CommentService")
	ctx, span := tr.Start(ctx, "Create",
		trace.WithAttributes(
			attribute.String("article.id", rawArticleID),
			attribute.String("author", username),
			attribute.Bool("idempotent", idemKey != ""),
		),
	)
	defer span.End()

	articleID, err := repo.ParseID(rawArticleID)
	if err != nil {
		return nil, false, err
	}
	body = normalizeBody(body)
	if body == "" || username == "" {
		return nil, false, ErrBadRequest
	}

	if idemKey != "" {
		rec, err := repo.GetIdempotency(ctx, s.DB, articleID, idemKey, s.now())
		switch {
		case err == nil:
			prev, err := repo.GetComment(ctx, s.DB, rec.CommentID)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, false, ErrCommentNotFound
			}
			if err != nil {
				return nil, false, err
			}
			span.SetAttributes(attribute.Bool("replayed", true))
			return prev, true, nil
		case !errors.Is(err, repo.ErrNotFound):
			return nil, false, err
		}
	}

	c, err = repo.CreateComment(ctx, s.DB, articleID, username, body)
	if err != nil {
		return nil, false, err
	}

	// Best effort: a lost race on the same key leaves the first record in place.
	if idemKey != "" && s.IdempotencyTTL > 0 {
		if _, err := repo.CreateIdempotency(ctx, s.DB, articleID, idemKey, c.CommentID, http.StatusCreated, s.IdempotencyTTL); err != nil {
			span.RecordError(err)
			log.Warn().Err(err).Int64("article_id", articleID).Int64("comment_id", c.CommentID).Msg("idempotency key not recorded")
		}
	}
	return c, false, nil
}

// Delete removes the comment with the given id.
func (s *CommentService) Delete(ctx context.Context, rawID string) error {
	tr := otel.Tracer("services/CommentService")
	ctx, span := tr.Start(ctx, "Delete",
		trace.WithAttributes(attribute.String("comment.id", rawID)),
	)
	defer span.End()

	id, err := repo.ParseID(rawID)
	if err != nil {
		return err
	}
	if err := repo.DeleteComment(ctx, s.DB, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return err
	}
	return nil
}

// PurgeExpiredKeys drops idempotency records whose window has closed.
func (s *CommentService) PurgeExpiredKeys(ctx context.Context) (int64, error) {
	return repo.PurgeExpiredIdempotency(ctx, s.DB, s.now())
}

func (s *CommentService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// normalizeBody trims surrounding whitespace and converts to NFC so that
// visually identical bodies are stored identically.
func normalizeBody(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
