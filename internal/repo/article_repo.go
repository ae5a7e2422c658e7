// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Article
// model.
//
// Every article read goes through articlesWithCounts, which LEFT JOINs
// comments and groups per article so that CommentCount is populated by the
// store in the same statement.
//
// Functions:
//
//   - ListArticles(ctx, db, q) -> []domain.Article, error
//     Returns articles optionally filtered by topic and ordered by a
//     pre-validated column.
//
//   - GetArticle(ctx, db, id) -> *domain.Article, error
//     Fetches a single article with its comment count, or ErrNotFound.
//
//   - UpdateArticleVotes(ctx, db, id, inc) -> *domain.Article, error
//     Atomically adds inc to the vote total and returns the updated row.
//
// Only column names from the closed sort set reach the ORDER BY clause, and
// they are emitted as quoted identifiers through clause.OrderByColumn. All
// user values are bound as parameters.
package repo

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/go-news-backend/internal/domain"
)

// ArticleSortColumns is the closed set of columns articles may be ordered by.
var ArticleSortColumns = map[string]struct{}{
	"title":      {},
	"topic":      {},
	"author":     {},
	"created_at": {},
}

// ArticleQuery describes a filtered, sorted article listing.
type ArticleQuery struct {
	SortBy string // one of ArticleSortColumns
	Desc   bool
	Topic  string // empty means no filter
}

// articlesWithCounts is the shared base statement for article reads.
func articlesWithCounts(ctx context.Context, db *gorm.DB) *gorm.DB {
	return db.WithContext(ctx).
		Model(&domain.Article{}).
		Select("articles.*, COUNT(comments.comment_id) AS comment_count").
		Joins("LEFT JOIN comments ON comments.article_id = articles.article_id").
		Group("articles.article_id")
}

// ListArticles returns articles matching q. It returns an empty slice when
// nothing matches. An unknown sort column is rejected before any statement is
// issued.
func ListArticles(ctx context.Context, db *gorm.DB, q ArticleQuery) ([]domain.Article, error) {
	if _, ok := ArticleSortColumns[q.SortBy]; !ok {
		return nil, fmt.Errorf("repo: unsortable article column %q", q.SortBy)
	}

	tx := articlesWithCounts(ctx, db)
	if q.Topic != "" {
		tx = tx.Where("articles.topic = ?", q.Topic)
	}

	out := []domain.Article{}
	err := tx.
		Order(clause.OrderByColumn{Column: clause.Column{Table: "articles", Name: q.SortBy}, Desc: q.Desc}).
		Order(clause.OrderByColumn{Column: clause.Column{Table: "articles", Name: "article_id"}, Desc: q.Desc}).
		Find(&out).Error
	return out, err
}

// GetArticle fetches a single article by id together with its comment count.
// If no row exists it returns ErrNotFound.
func GetArticle(ctx context.Context, db *gorm.DB, id int64) (*domain.Article, error) {
	var a domain.Article
	err := articlesWithCounts(ctx, db).
		Where("articles.article_id = ?", id).
		Take(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// UpdateArticleVotes adds inc (which may be negative) to the article's vote
// total in a single statement and returns the updated article. Concurrent
// increments compose additively. If no row exists it returns ErrNotFound.
func UpdateArticleVotes(ctx context.Context, db *gorm.DB, id int64, inc int) (*domain.Article, error) {
	res := db.WithContext(ctx).
		Model(&domain.Article{}).
		Where("article_id = ?", id).
		UpdateColumn("votes", gorm.Expr("votes + ?", inc))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return GetArticle(ctx, db, id)
}
