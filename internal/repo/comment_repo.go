// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Comment
// model.
//
// Error semantics:
//   - Missing comments surface as ErrNotFound.
//   - Constraint violations (unknown author or article) propagate as the raw
//     driver error so that Classify can map them.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-news-backend/internal/domain"
)

// ListComments returns the comments on articleID, newest first. It does not
// check that the article exists; an unknown article yields an empty slice.
func ListComments(ctx context.Context, db *gorm.DB, articleID int64) ([]domain.Comment, error) {
	out := []domain.Comment{}
	err := db.WithContext(ctx).
		Where("article_id = ?", articleID).
		Order("created_at desc").
		Order("comment_id desc").
		Find(&out).Error
	return out, err
}

// GetComment fetches a single comment by id, or ErrNotFound.
func GetComment(ctx context.Context, db *gorm.DB, id int64) (*domain.Comment, error) {
	var c domain.Comment
	if err := db.WithContext(ctx).Where("comment_id = ?", id).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// CreateComment inserts a comment by author on articleID. The id is assigned
// by the store and CreatedAt is set to UTC now. Votes start at zero.
func CreateComment(ctx context.Context, db *gorm.DB, articleID int64, author, body string) (*domain.Comment, error) {
	c := &domain.Comment{
		ArticleID: articleID,
		Author:    author,
		Body:      body,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

// DeleteComment removes the comment with the given id. If no row was deleted
// it returns ErrNotFound.
func DeleteComment(ctx context.Context, db *gorm.DB, id int64) error {
	res := db.WithContext(ctx).
		Where("comment_id = ?", id).
		Delete(&domain.Comment{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
