// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides read access to topics and users, which
// are seeded outside the API and never written through it.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/go-news-backend/internal/domain"
)

// ListTopics returns every topic ordered by slug. It returns an empty slice
// when no topics exist.
func ListTopics(ctx context.Context, db *gorm.DB) ([]domain.Topic, error) {
	out := []domain.Topic{}
	err := db.WithContext(ctx).
		Order("slug asc").
		Find(&out).Error
	return out, err
}

// ListUsers returns every user ordered by username.
func ListUsers(ctx context.Context, db *gorm.DB) ([]domain.User, error) {
	out := []domain.User{}
	err := db.WithContext(ctx).
		Order("username asc").
		Find(&out).Error
	return out, err
}
