// Package services – TopicService and UserService
//
// Topics and users are seeded outside the API; these services expose them
// read-only.
package services

import (
	"context"

	"gorm.io/gorm"

	"go.opentelemetry.io/otel"

	"github.com/tbourn/go-news-backend/internal/domain"
	"github.com/tbourn/go-news-backend/internal/repo"
)

// TopicService lists topics.
type TopicService struct {
	DB *gorm.DB
}

// List returns all topics.
func (s *TopicService) List(ctx context.Context) ([]domain.Topic, error) {
	ctx, span := otel.Tracer("services/TopicService").Start(ctx, "List")
	defer span.End()
	return repo.ListTopics(ctx, s.DB)
}

// UserService lists users.
type UserService struct {
	DB *gorm.DB
}

// List returns all users.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	ctx, span := otel.Tracer("services/UserService").Start(ctx, "List")
	defer span.End()
	return repo.ListUsers(ctx, s.DB)
}
