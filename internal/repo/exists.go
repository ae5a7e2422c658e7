// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides the generic "row exists for
// column = value" check used to validate references before querying.
package repo

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/go-news-backend/internal/domain"
)

// Entity selects the table an existence check runs against.
type Entity int

const (
	EntityTopic Entity = iota + 1
	EntityUser
	EntityArticle
	EntityComment
)

// entityTable binds an Entity to its model and the closed set of columns that
// may be probed. Column names never come from request input.
type entityTable struct {
	model   any
	columns map[string]struct{}
}

var entityTables = map[Entity]entityTable{
	EntityTopic: {
		model:   &domain.Topic{},
		columns: set("slug"),
	},
	EntityUser: {
		model:   &domain.User{},
		columns: set("username"),
	},
	EntityArticle: {
		model:   &domain.Article{},
		columns: set("article_id", "topic", "author"),
	},
	EntityComment: {
		model:   &domain.Comment{},
		columns: set("comment_id", "article_id", "author"),
	},
}

// Exists reports whether at least one row of entity has column = value.
// value is always bound as a parameter. An unknown entity or column is a
// programming error and is returned as such.
func Exists(ctx context.Context, db *gorm.DB, entity Entity, column string, value any) (bool, error) {
	tbl, ok := entityTables[entity]
	if !ok {
		return false, fmt.Errorf("repo: unknown entity %d", entity)
	}
	if _, ok := tbl.columns[column]; !ok {
		return false, fmt.Errorf("repo: column %q not probeable on entity %d", column, entity)
	}

	var n int64
	err := db.WithContext(ctx).
		Model(tbl.model).
		Where(clause.Eq{Column: clause.Column{Name: column}, Value: value}).
		Limit(1).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func set(vals ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(vals))
	for _, v := range vals {
		m[v] = struct{}{}
	}
	return m
}
