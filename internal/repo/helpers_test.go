package repo

import (
	"fmt"
	"strings"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-news-backend/internal/domain"
)

// newTestDB opens a private in-memory database with foreign keys enforced and
// the news schema migrated.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// seedNews loads a small fixture set:
//
//	topics:   mitch, cats, paper (no articles)
//	users:    butter_bridge, icellusedkars
//	articles: 1 mitch/butter_bridge (2 comments), 2 cats/icellusedkars (0),
//	          3 mitch/icellusedkars (1)
func seedNews(t *testing.T, db *gorm.DB) {
	t.Helper()
	base := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	must(db.Create([]domain.Topic{
		{Slug: "mitch", Description: "The man, the Mitch, the legend"},
		{Slug: "cats", Description: "Not dogs"},
		{Slug: "paper", Description: "what books are made of"},
	}).Error)
	must(db.Create([]domain.User{
		{Username: "butter_bridge", Name: "jonny"},
		{Username: "icellusedkars", Name: "sam"},
	}).Error)
	must(db.Create([]domain.Article{
		{ArticleID: 1, Title: "Living in the shadow of a great man", Topic: "mitch", Author: "butter_bridge", Body: "I find this existence challenging", CreatedAt: base.Add(3 * time.Hour), Votes: 100},
		{ArticleID: 2, Title: "UNCOVERED: catspiracy", Topic: "cats", Author: "icellusedkars", Body: "Bastet walks amongst us", CreatedAt: base.Add(1 * time.Hour)},
		{ArticleID: 3, Title: "Eight pug gifs", Topic: "mitch", Author: "icellusedkars", Body: "some gifs", CreatedAt: base.Add(2 * time.Hour)},
	}).Error)
	must(db.Create([]domain.Comment{
		{CommentID: 1, ArticleID: 1, Author: "butter_bridge", Body: "first", Votes: 16, CreatedAt: base.Add(4 * time.Hour)},
		{CommentID: 2, ArticleID: 1, Author: "icellusedkars", Body: "second", Votes: 14, CreatedAt: base.Add(5 * time.Hour)},
		{CommentID: 3, ArticleID: 3, Author: "icellusedkars", Body: "third", CreatedAt: base.Add(6 * time.Hour)},
	}).Error)
}
