package services

import (
	"context"
	"fmt"
	"testing"

	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-news-backend/internal/repo"
	"github.com/tbourn/go-news-backend/internal/seed"
)

// newNewsDB returns a migrated, seeded in-memory store.
//
// Seeded ids: articles 1..7 in fixture order ("Living in the shadow of a great
// man" is 1 with 5 comments, 2 has none, 5 is the only cats article), and
// comments 1..10.
func newNewsDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:svc_%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	ds, err := seed.Default()
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := seed.Load(context.Background(), db, ds); err != nil {
		t.Fatalf("seed load: %v", err)
	}
	return db
}
