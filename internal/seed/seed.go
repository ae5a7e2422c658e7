// Package seed loads the development dataset (topics, users, articles and
// comments) into the news store. The fixtures are embedded JSON so that the
// CLI and the test suites share one copy.
//
// Comments reference their parent article by title rather than by id, which
// keeps the fixtures independent of the ids the store assigns.
package seed

import (
	"context"
	"embed"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"gorm.io/gorm"

	"github.com/tbourn/go-news-backend/internal/domain"
)

//go:embed data/*.json
var fixtures embed.FS

// CommentFixture is a comment whose article is named by title.
type CommentFixture struct {
	Body         string    `json:"body"`
	ArticleTitle string    `json:"article_title"`
	Author       string    `json:"author"`
	Votes        int       `json:"votes"`
	CreatedAt    time.Time `json:"created_at"`
}

// Dataset is a complete set of rows to load.
type Dataset struct {
	Topics   []domain.Topic
	Users    []domain.User
	Articles []domain.Article
	Comments []CommentFixture
}

// Default decodes the embedded dataset.
func Default() (*Dataset, error) {
	ds := &Dataset{}
	files := []struct {
		name string
		dst  any
	}{
		{"data/topics.json", &ds.Topics},
		{"data/users.json", &ds.Users},
		{"data/articles.json", &ds.Articles},
		{"data/comments.json", &ds.Comments},
	}
	for _, f := range files {
		raw, err := fixtures.ReadFile(f.name)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(raw, f.dst); err != nil {
			return nil, fmt.Errorf("seed: decode %s: %w", f.name, err)
		}
	}
	return ds, nil
}

// Load inserts ds into db in foreign-key order inside one transaction and
// returns the number of rows written per table.
func Load(ctx context.Context, db *gorm.DB, ds *Dataset) (map[string]int, error) {
	counts := map[string]int{}
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(ds.Topics) > 0 {
			if err := tx.Create(&ds.Topics).Error; err != nil {
				return fmt.Errorf("seed topics: %w", err)
			}
		}
		if len(ds.Users) > 0 {
			if err := tx.Create(&ds.Users).Error; err != nil {
				return fmt.Errorf("seed users: %w", err)
			}
		}

		ids := make(map[string]int64, len(ds.Articles))
		for i := range ds.Articles {
			a := ds.Articles[i]
			a.ArticleID = 0
			if err := tx.Create(&a).Error; err != nil {
				return fmt.Errorf("seed article %q: %w", a.Title, err)
			}
			ids[a.Title] = a.ArticleID
		}

		for _, cf := range ds.Comments {
			articleID, ok := ids[cf.ArticleTitle]
			if !ok {
				return fmt.Errorf("seed comment: unknown article %q", cf.ArticleTitle)
			}
			c := domain.Comment{
				Body:      cf.Body,
				ArticleID: articleID,
				Author:    cf.Author,
				Votes:     cf.Votes,
				CreatedAt: cf.CreatedAt.UTC(),
			}
			if err := tx.Create(&c).Error; err != nil {
				return fmt.Errorf("seed comment: %w", err)
			}
		}

		counts["topics"] = len(ds.Topics)
		counts["users"] = len(ds.Users)
		counts["articles"] = len(ds.Articles)
		counts["comments"] = len(ds.Comments)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return counts, nil
}

// Reset removes every row from the news tables, children first.
func Reset(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, m := range []any{&domain.Idempotency{}, &domain.Comment{}, &domain.Article{}, &domain.User{}, &domain.Topic{}} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(m).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
