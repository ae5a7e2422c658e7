package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/tbourn/go-news-backend/internal/config"
	"github.com/tbourn/go-news-backend/internal/repo"
	"github.com/tbourn/go-news-backend/internal/services"
)

func setTestEnv(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "news.db")
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", path)
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("OTEL_ENABLED", "false")
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		seedReset = false
	})
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSeedCommand_LoadsThenRequiresReset(t *testing.T) {
	path := setTestEnv(t)

	out, err := execute(t, "seed")
	if err != nil {
		t.Fatalf("seed: %v (%s)", err, out)
	}
	if !strings.Contains(out, "seeded 3 topics, 4 users") {
		t.Fatalf("unexpected output: %q", out)
	}

	if _, err := execute(t, "seed"); err == nil || !strings.Contains(err.Error(), "--reset") {
		t.Fatalf("expected refusal without --reset, got %v", err)
	}

	if out, err := execute(t, "seed", "--reset"); err != nil {
		t.Fatalf("seed --reset: %v (%s)", err, out)
	}

	db, err := repo.OpenSQLite(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	n, err := countTopics(context.Background(), db)
	if err != nil || n != 3 {
		t.Fatalf("expected 3 topics after reset, got %d (%v)", n, err)
	}
}

func TestSeedIfEmpty_Idempotent(t *testing.T) {
	db, err := repo.OpenSQLite(filepath.Join(t.TempDir(), "news.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if err := seedIfEmpty(ctx, db); err != nil {
			t.Fatalf("seedIfEmpty #%d: %v", i, err)
		}
	}
	if n, _ := countTopics(ctx, db); n != 3 {
		t.Fatalf("expected 3 topics, got %d", n)
	}
}

func TestRoutesCommand_ListsAPI(t *testing.T) {
	setTestEnv(t)
	out, err := execute(t, "routes")
	if err != nil {
		t.Fatalf("routes: %v", err)
	}
	for _, want := range []string{
		"GET     /api/articles/:article_id/comments",
		"POST    /api/articles/:article_id/comments",
		"PATCH   /api/articles/:article_id",
		"DELETE  /api/comments/:comment_id",
		"GET     /health",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestNewHTTPServer_UsesConfig(t *testing.T) {
	cfg := config.Config{
		Port:              "8081",
		ReadTimeout:       time.Second,
		ReadHeaderTimeout: 2 * time.Second,
		WriteTimeout:      3 * time.Second,
		IdleTimeout:       4 * time.Second,
		MaxHeaderBytes:    512,
	}
	srv := newHTTPServer(cfg, nil)
	if srv.Addr != ":8081" || srv.ReadTimeout != time.Second || srv.ReadHeaderTimeout != 2*time.Second ||
		srv.WriteTimeout != 3*time.Second || srv.IdleTimeout != 4*time.Second || srv.MaxHeaderBytes != 512 {
		t.Fatalf("unexpected server: %+v", srv)
	}
}

func TestPurgeLoop_StopsOnCancel(t *testing.T) {
	db, err := repo.OpenSQLite(filepath.Join(t.TempDir(), "news.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	svc := &services.CommentService{DB: db, IdempotencyTTL: time.Hour}

	// disabled interval returns immediately
	purgeLoop(context.Background(), svc, 0)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		purgeLoop(ctx, svc, time.Millisecond)
		close(done)
	}()
	time.Sleep(10 * time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("purgeLoop did not stop after cancel")
	}
}
