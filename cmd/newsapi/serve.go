package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/tbourn/go-news-backend/internal/config"
	httpapi "github.com/tbourn/go-news-backend/internal/http"
	"github.com/tbourn/go-news-backend/internal/observability"
	"github.com/tbourn/go-news-backend/internal/repo"
	"github.com/tbourn/go-news-backend/internal/services"
	"github.com/tbourn/go-news-backend/internal/sysutil"
)

var (
	servePort          string
	serveSeed          bool
	servePurgeInterval time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start the HTTP API server.

The server shuts down gracefully on SIGINT or SIGTERM, draining in-flight
requests for up to 10 seconds.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&servePort, "port", "p", "", "listen port (overrides PORT)")
	serveCmd.Flags().BoolVar(&serveSeed, "seed", sysutil.IsTruthy(os.Getenv("SEED_ON_BOOT")), "load the development dataset into an empty store on start")
	serveCmd.Flags().DurationVar(&servePurgeInterval, "purge-interval", 0, "how often expired idempotency keys are purged (overrides IDEMPOTENCY_PURGE_INTERVAL; 0 disables)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cfg.Port = sysutil.FirstNonEmpty(servePort, cfg.Port)
	if cmd.Flags().Changed("purge-interval") {
		cfg.IdempotencyPurgeInterval = servePurgeInterval
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownOTel(sctx); err != nil {
			log.Warn().Err(err).Msg("otel shutdown")
		}
	}()

	db, err := repo.Open(cfg.DB, cfg.OTEL.Enabled)
	if err != nil {
		return fmt.Errorf("open %s: %w", cfg.DB, err)
	}
	log.Info().Stringer("store", cfg.DB).Bool("auto_migrate", cfg.DB.AutoMigrate).Msg("store ready")
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	if serveSeed {
		if err := seedIfEmpty(ctx, db); err != nil {
			return err
		}
	}

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	svcs := httpapi.RegisterRoutes(r, db, cfg)

	srv := newHTTPServer(cfg, r)

	go purgeLoop(ctx, svcs.Comments, cfg.IdempotencyPurgeInterval)

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("base_path", cfg.APIBasePath).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return err
	}
	log.Info().Msg("server stopped")
	return nil
}

func newHTTPServer(cfg config.Config, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              net.JoinHostPort("", cfg.Port),
		Handler:           h,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}
}

// purgeLoop deletes expired idempotency records every interval until ctx is
// cancelled. A non-positive interval disables purging.
func purgeLoop(ctx context.Context, comments *services.CommentService, interval time.Duration) {
	if interval <= 0 {
		return
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			n, err := comments.PurgeExpiredKeys(ctx)
			if err != nil {
				log.Warn().Err(err).Msg("purge idempotency keys")
				continue
			}
			if n > 0 {
				log.Debug().Int64("deleted", n).Msg("purged idempotency keys")
			}
		}
	}
}
