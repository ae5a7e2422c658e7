package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/tbourn/go-news-backend/internal/domain"
	"github.com/tbourn/go-news-backend/internal/repo"
	"github.com/tbourn/go-news-backend/internal/seed"
)

var seedReset bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the development dataset",
	Long: `Load the embedded development dataset (topics, users, articles and
comments) into the configured store. The schema is created first.

Without --reset the command refuses to run against a store that already
holds topics.`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().BoolVar(&seedReset, "reset", false, "delete all existing rows before loading")
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := repo.Open(cfg.DB, false)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}
	ctx := cmd.Context()
	if err := repo.AutoMigrate(db.WithContext(ctx)); err != nil {
		return err
	}

	if seedReset {
		if err := seed.Reset(ctx, db); err != nil {
			return fmt.Errorf("reset: %w", err)
		}
		log.Info().Msg("store cleared")
	} else if n, err := countTopics(ctx, db); err != nil {
		return err
	} else if n > 0 {
		return fmt.Errorf("store already holds %d topics; rerun with --reset", n)
	}

	counts, err := loadDefault(ctx, db)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "seeded %d topics, %d users, %d articles, %d comments\n",
		counts["topics"], counts["users"], counts["articles"], counts["comments"])
	return nil
}

// seedIfEmpty loads the development dataset when the store has no topics.
func seedIfEmpty(ctx context.Context, db *gorm.DB) error {
	n, err := countTopics(ctx, db)
	if err != nil || n > 0 {
		return err
	}
	counts, err := loadDefault(ctx, db)
	if err != nil {
		return err
	}
	log.Info().Interface("rows", counts).Msg("seeded empty store")
	return nil
}

func loadDefault(ctx context.Context, db *gorm.DB) (map[string]int, error) {
	ds, err := seed.Default()
	if err != nil {
		return nil, err
	}
	return seed.Load(ctx, db, ds)
}

func countTopics(ctx context.Context, db *gorm.DB) (int64, error) {
	var n int64
	err := db.WithContext(ctx).Model(&domain.Topic{}).Count(&n).Error
	return n, err
}
