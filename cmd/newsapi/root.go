package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/tbourn/go-news-backend/internal/config"
	"github.com/tbourn/go-news-backend/internal/sysutil"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

var envFile string

var rootCmd = &cobra.Command{
	Use:   "newsapi",
	Short: "News aggregator REST API",
	Long: `newsapi serves topics, articles, comments and users over HTTP.

Configuration is read from the environment. A .env file is loaded first
when present; variables already set in the environment take precedence.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "dotenv file to load (default: $ENV_FILE or .env)")
}

// loadConfig loads the dotenv file, reads the configuration and installs the
// global logger. A missing default .env is not an error.
func loadConfig() (config.Config, error) {
	path := sysutil.FirstNonEmpty(envFile, os.Getenv("ENV_FILE"), ".env")
	if err := godotenv.Load(path); err != nil && (envFile != "" || !os.IsNotExist(err)) {
		return config.Config{}, err
	}

	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	sysutil.InitLogger(os.Stderr, cfg.LogLevel, cfg.LogPretty, cfg.OTEL.ServiceName)
	log.Debug().Str("env_file", path).Str("driver", cfg.DB.Driver).Msg("configuration loaded")
	return cfg, nil
}
