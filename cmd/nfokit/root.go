package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	_ "modernc.org/sqlite"

	"github.com/vmunix/nfokit/internal/config"
	"github.com/vmunix/nfokit/internal/migrations"
)

var version = "dev"

var (
	configPath string
	logLevel   string
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "nfokit",
	Short: "Sidecar metadata interchange for movie libraries",
	Long: `nfokit - sidecar metadata interchange for movie libraries

Reads .nfo sidecar files in the tag dialects of the common media
centers, keeps the parsed metadata in a local database, and writes
sidecars back out in any configured dialect without losing tags it
does not understand.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default: discover)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override configured log level")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("nfokit {{.Version}}\n")
}

// loadConfig resolves and loads the configuration for commands that need it.
func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		var err error
		path, err = config.Discover()
		if err != nil {
			return nil, err
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	return cfg, nil
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}))
}

// openDB opens the configured database and applies migrations.
func openDB(cfg *config.Config) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", cfg.Database.Path+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := migrations.Apply(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
