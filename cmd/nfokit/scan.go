package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vmunix/nfokit/internal/events"
	"github.com/vmunix/nfokit/internal/library"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan the library root and import sidecar metadata",
	Long: `Walks the configured library root, pairs video files with their
sidecars, and loads the parsed metadata into the database.`,
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	bus := events.NewBus(events.NewEventLog(db), logger)
	defer func() { _ = bus.Close() }()

	s, err := buildSyncer(cfg, library.NewStore(db), bus, logger)
	if err != nil {
		return err
	}

	stats, err := s.Scan(cmd.Context(), cfg.Library.Root)
	if err != nil {
		return err
	}

	fmt.Printf("Scanned %s: %d videos, %d added, %d updated, %d sets, %d failed\n",
		cfg.Library.Root, stats.Found, stats.Added, stats.Updated, stats.Sets, stats.Failed)
	return nil
}
