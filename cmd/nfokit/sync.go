package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/vmunix/nfokit/internal/config"
	"github.com/vmunix/nfokit/internal/events"
	"github.com/vmunix/nfokit/internal/library"
	"github.com/vmunix/nfokit/internal/syncer"
	"github.com/vmunix/nfokit/pkg/nfo"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Regenerate sidecar files for every movie in the library",
	Long: `Writes every movie's metadata back to disk, one file per configured
target dialect. Files whose content would not change are left untouched.`,
	RunE: runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)
	syncCmd.Flags().Bool("clean", false, "Drop unrecognized tags instead of carrying them over")
}

func runSync(cmd *cobra.Command, args []string) error {
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

	if clean, _ := cmd.Flags().GetBool("clean"); clean {
		cfg.Sync.CleanRewrite = true
	}

	bus := events.NewBus(events.NewEventLog(db), logger)
	progress := watchProgress(bus)

	s, err := buildSyncer(cfg, library.NewStore(db), bus, logger)
	if err != nil {
		_ = bus.Close()
		return err
	}

	stats, err := s.SyncAll(cmd.Context())
	_ = bus.Close()
	<-progress
	if err != nil {
		return err
	}

	fmt.Printf("Synced %d movies: %d written, %d unchanged, %d removed, %d failed\n",
		stats.Movies, stats.Written, stats.Unchanged, stats.Removed, stats.Failed)
	if stats.Failed > 0 {
		return fmt.Errorf("%d sidecar writes failed", stats.Failed)
	}
	return nil
}

// watchProgress prints one line per sidecar the sync touches, as the events
// come off the bus. The returned channel closes once the bus does.
func watchProgress(bus *events.Bus) <-chan struct{} {
	ch := bus.Subscribe(64)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for e := range ch {
			switch evt := e.(type) {
			case *events.SidecarWritten:
				fmt.Printf("  wrote   %s\n", evt.Path)
			case *events.SidecarRemoved:
				fmt.Printf("  removed %s\n", evt.Path)
			case *events.SidecarWriteFailed:
				fmt.Printf("  failed  %s: %s\n", evt.Path, evt.Reason)
			}
		}
	}()
	return done
}

// buildSyncer wires a syncer from the loaded configuration.
func buildSyncer(cfg *config.Config, store syncer.MovieStore, bus *events.Bus, logger *slog.Logger) (*syncer.Syncer, error) {
	targets := make([]syncer.Target, 0, len(cfg.Targets))
	for _, t := range cfg.Targets {
		d, err := nfo.ParseDialect(t.Dialect)
		if err != nil {
			return nil, err
		}
		targets = append(targets, syncer.Target{Dialect: d, Pattern: t.Naming})
	}

	return syncer.New(store, bus, syncer.Options{
		Targets:        targets,
		Clean:          cfg.Sync.CleanRewrite,
		RatingOrder:    cfg.Sync.RatingOrder,
		SingleStudio:   cfg.Sync.SingleStudio,
		WriteLockData:  cfg.Sync.WriteLockData,
		Workers:        cfg.Sync.Workers,
		MatchThreshold: cfg.Sync.MatchThreshold,
		BackupRemoved:  cfg.Sync.BackupRemoved,
	}, logger)
}
