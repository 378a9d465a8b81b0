// Package syncer drives the library to disk and back: it regenerates
// sidecar files for every movie and target dialect, and scans the library
// root to pull existing sidecars into the store.
package syncer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/vmunix/nfokit/internal/events"
	"github.com/vmunix/nfokit/internal/library"
	"github.com/vmunix/nfokit/internal/sidecar"
	"github.com/vmunix/nfokit/pkg/nfo"
)

//go:generate go run go.uber.org/mock/mockgen -source=syncer.go -destination=mocks/mocks.go -package=mocks

// MovieStore is the persistence surface the syncer needs.
type MovieStore interface {
	ListMovies() ([]*library.Movie, error)
	GetMovieByMediaFile(path string) (*library.Movie, error)
	AddMovie(m *library.Movie) error
	UpdateMovie(m *library.Movie) error
	SidecarsFor(movieID int64) ([]library.Sidecar, error)
	ReplaceSidecars(movieID int64, sidecars []library.Sidecar) error
	UpsertMovieSet(set *library.MovieSet) error
}

// Target is one sidecar output: a dialect plus the naming pattern for its
// file.
type Target struct {
	Dialect nfo.Dialect
	Pattern string
}

// Options configures a Syncer.
type Options struct {
	Targets        []Target
	Clean          bool
	RatingOrder    []string
	SingleStudio   bool
	WriteLockData  bool
	Workers        int
	MatchThreshold float64
	BackupRemoved  bool
}

type target struct {
	dialect nfo.Dialect
	namer   *sidecar.Namer
	writer  *nfo.Writer
}

// Syncer regenerates sidecar files from the store and keeps the tracked
// sidecar set in step with what is on disk.
type Syncer struct {
	store   MovieStore
	bus     *events.Bus
	reader  *nfo.Reader
	targets []target
	opts    Options
	log     *slog.Logger
}

// New creates a Syncer. A nil logger falls back to slog.Default; a nil bus
// disables event publication.
func New(store MovieStore, bus *events.Bus, opts Options, log *slog.Logger) (*Syncer, error) {
	if log == nil {
		log = slog.Default()
	}
	if opts.Workers <= 0 {
		opts.Workers = 4
	}
	if opts.MatchThreshold <= 0 {
		opts.MatchThreshold = 0.85
	}
	if len(opts.Targets) == 0 {
		opts.Targets = []Target{{Dialect: nfo.DialectKodi}}
	}

	targets := make([]target, 0, len(opts.Targets))
	for _, t := range opts.Targets {
		w, err := nfo.NewWriter(nfo.Options{
			Dialect:       t.Dialect,
			Clean:         opts.Clean,
			RatingOrder:   opts.RatingOrder,
			SingleStudio:  opts.SingleStudio,
			WriteLockData: opts.WriteLockData,
		}, log)
		if err != nil {
			return nil, fmt.Errorf("target %s: %w", t.Dialect, err)
		}
		targets = append(targets, target{
			dialect: t.Dialect,
			namer:   sidecar.NewNamer(t.Pattern),
			writer:  w,
		})
	}

	return &Syncer{
		store:   store,
		bus:     bus,
		reader:  nfo.NewReader(log),
		targets: targets,
		opts:    opts,
		log:     log,
	}, nil
}

// SyncStats summarizes a sync run.
type SyncStats struct {
	Movies    int
	Written   int
	Unchanged int
	Removed   int
	Failed    int
}

func (s *SyncStats) add(o SyncStats) {
	s.Movies += o.Movies
	s.Written += o.Written
	s.Unchanged += o.Unchanged
	s.Removed += o.Removed
	s.Failed += o.Failed
}

// SyncAll regenerates sidecars for every movie in the store. Movies are
// processed concurrently; per-target write failures are reported as events
// and counted, not returned.
func (s *Syncer) SyncAll(ctx context.Context) (SyncStats, error) {
	movies, err := s.store.ListMovies()
	if err != nil {
		return SyncStats{}, fmt.Errorf("list movies: %w", err)
	}

	var mu sync.Mutex
	var stats SyncStats

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Workers)
	for _, m := range movies {
		m := m
		g.Go(func() error {
			st, err := s.SyncMovie(ctx, m)
			mu.Lock()
			stats.add(st)
			mu.Unlock()
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return stats, err
	}
	return stats, nil
}

// SyncMovie regenerates all sidecar targets for one movie, removes orphaned
// tracked files, and records the new sidecar set.
func (s *Syncer) SyncMovie(ctx context.Context, m *library.Movie) (SyncStats, error) {
	stats := SyncStats{Movies: 1}
	if m.MediaFile == "" {
		s.log.Warn("movie has no media file, skipping", "id", m.ID, "title", m.Title)
		return stats, nil
	}

	rec := library.RecordFromMovie(m)

	prior, err := s.store.SidecarsFor(m.ID)
	if err != nil {
		return stats, fmt.Errorf("sidecars for movie %d: %w", m.ID, err)
	}
	if !s.opts.Clean {
		rec.Unsupported = s.loadPassthrough(m, prior)
	}

	var tracked []library.Sidecar
	current := make(map[string]bool)
	for _, t := range s.targets {
		path := t.namer.TargetPath(m.MediaFile, m.Title, m.Year, string(t.dialect))
		current[path] = true

		data, err := t.writer.Write(rec)
		if err != nil {
			s.reportFailure(ctx, m, path, t.dialect, err)
			stats.Failed++
			continue
		}
		res, err := sidecar.WriteIfChanged(path, data)
		if err != nil {
			s.reportFailure(ctx, m, path, t.dialect, err)
			stats.Failed++
			continue
		}

		tracked = append(tracked, library.Sidecar{MovieID: m.ID, Path: path, Dialect: string(t.dialect)})
		switch res {
		case sidecar.ResultWritten:
			stats.Written++
			s.publish(ctx, &events.SidecarWritten{
				BaseEvent: events.NewBaseEvent(events.EventSidecarWritten, events.EntityMovie, m.ID),
				MovieID:   m.ID, Path: path, Dialect: string(t.dialect),
			})
		case sidecar.ResultUnchanged:
			stats.Unchanged++
			s.publish(ctx, &events.SidecarUnchanged{
				BaseEvent: events.NewBaseEvent(events.EventSidecarUnchanged, events.EntityMovie, m.ID),
				MovieID:   m.ID, Path: path, Dialect: string(t.dialect),
			})
		}
	}

	for _, old := range prior {
		if current[old.Path] {
			continue
		}
		if err := sidecar.Remove(old.Path, s.opts.BackupRemoved); err != nil {
			s.log.Warn("failed to remove orphaned sidecar", "path", old.Path, "error", err)
			continue
		}
		stats.Removed++
		s.publish(ctx, &events.SidecarRemoved{
			BaseEvent: events.NewBaseEvent(events.EventSidecarRemoved, events.EntityMovie, m.ID),
			MovieID:   m.ID, Path: old.Path,
		})
	}

	if err := s.store.ReplaceSidecars(m.ID, tracked); err != nil {
		return stats, fmt.Errorf("replace sidecars for movie %d: %w", m.ID, err)
	}
	return stats, nil
}

// loadPassthrough recovers foreign tags from a sidecar already on disk so a
// rewrite does not drop them. Tracked paths are tried first, then the
// configured target paths.
func (s *Syncer) loadPassthrough(m *library.Movie, prior []library.Sidecar) []string {
	var candidates []string
	for _, sc := range prior {
		candidates = append(candidates, sc.Path)
	}
	for _, t := range s.targets {
		candidates = append(candidates, t.namer.TargetPath(m.MediaFile, m.Title, m.Year, string(t.dialect)))
	}

	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		rec, err := s.reader.Parse(data)
		if err != nil {
			s.log.Warn("unreadable sidecar, passthrough lost", "path", path, "error", err)
			continue
		}
		return rec.Unsupported
	}
	return nil
}

func (s *Syncer) reportFailure(ctx context.Context, m *library.Movie, path string, d nfo.Dialect, err error) {
	s.log.Error("sidecar write failed", "movie", m.Title, "path", path, "dialect", d, "error", err)
	s.publish(ctx, &events.SidecarWriteFailed{
		BaseEvent: events.NewBaseEvent(events.EventSidecarWriteFailed, events.EntityMovie, m.ID),
		MovieID:   m.ID, Path: path, Dialect: string(d), Reason: err.Error(),
	})
}

func (s *Syncer) publish(ctx context.Context, e events.Event) {
	if s.bus == nil {
		return
	}
	_ = s.bus.Publish(ctx, e)
}
