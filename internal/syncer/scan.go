package syncer

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/vmunix/nfokit/internal/events"
	"github.com/vmunix/nfokit/internal/library"
	"github.com/vmunix/nfokit/internal/sidecar"
	"github.com/vmunix/nfokit/pkg/nfo"
)

var videoExtensions = map[string]bool{
	".mkv": true, ".mp4": true, ".m4v": true, ".avi": true,
	".mov": true, ".wmv": true, ".ts": true, ".webm": true,
}

// IsVideoFile reports whether the path has a known video extension.
func IsVideoFile(path string) bool {
	return videoExtensions[strings.ToLower(filepath.Ext(path))]
}

// ScanStats summarizes a library scan.
type ScanStats struct {
	Found   int // video files seen
	Added   int
	Updated int
	Sets    int // collection sidecars imported
	Failed  int
}

type scanResult int

const (
	scanSkipped scanResult = iota
	scanAdded
	scanUpdated
	scanFailed
)

// Scan walks the library root, pairs video files with their sidecars, and
// upserts the parsed metadata into the store. Videos without a readable
// sidecar are counted but left alone.
func (s *Syncer) Scan(ctx context.Context, root string) (ScanStats, error) {
	var stats ScanStats

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == sidecar.BackupDirName {
				return filepath.SkipDir
			}
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if !IsVideoFile(path) {
			if isCollectionSidecar(d.Name()) {
				if s.scanCollection(path) {
					stats.Sets++
				} else {
					stats.Failed++
				}
			}
			return nil
		}
		if strings.Contains(strings.ToLower(d.Name()), "sample") {
			return nil
		}

		stats.Found++
		switch s.scanVideo(path) {
		case scanAdded:
			stats.Added++
		case scanUpdated:
			stats.Updated++
		case scanFailed:
			stats.Failed++
		}
		return nil
	})
	if err != nil {
		return stats, err
	}

	s.publish(ctx, &events.ScanCompleted{
		BaseEvent: events.NewBaseEvent(events.EventScanCompleted, events.EntityScan, 0),
		Root:      root,
		Found:     stats.Found,
		Added:     stats.Added,
		Updated:   stats.Updated,
		Sets:      stats.Sets,
		Failed:    stats.Failed,
	})
	return stats, nil
}

// isCollectionSidecar matches the conventional file names for a movie set's
// own sidecar. These never belong to a single video.
func isCollectionSidecar(name string) bool {
	return strings.EqualFold(name, "collection.nfo") || strings.EqualFold(name, "set.nfo")
}

// scanCollection imports one collection-rooted sidecar into the set table.
func (s *Syncer) scanCollection(path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		s.log.Warn("cannot read collection sidecar", "path", path, "error", err)
		return false
	}
	rec, err := s.reader.Parse(data)
	if err != nil {
		s.log.Warn("cannot parse collection sidecar", "path", path, "error", err)
		return false
	}
	if rec.Kind != nfo.KindCollection {
		s.log.Warn("sidecar is not collection-rooted, skipping", "path", path)
		return false
	}

	set := library.SetFromRecord(rec)
	if set == nil {
		s.log.Warn("collection sidecar has no name, skipping", "path", path)
		return false
	}
	if err := s.store.UpsertMovieSet(set); err != nil {
		s.log.Error("upsert movie set failed", "path", path, "error", err)
		return false
	}
	return true
}

func (s *Syncer) scanVideo(path string) scanResult {
	nfoPath := s.findSidecarFor(path)
	if nfoPath == "" {
		return scanSkipped
	}

	data, err := os.ReadFile(nfoPath)
	if err != nil {
		s.log.Warn("cannot read sidecar", "path", nfoPath, "error", err)
		return scanFailed
	}
	rec, err := s.reader.Parse(data)
	if err != nil {
		s.log.Warn("cannot parse sidecar", "path", nfoPath, "error", err)
		return scanFailed
	}
	if !rec.Valid() {
		s.log.Warn("sidecar has no title, skipping", "path", nfoPath)
		return scanFailed
	}

	existing, err := s.store.GetMovieByMediaFile(path)
	if err != nil {
		s.log.Error("lookup failed", "path", path, "error", err)
		return scanFailed
	}
	if existing == nil {
		m := &library.Movie{MediaFile: path}
		library.ApplyRecord(m, rec)
		if err := s.store.AddMovie(m); err != nil {
			s.log.Error("add movie failed", "path", path, "error", err)
			return scanFailed
		}
		return scanAdded
	}

	library.ApplyRecord(existing, rec)
	if err := s.store.UpdateMovie(existing); err != nil {
		s.log.Error("update movie failed", "path", path, "error", err)
		return scanFailed
	}
	return scanUpdated
}

// findSidecarFor locates the sidecar belonging to a video file. An exact
// base-name match wins; otherwise a lone sidecar in the folder is accepted
// when its name is close enough to the video's.
func (s *Syncer) findSidecarFor(videoPath string) string {
	dir := filepath.Dir(videoPath)
	base := strings.TrimSuffix(filepath.Base(videoPath), filepath.Ext(videoPath))

	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}

	var nfos []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".nfo") {
			continue
		}
		if isCollectionSidecar(e.Name()) {
			continue
		}
		name := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		if strings.EqualFold(name, base) {
			return filepath.Join(dir, e.Name())
		}
		nfos = append(nfos, e.Name())
	}

	// The bare "movie.nfo" convention.
	for _, name := range nfos {
		if strings.EqualFold(name, "movie.nfo") {
			return filepath.Join(dir, name)
		}
	}

	if len(nfos) == 1 {
		name := strings.TrimSuffix(nfos[0], filepath.Ext(nfos[0]))
		if TitlesMatch(name, base, s.opts.MatchThreshold) {
			return filepath.Join(dir, nfos[0])
		}
	}
	return ""
}
