package syncer_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vmunix/nfokit/internal/library"
	"github.com/vmunix/nfokit/internal/syncer"
	"github.com/vmunix/nfokit/internal/syncer/mocks"
)

const heatNfo = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<movie>
  <title>Heat</title>
  <year>1995</year>
  <uniqueid type="imdb">tt0113277</uniqueid>
</movie>
`

func writeMovieDir(t *testing.T, root, folder, video, nfoName string) string {
	t.Helper()
	dir := filepath.Join(root, folder)
	require.NoError(t, os.MkdirAll(dir, 0755))
	videoPath := filepath.Join(dir, video)
	require.NoError(t, os.WriteFile(videoPath, []byte("x"), 0644))
	if nfoName != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, nfoName), []byte(heatNfo), 0644))
	}
	return videoPath
}

func TestScan_AddsNewMovie(t *testing.T) {
	ctrl := gomock.NewController(t)
	root := t.TempDir()
	videoPath := writeMovieDir(t, root, "Heat (1995)", "Heat (1995).mkv", "Heat (1995).nfo")

	store := mocks.NewMockMovieStore(ctrl)
	store.EXPECT().GetMovieByMediaFile(videoPath).Return(nil, nil)
	store.EXPECT().AddMovie(gomock.Any()).DoAndReturn(func(m *library.Movie) error {
		assert.Equal(t, "Heat", m.Title)
		assert.Equal(t, 1995, m.Year)
		assert.Equal(t, videoPath, m.MediaFile)
		assert.Equal(t, "tt0113277", m.IDs["imdb"])
		return nil
	})

	s, err := syncer.New(store, nil, syncer.Options{}, testLogger())
	require.NoError(t, err)

	stats, err := s.Scan(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Found)
	assert.Equal(t, 1, stats.Added)
	assert.Equal(t, 0, stats.Failed)
}

func TestScan_UpdatesExistingMovie(t *testing.T) {
	ctrl := gomock.NewController(t)
	root := t.TempDir()
	videoPath := writeMovieDir(t, root, "Heat (1995)", "Heat (1995).mkv", "Heat (1995).nfo")

	existing := &library.Movie{ID: 9, Title: "Heat (old)", MediaFile: videoPath}
	store := mocks.NewMockMovieStore(ctrl)
	store.EXPECT().GetMovieByMediaFile(videoPath).Return(existing, nil)
	store.EXPECT().UpdateMovie(gomock.Any()).DoAndReturn(func(m *library.Movie) error {
		assert.Equal(t, int64(9), m.ID)
		assert.Equal(t, "Heat", m.Title)
		return nil
	})

	s, err := syncer.New(store, nil, syncer.Options{}, testLogger())
	require.NoError(t, err)

	stats, err := s.Scan(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Updated)
}

func TestScan_MovieNfoConvention(t *testing.T) {
	ctrl := gomock.NewController(t)
	root := t.TempDir()
	videoPath := writeMovieDir(t, root, "Heat (1995)", "Heat.1995.1080p.BluRay.mkv", "movie.nfo")

	store := mocks.NewMockMovieStore(ctrl)
	store.EXPECT().GetMovieByMediaFile(videoPath).Return(nil, nil)
	store.EXPECT().AddMovie(gomock.Any()).Return(nil)

	s, err := syncer.New(store, nil, syncer.Options{}, testLogger())
	require.NoError(t, err)

	stats, err := s.Scan(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Added)
}

func TestScan_FuzzyPairing(t *testing.T) {
	ctrl := gomock.NewController(t)
	root := t.TempDir()
	// Lone sidecar whose name differs slightly from the video.
	videoPath := writeMovieDir(t, root, "Heat (1995)", "Heat (1995).mkv", "Heat 1995.nfo")

	store := mocks.NewMockMovieStore(ctrl)
	store.EXPECT().GetMovieByMediaFile(videoPath).Return(nil, nil)
	store.EXPECT().AddMovie(gomock.Any()).Return(nil)

	s, err := syncer.New(store, nil, syncer.Options{}, testLogger())
	require.NoError(t, err)

	stats, err := s.Scan(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Added)
}

func TestScan_VideoWithoutSidecarSkipped(t *testing.T) {
	ctrl := gomock.NewController(t)
	root := t.TempDir()
	writeMovieDir(t, root, "Unknown (2020)", "Unknown (2020).mkv", "")

	store := mocks.NewMockMovieStore(ctrl)

	s, err := syncer.New(store, nil, syncer.Options{}, testLogger())
	require.NoError(t, err)

	stats, err := s.Scan(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Found)
	assert.Equal(t, 0, stats.Added)
	assert.Equal(t, 0, stats.Failed)
}

func TestScan_SampleFilesIgnored(t *testing.T) {
	ctrl := gomock.NewController(t)
	root := t.TempDir()
	videoPath := writeMovieDir(t, root, "Heat (1995)", "Heat (1995).mkv", "Heat (1995).nfo")
	sample := filepath.Join(filepath.Dir(videoPath), "heat-sample.mkv")
	require.NoError(t, os.WriteFile(sample, []byte("x"), 0644))

	store := mocks.NewMockMovieStore(ctrl)
	store.EXPECT().GetMovieByMediaFile(videoPath).Return(nil, nil)
	store.EXPECT().AddMovie(gomock.Any()).Return(nil)

	s, err := syncer.New(store, nil, syncer.Options{}, testLogger())
	require.NoError(t, err)

	stats, err := s.Scan(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Found)
}

func TestScan_BlankTitleCountsFailed(t *testing.T) {
	ctrl := gomock.NewController(t)
	root := t.TempDir()
	dir := filepath.Join(root, "Bad (2020)")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Bad (2020).mkv"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Bad (2020).nfo"),
		[]byte("<movie><year>2020</year></movie>"), 0644))

	store := mocks.NewMockMovieStore(ctrl)

	s, err := syncer.New(store, nil, syncer.Options{}, testLogger())
	require.NoError(t, err)

	stats, err := s.Scan(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Failed)
}

func TestScan_ImportsCollectionSidecar(t *testing.T) {
	ctrl := gomock.NewController(t)
	root := t.TempDir()
	dir := filepath.Join(root, "Alien Collection")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "collection.nfo"), []byte(`<collection>
  <title>Alien Collection</title>
  <plot>Every xenomorph film.</plot>
  <tmdbcollectionid>8091</tmdbcollectionid>
</collection>`), 0644))

	store := mocks.NewMockMovieStore(ctrl)
	store.EXPECT().UpsertMovieSet(gomock.Any()).DoAndReturn(func(set *library.MovieSet) error {
		assert.Equal(t, "Alien Collection", set.Name)
		assert.Equal(t, "Every xenomorph film.", set.Overview)
		assert.Equal(t, 8091, set.TmdbID)
		return nil
	})

	s, err := syncer.New(store, nil, syncer.Options{}, testLogger())
	require.NoError(t, err)

	stats, err := s.Scan(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Sets)
	assert.Equal(t, 0, stats.Found)
	assert.Equal(t, 0, stats.Failed)
}

func TestScan_CollectionSidecarNeverPairsWithVideo(t *testing.T) {
	ctrl := gomock.NewController(t)
	root := t.TempDir()
	// A lone collection.nfo next to a video must not be mistaken for the
	// video's own sidecar.
	dir := filepath.Join(root, "Alien (1979)")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Alien (1979).mkv"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "collection.nfo"),
		[]byte(`<collection><title>Alien Collection</title></collection>`), 0644))

	store := mocks.NewMockMovieStore(ctrl)
	store.EXPECT().UpsertMovieSet(gomock.Any()).Return(nil)

	s, err := syncer.New(store, nil, syncer.Options{}, testLogger())
	require.NoError(t, err)

	stats, err := s.Scan(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Sets)
	assert.Equal(t, 1, stats.Found)
	assert.Equal(t, 0, stats.Added, "video has no sidecar of its own")
}

func TestIsVideoFile(t *testing.T) {
	assert.True(t, syncer.IsVideoFile("/movies/a.mkv"))
	assert.True(t, syncer.IsVideoFile("/movies/a.MP4"))
	assert.False(t, syncer.IsVideoFile("/movies/a.nfo"))
	assert.False(t, syncer.IsVideoFile("/movies/a.srt"))
}
