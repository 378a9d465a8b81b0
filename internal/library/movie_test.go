package library

import (
	"errors"
	"testing"
)

func TestAddGetMovie(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	m := testMovie()
	if err := store.AddMovie(m); err != nil {
		t.Fatalf("add movie: %v", err)
	}
	if m.ID == 0 {
		t.Fatal("expected ID to be set")
	}
	if m.AddedAt.IsZero() || m.UpdatedAt.IsZero() {
		t.Fatal("expected timestamps to be set")
	}

	got, err := store.GetMovie(m.ID)
	if err != nil {
		t.Fatalf("get movie: %v", err)
	}
	if got.Title != "Heat" || got.Year != 1995 {
		t.Errorf("got %q (%d), want Heat (1995)", got.Title, got.Year)
	}
	if got.Ratings["imdb"].Votes != 650000 {
		t.Errorf("imdb votes = %d, want 650000", got.Ratings["imdb"].Votes)
	}
	if len(got.Actors) != 2 || got.Actors[0].Name != "Al Pacino" {
		t.Errorf("unexpected actors: %+v", got.Actors)
	}
	if got.Artwork[ArtPoster][0] != "https://img.example/heat-poster.jpg" {
		t.Errorf("unexpected poster: %v", got.Artwork[ArtPoster])
	}
}

func TestGetMovieNotFound(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	_, err := store.GetMovie(99)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestLoadedIDsAreInts(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	m := testMovie()
	m.IDs["tmdb"] = 1234567
	if err := store.AddMovie(m); err != nil {
		t.Fatalf("add movie: %v", err)
	}

	got, err := store.GetMovie(m.ID)
	if err != nil {
		t.Fatalf("get movie: %v", err)
	}
	// JSON decoding yields float64; the store must hand back ints so the
	// writer never renders ids in exponent notation.
	if v, ok := got.IDs["tmdb"].(int); !ok || v != 1234567 {
		t.Errorf("tmdb id = %#v, want int 1234567", got.IDs["tmdb"])
	}
	if v, ok := got.IDs["imdb"].(string); !ok || v != "tt0113277" {
		t.Errorf("imdb id = %#v, want string tt0113277", got.IDs["imdb"])
	}
}

func TestGetMovieByMediaFile(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	m := testMovie()
	if err := store.AddMovie(m); err != nil {
		t.Fatalf("add movie: %v", err)
	}

	got, err := store.GetMovieByMediaFile(m.MediaFile)
	if err != nil {
		t.Fatalf("get by media file: %v", err)
	}
	if got == nil || got.ID != m.ID {
		t.Fatalf("expected movie %d, got %+v", m.ID, got)
	}

	missing, err := store.GetMovieByMediaFile("/movies/nope.mkv")
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for unknown media file, got %+v", missing)
	}
}

func TestDuplicateMediaFileRejected(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	m := testMovie()
	if err := store.AddMovie(m); err != nil {
		t.Fatalf("add movie: %v", err)
	}
	dup := testMovie()
	err := store.AddMovie(dup)
	if !errors.Is(err, ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}
}

func TestUpdateMovie(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	m := testMovie()
	if err := store.AddMovie(m); err != nil {
		t.Fatalf("add movie: %v", err)
	}

	m.Plot = "Updated plot."
	m.Watched = true
	m.PlayCount = 2
	m.Genres = append(m.Genres, "Thriller")
	if err := store.UpdateMovie(m); err != nil {
		t.Fatalf("update movie: %v", err)
	}

	got, err := store.GetMovie(m.ID)
	if err != nil {
		t.Fatalf("get movie: %v", err)
	}
	if got.Plot != "Updated plot." || !got.Watched || got.PlayCount != 2 {
		t.Errorf("update not persisted: %+v", got)
	}
	if len(got.Genres) != 3 {
		t.Errorf("genres = %v, want 3 entries", got.Genres)
	}
}

func TestUpdateMissingMovie(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	m := testMovie()
	m.ID = 42
	if err := store.UpdateMovie(m); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListMoviesOrdered(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	for _, title := range []string{"Zodiac", "Alien", "Heat"} {
		m := testMovie()
		m.Title = title
		m.MediaFile = "/movies/" + title + ".mkv"
		if err := store.AddMovie(m); err != nil {
			t.Fatalf("add %s: %v", title, err)
		}
	}

	movies, err := store.ListMovies()
	if err != nil {
		t.Fatalf("list movies: %v", err)
	}
	if len(movies) != 3 {
		t.Fatalf("got %d movies, want 3", len(movies))
	}
	for i, want := range []string{"Alien", "Heat", "Zodiac"} {
		if movies[i].Title != want {
			t.Errorf("movies[%d] = %q, want %q", i, movies[i].Title, want)
		}
	}
}

func TestDeleteMovieCascadesSidecars(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	m := testMovie()
	if err := store.AddMovie(m); err != nil {
		t.Fatalf("add movie: %v", err)
	}
	err := store.ReplaceSidecars(m.ID, []Sidecar{
		{MovieID: m.ID, Path: "/movies/Heat (1995)/Heat (1995).nfo", Dialect: "kodi"},
	})
	if err != nil {
		t.Fatalf("replace sidecars: %v", err)
	}

	if err := store.DeleteMovie(m.ID); err != nil {
		t.Fatalf("delete movie: %v", err)
	}
	if _, err := store.GetMovie(m.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	sidecars, err := store.SidecarsFor(m.ID)
	if err != nil {
		t.Fatalf("list sidecars: %v", err)
	}
	if len(sidecars) != 0 {
		t.Errorf("expected cascade delete of sidecars, got %d", len(sidecars))
	}
}

func TestReplaceSidecars(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	m := testMovie()
	if err := store.AddMovie(m); err != nil {
		t.Fatalf("add movie: %v", err)
	}

	first := []Sidecar{
		{MovieID: m.ID, Path: "/movies/a.nfo", Dialect: "kodi"},
		{MovieID: m.ID, Path: "/movies/b.nfo", Dialect: "emby"},
	}
	if err := store.ReplaceSidecars(m.ID, first); err != nil {
		t.Fatalf("replace sidecars: %v", err)
	}

	second := []Sidecar{
		{MovieID: m.ID, Path: "/movies/b.nfo", Dialect: "jellyfin"},
	}
	if err := store.ReplaceSidecars(m.ID, second); err != nil {
		t.Fatalf("replace sidecars again: %v", err)
	}

	got, err := store.SidecarsFor(m.ID)
	if err != nil {
		t.Fatalf("list sidecars: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d sidecars, want 1", len(got))
	}
	if got[0].Path != "/movies/b.nfo" || got[0].Dialect != "jellyfin" {
		t.Errorf("unexpected sidecar: %+v", got[0])
	}
	if got[0].WrittenAt.IsZero() {
		t.Error("expected written_at to be stamped")
	}
}

func TestTransactionRollback(t *testing.T) {
	db := setupTestDB(t)
	store := NewStore(db)

	tx, err := store.Begin()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	m := testMovie()
	if err := tx.AddMovie(m); err != nil {
		t.Fatalf("add in tx: %v", err)
	}
	if err := tx.Rollback(); err != nil {
		t.Fatalf("rollback: %v", err)
	}

	if _, err := store.GetMovie(m.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after rollback, got %v", err)
	}
}
