package library

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/vmunix/nfokit/internal/migrations"
	"github.com/vmunix/nfokit/pkg/nfo"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:?_pragma=foreign_keys(1)")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := migrations.Apply(db); err != nil {
		t.Fatalf("apply schema: %v", err)
	}
	return db
}

func testMovie() *Movie {
	return &Movie{
		Title:         "Heat",
		OriginalTitle: "Heat",
		Year:          1995,
		Plot:          "A group of high-end professional thieves start to feel the heat.",
		RuntimeMin:    170,
		Certification: "R",
		ReleaseDate:   "1995-12-15",
		Languages:     "English, Spanish",
		MediaFile:     "/movies/Heat (1995)/Heat (1995).mkv",
		IDs:           map[string]any{"imdb": "tt0113277", "tmdb": 949},
		Ratings: map[string]nfo.Rating{
			"imdb": {ID: "imdb", Value: 8.3, Votes: 650000, Max: 10},
		},
		Artwork: map[string][]string{
			ArtPoster: {"https://img.example/heat-poster.jpg"},
			ArtFanart: {"https://img.example/heat-fanart.jpg"},
		},
		Genres:  []string{"Crime", "Drama"},
		Studios: []string{"Regency Enterprises", "Forward Pass"},
		Actors: []nfo.Person{
			{Name: "Al Pacino", Role: "Lt. Vincent Hanna", TmdbID: 1158},
			{Name: "Robert De Niro", Role: "Neil McCauley", TmdbID: 380},
		},
		Directors: []nfo.Person{{Name: "Michael Mann", TmdbID: 638}},
	}
}
