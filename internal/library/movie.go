package library

import (
	"encoding/json"
	"fmt"
	"time"
)

const movieColumns = `id, title, original_title, sort_title, year, plot, outline, tagline,
	runtime_min, certification, release_date, top250, watched, play_count, languages,
	source, edition, original_filename, user_note, date_added, locked, media_file,
	set_name, set_overview, set_tmdb_id, ids_json, ratings_json, genres_json,
	countries_json, studios_json, tags_json, showlinks_json, trailers_json,
	artwork_json, actors_json, directors_json, credits_json, producers_json,
	added_at, updated_at`

func addMovie(q querier, m *Movie) error {
	now := time.Now()
	result, err := q.Exec(`
		INSERT INTO movies (title, original_title, sort_title, year, plot, outline, tagline,
			runtime_min, certification, release_date, top250, watched, play_count, languages,
			source, edition, original_filename, user_note, date_added, locked, media_file,
			set_name, set_overview, set_tmdb_id, ids_json, ratings_json, genres_json,
			countries_json, studios_json, tags_json, showlinks_json, trailers_json,
			artwork_json, actors_json, directors_json, credits_json, producers_json,
			added_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.Title, m.OriginalTitle, m.SortTitle, m.Year, m.Plot, m.Outline, m.Tagline,
		m.RuntimeMin, m.Certification, m.ReleaseDate, m.Top250, m.Watched, m.PlayCount, m.Languages,
		m.Source, m.Edition, m.OriginalFilename, m.Note, m.DateAdded, m.Locked, m.MediaFile,
		m.SetName, m.SetOverview, m.SetTmdbID, toJSON(m.IDs), toJSON(m.Ratings), toJSON(m.Genres),
		toJSON(m.Countries), toJSON(m.Studios), toJSON(m.Tags), toJSON(m.ShowLinks), toJSON(m.Trailers),
		toJSON(m.Artwork), toJSON(m.Actors), toJSON(m.Directors), toJSON(m.Credits), toJSON(m.Producers),
		now, now,
	)
	if err != nil {
		return fmt.Errorf("insert movie: %w", mapSQLiteError(err))
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}
	m.ID = id
	m.AddedAt = now
	m.UpdatedAt = now
	return nil
}

// AddMovie inserts a new movie. Sets ID, AddedAt, and UpdatedAt on the struct.
func (s *Store) AddMovie(m *Movie) error { return addMovie(s.db, m) }

// AddMovie inserts a new movie within a transaction.
func (t *Tx) AddMovie(m *Movie) error { return addMovie(t.tx, m) }

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMovie(row rowScanner) (*Movie, error) {
	m := &Movie{}
	var ids, ratings, genres, countries, studios, tags, showlinks, trailers string
	var artwork, actors, directors, credits, producers string
	err := row.Scan(
		&m.ID, &m.Title, &m.OriginalTitle, &m.SortTitle, &m.Year, &m.Plot, &m.Outline, &m.Tagline,
		&m.RuntimeMin, &m.Certification, &m.ReleaseDate, &m.Top250, &m.Watched, &m.PlayCount, &m.Languages,
		&m.Source, &m.Edition, &m.OriginalFilename, &m.Note, &m.DateAdded, &m.Locked, &m.MediaFile,
		&m.SetName, &m.SetOverview, &m.SetTmdbID, &ids, &ratings, &genres,
		&countries, &studios, &tags, &showlinks, &trailers,
		&artwork, &actors, &directors, &credits, &producers,
		&m.AddedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	fromJSON(ids, &m.IDs)
	fromJSON(ratings, &m.Ratings)
	fromJSON(genres, &m.Genres)
	fromJSON(countries, &m.Countries)
	fromJSON(studios, &m.Studios)
	fromJSON(tags, &m.Tags)
	fromJSON(showlinks, &m.ShowLinks)
	fromJSON(trailers, &m.Trailers)
	fromJSON(artwork, &m.Artwork)
	fromJSON(actors, &m.Actors)
	fromJSON(directors, &m.Directors)
	fromJSON(credits, &m.Credits)
	fromJSON(producers, &m.Producers)
	normalizeIDs(m.IDs)
	return m, nil
}

func getMovie(q querier, id int64) (*Movie, error) {
	m, err := scanMovie(q.QueryRow(`SELECT `+movieColumns+` FROM movies WHERE id = ?`, id))
	if err != nil {
		return nil, fmt.Errorf("get movie %d: %w", id, mapSQLiteError(err))
	}
	return m, nil
}

// GetMovie retrieves a movie by ID. Returns ErrNotFound if it doesn't exist.
func (s *Store) GetMovie(id int64) (*Movie, error) { return getMovie(s.db, id) }

// GetMovie retrieves a movie by ID within a transaction.
func (t *Tx) GetMovie(id int64) (*Movie, error) { return getMovie(t.tx, id) }

// GetMovieByMediaFile finds the movie owning the given video file path.
// Returns nil, nil if not found.
func (s *Store) GetMovieByMediaFile(path string) (*Movie, error) {
	m, err := scanMovie(s.db.QueryRow(`SELECT `+movieColumns+` FROM movies WHERE media_file = ?`, path))
	if err != nil {
		if mapSQLiteError(err) == ErrNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("get movie by media file: %w", mapSQLiteError(err))
	}
	return m, nil
}

// ListMovies returns all movies ordered by title.
func (s *Store) ListMovies() ([]*Movie, error) {
	rows, err := s.db.Query(`SELECT ` + movieColumns + ` FROM movies ORDER BY title, year`)
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	defer rows.Close()

	var movies []*Movie
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movie: %w", err)
		}
		movies = append(movies, m)
	}
	return movies, rows.Err()
}

func updateMovie(q querier, m *Movie) error {
	m.UpdatedAt = time.Now()
	result, err := q.Exec(`
		UPDATE movies SET title = ?, original_title = ?, sort_title = ?, year = ?, plot = ?,
			outline = ?, tagline = ?, runtime_min = ?, certification = ?, release_date = ?,
			top250 = ?, watched = ?, play_count = ?, languages = ?, source = ?, edition = ?,
			original_filename = ?, user_note = ?, date_added = ?, locked = ?, media_file = ?,
			set_name = ?, set_overview = ?, set_tmdb_id = ?, ids_json = ?, ratings_json = ?,
			genres_json = ?, countries_json = ?, studios_json = ?, tags_json = ?,
			showlinks_json = ?, trailers_json = ?, artwork_json = ?, actors_json = ?,
			directors_json = ?, credits_json = ?, producers_json = ?, updated_at = ?
		WHERE id = ?`,
		m.Title, m.OriginalTitle, m.SortTitle, m.Year, m.Plot,
		m.Outline, m.Tagline, m.RuntimeMin, m.Certification, m.ReleaseDate,
		m.Top250, m.Watched, m.PlayCount, m.Languages, m.Source, m.Edition,
		m.OriginalFilename, m.Note, m.DateAdded, m.Locked, m.MediaFile,
		m.SetName, m.SetOverview, m.SetTmdbID, toJSON(m.IDs), toJSON(m.Ratings),
		toJSON(m.Genres), toJSON(m.Countries), toJSON(m.Studios), toJSON(m.Tags),
		toJSON(m.ShowLinks), toJSON(m.Trailers), toJSON(m.Artwork), toJSON(m.Actors),
		toJSON(m.Directors), toJSON(m.Credits), toJSON(m.Producers), m.UpdatedAt,
		m.ID,
	)
	if err != nil {
		return fmt.Errorf("update movie %d: %w", m.ID, mapSQLiteError(err))
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateMovie persists every field of the movie. Returns ErrNotFound when
// the row is gone.
func (s *Store) UpdateMovie(m *Movie) error { return updateMovie(s.db, m) }

// UpdateMovie persists the movie within a transaction.
func (t *Tx) UpdateMovie(m *Movie) error { return updateMovie(t.tx, m) }

// DeleteMovie removes a movie and, via cascade, its tracked sidecars.
func (s *Store) DeleteMovie(id int64) error {
	result, err := s.db.Exec(`DELETE FROM movies WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete movie %d: %w", id, mapSQLiteError(err))
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func toJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "null"
	}
	return string(b)
}

func fromJSON[T any](s string, out *T) {
	if s == "" {
		return
	}
	_ = json.Unmarshal([]byte(s), out)
}

// normalizeIDs undoes the JSON round trip turning integer ids into floats.
func normalizeIDs(ids map[string]any) {
	for k, v := range ids {
		if f, ok := v.(float64); ok && f == float64(int(f)) {
			ids[k] = int(f)
		}
	}
}
