package library

import (
	"fmt"
	"time"
)

const setColumns = `id, name, overview, tmdb_id, added_at, updated_at`

func scanMovieSet(row rowScanner) (*MovieSet, error) {
	set := &MovieSet{}
	err := row.Scan(&set.ID, &set.Name, &set.Overview, &set.TmdbID, &set.AddedAt, &set.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return set, nil
}

// GetMovieSetByName finds a movie set by its name. Returns nil, nil if not
// found.
func (s *Store) GetMovieSetByName(name string) (*MovieSet, error) {
	set, err := scanMovieSet(s.db.QueryRow(`SELECT `+setColumns+` FROM movie_sets WHERE name = ?`, name))
	if err != nil {
		if mapSQLiteError(err) == ErrNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("get movie set: %w", mapSQLiteError(err))
	}
	return set, nil
}

// ListMovieSets returns all movie sets ordered by name.
func (s *Store) ListMovieSets() ([]*MovieSet, error) {
	rows, err := s.db.Query(`SELECT ` + setColumns + ` FROM movie_sets ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list movie sets: %w", mapSQLiteError(err))
	}
	defer func() { _ = rows.Close() }()

	var sets []*MovieSet
	for rows.Next() {
		set, err := scanMovieSet(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movie set: %w", err)
		}
		sets = append(sets, set)
	}
	return sets, rows.Err()
}

// UpsertMovieSet inserts the set or, when one with the same name exists,
// refreshes its overview and collection id. Sets ID and timestamps on the
// struct.
func (s *Store) UpsertMovieSet(set *MovieSet) error {
	existing, err := s.GetMovieSetByName(set.Name)
	if err != nil {
		return err
	}
	now := time.Now()

	if existing == nil {
		result, err := s.db.Exec(`
			INSERT INTO movie_sets (name, overview, tmdb_id, added_at, updated_at)
			VALUES (?, ?, ?, ?, ?)`,
			set.Name, set.Overview, set.TmdbID, now, now,
		)
		if err != nil {
			return fmt.Errorf("insert movie set: %w", mapSQLiteError(err))
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("get last insert id: %w", err)
		}
		set.ID = id
		set.AddedAt = now
		set.UpdatedAt = now
		return nil
	}

	_, err = s.db.Exec(`
		UPDATE movie_sets SET overview = ?, tmdb_id = ?, updated_at = ? WHERE id = ?`,
		set.Overview, set.TmdbID, now, existing.ID,
	)
	if err != nil {
		return fmt.Errorf("update movie set: %w", mapSQLiteError(err))
	}
	set.ID = existing.ID
	set.AddedAt = existing.AddedAt
	set.UpdatedAt = now
	return nil
}
