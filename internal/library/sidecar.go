package library

import (
	"fmt"
	"time"
)

// SidecarsFor returns the sidecar files tracked for a movie.
func (s *Store) SidecarsFor(movieID int64) ([]Sidecar, error) {
	rows, err := s.db.Query(`
		SELECT id, movie_id, path, dialect, written_at
		FROM sidecar_files WHERE movie_id = ? ORDER BY path`, movieID)
	if err != nil {
		return nil, fmt.Errorf("list sidecars for movie %d: %w", movieID, err)
	}
	defer rows.Close()

	var sidecars []Sidecar
	for rows.Next() {
		var sc Sidecar
		if err := rows.Scan(&sc.ID, &sc.MovieID, &sc.Path, &sc.Dialect, &sc.WrittenAt); err != nil {
			return nil, fmt.Errorf("scan sidecar: %w", err)
		}
		sidecars = append(sidecars, sc)
	}
	return sidecars, rows.Err()
}

// ReplaceSidecars swaps a movie's tracked sidecar set for the given one in
// a single transaction. WrittenAt is stamped on every row.
func (s *Store) ReplaceSidecars(movieID int64, sidecars []Sidecar) error {
	tx, err := s.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.tx.Exec(`DELETE FROM sidecar_files WHERE movie_id = ?`, movieID); err != nil {
		return fmt.Errorf("clear sidecars for movie %d: %w", movieID, mapSQLiteError(err))
	}
	now := time.Now()
	for _, sc := range sidecars {
		_, err := tx.tx.Exec(`
			INSERT INTO sidecar_files (movie_id, path, dialect, written_at)
			VALUES (?, ?, ?, ?)`, movieID, sc.Path, sc.Dialect, now)
		if err != nil {
			return fmt.Errorf("insert sidecar %s: %w", sc.Path, mapSQLiteError(err))
		}
	}
	return tx.Commit()
}
