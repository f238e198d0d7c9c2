package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/blackwell-systems/uvpick/internal/search"
)

const fetchedAtKey = "fetched_at"

// ReplaceIndex replaces the cached index wholesale with the given records,
// preserving their delivered order, and stamps the fetch time.
func (s *Store) ReplaceIndex(records []search.Record, fetchedAt time.Time) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM packages"); err != nil {
		return fmt.Errorf("failed to clear index cache: %w", err)
	}

	stmt, err := tx.Prepare("INSERT INTO packages (rank, project, download_count) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range records {
		if _, err := stmt.Exec(i, r.Project, r.DownloadCount); err != nil {
			return fmt.Errorf("failed to insert package %s: %w", r.Project, err)
		}
	}

	if _, err := tx.Exec(
		"INSERT OR REPLACE INTO meta (key, value) VALUES (?, ?)",
		fetchedAtKey, fetchedAt.Format(time.RFC3339),
	); err != nil {
		return fmt.Errorf("failed to record fetch time: %w", err)
	}

	return tx.Commit()
}

// ListIndex returns the cached index in delivered order.
func (s *Store) ListIndex() ([]search.Record, error) {
	rows, err := s.db.Query("SELECT project, download_count FROM packages ORDER BY rank")
	if err != nil {
		return nil, fmt.Errorf("failed to read index cache: %w", err)
	}
	defer rows.Close()

	var records []search.Record
	for rows.Next() {
		var r search.Record
		if err := rows.Scan(&r.Project, &r.DownloadCount); err != nil {
			return nil, fmt.Errorf("failed to scan package row: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// FetchedAt returns when the cached index was fetched. A zero time with no
// error means the cache has never been populated.
func (s *Store) FetchedAt() (time.Time, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM meta WHERE key = ?", fetchedAtKey).Scan(&value)
	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to read fetch time: %w", err)
	}

	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse fetch time: %w", err)
	}
	return t, nil
}
