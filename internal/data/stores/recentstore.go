package stores

import (
	"context"
	"fmt"
	"time"

	"github.com/colonyops/hexbench/internal/data/db"
)

// RecentFile is one entry in the recent-files history.
type RecentFile struct {
	Path     string
	Cursor   uint64
	Cols     uint64
	OpenedAt time.Time
}

// RecentStore tracks recently opened files along with the cursor
// position and column count to restore on reopen.
type RecentStore struct {
	db *db.DB
}

// NewRecentStore creates a new SQLite-backed recent-files store.
func NewRecentStore(db *db.DB) *RecentStore {
	return &RecentStore{db: db}
}

// Touch records that path was opened now, creating or refreshing its entry.
func (s *RecentStore) Touch(ctx context.Context, path string, cursor, cols uint64) error {
	_, err := s.db.Conn().ExecContext(ctx, `
		INSERT INTO recent_files (path, cursor, cols, last_opened_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (path) DO UPDATE SET
			cursor = excluded.cursor,
			cols = excluded.cols,
			last_opened_at = excluded.last_opened_at`,
		path, int64(cursor), int64(cols), time.Now().UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("failed to touch recent file %q: %w", path, err)
	}
	return nil
}

// Get returns the stored entry for path. Returns a sql.ErrNoRows-wrapping
// error when the path has never been opened.
func (s *RecentStore) Get(ctx context.Context, path string) (RecentFile, error) {
	row := s.db.Conn().QueryRowContext(ctx, `
		SELECT path, cursor, cols, last_opened_at
		FROM recent_files WHERE path = ?`, path)

	var (
		rf                     RecentFile
		cursor, cols, openedAt int64
	)
	if err := row.Scan(&rf.Path, &cursor, &cols, &openedAt); err != nil {
		return RecentFile{}, fmt.Errorf("failed to get recent file %q: %w", path, err)
	}
	rf.Cursor = uint64(cursor)
	rf.Cols = uint64(cols)
	rf.OpenedAt = time.Unix(0, openedAt)
	return rf, nil
}

// List returns up to limit entries, most recently opened first.
// A limit of 0 or less returns everything.
func (s *RecentStore) List(ctx context.Context, limit int) ([]RecentFile, error) {
	query := `
		SELECT path, cursor, cols, last_opened_at
		FROM recent_files ORDER BY last_opened_at DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.Conn().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent files: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []RecentFile
	for rows.Next() {
		var (
			rf                     RecentFile
			cursor, cols, openedAt int64
		)
		if err := rows.Scan(&rf.Path, &cursor, &cols, &openedAt); err != nil {
			return nil, fmt.Errorf("failed to scan recent file: %w", err)
		}
		rf.Cursor = uint64(cursor)
		rf.Cols = uint64(cols)
		rf.OpenedAt = time.Unix(0, openedAt)
		out = append(out, rf)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read recent files: %w", err)
	}

	return out, nil
}

// Remove drops the entry for path. Removing an unknown path is a no-op.
func (s *RecentStore) Remove(ctx context.Context, path string) error {
	_, err := s.db.Conn().ExecContext(ctx, `DELETE FROM recent_files WHERE path = ?`, path)
	if err != nil {
		return fmt.Errorf("failed to remove recent file %q: %w", path, err)
	}
	return nil
}
