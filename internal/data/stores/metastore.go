// Package stores provides SQLite-backed persistence for hexbench's
// per-file metadata and recent-file history.
package stores

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/colonyops/hexbench/internal/core/geom"
	"github.com/colonyops/hexbench/internal/core/session"
	"github.com/colonyops/hexbench/internal/data/db"
)

// MetaStore persists a file's named regions, perspectives and bookmarks.
// Rows are keyed by file path plus the session's own collection keys, so
// a reload hands back the same keys the previous run used.
type MetaStore struct {
	db *db.DB
}

// NewMetaStore creates a new SQLite-backed metadata store.
func NewMetaStore(db *db.DB) *MetaStore {
	return &MetaStore{db: db}
}

// Save replaces the stored metadata for filePath with the session's
// current collections. Runs in a single transaction so a failed write
// never leaves half the old and half the new state.
func (s *MetaStore) Save(ctx context.Context, filePath string, m *session.Meta) error {
	snap := m.Snapshot()

	return s.db.WithTx(ctx, func(tx *sql.Tx) error {
		// Regions cascade to perspectives via the FK.
		if _, err := tx.ExecContext(ctx, `DELETE FROM named_regions WHERE file_path = ?`, filePath); err != nil {
			return fmt.Errorf("failed to clear regions: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM bookmarks WHERE file_path = ?`, filePath); err != nil {
			return fmt.Errorf("failed to clear bookmarks: %w", err)
		}

		for key, r := range snap.Regions {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO named_regions (file_path, region_key, name, descr, begin_off, end_off)
				VALUES (?, ?, ?, ?, ?, ?)`,
				filePath, int64(key), r.Name, r.Desc, int64(r.Region.Begin), int64(r.Region.End),
			)
			if err != nil {
				return fmt.Errorf("failed to save region %q: %w", r.Name, err)
			}
		}

		for key, p := range snap.Perspectives {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO named_perspectives (file_path, perspective_key, region_key, name, cols, flip_row_order)
				VALUES (?, ?, ?, ?, ?, ?)`,
				filePath, int64(key), int64(p.Region), p.Name, int64(p.Cols), boolToInt(p.FlipRowOrder),
			)
			if err != nil {
				return fmt.Errorf("failed to save perspective %q: %w", p.Name, err)
			}
		}

		for key, b := range snap.Bookmarks {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO bookmarks (file_path, bookmark_key, name, byte_off)
				VALUES (?, ?, ?, ?)`,
				filePath, int64(key), b.Name, int64(b.Offset),
			)
			if err != nil {
				return fmt.Errorf("failed to save bookmark %q: %w", b.Name, err)
			}
		}

		return nil
	})
}

// Load returns the stored metadata for filePath. A path with no stored
// rows yields empty collections, not an error.
func (s *MetaStore) Load(ctx context.Context, filePath string) (*session.Meta, error) {
	snap := session.Snapshot{
		Regions:      map[session.RegionKey]session.NamedRegion{},
		Perspectives: map[session.PerspectiveKey]session.NamedPerspective{},
		Bookmarks:    map[session.BookmarkKey]session.Bookmark{},
	}

	rows, err := s.db.Conn().QueryContext(ctx, `
		SELECT region_key, name, descr, begin_off, end_off
		FROM named_regions WHERE file_path = ?`, filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load regions: %w", err)
	}
	for rows.Next() {
		var (
			key              int64
			name, desc       string
			beginOff, endOff int64
		)
		if err := rows.Scan(&key, &name, &desc, &beginOff, &endOff); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("failed to scan region: %w", err)
		}
		snap.Regions[session.RegionKey(key)] = session.NamedRegion{
			Name:   name,
			Desc:   desc,
			Region: geom.Region{Begin: uint64(beginOff), End: uint64(endOff)},
		}
	}
	if err := rows.Close(); err != nil {
		return nil, fmt.Errorf("failed to read regions: %w", err)
	}

	rows, err = s.db.Conn().QueryContext(ctx, `
		SELECT perspective_key, region_key, name, cols, flip_row_order
		FROM named_perspectives WHERE file_path = ?`, filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load perspectives: %w", err)
	}
	for rows.Next() {
		var (
			key, regionKey int64
			name           string
			cols, flip     int64
		)
		if err := rows.Scan(&key, &regionKey, &name, &cols, &flip); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("failed to scan perspective: %w", err)
		}
		snap.Perspectives[session.PerspectiveKey(key)] = session.NamedPerspective{
			Name:         name,
			Region:       session.RegionKey(regionKey),
			Cols:         uint64(cols),
			FlipRowOrder: flip != 0,
		}
	}
	if err := rows.Close(); err != nil {
		return nil, fmt.Errorf("failed to read perspectives: %w", err)
	}

	rows, err = s.db.Conn().QueryContext(ctx, `
		SELECT bookmark_key, name, byte_off
		FROM bookmarks WHERE file_path = ?`, filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load bookmarks: %w", err)
	}
	for rows.Next() {
		var (
			key, off int64
			name     string
		)
		if err := rows.Scan(&key, &name, &off); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("failed to scan bookmark: %w", err)
		}
		snap.Bookmarks[session.BookmarkKey(key)] = session.Bookmark{
			Name:   name,
			Offset: uint64(off),
		}
	}
	if err := rows.Close(); err != nil {
		return nil, fmt.Errorf("failed to read bookmarks: %w", err)
	}

	return session.MetaFromSnapshot(snap), nil
}

// Forget drops all stored metadata for filePath.
func (s *MetaStore) Forget(ctx context.Context, filePath string) error {
	return s.db.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM named_regions WHERE file_path = ?`, filePath); err != nil {
			return fmt.Errorf("failed to delete regions: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM bookmarks WHERE file_path = ?`, filePath); err != nil {
			return fmt.Errorf("failed to delete bookmarks: %w", err)
		}
		return nil
	})
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
