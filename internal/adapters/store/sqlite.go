package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unblinkingbot/internal/core/domain"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

var ErrNotFound = errors.New("snapshot not found")

// SQLite is a key-value store over a single table, queried by key prefix.
type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.init(); err != nil {
		_ = db.Close()
		return nil, err
	}

	log.Debug().Str("path", path).Msg("opened snapshot store")

	return s, nil
}

func (s *SQLite) init() error {
	stmts := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		`CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("init store %q: %w", stmt, err)
		}
	}
	return nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

// GetByPrefix returns the records under prefix in ascending key order. Values that do not
// decode are skipped.
func (s *SQLite) GetByPrefix(ctx context.Context, prefix string) ([]domain.Snapshot, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT key, value FROM kv WHERE substr(key, 1, length(?1)) = ?1 ORDER BY key`, prefix)
	if err != nil {
		return nil, fmt.Errorf("%w: query prefix %q: %w", domain.ErrLookup, prefix, err)
	}
	defer rows.Close()

	var snapshots []domain.Snapshot
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("%w: scan row: %w", domain.ErrLookup, err)
		}

		var snapshot domain.Snapshot
		if err := json.Unmarshal([]byte(value), &snapshot); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("skipping undecodable record")
			continue
		}
		snapshot.Key = key
		snapshots = append(snapshots, snapshot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate rows: %w", domain.ErrLookup, err)
	}

	return snapshots, nil
}

// Put stores snapshot under the snapshot namespace, keyed by its name.
func (s *SQLite) Put(ctx context.Context, snapshot domain.Snapshot) error {
	if snapshot.Name == "" {
		return errors.New("snapshot name is empty")
	}

	value, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		domain.SnapshotPrefix+snapshot.Name, string(value))
	if err != nil {
		return fmt.Errorf("put snapshot %q: %w", snapshot.Name, err)
	}

	return nil
}

func (s *SQLite) Delete(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, domain.SnapshotPrefix+name)
	if err != nil {
		return fmt.Errorf("delete snapshot %q: %w", name, err)
	}

	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return fmt.Errorf("delete snapshot %q: %w", name, ErrNotFound)
	}

	return nil
}
