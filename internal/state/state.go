// Package state persists per-artifact content hashes between runs so
// unchanged artifacts are not rewritten.
package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Store records the last written content hash for each artifact path.
// Use ":memory:" as the path for a throwaway in-memory store.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Open opens (or creates) the state database at dbPath.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open state database: %w", err)
	}

	store := &Store{db: db}
	if err := store.initialize(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize state schema: %w", err)
	}
	return store, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS artifacts (
		path TEXT PRIMARY KEY,
		hash TEXT NOT NULL,
		written_at INTEGER NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// ArtifactHash returns the recorded hash for path, or "" when the artifact
// has never been recorded.
func (s *Store) ArtifactHash(ctx context.Context, path string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var hash string
	err := s.db.QueryRowContext(ctx,
		"SELECT hash FROM artifacts WHERE path = ?", path,
	).Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("query artifact hash: %w", err)
	}
	return hash, nil
}

// RecordArtifact stores the hash for path, replacing any previous record.
func (s *Store) RecordArtifact(ctx context.Context, path, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO artifacts (path, hash, written_at) VALUES (?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET hash = excluded.hash, written_at = excluded.written_at`,
		path, hash, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("record artifact: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}
