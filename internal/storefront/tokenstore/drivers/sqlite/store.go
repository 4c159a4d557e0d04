// Package sqlite persists the token in a local sqlite file.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aussiebroadwan/storefront/internal/storefront/tokenstore"
	_ "modernc.org/sqlite"
)

var _ tokenstore.Store = (*Store)(nil)

type Store struct {
	db  *sql.DB
	key string
}

// Open opens (creating if needed) the sqlite file at path and applies
// pending migrations. An empty key falls back to tokenstore.DefaultKey.
func Open(path, key string) (*Store, error) {
	if key == "" {
		key = tokenstore.DefaultKey
	}

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	s := &Store{db: db, key: key}
	if err := s.ApplyMigrations(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply token store migrations: %w", err)
	}

	return s, nil
}

func (s *Store) Get(ctx context.Context) (string, bool, error) {
	var token string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, s.key).Scan(&token)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return token, true, nil
}

func (s *Store) Set(ctx context.Context, token string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		s.key, token,
	)
	return err
}

func (s *Store) Delete(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, s.key)
	return err
}

func (s *Store) Close() error { return s.db.Close() }
