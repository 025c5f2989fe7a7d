package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// The table holds at most one row; the CHECK pins the row id so
// concurrent saves collapse into an upsert.
const tokenSchema = `
CREATE TABLE IF NOT EXISTS session_token (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	token TEXT NOT NULL
);`

// SQLiteTokenStore keeps the session token in a local SQLite file.
type SQLiteTokenStore struct {
	db *sql.DB
}

func NewSQLiteTokenStore(path string) (*SQLiteTokenStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open token database: %w", err)
	}
	// A single writer is all this store ever needs.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(tokenSchema); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, fmt.Errorf("init token schema: %w (close: %v)", err, closeErr)
		}
		return nil, fmt.Errorf("init token schema: %w", err)
	}
	return &SQLiteTokenStore{db: db}, nil
}

func (s *SQLiteTokenStore) Load(ctx context.Context) (string, error) {
	var token string
	err := s.db.QueryRowContext(ctx, `SELECT token FROM session_token WHERE id = 1`).Scan(&token)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("load token: %w", err)
	}
	return token, nil
}

func (s *SQLiteTokenStore) Save(ctx context.Context, token string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO session_token (id, token) VALUES (1, ?)
		 ON CONFLICT (id) DO UPDATE SET token = excluded.token`, token)
	if err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

func (s *SQLiteTokenStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM session_token WHERE id = 1`); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}

func (s *SQLiteTokenStore) Close() error {
	return s.db.Close()
}
