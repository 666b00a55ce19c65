package authsdk

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const createMetadataTable = `
CREATE TABLE IF NOT EXISTS metadata (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
)`

// SQLiteKV is a durable KV kept in a local sqlite file.
type SQLiteKV struct {
	db *sql.DB
}

// OpenSQLiteKV opens (creating if needed) the sqlite file at path.
// ":memory:" gives a private in-memory database.
func OpenSQLiteKV(ctx context.Context, path string) (*SQLiteKV, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, fmt.Errorf("failed to create state dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open state db: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, createMetadataTable); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create metadata table: %w", err)
	}
	return &SQLiteKV{db: db}, nil
}

func (kv *SQLiteKV) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := kv.db.QueryRowContext(ctx, `SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get metadata[%s]: %w", key, err)
	}
	return value, true, nil
}

func (kv *SQLiteKV) Set(ctx context.Context, key, value string) error {
	_, err := kv.db.ExecContext(ctx,
		`INSERT INTO metadata (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value)
	if err != nil {
		return fmt.Errorf("failed to set metadata[%s]: %w", key, err)
	}
	return nil
}

func (kv *SQLiteKV) Delete(ctx context.Context, key string) error {
	if _, err := kv.db.ExecContext(ctx, `DELETE FROM metadata WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete metadata[%s]: %w", key, err)
	}
	return nil
}

// Close closes the underlying database.
func (kv *SQLiteKV) Close() error {
	return kv.db.Close()
}
