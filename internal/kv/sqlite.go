package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// OpenSQLite opens (and creates if missing) the SQLite database at path and
// applies the schema.
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One connection keeps ":memory:" databases shared and writes serialized.
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if err := Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// Migrate creates the kv_items table if it does not exist.
func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS kv_items (
			scope TEXT NOT NULL,
			key TEXT NOT NULL,
			value TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (scope, key)
		);`,
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// WithTx runs fn inside a SQL transaction.
func WithTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	committed = true
	return nil
}

// SQLiteStorage stores items for one scope (client profile) in kv_items.
type SQLiteStorage struct {
	db    *sql.DB
	scope string
	quota int64
	owned bool
}

// NewSQLiteStorage wraps an open database. The caller keeps ownership of db.
func NewSQLiteStorage(db *sql.DB, scope string, quota int64) *SQLiteStorage {
	return &SQLiteStorage{db: db, scope: scope, quota: quota}
}

// OpenSQLiteStorage opens path and returns a storage that closes the database
// on Close.
func OpenSQLiteStorage(ctx context.Context, path, scope string, quota int64) (*SQLiteStorage, error) {
	db, err := OpenSQLite(ctx, path)
	if err != nil {
		return nil, err
	}
	s := NewSQLiteStorage(db, scope, quota)
	s.owned = true
	return s, nil
}

// Close closes the database if this storage opened it.
func (s *SQLiteStorage) Close() error {
	if !s.owned {
		return nil
	}
	return s.db.Close()
}

func (s *SQLiteStorage) GetItem(key string) (string, bool, error) {
	row := s.db.QueryRow(`SELECT value FROM kv_items WHERE scope = ? AND key = ?`, s.scope, key)

	var v string
	if err := row.Scan(&v); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("kv get: %w", err)
	}
	return v, true, nil
}

func (s *SQLiteStorage) SetItem(key, value string) error {
	return WithTx(context.Background(), s.db, func(tx *sql.Tx) error {
		if s.quota > 0 {
			var used int64
			row := tx.QueryRow(`
				SELECT COALESCE(SUM(length(CAST(key AS BLOB)) + length(CAST(value AS BLOB))), 0)
				FROM kv_items WHERE scope = ? AND key <> ?
			`, s.scope, key)
			if err := row.Scan(&used); err != nil {
				return fmt.Errorf("kv usage: %w", err)
			}
			if used+int64(len(key)+len(value)) > s.quota {
				return ErrQuotaExceeded
			}
		}
		_, err := tx.Exec(`
			INSERT INTO kv_items (scope, key, value, updated_at)
			VALUES (?, ?, ?, CURRENT_TIMESTAMP)
			ON CONFLICT(scope, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
		`, s.scope, key, value)
		if err != nil {
			return fmt.Errorf("kv set: %w", err)
		}
		return nil
	})
}

func (s *SQLiteStorage) RemoveItem(key string) error {
	if _, err := s.db.Exec(`DELETE FROM kv_items WHERE scope = ? AND key = ?`, s.scope, key); err != nil {
		return fmt.Errorf("kv remove: %w", err)
	}
	return nil
}

// RemoveItems deletes keys in one transaction.
func (s *SQLiteStorage) RemoveItems(keys ...string) error {
	return WithTx(context.Background(), s.db, func(tx *sql.Tx) error {
		for _, k := range keys {
			if _, err := tx.Exec(`DELETE FROM kv_items WHERE scope = ? AND key = ?`, s.scope, k); err != nil {
				return fmt.Errorf("kv remove: %w", err)
			}
		}
		return nil
	})
}

func (s *SQLiteStorage) Keys() ([]string, error) {
	rows, err := s.db.Query(`SELECT key FROM kv_items WHERE scope = ? ORDER BY key`, s.scope)
	if err != nil {
		return nil, fmt.Errorf("kv keys: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("kv keys scan: %w", err)
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("kv keys: %w", err)
	}
	return keys, nil
}
