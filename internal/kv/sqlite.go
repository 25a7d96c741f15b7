package kv

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const kvSchema = `
CREATE TABLE IF NOT EXISTS kv (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
)`

// SQLiteMedium stores key-value pairs in a single-table SQLite database.
type SQLiteMedium struct {
	db *sql.DB
}

// NewSQLiteMedium wraps an existing database handle. The kv table is
// created if it does not exist.
func NewSQLiteMedium(db *sql.DB) (*SQLiteMedium, error) {
	if db == nil {
		return nil, errors.New("kv: nil db")
	}
	if _, err := db.Exec(kvSchema); err != nil {
		return nil, fmt.Errorf("create kv table: %w", err)
	}
	return &SQLiteMedium{db: db}, nil
}

// OpenSQLite opens (or creates) a SQLite database file at path.
func OpenSQLite(path string) (*SQLiteMedium, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	m, err := NewSQLiteMedium(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return m, nil
}

// Close closes the underlying database handle.
func (m *SQLiteMedium) Close() error {
	return m.db.Close()
}

// Get returns the value stored for key.
func (m *SQLiteMedium) Get(key string) (string, bool, error) {
	var value string
	err := m.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}
	return value, true, nil
}

// Set inserts or replaces the value for key.
func (m *SQLiteMedium) Set(key, value string) error {
	_, err := m.db.Exec(`
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// Delete removes the row for key if present.
func (m *SQLiteMedium) Delete(key string) error {
	if _, err := m.db.Exec(`DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// Keys lists every stored key.
func (m *SQLiteMedium) Keys() ([]string, error) {
	rows, err := m.db.Query(`SELECT key FROM kv`)
	if err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("scan key: %w", err)
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}
