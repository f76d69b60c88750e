package db

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Open opens (or creates) the local state database. It holds the small
// key-value state the client persists between runs: the session token and
// the serialized user profile.
func Open(path string) (*sql.DB, error) {
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("error opening state database: %w", err)
	}

	_, err = conn.Exec(`
		CREATE TABLE IF NOT EXISTS local_state (
			key TEXT PRIMARY KEY NOT NULL,
			value TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return nil, fmt.Errorf("error creating local_state table: %w", err)
	}

	return conn, nil
}

// GetValue reads a stored value. A missing key is not an error; it returns
// the empty string.
func GetValue(conn *sql.DB, key string) (string, error) {
	var value string
	err := conn.QueryRow("SELECT value FROM local_state WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read state key '%s': %w", key, err)
	}
	return value, nil
}

// SetValue stores a value, replacing any previous one under the same key.
func SetValue(conn *sql.DB, key, value string) error {
	query := `
		INSERT INTO local_state (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at;
	`
	if _, err := conn.Exec(query, key, value); err != nil {
		return fmt.Errorf("failed to store state key '%s': %w", key, err)
	}
	return nil
}

// DeleteValue removes a key. Deleting an absent key is a no-op.
func DeleteValue(conn *sql.DB, key string) error {
	if _, err := conn.Exec("DELETE FROM local_state WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to delete state key '%s': %w", key, err)
	}
	return nil
}
