package storage

import (
	"context"
	"database/sql"

	_ "modernc.org/sqlite" // SQLite driver
)

// SQLiteBackend persists snapshots in a single-table SQLite database. It is
// the local-file equivalent of the browser key-value storage the dashboard
// frontend used to own.
type SQLiteBackend struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the snapshot database at the given path.
func OpenSQLite(dataSourceName string) (*SQLiteBackend, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	const sqlStmt = `
	CREATE TABLE IF NOT EXISTS snapshots (
		key TEXT NOT NULL PRIMARY KEY,
		value BLOB NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	if _, err = db.Exec(sqlStmt); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteBackend{db: db}, nil
}

// Load returns the snapshot stored under key, if any.
func (b *SQLiteBackend) Load(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	row := b.db.QueryRowContext(ctx, "SELECT value FROM snapshots WHERE key = ?", key)
	if err := row.Scan(&value); err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		return nil, false, err
	}
	return value, true, nil
}

// Save upserts the snapshot stored under key.
func (b *SQLiteBackend) Save(ctx context.Context, key string, value []byte) error {
	query := `INSERT INTO snapshots (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	_, err := b.db.ExecContext(ctx, query, key, value)
	return err
}

// Delete removes the snapshot stored under key.
func (b *SQLiteBackend) Delete(ctx context.Context, key string) error {
	_, err := b.db.ExecContext(ctx, "DELETE FROM snapshots WHERE key = ?", key)
	return err
}

// Close closes the underlying database.
func (b *SQLiteBackend) Close() error {
	return b.db.Close()
}
