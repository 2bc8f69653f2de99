package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// BlobTable implements Get and Set over the blobs table shared by the SQL
// backends. Queries are written with ? placeholders and rebound for the
// driver in use.
type BlobTable struct {
	DB *sqlx.DB
}

type blobRow struct {
	Key       string `db:"key"`
	Value     []byte `db:"value"`
	UpdatedAt string `db:"updated_at"`
}

func (t BlobTable) Get(key string) ([]byte, error) {
	if t.DB == nil {
		return nil, ErrNotInitialized
	}
	var value []byte
	err := t.DB.Get(&value, t.DB.Rebind("SELECT value FROM blobs WHERE key = ?"), key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", key, ErrBlobNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return value, nil
}

func (t BlobTable) Set(key string, value []byte) error {
	if t.DB == nil {
		return ErrNotInitialized
	}
	row := blobRow{Key: key, Value: value, UpdatedAt: time.Now().UTC().Format(time.RFC3339)}
	_, err := t.DB.NamedExec(`
		INSERT INTO blobs (key, value, updated_at) VALUES (:key, :value, :updated_at)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, row)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// UpdatedAt returns when each stored blob was last written.
func (t BlobTable) UpdatedAt() (map[string]string, error) {
	if t.DB == nil {
		return nil, ErrNotInitialized
	}
	var rows []blobRow
	if err := t.DB.Select(&rows, "SELECT key, updated_at FROM blobs ORDER BY key"); err != nil {
		return nil, fmt.Errorf("failed to list blobs: %w", err)
	}
	out := make(map[string]string, len(rows))
	for _, r := range rows {
		out[r.Key] = r.UpdatedAt
	}
	return out, nil
}
