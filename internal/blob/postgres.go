package blob

import (
	"context"
	"database/sql"
	"fmt"
)

// PostgresStore implements Store against a PostgreSQL database, using a
// single key/data table as a plain key-value blob store. No entity
// schema: the database never sees inside the JSON documents.
type PostgresStore struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresStore creates a PostgresStore using the provided *sql.DB.
// db must be a valid connection to a PostgreSQL instance.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{DB: db}
}

// Get returns the blob stored under key, or ErrNoSuchKey.
func (s *PostgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	err := s.DB.QueryRowContext(ctx, `
		SELECT data FROM blobs WHERE key = $1
	`, key).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, ErrNoSuchKey
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	return data, nil
}

// Put inserts or replaces the blob stored under key.
func (s *PostgresStore) Put(ctx context.Context, key string, data []byte) error {
	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO blobs (key, data)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET data = EXCLUDED.data
	`, key, data)
	if err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}

// Delete removes the blob stored under key, if any.
func (s *PostgresStore) Delete(ctx context.Context, key string) error {
	_, err := s.DB.ExecContext(ctx, `DELETE FROM blobs WHERE key = $1`, key)
	if err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}
