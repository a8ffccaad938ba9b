package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// queryTimeout bounds every statement issued by the KV store
const queryTimeout = 30 * time.Second

// KVStore persists JSON documents by key in a single kv_entries table
type KVStore struct {
	db     *sqlx.DB
	driver string
}

// NewKVStore wraps db. driver selects the dialect used for DDL and upserts.
func NewKVStore(db *sqlx.DB, driver string) (*KVStore, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required for kv store")
	}
	return &KVStore{db: db, driver: driver}, nil
}

// CreateTables creates the kv_entries table if it doesn't exist
func (s *KVStore) CreateTables(ctx context.Context) error {
	valueType := "TEXT"
	if s.driver == DriverMySQL {
		valueType = "LONGTEXT"
	}

	query := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS kv_entries (
			entry_key VARCHAR(255) PRIMARY KEY,
			entry_value %s NOT NULL,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`, valueType)

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create kv table: %w", err)
	}
	return nil
}

// Get returns the value stored at key
func (s *KVStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var value string
	query := s.db.Rebind(`SELECT entry_value FROM kv_entries WHERE entry_key = ?`)
	err := s.db.GetContext(ctx, &value, query, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return []byte(value), true, nil
}

// Put inserts or replaces the value stored at key
func (s *KVStore) Put(ctx context.Context, key string, value []byte) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := s.db.Rebind(s.upsertQuery())
	if _, err := s.db.ExecContext(ctx, query, key, string(value), time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to put %s: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *KVStore) Delete(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := s.db.Rebind(`DELETE FROM kv_entries WHERE entry_key = ?`)
	if _, err := s.db.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

func (s *KVStore) upsertQuery() string {
	if s.driver == DriverMySQL {
		return `INSERT INTO kv_entries (entry_key, entry_value, updated_at) VALUES (?, ?, ?)
			ON DUPLICATE KEY UPDATE entry_value = VALUES(entry_value), updated_at = VALUES(updated_at)`
	}
	return `INSERT INTO kv_entries (entry_key, entry_value, updated_at) VALUES (?, ?, ?)
			ON CONFLICT (entry_key) DO UPDATE SET entry_value = excluded.entry_value, updated_at = excluded.updated_at`
}
