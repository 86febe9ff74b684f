// Package localstore is the client's durable key-value store, backed by a
// local SQLite database. It holds four fixed keys: three collection keys,
// each a serialized JSON array of archive records, and the auth key holding
// the session token.
//
// The local store is the durability guarantee of last resort: every
// repository mutation lands here regardless of whether the remote mirror
// was reachable.
package localstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"archivedb/internal/common"
	"archivedb/internal/dbx"
)

// Fixed storage keys. These names are part of the persisted contract.
const (
	KeyDossiers  = "classifiedDossiers"
	KeyDocuments = "classifiedDocuments"
	KeyImages    = "classifiedImages"
	KeyAuth      = "archiveAuth"
)

// DefaultQuotaBytes caps a single stored value at 5 MiB, mirroring the
// per-origin budget of browser local storage.
const DefaultQuotaBytes = 5 << 20

// Store reads and writes values under fixed keys. A zero quota disables the
// size check.
type Store struct {
	db    *sql.DB
	quota int64
}

func New(db *sql.DB, quotaBytes int64) *Store {
	return &Store{db: db, quota: quotaBytes}
}

// Read returns the value stored under key, or nil when the key is absent.
func (s *Store) Read(ctx context.Context, key string) ([]byte, error) {
	return read(ctx, s.db, key)
}

// Write stores value under key. A payload larger than the configured quota
// fails with common.ErrQuotaExceeded before touching the database; any
// other failure propagates as a hard error.
func (s *Store) Write(ctx context.Context, key string, value []byte) error {
	return write(ctx, s.db, s.quota, key, value)
}

// Delete removes a key. Deleting an absent key is a no-op.
func (s *Store) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM store WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete store[%s]: %w", key, err)
	}
	return nil
}

// Initialize seeds the collection keys with empty arrays so that reads
// always see a valid serialized list. Existing values are left untouched.
// Called once at process start.
func (s *Store) Initialize(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for _, key := range []string{KeyDossiers, KeyDocuments, KeyImages} {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO store (key, value) VALUES (?, ?)
				ON CONFLICT(key) DO NOTHING
			`, key, []byte("[]"))
			if err != nil {
				return fmt.Errorf("failed to seed store[%s]: %w", key, err)
			}
		}
		return nil
	})
}

// WithTx runs fn against a transaction-bound view of the store, committing
// on success and rolling back on error. Used by cascade deletes that must
// rewrite several collections together.
func (s *Store) WithTx(ctx context.Context, fn func(ctx context.Context, tx *TxStore) error) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(ctx, &TxStore{db: tx, quota: s.quota})
	})
}

// TxStore is a Store view bound to an open transaction.
type TxStore struct {
	db    dbx.DBTX
	quota int64
}

func (t *TxStore) Read(ctx context.Context, key string) ([]byte, error) {
	return read(ctx, t.db, key)
}

func (t *TxStore) Write(ctx context.Context, key string, value []byte) error {
	return write(ctx, t.db, t.quota, key, value)
}

func read(ctx context.Context, db dbx.DBTX, key string) ([]byte, error) {
	var value []byte
	err := db.QueryRowContext(ctx, `SELECT value FROM store WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read store[%s]: %w", key, err)
	}
	return value, nil
}

func write(ctx context.Context, db dbx.DBTX, quota int64, key string, value []byte) error {
	if quota > 0 && int64(len(value)) > quota {
		return fmt.Errorf("store[%s]: %d bytes: %w", key, len(value), common.ErrQuotaExceeded)
	}
	_, err := db.ExecContext(ctx, `
		INSERT INTO store (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to write store[%s]: %w", key, err)
	}
	return nil
}

// Reader is the read/write surface shared by Store and TxStore.
type Reader interface {
	Read(ctx context.Context, key string) ([]byte, error)
	Write(ctx context.Context, key string, value []byte) error
}

// ReadList decodes the JSON array stored under key. An absent key yields an
// empty list.
func ReadList[T any](ctx context.Context, s Reader, key string) ([]T, error) {
	raw, err := s.Read(ctx, key)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return []T{}, nil
	}
	var list []T
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("failed to decode store[%s]: %w", key, err)
	}
	if list == nil {
		list = []T{}
	}
	return list, nil
}

// WriteList encodes list as a JSON array and stores it under key.
func WriteList[T any](ctx context.Context, s Reader, key string, list []T) error {
	if list == nil {
		list = []T{}
	}
	raw, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("failed to encode store[%s]: %w", key, err)
	}
	return s.Write(ctx, key, raw)
}
