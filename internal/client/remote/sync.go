package remote

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"archivedb/internal/common"
	"archivedb/internal/logging"
)

// SyncClient mirrors archive collections into a Postgres records table and
// promotes binary payloads into a blob store. All methods except Probe and
// Ready require a successful probe first; calls made while not ready fail
// fast without touching the network.
type SyncClient struct {
	db     *sql.DB
	blobs  BlobStore
	ready  atomic.Bool
	logger logging.Logger
}

// Dial opens a connection pool to the remote database. The pool is lazy, so
// Dial succeeds even while the endpoint is down; Probe establishes the
// actual connection state.
func Dial(dsn string, blobs BlobStore, logger logging.Logger) (*SyncClient, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open remote db: %w", err)
	}
	db.SetMaxOpenConns(4)
	db.SetConnMaxIdleTime(5 * time.Minute)

	return &SyncClient{db: db, blobs: blobs, logger: logger}, nil
}

// NewSyncClient wraps an existing pool. Used in tests.
func NewSyncClient(db *sql.DB, blobs BlobStore, logger logging.Logger) *SyncClient {
	return &SyncClient{db: db, blobs: blobs, logger: logger}
}

func (c *SyncClient) Ready() bool {
	return c.ready.Load()
}

// Probe pings the remote database, creates the records table if missing and
// makes sure the blob bucket exists. On any failure the client flips to not
// ready and stays there until the next successful probe.
func (c *SyncClient) Probe(ctx context.Context) error {
	if err := c.probe(ctx); err != nil {
		c.ready.Store(false)
		c.logger.Warn("remote mirror unavailable, continuing in local-only mode", "error", err)
		return err
	}
	c.ready.Store(true)
	c.logger.Info("remote mirror connected")
	return nil
}

func (c *SyncClient) probe(ctx context.Context) error {
	if err := c.db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping remote db: %w", err)
	}

	_, err := c.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS records (
			collection TEXT NOT NULL,
			id TEXT NOT NULL,
			data JSONB NOT NULL,
			PRIMARY KEY (collection, id)
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare records table: %w", err)
	}

	if c.blobs != nil {
		if err := c.blobs.EnsureBucket(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the connection pool.
func (c *SyncClient) Close() error {
	c.ready.Store(false)
	return c.db.Close()
}

func (c *SyncClient) GetAll(ctx context.Context, collection string) ([]json.RawMessage, error) {
	if !c.ready.Load() {
		return nil, common.ErrRemoteUnavailable
	}
	rows, err := c.db.QueryContext(ctx,
		`SELECT data FROM records WHERE collection = $1 ORDER BY id`, collection)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", collection, err)
	}
	defer rows.Close()

	var records []json.RawMessage
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan %s record: %w", collection, err)
		}
		records = append(records, json.RawMessage(data))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s records: %w", collection, err)
	}
	return records, nil
}

func (c *SyncClient) Set(ctx context.Context, collection, id string, record any) error {
	if !c.ready.Load() {
		return common.ErrRemoteUnavailable
	}
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode %s/%s: %w", collection, id, err)
	}

	_, err = c.db.ExecContext(ctx, `
		INSERT INTO records (collection, id, data) VALUES ($1, $2, $3)
		ON CONFLICT (collection, id) DO UPDATE SET data = excluded.data
	`, collection, id, data)
	if err != nil {
		return fmt.Errorf("failed to write %s/%s: %w", collection, id, err)
	}
	return nil
}

func (c *SyncClient) Update(ctx context.Context, collection, id string, partial map[string]any) error {
	if !c.ready.Load() {
		return common.ErrRemoteUnavailable
	}
	if len(partial) == 0 {
		return nil
	}
	data, err := json.Marshal(partial)
	if err != nil {
		return fmt.Errorf("failed to encode %s/%s patch: %w", collection, id, err)
	}

	res, err := c.db.ExecContext(ctx, `
		UPDATE records SET data = data || $3::jsonb
		WHERE collection = $1 AND id = $2
	`, collection, id, data)
	if err != nil {
		return fmt.Errorf("failed to update %s/%s: %w", collection, id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		c.logger.Debug("remote update matched no record", "collection", collection, "id", id)
	}
	return nil
}

func (c *SyncClient) Delete(ctx context.Context, collection, id string) error {
	if !c.ready.Load() {
		return common.ErrRemoteUnavailable
	}
	_, err := c.db.ExecContext(ctx,
		`DELETE FROM records WHERE collection = $1 AND id = $2`, collection, id)
	if err != nil {
		return fmt.Errorf("failed to delete %s/%s: %w", collection, id, err)
	}
	return nil
}

func (c *SyncClient) DeleteByDossier(ctx context.Context, collection, dossierID string) error {
	if !c.ready.Load() {
		return common.ErrRemoteUnavailable
	}
	_, err := c.db.ExecContext(ctx,
		`DELETE FROM records WHERE collection = $1 AND data->>'dossierId' = $2`,
		collection, dossierID)
	if err != nil {
		return fmt.Errorf("failed to delete %s records of %s: %w", collection, dossierID, err)
	}
	return nil
}

func (c *SyncClient) UploadBlob(ctx context.Context, path string, data []byte, contentType string) (string, error) {
	if !c.ready.Load() {
		return "", common.ErrRemoteUnavailable
	}
	if c.blobs == nil {
		return "", fmt.Errorf("blob store is not configured")
	}
	return c.blobs.Upload(ctx, path, data, contentType)
}
