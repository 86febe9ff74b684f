// Package remote mirrors the archive to a remote document database and blob
// store. The mirror is strictly best-effort: callers check Ready before every
// call and treat any returned error as a log-and-continue condition, never a
// reason to fail the local operation.
package remote

import (
	"context"
	"encoding/json"
)

// Store is the remote side of the archive's dual-write scheme.
//
// Ready reports the last known connection state without touching the
// network; Probe refreshes it. When Ready is false the repositories skip
// the remote leg entirely instead of attempting a call that would fail.
type Store interface {
	// Ready reports whether the remote endpoint answered the last probe.
	Ready() bool

	// Probe checks connectivity, preparing remote schema and bucket on
	// first contact, and updates the state reported by Ready.
	Probe(ctx context.Context) error

	// GetAll returns every record of a collection as raw JSON documents.
	GetAll(ctx context.Context, collection string) ([]json.RawMessage, error)

	// Set writes a full record under (collection, id), replacing any
	// previous version.
	Set(ctx context.Context, collection, id string, record any) error

	// Update merges partial into the record stored under (collection, id).
	// Fields absent from partial keep their stored values.
	Update(ctx context.Context, collection, id string, partial map[string]any) error

	// Delete removes one record. Deleting an absent record is a no-op.
	Delete(ctx context.Context, collection, id string) error

	// DeleteByDossier removes every record of a collection whose dossierId
	// field matches dossierID.
	DeleteByDossier(ctx context.Context, collection, dossierID string) error

	// UploadBlob stores data under path in the blob store and returns a
	// URL from which it can later be downloaded.
	UploadBlob(ctx context.Context, path string, data []byte, contentType string) (string, error)
}

// Collection names used on the remote side.
const (
	CollectionDossiers  = "dossiers"
	CollectionDocuments = "documents"
	CollectionImages    = "images"
)
