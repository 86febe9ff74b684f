// Package repositories holds the dual-write plumbing shared by the entity
// repositories. Every collection lives in two places: the local store, which
// is always written and always readable, and the remote mirror, which is
// consulted first on reads and written best-effort on mutations. Remote
// failures are logged and swallowed; they never fail an operation and are
// never retried.
package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"archivedb/internal/client/localstore"
	"archivedb/internal/client/remote"
	"archivedb/internal/logging"
)

// ReadAll returns a collection, preferring the remote mirror when it is
// ready. A non-empty remote result replaces the local cache; an empty one is
// ignored in favor of whatever the local store holds, so a freshly wiped
// mirror cannot erase data that only exists locally.
func ReadAll[T any](ctx context.Context, local *localstore.Store, rs remote.Store,
	key, collection string, logger logging.Logger) ([]T, error) {

	if rs.Ready() {
		records, err := rs.GetAll(ctx, collection)
		switch {
		case err != nil:
			logger.Warn("remote read failed, serving local copy",
				"collection", collection, "error", err)
		case len(records) > 0:
			list, err := decodeRecords[T](records)
			if err != nil {
				// another client may have written a record this build
				// cannot decode; the local snapshot stays authoritative
				logger.Warn("remote record undecodable, serving local copy",
					"collection", collection, "error", err)
				break
			}
			if err := localstore.WriteList(ctx, local, key, list); err != nil {
				logger.Warn("failed to refresh local cache", "key", key, "error", err)
			}
			return list, nil
		}
	}

	return localstore.ReadList[T](ctx, local, key)
}

func decodeRecords[T any](records []json.RawMessage) ([]T, error) {
	list := make([]T, 0, len(records))
	for _, raw := range records {
		var item T
		if err := json.Unmarshal(raw, &item); err != nil {
			return nil, fmt.Errorf("decode record: %w", err)
		}
		list = append(list, item)
	}
	return list, nil
}

// MirrorSet writes a full record to the mirror and reports whether the write
// landed. Not-ready mirrors are skipped without a network attempt.
func MirrorSet(ctx context.Context, rs remote.Store, collection, id string, record any,
	logger logging.Logger) bool {

	if !rs.Ready() {
		logger.Debug("remote mirror not ready, skipping write", "collection", collection, "id", id)
		return false
	}
	if err := rs.Set(ctx, collection, id, record); err != nil {
		logger.Warn("remote write failed, record kept locally only",
			"collection", collection, "id", id, "error", err)
		return false
	}
	return true
}

// MirrorUpdate applies a partial update on the mirror, best-effort.
func MirrorUpdate(ctx context.Context, rs remote.Store, collection, id string,
	partial map[string]any, logger logging.Logger) {

	if !rs.Ready() {
		logger.Debug("remote mirror not ready, skipping update", "collection", collection, "id", id)
		return
	}
	if err := rs.Update(ctx, collection, id, partial); err != nil {
		logger.Warn("remote update failed, change kept locally only",
			"collection", collection, "id", id, "error", err)
	}
}

// MirrorDelete removes a record from the mirror, best-effort.
func MirrorDelete(ctx context.Context, rs remote.Store, collection, id string,
	logger logging.Logger) {

	if !rs.Ready() {
		logger.Debug("remote mirror not ready, skipping delete", "collection", collection, "id", id)
		return
	}
	if err := rs.Delete(ctx, collection, id); err != nil {
		logger.Warn("remote delete failed, record removed locally only",
			"collection", collection, "id", id, "error", err)
	}
}

// MirrorDeleteByDossier removes every record of a collection filed under a
// dossier from the mirror, best-effort.
func MirrorDeleteByDossier(ctx context.Context, rs remote.Store, collection, dossierID string,
	logger logging.Logger) {

	if !rs.Ready() {
		logger.Debug("remote mirror not ready, skipping cascade delete",
			"collection", collection, "dossier", dossierID)
		return
	}
	if err := rs.DeleteByDossier(ctx, collection, dossierID); err != nil {
		logger.Warn("remote cascade delete failed, records removed locally only",
			"collection", collection, "dossier", dossierID, "error", err)
	}
}

// AppendLocal appends item to the list stored under key.
func AppendLocal[T any](ctx context.Context, local *localstore.Store, key string, item T) error {
	list, err := localstore.ReadList[T](ctx, local, key)
	if err != nil {
		return err
	}
	return localstore.WriteList(ctx, local, key, append(list, item))
}
