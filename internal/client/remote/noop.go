package remote

import (
	"context"
	"encoding/json"
	"fmt"

	"archivedb/internal/common"
)

// Noop is a Store that is permanently unavailable. Used when no remote
// endpoint is configured, so the repositories run in local-only mode
// without special-casing a nil store.
type Noop struct{}

func (Noop) Ready() bool { return false }

func (Noop) Probe(context.Context) error {
	return fmt.Errorf("no remote endpoint configured: %w", common.ErrRemoteUnavailable)
}

func (Noop) GetAll(context.Context, string) ([]json.RawMessage, error) {
	return nil, common.ErrRemoteUnavailable
}

func (Noop) Set(context.Context, string, string, any) error {
	return common.ErrRemoteUnavailable
}

func (Noop) Update(context.Context, string, string, map[string]any) error {
	return common.ErrRemoteUnavailable
}

func (Noop) Delete(context.Context, string, string) error {
	return common.ErrRemoteUnavailable
}

func (Noop) DeleteByDossier(context.Context, string, string) error {
	return common.ErrRemoteUnavailable
}

func (Noop) UploadBlob(context.Context, string, []byte, string) (string, error) {
	return "", common.ErrRemoteUnavailable
}
