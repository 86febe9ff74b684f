package remote

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"archivedb/internal/common"
	"archivedb/internal/logging"
)

func newMockClient(t *testing.T) (*SyncClient, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewSyncClient(db, nil, logging.Discard()), mock
}

// newReadyMockClient is newMockClient after a successful probe.
func newReadyMockClient(t *testing.T) (*SyncClient, sqlmock.Sqlmock) {
	t.Helper()
	c, mock := newMockClient(t)
	c.ready.Store(true)
	return c, mock
}

func TestProbeSuccess(t *testing.T) {
	c, mock := newMockClient(t)

	mock.ExpectPing()
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS records").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.False(t, c.Ready())
	require.NoError(t, c.Probe(context.Background()))
	assert.True(t, c.Ready())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProbeFailureClearsReady(t *testing.T) {
	c, mock := newMockClient(t)

	mock.ExpectPing()
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS records").
		WillReturnResult(sqlmock.NewResult(0, 0))
	require.NoError(t, c.Probe(context.Background()))
	require.True(t, c.Ready())

	mock.ExpectPing().WillReturnError(assert.AnError)
	require.Error(t, c.Probe(context.Background()))
	assert.False(t, c.Ready())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAll(t *testing.T) {
	c, mock := newReadyMockClient(t)

	rows := sqlmock.NewRows([]string{"data"}).
		AddRow([]byte(`{"id":"DOS-1"}`)).
		AddRow([]byte(`{"id":"DOS-2"}`))
	mock.ExpectQuery("SELECT data FROM records WHERE collection").
		WithArgs(CollectionDossiers).
		WillReturnRows(rows)

	records, err := c.GetAll(context.Background(), CollectionDossiers)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.JSONEq(t, `{"id":"DOS-1"}`, string(records[0]))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAllEmpty(t *testing.T) {
	c, mock := newReadyMockClient(t)

	mock.ExpectQuery("SELECT data FROM records WHERE collection").
		WithArgs(CollectionImages).
		WillReturnRows(sqlmock.NewRows([]string{"data"}))

	records, err := c.GetAll(context.Background(), CollectionImages)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestSet(t *testing.T) {
	c, mock := newReadyMockClient(t)

	record := map[string]any{"id": "DOS-1", "name": "Operation Nightfall"}
	data, err := json.Marshal(record)
	require.NoError(t, err)

	mock.ExpectExec("INSERT INTO records").
		WithArgs(CollectionDossiers, "DOS-1", data).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, c.Set(context.Background(), CollectionDossiers, "DOS-1", record))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateMergesPatch(t *testing.T) {
	c, mock := newReadyMockClient(t)

	patch, err := json.Marshal(map[string]any{"status": "archived"})
	require.NoError(t, err)

	mock.ExpectExec(`UPDATE records SET data = data \|\|`).
		WithArgs(CollectionDossiers, "DOS-1", patch).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = c.Update(context.Background(), CollectionDossiers, "DOS-1",
		map[string]any{"status": "archived"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateEmptyPatchSkipsQuery(t *testing.T) {
	c, mock := newReadyMockClient(t)

	require.NoError(t, c.Update(context.Background(), CollectionDossiers, "DOS-1", nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete(t *testing.T) {
	c, mock := newReadyMockClient(t)

	mock.ExpectExec("DELETE FROM records WHERE collection").
		WithArgs(CollectionDocuments, "DOC-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, c.Delete(context.Background(), CollectionDocuments, "DOC-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteByDossier(t *testing.T) {
	c, mock := newReadyMockClient(t)

	mock.ExpectExec(`DELETE FROM records WHERE collection = \$1 AND data->>'dossierId'`).
		WithArgs(CollectionDocuments, "DOS-1").
		WillReturnResult(sqlmock.NewResult(0, 3))

	require.NoError(t, c.DeleteByDossier(context.Background(), CollectionDocuments, "DOS-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUploadBlobWithoutBlobStore(t *testing.T) {
	c, _ := newReadyMockClient(t)

	_, err := c.UploadBlob(context.Background(), "dossiers/DOS-1/x", []byte("data"), "text/plain")
	assert.Error(t, err)
}

func TestDataCallsFailFastWhenNotReady(t *testing.T) {
	c, mock := newMockClient(t)
	ctx := context.Background()

	_, err := c.GetAll(ctx, CollectionDossiers)
	assert.ErrorIs(t, err, common.ErrRemoteUnavailable)

	err = c.Set(ctx, CollectionDossiers, "DOS-1", map[string]any{"id": "DOS-1"})
	assert.ErrorIs(t, err, common.ErrRemoteUnavailable)

	err = c.Update(ctx, CollectionDossiers, "DOS-1", map[string]any{"status": "CLOSED"})
	assert.ErrorIs(t, err, common.ErrRemoteUnavailable)

	assert.ErrorIs(t, c.Delete(ctx, CollectionDossiers, "DOS-1"), common.ErrRemoteUnavailable)
	assert.ErrorIs(t, c.DeleteByDossier(ctx, CollectionDocuments, "DOS-1"), common.ErrRemoteUnavailable)

	_, err = c.UploadBlob(ctx, "dossiers/DOS-1/x", []byte("data"), "text/plain")
	assert.ErrorIs(t, err, common.ErrRemoteUnavailable)

	// nothing above may reach the database
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNoopNeverReady(t *testing.T) {
	var s Store = Noop{}

	assert.False(t, s.Ready())
	assert.Error(t, s.Probe(context.Background()))
	assert.False(t, s.Ready())
}
