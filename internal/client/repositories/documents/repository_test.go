package documents

import (
	"context"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"archivedb/internal/client/localstore"
	"archivedb/internal/client/models"
	"archivedb/internal/client/remote"
	"archivedb/internal/client/session"
	"archivedb/internal/common"
	"archivedb/internal/filex"
	"archivedb/internal/logging"
)

func newFixture(t *testing.T) (*Repository, *localstore.Store, *remote.InMemory) {
	t.Helper()
	db, err := localstore.Open(context.Background(), filepath.Join(t.TempDir(), "archive.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	local := localstore.New(db, 0)
	require.NoError(t, local.Initialize(context.Background()))

	mirror := remote.NewInMemory()
	repo := New(local, mirror, session.AllowAll{}, logging.Discard())
	return repo, local, mirror
}

func TestAddTextDocumentStaysInline(t *testing.T) {
	repo, _, mirror := newFixture(t)
	ctx := context.Background()

	id, err := repo.Add(ctx, models.Document{
		DossierID: "DOS-1",
		Code:      "DOC-INTEL-001",
		Content:   "field report, plain text",
	})
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^DOC-\d+$`), id)

	doc, err := repo.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "field report, plain text", doc.Content)
	assert.Empty(t, doc.DownloadURL)
	assert.NotEmpty(t, doc.Date)

	// plain text is never uploaded to the blob store
	assert.Zero(t, mirror.Calls["UploadBlob"])
}

func TestAddBinaryDocumentPromotesToBlob(t *testing.T) {
	repo, local, mirror := newFixture(t)
	ctx := context.Background()

	payload := filex.EncodeDataURL("application/pdf", []byte("%PDF-1.4 fake"))

	id, err := repo.Add(ctx, models.Document{
		DossierID: "DOS-1",
		Code:      "DOC-SCAN-001",
		Content:   payload,
		FileName:  "report.pdf",
	})
	require.NoError(t, err)

	doc, err := repo.Get(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, doc.Content, "inline payload must be discarded after promotion")
	assert.Equal(t, "https://blobs.example/dossiers/DOS-1/documents/"+id+"/report.pdf", doc.DownloadURL)
	assert.Equal(t, "application/pdf", doc.FileType)
	assert.Equal(t, models.AttachmentRemote, doc.Payload().Kind)

	blob := mirror.Blob("dossiers/DOS-1/documents/" + id + "/report.pdf")
	assert.Equal(t, []byte("%PDF-1.4 fake"), blob)

	// both the mirror record and the local copy carry the URL, not the bytes
	rec := mirror.Record(remote.CollectionDocuments, id)
	require.NotNil(t, rec)
	assert.NotContains(t, rec, "content")

	list, err := localstore.ReadList[models.Document](ctx, local, localstore.KeyDocuments)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Empty(t, list[0].Content)
	assert.NotEmpty(t, list[0].DownloadURL)
}

func TestAddBinaryDocumentMirrorDownKeepsInline(t *testing.T) {
	repo, local, mirror := newFixture(t)
	ctx := context.Background()

	mirror.SetAvailable(false)
	payload := filex.EncodeDataURL("image/png", []byte("pngbytes"))

	id, err := repo.Add(ctx, models.Document{
		DossierID: "DOS-1",
		Code:      "DOC-IMG-001",
		Content:   payload,
		FileName:  "photo.png",
	})
	require.NoError(t, err)
	assert.Zero(t, mirror.Calls["UploadBlob"])

	list, err := localstore.ReadList[models.Document](ctx, local, localstore.KeyDocuments)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, id, list[0].ID)
	assert.Equal(t, payload, list[0].Content)
	assert.Empty(t, list[0].DownloadURL)
}

func TestAddBlobUploadFailureKeepsInline(t *testing.T) {
	repo, local, mirror := newFixture(t)
	ctx := context.Background()

	mirror.SetFailing(true)
	payload := filex.EncodeDataURL("application/pdf", []byte("doc"))

	id, err := repo.Add(ctx, models.Document{
		DossierID: "DOS-1",
		Code:      "DOC-X",
		Content:   payload,
		FileName:  "x.pdf",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, mirror.Calls["UploadBlob"])

	list, err := localstore.ReadList[models.Document](ctx, local, localstore.KeyDocuments)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, id, list[0].ID)
	assert.Equal(t, payload, list[0].Content)
}

func TestForDossier(t *testing.T) {
	repo, _, _ := newFixture(t)
	ctx := context.Background()

	_, err := repo.Add(ctx, models.Document{DossierID: "DOS-1", Code: "A"})
	require.NoError(t, err)
	_, err = repo.Add(ctx, models.Document{DossierID: "DOS-2", Code: "B"})
	require.NoError(t, err)
	_, err = repo.Add(ctx, models.Document{DossierID: "DOS-1", Code: "C"})
	require.NoError(t, err)

	docs, err := repo.ForDossier(ctx, "DOS-1")
	require.NoError(t, err)
	assert.Len(t, docs, 2)

	docs, err = repo.ForDossier(ctx, "DOS-3")
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestUpdate(t *testing.T) {
	repo, _, mirror := newFixture(t)
	ctx := context.Background()

	id, err := repo.Add(ctx, models.Document{DossierID: "DOS-1", Code: "OLD", Content: "v1"})
	require.NoError(t, err)

	code := "NEW"
	content := "v2"
	require.NoError(t, repo.Update(ctx, id, models.DocumentUpdate{Code: &code, Content: &content}))

	doc, err := repo.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "NEW", doc.Code)
	assert.Equal(t, "v2", doc.Content)

	rec := mirror.Record(remote.CollectionDocuments, id)
	require.NotNil(t, rec)
	assert.Equal(t, "NEW", rec["code"])
}

func TestUpdateNotFound(t *testing.T) {
	repo, _, _ := newFixture(t)

	code := "x"
	err := repo.Update(context.Background(), "DOC-404", models.DocumentUpdate{Code: &code})
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestDelete(t *testing.T) {
	repo, _, mirror := newFixture(t)
	ctx := context.Background()

	id, err := repo.Add(ctx, models.Document{DossierID: "DOS-1", Code: "A"})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, id))
	assert.Nil(t, mirror.Record(remote.CollectionDocuments, id))

	_, err = repo.Get(ctx, id)
	assert.ErrorIs(t, err, common.ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, id), common.ErrNotFound)
}

func TestMutationsRequireAdmin(t *testing.T) {
	_, local, mirror := newFixture(t)
	repo := New(local, mirror, denyAll{}, logging.Discard())
	ctx := context.Background()

	_, err := repo.Add(ctx, models.Document{DossierID: "DOS-1"})
	assert.ErrorIs(t, err, common.ErrAccessDenied)

	code := "x"
	assert.ErrorIs(t, repo.Update(ctx, "DOC-1", models.DocumentUpdate{Code: &code}), common.ErrAccessDenied)
	assert.ErrorIs(t, repo.Delete(ctx, "DOC-1"), common.ErrAccessDenied)

	assert.Zero(t, mirror.Count(remote.CollectionDocuments))
}

type denyAll struct{}

func (denyAll) RequireAdmin(context.Context) error { return common.ErrAccessDenied }
