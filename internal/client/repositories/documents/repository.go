// Package documents manages the document collection: textual and binary
// records filed under dossiers. Binary payloads arrive inline as data URLs
// and are promoted to the blob store when the mirror is reachable, leaving
// only the download URL behind.
package documents

import (
	"context"
	"errors"
	"fmt"
	"time"

	"archivedb/internal/client/localstore"
	"archivedb/internal/client/models"
	"archivedb/internal/client/remote"
	"archivedb/internal/client/repositories"
	"archivedb/internal/client/session"
	"archivedb/internal/common"
	"archivedb/internal/filex"
	"archivedb/internal/logging"
)

type Repository struct {
	local  *localstore.Store
	remote remote.Store
	auth   session.Authorizer
	logger logging.Logger
}

func New(local *localstore.Store, rs remote.Store, auth session.Authorizer, logger logging.Logger) *Repository {
	return &Repository{local: local, remote: rs, auth: auth, logger: logger}
}

// GetAll lists every document, remote mirror preferred.
func (r *Repository) GetAll(ctx context.Context) ([]models.Document, error) {
	return repositories.ReadAll[models.Document](ctx, r.local, r.remote,
		localstore.KeyDocuments, remote.CollectionDocuments, r.logger)
}

// ForDossier lists the documents filed under one dossier.
func (r *Repository) ForDossier(ctx context.Context, dossierID string) ([]models.Document, error) {
	all, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	docs := make([]models.Document, 0)
	for _, d := range all {
		if d.DossierID == dossierID {
			docs = append(docs, d)
		}
	}
	return docs, nil
}

// Get returns one document by id.
func (r *Repository) Get(ctx context.Context, id string) (*models.Document, error) {
	all, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].ID == id {
			return &all[i], nil
		}
	}
	return nil, fmt.Errorf("document %s: %w", id, common.ErrNotFound)
}

// Add files a new document. An inline data-URL payload is promoted to the
// blob store first when the mirror is ready; the record then carries only
// the download URL. The mirror write is best-effort, the local append is
// unconditional, and a quota failure after a successful mirror write still
// yields the new id.
func (r *Repository) Add(ctx context.Context, doc models.Document) (string, error) {
	if err := r.auth.RequireAdmin(ctx); err != nil {
		return "", err
	}

	doc.ID = models.NewID(models.DocumentIDPrefix)
	if doc.Date == "" {
		doc.Date = models.FormatDate(time.Now())
	}

	r.promote(ctx, &doc)

	mirrored := repositories.MirrorSet(ctx, r.remote, remote.CollectionDocuments, doc.ID, doc, r.logger)

	if err := repositories.AppendLocal(ctx, r.local, localstore.KeyDocuments, doc); err != nil {
		if errors.Is(err, common.ErrQuotaExceeded) && mirrored {
			r.logger.Warn("local quota exceeded, document exists only on the remote mirror", "id", doc.ID)
			return doc.ID, nil
		}
		return "", err
	}

	r.logger.Info("document added", "id", doc.ID, "dossier", doc.DossierID, "code", doc.Code)
	return doc.ID, nil
}

// promote uploads an inline data-URL payload to the blob store and swaps
// the record over to the returned download URL. Any failure leaves the
// payload inline; the record is still stored.
func (r *Repository) promote(ctx context.Context, doc *models.Document) {
	payload := doc.Payload()
	if payload.Kind != models.AttachmentInline || !filex.IsDataURL(payload.Inline) {
		return
	}
	if !r.remote.Ready() {
		return
	}

	contentType, data, err := filex.DecodeDataURL(payload.Inline)
	if err != nil {
		r.logger.Warn("document payload not promotable, keeping inline", "id", doc.ID, "error", err)
		return
	}
	if doc.FileType == "" {
		doc.FileType = contentType
	}

	name := doc.FileName
	if name == "" {
		name = doc.ID
	}
	path := fmt.Sprintf("dossiers/%s/documents/%s/%s", doc.DossierID, doc.ID, name)

	url, err := r.remote.UploadBlob(ctx, path, data, contentType)
	if err != nil {
		r.logger.Warn("blob upload failed, keeping payload inline", "id", doc.ID, "error", err)
		return
	}

	doc.SetPayload(models.RemoteAttachment(url))
	r.logger.Info("document payload promoted to blob store", "id", doc.ID, "path", path)
}

// Update applies a partial update to a document.
func (r *Repository) Update(ctx context.Context, id string, u models.DocumentUpdate) error {
	if err := r.auth.RequireAdmin(ctx); err != nil {
		return err
	}

	repositories.MirrorUpdate(ctx, r.remote, remote.CollectionDocuments, id, u.Fields(), r.logger)

	list, err := localstore.ReadList[models.Document](ctx, r.local, localstore.KeyDocuments)
	if err != nil {
		return err
	}
	found := false
	for i := range list {
		if list[i].ID == id {
			u.Apply(&list[i])
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("document %s: %w", id, common.ErrNotFound)
	}
	if err := localstore.WriteList(ctx, r.local, localstore.KeyDocuments, list); err != nil {
		return err
	}

	r.logger.Info("document updated", "id", id)
	return nil
}

// Delete removes one document from both sides.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.auth.RequireAdmin(ctx); err != nil {
		return err
	}

	repositories.MirrorDelete(ctx, r.remote, remote.CollectionDocuments, id, r.logger)

	list, err := localstore.ReadList[models.Document](ctx, r.local, localstore.KeyDocuments)
	if err != nil {
		return err
	}
	kept := list[:0]
	found := false
	for _, d := range list {
		if d.ID == id {
			found = true
			continue
		}
		kept = append(kept, d)
	}
	if !found {
		return fmt.Errorf("document %s: %w", id, common.ErrNotFound)
	}
	if err := localstore.WriteList(ctx, r.local, localstore.KeyDocuments, kept); err != nil {
		return err
	}

	r.logger.Info("document deleted", "id", id)
	return nil
}
