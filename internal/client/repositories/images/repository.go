// Package images manages the image collection: photographic records filed
// under dossiers, stored inline as data URLs until promoted to the blob
// store.
package images

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

// GetAll lists every image, remote mirror preferred.
func (r *Repository) GetAll(ctx context.Context) ([]models.Image, error) {
	return repositories.ReadAll[models.Image](ctx, r.local, r.remote,
		localstore.KeyImages, remote.CollectionImages, r.logger)
}

// ForDossier lists the images filed under one dossier.
func (r *Repository) ForDossier(ctx context.Context, dossierID string) ([]models.Image, error) {
	all, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	imgs := make([]models.Image, 0)
	for _, img := range all {
		if img.DossierID == dossierID {
			imgs = append(imgs, img)
		}
	}
	return imgs, nil
}

// Get returns one image by id.
func (r *Repository) Get(ctx context.Context, id string) (*models.Image, error) {
	all, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].ID == id {
			return &all[i], nil
		}
	}
	return nil, fmt.Errorf("image %s: %w", id, common.ErrNotFound)
}

// Add files a new image, promoting its data URL to the blob store when the
// mirror is ready. Same dual-write contract as documents: mirror write
// best-effort, local append unconditional, quota failure tolerated when the
// mirror took the record.
func (r *Repository) Add(ctx context.Context, img models.Image) (string, error) {
	if err := r.auth.RequireAdmin(ctx); err != nil {
		return "", err
	}

	img.ID = models.NewID(models.ImageIDPrefix)
	if img.Date == "" {
		img.Date = models.FormatDate(time.Now())
	}

	r.promote(ctx, &img)

	mirrored := repositories.MirrorSet(ctx, r.remote, remote.CollectionImages, img.ID, img, r.logger)

	if err := repositories.AppendLocal(ctx, r.local, localstore.KeyImages, img); err != nil {
		if errors.Is(err, common.ErrQuotaExceeded) && mirrored {
			r.logger.Warn("local quota exceeded, image exists only on the remote mirror", "id", img.ID)
			return img.ID, nil
		}
		return "", err
	}

	r.logger.Info("image added", "id", img.ID, "dossier", img.DossierID, "code", img.Code)
	return img.ID, nil
}

func (r *Repository) promote(ctx context.Context, img *models.Image) {
	payload := img.Payload()
	if payload.Kind != models.AttachmentInline || !filex.IsDataURL(payload.Inline) {
		return
	}
	if !r.remote.Ready() {
		return
	}

	contentType, data, err := filex.DecodeDataURL(payload.Inline)
	if err != nil {
		r.logger.Warn("image payload not promotable, keeping inline", "id", img.ID, "error", err)
		return
	}
	if img.FileType == "" {
		img.FileType = contentType
	}

	name := img.FileName
	if name == "" {
		name = img.Code
	}
	if name == "" {
		name = img.ID
	}
	path := fmt.Sprintf("dossiers/%s/images/%s/%s", img.DossierID, img.ID, name)

	url, err := r.remote.UploadBlob(ctx, path, data, contentType)
	if err != nil {
		r.logger.Warn("blob upload failed, keeping payload inline", "id", img.ID, "error", err)
		return
	}

	img.SetPayload(models.RemoteAttachment(url))
	r.logger.Info("image payload promoted to blob store", "id", img.ID, "path", path)
}

// Update applies a partial update to an image.
func (r *Repository) Update(ctx context.Context, id string, u models.ImageUpdate) error {
	if err := r.auth.RequireAdmin(ctx); err != nil {
		return err
	}

	repositories.MirrorUpdate(ctx, r.remote, remote.CollectionImages, id, u.Fields(), r.logger)

	list, err := localstore.ReadList[models.Image](ctx, r.local, localstore.KeyImages)
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
		return fmt.Errorf("image %s: %w", id, common.ErrNotFound)
	}
	if err := localstore.WriteList(ctx, r.local, localstore.KeyImages, list); err != nil {
		return err
	}

	r.logger.Info("image updated", "id", id)
	return nil
}

// Delete removes one image from both sides.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.auth.RequireAdmin(ctx); err != nil {
		return err
	}

	repositories.MirrorDelete(ctx, r.remote, remote.CollectionImages, id, r.logger)

	list, err := localstore.ReadList[models.Image](ctx, r.local, localstore.KeyImages)
	if err != nil {
		return err
	}
	kept := list[:0]
	found := false
	for _, img := range list {
		if img.ID == id {
			found = true
			continue
		}
		kept = append(kept, img)
	}
	if !found {
		return fmt.Errorf("image %s: %w", id, common.ErrNotFound)
	}
	if err := localstore.WriteList(ctx, r.local, localstore.KeyImages, kept); err != nil {
		return err
	}

	r.logger.Info("image deleted", "id", id)
	return nil
}
