// Package dossiers manages the dossier collection: the named containers the
// rest of the archive hangs off. Deleting a dossier cascades to its
// documents and images on both sides of the mirror.
package dossiers

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

// GetAll lists every dossier, remote mirror preferred.
func (r *Repository) GetAll(ctx context.Context) ([]models.Dossier, error) {
	return repositories.ReadAll[models.Dossier](ctx, r.local, r.remote,
		localstore.KeyDossiers, remote.CollectionDossiers, r.logger)
}

// Get returns one dossier by id.
func (r *Repository) Get(ctx context.Context, id string) (*models.Dossier, error) {
	list, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].ID == id {
			return &list[i], nil
		}
	}
	return nil, fmt.Errorf("dossier %s: %w", id, common.ErrNotFound)
}

// Add registers a new dossier, assigning its id and creation timestamps.
// The mirror is written first, best-effort; the local append is
// unconditional. When the local append fails on quota but the mirror took
// the record, the id is still returned.
func (r *Repository) Add(ctx context.Context, d models.Dossier) (string, error) {
	if err := r.auth.RequireAdmin(ctx); err != nil {
		return "", err
	}

	now := time.Now()
	d.ID = models.NewID(models.DossierIDPrefix)
	d.CreatedAt = now
	d.CreatedDate = models.FormatDate(now)
	if d.Status == "" {
		d.Status = models.StatusActive
	}

	mirrored := repositories.MirrorSet(ctx, r.remote, remote.CollectionDossiers, d.ID, d, r.logger)

	if err := repositories.AppendLocal(ctx, r.local, localstore.KeyDossiers, d); err != nil {
		if errors.Is(err, common.ErrQuotaExceeded) && mirrored {
			r.logger.Warn("local quota exceeded, dossier exists only on the remote mirror", "id", d.ID)
			return d.ID, nil
		}
		return "", err
	}

	r.logger.Info("dossier added", "id", d.ID, "name", d.Name)
	return d.ID, nil
}

// Update applies a partial update to a dossier.
func (r *Repository) Update(ctx context.Context, id string, u models.DossierUpdate) error {
	if err := r.auth.RequireAdmin(ctx); err != nil {
		return err
	}

	repositories.MirrorUpdate(ctx, r.remote, remote.CollectionDossiers, id, u.Fields(), r.logger)

	list, err := localstore.ReadList[models.Dossier](ctx, r.local, localstore.KeyDossiers)
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
		return fmt.Errorf("dossier %s: %w", id, common.ErrNotFound)
	}
	if err := localstore.WriteList(ctx, r.local, localstore.KeyDossiers, list); err != nil {
		return err
	}

	r.logger.Info("dossier updated", "id", id)
	return nil
}

// Delete removes a dossier and everything filed under it. On the mirror the
// cascade covers the dossier record plus its documents and images; locally
// all three collections are rewritten in one transaction.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.auth.RequireAdmin(ctx); err != nil {
		return err
	}

	repositories.MirrorDelete(ctx, r.remote, remote.CollectionDossiers, id, r.logger)
	repositories.MirrorDeleteByDossier(ctx, r.remote, remote.CollectionDocuments, id, r.logger)
	repositories.MirrorDeleteByDossier(ctx, r.remote, remote.CollectionImages, id, r.logger)

	found := false
	err := r.local.WithTx(ctx, func(ctx context.Context, tx *localstore.TxStore) error {
		dossiers, err := localstore.ReadList[models.Dossier](ctx, tx, localstore.KeyDossiers)
		if err != nil {
			return err
		}
		kept := dossiers[:0]
		for _, d := range dossiers {
			if d.ID == id {
				found = true
				continue
			}
			kept = append(kept, d)
		}
		if !found {
			return nil
		}
		if err := localstore.WriteList(ctx, tx, localstore.KeyDossiers, kept); err != nil {
			return err
		}

		if err := dropByDossier[models.Document](ctx, tx, localstore.KeyDocuments, id); err != nil {
			return err
		}
		return dropByDossier[models.Image](ctx, tx, localstore.KeyImages, id)
	})
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("dossier %s: %w", id, common.ErrNotFound)
	}

	r.logger.Info("dossier deleted", "id", id)
	return nil
}

type child interface {
	models.Document | models.Image
}

func dropByDossier[T child](ctx context.Context, tx *localstore.TxStore, key, dossierID string) error {
	list, err := localstore.ReadList[T](ctx, tx, key)
	if err != nil {
		return err
	}
	kept := list[:0]
	for _, item := range list {
		if parentID(item) == dossierID {
			continue
		}
		kept = append(kept, item)
	}
	return localstore.WriteList(ctx, tx, key, kept)
}

func parentID[T child](item T) string {
	switch v := any(item).(type) {
	case models.Document:
		return v.DossierID
	case models.Image:
		return v.DossierID
	}
	return ""
}
