package cli

import (
	"context"
	"fmt"
	"os"

	"archivedb/internal/client/models"
)

var classifications = []string{
	string(models.ClassificationTopSecret),
	string(models.ClassificationSecret),
	string(models.ClassificationConfidential),
	string(models.ClassificationUnclassified),
}

var statuses = []string{
	string(models.StatusActive),
	string(models.StatusUnderReview),
	string(models.StatusClosed),
}

// List prints every dossier in the archive.
func (a *App) List(ctx context.Context) error {
	list, err := a.dossiers.GetAll(ctx)
	if err != nil {
		fmt.Println("Error:", err.Error())
		return err
	}
	if len(list) == 0 {
		fmt.Println("The archive is empty")
		return nil
	}

	for _, d := range list {
		fmt.Printf("%s  [%s/%s]  %s  (created %s)\n",
			d.ID, d.Classification, d.Status, d.Name, d.CreatedDate)
	}
	return nil
}

// Open prints one dossier together with its documents and images.
func (a *App) Open(ctx context.Context, id string) error {
	d, err := a.dossiers.Get(ctx, id)
	if err != nil {
		fmt.Println("Error:", err.Error())
		return err
	}

	fmt.Printf("%s  %s\n", d.ID, d.Name)
	fmt.Printf("  Classification: %s", d.Classification)
	if d.Declassified != "" {
		fmt.Printf(" (declassify on %s)", d.Declassified)
	}
	fmt.Println()
	fmt.Printf("  Status: %s, created %s\n", d.Status, d.CreatedDate)
	if d.Description != "" {
		fmt.Println("  " + d.Description)
	}

	docs, err := a.documents.ForDossier(ctx, id)
	if err != nil {
		fmt.Println("Error:", err.Error())
		return err
	}
	fmt.Printf("Documents (%d):\n", len(docs))
	for _, doc := range docs {
		loc := "inline"
		if doc.Payload().Kind == models.AttachmentRemote {
			loc = "blob"
		}
		fmt.Printf("  %s  %s  %s  [%s]\n", doc.ID, doc.Code, doc.Date, loc)
	}

	imgs, err := a.images.ForDossier(ctx, id)
	if err != nil {
		fmt.Println("Error:", err.Error())
		return err
	}
	fmt.Printf("Images (%d):\n", len(imgs))
	for _, img := range imgs {
		fmt.Printf("  %s  %s  %s  %s\n", img.ID, img.Code, img.Category, img.Date)
	}
	return nil
}

// AddDossier interactively registers a new dossier.
func (a *App) AddDossier(ctx context.Context) error {
	name, err := GetSimpleText(a.reader, "Dossier name", os.Stdout)
	if err != nil {
		return err
	}
	classification, err := GetChoice(a.reader, "Classification", classifications, os.Stdout)
	if err != nil {
		return err
	}
	declassified, err := GetSimpleText(a.reader, "Declassification date (MM/DD/YYYY, empty for none)", os.Stdout)
	if err != nil {
		return err
	}
	status, err := GetChoice(a.reader, "Status", statuses, os.Stdout)
	if err != nil {
		return err
	}
	description, err := GetMultiline(a.reader, "Description", os.Stdout)
	if err != nil {
		return err
	}

	id, err := a.dossiers.Add(ctx, models.Dossier{
		Name:           name,
		Classification: models.Classification(classification),
		Declassified:   declassified,
		Status:         models.DossierStatus(status),
		Description:    description,
	})
	if err != nil {
		fmt.Println("Error:", err.Error())
		return err
	}

	fmt.Println("Dossier registered:", id)
	return nil
}

// EditDossier interactively updates a dossier; Enter keeps a field as is.
func (a *App) EditDossier(ctx context.Context, id string) error {
	d, err := a.dossiers.Get(ctx, id)
	if err != nil {
		fmt.Println("Error:", err.Error())
		return err
	}

	name, err := GetOptionalText(a.reader, "Name", d.Name, os.Stdout)
	if err != nil {
		return err
	}
	classification, err := GetOptionalText(a.reader, "Classification", string(d.Classification), os.Stdout)
	if err != nil {
		return err
	}
	status, err := GetOptionalText(a.reader, "Status", string(d.Status), os.Stdout)
	if err != nil {
		return err
	}
	description, err := GetOptionalText(a.reader, "Description", d.Description, os.Stdout)
	if err != nil {
		return err
	}

	u := models.DossierUpdate{}
	if name != d.Name {
		u.Name = &name
	}
	if classification != string(d.Classification) {
		c := models.Classification(classification)
		u.Classification = &c
	}
	if status != string(d.Status) {
		s := models.DossierStatus(status)
		u.Status = &s
	}
	if description != d.Description {
		u.Description = &description
	}

	if err := a.dossiers.Update(ctx, id, u); err != nil {
		fmt.Println("Error:", err.Error())
		return err
	}

	fmt.Println("Dossier updated:", id)
	return nil
}

// DeleteDossier removes a dossier and everything filed under it, after
// confirmation.
func (a *App) DeleteDossier(ctx context.Context, id string) error {
	answer, err := GetSimpleText(a.reader,
		fmt.Sprintf("Delete dossier %s with all its documents and images? (yes/no)", id), os.Stdout)
	if err != nil {
		return err
	}
	if answer != "yes" {
		fmt.Println("Cancelled")
		return nil
	}

	if err := a.dossiers.Delete(ctx, id); err != nil {
		fmt.Println("Error:", err.Error())
		return err
	}

	fmt.Println("Dossier deleted:", id)
	return nil
}
