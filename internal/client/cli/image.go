package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"archivedb/internal/client/models"
	"archivedb/internal/filex"
)

var imageCategories = []string{"SURVEILLANCE", "RECONNAISSANCE", "EVIDENCE", "PERSONNEL"}

// AddImage interactively files a new image under a dossier. The payload is
// read from a local image file and embedded as a data URL; the repository
// promotes it to the blob store when the mirror is reachable.
func (a *App) AddImage(ctx context.Context, dossierID string) error {
	var err error
	if dossierID == "" {
		dossierID, err = GetSimpleText(a.reader, "Dossier ID", os.Stdout)
		if err != nil {
			return err
		}
	}

	code, err := GetSimpleText(a.reader, "Image code (empty to generate one)", os.Stdout)
	if err != nil {
		return err
	}
	category, err := GetChoice(a.reader, "Category", imageCategories, os.Stdout)
	if err != nil {
		return err
	}
	path, err := GetSimpleText(a.reader, "Image file path", os.Stdout)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Println("Error:", err.Error())
		return err
	}
	name := filepath.Base(path)
	contentType := filex.DetectContentType(name, data)
	if !strings.HasPrefix(contentType, "image/") {
		err = fmt.Errorf("%s is not an image (%s)", name, contentType)
		fmt.Println("Error:", err.Error())
		return err
	}

	if code == "" {
		code = makeImageCode(name)
	}

	id, err := a.images.Add(ctx, models.Image{
		DossierID: dossierID,
		Code:      code,
		Category:  category,
		Data:      filex.EncodeDataURL(contentType, data),
		FileName:  name,
		FileType:  contentType,
	})
	if err != nil {
		fmt.Println("Error:", err.Error())
		return err
	}

	fmt.Println("Image filed:", id)
	return nil
}

// makeImageCode derives an image code from the file name plus a time-based
// token, so two imports of the same file stay distinguishable.
func makeImageCode(fileName string) string {
	base := strings.TrimSuffix(fileName, filepath.Ext(fileName))

	var b strings.Builder
	for _, r := range strings.ToUpper(base) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	code := b.String()
	if len(code) > 15 {
		code = code[:15]
	}
	if code == "" {
		code = "IMG"
	}
	return fmt.Sprintf("IMG-%s-%05d", code, time.Now().UnixMilli()%100000)
}

// EditImage interactively updates an image's code, category and date.
func (a *App) EditImage(ctx context.Context, id string) error {
	img, err := a.images.Get(ctx, id)
	if err != nil {
		fmt.Println("Error:", err.Error())
		return err
	}

	code, err := GetOptionalText(a.reader, "Code", img.Code, os.Stdout)
	if err != nil {
		return err
	}
	category, err := GetOptionalText(a.reader, "Category", img.Category, os.Stdout)
	if err != nil {
		return err
	}
	date, err := GetOptionalText(a.reader, "Date", img.Date, os.Stdout)
	if err != nil {
		return err
	}

	u := models.ImageUpdate{}
	if code != img.Code {
		u.Code = &code
	}
	if category != img.Category {
		u.Category = &category
	}
	if date != img.Date {
		u.Date = &date
	}

	if err := a.images.Update(ctx, id, u); err != nil {
		fmt.Println("Error:", err.Error())
		return err
	}

	fmt.Println("Image updated:", id)
	return nil
}

// DeleteImage removes one image.
func (a *App) DeleteImage(ctx context.Context, id string) error {
	if err := a.images.Delete(ctx, id); err != nil {
		fmt.Println("Error:", err.Error())
		return err
	}
	fmt.Println("Image deleted:", id)
	return nil
}
