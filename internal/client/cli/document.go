package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"archivedb/internal/client/models"
	"archivedb/internal/common"
	"archivedb/internal/filex"
	"archivedb/internal/netx"
)

// downloadsDir is where exported document payloads are written.
const downloadsDir = "downloads"

// Files past this size get an explicit confirmation before import.
const oversizeWarnBytes = 100 << 20

// AddDocument interactively files a new document under a dossier. The body
// is either typed in or read from a local file; binary files are embedded
// as data URLs and promoted to the blob store by the repository.
func (a *App) AddDocument(ctx context.Context, dossierID string) error {
	var err error
	if dossierID == "" {
		dossierID, err = GetSimpleText(a.reader, "Dossier ID", os.Stdout)
		if err != nil {
			return err
		}
	}

	code, err := GetSimpleText(a.reader, "Document code", os.Stdout)
	if err != nil {
		return err
	}

	doc := models.Document{DossierID: dossierID, Code: code}

	path, err := GetSimpleText(a.reader, "File path (empty to type the text in)", os.Stdout)
	if err != nil {
		return err
	}
	if path != "" {
		content, contentType, err := filex.ReadFileContent(path)
		if err != nil {
			fmt.Println("Error:", err.Error())
			return err
		}
		doc.Content = content
		doc.FileName = filepath.Base(path)
		doc.FileType = contentType
	} else {
		doc.Content, err = GetMultiline(a.reader, "Document text", os.Stdout)
		if err != nil {
			return err
		}
	}

	id, err := a.documents.Add(ctx, doc)
	if err != nil {
		fmt.Println("Error:", err.Error())
		return err
	}

	fmt.Println("Document filed:", id)
	return nil
}

// ImportFiles files a batch of local files under one dossier, generating
// document codes from the file names. The batch stops at the first quota
// failure; everything already imported stays.
func (a *App) ImportFiles(ctx context.Context, dossierID string, paths []string) error {
	imported := 0
	for i, path := range paths {
		if info, err := os.Stat(path); err == nil && info.Size() > oversizeWarnBytes {
			answer, err := GetSimpleText(a.reader,
				fmt.Sprintf("%s is %d MB, import anyway? (yes/no)", path, info.Size()>>20), os.Stdout)
			if err != nil {
				return err
			}
			if answer != "yes" {
				fmt.Println("Skipping", path)
				continue
			}
		}

		content, contentType, err := filex.ReadFileContent(path)
		if err != nil {
			fmt.Printf("Skipping %s: %s\n", path, err.Error())
			continue
		}

		name := filepath.Base(path)
		id, err := a.documents.Add(ctx, models.Document{
			DossierID: dossierID,
			Code:      makeDocCode(name, i+1),
			Content:   content,
			FileName:  name,
			FileType:  contentType,
		})
		if err != nil {
			if errors.Is(err, common.ErrQuotaExceeded) {
				fmt.Printf("Local storage quota exceeded after %d file(s), aborting import\n", imported)
				return err
			}
			fmt.Println("Error:", err.Error())
			return err
		}

		fmt.Printf("Imported %s as %s\n", name, id)
		imported++
	}

	fmt.Printf("Imported %d file(s)\n", imported)
	return nil
}

// makeDocCode derives a document code from a file name: the base name
// without extension, uppercased and stripped to alphanumerics, truncated to
// 15 characters, with the batch position appended.
func makeDocCode(fileName string, n int) string {
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
		code = "FILE"
	}
	return fmt.Sprintf("DOC-%s-%d", code, n)
}

// Export writes a document's payload into the downloads directory,
// fetching it from the blob store when it was promoted.
func (a *App) Export(ctx context.Context, id string) error {
	doc, err := a.documents.Get(ctx, id)
	if err != nil {
		fmt.Println("Error:", err.Error())
		return err
	}

	var data []byte
	switch payload := doc.Payload(); payload.Kind {
	case models.AttachmentRemote:
		data, err = netx.DownloadURL(payload.URL)
		if err != nil {
			fmt.Println("Error:", err.Error())
			return err
		}
	case models.AttachmentInline:
		if filex.IsDataURL(payload.Inline) {
			_, data, err = filex.DecodeDataURL(payload.Inline)
			if err != nil {
				fmt.Println("Error:", err.Error())
				return err
			}
		} else {
			data = []byte(payload.Inline)
		}
	default:
		fmt.Println("Document has no payload")
		return nil
	}

	dir, err := filex.EnsureSubDir(downloadsDir)
	if err != nil {
		fmt.Println("Error:", err.Error())
		return err
	}

	name := doc.FileName
	if name == "" {
		name = doc.ID + ".txt"
	}
	target := filepath.Join(dir, name)
	if err := os.WriteFile(target, data, 0o600); err != nil {
		fmt.Println("Error:", err.Error())
		return err
	}

	fmt.Println("Exported to", target)
	return nil
}

// EditDocument interactively updates a document's code, date and inline
// content. Promoted payloads keep their blob reference.
func (a *App) EditDocument(ctx context.Context, id string) error {
	doc, err := a.documents.Get(ctx, id)
	if err != nil {
		fmt.Println("Error:", err.Error())
		return err
	}

	code, err := GetOptionalText(a.reader, "Code", doc.Code, os.Stdout)
	if err != nil {
		return err
	}
	date, err := GetOptionalText(a.reader, "Date", doc.Date, os.Stdout)
	if err != nil {
		return err
	}

	u := models.DocumentUpdate{}
	if code != doc.Code {
		u.Code = &code
	}
	if date != doc.Date {
		u.Date = &date
	}

	if doc.Payload().Kind == models.AttachmentInline && !filex.IsDataURL(doc.Content) {
		content, err := GetOptionalText(a.reader, "Content", doc.Content, os.Stdout)
		if err != nil {
			return err
		}
		if content != doc.Content {
			u.Content = &content
		}
	}

	if err := a.documents.Update(ctx, id, u); err != nil {
		fmt.Println("Error:", err.Error())
		return err
	}

	fmt.Println("Document updated:", id)
	return nil
}

// DeleteDocument removes one document.
func (a *App) DeleteDocument(ctx context.Context, id string) error {
	if err := a.documents.Delete(ctx, id); err != nil {
		fmt.Println("Error:", err.Error())
		return err
	}
	fmt.Println("Document deleted:", id)
	return nil
}
