package models

// Document is a record filed under a dossier. Exactly one of Content and
// DownloadURL is set for documents carrying a payload: Content holds inline
// text or a base64 data URL, DownloadURL points at the promoted blob.
type Document struct {
	// ID is assigned at creation as a time-based token prefixed "DOC-".
	ID        string `json:"id"`
	DossierID string `json:"dossierId"`
	Code      string `json:"code"`
	Date      string `json:"date"`
	Content   string `json:"content,omitempty"`
	FileName  string `json:"fileName,omitempty"`
	FileType  string `json:"fileType,omitempty"`
	DownloadURL string `json:"downloadURL,omitempty"`
}

// Payload returns the document body as a tagged variant. A promoted blob
// reference wins over leftover inline content.
func (d Document) Payload() Attachment {
	if d.DownloadURL != "" {
		return RemoteAttachment(d.DownloadURL)
	}
	return InlineAttachment(d.Content)
}

// SetPayload stores the resolved attachment variant onto the wire fields,
// clearing whichever representation does not apply.
func (d *Document) SetPayload(a Attachment) {
	switch a.Kind {
	case AttachmentRemote:
		d.DownloadURL = a.URL
		d.Content = ""
	case AttachmentInline:
		d.Content = a.Inline
		d.DownloadURL = ""
	default:
		d.Content = ""
		d.DownloadURL = ""
	}
}

// DocumentUpdate is a partial-field update; nil fields are left unchanged.
type DocumentUpdate struct {
	Code    *string `json:"code,omitempty"`
	Date    *string `json:"date,omitempty"`
	Content *string `json:"content,omitempty"`
}

func (u DocumentUpdate) Apply(d *Document) {
	if u.Code != nil {
		d.Code = *u.Code
	}
	if u.Date != nil {
		d.Date = *u.Date
	}
	if u.Content != nil {
		d.Content = *u.Content
	}
}

func (u DocumentUpdate) Fields() map[string]any {
	m := map[string]any{}
	if u.Code != nil {
		m["code"] = *u.Code
	}
	if u.Date != nil {
		m["date"] = *u.Date
	}
	if u.Content != nil {
		m["content"] = *u.Content
	}
	return m
}
