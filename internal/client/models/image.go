package models

// Image is a photographic record filed under a dossier. Data holds the
// inline base64 data URL until the payload is promoted to the blob store,
// after which only DownloadURL remains.
type Image struct {
	// ID is assigned at creation as a time-based token prefixed "IMG-".
	ID        string `json:"id"`
	DossierID string `json:"dossierId"`
	Code      string `json:"code"`
	Category  string `json:"category"`
	Date      string `json:"date"`
	Data      string `json:"data,omitempty"`
	FileName  string `json:"fileName,omitempty"`
	FileType  string `json:"fileType,omitempty"`
	DownloadURL string `json:"downloadURL,omitempty"`
}

// Payload returns the image bytes reference as a tagged variant.
func (i Image) Payload() Attachment {
	if i.DownloadURL != "" {
		return RemoteAttachment(i.DownloadURL)
	}
	return InlineAttachment(i.Data)
}

// SetPayload stores the resolved attachment variant onto the wire fields.
func (i *Image) SetPayload(a Attachment) {
	switch a.Kind {
	case AttachmentRemote:
		i.DownloadURL = a.URL
		i.Data = ""
	case AttachmentInline:
		i.Data = a.Inline
		i.DownloadURL = ""
	default:
		i.Data = ""
		i.DownloadURL = ""
	}
}

// ImageUpdate is a partial-field update; nil fields are left unchanged.
type ImageUpdate struct {
	Code     *string `json:"code,omitempty"`
	Category *string `json:"category,omitempty"`
	Date     *string `json:"date,omitempty"`
}

func (u ImageUpdate) Apply(i *Image) {
	if u.Code != nil {
		i.Code = *u.Code
	}
	if u.Category != nil {
		i.Category = *u.Category
	}
	if u.Date != nil {
		i.Date = *u.Date
	}
}

func (u ImageUpdate) Fields() map[string]any {
	m := map[string]any{}
	if u.Code != nil {
		m["code"] = *u.Code
	}
	if u.Category != nil {
		m["category"] = *u.Category
	}
	if u.Date != nil {
		m["date"] = *u.Date
	}
	return m
}
