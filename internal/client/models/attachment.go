package models

// AttachmentKind tags how a document or image payload is stored.
type AttachmentKind int

const (
	// AttachmentNone means the entity carries no file payload at all
	// (e.g. a manually typed text document keeps its text inline but has
	// no file attached).
	AttachmentNone AttachmentKind = iota
	// AttachmentInline means the payload is embedded as text or a base64
	// data URL.
	AttachmentInline
	// AttachmentRemote means the payload was promoted to the blob store
	// and only a download URL remains.
	AttachmentRemote
)

// Attachment is the tagged payload variant resolved once at creation time:
// a record holds either inline content or a blob reference, never both.
type Attachment struct {
	Kind AttachmentKind
	// Inline holds text or a data URL when Kind == AttachmentInline.
	Inline string
	// URL holds the blob download URL when Kind == AttachmentRemote.
	URL string
}

// InlineAttachment wraps embedded content. Empty content resolves to
// AttachmentNone.
func InlineAttachment(content string) Attachment {
	if content == "" {
		return Attachment{}
	}
	return Attachment{Kind: AttachmentInline, Inline: content}
}

// RemoteAttachment wraps a blob store reference.
func RemoteAttachment(url string) Attachment {
	if url == "" {
		return Attachment{}
	}
	return Attachment{Kind: AttachmentRemote, URL: url}
}
