// Package filex handles the file side of archive imports: reading local
// files into data URLs, recognizing binary formats, and decoding data URLs
// back into raw bytes for blob uploads.
package filex

import (
	"encoding/base64"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// binaryExtensions lists formats that are imported as base64 data URLs
// rather than plain text.
var binaryExtensions = map[string]struct{}{
	".pdf": {}, ".doc": {}, ".docx": {},
	".jpg": {}, ".jpeg": {}, ".png": {}, ".gif": {}, ".bmp": {},
}

// IsBinaryFile reports whether a file should be treated as binary, based on
// its extension and an optional MIME type hint.
func IsBinaryFile(name, contentType string) bool {
	if strings.HasPrefix(contentType, "image/") || contentType == "application/pdf" {
		return true
	}
	_, ok := binaryExtensions[strings.ToLower(filepath.Ext(name))]
	return ok
}

// DetectContentType guesses a MIME type from the file extension first and
// falls back to content sniffing.
func DetectContentType(name string, data []byte) string {
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(name))); ct != "" {
		return ct
	}
	return http.DetectContentType(data)
}

// EncodeDataURL wraps raw bytes into a base64 data URL with the given MIME
// type, the inline representation used by document content and image data.
func EncodeDataURL(contentType string, data []byte) string {
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// IsDataURL reports whether s is an inline data: URL payload.
func IsDataURL(s string) bool {
	return strings.HasPrefix(s, "data:")
}

// DecodeDataURL splits a data URL into its MIME type and decoded bytes.
// Both base64 and URL-escaped plain payloads are supported.
func DecodeDataURL(s string) (contentType string, data []byte, err error) {
	if !IsDataURL(s) {
		return "", nil, fmt.Errorf("not a data URL")
	}
	meta, payload, found := strings.Cut(s[len("data:"):], ",")
	if !found {
		return "", nil, fmt.Errorf("malformed data URL: missing comma")
	}

	isBase64 := false
	parts := strings.Split(meta, ";")
	contentType = parts[0]
	for _, p := range parts[1:] {
		if p == "base64" {
			isBase64 = true
		}
	}
	if contentType == "" {
		contentType = "text/plain"
	}

	if isBase64 {
		data, err = base64.StdEncoding.DecodeString(payload)
	} else {
		var unescaped string
		unescaped, err = url.QueryUnescape(payload)
		data = []byte(unescaped)
	}
	if err != nil {
		return "", nil, fmt.Errorf("decode data URL payload: %w", err)
	}
	return contentType, data, nil
}

// ReadFileContent reads a local file and returns its content in the form the
// archive stores inline: binaries become base64 data URLs, everything else
// is returned as plain text. The detected MIME type is returned alongside.
func ReadFileContent(path string) (content string, contentType string, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("read file %s: %w", path, err)
	}

	name := filepath.Base(path)
	contentType = DetectContentType(name, data)

	if IsBinaryFile(name, contentType) {
		return EncodeDataURL(contentType, data), contentType, nil
	}
	return string(data), contentType, nil
}

// EnsureSubDir creates (if needed) and returns a subdirectory of the current
// working directory, used for exported document downloads.
func EnsureSubDir(dirName string) (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getwd: %w", err)
	}

	dir := filepath.Join(cwd, dirName)

	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}
