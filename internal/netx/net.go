// Package netx contains small HTTP helpers for fetching promoted blobs by
// their download URL.
package netx

import (
	"fmt"
	"io"
	"net/http"
)

// DownloadURL fetches the content behind a blob download URL, such as the
// one stored on a promoted document or image.
func DownloadURL(url string) ([]byte, error) {
	resp, err := http.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("download failed: %s; body: %s", resp.Status, string(b))
	}
	return io.ReadAll(resp.Body)
}
