package filex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeDataURL_RoundTrip(t *testing.T) {
	data := []byte{0x25, 0x50, 0x44, 0x46, 0x00, 0xFF}
	u := EncodeDataURL("application/pdf", data)

	require.True(t, IsDataURL(u))

	ct, decoded, err := DecodeDataURL(u)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", ct)
	assert.Equal(t, data, decoded)
}

func TestDecodeDataURL_PlainPayload(t *testing.T) {
	ct, decoded, err := DecodeDataURL("data:text/plain,hello%20world")
	require.NoError(t, err)
	assert.Equal(t, "text/plain", ct)
	assert.Equal(t, []byte("hello world"), decoded)
}

func TestDecodeDataURL_Malformed(t *testing.T) {
	_, _, err := DecodeDataURL("not-a-data-url")
	assert.Error(t, err)

	_, _, err = DecodeDataURL("data:application/pdf;base64")
	assert.Error(t, err)
}

func TestIsBinaryFile(t *testing.T) {
	assert.True(t, IsBinaryFile("report.PDF", ""))
	assert.True(t, IsBinaryFile("scan.jpg", ""))
	assert.True(t, IsBinaryFile("anything", "image/png"))
	assert.True(t, IsBinaryFile("anything", "application/pdf"))
	assert.False(t, IsBinaryFile("notes.txt", "text/plain"))
	assert.False(t, IsBinaryFile("readme", ""))
}

func TestReadFileContent_TextFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("field report"), 0o660))

	content, _, err := ReadFileContent(path)
	require.NoError(t, err)
	assert.Equal(t, "field report", content)
}

func TestReadFileContent_BinaryFileBecomesDataURL(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "photo.png")
	require.NoError(t, os.WriteFile(path, []byte{0x89, 0x50, 0x4E, 0x47}, 0o660))

	content, ct, err := ReadFileContent(path)
	require.NoError(t, err)
	assert.True(t, IsDataURL(content))
	assert.Equal(t, "image/png", ct)
}

func TestReadFileContent_MissingFile(t *testing.T) {
	_, _, err := ReadFileContent(filepath.Join(t.TempDir(), "absent.bin"))
	assert.Error(t, err)
}

func TestEnsureSubDir_CreatesAndIsIdempotent(t *testing.T) {
	tmp := t.TempDir()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tmp))
	t.Cleanup(func() { _ = os.Chdir(old) })

	first, err := EnsureSubDir("download")
	require.NoError(t, err)

	second, err := EnsureSubDir("download")
	require.NoError(t, err)
	require.Equal(t, first, second)

	fi, err := os.Stat(first)
	require.NoError(t, err)
	require.True(t, fi.IsDir())
}
