package filestorage

import (
	"bytes"
	"mime/multipart"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain name", "guia.pdf", "guia.pdf"},
		{"spaces replaced", "mi guia final.pdf", "mi_guia_final.pdf"},
		{"path traversal stripped", "../../etc/passwd", "passwd"},
		{"windows path stripped", `C:\Users\ana\guia.pdf`, "guia.pdf"},
		{"unsafe characters replaced", "gu¡a?*.pdf", "gu_a_.pdf"},
		{"leading dots trimmed", "..hidden.pdf", "hidden.pdf"},
		{"only dots", "..", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeFilename(tt.input))
		})
	}
}

// newFileHeader builds a real multipart.FileHeader the way an HTTP upload would.
func newFileHeader(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	reader := multipart.NewReader(body, writer.Boundary())
	form, err := reader.ReadForm(int64(body.Len()) + 1024)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	files := form.File["file"]
	require.Len(t, files, 1)
	return files[0]
}

func TestSaveFileStoresUnderSanitizedOriginalName(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	stored, err := storage.SaveFile(newFileHeader(t, "mi guia.pdf", "%PDF-1.4 content"))
	require.NoError(t, err)
	assert.Equal(t, "mi_guia.pdf", stored)

	data, err := os.ReadFile(filepath.Join(storage.BasePath(), stored))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 content", string(data))
	assert.True(t, storage.FileExists(stored))
}

func TestSaveFileOverwritesExisting(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	_, err = storage.SaveFile(newFileHeader(t, "guia.pdf", "first version"))
	require.NoError(t, err)

	stored, err := storage.SaveFile(newFileHeader(t, "guia.pdf", "second version"))
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(storage.BasePath(), stored))
	require.NoError(t, err)
	assert.Equal(t, "second version", string(data))
}

func TestSaveFileRejectsNilAndUnusableNames(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	_, err = storage.SaveFile(nil)
	assert.Error(t, err)

	_, err = storage.SaveFile(newFileHeader(t, "..", "content"))
	assert.Error(t, err)
}

func TestDeleteFileIsIdempotent(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	stored, err := storage.SaveFile(newFileHeader(t, "guia.pdf", "content"))
	require.NoError(t, err)

	require.NoError(t, storage.DeleteFile(stored))
	assert.False(t, storage.FileExists(stored))

	// Deleting again must not fail.
	assert.NoError(t, storage.DeleteFile(stored))
	assert.NoError(t, storage.DeleteFile("never-existed.pdf"))
}

func TestGetFullPathStaysInsideBase(t *testing.T) {
	base := t.TempDir()
	storage, err := NewLocalStorage(base)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(base, "guia.pdf"), storage.GetFullPath("guia.pdf"))
	assert.Equal(t, filepath.Join(base, "passwd"), storage.GetFullPath("../../etc/passwd"))
	assert.Equal(t, "", storage.GetFullPath(".."))
}
