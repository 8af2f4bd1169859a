// Package filestorage persists uploaded guide documents on the local
// filesystem under their sanitized original filename.
package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/senadev/guias-backend/internal/pkg/logger"
)

// unsafeChars matches every character that is not safe inside a stored filename.
var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_.-]+`)

// SanitizeFilename strips path components and unsafe characters from a
// client-supplied filename so it can never escape the storage directory.
// Returns an empty string when nothing usable remains.
func SanitizeFilename(name string) string {
	// Drop any directory part, whichever separator the client used
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(name)

	name = unsafeChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, "._")

	if name == "" || name == "." || name == ".." {
		return ""
	}
	return name
}

// LocalStorage handles saving files to the local filesystem.
type LocalStorage struct {
	basePath string
}

// NewLocalStorage creates a new LocalStorage instance rooted at basePath,
// creating the directory if it does not exist yet.
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{
		basePath: basePath,
	}, nil
}

// BasePath returns the storage root directory.
func (ls *LocalStorage) BasePath() string {
	return ls.basePath
}

// SaveFile writes an uploaded file under its sanitized original filename and
// returns the stored name. An existing file with the same name is overwritten;
// concurrent identically-named uploads race and the last write wins.
func (ls *LocalStorage) SaveFile(fileHeader *multipart.FileHeader) (string, error) {
	if fileHeader == nil {
		return "", fmt.Errorf("no file provided")
	}

	filename := SanitizeFilename(fileHeader.Filename)
	if filename == "" {
		return "", fmt.Errorf("filename %q sanitizes to nothing", fileHeader.Filename)
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded file")
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	dstPath := filepath.Join(ls.basePath, filename)

	dst, err := os.Create(dstPath)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create destination file")
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, file); err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to copy uploaded file content")
		// Remove the partially written file
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("failed to save file content: %w", err)
	}

	logger.Info().Str("filename", fileHeader.Filename).Str("saved_as", filename).Msg("File saved")
	return filename, nil
}

// DeleteFile removes a stored file. Deleting a file that does not exist is
// treated as success so the operation stays idempotent.
func (ls *LocalStorage) DeleteFile(filename string) error {
	filename = SanitizeFilename(filename)
	if filename == "" {
		return nil
	}

	physicalPath := filepath.Join(ls.basePath, filename)

	if _, err := os.Stat(physicalPath); os.IsNotExist(err) {
		logger.Warn().Str("path", physicalPath).Msg("File to delete does not exist")
		return nil
	}

	if err := os.Remove(physicalPath); err != nil {
		logger.Error().Err(err).Str("path", physicalPath).Msg("Failed to delete file")
		return fmt.Errorf("failed to delete file: %w", err)
	}

	logger.Info().Str("path", physicalPath).Msg("File deleted")
	return nil
}

// GetFullPath returns the full filesystem path for a stored filename, or an
// empty string when the name is unusable.
func (ls *LocalStorage) GetFullPath(filename string) string {
	filename = SanitizeFilename(filename)
	if filename == "" {
		return ""
	}
	return filepath.Join(ls.basePath, filename)
}

// FileExists reports whether a stored file is present on disk.
func (ls *LocalStorage) FileExists(filename string) bool {
	fullPath := ls.GetFullPath(filename)
	if fullPath == "" {
		return false
	}
	_, err := os.Stat(fullPath)
	return err == nil
}
