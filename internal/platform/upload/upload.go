// Package upload validates and stores claim supporting documents on local
// disk. A file is accepted only when both its extension and declared media
// type are in the allow-set and it fits the size limit.
package upload

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

var (
	ErrFileTooLarge    = errors.New("file too large")
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrMissingFileName = errors.New("file name is required")
)

// MaxFileSize is the maximum allowed document size in bytes (5 MiB).
const MaxFileSize = 5 * 1024 * 1024

// allowedExtensions lists accepted file extensions (lowercase, with dot).
var allowedExtensions = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".pdf":  true,
}

// allowedContentTypes lists accepted declared media types.
var allowedContentTypes = map[string]bool{
	"image/jpeg":      true,
	"image/jpg":       true,
	"image/png":       true,
	"application/pdf": true,
}

// Store saves validated documents and returns the stored path.
type Store interface {
	Save(fileName, contentType string, content io.Reader) (string, error)
}

// DiskStore writes documents into a fixed directory, creating it on first
// use. Stored names are timestamp-prefixed to avoid collisions.
type DiskStore struct {
	dir string
	now func() time.Time
}

// NewDiskStore returns a DiskStore rooted at dir.
func NewDiskStore(dir string) *DiskStore {
	return &DiskStore{dir: dir, now: time.Now}
}

// Save validates the file and writes it to disk. The returned path is the
// directory-relative location to record on the claim.
func (s *DiskStore) Save(fileName, contentType string, content io.Reader) (string, error) {
	if fileName == "" {
		return "", ErrMissingFileName
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	ct := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	if !allowedExtensions[ext] || !allowedContentTypes[ct] {
		return "", ErrUnsupportedType
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload directory: %w", err)
	}

	// Read through a limited reader so the size check holds even when
	// Content-Length is missing or wrong.
	data, err := io.ReadAll(io.LimitReader(content, MaxFileSize+1))
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > MaxFileSize {
		return "", ErrFileTooLarge
	}

	name := fmt.Sprintf("%d-%s", s.now().UnixMilli(), sanitizeFileName(fileName))
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}

	return path, nil
}

// sanitizeFileName strips any path components and characters that would be
// awkward in a URL.
func sanitizeFileName(name string) string {
	name = filepath.Base(name)
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == '-' || r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}
