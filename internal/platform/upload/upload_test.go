package upload

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDiskStoreSave(t *testing.T) {
	dir := t.TempDir()
	store := NewDiskStore(filepath.Join(dir, "uploads"))
	store.now = func() time.Time { return time.UnixMilli(1700000000000) }

	path, err := store.Save("receipt.png", "image/png", bytes.NewReader([]byte("png-bytes")))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	want := filepath.Join(dir, "uploads", "1700000000000-receipt.png")
	if path != want {
		t.Errorf("path = %q, want %q", path, want)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("stored file: %v", err)
	}
	if string(data) != "png-bytes" {
		t.Errorf("stored content = %q", data)
	}
}

func TestDiskStoreCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")
	store := NewDiskStore(dir)

	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Fatal("directory should not exist before first save")
	}
	if _, err := store.Save("doc.pdf", "application/pdf", strings.NewReader("%PDF-1.4")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("directory not created: %v", err)
	}
}

func TestDiskStoreValidation(t *testing.T) {
	store := NewDiskStore(t.TempDir())

	tests := []struct {
		name        string
		fileName    string
		contentType string
		wantErr     error
	}{
		{"missing name", "", "image/png", ErrMissingFileName},
		{"bad extension", "malware.exe", "image/png", ErrUnsupportedType},
		{"bad content type", "photo.png", "application/octet-stream", ErrUnsupportedType},
		{"extension only passes", "doc.pdf", "text/html", ErrUnsupportedType},
		{"content type only passes", "doc.txt", "application/pdf", ErrUnsupportedType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.Save(tt.fileName, tt.contentType, strings.NewReader("x"))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Save() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDiskStoreAcceptsCharsetSuffix(t *testing.T) {
	store := NewDiskStore(t.TempDir())
	if _, err := store.Save("scan.jpeg", "image/jpeg; charset=binary", strings.NewReader("x")); err != nil {
		t.Errorf("Save: %v", err)
	}
}

func TestDiskStoreSizeLimit(t *testing.T) {
	store := NewDiskStore(t.TempDir())

	big := bytes.NewReader(make([]byte, MaxFileSize+1))
	if _, err := store.Save("big.png", "image/png", big); !errors.Is(err, ErrFileTooLarge) {
		t.Errorf("oversize Save() error = %v, want ErrFileTooLarge", err)
	}

	exact := bytes.NewReader(make([]byte, MaxFileSize))
	if _, err := store.Save("exact.png", "image/png", exact); err != nil {
		t.Errorf("exact-size Save() error = %v", err)
	}
}

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"receipt.png", "receipt.png"},
		{"../../etc/passwd.png", "passwd.png"},
		{"my scan (1).pdf", "my_scan__1_.pdf"},
	}
	for _, tt := range tests {
		if got := sanitizeFileName(tt.in); got != tt.want {
			t.Errorf("sanitizeFileName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
