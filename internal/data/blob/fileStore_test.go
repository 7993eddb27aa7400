package blob_test

import (
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/akolanti/DocScanAPI/internal/data/blob"
)

func newTestStore(t *testing.T) *blob.FileStore {
	t.Helper()
	t.Chdir(t.TempDir())

	fileStore, err := blob.GetFileStore("uploads")
	if err != nil {
		t.Fatalf("GetFileStore failed: %v", err)
	}
	return fileStore
}

func TestFileStore_SaveOpenRemove(t *testing.T) {
	fileStore := newTestStore(t)
	content := "fake image bytes"

	path, err := fileStore.Save("passport_scan.jpg", strings.NewReader(content))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if filepath.Ext(path) != ".jpg" {
		t.Errorf("stored path %q should keep the original extension", path)
	}
	// the generated name must not leak the original one
	if strings.Contains(filepath.Base(path), "passport_scan") {
		t.Errorf("stored name %q leaks the upload name", filepath.Base(path))
	}

	file, found := fileStore.Open(path)
	if !found {
		t.Fatal("stored file could not be opened")
	}
	stored, err := io.ReadAll(file)
	file.Close()
	if err != nil {
		t.Fatalf("reading stored file failed: %v", err)
	}
	if string(stored) != content {
		t.Errorf("stored content got %q, want %q", stored, content)
	}

	fileStore.Remove(path)
	if _, found := fileStore.Open(path); found {
		t.Error("file still opens after Remove")
	}
}

func TestFileStore_DefaultsExtensionToPdf(t *testing.T) {
	fileStore := newTestStore(t)

	path, err := fileStore.Save("upload-without-extension", strings.NewReader("data"))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if filepath.Ext(path) != ".pdf" {
		t.Errorf("extensionless uploads should default to .pdf, got %q", path)
	}
}

func TestFileStore_OpenMissingFile(t *testing.T) {
	fileStore := newTestStore(t)

	if _, found := fileStore.Open(filepath.Join("uploads", "ghost.jpg")); found {
		t.Error("expected found=false for a missing file")
	}
}

func TestFileStore_UniqueNamesForSameUpload(t *testing.T) {
	fileStore := newTestStore(t)

	first, err := fileStore.Save("scan.png", strings.NewReader("a"))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	second, err := fileStore.Save("scan.png", strings.NewReader("b"))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if first == second {
		t.Error("two uploads with the same name collided on disk")
	}
}
