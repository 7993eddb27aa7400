package preprocess

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/akolanti/DocScanAPI/internal/domain/docModel"
)

var jpegBytes = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F'}
var pngBytes = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n'}

func writeUpload(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("writing test upload failed: %v", err)
	}
	return path
}

func TestPrepareImage_JpegPassesThrough(t *testing.T) {
	path := writeUpload(t, "scan.jpg", jpegBytes)

	prepared, err := NewConverter().PrepareImage(context.Background(), path)
	if err != nil {
		t.Fatalf("PrepareImage failed: %v", err)
	}

	if prepared.Image.MIMEType != "image/jpeg" {
		t.Errorf("MIMEType got %q, want image/jpeg", prepared.Image.MIMEType)
	}
	if string(prepared.Image.Data) != string(jpegBytes) {
		t.Error("image bytes were altered on passthrough")
	}

	sum := sha256.Sum256(jpegBytes)
	if prepared.ContentKey != hex.EncodeToString(sum[:]) {
		t.Errorf("ContentKey got %q, want the sha256 of the upload", prepared.ContentKey)
	}
}

func TestPrepareImage_PngDetectedBySniffing(t *testing.T) {
	// deliberately misleading extension; content sniffing must win
	path := writeUpload(t, "scan.jpg", pngBytes)

	prepared, err := NewConverter().PrepareImage(context.Background(), path)
	if err != nil {
		t.Fatalf("PrepareImage failed: %v", err)
	}
	if prepared.Image.MIMEType != "image/png" {
		t.Errorf("MIMEType got %q, want image/png", prepared.Image.MIMEType)
	}
}

func TestPrepareImage_GarbagePdfIsConversionError(t *testing.T) {
	path := writeUpload(t, "broken.pdf", []byte("this is not a pdf"))

	_, err := NewConverter().PrepareImage(context.Background(), path)

	var convErr *docModel.ConversionError
	if !errors.As(err, &convErr) {
		t.Fatalf("expected a ConversionError, got %v", err)
	}
}

func TestPrepareImage_PdfDetectedByMagicBytes(t *testing.T) {
	// pdf content behind an image extension still goes down the pdf path,
	// where the truncated body fails conversion
	path := writeUpload(t, "mislabeled.jpg", []byte("%PDF-1.4\ntruncated"))

	_, err := NewConverter().PrepareImage(context.Background(), path)

	var convErr *docModel.ConversionError
	if !errors.As(err, &convErr) {
		t.Fatalf("expected a ConversionError, got %v", err)
	}
}

func TestPrepareImage_MissingFile(t *testing.T) {
	_, err := NewConverter().PrepareImage(context.Background(), filepath.Join(t.TempDir(), "ghost.jpg"))
	if err == nil {
		t.Fatal("expected an error for a missing upload")
	}
}

func TestSniffImageType_Fallbacks(t *testing.T) {
	tests := []struct {
		name string
		path string
		raw  []byte
		want string
	}{
		{"Jpeg_Magic", "x.bin", jpegBytes, "image/jpeg"},
		{"Png_Magic", "x.bin", pngBytes, "image/png"},
		{"Unsniffable_Png_Extension", "scan.PNG", []byte("??"), "image/png"},
		{"Unsniffable_Webp_Extension", "scan.webp", []byte("??"), "image/webp"},
		{"Unsniffable_No_Extension", "scan", []byte("??"), "image/jpeg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sniffImageType(tt.path, tt.raw); got != tt.want {
				t.Errorf("sniffImageType(%q) got %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestIsPDF(t *testing.T) {
	if !isPDF("doc.PDF", []byte("anything")) {
		t.Error("extension match should be case-insensitive")
	}
	if !isPDF("doc.jpg", []byte("%PDF-1.7 rest of file")) {
		t.Error("magic bytes should mark a pdf regardless of extension")
	}
	if isPDF("doc.jpg", jpegBytes) {
		t.Error("a jpeg is not a pdf")
	}
}
