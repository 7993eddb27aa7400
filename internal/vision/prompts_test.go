package vision

import (
	"strings"
	"testing"

	"github.com/akolanti/DocScanAPI/internal/domain/docModel"
)

func TestClassifyPrompt_ListsEveryRegisteredType(t *testing.T) {
	prompt := ClassifyPrompt()

	for _, docType := range docModel.RegisteredTypes() {
		if !strings.Contains(prompt, string(docType)) {
			t.Errorf("classify prompt is missing %q", docType)
		}
	}
	if !strings.Contains(prompt, "unknown") {
		t.Error("classify prompt must offer the unknown fallback")
	}
}

func TestExtractPrompt_ListsExpectedFields(t *testing.T) {
	fields, ok := docModel.FieldsFor(docModel.DocTypeDriverLicense)
	if !ok {
		t.Fatal("driver_license should be registered")
	}

	prompt := ExtractPrompt(docModel.DocTypeDriverLicense, fields)

	if !strings.Contains(prompt, "driver_license") {
		t.Error("extract prompt should name the document type")
	}
	for _, field := range fields {
		if !strings.Contains(prompt, field) {
			t.Errorf("extract prompt is missing field %q", field)
		}
	}
	if !strings.Contains(prompt, "JSON") {
		t.Error("extract prompt must ask for JSON output")
	}
}
