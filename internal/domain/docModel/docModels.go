package docModel

import (
	"context"
	"io"
	"strings"
	"time"
)

type DocumentType string

const (
	DocTypePassport      DocumentType = "passport"
	DocTypeDriverLicense DocumentType = "driver_license"
	DocTypeEADCard       DocumentType = "ead_card"
	DocTypeUnknown       DocumentType = "unknown"
)

// registeredTypes is the fixed registry; order here is the order fields are
// listed in the extraction prompt.
var registeredTypes = []DocumentType{DocTypePassport, DocTypeDriverLicense, DocTypeEADCard}

var documentFields = map[DocumentType][]string{
	DocTypePassport:      {"full_name", "date_of_birth", "country", "issue_date", "expiration_date"},
	DocTypeDriverLicense: {"license_number", "date_of_birth", "issue_date", "expiration_date", "first_name", "last_name"},
	DocTypeEADCard:       {"card_number", "category", "card_expires_date", "last_name", "first_name"},
}

func RegisteredTypes() []DocumentType {
	out := make([]DocumentType, len(registeredTypes))
	copy(out, registeredTypes)
	return out
}

// FieldsFor returns the expected field list for a registered type.
// unknown (or anything unregistered) has no fields and ok=false.
func FieldsFor(docType DocumentType) ([]string, bool) {
	fields, ok := documentFields[docType]
	return fields, ok
}

// ParseDocumentType coerces a raw model label to a registered type.
// Anything the registry does not recognize becomes unknown.
func ParseDocumentType(raw string) DocumentType {
	label := DocumentType(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := documentFields[label]; ok {
		return label
	}
	return DocTypeUnknown
}

// IsValidType reports whether a type may be written to a record:
// any registered type, or the unknown fallback.
func IsValidType(docType DocumentType) bool {
	if docType == DocTypeUnknown {
		return true
	}
	_, ok := documentFields[docType]
	return ok
}

type FieldMap map[string]any

// ExtractionResult is what one pipeline run produces.
type ExtractionResult struct {
	DocumentType DocumentType `json:"document_type"`
	Fields       FieldMap     `json:"fields"`
}

type DocumentRecord struct {
	Id           int64        `json:"id"`
	FileName     string       `json:"file_name"`
	DocumentType DocumentType `json:"document_type"`
	Fields       FieldMap     `json:"fields"`
	FilePath     string       `json:"file_path"`
	CreatedAt    time.Time    `json:"created_at"`
}

type DocumentStore interface {
	SaveDocument(ctx context.Context, record DocumentRecord) (DocumentRecord, error)
	ListDocuments(ctx context.Context) ([]DocumentRecord, error)
	GetDocument(ctx context.Context, id int64) (DocumentRecord, bool)
	UpdateDocument(ctx context.Context, id int64, docType DocumentType, fields FieldMap) (DocumentRecord, bool)
}

type BlobStore interface {
	Save(originalName string, content io.Reader) (string, error)
	Open(path string) (io.ReadCloser, bool)
	Remove(path string)
}
