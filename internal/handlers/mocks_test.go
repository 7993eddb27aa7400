package handlers_test

import (
	"context"
	"io"
	"strings"

	"github.com/akolanti/DocScanAPI/internal/domain/docModel"
)

// MockProcessor implements handlers.DocumentProcessor
type MockProcessor struct {
	OnProcessDocument func(ctx context.Context, filePath string) (docModel.ExtractionResult, error)
}

func (m *MockProcessor) ProcessDocument(ctx context.Context, filePath string) (docModel.ExtractionResult, error) {
	if m.OnProcessDocument != nil {
		return m.OnProcessDocument(ctx, filePath)
	}
	return docModel.ExtractionResult{
		DocumentType: docModel.DocTypePassport,
		Fields:       docModel.FieldMap{"first_name": "John", "last_name": "Doe"},
	}, nil
}

// MockDocumentStore implements docModel.DocumentStore
type MockDocumentStore struct {
	OnSaveDocument   func(ctx context.Context, record docModel.DocumentRecord) (docModel.DocumentRecord, error)
	OnListDocuments  func(ctx context.Context) ([]docModel.DocumentRecord, error)
	OnGetDocument    func(ctx context.Context, id int64) (docModel.DocumentRecord, bool)
	OnUpdateDocument func(ctx context.Context, id int64, docType docModel.DocumentType, fields docModel.FieldMap) (docModel.DocumentRecord, bool)
}

func (m *MockDocumentStore) SaveDocument(ctx context.Context, record docModel.DocumentRecord) (docModel.DocumentRecord, error) {
	if m.OnSaveDocument != nil {
		return m.OnSaveDocument(ctx, record)
	}
	record.Id = 1
	return record, nil
}

func (m *MockDocumentStore) ListDocuments(ctx context.Context) ([]docModel.DocumentRecord, error) {
	if m.OnListDocuments != nil {
		return m.OnListDocuments(ctx)
	}
	return nil, nil
}

func (m *MockDocumentStore) GetDocument(ctx context.Context, id int64) (docModel.DocumentRecord, bool) {
	if m.OnGetDocument != nil {
		return m.OnGetDocument(ctx, id)
	}
	return docModel.DocumentRecord{}, false
}

func (m *MockDocumentStore) UpdateDocument(ctx context.Context, id int64, docType docModel.DocumentType, fields docModel.FieldMap) (docModel.DocumentRecord, bool) {
	if m.OnUpdateDocument != nil {
		return m.OnUpdateDocument(ctx, id, docType, fields)
	}
	return docModel.DocumentRecord{}, false
}

// MockBlobStore implements docModel.BlobStore
type MockBlobStore struct {
	OnSave func(originalName string, content io.Reader) (string, error)
	OnOpen func(path string) (io.ReadCloser, bool)

	RemovedPaths []string
}

func (m *MockBlobStore) Save(originalName string, content io.Reader) (string, error) {
	if m.OnSave != nil {
		return m.OnSave(originalName, content)
	}
	return "/uploads/stored.jpg", nil
}

func (m *MockBlobStore) Open(path string) (io.ReadCloser, bool) {
	if m.OnOpen != nil {
		return m.OnOpen(path)
	}
	return io.NopCloser(strings.NewReader("stored bytes")), true
}

func (m *MockBlobStore) Remove(path string) {
	m.RemovedPaths = append(m.RemovedPaths, path)
}
