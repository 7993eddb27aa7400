package pipeline_test

import (
	"context"

	"github.com/akolanti/DocScanAPI/internal/domain/docModel"
	"github.com/akolanti/DocScanAPI/internal/preprocess"
	"github.com/akolanti/DocScanAPI/internal/vision"
)

// MockPreparer implements pipeline.ImagePreparer
type MockPreparer struct {
	OnPrepareImage func(ctx context.Context, path string) (preprocess.Prepared, error)
}

func (m *MockPreparer) PrepareImage(ctx context.Context, path string) (preprocess.Prepared, error) {
	if m.OnPrepareImage != nil {
		return m.OnPrepareImage(ctx, path)
	}
	return preprocess.Prepared{
		Image:      vision.Image{MIMEType: "image/jpeg", Data: []byte("fake-jpeg")},
		ContentKey: "default-content-key",
	}, nil
}

// MockProvider implements vision.Provider
type MockProvider struct {
	// Control fields to simulate different behaviors
	OnClassify      func(ctx context.Context, img vision.Image) (string, error)
	OnExtractFields func(ctx context.Context, img vision.Image, docType docModel.DocumentType, fields []string) (string, error)

	ClassifyCalls int
	ExtractCalls  int
}

func (m *MockProvider) Classify(ctx context.Context, img vision.Image) (string, error) {
	m.ClassifyCalls++
	if m.OnClassify != nil {
		return m.OnClassify(ctx, img)
	}
	return "passport", nil
}

func (m *MockProvider) ExtractFields(ctx context.Context, img vision.Image, docType docModel.DocumentType, fields []string) (string, error) {
	m.ExtractCalls++
	if m.OnExtractFields != nil {
		return m.OnExtractFields(ctx, img, docType, fields)
	}
	return `{}`, nil
}

// MockResultCache implements pipeline.ResultCache
type MockResultCache struct {
	OnGetResult  func(ctx context.Context, key string) (docModel.ExtractionResult, bool)
	OnSaveResult func(ctx context.Context, key string, result docModel.ExtractionResult)
}

func (m *MockResultCache) GetResult(ctx context.Context, key string) (docModel.ExtractionResult, bool) {
	if m.OnGetResult != nil {
		return m.OnGetResult(ctx, key)
	}
	return docModel.ExtractionResult{}, false
}

func (m *MockResultCache) SaveResult(ctx context.Context, key string, result docModel.ExtractionResult) {
	if m.OnSaveResult != nil {
		m.OnSaveResult(ctx, key, result)
	}
}
