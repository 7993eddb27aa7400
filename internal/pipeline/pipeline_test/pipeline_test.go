package pipeline_test

import (
	"context"
	"errors"
	"testing"

	"github.com/akolanti/DocScanAPI/internal/config"
	"github.com/akolanti/DocScanAPI/internal/domain/docModel"
	"github.com/akolanti/DocScanAPI/internal/pipeline"
	"github.com/akolanti/DocScanAPI/internal/preprocess"
	"github.com/akolanti/DocScanAPI/internal/vision"
)

func testContext() context.Context {
	return context.WithValue(context.Background(), config.TRACE_ID_KEY, "test-trace")
}

func TestProcessDocument_Scenarios(t *testing.T) {
	tests := []struct {
		name          string
		setupMocks    func(p *MockPreparer, v *MockProvider)
		expectedType  docModel.DocumentType
		expectedField map[string]any
		wantModelErr  bool
		wantConvErr   bool
	}{
		{
			name: "Success_Full_Flow",
			setupMocks: func(p *MockPreparer, v *MockProvider) {
				v.OnClassify = func(ctx context.Context, img vision.Image) (string, error) {
					return "passport", nil
				}
				v.OnExtractFields = func(ctx context.Context, img vision.Image, docType docModel.DocumentType, fields []string) (string, error) {
					return `{"full_name": "John Doe", "expiration_date": "12/31/2024"}`, nil
				}
			},
			expectedType: docModel.DocTypePassport,
			expectedField: map[string]any{
				"first_name":      "John",
				"last_name":       "Doe",
				"expiration_date": "2024-12-31",
			},
		},
		{
			name: "Success_Fenced_Extraction_Reply",
			setupMocks: func(p *MockPreparer, v *MockProvider) {
				v.OnExtractFields = func(ctx context.Context, img vision.Image, docType docModel.DocumentType, fields []string) (string, error) {
					return "```json\n{\"country\": \"USA\"}\n```", nil
				}
			},
			expectedType:  docModel.DocTypePassport,
			expectedField: map[string]any{"country": "USA"},
		},
		{
			name: "Chatty_Classify_Label_Degrades_To_Unknown",
			setupMocks: func(p *MockPreparer, v *MockProvider) {
				v.OnClassify = func(ctx context.Context, img vision.Image) (string, error) {
					return "It appears to be a passport", nil
				}
			},
			expectedType:  docModel.DocTypeUnknown,
			expectedField: map[string]any{},
		},
		{
			name: "Malformed_Extraction_Degrades_To_Empty_Fields",
			setupMocks: func(p *MockPreparer, v *MockProvider) {
				v.OnExtractFields = func(ctx context.Context, img vision.Image, docType docModel.DocumentType, fields []string) (string, error) {
					return "I could not read this document.", nil
				}
			},
			expectedType:  docModel.DocTypePassport,
			expectedField: map[string]any{},
		},
		{
			name: "Failure_Classify_Call",
			setupMocks: func(p *MockPreparer, v *MockProvider) {
				v.OnClassify = func(ctx context.Context, img vision.Image) (string, error) {
					return "", errors.New("provider down")
				}
			},
			wantModelErr: true,
		},
		{
			name: "Failure_Extract_Call",
			setupMocks: func(p *MockPreparer, v *MockProvider) {
				v.OnExtractFields = func(ctx context.Context, img vision.Image, docType docModel.DocumentType, fields []string) (string, error) {
					return "", errors.New("rate limited")
				}
			},
			wantModelErr: true,
		},
		{
			name: "Failure_Conversion",
			setupMocks: func(p *MockPreparer, v *MockProvider) {
				p.OnPrepareImage = func(ctx context.Context, path string) (preprocess.Prepared, error) {
					return preprocess.Prepared{}, &docModel.ConversionError{Reason: "pdf has no pages"}
				}
			},
			wantConvErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mPrep := &MockPreparer{}
			mProv := &MockProvider{}
			tt.setupMocks(mPrep, mProv)

			s := pipeline.NewService(mPrep, mProv, nil)
			result, err := s.ProcessDocument(testContext(), "/tmp/upload.jpg")

			if tt.wantModelErr {
				var modelErr *docModel.ModelCallError
				if !errors.As(err, &modelErr) {
					t.Fatalf("expected a ModelCallError, got %v", err)
				}
				return
			}
			if tt.wantConvErr {
				var convErr *docModel.ConversionError
				if !errors.As(err, &convErr) {
					t.Fatalf("expected a ConversionError, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ProcessDocument failed: %v", err)
			}

			if result.DocumentType != tt.expectedType {
				t.Errorf("DocumentType got %v, want %v", result.DocumentType, tt.expectedType)
			}
			if len(result.Fields) != len(tt.expectedField) {
				t.Errorf("Fields got %v, want %v", result.Fields, tt.expectedField)
			}
			for key, want := range tt.expectedField {
				if result.Fields[key] != want {
					t.Errorf("Fields[%q] got %v, want %v", key, result.Fields[key], want)
				}
			}
		})
	}
}

func TestProcessDocument_UnknownSkipsExtraction(t *testing.T) {
	mProv := &MockProvider{
		OnClassify: func(ctx context.Context, img vision.Image) (string, error) {
			return "grocery receipt", nil
		},
	}

	s := pipeline.NewService(&MockPreparer{}, mProv, nil)
	result, err := s.ProcessDocument(testContext(), "/tmp/upload.jpg")
	if err != nil {
		t.Fatalf("ProcessDocument failed: %v", err)
	}

	if result.DocumentType != docModel.DocTypeUnknown {
		t.Errorf("DocumentType got %v, want unknown", result.DocumentType)
	}
	if len(result.Fields) != 0 {
		t.Errorf("unknown documents must carry no fields, got %v", result.Fields)
	}
	if mProv.ExtractCalls != 0 {
		t.Errorf("extraction was called %d times for an unknown document", mProv.ExtractCalls)
	}
}

func TestProcessDocument_CacheHitSkipsModel(t *testing.T) {
	cached := docModel.ExtractionResult{
		DocumentType: docModel.DocTypeDriverLicense,
		Fields:       docModel.FieldMap{"license_number": "D123"},
	}
	mCache := &MockResultCache{
		OnGetResult: func(ctx context.Context, key string) (docModel.ExtractionResult, bool) {
			return cached, true
		},
	}
	mProv := &MockProvider{}

	s := pipeline.NewService(&MockPreparer{}, mProv, mCache)
	result, err := s.ProcessDocument(testContext(), "/tmp/upload.jpg")
	if err != nil {
		t.Fatalf("ProcessDocument failed: %v", err)
	}

	if result.DocumentType != cached.DocumentType {
		t.Errorf("DocumentType got %v, want %v", result.DocumentType, cached.DocumentType)
	}
	if mProv.ClassifyCalls != 0 || mProv.ExtractCalls != 0 {
		t.Errorf("cache hit still called the provider (classify=%d extract=%d)",
			mProv.ClassifyCalls, mProv.ExtractCalls)
	}
}

func TestProcessDocument_SavesResultUnderContentKey(t *testing.T) {
	var savedKey string
	var savedResult docModel.ExtractionResult
	mCache := &MockResultCache{
		OnSaveResult: func(ctx context.Context, key string, result docModel.ExtractionResult) {
			savedKey = key
			savedResult = result
		},
	}
	mPrep := &MockPreparer{
		OnPrepareImage: func(ctx context.Context, path string) (preprocess.Prepared, error) {
			return preprocess.Prepared{
				Image:      vision.Image{MIMEType: "image/jpeg", Data: []byte("bytes")},
				ContentKey: "abc123",
			}, nil
		},
	}

	s := pipeline.NewService(mPrep, &MockProvider{}, mCache)
	if _, err := s.ProcessDocument(testContext(), "/tmp/upload.jpg"); err != nil {
		t.Fatalf("ProcessDocument failed: %v", err)
	}

	if savedKey != "abc123" {
		t.Errorf("cache key got %q, want the prepared content key", savedKey)
	}
	if savedResult.DocumentType != docModel.DocTypePassport {
		t.Errorf("cached DocumentType got %v, want passport", savedResult.DocumentType)
	}
}
