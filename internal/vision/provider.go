package vision

import (
	"context"
	"encoding/base64"

	"github.com/akolanti/DocScanAPI/internal/domain/docModel"
)

// Image is the transport shape handed to a model backend: encoded image
// bytes plus their mime type. PDFs are rasterized before they get here.
type Image struct {
	MIMEType string
	Data     []byte
}

func (i Image) Base64() string {
	return base64.StdEncoding.EncodeToString(i.Data)
}

func (i Image) DataURL() string {
	return "data:" + i.MIMEType + ";base64," + i.Base64()
}

// Provider is the capability interface over the external vision model.
// Both methods return the raw model text; interpreting it (label coercion,
// JSON parsing) is the pipeline's job so backends stay interchangeable.
type Provider interface {
	Classify(ctx context.Context, img Image) (string, error)
	ExtractFields(ctx context.Context, img Image, docType docModel.DocumentType, fields []string) (string, error)
}
