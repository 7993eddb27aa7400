package preprocess

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/dslipak/pdf"

	"github.com/akolanti/DocScanAPI/internal/config"
	"github.com/akolanti/DocScanAPI/internal/domain/docModel"
	"github.com/akolanti/DocScanAPI/internal/vision"
	"github.com/akolanti/DocScanAPI/pkg/logger_i"
)

// Prepared is the model-ready form of one upload: the image the vision
// provider will see, plus a content hash of the original bytes that keys
// the result cache.
type Prepared struct {
	Image      vision.Image
	ContentKey string
}

type Converter struct {
	runner   Runner
	pdftoppm string
	dpi      int
	logger   *logger_i.Logger
}

func NewConverter() *Converter {
	logger := logger_i.NewLogger("Preprocess")
	return &Converter{
		runner:   execRunner{logger: logger},
		pdftoppm: config.PdftoppmBinary,
		dpi:      config.RenderDPI,
		logger:   logger,
	}
}

// NewConverterWithRunner is for tests that stub the rasterizer.
func NewConverterWithRunner(r Runner) *Converter {
	c := NewConverter()
	c.runner = r
	return c
}

// PrepareImage turns an uploaded file into image bytes the model can see.
// PDFs get their first page rendered to JPEG; everything else passes
// through verbatim as an already-encoded image.
func (c *Converter) PrepareImage(ctx context.Context, path string) (Prepared, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Prepared{}, fmt.Errorf("read upload: %w", err)
	}

	sum := sha256.Sum256(raw)
	contentKey := hex.EncodeToString(sum[:])

	if isPDF(path, raw) {
		imageBytes, err := c.renderFirstPage(ctx, path)
		if err != nil {
			return Prepared{}, err
		}
		c.logger.Debug("rendered pdf first page", "path", path, "jpeg_bytes", len(imageBytes))
		return Prepared{
			Image:      vision.Image{MIMEType: "image/jpeg", Data: imageBytes},
			ContentKey: contentKey,
		}, nil
	}

	return Prepared{
		Image:      vision.Image{MIMEType: sniffImageType(path, raw), Data: raw},
		ContentKey: contentKey,
	}, nil
}

func isPDF(path string, raw []byte) bool {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return true
	}
	return http.DetectContentType(raw) == "application/pdf"
}

func sniffImageType(path string, raw []byte) string {
	sniffed := http.DetectContentType(raw)
	if strings.HasPrefix(sniffed, "image/") {
		return sniffed
	}
	// sniffing failed; fall back on the extension, jpeg as the last resort
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}

// renderFirstPage shells out to poppler. Only the first page is rendered;
// identity documents are single-sided and the extra pages would only cost
// model tokens.
func (c *Converter) renderFirstPage(ctx context.Context, path string) ([]byte, error) {
	doc, err := pdf.Open(path)
	if err != nil {
		return nil, &docModel.ConversionError{Reason: "unreadable pdf", Err: err}
	}
	if doc.NumPage() < 1 {
		return nil, &docModel.ConversionError{Reason: "pdf has no pages"}
	}

	tmpDir, err := os.MkdirTemp("", "docscan-render-*")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(tmpDir); err != nil {
			c.logger.Warn("failed to remove render temp dir", "dir", tmpDir, "error", err)
		}
	}()

	renderCtx, cancel := context.WithTimeout(ctx, config.RenderTimeout)
	defer cancel()

	prefix := filepath.Join(tmpDir, "page")
	// pdftoppm -jpeg -r <dpi> -f 1 -l 1 <in.pdf> <tmp/page>
	_, errb, err := c.runner.Run(renderCtx, c.pdftoppm,
		"-jpeg", "-r", strconv.Itoa(c.dpi), "-f", "1", "-l", "1", path, prefix)
	if err != nil {
		return nil, &docModel.ConversionError{
			Reason: "pdftoppm failed: " + truncate(string(errb), 512),
			Err:    err,
		}
	}

	matches, _ := filepath.Glob(prefix + "*.jpg")
	sort.Strings(matches)
	if len(matches) == 0 {
		return nil, &docModel.ConversionError{Reason: "pdftoppm produced no images"}
	}

	imageBytes, err := os.ReadFile(matches[0])
	if err != nil {
		return nil, &docModel.ConversionError{Reason: "read rendered page", Err: err}
	}
	return imageBytes, nil
}
