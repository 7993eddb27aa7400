package pipeline

import (
	"context"
	"time"

	"github.com/akolanti/DocScanAPI/internal/config"
	"github.com/akolanti/DocScanAPI/internal/domain/docModel"
	"github.com/akolanti/DocScanAPI/internal/metrics"
	"github.com/akolanti/DocScanAPI/internal/preprocess"
	"github.com/akolanti/DocScanAPI/internal/vision"
	"github.com/akolanti/DocScanAPI/pkg/logger_i"
)

type ImagePreparer interface {
	PrepareImage(ctx context.Context, path string) (preprocess.Prepared, error)
}

// ResultCache short-circuits the two model calls for byte-identical
// re-uploads. A nil cache is valid and simply disables this.
type ResultCache interface {
	GetResult(ctx context.Context, key string) (docModel.ExtractionResult, bool)
	SaveResult(ctx context.Context, key string, result docModel.ExtractionResult)
}

type Service struct {
	preparer ImagePreparer
	provider vision.Provider
	cache    ResultCache
	logger   *logger_i.Logger
}

func NewService(preparer ImagePreparer, provider vision.Provider, cache ResultCache) *Service {
	return &Service{
		preparer: preparer,
		provider: provider,
		cache:    cache,
		logger:   logger_i.NewLogger("Pipeline"),
	}
}

// ProcessDocument runs preprocess -> classify -> extract -> normalize for
// one uploaded file. Conversion and model-call failures abort the run;
// an extraction reply that is not valid JSON degrades to an empty field map.
func (s *Service) ProcessDocument(ctx context.Context, filePath string) (docModel.ExtractionResult, error) {
	start := time.Now()
	result, err := s.run(ctx, filePath)
	if err != nil {
		metrics.CapturePipelineMetrics("error", time.Since(start))
		return docModel.ExtractionResult{}, err
	}
	metrics.CapturePipelineMetrics("ok", time.Since(start))
	return result, nil
}

func (s *Service) run(ctx context.Context, filePath string) (docModel.ExtractionResult, error) {
	log := s.logger.With(config.TRACE_ID_KEY, ctx.Value(config.TRACE_ID_KEY))

	prepared, err := s.preparer.PrepareImage(ctx, filePath)
	if err != nil {
		return docModel.ExtractionResult{}, err
	}

	if s.cache != nil {
		if cached, found := s.cache.GetResult(ctx, prepared.ContentKey); found {
			log.Info("pipeline.cache.hit", "document_type", cached.DocumentType)
			metrics.ResultCacheHit()
			return cached, nil
		}
	}

	docType, err := s.classify(ctx, prepared.Image, log)
	if err != nil {
		return docModel.ExtractionResult{}, err
	}

	rawFields, err := s.extract(ctx, prepared.Image, docType, log)
	if err != nil {
		return docModel.ExtractionResult{}, err
	}

	result := docModel.ExtractionResult{
		DocumentType: docType,
		Fields:       NormalizeFields(rawFields),
	}

	if s.cache != nil {
		s.cache.SaveResult(ctx, prepared.ContentKey, result)
	}
	metrics.DocumentProcessed(string(docType))
	log.Info("pipeline.ok", "document_type", docType, "field_count", len(result.Fields))
	return result, nil
}

func (s *Service) classify(ctx context.Context, img vision.Image, log *logger_i.Logger) (docModel.DocumentType, error) {
	callCtx, cancel := context.WithTimeout(ctx, config.ClassifyCallTimeout)
	defer cancel()

	rawLabel, err := s.provider.Classify(callCtx, img)
	if err != nil {
		// a failed call is not an unknown document
		return "", &docModel.ModelCallError{Stage: "classify", Err: err}
	}

	docType := docModel.ParseDocumentType(rawLabel)
	log.Debug("pipeline.classify.ok", "raw_label", rawLabel, "document_type", docType)
	return docType, nil
}

func (s *Service) extract(ctx context.Context, img vision.Image, docType docModel.DocumentType, log *logger_i.Logger) (docModel.FieldMap, error) {
	expectedFields, registered := docModel.FieldsFor(docType)
	if !registered {
		// nothing to ask for; deliberate short-circuit, not an error
		log.Debug("pipeline.extract.skipped", "document_type", docType)
		return docModel.FieldMap{}, nil
	}

	callCtx, cancel := context.WithTimeout(ctx, config.ExtractCallTimeout)
	defer cancel()

	rawReply, err := s.provider.ExtractFields(callCtx, img, docType, expectedFields)
	if err != nil {
		return nil, &docModel.ModelCallError{Stage: "extract", Err: err}
	}

	parsed, err := parseFieldJSON(rawReply)
	if err != nil {
		log.Warn("pipeline.extract.parse_failed", "error", err, "reply_bytes", len(rawReply))
		metrics.ExtractionParseFailure()
		return docModel.FieldMap{}, nil
	}
	log.Debug("pipeline.extract.ok", "field_count", len(parsed))
	return parsed, nil
}
