package handlers

import (
	"context"
	"errors"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"time"

	"github.com/akolanti/DocScanAPI/internal/adapter"
	"github.com/akolanti/DocScanAPI/internal/config"
	"github.com/akolanti/DocScanAPI/internal/domain/docModel"
	"github.com/akolanti/DocScanAPI/pkg/logger_i"
)

// DocumentProcessor is what the upload handler needs from the pipeline.
type DocumentProcessor interface {
	ProcessDocument(ctx context.Context, filePath string) (docModel.ExtractionResult, error)
}

type Dependencies struct {
	Processor DocumentProcessor
	Documents docModel.DocumentStore
	Blobs     docModel.BlobStore
}

var deps Dependencies
var logDH *logger_i.Logger

func InitDocumentHandler(d Dependencies) {
	deps = d
	logDH = logger_i.NewLogger("DocumentHandler")
}

// ProcessDocumentHandler godoc
// @Summary      Process and extract a new document
// @Description  Accepts an image or PDF upload, classifies it, extracts and normalizes its fields, and stores the record.
// @Tags         Documents
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "The identity document image or PDF"
// @Success      200  {object}  api.DocumentResponse  "The stored document record"
// @Failure      400  {object}  api.ErrorResponse  "Missing or oversized file"
// @Failure      422  {object}  api.ErrorResponse  "The document could not be converted to an image"
// @Failure      502  {object}  api.ErrorResponse  "The vision model call failed"
// @Router       /api/process-document [post]
func ProcessDocumentHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(w, r.Context()) {
		logDH.Warn("Invalid Context by request ", "remote", r.RemoteAddr)
		return
	}
	log := logDH.With(config.TRACE_ID_KEY, traceFromContext(r.Context()))

	if err := r.ParseMultipartForm(config.MaxUploadSize); err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "File too large or bad request")
		return
	}

	fileReader, fileMetadata, err := r.FormFile(config.MultipartFileField)
	if err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "Could not retrieve file")
		return
	}
	defer fileReader.Close()

	fileName := fileMetadata.Filename
	if fileName == "" {
		fileName = config.UnknownFileName
	}

	storedPath, err := deps.Blobs.Save(fileName, fileReader)
	if err != nil {
		log.Error("Couldn't store upload", "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, "Storage error")
		return
	}

	result, err := deps.Processor.ProcessDocument(r.Context(), storedPath)
	if err != nil {
		// a failed run leaves no partial state behind
		deps.Blobs.Remove(storedPath)
		writeProcessingError(w, log, err)
		return
	}

	record := docModel.DocumentRecord{
		FileName:     fileName,
		DocumentType: result.DocumentType,
		Fields:       result.Fields,
		FilePath:     storedPath,
		CreatedAt:    time.Now(),
	}

	saved, err := deps.Documents.SaveDocument(r.Context(), record)
	if err != nil {
		deps.Blobs.Remove(storedPath)
		log.Error("Couldn't save document record", "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, "Storage error")
		return
	}

	log.Info("Document processed", "id", saved.Id, "document_type", saved.DocumentType)
	writeJsonResponse(w, http.StatusOK, adapter.ToDocumentResponse(saved))
}

// the caller gets a short generic summary; the full error stays in the logs
func writeProcessingError(w http.ResponseWriter, log *logger_i.Logger, err error) {
	log.Error("Document processing failed", "error", err)

	var conversionErr *docModel.ConversionError
	var modelErr *docModel.ModelCallError
	switch {
	case errors.As(err, &conversionErr):
		WriteErrorResponse(w, http.StatusUnprocessableEntity, "Could not convert document to an image")
	case errors.As(err, &modelErr):
		WriteErrorResponse(w, http.StatusBadGateway, "Document analysis is unavailable")
	default:
		WriteErrorResponse(w, http.StatusInternalServerError, "Error processing document")
	}
}

// ListDocumentsHandler godoc
// @Summary      List all documents
// @Description  Returns every stored document record, newest first.
// @Tags         Documents
// @Produce      json
// @Success      200  {array}  api.DocumentResponse
// @Router       /api/documents [get]
func ListDocumentsHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(w, r.Context()) {
		logDH.Warn("Invalid Context by request ", "remote", r.RemoteAddr)
		return
	}

	records, err := deps.Documents.ListDocuments(r.Context())
	if err != nil {
		logDH.Error("Couldn't list documents", "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, "Storage error")
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToDocumentResponseList(records))
}

// GetDocumentHandler godoc
// @Summary      Fetch a specific document by ID
// @Tags         Documents
// @Produce      json
// @Param        id   path      int  true  "Document ID"
// @Success      200  {object}  api.DocumentResponse
// @Failure      404  {object}  api.ErrorResponse  "Document not found"
// @Router       /api/documents/{id} [get]
func GetDocumentHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(w, r.Context()) {
		logDH.Warn("Invalid Context by request ", "remote", r.RemoteAddr)
		return
	}

	id, ok := parseDocumentId(r)
	if !ok {
		WriteErrorResponse(w, http.StatusBadRequest, "Invalid document id")
		return
	}

	record, found := deps.Documents.GetDocument(r.Context(), id)
	if !found {
		WriteErrorResponse(w, http.StatusNotFound, "Document not found")
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToDocumentResponse(record))
}

// UpdateDocumentHandler godoc
// @Summary      Update extracted document data
// @Description  Overwrites the document type and field map of a stored record.
// @Tags         Documents
// @Accept       json
// @Produce      json
// @Param        id       path  int                        true  "Document ID"
// @Param        request  body  api.UpdateDocumentRequest  true  "New document type and fields"
// @Success      200  {object}  api.DocumentResponse
// @Failure      404  {object}  api.ErrorResponse  "Document not found"
// @Router       /api/documents/{id} [put]
func UpdateDocumentHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(w, r.Context()) {
		logDH.Warn("Invalid Context by request ", "remote", r.RemoteAddr)
		return
	}

	id, ok := parseDocumentId(r)
	if !ok {
		WriteErrorResponse(w, http.StatusBadRequest, "Invalid document id")
		return
	}

	var requestData struct {
		DocumentType    string         `json:"document_type"`
		DocumentContent map[string]any `json:"document_content"`
	}
	defer func(body io.ReadCloser) {
		if err := body.Close(); err != nil {
			logDH.Error("Couldn't close the update request reader", "error", err)
		}
	}(r.Body)
	if err := decodeJSONBody(r, &requestData); err != nil {
		logDH.Warn("Bad update request", "error", err)
		WriteErrorResponse(w, http.StatusBadRequest, "Bad Request")
		return
	}

	docType := docModel.DocumentType(requestData.DocumentType)
	if !docModel.IsValidType(docType) {
		WriteErrorResponse(w, http.StatusBadRequest, "Unsupported document type")
		return
	}
	fields := docModel.FieldMap(requestData.DocumentContent)
	if fields == nil {
		fields = docModel.FieldMap{}
	}

	record, found := deps.Documents.UpdateDocument(r.Context(), id, docType, fields)
	if !found {
		WriteErrorResponse(w, http.StatusNotFound, "Document not found")
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToDocumentResponse(record))
}

// GetDocumentImageHandler godoc
// @Summary      Download the original document image
// @Tags         Documents
// @Produce      octet-stream
// @Param        id   path  int  true  "Document ID"
// @Success      200  {file}    binary
// @Failure      404  {object}  api.ErrorResponse  "Document image not found"
// @Router       /api/documents/{id}/image [get]
func GetDocumentImageHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(w, r.Context()) {
		logDH.Warn("Invalid Context by request ", "remote", r.RemoteAddr)
		return
	}

	id, ok := parseDocumentId(r)
	if !ok {
		WriteErrorResponse(w, http.StatusBadRequest, "Invalid document id")
		return
	}

	record, found := deps.Documents.GetDocument(r.Context(), id)
	if !found {
		WriteErrorResponse(w, http.StatusNotFound, "Document image not found")
		return
	}

	file, found := deps.Blobs.Open(record.FilePath)
	if !found {
		WriteErrorResponse(w, http.StatusNotFound, "Document image not found")
		return
	}
	defer func(file io.ReadCloser) {
		if err := file.Close(); err != nil {
			logDH.Warn("Couldn't close stored file", "error", err)
		}
	}(file)

	contentType := mime.TypeByExtension(filepath.Ext(record.FilePath))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `inline; filename="`+record.FileName+`"`)

	if _, err := io.Copy(w, file); err != nil {
		logDH.Error("Couldn't stream stored file", "id", id, "error", err)
	}
}
