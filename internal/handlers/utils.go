package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/akolanti/DocScanAPI/internal/adapter"
	"github.com/akolanti/DocScanAPI/internal/adapter/utils"
	"github.com/akolanti/DocScanAPI/internal/config"
)

func writeJsonResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but can't send a clean status code now
		logDH.Error("Error encoding response", "error", err)
	}
}

func WriteErrorResponse(w http.ResponseWriter, httpCode int, message string) {
	writeJsonResponse(w, httpCode, adapter.BadRequest(httpCode, message))
}

func decodeJSONBody(r *http.Request, dest any) error {
	return json.NewDecoder(r.Body).Decode(dest)
}

// validateContext rejects requests whose context is already dead. A status
// still goes out so the metrics recorder never logs an implicit 200 for an
// aborted request.
func validateContext(w http.ResponseWriter, ctx context.Context) bool {
	if ctx.Err() != nil {
		logDH.Warn("context error", "error", ctx.Err())
		WriteErrorResponse(w, http.StatusServiceUnavailable, "Request cancelled")
		return false
	}

	select {
	case <-ctx.Done():
		logDH.Warn("context cancelled")
		WriteErrorResponse(w, http.StatusServiceUnavailable, "Request cancelled")
		return false
	default:
		return true
	}
}

func traceFromContext(ctx context.Context) string {
	if trace, ok := ctx.Value(config.TRACE_ID_KEY).(string); ok {
		return trace
	}
	return ""
}

func parseDocumentId(r *http.Request) (int64, bool) {
	idString := utils.GetChiURLParam(r, "id")
	id, err := strconv.ParseInt(idString, 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}
