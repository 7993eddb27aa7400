package adapter

import (
	"github.com/akolanti/DocScanAPI/internal/api"
	"github.com/akolanti/DocScanAPI/internal/domain/docModel"
)

func ToDocumentResponse(record docModel.DocumentRecord) api.DocumentResponse {
	return api.DocumentResponse{
		Id:              record.Id,
		FileName:        record.FileName,
		DocumentType:    string(record.DocumentType),
		DocumentContent: record.Fields,
		CreatedAt:       record.CreatedAt,
	}
}

func ToDocumentResponseList(records []docModel.DocumentRecord) []api.DocumentResponse {
	responses := make([]api.DocumentResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, ToDocumentResponse(record))
	}
	return responses
}

func BadRequest(code int, message string) api.ErrorResponse {
	return api.ErrorResponse{
		Code:    code,
		Message: message,
	}
}
