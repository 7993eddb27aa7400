package api

import "time"

type DocumentResponse struct {
	Id              int64          `json:"id" example:"42"`
	FileName        string         `json:"file_name" example:"passport_scan.pdf"`
	DocumentType    string         `json:"document_type" example:"passport"`
	DocumentContent map[string]any `json:"document_content"`
	CreatedAt       time.Time      `json:"created_at"`
}

type ErrorResponse struct {
	Code    int    `json:"code" example:"404"`
	Message string `json:"message" example:"Document not found"`
}

// requests---------------------

type UpdateDocumentRequest struct {
	DocumentType    string         `json:"document_type" validate:"required"`
	DocumentContent map[string]any `json:"document_content" validate:"required"`
}
