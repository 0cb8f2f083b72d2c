package dto

import "github.com/Adinlo/colrag/internal/domain/entities"

type DocumentUploadResponse struct {
	Message  string `json:"message"`
	Document string `json:"document"`
}

type DocumentListResponse struct {
	Documents []*entities.DocumentSummary `json:"documents"`
}

type DocumentSearchRequest struct {
	DocName string `json:"doc_name" binding:"required"`
}

type DocumentDeleteResponse struct {
	ID      string `json:"id"`
	Success bool   `json:"success"`
}
