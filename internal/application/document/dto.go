package document

import (
	"time"

	"github.com/google/uuid"

	"github.com/backoffice/backend/internal/domain/document"
)

// ===================== Request DTOs =====================

// AllocationRequest assigns part of a file to one division's quota
type AllocationRequest struct {
	DivisionID    uuid.UUID `json:"division_id" binding:"required"`
	AllocatedSize int64     `json:"allocated_size" binding:"required,gt=0"`
}

// UploadDocumentRequest represents a request to register an uploaded file
type UploadDocumentRequest struct {
	Title        string              `json:"title" binding:"required,min=1,max=200"`
	Category     string              `json:"category" binding:"required,min=1,max=50"`
	FileName     string              `json:"file_name" binding:"required"`
	ContentType  string              `json:"content_type" binding:"required"`
	FileSize     int64               `json:"file_size" binding:"required,gt=0"`
	UploadedByID uuid.UUID           `json:"uploaded_by_id" binding:"required"`
	UploadedBy   string              `json:"uploaded_by" binding:"required"`
	Allocations  []AllocationRequest `json:"allocations" binding:"required,min=1,dive"`
}

// UpdateDocumentRequest represents a metadata update
type UpdateDocumentRequest struct {
	Title    string `json:"title" binding:"required,min=1,max=200"`
	Category string `json:"category" binding:"required,min=1,max=50"`
}

// DocumentListFilter represents filter options for the document list
type DocumentListFilter struct {
	Search     string     `form:"search"`
	Category   string     `form:"category"`
	Status     string     `form:"status" binding:"omitempty,statename=document"`
	DivisionID *uuid.UUID `form:"division_id"`
	Page       int        `form:"page" binding:"omitempty,min=1"`
	PageSize   int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string     `form:"order_by"`
	OrderDir   string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ===================== Response DTOs =====================

// AllocationResponse represents a quota allocation in API responses
type AllocationResponse struct {
	DivisionID    uuid.UUID `json:"division_id"`
	AllocatedSize int64     `json:"allocated_size"`
}

// DocumentResponse represents a document in API responses
type DocumentResponse struct {
	ID           uuid.UUID            `json:"id"`
	Number       string               `json:"number"`
	Title        string               `json:"title"`
	Category     string               `json:"category"`
	FileName     string               `json:"file_name"`
	FilePath     string               `json:"file_path"`
	FileSize     int64                `json:"file_size"`
	Status       string               `json:"status"`
	StatusLabel  string               `json:"status_label"`
	UploadedByID uuid.UUID            `json:"uploaded_by_id"`
	UploadedBy   string               `json:"uploaded_by"`
	ArchivedAt   *time.Time           `json:"archived_at,omitempty"`
	Allocations  []AllocationResponse `json:"allocations"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

// UploadURLResponse carries a presigned upload URL for the stored file
type UploadURLResponse struct {
	Document  DocumentResponse `json:"document"`
	UploadURL string           `json:"upload_url"`
	ExpiresAt time.Time        `json:"expires_at"`
}

// DownloadURLResponse carries a presigned download URL
type DownloadURLResponse struct {
	DownloadURL string    `json:"download_url"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// ToDocumentResponse maps a document aggregate to its response DTO
func ToDocumentResponse(d *document.Document) DocumentResponse {
	allocations := make([]AllocationResponse, 0, len(d.Allocations))
	for _, a := range d.Allocations {
		allocations = append(allocations, AllocationResponse{
			DivisionID:    a.DivisionID,
			AllocatedSize: a.AllocatedSize,
		})
	}

	return DocumentResponse{
		ID:           d.ID,
		Number:       d.Number,
		Title:        d.Title,
		Category:     d.Category,
		FileName:     d.FileName,
		FilePath:     d.FilePath,
		FileSize:     d.FileSize,
		Status:       string(d.Status),
		StatusLabel:  d.StatusLabel(),
		UploadedByID: d.UploadedByID,
		UploadedBy:   d.UploadedBy,
		ArchivedAt:   d.ArchivedAt,
		Allocations:  allocations,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

// ToDocumentResponses maps a slice of documents
func ToDocumentResponses(documents []document.Document) []DocumentResponse {
	responses := make([]DocumentResponse, 0, len(documents))
	for i := range documents {
		responses = append(responses, ToDocumentResponse(&documents[i]))
	}
	return responses
}
