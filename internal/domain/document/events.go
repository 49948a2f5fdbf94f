package document

import (
	"github.com/google/uuid"

	"github.com/backoffice/backend/internal/domain/shared"
)

// Aggregate type constant for Document
const AggregateTypeDocument = "Document"

// Document event type constants
const (
	EventTypeDocumentUploaded = "DocumentUploaded"
	EventTypeDocumentDeleted  = "DocumentDeleted"
)

// DocumentUploadedEvent is raised when a document is uploaded
type DocumentUploadedEvent struct {
	shared.BaseDomainEvent
	DocumentID uuid.UUID `json:"document_id"`
	Number     string    `json:"number"`
	Title      string    `json:"title"`
	FileSize   int64     `json:"file_size"`
	Divisions  int       `json:"divisions"`
}

// NewDocumentUploadedEvent creates a new DocumentUploadedEvent
func NewDocumentUploadedEvent(d *Document) *DocumentUploadedEvent {
	return &DocumentUploadedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDocumentUploaded, AggregateTypeDocument, d.ID),
		DocumentID:      d.ID,
		Number:          d.Number,
		Title:           d.Title,
		FileSize:        d.FileSize,
		Divisions:       len(d.Allocations),
	}
}

// EventType returns the event type name
func (e *DocumentUploadedEvent) EventType() string {
	return EventTypeDocumentUploaded
}

// DocumentDeletedEvent is raised when a document and its reservations are removed
type DocumentDeletedEvent struct {
	shared.BaseDomainEvent
	DocumentID uuid.UUID `json:"document_id"`
	Number     string    `json:"number"`
	FileSize   int64     `json:"file_size"`
}

// NewDocumentDeletedEvent creates a new DocumentDeletedEvent
func NewDocumentDeletedEvent(d *Document) *DocumentDeletedEvent {
	return &DocumentDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDocumentDeleted, AggregateTypeDocument, d.ID),
		DocumentID:      d.ID,
		Number:          d.Number,
		FileSize:        d.FileSize,
	}
}

// EventType returns the event type name
func (e *DocumentDeletedEvent) EventType() string {
	return EventTypeDocumentDeleted
}
