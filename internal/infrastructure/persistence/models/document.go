package models

import (
	"time"

	"github.com/backoffice/backend/internal/domain/document"
	"github.com/backoffice/backend/internal/domain/workflow"
	"github.com/google/uuid"
)

// DocumentModel is the persistence model for the Document aggregate root.
type DocumentModel struct {
	AggregateModel
	Number       string     `gorm:"type:varchar(30);not null;uniqueIndex"`
	Title        string     `gorm:"type:varchar(200);not null"`
	Category     string     `gorm:"type:varchar(50);index"`
	FileName     string     `gorm:"type:varchar(255);not null"`
	FilePath     string     `gorm:"type:varchar(500);not null"`
	FileSize     int64      `gorm:"not null"`
	Status       string     `gorm:"type:varchar(20);not null;index"`
	UploadedByID uuid.UUID  `gorm:"type:uuid;not null;index"`
	UploadedBy   string     `gorm:"type:varchar(100)"`
	ArchivedAt   *time.Time
	// Associations
	Allocations []DocumentAllocationModel `gorm:"foreignKey:DocumentID;references:ID"`
}

// TableName returns the table name for GORM
func (DocumentModel) TableName() string {
	return "documents"
}

// ToDomain converts the persistence model to a domain Document entity.
func (m *DocumentModel) ToDomain() *document.Document {
	doc := &document.Document{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Number:            m.Number,
		Title:             m.Title,
		Category:          m.Category,
		FileName:          m.FileName,
		FilePath:          m.FilePath,
		FileSize:          m.FileSize,
		Status:            workflow.State(m.Status),
		UploadedByID:      m.UploadedByID,
		UploadedBy:        m.UploadedBy,
		ArchivedAt:        m.ArchivedAt,
		Allocations:       make([]document.Allocation, len(m.Allocations)),
	}
	for i, a := range m.Allocations {
		doc.Allocations[i] = document.Allocation{
			DivisionID:    a.DivisionID,
			AllocatedSize: a.AllocatedSize,
		}
	}
	return doc
}

// FromDomain populates the persistence model from a domain Document entity.
func (m *DocumentModel) FromDomain(d *document.Document) {
	m.FromDomainAggregateRoot(d.BaseAggregateRoot)
	m.Number = d.Number
	m.Title = d.Title
	m.Category = d.Category
	m.FileName = d.FileName
	m.FilePath = d.FilePath
	m.FileSize = d.FileSize
	m.Status = string(d.Status)
	m.UploadedByID = d.UploadedByID
	m.UploadedBy = d.UploadedBy
	m.ArchivedAt = d.ArchivedAt
	m.Allocations = make([]DocumentAllocationModel, len(d.Allocations))
	for i, a := range d.Allocations {
		m.Allocations[i] = DocumentAllocationModel{
			ID:            uuid.New(),
			DocumentID:    d.ID,
			DivisionID:    a.DivisionID,
			AllocatedSize: a.AllocatedSize,
		}
	}
}

// DocumentModelFromDomain creates a new persistence model from a domain Document entity.
func DocumentModelFromDomain(d *document.Document) *DocumentModel {
	m := &DocumentModel{}
	m.FromDomain(d)
	return m
}

// DocumentAllocationModel records how much of a document's size is charged
// against one division's storage pool. Rows are immutable; the aggregate
// rewrites them wholesale on save.
type DocumentAllocationModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key"`
	DocumentID    uuid.UUID `gorm:"type:uuid;not null;index"`
	DivisionID    uuid.UUID `gorm:"type:uuid;not null;index"`
	AllocatedSize int64     `gorm:"not null"`
}

// TableName returns the table name for GORM
func (DocumentAllocationModel) TableName() string {
	return "document_allocations"
}
