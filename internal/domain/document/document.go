package document

import (
	"time"

	"github.com/google/uuid"

	"github.com/backoffice/backend/internal/domain/shared"
	"github.com/backoffice/backend/internal/domain/workflow"
)

// Document statuses
const (
	StatusActive   workflow.State = "ACTIVE"
	StatusArchived workflow.State = "ARCHIVED"
)

// Machine declares the document lifecycle. Archiving is reversible.
var Machine = workflow.NewMachine("document", StatusActive, map[workflow.State]workflow.StateSpec{
	StatusActive:   {Label: "Aktif", Color: "success", Next: []workflow.State{StatusArchived}},
	StatusArchived: {Label: "Diarsipkan", Color: "secondary", Next: []workflow.State{StatusActive}},
})

// Allocation charges part of a document's size against one division's
// storage pool. One document may charge several divisions at once; the
// allocation rows drive the quota reservations written on upload.
type Allocation struct {
	DivisionID    uuid.UUID
	AllocatedSize int64 // bytes
}

// Document is an archived file with its storage allocations.
type Document struct {
	shared.BaseAggregateRoot
	Number       string
	Title        string
	Category     string
	FileName     string
	FilePath     string
	FileSize     int64 // bytes
	Status       workflow.State
	UploadedByID uuid.UUID
	UploadedBy   string
	ArchivedAt   *time.Time
	Allocations  []Allocation
}

// NewDocument creates a new active document. The allocations must cover the
// file size exactly; partial coverage would let bytes escape the ledger.
func NewDocument(number, title, category, fileName, filePath string, fileSize int64, uploadedByID uuid.UUID, uploadedBy string, allocations []Allocation) (*Document, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Document number cannot be empty")
	}
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Document title cannot be empty")
	}
	if fileName == "" || filePath == "" {
		return nil, shared.NewDomainError("INVALID_FILE", "Document file cannot be empty")
	}
	if fileSize <= 0 {
		return nil, shared.NewDomainError("INVALID_FILE_SIZE", "Document file size must be positive")
	}
	if uploadedByID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_UPLOADER", "Uploader ID cannot be empty")
	}
	if err := validateAllocations(fileSize, allocations); err != nil {
		return nil, err
	}

	doc := &Document{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Number:            number,
		Title:             title,
		Category:          category,
		FileName:          fileName,
		FilePath:          filePath,
		FileSize:          fileSize,
		Status:            Machine.Initial(),
		UploadedByID:      uploadedByID,
		UploadedBy:        uploadedBy,
		Allocations:       allocations,
	}
	doc.AddDomainEvent(NewDocumentUploadedEvent(doc))
	return doc, nil
}

func validateAllocations(fileSize int64, allocations []Allocation) error {
	if len(allocations) == 0 {
		return shared.NewDomainError("INVALID_ALLOCATION", "Document must be allocated to at least one division")
	}
	seen := make(map[uuid.UUID]bool, len(allocations))
	var total int64
	for _, a := range allocations {
		if a.DivisionID == uuid.Nil {
			return shared.NewDomainError("INVALID_ALLOCATION", "Allocation division cannot be empty")
		}
		if a.AllocatedSize <= 0 {
			return shared.NewDomainError("INVALID_ALLOCATION", "Allocation size must be positive")
		}
		if seen[a.DivisionID] {
			return shared.NewDomainError("DUPLICATE_ALLOCATION", "Division is allocated more than once")
		}
		seen[a.DivisionID] = true
		total += a.AllocatedSize
	}
	if total != fileSize {
		return shared.NewDomainError("INVALID_ALLOCATION", "Allocations must cover the file size exactly")
	}
	return nil
}

// UpdateMetadata changes title and category. Archived documents are locked.
func (d *Document) UpdateMetadata(title, category string) error {
	if d.Status == StatusArchived {
		return shared.ErrConflict
	}
	if title == "" {
		return shared.NewDomainError("INVALID_TITLE", "Document title cannot be empty")
	}
	d.Title = title
	d.Category = category
	d.UpdatedAt = time.Now()
	d.IncrementVersion()
	return nil
}

// Archive moves the document into the archived state
func (d *Document) Archive() error {
	if err := d.transitionTo(StatusArchived); err != nil {
		return err
	}
	now := time.Now()
	d.ArchivedAt = &now
	return nil
}

// Restore moves an archived document back to active
func (d *Document) Restore() error {
	if err := d.transitionTo(StatusActive); err != nil {
		return err
	}
	d.ArchivedAt = nil
	return nil
}

func (d *Document) transitionTo(target workflow.State) error {
	if d.Status == target {
		return nil // idempotent
	}
	if !Machine.CanTransition(d.Status, target) {
		return &shared.InvalidTransitionError{Entity: Machine.Name(), From: d.Status.String(), To: target.String()}
	}
	d.Status = target
	d.UpdatedAt = time.Now()
	d.IncrementVersion()
	return nil
}

// StatusLabel returns the presentation label of the current status
func (d *Document) StatusLabel() string {
	return Machine.Label(d.Status)
}
