package models

import (
	"time"

	"github.com/backoffice/backend/internal/domain/ticket"
	"github.com/backoffice/backend/internal/domain/workflow"
	"github.com/google/uuid"
)

// TicketModel is the persistence model for the Ticket aggregate root.
// Feedback is flattened into nullable columns; a NULL feedback_given_at
// means no feedback was left when the ticket closed.
type TicketModel struct {
	AggregateModel
	TicketNumber    string     `gorm:"type:varchar(30);not null;uniqueIndex"`
	Title           string     `gorm:"type:varchar(200);not null"`
	Description     string     `gorm:"type:text"`
	Category        string     `gorm:"type:varchar(50);index"`
	Priority        string     `gorm:"type:varchar(20);index"`
	Status          string     `gorm:"type:varchar(30);not null;index"`
	ReporterID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	ReporterName    string     `gorm:"type:varchar(100)"`
	DivisionID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	AssigneeID      *uuid.UUID `gorm:"type:uuid;index"`
	RejectReason    string     `gorm:"type:text"`
	FeedbackRating  *int
	FeedbackComment string     `gorm:"type:text"`
	FeedbackGivenAt *time.Time
	ProcessedAt     *time.Time
	FinishedAt      *time.Time
	ClosedAt        *time.Time
}

// TableName returns the table name for GORM
func (TicketModel) TableName() string {
	return "tickets"
}

// ToDomain converts the persistence model to a domain Ticket entity.
func (m *TicketModel) ToDomain() *ticket.Ticket {
	t := &ticket.Ticket{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		TicketNumber:      m.TicketNumber,
		Title:             m.Title,
		Description:       m.Description,
		Category:          m.Category,
		Priority:          m.Priority,
		Status:            workflow.State(m.Status),
		ReporterID:        m.ReporterID,
		ReporterName:      m.ReporterName,
		DivisionID:        m.DivisionID,
		AssigneeID:        m.AssigneeID,
		RejectReason:      m.RejectReason,
		ProcessedAt:       m.ProcessedAt,
		FinishedAt:        m.FinishedAt,
		ClosedAt:          m.ClosedAt,
	}
	if m.FeedbackGivenAt != nil && m.FeedbackRating != nil {
		t.Feedback = &ticket.Feedback{
			Rating:  *m.FeedbackRating,
			Comment: m.FeedbackComment,
			GivenAt: *m.FeedbackGivenAt,
		}
	}
	return t
}

// FromDomain populates the persistence model from a domain Ticket entity.
func (m *TicketModel) FromDomain(t *ticket.Ticket) {
	m.FromDomainAggregateRoot(t.BaseAggregateRoot)
	m.TicketNumber = t.TicketNumber
	m.Title = t.Title
	m.Description = t.Description
	m.Category = t.Category
	m.Priority = t.Priority
	m.Status = string(t.Status)
	m.ReporterID = t.ReporterID
	m.ReporterName = t.ReporterName
	m.DivisionID = t.DivisionID
	m.AssigneeID = t.AssigneeID
	m.RejectReason = t.RejectReason
	m.ProcessedAt = t.ProcessedAt
	m.FinishedAt = t.FinishedAt
	m.ClosedAt = t.ClosedAt
	if t.Feedback != nil {
		rating := t.Feedback.Rating
		givenAt := t.Feedback.GivenAt
		m.FeedbackRating = &rating
		m.FeedbackComment = t.Feedback.Comment
		m.FeedbackGivenAt = &givenAt
	} else {
		m.FeedbackRating = nil
		m.FeedbackComment = ""
		m.FeedbackGivenAt = nil
	}
}

// TicketModelFromDomain creates a new persistence model from a domain Ticket entity.
func TicketModelFromDomain(t *ticket.Ticket) *TicketModel {
	m := &TicketModel{}
	m.FromDomain(t)
	return m
}

// MaintenanceModel is the persistence model for the Maintenance aggregate root.
type MaintenanceModel struct {
	AggregateModel
	MaintenanceNumber string     `gorm:"type:varchar(30);not null;uniqueIndex"`
	AssetName         string     `gorm:"type:varchar(200);not null"`
	Description       string     `gorm:"type:text"`
	Status            string     `gorm:"type:varchar(30);not null;index"`
	RequestedByID     uuid.UUID  `gorm:"type:uuid;not null"`
	RequestedBy       string     `gorm:"type:varchar(100)"`
	DivisionID        uuid.UUID  `gorm:"type:uuid;not null;index"`
	TechnicianID      *uuid.UUID `gorm:"type:uuid;index"`
	CancelReason      string     `gorm:"type:text"`
	StartedAt         *time.Time
	FinishedAt        *time.Time
	ConfirmedAt       *time.Time
	CancelledAt       *time.Time
}

// TableName returns the table name for GORM
func (MaintenanceModel) TableName() string {
	return "maintenances"
}

// ToDomain converts the persistence model to a domain Maintenance entity.
func (m *MaintenanceModel) ToDomain() *ticket.Maintenance {
	return &ticket.Maintenance{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		MaintenanceNumber: m.MaintenanceNumber,
		AssetName:         m.AssetName,
		Description:       m.Description,
		Status:            workflow.State(m.Status),
		RequestedByID:     m.RequestedByID,
		RequestedBy:       m.RequestedBy,
		DivisionID:        m.DivisionID,
		TechnicianID:      m.TechnicianID,
		CancelReason:      m.CancelReason,
		StartedAt:         m.StartedAt,
		FinishedAt:        m.FinishedAt,
		ConfirmedAt:       m.ConfirmedAt,
		CancelledAt:       m.CancelledAt,
	}
}

// FromDomain populates the persistence model from a domain Maintenance entity.
func (m *MaintenanceModel) FromDomain(mt *ticket.Maintenance) {
	m.FromDomainAggregateRoot(mt.BaseAggregateRoot)
	m.MaintenanceNumber = mt.MaintenanceNumber
	m.AssetName = mt.AssetName
	m.Description = mt.Description
	m.Status = string(mt.Status)
	m.RequestedByID = mt.RequestedByID
	m.RequestedBy = mt.RequestedBy
	m.DivisionID = mt.DivisionID
	m.TechnicianID = mt.TechnicianID
	m.CancelReason = mt.CancelReason
	m.StartedAt = mt.StartedAt
	m.FinishedAt = mt.FinishedAt
	m.ConfirmedAt = mt.ConfirmedAt
	m.CancelledAt = mt.CancelledAt
}

// MaintenanceModelFromDomain creates a new persistence model from a domain Maintenance entity.
func MaintenanceModelFromDomain(mt *ticket.Maintenance) *MaintenanceModel {
	m := &MaintenanceModel{}
	m.FromDomain(mt)
	return m
}
