package models

import (
	"time"

	"github.com/backoffice/backend/internal/domain/visitor"
	"github.com/backoffice/backend/internal/domain/workflow"
	"github.com/google/uuid"
)

// VisitorModel is the persistence model for the Visitor aggregate root.
type VisitorModel struct {
	AggregateModel
	Name           string    `gorm:"type:varchar(100);not null"`
	Institution    string    `gorm:"type:varchar(100)"`
	Purpose        string    `gorm:"type:text"`
	HostDivisionID uuid.UUID `gorm:"type:uuid;not null;index"`
	Status         string    `gorm:"type:varchar(30);not null;index"`
	ScheduledAt    time.Time `gorm:"not null;index"`
	CheckedInAt    *time.Time
	CheckedOutAt   *time.Time
	CancelledAt    *time.Time
	CancelReason   string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (VisitorModel) TableName() string {
	return "visitors"
}

// ToDomain converts the persistence model to a domain Visitor entity.
func (m *VisitorModel) ToDomain() *visitor.Visitor {
	return &visitor.Visitor{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		Institution:       m.Institution,
		Purpose:           m.Purpose,
		HostDivisionID:    m.HostDivisionID,
		Status:            workflow.State(m.Status),
		ScheduledAt:       m.ScheduledAt,
		CheckedInAt:       m.CheckedInAt,
		CheckedOutAt:      m.CheckedOutAt,
		CancelledAt:       m.CancelledAt,
		CancelReason:      m.CancelReason,
	}
}

// FromDomain populates the persistence model from a domain Visitor entity.
func (m *VisitorModel) FromDomain(v *visitor.Visitor) {
	m.FromDomainAggregateRoot(v.BaseAggregateRoot)
	m.Name = v.Name
	m.Institution = v.Institution
	m.Purpose = v.Purpose
	m.HostDivisionID = v.HostDivisionID
	m.Status = string(v.Status)
	m.ScheduledAt = v.ScheduledAt
	m.CheckedInAt = v.CheckedInAt
	m.CheckedOutAt = v.CheckedOutAt
	m.CancelledAt = v.CancelledAt
	m.CancelReason = v.CancelReason
}

// VisitorModelFromDomain creates a new persistence model from a domain Visitor entity.
func VisitorModelFromDomain(v *visitor.Visitor) *VisitorModel {
	m := &VisitorModel{}
	m.FromDomain(v)
	return m
}
