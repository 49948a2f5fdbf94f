package visitor

import (
	"time"

	"github.com/google/uuid"

	"github.com/backoffice/backend/internal/domain/shared"
	"github.com/backoffice/backend/internal/domain/workflow"
)

// Visitor statuses
const (
	StatusScheduled  workflow.State = "SCHEDULED"
	StatusCheckedIn  workflow.State = "CHECKED_IN"
	StatusCheckedOut workflow.State = "CHECKED_OUT"
	StatusCancelled  workflow.State = "CANCELLED"
)

// Machine declares the visitor appointment lifecycle
var Machine = workflow.NewMachine("visitor", StatusScheduled, map[workflow.State]workflow.StateSpec{
	StatusScheduled:  {Label: "Terjadwal", Color: "info", Next: []workflow.State{StatusCheckedIn, StatusCancelled}},
	StatusCheckedIn:  {Label: "Check In", Color: "success", Next: []workflow.State{StatusCheckedOut}},
	StatusCheckedOut: {Label: "Check Out", Color: "secondary"},
	StatusCancelled:  {Label: "Dibatalkan", Color: "danger"},
})

// Visitor is a scheduled guest visit to a division
type Visitor struct {
	shared.BaseAggregateRoot
	Name           string
	Institution    string
	Purpose        string
	HostDivisionID uuid.UUID
	Status         workflow.State
	ScheduledAt    time.Time
	CheckedInAt    *time.Time
	CheckedOutAt   *time.Time
	CancelledAt    *time.Time
	CancelReason   string
}

// NewVisitor schedules a new visit
func NewVisitor(name, institution, purpose string, hostDivisionID uuid.UUID, scheduledAt time.Time) (*Visitor, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Visitor name cannot be empty")
	}
	if hostDivisionID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_DIVISION", "Host division ID cannot be empty")
	}
	if scheduledAt.IsZero() {
		return nil, shared.NewDomainError("INVALID_SCHEDULE", "Scheduled time cannot be empty")
	}

	return &Visitor{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Institution:       institution,
		Purpose:           purpose,
		HostDivisionID:    hostDivisionID,
		Status:            Machine.Initial(),
		ScheduledAt:       scheduledAt,
	}, nil
}

// CheckIn records the visitor's arrival
func (v *Visitor) CheckIn() error {
	if err := v.transitionTo(StatusCheckedIn); err != nil {
		return err
	}
	now := time.Now()
	v.Status = StatusCheckedIn
	v.CheckedInAt = &now
	v.UpdatedAt = now
	v.IncrementVersion()
	return nil
}

// CheckOut records the visitor's departure
func (v *Visitor) CheckOut() error {
	if err := v.transitionTo(StatusCheckedOut); err != nil {
		return err
	}
	now := time.Now()
	v.Status = StatusCheckedOut
	v.CheckedOutAt = &now
	v.UpdatedAt = now
	v.IncrementVersion()
	return nil
}

// Cancel aborts a visit that has not started
func (v *Visitor) Cancel(reason string) error {
	if err := v.transitionTo(StatusCancelled); err != nil {
		return err
	}
	now := time.Now()
	v.Status = StatusCancelled
	v.CancelReason = reason
	v.CancelledAt = &now
	v.UpdatedAt = now
	v.IncrementVersion()
	return nil
}

// Reschedule moves a scheduled visit to a new time
func (v *Visitor) Reschedule(scheduledAt time.Time) error {
	if v.Status != StatusScheduled {
		return shared.ErrConflict
	}
	if scheduledAt.IsZero() {
		return shared.NewDomainError("INVALID_SCHEDULE", "Scheduled time cannot be empty")
	}
	v.ScheduledAt = scheduledAt
	v.UpdatedAt = time.Now()
	v.IncrementVersion()
	return nil
}

func (v *Visitor) transitionTo(target workflow.State) error {
	return Machine.Transition(v.Status, target)
}

// StatusLabel returns the presentation label of the current status
func (v *Visitor) StatusLabel() string {
	return Machine.Label(v.Status)
}
