package ticket

import (
	"time"

	"github.com/google/uuid"

	"github.com/backoffice/backend/internal/domain/shared"
	"github.com/backoffice/backend/internal/domain/workflow"
)

// Ticket statuses
const (
	StatusPending    workflow.State = "PENDING"
	StatusProcess    workflow.State = "PROCESS"
	StatusFinish     workflow.State = "FINISH"
	StatusRefinement workflow.State = "REFINEMENT"
	StatusClosed     workflow.State = "CLOSED"
)

// Machine declares the helpdesk ticket lifecycle. A pending ticket is
// either accepted into PROCESS or rejected straight to CLOSED; finished
// and refinement tickets both end at CLOSED.
var Machine = workflow.NewMachine("ticket", StatusPending, map[workflow.State]workflow.StateSpec{
	StatusPending:    {Label: "Menunggu", Color: "warning", Next: []workflow.State{StatusProcess, StatusClosed}},
	StatusProcess:    {Label: "Diproses", Color: "info", Next: []workflow.State{StatusFinish, StatusRefinement}},
	StatusFinish:     {Label: "Selesai", Color: "success", Next: []workflow.State{StatusClosed}},
	StatusRefinement: {Label: "Perbaikan", Color: "secondary", Next: []workflow.State{StatusClosed}},
	StatusClosed:     {Label: "Ditutup", Color: "dark"},
})

// Feedback is the reporter's rating of a finished ticket
type Feedback struct {
	Rating  int
	Comment string
	GivenAt time.Time
}

// Ticket is a helpdesk request raised by a division member
type Ticket struct {
	shared.BaseAggregateRoot
	TicketNumber string
	Title        string
	Description  string
	Category     string
	Priority     string
	Status       workflow.State
	ReporterID   uuid.UUID
	ReporterName string
	DivisionID   uuid.UUID
	AssigneeID   *uuid.UUID
	RejectReason string
	Feedback     *Feedback
	ProcessedAt  *time.Time
	FinishedAt   *time.Time
	ClosedAt     *time.Time
}

// NewTicket creates a new pending ticket
func NewTicket(ticketNumber, title, description, category, priority string, reporterID uuid.UUID, reporterName string, divisionID uuid.UUID) (*Ticket, error) {
	if ticketNumber == "" {
		return nil, shared.NewDomainError("INVALID_TICKET_NUMBER", "Ticket number cannot be empty")
	}
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Title cannot be empty")
	}
	if reporterID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_REPORTER", "Reporter ID cannot be empty")
	}
	if divisionID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_DIVISION", "Division ID cannot be empty")
	}

	t := &Ticket{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		TicketNumber:      ticketNumber,
		Title:             title,
		Description:       description,
		Category:          category,
		Priority:          priority,
		Status:            Machine.Initial(),
		ReporterID:        reporterID,
		ReporterName:      reporterName,
		DivisionID:        divisionID,
	}
	t.AddDomainEvent(NewTicketCreatedEvent(t))
	return t, nil
}

// Accept assigns the ticket and starts processing
func (t *Ticket) Accept(assigneeID uuid.UUID) error {
	if assigneeID == uuid.Nil {
		return shared.NewDomainError("INVALID_ASSIGNEE", "Assignee ID cannot be empty")
	}
	if err := t.transitionTo(StatusProcess); err != nil {
		return err
	}
	now := time.Now()
	t.Status = StatusProcess
	t.AssigneeID = &assigneeID
	t.ProcessedAt = &now
	t.UpdatedAt = now
	t.IncrementVersion()
	return nil
}

// Reject closes a pending ticket without processing it
func (t *Ticket) Reject(reason string) error {
	if t.Status != StatusPending {
		return shared.NewInvalidTransitionError("ticket", string(t.Status), string(StatusClosed))
	}
	if err := t.transitionTo(StatusClosed); err != nil {
		return err
	}
	now := time.Now()
	t.Status = StatusClosed
	t.RejectReason = reason
	t.ClosedAt = &now
	t.UpdatedAt = now
	t.IncrementVersion()
	return nil
}

// Finish marks the work on the ticket as done
func (t *Ticket) Finish() error {
	if err := t.transitionTo(StatusFinish); err != nil {
		return err
	}
	now := time.Now()
	t.Status = StatusFinish
	t.FinishedAt = &now
	t.UpdatedAt = now
	t.IncrementVersion()
	t.AddDomainEvent(NewTicketFinishedEvent(t))
	return nil
}

// RequestRefinement flags a processed ticket as needing rework before closing
func (t *Ticket) RequestRefinement() error {
	if err := t.transitionTo(StatusRefinement); err != nil {
		return err
	}
	t.Status = StatusRefinement
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
	return nil
}

// Close archives a finished or refinement ticket
func (t *Ticket) Close() error {
	if err := t.transitionTo(StatusClosed); err != nil {
		return err
	}
	now := time.Now()
	t.Status = StatusClosed
	t.ClosedAt = &now
	t.UpdatedAt = now
	t.IncrementVersion()
	return nil
}

// GiveFeedback records the reporter's rating. Feedback is only accepted
// while the ticket sits in FINISH.
func (t *Ticket) GiveFeedback(rating int, comment string) error {
	if t.Status != StatusFinish {
		return shared.NewDomainError("FEEDBACK_NOT_ALLOWED", "Feedback can only be given on a finished ticket")
	}
	if rating < 1 || rating > 5 {
		return shared.NewDomainError("INVALID_RATING", "Rating must be between 1 and 5")
	}
	t.Feedback = &Feedback{
		Rating:  rating,
		Comment: comment,
		GivenAt: time.Now(),
	}
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
	return nil
}

func (t *Ticket) transitionTo(target workflow.State) error {
	return Machine.Transition(t.Status, target)
}

// StatusLabel returns the presentation label of the current status
func (t *Ticket) StatusLabel() string {
	return Machine.Label(t.Status)
}
