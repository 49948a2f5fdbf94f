package ticket

import (
	"github.com/backoffice/backend/internal/domain/shared"
)

// TicketCreatedEvent is raised when a helpdesk ticket is submitted
type TicketCreatedEvent struct {
	shared.BaseDomainEvent
	TicketNumber string `json:"ticket_number"`
	Category     string `json:"category"`
	Priority     string `json:"priority"`
}

// NewTicketCreatedEvent creates a new ticket created event
func NewTicketCreatedEvent(t *Ticket) *TicketCreatedEvent {
	return &TicketCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("ticket.created", "Ticket", t.ID),
		TicketNumber:    t.TicketNumber,
		Category:        t.Category,
		Priority:        t.Priority,
	}
}

// TicketFinishedEvent is raised when work on a ticket completes
type TicketFinishedEvent struct {
	shared.BaseDomainEvent
	TicketNumber string `json:"ticket_number"`
}

// NewTicketFinishedEvent creates a new ticket finished event
func NewTicketFinishedEvent(t *Ticket) *TicketFinishedEvent {
	return &TicketFinishedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("ticket.finished", "Ticket", t.ID),
		TicketNumber:    t.TicketNumber,
	}
}
