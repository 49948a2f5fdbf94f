package ticket

import (
	"context"

	"github.com/google/uuid"

	"github.com/backoffice/backend/internal/domain/shared"
)

// TicketFilter narrows ticket queries
type TicketFilter struct {
	shared.Filter
	Status     string
	Category   string
	Priority   string
	DivisionID *uuid.UUID
	ReporterID *uuid.UUID
}

// MaintenanceFilter narrows maintenance queries
type MaintenanceFilter struct {
	shared.Filter
	Status     string
	DivisionID *uuid.UUID
}

// Repository persists helpdesk tickets
type Repository interface {
	Save(ctx context.Context, ticket *Ticket) error
	SaveWithLock(ctx context.Context, ticket *Ticket) error
	FindByID(ctx context.Context, id uuid.UUID) (*Ticket, error)
	FindByNumber(ctx context.Context, ticketNumber string) (*Ticket, error)
	FindAll(ctx context.Context, filter TicketFilter) (*shared.Paginated[*Ticket], error)
	Delete(ctx context.Context, id uuid.UUID) error
	GenerateNumber(ctx context.Context) (string, error)
}

// MaintenanceRepository persists maintenance requests
type MaintenanceRepository interface {
	Save(ctx context.Context, m *Maintenance) error
	SaveWithLock(ctx context.Context, m *Maintenance) error
	FindByID(ctx context.Context, id uuid.UUID) (*Maintenance, error)
	FindByNumber(ctx context.Context, maintenanceNumber string) (*Maintenance, error)
	FindAll(ctx context.Context, filter MaintenanceFilter) (*shared.Paginated[*Maintenance], error)
	Delete(ctx context.Context, id uuid.UUID) error
	GenerateNumber(ctx context.Context) (string, error)
}
