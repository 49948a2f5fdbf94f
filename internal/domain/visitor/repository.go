package visitor

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/backoffice/backend/internal/domain/shared"
)

// Filter narrows visitor queries
type Filter struct {
	shared.Filter
	Status         string
	HostDivisionID *uuid.UUID
	ScheduledFrom  *time.Time
	ScheduledTo    *time.Time
}

// Repository persists visitor appointments
type Repository interface {
	Save(ctx context.Context, visitor *Visitor) error
	SaveWithLock(ctx context.Context, visitor *Visitor) error
	FindByID(ctx context.Context, id uuid.UUID) (*Visitor, error)
	FindAll(ctx context.Context, filter Filter) (*shared.Paginated[*Visitor], error)
	Delete(ctx context.Context, id uuid.UUID) error
}
