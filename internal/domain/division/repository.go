package division

import (
	"context"

	"github.com/google/uuid"

	"github.com/backoffice/backend/internal/domain/shared"
)

// DivisionRepository persists Division aggregates
type DivisionRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Division, error)
	FindByCode(ctx context.Context, code string) (*Division, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Division, error)
	Save(ctx context.Context, d *Division) error
	// SaveWithLock persists capacity fields with an optimistic version check
	SaveWithLock(ctx context.Context, d *Division) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
}

// PositionRepository persists Position records
type PositionRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Position, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Position, error)
	FindByDivision(ctx context.Context, divisionID uuid.UUID, filter shared.Filter) ([]Position, error)
	Save(ctx context.Context, p *Position) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// ReservationRepository persists StorageReservation records
type ReservationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*StorageReservation, error)
	FindLiveByEntity(ctx context.Context, entityType string, entityID uuid.UUID) ([]StorageReservation, error)
	Save(ctx context.Context, r *StorageReservation) error
	CountLiveByEntity(ctx context.Context, entityType string, entityID uuid.UUID) (int64, error)
}

// Ledger is the only component allowed to mutate a division's used capacity.
// Reserve applies the capacity check and the increment as one atomic step so
// two concurrent reservations can never both pass the check against stale
// state; Release decrements by exactly the amount originally reserved.
type Ledger interface {
	// Reserve allocates amount bytes of the division's pool to an entity.
	// A nil divisionID targets the global pool, which is unbounded; the
	// reservation row is still written so release stays symmetric.
	Reserve(ctx context.Context, divisionID *uuid.UUID, entityType string, entityID uuid.UUID, amount int64) (*StorageReservation, error)
	// Release returns a reservation's capacity to its pool. Releasing an
	// already-released reservation is an error, not a double decrement.
	Release(ctx context.Context, reservationID uuid.UUID) error
	// Usage reports the owner's current capacity snapshot
	Usage(ctx context.Context, divisionID uuid.UUID) (*Usage, error)
}
