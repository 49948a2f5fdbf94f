package division

import (
	"time"

	"github.com/google/uuid"

	"github.com/backoffice/backend/internal/domain/shared"
)

// StorageReservation is a committed allocation of division capacity to one
// entity (typically a document). Release always returns the exact amount
// that was reserved, never a recomputed value, so the ledger cannot drift
// when the entity's size semantics change later.
type StorageReservation struct {
	shared.BaseEntity
	DivisionID *uuid.UUID // nil = global/warehouse pool, not counted against any division
	EntityType string
	EntityID   uuid.UUID
	Amount     int64 // bytes
	ReleasedAt *time.Time
}

// NewStorageReservation creates a reservation tying an entity to a division pool
func NewStorageReservation(divisionID *uuid.UUID, entityType string, entityID uuid.UUID, amount int64) (*StorageReservation, error) {
	if entityType == "" {
		return nil, shared.NewDomainError("INVALID_ENTITY_TYPE", "Reservation entity type cannot be empty")
	}
	if entityID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ENTITY", "Reservation entity ID cannot be empty")
	}
	if amount <= 0 {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Reservation amount must be positive")
	}

	return &StorageReservation{
		BaseEntity: shared.NewBaseEntity(),
		DivisionID: divisionID,
		EntityType: entityType,
		EntityID:   entityID,
		Amount:     amount,
	}, nil
}

// IsReleased reports whether the reserved capacity has been returned
func (r *StorageReservation) IsReleased() bool {
	return r.ReleasedAt != nil
}

// MarkReleased stamps the release time. Releasing twice is rejected so a
// retried release cannot decrement the owner's used capacity twice.
func (r *StorageReservation) MarkReleased() error {
	if r.IsReleased() {
		return shared.NewDomainError("ALREADY_RELEASED", "Reservation has already been released")
	}
	now := time.Now()
	r.ReleasedAt = &now
	r.UpdatedAt = now
	return nil
}
