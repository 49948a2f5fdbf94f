package division

import (
	"context"

	"github.com/google/uuid"

	"github.com/backoffice/backend/internal/domain/division"
	"github.com/backoffice/backend/internal/domain/shared"
)

// StorageQuotaService exposes the storage quota ledger to other application
// services. The ledger implementation performs reservation checks atomically
// against the division's capacity row, so concurrent reservations cannot
// oversubscribe a quota.
type StorageQuotaService struct {
	ledger          division.Ledger
	reservationRepo division.ReservationRepository
	eventBus        shared.EventBus
}

// NewStorageQuotaService creates a new StorageQuotaService
func NewStorageQuotaService(ledger division.Ledger, reservationRepo division.ReservationRepository, eventBus shared.EventBus) *StorageQuotaService {
	return &StorageQuotaService{
		ledger:          ledger,
		reservationRepo: reservationRepo,
		eventBus:        eventBus,
	}
}

// Reserve books storage against a division's quota. A nil division reserves
// against the global pool. Returns InsufficientCapacityError when the quota
// cannot hold the requested amount.
func (s *StorageQuotaService) Reserve(ctx context.Context, divisionID *uuid.UUID, entityType string, entityID uuid.UUID, amount int64) (*ReservationResponse, error) {
	r, err := s.ledger.Reserve(ctx, divisionID, entityType, entityID, amount)
	if err != nil {
		return nil, err
	}

	if s.eventBus != nil {
		_ = s.eventBus.Publish(ctx, division.NewCapacityReservedEvent(r))
	}

	response := ToReservationResponse(r)
	return &response, nil
}

// Release returns a reservation's capacity to its quota. Releasing an
// already-released reservation is rejected by the ledger, so a double
// release never refunds twice.
func (s *StorageQuotaService) Release(ctx context.Context, reservationID uuid.UUID) error {
	r, err := s.reservationRepo.FindByID(ctx, reservationID)
	if err != nil {
		return err
	}
	if err := s.ledger.Release(ctx, reservationID); err != nil {
		return err
	}
	if s.eventBus != nil {
		_ = s.eventBus.Publish(ctx, division.NewCapacityReleasedEvent(r))
	}
	return nil
}

// ReleaseByEntity releases every live reservation held by an entity
func (s *StorageQuotaService) ReleaseByEntity(ctx context.Context, entityType string, entityID uuid.UUID) error {
	reservations, err := s.reservationRepo.FindLiveByEntity(ctx, entityType, entityID)
	if err != nil {
		return err
	}
	for i := range reservations {
		if err := s.ledger.Release(ctx, reservations[i].ID); err != nil {
			return err
		}
		if s.eventBus != nil {
			_ = s.eventBus.Publish(ctx, division.NewCapacityReleasedEvent(&reservations[i]))
		}
	}
	return nil
}

// Usage reports a division's current storage usage
func (s *StorageQuotaService) Usage(ctx context.Context, divisionID uuid.UUID) (*UsageResponse, error) {
	u, err := s.ledger.Usage(ctx, divisionID)
	if err != nil {
		return nil, err
	}

	return &UsageResponse{
		DivisionID:   u.DivisionID,
		UsedCapacity: u.UsedCapacity,
		MaxCapacity:  u.MaxCapacity,
		Percent:      u.Percent,
	}, nil
}
