package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/backoffice/backend/internal/domain/division"
	"github.com/backoffice/backend/internal/domain/shared"
	"github.com/backoffice/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStorageLedger implements the division storage ledger using GORM.
//
// Reserve never reads the division's capacity before writing it. The check
// and the increment are a single guarded UPDATE, so two concurrent
// reservations racing for the last bytes of a pool serialize on the row and
// the loser sees the guard fail. Release is the symmetric guarded decrement.
type GormStorageLedger struct {
	db *gorm.DB
}

// NewGormStorageLedger creates a new GormStorageLedger
func NewGormStorageLedger(db *gorm.DB) *GormStorageLedger {
	return &GormStorageLedger{db: db}
}

// Reserve allocates amount bytes of the division's pool to an entity.
// A nil divisionID targets the global pool, which has no capacity bound;
// the reservation row is still written so release stays symmetric.
func (l *GormStorageLedger) Reserve(ctx context.Context, divisionID *uuid.UUID, entityType string, entityID uuid.UUID, amount int64) (*division.StorageReservation, error) {
	reservation, err := division.NewStorageReservation(divisionID, entityType, entityID, amount)
	if err != nil {
		return nil, err
	}

	err = l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if divisionID != nil {
			result := tx.Model(&models.DivisionModel{}).
				Where("id = ? AND used_capacity + ? <= max_capacity", *divisionID, amount).
				Updates(map[string]interface{}{
					"used_capacity": gorm.Expr("used_capacity + ?", amount),
					"updated_at":    time.Now(),
				})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return l.capacityError(tx, *divisionID, amount)
			}
		}

		model := models.StorageReservationModelFromDomain(reservation)
		return tx.Create(model).Error
	})
	if err != nil {
		return nil, err
	}
	return reservation, nil
}

// capacityError distinguishes a missing division from a full pool after the
// guarded update matched no row.
func (l *GormStorageLedger) capacityError(tx *gorm.DB, divisionID uuid.UUID, requested int64) error {
	var model models.DivisionModel
	if err := tx.First(&model, "id = ?", divisionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return shared.ErrNotFound
		}
		return err
	}
	available := model.MaxCapacity - model.UsedCapacity
	if available < 0 {
		available = 0
	}
	return &shared.InsufficientCapacityError{
		OwnerID:   divisionID.String(),
		Requested: requested,
		Available: available,
	}
}

// Release returns a reservation's capacity to its pool. Releasing an
// already-released reservation fails instead of decrementing twice.
func (l *GormStorageLedger) Release(ctx context.Context, reservationID uuid.UUID) error {
	return l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model models.StorageReservationModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&model, "id = ?", reservationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.ErrNotFound
			}
			return err
		}

		reservation := model.ToDomain()
		if err := reservation.MarkReleased(); err != nil {
			return err
		}

		if model.DivisionID != nil {
			result := tx.Model(&models.DivisionModel{}).
				Where("id = ? AND used_capacity >= ?", *model.DivisionID, model.Amount).
				Updates(map[string]interface{}{
					"used_capacity": gorm.Expr("used_capacity - ?", model.Amount),
					"updated_at":    time.Now(),
				})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				// Either the division is gone or the ledger drifted below
				// the reservation amount; both mean the books are broken.
				return shared.NewDomainError("LEDGER_INCONSISTENT", "Division capacity does not cover the reservation being released")
			}
		}

		return tx.Model(&models.StorageReservationModel{}).
			Where("id = ? AND released_at IS NULL", reservationID).
			Updates(map[string]interface{}{
				"released_at": reservation.ReleasedAt,
				"updated_at":  reservation.UpdatedAt,
			}).Error
	})
}

// Usage reports the division's current capacity snapshot
func (l *GormStorageLedger) Usage(ctx context.Context, divisionID uuid.UUID) (*division.Usage, error) {
	var model models.DivisionModel
	if err := l.db.WithContext(ctx).First(&model, "id = ?", divisionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	usage := model.ToDomain().SnapshotUsage()
	return &usage, nil
}

// Ensure GormStorageLedger implements Ledger
var _ division.Ledger = (*GormStorageLedger)(nil)

// GormReservationRepository implements ReservationRepository using GORM
type GormReservationRepository struct {
	db *gorm.DB
}

// NewGormReservationRepository creates a new GormReservationRepository
func NewGormReservationRepository(db *gorm.DB) *GormReservationRepository {
	return &GormReservationRepository{db: db}
}

// FindByID finds a reservation by its ID
func (r *GormReservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*division.StorageReservation, error) {
	var model models.StorageReservationModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindLiveByEntity finds the unreleased reservations held by an entity
func (r *GormReservationRepository) FindLiveByEntity(ctx context.Context, entityType string, entityID uuid.UUID) ([]division.StorageReservation, error) {
	var reservationModels []models.StorageReservationModel
	if err := r.db.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ? AND released_at IS NULL", entityType, entityID).
		Order("created_at ASC, id ASC").
		Find(&reservationModels).Error; err != nil {
		return nil, err
	}

	reservations := make([]division.StorageReservation, len(reservationModels))
	for i, model := range reservationModels {
		reservations[i] = *model.ToDomain()
	}
	return reservations, nil
}

// Save creates or updates a reservation
func (r *GormReservationRepository) Save(ctx context.Context, reservation *division.StorageReservation) error {
	model := models.StorageReservationModelFromDomain(reservation)
	return r.db.WithContext(ctx).Save(model).Error
}

// CountLiveByEntity counts the unreleased reservations held by an entity
func (r *GormReservationRepository) CountLiveByEntity(ctx context.Context, entityType string, entityID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.StorageReservationModel{}).
		Where("entity_type = ? AND entity_id = ? AND released_at IS NULL", entityType, entityID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormReservationRepository implements ReservationRepository
var _ division.ReservationRepository = (*GormReservationRepository)(nil)
