package models

import (
	"time"

	"github.com/backoffice/backend/internal/domain/division"
	"github.com/google/uuid"
)

// DivisionModel is the persistence model for the Division aggregate root.
// UsedCapacity is only ever mutated through the storage ledger's guarded
// update, never through a plain Save.
type DivisionModel struct {
	AggregateModel
	Name         string `gorm:"type:varchar(100);not null"`
	Code         string `gorm:"type:varchar(20);not null;uniqueIndex"`
	Description  string `gorm:"type:text"`
	MaxCapacity  int64  `gorm:"not null;default:0"`
	UsedCapacity int64  `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (DivisionModel) TableName() string {
	return "divisions"
}

// ToDomain converts the persistence model to a domain Division entity.
func (m *DivisionModel) ToDomain() *division.Division {
	return &division.Division{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		Code:              m.Code,
		Description:       m.Description,
		MaxCapacity:       m.MaxCapacity,
		UsedCapacity:      m.UsedCapacity,
	}
}

// FromDomain populates the persistence model from a domain Division entity.
func (m *DivisionModel) FromDomain(d *division.Division) {
	m.FromDomainAggregateRoot(d.BaseAggregateRoot)
	m.Name = d.Name
	m.Code = d.Code
	m.Description = d.Description
	m.MaxCapacity = d.MaxCapacity
	m.UsedCapacity = d.UsedCapacity
}

// DivisionModelFromDomain creates a new persistence model from a domain Division entity.
func DivisionModelFromDomain(d *division.Division) *DivisionModel {
	m := &DivisionModel{}
	m.FromDomain(d)
	return m
}

// PositionModel is the persistence model for the Position entity.
type PositionModel struct {
	BaseModel
	DivisionID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Name        string    `gorm:"type:varchar(100);not null"`
	Description string    `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (PositionModel) TableName() string {
	return "positions"
}

// ToDomain converts the persistence model to a domain Position entity.
func (m *PositionModel) ToDomain() *division.Position {
	return &division.Position{
		BaseEntity:  m.BaseModel.ToDomain(),
		DivisionID:  m.DivisionID,
		Name:        m.Name,
		Description: m.Description,
	}
}

// FromDomain populates the persistence model from a domain Position entity.
func (m *PositionModel) FromDomain(p *division.Position) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.DivisionID = p.DivisionID
	m.Name = p.Name
	m.Description = p.Description
}

// PositionModelFromDomain creates a new persistence model from a domain Position entity.
func PositionModelFromDomain(p *division.Position) *PositionModel {
	m := &PositionModel{}
	m.FromDomain(p)
	return m
}

// StorageReservationModel is the persistence model for StorageReservation.
// A NULL division_id marks a reservation against the unbounded global pool;
// a NULL released_at marks a live reservation still holding capacity.
type StorageReservationModel struct {
	BaseModel
	DivisionID *uuid.UUID `gorm:"type:uuid;index"`
	EntityType string     `gorm:"type:varchar(50);not null;index:idx_storage_reservations_entity,priority:1"`
	EntityID   uuid.UUID  `gorm:"type:uuid;not null;index:idx_storage_reservations_entity,priority:2"`
	Amount     int64      `gorm:"not null"`
	ReleasedAt *time.Time `gorm:"index"`
}

// TableName returns the table name for GORM
func (StorageReservationModel) TableName() string {
	return "storage_reservations"
}

// ToDomain converts the persistence model to a domain StorageReservation entity.
func (m *StorageReservationModel) ToDomain() *division.StorageReservation {
	return &division.StorageReservation{
		BaseEntity: m.BaseModel.ToDomain(),
		DivisionID: m.DivisionID,
		EntityType: m.EntityType,
		EntityID:   m.EntityID,
		Amount:     m.Amount,
		ReleasedAt: m.ReleasedAt,
	}
}

// FromDomain populates the persistence model from a domain StorageReservation entity.
func (m *StorageReservationModel) FromDomain(r *division.StorageReservation) {
	m.FromDomainBaseEntity(r.BaseEntity)
	m.DivisionID = r.DivisionID
	m.EntityType = r.EntityType
	m.EntityID = r.EntityID
	m.Amount = r.Amount
	m.ReleasedAt = r.ReleasedAt
}

// StorageReservationModelFromDomain creates a new persistence model from a domain StorageReservation entity.
func StorageReservationModelFromDomain(r *division.StorageReservation) *StorageReservationModel {
	m := &StorageReservationModel{}
	m.FromDomain(r)
	return m
}
