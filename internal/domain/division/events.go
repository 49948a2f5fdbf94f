package division

import (
	"github.com/google/uuid"

	"github.com/backoffice/backend/internal/domain/shared"
)

// Aggregate type constant for Division
const AggregateTypeDivision = "Division"

// Division event type constants
const (
	EventTypeDivisionCreated  = "DivisionCreated"
	EventTypeCapacityReserved = "CapacityReserved"
	EventTypeCapacityReleased = "CapacityReleased"
)

// DivisionCreatedEvent is raised when a division is created
type DivisionCreatedEvent struct {
	shared.BaseDomainEvent
	DivisionID  uuid.UUID `json:"division_id"`
	Name        string    `json:"name"`
	Code        string    `json:"code"`
	MaxCapacity int64     `json:"max_capacity"`
}

// NewDivisionCreatedEvent creates a new DivisionCreatedEvent
func NewDivisionCreatedEvent(d *Division) *DivisionCreatedEvent {
	return &DivisionCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDivisionCreated, AggregateTypeDivision, d.ID),
		DivisionID:      d.ID,
		Name:            d.Name,
		Code:            d.Code,
		MaxCapacity:     d.MaxCapacity,
	}
}

// EventType returns the event type name
func (e *DivisionCreatedEvent) EventType() string {
	return EventTypeDivisionCreated
}

// CapacityReservedEvent is raised when storage capacity is reserved
type CapacityReservedEvent struct {
	shared.BaseDomainEvent
	DivisionID    *uuid.UUID `json:"division_id,omitempty"`
	ReservationID uuid.UUID  `json:"reservation_id"`
	EntityType    string     `json:"entity_type"`
	EntityID      uuid.UUID  `json:"entity_id"`
	Amount        int64      `json:"amount"`
}

// NewCapacityReservedEvent creates a new CapacityReservedEvent
func NewCapacityReservedEvent(r *StorageReservation) *CapacityReservedEvent {
	aggID := uuid.Nil
	if r.DivisionID != nil {
		aggID = *r.DivisionID
	}
	return &CapacityReservedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCapacityReserved, AggregateTypeDivision, aggID),
		DivisionID:      r.DivisionID,
		ReservationID:   r.ID,
		EntityType:      r.EntityType,
		EntityID:        r.EntityID,
		Amount:          r.Amount,
	}
}

// EventType returns the event type name
func (e *CapacityReservedEvent) EventType() string {
	return EventTypeCapacityReserved
}

// CapacityReleasedEvent is raised when a reservation is released
type CapacityReleasedEvent struct {
	shared.BaseDomainEvent
	DivisionID    *uuid.UUID `json:"division_id,omitempty"`
	ReservationID uuid.UUID  `json:"reservation_id"`
	Amount        int64      `json:"amount"`
}

// NewCapacityReleasedEvent creates a new CapacityReleasedEvent
func NewCapacityReleasedEvent(r *StorageReservation) *CapacityReleasedEvent {
	aggID := uuid.Nil
	if r.DivisionID != nil {
		aggID = *r.DivisionID
	}
	return &CapacityReleasedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCapacityReleased, AggregateTypeDivision, aggID),
		DivisionID:      r.DivisionID,
		ReservationID:   r.ID,
		Amount:          r.Amount,
	}
}

// EventType returns the event type name
func (e *CapacityReleasedEvent) EventType() string {
	return EventTypeCapacityReleased
}
