package division

import (
	"time"

	"github.com/google/uuid"

	"github.com/backoffice/backend/internal/domain/shared"
)

// Division is an organizational unit that owns a bounded storage pool.
// UsedCapacity is mutated exclusively through the quota ledger; other
// components read it but never write it.
type Division struct {
	shared.BaseAggregateRoot
	Name         string
	Code         string
	Description  string
	MaxCapacity  int64 // bytes
	UsedCapacity int64 // bytes
}

// NewDivision creates a new division with an empty storage pool
func NewDivision(name, code string, maxCapacity int64) (*Division, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Division name cannot be empty")
	}
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Division code cannot be empty")
	}
	if maxCapacity < 0 {
		return nil, shared.NewDomainError("INVALID_CAPACITY", "Max capacity cannot be negative")
	}

	d := &Division{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Code:              code,
		MaxCapacity:       maxCapacity,
		UsedCapacity:      0,
	}
	d.AddDomainEvent(NewDivisionCreatedEvent(d))
	return d, nil
}

// Rename updates the division name
func (d *Division) Rename(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Division name cannot be empty")
	}
	d.Name = name
	d.UpdatedAt = time.Now()
	d.IncrementVersion()
	return nil
}

// SetDescription updates the description
func (d *Division) SetDescription(description string) {
	d.Description = description
	d.UpdatedAt = time.Now()
}

// Resize changes the maximum capacity. Shrinking below the currently used
// capacity is rejected so the quota invariant keeps holding.
func (d *Division) Resize(maxCapacity int64) error {
	if maxCapacity < 0 {
		return shared.NewDomainError("INVALID_CAPACITY", "Max capacity cannot be negative")
	}
	if maxCapacity < d.UsedCapacity {
		return shared.NewDomainError("CAPACITY_IN_USE", "Max capacity cannot be below the capacity already in use")
	}
	d.MaxCapacity = maxCapacity
	d.UpdatedAt = time.Now()
	d.IncrementVersion()
	return nil
}

// AvailableCapacity returns the free capacity in bytes
func (d *Division) AvailableCapacity() int64 {
	return d.MaxCapacity - d.UsedCapacity
}

// CanReserve reports whether amount more bytes fit into the pool
func (d *Division) CanReserve(amount int64) bool {
	return amount >= 0 && d.UsedCapacity+amount <= d.MaxCapacity
}

// UsagePercent returns used capacity as a percentage of the maximum
func (d *Division) UsagePercent() float64 {
	if d.MaxCapacity == 0 {
		return 0
	}
	return float64(d.UsedCapacity) / float64(d.MaxCapacity) * 100
}

// Usage is the capacity snapshot of one quota owner
type Usage struct {
	DivisionID   uuid.UUID
	UsedCapacity int64
	MaxCapacity  int64
	Percent      float64
}

// SnapshotUsage returns the division's current capacity usage
func (d *Division) SnapshotUsage() Usage {
	return Usage{
		DivisionID:   d.ID,
		UsedCapacity: d.UsedCapacity,
		MaxCapacity:  d.MaxCapacity,
		Percent:      d.UsagePercent(),
	}
}
