package division

import (
	"time"

	"github.com/google/uuid"

	"github.com/backoffice/backend/internal/domain/shared"
)

// Position is a job position attached to a division. Plain CRUD record with
// no status workflow.
type Position struct {
	shared.BaseEntity
	DivisionID  uuid.UUID
	Name        string
	Description string
}

// NewPosition creates a new position within a division
func NewPosition(divisionID uuid.UUID, name, description string) (*Position, error) {
	if divisionID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_DIVISION", "Division ID cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Position name cannot be empty")
	}

	return &Position{
		BaseEntity:  shared.NewBaseEntity(),
		DivisionID:  divisionID,
		Name:        name,
		Description: description,
	}, nil
}

// Rename updates the position name
func (p *Position) Rename(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Position name cannot be empty")
	}
	p.Name = name
	p.UpdatedAt = time.Now()
	return nil
}
