package division

import (
	"context"

	"github.com/google/uuid"

	"github.com/backoffice/backend/internal/domain/division"
	"github.com/backoffice/backend/internal/domain/shared"
)

// PositionService provides application services for position management
type PositionService struct {
	positionRepo division.PositionRepository
	divisionRepo division.DivisionRepository
}

// NewPositionService creates a new PositionService
func NewPositionService(positionRepo division.PositionRepository, divisionRepo division.DivisionRepository) *PositionService {
	return &PositionService{
		positionRepo: positionRepo,
		divisionRepo: divisionRepo,
	}
}

// GetByID retrieves a position by ID
func (s *PositionService) GetByID(ctx context.Context, id uuid.UUID) (*PositionResponse, error) {
	p, err := s.positionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToPositionResponse(p)
	return &response, nil
}

// List retrieves a paginated list of positions
func (s *PositionService) List(ctx context.Context, filter PositionListFilter) ([]PositionResponse, int64, error) {
	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
	}.Normalize()

	total, err := s.positionRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	var positions []division.Position
	if filter.DivisionID != nil {
		positions, err = s.positionRepo.FindByDivision(ctx, *filter.DivisionID, domainFilter)
	} else {
		positions, err = s.positionRepo.FindAll(ctx, domainFilter)
	}
	if err != nil {
		return nil, 0, err
	}

	responses := make([]PositionResponse, 0, len(positions))
	for i := range positions {
		responses = append(responses, ToPositionResponse(&positions[i]))
	}
	return responses, total, nil
}

// Create creates a new position under a division
func (s *PositionService) Create(ctx context.Context, req CreatePositionRequest) (*PositionResponse, error) {
	if _, err := s.divisionRepo.FindByID(ctx, req.DivisionID); err != nil {
		return nil, err
	}

	p, err := division.NewPosition(req.DivisionID, req.Name, req.Description)
	if err != nil {
		return nil, err
	}

	if err := s.positionRepo.Save(ctx, p); err != nil {
		return nil, err
	}

	response := ToPositionResponse(p)
	return &response, nil
}

// Update renames a position and updates its description
func (s *PositionService) Update(ctx context.Context, id uuid.UUID, req UpdatePositionRequest) (*PositionResponse, error) {
	p, err := s.positionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := p.Rename(req.Name); err != nil {
		return nil, err
	}
	p.Description = req.Description

	if err := s.positionRepo.Save(ctx, p); err != nil {
		return nil, err
	}

	response := ToPositionResponse(p)
	return &response, nil
}

// Delete removes a position
func (s *PositionService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.positionRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.positionRepo.Delete(ctx, id)
}
