package division

import (
	"context"

	"github.com/google/uuid"

	"github.com/backoffice/backend/internal/domain/division"
	"github.com/backoffice/backend/internal/domain/shared"
)

// DivisionService provides application services for division management
type DivisionService struct {
	divisionRepo division.DivisionRepository
	eventBus     shared.EventBus
}

// NewDivisionService creates a new DivisionService
func NewDivisionService(divisionRepo division.DivisionRepository, eventBus shared.EventBus) *DivisionService {
	return &DivisionService{
		divisionRepo: divisionRepo,
		eventBus:     eventBus,
	}
}

// GetByID retrieves a division by ID
func (s *DivisionService) GetByID(ctx context.Context, id uuid.UUID) (*DivisionResponse, error) {
	d, err := s.divisionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToDivisionResponse(d)
	return &response, nil
}

// List retrieves a paginated list of divisions
func (s *DivisionService) List(ctx context.Context, filter DivisionListFilter) ([]DivisionResponse, int64, error) {
	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
	}.Normalize()

	total, err := s.divisionRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	divisions, err := s.divisionRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]DivisionResponse, 0, len(divisions))
	for i := range divisions {
		responses = append(responses, ToDivisionResponse(&divisions[i]))
	}
	return responses, total, nil
}

// Create creates a new division
func (s *DivisionService) Create(ctx context.Context, req CreateDivisionRequest) (*DivisionResponse, error) {
	exists, err := s.divisionRepo.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.ErrAlreadyExists
	}

	d, err := division.NewDivision(req.Name, req.Code, req.MaxCapacity)
	if err != nil {
		return nil, err
	}
	if req.Description != "" {
		d.SetDescription(req.Description)
	}

	if err := s.divisionRepo.Save(ctx, d); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, d)

	response := ToDivisionResponse(d)
	return &response, nil
}

// Update renames a division and updates its description
func (s *DivisionService) Update(ctx context.Context, id uuid.UUID, req UpdateDivisionRequest) (*DivisionResponse, error) {
	d, err := s.divisionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := d.Rename(req.Name); err != nil {
		return nil, err
	}
	d.SetDescription(req.Description)

	if err := s.divisionRepo.SaveWithLock(ctx, d); err != nil {
		return nil, err
	}

	response := ToDivisionResponse(d)
	return &response, nil
}

// Resize changes a division's storage quota. Shrinking below the currently
// used capacity is rejected by the aggregate.
func (s *DivisionService) Resize(ctx context.Context, id uuid.UUID, req ResizeDivisionRequest) (*DivisionResponse, error) {
	d, err := s.divisionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := d.Resize(req.MaxCapacity); err != nil {
		return nil, err
	}

	if err := s.divisionRepo.SaveWithLock(ctx, d); err != nil {
		return nil, err
	}

	response := ToDivisionResponse(d)
	return &response, nil
}

// Delete removes an empty division
func (s *DivisionService) Delete(ctx context.Context, id uuid.UUID) error {
	d, err := s.divisionRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if d.UsedCapacity > 0 {
		return shared.NewDomainError("DIVISION_NOT_EMPTY", "Division still holds stored documents")
	}

	return s.divisionRepo.Delete(ctx, id)
}

func (s *DivisionService) publishEvents(ctx context.Context, d *division.Division) {
	if s.eventBus == nil {
		return
	}

	for _, event := range d.GetDomainEvents() {
		_ = s.eventBus.Publish(ctx, event)
	}
	d.ClearDomainEvents()
}
