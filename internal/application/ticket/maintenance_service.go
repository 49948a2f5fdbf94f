package ticket

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/backoffice/backend/internal/domain/shared"
	"github.com/backoffice/backend/internal/domain/ticket"
	"github.com/backoffice/backend/internal/domain/workflow"
)

// MaintenanceService provides application services for asset maintenance
type MaintenanceService struct {
	maintenanceRepo ticket.MaintenanceRepository
}

// NewMaintenanceService creates a new MaintenanceService
func NewMaintenanceService(maintenanceRepo ticket.MaintenanceRepository) *MaintenanceService {
	return &MaintenanceService{maintenanceRepo: maintenanceRepo}
}

// GetByID retrieves a maintenance request by ID
func (s *MaintenanceService) GetByID(ctx context.Context, id uuid.UUID) (*MaintenanceResponse, error) {
	m, err := s.maintenanceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToMaintenanceResponse(m)
	return &response, nil
}

// List retrieves a paginated list of maintenance requests
func (s *MaintenanceService) List(ctx context.Context, filter MaintenanceListFilter) ([]MaintenanceResponse, int64, error) {
	domainFilter := ticket.MaintenanceFilter{
		Filter: shared.Filter{
			Page:     filter.Page,
			PageSize: filter.PageSize,
			OrderBy:  filter.OrderBy,
			OrderDir: filter.OrderDir,
			Search:   filter.Search,
		}.Normalize(),
		Status:     filter.Status,
		DivisionID: filter.DivisionID,
	}

	page, err := s.maintenanceRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]MaintenanceResponse, 0, len(page.Items))
	for _, m := range page.Items {
		responses = append(responses, ToMaintenanceResponse(m))
	}
	return responses, page.Total, nil
}

// Create submits a new maintenance request
func (s *MaintenanceService) Create(ctx context.Context, req CreateMaintenanceRequest) (*MaintenanceResponse, error) {
	maintenanceNumber, err := s.maintenanceRepo.GenerateNumber(ctx)
	if err != nil {
		return nil, err
	}

	m, err := ticket.NewMaintenance(maintenanceNumber, req.AssetName, req.Description, req.RequestedByID, req.RequestedBy, req.DivisionID)
	if err != nil {
		return nil, err
	}

	if err := s.maintenanceRepo.Save(ctx, m); err != nil {
		return nil, err
	}

	response := ToMaintenanceResponse(m)
	return &response, nil
}

// Start assigns a technician and begins repair work
func (s *MaintenanceService) Start(ctx context.Context, id uuid.UUID, req StartMaintenanceRequest) (*MaintenanceResponse, error) {
	return s.transition(ctx, id, func(m *ticket.Maintenance) error {
		return m.Start(req.TechnicianID)
	})
}

// Finish marks the repair work as done
func (s *MaintenanceService) Finish(ctx context.Context, id uuid.UUID) (*MaintenanceResponse, error) {
	return s.transition(ctx, id, (*ticket.Maintenance).Finish)
}

// Confirm records the requester's acceptance of the finished work
func (s *MaintenanceService) Confirm(ctx context.Context, id uuid.UUID) (*MaintenanceResponse, error) {
	return s.transition(ctx, id, (*ticket.Maintenance).Confirm)
}

// Cancel aborts a request that has not finished
func (s *MaintenanceService) Cancel(ctx context.Context, id uuid.UUID, req CancelMaintenanceRequest) (*MaintenanceResponse, error) {
	return s.transition(ctx, id, func(m *ticket.Maintenance) error {
		return m.Cancel(req.Reason)
	})
}

func (s *MaintenanceService) transition(ctx context.Context, id uuid.UUID, fn func(*ticket.Maintenance) error) (*MaintenanceResponse, error) {
	m, err := s.maintenanceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := fn(m); err != nil {
		if errors.Is(err, workflow.ErrAlreadyInState) {
			response := ToMaintenanceResponse(m)
			return &response, nil
		}
		return nil, err
	}

	if err := s.maintenanceRepo.SaveWithLock(ctx, m); err != nil {
		return nil, err
	}

	response := ToMaintenanceResponse(m)
	return &response, nil
}
