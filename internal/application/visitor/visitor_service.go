package visitor

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/backoffice/backend/internal/domain/shared"
	"github.com/backoffice/backend/internal/domain/visitor"
	"github.com/backoffice/backend/internal/domain/workflow"
)

// VisitorService provides application services for visitor appointments
type VisitorService struct {
	visitorRepo visitor.Repository
}

// NewVisitorService creates a new VisitorService
func NewVisitorService(visitorRepo visitor.Repository) *VisitorService {
	return &VisitorService{visitorRepo: visitorRepo}
}

// GetByID retrieves a visitor appointment by ID
func (s *VisitorService) GetByID(ctx context.Context, id uuid.UUID) (*VisitorResponse, error) {
	v, err := s.visitorRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToVisitorResponse(v)
	return &response, nil
}

// List retrieves a paginated list of visitor appointments
func (s *VisitorService) List(ctx context.Context, filter VisitorListFilter) ([]VisitorResponse, int64, error) {
	domainFilter := visitor.Filter{
		Filter: shared.Filter{
			Page:     filter.Page,
			PageSize: filter.PageSize,
			OrderBy:  filter.OrderBy,
			OrderDir: filter.OrderDir,
			Search:   filter.Search,
		}.Normalize(),
		Status:         filter.Status,
		HostDivisionID: filter.HostDivisionID,
		ScheduledFrom:  filter.ScheduledFrom,
		ScheduledTo:    filter.ScheduledTo,
	}

	page, err := s.visitorRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]VisitorResponse, 0, len(page.Items))
	for _, v := range page.Items {
		responses = append(responses, ToVisitorResponse(v))
	}
	return responses, page.Total, nil
}

// Schedule registers a new visit
func (s *VisitorService) Schedule(ctx context.Context, req ScheduleVisitorRequest) (*VisitorResponse, error) {
	v, err := visitor.NewVisitor(req.Name, req.Institution, req.Purpose, req.HostDivisionID, req.ScheduledAt)
	if err != nil {
		return nil, err
	}

	if err := s.visitorRepo.Save(ctx, v); err != nil {
		return nil, err
	}

	response := ToVisitorResponse(v)
	return &response, nil
}

// Reschedule moves a scheduled visit to a new time
func (s *VisitorService) Reschedule(ctx context.Context, id uuid.UUID, req RescheduleVisitorRequest) (*VisitorResponse, error) {
	v, err := s.visitorRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := v.Reschedule(req.ScheduledAt); err != nil {
		return nil, err
	}

	if err := s.visitorRepo.SaveWithLock(ctx, v); err != nil {
		return nil, err
	}

	response := ToVisitorResponse(v)
	return &response, nil
}

// CheckIn records the visitor's arrival
func (s *VisitorService) CheckIn(ctx context.Context, id uuid.UUID) (*VisitorResponse, error) {
	return s.transition(ctx, id, (*visitor.Visitor).CheckIn)
}

// CheckOut records the visitor's departure
func (s *VisitorService) CheckOut(ctx context.Context, id uuid.UUID) (*VisitorResponse, error) {
	return s.transition(ctx, id, (*visitor.Visitor).CheckOut)
}

// Cancel aborts a visit that has not started
func (s *VisitorService) Cancel(ctx context.Context, id uuid.UUID, req CancelVisitorRequest) (*VisitorResponse, error) {
	return s.transition(ctx, id, func(v *visitor.Visitor) error {
		return v.Cancel(req.Reason)
	})
}

// Delete removes a visit record
func (s *VisitorService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.visitorRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.visitorRepo.Delete(ctx, id)
}

func (s *VisitorService) transition(ctx context.Context, id uuid.UUID, fn func(*visitor.Visitor) error) (*VisitorResponse, error) {
	v, err := s.visitorRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := fn(v); err != nil {
		if errors.Is(err, workflow.ErrAlreadyInState) {
			response := ToVisitorResponse(v)
			return &response, nil
		}
		return nil, err
	}

	if err := s.visitorRepo.SaveWithLock(ctx, v); err != nil {
		return nil, err
	}

	response := ToVisitorResponse(v)
	return &response, nil
}
