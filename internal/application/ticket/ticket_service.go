package ticket

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/backoffice/backend/internal/domain/shared"
	"github.com/backoffice/backend/internal/domain/ticket"
	"github.com/backoffice/backend/internal/domain/workflow"
	"github.com/backoffice/backend/internal/infrastructure/telemetry"
)

// TicketService provides application services for helpdesk tickets
type TicketService struct {
	ticketRepo      ticket.Repository
	eventBus        shared.EventBus
	businessMetrics *telemetry.BusinessMetrics
}

// NewTicketService creates a new TicketService
func NewTicketService(ticketRepo ticket.Repository, eventBus shared.EventBus) *TicketService {
	return &TicketService{
		ticketRepo: ticketRepo,
		eventBus:   eventBus,
	}
}

// SetBusinessMetrics sets the business metrics collector
func (s *TicketService) SetBusinessMetrics(bm *telemetry.BusinessMetrics) {
	s.businessMetrics = bm
}

// GetByID retrieves a ticket by ID
func (s *TicketService) GetByID(ctx context.Context, id uuid.UUID) (*TicketResponse, error) {
	t, err := s.ticketRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToTicketResponse(t)
	return &response, nil
}

// List retrieves a paginated list of tickets
func (s *TicketService) List(ctx context.Context, filter TicketListFilter) ([]TicketResponse, int64, error) {
	domainFilter := ticket.TicketFilter{
		Filter: shared.Filter{
			Page:     filter.Page,
			PageSize: filter.PageSize,
			OrderBy:  filter.OrderBy,
			OrderDir: filter.OrderDir,
			Search:   filter.Search,
		}.Normalize(),
		Status:     filter.Status,
		Category:   filter.Category,
		Priority:   filter.Priority,
		DivisionID: filter.DivisionID,
		ReporterID: filter.ReporterID,
	}

	page, err := s.ticketRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]TicketResponse, 0, len(page.Items))
	for _, t := range page.Items {
		responses = append(responses, ToTicketResponse(t))
	}
	return responses, page.Total, nil
}

// Create opens a new ticket
func (s *TicketService) Create(ctx context.Context, req CreateTicketRequest) (*TicketResponse, error) {
	ticketNumber, err := s.ticketRepo.GenerateNumber(ctx)
	if err != nil {
		return nil, err
	}

	t, err := ticket.NewTicket(ticketNumber, req.Title, req.Description, req.Category, req.Priority, req.ReporterID, req.ReporterName, req.DivisionID)
	if err != nil {
		return nil, err
	}

	if err := s.ticketRepo.Save(ctx, t); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, t)

	if s.businessMetrics != nil {
		s.businessMetrics.RecordTicketOpened(ctx, t.Category, t.Priority)
	}

	response := ToTicketResponse(t)
	return &response, nil
}

// Accept assigns the ticket and starts processing
func (s *TicketService) Accept(ctx context.Context, id uuid.UUID, req AcceptTicketRequest) (*TicketResponse, error) {
	return s.transition(ctx, id, func(t *ticket.Ticket) error {
		return t.Accept(req.AssigneeID)
	})
}

// Reject closes a pending ticket without processing it
func (s *TicketService) Reject(ctx context.Context, id uuid.UUID, req RejectTicketRequest) (*TicketResponse, error) {
	return s.transition(ctx, id, func(t *ticket.Ticket) error {
		return t.Reject(req.Reason)
	})
}

// Finish marks the ticket's work as done
func (s *TicketService) Finish(ctx context.Context, id uuid.UUID) (*TicketResponse, error) {
	return s.transition(ctx, id, (*ticket.Ticket).Finish)
}

// RequestRefinement flags a processed ticket as needing rework
func (s *TicketService) RequestRefinement(ctx context.Context, id uuid.UUID) (*TicketResponse, error) {
	return s.transition(ctx, id, (*ticket.Ticket).RequestRefinement)
}

// Close archives a finished or refinement ticket
func (s *TicketService) Close(ctx context.Context, id uuid.UUID) (*TicketResponse, error) {
	return s.transition(ctx, id, (*ticket.Ticket).Close)
}

// GiveFeedback records the reporter's rating of a finished ticket
func (s *TicketService) GiveFeedback(ctx context.Context, id uuid.UUID, req FeedbackRequest) (*TicketResponse, error) {
	t, err := s.ticketRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := t.GiveFeedback(req.Rating, req.Comment); err != nil {
		return nil, err
	}

	if err := s.ticketRepo.Save(ctx, t); err != nil {
		return nil, err
	}

	response := ToTicketResponse(t)
	return &response, nil
}

func (s *TicketService) transition(ctx context.Context, id uuid.UUID, fn func(*ticket.Ticket) error) (*TicketResponse, error) {
	t, err := s.ticketRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := fn(t); err != nil {
		if errors.Is(err, workflow.ErrAlreadyInState) {
			response := ToTicketResponse(t)
			return &response, nil
		}
		return nil, err
	}

	if err := s.ticketRepo.SaveWithLock(ctx, t); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, t)

	response := ToTicketResponse(t)
	return &response, nil
}

func (s *TicketService) publishEvents(ctx context.Context, t *ticket.Ticket) {
	if s.eventBus == nil {
		return
	}

	for _, event := range t.GetDomainEvents() {
		_ = s.eventBus.Publish(ctx, event)
	}
	t.ClearDomainEvents()
}
