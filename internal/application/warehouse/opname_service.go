package warehouse

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/backoffice/backend/internal/domain/shared"
	"github.com/backoffice/backend/internal/domain/warehouse"
	"github.com/backoffice/backend/internal/domain/workflow"
)

// OpnameService provides application services for stock-taking sessions
type OpnameService struct {
	opnameRepo  warehouse.OpnameRepository
	itemRepo    warehouse.StockItemRepository
	txScope     TransactionScope
	idempotency shared.IdempotencyStore
	eventBus    shared.EventBus
}

// NewOpnameService creates a new OpnameService
func NewOpnameService(
	opnameRepo warehouse.OpnameRepository,
	itemRepo warehouse.StockItemRepository,
	txScope TransactionScope,
	idempotency shared.IdempotencyStore,
	eventBus shared.EventBus,
) *OpnameService {
	return &OpnameService{
		opnameRepo:  opnameRepo,
		itemRepo:    itemRepo,
		txScope:     txScope,
		idempotency: idempotency,
		eventBus:    eventBus,
	}
}

// GetByID retrieves a stock-taking session by ID
func (s *OpnameService) GetByID(ctx context.Context, id uuid.UUID) (*OpnameResponse, error) {
	session, err := s.opnameRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToOpnameResponse(session)
	return &response, nil
}

// List retrieves a paginated list of stock-taking sessions
func (s *OpnameService) List(ctx context.Context, filter OpnameListFilter) ([]OpnameResponse, int64, error) {
	domainFilter := warehouse.OpnameFilter{
		Filter: shared.Filter{
			Page:     filter.Page,
			PageSize: filter.PageSize,
			OrderBy:  filter.OrderBy,
			OrderDir: filter.OrderDir,
			Search:   filter.Search,
		}.Normalize(),
		Status: filter.Status,
	}

	page, err := s.opnameRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]OpnameResponse, 0, len(page.Items))
	for _, session := range page.Items {
		responses = append(responses, ToOpnameResponse(session))
	}
	return responses, page.Total, nil
}

// Create opens a new session snapshotting the current system stock of the
// requested items
func (s *OpnameService) Create(ctx context.Context, req CreateOpnameRequest) (*OpnameResponse, error) {
	opnameNumber, err := s.opnameRepo.GenerateNumber(ctx)
	if err != nil {
		return nil, err
	}

	session, err := warehouse.NewStockOpname(opnameNumber, req.Title)
	if err != nil {
		return nil, err
	}
	session.Note = req.Note

	items, err := s.itemRepo.FindByIDs(ctx, req.Items)
	if err != nil {
		return nil, err
	}
	if len(items) != len(req.Items) {
		return nil, shared.ErrNotFound
	}
	for _, item := range items {
		if err := session.AddLine(item.ID, item.Name, item.Unit, item.Quantity); err != nil {
			return nil, err
		}
	}

	if err := s.opnameRepo.Save(ctx, session); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, session)

	response := ToOpnameResponse(session)
	return &response, nil
}

// Start moves a session to the counting phase
func (s *OpnameService) Start(ctx context.Context, id uuid.UUID) (*OpnameResponse, error) {
	return s.transition(ctx, id, (*warehouse.StockOpname).Start)
}

// RecordCounts records physical counts for a batch of items
func (s *OpnameService) RecordCounts(ctx context.Context, id uuid.UUID, req RecordCountsRequest) (*OpnameResponse, error) {
	session, err := s.opnameRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	for _, count := range req.Counts {
		if err := session.RecordCount(count.ItemID, count.FinalStock, count.Note); err != nil {
			return nil, err
		}
	}

	if err := s.opnameRepo.SaveWithLock(ctx, session); err != nil {
		return nil, err
	}

	response := ToOpnameResponse(session)
	return &response, nil
}

// MarkCounted closes the counting phase. Every line needs a recorded count.
func (s *OpnameService) MarkCounted(ctx context.Context, id uuid.UUID) (*OpnameResponse, error) {
	return s.transition(ctx, id, (*warehouse.StockOpname).MarkCounted)
}

// Finish finalizes a counted session and applies its stock adjustments.
// The status write and all item updates commit in one transaction, and an
// idempotency key keeps replays from adjusting stock twice. The key is only
// consumed after the transaction commits: a finalization that fails leaves
// it unburned so the retry runs for real.
func (s *OpnameService) Finish(ctx context.Context, id uuid.UUID, idempotencyKey string) (*OpnameResponse, error) {
	if idempotencyKey != "" && s.idempotency != nil {
		processed, err := s.idempotency.IsProcessed(ctx, "opname:finish:"+idempotencyKey)
		if err != nil {
			return nil, err
		}
		if processed {
			return s.GetByID(ctx, id)
		}
	}

	var response OpnameResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		session, err := repos.OpnameRepo().FindByID(ctx, id)
		if err != nil {
			return err
		}

		if err := session.Finish(); err != nil {
			if errors.Is(err, workflow.ErrAlreadyInState) {
				response = ToOpnameResponse(session)
				return nil
			}
			return err
		}

		for _, delta := range session.StockDeltas() {
			item, err := repos.ItemRepo().FindByID(ctx, delta.ItemID)
			if err != nil {
				return err
			}
			if err := item.SetQuantity(delta.NewStock); err != nil {
				return err
			}
			if err := repos.ItemRepo().SaveWithLock(ctx, item); err != nil {
				return err
			}
		}

		if err := repos.OpnameRepo().SaveWithLock(ctx, session); err != nil {
			return err
		}

		s.publishEvents(ctx, session)
		response = ToOpnameResponse(session)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if idempotencyKey != "" && s.idempotency != nil {
		_, _ = s.idempotency.MarkProcessed(ctx, "opname:finish:"+idempotencyKey, idempotencyTTL)
	}
	return &response, nil
}

// Delete removes a session that has not been finalized
func (s *OpnameService) Delete(ctx context.Context, id uuid.UUID) error {
	session, err := s.opnameRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if session.Status == warehouse.OpnameStatusFinished {
		return shared.ErrConflict
	}
	return s.opnameRepo.Delete(ctx, id)
}

func (s *OpnameService) transition(ctx context.Context, id uuid.UUID, fn func(*warehouse.StockOpname) error) (*OpnameResponse, error) {
	session, err := s.opnameRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := fn(session); err != nil {
		if errors.Is(err, workflow.ErrAlreadyInState) {
			response := ToOpnameResponse(session)
			return &response, nil
		}
		return nil, err
	}

	if err := s.opnameRepo.SaveWithLock(ctx, session); err != nil {
		return nil, err
	}

	response := ToOpnameResponse(session)
	return &response, nil
}

func (s *OpnameService) publishEvents(ctx context.Context, session *warehouse.StockOpname) {
	if s.eventBus == nil {
		return
	}

	for _, event := range session.GetDomainEvents() {
		_ = s.eventBus.Publish(ctx, event)
	}
	session.ClearDomainEvents()
}
