package warehouse

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/backoffice/backend/internal/domain/shared"
	"github.com/backoffice/backend/internal/domain/warehouse"
	"github.com/backoffice/backend/internal/domain/workflow"
	"github.com/backoffice/backend/internal/infrastructure/telemetry"
)

// idempotencyTTL bounds how long processed transition keys are remembered
const idempotencyTTL = 24 * time.Hour

// OrderService provides application services for warehouse orders
type OrderService struct {
	orderRepo       warehouse.OrderRepository
	itemRepo        warehouse.StockItemRepository
	txScope         TransactionScope
	idempotency     shared.IdempotencyStore
	eventBus        shared.EventBus
	businessMetrics *telemetry.BusinessMetrics
}

// NewOrderService creates a new OrderService
func NewOrderService(
	orderRepo warehouse.OrderRepository,
	itemRepo warehouse.StockItemRepository,
	txScope TransactionScope,
	idempotency shared.IdempotencyStore,
	eventBus shared.EventBus,
) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		itemRepo:    itemRepo,
		txScope:     txScope,
		idempotency: idempotency,
		eventBus:    eventBus,
	}
}

// SetBusinessMetrics sets the business metrics collector
func (s *OrderService) SetBusinessMetrics(bm *telemetry.BusinessMetrics) {
	s.businessMetrics = bm
}

// GetByID retrieves an order by ID
func (s *OrderService) GetByID(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToOrderResponse(o)
	return &response, nil
}

// GetByNumber retrieves an order by its number
func (s *OrderService) GetByNumber(ctx context.Context, orderNumber string) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}

	response := ToOrderResponse(o)
	return &response, nil
}

// List retrieves a paginated list of orders
func (s *OrderService) List(ctx context.Context, filter OrderListFilter) ([]OrderResponse, int64, error) {
	domainFilter := warehouse.OrderFilter{
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

	page, err := s.orderRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]OrderResponse, 0, len(page.Items))
	for _, o := range page.Items {
		responses = append(responses, ToOrderResponse(o))
	}
	return responses, page.Total, nil
}

// Create creates a new pending order with its lines
func (s *OrderService) Create(ctx context.Context, req CreateOrderRequest) (*OrderResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "warehouse_order", "create")
	defer span.End()

	telemetry.SetAttributes(span,
		telemetry.SpanAttrDivisionID, req.DivisionID.String(),
	)

	orderNumber, err := s.orderRepo.GenerateNumber(ctx)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	telemetry.SetAttribute(span, telemetry.SpanAttrOrderNumber, orderNumber)

	o, err := warehouse.NewWarehouseOrder(orderNumber, req.DivisionID, req.DivisionName, req.RequestedByID, req.RequestedBy)
	if err != nil {
		return nil, err
	}
	o.Note = req.Note

	for _, line := range req.Lines {
		item, err := s.itemRepo.FindByID(ctx, line.ItemID)
		if err != nil {
			return nil, err
		}
		if err := o.AddLine(item.ID, item.Name, item.Unit, line.Quantity); err != nil {
			return nil, err
		}
	}

	if err := s.orderRepo.Save(ctx, o); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.publishEvents(ctx, o)

	if s.businessMetrics != nil {
		s.businessMetrics.RecordOrderCreated(ctx, o.DivisionID)
	}

	response := ToOrderResponse(o)
	return &response, nil
}

// UpdateLines replaces the lines of an editable order
func (s *OrderService) UpdateLines(ctx context.Context, id uuid.UUID, req UpdateOrderLinesRequest) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !o.IsEditable() {
		return nil, shared.ErrConflict
	}

	for _, line := range o.Lines {
		if err := o.RemoveLine(line.ItemID); err != nil {
			return nil, err
		}
	}
	for _, line := range req.Lines {
		item, err := s.itemRepo.FindByID(ctx, line.ItemID)
		if err != nil {
			return nil, err
		}
		if err := o.AddLine(item.ID, item.Name, item.Unit, line.Quantity); err != nil {
			return nil, err
		}
	}

	if err := s.orderRepo.SaveWithLock(ctx, o); err != nil {
		return nil, err
	}

	response := ToOrderResponse(o)
	return &response, nil
}

// Confirm validates stock for every order line and issues the stock. Status
// write and stock deductions commit in one transaction; the guard checks all
// lines before anything is deducted. An idempotency key makes retries safe:
// a replayed confirmation returns the stored order without deducting twice,
// while a confirmation that fails leaves its key unconsumed so the retry
// runs the transition again.
func (s *OrderService) Confirm(ctx context.Context, id uuid.UUID, idempotencyKey string) (*OrderResponse, error) {
	if replayed, response, err := s.checkReplay(ctx, "order:confirm:", idempotencyKey, id); replayed || err != nil {
		return response, err
	}

	var response OrderResponse
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		o, err := repos.OrderRepo().FindByID(ctx, id)
		if err != nil {
			return err
		}

		lineIDs := make([]uuid.UUID, 0, len(o.Lines))
		for _, line := range o.Lines {
			lineIDs = append(lineIDs, line.ItemID)
		}
		items, err := repos.ItemRepo().FindByIDs(ctx, lineIDs)
		if err != nil {
			return err
		}

		available := make(map[uuid.UUID]decimal.Decimal, len(items))
		byID := make(map[uuid.UUID]*warehouse.StockItem, len(items))
		for _, item := range items {
			available[item.ID] = item.Quantity
			byID[item.ID] = item
		}

		if err := o.Confirm(available); err != nil {
			if errors.Is(err, workflow.ErrAlreadyInState) {
				response = ToOrderResponse(o)
				return nil
			}
			return err
		}

		for _, line := range o.Lines {
			item := byID[line.ItemID]
			if err := item.Decrease(line.Quantity); err != nil {
				return err
			}
			if err := repos.ItemRepo().SaveWithLock(ctx, item); err != nil {
				return err
			}
		}

		if err := repos.OrderRepo().SaveWithLock(ctx, o); err != nil {
			return err
		}

		s.publishEvents(ctx, o)
		response = ToOrderResponse(o)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.markProcessed(ctx, "order:confirm:", idempotencyKey)
	return &response, nil
}

// Reject declines a pending order
func (s *OrderService) Reject(ctx context.Context, id uuid.UUID, req RejectOrderRequest) (*OrderResponse, error) {
	return s.transition(ctx, id, func(o *warehouse.WarehouseOrder) error {
		return o.Reject(req.Reason)
	})
}

// Deliver marks a confirmed order as shipped
func (s *OrderService) Deliver(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	return s.transition(ctx, id, (*warehouse.WarehouseOrder).Deliver)
}

// Accept records the requesting division's receipt
func (s *OrderService) Accept(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	return s.transition(ctx, id, (*warehouse.WarehouseOrder).Accept)
}

// Finish closes the order
func (s *OrderService) Finish(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	return s.transition(ctx, id, (*warehouse.WarehouseOrder).Finish)
}

// RequestRevision sends an order back for revision
func (s *OrderService) RequestRevision(ctx context.Context, id uuid.UUID, req RevisionRequest) (*OrderResponse, error) {
	return s.transition(ctx, id, func(o *warehouse.WarehouseOrder) error {
		return o.RequestRevision(req.Note)
	})
}

// Resubmit returns a revised order to the pending queue
func (s *OrderService) Resubmit(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	return s.transition(ctx, id, (*warehouse.WarehouseOrder).Resubmit)
}

// Delete removes an order that never left the editable states
func (s *OrderService) Delete(ctx context.Context, id uuid.UUID) error {
	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !o.IsEditable() {
		return shared.ErrConflict
	}
	return s.orderRepo.Delete(ctx, id)
}

// transition runs an effect-free status change and persists it. A same-state
// request is answered with the current order and no write.
func (s *OrderService) transition(ctx context.Context, id uuid.UUID, fn func(*warehouse.WarehouseOrder) error) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := fn(o); err != nil {
		if errors.Is(err, workflow.ErrAlreadyInState) {
			response := ToOrderResponse(o)
			return &response, nil
		}
		return nil, err
	}

	if err := s.orderRepo.SaveWithLock(ctx, o); err != nil {
		return nil, err
	}

	response := ToOrderResponse(o)
	return &response, nil
}

// checkReplay answers an already-processed idempotency key with the current
// order state instead of re-running the transition's side effects. Keys are
// recorded by markProcessed only after the transition commits, so a failed
// attempt does not burn its key and the client's retry runs for real.
func (s *OrderService) checkReplay(ctx context.Context, prefix, key string, id uuid.UUID) (bool, *OrderResponse, error) {
	if key == "" || s.idempotency == nil {
		return false, nil, nil
	}

	processed, err := s.idempotency.IsProcessed(ctx, prefix+key)
	if err != nil {
		return false, nil, err
	}
	if !processed {
		return false, nil, nil
	}

	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return true, nil, err
	}
	response := ToOrderResponse(o)
	return true, &response, nil
}

// markProcessed records a consumed idempotency key once its transition has
// committed
func (s *OrderService) markProcessed(ctx context.Context, prefix, key string) {
	if key == "" || s.idempotency == nil {
		return
	}
	_, _ = s.idempotency.MarkProcessed(ctx, prefix+key, idempotencyTTL)
}

func (s *OrderService) publishEvents(ctx context.Context, o *warehouse.WarehouseOrder) {
	if s.eventBus == nil {
		return
	}

	for _, event := range o.GetDomainEvents() {
		_ = s.eventBus.Publish(ctx, event)
	}
	o.ClearDomainEvents()
}
