package warehouse

import (
	"context"

	"github.com/google/uuid"

	"github.com/backoffice/backend/internal/domain/shared"
	"github.com/backoffice/backend/internal/domain/warehouse"
)

// StockItemService provides application services for stock item management
type StockItemService struct {
	itemRepo warehouse.StockItemRepository
}

// NewStockItemService creates a new StockItemService
func NewStockItemService(itemRepo warehouse.StockItemRepository) *StockItemService {
	return &StockItemService{itemRepo: itemRepo}
}

// GetByID retrieves a stock item by ID
func (s *StockItemService) GetByID(ctx context.Context, id uuid.UUID) (*StockItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToStockItemResponse(item)
	return &response, nil
}

// List retrieves a paginated list of stock items
func (s *StockItemService) List(ctx context.Context, filter StockItemListFilter) ([]StockItemResponse, int64, error) {
	domainFilter := warehouse.StockItemFilter{
		Filter: shared.Filter{
			Page:     filter.Page,
			PageSize: filter.PageSize,
			OrderBy:  filter.OrderBy,
			OrderDir: filter.OrderDir,
			Search:   filter.Search,
		}.Normalize(),
		BelowMin: filter.BelowMin,
	}

	page, err := s.itemRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]StockItemResponse, 0, len(page.Items))
	for _, item := range page.Items {
		responses = append(responses, ToStockItemResponse(item))
	}
	return responses, page.Total, nil
}

// Create creates a new stock item
func (s *StockItemService) Create(ctx context.Context, req CreateStockItemRequest) (*StockItemResponse, error) {
	exists, err := s.itemRepo.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.ErrAlreadyExists
	}

	item, err := warehouse.NewStockItem(req.Code, req.Name, req.Unit, req.Quantity, req.MinQuantity)
	if err != nil {
		return nil, err
	}

	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	response := ToStockItemResponse(item)
	return &response, nil
}

// Update renames a stock item and changes its minimum threshold
func (s *StockItemService) Update(ctx context.Context, id uuid.UUID, req UpdateStockItemRequest) (*StockItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := item.Rename(req.Name); err != nil {
		return nil, err
	}
	if err := item.SetMinQuantity(req.MinQuantity); err != nil {
		return nil, err
	}

	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	response := ToStockItemResponse(item)
	return &response, nil
}

// ReceiveStock adds incoming stock to an item
func (s *StockItemService) ReceiveStock(ctx context.Context, id uuid.UUID, req AdjustStockRequest) (*StockItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := item.Increase(req.Quantity); err != nil {
		return nil, err
	}

	if err := s.itemRepo.SaveWithLock(ctx, item); err != nil {
		return nil, err
	}

	response := ToStockItemResponse(item)
	return &response, nil
}

// IssueStock removes stock from an item. The aggregate rejects issues
// that exceed the available stock.
func (s *StockItemService) IssueStock(ctx context.Context, id uuid.UUID, req AdjustStockRequest) (*StockItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := item.Decrease(req.Quantity); err != nil {
		return nil, err
	}

	if err := s.itemRepo.SaveWithLock(ctx, item); err != nil {
		return nil, err
	}

	response := ToStockItemResponse(item)
	return &response, nil
}

// Delete removes a stock item
func (s *StockItemService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.itemRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.itemRepo.Delete(ctx, id)
}
