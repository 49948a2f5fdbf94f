package warehouse

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/backoffice/backend/internal/domain/shared"
	"github.com/backoffice/backend/internal/domain/warehouse"
)

// =============================================================================
// Mock Repositories
// =============================================================================

// MockStockItemRepository is a mock implementation of StockItemRepository
type MockStockItemRepository struct {
	mock.Mock
}

func (m *MockStockItemRepository) Save(ctx context.Context, item *warehouse.StockItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockStockItemRepository) SaveWithLock(ctx context.Context, item *warehouse.StockItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockStockItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*warehouse.StockItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*warehouse.StockItem), args.Error(1)
}

func (m *MockStockItemRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*warehouse.StockItem, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*warehouse.StockItem), args.Error(1)
}

func (m *MockStockItemRepository) FindByCode(ctx context.Context, code string) (*warehouse.StockItem, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*warehouse.StockItem), args.Error(1)
}

func (m *MockStockItemRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockStockItemRepository) FindAll(ctx context.Context, filter warehouse.StockItemFilter) (*shared.Paginated[*warehouse.StockItem], error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[*warehouse.StockItem]), args.Error(1)
}

func (m *MockStockItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockOrderRepository is a mock implementation of OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Save(ctx context.Context, order *warehouse.WarehouseOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) SaveWithLock(ctx context.Context, order *warehouse.WarehouseOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*warehouse.WarehouseOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*warehouse.WarehouseOrder), args.Error(1)
}

func (m *MockOrderRepository) FindByNumber(ctx context.Context, orderNumber string) (*warehouse.WarehouseOrder, error) {
	args := m.Called(ctx, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*warehouse.WarehouseOrder), args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context, filter warehouse.OrderFilter) (*shared.Paginated[*warehouse.WarehouseOrder], error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[*warehouse.WarehouseOrder]), args.Error(1)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOrderRepository) GenerateNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// MockOpnameRepository is a mock implementation of OpnameRepository
type MockOpnameRepository struct {
	mock.Mock
}

func (m *MockOpnameRepository) Save(ctx context.Context, opname *warehouse.StockOpname) error {
	args := m.Called(ctx, opname)
	return args.Error(0)
}

func (m *MockOpnameRepository) SaveWithLock(ctx context.Context, opname *warehouse.StockOpname) error {
	args := m.Called(ctx, opname)
	return args.Error(0)
}

func (m *MockOpnameRepository) FindByID(ctx context.Context, id uuid.UUID) (*warehouse.StockOpname, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*warehouse.StockOpname), args.Error(1)
}

func (m *MockOpnameRepository) FindByNumber(ctx context.Context, opnameNumber string) (*warehouse.StockOpname, error) {
	args := m.Called(ctx, opnameNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*warehouse.StockOpname), args.Error(1)
}

func (m *MockOpnameRepository) FindAll(ctx context.Context, filter warehouse.OpnameFilter) (*shared.Paginated[*warehouse.StockOpname], error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[*warehouse.StockOpname]), args.Error(1)
}

func (m *MockOpnameRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOpnameRepository) GenerateNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// fakeIdempotencyStore is a map-backed idempotency store for tests
type fakeIdempotencyStore struct {
	mu   sync.Mutex
	keys map[string]struct{}
}

func newFakeIdempotencyStore() *fakeIdempotencyStore {
	return &fakeIdempotencyStore{keys: make(map[string]struct{})}
}

func (f *fakeIdempotencyStore) MarkProcessed(_ context.Context, key string, _ time.Duration) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.keys[key]; ok {
		return false, nil
	}
	f.keys[key] = struct{}{}
	return true, nil
}

func (f *fakeIdempotencyStore) IsProcessed(_ context.Context, key string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.keys[key]
	return ok, nil
}

func (f *fakeIdempotencyStore) Close() error { return nil }

var _ shared.IdempotencyStore = (*fakeIdempotencyStore)(nil)
