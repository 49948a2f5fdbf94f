package warehouse

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/backoffice/backend/internal/domain/shared"
	"github.com/backoffice/backend/internal/domain/warehouse"
)

func testOrderService(t *testing.T) (*OrderService, *MockOrderRepository, *MockStockItemRepository, *fakeIdempotencyStore) {
	t.Helper()
	orderRepo := new(MockOrderRepository)
	itemRepo := new(MockStockItemRepository)
	idempotency := newFakeIdempotencyStore()
	txScope := NewNoOpTransactionScope(itemRepo, orderRepo, new(MockOpnameRepository))
	svc := NewOrderService(orderRepo, itemRepo, txScope, idempotency, nil)
	return svc, orderRepo, itemRepo, idempotency
}

func buildOrder(t *testing.T, lines map[uuid.UUID]int64) *warehouse.WarehouseOrder {
	t.Helper()
	o, err := warehouse.NewWarehouseOrder("WO-2026-0100", uuid.New(), "Divisi Umum", uuid.New(), "Budi")
	require.NoError(t, err)
	for itemID, qty := range lines {
		require.NoError(t, o.AddLine(itemID, "Item", "pcs", decimal.NewFromInt(qty)))
	}
	o.ClearDomainEvents()
	return o
}

func buildItem(t *testing.T, id uuid.UUID, qty int64) *warehouse.StockItem {
	t.Helper()
	item, err := warehouse.NewStockItem("BRG-"+id.String()[:8], "Item", "pcs", decimal.NewFromInt(qty), decimal.Zero)
	require.NoError(t, err)
	item.ID = id
	return item
}

func TestOrderService_Confirm_DeductsStock(t *testing.T) {
	svc, orderRepo, itemRepo, _ := testOrderService(t)
	itemID := uuid.New()
	o := buildOrder(t, map[uuid.UUID]int64{itemID: 4})
	item := buildItem(t, itemID, 10)

	orderRepo.On("FindByID", mock.Anything, o.ID).Return(o, nil)
	itemRepo.On("FindByIDs", mock.Anything, []uuid.UUID{itemID}).Return([]*warehouse.StockItem{item}, nil)
	itemRepo.On("SaveWithLock", mock.Anything, item).Return(nil)
	orderRepo.On("SaveWithLock", mock.Anything, o).Return(nil)

	resp, err := svc.Confirm(context.Background(), o.ID, "")
	require.NoError(t, err)
	assert.Equal(t, string(warehouse.OrderStatusConfirmed), resp.Status)
	assert.True(t, item.Quantity.Equal(decimal.NewFromInt(6)))
	orderRepo.AssertExpectations(t)
	itemRepo.AssertExpectations(t)
}

func TestOrderService_Confirm_GuardBlocksAllLines(t *testing.T) {
	svc, orderRepo, itemRepo, _ := testOrderService(t)
	itemA := uuid.New()
	itemB := uuid.New()
	o, err := warehouse.NewWarehouseOrder("WO-2026-0101", uuid.New(), "Divisi Umum", uuid.New(), "Budi")
	require.NoError(t, err)
	require.NoError(t, o.AddLine(itemA, "Kertas A4", "rim", decimal.NewFromInt(10)))
	require.NoError(t, o.AddLine(itemB, "Tinta", "botol", decimal.NewFromInt(8)))
	stockA := buildItem(t, itemA, 50)
	stockB := buildItem(t, itemB, 5)

	orderRepo.On("FindByID", mock.Anything, o.ID).Return(o, nil)
	itemRepo.On("FindByIDs", mock.Anything, mock.Anything).Return([]*warehouse.StockItem{stockA, stockB}, nil)

	_, err = svc.Confirm(context.Background(), o.ID, "")
	require.Error(t, err)

	var guardErr *shared.GuardFailedError
	require.True(t, errors.As(err, &guardErr))
	assert.Equal(t, "jumlah pengeluaran tidak boleh melebihi stok yang tersedia (5)", guardErr.Error())

	// nothing deducted, nothing saved
	assert.True(t, stockA.Quantity.Equal(decimal.NewFromInt(50)))
	assert.True(t, stockB.Quantity.Equal(decimal.NewFromInt(5)))
	itemRepo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
	orderRepo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
}

func TestOrderService_Confirm_IdempotencyReplay(t *testing.T) {
	svc, orderRepo, itemRepo, _ := testOrderService(t)
	itemID := uuid.New()
	o := buildOrder(t, map[uuid.UUID]int64{itemID: 4})
	item := buildItem(t, itemID, 10)

	orderRepo.On("FindByID", mock.Anything, o.ID).Return(o, nil)
	itemRepo.On("FindByIDs", mock.Anything, mock.Anything).Return([]*warehouse.StockItem{item}, nil)
	itemRepo.On("SaveWithLock", mock.Anything, item).Return(nil)
	orderRepo.On("SaveWithLock", mock.Anything, o).Return(nil)

	_, err := svc.Confirm(context.Background(), o.ID, "req-abc")
	require.NoError(t, err)
	require.True(t, item.Quantity.Equal(decimal.NewFromInt(6)))

	// same key again: no second deduction, current state returned
	resp, err := svc.Confirm(context.Background(), o.ID, "req-abc")
	require.NoError(t, err)
	assert.Equal(t, string(warehouse.OrderStatusConfirmed), resp.Status)
	assert.True(t, item.Quantity.Equal(decimal.NewFromInt(6)))
	itemRepo.AssertNumberOfCalls(t, "SaveWithLock", 1)
}

func TestOrderService_Confirm_RetryAfterGuardFailure(t *testing.T) {
	svc, orderRepo, itemRepo, idempotency := testOrderService(t)
	itemID := uuid.New()
	o := buildOrder(t, map[uuid.UUID]int64{itemID: 4})
	lowStock := buildItem(t, itemID, 2)

	orderRepo.On("FindByID", mock.Anything, o.ID).Return(o, nil)
	itemRepo.On("FindByIDs", mock.Anything, mock.Anything).Return([]*warehouse.StockItem{lowStock}, nil).Once()

	_, err := svc.Confirm(context.Background(), o.ID, "req-retry")
	require.Error(t, err)

	// the failed attempt must not consume the key
	processed, err := idempotency.IsProcessed(context.Background(), "order:confirm:req-retry")
	require.NoError(t, err)
	assert.False(t, processed)

	// after restocking, the retry with the same key runs the transition
	// instead of answering it as a replay of the still-pending order
	restocked := buildItem(t, itemID, 10)
	itemRepo.On("FindByIDs", mock.Anything, mock.Anything).Return([]*warehouse.StockItem{restocked}, nil).Once()
	itemRepo.On("SaveWithLock", mock.Anything, restocked).Return(nil)
	orderRepo.On("SaveWithLock", mock.Anything, o).Return(nil)

	resp, err := svc.Confirm(context.Background(), o.ID, "req-retry")
	require.NoError(t, err)
	assert.Equal(t, string(warehouse.OrderStatusConfirmed), resp.Status)
	assert.True(t, restocked.Quantity.Equal(decimal.NewFromInt(6)), "retry must deduct stock")

	processed, err = idempotency.IsProcessed(context.Background(), "order:confirm:req-retry")
	require.NoError(t, err)
	assert.True(t, processed)
}

func TestOrderService_Confirm_SameStateNoDoubleDeduct(t *testing.T) {
	svc, orderRepo, itemRepo, _ := testOrderService(t)
	itemID := uuid.New()
	o := buildOrder(t, map[uuid.UUID]int64{itemID: 4})
	item := buildItem(t, itemID, 10)

	orderRepo.On("FindByID", mock.Anything, o.ID).Return(o, nil)
	itemRepo.On("FindByIDs", mock.Anything, mock.Anything).Return([]*warehouse.StockItem{item}, nil)
	itemRepo.On("SaveWithLock", mock.Anything, item).Return(nil)
	orderRepo.On("SaveWithLock", mock.Anything, o).Return(nil)

	_, err := svc.Confirm(context.Background(), o.ID, "")
	require.NoError(t, err)

	// without a key, a repeat hits the same-state branch of the machine
	resp, err := svc.Confirm(context.Background(), o.ID, "")
	require.NoError(t, err)
	assert.Equal(t, string(warehouse.OrderStatusConfirmed), resp.Status)
	assert.True(t, item.Quantity.Equal(decimal.NewFromInt(6)))
	itemRepo.AssertNumberOfCalls(t, "SaveWithLock", 1)
}

func TestOrderService_Create(t *testing.T) {
	svc, orderRepo, itemRepo, _ := testOrderService(t)
	divisionID := uuid.New()
	itemID := uuid.New()
	item := buildItem(t, itemID, 10)

	orderRepo.On("GenerateNumber", mock.Anything).Return("WO-2026-0102", nil)
	itemRepo.On("FindByID", mock.Anything, itemID).Return(item, nil)
	orderRepo.On("Save", mock.Anything, mock.AnythingOfType("*warehouse.WarehouseOrder")).Return(nil)

	resp, err := svc.Create(context.Background(), CreateOrderRequest{
		DivisionID:    divisionID,
		DivisionName:  "Divisi Umum",
		RequestedByID: uuid.New(),
		RequestedBy:   "Budi",
		Lines: []OrderLineRequest{
			{ItemID: itemID, Quantity: decimal.NewFromInt(3)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "WO-2026-0102", resp.OrderNumber)
	assert.Equal(t, string(warehouse.OrderStatusPending), resp.Status)
	require.Len(t, resp.Lines, 1)
}

func TestOrderService_Reject(t *testing.T) {
	svc, orderRepo, _, _ := testOrderService(t)
	o := buildOrder(t, nil)

	orderRepo.On("FindByID", mock.Anything, o.ID).Return(o, nil)
	orderRepo.On("SaveWithLock", mock.Anything, o).Return(nil)

	resp, err := svc.Reject(context.Background(), o.ID, RejectOrderRequest{Reason: "anggaran habis"})
	require.NoError(t, err)
	assert.Equal(t, string(warehouse.OrderStatusRejected), resp.Status)
	assert.Equal(t, "anggaran habis", resp.RejectReason)
}

func TestOrderService_Delete_OnlyEditable(t *testing.T) {
	svc, orderRepo, itemRepo, _ := testOrderService(t)
	itemID := uuid.New()
	o := buildOrder(t, map[uuid.UUID]int64{itemID: 1})
	item := buildItem(t, itemID, 5)

	orderRepo.On("FindByID", mock.Anything, o.ID).Return(o, nil)
	itemRepo.On("FindByIDs", mock.Anything, mock.Anything).Return([]*warehouse.StockItem{item}, nil)
	itemRepo.On("SaveWithLock", mock.Anything, item).Return(nil)
	orderRepo.On("SaveWithLock", mock.Anything, o).Return(nil)

	_, err := svc.Confirm(context.Background(), o.ID, "")
	require.NoError(t, err)

	err = svc.Delete(context.Background(), o.ID)
	assert.ErrorIs(t, err, shared.ErrConflict)
}
