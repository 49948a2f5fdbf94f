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

func testOpnameService(t *testing.T) (*OpnameService, *MockOpnameRepository, *MockStockItemRepository) {
	t.Helper()
	opnameRepo := new(MockOpnameRepository)
	itemRepo := new(MockStockItemRepository)
	txScope := NewNoOpTransactionScope(itemRepo, new(MockOrderRepository), opnameRepo)
	svc := NewOpnameService(opnameRepo, itemRepo, txScope, newFakeIdempotencyStore(), nil)
	return svc, opnameRepo, itemRepo
}

func buildCountedOpname(t *testing.T, itemID uuid.UUID, system, counted int64) *warehouse.StockOpname {
	t.Helper()
	session, err := warehouse.NewStockOpname("SO-2026-0100", "Opname Gudang")
	require.NoError(t, err)
	require.NoError(t, session.AddLine(itemID, "Kertas A4", "rim", decimal.NewFromInt(system)))
	require.NoError(t, session.Start())
	require.NoError(t, session.RecordCount(itemID, decimal.NewFromInt(counted), ""))
	require.NoError(t, session.MarkCounted())
	session.ClearDomainEvents()
	return session
}

func TestOpnameService_Create(t *testing.T) {
	svc, opnameRepo, itemRepo := testOpnameService(t)
	itemID := uuid.New()
	item := buildItem(t, itemID, 40)

	opnameRepo.On("GenerateNumber", mock.Anything).Return("SO-2026-0101", nil)
	itemRepo.On("FindByIDs", mock.Anything, []uuid.UUID{itemID}).Return([]*warehouse.StockItem{item}, nil)
	opnameRepo.On("Save", mock.Anything, mock.AnythingOfType("*warehouse.StockOpname")).Return(nil)

	resp, err := svc.Create(context.Background(), CreateOpnameRequest{
		Title: "Opname Triwulan III",
		Items: []uuid.UUID{itemID},
	})
	require.NoError(t, err)
	assert.Equal(t, "SO-2026-0101", resp.OpnameNumber)
	require.Len(t, resp.Lines, 1)
	assert.True(t, resp.Lines[0].SystemStock.Equal(decimal.NewFromInt(40)))
}

func TestOpnameService_Create_UnknownItem(t *testing.T) {
	svc, opnameRepo, itemRepo := testOpnameService(t)
	itemID := uuid.New()

	opnameRepo.On("GenerateNumber", mock.Anything).Return("SO-2026-0102", nil)
	itemRepo.On("FindByIDs", mock.Anything, mock.Anything).Return([]*warehouse.StockItem{}, nil)

	_, err := svc.Create(context.Background(), CreateOpnameRequest{
		Title: "Opname",
		Items: []uuid.UUID{itemID},
	})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestOpnameService_Finish_AppliesDeltas(t *testing.T) {
	svc, opnameRepo, itemRepo := testOpnameService(t)
	itemID := uuid.New()
	session := buildCountedOpname(t, itemID, 40, 38)
	item := buildItem(t, itemID, 40)

	opnameRepo.On("FindByID", mock.Anything, session.ID).Return(session, nil)
	itemRepo.On("FindByID", mock.Anything, itemID).Return(item, nil)
	itemRepo.On("SaveWithLock", mock.Anything, item).Return(nil)
	opnameRepo.On("SaveWithLock", mock.Anything, session).Return(nil)

	resp, err := svc.Finish(context.Background(), session.ID, "")
	require.NoError(t, err)
	assert.Equal(t, string(warehouse.OpnameStatusFinished), resp.Status)
	assert.True(t, item.Quantity.Equal(decimal.NewFromInt(38)), "final stock overwrites system stock")
}

func TestOpnameService_Finish_RequiresCountedState(t *testing.T) {
	svc, opnameRepo, _ := testOpnameService(t)
	session, err := warehouse.NewStockOpname("SO-2026-0103", "Opname")
	require.NoError(t, err)

	opnameRepo.On("FindByID", mock.Anything, session.ID).Return(session, nil)

	_, err = svc.Finish(context.Background(), session.ID, "")
	var transErr *shared.InvalidTransitionError
	assert.True(t, errors.As(err, &transErr))
}

func TestOpnameService_Finish_IdempotencyReplay(t *testing.T) {
	svc, opnameRepo, itemRepo := testOpnameService(t)
	itemID := uuid.New()
	session := buildCountedOpname(t, itemID, 40, 45)
	item := buildItem(t, itemID, 40)

	opnameRepo.On("FindByID", mock.Anything, session.ID).Return(session, nil)
	itemRepo.On("FindByID", mock.Anything, itemID).Return(item, nil)
	itemRepo.On("SaveWithLock", mock.Anything, item).Return(nil)
	opnameRepo.On("SaveWithLock", mock.Anything, session).Return(nil)

	_, err := svc.Finish(context.Background(), session.ID, "req-xyz")
	require.NoError(t, err)
	require.True(t, item.Quantity.Equal(decimal.NewFromInt(45)))

	resp, err := svc.Finish(context.Background(), session.ID, "req-xyz")
	require.NoError(t, err)
	assert.Equal(t, string(warehouse.OpnameStatusFinished), resp.Status)
	itemRepo.AssertNumberOfCalls(t, "SaveWithLock", 1)
}

func TestOpnameService_Finish_RetryAfterTransitionFailure(t *testing.T) {
	svc, opnameRepo, itemRepo := testOpnameService(t)
	itemID := uuid.New()
	session, err := warehouse.NewStockOpname("SO-2026-0105", "Opname")
	require.NoError(t, err)
	require.NoError(t, session.AddLine(itemID, "Kertas A4", "rim", decimal.NewFromInt(40)))
	require.NoError(t, session.Start())
	require.NoError(t, session.RecordCount(itemID, decimal.NewFromInt(44), ""))
	item := buildItem(t, itemID, 40)

	opnameRepo.On("FindByID", mock.Anything, session.ID).Return(session, nil)

	// still counting: the transition fails and must not consume the key
	_, err = svc.Finish(context.Background(), session.ID, "req-finish")
	require.Error(t, err)

	require.NoError(t, session.MarkCounted())
	itemRepo.On("FindByID", mock.Anything, itemID).Return(item, nil)
	itemRepo.On("SaveWithLock", mock.Anything, item).Return(nil)
	opnameRepo.On("SaveWithLock", mock.Anything, session).Return(nil)

	// retry with the same key applies the adjustments for real
	resp, err := svc.Finish(context.Background(), session.ID, "req-finish")
	require.NoError(t, err)
	assert.Equal(t, string(warehouse.OpnameStatusFinished), resp.Status)
	assert.True(t, item.Quantity.Equal(decimal.NewFromInt(44)))
	itemRepo.AssertNumberOfCalls(t, "SaveWithLock", 1)
}

func TestOpnameService_RecordCounts(t *testing.T) {
	svc, opnameRepo, _ := testOpnameService(t)
	itemID := uuid.New()
	session, err := warehouse.NewStockOpname("SO-2026-0104", "Opname")
	require.NoError(t, err)
	require.NoError(t, session.AddLine(itemID, "Kertas A4", "rim", decimal.NewFromInt(40)))
	require.NoError(t, session.Start())

	opnameRepo.On("FindByID", mock.Anything, session.ID).Return(session, nil)
	opnameRepo.On("SaveWithLock", mock.Anything, session).Return(nil)

	resp, err := svc.RecordCounts(context.Background(), session.ID, RecordCountsRequest{
		Counts: []RecordCountRequest{
			{ItemID: itemID, FinalStock: decimal.NewFromInt(39), Note: "1 rim rusak"},
		},
	})
	require.NoError(t, err)
	require.Len(t, resp.Lines, 1)
	assert.True(t, resp.Lines[0].Counted)
	assert.True(t, resp.Lines[0].Delta.Equal(decimal.NewFromInt(-1)))
}

func TestOpnameService_Delete_FinishedRejected(t *testing.T) {
	svc, opnameRepo, itemRepo := testOpnameService(t)
	itemID := uuid.New()
	session := buildCountedOpname(t, itemID, 10, 10)
	item := buildItem(t, itemID, 10)

	opnameRepo.On("FindByID", mock.Anything, session.ID).Return(session, nil)
	itemRepo.On("FindByID", mock.Anything, itemID).Return(item, nil)
	itemRepo.On("SaveWithLock", mock.Anything, item).Return(nil)
	opnameRepo.On("SaveWithLock", mock.Anything, session).Return(nil)

	_, err := svc.Finish(context.Background(), session.ID, "")
	require.NoError(t, err)

	err = svc.Delete(context.Background(), session.ID)
	assert.ErrorIs(t, err, shared.ErrConflict)
}
