package warehouse

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backoffice/backend/internal/domain/shared"
)

func newTestItem(t *testing.T, qty int64) *StockItem {
	t.Helper()
	item, err := NewStockItem("BRG-001", "Kertas A4", "rim", decimal.NewFromInt(qty), decimal.NewFromInt(5))
	require.NoError(t, err)
	return item
}

func TestNewStockItem(t *testing.T) {
	item := newTestItem(t, 40)
	assert.Equal(t, "BRG-001", item.Code)
	assert.True(t, item.Quantity.Equal(decimal.NewFromInt(40)))

	_, err := NewStockItem("", "Kertas A4", "rim", decimal.Zero, decimal.Zero)
	assert.Error(t, err)

	_, err = NewStockItem("BRG-002", "", "rim", decimal.Zero, decimal.Zero)
	assert.Error(t, err)

	_, err = NewStockItem("BRG-003", "Kertas A4", "rim", decimal.NewFromInt(-1), decimal.Zero)
	assert.Error(t, err)
}

func TestStockItem_Decrease(t *testing.T) {
	item := newTestItem(t, 10)

	require.NoError(t, item.Decrease(decimal.NewFromInt(4)))
	assert.True(t, item.Quantity.Equal(decimal.NewFromInt(6)))

	err := item.Decrease(decimal.NewFromInt(7))
	require.Error(t, err)

	var guardErr *shared.GuardFailedError
	require.True(t, errors.As(err, &guardErr))
	assert.Equal(t, "jumlah pengeluaran tidak boleh melebihi stok yang tersedia (6)", guardErr.Error())
	assert.True(t, item.Quantity.Equal(decimal.NewFromInt(6)), "failed guard must not mutate stock")

	// taking exactly the remaining stock is allowed
	require.NoError(t, item.Decrease(decimal.NewFromInt(6)))
	assert.True(t, item.Quantity.IsZero())

	assert.Error(t, item.Decrease(decimal.Zero), "non-positive amount")
}

func TestStockItem_Increase(t *testing.T) {
	item := newTestItem(t, 10)

	require.NoError(t, item.Increase(decimal.NewFromInt(5)))
	assert.True(t, item.Quantity.Equal(decimal.NewFromInt(15)))

	assert.Error(t, item.Increase(decimal.NewFromInt(-1)))
}

func TestStockItem_SetQuantity(t *testing.T) {
	item := newTestItem(t, 10)

	require.NoError(t, item.SetQuantity(decimal.NewFromInt(7)))
	assert.True(t, item.Quantity.Equal(decimal.NewFromInt(7)))

	assert.Error(t, item.SetQuantity(decimal.NewFromInt(-1)))
}

func TestStockItem_IsBelowMin(t *testing.T) {
	item := newTestItem(t, 4)
	assert.True(t, item.IsBelowMin())

	require.NoError(t, item.Increase(decimal.NewFromInt(10)))
	assert.False(t, item.IsBelowMin())
}
