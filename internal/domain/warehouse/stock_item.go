package warehouse

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/backoffice/backend/internal/domain/shared"
)

// StockItem is a stocked good in the central warehouse. Quantity is mutated
// by order confirmation and opname finalization only.
type StockItem struct {
	shared.BaseAggregateRoot
	Code        string
	Name        string
	Unit        string
	Quantity    decimal.Decimal
	MinQuantity decimal.Decimal
}

// NewStockItem creates a new stock item
func NewStockItem(code, name, unit string, quantity, minQuantity decimal.Decimal) (*StockItem, error) {
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Item code cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Item name cannot be empty")
	}
	if unit == "" {
		return nil, shared.NewDomainError("INVALID_UNIT", "Item unit cannot be empty")
	}
	if quantity.IsNegative() || minQuantity.IsNegative() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Item quantity cannot be negative")
	}

	return &StockItem{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		Name:              name,
		Unit:              unit,
		Quantity:          quantity,
		MinQuantity:       minQuantity,
	}, nil
}

// Rename updates the item name
func (i *StockItem) Rename(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Item name cannot be empty")
	}
	i.Name = name
	i.UpdatedAt = time.Now()
	return nil
}

// SetMinQuantity updates the low-stock threshold
func (i *StockItem) SetMinQuantity(qty decimal.Decimal) error {
	if qty.IsNegative() {
		return shared.NewDomainError("INVALID_QUANTITY", "Minimum quantity cannot be negative")
	}
	i.MinQuantity = qty
	i.UpdatedAt = time.Now()
	return nil
}

// Increase adds stock
func (i *StockItem) Increase(qty decimal.Decimal) error {
	if !qty.IsPositive() {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity to add must be positive")
	}
	i.Quantity = i.Quantity.Add(qty)
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
	return nil
}

// Decrease issues stock. The guard runs before any mutation so a failed
// issue never touches the quantity.
func (i *StockItem) Decrease(qty decimal.Decimal) error {
	if !qty.IsPositive() {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity to issue must be positive")
	}
	if qty.GreaterThan(i.Quantity) {
		return shared.NewGuardFailedError("stock_item", "stock_available",
			fmt.Sprintf("jumlah pengeluaran tidak boleh melebihi stok yang tersedia (%s)", i.Quantity.String()))
	}
	i.Quantity = i.Quantity.Sub(qty)
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
	return nil
}

// SetQuantity overwrites the stock level (opname finalization)
func (i *StockItem) SetQuantity(qty decimal.Decimal) error {
	if qty.IsNegative() {
		return shared.NewDomainError("INVALID_QUANTITY", "Item quantity cannot be negative")
	}
	i.Quantity = qty
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
	return nil
}

// IsBelowMin reports whether the stock has fallen below its threshold
func (i *StockItem) IsBelowMin() bool {
	return i.MinQuantity.IsPositive() && i.Quantity.LessThan(i.MinQuantity)
}
