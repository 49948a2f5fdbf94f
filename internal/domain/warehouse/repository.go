package warehouse

import (
	"context"

	"github.com/google/uuid"

	"github.com/backoffice/backend/internal/domain/shared"
)

// StockItemFilter narrows stock item queries
type StockItemFilter struct {
	shared.Filter
	BelowMin bool
}

// OrderFilter narrows warehouse order queries
type OrderFilter struct {
	shared.Filter
	Status     string
	DivisionID *uuid.UUID
}

// OpnameFilter narrows stock opname queries
type OpnameFilter struct {
	shared.Filter
	Status string
}

// StockItemRepository persists warehouse stock items
type StockItemRepository interface {
	Save(ctx context.Context, item *StockItem) error
	SaveWithLock(ctx context.Context, item *StockItem) error
	FindByID(ctx context.Context, id uuid.UUID) (*StockItem, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*StockItem, error)
	FindByCode(ctx context.Context, code string) (*StockItem, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	FindAll(ctx context.Context, filter StockItemFilter) (*shared.Paginated[*StockItem], error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// OrderRepository persists warehouse orders with their lines
type OrderRepository interface {
	Save(ctx context.Context, order *WarehouseOrder) error
	SaveWithLock(ctx context.Context, order *WarehouseOrder) error
	FindByID(ctx context.Context, id uuid.UUID) (*WarehouseOrder, error)
	FindByNumber(ctx context.Context, orderNumber string) (*WarehouseOrder, error)
	FindAll(ctx context.Context, filter OrderFilter) (*shared.Paginated[*WarehouseOrder], error)
	Delete(ctx context.Context, id uuid.UUID) error
	GenerateNumber(ctx context.Context) (string, error)
}

// OpnameRepository persists stock-taking sessions with their lines
type OpnameRepository interface {
	Save(ctx context.Context, opname *StockOpname) error
	SaveWithLock(ctx context.Context, opname *StockOpname) error
	FindByID(ctx context.Context, id uuid.UUID) (*StockOpname, error)
	FindByNumber(ctx context.Context, opnameNumber string) (*StockOpname, error)
	FindAll(ctx context.Context, filter OpnameFilter) (*shared.Paginated[*StockOpname], error)
	Delete(ctx context.Context, id uuid.UUID) error
	GenerateNumber(ctx context.Context) (string, error)
}
