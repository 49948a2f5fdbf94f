package persistence

import (
	"context"

	appwarehouse "github.com/backoffice/backend/internal/application/warehouse"
	"github.com/backoffice/backend/internal/domain/warehouse"
	"gorm.io/gorm"
)

// GormTransactionScope implements the warehouse TransactionScope using GORM
// transactions. Order confirmation and opname finalization run through it so
// the status write and its stock mutations commit or roll back together.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appwarehouse.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormTransactionalRepositories{tx: tx}
		return fn(repos)
	})
}

// gormTransactionalRepositories provides access to the warehouse repositories
// within one transaction.
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// ItemRepo returns the stock item repository scoped to the current transaction.
func (r *gormTransactionalRepositories) ItemRepo() warehouse.StockItemRepository {
	return NewGormStockItemRepository(r.tx)
}

// OrderRepo returns the order repository scoped to the current transaction.
func (r *gormTransactionalRepositories) OrderRepo() warehouse.OrderRepository {
	return NewGormOrderRepository(r.tx)
}

// OpnameRepo returns the opname repository scoped to the current transaction.
func (r *gormTransactionalRepositories) OpnameRepo() warehouse.OpnameRepository {
	return NewGormOpnameRepository(r.tx)
}

// Ensure GormTransactionScope implements TransactionScope
var _ appwarehouse.TransactionScope = (*GormTransactionScope)(nil)

// Ensure gormTransactionalRepositories implements TransactionalRepositories
var _ appwarehouse.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
