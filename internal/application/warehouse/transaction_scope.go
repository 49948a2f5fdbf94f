package warehouse

import (
	"context"

	"github.com/backoffice/backend/internal/domain/warehouse"
)

// TransactionScope provides transactional access to warehouse repositories.
// When a function is executed within a transaction scope, all repository
// operations are part of the same database transaction and commit or roll
// back atomically. Order confirmation and opname finalization rely on this
// so a status write and its stock mutations never land separately.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to warehouse repositories that
// share the same underlying database transaction.
type TransactionalRepositories interface {
	// ItemRepo returns the stock item repository scoped to the current transaction
	ItemRepo() warehouse.StockItemRepository
	// OrderRepo returns the order repository scoped to the current transaction
	OrderRepo() warehouse.OrderRepository
	// OpnameRepo returns the opname repository scoped to the current transaction
	OpnameRepo() warehouse.OpnameRepository
}

// NoOpTransactionScope runs the function without a real transaction.
// Useful for tests and callers that bring already-transactional repositories.
type NoOpTransactionScope struct {
	itemRepo   warehouse.StockItemRepository
	orderRepo  warehouse.OrderRepository
	opnameRepo warehouse.OpnameRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given repositories
func NewNoOpTransactionScope(
	itemRepo warehouse.StockItemRepository,
	orderRepo warehouse.OrderRepository,
	opnameRepo warehouse.OpnameRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		itemRepo:   itemRepo,
		orderRepo:  orderRepo,
		opnameRepo: opnameRepo,
	}
}

// Execute runs the function directly against the wrapped repositories
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// ItemRepo returns the stock item repository
func (s *NoOpTransactionScope) ItemRepo() warehouse.StockItemRepository {
	return s.itemRepo
}

// OrderRepo returns the order repository
func (s *NoOpTransactionScope) OrderRepo() warehouse.OrderRepository {
	return s.orderRepo
}

// OpnameRepo returns the opname repository
func (s *NoOpTransactionScope) OpnameRepo() warehouse.OpnameRepository {
	return s.opnameRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
