package persistence

import (
	"context"

	appdocument "github.com/backoffice/backend/internal/application/document"
	"github.com/backoffice/backend/internal/domain/division"
	"github.com/backoffice/backend/internal/domain/document"
	"gorm.io/gorm"
)

// GormDocumentTransactionScope implements the document TransactionScope using
// GORM transactions. Upload and delete run through it so quota reservations
// and the document row commit or roll back together.
type GormDocumentTransactionScope struct {
	db *gorm.DB
}

// NewGormDocumentTransactionScope creates a new GormDocumentTransactionScope.
func NewGormDocumentTransactionScope(db *gorm.DB) *GormDocumentTransactionScope {
	return &GormDocumentTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormDocumentTransactionScope) Execute(ctx context.Context, fn func(repos appdocument.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormDocumentTransactionalRepositories{tx: tx}
		return fn(repos)
	})
}

// gormDocumentTransactionalRepositories provides access to the document-side
// repositories within one transaction.
type gormDocumentTransactionalRepositories struct {
	tx *gorm.DB
}

// DocumentRepo returns the document repository scoped to the current transaction.
func (r *gormDocumentTransactionalRepositories) DocumentRepo() document.DocumentRepository {
	return NewGormDocumentRepository(r.tx)
}

// Ledger returns the storage quota ledger scoped to the current transaction.
// The ledger's own guarded updates become savepoints inside the outer
// transaction, so a later failure rolls back earlier increments too.
func (r *gormDocumentTransactionalRepositories) Ledger() division.Ledger {
	return NewGormStorageLedger(r.tx)
}

// ReservationRepo returns the reservation repository scoped to the current transaction.
func (r *gormDocumentTransactionalRepositories) ReservationRepo() division.ReservationRepository {
	return NewGormReservationRepository(r.tx)
}

// Ensure GormDocumentTransactionScope implements TransactionScope
var _ appdocument.TransactionScope = (*GormDocumentTransactionScope)(nil)

// Ensure gormDocumentTransactionalRepositories implements TransactionalRepositories
var _ appdocument.TransactionalRepositories = (*gormDocumentTransactionalRepositories)(nil)
