package document

import (
	"context"

	"github.com/backoffice/backend/internal/domain/division"
	"github.com/backoffice/backend/internal/domain/document"
)

// TransactionScope provides transactional access to the document repository
// and the storage quota ledger. Upload and delete run through it so quota
// reservations and the document row commit or roll back atomically; a crash
// between a reservation and the document write can never leak used capacity.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the document-side repositories
// that share the same underlying database transaction.
type TransactionalRepositories interface {
	// DocumentRepo returns the document repository scoped to the current transaction
	DocumentRepo() document.DocumentRepository
	// Ledger returns the storage quota ledger scoped to the current transaction
	Ledger() division.Ledger
	// ReservationRepo returns the reservation repository scoped to the current transaction
	ReservationRepo() division.ReservationRepository
}

// NoOpTransactionScope runs the function without a real transaction.
// Useful for tests and callers that bring already-transactional repositories.
type NoOpTransactionScope struct {
	documentRepo    document.DocumentRepository
	ledger          division.Ledger
	reservationRepo division.ReservationRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given repositories
func NewNoOpTransactionScope(
	documentRepo document.DocumentRepository,
	ledger division.Ledger,
	reservationRepo division.ReservationRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		documentRepo:    documentRepo,
		ledger:          ledger,
		reservationRepo: reservationRepo,
	}
}

// Execute runs the function directly against the wrapped repositories
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// DocumentRepo returns the document repository
func (s *NoOpTransactionScope) DocumentRepo() document.DocumentRepository {
	return s.documentRepo
}

// Ledger returns the storage quota ledger
func (s *NoOpTransactionScope) Ledger() division.Ledger {
	return s.ledger
}

// ReservationRepo returns the reservation repository
func (s *NoOpTransactionScope) ReservationRepo() division.ReservationRepository {
	return s.reservationRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
