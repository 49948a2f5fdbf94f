package document

import (
	"context"

	"github.com/google/uuid"

	"github.com/backoffice/backend/internal/domain/shared"
)

// DocumentFilter narrows document listings beyond the common filter
type DocumentFilter struct {
	shared.Filter
	Category   string
	Status     string
	DivisionID *uuid.UUID
}

// DocumentRepository persists Document aggregates together with their allocations
type DocumentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Document, error)
	FindByNumber(ctx context.Context, number string) (*Document, error)
	FindAll(ctx context.Context, filter DocumentFilter) ([]Document, error)
	Save(ctx context.Context, d *Document) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter DocumentFilter) (int64, error)
	ExistsByNumber(ctx context.Context, number string) (bool, error)
	GenerateNumber(ctx context.Context) (string, error)
}
