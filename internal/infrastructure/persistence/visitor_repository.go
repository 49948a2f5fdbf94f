package persistence

import (
	"context"
	"errors"

	"github.com/backoffice/backend/internal/domain/shared"
	"github.com/backoffice/backend/internal/domain/visitor"
	"github.com/backoffice/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormVisitorRepository implements the visitor Repository using GORM
type GormVisitorRepository struct {
	db *gorm.DB
}

// NewGormVisitorRepository creates a new GormVisitorRepository
func NewGormVisitorRepository(db *gorm.DB) *GormVisitorRepository {
	return &GormVisitorRepository{db: db}
}

// Save creates or updates a visitor appointment
func (r *GormVisitorRepository) Save(ctx context.Context, v *visitor.Visitor) error {
	model := models.VisitorModelFromDomain(v)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves a visitor appointment with optimistic locking (version check)
func (r *GormVisitorRepository) SaveWithLock(ctx context.Context, v *visitor.Visitor) error {
	model := models.VisitorModelFromDomain(v)
	result := r.db.WithContext(ctx).
		Model(&models.VisitorModel{}).
		Where("id = ? AND version = ?", v.ID, v.Version-1).
		Updates(map[string]interface{}{
			"name":           model.Name,
			"institution":    model.Institution,
			"purpose":        model.Purpose,
			"status":         model.Status,
			"scheduled_at":   model.ScheduledAt,
			"checked_in_at":  model.CheckedInAt,
			"checked_out_at": model.CheckedOutAt,
			"cancelled_at":   model.CancelledAt,
			"cancel_reason":  model.CancelReason,
			"version":        model.Version,
			"updated_at":     model.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// FindByID finds a visitor appointment by its ID
func (r *GormVisitorRepository) FindByID(ctx context.Context, id uuid.UUID) (*visitor.Visitor, error) {
	var model models.VisitorModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds visitor appointments matching the filter, with total count
func (r *GormVisitorRepository) FindAll(ctx context.Context, filter visitor.Filter) (*shared.Paginated[*visitor.Visitor], error) {
	var total int64
	countQuery := r.applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&models.VisitorModel{}),
		filter,
	)
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, err
	}

	var visitorModels []models.VisitorModel
	query := r.applyOrderAndPage(
		r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.VisitorModel{}), filter),
		filter,
	)
	if err := query.Find(&visitorModels).Error; err != nil {
		return nil, err
	}

	visitors := make([]*visitor.Visitor, len(visitorModels))
	for i, model := range visitorModels {
		visitors[i] = model.ToDomain()
	}
	page := shared.NewPaginated(visitors, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Delete deletes a visitor appointment
func (r *GormVisitorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.VisitorModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormVisitorRepository) applyFilterWithoutPagination(query *gorm.DB, filter visitor.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR institution ILIKE ?", searchPattern, searchPattern)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.HostDivisionID != nil {
		query = query.Where("host_division_id = ?", *filter.HostDivisionID)
	}
	if filter.ScheduledFrom != nil {
		query = query.Where("scheduled_at >= ?", *filter.ScheduledFrom)
	}
	if filter.ScheduledTo != nil {
		query = query.Where("scheduled_at <= ?", *filter.ScheduledTo)
	}
	return query
}

func (r *GormVisitorRepository) applyOrderAndPage(query *gorm.DB, filter visitor.Filter) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		sortField := ValidateSortField(filter.OrderBy, VisitorSortFields, "")
		if sortField != "" {
			sortOrder := ValidateSortOrder(filter.OrderDir)
			return query.Order(sortField + " " + sortOrder + ", id ASC")
		}
	}
	return query.Order("scheduled_at DESC, id ASC")
}

// Ensure GormVisitorRepository implements Repository
var _ visitor.Repository = (*GormVisitorRepository)(nil)
