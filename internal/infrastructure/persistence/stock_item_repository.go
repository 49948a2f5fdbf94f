package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/backoffice/backend/internal/domain/shared"
	"github.com/backoffice/backend/internal/domain/warehouse"
	"github.com/backoffice/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormStockItemRepository implements StockItemRepository using GORM
type GormStockItemRepository struct {
	db *gorm.DB
}

// NewGormStockItemRepository creates a new GormStockItemRepository
func NewGormStockItemRepository(db *gorm.DB) *GormStockItemRepository {
	return &GormStockItemRepository{db: db}
}

// Save creates or updates a stock item
func (r *GormStockItemRepository) Save(ctx context.Context, item *warehouse.StockItem) error {
	model := models.StockItemModelFromDomain(item)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves a stock item with optimistic locking (version check).
// Order confirmation and opname adjustment go through here so concurrent
// stock mutations cannot overwrite each other.
func (r *GormStockItemRepository) SaveWithLock(ctx context.Context, item *warehouse.StockItem) error {
	model := models.StockItemModelFromDomain(item)
	result := r.db.WithContext(ctx).
		Model(model).
		Where("id = ? AND version = ?", item.ID, item.Version-1).
		Updates(map[string]interface{}{
			"code":         model.Code,
			"name":         model.Name,
			"unit":         model.Unit,
			"quantity":     model.Quantity,
			"min_quantity": model.MinQuantity,
			"version":      model.Version,
			"updated_at":   model.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// FindByID finds a stock item by its ID
func (r *GormStockItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*warehouse.StockItem, error) {
	var model models.StockItemModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDs finds multiple stock items by their IDs
func (r *GormStockItemRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*warehouse.StockItem, error) {
	if len(ids) == 0 {
		return []*warehouse.StockItem{}, nil
	}

	var itemModels []models.StockItemModel
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&itemModels).Error; err != nil {
		return nil, err
	}

	items := make([]*warehouse.StockItem, len(itemModels))
	for i, model := range itemModels {
		items[i] = model.ToDomain()
	}
	return items, nil
}

// FindByCode finds a stock item by its code
func (r *GormStockItemRepository) FindByCode(ctx context.Context, code string) (*warehouse.StockItem, error) {
	var model models.StockItemModel
	if err := r.db.WithContext(ctx).
		Where("code = ?", strings.ToUpper(code)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ExistsByCode checks if a stock item code is already taken
func (r *GormStockItemRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.StockItemModel{}).
		Where("code = ?", strings.ToUpper(code)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindAll finds stock items matching the filter, with total count
func (r *GormStockItemRepository) FindAll(ctx context.Context, filter warehouse.StockItemFilter) (*shared.Paginated[*warehouse.StockItem], error) {
	var total int64
	countQuery := r.applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&models.StockItemModel{}),
		filter,
	)
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, err
	}

	var itemModels []models.StockItemModel
	query := r.applyOrderAndPage(
		r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.StockItemModel{}), filter),
		filter,
	)
	if err := query.Find(&itemModels).Error; err != nil {
		return nil, err
	}

	items := make([]*warehouse.StockItem, len(itemModels))
	for i, model := range itemModels {
		items[i] = model.ToDomain()
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Delete deletes a stock item
func (r *GormStockItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.StockItemModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormStockItemRepository) applyFilterWithoutPagination(query *gorm.DB, filter warehouse.StockItemFilter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("code ILIKE ? OR name ILIKE ?", searchPattern, searchPattern)
	}
	if filter.BelowMin {
		query = query.Where("min_quantity > 0 AND quantity < min_quantity")
	}
	return query
}

func (r *GormStockItemRepository) applyOrderAndPage(query *gorm.DB, filter warehouse.StockItemFilter) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		sortField := ValidateSortField(filter.OrderBy, StockItemSortFields, "")
		if sortField != "" {
			sortOrder := ValidateSortOrder(filter.OrderDir)
			return query.Order(sortField + " " + sortOrder + ", id ASC")
		}
	}
	return query.Order("code ASC, id ASC")
}

// Ensure GormStockItemRepository implements StockItemRepository
var _ warehouse.StockItemRepository = (*GormStockItemRepository)(nil)
