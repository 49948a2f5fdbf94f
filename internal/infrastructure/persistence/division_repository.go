package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/backoffice/backend/internal/domain/division"
	"github.com/backoffice/backend/internal/domain/shared"
	"github.com/backoffice/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormDivisionRepository implements DivisionRepository using GORM
type GormDivisionRepository struct {
	db *gorm.DB
}

// NewGormDivisionRepository creates a new GormDivisionRepository
func NewGormDivisionRepository(db *gorm.DB) *GormDivisionRepository {
	return &GormDivisionRepository{db: db}
}

// FindByID finds a division by its ID
func (r *GormDivisionRepository) FindByID(ctx context.Context, id uuid.UUID) (*division.Division, error) {
	var model models.DivisionModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCode finds a division by its code
func (r *GormDivisionRepository) FindByCode(ctx context.Context, code string) (*division.Division, error) {
	var model models.DivisionModel
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

// FindAll finds all divisions matching the filter
func (r *GormDivisionRepository) FindAll(ctx context.Context, filter shared.Filter) ([]division.Division, error) {
	var divisionModels []models.DivisionModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.DivisionModel{}), filter)

	if err := query.Find(&divisionModels).Error; err != nil {
		return nil, err
	}

	divisions := make([]division.Division, len(divisionModels))
	for i, model := range divisionModels {
		divisions[i] = *model.ToDomain()
	}
	return divisions, nil
}

// Save creates or updates a division.
// UsedCapacity is deliberately not written here; only the storage ledger's
// guarded update may move it.
func (r *GormDivisionRepository) Save(ctx context.Context, d *division.Division) error {
	model := models.DivisionModelFromDomain(d)
	return r.db.WithContext(ctx).
		Omit("used_capacity").
		Save(model).Error
}

// SaveWithLock saves a division with optimistic locking (version check)
func (r *GormDivisionRepository) SaveWithLock(ctx context.Context, d *division.Division) error {
	model := models.DivisionModelFromDomain(d)
	result := r.db.WithContext(ctx).
		Model(model).
		Where("id = ? AND version = ?", d.ID, d.Version-1).
		Updates(map[string]interface{}{
			"name":         model.Name,
			"code":         model.Code,
			"description":  model.Description,
			"max_capacity": model.MaxCapacity,
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

// Delete deletes a division
func (r *GormDivisionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.DivisionModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts divisions matching the filter
func (r *GormDivisionRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.DivisionModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByCode checks if a division code is already taken
func (r *GormDivisionRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.DivisionModel{}).
		Where("code = ?", strings.ToUpper(code)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// applyFilter applies filter options to the query
func (r *GormDivisionRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	// Apply pagination
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	// Apply ordering with whitelist validation to prevent SQL injection.
	// The id tiebreaker keeps page boundaries stable when the sort field
	// has duplicates.
	if filter.OrderBy != "" {
		sortField := ValidateSortField(filter.OrderBy, DivisionSortFields, "")
		if sortField != "" {
			sortOrder := ValidateSortOrder(filter.OrderDir)
			query = query.Order(sortField + " " + sortOrder + ", id ASC")
		} else {
			query = query.Order("created_at DESC, id ASC")
		}
	} else {
		query = query.Order("created_at DESC, id ASC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormDivisionRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR code ILIKE ?", searchPattern, searchPattern)
	}
	return query
}

// Ensure GormDivisionRepository implements DivisionRepository
var _ division.DivisionRepository = (*GormDivisionRepository)(nil)

// GormPositionRepository implements PositionRepository using GORM
type GormPositionRepository struct {
	db *gorm.DB
}

// NewGormPositionRepository creates a new GormPositionRepository
func NewGormPositionRepository(db *gorm.DB) *GormPositionRepository {
	return &GormPositionRepository{db: db}
}

// FindByID finds a position by its ID
func (r *GormPositionRepository) FindByID(ctx context.Context, id uuid.UUID) (*division.Position, error) {
	var model models.PositionModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all positions matching the filter
func (r *GormPositionRepository) FindAll(ctx context.Context, filter shared.Filter) ([]division.Position, error) {
	var positionModels []models.PositionModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.PositionModel{}), filter)

	if err := query.Find(&positionModels).Error; err != nil {
		return nil, err
	}

	positions := make([]division.Position, len(positionModels))
	for i, model := range positionModels {
		positions[i] = *model.ToDomain()
	}
	return positions, nil
}

// FindByDivision finds positions belonging to a division
func (r *GormPositionRepository) FindByDivision(ctx context.Context, divisionID uuid.UUID, filter shared.Filter) ([]division.Position, error) {
	var positionModels []models.PositionModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.PositionModel{}).
			Where("division_id = ?", divisionID),
		filter,
	)

	if err := query.Find(&positionModels).Error; err != nil {
		return nil, err
	}

	positions := make([]division.Position, len(positionModels))
	for i, model := range positionModels {
		positions[i] = *model.ToDomain()
	}
	return positions, nil
}

// Save creates or updates a position
func (r *GormPositionRepository) Save(ctx context.Context, p *division.Position) error {
	model := models.PositionModelFromDomain(p)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a position
func (r *GormPositionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.PositionModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts positions matching the filter
func (r *GormPositionRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.PositionModel{})
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ?", searchPattern)
	}
	if divisionID, ok := filter.Filters["division_id"]; ok {
		query = query.Where("division_id = ?", divisionID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormPositionRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ?", searchPattern)
	}
	if divisionID, ok := filter.Filters["division_id"]; ok {
		query = query.Where("division_id = ?", divisionID)
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		sortField := ValidateSortField(filter.OrderBy, PositionSortFields, "")
		if sortField != "" {
			sortOrder := ValidateSortOrder(filter.OrderDir)
			query = query.Order(sortField + " " + sortOrder + ", id ASC")
		} else {
			query = query.Order("name ASC, id ASC")
		}
	} else {
		query = query.Order("name ASC, id ASC")
	}

	return query
}

// Ensure GormPositionRepository implements PositionRepository
var _ division.PositionRepository = (*GormPositionRepository)(nil)
