package persistence

import (
	"context"
	"errors"

	"github.com/backoffice/backend/internal/domain/shared"
	"github.com/backoffice/backend/internal/domain/warehouse"
	"github.com/backoffice/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOpnameRepository implements OpnameRepository using GORM
type GormOpnameRepository struct {
	db *gorm.DB
}

// NewGormOpnameRepository creates a new GormOpnameRepository
func NewGormOpnameRepository(db *gorm.DB) *GormOpnameRepository {
	return &GormOpnameRepository{db: db}
}

// Save creates or updates an opname session together with its lines
func (r *GormOpnameRepository) Save(ctx context.Context, opname *warehouse.StockOpname) error {
	model := models.StockOpnameModelFromDomain(opname)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Lines").Save(model).Error; err != nil {
			return err
		}
		return r.saveLines(tx, opname.ID, model.Lines)
	})
}

// SaveWithLock saves an opname session with optimistic locking (version check)
func (r *GormOpnameRepository) SaveWithLock(ctx context.Context, opname *warehouse.StockOpname) error {
	model := models.StockOpnameModelFromDomain(opname)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.StockOpnameModel{}).
			Where("id = ? AND version = ?", opname.ID, opname.Version-1).
			Updates(map[string]interface{}{
				"title":       model.Title,
				"status":      model.Status,
				"note":        model.Note,
				"started_at":  model.StartedAt,
				"counted_at":  model.CountedAt,
				"finished_at": model.FinishedAt,
				"version":     model.Version,
				"updated_at":  model.UpdatedAt,
			})

		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrConcurrencyConflict
		}

		return r.saveLines(tx, opname.ID, model.Lines)
	})
}

func (r *GormOpnameRepository) saveLines(tx *gorm.DB, opnameID uuid.UUID, lines []models.OpnameLineModel) error {
	if len(lines) > 0 {
		lineIDs := make([]uuid.UUID, len(lines))
		for i, line := range lines {
			lineIDs[i] = line.ID
		}
		if err := tx.Where("opname_id = ? AND id NOT IN ?", opnameID, lineIDs).
			Delete(&models.OpnameLineModel{}).Error; err != nil {
			return err
		}
		for i := range lines {
			if err := tx.Save(&lines[i]).Error; err != nil {
				return err
			}
		}
		return nil
	}
	return tx.Where("opname_id = ?", opnameID).Delete(&models.OpnameLineModel{}).Error
}

// FindByID finds an opname session by its ID
func (r *GormOpnameRepository) FindByID(ctx context.Context, id uuid.UUID) (*warehouse.StockOpname, error) {
	var model models.StockOpnameModel
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByNumber finds an opname session by its number
func (r *GormOpnameRepository) FindByNumber(ctx context.Context, opnameNumber string) (*warehouse.StockOpname, error) {
	var model models.StockOpnameModel
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("opname_number = ?", opnameNumber).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds opname sessions matching the filter, with total count
func (r *GormOpnameRepository) FindAll(ctx context.Context, filter warehouse.OpnameFilter) (*shared.Paginated[*warehouse.StockOpname], error) {
	var total int64
	countQuery := r.applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&models.StockOpnameModel{}),
		filter,
	)
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, err
	}

	var opnameModels []models.StockOpnameModel
	query := r.applyOrderAndPage(
		r.applyFilterWithoutPagination(
			r.db.WithContext(ctx).Model(&models.StockOpnameModel{}).Preload("Lines"),
			filter,
		),
		filter,
	)
	if err := query.Find(&opnameModels).Error; err != nil {
		return nil, err
	}

	opnames := make([]*warehouse.StockOpname, len(opnameModels))
	for i, model := range opnameModels {
		opnames[i] = model.ToDomain()
	}
	page := shared.NewPaginated(opnames, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Delete deletes an opname session and its lines
func (r *GormOpnameRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("opname_id = ?", id).Delete(&models.OpnameLineModel{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.StockOpnameModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// GenerateNumber generates a unique opname number.
// Format: OPN-YYYY-NNNN (e.g., OPN-2026-0001)
func (r *GormOpnameRepository) GenerateNumber(ctx context.Context) (string, error) {
	return generateSequentialNumber(ctx, r.db, &models.StockOpnameModel{}, "opname_number", "OPN")
}

func (r *GormOpnameRepository) applyFilterWithoutPagination(query *gorm.DB, filter warehouse.OpnameFilter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("opname_number ILIKE ? OR title ILIKE ?", searchPattern, searchPattern)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	return query
}

func (r *GormOpnameRepository) applyOrderAndPage(query *gorm.DB, filter warehouse.OpnameFilter) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		sortField := ValidateSortField(filter.OrderBy, StockOpnameSortFields, "")
		if sortField != "" {
			sortOrder := ValidateSortOrder(filter.OrderDir)
			return query.Order(sortField + " " + sortOrder + ", id ASC")
		}
	}
	return query.Order("created_at DESC, id ASC")
}

// Ensure GormOpnameRepository implements OpnameRepository
var _ warehouse.OpnameRepository = (*GormOpnameRepository)(nil)
