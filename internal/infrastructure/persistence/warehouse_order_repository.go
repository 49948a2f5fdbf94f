package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/backoffice/backend/internal/domain/shared"
	"github.com/backoffice/backend/internal/domain/warehouse"
	"github.com/backoffice/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Save creates or updates an order together with its lines
func (r *GormOrderRepository) Save(ctx context.Context, order *warehouse.WarehouseOrder) error {
	model := models.WarehouseOrderModelFromDomain(order)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Lines").Save(model).Error; err != nil {
			return err
		}
		return r.saveLines(tx, order.ID, model.Lines)
	})
}

// SaveWithLock saves an order with optimistic locking (version check)
func (r *GormOrderRepository) SaveWithLock(ctx context.Context, order *warehouse.WarehouseOrder) error {
	model := models.WarehouseOrderModelFromDomain(order)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.WarehouseOrderModel{}).
			Where("id = ? AND version = ?", order.ID, order.Version-1).
			Updates(map[string]interface{}{
				"division_id":    model.DivisionID,
				"division_name":  model.DivisionName,
				"status":         model.Status,
				"note":           model.Note,
				"revision_note":  model.RevisionNote,
				"reject_reason":  model.RejectReason,
				"confirmed_at":   model.ConfirmedAt,
				"delivered_at":   model.DeliveredAt,
				"accepted_at":    model.AcceptedAt,
				"finished_at":    model.FinishedAt,
				"rejected_at":    model.RejectedAt,
				"version":        model.Version,
				"updated_at":     model.UpdatedAt,
			})

		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrConcurrencyConflict
		}

		return r.saveLines(tx, order.ID, model.Lines)
	})
}

// saveLines rewrites the order's line set: removed lines are deleted,
// current ones upserted.
func (r *GormOrderRepository) saveLines(tx *gorm.DB, orderID uuid.UUID, lines []models.OrderLineModel) error {
	if len(lines) > 0 {
		lineIDs := make([]uuid.UUID, len(lines))
		for i, line := range lines {
			lineIDs[i] = line.ID
		}
		if err := tx.Where("order_id = ? AND id NOT IN ?", orderID, lineIDs).
			Delete(&models.OrderLineModel{}).Error; err != nil {
			return err
		}
		for i := range lines {
			if err := tx.Save(&lines[i]).Error; err != nil {
				return err
			}
		}
		return nil
	}
	return tx.Where("order_id = ?", orderID).Delete(&models.OrderLineModel{}).Error
}

// FindByID finds an order by its ID
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*warehouse.WarehouseOrder, error) {
	var model models.WarehouseOrderModel
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

// FindByNumber finds an order by its order number
func (r *GormOrderRepository) FindByNumber(ctx context.Context, orderNumber string) (*warehouse.WarehouseOrder, error) {
	var model models.WarehouseOrderModel
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("order_number = ?", orderNumber).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds orders matching the filter, with total count
func (r *GormOrderRepository) FindAll(ctx context.Context, filter warehouse.OrderFilter) (*shared.Paginated[*warehouse.WarehouseOrder], error) {
	var total int64
	countQuery := r.applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&models.WarehouseOrderModel{}),
		filter,
	)
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, err
	}

	var orderModels []models.WarehouseOrderModel
	query := r.applyOrderAndPage(
		r.applyFilterWithoutPagination(
			r.db.WithContext(ctx).Model(&models.WarehouseOrderModel{}).Preload("Lines"),
			filter,
		),
		filter,
	)
	if err := query.Find(&orderModels).Error; err != nil {
		return nil, err
	}

	orders := make([]*warehouse.WarehouseOrder, len(orderModels))
	for i, model := range orderModels {
		orders[i] = model.ToDomain()
	}
	page := shared.NewPaginated(orders, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Delete deletes an order and its lines
func (r *GormOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderLineModel{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.WarehouseOrderModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// GenerateNumber generates a unique order number.
// Format: ORD-YYYY-NNNN (e.g., ORD-2026-0001)
func (r *GormOrderRepository) GenerateNumber(ctx context.Context) (string, error) {
	return generateSequentialNumber(ctx, r.db, &models.WarehouseOrderModel{}, "order_number", "ORD")
}

func (r *GormOrderRepository) applyFilterWithoutPagination(query *gorm.DB, filter warehouse.OrderFilter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("order_number ILIKE ? OR division_name ILIKE ?", searchPattern, searchPattern)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.DivisionID != nil {
		query = query.Where("division_id = ?", *filter.DivisionID)
	}
	return query
}

func (r *GormOrderRepository) applyOrderAndPage(query *gorm.DB, filter warehouse.OrderFilter) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		sortField := ValidateSortField(filter.OrderBy, WarehouseOrderSortFields, "")
		if sortField != "" {
			sortOrder := ValidateSortOrder(filter.OrderDir)
			return query.Order(sortField + " " + sortOrder + ", id ASC")
		}
	}
	return query.Order("created_at DESC, id ASC")
}

// generateSequentialNumber produces the next PREFIX-YYYY-NNNN number for the
// given model, probing past collisions left by concurrent writers.
func generateSequentialNumber(ctx context.Context, db *gorm.DB, model interface{}, column, prefix string) (string, error) {
	year := time.Now().Year()
	numberPrefix := fmt.Sprintf("%s-%d-", prefix, year)

	var lastNumber string
	err := db.WithContext(ctx).
		Model(model).
		Select(column).
		Where(column+" LIKE ?", numberPrefix+"%").
		Order(column + " DESC").
		Limit(1).
		Scan(&lastNumber).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	var nextNum int64 = 1
	if lastNumber != "" {
		parts := strings.Split(lastNumber, "-")
		if len(parts) == 3 {
			var num int64
			if _, parseErr := fmt.Sscanf(parts[2], "%d", &num); parseErr == nil {
				nextNum = num + 1
			}
		}
	}

	for i := 0; i < 100; i++ {
		number := fmt.Sprintf("%s%04d", numberPrefix, nextNum)
		var count int64
		if err := db.WithContext(ctx).
			Model(model).
			Where(column+" = ?", number).
			Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return number, nil
		}
		nextNum++
	}
	return "", shared.NewDomainError("NUMBER_EXHAUSTED", "Could not find a free sequential number")
}

// Ensure GormOrderRepository implements OrderRepository
var _ warehouse.OrderRepository = (*GormOrderRepository)(nil)
