package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/backoffice/backend/internal/domain/document"
	"github.com/backoffice/backend/internal/domain/shared"
	"github.com/backoffice/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormDocumentRepository implements DocumentRepository using GORM
type GormDocumentRepository struct {
	db *gorm.DB
}

// NewGormDocumentRepository creates a new GormDocumentRepository
func NewGormDocumentRepository(db *gorm.DB) *GormDocumentRepository {
	return &GormDocumentRepository{db: db}
}

// FindByID finds a document by its ID
func (r *GormDocumentRepository) FindByID(ctx context.Context, id uuid.UUID) (*document.Document, error) {
	var model models.DocumentModel
	if err := r.db.WithContext(ctx).
		Preload("Allocations").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByNumber finds a document by its number
func (r *GormDocumentRepository) FindByNumber(ctx context.Context, number string) (*document.Document, error) {
	var model models.DocumentModel
	if err := r.db.WithContext(ctx).
		Preload("Allocations").
		Where("number = ?", number).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all documents matching the filter
func (r *GormDocumentRepository) FindAll(ctx context.Context, filter document.DocumentFilter) ([]document.Document, error) {
	var documentModels []models.DocumentModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.DocumentModel{}).Preload("Allocations"),
		filter,
	)

	if err := query.Find(&documentModels).Error; err != nil {
		return nil, err
	}

	documents := make([]document.Document, len(documentModels))
	for i, model := range documentModels {
		documents[i] = *model.ToDomain()
	}
	return documents, nil
}

// Save creates or updates a document together with its allocations.
// Allocation rows are rewritten wholesale; they are immutable value rows
// owned by the aggregate.
func (r *GormDocumentRepository) Save(ctx context.Context, d *document.Document) error {
	model := models.DocumentModelFromDomain(d)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Allocations").Save(model).Error; err != nil {
			return err
		}
		if err := tx.Where("document_id = ?", d.ID).
			Delete(&models.DocumentAllocationModel{}).Error; err != nil {
			return err
		}
		if len(model.Allocations) > 0 {
			if err := tx.Create(&model.Allocations).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete deletes a document and its allocations
func (r *GormDocumentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("document_id = ?", id).
			Delete(&models.DocumentAllocationModel{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.DocumentModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count counts documents matching the filter
func (r *GormDocumentRepository) Count(ctx context.Context, filter document.DocumentFilter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.DocumentModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByNumber checks if a document number is already taken
func (r *GormDocumentRepository) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.DocumentModel{}).
		Where("number = ?", number).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GenerateNumber generates a unique document number.
// Format: DOC-YYYY-NNNN (e.g., DOC-2026-0001)
func (r *GormDocumentRepository) GenerateNumber(ctx context.Context) (string, error) {
	year := time.Now().Year()
	prefix := fmt.Sprintf("DOC-%d-", year)

	var lastModel models.DocumentModel
	err := r.db.WithContext(ctx).
		Where("number LIKE ?", prefix+"%").
		Order("number DESC").
		First(&lastModel).Error

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	var nextNum int64 = 1
	if err == nil && lastModel.Number != "" {
		parts := strings.Split(lastModel.Number, "-")
		if len(parts) == 3 {
			var num int64
			if _, parseErr := fmt.Sscanf(parts[2], "%d", &num); parseErr == nil {
				nextNum = num + 1
			}
		}
	}

	number := fmt.Sprintf("%s%04d", prefix, nextNum)

	exists, err := r.ExistsByNumber(ctx, number)
	if err != nil {
		return "", err
	}
	if exists {
		for i := 0; i < 100; i++ {
			nextNum++
			number = fmt.Sprintf("%s%04d", prefix, nextNum)
			exists, err = r.ExistsByNumber(ctx, number)
			if err != nil {
				return "", err
			}
			if !exists {
				break
			}
		}
	}

	return number, nil
}

// applyFilter applies filter options to the query
func (r *GormDocumentRepository) applyFilter(query *gorm.DB, filter document.DocumentFilter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		sortField := ValidateSortField(filter.OrderBy, DocumentSortFields, "")
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
func (r *GormDocumentRepository) applyFilterWithoutPagination(query *gorm.DB, filter document.DocumentFilter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("number ILIKE ? OR title ILIKE ? OR file_name ILIKE ?",
			searchPattern, searchPattern, searchPattern)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.DivisionID != nil {
		query = query.Where(
			"id IN (?)",
			r.db.Model(&models.DocumentAllocationModel{}).
				Select("document_id").
				Where("division_id = ?", *filter.DivisionID),
		)
	}
	return query
}

// Ensure GormDocumentRepository implements DocumentRepository
var _ document.DocumentRepository = (*GormDocumentRepository)(nil)
