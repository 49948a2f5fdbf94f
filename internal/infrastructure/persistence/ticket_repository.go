package persistence

import (
	"context"
	"errors"

	"github.com/backoffice/backend/internal/domain/shared"
	"github.com/backoffice/backend/internal/domain/ticket"
	"github.com/backoffice/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormTicketRepository implements the ticket Repository using GORM
type GormTicketRepository struct {
	db *gorm.DB
}

// NewGormTicketRepository creates a new GormTicketRepository
func NewGormTicketRepository(db *gorm.DB) *GormTicketRepository {
	return &GormTicketRepository{db: db}
}

// Save creates or updates a ticket
func (r *GormTicketRepository) Save(ctx context.Context, t *ticket.Ticket) error {
	model := models.TicketModelFromDomain(t)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves a ticket with optimistic locking (version check)
func (r *GormTicketRepository) SaveWithLock(ctx context.Context, t *ticket.Ticket) error {
	model := models.TicketModelFromDomain(t)
	result := r.db.WithContext(ctx).
		Model(&models.TicketModel{}).
		Where("id = ? AND version = ?", t.ID, t.Version-1).
		Updates(map[string]interface{}{
			"title":             model.Title,
			"description":       model.Description,
			"category":          model.Category,
			"priority":          model.Priority,
			"status":            model.Status,
			"assignee_id":       model.AssigneeID,
			"reject_reason":     model.RejectReason,
			"feedback_rating":   model.FeedbackRating,
			"feedback_comment":  model.FeedbackComment,
			"feedback_given_at": model.FeedbackGivenAt,
			"processed_at":      model.ProcessedAt,
			"finished_at":       model.FinishedAt,
			"closed_at":         model.ClosedAt,
			"version":           model.Version,
			"updated_at":        model.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// FindByID finds a ticket by its ID
func (r *GormTicketRepository) FindByID(ctx context.Context, id uuid.UUID) (*ticket.Ticket, error) {
	var model models.TicketModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByNumber finds a ticket by its ticket number
func (r *GormTicketRepository) FindByNumber(ctx context.Context, ticketNumber string) (*ticket.Ticket, error) {
	var model models.TicketModel
	if err := r.db.WithContext(ctx).
		Where("ticket_number = ?", ticketNumber).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds tickets matching the filter, with total count
func (r *GormTicketRepository) FindAll(ctx context.Context, filter ticket.TicketFilter) (*shared.Paginated[*ticket.Ticket], error) {
	var total int64
	countQuery := r.applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&models.TicketModel{}),
		filter,
	)
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, err
	}

	var ticketModels []models.TicketModel
	query := r.applyOrderAndPage(
		r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.TicketModel{}), filter),
		filter,
	)
	if err := query.Find(&ticketModels).Error; err != nil {
		return nil, err
	}

	tickets := make([]*ticket.Ticket, len(ticketModels))
	for i, model := range ticketModels {
		tickets[i] = model.ToDomain()
	}
	page := shared.NewPaginated(tickets, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Delete deletes a ticket
func (r *GormTicketRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.TicketModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// GenerateNumber generates a unique ticket number.
// Format: TKT-YYYY-NNNN (e.g., TKT-2026-0001)
func (r *GormTicketRepository) GenerateNumber(ctx context.Context) (string, error) {
	return generateSequentialNumber(ctx, r.db, &models.TicketModel{}, "ticket_number", "TKT")
}

func (r *GormTicketRepository) applyFilterWithoutPagination(query *gorm.DB, filter ticket.TicketFilter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("ticket_number ILIKE ? OR title ILIKE ?", searchPattern, searchPattern)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Priority != "" {
		query = query.Where("priority = ?", filter.Priority)
	}
	if filter.DivisionID != nil {
		query = query.Where("division_id = ?", *filter.DivisionID)
	}
	if filter.ReporterID != nil {
		query = query.Where("reporter_id = ?", *filter.ReporterID)
	}
	return query
}

func (r *GormTicketRepository) applyOrderAndPage(query *gorm.DB, filter ticket.TicketFilter) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		sortField := ValidateSortField(filter.OrderBy, TicketSortFields, "")
		if sortField != "" {
			sortOrder := ValidateSortOrder(filter.OrderDir)
			return query.Order(sortField + " " + sortOrder + ", id ASC")
		}
	}
	return query.Order("created_at DESC, id ASC")
}

// Ensure GormTicketRepository implements Repository
var _ ticket.Repository = (*GormTicketRepository)(nil)

// GormMaintenanceRepository implements MaintenanceRepository using GORM
type GormMaintenanceRepository struct {
	db *gorm.DB
}

// NewGormMaintenanceRepository creates a new GormMaintenanceRepository
func NewGormMaintenanceRepository(db *gorm.DB) *GormMaintenanceRepository {
	return &GormMaintenanceRepository{db: db}
}

// Save creates or updates a maintenance request
func (r *GormMaintenanceRepository) Save(ctx context.Context, m *ticket.Maintenance) error {
	model := models.MaintenanceModelFromDomain(m)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves a maintenance request with optimistic locking (version check)
func (r *GormMaintenanceRepository) SaveWithLock(ctx context.Context, m *ticket.Maintenance) error {
	model := models.MaintenanceModelFromDomain(m)
	result := r.db.WithContext(ctx).
		Model(&models.MaintenanceModel{}).
		Where("id = ? AND version = ?", m.ID, m.Version-1).
		Updates(map[string]interface{}{
			"asset_name":    model.AssetName,
			"description":   model.Description,
			"status":        model.Status,
			"technician_id": model.TechnicianID,
			"cancel_reason": model.CancelReason,
			"started_at":    model.StartedAt,
			"finished_at":   model.FinishedAt,
			"confirmed_at":  model.ConfirmedAt,
			"cancelled_at":  model.CancelledAt,
			"version":       model.Version,
			"updated_at":    model.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// FindByID finds a maintenance request by its ID
func (r *GormMaintenanceRepository) FindByID(ctx context.Context, id uuid.UUID) (*ticket.Maintenance, error) {
	var model models.MaintenanceModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByNumber finds a maintenance request by its number
func (r *GormMaintenanceRepository) FindByNumber(ctx context.Context, maintenanceNumber string) (*ticket.Maintenance, error) {
	var model models.MaintenanceModel
	if err := r.db.WithContext(ctx).
		Where("maintenance_number = ?", maintenanceNumber).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds maintenance requests matching the filter, with total count
func (r *GormMaintenanceRepository) FindAll(ctx context.Context, filter ticket.MaintenanceFilter) (*shared.Paginated[*ticket.Maintenance], error) {
	var total int64
	countQuery := r.applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&models.MaintenanceModel{}),
		filter,
	)
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, err
	}

	var maintenanceModels []models.MaintenanceModel
	query := r.applyOrderAndPage(
		r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.MaintenanceModel{}), filter),
		filter,
	)
	if err := query.Find(&maintenanceModels).Error; err != nil {
		return nil, err
	}

	maintenances := make([]*ticket.Maintenance, len(maintenanceModels))
	for i, model := range maintenanceModels {
		maintenances[i] = model.ToDomain()
	}
	page := shared.NewPaginated(maintenances, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Delete deletes a maintenance request
func (r *GormMaintenanceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.MaintenanceModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// GenerateNumber generates a unique maintenance number.
// Format: MNT-YYYY-NNNN (e.g., MNT-2026-0001)
func (r *GormMaintenanceRepository) GenerateNumber(ctx context.Context) (string, error) {
	return generateSequentialNumber(ctx, r.db, &models.MaintenanceModel{}, "maintenance_number", "MNT")
}

func (r *GormMaintenanceRepository) applyFilterWithoutPagination(query *gorm.DB, filter ticket.MaintenanceFilter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("maintenance_number ILIKE ? OR asset_name ILIKE ?", searchPattern, searchPattern)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.DivisionID != nil {
		query = query.Where("division_id = ?", *filter.DivisionID)
	}
	return query
}

func (r *GormMaintenanceRepository) applyOrderAndPage(query *gorm.DB, filter ticket.MaintenanceFilter) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		sortField := ValidateSortField(filter.OrderBy, MaintenanceSortFields, "")
		if sortField != "" {
			sortOrder := ValidateSortOrder(filter.OrderDir)
			return query.Order(sortField + " " + sortOrder + ", id ASC")
		}
	}
	return query.Order("created_at DESC, id ASC")
}

// Ensure GormMaintenanceRepository implements MaintenanceRepository
var _ ticket.MaintenanceRepository = (*GormMaintenanceRepository)(nil)
