package division

import (
	"time"

	"github.com/google/uuid"

	"github.com/backoffice/backend/internal/domain/division"
)

// ===================== Request DTOs =====================

// CreateDivisionRequest represents a request to create a division
type CreateDivisionRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Code        string `json:"code" binding:"required,min=1,max=30"`
	Description string `json:"description" binding:"max=500"`
	MaxCapacity int64  `json:"max_capacity" binding:"required,gt=0"`
}

// UpdateDivisionRequest represents a request to update a division
type UpdateDivisionRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"max=500"`
}

// ResizeDivisionRequest represents a request to change a division's quota
type ResizeDivisionRequest struct {
	MaxCapacity int64 `json:"max_capacity" binding:"required,gt=0"`
}

// CreatePositionRequest represents a request to create a position
type CreatePositionRequest struct {
	DivisionID  uuid.UUID `json:"division_id" binding:"required"`
	Name        string    `json:"name" binding:"required,min=1,max=100"`
	Description string    `json:"description" binding:"max=500"`
}

// UpdatePositionRequest represents a request to update a position
type UpdatePositionRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"max=500"`
}

// DivisionListFilter represents filter options for the division list
type DivisionListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// PositionListFilter represents filter options for the position list
type PositionListFilter struct {
	Search     string     `form:"search"`
	DivisionID *uuid.UUID `form:"division_id"`
	Page       int        `form:"page" binding:"omitempty,min=1"`
	PageSize   int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string     `form:"order_by"`
	OrderDir   string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ===================== Response DTOs =====================

// DivisionResponse represents a division in API responses
type DivisionResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Code         string    `json:"code"`
	Description  string    `json:"description,omitempty"`
	MaxCapacity  int64     `json:"max_capacity"`
	UsedCapacity int64     `json:"used_capacity"`
	UsagePercent float64   `json:"usage_percent"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PositionResponse represents a position in API responses
type PositionResponse struct {
	ID          uuid.UUID `json:"id"`
	DivisionID  uuid.UUID `json:"division_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UsageResponse represents a division's storage usage in API responses
type UsageResponse struct {
	DivisionID   uuid.UUID `json:"division_id"`
	UsedCapacity int64     `json:"used_capacity"`
	MaxCapacity  int64     `json:"max_capacity"`
	Percent      float64   `json:"percent"`
}

// ReservationResponse represents a storage reservation in API responses
type ReservationResponse struct {
	ID         uuid.UUID  `json:"id"`
	DivisionID *uuid.UUID `json:"division_id,omitempty"`
	EntityType string     `json:"entity_type"`
	EntityID   uuid.UUID  `json:"entity_id"`
	Amount     int64      `json:"amount"`
	ReleasedAt *time.Time `json:"released_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// ToDivisionResponse maps a division aggregate to its response DTO
func ToDivisionResponse(d *division.Division) DivisionResponse {
	return DivisionResponse{
		ID:           d.ID,
		Name:         d.Name,
		Code:         d.Code,
		Description:  d.Description,
		MaxCapacity:  d.MaxCapacity,
		UsedCapacity: d.UsedCapacity,
		UsagePercent: d.UsagePercent(),
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

// ToDivisionResponses maps a slice of divisions
func ToDivisionResponses(divisions []*division.Division) []DivisionResponse {
	responses := make([]DivisionResponse, 0, len(divisions))
	for _, d := range divisions {
		responses = append(responses, ToDivisionResponse(d))
	}
	return responses
}

// ToPositionResponse maps a position entity to its response DTO
func ToPositionResponse(p *division.Position) PositionResponse {
	return PositionResponse{
		ID:          p.ID,
		DivisionID:  p.DivisionID,
		Name:        p.Name,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ToPositionResponses maps a slice of positions
func ToPositionResponses(positions []*division.Position) []PositionResponse {
	responses := make([]PositionResponse, 0, len(positions))
	for _, p := range positions {
		responses = append(responses, ToPositionResponse(p))
	}
	return responses
}

// ToReservationResponse maps a storage reservation to its response DTO
func ToReservationResponse(r *division.StorageReservation) ReservationResponse {
	return ReservationResponse{
		ID:         r.ID,
		DivisionID: r.DivisionID,
		EntityType: r.EntityType,
		EntityID:   r.EntityID,
		Amount:     r.Amount,
		ReleasedAt: r.ReleasedAt,
		CreatedAt:  r.CreatedAt,
	}
}
