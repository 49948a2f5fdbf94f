package visitor

import (
	"time"

	"github.com/google/uuid"

	"github.com/backoffice/backend/internal/domain/visitor"
)

// ===================== Request DTOs =====================

// ScheduleVisitorRequest represents a request to schedule a visit
type ScheduleVisitorRequest struct {
	Name           string    `json:"name" binding:"required,min=1,max=100"`
	Institution    string    `json:"institution" binding:"max=200"`
	Purpose        string    `json:"purpose" binding:"max=500"`
	HostDivisionID uuid.UUID `json:"host_division_id" binding:"required"`
	ScheduledAt    time.Time `json:"scheduled_at" binding:"required"`
}

// RescheduleVisitorRequest moves a visit to a new time
type RescheduleVisitorRequest struct {
	ScheduledAt time.Time `json:"scheduled_at" binding:"required"`
}

// CancelVisitorRequest carries the cancellation reason
type CancelVisitorRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

// VisitorListFilter represents filter options for the visitor list
type VisitorListFilter struct {
	Search         string     `form:"search"`
	Status         string     `form:"status" binding:"omitempty,statename=visitor"`
	HostDivisionID *uuid.UUID `form:"host_division_id"`
	ScheduledFrom  *time.Time `form:"scheduled_from"`
	ScheduledTo    *time.Time `form:"scheduled_to"`
	Page           int        `form:"page" binding:"omitempty,min=1"`
	PageSize       int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy        string     `form:"order_by"`
	OrderDir       string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ===================== Response DTOs =====================

// VisitorResponse represents a visitor appointment in API responses
type VisitorResponse struct {
	ID             uuid.UUID  `json:"id"`
	Name           string     `json:"name"`
	Institution    string     `json:"institution,omitempty"`
	Purpose        string     `json:"purpose,omitempty"`
	HostDivisionID uuid.UUID  `json:"host_division_id"`
	Status         string     `json:"status"`
	StatusLabel    string     `json:"status_label"`
	ScheduledAt    time.Time  `json:"scheduled_at"`
	CheckedInAt    *time.Time `json:"checked_in_at,omitempty"`
	CheckedOutAt   *time.Time `json:"checked_out_at,omitempty"`
	CancelledAt    *time.Time `json:"cancelled_at,omitempty"`
	CancelReason   string     `json:"cancel_reason,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// ToVisitorResponse maps a visitor aggregate to its response DTO
func ToVisitorResponse(v *visitor.Visitor) VisitorResponse {
	return VisitorResponse{
		ID:             v.ID,
		Name:           v.Name,
		Institution:    v.Institution,
		Purpose:        v.Purpose,
		HostDivisionID: v.HostDivisionID,
		Status:         string(v.Status),
		StatusLabel:    v.StatusLabel(),
		ScheduledAt:    v.ScheduledAt,
		CheckedInAt:    v.CheckedInAt,
		CheckedOutAt:   v.CheckedOutAt,
		CancelledAt:    v.CancelledAt,
		CancelReason:   v.CancelReason,
		CreatedAt:      v.CreatedAt,
		UpdatedAt:      v.UpdatedAt,
	}
}
