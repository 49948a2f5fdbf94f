package ticket

import (
	"time"

	"github.com/google/uuid"

	"github.com/backoffice/backend/internal/domain/ticket"
)

// ===================== Request DTOs =====================

// CreateTicketRequest represents a request to open a helpdesk ticket
type CreateTicketRequest struct {
	Title        string    `json:"title" binding:"required,min=1,max=200"`
	Description  string    `json:"description" binding:"max=2000"`
	Category     string    `json:"category" binding:"required,min=1,max=50"`
	Priority     string    `json:"priority" binding:"required,oneof=low medium high urgent"`
	ReporterID   uuid.UUID `json:"reporter_id" binding:"required"`
	ReporterName string    `json:"reporter_name" binding:"required"`
	DivisionID   uuid.UUID `json:"division_id" binding:"required"`
}

// AcceptTicketRequest assigns a ticket to a handler
type AcceptTicketRequest struct {
	AssigneeID uuid.UUID `json:"assignee_id" binding:"required"`
}

// RejectTicketRequest carries the rejection reason
type RejectTicketRequest struct {
	Reason string `json:"reason" binding:"required,min=1,max=500"`
}

// FeedbackRequest rates a finished ticket
type FeedbackRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"max=1000"`
}

// CreateMaintenanceRequest represents a request for asset maintenance
type CreateMaintenanceRequest struct {
	AssetName     string    `json:"asset_name" binding:"required,min=1,max=200"`
	Description   string    `json:"description" binding:"max=2000"`
	RequestedByID uuid.UUID `json:"requested_by_id" binding:"required"`
	RequestedBy   string    `json:"requested_by" binding:"required"`
	DivisionID    uuid.UUID `json:"division_id" binding:"required"`
}

// StartMaintenanceRequest assigns a technician
type StartMaintenanceRequest struct {
	TechnicianID uuid.UUID `json:"technician_id" binding:"required"`
}

// CancelMaintenanceRequest carries the cancellation reason
type CancelMaintenanceRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

// TicketListFilter represents filter options for the ticket list
type TicketListFilter struct {
	Search     string     `form:"search"`
	Status     string     `form:"status" binding:"omitempty,statename=ticket"`
	Category   string     `form:"category"`
	Priority   string     `form:"priority"`
	DivisionID *uuid.UUID `form:"division_id"`
	ReporterID *uuid.UUID `form:"reporter_id"`
	Page       int        `form:"page" binding:"omitempty,min=1"`
	PageSize   int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string     `form:"order_by"`
	OrderDir   string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// MaintenanceListFilter represents filter options for the maintenance list
type MaintenanceListFilter struct {
	Search     string     `form:"search"`
	Status     string     `form:"status" binding:"omitempty,statename=maintenance"`
	DivisionID *uuid.UUID `form:"division_id"`
	Page       int        `form:"page" binding:"omitempty,min=1"`
	PageSize   int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string     `form:"order_by"`
	OrderDir   string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ===================== Response DTOs =====================

// FeedbackResponse represents ticket feedback in API responses
type FeedbackResponse struct {
	Rating  int       `json:"rating"`
	Comment string    `json:"comment,omitempty"`
	GivenAt time.Time `json:"given_at"`
}

// TicketResponse represents a ticket in API responses
type TicketResponse struct {
	ID           uuid.UUID         `json:"id"`
	TicketNumber string            `json:"ticket_number"`
	Title        string            `json:"title"`
	Description  string            `json:"description,omitempty"`
	Category     string            `json:"category"`
	Priority     string            `json:"priority"`
	Status       string            `json:"status"`
	StatusLabel  string            `json:"status_label"`
	ReporterID   uuid.UUID         `json:"reporter_id"`
	ReporterName string            `json:"reporter_name"`
	DivisionID   uuid.UUID         `json:"division_id"`
	AssigneeID   *uuid.UUID        `json:"assignee_id,omitempty"`
	RejectReason string            `json:"reject_reason,omitempty"`
	Feedback     *FeedbackResponse `json:"feedback,omitempty"`
	ProcessedAt  *time.Time        `json:"processed_at,omitempty"`
	FinishedAt   *time.Time        `json:"finished_at,omitempty"`
	ClosedAt     *time.Time        `json:"closed_at,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// MaintenanceResponse represents a maintenance request in API responses
type MaintenanceResponse struct {
	ID                uuid.UUID  `json:"id"`
	MaintenanceNumber string     `json:"maintenance_number"`
	AssetName         string     `json:"asset_name"`
	Description       string     `json:"description,omitempty"`
	Status            string     `json:"status"`
	StatusLabel       string     `json:"status_label"`
	RequestedByID     uuid.UUID  `json:"requested_by_id"`
	RequestedBy       string     `json:"requested_by"`
	DivisionID        uuid.UUID  `json:"division_id"`
	TechnicianID      *uuid.UUID `json:"technician_id,omitempty"`
	CancelReason      string     `json:"cancel_reason,omitempty"`
	StartedAt         *time.Time `json:"started_at,omitempty"`
	FinishedAt        *time.Time `json:"finished_at,omitempty"`
	ConfirmedAt       *time.Time `json:"confirmed_at,omitempty"`
	CancelledAt       *time.Time `json:"cancelled_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// ToTicketResponse maps a ticket aggregate to its response DTO
func ToTicketResponse(t *ticket.Ticket) TicketResponse {
	var feedback *FeedbackResponse
	if t.Feedback != nil {
		feedback = &FeedbackResponse{
			Rating:  t.Feedback.Rating,
			Comment: t.Feedback.Comment,
			GivenAt: t.Feedback.GivenAt,
		}
	}

	return TicketResponse{
		ID:           t.ID,
		TicketNumber: t.TicketNumber,
		Title:        t.Title,
		Description:  t.Description,
		Category:     t.Category,
		Priority:     t.Priority,
		Status:       string(t.Status),
		StatusLabel:  t.StatusLabel(),
		ReporterID:   t.ReporterID,
		ReporterName: t.ReporterName,
		DivisionID:   t.DivisionID,
		AssigneeID:   t.AssigneeID,
		RejectReason: t.RejectReason,
		Feedback:     feedback,
		ProcessedAt:  t.ProcessedAt,
		FinishedAt:   t.FinishedAt,
		ClosedAt:     t.ClosedAt,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

// ToMaintenanceResponse maps a maintenance aggregate to its response DTO
func ToMaintenanceResponse(m *ticket.Maintenance) MaintenanceResponse {
	return MaintenanceResponse{
		ID:                m.ID,
		MaintenanceNumber: m.MaintenanceNumber,
		AssetName:         m.AssetName,
		Description:       m.Description,
		Status:            string(m.Status),
		StatusLabel:       m.StatusLabel(),
		RequestedByID:     m.RequestedByID,
		RequestedBy:       m.RequestedBy,
		DivisionID:        m.DivisionID,
		TechnicianID:      m.TechnicianID,
		CancelReason:      m.CancelReason,
		StartedAt:         m.StartedAt,
		FinishedAt:        m.FinishedAt,
		ConfirmedAt:       m.ConfirmedAt,
		CancelledAt:       m.CancelledAt,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}
