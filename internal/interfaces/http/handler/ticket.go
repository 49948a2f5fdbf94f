package handler

import (
	"context"

	ticketapp "github.com/backoffice/backend/internal/application/ticket"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TicketHandler handles helpdesk ticket endpoints
type TicketHandler struct {
	BaseHandler
	service *ticketapp.TicketService
}

// NewTicketHandler creates a new ticket handler
func NewTicketHandler(service *ticketapp.TicketService) *TicketHandler {
	return &TicketHandler{service: service}
}

// List godoc
// @Summary List helpdesk tickets
// @Tags tickets
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Param status query string false "Filter by status"
// @Param priority query string false "Filter by priority"
// @Param division_id query string false "Filter by division"
// @Success 200 {object} dto.Response
// @Router /api/v1/tickets [get]
func (h *TicketHandler) List(c *gin.Context) {
	var filter ticketapp.TicketListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	tickets, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, tickets, total, filter.Page, filter.PageSize)
}

// GetByID godoc
// @Summary Get a ticket
// @Tags tickets
// @Produce json
// @Param id path string true "Ticket ID"
// @Success 200 {object} dto.Response
// @Failure 404 {object} dto.Response
// @Router /api/v1/tickets/{id} [get]
func (h *TicketHandler) GetByID(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid ticket ID")
		return
	}

	t, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, t)
}

// Create godoc
// @Summary Create a helpdesk ticket
// @Tags tickets
// @Accept json
// @Produce json
// @Param request body ticket.CreateTicketRequest true "Ticket data"
// @Success 201 {object} dto.Response
// @Router /api/v1/tickets [post]
func (h *TicketHandler) Create(c *gin.Context) {
	var req ticketapp.CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	t, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, t)
}

// Accept godoc
// @Summary Accept a ticket and assign a handler
// @Tags tickets
// @Accept json
// @Produce json
// @Param id path string true "Ticket ID"
// @Param request body ticket.AcceptTicketRequest true "Assignee"
// @Success 200 {object} dto.Response
// @Failure 422 {object} dto.Response
// @Router /api/v1/tickets/{id}/accept [post]
func (h *TicketHandler) Accept(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid ticket ID")
		return
	}

	var req ticketapp.AcceptTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	t, err := h.service.Accept(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, t)
}

// Reject godoc
// @Summary Reject a ticket
// @Tags tickets
// @Accept json
// @Produce json
// @Param id path string true "Ticket ID"
// @Param request body ticket.RejectTicketRequest true "Rejection reason"
// @Success 200 {object} dto.Response
// @Failure 422 {object} dto.Response
// @Router /api/v1/tickets/{id}/reject [post]
func (h *TicketHandler) Reject(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid ticket ID")
		return
	}

	var req ticketapp.RejectTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	t, err := h.service.Reject(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, t)
}

// Finish godoc
// @Summary Mark a ticket as finished
// @Tags tickets
// @Produce json
// @Param id path string true "Ticket ID"
// @Success 200 {object} dto.Response
// @Failure 422 {object} dto.Response
// @Router /api/v1/tickets/{id}/finish [post]
func (h *TicketHandler) Finish(c *gin.Context) {
	h.transition(c, h.service.Finish)
}

// RequestRefinement godoc
// @Summary Send a finished ticket back for refinement
// @Tags tickets
// @Produce json
// @Param id path string true "Ticket ID"
// @Success 200 {object} dto.Response
// @Failure 422 {object} dto.Response
// @Router /api/v1/tickets/{id}/request-refinement [post]
func (h *TicketHandler) RequestRefinement(c *gin.Context) {
	h.transition(c, h.service.RequestRefinement)
}

// Close godoc
// @Summary Close a finished ticket
// @Tags tickets
// @Produce json
// @Param id path string true "Ticket ID"
// @Success 200 {object} dto.Response
// @Failure 422 {object} dto.Response
// @Router /api/v1/tickets/{id}/close [post]
func (h *TicketHandler) Close(c *gin.Context) {
	h.transition(c, h.service.Close)
}

// GiveFeedback godoc
// @Summary Leave feedback on a closed ticket
// @Tags tickets
// @Accept json
// @Produce json
// @Param id path string true "Ticket ID"
// @Param request body ticket.FeedbackRequest true "Rating and comment"
// @Success 200 {object} dto.Response
// @Failure 422 {object} dto.Response
// @Router /api/v1/tickets/{id}/feedback [post]
func (h *TicketHandler) GiveFeedback(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid ticket ID")
		return
	}

	var req ticketapp.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	t, err := h.service.GiveFeedback(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, t)
}

// transition runs a body-less status change and writes the updated ticket.
func (h *TicketHandler) transition(c *gin.Context, fn func(ctx context.Context, id uuid.UUID) (*ticketapp.TicketResponse, error)) {
	id, ok := uuidParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid ticket ID")
		return
	}

	t, err := fn(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, t)
}
