package handler

import (
	ticketapp "github.com/backoffice/backend/internal/application/ticket"
	"github.com/gin-gonic/gin"
)

// MaintenanceHandler handles maintenance request endpoints
type MaintenanceHandler struct {
	BaseHandler
	service *ticketapp.MaintenanceService
}

// NewMaintenanceHandler creates a new maintenance handler
func NewMaintenanceHandler(service *ticketapp.MaintenanceService) *MaintenanceHandler {
	return &MaintenanceHandler{service: service}
}

// List godoc
// @Summary List maintenance requests
// @Tags maintenances
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Param status query string false "Filter by status"
// @Param division_id query string false "Filter by division"
// @Success 200 {object} dto.Response
// @Router /api/v1/maintenances [get]
func (h *MaintenanceHandler) List(c *gin.Context) {
	var filter ticketapp.MaintenanceListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	requests, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, requests, total, filter.Page, filter.PageSize)
}

// GetByID godoc
// @Summary Get a maintenance request
// @Tags maintenances
// @Produce json
// @Param id path string true "Maintenance ID"
// @Success 200 {object} dto.Response
// @Failure 404 {object} dto.Response
// @Router /api/v1/maintenances/{id} [get]
func (h *MaintenanceHandler) GetByID(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid maintenance ID")
		return
	}

	m, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, m)
}

// Create godoc
// @Summary Create a maintenance request
// @Tags maintenances
// @Accept json
// @Produce json
// @Param request body ticket.CreateMaintenanceRequest true "Maintenance data"
// @Success 201 {object} dto.Response
// @Router /api/v1/maintenances [post]
func (h *MaintenanceHandler) Create(c *gin.Context) {
	var req ticketapp.CreateMaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	m, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, m)
}

// Start godoc
// @Summary Start work on a maintenance request
// @Tags maintenances
// @Accept json
// @Produce json
// @Param id path string true "Maintenance ID"
// @Param request body ticket.StartMaintenanceRequest true "Technician"
// @Success 200 {object} dto.Response
// @Failure 422 {object} dto.Response
// @Router /api/v1/maintenances/{id}/start [post]
func (h *MaintenanceHandler) Start(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid maintenance ID")
		return
	}

	var req ticketapp.StartMaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	m, err := h.service.Start(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, m)
}

// Finish godoc
// @Summary Mark maintenance work as finished
// @Tags maintenances
// @Produce json
// @Param id path string true "Maintenance ID"
// @Success 200 {object} dto.Response
// @Failure 422 {object} dto.Response
// @Router /api/v1/maintenances/{id}/finish [post]
func (h *MaintenanceHandler) Finish(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid maintenance ID")
		return
	}

	m, err := h.service.Finish(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, m)
}

// Confirm godoc
// @Summary Confirm finished maintenance work
// @Tags maintenances
// @Produce json
// @Param id path string true "Maintenance ID"
// @Success 200 {object} dto.Response
// @Failure 422 {object} dto.Response
// @Router /api/v1/maintenances/{id}/confirm [post]
func (h *MaintenanceHandler) Confirm(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid maintenance ID")
		return
	}

	m, err := h.service.Confirm(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, m)
}

// Cancel godoc
// @Summary Cancel a maintenance request
// @Tags maintenances
// @Accept json
// @Produce json
// @Param id path string true "Maintenance ID"
// @Param request body ticket.CancelMaintenanceRequest true "Cancellation reason"
// @Success 200 {object} dto.Response
// @Failure 422 {object} dto.Response
// @Router /api/v1/maintenances/{id}/cancel [post]
func (h *MaintenanceHandler) Cancel(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid maintenance ID")
		return
	}

	var req ticketapp.CancelMaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	m, err := h.service.Cancel(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, m)
}
