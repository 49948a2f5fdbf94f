package handler

import (
	warehouseapp "github.com/backoffice/backend/internal/application/warehouse"
	"github.com/gin-gonic/gin"
)

// StockOpnameHandler handles stock opname endpoints
type StockOpnameHandler struct {
	BaseHandler
	service *warehouseapp.OpnameService
}

// NewStockOpnameHandler creates a new stock opname handler
func NewStockOpnameHandler(service *warehouseapp.OpnameService) *StockOpnameHandler {
	return &StockOpnameHandler{service: service}
}

// List godoc
// @Summary List stock opname sessions
// @Tags warehouse
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Param status query string false "Filter by status"
// @Success 200 {object} dto.Response
// @Router /api/v1/warehouse/opnames [get]
func (h *StockOpnameHandler) List(c *gin.Context) {
	var filter warehouseapp.OpnameListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	sessions, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, sessions, total, filter.Page, filter.PageSize)
}

// GetByID godoc
// @Summary Get a stock opname session
// @Tags warehouse
// @Produce json
// @Param id path string true "Opname ID"
// @Success 200 {object} dto.Response
// @Failure 404 {object} dto.Response
// @Router /api/v1/warehouse/opnames/{id} [get]
func (h *StockOpnameHandler) GetByID(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid opname ID")
		return
	}

	session, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, session)
}

// Create godoc
// @Summary Create a stock opname session
// @Description Snapshot system stock for the selected items, or all items when none are given
// @Tags warehouse
// @Accept json
// @Produce json
// @Param request body warehouse.CreateOpnameRequest true "Opname data"
// @Success 201 {object} dto.Response
// @Router /api/v1/warehouse/opnames [post]
func (h *StockOpnameHandler) Create(c *gin.Context) {
	var req warehouseapp.CreateOpnameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	session, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, session)
}

// Start godoc
// @Summary Start counting
// @Tags warehouse
// @Produce json
// @Param id path string true "Opname ID"
// @Success 200 {object} dto.Response
// @Failure 422 {object} dto.Response
// @Router /api/v1/warehouse/opnames/{id}/start [post]
func (h *StockOpnameHandler) Start(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid opname ID")
		return
	}

	session, err := h.service.Start(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, session)
}

// RecordCounts godoc
// @Summary Record counted stock for session lines
// @Tags warehouse
// @Accept json
// @Produce json
// @Param id path string true "Opname ID"
// @Param request body warehouse.RecordCountsRequest true "Counted lines"
// @Success 200 {object} dto.Response
// @Failure 422 {object} dto.Response
// @Router /api/v1/warehouse/opnames/{id}/counts [post]
func (h *StockOpnameHandler) RecordCounts(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid opname ID")
		return
	}

	var req warehouseapp.RecordCountsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	session, err := h.service.RecordCounts(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, session)
}

// MarkCounted godoc
// @Summary Mark the session as fully counted
// @Description Requires a recorded final stock on every line
// @Tags warehouse
// @Produce json
// @Param id path string true "Opname ID"
// @Success 200 {object} dto.Response
// @Failure 422 {object} dto.Response
// @Router /api/v1/warehouse/opnames/{id}/mark-counted [post]
func (h *StockOpnameHandler) MarkCounted(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid opname ID")
		return
	}

	session, err := h.service.MarkCounted(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, session)
}

// Finish godoc
// @Summary Finish the session and apply adjustments
// @Description Apply every line difference to current stock. Replay-safe via X-Idempotency-Key.
// @Tags warehouse
// @Produce json
// @Param id path string true "Opname ID"
// @Param X-Idempotency-Key header string false "Idempotency key"
// @Success 200 {object} dto.Response
// @Failure 422 {object} dto.Response
// @Router /api/v1/warehouse/opnames/{id}/finish [post]
func (h *StockOpnameHandler) Finish(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid opname ID")
		return
	}

	session, err := h.service.Finish(c.Request.Context(), id, idempotencyKey(c))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, session)
}

// Delete godoc
// @Summary Delete a stock opname session
// @Description Only draft sessions can be deleted
// @Tags warehouse
// @Param id path string true "Opname ID"
// @Success 204
// @Failure 422 {object} dto.Response
// @Router /api/v1/warehouse/opnames/{id} [delete]
func (h *StockOpnameHandler) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid opname ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
