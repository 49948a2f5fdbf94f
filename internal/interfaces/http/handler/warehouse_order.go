package handler

import (
	"context"

	warehouseapp "github.com/backoffice/backend/internal/application/warehouse"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// WarehouseOrderHandler handles warehouse order endpoints
type WarehouseOrderHandler struct {
	BaseHandler
	service *warehouseapp.OrderService
}

// NewWarehouseOrderHandler creates a new warehouse order handler
func NewWarehouseOrderHandler(service *warehouseapp.OrderService) *WarehouseOrderHandler {
	return &WarehouseOrderHandler{service: service}
}

// List godoc
// @Summary List warehouse orders
// @Tags warehouse
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Param status query string false "Filter by status"
// @Param division_id query string false "Filter by requesting division"
// @Success 200 {object} dto.Response
// @Router /api/v1/warehouse/orders [get]
func (h *WarehouseOrderHandler) List(c *gin.Context) {
	var filter warehouseapp.OrderListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	orders, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, orders, total, filter.Page, filter.PageSize)
}

// GetByID godoc
// @Summary Get a warehouse order
// @Tags warehouse
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} dto.Response
// @Failure 404 {object} dto.Response
// @Router /api/v1/warehouse/orders/{id} [get]
func (h *WarehouseOrderHandler) GetByID(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	o, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, o)
}

// GetByOrderNumber godoc
// @Summary Get a warehouse order by order number
// @Tags warehouse
// @Produce json
// @Param order_number path string true "Order number"
// @Success 200 {object} dto.Response
// @Failure 404 {object} dto.Response
// @Router /api/v1/warehouse/orders/number/{order_number} [get]
func (h *WarehouseOrderHandler) GetByOrderNumber(c *gin.Context) {
	orderNumber := c.Param("order_number")
	if orderNumber == "" {
		h.BadRequest(c, "Order number is required")
		return
	}

	o, err := h.service.GetByNumber(c.Request.Context(), orderNumber)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, o)
}

// Create godoc
// @Summary Create a warehouse order
// @Tags warehouse
// @Accept json
// @Produce json
// @Param request body warehouse.CreateOrderRequest true "Order data"
// @Success 201 {object} dto.Response
// @Router /api/v1/warehouse/orders [post]
func (h *WarehouseOrderHandler) Create(c *gin.Context) {
	var req warehouseapp.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	o, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, o)
}

// UpdateLines godoc
// @Summary Replace the lines of a draft order
// @Tags warehouse
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param request body warehouse.UpdateOrderLinesRequest true "Order lines"
// @Success 200 {object} dto.Response
// @Failure 422 {object} dto.Response
// @Router /api/v1/warehouse/orders/{id}/lines [put]
func (h *WarehouseOrderHandler) UpdateLines(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	var req warehouseapp.UpdateOrderLinesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	o, err := h.service.UpdateLines(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, o)
}

// Confirm godoc
// @Summary Confirm a warehouse order
// @Description Deduct stock for every line and move the order to confirmed. Replay-safe via X-Idempotency-Key.
// @Tags warehouse
// @Produce json
// @Param id path string true "Order ID"
// @Param X-Idempotency-Key header string false "Idempotency key"
// @Success 200 {object} dto.Response
// @Failure 422 {object} dto.Response
// @Router /api/v1/warehouse/orders/{id}/confirm [post]
func (h *WarehouseOrderHandler) Confirm(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	o, err := h.service.Confirm(c.Request.Context(), id, idempotencyKey(c))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, o)
}

// Reject godoc
// @Summary Reject a warehouse order
// @Tags warehouse
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param request body warehouse.RejectOrderRequest true "Rejection reason"
// @Success 200 {object} dto.Response
// @Failure 422 {object} dto.Response
// @Router /api/v1/warehouse/orders/{id}/reject [post]
func (h *WarehouseOrderHandler) Reject(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	var req warehouseapp.RejectOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	o, err := h.service.Reject(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, o)
}

// Deliver godoc
// @Summary Mark a confirmed order as delivered
// @Tags warehouse
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} dto.Response
// @Failure 422 {object} dto.Response
// @Router /api/v1/warehouse/orders/{id}/deliver [post]
func (h *WarehouseOrderHandler) Deliver(c *gin.Context) {
	h.transition(c, h.service.Deliver)
}

// Accept godoc
// @Summary Accept a delivered order
// @Tags warehouse
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} dto.Response
// @Failure 422 {object} dto.Response
// @Router /api/v1/warehouse/orders/{id}/accept [post]
func (h *WarehouseOrderHandler) Accept(c *gin.Context) {
	h.transition(c, h.service.Accept)
}

// Finish godoc
// @Summary Finish an accepted order
// @Tags warehouse
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} dto.Response
// @Failure 422 {object} dto.Response
// @Router /api/v1/warehouse/orders/{id}/finish [post]
func (h *WarehouseOrderHandler) Finish(c *gin.Context) {
	h.transition(c, h.service.Finish)
}

// RequestRevision godoc
// @Summary Send a delivered order back for revision
// @Tags warehouse
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param request body warehouse.RevisionRequest false "Revision note"
// @Success 200 {object} dto.Response
// @Failure 422 {object} dto.Response
// @Router /api/v1/warehouse/orders/{id}/request-revision [post]
func (h *WarehouseOrderHandler) RequestRevision(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	var req warehouseapp.RevisionRequest
	_ = c.ShouldBindJSON(&req)

	o, err := h.service.RequestRevision(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, o)
}

// Resubmit godoc
// @Summary Resubmit a revised order
// @Tags warehouse
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} dto.Response
// @Failure 422 {object} dto.Response
// @Router /api/v1/warehouse/orders/{id}/resubmit [post]
func (h *WarehouseOrderHandler) Resubmit(c *gin.Context) {
	h.transition(c, h.service.Resubmit)
}

// Delete godoc
// @Summary Delete a warehouse order
// @Description Only draft and rejected orders can be deleted
// @Tags warehouse
// @Param id path string true "Order ID"
// @Success 204
// @Failure 422 {object} dto.Response
// @Router /api/v1/warehouse/orders/{id} [delete]
func (h *WarehouseOrderHandler) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// transition runs a body-less status change and writes the updated order.
func (h *WarehouseOrderHandler) transition(c *gin.Context, fn func(ctx context.Context, id uuid.UUID) (*warehouseapp.OrderResponse, error)) {
	id, ok := uuidParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	o, err := fn(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, o)
}
