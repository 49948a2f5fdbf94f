package handler

import (
	warehouseapp "github.com/backoffice/backend/internal/application/warehouse"
	"github.com/gin-gonic/gin"
)

// StockItemHandler handles stock item endpoints
type StockItemHandler struct {
	BaseHandler
	service *warehouseapp.StockItemService
}

// NewStockItemHandler creates a new stock item handler
func NewStockItemHandler(service *warehouseapp.StockItemService) *StockItemHandler {
	return &StockItemHandler{service: service}
}

// List godoc
// @Summary List stock items
// @Tags warehouse
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Param search query string false "Search by name or item code"
// @Param below_min query bool false "Only items below minimum stock"
// @Success 200 {object} dto.Response
// @Router /api/v1/warehouse/items [get]
func (h *StockItemHandler) List(c *gin.Context) {
	var filter warehouseapp.StockItemListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	items, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// GetByID godoc
// @Summary Get a stock item
// @Tags warehouse
// @Produce json
// @Param id path string true "Stock item ID"
// @Success 200 {object} dto.Response
// @Failure 404 {object} dto.Response
// @Router /api/v1/warehouse/items/{id} [get]
func (h *StockItemHandler) GetByID(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid stock item ID")
		return
	}

	item, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, item)
}

// Create godoc
// @Summary Create a stock item
// @Tags warehouse
// @Accept json
// @Produce json
// @Param request body warehouse.CreateStockItemRequest true "Stock item data"
// @Success 201 {object} dto.Response
// @Failure 409 {object} dto.Response
// @Router /api/v1/warehouse/items [post]
func (h *StockItemHandler) Create(c *gin.Context) {
	var req warehouseapp.CreateStockItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	item, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, item)
}

// Update godoc
// @Summary Update a stock item
// @Tags warehouse
// @Accept json
// @Produce json
// @Param id path string true "Stock item ID"
// @Param request body warehouse.UpdateStockItemRequest true "Stock item data"
// @Success 200 {object} dto.Response
// @Router /api/v1/warehouse/items/{id} [put]
func (h *StockItemHandler) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid stock item ID")
		return
	}

	var req warehouseapp.UpdateStockItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	item, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, item)
}

// Receive godoc
// @Summary Receive stock
// @Description Increase current stock for an item
// @Tags warehouse
// @Accept json
// @Produce json
// @Param id path string true "Stock item ID"
// @Param request body warehouse.AdjustStockRequest true "Quantity to receive"
// @Success 200 {object} dto.Response
// @Router /api/v1/warehouse/items/{id}/receive [post]
func (h *StockItemHandler) Receive(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid stock item ID")
		return
	}

	var req warehouseapp.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	item, err := h.service.ReceiveStock(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, item)
}

// Issue godoc
// @Summary Issue stock
// @Description Decrease current stock for an item. Issuing more than available is rejected.
// @Tags warehouse
// @Accept json
// @Produce json
// @Param id path string true "Stock item ID"
// @Param request body warehouse.AdjustStockRequest true "Quantity to issue"
// @Success 200 {object} dto.Response
// @Failure 422 {object} dto.Response
// @Router /api/v1/warehouse/items/{id}/issue [post]
func (h *StockItemHandler) Issue(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid stock item ID")
		return
	}

	var req warehouseapp.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	item, err := h.service.IssueStock(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, item)
}

// Delete godoc
// @Summary Delete a stock item
// @Tags warehouse
// @Param id path string true "Stock item ID"
// @Success 204
// @Failure 422 {object} dto.Response
// @Router /api/v1/warehouse/items/{id} [delete]
func (h *StockItemHandler) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid stock item ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
