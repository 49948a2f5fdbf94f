package handler

import (
	divisionapp "github.com/backoffice/backend/internal/application/division"
	"github.com/gin-gonic/gin"
)

// PositionHandler handles position endpoints
type PositionHandler struct {
	BaseHandler
	service *divisionapp.PositionService
}

// NewPositionHandler creates a new position handler
func NewPositionHandler(service *divisionapp.PositionService) *PositionHandler {
	return &PositionHandler{service: service}
}

// List godoc
// @Summary List positions
// @Description Get a paginated list of positions, optionally scoped to a division
// @Tags positions
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Param division_id query string false "Filter by division"
// @Success 200 {object} dto.Response
// @Router /api/v1/positions [get]
func (h *PositionHandler) List(c *gin.Context) {
	var filter divisionapp.PositionListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	positions, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, positions, total, filter.Page, filter.PageSize)
}

// GetByID godoc
// @Summary Get a position
// @Tags positions
// @Produce json
// @Param id path string true "Position ID"
// @Success 200 {object} dto.Response
// @Failure 404 {object} dto.Response
// @Router /api/v1/positions/{id} [get]
func (h *PositionHandler) GetByID(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid position ID")
		return
	}

	p, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, p)
}

// Create godoc
// @Summary Create a position
// @Tags positions
// @Accept json
// @Produce json
// @Param request body division.CreatePositionRequest true "Position data"
// @Success 201 {object} dto.Response
// @Failure 404 {object} dto.Response
// @Router /api/v1/positions [post]
func (h *PositionHandler) Create(c *gin.Context) {
	var req divisionapp.CreatePositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	p, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, p)
}

// Update godoc
// @Summary Update a position
// @Tags positions
// @Accept json
// @Produce json
// @Param id path string true "Position ID"
// @Param request body division.UpdatePositionRequest true "Position data"
// @Success 200 {object} dto.Response
// @Router /api/v1/positions/{id} [put]
func (h *PositionHandler) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid position ID")
		return
	}

	var req divisionapp.UpdatePositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	p, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, p)
}

// Delete godoc
// @Summary Delete a position
// @Tags positions
// @Param id path string true "Position ID"
// @Success 204
// @Router /api/v1/positions/{id} [delete]
func (h *PositionHandler) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid position ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
