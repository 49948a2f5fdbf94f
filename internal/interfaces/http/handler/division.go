package handler

import (
	divisionapp "github.com/backoffice/backend/internal/application/division"
	"github.com/gin-gonic/gin"
)

// DivisionHandler handles division endpoints
type DivisionHandler struct {
	BaseHandler
	service *divisionapp.DivisionService
}

// NewDivisionHandler creates a new division handler
func NewDivisionHandler(service *divisionapp.DivisionService) *DivisionHandler {
	return &DivisionHandler{service: service}
}

// List godoc
// @Summary List divisions
// @Description Get a paginated list of divisions
// @Tags divisions
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Param search query string false "Search by name or code"
// @Success 200 {object} dto.Response
// @Router /api/v1/divisions [get]
func (h *DivisionHandler) List(c *gin.Context) {
	var filter divisionapp.DivisionListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	divisions, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, divisions, total, filter.Page, filter.PageSize)
}

// Get godoc
// @Summary Get a division
// @Tags divisions
// @Produce json
// @Param id path string true "Division ID"
// @Success 200 {object} dto.Response
// @Failure 404 {object} dto.Response
// @Router /api/v1/divisions/{id} [get]
func (h *DivisionHandler) GetByID(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid division ID")
		return
	}

	d, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, d)
}

// Create godoc
// @Summary Create a division
// @Tags divisions
// @Accept json
// @Produce json
// @Param request body division.CreateDivisionRequest true "Division data"
// @Success 201 {object} dto.Response
// @Failure 409 {object} dto.Response
// @Router /api/v1/divisions [post]
func (h *DivisionHandler) Create(c *gin.Context) {
	var req divisionapp.CreateDivisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	d, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, d)
}

// Update godoc
// @Summary Update a division
// @Tags divisions
// @Accept json
// @Produce json
// @Param id path string true "Division ID"
// @Param request body division.UpdateDivisionRequest true "Division data"
// @Success 200 {object} dto.Response
// @Router /api/v1/divisions/{id} [put]
func (h *DivisionHandler) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid division ID")
		return
	}

	var req divisionapp.UpdateDivisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	d, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, d)
}

// Resize godoc
// @Summary Resize a division storage quota
// @Description Change the maximum storage capacity. Shrinking below current usage is rejected.
// @Tags divisions
// @Accept json
// @Produce json
// @Param id path string true "Division ID"
// @Param request body division.ResizeDivisionRequest true "New capacity"
// @Success 200 {object} dto.Response
// @Failure 422 {object} dto.Response
// @Router /api/v1/divisions/{id}/capacity [patch]
func (h *DivisionHandler) Resize(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid division ID")
		return
	}

	var req divisionapp.ResizeDivisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	d, err := h.service.Resize(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, d)
}

// Delete godoc
// @Summary Delete a division
// @Description Delete a division. Divisions with stored documents cannot be deleted.
// @Tags divisions
// @Param id path string true "Division ID"
// @Success 204
// @Failure 422 {object} dto.Response
// @Router /api/v1/divisions/{id} [delete]
func (h *DivisionHandler) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid division ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
