package handler

import (
	visitorapp "github.com/backoffice/backend/internal/application/visitor"
	"github.com/gin-gonic/gin"
)

// VisitorHandler handles visitor log endpoints
type VisitorHandler struct {
	BaseHandler
	service *visitorapp.VisitorService
}

// NewVisitorHandler creates a new visitor handler
func NewVisitorHandler(service *visitorapp.VisitorService) *VisitorHandler {
	return &VisitorHandler{service: service}
}

// List godoc
// @Summary List visitors
// @Tags visitors
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Param status query string false "Filter by status"
// @Param host_division_id query string false "Filter by host division"
// @Param scheduled_from query string false "Scheduled window start (RFC 3339)"
// @Param scheduled_to query string false "Scheduled window end (RFC 3339)"
// @Success 200 {object} dto.Response
// @Router /api/v1/visitors [get]
func (h *VisitorHandler) List(c *gin.Context) {
	var filter visitorapp.VisitorListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	visitors, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, visitors, total, filter.Page, filter.PageSize)
}

// GetByID godoc
// @Summary Get a visitor
// @Tags visitors
// @Produce json
// @Param id path string true "Visitor ID"
// @Success 200 {object} dto.Response
// @Failure 404 {object} dto.Response
// @Router /api/v1/visitors/{id} [get]
func (h *VisitorHandler) GetByID(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid visitor ID")
		return
	}

	v, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, v)
}

// Schedule godoc
// @Summary Schedule a visitor
// @Tags visitors
// @Accept json
// @Produce json
// @Param request body visitor.ScheduleVisitorRequest true "Visitor data"
// @Success 201 {object} dto.Response
// @Router /api/v1/visitors [post]
func (h *VisitorHandler) Schedule(c *gin.Context) {
	var req visitorapp.ScheduleVisitorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	v, err := h.service.Schedule(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, v)
}

// Reschedule godoc
// @Summary Reschedule a visitor
// @Tags visitors
// @Accept json
// @Produce json
// @Param id path string true "Visitor ID"
// @Param request body visitor.RescheduleVisitorRequest true "New schedule"
// @Success 200 {object} dto.Response
// @Failure 422 {object} dto.Response
// @Router /api/v1/visitors/{id}/reschedule [post]
func (h *VisitorHandler) Reschedule(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid visitor ID")
		return
	}

	var req visitorapp.RescheduleVisitorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	v, err := h.service.Reschedule(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, v)
}

// CheckIn godoc
// @Summary Check a visitor in
// @Tags visitors
// @Produce json
// @Param id path string true "Visitor ID"
// @Success 200 {object} dto.Response
// @Failure 422 {object} dto.Response
// @Router /api/v1/visitors/{id}/check-in [post]
func (h *VisitorHandler) CheckIn(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid visitor ID")
		return
	}

	v, err := h.service.CheckIn(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, v)
}

// CheckOut godoc
// @Summary Check a visitor out
// @Tags visitors
// @Produce json
// @Param id path string true "Visitor ID"
// @Success 200 {object} dto.Response
// @Failure 422 {object} dto.Response
// @Router /api/v1/visitors/{id}/check-out [post]
func (h *VisitorHandler) CheckOut(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid visitor ID")
		return
	}

	v, err := h.service.CheckOut(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, v)
}

// Cancel godoc
// @Summary Cancel a scheduled visit
// @Tags visitors
// @Accept json
// @Produce json
// @Param id path string true "Visitor ID"
// @Param request body visitor.CancelVisitorRequest false "Cancellation reason"
// @Success 200 {object} dto.Response
// @Failure 422 {object} dto.Response
// @Router /api/v1/visitors/{id}/cancel [post]
func (h *VisitorHandler) Cancel(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid visitor ID")
		return
	}

	var req visitorapp.CancelVisitorRequest
	_ = c.ShouldBindJSON(&req)

	v, err := h.service.Cancel(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, v)
}

// Delete godoc
// @Summary Delete a visitor record
// @Description Only cancelled and checked-out records can be deleted
// @Tags visitors
// @Param id path string true "Visitor ID"
// @Success 204
// @Failure 422 {object} dto.Response
// @Router /api/v1/visitors/{id} [delete]
func (h *VisitorHandler) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid visitor ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
