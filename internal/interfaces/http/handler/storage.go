package handler

import (
	divisionapp "github.com/backoffice/backend/internal/application/division"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReserveStorageRequest is the payload for a manual quota reservation
type ReserveStorageRequest struct {
	DivisionID *uuid.UUID `json:"division_id"`
	EntityType string     `json:"entity_type" binding:"required,max=50"`
	EntityID   uuid.UUID  `json:"entity_id" binding:"required"`
	Amount     int64      `json:"amount" binding:"required,gt=0"`
}

// ReleaseByEntityRequest releases every live reservation held by an entity
type ReleaseByEntityRequest struct {
	EntityType string    `json:"entity_type" binding:"required,max=50"`
	EntityID   uuid.UUID `json:"entity_id" binding:"required"`
}

// StorageHandler handles storage quota endpoints
type StorageHandler struct {
	BaseHandler
	service *divisionapp.StorageQuotaService
}

// NewStorageHandler creates a new storage quota handler
func NewStorageHandler(service *divisionapp.StorageQuotaService) *StorageHandler {
	return &StorageHandler{service: service}
}

// Reserve godoc
// @Summary Reserve storage capacity
// @Description Reserve capacity against a division quota, or globally when division_id is omitted
// @Tags storage
// @Accept json
// @Produce json
// @Param request body ReserveStorageRequest true "Reservation data"
// @Success 201 {object} dto.Response
// @Failure 422 {object} dto.Response
// @Router /api/v1/storage/reservations [post]
func (h *StorageHandler) Reserve(c *gin.Context) {
	var req ReserveStorageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	reservation, err := h.service.Reserve(c.Request.Context(), req.DivisionID, req.EntityType, req.EntityID, req.Amount)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, reservation)
}

// Release godoc
// @Summary Release a reservation
// @Description Release a single reservation by ID. Releasing twice is a conflict.
// @Tags storage
// @Param id path string true "Reservation ID"
// @Success 204
// @Failure 409 {object} dto.Response
// @Router /api/v1/storage/reservations/{id} [delete]
func (h *StorageHandler) Release(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid reservation ID")
		return
	}

	if err := h.service.Release(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// ReleaseByEntity godoc
// @Summary Release all reservations held by an entity
// @Tags storage
// @Accept json
// @Param request body ReleaseByEntityRequest true "Entity reference"
// @Success 204
// @Router /api/v1/storage/reservations/release [post]
func (h *StorageHandler) ReleaseByEntity(c *gin.Context) {
	var req ReleaseByEntityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	if err := h.service.ReleaseByEntity(c.Request.Context(), req.EntityType, req.EntityID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// Usage godoc
// @Summary Get division storage usage
// @Tags storage
// @Produce json
// @Param id path string true "Division ID"
// @Success 200 {object} dto.Response
// @Failure 404 {object} dto.Response
// @Router /api/v1/storage/divisions/{id}/usage [get]
func (h *StorageHandler) Usage(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid division ID")
		return
	}

	usage, err := h.service.Usage(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, usage)
}
