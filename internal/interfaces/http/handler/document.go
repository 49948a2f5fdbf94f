package handler

import (
	"strconv"

	documentapp "github.com/backoffice/backend/internal/application/document"
	"github.com/gin-gonic/gin"
)

// DocumentHandler handles document endpoints
type DocumentHandler struct {
	BaseHandler
	service *documentapp.DocumentService
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(service *documentapp.DocumentService) *DocumentHandler {
	return &DocumentHandler{service: service}
}

// List godoc
// @Summary List documents
// @Description Get a paginated list of documents
// @Tags documents
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Param status query string false "Filter by status"
// @Param category query string false "Filter by category"
// @Param division_id query string false "Filter by allocated division"
// @Success 200 {object} dto.Response
// @Router /api/v1/documents [get]
func (h *DocumentHandler) List(c *gin.Context) {
	var filter documentapp.DocumentListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	documents, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, documents, total, filter.Page, filter.PageSize)
}

// GetByID godoc
// @Summary Get a document
// @Tags documents
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} dto.Response
// @Failure 404 {object} dto.Response
// @Router /api/v1/documents/{id} [get]
func (h *DocumentHandler) GetByID(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid document ID")
		return
	}

	d, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, d)
}

// GetByNumber godoc
// @Summary Get a document by document number
// @Tags documents
// @Produce json
// @Param number path string true "Document number"
// @Success 200 {object} dto.Response
// @Failure 404 {object} dto.Response
// @Router /api/v1/documents/number/{number} [get]
func (h *DocumentHandler) GetByNumber(c *gin.Context) {
	number := c.Param("number")
	if number == "" {
		h.BadRequest(c, "Document number is required")
		return
	}

	d, err := h.service.GetByNumber(c.Request.Context(), number)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, d)
}

// Upload godoc
// @Summary Register a document upload
// @Description Reserve storage across the requested divisions and return a presigned upload URL
// @Tags documents
// @Accept json
// @Produce json
// @Param request body document.UploadDocumentRequest true "Document metadata and allocations"
// @Success 201 {object} dto.Response
// @Failure 422 {object} dto.Response
// @Router /api/v1/documents [post]
func (h *DocumentHandler) Upload(c *gin.Context) {
	var req documentapp.UploadDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.service.Upload(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, result)
}

// Download godoc
// @Summary Get a presigned download URL
// @Tags documents
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} dto.Response
// @Failure 422 {object} dto.Response
// @Router /api/v1/documents/{id}/download [get]
func (h *DocumentHandler) Download(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid document ID")
		return
	}

	result, err := h.service.Download(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// Update godoc
// @Summary Update document metadata
// @Tags documents
// @Accept json
// @Produce json
// @Param id path string true "Document ID"
// @Param request body document.UpdateDocumentRequest true "Document metadata"
// @Success 200 {object} dto.Response
// @Router /api/v1/documents/{id} [put]
func (h *DocumentHandler) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid document ID")
		return
	}

	var req documentapp.UpdateDocumentRequest
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

// Archive godoc
// @Summary Archive a document
// @Tags documents
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} dto.Response
// @Failure 422 {object} dto.Response
// @Router /api/v1/documents/{id}/archive [post]
func (h *DocumentHandler) Archive(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid document ID")
		return
	}

	d, err := h.service.Archive(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, d)
}

// Restore godoc
// @Summary Restore an archived document
// @Tags documents
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} dto.Response
// @Failure 422 {object} dto.Response
// @Router /api/v1/documents/{id}/restore [post]
func (h *DocumentHandler) Restore(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid document ID")
		return
	}

	d, err := h.service.Restore(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, d)
}

// Delete godoc
// @Summary Delete a document
// @Description Delete a document. Refused while live storage reservations reference it unless cascade is set, which releases them along with the delete.
// @Tags documents
// @Param id path string true "Document ID"
// @Param cascade query bool false "Release live storage reservations instead of refusing the delete"
// @Success 204
// @Failure 409 {object} dto.Response
// @Failure 422 {object} dto.Response
// @Router /api/v1/documents/{id} [delete]
func (h *DocumentHandler) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid document ID")
		return
	}

	cascade, _ := strconv.ParseBool(c.DefaultQuery("cascade", "false"))

	if err := h.service.Delete(c.Request.Context(), id, cascade); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
