package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Nabeelato/job-tracker-app-sub001/internal/service"
	appErrors "github.com/Nabeelato/job-tracker-app-sub001/pkg/errors"
	"github.com/Nabeelato/job-tracker-app-sub001/pkg/response"
)

// CustomFieldHandler manages custom field definitions and column label
// overrides for the job table.
type CustomFieldHandler struct {
	service *service.CustomFieldService
}

// NewCustomFieldHandler creates a new custom field handler.
func NewCustomFieldHandler(svc *service.CustomFieldService) *CustomFieldHandler {
	return &CustomFieldHandler{service: svc}
}

// List godoc
// @Summary List custom fields
// @Tags CustomFields
// @Produce json
// @Param active query bool false "Only active fields"
// @Success 200 {object} response.Envelope
// @Router /custom-fields [get]
func (h *CustomFieldHandler) List(c *gin.Context) {
	fields, err := h.service.List(c.Request.Context(), c.Query("active") == "true")
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, fields, nil)
}

// Create godoc
// @Summary Create custom field
// @Tags CustomFields
// @Accept json
// @Produce json
// @Param payload body service.CustomFieldRequest true "Field payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /custom-fields [post]
func (h *CustomFieldHandler) Create(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req service.CustomFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}

	field, err := h.service.Create(c.Request.Context(), actorFromClaims(claims), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, field)
}

// Update godoc
// @Summary Update custom field
// @Description The field key is immutable; label, options and active flag may change
// @Tags CustomFields
// @Accept json
// @Produce json
// @Param id path string true "Field ID"
// @Param payload body service.CustomFieldRequest true "Field payload"
// @Success 200 {object} response.Envelope
// @Router /custom-fields/{id} [put]
func (h *CustomFieldHandler) Update(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req service.CustomFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}

	field, err := h.service.Update(c.Request.Context(), actorFromClaims(claims), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, field, nil)
}

// Delete godoc
// @Summary Delete custom field
// @Tags CustomFields
// @Param id path string true "Field ID"
// @Success 204
// @Router /custom-fields/{id} [delete]
func (h *CustomFieldHandler) Delete(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	if err := h.service.Delete(c.Request.Context(), actorFromClaims(claims), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListColumnLabels godoc
// @Summary List column label overrides
// @Tags CustomFields
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /column-labels [get]
func (h *CustomFieldHandler) ListColumnLabels(c *gin.Context) {
	labels, err := h.service.ListColumnLabels(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, labels, nil)
}

// SetColumnLabel godoc
// @Summary Set column label override
// @Tags CustomFields
// @Accept json
// @Produce json
// @Param payload body service.ColumnLabelRequest true "Label payload"
// @Success 200 {object} response.Envelope
// @Router /column-labels [put]
func (h *CustomFieldHandler) SetColumnLabel(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req service.ColumnLabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}

	label, err := h.service.SetColumnLabel(c.Request.Context(), actorFromClaims(claims), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, label, nil)
}

// ResetColumnLabel godoc
// @Summary Remove column label override
// @Tags CustomFields
// @Param key path string true "Column key"
// @Success 204
// @Router /column-labels/{key} [delete]
func (h *CustomFieldHandler) ResetColumnLabel(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	if err := h.service.ResetColumnLabel(c.Request.Context(), actorFromClaims(claims), c.Param("key")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
