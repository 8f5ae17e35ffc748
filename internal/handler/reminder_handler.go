package handler

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Nabeelato/job-tracker-app-sub001/internal/service"
	appErrors "github.com/Nabeelato/job-tracker-app-sub001/pkg/errors"
	"github.com/Nabeelato/job-tracker-app-sub001/pkg/response"
)

// ReminderHandler exposes the inactivity sweep for the scheduler.
// The endpoint is meant for cron-style callers, not browsers, so it is
// guarded by a shared secret instead of a user session.
type ReminderHandler struct {
	service *service.ReminderService
	secret  string
}

// NewReminderHandler creates a new reminder handler.
func NewReminderHandler(svc *service.ReminderService, secret string) *ReminderHandler {
	return &ReminderHandler{service: svc, secret: secret}
}

// Sweep godoc
// @Summary Run the inactivity reminder sweep
// @Description Scans active jobs and sends 24h and 48h inactivity reminders
// @Tags Internal
// @Produce json
// @Param X-Sweep-Secret header string true "Shared sweep secret"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /internal/reminders/sweep [post]
func (h *ReminderHandler) Sweep(c *gin.Context) {
	provided := c.GetHeader("X-Sweep-Secret")
	if h.secret == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(h.secret)) != 1 {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	result, err := h.service.Sweep(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}
