package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Nabeelato/job-tracker-app-sub001/internal/service"
	"github.com/Nabeelato/job-tracker-app-sub001/pkg/response"
)

// DashboardHandler serves aggregated pipeline statistics.
type DashboardHandler struct {
	service *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(svc *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: svc}
}

// Stats godoc
// @Summary Dashboard statistics
// @Description Aggregated job counts by status and priority, due-soon counts and staff workload
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /dashboard/stats [get]
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats, nil)
}
