package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Nabeelato/job-tracker-app-sub001/internal/models"
	"github.com/Nabeelato/job-tracker-app-sub001/internal/service"
	appErrors "github.com/Nabeelato/job-tracker-app-sub001/pkg/errors"
	"github.com/Nabeelato/job-tracker-app-sub001/pkg/export"
	"github.com/Nabeelato/job-tracker-app-sub001/pkg/response"
)

// JobHandler handles the job pipeline endpoints.
type JobHandler struct {
	service  *service.JobService
	comments *service.CommentService
	csv      *export.CSVExporter
	pdf      *export.PDFExporter
}

// NewJobHandler creates a new job handler.
func NewJobHandler(svc *service.JobService, comments *service.CommentService) *JobHandler {
	return &JobHandler{
		service:  svc,
		comments: comments,
		csv:      export.NewCSVExporter(),
		pdf:      export.NewPDFExporter(),
	}
}

func jobFilterFromQuery(c *gin.Context) models.JobFilter {
	var filter models.JobFilter
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("page_size", "20")); err == nil {
		filter.PageSize = size
	}
	if status := c.Query("status"); status != "" {
		s := models.JobStatus(status)
		filter.Status = &s
	}
	if priority := c.Query("priority"); priority != "" {
		p := models.JobPriority(priority)
		filter.Priority = &p
	}
	if assignee := c.Query("assigned_to"); assignee != "" {
		filter.AssignedToID = &assignee
	}
	if supervisor := c.Query("supervisor"); supervisor != "" {
		filter.SupervisorID = &supervisor
	}
	if department := c.Query("department"); department != "" {
		filter.DepartmentID = &department
	}
	filter.Search = c.Query("search")
	return filter
}

// List godoc
// @Summary List jobs
// @Description List jobs with filtering; staff see only their own
// @Tags Jobs
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Param status query string false "Status filter"
// @Param priority query string false "Priority filter"
// @Param assigned_to query string false "Assignee filter"
// @Param search query string false "Search term"
// @Success 200 {object} response.Envelope
// @Router /jobs [get]
func (h *JobHandler) List(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	filter := jobFilterFromQuery(c)

	jobs, total, err := h.service.List(c.Request.Context(), actorFromClaims(claims), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, jobs, &models.Pagination{
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalCount: total,
	})
}

// Get godoc
// @Summary Get job
// @Tags Jobs
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /jobs/{id} [get]
func (h *JobHandler) Get(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	job, err := h.service.Get(c.Request.Context(), actorFromClaims(claims), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, job, nil)
}

// Create godoc
// @Summary Create job
// @Description Open a new job at the start of the pipeline; the supervisor holds it until staff are assigned
// @Tags Jobs
// @Accept json
// @Produce json
// @Param payload body models.CreateJobRequest true "Create job payload"
// @Success 201 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /jobs [post]
func (h *JobHandler) Create(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req models.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}

	job, err := h.service.Create(c.Request.Context(), actorFromClaims(claims), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, job)
}

// Update godoc
// @Summary Update job details
// @Tags Jobs
// @Accept json
// @Produce json
// @Param id path string true "Job ID"
// @Param payload body models.UpdateJobRequest true "Update payload"
// @Success 200 {object} response.Envelope
// @Router /jobs/{id} [patch]
func (h *JobHandler) Update(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req models.UpdateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}

	job, err := h.service.Update(c.Request.Context(), actorFromClaims(claims), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, job, nil)
}

// UpdateStatus godoc
// @Summary Move job to a new status
// @Description Status moves follow the pipeline; COMPLETED is reserved for managers and supervisors
// @Tags Jobs
// @Accept json
// @Produce json
// @Param id path string true "Job ID"
// @Param payload body models.UpdateStatusRequest true "Status payload"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /jobs/{id}/status [put]
func (h *JobHandler) UpdateStatus(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req models.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}

	job, err := h.service.UpdateStatus(c.Request.Context(), actorFromClaims(claims), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, job, nil)
}

// Assign godoc
// @Summary Assign job
// @Tags Jobs
// @Accept json
// @Produce json
// @Param id path string true "Job ID"
// @Param payload body models.AssignJobRequest true "Assignment payload"
// @Success 200 {object} response.Envelope
// @Router /jobs/{id}/assign [put]
func (h *JobHandler) Assign(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req models.AssignJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}

	job, err := h.service.Assign(c.Request.Context(), actorFromClaims(claims), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, job, nil)
}

// UpdateProgress godoc
// @Summary Update job progress
// @Tags Jobs
// @Accept json
// @Produce json
// @Param id path string true "Job ID"
// @Param payload body models.UpdateProgressRequest true "Progress payload"
// @Success 200 {object} response.Envelope
// @Router /jobs/{id}/progress [put]
func (h *JobHandler) UpdateProgress(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req models.UpdateProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}

	job, err := h.service.UpdateProgress(c.Request.Context(), actorFromClaims(claims), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, job, nil)
}

// RequestCompletion godoc
// @Summary Request completion sign-off
// @Tags Jobs
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} response.Envelope
// @Router /jobs/{id}/request-completion [post]
func (h *JobHandler) RequestCompletion(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	job, err := h.service.RequestCompletion(c.Request.Context(), actorFromClaims(claims), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, job, nil)
}

// Snooze godoc
// @Summary Snooze inactivity reminders
// @Description Push the reminder window out by 24 business hours
// @Tags Jobs
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} response.Envelope
// @Router /jobs/{id}/snooze [post]
func (h *JobHandler) Snooze(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	job, err := h.service.Snooze(c.Request.Context(), actorFromClaims(claims), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, job, nil)
}

// Unsnooze godoc
// @Summary Clear reminder snooze
// @Tags Jobs
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} response.Envelope
// @Router /jobs/{id}/snooze [delete]
func (h *JobHandler) Unsnooze(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	job, err := h.service.Unsnooze(c.Request.Context(), actorFromClaims(claims), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, job, nil)
}

type awaitingReplyRequest struct {
	Awaiting bool `json:"awaiting"`
}

// SetAwaitingReply godoc
// @Summary Toggle awaiting-client-reply
// @Tags Jobs
// @Accept json
// @Produce json
// @Param id path string true "Job ID"
// @Param payload body awaitingReplyRequest true "Awaiting payload"
// @Success 200 {object} response.Envelope
// @Router /jobs/{id}/awaiting-reply [put]
func (h *JobHandler) SetAwaitingReply(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req awaitingReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}

	job, err := h.service.SetAwaitingReply(c.Request.Context(), actorFromClaims(claims), c.Param("id"), req.Awaiting)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, job, nil)
}

// Timeline godoc
// @Summary Job timeline
// @Tags Jobs
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} response.Envelope
// @Router /jobs/{id}/timeline [get]
func (h *JobHandler) Timeline(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	entries, err := h.service.Timeline(c.Request.Context(), actorFromClaims(claims), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries, nil)
}

// AddComment godoc
// @Summary Add comment
// @Description Comment content may mention users as @[Name](userId)
// @Tags Jobs
// @Accept json
// @Produce json
// @Param id path string true "Job ID"
// @Param payload body models.AddCommentRequest true "Comment payload"
// @Success 201 {object} response.Envelope
// @Router /jobs/{id}/comments [post]
func (h *JobHandler) AddComment(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req models.AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}

	comment, err := h.comments.Add(c.Request.Context(), actorFromClaims(claims), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, comment)
}

// ListComments godoc
// @Summary List comments
// @Tags Jobs
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} response.Envelope
// @Router /jobs/{id}/comments [get]
func (h *JobHandler) ListComments(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	comments, err := h.comments.List(c.Request.Context(), actorFromClaims(claims), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, comments, nil)
}

// BulkDelete godoc
// @Summary Bulk delete jobs
// @Tags Jobs
// @Accept json
// @Produce json
// @Param payload body models.BulkDeleteRequest true "IDs payload"
// @Success 204
// @Failure 403 {object} response.Envelope
// @Router /jobs/bulk-delete [post]
func (h *JobHandler) BulkDelete(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req models.BulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}

	if err := h.service.BulkDelete(c.Request.Context(), actorFromClaims(claims), req); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Export godoc
// @Summary Export jobs
// @Description Export the filtered job list as CSV or PDF
// @Tags Jobs
// @Produce octet-stream
// @Param format query string false "csv or pdf" default(csv)
// @Success 200
// @Router /jobs/export [get]
func (h *JobHandler) Export(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	dataset, err := h.service.ExportJobs(c.Request.Context(), actorFromClaims(claims), jobFilterFromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	now := time.Now()
	switch c.DefaultQuery("format", "csv") {
	case "pdf":
		payload, err := h.pdf.Render(*dataset, "Job Pipeline")
		if err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf"))
			return
		}
		c.Header("Content-Disposition", export.ContentDisposition(export.AttachmentName("jobs", now, "pdf")))
		c.Data(http.StatusOK, export.ContentTypePDF, payload)
	case "csv":
		payload, err := h.csv.Render(*dataset)
		if err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv"))
			return
		}
		c.Header("Content-Disposition", export.ContentDisposition(export.AttachmentName("jobs", now, "csv")))
		c.Data(http.StatusOK, export.ContentTypeCSV, payload)
	default:
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf"))
	}
}
