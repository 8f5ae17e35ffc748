package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Nabeelato/job-tracker-app-sub001/internal/authz"
	"github.com/Nabeelato/job-tracker-app-sub001/internal/models"
	"github.com/Nabeelato/job-tracker-app-sub001/internal/workflow"
	appErrors "github.com/Nabeelato/job-tracker-app-sub001/pkg/errors"
	"github.com/Nabeelato/job-tracker-app-sub001/pkg/export"
)

type jobRepository interface {
	FindByID(ctx context.Context, id string) (*models.Job, error)
	List(ctx context.Context, filter models.JobFilter) ([]models.Job, int, error)
	Create(ctx context.Context, job *models.Job) error
	Update(ctx context.Context, job *models.Job) error
	BulkDelete(ctx context.Context, ids []string) error
	AppendTimeline(ctx context.Context, entry *models.StatusUpdate) error
	Timeline(ctx context.Context, jobID string) ([]models.StatusUpdate, error)
}

type jobUserRepository interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByIDs(ctx context.Context, ids []string) ([]models.User, error)
	RecordAudit(ctx context.Context, entry *models.AuditLog) error
}

type jobNotifier interface {
	PublishJobEvent(ctx context.Context, ev JobEvent)
}

// Actor identifies who is performing an operation.
type Actor struct {
	ID   string
	Role models.UserRole
}

// JobService implements the job pipeline: creation, status moves,
// assignment, progress, snoozing, and export.
type JobService struct {
	repo        jobRepository
	users       jobUserRepository
	notifier    jobNotifier
	validator   *validator.Validate
	logger      *zap.Logger
	snoozeHours int
	calendar    workflow.BusinessHourFunc
}

// NewJobService constructs a JobService.
func NewJobService(repo jobRepository, users jobUserRepository, notifier jobNotifier, validate *validator.Validate, logger *zap.Logger, snoozeHours int, calendar workflow.BusinessHourFunc) *JobService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if snoozeHours <= 0 {
		snoozeHours = 24
	}
	if calendar == nil {
		calendar = workflow.DefaultCalendar
	}
	return &JobService{
		repo:        repo,
		users:       users,
		notifier:    notifier,
		validator:   validate,
		logger:      logger,
		snoozeHours: snoozeHours,
		calendar:    calendar,
	}
}

// Create opens a new job at the start of the pipeline.
func (s *JobService) Create(ctx context.Context, actor Actor, req models.CreateJobRequest) (*models.Job, error) {
	if !authz.CanCreateJobs(actor.Role) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "role may not create jobs")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid job payload")
	}

	supervisor, err := s.users.FindByID(ctx, req.SupervisorID)
	if err != nil || supervisor.Role != models.RoleSupervisor {
		return nil, appErrors.Clone(appErrors.ErrValidation, "supervisor_id must name a user with the SUPERVISOR role")
	}

	// Admins pick the responsible manager; a manager creating a job
	// becomes the manager of record themselves.
	managerID := actor.ID
	if actor.Role == models.RoleAdmin {
		if req.ManagerID == nil || *req.ManagerID == "" {
			return nil, appErrors.Clone(appErrors.ErrValidation, "manager_id is required when an admin opens a job")
		}
		manager, err := s.users.FindByID(ctx, *req.ManagerID)
		if err != nil || manager.Role != models.RoleManager {
			return nil, appErrors.Clone(appErrors.ErrValidation, "manager_id must name a user with the MANAGER role")
		}
		managerID = manager.ID
	}

	priority := req.Priority
	if priority == "" {
		priority = models.PriorityNormal
	}
	reference := req.Reference
	if reference == "" {
		reference = "JOB-" + strings.ToUpper(uuid.NewString()[:8])
	}

	now := time.Now().UTC()
	job := &models.Job{
		Reference:    reference,
		ClientName:   req.ClientName,
		Title:        req.Title,
		Description:  req.Description,
		Status:       models.StatusRFISent,
		Priority:     priority,
		ServiceTypes: req.ServiceTypes,
		// The supervisor holds the job until they hand it to staff.
		AssignedToID:   &supervisor.ID,
		AssignedByID:   &managerID,
		SupervisorID:   &supervisor.ID,
		ManagerID:      &managerID,
		DepartmentID:   req.DepartmentID,
		DueDate:        req.DueDate,
		LastActivityAt: &now,
	}
	if err := s.repo.Create(ctx, job); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create job")
	}

	s.appendTimeline(ctx, job.ID, actor.ID, models.ActionJobCreated, nil, strPtr(string(job.Status)))

	if job.AssignedToID != nil {
		s.notifier.PublishJobEvent(ctx, JobEvent{
			Type:      models.NotificationJobAssigned,
			ActorID:   actor.ID,
			ActorName: s.actorName(ctx, actor.ID),
			Job:       job,
			Title:     fmt.Sprintf("New job %s", job.Reference),
			Content:   fmt.Sprintf("%s for %s was assigned to you", job.Title, job.ClientName),
		})
	}

	return job, nil
}

// Get returns a job. Staff may only read jobs they are attached to.
func (s *JobService) Get(ctx context.Context, actor Actor, id string) (*models.Job, error) {
	job, err := s.loadJob(ctx, id)
	if err != nil {
		return nil, err
	}
	if !authz.CanViewAllJobs(actor.Role) && !isParty(job, actor.ID) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "job is not assigned to you")
	}
	return job, nil
}

// List returns jobs matching the filter. Staff are scoped to their own
// assignments and supervisors to the jobs they supervise, regardless of
// the requested filter; managers and admins see everything.
func (s *JobService) List(ctx context.Context, actor Actor, filter models.JobFilter) ([]models.Job, int, error) {
	switch actor.Role {
	case models.RoleSupervisor:
		filter.SupervisorID = &actor.ID
	case models.RoleAdmin, models.RoleManager:
	default:
		filter.AssignedToID = &actor.ID
	}
	jobs, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list jobs")
	}
	return jobs, total, nil
}

// Update edits a job's details. Nil request fields are left unchanged.
func (s *JobService) Update(ctx context.Context, actor Actor, id string, req models.UpdateJobRequest) (*models.Job, error) {
	if !authz.CanEditJobDetails(actor.Role) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "role may not edit job details")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid job payload")
	}

	job, err := s.loadJob(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.ClientName != nil {
		job.ClientName = *req.ClientName
	}
	if req.Title != nil {
		job.Title = *req.Title
	}
	if req.Description != nil {
		job.Description = req.Description
	}
	if req.Priority != nil {
		job.Priority = *req.Priority
	}
	if req.ServiceTypes != nil {
		job.ServiceTypes = req.ServiceTypes
	}
	if req.DepartmentID != nil {
		job.DepartmentID = req.DepartmentID
	}
	if req.DueDate != nil {
		job.DueDate = req.DueDate
	}
	s.touch(job)

	if err := s.repo.Update(ctx, job); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update job")
	}
	return job, nil
}

// UpdateStatus moves a job along the pipeline, enforcing the transition
// table and the completion gate.
func (s *JobService) UpdateStatus(ctx context.Context, actor Actor, id string, req models.UpdateStatusRequest) (*models.Job, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid status payload")
	}

	job, err := s.loadJob(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Status == models.StatusCancelled && !authz.CanCancelJob(actor.Role) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "role may not cancel jobs")
	}

	ok, err := workflow.CanTransition(job.Status, req.Status, actor.Role)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrInvalidTransition,
			fmt.Sprintf("cannot move job from %s to %s", job.Status, req.Status))
	}

	oldStatus := job.Status
	now := time.Now().UTC()
	job.Status = req.Status
	switch req.Status {
	case models.StatusInfoSentJobStarted:
		if job.StartedAt == nil {
			job.StartedAt = &now
		}
	case models.StatusCompleted:
		job.CompletedAt = &now
		job.Progress = 100
		job.IsLate = job.DueDate != nil && now.After(*job.DueDate)
	}
	s.touch(job)

	if err := s.repo.Update(ctx, job); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update job status")
	}

	s.appendTimeline(ctx, job.ID, actor.ID, models.ActionStatusChanged, strPtr(string(oldStatus)), strPtr(string(job.Status)))

	s.notifier.PublishJobEvent(ctx, JobEvent{
		Type:      models.NotificationStatusChanged,
		ActorID:   actor.ID,
		ActorName: s.actorName(ctx, actor.ID),
		Job:       job,
		Title:     fmt.Sprintf("%s moved to %s", job.Reference, job.Status),
		Content:   fmt.Sprintf("%s is now %s", job.Title, job.Status),
	})

	return job, nil
}

// Assign changes who is attached to the job. Each changed role gets its
// own timeline entry, and a newly assigned staff member is notified.
func (s *JobService) Assign(ctx context.Context, actor Actor, id string, req models.AssignJobRequest) (*models.Job, error) {
	if !authz.CanAssignJobs(actor.Role) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "role may not assign jobs")
	}

	job, err := s.loadJob(ctx, id)
	if err != nil {
		return nil, err
	}

	// A supervisor may only hand out the jobs they supervise, and only
	// the staff slot; moving the supervisor or manager is reserved for
	// managers and admins.
	isManagerOrAdmin := actor.Role == models.RoleManager || actor.Role == models.RoleAdmin
	if !isManagerOrAdmin {
		if !sameID(job.SupervisorID, &actor.ID) {
			return nil, appErrors.Clone(appErrors.ErrForbidden, "only the job's supervisor or a manager/admin may assign staff")
		}
		if req.SupervisorID != nil || req.ManagerID != nil {
			return nil, appErrors.Clone(appErrors.ErrForbidden, "supervisors may not reassign the supervisor or manager")
		}
	}

	type change struct {
		action   string
		old, new *string
	}
	var changes []change

	if req.AssignedToID != nil && !sameID(job.AssignedToID, req.AssignedToID) {
		staff, err := s.users.FindByID(ctx, *req.AssignedToID)
		if err != nil || staff.Role != models.RoleStaff {
			return nil, appErrors.Clone(appErrors.ErrValidation, "assigned_to_id must name a user with the STAFF role")
		}
		changes = append(changes, change{models.ActionStaffAssigned, job.AssignedToID, req.AssignedToID})
		job.AssignedToID = req.AssignedToID
		job.AssignedByID = &actor.ID
	}
	if req.SupervisorID != nil && !sameID(job.SupervisorID, req.SupervisorID) {
		supervisor, err := s.users.FindByID(ctx, *req.SupervisorID)
		if err != nil || supervisor.Role != models.RoleSupervisor {
			return nil, appErrors.Clone(appErrors.ErrValidation, "supervisor_id must name a user with the SUPERVISOR role")
		}
		changes = append(changes, change{models.ActionSupervisorAssigned, job.SupervisorID, req.SupervisorID})
		job.SupervisorID = req.SupervisorID
	}
	if req.ManagerID != nil && !sameID(job.ManagerID, req.ManagerID) {
		manager, err := s.users.FindByID(ctx, *req.ManagerID)
		if err != nil || manager.Role != models.RoleManager {
			return nil, appErrors.Clone(appErrors.ErrValidation, "manager_id must name a user with the MANAGER role")
		}
		changes = append(changes, change{models.ActionManagerAssigned, job.ManagerID, req.ManagerID})
		job.ManagerID = req.ManagerID
	}

	if len(changes) == 0 {
		return job, nil
	}
	s.touch(job)

	if err := s.repo.Update(ctx, job); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to assign job")
	}

	for _, c := range changes {
		s.appendTimeline(ctx, job.ID, actor.ID, c.action, c.old, c.new)
	}

	s.notifier.PublishJobEvent(ctx, JobEvent{
		Type:      models.NotificationJobAssigned,
		ActorID:   actor.ID,
		ActorName: s.actorName(ctx, actor.ID),
		Job:       job,
		Title:     fmt.Sprintf("Assignment changed on %s", job.Reference),
		Content:   fmt.Sprintf("%s for %s has a new team", job.Title, job.ClientName),
	})

	return job, nil
}

// UpdateProgress sets the completion percentage. Crossing the 50% or
// 100% milestone notifies the job's parties once per milestone.
func (s *JobService) UpdateProgress(ctx context.Context, actor Actor, id string, req models.UpdateProgressRequest) (*models.Job, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid progress payload")
	}

	job, err := s.loadJob(ctx, id)
	if err != nil {
		return nil, err
	}
	if !authz.CanViewAllJobs(actor.Role) && !isParty(job, actor.ID) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "job is not assigned to you")
	}
	if workflow.IsTerminal(job.Status) {
		return nil, appErrors.Clone(appErrors.ErrInvalidTransition, "job is already closed")
	}

	oldProgress := job.Progress
	job.Progress = req.Progress
	s.touch(job)

	if err := s.repo.Update(ctx, job); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update progress")
	}

	s.appendTimeline(ctx, job.ID, actor.ID, models.ActionProgressUpdated,
		strPtr(fmt.Sprintf("%d", oldProgress)), strPtr(fmt.Sprintf("%d", job.Progress)))

	actorName := s.actorName(ctx, actor.ID)
	for _, milestone := range workflow.MilestonesCrossed(oldProgress, job.Progress) {
		s.notifier.PublishJobEvent(ctx, JobEvent{
			Type:      models.NotificationProgressUpdate,
			ActorID:   actor.ID,
			ActorName: actorName,
			Job:       job,
			Title:     fmt.Sprintf("%s reached %d%%", job.Reference, milestone),
			Content:   fmt.Sprintf("%s is %d%% complete", job.Title, milestone),
		})
	}

	return job, nil
}

// RequestCompletion records that a staff member considers the job done
// and notifies the supervisor and manager for sign-off.
func (s *JobService) RequestCompletion(ctx context.Context, actor Actor, id string) (*models.Job, error) {
	job, err := s.loadJob(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isParty(job, actor.ID) && !authz.CanViewAllJobs(actor.Role) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "job is not assigned to you")
	}
	if workflow.IsTerminal(job.Status) {
		return nil, appErrors.Clone(appErrors.ErrInvalidTransition, "job is already closed")
	}

	oldStatus := job.Status
	if job.Status != models.StatusForReview {
		job.Status = models.StatusReadyToProceed
	}
	s.touch(job)
	if err := s.repo.Update(ctx, job); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update job")
	}

	s.appendTimeline(ctx, job.ID, actor.ID, models.ActionCompletionRequested, strPtr(string(oldStatus)), strPtr(string(job.Status)))

	s.notifier.PublishJobEvent(ctx, JobEvent{
		Type:      models.NotificationStatusChanged,
		ActorID:   actor.ID,
		ActorName: s.actorName(ctx, actor.ID),
		Job:       job,
		Title:     fmt.Sprintf("Completion requested on %s", job.Reference),
		Content:   fmt.Sprintf("%s is ready for sign-off", job.Title),
	})

	return job, nil
}

// Snooze pushes the job's reminder window forward by the configured
// number of business hours.
func (s *JobService) Snooze(ctx context.Context, actor Actor, id string) (*models.Job, error) {
	job, err := s.loadJob(ctx, id)
	if err != nil {
		return nil, err
	}
	if !authz.CanViewAllJobs(actor.Role) && !isParty(job, actor.ID) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "job is not assigned to you")
	}

	now := time.Now().UTC()
	until := workflow.SnoozeUntil(now, s.snoozeHours, s.calendar)
	job.ReminderSnoozedTo = &until
	job.UpdatedAt = now

	if err := s.repo.Update(ctx, job); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to snooze job")
	}

	s.appendTimeline(ctx, job.ID, actor.ID, models.ActionSnoozed, nil, strPtr(until.Format(time.RFC3339)))
	return job, nil
}

// Unsnooze clears the snooze window so the sweep considers the job again.
func (s *JobService) Unsnooze(ctx context.Context, actor Actor, id string) (*models.Job, error) {
	job, err := s.loadJob(ctx, id)
	if err != nil {
		return nil, err
	}
	if !authz.CanViewAllJobs(actor.Role) && !isParty(job, actor.ID) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "job is not assigned to you")
	}

	var old *string
	if job.ReminderSnoozedTo != nil {
		old = strPtr(job.ReminderSnoozedTo.Format(time.RFC3339))
	}
	job.ReminderSnoozedTo = nil
	job.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, job); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to clear snooze")
	}

	s.appendTimeline(ctx, job.ID, actor.ID, models.ActionSnoozed, old, nil)
	return job, nil
}

// SetAwaitingReply flips the awaiting-client-reply flag. Jobs awaiting
// a reply are excluded from the inactivity sweep; the flag coming back
// off counts as fresh activity.
func (s *JobService) SetAwaitingReply(ctx context.Context, actor Actor, id string, awaiting bool) (*models.Job, error) {
	job, err := s.loadJob(ctx, id)
	if err != nil {
		return nil, err
	}
	if !authz.CanViewAllJobs(actor.Role) && !isParty(job, actor.ID) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "job is not assigned to you")
	}
	if job.AwaitingReply == awaiting {
		return job, nil
	}

	job.AwaitingReply = awaiting
	s.touch(job)
	if err := s.repo.Update(ctx, job); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update job")
	}

	action := models.ActionAwaitingClientReply
	if !awaiting {
		action = models.ActionClientReplyReceived
	}
	s.appendTimeline(ctx, job.ID, actor.ID, action, nil, nil)
	return job, nil
}

// Timeline returns the job's full status history.
func (s *JobService) Timeline(ctx context.Context, actor Actor, id string) ([]models.StatusUpdate, error) {
	job, err := s.loadJob(ctx, id)
	if err != nil {
		return nil, err
	}
	if !authz.CanViewAllJobs(actor.Role) && !isParty(job, actor.ID) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "job is not assigned to you")
	}
	entries, err := s.repo.Timeline(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load timeline")
	}
	return entries, nil
}

// BulkDelete removes jobs with their comments, timeline, and
// notifications, and records an audit entry.
func (s *JobService) BulkDelete(ctx context.Context, actor Actor, req models.BulkDeleteRequest) error {
	if !authz.CanDeleteJobs(actor.Role) {
		return appErrors.Clone(appErrors.ErrForbidden, "role may not delete jobs")
	}
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid delete payload")
	}

	if err := s.repo.BulkDelete(ctx, req.IDs); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete jobs")
	}

	if err := s.users.RecordAudit(ctx, &models.AuditLog{
		UserID:    &actor.ID,
		Action:    models.AuditActionJobBulkDelete,
		Resource:  "jobs",
		NewValues: []byte(fmt.Sprintf(`{"deleted":%d}`, len(req.IDs))),
	}); err != nil {
		s.logger.Warn("failed to record bulk delete audit log", zap.Error(err))
	}
	return nil
}

// ExportJobs renders the jobs matching the filter into a tabular
// dataset for the CSV and PDF exporters.
func (s *JobService) ExportJobs(ctx context.Context, actor Actor, filter models.JobFilter) (*export.Dataset, error) {
	filter.Page = 1
	filter.PageSize = 100
	jobs, _, err := s.List(ctx, actor, filter)
	if err != nil {
		return nil, err
	}

	names := s.resolveNames(ctx, jobs)
	dataset := &export.Dataset{
		Headers: []string{"Reference", "Client", "Title", "Status", "Priority", "Progress", "Assigned To", "Due Date"},
	}
	for i := range jobs {
		job := &jobs[i]
		due := ""
		if job.DueDate != nil {
			due = job.DueDate.Format("2006-01-02")
		}
		assignee := ""
		if job.AssignedToID != nil {
			assignee = names[*job.AssignedToID]
		}
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Reference":   job.Reference,
			"Client":      job.ClientName,
			"Title":       job.Title,
			"Status":      string(job.Status),
			"Priority":    string(job.Priority),
			"Progress":    fmt.Sprintf("%d%%", job.Progress),
			"Assigned To": assignee,
			"Due Date":    due,
		})
	}
	return dataset, nil
}

func (s *JobService) resolveNames(ctx context.Context, jobs []models.Job) map[string]string {
	seen := make(map[string]struct{})
	var ids []string
	for i := range jobs {
		if id := jobs[i].AssignedToID; id != nil {
			if _, ok := seen[*id]; !ok {
				seen[*id] = struct{}{}
				ids = append(ids, *id)
			}
		}
	}
	names := make(map[string]string, len(ids))
	users, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		s.logger.Warn("failed to resolve assignee names for export", zap.Error(err))
		return names
	}
	for _, u := range users {
		names[u.ID] = u.Name
	}
	return names
}

func (s *JobService) loadJob(ctx context.Context, id string) (*models.Job, error) {
	job, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "job not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load job")
	}
	return job, nil
}

func (s *JobService) appendTimeline(ctx context.Context, jobID, userID, action string, oldValue, newValue *string) {
	entry := &models.StatusUpdate{
		JobID:    jobID,
		UserID:   userID,
		Action:   action,
		OldValue: oldValue,
		NewValue: newValue,
	}
	if err := s.repo.AppendTimeline(ctx, entry); err != nil {
		s.logger.Warn("failed to append timeline entry",
			zap.String("job_id", jobID),
			zap.String("action", action),
			zap.Error(err))
	}
}

func (s *JobService) actorName(ctx context.Context, actorID string) string {
	user, err := s.users.FindByID(ctx, actorID)
	if err != nil {
		return "Someone"
	}
	return user.Name
}

// touch stamps fresh activity so the inactivity sweep restarts.
func (s *JobService) touch(job *models.Job) {
	now := time.Now().UTC()
	job.LastActivityAt = &now
	job.LastReminderSentAt = nil
	job.ReminderSnoozedTo = nil
}

func isParty(job *models.Job, userID string) bool {
	for _, id := range job.Parties() {
		if id == userID {
			return true
		}
	}
	return false
}

func sameID(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func strPtr(s string) *string { return &s }
