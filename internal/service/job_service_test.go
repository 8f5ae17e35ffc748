package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nabeelato/job-tracker-app-sub001/internal/models"
	appErrors "github.com/Nabeelato/job-tracker-app-sub001/pkg/errors"
)

type mockJobRepo struct {
	jobs     map[string]*models.Job
	timeline []*models.StatusUpdate
	deleted  []string
}

func newMockJobRepo(jobs ...*models.Job) *mockJobRepo {
	m := &mockJobRepo{jobs: make(map[string]*models.Job)}
	for _, j := range jobs {
		m.jobs[j.ID] = j
	}
	return m
}

func (m *mockJobRepo) FindByID(ctx context.Context, id string) (*models.Job, error) {
	job, ok := m.jobs[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	clone := *job
	return &clone, nil
}

func (m *mockJobRepo) List(ctx context.Context, filter models.JobFilter) ([]models.Job, int, error) {
	var out []models.Job
	for _, j := range m.jobs {
		if filter.AssignedToID != nil && !sameID(j.AssignedToID, filter.AssignedToID) {
			continue
		}
		if filter.SupervisorID != nil && !sameID(j.SupervisorID, filter.SupervisorID) {
			continue
		}
		out = append(out, *j)
	}
	return out, len(out), nil
}

func (m *mockJobRepo) Create(ctx context.Context, job *models.Job) error {
	if job.ID == "" {
		job.ID = "job-" + job.Reference
	}
	m.jobs[job.ID] = job
	return nil
}

func (m *mockJobRepo) Update(ctx context.Context, job *models.Job) error {
	m.jobs[job.ID] = job
	return nil
}

func (m *mockJobRepo) BulkDelete(ctx context.Context, ids []string) error {
	m.deleted = append(m.deleted, ids...)
	for _, id := range ids {
		delete(m.jobs, id)
	}
	return nil
}

func (m *mockJobRepo) AppendTimeline(ctx context.Context, entry *models.StatusUpdate) error {
	m.timeline = append(m.timeline, entry)
	return nil
}

func (m *mockJobRepo) Timeline(ctx context.Context, jobID string) ([]models.StatusUpdate, error) {
	var out []models.StatusUpdate
	for _, e := range m.timeline {
		if e.JobID == jobID {
			out = append(out, *e)
		}
	}
	return out, nil
}

type mockUserRepo struct {
	users  map[string]*models.User
	audits []*models.AuditLog
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return u, nil
}

func (m *mockUserRepo) FindByIDs(ctx context.Context, ids []string) ([]models.User, error) {
	var out []models.User
	for _, id := range ids {
		if u, ok := m.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (m *mockUserRepo) RecordAudit(ctx context.Context, entry *models.AuditLog) error {
	m.audits = append(m.audits, entry)
	return nil
}

type mockNotifier struct {
	events []JobEvent
}

func (m *mockNotifier) PublishJobEvent(ctx context.Context, ev JobEvent) {
	m.events = append(m.events, ev)
}

func newJobService(repo *mockJobRepo, users *mockUserRepo, notifier *mockNotifier) *JobService {
	if users == nil {
		users = &mockUserRepo{users: map[string]*models.User{
			"mgr":   {ID: "mgr", Name: "Maya", Role: models.RoleManager},
			"sup":   {ID: "sup", Name: "Safa", Role: models.RoleSupervisor},
			"staff": {ID: "staff", Name: "Sam", Role: models.RoleStaff},
		}}
	}
	return NewJobService(repo, users, notifier, nil, nil, 24, func(time.Time) bool { return true })
}

func assertAppError(t *testing.T, err error, want *appErrors.Error) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, want.Code, appErrors.FromError(err).Code)
}

func TestJobCreateRequiresManagerOrAdmin(t *testing.T) {
	svc := newJobService(newMockJobRepo(), nil, &mockNotifier{})

	_, err := svc.Create(context.Background(), Actor{ID: "staff", Role: models.RoleStaff}, models.CreateJobRequest{
		ClientName: "Acme Ltd",
		Title:      "VAT return",
	})
	assertAppError(t, err, appErrors.ErrForbidden)
}

func TestJobCreateStartsPipelineAndNotifiesSupervisor(t *testing.T) {
	repo := newMockJobRepo()
	notifier := &mockNotifier{}
	svc := newJobService(repo, nil, notifier)

	job, err := svc.Create(context.Background(), Actor{ID: "mgr", Role: models.RoleManager}, models.CreateJobRequest{
		ClientName:   "Acme Ltd",
		Title:        "VAT return",
		SupervisorID: "sup",
	})
	require.NoError(t, err)

	assert.Equal(t, models.StatusRFISent, job.Status)
	assert.Equal(t, models.PriorityNormal, job.Priority)
	assert.NotEmpty(t, job.Reference)

	// The supervisor holds the job until they hand it to staff, and the
	// creating manager becomes the manager of record.
	require.NotNil(t, job.AssignedToID)
	assert.Equal(t, "sup", *job.AssignedToID)
	require.NotNil(t, job.ManagerID)
	assert.Equal(t, "mgr", *job.ManagerID)

	require.Len(t, repo.timeline, 1)
	assert.Equal(t, models.ActionJobCreated, repo.timeline[0].Action)
	require.Len(t, notifier.events, 1)
	assert.Equal(t, models.NotificationJobAssigned, notifier.events[0].Type)
}

func TestJobCreateValidatesSupervisorAndManagerRoles(t *testing.T) {
	svc := newJobService(newMockJobRepo(), nil, &mockNotifier{})

	// Supervisor must hold the SUPERVISOR role.
	_, err := svc.Create(context.Background(), Actor{ID: "mgr", Role: models.RoleManager}, models.CreateJobRequest{
		ClientName:   "Acme Ltd",
		Title:        "VAT return",
		SupervisorID: "staff",
	})
	assertAppError(t, err, appErrors.ErrValidation)

	// An admin must name a manager.
	_, err = svc.Create(context.Background(), Actor{ID: "adm", Role: models.RoleAdmin}, models.CreateJobRequest{
		ClientName:   "Acme Ltd",
		Title:        "VAT return",
		SupervisorID: "sup",
	})
	assertAppError(t, err, appErrors.ErrValidation)

	// The named manager must hold the MANAGER role.
	staff := "staff"
	_, err = svc.Create(context.Background(), Actor{ID: "adm", Role: models.RoleAdmin}, models.CreateJobRequest{
		ClientName:   "Acme Ltd",
		Title:        "VAT return",
		SupervisorID: "sup",
		ManagerID:    &staff,
	})
	assertAppError(t, err, appErrors.ErrValidation)

	// A valid manager choice goes through.
	mgr := "mgr"
	job, err := svc.Create(context.Background(), Actor{ID: "adm", Role: models.RoleAdmin}, models.CreateJobRequest{
		ClientName:   "Acme Ltd",
		Title:        "VAT return",
		SupervisorID: "sup",
		ManagerID:    &mgr,
	})
	require.NoError(t, err)
	require.NotNil(t, job.ManagerID)
	assert.Equal(t, "mgr", *job.ManagerID)
}

func TestJobUpdateStatusEnforcesTransitionTable(t *testing.T) {
	repo := newMockJobRepo(&models.Job{ID: "j1", Reference: "JOB-1", Status: models.StatusRFISent})
	svc := newJobService(repo, nil, &mockNotifier{})

	_, err := svc.UpdateStatus(context.Background(), Actor{ID: "mgr", Role: models.RoleManager}, "j1",
		models.UpdateStatusRequest{Status: models.StatusForReview})
	assertAppError(t, err, appErrors.ErrInvalidTransition)

	job, err := svc.UpdateStatus(context.Background(), Actor{ID: "mgr", Role: models.RoleManager}, "j1",
		models.UpdateStatusRequest{Status: models.StatusInfoSentJobStarted})
	require.NoError(t, err)
	assert.Equal(t, models.StatusInfoSentJobStarted, job.Status)
	assert.NotNil(t, job.StartedAt)
}

func TestJobCompletionGateExcludesAdmin(t *testing.T) {
	mk := func() *mockJobRepo {
		return newMockJobRepo(&models.Job{ID: "j1", Reference: "JOB-1", Status: models.StatusForReview})
	}

	svc := newJobService(mk(), nil, &mockNotifier{})
	_, err := svc.UpdateStatus(context.Background(), Actor{ID: "admin", Role: models.RoleAdmin}, "j1",
		models.UpdateStatusRequest{Status: models.StatusCompleted})
	assertAppError(t, err, appErrors.ErrInvalidTransition)

	svc = newJobService(mk(), nil, &mockNotifier{})
	job, err := svc.UpdateStatus(context.Background(), Actor{ID: "mgr", Role: models.RoleManager}, "j1",
		models.UpdateStatusRequest{Status: models.StatusCompleted})
	require.NoError(t, err)
	assert.Equal(t, 100, job.Progress)
	assert.NotNil(t, job.CompletedAt)
}

func TestJobCancelRequiresManagerOrAdmin(t *testing.T) {
	repo := newMockJobRepo(&models.Job{ID: "j1", Reference: "JOB-1", Status: models.StatusRFISent})
	svc := newJobService(repo, nil, &mockNotifier{})

	_, err := svc.UpdateStatus(context.Background(), Actor{ID: "staff", Role: models.RoleStaff}, "j1",
		models.UpdateStatusRequest{Status: models.StatusCancelled})
	assertAppError(t, err, appErrors.ErrForbidden)
}

func TestJobProgressMilestonesNotifyOncePerCrossing(t *testing.T) {
	staff := "staff"
	repo := newMockJobRepo(&models.Job{ID: "j1", Reference: "JOB-1", Status: models.StatusInfoSentJobStarted, Progress: 40, AssignedToID: &staff})
	notifier := &mockNotifier{}
	svc := newJobService(repo, nil, notifier)
	actor := Actor{ID: "mgr", Role: models.RoleManager}

	_, err := svc.UpdateProgress(context.Background(), actor, "j1", models.UpdateProgressRequest{Progress: 60})
	require.NoError(t, err)
	require.Len(t, notifier.events, 1)
	assert.Equal(t, models.NotificationProgressUpdate, notifier.events[0].Type)

	_, err = svc.UpdateProgress(context.Background(), actor, "j1", models.UpdateProgressRequest{Progress: 80})
	require.NoError(t, err)
	assert.Len(t, notifier.events, 1, "no milestone crossed between 60 and 80")

	_, err = svc.UpdateProgress(context.Background(), actor, "j1", models.UpdateProgressRequest{Progress: 100})
	require.NoError(t, err)
	assert.Len(t, notifier.events, 2)
}

func TestJobSnoozeUsesBusinessCalendar(t *testing.T) {
	staff := "staff"
	repo := newMockJobRepo(&models.Job{ID: "j1", Reference: "JOB-1", Status: models.StatusRFISent, AssignedToID: &staff})
	svc := newJobService(repo, nil, &mockNotifier{})

	before := time.Now().UTC()
	job, err := svc.Snooze(context.Background(), Actor{ID: "staff", Role: models.RoleStaff}, "j1")
	require.NoError(t, err)
	require.NotNil(t, job.ReminderSnoozedTo)

	// all-hours calendar in the test service: exactly 24h out
	assert.WithinDuration(t, before.Add(24*time.Hour), *job.ReminderSnoozedTo, 5*time.Second)
}

func TestJobListScopesStaffToTheirAssignments(t *testing.T) {
	staff := "staff"
	other := "other"
	repo := newMockJobRepo(
		&models.Job{ID: "j1", Status: models.StatusRFISent, AssignedToID: &staff},
		&models.Job{ID: "j2", Status: models.StatusRFISent, AssignedToID: &other},
	)
	svc := newJobService(repo, nil, &mockNotifier{})

	jobs, total, err := svc.List(context.Background(), Actor{ID: "staff", Role: models.RoleStaff}, models.JobFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, jobs, 1)
	assert.Equal(t, "j1", jobs[0].ID)
}

func TestJobListScopesSupervisorsToTheirJobs(t *testing.T) {
	mine := "sup-1"
	theirs := "sup-2"
	repo := newMockJobRepo(
		&models.Job{ID: "j1", Status: models.StatusRFISent, SupervisorID: &mine},
		&models.Job{ID: "j2", Status: models.StatusRFISent, SupervisorID: &theirs},
		&models.Job{ID: "j3", Status: models.StatusRFISent, SupervisorID: &theirs},
	)
	svc := newJobService(repo, nil, &mockNotifier{})

	jobs, total, err := svc.List(context.Background(), Actor{ID: "sup-1", Role: models.RoleSupervisor}, models.JobFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, jobs, 1)
	assert.Equal(t, "j1", jobs[0].ID)

	// Managers stay unscoped.
	_, total, err = svc.List(context.Background(), Actor{ID: "mgr", Role: models.RoleManager}, models.JobFilter{})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
}

func TestJobBulkDeleteAdminOnlyAndAudited(t *testing.T) {
	repo := newMockJobRepo(&models.Job{ID: "j1", Status: models.StatusRFISent})
	users := &mockUserRepo{users: map[string]*models.User{}}
	svc := newJobService(repo, users, &mockNotifier{})

	err := svc.BulkDelete(context.Background(), Actor{ID: "mgr", Role: models.RoleManager}, models.BulkDeleteRequest{IDs: []string{"j1"}})
	assertAppError(t, err, appErrors.ErrForbidden)

	err = svc.BulkDelete(context.Background(), Actor{ID: "adm", Role: models.RoleAdmin}, models.BulkDeleteRequest{IDs: []string{"j1"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"j1"}, repo.deleted)
	require.Len(t, users.audits, 1)
	assert.Equal(t, models.AuditActionJobBulkDelete, users.audits[0].Action)
}

func TestJobSetAwaitingReplyRecordsTimeline(t *testing.T) {
	staff := "staff"
	repo := newMockJobRepo(&models.Job{ID: "j1", Status: models.StatusRFISent, AssignedToID: &staff})
	svc := newJobService(repo, nil, &mockNotifier{})
	actor := Actor{ID: "staff", Role: models.RoleStaff}

	job, err := svc.SetAwaitingReply(context.Background(), actor, "j1", true)
	require.NoError(t, err)
	assert.True(t, job.AwaitingReply)

	job, err = svc.SetAwaitingReply(context.Background(), actor, "j1", false)
	require.NoError(t, err)
	assert.False(t, job.AwaitingReply)

	require.Len(t, repo.timeline, 2)
	assert.Equal(t, models.ActionAwaitingClientReply, repo.timeline[0].Action)
	assert.Equal(t, models.ActionClientReplyReceived, repo.timeline[1].Action)
}

func TestJobRequestCompletionAdvancesToReadyToProceed(t *testing.T) {
	staff := "staff"
	repo := newMockJobRepo(&models.Job{ID: "j1", Reference: "JOB-1", Status: models.StatusInfoSentJobStarted, AssignedToID: &staff})
	notifier := &mockNotifier{}
	svc := newJobService(repo, nil, notifier)

	job, err := svc.RequestCompletion(context.Background(), Actor{ID: "staff", Role: models.RoleStaff}, "j1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusReadyToProceed, job.Status)

	require.Len(t, repo.timeline, 1)
	assert.Equal(t, models.ActionCompletionRequested, repo.timeline[0].Action)
	require.Len(t, notifier.events, 1)
	assert.Equal(t, models.NotificationStatusChanged, notifier.events[0].Type)

	// A job already under review stays put.
	repo.jobs["j2"] = &models.Job{ID: "j2", Reference: "JOB-2", Status: models.StatusForReview, AssignedToID: &staff}
	job, err = svc.RequestCompletion(context.Background(), Actor{ID: "staff", Role: models.RoleStaff}, "j2")
	require.NoError(t, err)
	assert.Equal(t, models.StatusForReview, job.Status)
}

func TestJobUnsnoozeClearsWindow(t *testing.T) {
	staff := "staff"
	until := time.Now().UTC().Add(10 * time.Hour)
	repo := newMockJobRepo(&models.Job{ID: "j1", Reference: "JOB-1", Status: models.StatusRFISent, AssignedToID: &staff, ReminderSnoozedTo: &until})
	svc := newJobService(repo, nil, &mockNotifier{})

	job, err := svc.Unsnooze(context.Background(), Actor{ID: "staff", Role: models.RoleStaff}, "j1")
	require.NoError(t, err)
	assert.Nil(t, job.ReminderSnoozedTo)

	require.Len(t, repo.timeline, 1)
	assert.Equal(t, models.ActionSnoozed, repo.timeline[0].Action)
	assert.Nil(t, repo.timeline[0].NewValue)
	require.NotNil(t, repo.timeline[0].OldValue)
}

func TestJobAssignSupervisorScopedToOwnJobs(t *testing.T) {
	mine := "sup"
	other := "sup-2"
	staff := "staff"
	repo := newMockJobRepo(
		&models.Job{ID: "j1", Reference: "JOB-1", Status: models.StatusRFISent, SupervisorID: &mine},
		&models.Job{ID: "j2", Reference: "JOB-2", Status: models.StatusRFISent, SupervisorID: &other},
	)
	svc := newJobService(repo, nil, &mockNotifier{})
	supervisor := Actor{ID: "sup", Role: models.RoleSupervisor}

	// Not the supervisor of j2.
	_, err := svc.Assign(context.Background(), supervisor, "j2", models.AssignJobRequest{AssignedToID: &staff})
	assertAppError(t, err, appErrors.ErrForbidden)

	// Their own job is fine.
	job, err := svc.Assign(context.Background(), supervisor, "j1", models.AssignJobRequest{AssignedToID: &staff})
	require.NoError(t, err)
	require.NotNil(t, job.AssignedToID)
	assert.Equal(t, "staff", *job.AssignedToID)
}

func TestJobAssignSupervisorCannotMoveSupervisorOrManager(t *testing.T) {
	mine := "sup"
	repo := newMockJobRepo(&models.Job{ID: "j1", Reference: "JOB-1", Status: models.StatusRFISent, SupervisorID: &mine})
	svc := newJobService(repo, nil, &mockNotifier{})

	mgr := "mgr"
	_, err := svc.Assign(context.Background(), Actor{ID: "sup", Role: models.RoleSupervisor}, "j1",
		models.AssignJobRequest{ManagerID: &mgr})
	assertAppError(t, err, appErrors.ErrForbidden)

	// A manager may move both slots.
	sup2 := "sup"
	job, err := svc.Assign(context.Background(), Actor{ID: "mgr", Role: models.RoleManager}, "j1",
		models.AssignJobRequest{ManagerID: &mgr, SupervisorID: &sup2})
	require.NoError(t, err)
	require.NotNil(t, job.ManagerID)
	assert.Equal(t, "mgr", *job.ManagerID)
}

func TestJobAssignValidatesStaffRole(t *testing.T) {
	repo := newMockJobRepo(&models.Job{ID: "j1", Reference: "JOB-1", Status: models.StatusRFISent})
	svc := newJobService(repo, nil, &mockNotifier{})

	// A supervisor cannot be placed in the staff slot.
	sup := "sup"
	_, err := svc.Assign(context.Background(), Actor{ID: "mgr", Role: models.RoleManager}, "j1",
		models.AssignJobRequest{AssignedToID: &sup})
	assertAppError(t, err, appErrors.ErrValidation)

	// Unknown users are rejected too.
	ghost := "ghost"
	_, err = svc.Assign(context.Background(), Actor{ID: "mgr", Role: models.RoleManager}, "j1",
		models.AssignJobRequest{AssignedToID: &ghost})
	assertAppError(t, err, appErrors.ErrValidation)
}
