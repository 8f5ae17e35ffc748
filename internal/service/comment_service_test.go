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

type mockCommentRepo struct {
	comments []*models.Comment
}

func (m *mockCommentRepo) Create(ctx context.Context, comment *models.Comment) error {
	if comment.ID == "" {
		comment.ID = "c1"
	}
	m.comments = append(m.comments, comment)
	return nil
}

func (m *mockCommentRepo) ListByJob(ctx context.Context, jobID string) ([]models.Comment, error) {
	var out []models.Comment
	for _, c := range m.comments {
		if c.JobID == jobID {
			out = append(out, *c)
		}
	}
	return out, nil
}

type mockCommentJobRepo struct {
	job      *models.Job
	touched  bool
	timeline []*models.StatusUpdate
}

func (m *mockCommentJobRepo) FindByID(ctx context.Context, id string) (*models.Job, error) {
	if m.job == nil || m.job.ID != id {
		return nil, sql.ErrNoRows
	}
	return m.job, nil
}

func (m *mockCommentJobRepo) TouchActivity(ctx context.Context, id string, ts time.Time) error {
	m.touched = true
	return nil
}

func (m *mockCommentJobRepo) AppendTimeline(ctx context.Context, entry *models.StatusUpdate) error {
	m.timeline = append(m.timeline, entry)
	return nil
}

func TestCommentAddFansOutWithMentions(t *testing.T) {
	staff, sup, mgr := "staff", "sup", "mgr"
	jobs := &mockCommentJobRepo{job: &models.Job{
		ID:           "j1",
		Reference:    "JOB-1",
		AssignedToID: &staff,
		SupervisorID: &sup,
		ManagerID:    &mgr,
	}}
	repo := &mockCommentRepo{}
	notifier := &mockNotifier{}
	users := &mockUserRepo{users: map[string]*models.User{
		"staff": {ID: "staff", Name: "Sam", Role: models.RoleStaff},
	}}
	svc := NewCommentService(repo, jobs, users, notifier, nil, nil)

	comment, err := svc.Add(context.Background(), Actor{ID: "staff", Role: models.RoleStaff}, "j1",
		models.AddCommentRequest{Content: "ready for review @[Maya](mgr)"})
	require.NoError(t, err)
	require.Len(t, repo.comments, 1)

	assert.True(t, jobs.touched, "comment counts as job activity")
	require.Len(t, jobs.timeline, 1)
	assert.Equal(t, models.ActionCommentAdded, jobs.timeline[0].Action)

	require.Len(t, notifier.events, 1)
	ev := notifier.events[0]
	assert.Equal(t, models.NotificationCommentAdded, ev.Type)
	assert.Equal(t, []string{"mgr"}, ev.MentionedIDs)
	require.NotNil(t, ev.CommentID)
	assert.Equal(t, comment.ID, *ev.CommentID)
}

func TestCommentAddUnknownJob(t *testing.T) {
	svc := NewCommentService(&mockCommentRepo{}, &mockCommentJobRepo{}, &mockUserRepo{}, &mockNotifier{}, nil, nil)

	_, err := svc.Add(context.Background(), Actor{ID: "staff", Role: models.RoleStaff}, "missing",
		models.AddCommentRequest{Content: "hello"})
	assertAppError(t, err, appErrors.ErrNotFound)
}

func TestCommentListForbiddenForOutsiders(t *testing.T) {
	staff := "staff"
	jobs := &mockCommentJobRepo{job: &models.Job{ID: "j1", AssignedToID: &staff}}
	svc := NewCommentService(&mockCommentRepo{}, jobs, &mockUserRepo{}, &mockNotifier{}, nil, nil)

	_, err := svc.List(context.Background(), Actor{ID: "outsider", Role: models.RoleStaff}, "j1")
	assertAppError(t, err, appErrors.ErrForbidden)

	comments, err := svc.List(context.Background(), Actor{ID: "staff", Role: models.RoleStaff}, "j1")
	require.NoError(t, err)
	assert.Empty(t, comments)
}
