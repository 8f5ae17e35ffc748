package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nabeelato/job-tracker-app-sub001/internal/models"
)

func TestJobCreateAssignsIDAndActivity(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewJobRepository(db)

	mock.ExpectExec("INSERT INTO jobs").WillReturnResult(sqlmock.NewResult(1, 1))

	job := &models.Job{
		Reference:  "JOB-0001",
		ClientName: "Acme Ltd",
		Title:      "Year end accounts",
		Status:     models.StatusRFISent,
		Priority:   models.PriorityNormal,
	}
	err := repo.Create(context.Background(), job)
	require.NoError(t, err)
	assert.NotEmpty(t, job.ID)
	assert.NotNil(t, job.LastActivityAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJobBulkDeleteRunsInOneTransaction(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewJobRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM notifications WHERE job_id IN").WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("DELETE FROM comments WHERE job_id IN").WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("DELETE FROM status_updates WHERE job_id IN").WillReturnResult(sqlmock.NewResult(0, 5))
	mock.ExpectExec("DELETE FROM jobs WHERE id IN").WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	err := repo.BulkDelete(context.Background(), []string{"j1", "j2"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJobBulkDeleteNoIDsIsNoop(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewJobRepository(db)

	require.NoError(t, repo.BulkDelete(context.Background(), nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJobTimelineOrdered(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewJobRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "job_id", "user_id", "action", "old_value", "new_value", "timestamp"}).
		AddRow("s1", "j1", "u1", models.ActionJobCreated, nil, nil, now.Add(-time.Hour)).
		AddRow("s2", "j1", "u1", models.ActionStatusChanged, "RFI_EMAIL_TO_CLIENT_SENT", "INFO_SENT_TO_LAHORE_JOB_STARTED", now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, job_id, user_id, action, old_value, new_value, timestamp FROM status_updates WHERE job_id = $1 ORDER BY timestamp ASC")).
		WithArgs("j1").
		WillReturnRows(rows)

	entries, err := repo.Timeline(context.Background(), "j1")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, models.ActionJobCreated, entries[0].Action)
	assert.Equal(t, models.ActionStatusChanged, entries[1].Action)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJobTouchActivityClearsReminder(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewJobRepository(db)

	ts := time.Now().UTC()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE jobs SET last_activity_at = $2, last_reminder_sent_at = NULL, updated_at = $2 WHERE id = $1")).
		WithArgs("j1", ts).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.TouchActivity(context.Background(), "j1", ts))
	assert.NoError(t, mock.ExpectationsWereMet())
}
