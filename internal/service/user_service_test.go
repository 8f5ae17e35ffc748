package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nabeelato/job-tracker-app-sub001/internal/models"
	appErrors "github.com/Nabeelato/job-tracker-app-sub001/pkg/errors"
)

type mockUserAdminRepo struct {
	users  map[string]*models.User
	audits []*models.AuditLog
}

func newMockUserAdminRepo(users ...*models.User) *mockUserAdminRepo {
	m := &mockUserAdminRepo{users: make(map[string]*models.User)}
	for _, u := range users {
		m.users[u.ID] = u
	}
	return m
}

func (m *mockUserAdminRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	clone := *u
	return &clone, nil
}

func (m *mockUserAdminRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockUserAdminRepo) List(ctx context.Context, filter models.UserFilter) ([]models.User, int, error) {
	var out []models.User
	for _, u := range m.users {
		out = append(out, *u)
	}
	return out, len(out), nil
}

func (m *mockUserAdminRepo) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = "user-" + user.Email
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockUserAdminRepo) Update(ctx context.Context, user *models.User) error {
	m.users[user.ID] = user
	return nil
}

func (m *mockUserAdminRepo) Delete(ctx context.Context, id string) error {
	if u, ok := m.users[id]; ok {
		u.Active = false
	}
	return nil
}

func (m *mockUserAdminRepo) Stats(ctx context.Context, userID string) (*models.UserStats, error) {
	return &models.UserStats{}, nil
}

func (m *mockUserAdminRepo) RecordAudit(ctx context.Context, entry *models.AuditLog) error {
	m.audits = append(m.audits, entry)
	return nil
}

func TestUserUpdateSelfRenameAllowed(t *testing.T) {
	repo := newMockUserAdminRepo(&models.User{ID: "u1", Email: "sam@firm.co.uk", Name: "Sam", Role: models.RoleStaff, Active: true})
	svc := NewUserService(repo, nil, nil)

	name := "Samantha"
	user, err := svc.Update(context.Background(), Actor{ID: "u1", Role: models.RoleStaff}, "u1", UpdateUserRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Samantha", user.Name)
	assert.Equal(t, models.RoleStaff, user.Role)
}

func TestUserUpdateSelfCannotEscalate(t *testing.T) {
	repo := newMockUserAdminRepo(&models.User{ID: "u1", Email: "sam@firm.co.uk", Name: "Sam", Role: models.RoleStaff, Active: true})
	svc := NewUserService(repo, nil, nil)

	admin := models.RoleAdmin
	_, err := svc.Update(context.Background(), Actor{ID: "u1", Role: models.RoleStaff}, "u1", UpdateUserRequest{Role: &admin})
	assertAppError(t, err, appErrors.ErrForbidden)

	active := false
	_, err = svc.Update(context.Background(), Actor{ID: "u1", Role: models.RoleStaff}, "u1", UpdateUserRequest{Active: &active})
	assertAppError(t, err, appErrors.ErrForbidden)

	assert.Equal(t, models.RoleStaff, repo.users["u1"].Role)
	assert.True(t, repo.users["u1"].Active)
}

func TestUserUpdateOtherAccountsRequireAdmin(t *testing.T) {
	repo := newMockUserAdminRepo(
		&models.User{ID: "u1", Email: "sam@firm.co.uk", Name: "Sam", Role: models.RoleStaff, Active: true},
		&models.User{ID: "u2", Email: "maya@firm.co.uk", Name: "Maya", Role: models.RoleManager, Active: true},
	)
	svc := NewUserService(repo, nil, nil)

	name := "Renamed"
	_, err := svc.Update(context.Background(), Actor{ID: "u2", Role: models.RoleManager}, "u1", UpdateUserRequest{Name: &name})
	assertAppError(t, err, appErrors.ErrForbidden)

	role := models.RoleSupervisor
	user, err := svc.Update(context.Background(), Actor{ID: "adm", Role: models.RoleAdmin}, "u1", UpdateUserRequest{Role: &role})
	require.NoError(t, err)
	assert.Equal(t, models.RoleSupervisor, user.Role)
	require.Len(t, repo.audits, 1)
	assert.Equal(t, models.AuditActionUserUpdate, repo.audits[0].Action)
}
