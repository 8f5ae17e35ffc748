package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Nabeelato/job-tracker-app-sub001/internal/models"
	appErrors "github.com/Nabeelato/job-tracker-app-sub001/pkg/errors"
)

type mockAuthRepo struct {
	usersByEmail  map[string]*models.User
	usersByID     map[string]*models.User
	refreshTokens map[string]*models.RefreshToken
	audits        []*models.AuditLog
}

func newMockAuthRepo(users ...*models.User) *mockAuthRepo {
	m := &mockAuthRepo{
		usersByEmail:  make(map[string]*models.User),
		usersByID:     make(map[string]*models.User),
		refreshTokens: make(map[string]*models.RefreshToken),
	}
	for _, u := range users {
		m.usersByEmail[u.Email] = u
		m.usersByID[u.ID] = u
	}
	return m
}

func (m *mockAuthRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	u, ok := m.usersByEmail[email]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return u, nil
}

func (m *mockAuthRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := m.usersByID[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return u, nil
}

func (m *mockAuthRepo) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = "u-" + user.Email
	}
	m.usersByEmail[user.Email] = user
	m.usersByID[user.ID] = user
	return nil
}

func (m *mockAuthRepo) UpdateLastLogin(ctx context.Context, id string, ts time.Time) error {
	return nil
}

func (m *mockAuthRepo) UpdatePassword(ctx context.Context, id, passwordHash string, updatedAt time.Time) error {
	if u, ok := m.usersByID[id]; ok {
		u.PasswordHash = passwordHash
	}
	return nil
}

func (m *mockAuthRepo) RevokeUserRefreshTokens(ctx context.Context, userID string) error {
	for _, rt := range m.refreshTokens {
		if rt.UserID == userID {
			rt.Revoked = true
		}
	}
	return nil
}

func (m *mockAuthRepo) CreateRefreshToken(ctx context.Context, token *models.RefreshToken) error {
	m.refreshTokens[token.Token] = token
	return nil
}

func (m *mockAuthRepo) FindRefreshToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	rt, ok := m.refreshTokens[token]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return rt, nil
}

func (m *mockAuthRepo) RevokeRefreshToken(ctx context.Context, id string, revokedAt time.Time) error {
	for _, rt := range m.refreshTokens {
		if rt.ID == id {
			rt.Revoked = true
			rt.RevokedAt = &revokedAt
		}
	}
	return nil
}

func (m *mockAuthRepo) RecordAudit(ctx context.Context, entry *models.AuditLog) error {
	m.audits = append(m.audits, entry)
	return nil
}

func testAuthConfig() AuthConfig {
	return AuthConfig{
		AccessTokenSecret:  "test-secret",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: 24 * time.Hour,
		Issuer:             "job-tracker",
	}
}

func seedUser(t *testing.T, role models.UserRole, active bool) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)
	return &models.User{
		ID:           "u1",
		Email:        "sam@firm.co.uk",
		PasswordHash: string(hash),
		Name:         "Sam",
		Role:         role,
		Active:       active,
	}
}

func TestLoginIssuesTokenPair(t *testing.T) {
	repo := newMockAuthRepo(seedUser(t, models.RoleStaff, true))
	svc := NewAuthService(repo, nil, nil, testAuthConfig())

	resp, err := svc.Login(context.Background(), models.LoginRequest{Email: "sam@firm.co.uk", Password: "correct horse"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, models.RoleStaff, resp.User.Role)

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, models.RoleStaff, claims.Role)
}

func TestLoginRejectsBadPasswordAndInactive(t *testing.T) {
	repo := newMockAuthRepo(seedUser(t, models.RoleStaff, true))
	svc := NewAuthService(repo, nil, nil, testAuthConfig())

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "sam@firm.co.uk", Password: "wrong"})
	assertAppError(t, err, appErrors.ErrInvalidCredentials)

	repo = newMockAuthRepo(seedUser(t, models.RoleStaff, false))
	svc = NewAuthService(repo, nil, nil, testAuthConfig())
	_, err = svc.Login(context.Background(), models.LoginRequest{Email: "sam@firm.co.uk", Password: "correct horse"})
	assertAppError(t, err, appErrors.ErrInactiveAccount)
}

func TestRefreshTokenRotates(t *testing.T) {
	repo := newMockAuthRepo(seedUser(t, models.RoleStaff, true))
	svc := NewAuthService(repo, nil, nil, testAuthConfig())

	login, err := svc.Login(context.Background(), models.LoginRequest{Email: "sam@firm.co.uk", Password: "correct horse"})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(context.Background(), models.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)

	// the used token is revoked, a second exchange fails
	_, err = svc.RefreshToken(context.Background(), models.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	assertAppError(t, err, appErrors.ErrUnauthorized)
}

func TestRegisterDefaultsToStaffAndRejectsDuplicates(t *testing.T) {
	repo := newMockAuthRepo()
	svc := NewAuthService(repo, nil, nil, testAuthConfig())

	info, err := svc.Register(context.Background(), models.RegisterRequest{
		Email:    "new@firm.co.uk",
		Password: "longenough",
		Name:     "New Starter",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleStaff, info.Role)

	_, err = svc.Register(context.Background(), models.RegisterRequest{
		Email:    "new@firm.co.uk",
		Password: "longenough",
		Name:     "Duplicate",
	})
	assertAppError(t, err, appErrors.ErrConflict)
}

func TestRegisterIgnoresRoleInPayload(t *testing.T) {
	repo := newMockAuthRepo()
	svc := NewAuthService(repo, nil, nil, testAuthConfig())

	// A request body claiming an elevated role must not survive binding:
	// the public endpoint only ever creates STAFF accounts.
	var req models.RegisterRequest
	body := `{"email":"sneaky@firm.co.uk","password":"longenough","name":"Sneaky","role":"ADMIN"}`
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	info, err := svc.Register(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, models.RoleStaff, info.Role)

	stored, err := repo.FindByEmail(context.Background(), "sneaky@firm.co.uk")
	require.NoError(t, err)
	assert.Equal(t, models.RoleStaff, stored.Role)
}
