package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	internalmiddleware "github.com/Nabeelato/job-tracker-app-sub001/internal/middleware"
	"github.com/Nabeelato/job-tracker-app-sub001/internal/models"
	"github.com/Nabeelato/job-tracker-app-sub001/internal/service"
	"github.com/Nabeelato/job-tracker-app-sub001/internal/workflow"
)

func performRequest(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func buildRBACRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		if role := c.GetHeader("X-Test-Role"); role != "" {
			c.Set(internalmiddleware.ContextUserKey, &models.JWTClaims{
				UserID: c.GetHeader("X-Test-User"),
				Role:   models.UserRole(role),
			})
		}
		c.Next()
	})

	ok := func(c *gin.Context) { c.Status(http.StatusOK) }

	secured := router.Group("")
	secured.POST("/jobs", internalmiddleware.RBAC(string(models.RoleAdmin), string(models.RoleManager)), ok)
	secured.POST("/jobs/bulk-delete", internalmiddleware.RBAC(string(models.RoleAdmin)), ok)
	secured.PATCH("/users/:id", internalmiddleware.RBAC(string(models.RoleAdmin), "SELF"), ok)

	return router
}

func TestRBACRoutes(t *testing.T) {
	router := buildRBACRouter()

	t.Run("staff cannot create jobs", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodPost, "/jobs", nil)
		req.Header.Set("X-Test-Role", string(models.RoleStaff))
		resp := performRequest(router, req)
		require.Equal(t, http.StatusForbidden, resp.Code)
	})

	t.Run("manager can create jobs", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodPost, "/jobs", nil)
		req.Header.Set("X-Test-Role", string(models.RoleManager))
		resp := performRequest(router, req)
		require.Equal(t, http.StatusOK, resp.Code)
	})

	t.Run("bulk delete is admin only", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodPost, "/jobs/bulk-delete", nil)
		req.Header.Set("X-Test-Role", string(models.RoleManager))
		resp := performRequest(router, req)
		require.Equal(t, http.StatusForbidden, resp.Code)
	})

	t.Run("missing session is unauthorized", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodPost, "/jobs", nil)
		resp := performRequest(router, req)
		require.Equal(t, http.StatusUnauthorized, resp.Code)
	})

	t.Run("self pseudo role matches own id", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodPatch, "/users/u-staff", nil)
		req.Header.Set("X-Test-Role", string(models.RoleStaff))
		req.Header.Set("X-Test-User", "u-staff")
		resp := performRequest(router, req)
		require.Equal(t, http.StatusOK, resp.Code)
	})

	t.Run("self pseudo role rejects other ids", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodPatch, "/users/u-other", nil)
		req.Header.Set("X-Test-Role", string(models.RoleStaff))
		req.Header.Set("X-Test-User", "u-staff")
		resp := performRequest(router, req)
		require.Equal(t, http.StatusForbidden, resp.Code)
	})
}

type sweepJobRepoStub struct{}

func (sweepJobRepoStub) ListActive(ctx context.Context) ([]models.Job, error) {
	return nil, nil
}

func (sweepJobRepoStub) MarkReminded(ctx context.Context, id string, ts time.Time) error {
	return nil
}

type sweepUserRepoStub struct{}

func (sweepUserRepoStub) List(ctx context.Context, filter models.UserFilter) ([]models.User, int, error) {
	return nil, 0, nil
}

type sweepNotifierStub struct{}

func (sweepNotifierStub) NotifyUser(ctx context.Context, n *models.Notification) {}

func TestReminderSweepSecret(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := service.NewReminderService(sweepJobRepoStub{}, sweepUserRepoStub{}, sweepNotifierStub{}, workflow.DefaultCalendar, zap.NewNop())
	h := NewReminderHandler(svc, "sweep-secret")

	router := gin.New()
	router.POST("/internal/reminders/sweep", h.Sweep)

	t.Run("wrong secret is rejected", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodPost, "/internal/reminders/sweep", nil)
		req.Header.Set("X-Sweep-Secret", "nope")
		resp := performRequest(router, req)
		require.Equal(t, http.StatusUnauthorized, resp.Code)
	})

	t.Run("missing secret is rejected", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodPost, "/internal/reminders/sweep", nil)
		resp := performRequest(router, req)
		require.Equal(t, http.StatusUnauthorized, resp.Code)
	})

	t.Run("correct secret runs the sweep", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodPost, "/internal/reminders/sweep", nil)
		req.Header.Set("X-Sweep-Secret", "sweep-secret")
		resp := performRequest(router, req)
		require.Equal(t, http.StatusOK, resp.Code)
	})

	t.Run("empty configured secret disables the endpoint", func(t *testing.T) {
		disabled := NewReminderHandler(svc, "")
		r := gin.New()
		r.POST("/internal/reminders/sweep", disabled.Sweep)
		req, _ := http.NewRequest(http.MethodPost, "/internal/reminders/sweep", nil)
		resp := performRequest(r, req)
		require.Equal(t, http.StatusUnauthorized, resp.Code)
	})
}
