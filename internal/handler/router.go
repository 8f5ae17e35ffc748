package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/Nabeelato/job-tracker-app-sub001/internal/middleware"
	"github.com/Nabeelato/job-tracker-app-sub001/internal/models"
	"github.com/Nabeelato/job-tracker-app-sub001/internal/service"
	"github.com/Nabeelato/job-tracker-app-sub001/pkg/config"
	"github.com/Nabeelato/job-tracker-app-sub001/pkg/logger"
	corsmiddleware "github.com/Nabeelato/job-tracker-app-sub001/pkg/middleware/cors"
	reqidmiddleware "github.com/Nabeelato/job-tracker-app-sub001/pkg/middleware/requestid"
)

// Handlers bundles every HTTP handler the router mounts.
type Handlers struct {
	Auth          *AuthHandler
	Users         *UserHandler
	Jobs          *JobHandler
	Notifications *NotificationHandler
	Tasks         *TaskHandler
	Departments   *DepartmentHandler
	CustomFields  *CustomFieldHandler
	Dashboard     *DashboardHandler
	Reminders     *ReminderHandler
}

// NewRouter builds the gin engine with all routes and middleware mounted.
func NewRouter(cfg *config.Config, logr *zap.Logger, auth *service.AuthService, metrics *service.MetricsService, h Handlers) *gin.Engine {
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	r.POST("/internal/reminders/sweep", h.Reminders.Sweep)

	v1 := r.Group("/api/v1")

	v1.POST("/auth/register", h.Auth.Register)
	v1.POST("/auth/login", h.Auth.Login)
	v1.POST("/auth/refresh", h.Auth.Refresh)

	secured := v1.Group("")
	secured.Use(middleware.JWT(auth))

	secured.POST("/auth/logout", h.Auth.Logout)
	secured.GET("/auth/me", h.Auth.Me)
	secured.PUT("/auth/password", h.Auth.ChangePassword)

	admin := string(models.RoleAdmin)
	manager := string(models.RoleManager)
	supervisor := string(models.RoleSupervisor)

	secured.GET("/users", h.Users.List)
	secured.GET("/users/:id", h.Users.Get)
	secured.GET("/users/:id/stats", h.Users.Stats)
	secured.POST("/users", middleware.RBAC(admin), h.Users.Create)
	secured.PATCH("/users/:id", middleware.RBAC(admin, "SELF"), h.Users.Update)
	secured.DELETE("/users/:id", middleware.RBAC(admin), h.Users.Deactivate)

	secured.GET("/jobs", h.Jobs.List)
	secured.GET("/jobs/export", middleware.RBAC(admin, manager, supervisor), h.Jobs.Export)
	secured.POST("/jobs", middleware.RBAC(admin, manager), h.Jobs.Create)
	secured.POST("/jobs/bulk-delete", middleware.RBAC(admin), h.Jobs.BulkDelete)
	secured.GET("/jobs/:id", h.Jobs.Get)
	secured.PATCH("/jobs/:id", middleware.RBAC(admin, manager, supervisor), h.Jobs.Update)
	secured.PUT("/jobs/:id/status", h.Jobs.UpdateStatus)
	secured.PUT("/jobs/:id/assign", middleware.RBAC(admin, manager, supervisor), h.Jobs.Assign)
	secured.PUT("/jobs/:id/progress", h.Jobs.UpdateProgress)
	secured.POST("/jobs/:id/request-completion", h.Jobs.RequestCompletion)
	secured.POST("/jobs/:id/snooze", h.Jobs.Snooze)
	secured.DELETE("/jobs/:id/snooze", h.Jobs.Unsnooze)
	secured.PUT("/jobs/:id/awaiting-reply", h.Jobs.SetAwaitingReply)
	secured.GET("/jobs/:id/timeline", h.Jobs.Timeline)
	secured.GET("/jobs/:id/comments", h.Jobs.ListComments)
	secured.POST("/jobs/:id/comments", h.Jobs.AddComment)

	secured.GET("/notifications", h.Notifications.List)
	secured.PUT("/notifications/read-all", h.Notifications.MarkAllRead)
	secured.PUT("/notifications/:id/read", h.Notifications.MarkRead)

	secured.GET("/tasks", h.Tasks.List)
	secured.POST("/tasks", h.Tasks.Create)
	secured.GET("/tasks/stats", h.Tasks.Stats)
	secured.PATCH("/tasks/:id", h.Tasks.Update)
	secured.DELETE("/tasks/:id", h.Tasks.Delete)

	secured.GET("/departments", h.Departments.List)
	secured.GET("/departments/:id", h.Departments.Get)
	secured.POST("/departments", middleware.RBAC(admin), h.Departments.Create)
	secured.PUT("/departments/:id", middleware.RBAC(admin), h.Departments.Update)
	secured.DELETE("/departments/:id", middleware.RBAC(admin), h.Departments.Delete)

	secured.GET("/custom-fields", h.CustomFields.List)
	secured.POST("/custom-fields", middleware.RBAC(admin), h.CustomFields.Create)
	secured.PUT("/custom-fields/:id", middleware.RBAC(admin), h.CustomFields.Update)
	secured.DELETE("/custom-fields/:id", middleware.RBAC(admin), h.CustomFields.Delete)
	secured.GET("/column-labels", h.CustomFields.ListColumnLabels)
	secured.PUT("/column-labels", middleware.RBAC(admin), h.CustomFields.SetColumnLabel)
	secured.DELETE("/column-labels/:key", middleware.RBAC(admin), h.CustomFields.ResetColumnLabel)

	secured.GET("/dashboard/stats", h.Dashboard.Stats)

	return r
}
