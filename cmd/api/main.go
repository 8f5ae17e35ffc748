package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	_ "github.com/Nabeelato/job-tracker-app-sub001/api/swagger"
	"github.com/Nabeelato/job-tracker-app-sub001/internal/handler"
	"github.com/Nabeelato/job-tracker-app-sub001/internal/repository"
	"github.com/Nabeelato/job-tracker-app-sub001/internal/service"
	"github.com/Nabeelato/job-tracker-app-sub001/internal/workflow"
	"github.com/Nabeelato/job-tracker-app-sub001/pkg/cache"
	"github.com/Nabeelato/job-tracker-app-sub001/pkg/config"
	"github.com/Nabeelato/job-tracker-app-sub001/pkg/database"
	"github.com/Nabeelato/job-tracker-app-sub001/pkg/logger"
	"github.com/Nabeelato/job-tracker-app-sub001/pkg/worker"
)

// @title Job Tracker API
// @version 1.0.0
// @description Job pipeline tracking for accounting teams
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		// Dashboard caching degrades gracefully without redis.
		logr.Sugar().Warnw("redis unavailable, continuing without cache", "error", err)
		redisClient = nil
	}

	validate := validator.New()

	userRepo := repository.NewUserRepository(db)
	jobRepo := repository.NewJobRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	departmentRepo := repository.NewDepartmentRepository(db)
	customFieldRepo := repository.NewCustomFieldRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	metricsSvc := service.NewMetricsService()

	notificationSvc := service.NewNotificationService(notificationRepo, logr, worker.QueueConfig{
		Workers:    cfg.Notifications.Workers,
		BufferSize: cfg.Notifications.BufferSize,
		MaxRetries: cfg.Notifications.MaxRetries,
		RetryDelay: cfg.Notifications.RetryDelay,
		Logger:     logr,
	})

	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		AccessTokenSecret:  cfg.JWT.Secret,
		AccessTokenExpiry:  cfg.JWT.Expiration,
		RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
		Issuer:             "job-tracker",
		Audience:           []string{"job-tracker-api"},
	})
	userSvc := service.NewUserService(userRepo, validate, logr)
	jobSvc := service.NewJobService(jobRepo, userRepo, notificationSvc, validate, logr,
		cfg.Reminders.SnoozeBusinessHours, workflow.DefaultCalendar)
	commentSvc := service.NewCommentService(commentRepo, jobRepo, userRepo, notificationSvc, validate, logr)
	taskSvc := service.NewTaskService(taskRepo, validate, logr)
	departmentSvc := service.NewDepartmentService(departmentRepo, userRepo, validate, logr)
	customFieldSvc := service.NewCustomFieldService(customFieldRepo, userRepo, validate, logr)
	dashboardSvc := service.NewDashboardService(jobRepo, cacheRepo, cfg.Dashboard.CacheTTL, logr)
	reminderSvc := service.NewReminderService(jobRepo, userRepo, notificationSvc, workflow.DefaultCalendar, logr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	notificationSvc.Start(ctx)
	defer notificationSvc.Stop()

	if cfg.Reminders.Enabled {
		go runSweepLoop(ctx, reminderSvc, cfg.Reminders.SweepInterval, logr)
	}

	handlers := handler.Handlers{
		Auth:          handler.NewAuthHandler(authSvc, userSvc),
		Users:         handler.NewUserHandler(userSvc),
		Jobs:          handler.NewJobHandler(jobSvc, commentSvc),
		Notifications: handler.NewNotificationHandler(notificationSvc),
		Tasks:         handler.NewTaskHandler(taskSvc),
		Departments:   handler.NewDepartmentHandler(departmentSvc),
		CustomFields:  handler.NewCustomFieldHandler(customFieldSvc),
		Dashboard:     handler.NewDashboardHandler(dashboardSvc),
		Reminders:     handler.NewReminderHandler(reminderSvc, cfg.Reminders.SweepSecret),
	}

	router := handler.NewRouter(cfg, logr, authSvc, metricsSvc, handlers)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Sugar().Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
	}

	if err := cacheRepo.Close(); err != nil {
		logr.Sugar().Warnw("failed to close redis", "error", err)
	}
}

// runSweepLoop runs the inactivity reminder sweep on a fixed interval until
// the context is cancelled. The HTTP sweep endpoint stays available for
// external schedulers regardless.
func runSweepLoop(ctx context.Context, svc *service.ReminderService, interval time.Duration, logr *zap.Logger) {
	if interval <= 0 {
		interval = time.Hour
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := svc.Sweep(ctx); err != nil {
				logr.Sugar().Errorw("reminder sweep failed", "error", err)
			}
		}
	}
}
