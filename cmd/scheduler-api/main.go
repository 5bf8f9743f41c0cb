package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/lit-planner/scheduler-api/api/swagger"
	"github.com/lit-planner/scheduler-api/internal/handler"
	"github.com/lit-planner/scheduler-api/internal/middleware"
	"github.com/lit-planner/scheduler-api/internal/repository"
	"github.com/lit-planner/scheduler-api/internal/service"
	"github.com/lit-planner/scheduler-api/pkg/cache"
	"github.com/lit-planner/scheduler-api/pkg/config"
	"github.com/lit-planner/scheduler-api/pkg/database"
	"github.com/lit-planner/scheduler-api/pkg/logger"
	"github.com/lit-planner/scheduler-api/pkg/mailer"
	corsmiddleware "github.com/lit-planner/scheduler-api/pkg/middleware/cors"
	reqidmiddleware "github.com/lit-planner/scheduler-api/pkg/middleware/requestid"
)

// @title LIT Scheduler API
// @version 0.1.0
// @description Shift proposal and swap workflow service
// @BasePath /api/scheduler
// @schemes http

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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	metricsSvc := service.NewMetricsService()

	// Repositories.
	shiftRepo := repository.NewShiftRepository(db)
	assignmentRepo := repository.NewShiftAssignmentRepository(db)
	proposalRepo := repository.NewShiftProposalRepository(db)
	swapRepo := repository.NewSwapProposalRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	directoryRepo := repository.NewEmployeeDirectoryRepository(db)

	var cacheRepo *repository.CacheRepository
	if cfg.Cache.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, schedule cache disabled", "error", err)
		} else {
			cacheRepo = repository.NewCacheRepository(redisClient, logr)
			defer cacheRepo.Close() //nolint:errcheck
		}
	}

	// Outbound mail.
	var sender mailer.Sender
	if cfg.Mail.Enabled {
		sender = mailer.NewSMTPSender(cfg.Mail)
	} else {
		sender = mailer.NewLogSender(logr)
	}

	// Services.
	notificationSvc := service.NewNotificationService(notificationRepo, directoryRepo, sender, cfg.Notifications.WorkerRetries, logr)
	notificationSvc.SetMetrics(metricsSvc)
	notificationSvc.StartDispatcher(ctx, cfg.Notifications.WorkerConcurrency)
	defer notificationSvc.StopDispatcher()

	authSvc := service.NewAuthService(cfg.JWT)
	shiftSvc := service.NewShiftService(shiftRepo, directoryRepo, notificationSvc, nil, logr)
	assignmentSvc := service.NewShiftAssignmentService(assignmentRepo, shiftRepo, notificationSvc, nil, logr)
	if cacheRepo != nil {
		assignmentSvc.SetCache(cacheRepo, cfg.Cache.ScheduleTTL, metricsSvc)
	}
	proposalSvc := service.NewShiftProposalService(proposalRepo, shiftRepo, assignmentRepo, directoryRepo, db, notificationSvc, nil, logr)
	proposalSvc.SetInvalidator(assignmentSvc)
	swapSvc := service.NewSwapProposalService(swapRepo, assignmentRepo, directoryRepo, db, notificationSvc, nil, logr)
	swapSvc.SetInvalidator(assignmentSvc)

	// Handlers.
	shiftHandler := handler.NewShiftHandler(shiftSvc)
	assignmentHandler := handler.NewAssignmentHandler(assignmentSvc)
	proposalHandler := handler.NewProposalHandler(proposalSvc)
	swapHandler := handler.NewSwapHandler(swapSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.Use(middleware.JWT(authSvc))

	api.GET("/metrics/snapshot", middleware.RequireApprover(), metricsHandler.Snapshot)

	shifts := api.Group("/shifts")
	{
		shifts.GET("", shiftHandler.List)
		shifts.GET("/:id", shiftHandler.Get)
		shifts.POST("", middleware.RequireApprover(), shiftHandler.Create)
		shifts.PUT("/:id", middleware.RequireApprover(), shiftHandler.Update)
		shifts.DELETE("/:id", middleware.RequireApprover(), shiftHandler.Delete)
	}

	assignments := api.Group("/assignments")
	{
		assignments.GET("/employee/:employeeId", assignmentHandler.ListByEmployee)
		assignments.GET("/employee/:employeeId/conflicts", assignmentHandler.CheckConflicts)
		assignments.GET("/shift/:shiftId", assignmentHandler.ListByShift)
		assignments.POST("", middleware.RequireApprover(), assignmentHandler.Assign)
		assignments.DELETE("/:id", middleware.RequireApprover(), assignmentHandler.Remove)
	}

	proposals := api.Group("/proposals")
	{
		proposals.POST("", proposalHandler.Create)
		proposals.GET("/mine", proposalHandler.ListMine)
		proposals.GET("", middleware.RequireApprover(), proposalHandler.ListAll)
		proposals.GET("/export", middleware.RequireApprover(), proposalHandler.ExportCSV)
		proposals.GET("/:id", proposalHandler.Get)
		proposals.PUT("/:id", proposalHandler.Update)
		proposals.POST("/:id/cancel", proposalHandler.Cancel)
		proposals.POST("/:id/accept", middleware.RequireApprover(), proposalHandler.Accept)
		proposals.POST("/:id/reject", middleware.RequireApprover(), proposalHandler.Reject)
		proposals.POST("/:id/alternative", middleware.RequireApprover(), proposalHandler.ProposeAlternative)
	}

	swaps := api.Group("/swaps")
	{
		swaps.POST("", swapHandler.Create)
		swaps.GET("/mine", swapHandler.ListMine)
		swaps.GET("", middleware.RequireApprover(), swapHandler.ListAll)
		swaps.GET("/:id", swapHandler.Get)
		swaps.POST("/:id/accept", middleware.RequireApprover(), swapHandler.Accept)
		swaps.POST("/:id/decline", middleware.RequireApprover(), swapHandler.Decline)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{Addr: addr, Handler: r}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down", zap.String("reason", "signal"))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Warnw("graceful shutdown failed", "error", err)
	}
}
