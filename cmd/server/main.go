// Package main runs the event registration HTTP server with graceful shutdown.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/fiesta-events/backend/config"
	"github.com/fiesta-events/backend/internal/auth"
	"github.com/fiesta-events/backend/internal/emaillogs"
	"github.com/fiesta-events/backend/internal/files"
	"github.com/fiesta-events/backend/internal/gate"
	"github.com/fiesta-events/backend/internal/middleware"
	"github.com/fiesta-events/backend/internal/moderation"
	"github.com/fiesta-events/backend/internal/notify"
	"github.com/fiesta-events/backend/internal/registrations"
	"github.com/fiesta-events/backend/pkg/database"
	"github.com/fiesta-events/backend/pkg/queue"
	"github.com/fiesta-events/backend/pkg/redis"
	"github.com/fiesta-events/backend/pkg/response"
	"github.com/fiesta-events/backend/pkg/storage"
	"github.com/fiesta-events/backend/pkg/utils"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx := context.Background()
	pool, err := database.NewPostgresPool(ctx, cfg.Database.DSN(), logger)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	rdb, err := redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
	if err != nil {
		logger.Fatal("redis", zap.Error(err))
	}
	defer rdb.Close()

	var s3Client *storage.S3
	if cfg.AWS.Region != "" {
		s3Cfg := storage.S3Config{
			Region:               cfg.AWS.Region,
			AccessKeyID:          cfg.AWS.AccessKeyID,
			SecretAccessKey:      cfg.AWS.SecretAccessKey,
			ScreenshotsBucket:    cfg.AWS.ScreenshotsBucket,
			PresignExpireMinutes: cfg.AWS.PresignExpireMinutes,
		}
		s3Client, err = storage.NewS3(ctx, s3Cfg, logger)
		if err != nil {
			logger.Warn("s3 disabled", zap.Error(err))
		}
	}

	// Admin sessions
	passwordHash := cfg.Auth.AdminPasswordHash
	if passwordHash == "" && cfg.Auth.AdminPassword != "" {
		passwordHash, err = utils.HashPassword(cfg.Auth.AdminPassword)
		if err != nil {
			logger.Fatal("hash admin password", zap.Error(err))
		}
	}
	if passwordHash == "" {
		logger.Warn("no admin password configured, admin login disabled")
	}
	jwtService := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.ExpireHours)
	authHandler := auth.NewHandler(passwordHash, jwtService, logger)

	// Registration gate
	gateService := gate.NewService(gate.NewPostgresStore(pool), logger)
	gateHandler := gate.NewHandler(gateService, logger)

	// Registration lifecycle
	store := registrations.NewPostgresStore(pool)
	generator := registrations.NewPassIDGenerator(cfg.Event.PassPrefix)
	regService := registrations.NewService(store, gateService, generator, cfg.Event.Name, logger)
	regHandler := registrations.NewHandler(regService, logger)

	// Organizer notifications
	jobQueue := queue.NewQueue(rdb.Client, logger)
	regService.SetNotifier(notify.NewQueueNotifier(jobQueue, cfg.Email.NotifyAddress, cfg.Event.Name, logger))

	// Attachments
	var fileService *files.Service
	if s3Client != nil {
		fileService = files.NewService(s3Client)
		regService.SetScreenshotDeleter(fileService)
	}
	fileHandler := files.NewHandler(fileService, s3Client, logger)

	// Moderation view
	var resolver moderation.URLResolver
	if fileService != nil {
		resolver = fileService
	}
	moderationService := moderation.NewService(store, resolver, logger)
	moderationHandler := moderation.NewHandler(moderationService, logger)

	// Notification logs
	emailLogsRepo := emaillogs.NewRepository(pool)
	emailLogsHandler := emaillogs.NewHandler(emailLogsRepo, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.Server.CORSAllowedOrigins))
	router.Use(middleware.Logger(logger))

	// Health
	router.GET("/health", func(c *gin.Context) { response.OK(c, gin.H{"status": "ok"}) })

	// Public intake
	router.GET("/registration-status", gateHandler.Status)
	router.POST("/registrations", regHandler.Create)
	router.GET("/passes/:passId", regHandler.GetByPassID)
	router.POST("/files/upload-url", fileHandler.GenerateUploadURL)
	router.POST("/files/upload", fileHandler.Upload)

	// Auth (public)
	router.POST("/auth/login", authHandler.Login)

	// Admin (session required)
	admin := router.Group("/admin")
	admin.Use(middleware.JWT(jwtService), middleware.RequireRole(auth.RoleAdmin))
	{
		admin.GET("/registrations", moderationHandler.List)
		admin.GET("/registrations/stats", moderationHandler.GetStats)
		admin.GET("/registrations/export", moderationHandler.ExportCSV)
		admin.PATCH("/registrations/:id/status", regHandler.UpdateStatus)
		admin.DELETE("/registrations/:id", regHandler.Delete)
		admin.POST("/registrations/:id/payment-qr", regHandler.GeneratePaymentQR)
		admin.POST("/registration-gate/close", gateHandler.Close)
		admin.POST("/registration-gate/open", gateHandler.Open)
		admin.GET("/emails", emailLogsHandler.List)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
