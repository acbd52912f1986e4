package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"myresume-backend/config"
	_ "myresume-backend/docs" // Important for Swagger
	v1 "myresume-backend/internal/delivery/http/v1"
	"myresume-backend/internal/repository/postgres"
	"myresume-backend/internal/usecase"
	"myresume-backend/pkg/database"
	"myresume-backend/pkg/email"
	"myresume-backend/pkg/logger"
	"myresume-backend/pkg/redis"
	"myresume-backend/pkg/security"
	"myresume-backend/pkg/storage"
	"myresume-backend/pkg/token"
	"myresume-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

// @title           MyResume Backend API
// @version         1.0
// @description     Backend for resume hosting with public profile links, using Clean Architecture.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting resume backend", "port", cfg.Port)

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	if err := database.RunMigrations(cfg.DBUrl, logger.Log); err != nil {
		logger.Log.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	// 4. Setup Redis (optional; rate limiting falls back to memory without it)
	if cfg.RedisURL != "" {
		if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
			logger.Log.Warn("Redis unavailable, using in-memory rate limiting", "error", err)
		}
	}
	defer redis.Close()

	// 5. Setup Email Service
	emailService := email.NewService(cfg)
	if !emailService.IsConfigured() {
		logger.Log.Warn("Email service not fully configured - OTP delivery will fail")
	}

	// 6. Setup Object Storage
	ctx := context.Background()
	store, err := storage.NewS3Store(ctx, cfg)
	if err != nil {
		logger.Log.Error("Failed to initialize object storage", "error", err)
		os.Exit(1)
	}

	// 7. Setup Repositories
	userRepo := postgres.NewUserRepository(dbPool)
	resumeRepo := postgres.NewResumeRepository(dbPool)
	otpRepo := postgres.NewOTPRepository(dbPool)

	// 8. Setup UseCases
	validate := validator.New()
	validation.RegisterValidators(validate)
	authUC := usecase.NewAuthUsecase(userRepo)
	otpUC := usecase.NewOTPUsecase(otpRepo, userRepo, emailService)
	resumeUC := usecase.NewResumeUsecase(resumeRepo, userRepo, store, validate)

	// 9. Setup Session Tokens
	tokens, err := token.NewManager(cfg.JWTSecret)
	if err != nil {
		logger.Log.Error("Failed to initialize session tokens", "error", err)
		os.Exit(1)
	}

	// 10. Setup Failed-Login Tracker
	tracker := security.NewLoginTracker(security.LoginTrackerConfig{
		MaxAttempts:   cfg.FailedLoginMaxAttempts,
		AttemptWindow: time.Duration(cfg.FailedLoginBlockMinutes) * time.Minute,
		BlockDuration: time.Duration(cfg.FailedLoginBlockMinutes) * time.Minute,
		UseIPTracking: true,
	}, logger.Log)

	// 11. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:       authUC,
		OTPUC:        otpUC,
		ResumeUC:     resumeUC,
		Tokens:       tokens,
		LoginTracker: tracker,
		Config:       cfg,
	})

	// 12. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
