package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/teamreg/backend/internal/api"
	"github.com/teamreg/backend/internal/captcha"
	"github.com/teamreg/backend/internal/config"
	"github.com/teamreg/backend/internal/db"
	"github.com/teamreg/backend/internal/genai"
	"github.com/teamreg/backend/internal/mailer"
	"github.com/teamreg/backend/internal/repository"
	"github.com/teamreg/backend/internal/service"
	"github.com/teamreg/backend/pkg/logger"
)

func main() {
	logger, err := logger.NewLogger()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	logger.Info("starting application")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	// The database is optional: without one, registrations are held in
	// process memory and lost on restart.
	var pool *pgxpool.Pool
	if cfg.DatabaseURL == "" {
		logger.Warn("DATABASE_URL not set, registrations will be stored in memory only")
	} else {
		pool, err = db.NewPool(context.Background(), cfg.DatabaseURL)
		if err != nil {
			logger.Warn("database connection failed, falling back to in-memory storage", zap.Error(err))
		} else {
			defer pool.Close()

			if err = db.Migrate(cfg.DatabaseURL); err != nil {
				logger.Fatal("failed to apply migrations", zap.Error(err))
			}

			logger.Info("database connection established")
		}
	}

	var durableRepo repository.RegistrationRepository
	if pool != nil {
		durableRepo = repository.NewPgxRegistrationRepository(pool)
	}
	registrationRepo := repository.NewFallbackRegistrationRepository(
		durableRepo,
		repository.NewMemoryRegistrationRepository(),
		db.ReachabilityProbe(pool),
	)

	captchaClient := captcha.NewClient(cfg.RecaptchaSecretKey)

	dispatcher := mailer.NewDispatcher(mailer.SMTPConfig{
		Host: cfg.SMTPHost,
		Port: cfg.SMTPPort,
		User: cfg.SMTPUser,
		Pass: cfg.SMTPPass,
		From: cfg.SMTPFrom,
	}, logger)

	registration := service.NewRegistrationService().
		WithRegistrationRepo(registrationRepo).
		WithCaptchaVerifier(captchaClient).
		WithMailer(dispatcher)

	chat := service.NewChatService()
	if cfg.GeminiAPIKey == "" {
		logger.Warn("GEMINI_API_KEY not set, chat will use scripted fallback responses")
	} else {
		chat = chat.WithGenerativeClient(genai.NewClient(cfg.GeminiAPIKey))
	}

	e := echo.New()

	handler := api.NewHandler(logger).
		WithRegistrationService(registration).
		WithChatService(chat).
		WithHealthChecker(api.MustNewHealthChecker()).
		WithUploadDir(cfg.UploadDir).
		WithFrontendURL(cfg.FrontendURL).
		WithDevelopmentMode(cfg.IsDevelopment())

	handler.RegisterRoutes(e)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logger.Info("server starting", zap.String("addr", addr))
	if err = e.Start(addr); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}
