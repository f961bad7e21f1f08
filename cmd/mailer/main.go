package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"posgrad/internal/api/v1/handler"
	"posgrad/internal/api/v1/router"
	"posgrad/internal/config"
	"posgrad/internal/database"
	"posgrad/internal/logger"
	"posgrad/internal/mail"
	"posgrad/internal/repository"
	"posgrad/internal/service"

	"github.com/joho/godotenv"
)

func main() {
	envErr := godotenv.Load()
	logger := logger.New()
	if envErr != nil {
		logger.Warn().Msg("Warning: no .env file found")
	}

	cfg, err := config.LoadMailer()
	if err != nil {
		logger.Fatal().Msgf("Error loading config: %v", err)
	}
	ctx := context.Background()

	// 1. Resend API key (env or Secret Manager), composer and sender
	composer, sender, err := mail.Setup(ctx, cfg)
	if err != nil {
		logger.Fatal().Msgf("Failed to set up mail delivery: %v", err)
	}

	// 2. Database
	dsn := database.PrepareDSN(cfg.DBConnectionString, cfg.Environment == "development")
	openCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	pool, err := database.Open(openCtx, dsn, logger)
	cancel()
	if err != nil {
		logger.Fatal().Msgf("Failed to open database: %v", err)
	}
	defer pool.Close()

	// 3. Service and routes
	mailerSvc := service.NewMailerService(repository.NewContactRepo(pool), composer, sender, logger)
	mailerHandler := handler.NewMailerHandler(mailerSvc, logger)
	dlqHandler := handler.NewDLQHandler(service.NewDeadLetterService(repository.NewDeadLetterRepo(pool), logger), logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router.NewMailer(cfg, mailerHandler, dlqHandler, logger),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Msgf("📧 Mailer starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Msgf("Listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("Shutdown signal received, exiting...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Msgf("Server forced to shutdown: %v", err)
	}
	logger.Info().Msg("Mailer shut down gracefully")
}
