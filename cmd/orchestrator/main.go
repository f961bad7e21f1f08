package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"posgrad/internal/config"
	"posgrad/internal/database"
	"posgrad/internal/logger"
	"posgrad/internal/mail"
	"posgrad/internal/orchestrator/contactemail"
	"posgrad/internal/pgmq"
	"posgrad/internal/repository"
	"posgrad/internal/service"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	envErr := godotenv.Load()

	// Initialize logger
	logger := logger.New()
	if envErr != nil {
		logger.Warn().Msg("Warning: no .env file found")
	}

	// Load config
	cfg, err := config.LoadMailer()
	if err != nil {
		logger.Fatal().Msgf("Error loading config: %v", err)
	}

	// Set up context with graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Initialize DB connection
	dsn := database.PrepareDSN(cfg.DBConnectionString, cfg.Environment == "development")
	openCtx, openCancel := context.WithTimeout(ctx, 15*time.Second)
	pool, err := database.Open(openCtx, dsn, logger)
	openCancel()
	if err != nil {
		logger.Fatal().Msgf("Failed to open DB connection: %v", err)
	}
	defer pool.Close()

	// Initialize PGMQ client and queues
	pgmqClient := pgmq.New(pool)
	for _, q := range []string{cfg.QueueName, cfg.QueueDeadLetterName} {
		if err := pgmqClient.CreateQueue(ctx, q); err != nil {
			logger.Fatal().Msgf("Failed to create queue: %v", err)
		}
	}
	logger.Info().Msg("PGMQ client initialized")

	// Mail pipeline
	composer, sender, err := mail.Setup(ctx, cfg)
	if err != nil {
		logger.Fatal().Msgf("Failed to set up mail delivery: %v", err)
	}
	mailerSvc := service.NewMailerService(repository.NewContactRepo(pool), composer, sender, logger)

	worker := contactemail.NewWorker(pgmqClient, mailerSvc, contactemail.Options{
		Queue:           cfg.QueueName,
		DeadLetterQueue: cfg.QueueDeadLetterName,
		VisibilitySec:   cfg.QueueVisibilitySec,
		PollTimeoutSec:  cfg.QueuePollTimeoutSec,
		MaxRetries:      cfg.QueueMaxRetries,
		BackoffInitial:  time.Duration(cfg.QueueBackoffInitialSec) * time.Second,
		BackoffMax:      time.Duration(cfg.QueueBackoffMaxSec) * time.Second,
	}, logger).WithDeadLetters(service.NewDeadLetterService(repository.NewDeadLetterRepo(pool), logger))

	if err := worker.Run(ctx); err != nil {
		logger.Fatal().Msgf("contact email orchestrator failed: %v", err)
	}
	logger.Info().Msg("contact email orchestrator stopped gracefully")
}
