package router

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"posgrad/internal/api/v1/handler"
	"posgrad/internal/auth"
	"posgrad/internal/config"
	"posgrad/internal/database"
	"posgrad/internal/notify"
	"posgrad/internal/pgmq"
	"posgrad/internal/pubsub"
	"posgrad/internal/repository"
	"posgrad/internal/service"
	"posgrad/internal/storage"
	"posgrad/internal/web"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Build opens the database and every remote client, then wires the HTTP
// handler. The returned cleanup releases them.
func Build(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (http.Handler, func(), error) {
	logger.Info().Str("environment", cfg.Environment).Msg("App environment loaded")

	// 1. Database
	dsn := database.PrepareDSN(cfg.DBConnectionString, cfg.IsDevelopment())
	if cfg.DBMigrate {
		if err := database.Migrate(dsn, logger); err != nil {
			return nil, nil, err
		}
	}
	openCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	pool, err := database.Open(openCtx, dsn, logger)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() { pool.Close() }

	// 2. S3 client for course images
	s3Client, err := storage.NewS3Client(ctx, cfg)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	images := storage.NewImageStore(s3Client, cfg.S3Bucket, cfg.ImagePrefix, cfg.PublicStorageURL(), cfg.ImageMaxBytes, logger)

	// 3. Notification dispatcher
	var publisher pubsub.Publisher
	if cfg.NotifyMode == config.NotifyModePubSub {
		p, err := pubsub.NewPublisher(ctx, cfg)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("creating Pub/Sub publisher: %w", err)
		}
		publisher = p
		cleanup = func() {
			if err := p.Close(); err != nil {
				logger.Warn().Err(err).Msg("Failed to close Pub/Sub client")
			}
			pool.Close()
		}
	}
	var queue notify.Enqueuer
	if cfg.NotifyMode == config.NotifyModeQueue {
		queue = pgmq.New(pool)
	}
	dispatcher, err := notify.New(cfg, publisher, queue, logger)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	h := wire(cfg, pool, images, dispatcher, logger)
	return New(cfg, h, logger), cleanup, nil
}

func wire(cfg *config.Config, pool *pgxpool.Pool, images handler.ImageStore, dispatcher notify.Dispatcher, logger zerolog.Logger) Handlers {
	validate := validator.New(validator.WithRequiredStructEnabled())

	courseRepo := repository.NewCourseRepo(pool)
	contactRepo := repository.NewContactRepo(pool)

	courseSvc := service.NewCourseService(courseRepo, validate, cfg.SlugMaxAttempts, logger)
	contactSvc := service.NewContactService(contactRepo, dispatcher, validate, logger)
	dashboardSvc := service.NewDashboardService(courseRepo, contactRepo, logger)

	authClient := auth.NewClient(cfg.SupabaseURL, cfg.SupabaseAnonKey)

	return Handlers{
		Course:  handler.NewCourseHandler(courseSvc, logger),
		Contact: handler.NewContactHandler(contactSvc, logger),
		Admin: handler.NewAdminHandler(authClient, dashboardSvc, handler.SetupPolicy{
			Enabled: cfg.AdminSetupEnabled,
			Admins:  auth.NewAdminPolicy(cfg.AdminEmailList()),
		}, logger),
		Image: handler.NewImageHandler(images, cfg.ImageMaxBytes, logger),
		Web:   web.NewShell(cfg.SiteURL, cfg.StaticDir, courseSvc, logger),
	}
}
