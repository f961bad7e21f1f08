package router

import (
	"net/http"
	"os"

	"posgrad/internal/api/v1/handler"
	"posgrad/internal/config"
	"posgrad/internal/middleware"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

const (
	sendContactEmailPath = "/send-contact-email"
	pubSubContactPath    = "/pubsub/contact"
	pubSubContactDLQPath = "/pubsub/contact-dlq"
)

// NewMailer builds the mailer service. The direct endpoint takes the shared
// secret; the push endpoint takes Google-signed ID tokens.
func NewMailer(cfg *config.MailerConfig, mailerHandler *handler.MailerHandler, dlqHandler *handler.DLQHandler, logger zerolog.Logger) http.Handler {
	isLocalDev := cfg.PubSubEmulatorHost != ""
	return newMailer(
		middleware.SharedSecretMiddleware(cfg.SharedSecret, logger),
		middleware.PubSubAuthMiddleware(isLocalDev, cfg.PubSubPushAudience, cfg.PubSubPushServiceAccountEmail, logger),
		mailerHandler,
		dlqHandler,
		logger,
	)
}

func newMailer(secretAuth, pushAuth func(http.Handler) http.Handler, mailerHandler *handler.MailerHandler, dlqHandler *handler.DLQHandler, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(middleware.LoggerMiddleware(logger))
	r.Use(func(next http.Handler) http.Handler {
		secured := secretAuth(next)
		pushed := pushAuth(next)
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			switch req.URL.Path {
			case sendContactEmailPath:
				secured.ServeHTTP(w, req)
			case pubSubContactPath, pubSubContactDLQPath:
				pushed.ServeHTTP(w, req)
			default:
				next.ServeHTTP(w, req)
			}
		})
	})

	version := os.Getenv("GIT_COMMIT_SHA")
	if version == "" {
		version = "development"
	}
	// Callers read the plain {success, emailId, error} body, so no $schema
	// field or Link header is added to responses.
	humaConfig := huma.DefaultConfig("Pós-Graduação Mailer", version)
	humaConfig.CreateHooks = nil
	api := humachi.New(r, humaConfig)

	huma.Register(api, huma.Operation{
		OperationID: "sendContactEmail",
		Method:      http.MethodPost,
		Path:        sendContactEmailPath,
		Summary:     "Send contact email",
		Description: "Sends the notification email for a stored contact submission",
		Tags:        []string{"mailer"},
	}, mailerHandler.SendContactEmail)

	huma.Register(api, huma.Operation{
		OperationID: "pubsubContact",
		Method:      http.MethodPost,
		Path:        pubSubContactPath,
		Summary:     "Handle contact message",
		Description: "Pub/Sub push endpoint for contact submissions",
		Tags:        []string{"mailer"},
		Hidden:      true,
	}, mailerHandler.PubSubContact)

	huma.Register(api, huma.Operation{
		OperationID: "pubsubContactDLQ",
		Method:      http.MethodPost,
		Path:        pubSubContactDLQPath,
		Summary:     "Store dead-lettered contact message",
		Description: "Pub/Sub push endpoint for the contact dead-letter subscription",
		Tags:        []string{"mailer"},
		Hidden:      true,
	}, dlqHandler.PubSubContactDLQ)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	logger.Info().Msg("Mailer routes registered")
	return r
}
