package router

import (
	"net/http"

	"posgrad/internal/api/v1/handler"
	"posgrad/internal/auth"
	"posgrad/internal/config"
	"posgrad/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

// Handlers groups everything the HTTP surface dispatches to.
type Handlers struct {
	Course  *handler.CourseHandler
	Contact *handler.ContactHandler
	Admin   *handler.AdminHandler
	Image   *handler.ImageHandler
	// Web serves every path outside /v1
	Web http.Handler
}

// New mounts the API under /v1 and the page shell everywhere else.
func New(cfg *config.Config, h Handlers, logger zerolog.Logger) http.Handler {
	authMiddleware := middleware.AuthMiddleware(cfg.JWTSecret, auth.NewAdminPolicy(cfg.AdminEmailList()), logger)

	apiRouter, api := SetupHumaAPI(cfg, authMiddleware, h.Image, logger)
	RegisterRoutes(api, h.Course, h.Contact, h.Admin, logger)

	root := chi.NewRouter()
	root.Use(chimw.Recoverer)
	root.Use(middleware.LoggerMiddleware(logger))

	root.Mount("/v1", http.StripPrefix("/v1", apiRouter))
	root.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if h.Web != nil {
		root.NotFound(h.Web.ServeHTTP)
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins(),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Client-Info", "Apikey"},
		AllowCredentials: false,
	})
	return c.Handler(root)
}
