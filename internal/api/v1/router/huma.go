package router

import (
	"net/http"
	"os"
	"strings"

	"posgrad/internal/api/v1/handler"
	"posgrad/internal/config"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// publicAdminPaths are the admin endpoints reachable without a token.
var publicAdminPaths = map[string]bool{
	"/admin/login": true,
	"/admin/setup": true,
}

// requiresAuth reports whether path, relative to /v1, needs an admin token.
func requiresAuth(path string) bool {
	return strings.HasPrefix(path, "/admin/") && !publicAdminPaths[path]
}

// SetupHumaAPI creates the /v1 router and its Huma API
func SetupHumaAPI(
	cfg *config.Config,
	authMiddleware func(http.Handler) http.Handler,
	imageHandler *handler.ImageHandler,
	logger zerolog.Logger,
) (*chi.Mux, huma.API) {
	chiRouter := chi.NewRouter()

	chiRouter.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if requiresAuth(r.URL.Path) {
				authMiddleware(next).ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	})

	version := os.Getenv("GIT_COMMIT_SHA")
	if version == "" {
		version = "development"
	}

	humaConfig := huma.DefaultConfig("Pós-Graduação API v1", version)
	humaConfig.Info.Description = "Course catalog, contact and admin API"
	humaConfig.Servers = []*huma.Server{{URL: strings.TrimRight(cfg.SiteURL, "/") + "/v1"}}

	api := humachi.New(chiRouter, humaConfig)

	// Multipart upload is a raw handler: the body is capped, then buffered before storage
	chiRouter.Post("/admin/images", imageHandler.UploadImage)

	logger.Info().Str("version", version).Msg("Huma API initialized for /v1")
	return chiRouter, api
}

// RegisterRoutes registers all Huma operations
func RegisterRoutes(
	api huma.API,
	courseHandler *handler.CourseHandler,
	contactHandler *handler.ContactHandler,
	adminHandler *handler.AdminHandler,
	logger zerolog.Logger,
) {
	// ========== PUBLIC CATALOG ==========
	huma.Register(api, huma.Operation{
		OperationID: "listCourses",
		Method:      http.MethodGet,
		Path:        "/courses",
		Summary:     "List active courses",
		Description: "Returns active courses, newest first, narrowed by area, modality and search",
		Tags:        []string{"courses"},
	}, courseHandler.ListCourses)

	huma.Register(api, huma.Operation{
		OperationID: "listFeaturedCourses",
		Method:      http.MethodGet,
		Path:        "/courses/featured",
		Summary:     "List featured courses",
		Description: "Returns the newest active courses for the home page",
		Tags:        []string{"courses"},
	}, courseHandler.FeaturedCourses)

	huma.Register(api, huma.Operation{
		OperationID: "listCourseOptions",
		Method:      http.MethodGet,
		Path:        "/courses/options",
		Summary:     "List course options",
		Description: "Returns id and title of active courses ordered by title for the contact form",
		Tags:        []string{"courses"},
	}, courseHandler.CourseOptions)

	huma.Register(api, huma.Operation{
		OperationID: "getCourseBySlug",
		Method:      http.MethodGet,
		Path:        "/courses/{slug}",
		Summary:     "Get a course",
		Description: "Retrieves a course by its slug",
		Tags:        []string{"courses"},
	}, courseHandler.GetCourseBySlug)

	huma.Register(api, huma.Operation{
		OperationID:   "submitContact",
		Method:        http.MethodPost,
		Path:          "/contact",
		Summary:       "Submit contact form",
		Description:   "Stores a visitor inquiry and notifies the team by e-mail",
		Tags:          []string{"contact"},
		DefaultStatus: http.StatusCreated,
	}, contactHandler.SubmitContact)

	// ========== ADMIN AUTH ==========
	huma.Register(api, huma.Operation{
		OperationID: "adminLogin",
		Method:      http.MethodPost,
		Path:        "/admin/login",
		Summary:     "Admin login",
		Description: "Exchanges e-mail and password for an access token",
		Tags:        []string{"admin"},
	}, adminHandler.Login)

	huma.Register(api, huma.Operation{
		OperationID:   "adminSetup",
		Method:        http.MethodPost,
		Path:          "/admin/setup",
		Summary:       "Create admin account",
		Description:   "Registers an admin account with the auth provider",
		Tags:          []string{"admin"},
		DefaultStatus: http.StatusCreated,
	}, adminHandler.Setup)

	huma.Register(api, huma.Operation{
		OperationID: "adminDashboard",
		Method:      http.MethodGet,
		Path:        "/admin/dashboard",
		Summary:     "Dashboard counters",
		Description: "Returns course and submission totals",
		Tags:        []string{"admin"},
	}, adminHandler.Dashboard)

	// ========== ADMIN COURSES ==========
	huma.Register(api, huma.Operation{
		OperationID: "adminListCourses",
		Method:      http.MethodGet,
		Path:        "/admin/courses",
		Summary:     "List all courses",
		Description: "Returns every course regardless of status, newest first",
		Tags:        []string{"admin", "courses"},
	}, courseHandler.ListAdminCourses)

	huma.Register(api, huma.Operation{
		OperationID:   "adminCreateCourse",
		Method:        http.MethodPost,
		Path:          "/admin/courses",
		Summary:       "Create a course",
		Description:   "Creates a course, deriving a unique slug from the title when none is given",
		Tags:          []string{"admin", "courses"},
		DefaultStatus: http.StatusCreated,
	}, courseHandler.CreateCourse)

	huma.Register(api, huma.Operation{
		OperationID: "adminGetCourse",
		Method:      http.MethodGet,
		Path:        "/admin/courses/{courseId}",
		Summary:     "Get a course",
		Description: "Retrieves a course by ID",
		Tags:        []string{"admin", "courses"},
	}, courseHandler.GetCourse)

	huma.Register(api, huma.Operation{
		OperationID: "adminUpdateCourse",
		Method:      http.MethodPut,
		Path:        "/admin/courses/{courseId}",
		Summary:     "Update a course",
		Description: "Overwrites every editable field of a course",
		Tags:        []string{"admin", "courses"},
	}, courseHandler.UpdateCourse)

	huma.Register(api, huma.Operation{
		OperationID:   "adminDeleteCourse",
		Method:        http.MethodDelete,
		Path:          "/admin/courses/{courseId}",
		Summary:       "Delete a course",
		Description:   "Deletes a course; its contact submissions keep a null course",
		Tags:          []string{"admin", "courses"},
		DefaultStatus: http.StatusNoContent,
	}, courseHandler.DeleteCourse)

	huma.Register(api, huma.Operation{
		OperationID: "adminPreviewSlug",
		Method:      http.MethodGet,
		Path:        "/admin/slug",
		Summary:     "Preview slug",
		Description: "Returns the unique slug a course with this title would receive",
		Tags:        []string{"admin", "courses"},
	}, courseHandler.PreviewSlug)

	logger.Info().Msg("All operations registered successfully")
}
