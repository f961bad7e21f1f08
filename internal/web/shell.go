package web

import (
	"bytes"
	"context"
	"errors"
	"html/template"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"posgrad/internal/model"
	"posgrad/internal/route"
	"posgrad/internal/service"

	"github.com/rs/zerolog"
)

const (
	siteTitle       = "Pós-Graduação HAM - Hospital Adventista de Manaus"
	siteDescription = "Cursos de pós-graduação em saúde oferecidos pelo Hospital Adventista de Manaus. Formação especializada com excelência e qualidade."
	defaultImage    = "/logo-ham.png"
)

// CourseLookup finds the course shown on a detail page.
type CourseLookup interface {
	GetBySlug(ctx context.Context, slug string) (*model.Course, error)
}

// Meta is the per-page data substituted into the shell.
type Meta struct {
	Title       string
	Description string
	Image       string
	URL         string
	Page        route.Page
	Param       string
	Admin       bool
}

var shellTemplate = template.Must(template.New("shell").Parse(`<!doctype html>
<html lang="pt-BR">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}}</title>
<meta name="description" content="{{.Description}}">
<meta property="og:title" content="{{.Title}}">
<meta property="og:description" content="{{.Description}}">
<meta property="og:image" content="{{.Image}}">
<meta property="og:url" content="{{.URL}}">
<meta property="og:type" content="website">
<meta name="twitter:card" content="summary_large_image">
<meta name="twitter:title" content="{{.Title}}">
<meta name="twitter:description" content="{{.Description}}">
<meta name="twitter:image" content="{{.Image}}">
{{- if .Admin}}
<meta name="robots" content="noindex">
{{- end}}
<link rel="stylesheet" href="/assets/app.css">
</head>
<body>
<div id="root" data-page="{{.Page}}" data-param="{{.Param}}"></div>
<script type="module" src="/assets/app.js"></script>
</body>
</html>
`))

// Shell serves static assets from a directory and renders the page shell
// for every other GET path.
type Shell struct {
	siteURL   string
	staticDir string
	courses   CourseLookup
	logger    zerolog.Logger
}

func NewShell(siteURL, staticDir string, courses CourseLookup, logger zerolog.Logger) *Shell {
	return &Shell{
		siteURL:   strings.TrimRight(siteURL, "/"),
		staticDir: staticDir,
		courses:   courses,
		logger:    logger.With().Str("component", "Shell").Logger(),
	}
}

func (s *Shell) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	if s.serveStatic(w, r) {
		return
	}

	meta := s.MetaFor(r.Context(), r.URL.Path)
	var buf bytes.Buffer
	if err := shellTemplate.Execute(&buf, meta); err != nil {
		s.logger.Error().Err(err).Str("path", r.URL.Path).Msg("Failed to render page shell")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = w.Write(buf.Bytes())
}

// MetaFor resolves path to a page and fills in its meta tags. Course detail
// pages use the course itself when it can be loaded.
func (s *Shell) MetaFor(ctx context.Context, urlPath string) Meta {
	m := route.Resolve(urlPath)
	meta := Meta{
		Title:       siteTitle,
		Description: siteDescription,
		Image:       s.siteURL + defaultImage,
		URL:         s.siteURL + urlPath,
		Page:        m.Page,
		Param:       m.Param,
		Admin:       m.IsAdmin(),
	}

	switch m.Page {
	case route.PageCourses:
		meta.Title = "Cursos | " + siteTitle
	case route.PageAbout:
		meta.Title = "Sobre | " + siteTitle
	case route.PageCourseDetail:
		if s.courses == nil || m.Param == "" {
			break
		}
		course, err := s.courses.GetBySlug(ctx, m.Param)
		if err != nil {
			if !errors.Is(err, service.ErrCourseNotFound) {
				s.logger.Warn().Err(err).Str("slug", m.Param).Msg("Failed to load course for meta tags")
			}
			break
		}
		meta.Title = course.Title + " | " + siteTitle
		if d := firstNonEmpty(course.ShortDescription, course.Description); d != "" {
			meta.Description = d
		}
		if course.ImageURL != "" {
			meta.Image = course.ImageURL
		}
	default:
		if m.IsAdmin() {
			meta.Title = "Admin | " + siteTitle
		}
	}
	return meta
}

// serveStatic writes a regular file under staticDir matching the request
// path, reporting whether it did.
func (s *Shell) serveStatic(w http.ResponseWriter, r *http.Request) bool {
	if s.staticDir == "" || r.URL.Path == "/" {
		return false
	}
	clean := path.Clean("/" + r.URL.Path)
	full := filepath.Join(s.staticDir, filepath.FromSlash(clean))
	info, err := os.Stat(full)
	if err != nil || info.IsDir() {
		return false
	}
	http.ServeFile(w, r, full)
	return true
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
