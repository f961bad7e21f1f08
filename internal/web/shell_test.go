package web

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"posgrad/internal/model"
	"posgrad/internal/route"
	"posgrad/internal/service"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLookup map[string]model.Course

func (s stubLookup) GetBySlug(ctx context.Context, slug string) (*model.Course, error) {
	c, ok := s[slug]
	if !ok {
		return nil, fmt.Errorf("%w: %s", service.ErrCourseNotFound, slug)
	}
	return &c, nil
}

func newShell(t *testing.T, staticDir string) *Shell {
	t.Helper()
	courses := stubLookup{
		"gestao-hospitalar": {
			Slug:             "gestao-hospitalar",
			Title:            "Gestão Hospitalar",
			ShortDescription: "Formação para gestores",
			ImageURL:         "https://cdn.example.com/gestao.png",
		},
	}
	return NewShell("https://pos.example.com/", staticDir, courses, zerolog.Nop())
}

func TestMetaFor(t *testing.T) {
	s := newShell(t, "")

	home := s.MetaFor(context.Background(), "/")
	assert.Equal(t, route.PageHome, home.Page)
	assert.Equal(t, siteTitle, home.Title)
	assert.Equal(t, "https://pos.example.com/logo-ham.png", home.Image)

	detail := s.MetaFor(context.Background(), "/curso/gestao-hospitalar")
	assert.Equal(t, route.PageCourseDetail, detail.Page)
	assert.Equal(t, "gestao-hospitalar", detail.Param)
	assert.Equal(t, "Gestão Hospitalar | "+siteTitle, detail.Title)
	assert.Equal(t, "Formação para gestores", detail.Description)
	assert.Equal(t, "https://cdn.example.com/gestao.png", detail.Image)
	assert.Equal(t, "https://pos.example.com/curso/gestao-hospitalar", detail.URL)

	missing := s.MetaFor(context.Background(), "/curso/nao-existe")
	assert.Equal(t, siteTitle, missing.Title)

	edit := s.MetaFor(context.Background(), "/admin/courses/edit/abc")
	assert.Equal(t, route.PageCourseEdit, edit.Page)
	assert.Equal(t, "abc", edit.Param)
	assert.True(t, edit.Admin)

	unknown := s.MetaFor(context.Background(), "/nada/aqui")
	assert.Equal(t, route.PageHome, unknown.Page)
}

func TestShellRendersPage(t *testing.T) {
	s := newShell(t, "")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/curso/gestao-hospitalar", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, body, `data-page="course-detail"`)
	assert.Contains(t, body, `data-param="gestao-hospitalar"`)
	assert.Contains(t, body, `<meta property="og:image" content="https://cdn.example.com/gestao.png">`)
	assert.NotContains(t, body, "noindex")
}

func TestShellAdminIsNotIndexed(t *testing.T) {
	rec := httptest.NewRecorder()
	newShell(t, "").ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin", nil))
	assert.Contains(t, rec.Body.String(), `<meta name="robots" content="noindex">`)
}

func TestShellServesStaticFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "robots.txt"), []byte("User-agent: *"), 0o644))
	s := newShell(t, dir)

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/robots.txt", nil))
	assert.Equal(t, "User-agent: *", rec.Body.String())

	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/../../etc/passwd", nil))
	assert.Contains(t, rec.Body.String(), `data-page="home"`)
}

func TestShellRejectsPost(t *testing.T) {
	rec := httptest.NewRecorder()
	newShell(t, "").ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/cursos", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
