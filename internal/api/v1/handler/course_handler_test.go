package handler

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"posgrad/internal/api/v1/dto"
	"posgrad/internal/model"
	"posgrad/internal/repository"
	"posgrad/internal/service"
	"posgrad/internal/slug"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCourses() []model.Course {
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	return []model.Course{
		{ID: "c1", Slug: "gestao-hospitalar", Title: "Gestão Hospitalar", Area: "gestao", Modality: model.ModalityEAD, Status: model.StatusActive, StartDate: &start,
			Content: model.CourseContent{Program: []model.ProgramModule{{Name: "Módulo 1", Hours: 20}}}},
		{ID: "c2", Slug: "oncologia-clinica", Title: "Oncologia Clínica", Area: "oncologia", Modality: model.ModalityPresencial, Status: model.StatusActive},
		{ID: "c3", Slug: "nutricao-esportiva", Title: "Nutrição Esportiva", Description: "Gestão de dietas", Area: "nutricao", Modality: model.ModalityEAD, Status: model.StatusActive},
	}
}

func newCourseAPI(t *testing.T, svc *fakeCourseService) humatest.TestAPI {
	_, api := humatest.New(t)
	h := NewCourseHandler(svc, zerolog.Nop())
	huma.Get(api, "/courses", h.ListCourses)
	huma.Get(api, "/courses/featured", h.FeaturedCourses)
	huma.Get(api, "/courses/options", h.CourseOptions)
	huma.Get(api, "/courses/{slug}", h.GetCourseBySlug)
	huma.Get(api, "/admin/courses", h.ListAdminCourses)
	huma.Get(api, "/admin/courses/{courseId}", h.GetCourse)
	huma.Register(api, huma.Operation{
		OperationID:   "create",
		Method:        http.MethodPost,
		Path:          "/admin/courses",
		DefaultStatus: http.StatusCreated,
	}, h.CreateCourse)
	huma.Put(api, "/admin/courses/{courseId}", h.UpdateCourse)
	huma.Register(api, huma.Operation{
		OperationID:   "delete",
		Method:        http.MethodDelete,
		Path:          "/admin/courses/{courseId}",
		DefaultStatus: http.StatusNoContent,
	}, h.DeleteCourse)
	huma.Get(api, "/admin/slug", h.PreviewSlug)
	return api
}

func decodeCourses(t *testing.T, body []byte) []dto.CourseResponseDTO {
	t.Helper()
	var out []dto.CourseResponseDTO
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

func TestListCoursesFilters(t *testing.T) {
	api := newCourseAPI(t, &fakeCourseService{courses: sampleCourses()})

	resp := api.Get("/courses?modality=ead")
	require.Equal(t, http.StatusOK, resp.Code)
	got := decodeCourses(t, resp.Body.Bytes())
	require.Len(t, got, 2)
	assert.Equal(t, "gestao-hospitalar", got[0].Slug)
	assert.Equal(t, "nutricao-esportiva", got[1].Slug)

	resp = api.Get("/courses?search=gest")
	got = decodeCourses(t, resp.Body.Bytes())
	require.Len(t, got, 2)

	resp = api.Get("/courses?area=oncologia")
	got = decodeCourses(t, resp.Body.Bytes())
	require.Len(t, got, 1)
	assert.Equal(t, "c2", got[0].ID)
}

func TestListCoursesEmptyIsArray(t *testing.T) {
	api := newCourseAPI(t, &fakeCourseService{})
	resp := api.Get("/courses")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `[]`, resp.Body.String())
}

func TestListCoursesStoreError(t *testing.T) {
	api := newCourseAPI(t, &fakeCourseService{err: errStoreDown})
	resp := api.Get("/courses")
	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	assert.NotContains(t, resp.Body.String(), "connection refused")
}

func TestCourseOptions(t *testing.T) {
	api := newCourseAPI(t, &fakeCourseService{courses: sampleCourses()[:1]})
	resp := api.Get("/courses/options")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `[{"id":"c1","title":"Gestão Hospitalar"}]`, resp.Body.String())
}

func TestGetCourseBySlug(t *testing.T) {
	api := newCourseAPI(t, &fakeCourseService{courses: sampleCourses()})

	resp := api.Get("/courses/gestao-hospitalar")
	require.Equal(t, http.StatusOK, resp.Code)
	var got dto.CourseResponseDTO
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
	assert.Equal(t, "Gestão Hospitalar", got.Title)
	require.NotNil(t, got.StartDate)
	assert.Equal(t, "2026-03-02", *got.StartDate)
	assert.Equal(t, []dto.ProgramModuleDTO{{Name: "Módulo 1", Hours: 20}}, got.Content.Program)

	resp = api.Get("/courses/nao-existe")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestCreateCourse(t *testing.T) {
	svc := &fakeCourseService{}
	api := newCourseAPI(t, svc)

	resp := api.Post("/admin/courses", map[string]any{
		"title":      "Gestão Hospitalar",
		"area":       "gestao",
		"start_date": "2026-03-02",
		"content": map[string]any{
			"program": []map[string]any{{"name": "Módulo 1", "hours": 20}},
		},
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	require.NotNil(t, svc.saved)
	assert.Equal(t, "Gestão Hospitalar", svc.saved.Title)
	require.NotNil(t, svc.saved.StartDate)
	assert.Equal(t, 2026, svc.saved.StartDate.Year())

	var got dto.CourseResponseDTO
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
	assert.Equal(t, "new-id", got.ID)
	assert.Equal(t, "gerado", got.Slug)
}

func TestCreateCourseBadDate(t *testing.T) {
	svc := &fakeCourseService{}
	api := newCourseAPI(t, svc)
	resp := api.Post("/admin/courses", map[string]any{"title": "X", "area": "gestao", "start_date": "02/03/2026"})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Nil(t, svc.saved)
}

func TestCreateCourseErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", &service.ValidationError{Field: "title", Message: "Título é obrigatório"}, http.StatusBadRequest},
		{"duplicate slug", repository.ErrDuplicateSlug, http.StatusConflict},
		{"exhausted", &slug.ExhaustedError{Base: "x", Attempts: 3}, http.StatusConflict},
		{"store down", errStoreDown, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newCourseAPI(t, &fakeCourseService{err: tt.err})
			resp := api.Post("/admin/courses", map[string]any{"title": "X", "area": "gestao"})
			assert.Equal(t, tt.want, resp.Code)
		})
	}
}

func TestValidationErrorMessage(t *testing.T) {
	api := newCourseAPI(t, &fakeCourseService{err: &service.ValidationError{Field: "title", Message: "Título é obrigatório"}})
	resp := api.Post("/admin/courses", map[string]any{"title": " ", "area": "gestao"})
	require.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "Título é obrigatório")
	assert.Contains(t, resp.Body.String(), "body.title")
}

func TestUpdateAndDeleteCourse(t *testing.T) {
	svc := &fakeCourseService{courses: sampleCourses()}
	api := newCourseAPI(t, svc)

	resp := api.Put("/admin/courses/c2", map[string]any{"title": "Oncologia Avançada", "area": "oncologia", "slug": "oncologia-clinica"})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.Equal(t, "c2", svc.saved.ID)
	assert.Equal(t, "oncologia-clinica", svc.saved.Slug)

	resp = api.Put("/admin/courses/missing", map[string]any{"title": "X", "area": "gestao"})
	assert.Equal(t, http.StatusNotFound, resp.Code)

	resp = api.Delete("/admin/courses/c2")
	assert.Equal(t, http.StatusNoContent, resp.Code)
	assert.Equal(t, "c2", svc.deleted)

	resp = api.Delete("/admin/courses/missing")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestPreviewSlug(t *testing.T) {
	api := newCourseAPI(t, &fakeCourseService{})
	resp := api.Get("/admin/slug?title=Gestao%20Hospitalar&excludeId=c1")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"slug":"gestao-hospitalar"}`, resp.Body.String())

	resp = api.Get("/admin/slug")
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
}
