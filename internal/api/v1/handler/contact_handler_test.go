package handler

import (
	"net/http"
	"testing"

	"posgrad/internal/service"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContactAPI(t *testing.T, svc *fakeContactService) humatest.TestAPI {
	_, api := humatest.New(t)
	h := NewContactHandler(svc, zerolog.Nop())
	huma.Register(api, huma.Operation{
		OperationID:   "submitContact",
		Method:        http.MethodPost,
		Path:          "/contact",
		DefaultStatus: http.StatusCreated,
	}, h.SubmitContact)
	return api
}

func contactBody() map[string]any {
	return map[string]any{
		"name":      "Maria",
		"email":     "maria@example.com",
		"phone":     "92 99999-0000",
		"course_id": "6f1c1c1e-9d55-4a59-9d0e-0f5d1f3f8b21",
		"interest":  "matricular",
	}
}

func TestSubmitContact(t *testing.T) {
	svc := &fakeContactService{}
	api := newContactAPI(t, svc)

	resp := api.Post("/contact", contactBody())
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	assert.Contains(t, resp.Body.String(), `"id":"sub-1"`)
	assert.Equal(t, service.ContactInput{
		Name:     "Maria",
		Email:    "maria@example.com",
		Phone:    "92 99999-0000",
		CourseID: "6f1c1c1e-9d55-4a59-9d0e-0f5d1f3f8b21",
		Interest: "matricular",
	}, svc.got)
}

func TestSubmitContactSchemaErrors(t *testing.T) {
	for _, field := range []string{"email", "interest"} {
		t.Run(field, func(t *testing.T) {
			body := contactBody()
			body[field] = "???"
			resp := newContactAPI(t, &fakeContactService{}).Post("/contact", body)
			assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
		})
	}
}

func TestSubmitContactServiceErrors(t *testing.T) {
	resp := newContactAPI(t, &fakeContactService{
		err: &service.ValidationError{Field: "course_id", Message: "Selecione um curso"},
	}).Post("/contact", contactBody())
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "Selecione um curso")

	resp = newContactAPI(t, &fakeContactService{err: errStoreDown}).Post("/contact", contactBody())
	assert.Equal(t, http.StatusInternalServerError, resp.Code)
}
