package handler

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"posgrad/internal/storage"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipartRequest(t *testing.T, field, filename, contentType string, data []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/admin/images", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestUploadImage(t *testing.T) {
	store := &fakeImageStore{}
	h := NewImageHandler(store, 1024, zerolog.Nop())

	rec := httptest.NewRecorder()
	h.UploadImage(rec, multipartRequest(t, "file", "capa.png", "image/png", []byte("png-bytes")))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"url":"https://cdn.example.com/course-images/capa.png"}`, rec.Body.String())
	assert.Equal(t, "capa.png", store.got.Filename)
	assert.Equal(t, "image/png", store.got.ContentType)
	assert.Equal(t, []byte("png-bytes"), store.data)
}

func TestUploadImageErrors(t *testing.T) {
	tests := []struct {
		name  string
		field string
		err   error
		want  int
	}{
		{"missing file field", "other", nil, http.StatusBadRequest},
		{"not an image", "file", storage.ErrInvalidImageType, http.StatusBadRequest},
		{"too large", "file", storage.ErrImageTooLarge, http.StatusRequestEntityTooLarge},
		{"storage down", "file", errStoreDown, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewImageHandler(&fakeImageStore{err: tt.err}, 1024, zerolog.Nop())
			rec := httptest.NewRecorder()
			h.UploadImage(rec, multipartRequest(t, tt.field, "a.png", "image/png", []byte("x")))
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestUploadImageBodyLimit(t *testing.T) {
	store := &fakeImageStore{}
	h := NewImageHandler(store, 16, zerolog.Nop())

	rec := httptest.NewRecorder()
	h.UploadImage(rec, multipartRequest(t, "file", "a.png", "image/png", make([]byte, multipartOverhead+1024)))

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Empty(t, store.got.Filename)
}
