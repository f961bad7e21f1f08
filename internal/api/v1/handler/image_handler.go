package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"posgrad/internal/api/v1/dto"
	"posgrad/internal/storage"

	"github.com/rs/zerolog"
)

// ImageStore persists uploaded images and returns their public URL.
type ImageStore interface {
	Put(ctx context.Context, up storage.Upload) (string, error)
}

// ImageHandler serves multipart uploads outside huma. The request body is
// capped before parsing and the file is buffered in full before it is sent
// to storage.
type ImageHandler struct {
	store    ImageStore
	maxBytes int64
	logger   zerolog.Logger
}

func NewImageHandler(store ImageStore, maxBytes int64, logger zerolog.Logger) *ImageHandler {
	return &ImageHandler{store: store, maxBytes: maxBytes, logger: logger}
}

// multipartOverhead covers boundaries and part headers around the file.
const multipartOverhead = 64 << 10

// UploadImage accepts a multipart form with a single "file" field
func (h *ImageHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes+multipartOverhead)
	file, header, err := r.FormFile("file")
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			http.Error(w, "Imagem excede o tamanho máximo", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "Arquivo ausente no campo 'file'", http.StatusBadRequest)
		return
	}
	defer file.Close()

	url, err := h.store.Put(r.Context(), storage.Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Body:        file,
	})
	switch {
	case errors.Is(err, storage.ErrInvalidImageType):
		http.Error(w, "O arquivo deve ser uma imagem", http.StatusBadRequest)
		return
	case errors.Is(err, storage.ErrImageTooLarge):
		http.Error(w, "Imagem excede o tamanho máximo", http.StatusRequestEntityTooLarge)
		return
	case err != nil:
		h.logger.Error().Err(err).Str("filename", header.Filename).Msg("Failed to upload image")
		http.Error(w, "Falha ao enviar imagem", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(dto.ImageUploadResponseDTO{URL: url}); err != nil {
		h.logger.Error().Err(err).Msg("Failed to encode response")
	}
}
