package handler

import (
	"errors"

	"posgrad/internal/repository"
	"posgrad/internal/service"
	"posgrad/internal/slug"

	"github.com/danielgtaylor/huma/v2"
	"github.com/rs/zerolog"
)

// toAPIError maps service errors onto HTTP problems. Unexpected errors are
// logged and reported as 500 without their details.
func toAPIError(err error, msg string, logger zerolog.Logger) error {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		return huma.Error400BadRequest(verr.Message, &huma.ErrorDetail{
			Location: "body." + verr.Field,
			Message:  verr.Message,
		})
	case errors.Is(err, service.ErrCourseNotFound):
		return huma.Error404NotFound("Course not found")
	case errors.Is(err, service.ErrSubmissionNotFound):
		return huma.Error404NotFound("Submission not found")
	case errors.Is(err, repository.ErrDuplicateSlug):
		return huma.Error409Conflict("Já existe um curso com este slug")
	case errors.Is(err, slug.ErrSlugExhausted):
		return huma.Error409Conflict("Não foi possível gerar um slug único para este título")
	default:
		logger.Error().Err(err).Msg(msg)
		return huma.Error500InternalServerError(msg)
	}
}
