package handler

import (
	"context"

	"posgrad/internal/api/v1/dto"
	"posgrad/internal/api/v1/operation"
	"posgrad/internal/service"

	"github.com/rs/zerolog"
)

type ContactHandler struct {
	contactService service.ContactService
	logger         zerolog.Logger
}

func NewContactHandler(contactService service.ContactService, logger zerolog.Logger) *ContactHandler {
	return &ContactHandler{contactService: contactService, logger: logger}
}

// SubmitContact stores a contact form submission
func (h *ContactHandler) SubmitContact(ctx context.Context, input *operation.SubmitContactInput) (*operation.SubmitContactOutput, error) {
	sub, err := h.contactService.Submit(ctx, service.ContactInput{
		Name:     input.Body.Name,
		Email:    input.Body.Email,
		Phone:    input.Body.Phone,
		CourseID: input.Body.CourseID,
		Interest: input.Body.Interest,
	})
	if err != nil {
		return nil, toAPIError(err, "Failed to submit contact", h.logger)
	}
	return &operation.SubmitContactOutput{
		Body: dto.ContactResponseDTO{ID: sub.ID, CreatedAt: sub.CreatedAt},
	}, nil
}
