package handler

import (
	"context"
	"errors"
	"net/http"

	"posgrad/internal/api/v1/dto"
	"posgrad/internal/api/v1/operation"
	"posgrad/internal/service"

	"github.com/rs/zerolog"
)

type DLQHandler struct {
	service service.DeadLetterService
	logger  zerolog.Logger
}

func NewDLQHandler(s service.DeadLetterService, l zerolog.Logger) *DLQHandler {
	return &DLQHandler{service: s, logger: l}
}

// PubSubContactDLQ stores a message delivered by the dead-letter
// subscription. Only storage failures are retried.
func (h *DLQHandler) PubSubContactDLQ(ctx context.Context, input *operation.PubSubContactInput) (*operation.MailerOutput, error) {
	if err := h.service.RecordPush(ctx, &input.Body); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrValidation) {
			status = http.StatusOK
		}
		h.logger.Error().Err(err).Str("messageId", input.Body.Message.MessageID).Msg("Error storing dead letter")
		return failure(status, err), nil
	}
	return &operation.MailerOutput{
		Status: http.StatusOK,
		Body:   dto.MailerResponseDTO{Success: true},
	}, nil
}
