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

type MailerHandler struct {
	service service.MailerService
	logger  zerolog.Logger
}

func NewMailerHandler(s service.MailerService, l zerolog.Logger) *MailerHandler {
	return &MailerHandler{service: s, logger: l}
}

// SendContactEmail sends the notification for one submission. Every failure
// answers 500 with {success:false, error}.
func (h *MailerHandler) SendContactEmail(ctx context.Context, input *operation.SendContactEmailInput) (*operation.MailerOutput, error) {
	out, _ := h.process(ctx, input.Body.SubmissionID)
	return out, nil
}

// PubSubContact handles push deliveries. Messages that can never succeed are
// acknowledged with 200 so Pub/Sub stops redelivering them; delivery
// failures answer 500 to be retried.
func (h *MailerHandler) PubSubContact(ctx context.Context, input *operation.PubSubContactInput) (*operation.MailerOutput, error) {
	payload, err := input.Body.Message.DecodeContact()
	if err != nil {
		h.logger.Error().Err(err).Str("messageId", input.Body.Message.MessageID).Msg("Dropping malformed contact message")
		return failure(http.StatusOK, err), nil
	}
	out, err := h.process(ctx, payload.SubmissionID)
	if err != nil && permanent(err) {
		out.Status = http.StatusOK
	}
	return out, nil
}

func (h *MailerHandler) process(ctx context.Context, submissionID string) (*operation.MailerOutput, error) {
	emailID, err := h.service.ProcessSubmission(ctx, submissionID)
	if err != nil {
		h.logger.Error().Err(err).Str("submission_id", submissionID).Msg("Error sending email")
		return failure(http.StatusInternalServerError, err), err
	}
	return &operation.MailerOutput{
		Status: http.StatusOK,
		Body:   dto.MailerResponseDTO{Success: true, EmailID: emailID},
	}, nil
}

func failure(status int, err error) *operation.MailerOutput {
	return &operation.MailerOutput{
		Status: status,
		Body:   dto.MailerResponseDTO{Success: false, Error: err.Error()},
	}
}

// permanent reports errors that retrying cannot fix.
func permanent(err error) bool {
	return errors.Is(err, service.ErrSubmissionNotFound) || errors.Is(err, service.ErrValidation)
}
