package service

import (
	"context"
	"errors"
	"fmt"

	"posgrad/internal/mail"
	"posgrad/internal/model"
	"posgrad/internal/repository"

	"github.com/rs/zerolog"
)

// Composer renders a submission into an email.
type Composer interface {
	Compose(s *model.ContactSubmission) (mail.Message, error)
}

// MailerService sends the notification email for a stored submission and
// records the outcome on it
type MailerService interface {
	ProcessSubmission(ctx context.Context, submissionID string) (string, error)
}

type mailerService struct {
	repo     repository.ContactRepository
	composer Composer
	sender   mail.Sender
	logger   zerolog.Logger
}

func NewMailerService(repo repository.ContactRepository, composer Composer, sender mail.Sender, logger zerolog.Logger) MailerService {
	return &mailerService{
		repo:     repo,
		composer: composer,
		sender:   sender,
		logger:   logger.With().Str("service", "MailerService").Logger(),
	}
}

// ProcessSubmission returns the provider's email id. A delivery failure is
// stored on the submission before being returned.
func (s *mailerService) ProcessSubmission(ctx context.Context, submissionID string) (string, error) {
	if submissionID == "" {
		return "", invalid("submissionId", "submissionId is required")
	}
	sub, err := s.repo.GetByID(ctx, submissionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", fmt.Errorf("%w: %s", ErrSubmissionNotFound, submissionID)
		}
		return "", err
	}

	msg, err := s.composer.Compose(sub)
	if err != nil {
		return "", err
	}

	emailID, sendErr := s.sender.Send(ctx, msg)
	if sendErr != nil {
		reason := sendErr.Error()
		if err := s.repo.RecordEmailResult(ctx, sub.ID, false, &reason); err != nil {
			s.logger.Error().Err(err).Str("submission_id", sub.ID).Msg("Failed to record email error")
		}
		s.logger.Error().Err(sendErr).Str("submission_id", sub.ID).Msg("Error sending email")
		return "", sendErr
	}

	if err := s.repo.RecordEmailResult(ctx, sub.ID, true, nil); err != nil {
		s.logger.Error().Err(err).Str("submission_id", sub.ID).Msg("Failed to mark submission as sent")
	}
	s.logger.Info().Str("submission_id", sub.ID).Str("email_id", emailID).Msg("Contact email sent")
	return emailID, nil
}
