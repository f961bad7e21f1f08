package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strconv"

	"posgrad/internal/api/v1/dto"
	"posgrad/internal/model"
	"posgrad/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DeadLetterService records contact notifications that ran out of retries.
type DeadLetterService interface {
	// RecordPush stores a message pushed by the dead-letter subscription.
	RecordPush(ctx context.Context, req *dto.PubSubPushRequest) error
	// RecordQueue stores a message the queue worker gave up on.
	RecordQueue(ctx context.Context, queue string, msgID int64, payload []byte, cause error) error
}

type deadLetterService struct {
	repo   repository.DeadLetterRepository
	logger zerolog.Logger
}

func NewDeadLetterService(repo repository.DeadLetterRepository, logger zerolog.Logger) DeadLetterService {
	return &deadLetterService{
		repo:   repo,
		logger: logger.With().Str("service", "DeadLetterService").Logger(),
	}
}

func (s *deadLetterService) RecordPush(ctx context.Context, req *dto.PubSubPushRequest) error {
	if req.Message.MessageID == "" {
		return invalid("messageId", "messageId is required")
	}

	decoded, err := base64.StdEncoding.DecodeString(req.Message.Data)
	if err != nil {
		// keep the raw data so the message can still be inspected
		decoded = []byte(req.Message.Data)
	}

	var attributes *string
	if len(req.Message.Attributes) > 0 {
		if raw, err := json.Marshal(req.Message.Attributes); err == nil {
			str := string(raw)
			attributes = &str
		}
	}

	m := &model.DeadLetterMessage{
		Source:           model.DeadLetterSourcePubSub,
		SubscriptionName: req.Subscription,
		MessageID:        req.Message.MessageID,
		SubmissionID:     submissionIDOf(decoded),
		Payload:          string(decoded),
		Attributes:       attributes,
		Status:           model.DeadLetterUnprocessed,
	}
	return s.save(ctx, m)
}

func (s *deadLetterService) RecordQueue(ctx context.Context, queue string, msgID int64, payload []byte, cause error) error {
	m := &model.DeadLetterMessage{
		Source:           model.DeadLetterSourceQueue,
		SubscriptionName: queue,
		MessageID:        strconv.FormatInt(msgID, 10),
		SubmissionID:     submissionIDOf(payload),
		Payload:          string(payload),
		Status:           model.DeadLetterUnprocessed,
	}
	if cause != nil {
		msg := cause.Error()
		m.LastError = &msg
	}
	return s.save(ctx, m)
}

func (s *deadLetterService) save(ctx context.Context, m *model.DeadLetterMessage) error {
	err := s.repo.Create(ctx, m)
	if errors.Is(err, repository.ErrForeignKey) && m.SubmissionID != "" {
		// the submission is gone; keep the letter without the reference
		m.SubmissionID = ""
		err = s.repo.Create(ctx, m)
	}
	if err != nil {
		return err
	}
	s.logger.Warn().
		Str("source", m.Source).
		Str("subscription", m.SubscriptionName).
		Str("message_id", m.MessageID).
		Str("submission_id", m.SubmissionID).
		Msg("Contact notification dead-lettered")
	return nil
}

// submissionIDOf returns the submission id carried by a notification
// payload, or "" when there is none.
func submissionIDOf(payload []byte) string {
	var p dto.SendContactEmailDTO
	if err := json.Unmarshal(payload, &p); err != nil {
		return ""
	}
	if _, err := uuid.Parse(p.SubmissionID); err != nil {
		return ""
	}
	return p.SubmissionID
}
