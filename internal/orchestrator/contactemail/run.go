// Package contactemail drains the contact-email queue and hands each
// submission to the mailer.
package contactemail

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"posgrad/internal/notify"
	"posgrad/internal/pgmq"
	"posgrad/internal/service"

	"github.com/rs/zerolog"
)

// Queue is the part of the pgmq client the worker uses.
type Queue interface {
	ReadWithPoll(ctx context.Context, queue string, visibilitySec, timeoutSec, maxMessages int) ([]pgmq.Message, error)
	Send(ctx context.Context, queue string, payload []byte) error
	Delete(ctx context.Context, queue string, msgIDs []int64) error
}

// DeadLetters records messages the worker gave up on.
type DeadLetters interface {
	RecordQueue(ctx context.Context, queue string, msgID int64, payload []byte, cause error) error
}

// Processor sends the email for one submission.
type Processor interface {
	ProcessSubmission(ctx context.Context, submissionID string) (string, error)
}

type Options struct {
	Queue           string
	DeadLetterQueue string
	VisibilitySec   int
	PollTimeoutSec  int
	MaxRetries      int
	BackoffInitial  time.Duration
	BackoffMax      time.Duration
}

type Worker struct {
	queue     Queue
	processor Processor
	opts      Options
	dead      DeadLetters
	logger    zerolog.Logger
	sleep     func(ctx context.Context, d time.Duration) bool
}

func NewWorker(queue Queue, processor Processor, opts Options, logger zerolog.Logger) *Worker {
	if opts.MaxRetries < 1 {
		opts.MaxRetries = 1
	}
	return &Worker{
		queue:     queue,
		processor: processor,
		opts:      opts,
		logger:    logger.With().Str("orchestrator", "contact-email").Str("queue", opts.Queue).Logger(),
		sleep:     sleepCtx,
	}
}

// WithDeadLetters makes the worker record exhausted messages in d.
func (w *Worker) WithDeadLetters(d DeadLetters) *Worker {
	w.dead = d
	return w
}

// Run reads one message at a time until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	w.logger.Info().Msg("Starting contact email orchestrator")
	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("Shutting down contact email orchestrator")
			return nil
		default:
		}

		msgs, err := w.queue.ReadWithPoll(ctx, w.opts.Queue, w.opts.VisibilitySec, w.opts.PollTimeoutSec, 1)
		if err != nil {
			if ctx.Err() != nil {
				continue
			}
			w.logger.Error().Err(err).Msg("Error reading contact email queue")
			w.sleep(ctx, time.Second)
			continue
		}
		for _, msg := range msgs {
			w.Handle(ctx, msg)
		}
	}
}

// Handle processes a single message. The message is deleted once it is
// delivered, found to be unprocessable, or moved to the dead-letter queue.
func (w *Worker) Handle(ctx context.Context, msg pgmq.Message) {
	log := w.logger.With().Int64("msg_id", msg.ID).Int("read_ct", msg.ReadCt).Logger()

	var payload notify.Payload
	if err := json.Unmarshal(msg.Data, &payload); err != nil || payload.SubmissionID == "" {
		log.Error().Err(err).Str("data", string(msg.Data)).Msg("Malformed contact email payload; deleting message")
		w.ack(ctx, msg.ID)
		return
	}
	log = log.With().Str("submission_id", payload.SubmissionID).Logger()

	backoff := w.opts.BackoffInitial
	var lastErr error
	for attempt := 1; attempt <= w.opts.MaxRetries; attempt++ {
		emailID, err := w.processor.ProcessSubmission(ctx, payload.SubmissionID)
		if err == nil {
			log.Info().Str("email_id", emailID).Int("attempt", attempt).Msg("Contact email sent")
			w.ack(ctx, msg.ID)
			return
		}
		if errors.Is(err, service.ErrSubmissionNotFound) || errors.Is(err, service.ErrValidation) {
			log.Warn().Err(err).Msg("Contact submission cannot be processed; deleting message")
			w.ack(ctx, msg.ID)
			return
		}
		lastErr = err
		log.Error().Err(err).Int("attempt", attempt).Msg("Contact email failed")
		if attempt == w.opts.MaxRetries {
			break
		}
		if !w.sleep(ctx, backoff) {
			// message becomes visible again after the visibility timeout
			return
		}
		backoff *= 2
		if w.opts.BackoffMax > 0 && backoff > w.opts.BackoffMax {
			backoff = w.opts.BackoffMax
		}
	}

	if w.opts.DeadLetterQueue != "" {
		if err := w.queue.Send(ctx, w.opts.DeadLetterQueue, msg.Data); err != nil {
			log.Error().Err(err).Str("dlq", w.opts.DeadLetterQueue).Msg("Failed to send message to dead-letter queue")
			return
		}
	}
	if w.dead != nil {
		if err := w.dead.RecordQueue(ctx, w.opts.Queue, msg.ID, msg.Data, lastErr); err != nil {
			log.Error().Err(err).Msg("Failed to record dead letter")
		}
	}
	log.Warn().Err(lastErr).Int("attempts", w.opts.MaxRetries).Msg("Exhausted all retries; moving job to DLQ")
	w.ack(ctx, msg.ID)
}

func (w *Worker) ack(ctx context.Context, id int64) {
	if err := w.queue.Delete(ctx, w.opts.Queue, []int64{id}); err != nil {
		w.logger.Error().Err(err).Int64("msg_id", id).Msg("Error deleting contact email message")
	}
}

// sleepCtx waits for d and reports false if ctx ended first.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
