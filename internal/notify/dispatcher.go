package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"posgrad/internal/config"
	"posgrad/internal/pubsub"

	"github.com/rs/zerolog"
)

// Payload is the body sent to the mailer.
type Payload struct {
	SubmissionID string `json:"submissionId"`
}

// Dispatcher asks the mailer to send the email for a stored submission.
type Dispatcher interface {
	Dispatch(ctx context.Context, submissionID string) error
}

// FunctionDispatcher calls the mailer endpoint over HTTP, authenticating
// with the project's anon key the way the hosted functions gateway expects.
type FunctionDispatcher struct {
	url    string
	apiKey string
	client *http.Client
	logger zerolog.Logger
}

func NewFunctionDispatcher(url, apiKey string, timeout time.Duration, logger zerolog.Logger) *FunctionDispatcher {
	return &FunctionDispatcher{
		url:    url,
		apiKey: apiKey,
		client: &http.Client{Timeout: timeout},
		logger: logger.With().Str("dispatcher", "function").Logger(),
	}
}

func (d *FunctionDispatcher) Dispatch(ctx context.Context, submissionID string) error {
	body, err := json.Marshal(Payload{SubmissionID: submissionID})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+d.apiKey)
	req.Header.Set("apikey", d.apiKey)

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("calling notification function: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("notification function returned %d: %s", resp.StatusCode, bytes.TrimSpace(msg))
	}
	d.logger.Debug().Str("submission_id", submissionID).Msg("Notification function called")
	return nil
}

// PubSubDispatcher publishes the payload to a topic whose push subscription
// targets the mailer.
type PubSubDispatcher struct {
	publisher pubsub.Publisher
	topic     string
	logger    zerolog.Logger
}

func NewPubSubDispatcher(publisher pubsub.Publisher, topic string, logger zerolog.Logger) *PubSubDispatcher {
	return &PubSubDispatcher{
		publisher: publisher,
		topic:     topic,
		logger:    logger.With().Str("dispatcher", "pubsub").Logger(),
	}
}

func (d *PubSubDispatcher) Dispatch(ctx context.Context, submissionID string) error {
	body, err := json.Marshal(Payload{SubmissionID: submissionID})
	if err != nil {
		return err
	}
	id, err := d.publisher.Publish(ctx, d.topic, body)
	if err != nil {
		return err
	}
	d.logger.Debug().Str("submission_id", submissionID).Str("message_id", id).Msg("Contact notification published")
	return nil
}

// Enqueuer is the part of the pgmq client used for notifications.
type Enqueuer interface {
	Send(ctx context.Context, queue string, payload []byte) error
}

// QueueDispatcher writes the payload to a pgmq queue drained by the
// contact-email worker.
type QueueDispatcher struct {
	queue  Enqueuer
	name   string
	logger zerolog.Logger
}

func NewQueueDispatcher(queue Enqueuer, name string, logger zerolog.Logger) *QueueDispatcher {
	return &QueueDispatcher{
		queue:  queue,
		name:   name,
		logger: logger.With().Str("dispatcher", "queue").Logger(),
	}
}

func (d *QueueDispatcher) Dispatch(ctx context.Context, submissionID string) error {
	body, err := json.Marshal(Payload{SubmissionID: submissionID})
	if err != nil {
		return err
	}
	if err := d.queue.Send(ctx, d.name, body); err != nil {
		return err
	}
	d.logger.Debug().Str("submission_id", submissionID).Str("queue", d.name).Msg("Contact notification enqueued")
	return nil
}

// Noop discards notifications.
type Noop struct{}

func (Noop) Dispatch(context.Context, string) error { return nil }

// New selects a Dispatcher from NOTIFY_MODE. publisher and queue may be nil
// unless the mode needs them.
func New(cfg *config.Config, publisher pubsub.Publisher, queue Enqueuer, logger zerolog.Logger) (Dispatcher, error) {
	switch cfg.NotifyMode {
	case config.NotifyModeFunction, "":
		timeout := time.Duration(cfg.NotifyTimeoutSec) * time.Second
		return NewFunctionDispatcher(cfg.FunctionURL(), cfg.SupabaseAnonKey, timeout, logger), nil
	case config.NotifyModePubSub:
		if publisher == nil {
			return nil, fmt.Errorf("notify mode %q requires a Pub/Sub publisher", cfg.NotifyMode)
		}
		return NewPubSubDispatcher(publisher, cfg.PubSubContactTopic, logger), nil
	case config.NotifyModeQueue:
		if queue == nil {
			return nil, fmt.Errorf("notify mode %q requires a queue client", cfg.NotifyMode)
		}
		return NewQueueDispatcher(queue, cfg.NotifyQueue, logger), nil
	case config.NotifyModeNone:
		return Noop{}, nil
	default:
		return nil, fmt.Errorf("unknown notify mode %q", cfg.NotifyMode)
	}
}
