package repository

import (
	"context"
	"fmt"

	"posgrad/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DeadLetterRepository keeps notifications that could not be delivered.
type DeadLetterRepository interface {
	// Create stores a dead letter. Redeliveries of the same message are ignored.
	Create(ctx context.Context, message *model.DeadLetterMessage) error
}

type deadLetterRepo struct {
	pool *pgxpool.Pool
}

func NewDeadLetterRepo(pool *pgxpool.Pool) DeadLetterRepository {
	return &deadLetterRepo{pool: pool}
}

func (r *deadLetterRepo) Create(ctx context.Context, m *model.DeadLetterMessage) error {
	query := `
		INSERT INTO dead_letter_messages
			(source, subscription_name, message_id, submission_id, payload, attributes, last_error, status)
		VALUES ($1, $2, $3, NULLIF($4, '')::uuid, $5, $6::jsonb, $7, $8)
		ON CONFLICT (source, subscription_name, message_id) DO NOTHING
	`
	_, err := r.pool.Exec(ctx, query,
		m.Source,
		m.SubscriptionName,
		m.MessageID,
		m.SubmissionID,
		m.Payload,
		m.Attributes,
		m.LastError,
		m.Status,
	)
	if err != nil {
		return fmt.Errorf("creating dead letter %s/%s: %w", m.Source, m.MessageID, translate(err))
	}
	return nil
}
