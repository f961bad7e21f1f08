package model

import "time"

const (
	DeadLetterSourcePubSub = "pubsub"
	DeadLetterSourceQueue  = "queue"

	DeadLetterUnprocessed = "unprocessed"
)

// DeadLetterMessage is a contact notification that exhausted its deliveries.
type DeadLetterMessage struct {
	ID               string    `db:"id"`
	Source           string    `db:"source"`
	SubscriptionName string    `db:"subscription_name"`
	MessageID        string    `db:"message_id"`
	SubmissionID     string    `db:"submission_id"` // empty when the payload could not be decoded
	Payload          string    `db:"payload"`
	Attributes       *string   `db:"attributes"` // JSON object
	LastError        *string   `db:"last_error"`
	Status           string    `db:"status"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
}
