// Package pgmq talks to the pgmq Postgres extension shipped with Supabase.
package pgmq

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is satisfied by *pgxpool.Pool and pgx.Tx.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Client wraps a Postgres pool for pgmq queue operations.
type Client struct {
	db DB
}

// New returns a new PGMQ client backed by the given pool.
func New(db DB) *Client {
	return &Client{db: db}
}

// Message represents a single pgmq message.
type Message struct {
	ID     int64  // message identifier
	ReadCt int    // how many times the message has been read
	Data   []byte // raw JSON payload
}

// CreateQueue creates queue unless it already exists.
func (c *Client) CreateQueue(ctx context.Context, queue string) error {
	if _, err := c.db.Exec(ctx, "SELECT pgmq.create($1)", queue); err != nil {
		return fmt.Errorf("pgmq create %s failed: %w", queue, err)
	}
	return nil
}

// Send pushes a JSON payload into the given queue.
func (c *Client) Send(ctx context.Context, queue string, payload []byte) error {
	if _, err := c.db.Exec(ctx, "SELECT pgmq.send($1, $2::jsonb, 0)", queue, string(payload)); err != nil {
		return fmt.Errorf("pgmq send failed: %w", err)
	}
	return nil
}

// ReadWithPoll reads up to maxMessages from the queue, blocking up to
// timeoutSec seconds. Read messages stay invisible for visibilitySec.
func (c *Client) ReadWithPoll(ctx context.Context, queue string, visibilitySec, timeoutSec, maxMessages int) ([]Message, error) {
	rows, err := c.db.Query(ctx,
		"SELECT msg_id, read_ct, message::text FROM pgmq.read_with_poll($1, $2, $3, $4)",
		queue, visibilitySec, maxMessages, timeoutSec)
	if err != nil {
		return nil, fmt.Errorf("pgmq read_with_poll failed: %w", err)
	}
	msgs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Message, error) {
		var m Message
		var data string
		if err := row.Scan(&m.ID, &m.ReadCt, &data); err != nil {
			return m, err
		}
		m.Data = []byte(data)
		return m, nil
	})
	if err != nil {
		return nil, fmt.Errorf("pgmq read scan failed: %w", err)
	}
	return msgs, nil
}

// Delete removes messages by their IDs from the specified queue.
func (c *Client) Delete(ctx context.Context, queue string, msgIDs []int64) error {
	if _, err := c.db.Exec(ctx, "SELECT pgmq.delete($1, $2::bigint[])", queue, msgIDs); err != nil {
		return fmt.Errorf("pgmq delete failed: %w", err)
	}
	return nil
}
