// Package kafka carries booking lifecycle events out of the API through a
// transactional outbox: every booking transition writes an outbox_events row
// inside the same transaction as the booking itself, and the worker binary
// drains pending rows to the broker afterwards.
package kafka

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"worknest/internal/events"

	"github.com/google/uuid"
)

const (
	OutboxStatusPending = "pending"
	OutboxStatusSent    = "sent"
	OutboxStatusFailed  = "failed"
)

// bookingAggregate is the only aggregate this service emits events for.
const bookingAggregate = "booking"

type OutboxEvent struct {
	ID            string
	RequestID     string
	AggregateType string
	AggregateID   string
	EventType     string
	Topic         string
	Payload       []byte
	Status        string
	RetryCount    int
	NextRetryAt   time.Time
}

// NewBookingEvent stamps the fields every booking lifecycle event shares;
// callers only supply what varies per transition.
func NewBookingEvent(requestID, bookingID, eventType string, payload []byte) OutboxEvent {
	return OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     requestID,
		AggregateType: bookingAggregate,
		AggregateID:   bookingID,
		EventType:     eventType,
		Topic:         events.BookingLifecycleTopic,
		Payload:       payload,
		Status:        OutboxStatusPending,
	}
}

// ValidateOutboxEvent rejects rows that could never be published. Run before
// queueing so a malformed event aborts the surrounding transaction instead of
// wedging the worker.
func ValidateOutboxEvent(event OutboxEvent) error {
	if event.ID == "" {
		return errors.New("outbox id is required")
	}
	if event.Topic == "" {
		return errors.New("outbox topic is required")
	}
	if len(event.Payload) == 0 {
		return errors.New("outbox payload is required")
	}
	switch event.Status {
	case OutboxStatusPending, OutboxStatusSent, OutboxStatusFailed:
		return nil
	default:
		return fmt.Errorf("invalid outbox status: %s", event.Status)
	}
}

//go:generate mockgen -source=outbox_repo.go -destination=mock/outbox_repo_mock.go -package=mock

type OutboxRepository interface {
	WithTx(tx *sql.Tx) OutboxRepository
	Create(ctx context.Context, event OutboxEvent) error
	ListPending(ctx context.Context, limit int) ([]OutboxEvent, error)
	MarkSent(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string, reason string) error
}

// outboxRepo speaks raw database/sql: Create must run on the caller's open
// *sql.Tx, and the worker-side queries need exact control over retry
// predicates that an ORM would obscure.
type outboxRepo struct {
	db *sql.DB
	tx *sql.Tx
}

func NewOutboxRepository(db *sql.DB) OutboxRepository {
	return &outboxRepo{db: db}
}

func (r *outboxRepo) WithTx(tx *sql.Tx) OutboxRepository {
	return &outboxRepo{db: r.db, tx: tx}
}

func (r *outboxRepo) Create(ctx context.Context, event OutboxEvent) error {
	const query = `
INSERT INTO outbox_events
	(id, request_id, aggregate_type, aggregate_id, event_type, topic, payload, status)
VALUES
	($1, $2, $3, $4, $5, $6, $7, $8)
`
	_, err := r.writer().ExecContext(
		ctx, query,
		event.ID, event.RequestID, event.AggregateType,
		event.AggregateID, event.EventType, event.Topic, event.Payload, event.Status,
	)
	return err
}

// ListPending returns rows due for publishing, oldest first. Failed rows come
// back once their backoff window has elapsed.
func (r *outboxRepo) ListPending(ctx context.Context, limit int) ([]OutboxEvent, error) {
	const query = `
SELECT
	id::text,
	aggregate_type,
	aggregate_id::text,
	event_type,
	topic,
	payload,
	status,
	retry_count,
	COALESCE(next_retry_at, created_at)
FROM outbox_events
WHERE status IN ($1, $2)
	AND (next_retry_at IS NULL OR next_retry_at <= NOW())
ORDER BY created_at ASC
LIMIT $3
`
	rows, err := r.db.QueryContext(ctx, query, OutboxStatusPending, OutboxStatusFailed, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pending := make([]OutboxEvent, 0, limit)
	for rows.Next() {
		var e OutboxEvent
		if err := rows.Scan(
			&e.ID,
			&e.AggregateType,
			&e.AggregateID,
			&e.EventType,
			&e.Topic,
			&e.Payload,
			&e.Status,
			&e.RetryCount,
			&e.NextRetryAt,
		); err != nil {
			return nil, err
		}
		pending = append(pending, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return pending, nil
}

func (r *outboxRepo) MarkSent(ctx context.Context, id string) error {
	const query = `
UPDATE outbox_events
SET
	status = $2,
	processed_at = NOW(),
	error_message = NULL,
	updated_at = NOW()
WHERE id = $1
`
	_, err := r.db.ExecContext(ctx, query, id, OutboxStatusSent)
	return err
}

// MarkFailed records the reason and pushes the row out by a linearly growing
// backoff, capped at ten steps.
func (r *outboxRepo) MarkFailed(ctx context.Context, id string, reason string) error {
	const query = `
UPDATE outbox_events
SET
	status = $2,
	retry_count = retry_count + 1,
	error_message = LEFT($3, 500),
	next_retry_at = NOW() + (LEAST(retry_count + 1, 10) * INTERVAL '15 seconds'),
	updated_at = NOW()
WHERE id = $1
`
	_, err := r.db.ExecContext(ctx, query, id, OutboxStatusFailed, reason)
	return err
}

func (r *outboxRepo) writer() interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}
