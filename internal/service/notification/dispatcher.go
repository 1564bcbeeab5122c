package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/carelink/booking-api/internal/model"
	"github.com/carelink/booking-api/internal/repository"
)

// Dispatcher hands a lifecycle event to the asynchronous delivery pipeline.
// Dispatch failures must never influence the outcome of the operation that
// produced the event; callers log and move on.
type Dispatcher interface {
	Dispatch(ctx context.Context, event *BookingEvent) error
}

// outboxDispatcher queues events in the outbox table; the worker process
// drains the table to the message broker and on to email.
type outboxDispatcher struct {
	outbox repository.OutboxRepository
}

func NewOutboxDispatcher(outbox repository.OutboxRepository) Dispatcher {
	return &outboxDispatcher{outbox: outbox}
}

func (d *outboxDispatcher) Dispatch(ctx context.Context, event *BookingEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal booking event: %w", err)
	}

	return d.outbox.Create(ctx, &model.OutboxEvent{
		EventType: event.Type,
		Payload:   payload,
	})
}
