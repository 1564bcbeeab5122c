package notification

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carelink/booking-api/internal/model"
)

type fakeOutboxRepo struct {
	events []*model.OutboxEvent
}

func (r *fakeOutboxRepo) Create(_ context.Context, event *model.OutboxEvent) error {
	r.events = append(r.events, event)
	return nil
}

func (r *fakeOutboxRepo) GetPendingEvents(_ context.Context, _ int) ([]*model.OutboxEvent, error) {
	return r.events, nil
}

func (r *fakeOutboxRepo) UpdateStatus(_ context.Context, _ uuid.UUID, _ model.OutboxStatus, _ *string) error {
	return nil
}

func (r *fakeOutboxRepo) DeleteProcessedBefore(_ context.Context, _ time.Time) (int64, error) {
	return 0, nil
}

func TestDispatchQueuesEvent(t *testing.T) {
	repo := &fakeOutboxRepo{}
	dispatcher := NewOutboxDispatcher(repo)

	cancelledBy := "patient"
	booking := &model.Booking{
		ID:                 uuid.New(),
		PatientID:          uuid.New(),
		DoctorID:           uuid.New(),
		Status:             model.BookingStatusCancelled,
		TimeSlot:           "10:00 AM",
		CancellationReason: "schedule conflict",
		CancelledBy:        &cancelledBy,
	}

	err := dispatcher.Dispatch(context.Background(), NewBookingEvent(EventBookingCancelled, booking))
	require.NoError(t, err)
	require.Len(t, repo.events, 1)

	queued := repo.events[0]
	assert.Equal(t, EventBookingCancelled, queued.EventType)

	var decoded BookingEvent
	require.NoError(t, json.Unmarshal(queued.Payload, &decoded))
	assert.Equal(t, booking.ID, decoded.BookingID)
	assert.Equal(t, "schedule conflict", decoded.CancellationReason)
	assert.Equal(t, "patient", decoded.CancelledBy)
}

func TestEventTypeFor(t *testing.T) {
	assert.Equal(t, EventBookingAccepted, EventTypeFor(model.BookingStatusAccepted))
	assert.Equal(t, EventBookingRejected, EventTypeFor(model.BookingStatusRejected))
	assert.Equal(t, EventBookingCancelled, EventTypeFor(model.BookingStatusCancelled))
	assert.Equal(t, EventBookingCompleted, EventTypeFor(model.BookingStatusCompleted))
}
