package events

import "time"

const BookingLifecycleTopic = "worknest.booking.lifecycle.v1"

const (
	BookingCreated   = "booking.created"
	BookingCancelled = "booking.cancelled"
	BookingCompleted = "booking.completed"
	BookingExpired   = "booking.expired"
)

type BookingLifecycleEvent struct {
	EventType   string    `json:"event_type"`
	BookingID   string    `json:"booking_id"`
	WorkspaceID string    `json:"workspace_id"`
	UserID      string    `json:"user_id"`
	StartAt     time.Time `json:"start_at"`
	EndAt       time.Time `json:"end_at"`
	OccurredAt  time.Time `json:"occurred_at"`
}
