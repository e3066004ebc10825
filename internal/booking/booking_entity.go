package booking

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusExpired   = "expired"
	StatusCompleted = "completed"
)

// Booking is a reservation of one workspace for a time window. Rows are
// never deleted; terminal states are kept for history.
type Booking struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	WorkspaceID uuid.UUID `gorm:"column:workspace_id;type:uuid;not null;index"`
	UserID      uuid.UUID `gorm:"column:user_id;type:uuid;not null;index"`
	StartAt     time.Time `gorm:"column:start_at;type:timestamptz;not null"`
	EndAt       time.Time `gorm:"column:end_at;type:timestamptz;not null"`
	Status      string    `gorm:"column:status;type:varchar(20);not null;default:confirmed;index"`

	CheckedInAt  *time.Time `gorm:"column:checked_in_at;type:timestamptz"`
	CheckedOutAt *time.Time `gorm:"column:checked_out_at;type:timestamptz"`

	// Calendar sync metadata, present when the client linked the booking to
	// an external calendar event.
	CalendarProvider *string    `gorm:"column:calendar_provider;type:varchar(40)"`
	CalendarEventID  *string    `gorm:"column:calendar_event_id;type:varchar(120)"`
	CalendarSyncedAt *time.Time `gorm:"column:calendar_synced_at;type:timestamptz"`

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (Booking) TableName() string {
	return "bookings"
}

// IsTerminal reports whether the status can never transition again.
func IsTerminal(status string) bool {
	switch status {
	case StatusCancelled, StatusExpired, StatusCompleted:
		return true
	default:
		return false
	}
}
