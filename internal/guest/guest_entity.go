package guest

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending      = "pending"
	StatusInvited      = "invited"
	StatusInviteFailed = "invite_failed"
)

// GuestPass is a visit registration made by a host employee. Invite delivery
// is best-effort; the pass stays valid even when the email never goes out.
type GuestPass struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	HostUserID uuid.UUID `gorm:"column:host_user_id;type:uuid;not null;index"`
	GuestName  string    `gorm:"column:guest_name;type:varchar(120);not null"`
	GuestEmail string    `gorm:"column:guest_email;type:varchar(254);not null"`
	VisitDate  time.Time `gorm:"column:visit_date;type:date;not null"`
	Status     string    `gorm:"column:status;type:varchar(20);not null;default:pending"`

	EmailAttempts int     `gorm:"column:email_attempts;not null;default:0"`
	EmailError    *string `gorm:"column:email_error;type:varchar(500)"`

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (GuestPass) TableName() string {
	return "guest_passes"
}
