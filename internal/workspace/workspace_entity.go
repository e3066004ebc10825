package workspace

import (
	"time"

	"github.com/google/uuid"
)

const (
	KindDesk        = "desk"
	KindMeetingRoom = "meeting-room"

	StatusActive      = "active"
	StatusMaintenance = "maintenance"
	StatusInactive    = "inactive"
)

// Workspace is a bookable physical resource. occupied_from/occupied_until
// track the window of the booking currently holding it; there is no
// calendar of future reservations.
type Workspace struct {
	ID            uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Name          string     `gorm:"column:name;type:varchar(120);not null"`
	Kind          string     `gorm:"column:kind;type:varchar(20);not null;index"`
	Capacity      int        `gorm:"column:capacity;not null;default:1"`
	Amenities     []string   `gorm:"column:amenities;type:jsonb;serializer:json"`
	Location      string     `gorm:"column:location;type:varchar(200)"`
	Status        string     `gorm:"column:status;type:varchar(20);not null;default:active;index"`
	OccupiedFrom  *time.Time `gorm:"column:occupied_from;type:timestamptz"`
	OccupiedUntil *time.Time `gorm:"column:occupied_until;type:timestamptz"`
	CreatedAt     time.Time  `gorm:"column:created_at"`
	UpdatedAt     time.Time  `gorm:"column:updated_at"`
}

func (Workspace) TableName() string {
	return "workspaces"
}

func ValidKind(kind string) bool {
	return kind == KindDesk || kind == KindMeetingRoom
}

func ValidStatus(status string) bool {
	switch status {
	case StatusActive, StatusMaintenance, StatusInactive:
		return true
	default:
		return false
	}
}
