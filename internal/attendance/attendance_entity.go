package attendance

import (
	"time"

	"github.com/google/uuid"
)

const (
	WorkModeOffice = "office"
	WorkModeRemote = "remote"
)

func ValidWorkMode(mode string) bool {
	return mode == WorkModeOffice || mode == WorkModeRemote
}

// Attendance records one employee-day. The unique index backs the
// one-record-per-day rule; WorkDate is always midnight UTC.
type Attendance struct {
	ID           uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID   uuid.UUID  `gorm:"column:employee_id;type:uuid;not null;uniqueIndex:uq_attendance_employee_day"`
	EmployeeName string     `gorm:"column:employee_name;type:varchar(120);not null"`
	WorkDate     time.Time  `gorm:"column:work_date;type:date;not null;uniqueIndex:uq_attendance_employee_day"`
	CheckInAt    time.Time  `gorm:"column:check_in_at;type:timestamptz;not null"`
	CheckOutAt   *time.Time `gorm:"column:check_out_at;type:timestamptz"`
	TotalHours   *float64   `gorm:"column:total_hours;type:numeric(5,2)"`
	WorkMode     string     `gorm:"column:work_mode;type:varchar(10);not null"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at"`
}

func (Attendance) TableName() string {
	return "attendances"
}
