package attendance

type CheckInRequest struct {
	WorkMode string `json:"work_mode" binding:"required"`
}

type AttendanceResponse struct {
	ID           string   `json:"id"`
	EmployeeID   string   `json:"employee_id"`
	EmployeeName string   `json:"employee_name"`
	WorkDate     string   `json:"work_date"`
	CheckInAt    string   `json:"check_in_at"`
	CheckOutAt   *string  `json:"check_out_at,omitempty"`
	TotalHours   *float64 `json:"total_hours,omitempty"`
	WorkMode     string   `json:"work_mode"`
}
