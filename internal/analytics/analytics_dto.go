package analytics

type BookingStats struct {
	Total    int64 `json:"total"`
	ByStatus map[string]int64 `json:"by_status"`
}

type WorkspaceStats struct {
	Total         int64   `json:"total"`
	Occupied      int64   `json:"occupied"`
	OccupancyRate float64 `json:"occupancy_rate"`
}

type AttendanceStats struct {
	CheckedInToday int64   `json:"checked_in_today"`
	AverageHours   float64 `json:"average_hours"`
}

type SummaryResponse struct {
	Bookings   BookingStats    `json:"bookings"`
	Workspaces WorkspaceStats  `json:"workspaces"`
	Attendance AttendanceStats `json:"attendance"`
}
