package booking

type CalendarSyncRequest struct {
	Provider string `json:"provider" binding:"required"`
	EventID  string `json:"event_id" binding:"required"`
}

type CreateBookingRequest struct {
	WorkspaceID string               `json:"workspace_id" binding:"required"`
	StartAt     string               `json:"start_at" binding:"required"`
	EndAt       string               `json:"end_at" binding:"required"`
	Calendar    *CalendarSyncRequest `json:"calendar"`
}

type BookingResponse struct {
	ID          string `json:"id"`
	WorkspaceID string `json:"workspace_id"`
	UserID      string `json:"user_id"`
	StartAt     string `json:"start_at"`
	EndAt       string `json:"end_at"`
	Status      string `json:"status"`

	CheckedInAt  *string `json:"checked_in_at,omitempty"`
	CheckedOutAt *string `json:"checked_out_at,omitempty"`

	CalendarProvider *string `json:"calendar_provider,omitempty"`
	CalendarEventID  *string `json:"calendar_event_id,omitempty"`

	CreatedAt string `json:"created_at"`
}

// MyBookingsResponse splits the caller's history around now.
type MyBookingsResponse struct {
	Upcoming []BookingResponse `json:"upcoming"`
	Past     []BookingResponse `json:"past"`
}

type SweepResponse struct {
	Expired int `json:"expired"`
}
