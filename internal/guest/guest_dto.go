package guest

type CreateGuestPassRequest struct {
	GuestName  string `json:"guest_name" binding:"required"`
	GuestEmail string `json:"guest_email" binding:"required,email"`
	VisitDate  string `json:"visit_date" binding:"required"`
}

type GuestPassResponse struct {
	ID         string `json:"id"`
	HostUserID string `json:"host_user_id"`
	GuestName  string `json:"guest_name"`
	GuestEmail string `json:"guest_email"`
	VisitDate  string `json:"visit_date"`
	Status     string `json:"status"`
	CreatedAt  string `json:"created_at"`
}
