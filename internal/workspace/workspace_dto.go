package workspace

type CreateWorkspaceRequest struct {
	Name      string   `json:"name" binding:"required"`
	Kind      string   `json:"kind" binding:"required"`
	Capacity  int      `json:"capacity"`
	Amenities []string `json:"amenities"`
	Location  string   `json:"location"`
}

// UpdateWorkspaceRequest merges only the fields that are present.
type UpdateWorkspaceRequest struct {
	Name      *string   `json:"name"`
	Kind      *string   `json:"kind"`
	Capacity  *int      `json:"capacity"`
	Amenities *[]string `json:"amenities"`
	Location  *string   `json:"location"`
	Status    *string   `json:"status"`
}

type ListFilter struct {
	Kind   string
	Status string
}

type WorkspaceResponse struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Kind          string   `json:"kind"`
	Capacity      int      `json:"capacity"`
	Amenities     []string `json:"amenities"`
	Location      string   `json:"location,omitempty"`
	Status        string   `json:"status"`
	OccupiedFrom  *string  `json:"occupied_from,omitempty"`
	OccupiedUntil *string  `json:"occupied_until,omitempty"`
	CreatedAt     string   `json:"created_at"`
}
