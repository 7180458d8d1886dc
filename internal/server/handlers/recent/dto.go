package recent

import "time"

// ListQuery represents the query of the recent repositories endpoint.
type ListQuery struct {
	Limit int `query:"limit" validate:"omitempty,min=1,max=100"`
}

// EntryResponse represents one recently opened repository.
type EntryResponse struct {
	Path     string    `json:"path"`
	OpenedAt time.Time `json:"opened_at"`
}
