package operations

import (
	"time"

	"github.com/google/uuid"
)

// ListQuery represents the query of the operations list endpoint.
type ListQuery struct {
	Path  string `query:"path"`
	Kind  string `query:"kind"`
	Limit int    `query:"limit" validate:"omitempty,min=1,max=100"`
}

// RecordResponse represents one executed operation.
type RecordResponse struct {
	ID          uuid.UUID  `json:"id"`
	RepoPath    string     `json:"repo_path"`
	Kind        string     `json:"kind"`
	Status      string     `json:"status"`
	Message     string     `json:"message,omitempty"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	DurationMs  int64      `json:"duration_ms"`
}

// ClearResponse represents the response payload for clearing a repository history.
type ClearResponse struct {
	Deleted int `json:"deleted"`
}
