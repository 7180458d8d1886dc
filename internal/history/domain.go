package history

import (
	"time"

	"github.com/google/uuid"
	"github.com/mgit-app/mgit/internal/operations"
)

type Status string

const (
	StatusRunning   Status = "running"   // Job has started
	StatusSuccess   Status = "success"   // Job finished successfully
	StatusFailed    Status = "failed"    // Job finished with an error
	StatusCancelled Status = "cancelled" // Job was cancelled or timed out by the user
)

// Record is one executed job. ID is the runner's job ID.
type Record struct {
	ID       uuid.UUID
	RepoPath string
	Kind     operations.Kind

	Status      Status
	Message     string // Redacted result message
	StartedAt   time.Time
	CompletedAt *time.Time
}

// Duration returns how long the job ran, or zero while it is running.
func (r Record) Duration() time.Duration {
	if r.CompletedAt == nil {
		return 0
	}
	return r.CompletedAt.Sub(r.StartedAt)
}
