package events

import (
	"context"

	"github.com/google/uuid"
	"github.com/mgit-app/mgit/internal/git"
	"github.com/mgit-app/mgit/internal/operations"
	"github.com/mgit-app/mgit/internal/panel"
)

// JobEvent is the public form of runner events. Errors are reduced to their redacted message.
type JobEvent struct {
	JobID      uuid.UUID       `json:"job_id"`
	Kind       operations.Kind `json:"kind"`
	Path       string          `json:"path,omitempty"`
	Percent    *int            `json:"percent,omitempty"`
	Message    string          `json:"message,omitempty"`
	Success    *bool           `json:"success,omitempty"`
	Cancelled  bool            `json:"cancelled,omitempty"`
	DurationMs int64           `json:"duration_ms,omitempty"`
}

type RepositoryEvent struct {
	Path string `json:"path"`
}

type BranchesEvent struct {
	Branches []string `json:"branches"`
	Current  string   `json:"current"`
}

// Bridge publishes runner events and panel signals to the hub.
type Bridge struct {
	hub *Hub
}

func NewBridge(hub *Hub) *Bridge {
	return &Bridge{hub: hub}
}

func (b *Bridge) OnStarted(e operations.Started) {
	b.hub.Publish(TypeStarted, JobEvent{JobID: e.JobID, Kind: e.Kind, Path: e.RepoPath})
}

func (b *Bridge) OnProgress(e operations.Progress) {
	percent := e.Percent
	b.hub.Publish(TypeProgress, JobEvent{
		JobID:   e.JobID,
		Kind:    e.Kind,
		Percent: &percent,
		Message: git.RedactSecrets(e.Message),
	})
}

func (b *Bridge) OnFinished(r operations.Result) {
	success := r.Success
	b.hub.Publish(TypeFinished, JobEvent{
		JobID:      r.JobID,
		Kind:       r.Kind,
		Path:       r.RepoPath,
		Message:    git.RedactSecrets(r.Message),
		Success:    &success,
		Cancelled:  r.Cancelled,
		DurationMs: r.Duration.Milliseconds(),
	})
}

func (b *Bridge) Notify(n panel.Notification) {
	n.Message = git.RedactSecrets(n.Message)
	b.hub.Publish(TypeNotification, n)
}

func (b *Bridge) RepositoryOpened(path string) {
	b.hub.Publish(TypeRepositoryOpened, RepositoryEvent{Path: path})
}

func (b *Bridge) RepositoryInitialized(path string) {
	b.hub.Publish(TypeRepositoryInitialized, RepositoryEvent{Path: path})
}

func (b *Bridge) StateChanged(s panel.State) {
	b.hub.Publish(TypeState, s)
}

func (b *Bridge) SetBranches(_ context.Context, branches []string, current string) {
	b.hub.Publish(TypeBranches, BranchesEvent{Branches: branches, Current: current})
}

var (
	_ operations.Listener = (*Bridge)(nil)
	_ panel.Notifier      = (*Bridge)(nil)
	_ panel.BranchView    = (*Bridge)(nil)
)
