package operations

import (
	"time"

	"github.com/google/uuid"
)

// Started is emitted before any blocking work of a job begins.
type Started struct {
	JobID    uuid.UUID
	Kind     Kind
	RepoPath string
}

// Progress is purely observational and may be dropped under load.
type Progress struct {
	JobID   uuid.UUID
	Kind    Kind
	Percent int
	Message string
}

// Result is emitted exactly once per started job.
type Result struct {
	JobID     uuid.UUID
	Kind      Kind
	RepoPath  string
	Success   bool
	Cancelled bool
	Message   string
	Err       error
	StartedAt time.Time
	Duration  time.Duration
}

// Listener observes runner events. Callbacks run on the runner's dispatcher goroutine in event
// order and must not block.
type Listener interface {
	OnStarted(Started)
	OnProgress(Progress)
	OnFinished(Result)
}

// Continuation runs once after the Result of the job it was submitted with has been delivered.
type Continuation func(Result)

// ListenerFuncs adapts plain functions to Listener. Nil fields are skipped.
type ListenerFuncs struct {
	Started  func(Started)
	Progress func(Progress)
	Finished func(Result)
}

func (l ListenerFuncs) OnStarted(e Started) {
	if l.Started != nil {
		l.Started(e)
	}
}

func (l ListenerFuncs) OnProgress(e Progress) {
	if l.Progress != nil {
		l.Progress(e)
	}
}

func (l ListenerFuncs) OnFinished(e Result) {
	if l.Finished != nil {
		l.Finished(e)
	}
}

var _ Listener = ListenerFuncs{}
