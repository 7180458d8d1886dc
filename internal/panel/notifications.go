package panel

import "context"

type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notification is a user facing message.
type Notification struct {
	Level   Level  `json:"level"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// Notifier receives notifications and panel signals. Calls may come from any goroutine.
type Notifier interface {
	Notify(Notification)
	RepositoryOpened(path string)
	RepositoryInitialized(path string)
	StateChanged(State)
}

// BranchView shows the branch list. A view that reports a selection back through
// Controller.OnBranchSelected while SetBranches runs passes the ctx it was given, so the echo
// is recognized and ignored.
type BranchView interface {
	SetBranches(ctx context.Context, branches []string, current string)
}

type nopNotifier struct{}

func (nopNotifier) Notify(Notification)          {}
func (nopNotifier) RepositoryOpened(string)      {}
func (nopNotifier) RepositoryInitialized(string) {}
func (nopNotifier) StateChanged(State)           {}

type nopBranchView struct{}

func (nopBranchView) SetBranches(context.Context, []string, string) {}
