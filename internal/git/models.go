package git

import (
	"io"
	"time"
)

// CloneRequest represents the request to clone a repository.
type CloneRequest struct {
	URL       string    // Git repository URL, may carry credentials
	Branch    string    // Branch to clone (optional, defaults to default branch)
	Directory string    // Directory to clone into
	Depth     int       // Shallow clone depth, 0 for full history
	Recursive bool      // Clone submodules
	Progress  io.Writer // Sideband progress sink (optional)
}

// PushRequest represents the request to push a branch.
type PushRequest struct {
	Path        string    // Repository path
	RemoteName  string    // Remote to push to
	URL         string    // Overrides the remote URL for this push only (optional)
	Branch      string    // Local branch to push
	SetUpstream bool      // Record remote/merge tracking for the branch
	Progress    io.Writer // Sideband progress sink (optional)
}

// PullRequest represents the request to fetch and merge a branch.
type PullRequest struct {
	Path       string    // Repository path
	RemoteName string    // Remote to pull from, empty for the tracked or first remote
	Branch     string    // Branch to merge, empty for the current branch
	Progress   io.Writer // Sideband progress sink (optional)
}

// FetchRequest represents the request to update remote-tracking refs.
type FetchRequest struct {
	Path       string    // Repository path
	RemoteName string    // Remote to fetch, empty for origin
	Progress   io.Writer // Sideband progress sink (optional)
}

// ChangedFile is one entry of the working tree status.
type ChangedFile struct {
	Status string `json:"status"` // Human-readable status (modified, added, deleted, untracked, ...)
	Path   string `json:"path"`   // Path relative to the repository root
}

// RemoteInfo describes a configured remote.
type RemoteInfo struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// CommitInfo represents one entry of the commit history.
type CommitInfo struct {
	Hash    string    `json:"hash"`
	Author  string    `json:"author"`
	Date    time.Time `json:"date"`
	Message string    `json:"message"`
}
