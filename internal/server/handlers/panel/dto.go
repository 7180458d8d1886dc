package panel

import (
	"github.com/google/uuid"
	"github.com/mgit-app/mgit/internal/git"
)

// OpenRequest represents the request payload for opening a repository.
type OpenRequest struct {
	Path string `json:"path" validate:"required"`
}

// InitRequest represents the request payload for initializing a repository.
type InitRequest struct {
	Parent       string `json:"parent"        validate:"required"`
	Name         string `json:"name"          validate:"omitempty,max=255,excludesall=/\\"`
	CreateRemote bool   `json:"create_remote"`
	Private      bool   `json:"private"`
	Confirm      bool   `json:"confirm"`
}

// CloneRequest represents the request payload for cloning a repository.
type CloneRequest struct {
	URL       string `json:"url"       validate:"required"`
	Parent    string `json:"parent"    validate:"required"`
	Name      string `json:"name"      validate:"omitempty,max=255,excludesall=/\\"`
	Branch    string `json:"branch"    validate:"omitempty,max=255"`
	Depth     *int   `json:"depth"     validate:"omitempty,min=1"`
	Recursive bool   `json:"recursive"`
}

// CommitRequest represents the request payload for committing files.
type CommitRequest struct {
	Files   []string `json:"files"   validate:"required,min=1,dive,required"`
	Message string   `json:"message" validate:"max=5000"`
}

// PushRequest represents the request payload for pushing the current branch.
type PushRequest struct {
	Remote      string `json:"remote"`
	SetUpstream *bool  `json:"set_upstream"`
}

// SyncRequest represents the request payload for syncing the current branch.
type SyncRequest struct {
	Remote  string `json:"remote"`
	Confirm bool   `json:"confirm"`
}

// FetchRequest represents the request payload for fetching a remote.
type FetchRequest struct {
	Remote string `json:"remote"`
}

// PathsRequest represents the request payload for stage, unstage and discard.
type PathsRequest struct {
	Paths   []string `json:"paths"   validate:"required,min=1,dive,required"`
	Confirm bool     `json:"confirm"`
}

// BranchRequest represents the request payload for branch actions.
type BranchRequest struct {
	Name     string `json:"name"     validate:"required,max=255"`
	Checkout bool   `json:"checkout"`
	Force    bool   `json:"force"`
	Confirm  bool   `json:"confirm"`
}

// RemoteRequest represents the request payload for adding a remote.
type RemoteRequest struct {
	Name    string `json:"name"    validate:"required,max=255"`
	URL     string `json:"url"     validate:"required"`
	Replace bool   `json:"replace"`
}

// StashRequest represents the request payload for stash actions.
type StashRequest struct {
	ID      string `json:"id"`
	Message string `json:"message" validate:"max=1000"`
	Confirm bool   `json:"confirm"`
}

// ImportRequest represents the request payload for importing an external repository.
type ImportRequest struct {
	URL        string `json:"url"         validate:"required"`
	AsRemote   bool   `json:"as_remote"`
	RemoteName string `json:"remote_name" validate:"omitempty,max=255"`
	Pull       bool   `json:"pull"`
}

// HistoryQuery represents the query of the commit history endpoint.
type HistoryQuery struct {
	Count int `query:"count" validate:"omitempty,min=1,max=1000"`
}

// JobResponse is returned when an action was handed to the runner.
type JobResponse struct {
	JobID uuid.UUID `json:"job_id"`
}

// BranchesResponse represents the response payload for the branch list.
type BranchesResponse struct {
	Branches []string `json:"branches"`
	Current  string   `json:"current"`
}

// MergeResponse represents the response payload for a merge.
type MergeResponse struct {
	Message string `json:"message"`
}

// CancelResponse represents the response payload for a cancel request.
type CancelResponse struct {
	Cancelled bool `json:"cancelled"`
}

// CommitDetailsResponse represents the response payload for a single commit.
type CommitDetailsResponse struct {
	Hash    string `json:"hash"`
	Details string `json:"details"`
}

type (
	RemotesResponse = []git.RemoteInfo
	CommitsResponse = []git.CommitInfo
)
