package panel

import (
	"context"

	"github.com/google/uuid"
	"github.com/mgit-app/mgit/internal/accounts"
	"github.com/mgit-app/mgit/internal/git"
	"github.com/mgit-app/mgit/internal/hosting"
	"github.com/mgit-app/mgit/internal/operations"
)

// Accessor is one opened working tree.
type Accessor interface {
	Path() string
	IsValidRepo() bool
	ChangedFiles() ([]git.ChangedFile, error)
	CurrentBranch() (string, error)
	Branches() ([]string, error)
	CheckoutBranch(name string) error
	CreateBranch(name string) error
	MergeBranch(name string) (string, error)
	DeleteBranch(name string, force bool) error
	Remotes() ([]string, error)
	RemoteDetails() ([]git.RemoteInfo, error)
	AddRemote(name, url string) error
	RemoveRemote(name string) error
	SetRemoteURL(name, url string) error
	HasRemoteBranch(remote, branch string) bool
	Stage(paths []string) error
	Unstage(paths []string) error
	Discard(paths []string) error
	StashChanges(ctx context.Context, message string) error
	StashList(ctx context.Context) ([]string, error)
	ApplyStash(ctx context.Context, id string) error
	DropStash(ctx context.Context, id string) error
	ClearStash(ctx context.Context) error
	CommitHistory(count int) ([]git.CommitInfo, error)
	CommitDetails(hash string) (string, error)
	ImportExternalRepo(ctx context.Context, url string, asRemote bool, remoteName string, progress git.ProgressFunc) error
}

// Workspaces opens repositories by path.
type Workspaces interface {
	Open(path string) (Accessor, error)
}

// JobRunner executes jobs one at a time.
type JobRunner interface {
	Submit(ctx context.Context, job operations.Job, then operations.Continuation) error
	StartOperation(ctx context.Context, kind operations.Kind, repoPath string, fn operations.Operation) (uuid.UUID, error)
	Cancel() bool
	Busy() bool
	WaitIdle(ctx context.Context) error
}

// Hosting creates repositories on a hosting provider.
type Hosting interface {
	CreateRepository(ctx context.Context, account accounts.Account, req hosting.CreateRequest) (string, error)
}

// Accounts returns the logged in hosting account.
type Accounts interface {
	Current() (accounts.Account, error)
}

// RecentStore remembers opened repositories.
type RecentStore interface {
	Touch(ctx context.Context, path string) error
}

type gitWorkspaces struct {
	git *git.Service
}

// NewGitWorkspaces opens repositories with the go-git service.
func NewGitWorkspaces(svc *git.Service) Workspaces {
	return gitWorkspaces{git: svc}
}

func (w gitWorkspaces) Open(path string) (Accessor, error) {
	repo, err := w.git.Open(path)
	if err != nil {
		return nil, err
	}
	return repo, nil
}

var _ Accessor = (*git.Repository)(nil)
