package git

import "errors"

var (
	ErrRepositoryNotFound      = errors.New("repository not found")
	ErrInitFailed              = errors.New("failed to initialize repository")
	ErrCloneFailed             = errors.New("failed to clone repository")
	ErrPullFailed              = errors.New("failed to pull repository")
	ErrFetchFailed             = errors.New("failed to fetch repository")
	ErrPushFailed              = errors.New("failed to push repository")
	ErrCommitFailed            = errors.New("failed to commit changes")
	ErrNothingToCommit         = errors.New("nothing to commit")
	ErrBranchNotFound          = errors.New("branch not found")
	ErrBranchExists            = errors.New("branch already exists")
	ErrBranchNotMerged         = errors.New("branch is not fully merged")
	ErrCurrentBranch           = errors.New("cannot delete the checked out branch")
	ErrNonFastForward          = errors.New("merge is not a fast-forward")
	ErrRemoteNotFound          = errors.New("remote not found")
	ErrRemoteExists            = errors.New("remote already exists")
	ErrNoRemote                = errors.New("no remote configured")
	ErrStashFailed             = errors.New("stash operation failed")
	ErrStashNotFound           = errors.New("stash not found")
	ErrCommitNotFound          = errors.New("commit not found")
	ErrInvalidRepository       = errors.New("invalid repository")
	ErrAuthenticationFailed    = errors.New("authentication failed")
	ErrRepositoryAlreadyExists = errors.New("repository already exists")
	ErrOperationCancelled      = errors.New("operation cancelled")
	ErrTimeout                 = errors.New("operation timeout")
)
