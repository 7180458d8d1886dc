package operations

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const (
	DefaultInitialBranch = "main"
	DefaultCommitMessage = "Commit changes"
	DefaultRemote        = "origin"
)

// Params carries the kind-specific parameters of a Job. Fields not used by a kind are ignored.
type Params struct {
	Path          string   // repository path (target directory for init)
	URL           string   // clone source, may carry credentials
	TargetPath    string   // clone destination
	Branch        string   // branch for clone, push, pull and sync
	InitialBranch string   // initial branch for init
	RemoteName    string   // remote for push, sync and fetch
	PushURL       string   // push destination overriding the remote URL, used once
	Message       string   // commit message
	Files         []string // files to stage for commit
	Recursive     bool     // clone submodules
	Depth         *int     // shallow clone depth, nil for full history
	SetUpstream   bool     // record tracking after push
}

// Job describes one git action. Jobs are single-use values.
type Job struct {
	ID     uuid.UUID
	Kind   Kind
	Params Params
}

func newJob(kind Kind, params Params) Job {
	return Job{
		ID:     uuid.Must(uuid.NewV7()),
		Kind:   kind,
		Params: params,
	}
}

func NewInitJob(path, initialBranch string) Job {
	return newJob(KindInit, Params{Path: path, InitialBranch: initialBranch})
}

func NewCloneJob(url, targetPath, branch string, depth *int, recursive bool) Job {
	return newJob(KindClone, Params{
		URL:        url,
		TargetPath: targetPath,
		Branch:     branch,
		Depth:      depth,
		Recursive:  recursive,
	})
}

func NewCommitJob(path string, files []string, message string) Job {
	return newJob(KindCommit, Params{
		Path:    path,
		Files:   append([]string(nil), files...),
		Message: message,
	})
}

func NewPushJob(path, remoteName, branch string, setUpstream bool) Job {
	return newJob(KindPush, Params{
		Path:        path,
		RemoteName:  remoteName,
		Branch:      branch,
		SetUpstream: setUpstream,
	})
}

// NewPushURLJob pushes branch to url without touching the stored remote configuration. When
// setUpstream is set, tracking is recorded against remoteName.
func NewPushURLJob(path, remoteName, url, branch string, setUpstream bool) Job {
	return newJob(KindPush, Params{
		Path:        path,
		RemoteName:  remoteName,
		PushURL:     url,
		Branch:      branch,
		SetUpstream: setUpstream,
	})
}

func NewPullJob(path, remoteName, branch string) Job {
	return newJob(KindPull, Params{Path: path, RemoteName: remoteName, Branch: branch})
}

func NewSyncJob(path, remoteName, branch string) Job {
	return newJob(KindSync, Params{Path: path, RemoteName: remoteName, Branch: branch})
}

func NewFetchJob(path, remoteName string) Job {
	return newJob(KindFetch, Params{Path: path, RemoteName: remoteName})
}

// RepoPath returns the repository the job works on.
func (j Job) RepoPath() string {
	if j.Kind == KindClone {
		return j.Params.TargetPath
	}
	return j.Params.Path
}

// Validate checks the parameters required by the job kind and fills defaults in place.
func (j *Job) Validate() error {
	if j.ID == uuid.Nil {
		return fmt.Errorf("%w: missing id", ErrInvalidJob)
	}
	if !j.Kind.IsValid() {
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidJob, j.Kind)
	}

	p := &j.Params

	switch j.Kind {
	case KindInit:
		if blank(p.Path) {
			return fmt.Errorf("%w: path is required", ErrInvalidJob)
		}
		if blank(p.InitialBranch) {
			p.InitialBranch = DefaultInitialBranch
		}
	case KindClone:
		if blank(p.URL) {
			return fmt.Errorf("%w: url is required", ErrInvalidJob)
		}
		if blank(p.TargetPath) {
			return fmt.Errorf("%w: target path is required", ErrInvalidJob)
		}
		if p.Depth != nil && *p.Depth <= 0 {
			return fmt.Errorf("%w: depth must be positive, got %d", ErrInvalidJob, *p.Depth)
		}
	case KindCommit:
		if blank(p.Path) {
			return fmt.Errorf("%w: path is required", ErrInvalidJob)
		}
		if len(p.Files) == 0 {
			return fmt.Errorf("%w: no files selected", ErrInvalidJob)
		}
		if blank(p.Message) {
			p.Message = DefaultCommitMessage
		}
	case KindPush:
		if blank(p.Path) {
			return fmt.Errorf("%w: path is required", ErrInvalidJob)
		}
		if blank(p.RemoteName) && blank(p.PushURL) {
			return fmt.Errorf("%w: remote name or push url is required", ErrInvalidJob)
		}
		if blank(p.Branch) {
			return fmt.Errorf("%w: branch is required", ErrInvalidJob)
		}
	case KindSync:
		if blank(p.Path) {
			return fmt.Errorf("%w: path is required", ErrInvalidJob)
		}
		if blank(p.RemoteName) {
			return fmt.Errorf("%w: remote name is required", ErrInvalidJob)
		}
		if blank(p.Branch) {
			return fmt.Errorf("%w: branch is required", ErrInvalidJob)
		}
	case KindPull:
		if blank(p.Path) {
			return fmt.Errorf("%w: path is required", ErrInvalidJob)
		}
	case KindFetch:
		if blank(p.Path) {
			return fmt.Errorf("%w: path is required", ErrInvalidJob)
		}
		if blank(p.RemoteName) {
			p.RemoteName = DefaultRemote
		}
	}

	return nil
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
