package panel

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/mgit-app/mgit/internal/git"
	"github.com/mgit-app/mgit/internal/hosting"
	"github.com/mgit-app/mgit/internal/operations"
	"go.uber.org/zap"
)

type InitRequest struct {
	Parent       string
	Name         string
	CreateRemote bool
	Private      bool
	Confirm      bool
}

type CloneRequest struct {
	URL       string
	Parent    string
	Name      string
	Branch    string
	Depth     *int
	Recursive bool
}

// InitRepository creates a repository under Parent/Name and opens it once the job succeeds.
// With CreateRemote the repository is also created on the hosting provider of the current
// account, linked as origin and pushed.
func (c *Controller) InitRepository(_ context.Context, req InitRequest) (uuid.UUID, error) {
	parent, err := absPath(req.Parent)
	if err != nil {
		return uuid.Nil, err
	}
	name := strings.TrimSpace(req.Name)
	if strings.ContainsAny(name, `/\`) {
		return uuid.Nil, fmt.Errorf("%w: invalid repository name %q", ErrInvalidInput, name)
	}

	path := filepath.Join(parent, name)
	if nonEmptyDir(path) && !req.Confirm {
		return uuid.Nil, fmt.Errorf("%w: %s is not empty", ErrConfirmationRequired, path)
	}

	repoName := name
	if repoName == "" {
		repoName = filepath.Base(path)
	}

	job := operations.NewInitJob(path, operations.DefaultInitialBranch)
	err = c.submit(job, func(res operations.Result) {
		if !res.Success {
			return
		}

		c.repoMu.Lock()
		_, openErr := c.open(c.baseCtx, path)
		c.repoMu.Unlock()
		if openErr != nil {
			return
		}

		c.notifier.RepositoryInitialized(path)

		if req.CreateRemote {
			c.tasks.Add(1)
			go func() {
				defer c.tasks.Done()
				c.publishToHosting(path, repoName, req.Private)
			}()
		}
	})
	if err != nil {
		return uuid.Nil, err
	}

	return job.ID, nil
}

// publishToHosting creates the hosted repository, links it as origin and pushes the current
// branch. Once the hosted repository exists every later failure names its clone URL.
func (c *Controller) publishToHosting(path, name string, private bool) {
	account, err := c.accounts.Current()
	if err != nil {
		c.notifier.Notify(Notification{
			Level:   LevelWarning,
			Title:   "Remote not created",
			Message: "Log in to a hosting account to create a remote repository",
		})
		return
	}

	cloneURL, err := c.hosting.CreateRepository(c.baseCtx, account, hosting.CreateRequest{
		Name:        name,
		Description: hosting.DefaultDescription(name),
		Private:     private,
	})
	if err != nil {
		c.notifier.Notify(Notification{
			Level:   LevelError,
			Title:   "Remote not created",
			Message: git.RedactSecrets(err.Error()),
		})
		return
	}

	orphaned := func(cause string) {
		c.logger.Warn("hosted repository created but not pushed",
			zap.String("clone_url", git.SanitizeURL(cloneURL)),
			zap.String("cause", cause))
		c.notifier.Notify(Notification{
			Level: LevelWarning,
			Title: "Remote created, push failed",
			Message: fmt.Sprintf("Repository was created at %s but the push failed: %s. Push it manually.",
				cloneURL, cause),
		})
	}

	pushURL, err := hosting.AuthenticatedURL(account, cloneURL)
	if err != nil {
		orphaned(err.Error())
		return
	}

	// the init job's continuation is still finishing
	if err = c.runner.WaitIdle(c.baseCtx); err != nil {
		orphaned(err.Error())
		return
	}

	err = c.linkAndPush(path, cloneURL, pushURL, func(res operations.Result) {
		if !res.Success {
			orphaned(res.Message)
		}
	})
	if err != nil {
		orphaned(git.RedactSecrets(err.Error()))
	}
}

// linkAndPush points origin at the clean clone URL of the opened repository and submits the push
// of its current branch to pushURL.
func (c *Controller) linkAndPush(path, cloneURL, pushURL string, then operations.Continuation) error {
	c.repoMu.Lock()
	defer c.repoMu.Unlock()

	if c.isBusy() {
		return ErrBusy
	}

	repo, handle, err := c.current()
	if err != nil {
		return err
	}
	if handle.Path != path {
		return fmt.Errorf("%w: %s is no longer open", ErrNoRepository, path)
	}

	err = repo.AddRemote(operations.DefaultRemote, cloneURL)
	if errors.Is(err, git.ErrRemoteExists) {
		err = repo.SetRemoteURL(operations.DefaultRemote, cloneURL)
	}
	if err != nil {
		return err
	}

	branch, err := repo.CurrentBranch()
	if err != nil || branch == "" {
		branch = operations.DefaultInitialBranch
	}

	c.reconcile()

	job := operations.NewPushURLJob(path, operations.DefaultRemote, pushURL, branch, true)
	return c.submitLocked(job, then)
}

// CloneRepository clones URL into Parent/Name and opens the clone once the job succeeds.
func (c *Controller) CloneRepository(_ context.Context, req CloneRequest) (uuid.UUID, error) {
	rawURL := NormalizeURL(req.URL)
	if rawURL == "" {
		return uuid.Nil, fmt.Errorf("%w: repository url is required", ErrInvalidInput)
	}
	parent, err := absPath(req.Parent)
	if err != nil {
		return uuid.Nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = RepoNameFromURL(rawURL)
	}
	if name == "" || strings.ContainsAny(name, `/\`) {
		return uuid.Nil, fmt.Errorf("%w: invalid directory name %q", ErrInvalidInput, name)
	}
	if req.Depth != nil && *req.Depth <= 0 {
		return uuid.Nil, fmt.Errorf("%w: depth must be positive", ErrInvalidInput)
	}

	target := filepath.Join(parent, name)
	if nonEmptyDir(target) {
		return uuid.Nil, fmt.Errorf("%w: %s already exists and is not empty", ErrInvalidInput, target)
	}

	job := operations.NewCloneJob(rawURL, target, strings.TrimSpace(req.Branch), req.Depth, req.Recursive)
	err = c.submit(job, func(res operations.Result) {
		if !res.Success {
			return
		}

		c.repoMu.Lock()
		_, openErr := c.open(c.baseCtx, target)
		c.repoMu.Unlock()
		if openErr == nil {
			c.notifier.RepositoryOpened(target)
		}
	})
	if err != nil {
		return uuid.Nil, err
	}

	return job.ID, nil
}

// Commit stages exactly files and commits them.
func (c *Controller) Commit(_ context.Context, files []string, message string) (uuid.UUID, error) {
	files = compact(files)
	if len(files) == 0 {
		return uuid.Nil, fmt.Errorf("%w: select at least one file", ErrInvalidInput)
	}

	c.repoMu.Lock()
	defer c.repoMu.Unlock()

	_, handle, err := c.current()
	if err != nil {
		return uuid.Nil, err
	}

	job := operations.NewCommitJob(handle.Path, files, message)
	if err = c.submitLocked(job, nil); err != nil {
		return uuid.Nil, err
	}

	return job.ID, nil
}

// Push pushes the current branch. When setUpstream is nil tracking is set up only for branches
// the remote does not know yet.
func (c *Controller) Push(_ context.Context, remote string, setUpstream *bool) (uuid.UUID, error) {
	c.repoMu.Lock()
	defer c.repoMu.Unlock()

	repo, handle, err := c.current()
	if err != nil {
		return uuid.Nil, err
	}
	remote, err = chooseRemote(handle.Remotes, strings.TrimSpace(remote))
	if err != nil {
		return uuid.Nil, err
	}
	branch, err := repo.CurrentBranch()
	if err != nil || branch == "" {
		return uuid.Nil, fmt.Errorf("%w: no branch checked out", ErrInvalidInput)
	}

	upstream := !repo.HasRemoteBranch(remote, branch)
	if setUpstream != nil {
		upstream = *setUpstream
	}

	job := operations.NewPushJob(handle.Path, remote, branch, upstream)
	if err = c.submitLocked(job, nil); err != nil {
		return uuid.Nil, err
	}

	return job.ID, nil
}

// Pull pulls the current branch from its configured remote.
func (c *Controller) Pull(_ context.Context) (uuid.UUID, error) {
	c.repoMu.Lock()
	defer c.repoMu.Unlock()

	_, handle, err := c.current()
	if err != nil {
		return uuid.Nil, err
	}
	if !handle.HasRemotes() {
		return uuid.Nil, ErrNoRemote
	}

	job := operations.NewPullJob(handle.Path, "", "")
	if err = c.submitLocked(job, nil); err != nil {
		return uuid.Nil, err
	}

	return job.ID, nil
}

// Sync fetches, pulls and pushes the current branch. It rewrites both sides so it needs confirm.
func (c *Controller) Sync(_ context.Context, remote string, confirm bool) (uuid.UUID, error) {
	c.repoMu.Lock()
	defer c.repoMu.Unlock()

	repo, handle, err := c.current()
	if err != nil {
		return uuid.Nil, err
	}
	remote, err = chooseRemote(handle.Remotes, strings.TrimSpace(remote))
	if err != nil {
		return uuid.Nil, err
	}
	branch, err := repo.CurrentBranch()
	if err != nil || branch == "" {
		return uuid.Nil, fmt.Errorf("%w: no branch checked out", ErrInvalidInput)
	}
	if !confirm {
		return uuid.Nil, fmt.Errorf("%w: sync %s with %s", ErrConfirmationRequired, branch, remote)
	}

	job := operations.NewSyncJob(handle.Path, remote, branch)
	if err = c.submitLocked(job, nil); err != nil {
		return uuid.Nil, err
	}

	return job.ID, nil
}

// Fetch updates remote tracking refs. An empty remote means origin, or the only remote.
func (c *Controller) Fetch(_ context.Context, remote string) (uuid.UUID, error) {
	c.repoMu.Lock()
	defer c.repoMu.Unlock()

	_, handle, err := c.current()
	if err != nil {
		return uuid.Nil, err
	}
	if !handle.HasRemotes() {
		return uuid.Nil, ErrNoRemote
	}

	remote = strings.TrimSpace(remote)
	if remote == "" {
		remote = handle.Remotes[0]
		for _, r := range handle.Remotes {
			if r == operations.DefaultRemote {
				remote = r
			}
		}
	}
	if remote, err = chooseRemote(handle.Remotes, remote); err != nil {
		return uuid.Nil, err
	}

	job := operations.NewFetchJob(handle.Path, remote)
	if err = c.submitLocked(job, nil); err != nil {
		return uuid.Nil, err
	}

	return job.ID, nil
}

// CancelOperation aborts the running job. It reports false when nothing was running.
func (c *Controller) CancelOperation() bool {
	return c.runner.Cancel()
}

// ImportExternalRepo brings an external repository into the opened one. As a remote it is only
// linked, and pulled afterwards when pull is set. Otherwise its history is pulled in through a
// temporary remote in the background.
func (c *Controller) ImportExternalRepo(ctx context.Context, rawURL string, asRemote bool, remoteName string, pull bool) (uuid.UUID, error) {
	rawURL = NormalizeURL(rawURL)
	if rawURL == "" {
		return uuid.Nil, fmt.Errorf("%w: repository url is required", ErrInvalidInput)
	}
	remoteName = strings.TrimSpace(remoteName)

	c.repoMu.Lock()
	defer c.repoMu.Unlock()

	repo, handle, err := c.current()
	if err != nil {
		return uuid.Nil, err
	}

	if !asRemote {
		return c.startOperationLocked(operations.KindPull, handle.Path,
			func(ctx context.Context, progress git.ProgressFunc) (string, error) {
				if err := repo.ImportExternalRepo(ctx, rawURL, false, "", progress); err != nil {
					return "", err
				}
				return fmt.Sprintf("Imported %s", git.SanitizeURL(rawURL)), nil
			})
	}

	if c.isBusy() {
		return uuid.Nil, ErrBusy
	}
	if err = repo.ImportExternalRepo(ctx, rawURL, true, remoteName, nil); err != nil {
		return uuid.Nil, err
	}
	if remoteName == "" {
		remoteName = operations.DefaultRemote
	}

	c.reconcile()
	c.notifier.Notify(Notification{
		Level:   LevelSuccess,
		Title:   "Remote added",
		Message: fmt.Sprintf("%s now points at %s", remoteName, git.SanitizeURL(rawURL)),
	})

	if !pull {
		return uuid.Nil, nil
	}

	job := operations.NewPullJob(handle.Path, remoteName, "")
	if err = c.submitLocked(job, nil); err != nil {
		return uuid.Nil, err
	}

	return job.ID, nil
}

func compact(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
