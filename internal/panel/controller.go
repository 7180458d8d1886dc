package panel

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/mgit-app/mgit/internal/git"
	"github.com/mgit-app/mgit/internal/operations"
	"go.uber.org/zap"
)

// Controller owns the opened repository and serializes every panel action against the runner.
//
// Only the controller replaces the Handle. Jobs are submitted through the runner and the
// repository state is re-read from disk after every finished job, successful or not.
type Controller struct {
	workspaces Workspaces
	runner     JobRunner
	hosting    Hosting
	accounts   Accounts
	recent     RecentStore
	notifier   Notifier
	branchView BranchView

	logger *zap.Logger

	// jobs outlive the request that started them
	baseCtx context.Context
	cancel  context.CancelFunc
	tasks   sync.WaitGroup

	// repoMu serializes access to the accessor between local actions, submissions and
	// reconciliation.
	repoMu sync.Mutex

	mu          sync.Mutex
	version     uint64
	handle      Handle
	repo        Accessor
	busy        bool
	operation   operations.Kind
	changed     []git.ChangedFile
	branches    []string
	affordances Affordances
}

func NewController(
	workspaces Workspaces,
	runner JobRunner,
	hosting Hosting,
	accounts Accounts,
	recent RecentStore,
	notifier Notifier,
	branchView BranchView,
	logger *zap.Logger,
) *Controller {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	if branchView == nil {
		branchView = nopBranchView{}
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Controller{
		workspaces: workspaces,
		runner:     runner,
		hosting:    hosting,
		accounts:   accounts,
		recent:     recent,
		notifier:   notifier,
		branchView: branchView,

		logger: logger,

		baseCtx: ctx,
		cancel:  cancel,

		affordances: DeriveAffordances(false, false, false),
	}
}

// Close cancels background work started by the controller and waits for it.
func (c *Controller) Close() {
	c.cancel()
	c.tasks.Wait()
}

// Handle returns the current repository handle.
func (c *Controller) Handle() Handle {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.handle.clone()
}

// State returns the current panel snapshot.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.stateLocked()
}

func (c *Controller) stateLocked() State {
	return State{
		Handle:       c.handle.clone(),
		Busy:         c.busy,
		Operation:    c.operation,
		Affordances:  c.affordances,
		ChangedFiles: slices.Clone(c.changed),
		Branches:     slices.Clone(c.branches),
	}
}

// OpenRepository makes path the active repository.
func (c *Controller) OpenRepository(ctx context.Context, path string) (State, error) {
	path, err := absPath(path)
	if err != nil {
		return c.State(), err
	}

	c.repoMu.Lock()
	defer c.repoMu.Unlock()

	if c.isBusy() {
		return c.State(), ErrBusy
	}

	state, err := c.open(ctx, path)
	if err != nil {
		return state, err
	}

	c.notifier.RepositoryOpened(path)

	return state, nil
}

// open replaces the handle with a fresh one for path. Callers hold repoMu.
func (c *Controller) open(ctx context.Context, path string) (State, error) {
	c.logger.Info("opening repository", zap.String("path", path))

	repo, err := c.workspaces.Open(path)
	if err != nil || !repo.IsValidRepo() {
		c.logger.Warn("invalid repository", zap.String("path", path), zap.Error(err))
		c.clearHandle()
		c.notifier.Notify(Notification{
			Level:   LevelWarning,
			Title:   "Invalid repository",
			Message: fmt.Sprintf("%s is not a valid git repository", path),
		})
		state := c.publish()
		if err == nil {
			err = ErrInvalidRepository
		}
		return state, fmt.Errorf("%w: %w", ErrInvalidRepository, err)
	}

	c.mu.Lock()
	c.version++
	c.repo = repo
	c.handle = Handle{Version: c.version, Path: path, Valid: true}
	c.mu.Unlock()

	state := c.reconcile()
	if !state.Handle.Valid {
		return state, ErrInvalidRepository
	}

	if !state.Handle.HasRemotes() {
		c.notifier.Notify(Notification{
			Level:   LevelInfo,
			Title:   "No remote repository",
			Message: "This repository has no remote configured, push, pull and sync are disabled",
		})
	}

	if c.recent != nil {
		if touchErr := c.recent.Touch(ctx, path); touchErr != nil {
			c.logger.Warn("failed to record recent repository", zap.String("path", path), zap.Error(touchErr))
		}
	}

	return state, nil
}

// Reconcile re-reads the repository and republishes the derived state.
func (c *Controller) Reconcile() State {
	c.repoMu.Lock()
	defer c.repoMu.Unlock()

	return c.reconcile()
}

func (c *Controller) reconcile() State {
	c.mu.Lock()
	repo := c.repo
	version := c.handle.Version
	c.mu.Unlock()

	if repo == nil {
		return c.publish()
	}

	if !repo.IsValidRepo() {
		c.invalidate(version, ErrInvalidRepository)
		return c.publish()
	}

	remotes, err := repo.Remotes()
	if err != nil {
		c.invalidate(version, err)
		return c.publish()
	}
	changed, err := repo.ChangedFiles()
	if err != nil {
		c.invalidate(version, err)
		return c.publish()
	}

	branch, err := repo.CurrentBranch()
	if err != nil {
		c.logger.Debug("failed to read current branch", zap.Error(err))
	}
	branches, err := repo.Branches()
	if err != nil {
		c.logger.Debug("failed to read branches", zap.Error(err))
	}

	c.mu.Lock()
	if c.handle.Version != version || c.repo != repo {
		// replaced meanwhile
		state := c.stateLocked()
		c.mu.Unlock()
		return state
	}
	c.handle = Handle{
		Version: version,
		Path:    c.handle.Path,
		Valid:   true,
		Remotes: remotes,
		Branch:  branch,
	}
	c.changed = changed
	c.branches = branches
	c.affordances = DeriveAffordances(true, len(remotes) > 0, c.busy)
	state := c.stateLocked()
	c.mu.Unlock()

	c.populateBranches(branches, branch)
	c.notifier.StateChanged(state)

	return state
}

// invalidate drops the handle when it still belongs to version.
func (c *Controller) invalidate(version uint64, cause error) {
	c.mu.Lock()
	if c.handle.Version != version {
		c.mu.Unlock()
		return
	}
	path := c.handle.Path
	c.mu.Unlock()

	c.logger.Warn("repository became unavailable", zap.String("path", path), zap.Error(cause))
	c.clearHandle()
	c.notifier.Notify(Notification{
		Level:   LevelError,
		Title:   "Repository unavailable",
		Message: fmt.Sprintf("%s: %s", path, git.RedactSecrets(cause.Error())),
	})
}

func (c *Controller) clearHandle() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.version++
	c.repo = nil
	c.handle = Handle{Version: c.version}
	c.changed = nil
	c.branches = nil
	c.affordances = DeriveAffordances(false, false, c.busy)
}

func (c *Controller) publish() State {
	state := c.State()
	c.notifier.StateChanged(state)
	return state
}

type branchRefreshKey struct{}

// populateBranches refreshes the branch view. Selections reported with the refresh context are
// ignored by OnBranchSelected.
func (c *Controller) populateBranches(branches []string, current string) {
	ctx := context.WithValue(c.baseCtx, branchRefreshKey{}, true)
	c.branchView.SetBranches(ctx, slices.Clone(branches), current)
}

func isBranchRefresh(ctx context.Context) bool {
	refresh, _ := ctx.Value(branchRefreshKey{}).(bool)
	return refresh
}

// OnStarted implements operations.Listener.
func (c *Controller) OnStarted(e operations.Started) {
	c.mu.Lock()
	c.busy = true
	c.operation = e.Kind
	c.affordances = DeriveAffordances(c.handle.Valid, c.handle.HasRemotes(), true)
	c.mu.Unlock()

	c.publish()
}

// OnProgress implements operations.Listener.
func (c *Controller) OnProgress(operations.Progress) {}

// OnFinished implements operations.Listener.
func (c *Controller) OnFinished(res operations.Result) {
	c.mu.Lock()
	c.busy = false
	c.operation = ""
	c.affordances = DeriveAffordances(c.handle.Valid, c.handle.HasRemotes(), false)
	c.mu.Unlock()

	switch {
	case res.Success:
		c.notifier.Notify(Notification{
			Level:   LevelSuccess,
			Title:   fmt.Sprintf("%s succeeded", res.Kind),
			Message: res.Message,
		})
	case res.Cancelled:
		c.notifier.Notify(Notification{
			Level:   LevelWarning,
			Title:   fmt.Sprintf("%s cancelled", res.Kind),
			Message: res.Message,
		})
	default:
		c.notifier.Notify(Notification{
			Level:   LevelError,
			Title:   fmt.Sprintf("%s failed", res.Kind),
			Message: res.Message,
		})
	}

	// a failed job may still have changed the repository
	c.Reconcile()
}

var _ operations.Listener = (*Controller)(nil)

func (c *Controller) isBusy() bool {
	c.mu.Lock()
	busy := c.busy
	c.mu.Unlock()

	return busy || c.runner.Busy()
}

// submit marks the controller busy and hands job to the runner. Callers must not hold repoMu.
func (c *Controller) submit(job operations.Job, then operations.Continuation) error {
	c.repoMu.Lock()
	defer c.repoMu.Unlock()

	return c.submitLocked(job, then)
}

func (c *Controller) submitLocked(job operations.Job, then operations.Continuation) error {
	if !c.markBusy(job.Kind) {
		return ErrBusy
	}

	if err := c.runner.Submit(c.baseCtx, job, then); err != nil {
		c.unmarkBusy()
		c.logger.Warn("failed to submit job", zap.Stringer("kind", job.Kind), zap.Error(err))
		return err
	}

	return nil
}

func (c *Controller) startOperationLocked(kind operations.Kind, path string, fn operations.Operation) (uuid.UUID, error) {
	if !c.markBusy(kind) {
		return uuid.Nil, ErrBusy
	}

	id, err := c.runner.StartOperation(c.baseCtx, kind, path, fn)
	if err != nil {
		c.unmarkBusy()
		return uuid.Nil, err
	}

	return id, nil
}

func (c *Controller) markBusy(kind operations.Kind) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.busy || c.runner.Busy() {
		return false
	}

	c.busy = true
	c.operation = kind
	c.affordances = DeriveAffordances(c.handle.Valid, c.handle.HasRemotes(), true)

	return true
}

func (c *Controller) unmarkBusy() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.busy = false
	c.operation = ""
	c.affordances = DeriveAffordances(c.handle.Valid, c.handle.HasRemotes(), false)
}

// current returns the opened accessor. Callers hold repoMu.
func (c *Controller) current() (Accessor, Handle, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.repo == nil || !c.handle.Valid {
		return nil, Handle{}, ErrNoRepository
	}
	return c.repo, c.handle.clone(), nil
}

// chooseRemote resolves the remote for push and sync. An empty request is only accepted when
// the choice is unambiguous.
func chooseRemote(remotes []string, requested string) (string, error) {
	if len(remotes) == 0 {
		return "", ErrNoRemote
	}

	if requested != "" {
		if !slices.Contains(remotes, requested) {
			return "", fmt.Errorf("%w: unknown remote %q", ErrInvalidInput, requested)
		}
		return requested, nil
	}

	if len(remotes) == 1 {
		return remotes[0], nil
	}

	return "", fmt.Errorf("%w: choose a remote (%s)", ErrInvalidInput, strings.Join(remotes, ", "))
}

func absPath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("%w: path is required", ErrInvalidInput)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return abs, nil
}

// nonEmptyDir reports whether path exists and has entries.
func nonEmptyDir(path string) bool {
	entries, err := os.ReadDir(path)
	return err == nil && len(entries) > 0
}
