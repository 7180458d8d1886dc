package panel

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mgit-app/mgit/internal/git"
	"go.uber.org/zap"
)

// local runs fn against the opened repository while no job is running and reconciles afterwards,
// whether fn failed or not.
func (c *Controller) local(action string, fn func(repo Accessor) error) error {
	c.repoMu.Lock()
	defer c.repoMu.Unlock()

	if c.isBusy() {
		return ErrBusy
	}

	repo, _, err := c.current()
	if err != nil {
		return err
	}

	err = fn(repo)
	c.reconcile()

	if err != nil {
		c.logger.Warn("panel action failed", zap.String("action", action), zap.Error(err))
		if !isInputError(err) {
			c.notifier.Notify(Notification{
				Level:   LevelError,
				Title:   fmt.Sprintf("%s failed", action),
				Message: git.RedactSecrets(err.Error()),
			})
		}
		return err
	}

	return nil
}

// read runs fn against the opened repository. Reads are allowed while a job runs.
func (c *Controller) read(fn func(repo Accessor) error) error {
	c.repoMu.Lock()
	defer c.repoMu.Unlock()

	repo, _, err := c.current()
	if err != nil {
		return err
	}
	return fn(repo)
}

func (c *Controller) success(title, message string) {
	c.notifier.Notify(Notification{Level: LevelSuccess, Title: title, Message: message})
}

func isInputError(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrConfirmationRequired) ||
		errors.Is(err, ErrNoRepository) ||
		errors.Is(err, ErrBusy)
}

func (c *Controller) Stage(_ context.Context, paths []string) error {
	paths = compact(paths)
	if len(paths) == 0 {
		return fmt.Errorf("%w: select at least one file", ErrInvalidInput)
	}

	return c.local("stage", func(repo Accessor) error {
		return repo.Stage(paths)
	})
}

func (c *Controller) Unstage(_ context.Context, paths []string) error {
	paths = compact(paths)
	if len(paths) == 0 {
		return fmt.Errorf("%w: select at least one file", ErrInvalidInput)
	}

	return c.local("unstage", func(repo Accessor) error {
		return repo.Unstage(paths)
	})
}

// Discard drops local changes of paths. It cannot be undone.
func (c *Controller) Discard(_ context.Context, paths []string, confirm bool) error {
	paths = compact(paths)
	if len(paths) == 0 {
		return fmt.Errorf("%w: select at least one file", ErrInvalidInput)
	}
	if !confirm {
		return fmt.Errorf("%w: discard changes in %d file(s)", ErrConfirmationRequired, len(paths))
	}

	return c.local("discard", func(repo Accessor) error {
		if err := repo.Discard(paths); err != nil {
			return err
		}
		c.success("Changes discarded", fmt.Sprintf("Discarded changes in %d file(s)", len(paths)))
		return nil
	})
}

// CheckoutBranch switches to name. Checking out the current branch is a no-op.
func (c *Controller) CheckoutBranch(_ context.Context, name string, confirm bool) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: branch name is required", ErrInvalidInput)
	}

	return c.local("checkout", func(repo Accessor) error {
		current, _ := repo.CurrentBranch()
		if current == name {
			return nil
		}
		if !confirm {
			return fmt.Errorf("%w: switch to branch %s", ErrConfirmationRequired, name)
		}

		if err := repo.CheckoutBranch(name); err != nil {
			return err
		}
		c.success("Branch switched", fmt.Sprintf("Switched to %s", name))
		return nil
	})
}

// OnBranchSelected handles a selection made in the branch view. Selections reported with the
// context of a repopulation are echoes of the controller's own update and are ignored.
func (c *Controller) OnBranchSelected(ctx context.Context, name string, confirm bool) error {
	if isBranchRefresh(ctx) {
		c.logger.Debug("ignoring branch selection echo", zap.String("branch", name))
		return nil
	}

	return c.CheckoutBranch(ctx, name, confirm)
}

func (c *Controller) CreateBranch(_ context.Context, name string, checkout bool) error {
	name = strings.TrimSpace(name)
	if name == "" || strings.ContainsAny(name, " ~^:?*[\\") {
		return fmt.Errorf("%w: invalid branch name %q", ErrInvalidInput, name)
	}

	return c.local("create branch", func(repo Accessor) error {
		if err := repo.CreateBranch(name); err != nil {
			return err
		}
		if checkout {
			if err := repo.CheckoutBranch(name); err != nil {
				return err
			}
		}
		c.success("Branch created", fmt.Sprintf("Created branch %s", name))
		return nil
	})
}

// MergeBranch merges name into the current branch.
func (c *Controller) MergeBranch(_ context.Context, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: branch name is required", ErrInvalidInput)
	}

	var message string
	err := c.local("merge", func(repo Accessor) error {
		msg, err := repo.MergeBranch(name)
		if err != nil {
			return err
		}
		message = msg
		c.success("Merge finished", msg)
		return nil
	})

	return message, err
}

// DeleteBranch deletes name. Deleting is destructive so it needs confirm, and an unmerged
// branch additionally needs force.
func (c *Controller) DeleteBranch(_ context.Context, name string, force, confirm bool) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: branch name is required", ErrInvalidInput)
	}
	if !confirm {
		return fmt.Errorf("%w: delete branch %s", ErrConfirmationRequired, name)
	}

	return c.local("delete branch", func(repo Accessor) error {
		if err := repo.DeleteBranch(name, force); err != nil {
			return err
		}
		c.success("Branch deleted", fmt.Sprintf("Deleted branch %s", name))
		return nil
	})
}

// AddRemote links a remote. An existing remote is only repointed with replace.
func (c *Controller) AddRemote(_ context.Context, name, rawURL string, replace bool) error {
	name = strings.TrimSpace(name)
	rawURL = NormalizeURL(rawURL)
	if name == "" || rawURL == "" {
		return fmt.Errorf("%w: remote name and url are required", ErrInvalidInput)
	}

	return c.local("add remote", func(repo Accessor) error {
		err := repo.AddRemote(name, rawURL)
		if errors.Is(err, git.ErrRemoteExists) {
			if !replace {
				return fmt.Errorf("%w: remote %s already exists", ErrConfirmationRequired, name)
			}
			err = repo.SetRemoteURL(name, rawURL)
		}
		if err != nil {
			return err
		}

		c.success("Remote added", fmt.Sprintf("%s now points at %s", name, git.SanitizeURL(rawURL)))
		return nil
	})
}

func (c *Controller) RemoveRemote(_ context.Context, name string, confirm bool) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: remote name is required", ErrInvalidInput)
	}
	if !confirm {
		return fmt.Errorf("%w: remove remote %s", ErrConfirmationRequired, name)
	}

	return c.local("remove remote", func(repo Accessor) error {
		if err := repo.RemoveRemote(name); err != nil {
			return err
		}
		c.success("Remote removed", fmt.Sprintf("Removed remote %s", name))
		return nil
	})
}

// RemoteDetails lists remotes with sanitized URLs.
func (c *Controller) RemoteDetails(_ context.Context) ([]git.RemoteInfo, error) {
	var remotes []git.RemoteInfo
	err := c.read(func(repo Accessor) error {
		var err error
		remotes, err = repo.RemoteDetails()
		return err
	})
	return remotes, err
}

func (c *Controller) Stash(ctx context.Context, message string) error {
	return c.local("stash", func(repo Accessor) error {
		if err := repo.StashChanges(ctx, strings.TrimSpace(message)); err != nil {
			return err
		}
		c.success("Changes stashed", "Local changes were saved to the stash")
		return nil
	})
}

func (c *Controller) Stashes(ctx context.Context) ([]string, error) {
	var stashes []string
	err := c.read(func(repo Accessor) error {
		var err error
		stashes, err = repo.StashList(ctx)
		return err
	})
	return stashes, err
}

func (c *Controller) ApplyStash(ctx context.Context, id string) error {
	return c.local("apply stash", func(repo Accessor) error {
		if err := repo.ApplyStash(ctx, id); err != nil {
			return err
		}
		c.success("Stash applied", id)
		return nil
	})
}

func (c *Controller) DropStash(ctx context.Context, id string) error {
	return c.local("drop stash", func(repo Accessor) error {
		if err := repo.DropStash(ctx, id); err != nil {
			return err
		}
		c.success("Stash dropped", id)
		return nil
	})
}

// ClearStash drops every stash entry. It cannot be undone.
func (c *Controller) ClearStash(ctx context.Context, confirm bool) error {
	if !confirm {
		return fmt.Errorf("%w: clear all stashes", ErrConfirmationRequired)
	}

	return c.local("clear stash", func(repo Accessor) error {
		if err := repo.ClearStash(ctx); err != nil {
			return err
		}
		c.success("Stash cleared", "All stash entries were dropped")
		return nil
	})
}

// History returns up to count commits of the current branch, newest first.
func (c *Controller) History(_ context.Context, count int) ([]git.CommitInfo, error) {
	if count <= 0 {
		count = DefaultHistoryCount
	}

	var commits []git.CommitInfo
	err := c.read(func(repo Accessor) error {
		var err error
		commits, err = repo.CommitHistory(count)
		return err
	})
	return commits, err
}

func (c *Controller) CommitDetails(_ context.Context, hash string) (string, error) {
	hash = strings.TrimSpace(hash)
	if hash == "" {
		return "", fmt.Errorf("%w: commit hash is required", ErrInvalidInput)
	}

	var details string
	err := c.read(func(repo Accessor) error {
		var err error
		details, err = repo.CommitDetails(hash)
		return err
	})
	return details, err
}

const DefaultHistoryCount = 50
