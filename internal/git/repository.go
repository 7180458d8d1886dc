package git

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/config"
	"github.com/go-git/go-git/v6/plumbing"
	"github.com/go-git/go-git/v6/plumbing/object"
	"github.com/go-git/go-git/v6/plumbing/storer"
	"go.uber.org/zap"
)

var now = time.Now

// Repository gives access to one opened working tree.
type Repository struct {
	path   string
	repo   *git.Repository
	svc    *Service
	logger *zap.Logger
}

// Path returns the working tree root.
func (r *Repository) Path() string {
	return r.path
}

// IsValidRepo reports whether the handle points at a usable working tree.
func (r *Repository) IsValidRepo() bool {
	if r == nil || r.repo == nil {
		return false
	}
	_, err := r.repo.Worktree()
	return err == nil
}

// ChangedFiles returns every path with staged or unstaged changes, sorted by path.
func (r *Repository) ChangedFiles() ([]ChangedFile, error) {
	worktree, err := r.repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRepository, err)
	}

	status, err := worktree.Status()
	if err != nil {
		r.logger.Error("failed to get status", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrInvalidRepository, err)
	}

	files := make([]ChangedFile, 0, len(status))
	for path, fs := range status {
		if !hasChange(fs) {
			continue
		}
		files = append(files, ChangedFile{
			Status: describeStatus(fs),
			Path:   path,
		})
	}

	slices.SortFunc(files, func(a, b ChangedFile) int { return strings.Compare(a.Path, b.Path) })

	return files, nil
}

// CurrentBranch returns the checked out branch, or the commit hash on a detached HEAD.
func (r *Repository) CurrentBranch() (string, error) {
	return currentBranch(r.repo)
}

// Branches returns all local branch names, sorted.
func (r *Repository) Branches() ([]string, error) {
	iter, err := r.repo.Branches()
	if err != nil {
		r.logger.Error("failed to get branches", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrInvalidRepository, err)
	}

	var names []string
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		names = append(names, ref.Name().Short())
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRepository, err)
	}

	slices.Sort(names)
	return names, nil
}

// CheckoutBranch switches the working tree to an existing local branch.
func (r *Repository) CheckoutBranch(name string) error {
	r.logger.Info("checking out branch", zap.String("branch", name))

	if _, err := r.repo.Reference(plumbing.NewBranchReferenceName(name), false); err != nil {
		return fmt.Errorf("%w: %s", ErrBranchNotFound, name)
	}

	worktree, err := r.repo.Worktree()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRepository, err)
	}

	if err := worktree.Checkout(&git.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(name),
	}); err != nil {
		r.logger.Error("failed to checkout branch", zap.String("branch", name), zap.Error(err))
		return fmt.Errorf("failed to checkout %s: %w", name, err)
	}

	return nil
}

// CreateBranch creates a branch at the current HEAD commit without checking it out.
func (r *Repository) CreateBranch(name string) error {
	r.logger.Info("creating branch", zap.String("branch", name))

	refName := plumbing.NewBranchReferenceName(name)
	if err := refName.Validate(); err != nil {
		return fmt.Errorf("invalid branch name %q: %w", name, err)
	}

	if _, err := r.repo.Reference(refName, false); err == nil {
		return fmt.Errorf("%w: %s", ErrBranchExists, name)
	}

	head, err := r.repo.Head()
	if err != nil {
		return fmt.Errorf("%w: no commit to branch from: %w", ErrInvalidRepository, err)
	}

	if err := r.repo.Storer.SetReference(plumbing.NewHashReference(refName, head.Hash())); err != nil {
		return fmt.Errorf("failed to create branch %s: %w", name, err)
	}

	return nil
}

// MergeBranch fast-forwards the current branch to name. Merges that need a merge commit are
// rejected with ErrNonFastForward.
func (r *Repository) MergeBranch(name string) (string, error) {
	r.logger.Info("merging branch", zap.String("branch", name))

	source, err := r.repo.Reference(plumbing.NewBranchReferenceName(name), true)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrBranchNotFound, name)
	}

	head, err := r.repo.Head()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidRepository, err)
	}

	if head.Hash() == source.Hash() {
		return "Already up to date", nil
	}

	headCommit, err := r.repo.CommitObject(head.Hash())
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidRepository, err)
	}
	sourceCommit, err := r.repo.CommitObject(source.Hash())
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidRepository, err)
	}

	if merged, _ := sourceCommit.IsAncestor(headCommit); merged {
		return "Already up to date", nil
	}

	if ff, ancErr := headCommit.IsAncestor(sourceCommit); ancErr != nil || !ff {
		return "", fmt.Errorf("%w: %s into %s", ErrNonFastForward, name, head.Name().Short())
	}

	worktree, err := r.repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidRepository, err)
	}

	if err := worktree.Reset(&git.ResetOptions{
		Commit: source.Hash(),
		Mode:   git.MergeReset,
	}); err != nil {
		r.logger.Error("failed to fast-forward", zap.String("branch", name), zap.Error(err))
		return "", fmt.Errorf("failed to merge %s: %w", name, err)
	}

	return fmt.Sprintf("Fast-forwarded %s to %s", head.Name().Short(), shortHash(source.Hash())), nil
}

// DeleteBranch removes a local branch. Unless force is set, branches not merged into HEAD are
// kept and ErrBranchNotMerged is returned.
func (r *Repository) DeleteBranch(name string, force bool) error {
	r.logger.Info("deleting branch", zap.String("branch", name), zap.Bool("force", force))

	refName := plumbing.NewBranchReferenceName(name)
	ref, err := r.repo.Reference(refName, true)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrBranchNotFound, name)
	}

	current, err := r.CurrentBranch()
	if err == nil && current == name {
		return fmt.Errorf("%w: %s", ErrCurrentBranch, name)
	}

	if !force {
		merged, mergeErr := r.isMerged(ref.Hash())
		if mergeErr != nil {
			return mergeErr
		}
		if !merged {
			return fmt.Errorf("%w: %s", ErrBranchNotMerged, name)
		}
	}

	if err := r.repo.Storer.RemoveReference(refName); err != nil {
		return fmt.Errorf("failed to delete branch %s: %w", name, err)
	}

	if err := r.repo.DeleteBranch(name); err != nil && !errors.Is(err, git.ErrBranchNotFound) {
		r.logger.Warn("failed to delete branch config", zap.String("branch", name), zap.Error(err))
	}

	return nil
}

func (r *Repository) isMerged(hash plumbing.Hash) (bool, error) {
	head, err := r.repo.Head()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrInvalidRepository, err)
	}
	if head.Hash() == hash {
		return true, nil
	}

	branchCommit, err := r.repo.CommitObject(hash)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrInvalidRepository, err)
	}
	headCommit, err := r.repo.CommitObject(head.Hash())
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrInvalidRepository, err)
	}

	merged, err := branchCommit.IsAncestor(headCommit)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrInvalidRepository, err)
	}
	return merged, nil
}

// Remotes returns the configured remote names, sorted.
func (r *Repository) Remotes() ([]string, error) {
	details, err := r.RemoteDetails()
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(details))
	for _, d := range details {
		names = append(names, d.Name)
	}
	return names, nil
}

// RemoteDetails returns remote names with their fetch URL, credentials stripped.
func (r *Repository) RemoteDetails() ([]RemoteInfo, error) {
	remotes, err := r.repo.Remotes()
	if err != nil {
		r.logger.Error("failed to get remotes", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrInvalidRepository, err)
	}

	details := make([]RemoteInfo, 0, len(remotes))
	for _, remote := range remotes {
		cfg := remote.Config()
		info := RemoteInfo{Name: cfg.Name}
		if len(cfg.URLs) > 0 {
			info.URL = SanitizeURL(cfg.URLs[0])
		}
		details = append(details, info)
	}

	slices.SortFunc(details, func(a, b RemoteInfo) int { return strings.Compare(a.Name, b.Name) })

	return details, nil
}

// HasRemoteBranch reports whether refs/remotes/<remote>/<branch> exists locally.
func (r *Repository) HasRemoteBranch(remote, branch string) bool {
	_, err := r.repo.Reference(plumbing.NewRemoteReferenceName(remote, branch), true)
	return err == nil
}

// AddRemote adds a new remote.
func (r *Repository) AddRemote(name, url string) error {
	r.logger.Info("adding remote", zap.String("remote", name), zap.String("url", SanitizeURL(url)))

	_, err := r.repo.CreateRemote(&config.RemoteConfig{
		Name: name,
		URLs: []string{url},
	})
	if errors.Is(err, git.ErrRemoteExists) {
		return fmt.Errorf("%w: %s", ErrRemoteExists, name)
	}
	if err != nil {
		return fmt.Errorf("failed to add remote %s: %w", name, err)
	}
	return nil
}

// SetRemoteURL replaces the URLs of an existing remote.
func (r *Repository) SetRemoteURL(name, url string) error {
	r.logger.Info("setting remote url", zap.String("remote", name), zap.String("url", SanitizeURL(url)))

	cfg, err := r.repo.Config()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRepository, err)
	}

	remote, ok := cfg.Remotes[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrRemoteNotFound, name)
	}
	remote.URLs = []string{url}

	if err := r.repo.SetConfig(cfg); err != nil {
		return fmt.Errorf("failed to update remote %s: %w", name, err)
	}
	return nil
}

// RemoveRemote removes a remote.
func (r *Repository) RemoveRemote(name string) error {
	r.logger.Info("removing remote", zap.String("remote", name))

	err := r.repo.DeleteRemote(name)
	if errors.Is(err, git.ErrRemoteNotFound) {
		return fmt.Errorf("%w: %s", ErrRemoteNotFound, name)
	}
	if err != nil {
		return fmt.Errorf("failed to remove remote %s: %w", name, err)
	}
	return nil
}

// Stage adds the given paths to the index.
func (r *Repository) Stage(paths []string) error {
	worktree, status, err := r.status()
	if err != nil {
		return err
	}

	for _, p := range paths {
		rel, relErr := relativePath(r.path, p)
		if relErr != nil {
			return relErr
		}

		if fs, ok := status[rel]; ok && fs.Worktree == git.Deleted {
			_, err = worktree.Remove(rel)
		} else {
			_, err = worktree.Add(rel)
		}
		if err != nil {
			return fmt.Errorf("failed to stage %s: %w", rel, err)
		}
	}
	return nil
}

// Unstage removes the given paths from the index, keeping working tree changes.
func (r *Repository) Unstage(paths []string) error {
	worktree, err := r.repo.Worktree()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRepository, err)
	}

	files, err := r.relativePaths(paths)
	if err != nil {
		return err
	}

	if err := worktree.Restore(&git.RestoreOptions{Staged: true, Files: files}); err != nil {
		return fmt.Errorf("failed to unstage: %w", err)
	}
	return nil
}

// Discard drops staged and unstaged changes of the given paths. Untracked files are deleted.
func (r *Repository) Discard(paths []string) error {
	worktree, status, err := r.status()
	if err != nil {
		return err
	}

	files, err := r.relativePaths(paths)
	if err != nil {
		return err
	}

	var tracked []string
	for _, rel := range files {
		if fs, ok := status[rel]; ok && fs.Worktree == git.Untracked {
			if rmErr := os.Remove(filepath.Join(r.path, filepath.FromSlash(rel))); rmErr != nil {
				return fmt.Errorf("failed to remove %s: %w", rel, rmErr)
			}
			continue
		}
		tracked = append(tracked, rel)
	}

	if len(tracked) == 0 {
		return nil
	}

	if err := worktree.Restore(&git.RestoreOptions{Staged: true, Worktree: true, Files: tracked}); err != nil {
		return fmt.Errorf("failed to discard changes: %w", err)
	}
	return nil
}

// Pull fetches and merges the current branch from remote (empty for the tracked remote).
func (r *Repository) Pull(ctx context.Context, remote string, progress ProgressFunc) error {
	req := PullRequest{
		Path:       r.path,
		RemoteName: remote,
	}
	if progress != nil {
		req.Progress = NewProgressWriter(progress)
	}
	return r.svc.Pull(ctx, req)
}

// CommitHistory returns up to count commits reachable from HEAD, newest first.
func (r *Repository) CommitHistory(count int) ([]CommitInfo, error) {
	if _, err := r.repo.Head(); err != nil {
		// unborn branch
		return []CommitInfo{}, nil
	}

	iter, err := r.repo.Log(&git.LogOptions{Order: git.LogOrderCommitterTime})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRepository, err)
	}
	defer iter.Close()

	commits := make([]CommitInfo, 0, count)
	err = iter.ForEach(func(c *object.Commit) error {
		if count > 0 && len(commits) >= count {
			return storer.ErrStop
		}
		commits = append(commits, CommitInfo{
			Hash:    c.Hash.String(),
			Author:  c.Author.Name,
			Date:    c.Author.When,
			Message: strings.TrimSpace(c.Message),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRepository, err)
	}

	return commits, nil
}

// CommitDetails renders a commit header, message and per-file stats.
func (r *Repository) CommitDetails(hash string) (string, error) {
	commit, err := r.repo.CommitObject(plumbing.NewHash(hash))
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrCommitNotFound, hash)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "commit %s\n", commit.Hash)
	fmt.Fprintf(&b, "Author: %s <%s>\n", commit.Author.Name, commit.Author.Email)
	fmt.Fprintf(&b, "Date:   %s\n\n", commit.Author.When.Format(time.RFC1123Z))
	for _, line := range strings.Split(strings.TrimRight(commit.Message, "\n"), "\n") {
		fmt.Fprintf(&b, "    %s\n", line)
	}

	if stats, statsErr := commit.Stats(); statsErr == nil && len(stats) > 0 {
		b.WriteString("\n")
		b.WriteString(stats.String())
	}

	return b.String(), nil
}

// ImportExternalRepo registers url as remoteName, or when asRemote is false pulls it into the
// current branch through a temporary remote, reporting the pull to progress.
func (r *Repository) ImportExternalRepo(ctx context.Context, url string, asRemote bool, remoteName string, progress ProgressFunc) error {
	r.logger.Info("importing external repository",
		zap.String("url", SanitizeURL(url)),
		zap.Bool("as_remote", asRemote),
		zap.String("remote", remoteName))

	if asRemote {
		if remoteName == "" {
			remoteName = git.DefaultRemoteName
		}
		err := r.AddRemote(remoteName, url)
		if errors.Is(err, ErrRemoteExists) {
			return r.SetRemoteURL(remoteName, url)
		}
		return err
	}

	tmp := fmt.Sprintf("mgit-import-%d", now().UnixNano())
	if err := r.AddRemote(tmp, url); err != nil {
		return err
	}
	defer func() {
		if err := r.RemoveRemote(tmp); err != nil {
			r.logger.Warn("failed to remove temporary remote", zap.String("remote", tmp), zap.Error(err))
		}
	}()

	return r.Pull(ctx, tmp, progress)
}

func (r *Repository) status() (*git.Worktree, git.Status, error) {
	worktree, err := r.repo.Worktree()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrInvalidRepository, err)
	}

	status, err := worktree.Status()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrInvalidRepository, err)
	}
	return worktree, status, nil
}

func (r *Repository) relativePaths(paths []string) ([]string, error) {
	files := make([]string, 0, len(paths))
	for _, p := range paths {
		rel, err := relativePath(r.path, p)
		if err != nil {
			return nil, err
		}
		files = append(files, rel)
	}
	return files, nil
}

func describeStatus(fs *git.FileStatus) string {
	code := fs.Worktree
	if code == git.Unmodified {
		code = fs.Staging
	}

	switch code {
	case git.Untracked:
		return "untracked"
	case git.Modified:
		return "modified"
	case git.Added:
		return "added"
	case git.Deleted:
		return "deleted"
	case git.Renamed:
		return "renamed"
	case git.Copied:
		return "copied"
	case git.UpdatedButUnmerged:
		return "conflicted"
	default:
		return string(code)
	}
}

func shortHash(h plumbing.Hash) string {
	return h.String()[:7]
}
