package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

var stashRefPattern = regexp.MustCompile(`^stash@\{\d+\}$`)

// StashChanges stashes tracked and untracked changes with an optional message.
func (r *Repository) StashChanges(ctx context.Context, message string) error {
	args := []string{"stash", "push", "--include-untracked"}
	if message != "" {
		args = append(args, "-m", message)
	}

	out, err := r.runGit(ctx, args...)
	if err != nil {
		return err
	}

	if strings.Contains(out, "No local changes to save") {
		return ErrNothingToCommit
	}
	return nil
}

// StashList returns the stash entries, newest first, as "stash@{n}: description".
func (r *Repository) StashList(ctx context.Context) ([]string, error) {
	out, err := r.runGit(ctx, "stash", "list")
	if err != nil {
		return nil, err
	}

	entries := []string{}
	for _, line := range strings.Split(out, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			entries = append(entries, line)
		}
	}
	return entries, nil
}

// ApplyStash applies a stash entry, keeping it in the stash list.
func (r *Repository) ApplyStash(ctx context.Context, id string) error {
	ref, err := stashRef(id)
	if err != nil {
		return err
	}

	_, err = r.runGit(ctx, "stash", "apply", ref)
	return err
}

// DropStash removes a single stash entry.
func (r *Repository) DropStash(ctx context.Context, id string) error {
	ref, err := stashRef(id)
	if err != nil {
		return err
	}

	_, err = r.runGit(ctx, "stash", "drop", ref)
	return err
}

// ClearStash removes every stash entry.
func (r *Repository) ClearStash(ctx context.Context) error {
	_, err := r.runGit(ctx, "stash", "clear")
	return err
}

// stashRef accepts "stash@{n}", "n" or a full list entry and returns the stash reference.
func stashRef(id string) (string, error) {
	id = strings.TrimSpace(id)
	if head, _, found := strings.Cut(id, ":"); found {
		id = head
	}

	if stashRefPattern.MatchString(id) {
		return id, nil
	}

	for _, c := range id {
		if c < '0' || c > '9' {
			return "", fmt.Errorf("%w: %q", ErrStashNotFound, id)
		}
	}
	if id == "" {
		return "", fmt.Errorf("%w: empty id", ErrStashNotFound)
	}

	return "stash@{" + id + "}", nil
}

func (r *Repository) runGit(ctx context.Context, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.svc.config.CommandTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, r.svc.config.Binary, append([]string{"-C", r.path}, args...)...)

	var stdout, stderr bytes.Buffer
	cmd.Env = os.Environ()
	if os.Getenv("EMAIL") == "" {
		// lowest priority identity fallback, git config still wins
		cmd.Env = append(cmd.Env, "EMAIL="+r.svc.config.Author.Email)
	}
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	r.logger.Debug("running git command", zap.Strings("args", args))

	if err := cmd.Run(); err != nil {
		msg := RedactSecrets(strings.TrimSpace(stderr.String()))
		r.logger.Error("git command failed",
			zap.Strings("args", args),
			zap.String("stderr", msg),
			zap.Error(err))

		if strings.Contains(msg, "is not a valid reference") || strings.Contains(msg, "is not a stash-like commit") {
			return "", fmt.Errorf("%w: %s", ErrStashNotFound, msg)
		}
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: %w", ErrTimeout, err)
		}
		if msg == "" {
			msg = err.Error()
		}
		return "", fmt.Errorf("%w: %s", ErrStashFailed, msg)
	}

	return stdout.String() + stderr.String(), nil
}
