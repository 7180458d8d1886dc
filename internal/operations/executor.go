package operations

import (
	"context"
	"fmt"

	"github.com/mgit-app/mgit/internal/git"
	"go.uber.org/zap"
)

// GitService is the subset of the git layer the executor drives.
type GitService interface {
	Init(ctx context.Context, path, initialBranch string) error
	Clone(ctx context.Context, req git.CloneRequest) error
	Commit(ctx context.Context, path string, files []string, message string) (string, int, error)
	Push(ctx context.Context, req git.PushRequest) error
	Pull(ctx context.Context, req git.PullRequest) error
	Fetch(ctx context.Context, req git.FetchRequest) error
}

// Executor performs the work of a job and returns a human readable summary.
type Executor interface {
	Execute(ctx context.Context, job Job, progress git.ProgressFunc) (string, error)
}

// GitExecutor runs jobs against the git layer.
type GitExecutor struct {
	git    GitService
	logger *zap.Logger
}

func NewGitExecutor(git GitService, logger *zap.Logger) *GitExecutor {
	return &GitExecutor{
		git:    git,
		logger: logger,
	}
}

// Execute implements Executor.
func (e *GitExecutor) Execute(ctx context.Context, job Job, progress git.ProgressFunc) (string, error) {
	p := job.Params

	switch job.Kind {
	case KindInit:
		if err := e.git.Init(ctx, p.Path, p.InitialBranch); err != nil {
			return "", err
		}
		return fmt.Sprintf("Initialized repository in %s on branch %s", p.Path, p.InitialBranch), nil

	case KindClone:
		req := git.CloneRequest{
			URL:       p.URL,
			Branch:    p.Branch,
			Directory: p.TargetPath,
			Recursive: p.Recursive,
			Progress:  git.NewProgressWriter(progress),
		}
		if p.Depth != nil {
			req.Depth = *p.Depth
		}
		if err := e.git.Clone(ctx, req); err != nil {
			return "", err
		}
		return fmt.Sprintf("Cloned %s into %s", git.SanitizeURL(p.URL), p.TargetPath), nil

	case KindCommit:
		hash, staged, err := e.git.Commit(ctx, p.Path, p.Files, p.Message)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Committed %d file(s) as %s", staged, shortHash(hash)), nil

	case KindPush:
		if err := e.push(ctx, p, progress); err != nil {
			return "", err
		}
		target := p.RemoteName
		if p.PushURL != "" {
			target = git.SanitizeURL(p.PushURL)
		}
		return fmt.Sprintf("Pushed %s to %s", p.Branch, target), nil

	case KindPull:
		if err := e.pull(ctx, p, progress); err != nil {
			return "", err
		}
		switch {
		case p.Branch != "":
			return fmt.Sprintf("Pulled %s", p.Branch), nil
		case p.RemoteName != "":
			return fmt.Sprintf("Pulled from %s", p.RemoteName), nil
		}
		return "Pulled current branch", nil

	case KindFetch:
		if err := e.fetch(ctx, p, progress); err != nil {
			return "", err
		}
		return fmt.Sprintf("Fetched %s", p.RemoteName), nil

	case KindSync:
		if err := e.sync(ctx, p, progress); err != nil {
			return "", err
		}
		return fmt.Sprintf("Synced %s with %s", p.Branch, p.RemoteName), nil
	}

	return "", fmt.Errorf("%w: unknown kind %q", ErrInvalidJob, job.Kind)
}

// sync runs fetch, pull and push in order and stops at the first failing step. Completed steps
// are kept.
func (e *GitExecutor) sync(ctx context.Context, p Params, progress git.ProgressFunc) error {
	steps := []struct {
		name string
		run  func(context.Context, Params, git.ProgressFunc) error
	}{
		{"fetch", e.fetch},
		{"pull", e.pull},
		{"push", e.push},
	}

	for i, step := range steps {
		if err := ctx.Err(); err != nil {
			return &StepError{Step: step.name, Err: err}
		}

		e.logger.Debug("sync step", zap.String("step", step.name), zap.String("path", p.Path))

		if err := step.run(ctx, p, scaleProgress(progress, step.name, i, len(steps))); err != nil {
			return &StepError{Step: step.name, Err: err}
		}
	}

	return nil
}

func (e *GitExecutor) push(ctx context.Context, p Params, progress git.ProgressFunc) error {
	return e.git.Push(ctx, git.PushRequest{
		Path:        p.Path,
		RemoteName:  p.RemoteName,
		URL:         p.PushURL,
		Branch:      p.Branch,
		SetUpstream: p.SetUpstream,
		Progress:    git.NewProgressWriter(progress),
	})
}

func (e *GitExecutor) pull(ctx context.Context, p Params, progress git.ProgressFunc) error {
	return e.git.Pull(ctx, git.PullRequest{
		Path:       p.Path,
		RemoteName: p.RemoteName,
		Branch:     p.Branch,
		Progress:   git.NewProgressWriter(progress),
	})
}

func (e *GitExecutor) fetch(ctx context.Context, p Params, progress git.ProgressFunc) error {
	return e.git.Fetch(ctx, git.FetchRequest{
		Path:       p.Path,
		RemoteName: p.RemoteName,
		Progress:   git.NewProgressWriter(progress),
	})
}

// scaleProgress maps the progress of step index out of total onto the overall 0..100 range.
func scaleProgress(progress git.ProgressFunc, name string, index, total int) git.ProgressFunc {
	if progress == nil {
		return nil
	}
	return func(percent int, message string) {
		progress((index*100+percent)/total, name+": "+message)
	}
}

func shortHash(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
}

var _ Executor = (*GitExecutor)(nil)
