package git

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"slices"

	"github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/config"
	"github.com/go-git/go-git/v6/plumbing"
	"github.com/go-git/go-git/v6/plumbing/object"
	"github.com/go-git/go-git/v6/plumbing/transport"
	"github.com/go-git/go-git/v6/plumbing/transport/http"
	"go.uber.org/zap"
)

type Service struct {
	config Config
	logger *zap.Logger
}

// NewService creates a new GitService.
func NewService(config Config, logger *zap.Logger) *Service {
	if config.Binary == "" {
		config.Binary = DefaultConfig().Binary
	}
	if config.CommandTimeout == 0 {
		config.CommandTimeout = DefaultConfig().CommandTimeout
	}
	if config.DefaultBranch == "" {
		config.DefaultBranch = DefaultConfig().DefaultBranch
	}
	if config.Author.Name == "" || config.Author.Email == "" {
		config.Author = DefaultConfig().Author
	}

	return &Service{
		config: config,
		logger: logger,
	}
}

// IsRepository reports whether path is the root of a git working tree.
func (s *Service) IsRepository(path string) bool {
	_, err := git.PlainOpen(path)
	return err == nil
}

// Open opens the repository at path for status, branch, remote and stash access.
func (s *Service) Open(path string) (*Repository, error) {
	repo, err := git.PlainOpen(path)
	if err != nil {
		s.logger.Debug("failed to open repository", zap.String("path", path), zap.Error(err))
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%w: %s", ErrRepositoryNotFound, path)
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidRepository, err)
	}

	return &Repository{
		path:   path,
		repo:   repo,
		svc:    s,
		logger: s.logger.With(zap.String("path", path)),
	}, nil
}

// Init creates a new repository at path with the given initial branch.
func (s *Service) Init(_ context.Context, path, initialBranch string) error {
	if initialBranch == "" {
		initialBranch = s.config.DefaultBranch
	}

	s.logger.Info("initializing repository",
		zap.String("path", path),
		zap.String("branch", initialBranch))

	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("%w: %w", ErrInitFailed, err)
	}

	if s.IsRepository(path) {
		return fmt.Errorf("%w: %s", ErrRepositoryAlreadyExists, path)
	}

	_, err := git.PlainInit(path, false, git.WithDefaultBranch(plumbing.NewBranchReferenceName(initialBranch)))
	if errors.Is(err, git.ErrTargetDirNotEmpty) {
		return fmt.Errorf("%w: %s", ErrRepositoryAlreadyExists, path)
	}
	if err != nil {
		s.logger.Error("failed to initialize repository", zap.Error(err))
		return fmt.Errorf("%w: %w", ErrInitFailed, err)
	}

	s.logger.Info("repository initialized successfully", zap.String("path", path))

	return nil
}

// Clone clones a repository to the specified directory.
func (s *Service) Clone(ctx context.Context, req CloneRequest) error {
	s.logger.Info("cloning repository",
		zap.String("url", SanitizeURL(req.URL)),
		zap.String("directory", req.Directory),
		zap.String("branch", req.Branch),
		zap.Int("depth", req.Depth),
		zap.Bool("recursive", req.Recursive))

	// Check if directory already exists
	existed := false
	if entries, statErr := os.ReadDir(req.Directory); statErr == nil {
		existed = true
		if len(entries) > 0 {
			return fmt.Errorf("%w: directory %s is not empty", ErrRepositoryAlreadyExists, req.Directory)
		}
	}

	cloneOptions := &git.CloneOptions{
		URL:      req.URL,
		Depth:    req.Depth,
		Progress: req.Progress,
		Auth:     s.auth(req.URL),
	}
	if req.Branch != "" {
		cloneOptions.ReferenceName = plumbing.NewBranchReferenceName(req.Branch)
		cloneOptions.SingleBranch = true
	}
	if req.Recursive {
		cloneOptions.RecurseSubmodules = git.DefaultSubmoduleRecursionDepth
	}

	_, err := git.PlainCloneContext(ctx, req.Directory, cloneOptions)
	if err != nil {
		s.logger.Error("failed to clone repository", zap.String("error", RedactSecrets(err.Error())))
		if !existed {
			if rmErr := os.RemoveAll(req.Directory); rmErr != nil {
				s.logger.Warn("failed to cleanup partial clone", zap.Error(rmErr))
			}
		}
		return classify(ctx, ErrCloneFailed, err)
	}

	s.logger.Info("repository cloned successfully",
		zap.String("url", SanitizeURL(req.URL)),
		zap.String("directory", req.Directory))

	return nil
}

// Fetch updates remote-tracking references without touching the working tree.
func (s *Service) Fetch(ctx context.Context, req FetchRequest) error {
	s.logger.Info("fetching repository",
		zap.String("path", req.Path),
		zap.String("remote", req.RemoteName))

	repo, err := s.plainOpen(req.Path)
	if err != nil {
		return err
	}

	remoteName, err := resolveRemote(repo, req.RemoteName, "")
	if err != nil {
		return err
	}

	err = repo.FetchContext(ctx, &git.FetchOptions{
		RemoteName: remoteName,
		Progress:   req.Progress,
		Auth:       s.remoteAuth(repo, remoteName),
	})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		s.logger.Error("failed to fetch repository", zap.String("error", RedactSecrets(err.Error())))
		return classify(ctx, ErrFetchFailed, err)
	}

	s.logger.Info("repository fetched successfully",
		zap.String("path", req.Path),
		zap.String("remote", remoteName),
		zap.Bool("up_to_date", errors.Is(err, git.NoErrAlreadyUpToDate)))

	return nil
}

// Pull pulls the latest changes for the specified branch.
func (s *Service) Pull(ctx context.Context, req PullRequest) error {
	s.logger.Info("pulling repository",
		zap.String("path", req.Path),
		zap.String("remote", req.RemoteName),
		zap.String("branch", req.Branch))

	repo, err := s.plainOpen(req.Path)
	if err != nil {
		return err
	}

	branch := req.Branch
	if branch == "" {
		if branch, err = currentBranch(repo); err != nil {
			return err
		}
	}

	remoteName, err := resolveRemote(repo, req.RemoteName, branch)
	if err != nil {
		return err
	}

	worktree, err := repo.Worktree()
	if err != nil {
		s.logger.Error("failed to get worktree", zap.Error(err))
		return fmt.Errorf("%w: %w", ErrInvalidRepository, err)
	}

	err = worktree.PullContext(ctx, &git.PullOptions{
		RemoteName:    remoteName,
		ReferenceName: plumbing.NewBranchReferenceName(branch),
		Progress:      req.Progress,
		Auth:          s.remoteAuth(repo, remoteName),
	})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		s.logger.Error("failed to pull repository", zap.String("error", RedactSecrets(err.Error())))
		return classify(ctx, ErrPullFailed, err)
	}

	s.logger.Info("repository pulled successfully",
		zap.String("path", req.Path),
		zap.String("remote", remoteName),
		zap.String("branch", branch))

	return nil
}

// Push pushes a local branch. When req.URL is set it is used for this push only and never
// written to the repository configuration.
func (s *Service) Push(ctx context.Context, req PushRequest) error {
	s.logger.Info("pushing repository",
		zap.String("path", req.Path),
		zap.String("remote", req.RemoteName),
		zap.String("branch", req.Branch),
		zap.Bool("set_upstream", req.SetUpstream))

	repo, err := s.plainOpen(req.Path)
	if err != nil {
		return err
	}

	remoteName, err := resolveRemote(repo, req.RemoteName, req.Branch)
	if err != nil {
		return err
	}

	branch := req.Branch
	if branch == "" {
		if branch, err = currentBranch(repo); err != nil {
			return err
		}
	}

	refSpec := config.RefSpec(fmt.Sprintf("refs/heads/%s:refs/heads/%s", branch, branch))
	options := &git.PushOptions{
		RemoteName: remoteName,
		RefSpecs:   []config.RefSpec{refSpec},
		Progress:   req.Progress,
	}
	if req.URL != "" {
		options.RemoteURL = req.URL
	} else {
		options.Auth = s.remoteAuth(repo, remoteName)
	}

	err = repo.PushContext(ctx, options)
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		s.logger.Error("failed to push repository", zap.String("error", RedactSecrets(err.Error())))
		return classify(ctx, ErrPushFailed, err)
	}

	if req.SetUpstream {
		if upErr := setUpstream(repo, branch, remoteName); upErr != nil {
			s.logger.Error("failed to set upstream", zap.Error(upErr))
			return fmt.Errorf("%w: %w", ErrPushFailed, upErr)
		}
	}

	s.logger.Info("repository pushed successfully",
		zap.String("path", req.Path),
		zap.String("remote", remoteName),
		zap.String("branch", branch))

	return nil
}

// Commit stages the given files that actually carry changes and commits them. Files without
// changes are skipped. Staged files are left staged when the commit itself fails.
func (s *Service) Commit(ctx context.Context, path string, files []string, message string) (string, int, error) {
	s.logger.Info("committing changes",
		zap.String("path", path),
		zap.Int("files", len(files)))

	repo, err := s.plainOpen(path)
	if err != nil {
		return "", 0, err
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return "", 0, fmt.Errorf("%w: %w", ErrInvalidRepository, err)
	}

	status, err := worktree.Status()
	if err != nil {
		return "", 0, fmt.Errorf("%w: %w", ErrCommitFailed, err)
	}

	staged := 0
	for _, file := range files {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", staged, classify(ctx, ErrCommitFailed, ctxErr)
		}

		rel, relErr := relativePath(path, file)
		if relErr != nil {
			return "", staged, fmt.Errorf("%w: %w", ErrCommitFailed, relErr)
		}

		fileStatus, ok := status[rel]
		if !ok || !hasChange(fileStatus) {
			s.logger.Debug("skipping unchanged file", zap.String("file", rel))
			continue
		}

		if fileStatus.Worktree == git.Deleted {
			_, err = worktree.Remove(rel)
		} else {
			_, err = worktree.Add(rel)
		}
		if err != nil {
			s.logger.Error("failed to stage file", zap.String("file", rel), zap.Error(err))
			return "", staged, fmt.Errorf("%w: stage %s: %w", ErrCommitFailed, rel, err)
		}
		staged++
	}

	if staged == 0 {
		return "", 0, ErrNothingToCommit
	}

	hash, err := worktree.Commit(message, &git.CommitOptions{
		Author: s.signature(repo),
	})
	if err != nil {
		s.logger.Error("failed to commit", zap.Error(err))
		return "", staged, fmt.Errorf("%w: %w", ErrCommitFailed, err)
	}

	s.logger.Info("changes committed successfully",
		zap.String("path", path),
		zap.String("hash", hash.String()),
		zap.Int("files", staged))

	return hash.String(), staged, nil
}

func (s *Service) plainOpen(path string) (*git.Repository, error) {
	repo, err := git.PlainOpen(path)
	if err != nil {
		s.logger.Error("failed to open repository", zap.String("path", path), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrRepositoryNotFound, err)
	}
	return repo, nil
}

func (s *Service) signature(repo *git.Repository) *object.Signature {
	name, email := s.config.Author.Name, s.config.Author.Email
	if cfg, err := repo.ConfigScoped(config.GlobalScope); err == nil {
		if cfg.User.Name != "" {
			name = cfg.User.Name
		}
		if cfg.User.Email != "" {
			email = cfg.User.Email
		}
	}

	return &object.Signature{
		Name:  name,
		Email: email,
		When:  now(),
	}
}

// auth returns the configured HTTPS credentials for rawURL, or nil when the URL is not HTTP(S)
// or already carries credentials.
func (s *Service) auth(rawURL string) transport.AuthMethod {
	if s.config.Auth.HTTPS.DefaultToken == "" {
		return nil
	}

	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.User != nil {
		return nil
	}

	username := s.config.Auth.HTTPS.DefaultUsername
	if username == "" {
		username = "git"
	}

	return &http.BasicAuth{
		Username: username,
		Password: s.config.Auth.HTTPS.DefaultToken,
	}
}

func (s *Service) remoteAuth(repo *git.Repository, remoteName string) transport.AuthMethod {
	remote, err := repo.Remote(remoteName)
	if err != nil || len(remote.Config().URLs) == 0 {
		return nil
	}
	return s.auth(remote.Config().URLs[0])
}

// resolveRemote picks the remote for a network operation: the requested one, the branch's
// tracking remote, origin, or the first configured remote.
func resolveRemote(repo *git.Repository, requested, branch string) (string, error) {
	remotes, err := repo.Remotes()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidRepository, err)
	}

	names := make([]string, 0, len(remotes))
	for _, r := range remotes {
		names = append(names, r.Config().Name)
	}
	slices.Sort(names)

	if requested != "" {
		if !slices.Contains(names, requested) {
			return "", fmt.Errorf("%w: %s", ErrRemoteNotFound, requested)
		}
		return requested, nil
	}

	if len(names) == 0 {
		return "", ErrNoRemote
	}

	if branch != "" {
		if cfg, cfgErr := repo.Config(); cfgErr == nil {
			if b, ok := cfg.Branches[branch]; ok && slices.Contains(names, b.Remote) {
				return b.Remote, nil
			}
		}
	}

	if slices.Contains(names, git.DefaultRemoteName) {
		return git.DefaultRemoteName, nil
	}

	return names[0], nil
}

func setUpstream(repo *git.Repository, branch, remoteName string) error {
	cfg, err := repo.Config()
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	cfg.Branches[branch] = &config.Branch{
		Name:   branch,
		Remote: remoteName,
		Merge:  plumbing.NewBranchReferenceName(branch),
	}

	if err := repo.SetConfig(cfg); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func currentBranch(repo *git.Repository) (string, error) {
	head, err := repo.Storer.Reference(plumbing.HEAD)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidRepository, err)
	}

	if head.Type() == plumbing.SymbolicReference {
		return head.Target().Short(), nil
	}

	return head.Hash().String(), nil
}

func relativePath(root, file string) (string, error) {
	if !filepath.IsAbs(file) {
		return filepath.ToSlash(filepath.Clean(file)), nil
	}

	rel, err := filepath.Rel(root, file)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

func hasChange(fs *git.FileStatus) bool {
	return fs.Worktree != git.Unmodified || fs.Staging != git.Unmodified
}

// classify wraps err with base, promoting cancellation, timeout and authentication failures to
// their own sentinel errors. Credentials are stripped from the message.
func classify(ctx context.Context, base, err error) error {
	cause := errors.New(RedactSecrets(err.Error()))

	switch {
	case errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled):
		return fmt.Errorf("%w: %w", ErrOperationCancelled, cause)
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded):
		return fmt.Errorf("%w: %w", ErrTimeout, cause)
	case errors.Is(err, transport.ErrAuthenticationRequired), errors.Is(err, transport.ErrAuthorizationFailed):
		return fmt.Errorf("%w: %w: %w", base, ErrAuthenticationFailed, cause)
	case errors.Is(err, git.ErrNonFastForwardUpdate):
		return fmt.Errorf("%w: %w: %w", base, ErrNonFastForward, cause)
	}

	return fmt.Errorf("%w: %w", base, cause)
}
