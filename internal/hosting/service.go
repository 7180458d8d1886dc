package hosting

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/mgit-app/mgit/internal/accounts"
	"github.com/mgit-app/mgit/internal/git"
	"go.uber.org/zap"
)

// Service creates repositories on the provider of the given account.
type Service struct {
	providers map[string]Provider

	logger *zap.Logger
}

func NewService(config Config, logger *zap.Logger) *Service {
	defaults := DefaultConfig()
	if config.GitHubAPI == "" {
		config.GitHubAPI = defaults.GitHubAPI
	}
	if config.GiteeAPI == "" {
		config.GiteeAPI = defaults.GiteeAPI
	}
	if config.Timeout == 0 {
		config.Timeout = defaults.Timeout
	}

	client := &http.Client{Timeout: config.Timeout}

	return &Service{
		providers: map[string]Provider{
			accounts.ProviderGitHub: &gitHub{baseURL: strings.TrimRight(config.GitHubAPI, "/"), client: client},
			accounts.ProviderGitee:  &gitee{baseURL: strings.TrimRight(config.GiteeAPI, "/"), client: client},
			accounts.ProviderGitLab: &gitLab{client: client},
		},
		logger: logger,
	}
}

// CreateRepository creates an empty repository and returns its clone URL.
func (s *Service) CreateRepository(ctx context.Context, account accounts.Account, req CreateRequest) (string, error) {
	provider, ok := s.providers[account.Provider]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedProvider, account.Provider)
	}

	if req.Description == "" {
		req.Description = DefaultDescription(req.Name)
	}

	s.logger.Info("creating hosted repository",
		zap.String("provider", account.Provider),
		zap.String("username", account.Username),
		zap.String("name", req.Name),
		zap.Bool("private", req.Private))

	cloneURL, err := provider.CreateRepository(ctx, account, req)
	if err != nil {
		s.logger.Error("failed to create hosted repository",
			zap.String("provider", account.Provider),
			zap.String("name", req.Name),
			zap.Error(err))
		return "", err
	}
	if cloneURL == "" {
		return "", fmt.Errorf("%w: %s returned no clone url", ErrCreateFailed, account.Provider)
	}

	s.logger.Info("hosted repository created",
		zap.String("provider", account.Provider),
		zap.String("clone_url", git.SanitizeURL(cloneURL)))

	return cloneURL, nil
}

// AuthenticatedURL embeds the account credentials into an HTTP(S) clone URL so a push can run
// without a credential prompt. The result must only be handed to a single push and never stored
// or logged.
func AuthenticatedURL(account accounts.Account, cloneURL string) (string, error) {
	u, err := url.Parse(cloneURL)
	if err != nil || (u.Scheme != "https" && u.Scheme != "http") || u.Host == "" {
		return "", fmt.Errorf("%w: %s", ErrInvalidCloneURL, git.SanitizeURL(cloneURL))
	}

	switch account.Provider {
	case accounts.ProviderGitHub, accounts.ProviderGitee:
		u.User = url.UserPassword(account.Username, account.Token)
	case accounts.ProviderGitLab:
		u.User = url.UserPassword("oauth2", account.Token)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedProvider, account.Provider)
	}

	return u.String(), nil
}
