package accounts

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Store keeps the current hosting account in memory, seeded from configuration.
type Store struct {
	mu      sync.RWMutex
	current *Account

	logger *zap.Logger
}

func NewStore(config Config, logger *zap.Logger) (*Store, error) {
	s := &Store{logger: logger}

	if config.Provider == "" && config.Token == "" {
		logger.Info("no hosting account configured")
		return s, nil
	}

	if err := s.Login(Account{
		Provider: config.Provider,
		Username: config.Username,
		Token:    config.Token,
		URL:      config.URL,
	}); err != nil {
		return nil, err
	}

	return s, nil
}

// Current returns the logged in account.
func (s *Store) Current() (Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return Account{}, ErrNoAccount
	}
	return *s.current, nil
}

// Login replaces the current account.
func (s *Store) Login(account Account) error {
	account.Provider = normalizeProvider(account.Provider)

	switch account.Provider {
	case ProviderGitHub, ProviderGitee:
		if account.Username == "" {
			return fmt.Errorf("%w: username is required for %s", ErrInvalidAccount, account.Provider)
		}
	case ProviderGitLab:
		if account.URL == "" {
			return fmt.Errorf("%w: instance url is required for gitlab", ErrInvalidAccount)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownProvider, account.Provider)
	}
	if account.Token == "" {
		return fmt.Errorf("%w: token is required", ErrInvalidAccount)
	}

	s.mu.Lock()
	s.current = &account
	s.mu.Unlock()

	s.logger.Info("hosting account set", zap.Stringer("account", account))

	return nil
}

// Logout forgets the current account.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil
}
