package git

import "time"

type AuthConfig struct {
	HTTPS HTTPSAuthConfig
}

type HTTPSAuthConfig struct {
	DefaultToken    string
	DefaultUsername string
}

type AuthorConfig struct {
	Name  string
	Email string
}

type Config struct {
	// Binary is the git executable used for operations go-git does not implement (stash).
	Binary string
	// CommandTimeout bounds a single git CLI invocation.
	CommandTimeout time.Duration
	// DefaultBranch is used by Init when no initial branch is requested.
	DefaultBranch string
	// Author signs commits when the repository config carries no user identity.
	Author AuthorConfig
	Auth   AuthConfig
}

func DefaultConfig() Config {
	//nolint:exhaustruct,mnd //default values
	return Config{
		Binary:         "git",
		CommandTimeout: 30 * time.Second,
		DefaultBranch:  "main",
		Author: AuthorConfig{
			Name:  "mgit",
			Email: "mgit@localhost",
		},
	}
}
