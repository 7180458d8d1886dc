package config

import (
	"github.com/go-core-fx/fiberfx"
	"github.com/mgit-app/mgit/internal/accounts"
	"github.com/mgit-app/mgit/internal/events"
	"github.com/mgit-app/mgit/internal/git"
	"github.com/mgit-app/mgit/internal/hosting"
	"github.com/mgit-app/mgit/internal/operations"
	"github.com/mgit-app/mgit/internal/recent"
	"github.com/mgit-app/mgit/pkg/badgerfx"
	"github.com/mgit-app/mgit/pkg/openapifx"
	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module(
		"config",
		fx.Provide(New),
		fx.Provide(func(cfg Config) fiberfx.Config {
			return fiberfx.Config{
				Address:     cfg.HTTP.Address,
				ProxyHeader: cfg.HTTP.ProxyHeader,
				Proxies:     cfg.HTTP.Proxies,
			}
		}),
		fx.Provide(func(cfg Config) openapifx.Config {
			return openapifx.Config{
				Enabled:    cfg.HTTP.OpenAPI.Enabled,
				PublicHost: cfg.HTTP.OpenAPI.PublicHost,
				PublicPath: cfg.HTTP.OpenAPI.PublicPath,
			}
		}),
		fx.Provide(func(cfg Config) badgerfx.Config {
			return badgerfx.Config{
				Dir:        cfg.Storage.DataDir,
				InMemory:   cfg.Storage.InMemory,
				GCInterval: cfg.Storage.GCInterval,
			}
		}),
		fx.Provide(func(cfg Config) git.Config {
			return git.Config{
				Binary:         cfg.Git.Binary,
				CommandTimeout: cfg.Git.CommandTimeout,
				DefaultBranch:  cfg.Git.DefaultBranch,
				Author: git.AuthorConfig{
					Name:  cfg.Git.Author.Name,
					Email: cfg.Git.Author.Email,
				},
				Auth: git.AuthConfig{
					HTTPS: git.HTTPSAuthConfig{
						DefaultToken:    cfg.Git.Auth.HTTPS.DefaultToken,
						DefaultUsername: cfg.Git.Auth.HTTPS.DefaultUsername,
					},
				},
			}
		}),
		fx.Provide(func(cfg Config) operations.Config {
			return operations.Config{
				NetworkTimeout: cfg.Operations.NetworkTimeout,
				EventBuffer:    cfg.Operations.EventBuffer,
			}
		}),
		fx.Provide(func(cfg Config) hosting.Config {
			return hosting.Config{
				GitHubAPI: cfg.Hosting.GitHubAPI,
				GiteeAPI:  cfg.Hosting.GiteeAPI,
				Timeout:   cfg.Hosting.Timeout,
			}
		}),
		fx.Provide(func(cfg Config) accounts.Config {
			return accounts.Config{
				Provider: cfg.Account.Provider,
				Username: cfg.Account.Username,
				Token:    cfg.Account.Token,
				URL:      cfg.Account.URL,
			}
		}),
		fx.Provide(func(cfg Config) recent.Config {
			return recent.Config{
				Limit: cfg.Recent.Limit,
			}
		}),
		fx.Provide(func(cfg Config) events.Config {
			return events.Config{
				SubscriberBuffer: cfg.Events.SubscriberBuffer,
				KeepAlive:        cfg.Events.KeepAlive,
			}
		}),
	)
}
