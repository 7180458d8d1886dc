package panel

import (
	"context"

	"github.com/go-core-fx/logger"
	"github.com/mgit-app/mgit/internal/accounts"
	"github.com/mgit-app/mgit/internal/hosting"
	"github.com/mgit-app/mgit/internal/operations"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func Module() fx.Option {
	return fx.Module(
		"panel",
		logger.WithNamedLogger("panel"),
		fx.Provide(
			NewGitWorkspaces,
			func(r *operations.Runner) JobRunner { return r },
			func(s *hosting.Service) Hosting { return s },
			func(s *accounts.Store) Accounts { return s },
			fx.Private,
		),
		fx.Provide(NewController),
		fx.Invoke(func(c *Controller, runner *operations.Runner, logger *zap.Logger, lc fx.Lifecycle) {
			runner.Subscribe(c)

			lc.Append(fx.Hook{
				OnStop: func(_ context.Context) error {
					logger.Info("closing panel controller")
					c.Close()
					return nil
				},
			})
		}),
	)
}
