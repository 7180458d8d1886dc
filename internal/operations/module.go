package operations

import (
	"context"

	"github.com/go-core-fx/logger"
	"github.com/mgit-app/mgit/internal/git"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func Module() fx.Option {
	return fx.Module(
		"operations",
		logger.WithNamedLogger("operations"),
		fx.Provide(
			func(svc *git.Service) GitService { return svc },
			fx.Private,
		),
		fx.Provide(
			fx.Annotate(NewGitExecutor, fx.As(new(Executor))),
			fx.Private,
		),
		fx.Provide(func() (*Metrics, error) {
			return NewMetrics(prometheus.DefaultRegisterer)
		}, fx.Private),
		fx.Provide(NewRunner),
		fx.Invoke(func(runner *Runner, logger *zap.Logger, lc fx.Lifecycle) {
			lc.Append(fx.Hook{
				OnStop: func(ctx context.Context) error {
					logger.Info("stopping operation runner")
					return runner.Stop(ctx)
				},
			})
		}),
	)
}
