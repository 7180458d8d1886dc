package history

import (
	"github.com/go-core-fx/logger"
	"github.com/mgit-app/mgit/internal/operations"
	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module(
		"history",
		logger.WithNamedLogger("history"),
		fx.Provide(NewRepository, fx.Private),
		fx.Provide(NewService),
		fx.Invoke(func(svc *Service, runner *operations.Runner) {
			runner.Subscribe(svc)
		}),
	)
}
