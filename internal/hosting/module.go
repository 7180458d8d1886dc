package hosting

import (
	"github.com/go-core-fx/logger"
	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module(
		"hosting",
		logger.WithNamedLogger("hosting"),
		fx.Provide(NewService),
	)
}
