package accounts

import (
	"github.com/go-core-fx/logger"
	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module(
		"accounts",
		logger.WithNamedLogger("accounts"),
		fx.Provide(NewStore),
	)
}
