package events

import (
	"context"

	"github.com/go-core-fx/logger"
	"github.com/mgit-app/mgit/internal/operations"
	"github.com/mgit-app/mgit/internal/panel"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func Module() fx.Option {
	return fx.Module(
		"events",
		logger.WithNamedLogger("events"),
		fx.Provide(NewHub),
		fx.Provide(NewBridge, fx.Private),
		fx.Provide(
			func(b *Bridge) panel.Notifier { return b },
			func(b *Bridge) panel.BranchView { return b },
		),
		fx.Invoke(func(hub *Hub, bridge *Bridge, runner *operations.Runner, logger *zap.Logger, lc fx.Lifecycle) {
			runner.Subscribe(bridge)

			lc.Append(fx.Hook{
				OnStop: func(_ context.Context) error {
					logger.Info("closing event hub", zap.Uint64("dropped", hub.Dropped()))
					hub.Close()
					return nil
				},
			})
		}),
	)
}
