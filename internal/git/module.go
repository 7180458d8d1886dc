package git

import (
	"context"
	"os/exec"

	"github.com/go-core-fx/logger"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func Module() fx.Option {
	return fx.Module(
		"git",
		logger.WithNamedLogger("git"),
		fx.Provide(NewService),
		fx.Invoke(func(config Config, logger *zap.Logger, lc fx.Lifecycle) {
			lc.Append(fx.Hook{
				OnStart: func(_ context.Context) error {
					// Stash needs the git CLI; everything else runs on go-git.
					path, err := exec.LookPath(config.Binary)
					if err != nil {
						logger.Warn("git binary not found, stash actions will fail",
							zap.String("binary", config.Binary), zap.Error(err))
						return nil
					}
					logger.Info("git binary found", zap.String("path", path))
					return nil
				},
			})
		}),
	)
}
