package badgerfx

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/go-core-fx/logger"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func Module() fx.Option {
	return fx.Module(
		"badgerfx",
		logger.WithNamedLogger("badgerfx"),
		fx.Provide(newLogger, fx.Private),
		fx.Provide(New),
		fx.Invoke(func(db *badger.DB, config Config, logger *zap.Logger, lifecycle fx.Lifecycle) {
			ctx, cancel := context.WithCancel(context.Background())
			var wg sync.WaitGroup

			lifecycle.Append(fx.Hook{
				OnStart: func(_ context.Context) error {
					logger.Info("starting badger module", zap.Bool("in_memory", config.InMemory))
					if config.GCInterval > 0 && !config.InMemory {
						wg.Add(1)
						go func() {
							defer wg.Done()
							runGC(ctx, db, config.GCInterval, logger)
						}()
					}
					return nil
				},
				OnStop: func(_ context.Context) error {
					logger.Info("stopping badger module")
					cancel()
					wg.Wait()
					if err := db.Close(); err != nil {
						return fmt.Errorf("failed to close BadgerDB: %w", err)
					}
					return nil
				},
			})
		}),
	)
}

func runGC(ctx context.Context, db *badger.DB, interval time.Duration, logger *zap.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := collectGarbage(db)
			if err != nil {
				logger.Warn("value log gc failed", zap.Error(err))
				continue
			}
			if n > 0 {
				logger.Debug("value log gc finished", zap.Int("rewritten", n))
			}
		}
	}
}
