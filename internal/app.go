package internal

import (
	"context"

	"github.com/capcom6/go-infra-fx/validator"
	"github.com/go-core-fx/fiberfx"
	"github.com/go-core-fx/healthfx"
	"github.com/go-core-fx/logger"
	"github.com/mgit-app/mgit/internal/accounts"
	"github.com/mgit-app/mgit/internal/config"
	"github.com/mgit-app/mgit/internal/events"
	"github.com/mgit-app/mgit/internal/git"
	"github.com/mgit-app/mgit/internal/history"
	"github.com/mgit-app/mgit/internal/hosting"
	"github.com/mgit-app/mgit/internal/operations"
	"github.com/mgit-app/mgit/internal/panel"
	"github.com/mgit-app/mgit/internal/recent"
	"github.com/mgit-app/mgit/internal/server"
	"github.com/mgit-app/mgit/pkg/badgerfx"
	"github.com/mgit-app/mgit/pkg/openapifx"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func Run() {
	fx.New(
		// CORE MODULES
		logger.Module(),
		logger.WithFxDefaultLogger(),
		badgerfx.Module(),
		healthfx.Module(),
		fiberfx.Module(),
		openapifx.Module(),
		validator.Module,
		//
		// APP MODULES
		config.Module(),
		server.Module(),
		git.Module(),
		operations.Module(),
		events.Module(),
		//
		// BUSINESS MODULES
		fx.Provide(func() healthfx.Version { return healthfx.Version{Version: "0.1.0", ReleaseID: 1} }),
		accounts.Module(),
		hosting.Module(),
		history.Module(),
		recent.Module(),
		panel.Module(),
		//
		// LIFECYCLE MANAGEMENT
		fx.Invoke(func(lc fx.Lifecycle, logger *zap.Logger) {
			lc.Append(fx.Hook{
				OnStart: func(_ context.Context) error {
					logger.Info("🚀 mgit application starting up")
					return nil
				},
				OnStop: func(_ context.Context) error {
					logger.Info("🛑 mgit application shutting down gracefully")
					return nil
				},
			})
		}),
	).Run()
}
