package openapifx

import (
	"github.com/go-core-fx/logger"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func Module() fx.Option {
	return fx.Module(
		"openapifx",
		logger.WithNamedLogger("openapifx"),
		fx.Provide(New),
		fx.Invoke(func(h *Handler, logger *zap.Logger) {
			if h.spec != nil {
				logger.Debug("openapi document registered",
					zap.String("title", h.spec.Title),
					zap.String("host", h.spec.Host),
					zap.String("base_path", h.spec.BasePath))
			}
		}),
	)
}
