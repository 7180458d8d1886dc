package recent

import (
	"github.com/go-core-fx/logger"
	"github.com/mgit-app/mgit/internal/panel"
	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module(
		"recent",
		logger.WithNamedLogger("recent"),
		fx.Provide(NewStore),
		fx.Provide(func(s *Store) panel.RecentStore { return s }),
	)
}
