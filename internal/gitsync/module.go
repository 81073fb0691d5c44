package gitsync

import (
	"github.com/go-core-fx/logger"
	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module(
		"gitsync",
		logger.WithNamedLogger("gitsync"),
		fx.Provide(NewService),
	)
}
