package scanner

import (
	"github.com/go-core-fx/logger"
	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module(
		"scanner",
		logger.WithNamedLogger("scanner"),
		fx.Provide(NewService),
	)
}
