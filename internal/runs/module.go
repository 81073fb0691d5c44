package runs

import (
	"github.com/go-core-fx/logger"
	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module(
		"runs",
		logger.WithNamedLogger("runs"),
		fx.Provide(NewRepository, fx.Private),
		fx.Provide(NewService),
	)
}
