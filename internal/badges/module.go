package badges

import (
	"github.com/go-core-fx/logger"
	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module(
		"badges",
		logger.WithNamedLogger("badges"),
		fx.Provide(NewService),
	)
}
