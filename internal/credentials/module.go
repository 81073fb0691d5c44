package credentials

import (
	"os"

	"github.com/go-core-fx/logger"
	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module(
		"credentials",
		logger.WithNamedLogger("credentials"),
		fx.Provide(func() Lookup { return os.LookupEnv }),
		fx.Provide(NewResolver),
	)
}
