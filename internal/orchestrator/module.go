package orchestrator

import (
	"context"
	"time"

	"github.com/go-core-fx/logger"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func Module() fx.Option {
	return fx.Module(
		"orchestrator",
		logger.WithNamedLogger("orchestrator"),
		fx.Provide(NewService),
		fx.Invoke(runScheduler),
	)
}

// runScheduler drives scheduled passes for the lifetime of the app.
func runScheduler(lc fx.Lifecycle, svc *Service, config Config, logger *zap.Logger) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				defer close(done)

				svc.RunOnce(ctx)

				if config.Interval <= 0 {
					logger.Info("scheduler disabled, passes run on demand only")
					return
				}

				ticker := time.NewTicker(config.Interval)
				defer ticker.Stop()

				for {
					select {
					case <-ctx.Done():
						return
					case <-ticker.C:
						svc.RunOnce(ctx)
					}
				}
			}()

			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()

			select {
			case <-done:
				return nil
			case <-stopCtx.Done():
				return stopCtx.Err()
			}
		},
	})
}
