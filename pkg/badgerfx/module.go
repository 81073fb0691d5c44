package badgerfx

import (
	"context"
	"errors"
	"fmt"
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
		fx.Invoke(func(config Config, db *badger.DB, logger *zap.Logger, lifecycle fx.Lifecycle) {
			ctx, cancel := context.WithCancel(context.Background())
			done := make(chan struct{})

			lifecycle.Append(fx.Hook{
				OnStart: func(_ context.Context) error {
					logger.Info("starting badger module")

					go func() {
						defer close(done)

						ticker := time.NewTicker(config.gcInterval())
						defer ticker.Stop()

						for {
							select {
							case <-ctx.Done():
								return
							case <-ticker.C:
								if err := collectGarbage(db); err != nil && !errors.Is(err, badger.ErrRejected) {
									logger.Warn("value log GC failed", zap.Error(err))
								}
							}
						}
					}()

					return nil
				},
				OnStop: func(_ context.Context) error {
					logger.Info("stopping badger module")
					cancel()
					<-done
					if err := db.Close(); err != nil {
						return fmt.Errorf("failed to close BadgerDB: %w", err)
					}
					return nil
				},
			})
		}),
	)
}
