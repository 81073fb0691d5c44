package internal

import (
	"context"

	"github.com/capcom6/go-infra-fx/validator"
	"github.com/gatescan/gatescan/internal/badges"
	"github.com/gatescan/gatescan/internal/config"
	"github.com/gatescan/gatescan/internal/credentials"
	"github.com/gatescan/gatescan/internal/gitsync"
	"github.com/gatescan/gatescan/internal/orchestrator"
	"github.com/gatescan/gatescan/internal/runs"
	"github.com/gatescan/gatescan/internal/scanner"
	"github.com/gatescan/gatescan/internal/server"
	"github.com/gatescan/gatescan/pkg/badgerfx"
	"github.com/go-core-fx/fiberfx"
	"github.com/go-core-fx/healthfx"
	"github.com/go-core-fx/logger"
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
		validator.Module,
		//
		// APP MODULES
		config.Module(),
		server.Module(),
		//
		// BUSINESS MODULES
		fx.Provide(func() healthfx.Version { return healthfx.Version{Version: "0.1.0", ReleaseID: 1} }),
		credentials.Module(),
		gitsync.Module(),
		scanner.Module(),
		runs.Module(),
		badges.Module(),
		orchestrator.Module(),
		//
		// LIFECYCLE MANAGEMENT
		fx.Invoke(func(lc fx.Lifecycle, logger *zap.Logger) {
			lc.Append(fx.Hook{
				OnStart: func(_ context.Context) error {
					logger.Info("GateScan starting up")
					return nil
				},
				OnStop: func(_ context.Context) error {
					logger.Info("GateScan shutting down gracefully")
					return nil
				},
			})
		}),
	).Run()
}
