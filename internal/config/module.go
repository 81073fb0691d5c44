package config

import (
	"github.com/gatescan/gatescan/internal/badges"
	"github.com/gatescan/gatescan/internal/gitsync"
	"github.com/gatescan/gatescan/internal/orchestrator"
	"github.com/gatescan/gatescan/internal/scanner"
	"github.com/gatescan/gatescan/pkg/badgerfx"
	"github.com/go-core-fx/fiberfx"
	"github.com/samber/lo"
	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module(
		"config",
		fx.Provide(New),
		fx.Provide(func(cfg Config) fiberfx.Config {
			return fiberfx.Config{
				Address:     cfg.HTTP.Address,
				ProxyHeader: cfg.HTTP.ProxyHeader,
				Proxies:     cfg.HTTP.Proxies,
			}
		}),
		fx.Provide(func(cfg Config) badgerfx.Config {
			return badgerfx.Config{
				Dir: cfg.Storage.DataDir,
			}
		}),
		fx.Provide(func(cfg Config) gitsync.Config {
			return gitsync.Config{
				BaseDir: cfg.Sync.BaseDir,
			}
		}),
		fx.Provide(func(cfg Config) scanner.Config {
			return scanner.Config{
				Binary:    cfg.SonarQube.ScannerBinary,
				HostURL:   cfg.SonarQube.URL,
				Token:     cfg.SonarQube.Token,
				ExtraArgs: cfg.SonarQube.ExtraArgs,
			}
		}),
		fx.Provide(func(cfg Config) badges.Config {
			return badges.Config{
				SonarURL:   cfg.SonarQube.URL,
				Token:      cfg.SonarQube.Token,
				OutputFile: cfg.Badges.OutputFile,
			}
		}),
		fx.Provide(func(cfg Config) orchestrator.Config {
			return orchestrator.Config{
				Interval: cfg.Sync.Interval,
				Parallel: cfg.Sync.Parallel,
			}
		}),
		fx.Provide(func(cfg Config) []gitsync.RepositorySpec {
			return lo.Map(cfg.Repositories, func(repo repositoryConfig, _ int) gitsync.RepositorySpec {
				return gitsync.RepositorySpec{
					Name:     repo.Name,
					URL:      repo.URL,
					Branches: repo.Branches,
				}
			})
		}),
	)
}
