package orchestrator

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gatescan/gatescan/internal/badges"
	"github.com/gatescan/gatescan/internal/gitsync"
	"github.com/gatescan/gatescan/internal/metrics"
	"github.com/gatescan/gatescan/internal/runs"
	"github.com/gatescan/gatescan/internal/scanner"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// Service runs sync-and-scan passes over the configured repositories.
type Service struct {
	config       Config
	repositories []gitsync.RepositorySpec

	syncSvc   *gitsync.Service
	scanSvc   *scanner.Service
	runsSvc   *runs.Service
	badgesSvc *badges.Service

	validate *validator.Validate
	logger   *zap.Logger

	// One lock per repository: branches share a working copy, and an
	// on-demand scan must not interleave with a scheduled pass.
	locks map[string]*sync.Mutex
}

func NewService(
	config Config,
	repositories []gitsync.RepositorySpec,
	syncSvc *gitsync.Service,
	scanSvc *scanner.Service,
	runsSvc *runs.Service,
	badgesSvc *badges.Service,
	validate *validator.Validate,
	logger *zap.Logger,
) *Service {
	locks := make(map[string]*sync.Mutex, len(repositories))
	for _, repo := range repositories {
		locks[repo.Name] = &sync.Mutex{}
	}

	return &Service{
		config:       config,
		repositories: repositories,

		syncSvc:   syncSvc,
		scanSvc:   scanSvc,
		runsSvc:   runsSvc,
		badgesSvc: badgesSvc,

		validate: validate,
		logger:   logger,

		locks: locks,
	}
}

// RunOnce performs one full pass over every configured repository and
// branch. A failing pair never aborts the pass; every pair yields
// exactly one outcome, in configuration order.
func (s *Service) RunOnce(ctx context.Context) []Outcome {
	start := time.Now()
	s.logger.Info("starting pass", zap.Int("repositories", len(s.repositories)))

	results := make([][]Outcome, len(s.repositories))

	if s.config.Parallel {
		var wg sync.WaitGroup
		for i, repo := range s.repositories {
			wg.Add(1)
			go func() {
				defer wg.Done()
				results[i] = s.runRepository(ctx, repo)
			}()
		}
		wg.Wait()
	} else {
		for i, repo := range s.repositories {
			results[i] = s.runRepository(ctx, repo)
		}
	}

	outcomes := lo.Flatten(results)

	failed := lo.CountBy(outcomes, Outcome.Failed)
	s.logger.Info(
		"pass finished",
		zap.Int("scanned", len(outcomes)),
		zap.Int("failed", failed),
		zap.Duration("elapsed", time.Since(start)),
	)
	metrics.PassFinished()

	if err := s.badgesSvc.WriteDashboard(ctx, s.repositories); err != nil {
		s.logger.Error("failed to write badges dashboard", zap.Error(err))
	}

	return outcomes
}

// TriggerRepository runs an on-demand sync-and-scan for one configured
// repository. With an empty branch every configured branch is scanned.
func (s *Service) TriggerRepository(ctx context.Context, name, branch string) ([]Outcome, error) {
	repo, found := lo.Find(s.repositories, func(r gitsync.RepositorySpec) bool { return r.Name == name })
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRepository, name)
	}

	if branch != "" {
		if !lo.Contains(repo.Branches, branch) {
			return nil, fmt.Errorf("%w: %s@%s", ErrUnknownBranch, name, branch)
		}
		repo.Branches = []string{branch}
	}

	return s.runRepository(ctx, repo), nil
}

func (s *Service) runRepository(ctx context.Context, repo gitsync.RepositorySpec) []Outcome {
	if lock, ok := s.locks[repo.Name]; ok {
		lock.Lock()
		defer lock.Unlock()
	}

	if err := s.validate.Struct(repo); err != nil {
		s.logger.Error("invalid repository configuration", zap.String("repository", repo.Name), zap.Error(err))
		return s.invalidOutcomes(ctx, repo, err)
	}

	outcomes := make([]Outcome, 0, len(repo.Branches))
	for _, branch := range repo.Branches {
		outcomes = append(outcomes, s.runBranch(ctx, repo, branch))
	}

	return outcomes
}

func (s *Service) runBranch(ctx context.Context, repo gitsync.RepositorySpec, branch string) Outcome {
	logger := s.logger.With(zap.String("repository", repo.Name), zap.String("branch", branch))
	logger.Info("processing branch")

	started := time.Now()
	outcome := Outcome{
		Repository: repo.Name,
		Branch:     branch,
		ProjectKey: scanner.ProjectKey(repo.Name, branch),
		Status:     runs.StatusSuccess,
	}

	workingCopy, err := s.syncSvc.Sync(ctx, repo, branch)
	if err != nil {
		logger.Error("sync failed", zap.Error(err))
		outcome.Status = runs.StatusFailed
		outcome.Error = err.Error()
	} else {
		scanStart := time.Now()
		scanErr := s.scanSvc.Run(ctx, scanner.RunRequest{
			Dir:         workingCopy,
			ProjectKey:  outcome.ProjectKey,
			ProjectName: scanner.ProjectName(repo.Name, branch),
		})
		if scanErr != nil {
			logger.Error("scan failed", zap.Error(scanErr))
			metrics.ScanFailure(repo.Name)
			outcome.Status = runs.StatusFailed
			outcome.Error = scanErr.Error()
		} else {
			logger.Info("scan finished", zap.Duration("elapsed", time.Since(scanStart)))
			metrics.ScanSucceeded(repo.Name, scanStart)
		}
	}

	outcome.RunID = s.record(ctx, outcome, workingCopy, started)

	return outcome
}

func (s *Service) invalidOutcomes(ctx context.Context, repo gitsync.RepositorySpec, err error) []Outcome {
	branches := repo.Branches
	if len(branches) == 0 {
		branches = []string{""}
	}

	now := time.Now()
	outcomes := make([]Outcome, 0, len(branches))
	for _, branch := range branches {
		outcome := Outcome{
			Repository: repo.Name,
			Branch:     branch,
			ProjectKey: scanner.ProjectKey(repo.Name, branch),
			Status:     runs.StatusFailed,
			Error:      fmt.Sprintf("invalid repository configuration: %v", err),
		}
		outcome.RunID = s.record(ctx, outcome, "", now)
		outcomes = append(outcomes, outcome)
	}

	return outcomes
}

func (s *Service) record(ctx context.Context, outcome Outcome, workingCopy string, started time.Time) uuid.UUID {
	run, err := s.runsSvc.Record(ctx, runs.ScanRunDraft{
		Repository:  outcome.Repository,
		Branch:      outcome.Branch,
		ProjectKey:  outcome.ProjectKey,
		WorkingCopy: workingCopy,
		Status:      outcome.Status,
		Error:       outcome.Error,
		StartedAt:   started,
		FinishedAt:  time.Now(),
	})
	if err != nil {
		s.logger.Error("failed to record scan run", zap.Error(err))
		return uuid.Nil
	}

	return run.ID
}
