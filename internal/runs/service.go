package runs

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service struct {
	runs *Repository

	logger *zap.Logger
}

func NewService(runs *Repository, logger *zap.Logger) *Service {
	return &Service{
		runs: runs,

		logger: logger,
	}
}

// Record stores the outcome of one sync-and-scan attempt.
func (s *Service) Record(ctx context.Context, draft ScanRunDraft) (*ScanRun, error) {
	s.logger.Debug(
		"recording scan run",
		zap.String("repository", draft.Repository),
		zap.String("branch", draft.Branch),
		zap.String("status", string(draft.Status)),
	)

	run, err := s.runs.Create(ctx, &draft)
	if err != nil {
		s.logger.Error("failed to record scan run", zap.Error(err))
		return nil, err
	}

	return run, nil
}

// Get retrieves a scan run by ID.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*ScanRun, error) {
	s.logger.Debug("getting scan run", zap.String("id", id.String()))

	run, err := s.runs.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to get scan run", zap.String("id", id.String()), zap.Error(err))
		return nil, err
	}

	return run, nil
}

// List retrieves all scan runs.
func (s *Service) List(ctx context.Context) ([]ScanRun, error) {
	s.logger.Debug("listing scan runs")

	runs, err := s.runs.List(ctx)
	if err != nil {
		s.logger.Error("failed to list scan runs", zap.Error(err))
		return nil, err
	}

	return runs, nil
}

// ListByRepository retrieves all scan runs for one repository.
func (s *Service) ListByRepository(ctx context.Context, repository string) ([]ScanRun, error) {
	s.logger.Debug("listing scan runs", zap.String("repository", repository))

	runs, err := s.runs.ListByRepository(ctx, repository)
	if err != nil {
		s.logger.Error("failed to list scan runs", zap.Error(err))
		return nil, err
	}

	return runs, nil
}

// LatestFor retrieves the most recent scan run for a (repository, branch) pair.
func (s *Service) LatestFor(ctx context.Context, repository, branch string) (*ScanRun, error) {
	run, err := s.runs.LatestFor(ctx, repository, branch)
	if err != nil {
		return nil, err
	}

	return run, nil
}
