package gitsync

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/gatescan/gatescan/internal/credentials"
	"github.com/gatescan/gatescan/internal/giturl"
	"github.com/gatescan/gatescan/internal/metrics"
	"github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/plumbing"
	"go.uber.org/zap"
)

const remoteName = "origin"

// Service keeps one local working copy per repository name, shared across
// all of that repository's branches. Branch switches mutate the shared copy
// in place, so callers must not sync branches of the same repository
// concurrently.
type Service struct {
	config   Config
	resolver *credentials.Resolver
	logger   *zap.Logger
}

func NewService(config Config, resolver *credentials.Resolver, logger *zap.Logger) *Service {
	return &Service{
		config:   config,
		resolver: resolver,
		logger:   logger,
	}
}

// Sync ensures the working copy for spec exists and sits exactly at the
// remote tip of branch, returning the working-copy path. Local divergence is
// discarded (hard-reset semantics). Credentials are resolved fresh on every
// call and the stored remote URL is rewritten accordingly.
func (s *Service) Sync(ctx context.Context, spec RepositorySpec, branch string) (string, error) {
	if giturl.IsSSH(spec.URL) {
		return "", fmt.Errorf("%w: %s", ErrSSHUnsupported, spec.URL)
	}

	kind := giturl.Classify(spec.URL)

	var secret string
	if cred, ok := s.resolver.Resolve(spec.Name, kind); ok {
		secret = cred.Secret()
	}

	authURL, err := giturl.ApplyAuth(spec.URL, secret, kind)
	if err != nil {
		return "", fmt.Errorf("%w: %s", err, spec.URL)
	}
	maskedURL := giturl.Mask(authURL)
	secrets := secretVariants(secret)
	target := filepath.Join(s.config.BaseDir, spec.Name)

	logger := s.logger.With(
		zap.String("repository", spec.Name),
		zap.String("branch", branch),
		zap.String("url", maskedURL),
	)

	start := time.Now()

	repo, err := git.PlainOpen(target)
	switch {
	case err == nil:
		logger.Info("updating repository", zap.String("directory", target))
		err = s.update(ctx, repo, authURL, branch, spec.Name, secrets)
	case errors.Is(err, git.ErrRepositoryNotExists):
		logger.Info("cloning repository", zap.String("directory", target))
		err = s.clone(ctx, target, authURL, branch, spec.Name, secrets)
	default:
		err = newSyncError(spec.Name, branch, ErrOpenFailed, err, secrets)
	}

	if err != nil {
		metrics.SyncFailed(spec.Name)
		logger.Error("repository sync failed", zap.Error(err))
		return "", err
	}

	metrics.SyncSucceeded(spec.Name, start)
	logger.Info("repository synced", zap.String("directory", target))
	return target, nil
}

// update refreshes an existing working copy: rewrite the remote URL (the
// credential may have rotated since the last pass), fetch, switch to the
// branch and hard-reset it onto the remote tracking tip.
func (s *Service) update(ctx context.Context, repo *git.Repository, authURL, branch, name string, secrets []string) error {
	if err := s.setRemoteURL(repo, authURL); err != nil {
		return newSyncError(name, branch, ErrRemoteUpdateFailed, err, secrets)
	}

	err := repo.FetchContext(ctx, &git.FetchOptions{
		RemoteName: remoteName,
		Force:      true,
	})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return newSyncError(name, branch, ErrFetchFailed, err, secrets)
	}

	return s.checkoutAndReset(repo, branch, name, secrets)
}

// clone creates the working copy and leaves the requested branch checked
// out. The explicit checkout is skipped when the clone already landed on it.
func (s *Service) clone(ctx context.Context, target, authURL, branch, name string, secrets []string) error {
	repo, err := git.PlainCloneContext(ctx, target, &git.CloneOptions{
		URL: authURL,
	})
	if err != nil {
		return newSyncError(name, branch, ErrCloneFailed, err, secrets)
	}

	head, err := repo.Head()
	if err == nil && head.Name() == plumbing.NewBranchReferenceName(branch) {
		return nil
	}

	return s.checkoutAndReset(repo, branch, name, secrets)
}

func (s *Service) checkoutAndReset(repo *git.Repository, branch, name string, secrets []string) error {
	remoteRef, err := repo.Reference(plumbing.NewRemoteReferenceName(remoteName, branch), true)
	if err != nil {
		return newSyncError(name, branch, ErrCheckoutFailed, err, secrets)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return newSyncError(name, branch, ErrCheckoutFailed, err, secrets)
	}

	branchRef := plumbing.NewBranchReferenceName(branch)
	opts := &git.CheckoutOptions{
		Branch: branchRef,
		Force:  true,
	}
	if _, refErr := repo.Reference(branchRef, false); refErr != nil {
		opts.Hash = remoteRef.Hash()
		opts.Create = true
	}

	if err := worktree.Checkout(opts); err != nil {
		return newSyncError(name, branch, ErrCheckoutFailed, err, secrets)
	}

	err = worktree.Reset(&git.ResetOptions{
		Mode:   git.HardReset,
		Commit: remoteRef.Hash(),
	})
	if err != nil {
		return newSyncError(name, branch, ErrResetFailed, err, secrets)
	}

	return nil
}

func (s *Service) setRemoteURL(repo *git.Repository, authURL string) error {
	cfg, err := repo.Config()
	if err != nil {
		return err
	}

	remote, ok := cfg.Remotes[remoteName]
	if !ok {
		return fmt.Errorf("remote %q not configured", remoteName)
	}
	remote.URLs = []string{authURL}

	return repo.SetConfig(cfg)
}
