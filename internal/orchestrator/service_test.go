package orchestrator

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/gatescan/gatescan/internal/badges"
	"github.com/gatescan/gatescan/internal/credentials"
	"github.com/gatescan/gatescan/internal/gitsync"
	"github.com/gatescan/gatescan/internal/runs"
	"github.com/gatescan/gatescan/internal/scanner"
	"github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/plumbing/object"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap/zaptest"
)

type fixture struct {
	svc  *Service
	runs *runs.Service
}

func initRemote(t *testing.T) string {
	t.Helper()

	dir := filepath.Join(t.TempDir(), "remote")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}

	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatal(err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "README.md"), []byte("hello"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := worktree.Add("README.md"); err != nil {
		t.Fatal(err)
	}
	if _, err := worktree.Commit("initial commit", &git.CommitOptions{
		Author: &object.Signature{
			Name:  "Test Author",
			Email: "test@example.com",
			When:  time.Now(),
		},
	}); err != nil {
		t.Fatal(err)
	}

	return dir
}

// fakeScanner writes a shell script that records its invocation.
func fakeScanner(t *testing.T, exitCode int) string {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("shell script scanner stub")
	}

	path := filepath.Join(t.TempDir(), "sonar-scanner")
	script := "#!/bin/sh\nexit " + strconv.Itoa(exitCode) + "\n"
	if err := os.WriteFile(path, []byte(script), 0755); err != nil {
		t.Fatal(err)
	}
	return path
}

func newFixture(t *testing.T, config Config, repositories []gitsync.RepositorySpec, scannerExit int) *fixture {
	t.Helper()

	logger := zaptest.NewLogger(t)

	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLogger(nil))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })

	resolver := credentials.NewResolver(func(string) (string, bool) { return "", false }, logger)
	syncSvc := gitsync.NewService(gitsync.Config{BaseDir: t.TempDir()}, resolver, logger)
	scanSvc := scanner.NewService(scanner.Config{
		Binary:  fakeScanner(t, scannerExit),
		HostURL: "http://sonar.invalid",
		Token:   "test-token",
	}, logger)
	runsSvc := runs.NewService(runs.NewRepository(db), logger)
	badgesSvc := badges.NewService(badges.Config{SonarURL: "http://sonar.invalid"}, logger)

	return &fixture{
		svc: NewService(
			config,
			repositories,
			syncSvc,
			scanSvc,
			runsSvc,
			badgesSvc,
			validator.New(),
			logger,
		),
		runs: runsSvc,
	}
}

func TestRunOnce(t *testing.T) {
	remote := initRemote(t)

	repositories := []gitsync.RepositorySpec{
		{Name: "billing", URL: remote, Branches: []string{"master"}},
		{Name: "broken", URL: filepath.Join(t.TempDir(), "missing"), Branches: []string{"master"}},
	}

	f := newFixture(t, Config{}, repositories, 0)

	outcomes := f.svc.RunOnce(context.Background())
	if len(outcomes) != 2 {
		t.Fatalf("expected 2 outcomes, got %d", len(outcomes))
	}

	if outcomes[0].Repository != "billing" || outcomes[0].Failed() {
		t.Fatalf("expected billing to succeed: %+v", outcomes[0])
	}
	if outcomes[0].ProjectKey != "billing-master" {
		t.Fatalf("unexpected project key: %s", outcomes[0].ProjectKey)
	}
	if outcomes[0].RunID == uuid.Nil {
		t.Fatal("expected a recorded run")
	}

	if outcomes[1].Repository != "broken" || !outcomes[1].Failed() {
		t.Fatalf("expected broken to fail: %+v", outcomes[1])
	}
	if outcomes[1].Error == "" {
		t.Fatal("expected failure message")
	}

	recorded, err := f.runs.List(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(recorded) != 2 {
		t.Fatalf("expected 2 recorded runs, got %d", len(recorded))
	}
}

func TestRunOnce_ScannerFailure(t *testing.T) {
	remote := initRemote(t)

	repositories := []gitsync.RepositorySpec{
		{Name: "billing", URL: remote, Branches: []string{"master"}},
	}

	f := newFixture(t, Config{}, repositories, 1)

	outcomes := f.svc.RunOnce(context.Background())
	if len(outcomes) != 1 {
		t.Fatalf("expected 1 outcome, got %d", len(outcomes))
	}
	if !outcomes[0].Failed() {
		t.Fatalf("expected failure: %+v", outcomes[0])
	}

	latest, err := f.runs.LatestFor(context.Background(), "billing", "master")
	if err != nil {
		t.Fatal(err)
	}
	if latest.Status != runs.StatusFailed {
		t.Fatalf("expected failed run, got %s", latest.Status)
	}
}

func TestRunOnce_InvalidRepository(t *testing.T) {
	repositories := []gitsync.RepositorySpec{
		{Name: "billing", URL: "https://example.com/billing.git"},
	}

	f := newFixture(t, Config{}, repositories, 0)

	outcomes := f.svc.RunOnce(context.Background())
	if len(outcomes) != 1 {
		t.Fatalf("expected 1 outcome, got %d", len(outcomes))
	}
	if !outcomes[0].Failed() {
		t.Fatalf("expected failure: %+v", outcomes[0])
	}
}

func TestRunOnce_Parallel(t *testing.T) {
	first := initRemote(t)
	second := initRemote(t)

	repositories := []gitsync.RepositorySpec{
		{Name: "billing", URL: first, Branches: []string{"master"}},
		{Name: "payments", URL: second, Branches: []string{"master"}},
	}

	f := newFixture(t, Config{Parallel: true}, repositories, 0)

	outcomes := f.svc.RunOnce(context.Background())
	if len(outcomes) != 2 {
		t.Fatalf("expected 2 outcomes, got %d", len(outcomes))
	}
	// Configuration order is preserved even with concurrent repositories.
	if outcomes[0].Repository != "billing" || outcomes[1].Repository != "payments" {
		t.Fatalf("unexpected order: %s, %s", outcomes[0].Repository, outcomes[1].Repository)
	}
}

func TestTriggerRepository(t *testing.T) {
	remote := initRemote(t)

	repositories := []gitsync.RepositorySpec{
		{Name: "billing", URL: remote, Branches: []string{"master"}},
	}

	f := newFixture(t, Config{}, repositories, 0)
	ctx := context.Background()

	outcomes, err := f.svc.TriggerRepository(ctx, "billing", "master")
	if err != nil {
		t.Fatal(err)
	}
	if len(outcomes) != 1 || outcomes[0].Failed() {
		t.Fatalf("unexpected outcomes: %+v", outcomes)
	}

	if _, err := f.svc.TriggerRepository(ctx, "unknown", ""); !errors.Is(err, ErrUnknownRepository) {
		t.Fatalf("expected ErrUnknownRepository, got %v", err)
	}

	if _, err := f.svc.TriggerRepository(ctx, "billing", "release"); !errors.Is(err, ErrUnknownBranch) {
		t.Fatalf("expected ErrUnknownBranch, got %v", err)
	}
}
