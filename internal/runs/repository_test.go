package runs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()

	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLogger(nil))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return NewRepository(db)
}

func draftFor(repository, branch string, status Status) ScanRunDraft {
	started := time.Now().Add(-time.Minute)
	return ScanRunDraft{
		Repository:  repository,
		Branch:      branch,
		ProjectKey:  repository + "-" + branch,
		WorkingCopy: "/var/lib/gatescan/" + repository,
		Status:      status,
		StartedAt:   started,
		FinishedAt:  time.Now(),
	}
}

func TestRepository_CreateAndGet(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	draft := draftFor("billing", "main", StatusSuccess)
	created, err := repo.Create(ctx, &draft)
	if err != nil {
		t.Fatal(err)
	}
	if created.ID == uuid.Nil {
		t.Fatal("expected a generated ID")
	}

	got, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Repository != "billing" || got.Branch != "main" {
		t.Fatalf("unexpected run: %+v", got)
	}
	if got.Status != StatusSuccess {
		t.Fatalf("unexpected status: %s", got.Status)
	}
}

func TestRepository_GetByIDNotFound(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.GetByID(context.Background(), uuid.Must(uuid.NewV7()))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRepository_ListByRepository(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	for _, d := range []ScanRunDraft{
		draftFor("billing", "main", StatusSuccess),
		draftFor("billing", "dev", StatusFailed),
		draftFor("payments", "main", StatusSuccess),
	} {
		// key timestamps must differ
		time.Sleep(time.Millisecond)
		if _, err := repo.Create(ctx, &d); err != nil {
			t.Fatal(err)
		}
	}

	runs, err := repo.ListByRepository(ctx, "billing")
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	// Newest first
	if runs[0].Branch != "dev" || runs[1].Branch != "main" {
		t.Fatalf("unexpected order: %s, %s", runs[0].Branch, runs[1].Branch)
	}

	all, err := repo.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(all))
	}
	if all[0].Repository != "payments" {
		t.Fatalf("expected newest run first, got %s", all[0].Repository)
	}
}

func TestRepository_LatestFor(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	first := draftFor("billing", "main", StatusFailed)
	if _, err := repo.Create(ctx, &first); err != nil {
		t.Fatal(err)
	}

	time.Sleep(time.Millisecond)

	second := draftFor("billing", "main", StatusSuccess)
	if _, err := repo.Create(ctx, &second); err != nil {
		t.Fatal(err)
	}

	latest, err := repo.LatestFor(ctx, "billing", "main")
	if err != nil {
		t.Fatal(err)
	}
	if latest.Status != StatusSuccess {
		t.Fatalf("expected latest run, got status %s", latest.Status)
	}

	if _, err := repo.LatestFor(ctx, "billing", "release"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
