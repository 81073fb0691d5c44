package runs

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/gatescan/gatescan/internal/storage"
	"github.com/gatescan/gatescan/pkg/badgerfx"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

// Repository persists scan runs in badger.
type Repository struct {
	db    *badger.DB
	store *storage.Repository[*scanRunModel]
}

func NewRepository(db *badger.DB) *Repository {
	return &Repository{
		db: db,
		store: storage.NewRepository(func() *scanRunModel {
			return &scanRunModel{}
		}),
	}
}

// Create records a new scan run.
func (r *Repository) Create(_ context.Context, draft *ScanRunDraft) (*ScanRun, error) {
	model := newScanRunModel(draft)

	err := r.db.Update(func(txn *badger.Txn) error {
		return r.store.Write(txn, model)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create scan run: %w", err)
	}

	return newScanRun(model), nil
}

// GetByID retrieves a scan run by its ID.
func (r *Repository) GetByID(_ context.Context, id uuid.UUID) (*ScanRun, error) {
	var model *scanRunModel

	err := r.db.View(func(txn *badger.Txn) error {
		found, err := r.store.Read(txn, prefixByID+id.String())
		if err == nil {
			model = found
		}

		return err
	})
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id.String())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get scan run: %w", err)
	}

	return newScanRun(model), nil
}

// List retrieves all scan runs, newest first.
func (r *Repository) List(_ context.Context) ([]ScanRun, error) {
	var models []*scanRunModel

	err := r.db.View(func(txn *badger.Txn) error {
		var listErr error
		models, listErr = r.store.List(txn, prefixByID)
		return listErr
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list scan runs: %w", err)
	}

	runs := lo.Map(models, func(m *scanRunModel, _ int) ScanRun { return *newScanRun(m) })

	// UUIDv7 keys sort by creation time, reverse for newest first.
	lo.Reverse(runs)

	return runs, nil
}

// ListByRepository retrieves all scan runs for one repository, newest first.
func (r *Repository) ListByRepository(_ context.Context, repository string) ([]ScanRun, error) {
	var models []*scanRunModel

	err := r.db.View(func(txn *badger.Txn) error {
		var listErr error
		models, listErr = r.store.ListByIndex(txn, repositoryPrefix(repository), true)
		return listErr
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list scan runs: %w", err)
	}

	return lo.Map(models, func(m *scanRunModel, _ int) ScanRun { return *newScanRun(m) }), nil
}

// LatestFor retrieves the most recent scan run for a (repository, branch) pair.
func (r *Repository) LatestFor(_ context.Context, repository, branch string) (*ScanRun, error) {
	var latest *scanRunModel

	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		opts.PrefetchSize = 2

		it := txn.NewIterator(opts)
		defer it.Close()

		keyPrefix := []byte(targetPrefix(repository, branch))
		for it.Seek(append(keyPrefix, badgerfx.SeekEnd)); it.ValidForPrefix(keyPrefix) && latest == nil; it.Next() {
			key, err := it.Item().ValueCopy(nil)
			if err != nil {
				return fmt.Errorf("failed to get scan run key: %w", err)
			}

			found, err := r.store.Read(txn, string(key))
			if err != nil {
				return err
			}

			latest = found
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get latest scan run: %w", err)
	}

	if latest == nil {
		return nil, fmt.Errorf("%w for %s@%s", ErrNotFound, repository, branch)
	}

	return newScanRun(latest), nil
}
