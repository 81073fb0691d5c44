package badgerfx

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

const SeekEnd = byte(0xFF)

// gcDiscardRatio rewrites a value log file when at least half of it is
// stale.
const gcDiscardRatio = 0.5

func New(config Config, logger *zapLogger) (*badger.DB, error) {
	opts := config.Build().
		WithLogger(logger)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open BadgerDB: %w", err)
	}

	return db, nil
}

// collectGarbage runs one value log GC cycle, repeating while files are
// being reclaimed.
func collectGarbage(db *badger.DB) error {
	for {
		err := db.RunValueLogGC(gcDiscardRatio)
		if errors.Is(err, badger.ErrNoRewrite) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("value log GC failed: %w", err)
		}
	}
}
