package badgerfx

import (
	"time"

	"github.com/dgraph-io/badger/v4"
)

const defaultGCInterval = 10 * time.Minute

type Config struct {
	// Path to the BadgerDB data directory
	Dir string
	// GCInterval between value log garbage collection runs. Zero
	// selects the default.
	GCInterval time.Duration
}

func (c Config) Build() badger.Options {
	options := badger.DefaultOptions(c.Dir)

	return options
}

func (c Config) gcInterval() time.Duration {
	if c.GCInterval <= 0 {
		return defaultGCInterval
	}
	return c.GCInterval
}
