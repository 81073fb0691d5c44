package storage

// Entity is anything the generic badger-backed repository can persist.
// StorageKey returns the full primary key; StorageIndexes returns secondary
// index keys whose value is the primary key.
type Entity interface {
	StorageKey() string
	StorageIndexes() []string
	MarshalStorage() ([]byte, error)
	UnmarshalStorage(data []byte) error
}

// EntityFactory constructs an empty entity for unmarshalling.
type EntityFactory[T Entity] func() T
