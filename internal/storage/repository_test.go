package storage

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/dgraph-io/badger/v4"
)

type testEntity struct {
	Key   string   `json:"key"`
	Tags  []string `json:"tags"`
	Value int      `json:"value"`
}

func (e *testEntity) StorageKey() string { return "test:id:" + e.Key }

func (e *testEntity) StorageIndexes() []string {
	indexes := make([]string, 0, len(e.Tags))
	for _, tag := range e.Tags {
		indexes = append(indexes, "test:tag:"+tag+":"+e.Key)
	}
	return indexes
}

func (e *testEntity) MarshalStorage() ([]byte, error) { return json.Marshal(e) }

func (e *testEntity) UnmarshalStorage(data []byte) error { return json.Unmarshal(data, e) }

func newTestDB(t *testing.T) *badger.DB {
	t.Helper()

	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLogger(nil))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return db
}

func TestRepository_WriteAndRead(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(func() *testEntity { return &testEntity{} })

	err := db.Update(func(txn *badger.Txn) error {
		return repo.Write(txn, &testEntity{Key: "a", Tags: []string{"red"}, Value: 1})
	})
	if err != nil {
		t.Fatal(err)
	}

	err = db.View(func(txn *badger.Txn) error {
		got, err := repo.Read(txn, "test:id:a")
		if err != nil {
			return err
		}
		if got.Value != 1 {
			t.Errorf("unexpected value: %d", got.Value)
		}

		if _, err := repo.Read(txn, "test:id:missing"); !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}

		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestRepository_Indexes(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(func() *testEntity { return &testEntity{} })

	err := db.Update(func(txn *badger.Txn) error {
		for _, e := range []*testEntity{
			{Key: "a", Tags: []string{"red"}, Value: 1},
			{Key: "b", Tags: []string{"red", "blue"}, Value: 2},
			{Key: "c", Tags: []string{"blue"}, Value: 3},
		} {
			if err := repo.Write(txn, e); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	err = db.View(func(txn *badger.Txn) error {
		got, err := repo.ReadByIndex(txn, "test:tag:blue:c")
		if err != nil {
			return err
		}
		if got.Value != 3 {
			t.Errorf("unexpected value: %d", got.Value)
		}

		red, err := repo.ListByIndex(txn, "test:tag:red:", false)
		if err != nil {
			return err
		}
		if len(red) != 2 {
			t.Errorf("expected 2 red entities, got %d", len(red))
		}

		reversed, err := repo.ListByIndex(txn, "test:tag:red:", true)
		if err != nil {
			return err
		}
		if len(reversed) != 2 || reversed[0].Key != "b" {
			t.Errorf("expected reversed order, got %+v", reversed)
		}

		all, err := repo.List(txn, "test:id:")
		if err != nil {
			return err
		}
		if len(all) != 3 {
			t.Errorf("expected 3 entities, got %d", len(all))
		}

		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestRepository_Delete(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(func() *testEntity { return &testEntity{} })

	err := db.Update(func(txn *badger.Txn) error {
		return repo.Write(txn, &testEntity{Key: "a", Tags: []string{"red"}, Value: 1})
	})
	if err != nil {
		t.Fatal(err)
	}

	err = db.Update(func(txn *badger.Txn) error {
		return repo.Delete(txn, "test:id:a")
	})
	if err != nil {
		t.Fatal(err)
	}

	err = db.View(func(txn *badger.Txn) error {
		if _, err := repo.Read(txn, "test:id:a"); !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound after delete, got %v", err)
		}
		if _, err := repo.ReadByIndex(txn, "test:tag:red:a"); !errors.Is(err, ErrNotFound) {
			t.Errorf("expected index removal, got %v", err)
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}
