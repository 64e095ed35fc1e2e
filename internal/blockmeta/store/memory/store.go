// Package memory implements the bucket store in process on top of go-memdb.
//
// It mirrors the store the indexing host provides: first-write-wins offers, plain
// overwrites and deletes, and an ordered delta log drained once per invocation.
// The stage only offers through SetIfNotExists. Set and Delete reproduce the update
// and delete delta shapes the host can emit, so the changelog path for them can be
// driven end to end in tests.
package memory

import (
	"bytes"
	"fmt"

	"github.com/goodnatureofminers/blockinsight7000-blockmeta/internal/blockmeta/model"
	"github.com/hashicorp/go-memdb"
)

const (
	entriesTable = "entries"
	idIndex      = "id"
)

type entry struct {
	Key     string
	Ordinal uint64
	Value   model.BlockMeta
}

// Store keeps one BlockMeta per key and records a delta for every effective change.
// It is not safe for concurrent writers; the host processes one block at a time.
type Store struct {
	db     *memdb.MemDB
	deltas []model.Delta
}

// New creates an empty Store.
func New() (*Store, error) {
	db, err := memdb.NewMemDB(&memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			entriesTable: {
				Name: entriesTable,
				Indexes: map[string]*memdb.IndexSchema{
					idIndex: {
						Name:    idIndex,
						Unique:  true,
						Indexer: &memdb.StringFieldIndex{Field: "Key"},
					},
				},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create memdb: %w", err)
	}
	return &Store{db: db}, nil
}

// SetIfNotExists stores value under key unless the key already holds an entry.
// Only the first write produces a delta.
func (s *Store) SetIfNotExists(ordinal uint64, key string, value model.BlockMeta) error {
	txn := s.db.Txn(true)
	defer txn.Abort()

	existing, err := first(txn, key)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	value = clone(value)
	if err := txn.Insert(entriesTable, &entry{Key: key, Ordinal: ordinal, Value: value}); err != nil {
		return fmt.Errorf("insert %s: %w", key, err)
	}
	txn.Commit()

	s.deltas = append(s.deltas, model.Delta{
		Key:       key,
		Ordinal:   ordinal,
		Operation: model.OperationCreate,
		NewValue:  &value,
	})
	return nil
}

// Set stores value under key, overwriting any previous entry.
func (s *Store) Set(ordinal uint64, key string, value model.BlockMeta) error {
	txn := s.db.Txn(true)
	defer txn.Abort()

	existing, err := first(txn, key)
	if err != nil {
		return err
	}

	value = clone(value)
	if err := txn.Insert(entriesTable, &entry{Key: key, Ordinal: ordinal, Value: value}); err != nil {
		return fmt.Errorf("insert %s: %w", key, err)
	}
	txn.Commit()

	delta := model.Delta{Key: key, Ordinal: ordinal, Operation: model.OperationCreate, NewValue: &value}
	if existing != nil {
		old := existing.Value
		delta.Operation = model.OperationUpdate
		delta.OldValue = &old
	}
	s.deltas = append(s.deltas, delta)
	return nil
}

// Delete removes key. Deleting a missing key is a no-op.
func (s *Store) Delete(ordinal uint64, key string) error {
	txn := s.db.Txn(true)
	defer txn.Abort()

	existing, err := first(txn, key)
	if err != nil {
		return err
	}
	if existing == nil {
		return nil
	}
	if err := txn.Delete(entriesTable, existing); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	txn.Commit()

	old := existing.Value
	s.deltas = append(s.deltas, model.Delta{
		Key:       key,
		Ordinal:   ordinal,
		Operation: model.OperationDelete,
		OldValue:  &old,
	})
	return nil
}

// Get returns the value stored under key.
func (s *Store) Get(key string) (model.BlockMeta, bool, error) {
	txn := s.db.Txn(false)
	defer txn.Abort()

	existing, err := first(txn, key)
	if err != nil || existing == nil {
		return model.BlockMeta{}, false, err
	}
	return clone(existing.Value), true, nil
}

// Deltas returns the changes recorded since the previous call, in write order, and resets the log.
func (s *Store) Deltas() []model.Delta {
	out := s.deltas
	s.deltas = nil
	return out
}

func first(txn *memdb.Txn, key string) (*entry, error) {
	raw, err := txn.First(entriesTable, idIndex, key)
	if err != nil {
		return nil, fmt.Errorf("lookup %s: %w", key, err)
	}
	if raw == nil {
		return nil, nil
	}
	return raw.(*entry), nil
}

func clone(v model.BlockMeta) model.BlockMeta {
	v.Hash = bytes.Clone(v.Hash)
	v.ParentHash = bytes.Clone(v.ParentHash)
	return v
}
