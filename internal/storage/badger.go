// ABOUTME: Badger key-value backend
// ABOUTME: LSM-tree persistence in a data directory

package storage

import (
	"errors"
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v3"
)

// BadgerKV implements KV on a badger database directory.
type BadgerKV struct {
	db  *badger.DB
	dir string
}

// Compile-time check that BadgerKV implements KV.
var _ KV = (*BadgerKV)(nil)

// NewBadgerKV opens (or creates) a badger database in dir.
func NewBadgerKV(dir string) (*BadgerKV, error) {
	if err := os.MkdirAll(dir, 0750); err != nil { //nolint:gosec // user data directory
		return nil, fmt.Errorf("create directory: %w", err)
	}

	db, err := badger.Open(badger.DefaultOptions(dir).WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("open badger db: %w", err)
	}
	return &BadgerKV{db: db, dir: dir}, nil
}

// Get reads a slot.
func (s *BadgerKV) Get(key string) ([]byte, error) {
	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	return data, nil
}

// Set writes a slot.
func (s *BadgerKV) Set(key string, value []byte) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// Remove deletes a slot.
func (s *BadgerKV) Remove(key string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}

// Close flushes and closes the database.
func (s *BadgerKV) Close() error {
	return s.db.Close()
}
