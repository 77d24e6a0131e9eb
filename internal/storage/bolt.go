// ABOUTME: BoltDB key-value backend
// ABOUTME: Default local persistence, one bucket holding every collection slot

package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

var bucketSlots = []byte("slots")

// BoltKV implements KV on a single bbolt file.
type BoltKV struct {
	db   *bolt.DB
	path string
}

// Compile-time check that BoltKV implements KV.
var _ KV = (*BoltKV)(nil)

// NewBoltKV opens (or creates) the database file at path.
func NewBoltKV(path string) (*BoltKV, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil { //nolint:gosec // user data directory
		return nil, fmt.Errorf("create directory: %w", err)
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketSlots)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create bucket: %w", err)
	}

	return &BoltKV{db: db, path: path}, nil
}

// Path returns the database file path.
func (s *BoltKV) Path() string {
	return s.path
}

// Get reads a slot.
func (s *BoltKV) Get(key string) ([]byte, error) {
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketSlots)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	if data == nil {
		return nil, ErrNotFound
	}
	return data, nil
}

// Set writes a slot.
func (s *BoltKV) Set(key string, value []byte) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketSlots).Put([]byte(key), value)
	})
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// Remove deletes a slot.
func (s *BoltKV) Remove(key string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketSlots).Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}

// Close closes the database file.
func (s *BoltKV) Close() error {
	return s.db.Close()
}
