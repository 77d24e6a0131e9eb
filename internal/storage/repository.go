// ABOUTME: Key-value storage interface for collection slots
// ABOUTME: Enables testability and storage backend swapping

package storage

// KV is a byte-string store addressed by slot name.
// Get returns ErrNotFound for a slot that was never written or was removed.
type KV interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Remove(key string) error
	Close() error
}

// Backend names accepted by the config layer.
const (
	BackendBolt   = "bolt"
	BackendBadger = "badger"
	BackendSQLite = "sqlite"
	BackendCharm  = "charm"
	BackendMemory = "memory"
)
