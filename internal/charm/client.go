// ABOUTME: Charm KV client wrapper implementing collection slot storage
// ABOUTME: Short-lived connections via the transactional Do API to avoid lock contention

package charm

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/charm/kv"
	"github.com/harper/reel/internal/storage"
)

const (
	// DBName is the name of the Charm KV database for collection data.
	DBName = "reel"

	// DefaultCharmHost is the default Charm server to use.
	DefaultCharmHost = "charm.2389.dev"
)

// Client holds configuration for KV operations.
// It does NOT hold a persistent connection: each operation opens the
// database, performs the operation, and closes it.
type Client struct {
	dbName   string
	autoSync bool
}

// Compile-time check that Client implements storage.KV.
var _ storage.KV = (*Client)(nil)

// Config holds client configuration options.
type Config struct {
	// CharmHost is the Charm server to use (default: charm.2389.dev).
	CharmHost string
	// AutoSync pushes to the Charm server after writes.
	AutoSync bool
}

// DefaultConfig returns the default client configuration.
// Sync stays off: collections are local to this device.
func DefaultConfig() *Config {
	host := os.Getenv("CHARM_HOST")
	if host == "" {
		host = DefaultCharmHost
	}
	return &Config{
		CharmHost: host,
		AutoSync:  false,
	}
}

// NewClient creates a new client with the given config.
func NewClient(cfg *Config) (*Client, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	// CHARM_HOST must be set before any KV operations
	if err := os.Setenv("CHARM_HOST", cfg.CharmHost); err != nil {
		return nil, err
	}

	return &Client{
		dbName:   DBName,
		autoSync: cfg.AutoSync,
	}, nil
}

// NewTestClient creates a client for testing without network access.
func NewTestClient(dbName string) *Client {
	return &Client{
		dbName:   dbName,
		autoSync: false,
	}
}

// Get retrieves a slot (read-only, no lock contention).
func (c *Client) Get(key string) ([]byte, error) {
	var val []byte
	err := kv.DoReadOnly(c.dbName, func(k *kv.KV) error {
		var err error
		val, err = k.Get([]byte(key))
		return err
	})
	if errors.Is(err, kv.ErrMissingKey) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	return val, nil
}

// Set stores a slot.
func (c *Client) Set(key string, value []byte) error {
	err := c.do(func(k *kv.KV) error {
		return k.Set([]byte(key), value)
	})
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// Remove deletes a slot.
func (c *Client) Remove(key string) error {
	err := c.do(func(k *kv.KV) error {
		err := k.Delete([]byte(key))
		if errors.Is(err, kv.ErrMissingKey) {
			return nil
		}
		return err
	})
	if err != nil {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}

// Sync triggers a manual sync with the charm server.
func (c *Client) Sync() error {
	return kv.Do(c.dbName, func(k *kv.KV) error {
		return k.Sync()
	})
}

// Reset clears all data (nuclear option).
func (c *Client) Reset() error {
	return kv.Do(c.dbName, func(k *kv.KV) error {
		return k.Reset()
	})
}

// Close is a no-op: connections close after each operation.
func (c *Client) Close() error {
	return nil
}

func (c *Client) do(fn func(k *kv.KV) error) error {
	return kv.Do(c.dbName, func(k *kv.KV) error {
		if err := fn(k); err != nil {
			return err
		}
		if c.autoSync {
			return k.Sync()
		}
		return nil
	})
}
