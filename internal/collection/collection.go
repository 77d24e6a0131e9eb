// ABOUTME: Generic persisted collection over one key-value storage slot
// ABOUTME: Loads on construction, writes the full sequence back after every mutation

// Package collection implements the load/mutate/deduplicate/persist pattern
// shared by every media collection.
//
// Storage failures never reach callers of the mutation methods: a slot that
// cannot be read loads as empty, and a write that fails leaves the in-memory
// sequence authoritative for the rest of the session. Both outcomes are logged
// and recorded in Status so callers can inspect them if they care.
package collection

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/harper/reel/internal/models"
	"github.com/harper/reel/internal/storage"
	"github.com/rs/zerolog"
)

// Op names the mutation that produced a Change.
type Op string

const (
	OpInsert Op = "insert"
	OpUpdate Op = "update"
	OpRemove Op = "remove"
	OpClear  Op = "clear"
	OpReload Op = "reload"
)

// Change describes a completed mutation.
type Change[T any] struct {
	ID    uuid.UUID
	Op    Op
	Key   models.Key
	Items []T
	// Err is the persist error, if the write failed.
	Err error
}

// Status reports the health of a collection's storage slot.
type Status struct {
	Slot        string
	Len         int
	LoadErr     error
	PersistErr  error
	PersistedAt time.Time
}

// Degraded reports whether the last load or write failed.
func (s Status) Degraded() bool {
	return s.LoadErr != nil || s.PersistErr != nil
}

type observer[T any] struct {
	id int
	fn func(Change[T])
}

// Collection is an ordered sequence of records unique by key, mirrored to one storage slot.
type Collection[T any] struct {
	slot   string
	kv     storage.KV
	codec  Codec[T]
	keyOf  func(T) models.Key
	logger zerolog.Logger

	mu     sync.RWMutex
	items  []T
	status Status

	obsMu     sync.Mutex
	observers []observer[T]
	nextObs   int
}

// New creates a collection bound to slot and loads it. A nil kv behaves as unavailable storage.
func New[T any](kv storage.KV, slot string, codec Codec[T], keyOf func(T) models.Key, logger zerolog.Logger) *Collection[T] {
	c := &Collection[T]{
		slot:   slot,
		kv:     kv,
		codec:  codec,
		keyOf:  keyOf,
		logger: logger.With().Str("slot", slot).Logger(),
	}
	items, err := c.load()
	if items == nil {
		items = []T{}
	}
	c.items, c.status.LoadErr = items, err
	return c
}

// load reads the slot. Unreadable storage or data that is not a collection
// returns nil items. Records that do not decode are skipped and reported in
// the error while the rest load.
func (c *Collection[T]) load() ([]T, error) {
	if c.kv == nil {
		return nil, storage.ErrUnavailable
	}

	data, err := c.kv.Get(c.slot)
	if errors.Is(err, storage.ErrNotFound) || (err == nil && len(data) == 0) {
		return []T{}, nil
	}
	if err != nil {
		c.logger.Warn().Err(err).Msg("storage unreadable")
		return nil, err
	}

	items, err := c.codec.Decode(data)
	if err != nil && items == nil {
		c.logger.Warn().Err(err).Msg("stored collection is corrupt")
		return nil, err
	}
	if err != nil {
		c.logger.Warn().Err(err).Int("kept", len(items)).Msg("skipped undecodable records")
	}

	return c.dedupe(items), err
}

// dedupe keeps the first record for each key.
func (c *Collection[T]) dedupe(items []T) []T {
	seen := make(map[models.Key]struct{}, len(items))
	out := make([]T, 0, len(items))
	for _, item := range items {
		k := c.keyOf(item)
		if _, dup := seen[k]; dup {
			c.logger.Debug().Str("key", k.String()).Msg("dropping duplicate stored record")
			continue
		}
		seen[k] = struct{}{}
		out = append(out, item)
	}
	return out
}

// persist writes the full sequence. Callers hold c.mu.
func (c *Collection[T]) persist() error {
	var err error
	switch {
	case c.kv == nil:
		err = storage.ErrUnavailable
	default:
		var data []byte
		data, err = c.codec.Encode(c.items)
		if err == nil {
			err = c.kv.Set(c.slot, data)
		}
	}

	c.status.PersistErr = err
	if err != nil {
		c.logger.Warn().Err(err).Int("len", len(c.items)).Msg("write dropped, keeping in-memory state")
		return err
	}
	c.status.PersistedAt = time.Now()
	return nil
}

// Slot returns the storage slot name.
func (c *Collection[T]) Slot() string {
	return c.slot
}

// Items returns a snapshot of the sequence in order.
func (c *Collection[T]) Items() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshot()
}

func (c *Collection[T]) snapshot() []T {
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of records.
func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Contains reports whether a record with key k exists.
func (c *Collection[T]) Contains(k models.Key) bool {
	_, ok := c.Find(k)
	return ok
}

// Find returns the record with key k.
func (c *Collection[T]) Find(k models.Key) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if i := c.indexOf(k); i >= 0 {
		return c.items[i], true
	}
	var zero T
	return zero, false
}

func (c *Collection[T]) indexOf(k models.Key) int {
	for i, item := range c.items {
		if c.keyOf(item) == k {
			return i
		}
	}
	return -1
}

// InsertFront prepends item unless its key is already present.
// The existing record is kept untouched on a duplicate. Reports whether it inserted.
func (c *Collection[T]) InsertFront(item T) bool {
	k := c.keyOf(item)

	c.mu.Lock()
	if c.indexOf(k) >= 0 {
		c.mu.Unlock()
		return false
	}
	c.items = append([]T{item}, c.items...)
	err := c.persist()
	change := Change[T]{Op: OpInsert, Key: k, Items: c.snapshot(), Err: err}
	c.mu.Unlock()

	c.notify(change)
	return true
}

// Upsert updates the record with key k in place, or appends create() when absent.
func (c *Collection[T]) Upsert(k models.Key, update func(*T), create func() T) Op {
	c.mu.Lock()
	op := OpUpdate
	if i := c.indexOf(k); i >= 0 {
		update(&c.items[i])
	} else {
		c.items = append(c.items, create())
		op = OpInsert
	}
	err := c.persist()
	change := Change[T]{Op: op, Key: k, Items: c.snapshot(), Err: err}
	c.mu.Unlock()

	c.notify(change)
	return op
}

// Remove drops the record with key k. The slot is written even when nothing matched.
func (c *Collection[T]) Remove(k models.Key) {
	c.mu.Lock()
	before := len(c.items)
	kept := make([]T, 0, len(c.items))
	for _, item := range c.items {
		if c.keyOf(item) != k {
			kept = append(kept, item)
		}
	}
	c.items = kept
	c.logger.Debug().
		Str("key", k.String()).
		Int("before", before).
		Int("after", len(kept)).
		Msg("removing record")
	err := c.persist()
	change := Change[T]{Op: OpRemove, Key: k, Items: c.snapshot(), Err: err}
	c.mu.Unlock()

	c.notify(change)
}

// Clear empties the collection and writes the empty sequence.
func (c *Collection[T]) Clear() {
	c.mu.Lock()
	c.items = []T{}
	err := c.persist()
	change := Change[T]{Op: OpClear, Items: c.snapshot(), Err: err}
	c.mu.Unlock()

	c.notify(change)
}

// Reload replaces the in-memory sequence with the slot contents. When the
// slot cannot be read the in-memory sequence is kept.
func (c *Collection[T]) Reload() {
	c.mu.Lock()
	items, err := c.load()
	if items != nil {
		c.items = items
	}
	c.status.LoadErr = err
	change := Change[T]{Op: OpReload, Items: c.snapshot()}
	c.mu.Unlock()

	c.notify(change)
}

// Status returns the slot health.
func (c *Collection[T]) Status() Status {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s := c.status
	s.Slot = c.slot
	s.Len = len(c.items)
	return s
}

// Subscribe registers fn to run after every mutation, on the mutating goroutine,
// before the mutation returns. The returned func unsubscribes.
func (c *Collection[T]) Subscribe(fn func(Change[T])) func() {
	c.obsMu.Lock()
	defer c.obsMu.Unlock()
	id := c.nextObs
	c.nextObs++
	c.observers = append(c.observers, observer[T]{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			c.obsMu.Lock()
			defer c.obsMu.Unlock()
			for i, o := range c.observers {
				if o.id == id {
					c.observers = append(c.observers[:i], c.observers[i+1:]...)
					return
				}
			}
		})
	}
}

func (c *Collection[T]) notify(change Change[T]) {
	c.obsMu.Lock()
	observers := make([]observer[T], len(c.observers))
	copy(observers, c.observers)
	c.obsMu.Unlock()

	if len(observers) == 0 {
		return
	}
	change.ID = uuid.New()
	for _, o := range observers {
		o.fn(change)
	}
}
