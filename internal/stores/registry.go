// ABOUTME: Registry holding one lazily created instance per collection
// ABOUTME: Constructed once per session and passed to every consumer

package stores

import (
	"fmt"
	"sync"
	"time"

	"github.com/harper/reel/internal/collection"
	"github.com/harper/reel/internal/storage"
	"github.com/rs/zerolog"
)

// slotPrefix namespaces every storage slot.
const slotPrefix = "movieapi."

// RatingsName is the collection name of the ratings store.
const RatingsName = "ratings"

// Registry owns the session's stores. Each store is created and loaded from
// storage on first access and lives as long as the registry.
type Registry struct {
	kv     storage.KV
	logger zerolog.Logger
	now    func() time.Time

	likedOnce    sync.Once
	liked        *LikedStore
	watchedOnce  sync.Once
	watched      *WatchedStore
	wishlistOnce sync.Once
	wishlist     *WishlistStore
	ratingsOnce  sync.Once
	ratings      *RatingsStore
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used by every store.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Registry) { r.logger = logger }
}

// WithClock overrides the time source used to stamp records.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) { r.now = now }
}

// NewRegistry creates a registry over kv. Stores are not loaded until first use.
func NewRegistry(kv storage.KV, opts ...Option) *Registry {
	r := &Registry{
		kv:     kv,
		logger: zerolog.Nop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Liked returns the liked store.
func (r *Registry) Liked() *LikedStore {
	r.likedOnce.Do(func() {
		r.liked = &LikedStore{r.newMembership(Liked)}
	})
	return r.liked
}

// Watched returns the watched store.
func (r *Registry) Watched() *WatchedStore {
	r.watchedOnce.Do(func() {
		r.watched = &WatchedStore{r.newMembership(Watched)}
	})
	return r.watched
}

// Wishlist returns the wishlist store.
func (r *Registry) Wishlist() *WishlistStore {
	r.wishlistOnce.Do(func() {
		r.wishlist = &WishlistStore{r.newMembership(Wishlist)}
	})
	return r.wishlist
}

// Ratings returns the ratings store.
func (r *Registry) Ratings() *RatingsStore {
	r.ratingsOnce.Do(func() {
		r.ratings = newRatingsStore(r.kv, r.logger.With().Str("collection", RatingsName).Logger(), r.now)
	})
	return r.ratings
}

func (r *Registry) newMembership(rel Relation) *MembershipStore {
	return newMembershipStore(r.kv, rel, r.logger.With().Str("collection", string(rel)).Logger(), r.now)
}

// Membership returns the membership store for rel.
func (r *Registry) Membership(rel Relation) (*MembershipStore, error) {
	switch rel {
	case Liked:
		return r.Liked().MembershipStore, nil
	case Watched:
		return r.Watched().MembershipStore, nil
	case Wishlist:
		return r.Wishlist().MembershipStore, nil
	default:
		return nil, fmt.Errorf("unknown collection %q", rel)
	}
}

// Status returns the storage health of every collection, keyed by collection name.
func (r *Registry) Status() map[string]collection.Status {
	out := make(map[string]collection.Status, len(Relations)+1)
	for _, rel := range Relations {
		s, _ := r.Membership(rel)
		out[string(rel)] = s.Status()
	}
	out[RatingsName] = r.Ratings().Status()
	return out
}

// Reload re-reads every collection from storage, picking up writes made by
// other processes. Collections whose slot cannot be read keep their contents.
func (r *Registry) Reload() {
	for _, rel := range Relations {
		s, _ := r.Membership(rel)
		s.Reload()
	}
	r.Ratings().Reload()
}

// ClearAll empties every collection.
func (r *Registry) ClearAll() {
	for _, rel := range Relations {
		s, _ := r.Membership(rel)
		s.ClearAll()
	}
	r.Ratings().ClearAll()
}

// Names lists every collection name in display order.
func Names() []string {
	names := make([]string, 0, len(Relations)+1)
	for _, rel := range Relations {
		names = append(names, string(rel))
	}
	return append(names, RatingsName)
}

// Slots lists the storage slot of every collection.
func Slots() []string {
	slots := make([]string, 0, len(Relations)+1)
	for _, rel := range Relations {
		slots = append(slots, rel.Slot())
	}
	return append(slots, RatingsSlot)
}
