// ABOUTME: Membership stores recording presence of media in a collection
// ABOUTME: Shared implementation behind the liked, watched and wishlist stores

package stores

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/harper/reel/internal/collection"
	"github.com/harper/reel/internal/models"
	"github.com/harper/reel/internal/storage"
	"github.com/rs/zerolog"
)

// Relation names a membership collection.
type Relation string

const (
	Liked    Relation = "liked"
	Watched  Relation = "watched"
	Wishlist Relation = "wishlist"
)

// Relations lists every membership collection in display order.
var Relations = []Relation{Liked, Watched, Wishlist}

// Slot returns the storage slot of the relation.
func (r Relation) Slot() string {
	return slotPrefix + string(r)
}

// TimestampField returns the stored name of the event timestamp.
func (r Relation) TimestampField() string {
	switch r {
	case Liked:
		return "likedAt"
	case Watched:
		return "watchedAt"
	default:
		return "addedAt"
	}
}

// ParseRelation accepts a membership collection name.
func ParseRelation(s string) (Relation, error) {
	for _, r := range Relations {
		if string(r) == s {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown collection %q (use liked, watched or wishlist)", s)
}

// MembershipStore is a set of media records, most recently added first.
type MembershipStore struct {
	rel   Relation
	items *collection.Collection[models.MediaRecord]
	now   func() time.Time
}

func newMembershipStore(kv storage.KV, rel Relation, logger zerolog.Logger, now func() time.Time) *MembershipStore {
	return &MembershipStore{
		rel:   rel,
		items: collection.New[models.MediaRecord](kv, rel.Slot(), membershipCodec{rel: rel}, models.MediaRecord.Key, logger),
		now:   now,
	}
}

// Relation returns which collection this store holds.
func (s *MembershipStore) Relation() Relation {
	return s.rel
}

// Is reports whether the media entry is in the collection.
func (s *MembershipStore) Is(id models.MediaID, t models.MediaType) bool {
	return s.items.Contains(models.NewKey(id, t))
}

// Add records item unless it is nil, has no id, or is already present.
// Metadata and timestamp of an existing record are never overwritten.
func (s *MembershipStore) Add(item *models.MediaItem, t models.MediaType) {
	if item == nil || item.ID == 0 {
		return
	}
	key := models.NewKey(item.ID, t)
	s.items.InsertFront(models.MediaRecord{
		ID:         item.ID,
		Type:       key.Type,
		Title:      item.DisplayTitle(),
		PosterPath: item.Poster(),
		At:         models.NewTimestamp(s.now()),
	})
}

// Restore inserts a previously exported record, keeping its timestamp.
// Reports whether the record was added.
func (s *MembershipStore) Restore(rec models.MediaRecord) bool {
	if rec.ID == 0 {
		return false
	}
	rec.Type = rec.Type.OrDefault()
	if rec.At.IsZero() {
		rec.At = models.NewTimestamp(s.now())
	}
	return s.items.InsertFront(rec)
}

// Remove drops the media entry from the collection.
func (s *MembershipStore) Remove(id models.MediaID, t models.MediaType) {
	s.items.Remove(models.NewKey(id, t))
}

// ClearAll empties the collection.
func (s *MembershipStore) ClearAll() {
	s.items.Clear()
}

// Get returns the stored record for the media entry.
func (s *MembershipStore) Get(id models.MediaID, t models.MediaType) (models.MediaRecord, bool) {
	return s.items.Find(models.NewKey(id, t))
}

// Items returns the records, most recent first.
func (s *MembershipStore) Items() []models.MediaRecord {
	return s.items.Items()
}

// Len returns the number of records.
func (s *MembershipStore) Len() int {
	return s.items.Len()
}

// Reload re-reads the storage slot.
func (s *MembershipStore) Reload() {
	s.items.Reload()
}

// Subscribe registers an observer of every mutation.
func (s *MembershipStore) Subscribe(fn func(collection.Change[models.MediaRecord])) func() {
	return s.items.Subscribe(fn)
}

// Status reports storage health.
func (s *MembershipStore) Status() collection.Status {
	return s.items.Status()
}

// mediaWire is the stored shape of a membership record. Only the
// timestamp field belonging to the store's relation is written.
type mediaWire struct {
	ID         models.MediaID    `json:"id"`
	Type       models.MediaType  `json:"type"`
	Title      string            `json:"title"`
	PosterPath *string           `json:"poster_path"`
	LikedAt    *models.Timestamp `json:"likedAt,omitempty"`
	WatchedAt  *models.Timestamp `json:"watchedAt,omitempty"`
	AddedAt    *models.Timestamp `json:"addedAt,omitempty"`
}

type membershipCodec struct {
	rel Relation
}

func (c membershipCodec) Encode(items []models.MediaRecord) ([]byte, error) {
	wire := make([]mediaWire, len(items))
	for i, rec := range items {
		ts := rec.At
		w := mediaWire{
			ID:         rec.ID,
			Type:       rec.Type.OrDefault(),
			Title:      rec.Title,
			PosterPath: rec.PosterPath,
		}
		switch c.rel {
		case Liked:
			w.LikedAt = &ts
		case Watched:
			w.WatchedAt = &ts
		default:
			w.AddedAt = &ts
		}
		wire[i] = w
	}
	data, err := json.Marshal(wire)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", c.rel, err)
	}
	return data, nil
}

func (c membershipCodec) Decode(data []byte) ([]models.MediaRecord, error) {
	wire, err := collection.DecodeElements[mediaWire](data)
	if wire == nil {
		return nil, fmt.Errorf("decode %s: %w", c.rel, err)
	}
	items := make([]models.MediaRecord, 0, len(wire))
	for _, w := range wire {
		items = append(items, models.MediaRecord{
			ID:         w.ID,
			Type:       w.Type.OrDefault(),
			Title:      w.Title,
			PosterPath: w.PosterPath,
			At:         c.timestamp(w),
		})
	}
	if err != nil {
		return items, fmt.Errorf("decode %s: %w", c.rel, err)
	}
	return items, nil
}

// timestamp prefers the relation's own field, then any other present one.
func (c membershipCodec) timestamp(w mediaWire) models.Timestamp {
	own := map[Relation]*models.Timestamp{Liked: w.LikedAt, Watched: w.WatchedAt, Wishlist: w.AddedAt}
	if ts := own[c.rel]; ts != nil {
		return *ts
	}
	for _, ts := range []*models.Timestamp{w.LikedAt, w.WatchedAt, w.AddedAt} {
		if ts != nil {
			return *ts
		}
	}
	return models.Timestamp{}
}
