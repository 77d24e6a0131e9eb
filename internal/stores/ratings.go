// ABOUTME: Ratings store holding one score per media entry
// ABOUTME: Persisted in the movieapi.ratings slot, updated in place on re-rating

package stores

import (
	"time"

	"github.com/harper/reel/internal/collection"
	"github.com/harper/reel/internal/models"
	"github.com/harper/reel/internal/storage"
	"github.com/rs/zerolog"
)

// RatingsSlot is the storage slot of the ratings collection.
const RatingsSlot = slotPrefix + "ratings"

// RatingsStore is a scored collection; records keep creation order.
type RatingsStore struct {
	items *collection.Collection[models.RatingRecord]
	now   func() time.Time
}

func newRatingsStore(kv storage.KV, logger zerolog.Logger, now func() time.Time) *RatingsStore {
	return &RatingsStore{
		items: collection.New[models.RatingRecord](kv, RatingsSlot, collection.JSONCodec[models.RatingRecord]{}, models.RatingRecord.Key, logger),
		now:   now,
	}
}

// GetRating returns the stored rating, or 0 when the entry is unrated.
// An explicit rating of 0 is indistinguishable from no rating; use Lookup to tell them apart.
func (s *RatingsStore) GetRating(id models.MediaID, t models.MediaType) float64 {
	rec, ok := s.items.Find(models.NewKey(id, t))
	if !ok {
		return 0
	}
	return rec.Rating
}

// Lookup returns the rating record if one exists.
func (s *RatingsStore) Lookup(id models.MediaID, t models.MediaType) (models.RatingRecord, bool) {
	return s.items.Find(models.NewKey(id, t))
}

// SetRating stores rating for the media entry. Calls with a zero id or a rating
// outside [0,5] are ignored. An existing record keeps its title and gets the new
// rating and timestamp; a new record takes its title from meta.
func (s *RatingsStore) SetRating(id models.MediaID, rating float64, t models.MediaType, meta *models.MediaItem) {
	if id == 0 || !models.ValidRating(rating) {
		return
	}
	key := models.NewKey(id, t)
	ratedAt := models.NewTimestamp(s.now())
	s.items.Upsert(key,
		func(rec *models.RatingRecord) {
			rec.Rating = rating
			rec.RatedAt = ratedAt
		},
		func() models.RatingRecord {
			return models.RatingRecord{
				ID:      id,
				Type:    key.Type,
				Rating:  rating,
				Title:   meta.DisplayTitle(),
				RatedAt: ratedAt,
			}
		},
	)
}

// Restore appends a previously exported record unless the entry is already rated.
// Reports whether the record was added.
func (s *RatingsStore) Restore(rec models.RatingRecord) bool {
	if rec.ID == 0 || !models.ValidRating(rec.Rating) {
		return false
	}
	rec.Type = rec.Type.OrDefault()
	if rec.RatedAt.IsZero() {
		rec.RatedAt = models.NewTimestamp(s.now())
	}
	if _, ok := s.items.Find(rec.Key()); ok {
		return false
	}
	return s.items.Upsert(rec.Key(),
		func(*models.RatingRecord) {},
		func() models.RatingRecord { return rec },
	) == collection.OpInsert
}

// RemoveRating drops the rating of the media entry.
func (s *RatingsStore) RemoveRating(id models.MediaID, t models.MediaType) {
	s.items.Remove(models.NewKey(id, t))
}

// ClearAll drops every rating.
func (s *RatingsStore) ClearAll() {
	s.items.Clear()
}

// Average returns the mean rating, or 0 for an empty store.
func (s *RatingsStore) Average() float64 {
	items := s.items.Items()
	if len(items) == 0 {
		return 0
	}
	var sum float64
	for _, rec := range items {
		sum += rec.Rating
	}
	return sum / float64(len(items))
}

// Items returns the records in creation order.
func (s *RatingsStore) Items() []models.RatingRecord {
	return s.items.Items()
}

// Len returns the number of rated entries.
func (s *RatingsStore) Len() int {
	return s.items.Len()
}

// Reload re-reads the storage slot.
func (s *RatingsStore) Reload() {
	s.items.Reload()
}

// Subscribe registers an observer of every mutation.
func (s *RatingsStore) Subscribe(fn func(collection.Change[models.RatingRecord])) func() {
	return s.items.Subscribe(fn)
}

// Status reports storage health.
func (s *RatingsStore) Status() collection.Status {
	return s.items.Status()
}
