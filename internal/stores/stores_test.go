// ABOUTME: Behavioral tests for the liked, watched, wishlist and ratings stores
// ABOUTME: Runs each property against every local storage backend

package stores

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/harper/reel/internal/collection"
	"github.com/harper/reel/internal/models"
	"github.com/harper/reel/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 12, 14, 15, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

type kvFactory func(t *testing.T) storage.KV

func kvFactories() map[string]kvFactory {
	return map[string]kvFactory{
		"memory": func(t *testing.T) storage.KV { return storage.NewMemoryKV() },
		"bolt": func(t *testing.T) storage.KV {
			kv, err := storage.NewBoltKV(filepath.Join(t.TempDir(), "reel.db"))
			require.NoError(t, err)
			t.Cleanup(func() { _ = kv.Close() })
			return kv
		},
		"badger": func(t *testing.T) storage.KV {
			kv, err := storage.NewBadgerKV(filepath.Join(t.TempDir(), "badger"))
			require.NoError(t, err)
			t.Cleanup(func() { _ = kv.Close() })
			return kv
		},
		"sqlite": func(t *testing.T) storage.KV {
			kv, err := storage.NewSQLiteKV(filepath.Join(t.TempDir(), "reel.sqlite"))
			require.NoError(t, err)
			t.Cleanup(func() { _ = kv.Close() })
			return kv
		},
	}
}

// forEachMembership runs fn for every membership store on every backend.
func forEachMembership(t *testing.T, fn func(t *testing.T, kv storage.KV, s *MembershipStore)) {
	for backend, factory := range kvFactories() {
		for _, rel := range Relations {
			t.Run(backend+"/"+string(rel), func(t *testing.T) {
				kv := factory(t)
				s, err := NewRegistry(kv, WithClock(fixedClock)).Membership(rel)
				require.NoError(t, err)
				fn(t, kv, s)
			})
		}
	}
}

func forEachBackend(t *testing.T, fn func(t *testing.T, kv storage.KV)) {
	for backend, factory := range kvFactories() {
		t.Run(backend, func(t *testing.T) {
			fn(t, factory(t))
		})
	}
}

func TestMembership_AddThenIs(t *testing.T) {
	forEachMembership(t, func(t *testing.T, _ storage.KV, s *MembershipStore) {
		s.Add(&models.MediaItem{ID: 42, Title: "Dune"}, models.Movie)
		assert.True(t, s.Is(42, models.Movie))
		assert.False(t, s.Is(42, models.TV), "type is part of the key")

		s.Remove(42, models.Movie)
		assert.False(t, s.Is(42, models.Movie))
	})
}

func TestMembership_AddIsIdempotent(t *testing.T) {
	forEachMembership(t, func(t *testing.T, kv storage.KV, s *MembershipStore) {
		s.Add(&models.MediaItem{ID: 1, Title: "Original", PosterPath: "/a.jpg"}, models.Movie)
		first, _ := s.Get(1, models.Movie)

		s.now = func() time.Time { return fixedNow.Add(time.Hour) }
		s.Add(&models.MediaItem{ID: 1, Title: "Changed", PosterPath: "/b.jpg"}, models.Movie)

		require.Equal(t, 1, s.Len())
		got, _ := s.Get(1, models.Movie)
		assert.Equal(t, "Original", got.Title)
		assert.Equal(t, "/a.jpg", *got.PosterPath)
		assert.True(t, got.At.Equal(first.At.Time), "timestamp must not change")
	})
}

func TestMembership_AddIgnoresMissingItemOrID(t *testing.T) {
	forEachMembership(t, func(t *testing.T, kv storage.KV, s *MembershipStore) {
		s.Add(nil, models.Movie)
		s.Add(&models.MediaItem{Title: "No id"}, models.Movie)

		assert.Equal(t, 0, s.Len())
		_, err := kv.Get(s.Relation().Slot())
		assert.ErrorIs(t, err, storage.ErrNotFound, "guarded no-op must not write")
	})
}

func TestMembership_MostRecentFirst(t *testing.T) {
	forEachMembership(t, func(t *testing.T, _ storage.KV, s *MembershipStore) {
		s.Add(&models.MediaItem{ID: 1}, models.Movie)
		s.Add(&models.MediaItem{ID: 2}, models.TV)
		s.Add(&models.MediaItem{ID: 3}, models.Movie)

		items := s.Items()
		require.Len(t, items, 3)
		assert.Equal(t, []models.MediaID{3, 2, 1}, []models.MediaID{items[0].ID, items[1].ID, items[2].ID})
	})
}

func TestMembership_DefaultsTypeToMovie(t *testing.T) {
	forEachMembership(t, func(t *testing.T, _ storage.KV, s *MembershipStore) {
		s.Add(&models.MediaItem{ID: 5}, "")
		assert.True(t, s.Is(5, models.Movie))
		assert.True(t, s.Is(5, ""))
	})
}

func TestMembership_MetadataFallbacks(t *testing.T) {
	forEachMembership(t, func(t *testing.T, _ storage.KV, s *MembershipStore) {
		s.Add(&models.MediaItem{ID: 1, Name: "Show", BackdropPath: "/b.jpg"}, models.TV)
		s.Add(&models.MediaItem{ID: 2}, models.Movie)

		show, _ := s.Get(1, models.TV)
		assert.Equal(t, "Show", show.Title)
		require.NotNil(t, show.PosterPath)
		assert.Equal(t, "/b.jpg", *show.PosterPath)

		bare, _ := s.Get(2, models.Movie)
		assert.Equal(t, "", bare.Title)
		assert.Nil(t, bare.PosterPath)
	})
}

func TestMembership_RemoveAbsentIsSafe(t *testing.T) {
	forEachMembership(t, func(t *testing.T, kv storage.KV, s *MembershipStore) {
		s.Add(&models.MediaItem{ID: 1}, models.Movie)
		s.Remove(99, models.Movie)
		assert.Equal(t, 1, s.Len())
	})
}

func TestMembership_ClearAllRoundTrip(t *testing.T) {
	forEachMembership(t, func(t *testing.T, kv storage.KV, s *MembershipStore) {
		s.Add(&models.MediaItem{ID: 1}, models.Movie)
		s.Add(&models.MediaItem{ID: 2}, models.TV)

		s.ClearAll()
		assert.Equal(t, 0, s.Len())

		reloaded, _ := NewRegistry(kv).Membership(s.Relation())
		assert.Equal(t, 0, reloaded.Len())
	})
}

func TestMembership_ReloadPreservesOrder(t *testing.T) {
	forEachMembership(t, func(t *testing.T, kv storage.KV, s *MembershipStore) {
		for _, id := range []models.MediaID{10, 30, 20} {
			s.Add(&models.MediaItem{ID: id, Title: "t", PosterPath: "/p.jpg"}, models.Movie)
		}

		reloaded, _ := NewRegistry(kv).Membership(s.Relation())
		assert.Equal(t, s.Items(), reloaded.Items())
	})
}

func TestMembership_CorruptSlotLoadsEmpty(t *testing.T) {
	for _, rel := range Relations {
		t.Run(string(rel), func(t *testing.T) {
			kv := storage.NewMemoryKV()
			require.NoError(t, kv.Set(rel.Slot(), []byte("not json at all")))

			s, _ := NewRegistry(kv).Membership(rel)
			assert.Equal(t, 0, s.Len())
			assert.Error(t, s.Status().LoadErr)

			// The store keeps working and overwrites the corrupt slot.
			s.Add(&models.MediaItem{ID: 1}, models.Movie)
			reloaded, _ := NewRegistry(kv).Membership(rel)
			assert.True(t, reloaded.Is(1, models.Movie))
		})
	}
}

func TestMembership_OddRecordKeepsTheRest(t *testing.T) {
	for backend, factory := range kvFactories() {
		for _, rel := range Relations {
			t.Run(backend+"/"+string(rel), func(t *testing.T) {
				kv := factory(t)
				blob := fmt.Sprintf(`[
					{"id":1,"type":"movie","title":"A","poster_path":null,%[1]q:"2024-12-14T15:00:00.000Z"},
					{"id":2,"type":"movie","title":"B","poster_path":null,%[1]q:"2024-01-02"},
					{"id":3,"type":"tv","title":"C","poster_path":null,%[1]q:"someday"},
					{"id":"four","type":"movie"}
				]`, rel.TimestampField())
				require.NoError(t, kv.Set(rel.Slot(), []byte(blob)))

				s, err := NewRegistry(kv, WithClock(fixedClock)).Membership(rel)
				require.NoError(t, err)
				require.Equal(t, 3, s.Len())
				assert.Error(t, s.Status().LoadErr)

				rec, _ := s.Get(2, models.Movie)
				assert.Equal(t, "2024-01-02T00:00:00.000Z", rec.At.String())
				rec, _ = s.Get(3, models.TV)
				assert.True(t, rec.At.IsZero())

				s.Add(&models.MediaItem{ID: 5, Title: "E"}, models.Movie)
				reloaded, _ := NewRegistry(kv).Membership(rel)
				assert.Equal(t, 4, reloaded.Len())
				for _, k := range []models.Key{{ID: 1, Type: models.Movie}, {ID: 2, Type: models.Movie}, {ID: 3, Type: models.TV}} {
					assert.True(t, reloaded.Is(k.ID, k.Type), "%s survives the write", k)
				}
			})
		}
	}
}

func TestWatched_FailedReloadKeepsEntries(t *testing.T) {
	kv := storage.NewMemoryKV()
	watched := NewRegistry(kv).Watched()
	watched.AddWatched(&models.MediaItem{ID: 1}, models.Movie)
	watched.AddWatched(&models.MediaItem{ID: 2}, models.Movie)

	kv.FailReads(errors.New("disk gone"))
	watched.Reload()
	kv.FailReads(nil)
	watched.AddWatched(&models.MediaItem{ID: 3}, models.Movie)

	reloaded := NewRegistry(kv).Watched()
	assert.Equal(t, 3, reloaded.Len())
	for _, id := range []models.MediaID{1, 2, 3} {
		assert.True(t, reloaded.IsWatched(id, models.Movie))
	}
}

func TestMembership_WriteFailureIsSilent(t *testing.T) {
	for _, rel := range Relations {
		t.Run(string(rel), func(t *testing.T) {
			kv := storage.NewMemoryKV()
			s, _ := NewRegistry(kv).Membership(rel)
			kv.FailWrites(errors.New("quota exceeded"))

			s.Add(&models.MediaItem{ID: 1}, models.Movie)
			assert.True(t, s.Is(1, models.Movie))
			assert.True(t, s.Status().Degraded())
		})
	}
}

func TestMembership_StoredFormat(t *testing.T) {
	tests := map[Relation]string{
		Liked:    "likedAt",
		Watched:  "watchedAt",
		Wishlist: "addedAt",
	}
	for rel, field := range tests {
		t.Run(string(rel), func(t *testing.T) {
			kv := storage.NewMemoryKV()
			s, _ := NewRegistry(kv, WithClock(fixedClock)).Membership(rel)
			s.Add(&models.MediaItem{ID: 42, Title: "Dune", PosterPath: "/p.jpg"}, "")

			data, err := kv.Get("movieapi." + string(rel))
			require.NoError(t, err)

			var stored []map[string]any
			require.NoError(t, json.Unmarshal(data, &stored))
			require.Len(t, stored, 1)
			assert.Equal(t, float64(42), stored[0]["id"])
			assert.Equal(t, "movie", stored[0]["type"])
			assert.Equal(t, "Dune", stored[0]["title"])
			assert.Equal(t, "/p.jpg", stored[0]["poster_path"])
			assert.Equal(t, "2024-12-14T15:00:00.000Z", stored[0][field])
			assert.Len(t, stored[0], 5, "only the relation's own timestamp field is written")
			assert.Equal(t, field, rel.TimestampField())
		})
	}
}

func TestMembership_ReadsOriginalFormat(t *testing.T) {
	kv := storage.NewMemoryKV()
	require.NoError(t, kv.Set("movieapi.wishlist", []byte(`[
		{"id":603,"type":"movie","title":"The Matrix","poster_path":null,"addedAt":"2024-01-02T03:04:05.678Z"},
		{"id":1399,"type":"tv","title":"Game of Thrones","poster_path":"/got.jpg","addedAt":"2023-06-01T00:00:00.000Z"}
	]`)))

	w := NewRegistry(kv).Wishlist()
	require.Equal(t, 2, w.Len())
	assert.True(t, w.IsInWishlist(603, models.Movie))
	assert.True(t, w.IsInWishlist(1399, models.TV))

	rec, _ := w.Get(603, models.Movie)
	assert.Nil(t, rec.PosterPath)
	assert.Equal(t, "2024-01-02T03:04:05.678Z", rec.At.String())
}

func TestWatched_DuneScenario(t *testing.T) {
	forEachBackend(t, func(t *testing.T, kv storage.KV) {
		watched := NewRegistry(kv, WithClock(fixedClock)).Watched()

		watched.AddWatched(&models.MediaItem{ID: 42, Title: "Dune", PosterPath: "/p.jpg"}, "")
		assert.True(t, watched.IsWatched(42, ""))

		rec, ok := watched.Get(42, models.Movie)
		require.True(t, ok)
		assert.Equal(t, models.Movie, rec.Type)
		assert.Equal(t, "Dune", rec.Title)
		assert.Equal(t, "/p.jpg", *rec.PosterPath)
		assert.False(t, rec.At.IsZero())

		watched.RemoveWatched(42, "")
		assert.False(t, watched.IsWatched(42, ""))
	})
}

func TestLiked_NamedOperations(t *testing.T) {
	liked := NewRegistry(storage.NewMemoryKV()).Liked()

	liked.AddLiked(&models.MediaItem{ID: 8, Title: "Heat"}, models.Movie)
	assert.True(t, liked.IsLiked(8, models.Movie))
	liked.RemoveLiked(8, models.Movie)
	assert.False(t, liked.IsLiked(8, models.Movie))
}

func TestWishlist_NamedOperations(t *testing.T) {
	wishlist := NewRegistry(storage.NewMemoryKV()).Wishlist()

	wishlist.AddToWishlist(&models.MediaItem{ID: 9, Name: "Severance"}, models.TV)
	assert.True(t, wishlist.IsInWishlist(9, models.TV))
	wishlist.RemoveFromWishlist(9, models.TV)
	assert.False(t, wishlist.IsInWishlist(9, models.TV))
}

func TestMembership_StoresAreIndependent(t *testing.T) {
	reg := NewRegistry(storage.NewMemoryKV())

	reg.Liked().AddLiked(&models.MediaItem{ID: 1}, models.Movie)
	assert.False(t, reg.Watched().IsWatched(1, models.Movie))
	assert.False(t, reg.Wishlist().IsInWishlist(1, models.Movie))
	assert.Equal(t, 0.0, reg.Ratings().GetRating(1, models.Movie))
}

func TestMembership_Subscribe(t *testing.T) {
	liked := NewRegistry(storage.NewMemoryKV()).Liked()

	var views [][]models.MediaRecord
	cancel := liked.Subscribe(func(ch collection.Change[models.MediaRecord]) {
		views = append(views, ch.Items)
	})
	defer cancel()

	liked.AddLiked(&models.MediaItem{ID: 1}, models.Movie)
	liked.RemoveLiked(1, models.Movie)

	require.Len(t, views, 2)
	assert.Len(t, views[0], 1)
	assert.Empty(t, views[1])
}

func TestRatings_SetThenGet(t *testing.T) {
	forEachBackend(t, func(t *testing.T, kv storage.KV) {
		ratings := NewRegistry(kv, WithClock(fixedClock)).Ratings()

		for _, r := range []float64{0, 0.5, 3.7, 5} {
			ratings.SetRating(1, r, models.Movie, nil)
			assert.Equal(t, r, ratings.GetRating(1, models.Movie))
		}
		assert.Equal(t, 1, ratings.Len())
	})
}

func TestRatings_ShowScenario(t *testing.T) {
	forEachBackend(t, func(t *testing.T, kv storage.KV) {
		ratings := NewRegistry(kv, WithClock(fixedClock)).Ratings()

		ratings.SetRating(7, 4, models.TV, &models.MediaItem{Name: "Show"})
		assert.Equal(t, 4.0, ratings.GetRating(7, models.TV))

		ratings.SetRating(7, 2, models.TV, nil)
		assert.Equal(t, 2.0, ratings.GetRating(7, models.TV))

		require.Equal(t, 1, ratings.Len(), "update, not duplicate")
		rec, _ := ratings.Lookup(7, models.TV)
		assert.Equal(t, "Show", rec.Title, "title survives re-rating")
	})
}

func TestRatings_RejectsOutOfRange(t *testing.T) {
	forEachBackend(t, func(t *testing.T, kv storage.KV) {
		ratings := NewRegistry(kv).Ratings()
		ratings.SetRating(3, 4, models.Movie, nil)

		ratings.SetRating(3, -1, models.Movie, nil)
		ratings.SetRating(3, 5.01, models.Movie, nil)
		assert.Equal(t, 4.0, ratings.GetRating(3, models.Movie))

		ratings.SetRating(4, -1, models.Movie, nil)
		ratings.SetRating(4, 5.01, models.Movie, nil)
		assert.Equal(t, 1, ratings.Len(), "rejected ratings create nothing")
	})
}

func TestRatings_RejectsMissingID(t *testing.T) {
	kv := storage.NewMemoryKV()
	ratings := NewRegistry(kv).Ratings()

	ratings.SetRating(0, 3, models.Movie, &models.MediaItem{Title: "x"})
	assert.Equal(t, 0, ratings.Len())
	_, err := kv.Get(RatingsSlot)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestRatings_UnknownIsZero(t *testing.T) {
	ratings := NewRegistry(storage.NewMemoryKV()).Ratings()
	assert.Equal(t, 0.0, ratings.GetRating(12345, models.TV))

	_, ok := ratings.Lookup(12345, models.TV)
	assert.False(t, ok)
}

func TestRatings_ZeroIsAmbiguous(t *testing.T) {
	ratings := NewRegistry(storage.NewMemoryKV()).Ratings()
	ratings.SetRating(1, 0, models.Movie, nil)

	assert.Equal(t, 0.0, ratings.GetRating(1, models.Movie))
	assert.Equal(t, 0.0, ratings.GetRating(2, models.Movie))

	_, rated := ratings.Lookup(1, models.Movie)
	assert.True(t, rated, "Lookup tells an explicit zero apart")
}

func TestRatings_AppendsInCreationOrder(t *testing.T) {
	ratings := NewRegistry(storage.NewMemoryKV()).Ratings()
	ratings.SetRating(3, 1, models.Movie, nil)
	ratings.SetRating(1, 2, models.Movie, nil)
	ratings.SetRating(2, 3, models.Movie, nil)
	ratings.SetRating(3, 5, models.Movie, nil)

	items := ratings.Items()
	require.Len(t, items, 3)
	assert.Equal(t, models.MediaID(3), items[0].ID, "update keeps position")
	assert.Equal(t, models.MediaID(2), items[2].ID)
}

func TestRatings_UpdateRefreshesTimestamp(t *testing.T) {
	kv := storage.NewMemoryKV()
	now := fixedNow
	ratings := NewRegistry(kv, WithClock(func() time.Time { return now })).Ratings()

	ratings.SetRating(1, 3, models.Movie, nil)
	now = now.Add(24 * time.Hour)
	ratings.SetRating(1, 4, models.Movie, nil)

	rec, _ := ratings.Lookup(1, models.Movie)
	assert.True(t, rec.RatedAt.Equal(fixedNow.Add(24*time.Hour)))
}

func TestRatings_StoredFormat(t *testing.T) {
	kv := storage.NewMemoryKV()
	ratings := NewRegistry(kv, WithClock(fixedClock)).Ratings()
	ratings.SetRating(7, 4.5, models.TV, &models.MediaItem{Name: "Show"})

	data, err := kv.Get("movieapi.ratings")
	require.NoError(t, err)
	assert.JSONEq(t,
		`[{"id":7,"type":"tv","rating":4.5,"title":"Show","ratedAt":"2024-12-14T15:00:00.000Z"}]`,
		string(data))
}

func TestRatings_RemoveAndClear(t *testing.T) {
	forEachBackend(t, func(t *testing.T, kv storage.KV) {
		ratings := NewRegistry(kv).Ratings()
		ratings.SetRating(1, 3, models.Movie, nil)
		ratings.SetRating(2, 4, models.TV, nil)

		ratings.RemoveRating(1, models.Movie)
		assert.Equal(t, 0.0, ratings.GetRating(1, models.Movie))
		assert.Equal(t, 4.0, ratings.GetRating(2, models.TV))

		ratings.RemoveRating(99, models.Movie)
		assert.Equal(t, 1, ratings.Len())

		ratings.ClearAll()
		assert.Equal(t, 0, NewRegistry(kv).Ratings().Len())
	})
}

func TestRatings_ReloadPreservesOrder(t *testing.T) {
	forEachBackend(t, func(t *testing.T, kv storage.KV) {
		ratings := NewRegistry(kv, WithClock(fixedClock)).Ratings()
		ratings.SetRating(5, 1, models.Movie, &models.MediaItem{Title: "A"})
		ratings.SetRating(6, 2.5, models.TV, &models.MediaItem{Name: "B"})

		assert.Equal(t, ratings.Items(), NewRegistry(kv).Ratings().Items())
	})
}

func TestRatings_Average(t *testing.T) {
	ratings := NewRegistry(storage.NewMemoryKV()).Ratings()
	assert.Equal(t, 0.0, ratings.Average())

	ratings.SetRating(1, 2, models.Movie, nil)
	ratings.SetRating(2, 5, models.Movie, nil)
	assert.InDelta(t, 3.5, ratings.Average(), 1e-9)
}

func TestRatings_Restore(t *testing.T) {
	ratings := NewRegistry(storage.NewMemoryKV()).Ratings()
	ratings.SetRating(1, 2, models.Movie, nil)

	assert.False(t, ratings.Restore(models.RatingRecord{ID: 1, Type: models.Movie, Rating: 5}), "existing wins")
	assert.True(t, ratings.Restore(models.RatingRecord{ID: 2, Rating: 3}))
	assert.False(t, ratings.Restore(models.RatingRecord{ID: 3, Rating: 9}))
	assert.False(t, ratings.Restore(models.RatingRecord{Rating: 1}))

	assert.Equal(t, 2.0, ratings.GetRating(1, models.Movie))
	assert.Equal(t, 3.0, ratings.GetRating(2, models.Movie))
}

func TestRatings_RestoreExistingLeavesStorageAlone(t *testing.T) {
	kv := storage.NewMemoryKV()
	ratings := NewRegistry(kv).Ratings()
	ratings.SetRating(1, 3, models.Movie, nil)

	var ops []collection.Op
	cancel := ratings.Subscribe(func(c collection.Change[models.RatingRecord]) {
		ops = append(ops, c.Op)
	})
	defer cancel()
	kv.FailWrites(errors.New("quota"))

	assert.False(t, ratings.Restore(models.RatingRecord{ID: 1, Type: models.Movie, Rating: 5}))
	assert.Empty(t, ops)
	assert.NoError(t, ratings.Status().PersistErr)
	assert.Equal(t, 3.0, ratings.GetRating(1, models.Movie))
}

func TestRatings_OddRecordKeepsTheRest(t *testing.T) {
	kv := storage.NewMemoryKV()
	require.NoError(t, kv.Set(RatingsSlot, []byte(`[
		{"id":1,"type":"movie","rating":4,"title":"A","ratedAt":"2024-01-02"},
		{"id":2,"type":"movie","rating":"high"},
		{"id":3,"type":"tv","rating":2.5,"title":"C","ratedAt":"2024-12-14T15:00:00.000Z"}
	]`)))

	ratings := NewRegistry(kv).Ratings()
	require.Equal(t, 2, ratings.Len())
	assert.Equal(t, 4.0, ratings.GetRating(1, models.Movie))
	assert.Equal(t, 2.5, ratings.GetRating(3, models.TV))
	assert.Error(t, ratings.Status().LoadErr)
}

func TestMembership_Restore(t *testing.T) {
	liked := NewRegistry(storage.NewMemoryKV(), WithClock(fixedClock)).Liked()
	at := models.NewTimestamp(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))

	assert.True(t, liked.Restore(models.MediaRecord{ID: 1, Title: "Old", At: at}))
	assert.False(t, liked.Restore(models.MediaRecord{ID: 1, Title: "Dup"}))
	assert.False(t, liked.Restore(models.MediaRecord{Title: "No id"}))

	rec, _ := liked.Get(1, models.Movie)
	assert.Equal(t, "Old", rec.Title)
	assert.True(t, rec.At.Equal(at.Time))
}

func TestRegistry_LazySingletons(t *testing.T) {
	kv := storage.NewMemoryKV()
	reg := NewRegistry(kv)

	assert.Same(t, reg.Liked(), reg.Liked())
	assert.Same(t, reg.Ratings(), reg.Ratings())

	// A store loads on first access, so a write before that is visible.
	require.NoError(t, kv.Set(Watched.Slot(), []byte(`[{"id":3,"type":"tv","title":"x","poster_path":null,"watchedAt":""}]`)))
	assert.True(t, reg.Watched().IsWatched(3, models.TV))
}

func TestRegistry_MembershipLookup(t *testing.T) {
	reg := NewRegistry(storage.NewMemoryKV())
	for _, rel := range Relations {
		s, err := reg.Membership(rel)
		require.NoError(t, err)
		assert.Equal(t, rel, s.Relation())
	}
	_, err := reg.Membership("favorites")
	assert.Error(t, err)
}

func TestRegistry_StatusAndClearAll(t *testing.T) {
	kv := storage.NewMemoryKV()
	reg := NewRegistry(kv)
	reg.Liked().AddLiked(&models.MediaItem{ID: 1}, models.Movie)
	reg.Ratings().SetRating(1, 3, models.Movie, nil)

	status := reg.Status()
	assert.Len(t, status, 4)
	assert.Equal(t, 1, status["liked"].Len)
	assert.Equal(t, 1, status["ratings"].Len)
	assert.Equal(t, "movieapi.ratings", status["ratings"].Slot)

	reg.ClearAll()
	for name, s := range reg.Status() {
		assert.Equal(t, 0, s.Len, name)
	}
}

func TestRegistry_NilStorageDegradesEverywhere(t *testing.T) {
	reg := NewRegistry(nil)

	reg.Liked().AddLiked(&models.MediaItem{ID: 1}, models.Movie)
	reg.Watched().AddWatched(&models.MediaItem{ID: 1}, models.Movie)
	reg.Wishlist().AddToWishlist(&models.MediaItem{ID: 1}, models.Movie)
	reg.Ratings().SetRating(1, 3, models.Movie, nil)

	for name, s := range reg.Status() {
		assert.Equal(t, 1, s.Len, name)
		assert.ErrorIs(t, s.LoadErr, storage.ErrUnavailable, name)
		assert.ErrorIs(t, s.PersistErr, storage.ErrUnavailable, name)
	}
}

func TestParseRelation(t *testing.T) {
	rel, err := ParseRelation("watched")
	require.NoError(t, err)
	assert.Equal(t, Watched, rel)

	_, err = ParseRelation("ratings")
	assert.Error(t, err)

	assert.Equal(t, []string{"liked", "watched", "wishlist", "ratings"}, Names())
}

func TestRegistry_ReloadSeesOtherWriters(t *testing.T) {
	kv := storage.NewMemoryKV()
	reg := NewRegistry(kv)
	assert.Equal(t, 0, reg.Liked().Len())
	assert.Equal(t, 0, reg.Ratings().Len())

	other := NewRegistry(kv)
	other.Liked().AddLiked(&models.MediaItem{ID: 1, Title: "Heat"}, models.Movie)
	other.Ratings().SetRating(2, 4, models.Movie, nil)
	assert.False(t, reg.Liked().IsLiked(1, models.Movie))

	reg.Reload()
	assert.True(t, reg.Liked().IsLiked(1, models.Movie))
	assert.Equal(t, 4.0, reg.Ratings().GetRating(2, models.Movie))
}

func TestSlots(t *testing.T) {
	assert.Equal(t, []string{
		"movieapi.liked",
		"movieapi.watched",
		"movieapi.wishlist",
		"movieapi.ratings",
	}, Slots())
}
