// ABOUTME: Watched media store
// ABOUTME: Membership collection persisted in the movieapi.watched slot

package stores

import "github.com/harper/reel/internal/models"

// WatchedStore records media the user has watched.
type WatchedStore struct {
	*MembershipStore
}

// IsWatched reports whether the media entry has been watched.
func (s *WatchedStore) IsWatched(id models.MediaID, t models.MediaType) bool {
	return s.Is(id, t)
}

// AddWatched marks item as watched.
func (s *WatchedStore) AddWatched(item *models.MediaItem, t models.MediaType) {
	s.Add(item, t)
}

// RemoveWatched drops the media entry from the watched list.
func (s *WatchedStore) RemoveWatched(id models.MediaID, t models.MediaType) {
	s.Remove(id, t)
}
