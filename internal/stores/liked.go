// ABOUTME: Liked media store
// ABOUTME: Membership collection persisted in the movieapi.liked slot

package stores

import "github.com/harper/reel/internal/models"

// LikedStore records media the user liked.
type LikedStore struct {
	*MembershipStore
}

// IsLiked reports whether the media entry is liked.
func (s *LikedStore) IsLiked(id models.MediaID, t models.MediaType) bool {
	return s.Is(id, t)
}

// AddLiked likes item.
func (s *LikedStore) AddLiked(item *models.MediaItem, t models.MediaType) {
	s.Add(item, t)
}

// RemoveLiked unlikes the media entry.
func (s *LikedStore) RemoveLiked(id models.MediaID, t models.MediaType) {
	s.Remove(id, t)
}
