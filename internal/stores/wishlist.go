// ABOUTME: Wishlist media store
// ABOUTME: Membership collection persisted in the movieapi.wishlist slot

package stores

import "github.com/harper/reel/internal/models"

// WishlistStore records media the user wants to watch later.
type WishlistStore struct {
	*MembershipStore
}

// IsInWishlist reports whether the media entry is wishlisted.
func (s *WishlistStore) IsInWishlist(id models.MediaID, t models.MediaType) bool {
	return s.Is(id, t)
}

// AddToWishlist wishlists item.
func (s *WishlistStore) AddToWishlist(item *models.MediaItem, t models.MediaType) {
	s.Add(item, t)
}

// RemoveFromWishlist drops the media entry from the wishlist.
func (s *WishlistStore) RemoveFromWishlist(id models.MediaID, t models.MediaType) {
	s.Remove(id, t)
}
