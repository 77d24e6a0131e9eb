// ABOUTME: Wishlist collection commands
// ABOUTME: wish, unwish and wishlist

package main

import "github.com/harper/reel/internal/stores"

var (
	wishCmd = newAddCmd(membershipCommand{
		rel:   stores.Wishlist,
		use:   "wish",
		short: "Add a movie or show to the wishlist",
		long: `Add a movie or TV show to the wishlist.

Examples:
  reel wish 693134 --title "Dune: Part Two"
  reel wish 95396 --type tv --name Severance`,
		done: "Added to wishlist",
	})
	unwishCmd   = newRemoveCmd(stores.Wishlist, "unwish", "Remove a movie or show from the wishlist")
	wishlistCmd = newListCmd(stores.Wishlist, "wishlist", []string{"wl"}, "List the wishlist, newest first")
)

func init() {
	rootCmd.AddCommand(wishCmd, unwishCmd, wishlistCmd)
}
