// ABOUTME: Liked collection commands
// ABOUTME: like, unlike and liked

package main

import "github.com/harper/reel/internal/stores"

var (
	likeCmd = newAddCmd(membershipCommand{
		rel:   stores.Liked,
		use:   "like",
		short: "Mark a movie or show as liked",
		long: `Mark a movie or TV show as liked. Liking an entry twice keeps the first record.

Examples:
  reel like 603 --title "The Matrix" --poster /matrix.jpg
  reel like 1399 --type tv --name "Game of Thrones"`,
		done: "Liked",
	})
	unlikeCmd = newRemoveCmd(stores.Liked, "unlike", "Remove a movie or show from liked")
	likedCmd  = newListCmd(stores.Liked, "liked", nil, "List liked movies and shows, newest first")
)

func init() {
	rootCmd.AddCommand(likeCmd, unlikeCmd, likedCmd)
}
