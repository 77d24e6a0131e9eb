// ABOUTME: Watched collection commands
// ABOUTME: watch, unwatch and watched

package main

import "github.com/harper/reel/internal/stores"

var (
	watchCmd = newAddCmd(membershipCommand{
		rel:     stores.Watched,
		use:     "watch",
		aliases: []string{"w"},
		short:   "Mark a movie or show as watched",
		long: `Mark a movie or TV show as watched.

Examples:
  reel watch 42 --title Dune --poster /p.jpg
  reel watch 1399 --type tv --name "Game of Thrones"`,
		done: "Watched",
	})
	unwatchCmd = newRemoveCmd(stores.Watched, "unwatch", "Remove a movie or show from watched")
	watchedCmd = newListCmd(stores.Watched, "watched", nil, "List watched movies and shows, newest first")
)

func init() {
	rootCmd.AddCommand(watchCmd, unwatchCmd, watchedCmd)
}
