// ABOUTME: Search command
// ABOUTME: Fuzzy title search across every collection

package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harper/reel/internal/search"
	"github.com/harper/reel/internal/ui"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:     "search <query>",
	Aliases: []string{"s"},
	Short:   "Search titles across all collections",
	Long: `Search titles across liked, watched, wishlist and ratings.
When nothing matches, close spellings are suggested.

Examples:
  reel search dune
  reel search matrix --collection liked`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")
		collection, _ := cmd.Flags().GetString("collection")
		limit, _ := cmd.Flags().GetInt("limit")

		entries := search.FilterCollection(search.Entries(reg), collection)
		hits, suggested := search.Search(entries, query, limit)

		if len(hits) == 0 {
			fmt.Printf("No titles match %q\n", query)
			return nil
		}
		if suggested {
			fmt.Println(color.YellowString("No exact matches. Did you mean:"))
		}
		for _, h := range hits {
			fmt.Println(formatHit(h))
		}
		return nil
	},
}

func formatHit(h search.Hit) string {
	line := fmt.Sprintf("%-9s %s %s",
		h.Collection,
		color.GreenString(h.Title),
		color.New(color.Faint).Sprintf("%s:%d", h.Type, h.ID))
	if h.Rated {
		line += " " + color.YellowString(ui.Stars(h.Rating))
	}
	return line
}

func init() {
	searchCmd.Flags().StringP("collection", "c", "", "only search one collection")
	searchCmd.Flags().IntP("limit", "n", 20, "maximum number of results")

	rootCmd.AddCommand(searchCmd)
}
