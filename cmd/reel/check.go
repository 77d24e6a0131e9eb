// ABOUTME: Check command
// ABOUTME: Shows which collections hold a movie or show and its rating

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harper/reel/internal/models"
	"github.com/harper/reel/internal/ui"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check <id>",
	Short: "Show which collections hold a movie or show",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, t, err := parseKeyArgs(cmd.Flags(), args[0])
		if err != nil {
			return err
		}

		fmt.Println(color.New(color.Bold).Sprint(models.NewKey(id, t)))
		fmt.Printf("  liked     %s\n", yesNo(reg.Liked().IsLiked(id, t)))
		fmt.Printf("  watched   %s\n", yesNo(reg.Watched().IsWatched(id, t)))
		fmt.Printf("  wishlist  %s\n", yesNo(reg.Wishlist().IsInWishlist(id, t)))
		if rec, ok := reg.Ratings().Lookup(id, t); ok {
			fmt.Printf("  rating    %s\n", ui.Stars(rec.Rating))
		} else {
			fmt.Printf("  rating    %s\n", color.New(color.Faint).Sprint("not rated"))
		}
		return nil
	},
}

func yesNo(b bool) string {
	if b {
		return color.GreenString("yes")
	}
	return color.New(color.Faint).Sprint("no")
}

func init() {
	addTypeFlag(checkCmd)

	rootCmd.AddCommand(checkCmd)
}
