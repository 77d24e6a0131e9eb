// ABOUTME: Ratings commands
// ABOUTME: rate, unrate and ratings

package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/harper/reel/internal/models"
	"github.com/harper/reel/internal/ui"
	"github.com/spf13/cobra"
)

var rateCmd = &cobra.Command{
	Use:     "rate <id> <rating>",
	Aliases: []string{"r"},
	Short:   "Rate a movie or show from 0 to 5",
	Long: `Rate a movie or TV show. Ratings go from 0 to 5 and may be fractional.
Rating an entry again replaces the score and keeps the original title.

Examples:
  reel rate 603 4.5 --title "The Matrix"
  reel rate 7 4 --type tv --name Show`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, t, err := parseKeyArgs(cmd.Flags(), args[0])
		if err != nil {
			return err
		}

		rating, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid rating: %w", err)
		}
		if !models.ValidRating(rating) {
			return fmt.Errorf("rating must be between %v and %v", models.MinRating, models.MaxRating)
		}

		ratings := reg.Ratings()
		ratings.SetRating(id, rating, t, mediaItemFromFlags(cmd.Flags(), id))
		if err := ratings.Status().PersistErr; err != nil {
			color.Yellow("warning: ratings were not saved: %v", err)
		}

		rec, _ := ratings.Lookup(id, t)
		color.Green("✓ Rated %s", rec.Key())
		fmt.Printf("  %s\n", ui.FormatRating(rec))
		return nil
	},
}

var unrateCmd = &cobra.Command{
	Use:   "unrate <id>",
	Short: "Remove the rating of a movie or show",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, t, err := parseKeyArgs(cmd.Flags(), args[0])
		if err != nil {
			return err
		}

		if _, ok := reg.Ratings().Lookup(id, t); !ok {
			fmt.Printf("%s is not rated\n", models.NewKey(id, t))
			return nil
		}
		reg.Ratings().RemoveRating(id, t)
		color.Green("✓ Removed rating of %s", models.NewKey(id, t))
		return nil
	},
}

var ratingsCmd = &cobra.Command{
	Use:   "ratings",
	Short: "List rated movies and shows in the order they were first rated",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ratings := reg.Ratings()
		records := ratings.Items()
		if len(records) == 0 {
			fmt.Println(ui.FormatEmpty("ratings"))
			return nil
		}

		for _, rec := range records {
			fmt.Println(ui.FormatRating(rec))
		}
		fmt.Printf("\n%d rated, average %s\n", len(records), ui.FormatScore(ratings.Average()))
		return nil
	},
}

func init() {
	addTypeFlag(rateCmd)
	addMetadataFlags(rateCmd)
	addTypeFlag(unrateCmd)

	rootCmd.AddCommand(rateCmd, unrateCmd, ratingsCmd)
}
