// ABOUTME: Clear command
// ABOUTME: Empties one collection or all of them after confirmation

package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/harper/reel/internal/stores"
	"github.com/spf13/cobra"
)

var clearCmd = &cobra.Command{
	Use:   "clear <liked|watched|wishlist|ratings|all>",
	Short: "Remove every entry from a collection",
	Long: `Remove every entry from a collection. This cannot be undone;
make a backup first with 'reel backup'.

Examples:
  reel clear wishlist
  reel clear all --confirm`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		if name != "all" && name != stores.RatingsName {
			if _, err := stores.ParseRelation(name); err != nil {
				return err
			}
		}

		confirm, _ := cmd.Flags().GetBool("confirm")
		if !confirm {
			fmt.Printf("Clear %s? [y/N] ", name)
			reader := bufio.NewReader(os.Stdin)
			response, _ := reader.ReadString('\n')
			response = strings.TrimSpace(strings.ToLower(response))
			if response != "y" && response != "yes" {
				fmt.Println("Canceled.")
				return nil
			}
		}

		switch name {
		case "all":
			reg.ClearAll()
		case stores.RatingsName:
			reg.Ratings().ClearAll()
		default:
			rel, _ := stores.ParseRelation(name)
			membershipStore(rel).ClearAll()
		}

		color.Green("✓ Cleared %s", name)
		return nil
	},
}

func init() {
	clearCmd.Flags().Bool("confirm", false, "skip confirmation prompt")

	rootCmd.AddCommand(clearCmd)
}
