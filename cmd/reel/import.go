// ABOUTME: Import command for restoring collections from YAML backup
// ABOUTME: Merges backup entries into existing collections

package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/harper/reel/internal/backup"
	"github.com/harper/reel/internal/stores"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import collections from a YAML backup",
	Long: `Import collections from a YAML backup file created with 'reel backup'.

Entries are merged: anything already in a collection is kept as is.
Use 'reel clear all' first if you want a clean import.

Examples:
  reel import reel.yaml
  reel import ~/backups/reel-20241214.yaml --confirm`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := args[0]

		data, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		confirm, _ := cmd.Flags().GetBool("confirm")
		if !confirm {
			fmt.Printf("Import collections from '%s'? [y/N] ", filename)
			reader := bufio.NewReader(os.Stdin)
			response, _ := reader.ReadString('\n')
			response = strings.TrimSpace(strings.ToLower(response))
			if response != "y" && response != "yes" {
				fmt.Println("Canceled.")
				return nil
			}
		}

		sum, err := backup.Import(reg, data)
		if err != nil {
			return fmt.Errorf("failed to import: %w", err)
		}

		color.Green("Import complete")
		for _, name := range stores.Names() {
			fmt.Printf("  %-9s %d added, %d skipped\n", name, sum.Added[name], sum.Skipped[name])
		}

		return nil
	},
}

func init() {
	importCmd.Flags().Bool("confirm", false, "skip confirmation prompt")

	rootCmd.AddCommand(importCmd)
}
