// ABOUTME: Backup command for exporting collections to YAML
// ABOUTME: Creates portable backup files for moving between machines or backends

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/harper/reel/internal/backup"
	"github.com/spf13/cobra"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Create a YAML backup of all collections",
	Long: `Create a YAML backup file containing every collection.

The backup file can be used to:
- Move collections between machines
- Switch storage backends
- Restore after data loss

Examples:
  reel backup --output reel.yaml
  reel backup -o ~/backups/reel-$(date +%Y%m%d).yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")

		data, err := backup.Export(reg)
		if err != nil {
			return fmt.Errorf("failed to create backup: %w", err)
		}

		if output == "" {
			output = fmt.Sprintf("reel-%s.yaml", time.Now().Format("20060102-150405"))
		}

		if err := os.WriteFile(output, data, 0644); err != nil { //nolint:gosec // 0644 is intentional for backup files
			return fmt.Errorf("failed to write backup: %w", err)
		}

		color.Green("Backup created: %s", output)
		fmt.Printf("  %d liked, %d watched, %d wishlist, %d ratings\n",
			reg.Liked().Len(), reg.Watched().Len(), reg.Wishlist().Len(), reg.Ratings().Len())

		return nil
	},
}

func init() {
	backupCmd.Flags().StringP("output", "o", "", "output file (default: reel-YYYYMMDD-HHMMSS.yaml)")

	rootCmd.AddCommand(backupCmd)
}
