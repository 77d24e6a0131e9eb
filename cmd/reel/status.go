// ABOUTME: Status command
// ABOUTME: Reports entry counts and storage health of every collection

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harper/reel/internal/stores"
	"github.com/harper/reel/internal/ui"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show collection sizes and storage health",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		status := reg.Status()
		degraded := 0
		for _, name := range stores.Names() {
			s := status[name]
			fmt.Println(ui.FormatStatus(name, s))
			if s.Degraded() {
				degraded++
			}
		}
		if degraded > 0 {
			color.Yellow("\n%d collection(s) are not being saved; changes will be lost on exit", degraded)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
