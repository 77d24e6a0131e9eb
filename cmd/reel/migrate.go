// ABOUTME: Migration command for moving collections between storage backends
// ABOUTME: Copies every collection slot from the configured backend to another one

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harper/reel/internal/config"
	"github.com/harper/reel/internal/storage"
	"github.com/harper/reel/internal/stores"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate collections between storage backends",
	Long: `Copy every collection from the currently configured backend to a different backend.

Does NOT update the config file; verify the migration was successful
then update config.json (or set REEL_BACKEND).

Examples:
  reel migrate --to sqlite
  reel migrate --to badger --data-dir ~/reel-badger
  reel migrate --to bolt --force`,
	RunE: runMigrate,
}

var (
	migrateTo      string
	migrateDataDir string
	migrateForce   bool
)

func init() {
	migrateCmd.Flags().StringVar(&migrateTo, "to", "", "target backend (bolt, badger, sqlite or charm)")
	migrateCmd.Flags().StringVar(&migrateDataDir, "data-dir", "", "target data directory (defaults to current config data_dir)")
	migrateCmd.Flags().BoolVar(&migrateForce, "force", false, "allow writing into a non-empty target directory")
	_ = migrateCmd.MarkFlagRequired("to")

	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	return migrateFrom(cmd, cfg, kvStore)
}

// migrateFrom copies every slot of src into the --to backend.
func migrateFrom(cmd *cobra.Command, cfg *config.Config, src storage.KV) error {
	sourceBackend := cfg.GetBackend()
	targetBackend := migrateTo

	switch targetBackend {
	case storage.BackendBolt, storage.BackendBadger, storage.BackendSQLite, storage.BackendCharm:
	default:
		return fmt.Errorf("invalid target backend %q: must be bolt, badger, sqlite or charm", targetBackend)
	}

	targetDataDir := cfg.GetDataDir()
	if migrateDataDir != "" {
		targetDataDir = config.ExpandPath(migrateDataDir)
	}
	if targetBackend == sourceBackend && targetDataDir == cfg.GetDataDir() {
		return fmt.Errorf("target backend %q is the same as the current backend", targetBackend)
	}

	// Bolt, badger and sqlite share the default data dir, so only a
	// separate directory is checked for leftovers.
	if targetDataDir != cfg.GetDataDir() {
		nonEmpty, err := storage.IsDirNonEmpty(targetDataDir)
		if err != nil {
			return fmt.Errorf("check target directory: %w", err)
		}
		if nonEmpty && !migrateForce {
			return fmt.Errorf("target directory %q is not empty; use --force to overwrite", targetDataDir)
		}
	}

	dst, err := config.OpenBackend(targetBackend, targetDataDir)
	if err != nil {
		return fmt.Errorf("open target storage (%s): %w", targetBackend, err)
	}
	defer func() {
		if cerr := dst.Close(); cerr != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "warning: closing target storage: %v\n", cerr)
		}
	}()

	color.Yellow("Migrating collections:")
	fmt.Printf("  Source:  %s (%s)\n", sourceBackend, cfg.GetDataDir())
	fmt.Printf("  Target:  %s (%s)\n", targetBackend, targetDataDir)
	fmt.Println()

	summary, err := storage.Migrate(src, dst, stores.Slots())
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	logger.Info().Int("copied", summary.Copied).Int("bytes", summary.Bytes).Msg("migration finished")

	color.Green("Migration complete!")
	fmt.Printf("  Collections copied: %d\n", summary.Copied)
	fmt.Printf("  Never written:      %d\n", summary.Missing)
	fmt.Println()
	color.Yellow("Note: config.json was NOT updated. To switch to the new backend, edit:")
	fmt.Printf("  %s\n", config.GetConfigPath())
	fmt.Printf("  Set \"backend\": %q", targetBackend)
	if migrateDataDir != "" {
		fmt.Printf(" and \"data_dir\": %q", migrateDataDir)
	}
	fmt.Println()

	return nil
}
