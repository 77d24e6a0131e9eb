// ABOUTME: Root Cobra command and global state
// ABOUTME: Loads config, builds the logger, and opens storage behind the store registry

package main

import (
	"fmt"
	"os"

	"github.com/harper/reel/internal/config"
	"github.com/harper/reel/internal/logging"
	"github.com/harper/reel/internal/storage"
	"github.com/harper/reel/internal/stores"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	kvStore storage.KV
	reg     *stores.Registry
	logger  = logging.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "reel",
	Short: "Keep track of the movies and shows you like, watch and want to see",
	Long: `
██████╗ ███████╗███████╗██╗
██╔══██╗██╔════╝██╔════╝██║
██████╔╝█████╗  █████╗  ██║
██╔══██╗██╔══╝  ██╔══╝  ██║
██║  ██║███████╗███████╗███████╗
╚═╝  ╚═╝╚══════╝╚══════╝╚══════╝

     Your liked, watched, wishlist and rated titles

Examples:
  reel like 603 --title "The Matrix"
  reel watch 1399 --type tv --name "Game of Thrones"
  reel rate 603 4.5
  reel wishlist
  reel search matrix`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Tests install their own registry.
		if reg != nil {
			return nil
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		logger = logging.New(os.Stderr, cfg.GetLogLevel(), cfg.GetLogFormat())

		kvStore, err = cfg.OpenStorage()
		if err != nil {
			return fmt.Errorf("failed to open %s storage: %w", cfg.GetBackend(), err)
		}
		logger.Debug().
			Str("backend", cfg.GetBackend()).
			Str("data_dir", cfg.GetDataDir()).
			Msg("storage opened")

		reg = newRegistry(kvStore, logger)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if kvStore != nil {
			return kvStore.Close()
		}
		return nil
	},
}

func newRegistry(kv storage.KV, logger zerolog.Logger) *stores.Registry {
	return stores.NewRegistry(kv, stores.WithLogger(logger))
}
