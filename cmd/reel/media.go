// ABOUTME: Shared flag parsing for commands addressing one media entry
// ABOUTME: Builds media keys and metadata from arguments and flags

package main

import (
	"github.com/harper/reel/internal/models"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// addTypeFlag registers --type on cmd.
func addTypeFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("type", "t", "movie", "media type: movie or tv")
}

// addMetadataFlags registers the display metadata flags on cmd.
func addMetadataFlags(cmd *cobra.Command) {
	cmd.Flags().String("title", "", "movie title")
	cmd.Flags().String("name", "", "TV show name (used when --title is empty)")
	cmd.Flags().String("poster", "", "poster image path")
	cmd.Flags().String("backdrop", "", "backdrop image path (used when --poster is empty)")
}

// parseKeyArgs reads the media id argument and --type flag.
func parseKeyArgs(flags *pflag.FlagSet, idArg string) (models.MediaID, models.MediaType, error) {
	id, err := models.ParseMediaID(idArg)
	if err != nil {
		return 0, "", err
	}
	typeStr, _ := flags.GetString("type")
	t, err := models.ParseMediaType(typeStr)
	if err != nil {
		return 0, "", err
	}
	return id, t, nil
}

// mediaItemFromFlags builds display metadata for id from the metadata flags.
func mediaItemFromFlags(flags *pflag.FlagSet, id models.MediaID) *models.MediaItem {
	title, _ := flags.GetString("title")
	name, _ := flags.GetString("name")
	poster, _ := flags.GetString("poster")
	backdrop, _ := flags.GetString("backdrop")
	return &models.MediaItem{
		ID:           id,
		Title:        title,
		Name:         name,
		PosterPath:   poster,
		BackdropPath: backdrop,
	}
}
