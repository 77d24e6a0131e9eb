// ABOUTME: Command builders shared by the liked, watched and wishlist commands
// ABOUTME: Each collection gets an add, a remove and a list command

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harper/reel/internal/models"
	"github.com/harper/reel/internal/stores"
	"github.com/harper/reel/internal/ui"
	"github.com/spf13/cobra"
)

type membershipCommand struct {
	rel     stores.Relation
	use     string
	aliases []string
	short   string
	long    string
	done    string
}

func membershipStore(rel stores.Relation) *stores.MembershipStore {
	s, _ := reg.Membership(rel)
	return s
}

func newAddCmd(def membershipCommand) *cobra.Command {
	cmd := &cobra.Command{
		Use:     def.use + " <id>",
		Aliases: def.aliases,
		Short:   def.short,
		Long:    def.long,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, t, err := parseKeyArgs(cmd.Flags(), args[0])
			if err != nil {
				return err
			}

			store := membershipStore(def.rel)
			if store.Is(id, t) {
				fmt.Printf("%s is already in %s\n", models.NewKey(id, t), def.rel)
				return nil
			}

			store.Add(mediaItemFromFlags(cmd.Flags(), id), t)
			if err := store.Status().PersistErr; err != nil {
				color.Yellow("warning: %s was not saved: %v", def.rel, err)
			}

			rec, _ := store.Get(id, t)
			color.Green("✓ %s", def.done)
			fmt.Printf("  %s\n", ui.FormatRecord(rec))
			return nil
		},
	}
	addTypeFlag(cmd)
	addMetadataFlags(cmd)
	return cmd
}

func newRemoveCmd(rel stores.Relation, use, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, t, err := parseKeyArgs(cmd.Flags(), args[0])
			if err != nil {
				return err
			}

			store := membershipStore(rel)
			if !store.Is(id, t) {
				fmt.Printf("%s is not in %s\n", models.NewKey(id, t), rel)
				return nil
			}

			store.Remove(id, t)
			color.Green("✓ Removed %s from %s", models.NewKey(id, t), rel)
			return nil
		},
	}
	addTypeFlag(cmd)
	return cmd
}

func newListCmd(rel stores.Relation, use string, aliases []string, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:     use,
		Aliases: aliases,
		Short:   short,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, _ := cmd.Flags().GetString("type")
			records := membershipStore(rel).Items()

			shown := 0
			for _, rec := range records {
				if filter != "" && string(rec.Type) != filter {
					continue
				}
				fmt.Println(ui.FormatRecord(rec))
				shown++
			}
			if shown == 0 {
				fmt.Println(ui.FormatEmpty(string(rel)))
			}
			return nil
		},
	}
	cmd.Flags().StringP("type", "t", "", "only show movie or tv entries")
	return cmd
}
