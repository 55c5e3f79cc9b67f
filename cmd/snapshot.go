package cmd

import (
	"fmt"
	"unblinkingbot/internal/adapters/store"
	"unblinkingbot/internal/core/domain"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Manage the camera snapshots the bot can post",
}

var snapshotAddCmd = &cobra.Command{
	Use:   "add <name> <url>",
	Short: "Add or replace a snapshot source",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := store.NewSQLite(viper.GetString("store.path"))
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.Put(cmd.Context(), domain.Snapshot{Name: args[0], URL: args[1]}); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "added %s\n", args[0])
		return nil
	},
}

var snapshotListCmd = &cobra.Command{
	Use:   "list",
	Short: "List snapshot sources",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		s, err := store.NewSQLite(viper.GetString("store.path"))
		if err != nil {
			return err
		}
		defer s.Close()

		snapshots, err := s.GetByPrefix(cmd.Context(), domain.SnapshotPrefix)
		if err != nil {
			return err
		}

		for _, snapshot := range snapshots {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", snapshot.Name, snapshot.URL)
		}
		return nil
	},
}

var snapshotRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a snapshot source",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := store.NewSQLite(viper.GetString("store.path"))
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", args[0])
		return nil
	},
}

func init() {
	snapshotCmd.AddCommand(snapshotAddCmd, snapshotListCmd, snapshotRemoveCmd)
	rootCmd.AddCommand(snapshotCmd)
}
