package cmd

import (
	"fmt"

	"github.com/abhisek/numa/internal/store"
	"github.com/spf13/cobra"
)

func newResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Clear the reopen flag and saved preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, nil)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			dbPath, err := resolveDBPath(cmd, cfg)
			if err != nil {
				return fmt.Errorf("resolve DB path: %w", err)
			}
			st, err := store.Open(dbPath)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer st.Close()

			if err := st.FlagRepo().Clear(cmd.Context()); err != nil {
				return fmt.Errorf("clear flags: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Saved flags and preferences cleared.")
			return nil
		},
	}
}
