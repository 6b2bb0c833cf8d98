package cmd

import (
	"github.com/spf13/cobra"
)

func newPlayCmd() *cobra.Command {
	var df drillFlags
	playCmd := &cobra.Command{
		Use:   "play <file>",
		Short: "Start a drill session from an exercise file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApp(cmd, &df, args[0])
		},
	}
	addDrillFlags(playCmd, &df)
	return playCmd
}
