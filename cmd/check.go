package cmd

import (
	"fmt"

	"github.com/abhisek/numa/internal/exercise"
	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>...",
		Short: "Validate exercise files",
		Long: `Validate exercise files against the schema and report items that can
never be answered. Exits non-zero when any file has a problem.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			failed := 0
			for _, path := range args {
				set, err := exercise.Load(path)
				if err != nil {
					fmt.Fprintf(out, "✗ %v\n", err)
					failed++
					continue
				}
				issues := set.Check()
				if len(issues) == 0 {
					fmt.Fprintf(out, "✓ %s: %d items\n", path, len(set.Items))
					continue
				}
				failed++
				fmt.Fprintf(out, "✗ %s: %d unanswerable item(s)\n", path, len(issues))
				for _, is := range issues {
					fmt.Fprintf(out, "    %s\n", is)
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d file(s) failed validation", failed, len(args))
			}
			return nil
		},
	}
}
