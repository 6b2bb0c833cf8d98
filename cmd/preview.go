package cmd

import (
	"fmt"

	"github.com/mattn/go-runewidth"

	"github.com/abhisek/numa/internal/config"
	"github.com/abhisek/numa/internal/exercise"
	"github.com/abhisek/numa/internal/sequence"
	"github.com/spf13/cobra"
)

func newPreviewCmd() *cobra.Command {
	var (
		modes  []string
		seed   uint64
		strict bool
	)
	previewCmd := &cobra.Command{
		Use:   "preview <file>",
		Short: "Print the working order of a session (no TUI, no database)",
		Long: `Print the items of an exercise file in the order a session would
present them, with their accepted answers.

Random shuffling is reproducible with --seed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(resolveConfigPath(cmd))
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			set, err := loadSet(cmd.ErrOrStderr(), args[0], strict)
			if err != nil {
				return err
			}
			active, err := resolveModes(cmd, cfg, set, modes)
			if err != nil {
				return err
			}
			printPreview(cmd, set, active, sequence.Build(set.Items, active, newRand(seed)))
			return nil
		},
	}
	previewCmd.Flags().StringSliceVar(&modes, "mode", nil, "Session mode: Random, Surges, Mirror, Fugues (repeatable)")
	previewCmd.Flags().Uint64Var(&seed, "seed", 0, "Seed for shuffling (0 picks a random seed)")
	previewCmd.Flags().BoolVar(&strict, "strict", true, "Reject exercise files with unanswerable items")
	return previewCmd
}

func printPreview(cmd *cobra.Command, set *exercise.Set, modes sequence.Modes, order []exercise.Exercise) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s — %d items, modes: %s\n\n", set.Title, len(order), modes)

	width := 0
	for _, ex := range order {
		width = max(width, runewidth.StringWidth(ex.PromptText()))
	}
	for i, ex := range order {
		prompt := ex.PromptText()
		fmt.Fprintf(out, "%3d. %s  → %s\n", i+1, runewidth.FillRight(prompt, width), exercise.RevealText(ex))
	}
}
