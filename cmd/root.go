package cmd

import (
	"time"

	"github.com/abhisek/numa/internal/config"
	"github.com/abhisek/numa/internal/store"
	"github.com/spf13/cobra"
)

// drillFlags holds the session flags shared by the root and play commands.
type drillFlags struct {
	modes     []string
	speed     string
	strict    bool
	seed      uint64
	countdown time.Duration
	keypad    bool
	start     bool
}

func newRootCmd() *cobra.Command {
	var df drillFlags
	rootCmd := &cobra.Command{
		Use:   "numa [file]",
		Short: "Terminal drills for arithmetic and short answers",
		Long: `numa runs timed drill sessions from a JSON exercise file.

Run without arguments to reopen the session you last left with Exit.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return runApp(cmd, &df, path)
		},
	}

	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides NUMA_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (overrides NUMA_CONFIG env var)")
	rootCmd.PersistentFlags().String("log", "", "Write debug logs to this file (overrides NUMA_LOG env var)")
	addDrillFlags(rootCmd, &df)

	rootCmd.AddCommand(newPlayCmd())
	rootCmd.AddCommand(newPreviewCmd())
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newResetCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}

func addDrillFlags(cmd *cobra.Command, df *drillFlags) {
	cmd.Flags().StringSliceVar(&df.modes, "mode", nil, "Session mode: Random, Surges, Mirror, Fugues (repeatable)")
	cmd.Flags().StringVar(&df.speed, "speed", "", "Fugues speed, 1H (fastest) to 6H")
	cmd.Flags().BoolVar(&df.strict, "strict", true, "Reject exercise files with unanswerable items")
	cmd.Flags().Uint64Var(&df.seed, "seed", 0, "Seed for shuffling (0 picks a random seed)")
	cmd.Flags().DurationVar(&df.countdown, "countdown", 0, "Show a session countdown, e.g. 2m")
	cmd.Flags().BoolVar(&df.keypad, "keypad", false, "Show the on-screen keypad")
	cmd.Flags().BoolVar(&df.start, "start", false, "Skip the menu and start the drill")
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then NUMA_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

// resolveConfigPath returns --config, then NUMA_CONFIG, then the XDG path.
func resolveConfigPath(cmd *cobra.Command) string {
	if p, _ := cmd.Flags().GetString("config"); p != "" {
		return p
	}
	return config.DefaultConfigPath()
}

// loadConfig builds the effective configuration: defaults, file, env, then
// the flags the user set explicitly. Modes and speed are resolved by
// resolveModes and resolveSpeed since the exercise file and the store take
// part in them.
func loadConfig(cmd *cobra.Command, df *drillFlags) (config.Config, error) {
	cfg, err := config.Load(resolveConfigPath(cmd))
	if err != nil {
		return cfg, err
	}
	if p, _ := cmd.Flags().GetString("log"); p != "" {
		cfg.LogPath = p
	}
	if df == nil {
		return cfg, nil
	}
	applyFlag(cmd, "countdown", &cfg.Countdown, df.countdown)
	applyFlag(cmd, "keypad", &cfg.Keypad, df.keypad)
	return cfg, cfg.Validate()
}

// applyFlag overwrites target with value when the flag was set on the
// command line.
func applyFlag[T any](cmd *cobra.Command, name string, target *T, value T) {
	if f := cmd.Flags().Lookup(name); f == nil || !f.Changed {
		return
	}
	*target = value
}
