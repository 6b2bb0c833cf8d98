package cmd

import (
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/abhisek/numa/internal/app"
	"github.com/abhisek/numa/internal/config"
	engine "github.com/abhisek/numa/internal/drill"
	"github.com/abhisek/numa/internal/exercise"
	drillscreen "github.com/abhisek/numa/internal/screens/drill"
	"github.com/abhisek/numa/internal/screens/home"
	"github.com/abhisek/numa/internal/sequence"
	"github.com/abhisek/numa/internal/store"
)

// errNothingToReopen is returned by a bare invocation with no pending reopen.
var errNothingToReopen = errors.New("no exercise file given and no session to reopen (try: numa play <file>)")

// runApp opens the store, loads the exercise file, and launches the TUI.
// An empty path reopens the file of the last session left with Exit.
func runApp(cmd *cobra.Command, df *drillFlags, path string) error {
	ctx := cmd.Context()
	cfg, err := loadConfig(cmd, df)
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
	flags := st.FlagRepo()

	autoStart, reopening := df.start, false
	if path == "" {
		last, ok, err := store.PendingReopen(ctx, flags)
		if err != nil {
			return fmt.Errorf("read reopen flag: %w", err)
		}
		if !ok || last == "" {
			return errNothingToReopen
		}
		path, autoStart, reopening = last, true, true
	}

	set, err := loadSet(cmd.ErrOrStderr(), path, df.strict)
	if err != nil {
		return err
	}
	modes, err := resolveModes(cmd, cfg, set, df.modes)
	if err != nil {
		return err
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("numa needs an interactive terminal; use 'numa preview' to print a session")
	}

	logger := log.New(io.Discard, "", 0)
	if cfg.LogPath != "" {
		f, err := tea.LogToFile(cfg.LogPath, "numa")
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logger = log.Default()
	}

	// The reopen request is consumed only once the TUI is about to start.
	if reopening {
		if err := store.ClearReopen(ctx, flags); err != nil {
			return fmt.Errorf("clear reopen flag: %w", err)
		}
	}

	return app.Run(app.Options{Home: home.Options{
		AutoStart: autoStart,
		Drill: drillscreen.Options{
			Set:             set,
			Modes:           modes,
			FuguesSpeed:     resolveSpeed(cmd, cfg, flags, df.speed, logger),
			Flags:           flags,
			Logger:          logger,
			Debounce:        cfg.Debounce,
			Tick:            cfg.Tick,
			HistoryLimit:    cfg.HistoryLimit,
			MinOpacity:      cfg.MinOpacity,
			RestartAttempts: cfg.RestartAttempts,
			NarrowWidth:     cfg.NarrowWidth,
			Keypad:          cfg.Keypad,
			Countdown:       cfg.Countdown,
			Rand:            newRand(df.seed),
		},
	}})
}

// loadSet loads the exercise file. Unanswerable items fail the load in
// strict mode and are reported as warnings otherwise.
func loadSet(w io.Writer, path string, strict bool) (*exercise.Set, error) {
	set, err := exercise.Load(path)
	if err != nil {
		return nil, err
	}
	issues := set.Check()
	if len(issues) == 0 {
		return set, nil
	}
	if strict {
		for _, is := range issues {
			fmt.Fprintf(w, "error: %s\n", is)
		}
		return nil, fmt.Errorf("%s: %d unanswerable item(s), rerun with --strict=false to keep them: %w",
			path, len(issues), exercise.ErrUnanswerable)
	}
	for _, is := range issues {
		fmt.Fprintf(w, "warning: %s\n", is)
	}
	return set, nil
}

// resolveModes layers config and env, then the exercise file's own modes,
// then --mode flags.
func resolveModes(cmd *cobra.Command, cfg config.Config, set *exercise.Set, flagModes []string) (sequence.Modes, error) {
	names := cfg.Modes
	if len(set.Modes) > 0 {
		names = set.Modes
	}
	applyFlag(cmd, "mode", &names, flagModes)
	modes, err := sequence.ParseModes(names)
	if err != nil {
		return nil, fmt.Errorf("modes: %w", err)
	}
	return modes, nil
}

// resolveSpeed picks the Fugues speed: --speed, then the stored preference,
// then config.
func resolveSpeed(cmd *cobra.Command, cfg config.Config, flags store.FlagRepo, flagSpeed string, logger *log.Logger) string {
	speed := cfg.FuguesSpeed
	if flags != nil {
		v, err := flags.Get(cmd.Context(), store.KeyFuguesSpeed)
		switch {
		case err == nil:
			speed = v
		case !errors.Is(err, store.ErrNotFound):
			logger.Printf("warning: failed to read fugues speed: %v", err)
		}
	}
	applyFlag(cmd, "speed", &speed, flagSpeed)
	return engine.NormalizeSpeed(speed)
}

// newRand returns a PCG-backed generator. A zero seed picks a random one.
func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
