package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/abhisek/numa/internal/config"
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := resolveConfigPath(cmd)
			if err := writeDefaultConfig(path); err != nil {
				return err
			}
			return openEditor(path)
		},
	}
}

// writeDefaultConfig writes the commented template unless path exists.
func writeDefaultConfig(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat config: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func openEditor(path string) error {
	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	c := exec.Command(parts[0], append(parts[1:], path)...)
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	if err := c.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func defaultConfigTemplate() string {
	d := config.Default()
	return fmt.Sprintf(`# numa configuration
# Uncomment a value to enable it. CLI flags override config values.

[drill]
# modes = ["Random"]      # Random, Surges, Mirror, Fugues
# fugues-speed = %q      # 1H (fastest) to 6H
# debounce-ms = %d        # Quiet period before an answer is checked
# tick-ms = %d            # Live timer refresh interval
# history = %d             # Answers kept in the history column
# min-opacity = %.1f       # Fade of the oldest history entry (0-1]
# keypad = false          # Show the on-screen keypad
# countdown = 0           # Session countdown in seconds (0 disables)
# narrow-width = %d        # Stack the HUD below this terminal width
`,
		d.FuguesSpeed,
		d.Debounce.Milliseconds(),
		d.Tick.Milliseconds(),
		d.HistoryLimit,
		d.MinOpacity,
		d.NarrowWidth,
	)
}
