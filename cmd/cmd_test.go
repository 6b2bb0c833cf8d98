package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/numa/internal/config"
	"github.com/abhisek/numa/internal/exercise"
	"github.com/abhisek/numa/internal/store"
)

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("NUMA_CONFIG", filepath.Join(t.TempDir(), "config.toml"))
	t.Setenv("NUMA_DB", "")
	t.Setenv("NUMA_MODES", "")

	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&errOut)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func writeSet(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "set.json")
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func TestCheck_Valid(t *testing.T) {
	path := writeSet(t, `["2+2", "3+3"]`)
	out, _, err := execute(t, "check", path)
	require.NoError(t, err)
	assert.Contains(t, out, "✓")
	assert.Contains(t, out, "2 items")
}

func TestCheck_Unanswerable(t *testing.T) {
	path := writeSet(t, `["2+2", "4÷0"]`)
	out, _, err := execute(t, "check", path)
	require.Error(t, err)
	assert.Contains(t, out, "1 unanswerable item(s)")
	assert.Contains(t, out, "item 2")
}

func TestCheck_InvalidJSON(t *testing.T) {
	path := writeSet(t, `{"items": [`)
	out, _, err := execute(t, "check", path)
	require.Error(t, err)
	assert.Contains(t, out, "invalid exercise file")
}

func TestPreview_KeepsFileOrder(t *testing.T) {
	path := writeSet(t, `{"title": "Sums", "items": ["2+2", "3+3"]}`)
	out, _, err := execute(t, "preview", path)
	require.NoError(t, err)

	assert.Contains(t, out, "Sums")
	assert.Contains(t, out, "→ 4")
	assert.Contains(t, out, "→ 6")
	assert.Less(t, strings.Index(out, "2 + 2"), strings.Index(out, "3 + 3"))
}

func TestPreview_SeedIsReproducible(t *testing.T) {
	path := writeSet(t, `["1+1", "2+2", "3+3", "4+4", "5+5", "6+6", "7+7", "8+8"]`)
	first, _, err := execute(t, "preview", "--mode", "Random", "--seed", "42", path)
	require.NoError(t, err)
	second, _, err := execute(t, "preview", "--mode", "Random", "--seed", "42", path)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestPreview_StrictRejectsUnanswerable(t *testing.T) {
	path := writeSet(t, `["2+2", "4÷0"]`)
	_, errOut, err := execute(t, "preview", path)
	require.ErrorIs(t, err, exercise.ErrUnanswerable)
	assert.Contains(t, errOut, "error: item 2")

	out, errOut, err := execute(t, "preview", "--strict=false", path)
	require.NoError(t, err)
	assert.Contains(t, errOut, "warning: item 2")
	assert.Contains(t, out, "2 items")
}

func TestPreview_BadMode(t *testing.T) {
	path := writeSet(t, `["2+2"]`)
	_, _, err := execute(t, "preview", "--mode", "Sideways", path)
	require.Error(t, err)
}

func TestReset_ClearsFlags(t *testing.T) {
	db := filepath.Join(t.TempDir(), "numa.db")
	st, err := store.Open(db)
	require.NoError(t, err)
	require.NoError(t, store.MarkReopen(context.Background(), st.FlagRepo(), "/tmp/set.json"))
	require.NoError(t, st.Close())

	out, _, err := execute(t, "reset", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "cleared")

	st, err = store.Open(db)
	require.NoError(t, err)
	defer st.Close()
	_, err = st.FlagRepo().Get(context.Background(), store.KeyReopen)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestBareInvocation_NothingToReopen(t *testing.T) {
	db := filepath.Join(t.TempDir(), "numa.db")
	_, _, err := execute(t, "--db", db)
	assert.ErrorIs(t, err, errNothingToReopen)
}

func TestBareInvocation_KeepsReopenOnFailure(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"unanswerable file", `["2+2", "4÷0"]`},
		// A valid file still fails: test output is not a terminal.
		{"no terminal", `["2+2"]`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			db := filepath.Join(t.TempDir(), "numa.db")
			st, err := store.Open(db)
			require.NoError(t, err)
			require.NoError(t, store.MarkReopen(context.Background(), st.FlagRepo(), writeSet(t, tc.data)))
			require.NoError(t, st.Close())

			_, _, err = execute(t, "--db", db)
			require.Error(t, err)

			st, err = store.Open(db)
			require.NoError(t, err)
			defer st.Close()
			_, ok, err := store.PendingReopen(context.Background(), st.FlagRepo())
			require.NoError(t, err)
			assert.True(t, ok, "reopen request lost after a failed start")
		})
	}
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "numa "))

	version = "v1.2.3"
	t.Cleanup(func() { version = "" })
	out, _, err = execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "numa v1.2.3\n", out)
}

func TestDefaultConfigTemplate_Decodes(t *testing.T) {
	for _, k := range []string{"NUMA_DB", "NUMA_LOG", "NUMA_MODES"} {
		t.Setenv(k, "")
	}
	path := filepath.Join(t.TempDir(), "numa", "config.toml")
	require.NoError(t, writeDefaultConfig(path))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}
