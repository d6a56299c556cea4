package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/docsplit/internal/fence"
)

func newTestCommand(t *testing.T, args []string) (*cobra.Command, *buildFlags) {
	t.Helper()
	f := &buildFlags{}
	cmd := &cobra.Command{Use: "test", RunE: func(*cobra.Command, []string) error { return nil }}
	addConfigFlags(cmd, f)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	return cmd, f
}

func TestResolveConfig_DefaultsApply(t *testing.T) {
	src := t.TempDir()
	cmd, f := newTestCommand(t, []string{"--source", src})

	cfg, err := resolveConfig(cmd, f)
	require.NoError(t, err)
	assert.Equal(t, src, cfg.Source)
	assert.Equal(t, "build", cfg.Output)
	assert.Equal(t, "python", cfg.PythonRoot)
	assert.Equal(t, "javascript", cfg.JSRoot)
	assert.Equal(t, []string{".md", ".mdx"}, cfg.Extensions)
}

func TestResolveConfig_FlagsOverrideConfigFile(t *testing.T) {
	src := t.TempDir()
	cfgPath := filepath.Join(t.TempDir(), "docsplit.json")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`{"source": "`+src+`", "output": "from-file", "concurrency": 2}`), 0o644))

	cmd, f := newTestCommand(t, []string{"--config", cfgPath, "--output", "from-flag"})

	cfg, err := resolveConfig(cmd, f)
	require.NoError(t, err)
	assert.Equal(t, "from-flag", cfg.Output)
	assert.Equal(t, 2, cfg.Concurrency)
}

func TestResolveConfig_InvalidConfigRejected(t *testing.T) {
	cmd, f := newTestCommand(t, []string{"--source", filepath.Join(t.TempDir(), "missing")})

	_, err := resolveConfig(cmd, f)
	assert.Error(t, err)
}

func TestTracksFor(t *testing.T) {
	src := t.TempDir()
	cmd, f := newTestCommand(t, []string{"--source", src, "--python-root", "py", "--js-root", "ts"})

	cfg, err := resolveConfig(cmd, f)
	require.NoError(t, err)

	tracks := tracksFor(cfg)
	require.Len(t, tracks, 2)
	assert.Equal(t, fence.TagPython, tracks[0].Tag)
	assert.Equal(t, "py", tracks[0].Root)
	assert.Equal(t, fence.TagJS, tracks[1].Tag)
	assert.Equal(t, "ts", tracks[1].Root)
}
