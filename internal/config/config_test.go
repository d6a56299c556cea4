package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "docsplit.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	src := t.TempDir()
	path := writeConfig(t, `{"source": "`+src+`", "output": "out", "concurrency": 4, "verbose": true}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, src, cfg.Source)
	assert.Equal(t, "out", cfg.Output)
	assert.Equal(t, 4, cfg.Concurrency)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "{not json"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := Config{Source: t.TempDir(), Output: "out"}
	cfg := base.MergeWithDefaults(Defaults())
	require.NoError(t, cfg.Validate())
}

func TestValidate_MissingSource(t *testing.T) {
	cfg := Defaults()
	cfg.Source = filepath.Join(t.TempDir(), "nope")
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "source tree not found")
}

func TestValidate_TrackRootsMustDiffer(t *testing.T) {
	cfg := Defaults()
	cfg.Source = t.TempDir()
	cfg.JSRoot = cfg.PythonRoot
	assert.Error(t, cfg.Validate())
}

func TestValidate_BadExtension(t *testing.T) {
	cfg := Defaults()
	cfg.Source = t.TempDir()
	cfg.Extensions = []string{"mdx"}
	assert.Error(t, cfg.Validate())
}

func TestValidate_MissingManifest(t *testing.T) {
	cfg := Defaults()
	cfg.Source = t.TempDir()
	cfg.Manifest = filepath.Join(t.TempDir(), "docs.json")
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "manifest file not found")
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{Source: "docs"}
	merged := cfg.MergeWithDefaults(Defaults())

	assert.Equal(t, "docs", merged.Source)
	assert.Equal(t, "build", merged.Output)
	assert.Equal(t, "python", merged.PythonRoot)
	assert.Equal(t, "javascript", merged.JSRoot)
	assert.Equal(t, []string{".md", ".mdx"}, merged.Extensions)
	assert.Equal(t, 0, merged.Concurrency)
}
