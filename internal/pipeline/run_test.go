package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/docsplit/internal/document"
)

func writeSource(t *testing.T, root, rel, body string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func readOutput(t *testing.T, root, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	require.NoError(t, err)
	return string(data)
}

func testOptions(source, output string) Options {
	return Options{
		Source:     source,
		Output:     output,
		Tracks:     document.DefaultTracks,
		Extensions: []string{".md", ".mdx"},
	}
}

func TestRun_MixedTree(t *testing.T) {
	source, output := t.TempDir(), t.TempDir()
	writeSource(t, source, "index.mdx", "# Welcome\n")
	writeSource(t, source, "concepts/streaming.mdx", "Intro\n:::python\npy\n:::\n:::js\njs\n:::\n")
	writeSource(t, source, "guide/tools.mdx", "See [streaming](/concepts/streaming).\n:::python\npy only\n:::\n")

	report, err := Run(context.Background(), testOptions(source, output))
	require.NoError(t, err)

	assert.Equal(t, 3, report.Documents)
	assert.Equal(t, 1, report.SingleTrack)
	assert.Equal(t, 2, report.DualTrack)
	assert.Equal(t, 5, report.Written)

	// Fence-free documents come out byte-identical at their original path.
	assert.Equal(t, "# Welcome\n", readOutput(t, output, "index.mdx"))

	// Dual-track documents land under both track roots.
	assert.Equal(t, "Intro\npy\n", readOutput(t, output, "python/concepts/streaming.mdx"))
	assert.Equal(t, "Intro\njs\n", readOutput(t, output, "javascript/concepts/streaming.mdx"))

	// Links to dual-track documents resolve within the emitting track.
	assert.Contains(t, readOutput(t, output, "python/guide/tools.mdx"), "(/python/concepts/streaming)")
	assert.Contains(t, readOutput(t, output, "javascript/guide/tools.mdx"), "(/javascript/concepts/streaming)")

	assert.Equal(t, []string{
		"index",
		"javascript/concepts/streaming",
		"javascript/guide/tools",
		"python/concepts/streaming",
		"python/guide/tools",
	}, report.Pages)
}

func TestRun_AggregatesAllParseErrors(t *testing.T) {
	source, output := t.TempDir(), t.TempDir()
	writeSource(t, source, "good.mdx", "fine\n")
	writeSource(t, source, "nested.mdx", "A\n:::python\n:::js\n:::\n")
	writeSource(t, source, "open.mdx", ":::js\nnever closed\n")

	_, err := Run(context.Background(), testOptions(source, output))
	require.Error(t, err)

	var berr *BuildError
	require.ErrorAs(t, err, &berr)
	require.Len(t, berr.Errors, 2)
	assert.Equal(t, "nested.mdx", berr.Errors[0].Path)
	assert.Equal(t, "open.mdx", berr.Errors[1].Path)
	assert.Contains(t, berr.Errors[0].Error(), "nested.mdx:3")
	assert.Contains(t, berr.Errors[1].Error(), "open.mdx:1")

	// A failed run writes nothing, not even for the clean documents.
	entries, rerr := os.ReadDir(output)
	require.NoError(t, rerr)
	assert.Empty(t, entries)
}

func TestRun_TrackCollisionIsRejected(t *testing.T) {
	source, output := t.TempDir(), t.TempDir()
	writeSource(t, source, "python/manual.mdx", "hand-written\n")

	_, err := Run(context.Background(), testOptions(source, output))
	var berr *BuildError
	require.ErrorAs(t, err, &berr)
	require.Len(t, berr.Errors, 1)

	var cerr *document.TrackCollisionError
	require.ErrorAs(t, berr.Errors[0], &cerr)
	assert.Equal(t, "python/manual.mdx", cerr.Path)
}

func TestRun_Idempotent(t *testing.T) {
	source := t.TempDir()
	writeSource(t, source, "doc.mdx", "A\n:::python\nB\n:::\nC\n")

	out1, out2 := t.TempDir(), t.TempDir()
	_, err := Run(context.Background(), testOptions(source, out1))
	require.NoError(t, err)
	_, err = Run(context.Background(), testOptions(source, out2))
	require.NoError(t, err)

	for _, rel := range []string{"python/doc.mdx", "javascript/doc.mdx"} {
		assert.Equal(t, readOutput(t, out1, rel), readOutput(t, out2, rel))
	}
}

func TestRun_DryRunWritesNothing(t *testing.T) {
	source, output := t.TempDir(), t.TempDir()
	writeSource(t, source, "doc.mdx", "A\n:::js\nB\n:::\n")

	opts := testOptions(source, output)
	opts.DryRun = true
	report, err := Run(context.Background(), opts)
	require.NoError(t, err)

	assert.Zero(t, report.Written)
	assert.Equal(t, []string{"javascript/doc", "python/doc"}, report.Pages)

	entries, err := os.ReadDir(output)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRun_SkipsNonDocumentFiles(t *testing.T) {
	source, output := t.TempDir(), t.TempDir()
	writeSource(t, source, "logo.png", "binary")
	writeSource(t, source, "doc.md", "text\n")

	report, err := Run(context.Background(), testOptions(source, output))
	require.NoError(t, err)
	assert.Equal(t, 1, report.Documents)
}

func TestRun_PreservesUnrelatedOutputFiles(t *testing.T) {
	source, output := t.TempDir(), t.TempDir()
	writeSource(t, source, "doc.md", "text\n")
	require.NoError(t, os.WriteFile(filepath.Join(output, "stale.mdx"), []byte("old"), 0o644))

	_, err := Run(context.Background(), testOptions(source, output))
	require.NoError(t, err)

	// Pruning stale output is an external responsibility.
	assert.Equal(t, "old", readOutput(t, output, "stale.mdx"))
}
