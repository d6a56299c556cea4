// Package document defines the source and output document entities the
// splitter operates on, and the track-aware output path mapping.
package document

import (
	"fmt"
	"path"
	"strings"

	"github.com/jonathan/docsplit/internal/fence"
)

// Track is one output variant of a dual-track document. Tag is the fence tag
// selecting content for the track; Root is the directory segment prepended to
// output paths (the tag and the root differ for javascript).
type Track struct {
	Tag  fence.Tag
	Root string
}

// DefaultTracks are the two tracks produced for every dual-track document.
var DefaultTracks = []Track{
	{Tag: fence.TagPython, Root: "python"},
	{Tag: fence.TagJS, Root: "javascript"},
}

// SourceDocument is an immutable build input, identified by its
// slash-separated path relative to the source root.
type SourceDocument struct {
	Path string
	Text string
}

// OutputDocument is one derived output file. Track is empty for a
// single-track (fence-free) document emitted at its original path.
type OutputDocument struct {
	Path  string
	Text  string
	Track string
}

// PagePath strips the markdown extension from a document path, yielding the
// extensionless page path used in links and in the navigation manifest.
func PagePath(docPath string) string {
	ext := path.Ext(docPath)
	switch strings.ToLower(ext) {
	case ".md", ".mdx":
		return strings.TrimSuffix(docPath, ext)
	}
	return docPath
}

// TrackPath prepends the track root to a relative document path:
// "concepts/foo.mdx" becomes "python/concepts/foo.mdx" for the python track.
func TrackPath(root, docPath string) string {
	return path.Join(root, docPath)
}

// TrackCollisionError reports a source document whose path already lives
// under a track root and would collide with the split output namespace.
type TrackCollisionError struct {
	Path string
	Root string
}

func (e *TrackCollisionError) Error() string {
	return fmt.Sprintf("source document %s collides with track output root %q", e.Path, e.Root)
}

// CheckCollision rejects source paths that sit under any track root.
// Precedence between such a document and split output is deliberately not
// defined; the tree layout has to change instead.
func CheckCollision(docPath string, tracks []Track) error {
	for _, tr := range tracks {
		if docPath == tr.Root || strings.HasPrefix(docPath, tr.Root+"/") {
			return &TrackCollisionError{Path: docPath, Root: tr.Root}
		}
	}
	return nil
}
