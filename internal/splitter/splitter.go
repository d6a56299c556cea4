// Package splitter turns one parsed source document into its per-track
// output documents: neutral segments are kept everywhere, tagged segments
// only in their own track, and internal links are rewritten per track.
package splitter

import (
	"path"
	"strings"

	"github.com/jonathan/docsplit/internal/document"
	"github.com/jonathan/docsplit/internal/fence"
	"github.com/jonathan/docsplit/internal/links"
)

// Parsed pairs a source document with its fence parse. Parsing is separated
// from emission so a build can surface every parse error before writing any
// output, and so the dual-track index exists before links are rewritten.
type Parsed struct {
	Source document.SourceDocument
	Doc    *fence.Document
}

// Dual reports whether the document needs per-track outputs.
func (p *Parsed) Dual() bool { return p.Doc.Fenced }

// Parse scans one source document. Errors are fence.StructuralError,
// fence.UnterminatedFenceError, or fence.UnknownTagError.
func Parse(src document.SourceDocument) (*Parsed, error) {
	doc, err := fence.Parse(src.Path, src.Text)
	if err != nil {
		return nil, err
	}
	return &Parsed{Source: src, Doc: doc}, nil
}

// Splitter emits output documents for a fixed set of tracks.
type Splitter struct {
	tracks   []document.Track
	rewriter *links.Rewriter
}

// New builds a Splitter. rewriter may be nil to skip link rewriting
// (used by tests and by the check command, which never emits).
func New(tracks []document.Track, rewriter *links.Rewriter) *Splitter {
	return &Splitter{tracks: tracks, rewriter: rewriter}
}

// Emit produces the output documents for one parsed source. A fence-free
// document short-circuits to a single output whose text is byte-identical
// to the input.
func (s *Splitter) Emit(p *Parsed) []document.OutputDocument {
	if !p.Dual() {
		return []document.OutputDocument{{
			Path: p.Source.Path,
			Text: p.Source.Text,
		}}
	}

	docDir := path.Dir(p.Source.Path)
	if docDir == "." {
		docDir = ""
	}

	outs := make([]document.OutputDocument, 0, len(s.tracks))
	for _, tr := range s.tracks {
		text := emitTrack(p.Doc, tr.Tag)
		if s.rewriter != nil {
			text = s.rewriter.Rewrite(text, docDir, tr.Root)
		}
		outs = append(outs, document.OutputDocument{
			Path:  document.TrackPath(tr.Root, p.Source.Path),
			Text:  text,
			Track: tr.Root,
		})
	}
	return outs
}

// emitTrack concatenates the retained segments for one track, dropping
// foreign-tagged segments and the fence marker lines themselves.
func emitTrack(doc *fence.Document, tag fence.Tag) string {
	var lines []string
	for _, seg := range doc.Segments {
		if seg.Neutral() || seg.Tag == tag {
			lines = append(lines, seg.Lines...)
		}
	}
	text := strings.Join(lines, "\n")
	if doc.TrailingNewline && text != "" {
		text += "\n"
	}
	return text
}
