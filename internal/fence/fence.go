// Package fence parses inline language fence markers (":::python", ":::js",
// and the bare ":::" close marker) out of a documentation source file.
package fence

import (
	"regexp"
	"strings"
)

// Tag identifies the language a fenced region belongs to.
type Tag string

const (
	// TagPython marks a region included only in the python track.
	TagPython Tag = "python"
	// TagJS marks a region included only in the javascript track.
	TagJS Tag = "js"
)

// RecognizedTags is the set of tags a fence may open with.
// Anything else on a marker line is an UnknownTagError.
var RecognizedTags = map[Tag]bool{
	TagPython: true,
	TagJS:     true,
}

// Segment is a contiguous run of source lines that is either neutral
// (Tag == "") or belongs to a single fenced region.
type Segment struct {
	Tag       Tag      // empty for neutral content
	Lines     []string // content lines, fence markers excluded
	StartLine int      // 1-based line number of the first content line
}

// Neutral reports whether the segment is shared by every track.
func (s Segment) Neutral() bool { return s.Tag == "" }

// Document is the parse result for one source file.
type Document struct {
	Path     string
	Segments []Segment
	// Fenced is true when at least one fenced region was found. A
	// fence-free document is emitted once, unchanged, with no track suffix.
	Fenced bool
	// TrailingNewline records whether the source ended with a newline so
	// emission can reproduce the original file ending exactly.
	TrailingNewline bool
}

// markerPattern matches a line that is exactly a fence marker: ":::" followed
// by an optional bare tag. Lines with trailing content (e.g. "::: note") are
// ordinary text, not markers.
var markerPattern = regexp.MustCompile(`^:::([A-Za-z0-9_-]*)$`)

// scanState is the single-slot fence state: neutral, or inside a fence.
type scanState struct {
	open     bool
	tag      Tag
	openLine int
}

// Parse scans text top to bottom and splits it into ordered segments.
// path is used only for error reporting.
//
// Marker handling is strict: opening a fence while one is already open, or
// closing without an open fence, is a StructuralError; reaching end of input
// with a fence still open is an UnterminatedFenceError; opening with an
// unrecognized tag is an UnknownTagError. No recovery is attempted.
func Parse(path, text string) (*Document, error) {
	doc := &Document{Path: path}

	lines := strings.Split(text, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" && text != "" {
		doc.TrailingNewline = true
		lines = lines[:n-1]
	}

	var st scanState
	var cur []string
	curStart := 1

	flush := func(tag Tag, startLine int) {
		if len(cur) == 0 {
			return
		}
		doc.Segments = append(doc.Segments, Segment{Tag: tag, Lines: cur, StartLine: startLine})
		cur = nil
	}

	for i, line := range lines {
		lineNo := i + 1
		m := markerPattern.FindStringSubmatch(strings.TrimSuffix(line, "\r"))
		if m == nil {
			if len(cur) == 0 {
				curStart = lineNo
			}
			cur = append(cur, line)
			continue
		}

		tag := Tag(m[1])
		switch {
		case tag == "": // close marker
			if !st.open {
				return nil, &StructuralError{Path: path, Line: lineNo, Marker: ":::"}
			}
			flush(st.tag, curStart)
			st = scanState{}
		case st.open: // open marker while a fence is already open
			return nil, &StructuralError{Path: path, Line: lineNo, Marker: ":::" + string(tag)}
		case !RecognizedTags[tag]:
			return nil, &UnknownTagError{Path: path, Line: lineNo, Tag: string(tag)}
		default:
			flush("", curStart)
			st = scanState{open: true, tag: tag, openLine: lineNo}
			doc.Fenced = true
		}
	}

	if st.open {
		return nil, &UnterminatedFenceError{Path: path, Line: st.openLine, Tag: st.tag}
	}
	flush("", curStart)
	return doc, nil
}

// TaggedLines returns the lines of every segment carrying the given tag, in
// segment order. Used to verify that splitting loses no fenced content.
func (d *Document) TaggedLines(tag Tag) []string {
	var out []string
	for _, seg := range d.Segments {
		if seg.Tag == tag {
			out = append(out, seg.Lines...)
		}
	}
	return out
}
