package fence

import "fmt"

// StructuralError reports a marker encountered in an invalid state: an open
// marker while a fence is already open, or a close marker with no open fence.
type StructuralError struct {
	Path   string
	Line   int
	Marker string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("%s:%d: fence marker %q in invalid state (nested open or close without open)", e.Path, e.Line, e.Marker)
}

// UnterminatedFenceError reports a document that ends while a fence is still
// open. Line is the line number of the opening marker.
type UnterminatedFenceError struct {
	Path string
	Line int
	Tag  Tag
}

func (e *UnterminatedFenceError) Error() string {
	return fmt.Sprintf("%s:%d: fence :::%s is never closed", e.Path, e.Line, e.Tag)
}

// UnknownTagError reports a fence opening with a tag outside the recognized
// set.
type UnknownTagError struct {
	Path string
	Line int
	Tag  string
}

func (e *UnknownTagError) Error() string {
	return fmt.Sprintf("%s:%d: unknown fence tag %q", e.Path, e.Line, e.Tag)
}
