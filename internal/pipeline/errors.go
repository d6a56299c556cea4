package pipeline

import (
	"fmt"
	"sort"
	"strings"
)

// DocumentError ties a failure to the document that caused it.
type DocumentError struct {
	Path string
	Err  error
}

func (e *DocumentError) Error() string {
	return e.Err.Error()
}

func (e *DocumentError) Unwrap() error {
	return e.Err
}

// BuildError aggregates every per-document failure of a run so one bad
// document never suppresses the report of another.
type BuildError struct {
	Errors []*DocumentError
}

// NewBuildError wraps the collected document errors, sorted by path for
// stable output.
func NewBuildError(errs []*DocumentError) *BuildError {
	sort.Slice(errs, func(i, j int) bool { return errs[i].Path < errs[j].Path })
	return &BuildError{Errors: errs}
}

func (e *BuildError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d document(s) failed:", len(e.Errors)))
	for _, de := range e.Errors {
		sb.WriteString("\n  ")
		sb.WriteString(de.Error())
	}
	return sb.String()
}

// Messages returns one formatted line per failing document.
func (e *BuildError) Messages() []string {
	msgs := make([]string, len(e.Errors))
	for i, de := range e.Errors {
		msgs[i] = de.Error()
	}
	return msgs
}
