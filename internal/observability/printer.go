// Package observability provides formatted output utilities for verbose CLI
// mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"time"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 10
)

// Printer handles formatted output for verbose mode. A nil Printer is valid
// and prints nothing, so callers never need to guard their calls.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintRunStart outputs the run header with the discovered document count.
func (p *Printer) PrintRunStart(runID, source string, docs int) {
	if p == nil {
		return
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Run:     %s\n", runID))
	sb.WriteString(fmt.Sprintf("Source:  %s\n", source))
	sb.WriteString(fmt.Sprintf("Pages:   %d", docs))
	p.printBox("DOCSPLIT BUILD", sb.String())
}

// PrintRunSummary outputs counts for a completed run.
func (p *Printer) PrintRunSummary(single, dual, written int, dur time.Duration) {
	if p == nil {
		return
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Single-track pages:  %d\n", single))
	sb.WriteString(fmt.Sprintf("Dual-track pages:    %d\n", dual))
	sb.WriteString(fmt.Sprintf("Files written:       %d\n", written))
	sb.WriteString(fmt.Sprintf("Elapsed:             %s", dur.Round(time.Millisecond)))
	p.printBox("BUILD COMPLETE", sb.String())
}

// PrintDocumentErrors outputs every failing document, truncated past
// maxItemsToShow.
func (p *Printer) PrintDocumentErrors(errs []string) {
	if p == nil || len(errs) == 0 {
		return
	}
	var sb strings.Builder
	count := min(len(errs), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("• %s\n", errs[i]))
	}
	if len(errs) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more\n", len(errs)-maxItemsToShow))
	}
	p.printBox(fmt.Sprintf("ERRORS (%d)", len(errs)), strings.TrimRight(sb.String(), "\n"))
}

// PrintWatchEvent outputs a single rebuild notice in dev mode.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintWatchEvent(path string) {
	if p == nil {
		return
	}
	fmt.Fprintf(p.out, "changed: %s, rebuilding\n", path)
}
