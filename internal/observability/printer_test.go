package observability

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPrintRunStart(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintRunStart("run-1", "docs", 42)

	out := buf.String()
	assert.Contains(t, out, "DOCSPLIT BUILD")
	assert.Contains(t, out, "run-1")
	assert.Contains(t, out, "Pages:   42")
}

func TestPrintRunSummary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintRunSummary(10, 3, 16, 1500*time.Millisecond)

	out := buf.String()
	assert.Contains(t, out, "Single-track pages:  10")
	assert.Contains(t, out, "Dual-track pages:    3")
	assert.Contains(t, out, "Files written:       16")
}

func TestPrintDocumentErrors_Truncates(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	errs := make([]string, 13)
	for i := range errs {
		errs[i] = "bad.mdx:1: fence marker in invalid state"
	}
	p.PrintDocumentErrors(errs)

	out := buf.String()
	assert.Contains(t, out, "ERRORS (13)")
	assert.Contains(t, out, "... and 3 more")
}

func TestNilPrinterIsSilent(t *testing.T) {
	var p *Printer
	p.PrintRunStart("x", "y", 1)
	p.PrintRunSummary(0, 0, 0, 0)
	p.PrintDocumentErrors([]string{"e"})
	p.PrintWatchEvent("a.mdx")
}
