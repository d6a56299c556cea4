// Package pipeline orchestrates a full split run: discover source documents,
// parse them all, then emit and write per-track outputs. Documents are
// independent of each other, so both phases fan out over a bounded worker
// pool; the only ordering rule is that no output is written until every
// document has parsed cleanly.
package pipeline

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/docsplit/internal/document"
	"github.com/jonathan/docsplit/internal/links"
	"github.com/jonathan/docsplit/internal/observability"
	"github.com/jonathan/docsplit/internal/splitter"
	"github.com/jonathan/docsplit/internal/writer"
)

// Options configures a run.
type Options struct {
	Source      string
	Output      string
	Tracks      []document.Track
	Extensions  []string
	Concurrency int
	// DryRun parses and plans but writes nothing. Used by the check command.
	DryRun  bool
	Printer *observability.Printer
}

// Report summarizes a completed (or failed) run.
type Report struct {
	RunID       string
	Started     time.Time
	Duration    time.Duration
	Documents   int
	SingleTrack int
	DualTrack   int
	Written     int
	// Pages are the extensionless post-split page paths the run produces,
	// sorted. The check command compares these against the navigation
	// manifest.
	Pages []string
}

// Run executes the pipeline and returns a report. On parse failure the
// returned error is a *BuildError aggregating every failing document, and no
// output has been written.
func Run(ctx context.Context, opts Options) (*Report, error) {
	report := &Report{RunID: uuid.NewString(), Started: time.Now()}
	defer func() { report.Duration = time.Since(report.Started) }()

	workers := opts.Concurrency
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}

	paths, err := discover(opts.Source, opts.Extensions)
	if err != nil {
		return report, fmt.Errorf("discover source documents: %w", err)
	}
	report.Documents = len(paths)
	opts.Printer.PrintRunStart(report.RunID, opts.Source, len(paths))

	parsed, buildErr := parseAll(ctx, opts, paths, workers)
	if buildErr != nil {
		opts.Printer.PrintDocumentErrors(buildErr.Messages())
		return report, buildErr
	}

	// The dual-track index drives link rewriting: a link is rewritten only
	// when its target document actually splits.
	dual := make(map[string]bool)
	for _, p := range parsed {
		if p.Dual() {
			dual[document.PagePath(p.Source.Path)] = true
		}
	}
	roots := make([]string, 0, len(opts.Tracks))
	for _, tr := range opts.Tracks {
		roots = append(roots, tr.Root)
	}
	rw := links.NewRewriter(roots, func(page string) bool { return dual[page] })
	sp := splitter.New(opts.Tracks, rw)

	outputs := make([][]document.OutputDocument, len(parsed))
	for i, p := range parsed {
		outputs[i] = sp.Emit(p)
		if p.Dual() {
			report.DualTrack++
		} else {
			report.SingleTrack++
		}
		for _, out := range outputs[i] {
			report.Pages = append(report.Pages, document.PagePath(out.Path))
		}
	}
	sort.Strings(report.Pages)

	if !opts.DryRun {
		written, werr := writeAll(ctx, opts, outputs, workers)
		report.Written = written
		if werr != nil {
			opts.Printer.PrintDocumentErrors(werr.Messages())
			return report, werr
		}
	}

	report.Duration = time.Since(report.Started)
	opts.Printer.PrintRunSummary(report.SingleTrack, report.DualTrack, report.Written, report.Duration)
	return report, nil
}

// discover walks the source tree collecting slash-separated relative paths of
// documents with a processed extension, sorted for deterministic runs.
func discover(root string, extensions []string) ([]string, error) {
	exts := make(map[string]bool, len(extensions))
	for _, e := range extensions {
		exts[strings.ToLower(e)] = true
	}

	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if !exts[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		paths = append(paths, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}

// parseAll reads and parses every document on a bounded pool, collecting all
// per-document errors instead of stopping at the first. The write phase only
// starts when this returns a nil *BuildError.
func parseAll(ctx context.Context, opts Options, paths []string, workers int) ([]*splitter.Parsed, *BuildError) {
	var (
		mu     sync.Mutex
		parsed []*splitter.Parsed
		docErr []*DocumentError
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, rel := range paths {
		rel := rel
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			record := func(err error) {
				mu.Lock()
				docErr = append(docErr, &DocumentError{Path: rel, Err: err})
				mu.Unlock()
			}

			if err := document.CheckCollision(rel, opts.Tracks); err != nil {
				record(err)
				return nil
			}

			data, err := os.ReadFile(filepath.Join(opts.Source, filepath.FromSlash(rel)))
			if err != nil {
				record(err)
				return nil
			}

			p, err := splitter.Parse(document.SourceDocument{Path: rel, Text: string(data)})
			if err != nil {
				record(err)
				return nil
			}

			mu.Lock()
			parsed = append(parsed, p)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		docErr = append(docErr, &DocumentError{Path: opts.Source, Err: err})
	}

	if len(docErr) > 0 {
		return nil, NewBuildError(docErr)
	}

	sort.Slice(parsed, func(i, j int) bool { return parsed[i].Source.Path < parsed[j].Source.Path })
	return parsed, nil
}

// writeAll persists every output document on a bounded pool. Write failures
// are collected the same way parse failures are.
func writeAll(ctx context.Context, opts Options, outputs [][]document.OutputDocument, workers int) (int, *BuildError) {
	w, err := writer.New(opts.Output)
	if err != nil {
		return 0, NewBuildError([]*DocumentError{{Path: opts.Output, Err: err}})
	}

	var (
		mu      sync.Mutex
		written int
		docErr  []*DocumentError
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, outs := range outputs {
		outs := outs
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			for _, out := range outs {
				if err := w.Write(out.Path, []byte(out.Text)); err != nil {
					mu.Lock()
					docErr = append(docErr, &DocumentError{Path: out.Path, Err: err})
					mu.Unlock()
					continue
				}
				mu.Lock()
				written++
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		docErr = append(docErr, &DocumentError{Path: opts.Output, Err: err})
	}

	if len(docErr) > 0 {
		return written, NewBuildError(docErr)
	}
	return written, nil
}
