package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/docsplit/internal/manifest"
	"github.com/jonathan/docsplit/internal/observability"
	"github.com/jonathan/docsplit/internal/pipeline"
)

var checkCommand = &cobra.Command{
	Use:   "check",
	Short: "Validate the source tree and navigation manifest without writing output",
	Long: `Parses every source document (reporting all fence errors), and, when a
manifest is configured, validates it against its JSON Schema and cross-checks
that every page the split would produce is listed in navigation. Writes
nothing.`,
	RunE: runCheckCmd,
}

var checkOpts buildFlags

func init() {
	addConfigFlags(checkCommand, &checkOpts)
	rootCmd.AddCommand(checkCommand)
}

func runCheckCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd, &checkOpts)
	if err != nil {
		return err
	}

	var printer *observability.Printer
	if cfg.Verbose {
		printer = observability.NewPrinter(os.Stdout)
	}

	report, err := pipeline.Run(cmd.Context(), pipeline.Options{
		Source:      cfg.Source,
		Output:      cfg.Output,
		Tracks:      tracksFor(cfg),
		Extensions:  cfg.Extensions,
		Concurrency: cfg.Concurrency,
		DryRun:      true,
		Printer:     printer,
	})
	if err != nil {
		return err
	}

	if cfg.Manifest == "" {
		fmt.Fprintf(cmd.OutOrStdout(), "ok: %d documents parsed cleanly (no manifest configured)\n", report.Documents)
		return nil
	}

	if cfg.Schema != "" {
		if err := manifest.Validate(cfg.Schema, cfg.Manifest); err != nil {
			return err
		}
	}

	pages, err := manifest.Pages(cfg.Manifest)
	if err != nil {
		return err
	}

	cov := manifest.Check(pages, report.Pages)
	for _, p := range cov.Stale {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: manifest lists %s, which this source tree does not produce\n", p)
	}
	if len(cov.Missing) > 0 {
		for _, p := range cov.Missing {
			fmt.Fprintf(cmd.ErrOrStderr(), "missing from manifest: %s\n", p)
		}
		return fmt.Errorf("%d produced page(s) are missing from %s", len(cov.Missing), cfg.Manifest)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "ok: %d documents, %d pages, manifest in sync\n", report.Documents, len(report.Pages))
	return nil
}
