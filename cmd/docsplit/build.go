package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/docsplit/internal/observability"
	"github.com/jonathan/docsplit/internal/pipeline"
)

var buildCommand = &cobra.Command{
	Use:   "build",
	Short: "Split the full source tree into per-track output pages",
	Long: `Reads every document under the source tree, splits documents containing
:::python / :::js fences into python and javascript variants, rewrites
internal links per track, and writes the results to the output tree.

Exits non-zero if any document has a malformed fence, listing every failing
document rather than stopping at the first.`,
	RunE: runBuildCmd,
}

var buildOpts buildFlags

func init() {
	addConfigFlags(buildCommand, &buildOpts)
	rootCmd.AddCommand(buildCommand)
}

func runBuildCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd, &buildOpts)
	if err != nil {
		return err
	}

	var printer *observability.Printer
	if cfg.Verbose {
		printer = observability.NewPrinter(os.Stdout)
	}

	_, err = pipeline.Run(cmd.Context(), pipeline.Options{
		Source:      cfg.Source,
		Output:      cfg.Output,
		Tracks:      tracksFor(cfg),
		Extensions:  cfg.Extensions,
		Concurrency: cfg.Concurrency,
		Printer:     printer,
	})
	return err
}
